/*
Copyright © 2020 the ISTPCheck authors.
This file is part of ISTPCheck.

ISTPCheck is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

ISTPCheck is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with ISTPCheck.  If not, see <http://www.gnu.org/licenses/>.
*/

package istp

import "fmt"

// FillValue returns the ISTP-compliant fill value for the given data
// type: -2^(8n-1) for the n-byte signed integer types, 2^(8n)-1 for
// the unsigned ones, -1e31 for the float types and EPOCH, a
// (-1e31,-1e31) pair for EPOCH16, and a single space for the character
// types. TT2000 uses the INT8 fill.
func FillValue(t TypeCode) (AttrValue, error) {
	switch t {
	case INT1, BYTE:
		return IntAttr(-1 << 7), nil
	case INT2:
		return IntAttr(-1 << 15), nil
	case INT4:
		return IntAttr(-1 << 31), nil
	case INT8, TT2000:
		return IntAttr(-1 << 63), nil
	case UINT1:
		return IntAttr(1<<8 - 1), nil
	case UINT2:
		return IntAttr(1<<16 - 1), nil
	case UINT4:
		return IntAttr(1<<32 - 1), nil
	case REAL4, FLOAT, REAL8, DOUBLE, EPOCH:
		return FloatAttr(-1e31), nil
	case EPOCH16:
		return PairAttr(-1e31, -1e31), nil
	case CHAR, UCHAR:
		return StringAttr(" "), nil
	default:
		return AttrValue{}, fmt.Errorf("istp: no fill value for type %v", t)
	}
}

// FillVal sets an ISTP-compliant FILLVAL attribute on v based on its
// data type, overwriting any existing fill value.
func FillVal(v Variable) error {
	fill, err := FillValue(v.Type())
	if err != nil {
		return fmt.Errorf("istp: setting FILLVAL on %s: %v", v.Name(), err)
	}
	attrs := v.Attributes()
	attrs.Del("FILLVAL")
	attrs.Set("FILLVAL", fill)
	return nil
}
