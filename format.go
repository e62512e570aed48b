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

import (
	"fmt"
	"math"
	"strconv"
)

// naturalRange returns the representable range of the integer-family
// type t.
func naturalRange(t TypeCode) (min, max float64) {
	switch t {
	case INT1, BYTE:
		return -1 << 7, 1<<7 - 1
	case INT2:
		return -1 << 15, 1<<15 - 1
	case INT4:
		return -1 << 31, 1<<31 - 1
	case INT8:
		return -1 << 63, 1<<63 - 1
	case UINT1:
		return 0, 1<<8 - 1
	case UINT2:
		return 0, 1<<16 - 1
	case UINT4:
		return 0, 1<<32 - 1
	}
	return 0, 0
}

// digits returns the number of decimal digits in the integer part of
// the largest magnitude among min, max, and 1. Truncating the log and
// adding 1 makes powers of 10 come out right (log10(10) = 1 but 10
// needs two digits).
func digits(min, max float64) int {
	m := math.Max(math.Max(math.Abs(min), math.Abs(max)), 1)
	return int(math.Log10(m)) + 1
}

// intPartLen returns the length of the decimal rendering of the
// integer part of f, including any sign.
func intPartLen(f float64) int {
	return len(strconv.FormatFloat(math.Trunc(f), 'f', -1, 64))
}

// FormatString computes the ISTP-compliant FORMAT for v, a Fortran
// format token sized from the variable's data type and declared range.
// If useScaleRange is true, SCALEMIN/SCALEMAX are consulted instead of
// VALIDMIN/VALIDMAX.
func FormatString(v Variable, useScaleRange bool) (string, error) {
	minn, maxx := "VALIDMIN", "VALIDMAX"
	if useScaleRange {
		minn, maxx = "SCALEMIN", "SCALEMAX"
	}
	attrs := v.Attributes()
	switch t := v.Type(); t {
	case INT1, INT2, INT4, INT8, UINT1, UINT2, UINT4, BYTE:
		natMin, natMax := naturalRange(t)
		minval, ok := attrs.number(minn)
		if !ok {
			minval = natMin
		}
		maxval, ok := attrs.number(maxx)
		if !ok {
			maxval = natMax
		}
		width := digits(minval, maxval)
		if minval < 0 { // extra column for the sign
			width++
		}
		return fmt.Sprintf("I%d", width), nil
	case TT2000:
		return fmt.Sprintf("A%d", len("9999-12-31T23:59:59.999999999")), nil
	case EPOCH16:
		return fmt.Sprintf("A%d", len("31-Dec-9999 23:59:59.999.999.000.000")), nil
	case EPOCH:
		return fmt.Sprintf("A%d", len("31-Dec-9999 23:59:59.999")), nil
	case REAL4, REAL8, FLOAT, DOUBLE:
		// Prefer SCALEMIN/MAX to find the number of decimals to
		// include, falling back to VALIDMIN/MAX.
		var rng float64
		hasRange := false
		if smin, ok := attrs.number("SCALEMIN"); ok {
			if smax, ok := attrs.number("SCALEMAX"); ok {
				rng, hasRange = smax-smin, true
			}
		}
		if !hasRange {
			if vmin, ok := attrs.number("VALIDMIN"); ok {
				if vmax, ok := attrs.number("VALIDMAX"); ok {
					rng, hasRange = vmax-vmin, true
				}
			}
		}
		// Size the integer part from the chosen min/max pair.
		ln := 0
		minval, hasMin := attrs.number(minn)
		maxval, hasMax := attrs.number(maxx)
		if hasRange && hasMin && hasMax {
			ln = intPartLen(maxval)
			if l := intPartLen(minval); l > ln {
				ln = l
			}
		}
		// Old files sometimes carry a negative range; treat it as
		// no range rather than failing (ValidRange reports the
		// min > max case).
		if rng <= 0 {
			hasRange = false
		}
		switch {
		case hasRange && ln > 0 && rng <= 11:
			// Room for '.' and 3 decimal places.
			return fmt.Sprintf("F%d.3", ln+4), nil
		case hasRange && ln > 0 && rng <= 101:
			return fmt.Sprintf("F%d.2", ln+3), nil
		case hasRange && ln > 0 && rng <= 1000:
			return fmt.Sprintf("F%d.1", ln+2), nil
		default:
			// No range known, or too big for fixed point.
			return "G10.2E3", nil
		}
	case CHAR, UCHAR:
		return fmt.Sprintf("A%d", v.ElemLen()), nil
	default:
		return "", fmt.Errorf("istp: no FORMAT for %s of type %v", v.Name(), t)
	}
}

// Format sets an ISTP-compliant FORMAT attribute on v, overwriting any
// existing one. If useScaleRange is true, SCALEMIN/SCALEMAX are
// consulted instead of VALIDMIN/VALIDMAX; note the checks may complain
// about the result in that case.
func Format(v Variable, useScaleRange bool) error {
	format, err := FormatString(v, useScaleRange)
	if err != nil {
		return err
	}
	attrs := v.Attributes()
	attrs.Del("FORMAT")
	attrs.Set("FORMAT", StringAttr(format))
	return nil
}
