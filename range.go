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
)

// GetMax returns the maximum representable value for the given data
// type.
func GetMax(t TypeCode) (float64, error) {
	switch t {
	case BYTE, INT1, CHAR:
		return 127, nil
	case UINT1, UCHAR:
		return 255, nil
	case INT2:
		return 32767, nil
	case UINT2:
		return 65535, nil
	case INT4:
		return 2147483647, nil
	case UINT4:
		return 4294967295, nil
	case INT8, TT2000:
		return 9223372036854775807, nil
	case REAL4, FLOAT:
		return 3.4e38, nil
	case REAL8, DOUBLE, EPOCH:
		return math.Inf(1), nil
	default:
		return 0, fmt.Errorf("istp: unknown data type: %v", t)
	}
}

// GetMin returns the minimum representable value for the given data
// type.
func GetMin(t TypeCode) (float64, error) {
	switch t {
	case BYTE, INT1, CHAR:
		return -128, nil
	case UINT1, UINT2, UINT4, UCHAR:
		return 0, nil
	case INT2:
		return -32768, nil
	case INT4:
		return -2147483648, nil
	case INT8, TT2000:
		return -9223372036854775808, nil
	case REAL4, FLOAT:
		return -3.4e38, nil
	case REAL8, DOUBLE, EPOCH:
		return math.Inf(-1), nil
	default:
		return 0, fmt.Errorf("istp: unknown data type: %v", t)
	}
}
