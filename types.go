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

// TypeCode identifies a CDF data type. The values match the numeric
// type codes defined by the CDF library.
type TypeCode int

// The supported CDF data types.
const (
	INT1    TypeCode = 1  // 1-byte signed integer
	INT2    TypeCode = 2  // 2-byte signed integer
	INT4    TypeCode = 4  // 4-byte signed integer
	INT8    TypeCode = 8  // 8-byte signed integer
	UINT1   TypeCode = 11 // 1-byte unsigned integer
	UINT2   TypeCode = 12 // 2-byte unsigned integer
	UINT4   TypeCode = 14 // 4-byte unsigned integer
	REAL4   TypeCode = 21 // 4-byte IEEE float
	REAL8   TypeCode = 22 // 8-byte IEEE float
	EPOCH   TypeCode = 31 // milliseconds since 0000-01-01, as float64
	EPOCH16 TypeCode = 32 // (seconds, picoseconds) since 0000-01-01, as a float64 pair
	TT2000  TypeCode = 33 // nanoseconds since J2000 (TT), as int64
	BYTE    TypeCode = 41 // 1-byte signed integer (historical alias of INT1)
	FLOAT   TypeCode = 44 // 4-byte IEEE float (historical alias of REAL4)
	DOUBLE  TypeCode = 45 // 8-byte IEEE float (historical alias of REAL8)
	CHAR    TypeCode = 51 // fixed-length character string
	UCHAR   TypeCode = 52 // fixed-length unsigned character string
)

var typeNames = map[TypeCode]string{
	INT1:    "CDF_INT1",
	INT2:    "CDF_INT2",
	INT4:    "CDF_INT4",
	INT8:    "CDF_INT8",
	UINT1:   "CDF_UINT1",
	UINT2:   "CDF_UINT2",
	UINT4:   "CDF_UINT4",
	REAL4:   "CDF_REAL4",
	REAL8:   "CDF_REAL8",
	EPOCH:   "CDF_EPOCH",
	EPOCH16: "CDF_EPOCH16",
	TT2000:  "CDF_TIME_TT2000",
	BYTE:    "CDF_BYTE",
	FLOAT:   "CDF_FLOAT",
	DOUBLE:  "CDF_DOUBLE",
	CHAR:    "CDF_CHAR",
	UCHAR:   "CDF_UCHAR",
}

func (t TypeCode) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("UNKNOWN(%d)", int(t))
}

// ParseTypeCode returns the type code with the given CDF name
// (for example "CDF_TIME_TT2000").
func ParseTypeCode(name string) (TypeCode, error) {
	for t, n := range typeNames {
		if n == name {
			return t, nil
		}
	}
	return 0, fmt.Errorf("istp: unknown data type name %q", name)
}

// IsTimeType reports whether t is one of the three CDF time
// representations.
func (t TypeCode) IsTimeType() bool {
	return t == EPOCH || t == EPOCH16 || t == TT2000
}
