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
	"reflect"
	"testing"
)

func TestFillValue(t *testing.T) {
	tests := []struct {
		typ  TypeCode
		want AttrValue
	}{
		{INT1, IntAttr(-128)},
		{BYTE, IntAttr(-128)},
		{INT2, IntAttr(-32768)},
		{INT4, IntAttr(-2147483648)},
		{INT8, IntAttr(-9223372036854775808)},
		{TT2000, IntAttr(-9223372036854775808)},
		{UINT1, IntAttr(255)},
		{UINT2, IntAttr(65535)},
		{UINT4, IntAttr(4294967295)},
		{REAL4, FloatAttr(-1e31)},
		{FLOAT, FloatAttr(-1e31)},
		{REAL8, FloatAttr(-1e31)},
		{DOUBLE, FloatAttr(-1e31)},
		{EPOCH, FloatAttr(-1e31)},
		{EPOCH16, PairAttr(-1e31, -1e31)},
		{CHAR, StringAttr(" ")},
		{UCHAR, StringAttr(" ")},
	}
	for _, test := range tests {
		have, err := FillValue(test.typ)
		if err != nil {
			t.Fatalf("FillValue(%v): %v", test.typ, err)
		}
		if !reflect.DeepEqual(have, test.want) {
			t.Errorf("FillValue(%v): have %+v, want %+v", test.typ, have, test.want)
		}
	}
	if _, err := FillValue(TypeCode(99)); err == nil {
		t.Error("FillValue(99): expected error")
	}
}

func TestFillValOverwritesAndIsIdempotent(t *testing.T) {
	v := NewMemVar("counts", INT2, true, 10)
	v.Attributes().Set("FILLVAL", IntAttr(-999))

	if err := FillVal(v); err != nil {
		t.Fatal(err)
	}
	first, ok := v.Attributes().Get("FILLVAL")
	if !ok {
		t.Fatal("FILLVAL not set")
	}
	if want := IntAttr(-32768); !reflect.DeepEqual(first, want) {
		t.Errorf("have %+v, want %+v", first, want)
	}

	if err := FillVal(v); err != nil {
		t.Fatal(err)
	}
	second, _ := v.Attributes().Get("FILLVAL")
	if !reflect.DeepEqual(first, second) {
		t.Errorf("FillVal not idempotent: %+v then %+v", first, second)
	}
	if v.Attributes().Len() != 1 {
		t.Errorf("have %d attributes, want 1", v.Attributes().Len())
	}
}

func TestFillValUnsupportedType(t *testing.T) {
	v := NewMemVar("odd", TypeCode(99), false, 0)
	if err := FillVal(v); err == nil {
		t.Error("expected error for unsupported type")
	}
	if v.Attributes().Has("FILLVAL") {
		t.Error("FILLVAL should not be set on failure")
	}
}
