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

func TestAttrMapOrder(t *testing.T) {
	m := NewAttrMap()
	m.Set("FIELDNAM", StringAttr("flux"))
	m.Set("VALIDMIN", FloatAttr(0))
	m.Set("VALIDMAX", FloatAttr(10))
	m.Set("FIELDNAM", StringAttr("flux2")) // replace keeps position

	if have, want := m.Names(), []string{"FIELDNAM", "VALIDMIN", "VALIDMAX"}; !reflect.DeepEqual(have, want) {
		t.Errorf("have %v, want %v", have, want)
	}
	m.Del("VALIDMIN")
	if have, want := m.Names(), []string{"FIELDNAM", "VALIDMAX"}; !reflect.DeepEqual(have, want) {
		t.Errorf("after Del: have %v, want %v", have, want)
	}
	if m.Len() != 2 {
		t.Errorf("have len %d, want 2", m.Len())
	}
	if a, ok := m.Get("FIELDNAM"); !ok || a.Str != "flux2" {
		t.Errorf("have %+v, want flux2", a)
	}
	m.Del("VALIDMIN") // deleting a missing attribute is a no-op
}

func TestAttrValueText(t *testing.T) {
	tests := []struct {
		a    AttrValue
		want string
	}{
		{StringAttr("Epoch"), "Epoch"},
		{IntAttr(-32768), "-32768"},
		{FloatAttr(-1e31), "-1e+31"},
		{PairAttr(-1e31, -1e31), "(-1e+31,-1e+31)"},
	}
	for _, test := range tests {
		if have := test.a.Text(); have != test.want {
			t.Errorf("have %q, want %q", have, test.want)
		}
	}
}

func TestAttrValueNumber(t *testing.T) {
	if n, ok := IntAttr(5).Number(); !ok || n != 5 {
		t.Errorf("have (%g,%v), want (5,true)", n, ok)
	}
	if n, ok := FloatAttr(2.5).Number(); !ok || n != 2.5 {
		t.Errorf("have (%g,%v), want (2.5,true)", n, ok)
	}
	if _, ok := StringAttr("x").Number(); ok {
		t.Error("string attribute should not be numeric")
	}
	if _, ok := PairAttr(1, 2).Number(); ok {
		t.Error("pair attribute should not be numeric")
	}
}
