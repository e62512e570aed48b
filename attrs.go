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

import "strconv"

// AttrKind is the tag of an AttrValue.
type AttrKind int

// The possible attribute value kinds.
const (
	KindString AttrKind = iota
	KindInt
	KindFloat
	KindPair
)

// AttrValue is one attribute value: a string, an integer, a float, or
// a pair of floats (used by the EPOCH16 fill value). Consumers must
// check Kind before interpreting the value.
type AttrValue struct {
	Kind  AttrKind
	Str   string
	Int   int64
	Float float64
	Pair  [2]float64
}

// StringAttr returns a string-valued attribute value.
func StringAttr(s string) AttrValue { return AttrValue{Kind: KindString, Str: s} }

// IntAttr returns an integer-valued attribute value.
func IntAttr(i int64) AttrValue { return AttrValue{Kind: KindInt, Int: i} }

// FloatAttr returns a float-valued attribute value.
func FloatAttr(f float64) AttrValue { return AttrValue{Kind: KindFloat, Float: f} }

// PairAttr returns a float-pair-valued attribute value.
func PairAttr(a, b float64) AttrValue {
	return AttrValue{Kind: KindPair, Pair: [2]float64{a, b}}
}

// Number returns the numeric interpretation of a, reporting whether
// there is one.
func (a AttrValue) Number() (float64, bool) {
	switch a.Kind {
	case KindInt:
		return float64(a.Int), true
	case KindFloat:
		return a.Float, true
	}
	return 0, false
}

// Text returns a human-readable rendering of a.
func (a AttrValue) Text() string {
	switch a.Kind {
	case KindString:
		return a.Str
	case KindInt:
		return strconv.FormatInt(a.Int, 10)
	case KindFloat:
		return strconv.FormatFloat(a.Float, 'g', -1, 64)
	default:
		return "(" + strconv.FormatFloat(a.Pair[0], 'g', -1, 64) + "," +
			strconv.FormatFloat(a.Pair[1], 'g', -1, 64) + ")"
	}
}

// AttrMap is an ordered mapping from attribute name to value.
type AttrMap struct {
	names []string
	vals  map[string]AttrValue
}

// NewAttrMap returns an empty attribute mapping.
func NewAttrMap() *AttrMap {
	return &AttrMap{vals: make(map[string]AttrValue)}
}

// Get returns the named attribute value, reporting whether it exists.
func (m *AttrMap) Get(name string) (AttrValue, bool) {
	v, ok := m.vals[name]
	return v, ok
}

// Has reports whether the named attribute exists.
func (m *AttrMap) Has(name string) bool {
	_, ok := m.vals[name]
	return ok
}

// Set adds or replaces the named attribute. Newly added attributes
// keep insertion order.
func (m *AttrMap) Set(name string, v AttrValue) {
	if _, ok := m.vals[name]; !ok {
		m.names = append(m.names, name)
	}
	m.vals[name] = v
}

// Del removes the named attribute if it exists.
func (m *AttrMap) Del(name string) {
	if _, ok := m.vals[name]; !ok {
		return
	}
	delete(m.vals, name)
	for i, n := range m.names {
		if n == name {
			m.names = append(m.names[:i], m.names[i+1:]...)
			break
		}
	}
}

// Names returns the attribute names in insertion order.
func (m *AttrMap) Names() []string {
	return append([]string(nil), m.names...)
}

// Len returns the number of attributes.
func (m *AttrMap) Len() int { return len(m.vals) }

// number returns the numeric value of the named attribute of m,
// reporting whether the attribute exists and is numeric.
func (m *AttrMap) number(name string) (float64, bool) {
	v, ok := m.Get(name)
	if !ok {
		return 0, false
	}
	return v.Number()
}
