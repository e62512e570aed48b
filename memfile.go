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
	"time"

	"github.com/ctessum/sparse"
)

// MemFile is an in-memory implementation of File, for building files
// programmatically and for tests.
type MemFile struct {
	path  string
	attrs *AttrMap
	order []string
	vars  map[string]*MemVar
}

// NewMemFile returns an empty in-memory file with the given path name.
func NewMemFile(path string) *MemFile {
	return &MemFile{
		path:  path,
		attrs: NewAttrMap(),
		vars:  make(map[string]*MemVar),
	}
}

// Path returns the path the file was created with.
func (f *MemFile) Path() string { return f.path }

// Attributes returns the global attributes of f.
func (f *MemFile) Attributes() *AttrMap { return f.attrs }

// Variables returns the names of all variables in insertion order.
func (f *MemFile) Variables() []string {
	return append([]string(nil), f.order...)
}

// Var returns the named variable, reporting whether it exists.
func (f *MemFile) Var(name string) (Variable, bool) {
	v, ok := f.vars[name]
	if !ok {
		return nil, false
	}
	return v, true
}

// AddVar adds v to f, replacing any variable with the same name.
func (f *MemFile) AddVar(v *MemVar) {
	if _, ok := f.vars[v.name]; !ok {
		f.order = append(f.order, v.name)
	}
	f.vars[v.name] = v
}

// MemVar is an in-memory implementation of Variable.
type MemVar struct {
	name    string
	typ     TypeCode
	shape   []int
	rv      bool
	attrs   *AttrMap
	data    *sparse.DenseArray
	elemLen int
}

// NewMemVar returns a variable with the given name, type, and shape.
// If rv is true, the first element of shape is the record count.
func NewMemVar(name string, typ TypeCode, rv bool, shape ...int) *MemVar {
	return &MemVar{
		name:  name,
		typ:   typ,
		shape: shape,
		rv:    rv,
		attrs: NewAttrMap(),
	}
}

// SetData sets the raw values of v. The shape of data must match the
// shape of v; this is not checked.
func (v *MemVar) SetData(data *sparse.DenseArray) *MemVar {
	v.data = data
	return v
}

// SetValues sets the raw values of v from a flat slice, reshaped to
// the variable's shape.
func (v *MemVar) SetValues(values ...float64) *MemVar {
	d := sparse.ZerosDense(v.shape...)
	copy(d.Elements, values)
	v.data = d
	return v
}

// SetElemLen sets the number of characters per element, for the
// character types.
func (v *MemVar) SetElemLen(n int) *MemVar {
	v.elemLen = n
	return v
}

// Name returns the variable name.
func (v *MemVar) Name() string { return v.name }

// Type returns the variable data type.
func (v *MemVar) Type() TypeCode { return v.typ }

// Shape returns the dimension sizes of v.
func (v *MemVar) Shape() []int { return append([]int(nil), v.shape...) }

// RecordVarying reports whether the leading dimension indexes records.
func (v *MemVar) RecordVarying() bool { return v.rv }

// Attributes returns the live attribute map of v.
func (v *MemVar) Attributes() *AttrMap { return v.attrs }

// Data returns the raw values of v.
func (v *MemVar) Data() (*sparse.DenseArray, error) {
	if v.data == nil {
		return nil, fmt.Errorf("istp: variable %s has no data", v.name)
	}
	return v.data, nil
}

// Times decodes the raw values of v as timestamps.
func (v *MemVar) Times() ([]time.Time, error) {
	if !v.typ.IsTimeType() {
		return nil, fmt.Errorf("istp: variable %s of type %v has no times", v.name, v.typ)
	}
	return TimesFromData(v.typ, v.data)
}

// ElemLen returns the number of characters per element.
func (v *MemVar) ElemLen() int { return v.elemLen }
