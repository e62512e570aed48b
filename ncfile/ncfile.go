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

// Package ncfile adapts NetCDF files (NetCDF 4 and greater not
// supported) to the istp.File and istp.Variable interfaces.
//
// NetCDF cannot store all CDF data types, so converted files carry the
// original type in a per-variable CDF_TYPE string attribute (for
// example "CDF_TIME_TT2000"); when present it overrides the mapping
// from the storage type. A variable is treated as record varying when
// its leading dimension is named "record".
package ncfile

import (
	"fmt"
	"os"
	"time"

	"github.com/ctessum/cdf"
	"github.com/ctessum/sparse"
	"github.com/spacedata/istp"
)

// recordDim is the dimension name marking the record axis.
const recordDim = "record"

// File is a NetCDF file read into memory, with attribute edits staged
// until Save is called.
type File struct {
	path   string
	global *istp.AttrMap
	order  []string
	vars   map[string]*Var
}

// Var is one variable of a NetCDF file.
type Var struct {
	name    string
	typ     istp.TypeCode
	shape   []int
	rv      bool
	attrs   *istp.AttrMap
	elemLen int
	data    *sparse.DenseArray
	raw     interface{} // the buffer as read, for round-trip writing
	dims    []string
	lens    []int
}

// Open reads the NetCDF file at path into memory.
func Open(path string) (*File, error) {
	ff, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("ncfile: opening %s: %v", path, err)
	}
	defer ff.Close()
	nc, err := cdf.Open(ff)
	if err != nil {
		return nil, fmt.Errorf("ncfile: opening %s: %v", path, err)
	}

	f := &File{
		path:   path,
		global: attrMap(nc, ""),
		vars:   make(map[string]*Var),
	}
	for _, name := range nc.Header.Variables() {
		v, err := readVar(nc, name)
		if err != nil {
			return nil, fmt.Errorf("ncfile: reading %s from %s: %v", name, path, err)
		}
		f.order = append(f.order, name)
		f.vars[name] = v
	}
	return f, nil
}

// attrMap converts the attributes of the named variable ("" for the
// global attributes) to an istp.AttrMap.
func attrMap(nc *cdf.File, name string) *istp.AttrMap {
	m := istp.NewAttrMap()
	for _, a := range nc.Header.Attributes(name) {
		m.Set(a, attrValue(nc.Header.GetAttribute(name, a)))
	}
	return m
}

// attrValue converts a NetCDF attribute value to a tagged value.
// Two-element float64 attributes become pairs (the EPOCH16 fill);
// other numeric attributes use their first element.
func attrValue(val interface{}) istp.AttrValue {
	switch v := val.(type) {
	case string:
		return istp.StringAttr(v)
	case []byte:
		return istp.StringAttr(string(v))
	case []float64:
		if len(v) == 2 {
			return istp.PairAttr(v[0], v[1])
		}
		if len(v) > 0 {
			return istp.FloatAttr(v[0])
		}
	case []float32:
		if len(v) > 0 {
			return istp.FloatAttr(float64(v[0]))
		}
	case []int32:
		if len(v) > 0 {
			return istp.IntAttr(int64(v[0]))
		}
	case []int16:
		if len(v) > 0 {
			return istp.IntAttr(int64(v[0]))
		}
	case []int8:
		if len(v) > 0 {
			return istp.IntAttr(int64(v[0]))
		}
	}
	return istp.StringAttr(fmt.Sprintf("%v", val))
}

// ncValue converts a tagged value back to a form writable as a NetCDF
// attribute. Integer values that cannot be stored as int32 are written
// as float64.
func ncValue(a istp.AttrValue) interface{} {
	switch a.Kind {
	case istp.KindString:
		return a.Str
	case istp.KindInt:
		if a.Int >= -2147483648 && a.Int <= 2147483647 {
			return []int32{int32(a.Int)}
		}
		return []float64{float64(a.Int)}
	case istp.KindFloat:
		return []float64{a.Float}
	default:
		return []float64{a.Pair[0], a.Pair[1]}
	}
}

// readVar reads the named variable and its attributes.
func readVar(nc *cdf.File, name string) (*Var, error) {
	dims := nc.Header.Dimensions(name)
	lens := nc.Header.Lengths(name)
	r := nc.Reader(name, nil, nil)
	buf := r.Zero(-1)
	if _, err := r.Read(buf); err != nil {
		return nil, err
	}

	v := &Var{
		name:  name,
		attrs: attrMap(nc, name),
		raw:   buf,
		dims:  dims,
		lens:  lens,
	}
	v.rv = len(dims) > 0 && dims[0] == recordDim

	var n int
	switch b := buf.(type) {
	case []int8:
		v.typ = istp.INT1
		n = len(b)
		v.data = toDense(lens, n, func(i int) float64 { return float64(b[i]) })
	case []int16:
		v.typ = istp.INT2
		n = len(b)
		v.data = toDense(lens, n, func(i int) float64 { return float64(b[i]) })
	case []int32:
		v.typ = istp.INT4
		n = len(b)
		v.data = toDense(lens, n, func(i int) float64 { return float64(b[i]) })
	case []float32:
		v.typ = istp.REAL4
		n = len(b)
		v.data = toDense(lens, n, func(i int) float64 { return float64(b[i]) })
	case []float64:
		v.typ = istp.REAL8
		n = len(b)
		v.data = toDense(lens, n, func(i int) float64 { return b[i] })
	case []byte:
		// Character data; the trailing dimension is the element
		// length.
		v.typ = istp.CHAR
		n = len(b)
		if len(lens) > 0 {
			v.elemLen = lens[len(lens)-1]
		}
	default:
		return nil, fmt.Errorf("unsupported NetCDF value type %T", buf)
	}

	v.shape = shapeOf(lens, n)
	if v.typ == istp.CHAR {
		// Drop the element-length dimension; a bare string is the
		// no-array-dimensions sentinel.
		if len(v.shape) <= 1 {
			v.shape = []int{0}
		} else {
			v.shape = v.shape[:len(v.shape)-1]
		}
	}

	// Converted files carry the original CDF type.
	if a, ok := v.attrs.Get("CDF_TYPE"); ok && a.Kind == istp.KindString {
		t, err := istp.ParseTypeCode(a.Str)
		if err != nil {
			return nil, err
		}
		v.typ = t
	}
	return v, nil
}

// shapeOf returns the variable shape, resolving a record dimension
// that the header reports as zero from the number of elements read.
func shapeOf(lens []int, n int) []int {
	shape := append([]int(nil), lens...)
	if len(shape) == 0 {
		return []int{0}
	}
	if shape[0] == 0 {
		rest := 1
		for _, l := range shape[1:] {
			rest *= l
		}
		if rest > 0 {
			shape[0] = n / rest
		}
	}
	return shape
}

func toDense(lens []int, n int, at func(int) float64) *sparse.DenseArray {
	d := sparse.ZerosDense(shapeOf(lens, n)...)
	for i := range d.Elements {
		d.Elements[i] = at(i)
	}
	return d
}

// Path returns the path the file was opened from.
func (f *File) Path() string { return f.path }

// Attributes returns the global attributes of f.
func (f *File) Attributes() *istp.AttrMap { return f.global }

// Variables returns the names of all variables in file order.
func (f *File) Variables() []string {
	return append([]string(nil), f.order...)
}

// Var returns the named variable, reporting whether it exists.
func (f *File) Var(name string) (istp.Variable, bool) {
	v, ok := f.vars[name]
	if !ok {
		return nil, false
	}
	return v, true
}

// Save writes the file, with any staged attribute edits, to path.
// NetCDF headers cannot be grown in place, so the whole file is
// rewritten.
func (f *File) Save(path string) error {
	var dimNames []string
	var dimLens []int
	seen := make(map[string]struct{})
	for _, name := range f.order {
		v := f.vars[name]
		for i, d := range v.dims {
			if _, ok := seen[d]; ok {
				continue
			}
			seen[d] = struct{}{}
			dimNames = append(dimNames, d)
			l := v.lens[i]
			if d == recordDim && l == 0 {
				l = v.shape[0]
			}
			dimLens = append(dimLens, l)
		}
	}

	h := cdf.NewHeader(dimNames, dimLens)
	for _, a := range f.global.Names() {
		val, _ := f.global.Get(a)
		h.AddAttribute("", a, ncValue(val))
	}
	for _, name := range f.order {
		v := f.vars[name]
		h.AddVariable(name, v.dims, prototype(v.raw))
		for _, a := range v.attrs.Names() {
			val, _ := v.attrs.Get(a)
			h.AddAttribute(name, a, ncValue(val))
		}
	}
	h.Define()
	for _, err := range h.Check() {
		return fmt.Errorf("ncfile: saving %s: %v", path, err)
	}

	ff, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("ncfile: saving %s: %v", path, err)
	}
	defer ff.Close()
	nc, err := cdf.Create(ff, h)
	if err != nil {
		return fmt.Errorf("ncfile: saving %s: %v", path, err)
	}
	for _, name := range f.order {
		v := f.vars[name]
		begin := make([]int, len(v.dims))
		end := make([]int, len(v.dims))
		for i, l := range v.lens {
			end[i] = l
		}
		if len(end) > 0 && end[0] == 0 {
			end[0] = v.shape[0]
		}
		w := nc.Writer(name, begin, end)
		if _, err := w.Write(v.raw); err != nil {
			return fmt.Errorf("ncfile: writing %s to %s: %v", name, path, err)
		}
	}
	if err := cdf.UpdateNumRecs(ff); err != nil {
		return fmt.Errorf("ncfile: finalizing %s: %v", path, err)
	}
	return nil
}

// prototype returns a one-element slice of the same type as buf, for
// header variable definitions.
func prototype(buf interface{}) interface{} {
	switch buf.(type) {
	case []int8:
		return []int8{0}
	case []int16:
		return []int16{0}
	case []int32:
		return []int32{0}
	case []float32:
		return []float32{0}
	case []float64:
		return []float64{0}
	default:
		return []byte{0}
	}
}

// Name returns the variable name.
func (v *Var) Name() string { return v.name }

// Type returns the variable data type.
func (v *Var) Type() istp.TypeCode { return v.typ }

// Shape returns the dimension sizes of v. For character variables the
// element-length dimension is not included.
func (v *Var) Shape() []int { return append([]int(nil), v.shape...) }

// RecordVarying reports whether the leading dimension of v is the
// record axis.
func (v *Var) RecordVarying() bool { return v.rv }

// Attributes returns the live attribute map of v; edits are staged
// until File.Save.
func (v *Var) Attributes() *istp.AttrMap { return v.attrs }

// Data returns the raw values of v.
func (v *Var) Data() (*sparse.DenseArray, error) {
	if v.data == nil {
		return nil, fmt.Errorf("ncfile: variable %s has no numeric data", v.name)
	}
	return v.data, nil
}

// Times decodes the raw values of v as timestamps.
func (v *Var) Times() ([]time.Time, error) {
	if !v.typ.IsTimeType() {
		return nil, fmt.Errorf("ncfile: variable %s of type %v has no times", v.name, v.typ)
	}
	return istp.TimesFromData(v.typ, v.data)
}

// ElemLen returns the number of characters per element.
func (v *Var) ElemLen() int { return v.elemLen }
