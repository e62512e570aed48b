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
	"strconv"
	"strings"

	"github.com/gonum/floats"
)

// Tolerances for deciding whether a data value equals the fill value,
// matching the defaults used by numpy.isclose.
const (
	fillRelTol = 1e-5
	fillAbsTol = 1e-8
)

// A VarCheck checks one aspect of the metadata of a single variable
// within a file. It returns one finding per violation (empty if
// compliant) and a non-nil error only when the check itself cannot run
// (for example an unsupported data type).
type VarCheck func(f File, v Variable) ([]string, error)

// varChecks lists every variable-level check, in the order CheckVar
// runs them. Helper functions are not included so that no check is
// run twice.
var varChecks = []VarCheck{
	Depends,
	DepSize,
	FieldNam,
	RecordCount,
	ValidRange,
	ValidScale,
	ValidPlotType,
}

// CheckVar runs all variable-level checks on v and concatenates their
// findings. If a check fails to run, the findings gathered so far are
// returned along with the first error; the remaining checks are still
// run.
func CheckVar(f File, v Variable) ([]string, error) {
	var errs []string
	var firstErr error
	for _, check := range varChecks {
		found, err := check(f, v)
		errs = append(errs, found...)
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return errs, firstErr
}

// depName returns the variable name a dependency attribute value
// refers to, reporting whether the value is a name at all.
func depName(a AttrValue) (string, bool) {
	if a.Kind != KindString {
		return "", false
	}
	return a.Str, true
}

// Depends checks that the variables named by the DEPEND and LABL_PTR
// attributes exist in the file.
func Depends(f File, v Variable) ([]string, error) {
	var errs []string
	attrs := v.Attributes()
	for _, name := range attrs.Names() {
		if !strings.HasPrefix(name, "DEPEND_") && !strings.HasPrefix(name, "LABL_PTR_") {
			continue
		}
		a, _ := attrs.Get(name)
		if target, ok := depName(a); ok {
			if _, exists := f.Var(target); exists {
				continue
			}
		}
		errs = append(errs, fmt.Sprintf("%s variable %s missing", name, a.Text()))
	}
	return errs, nil
}

// removeShared removes from dims, one occurrence at a time, the sizes
// that also appear in other. This collapses a shared axis by value
// rather than by position, so two distinct dimensions that happen to
// have the same size cannot be told apart.
func removeShared(dims, other []int) []int {
	out := append([]int(nil), dims...)
	for i := 0; i < len(out); i++ {
		ii := out[i]
		for _, o := range other {
			if o != ii {
				continue
			}
			for j, x := range out {
				if x == ii {
					out = append(out[:j], out[j+1:]...)
					break
				}
			}
			break
		}
	}
	return out
}

// DepSize checks that each DEPEND_n variable has the same size as
// dimension n of the variable depending on it. Dependencies that are
// themselves dependent are reconciled by removing the sub-dependency's
// sizes from consideration; e.g. if counts [80,48] depends on energy
// [80,48], which depends on look [80], the 80 is removed from the view
// of energy so that 48 is checked against 48. At most two layers of
// dependency are supported.
func DepSize(f File, v Variable) ([]string, error) {
	var errs []string
	shape := v.Shape()
	rv := 0
	if v.RecordVarying() { // the record count is a leading dimension
		rv = 1
	}
	if len(shape) == 1 && shape[0] == 0 {
		if v.Attributes().Has("DEPEND_1") || v.Attributes().Has("DEPEND_2") {
			errs = append(errs, "Do not expect DEPEND_1 or DEPEND_2 in 1 dimensional variable.")
		}
	}
	for i := rv; i < len(shape); i++ { // i indexes the variable's shape
		depidx := i + 1 - rv // the n in DEPEND_n
		target := shape[i]
		a, ok := v.Attributes().Get(fmt.Sprintf("DEPEND_%d", depidx))
		if !ok {
			continue
		}
		d, ok := depName(a)
		if !ok {
			continue // Depends reports this
		}
		dv, ok := f.Var(d)
		if !ok {
			continue // Depends reports this
		}
		var actual int
		if dv.Attributes().Has("DEPEND_2") {
			errs = append(errs, "Do not expect three layers of dependency.")
			continue
		} else if dd, ok := dv.Attributes().Get("DEPEND_1"); ok {
			ddName, ok := depName(dd)
			if !ok {
				continue
			}
			ddv, ok := f.Var(ddName)
			if !ok {
				continue // Depends reports this
			}
			remaining := removeShared(dv.Shape(), ddv.Shape())
			if d0, ok := dv.Attributes().Get("DEPEND_0"); ok {
				// The dependency is record varying; remove the
				// epoch sizes from consideration too.
				d0Name, _ := depName(d0)
				if !strings.HasPrefix(d0Name, "Epoch") {
					errs = append(errs, "Expect DEPEND_0 to be Epoch")
					continue
				}
				d0v, ok := f.Var(d0Name)
				if !ok {
					continue // Depends reports this
				}
				remaining = removeShared(remaining, d0v.Shape())
			}
			if len(remaining) != 1 {
				errs = append(errs, "More complicated double dependency than taken into account.")
				continue
			}
			actual = remaining[0]
		} else {
			ds := dv.Shape()
			idx := 0
			if dv.RecordVarying() {
				idx = 1
			}
			if idx >= len(ds) {
				continue
			}
			actual = ds[idx]
		}
		if target != actual {
			errs = append(errs, fmt.Sprintf("Dim %d sized %d but DEPEND_%d %s sized %d",
				i, target, depidx, d, actual))
		}
	}
	return errs, nil
}

// RecordCount checks that a record-varying variable has the same
// number of records as its DEPEND_0 variable.
func RecordCount(f File, v Variable) ([]string, error) {
	if !v.RecordVarying() {
		return nil, nil
	}
	a, ok := v.Attributes().Get("DEPEND_0")
	if !ok {
		return nil, nil
	}
	dep0, ok := depName(a)
	if !ok {
		return nil, nil
	}
	dv, ok := f.Var(dep0)
	if !ok {
		return nil, nil // Depends reports this
	}
	if records(v) != records(dv) {
		return []string{fmt.Sprintf("%d records; DEPEND_0 %s has %d",
			records(v), dep0, records(dv))}, nil
	}
	return nil, nil
}

func fmtNum(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// rangeViolations returns the values in v (and their flat record
// indices) that fall on the wrong side of bound, excluding values that
// equal the fill value within floating-point tolerance. over selects
// values above the bound rather than below it.
func rangeViolations(v Variable, bound float64, fill float64, hasFill, over bool) (vals, idxs []string, err error) {
	data, err := v.Data()
	if err != nil {
		return nil, nil, err
	}
	for i, d := range data.Elements {
		if over && d <= bound || !over && d >= bound {
			continue
		}
		if hasFill && floats.EqualWithinAbsOrRel(d, fill, fillAbsTol, fillRelTol) {
			continue
		}
		vals = append(vals, fmtNum(d))
		idxs = append(idxs, strconv.Itoa(i))
	}
	return vals, idxs, nil
}

// typeRangeCheck returns a finding if the named attribute of v lies
// outside the representable range of v's data type.
func typeRangeCheck(v Variable, attr string) ([]string, error) {
	val, ok := v.Attributes().number(attr)
	if !ok {
		return nil, nil
	}
	min, err := GetMin(v.Type())
	if err != nil {
		return nil, err
	}
	max, err := GetMax(v.Type())
	if err != nil {
		return nil, err
	}
	if val < min || val > max {
		return []string{fmt.Sprintf("%s (%s) outside data range (%s,%s) for %s.",
			attr, fmtNum(val), fmtNum(min), fmtNum(max), v.Name())}, nil
	}
	return nil, nil
}

// ValidRange checks that all data values lie within VALIDMIN/VALIDMAX
// or equal FILLVAL, that VALIDMIN and VALIDMAX lie within the range of
// the data type, and that VALIDMIN does not exceed VALIDMAX.
func ValidRange(f File, v Variable) ([]string, error) {
	var errs []string
	attrs := v.Attributes()
	vmin, hasMin := attrs.number("VALIDMIN")
	vmax, hasMax := attrs.number("VALIDMAX")
	fill, hasFill := attrs.number("FILLVAL")
	if hasMin {
		vals, idxs, err := rangeViolations(v, vmin, fill, hasFill, false)
		if err != nil {
			return errs, err
		}
		if len(vals) > 0 {
			errs = append(errs, fmt.Sprintf("Value %s at index %s under VALIDMIN %s",
				strings.Join(vals, ", "), strings.Join(idxs, ", "), fmtNum(vmin)))
		}
		found, err := typeRangeCheck(v, "VALIDMIN")
		if err != nil {
			return errs, err
		}
		errs = append(errs, found...)
	}
	if hasMax {
		vals, idxs, err := rangeViolations(v, vmax, fill, hasFill, true)
		if err != nil {
			return errs, err
		}
		if len(vals) > 0 {
			errs = append(errs, fmt.Sprintf("Value %s at index %s over VALIDMAX %s",
				strings.Join(vals, ", "), strings.Join(idxs, ", "), fmtNum(vmax)))
		}
		found, err := typeRangeCheck(v, "VALIDMAX")
		if err != nil {
			return errs, err
		}
		errs = append(errs, found...)
	}
	if hasMin && hasMax && vmin > vmax {
		errs = append(errs, fmt.Sprintf("VALIDMIN > VALIDMAX for %s", v.Name()))
	}
	return errs, nil
}

// ValidScale checks that SCALEMIN and SCALEMAX lie within the range of
// the data type, and that SCALEMIN does not exceed SCALEMAX.
func ValidScale(f File, v Variable) ([]string, error) {
	var errs []string
	attrs := v.Attributes()
	for _, attr := range []string{"SCALEMIN", "SCALEMAX"} {
		found, err := typeRangeCheck(v, attr)
		if err != nil {
			return errs, err
		}
		errs = append(errs, found...)
	}
	smin, hasMin := attrs.number("SCALEMIN")
	smax, hasMax := attrs.number("SCALEMAX")
	if hasMin && hasMax && smin > smax {
		errs = append(errs, fmt.Sprintf("SCALEMIN > SCALEMAX for %s", v.Name()))
	}
	return errs, nil
}

// ValidPlotType checks that the DISPLAY_TYPE attribute matches the
// variable's dimensionality: time_series for variables with only a
// record axis, spectrogram otherwise.
func ValidPlotType(f File, v Variable) ([]string, error) {
	a, ok := v.Attributes().Get("DISPLAY_TYPE")
	if !ok {
		return nil, nil
	}
	var errs []string
	if len(v.Shape()) == 1 && a.Text() != "time_series" {
		errs = append(errs, fmt.Sprintf("%s: 1 dim variable with %s display type.",
			v.Name(), a.Text()))
	} else if len(v.Shape()) > 1 && a.Text() != "spectrogram" {
		errs = append(errs, fmt.Sprintf("%s: multi dim variable with %s display type.",
			v.Name(), a.Text()))
	}
	return errs, nil
}

// FieldNam checks that the FIELDNAM attribute is present and matches
// the variable name.
func FieldNam(f File, v Variable) ([]string, error) {
	a, ok := v.Attributes().Get("FIELDNAM")
	if !ok {
		return []string{fmt.Sprintf("%s: no FIELDNAM attribute.", v.Name())}, nil
	}
	if a.Text() != v.Name() {
		return []string{fmt.Sprintf("%s: FIELDNAM attribute %s does not match var name.",
			v.Name(), a.Text())}, nil
	}
	return nil, nil
}
