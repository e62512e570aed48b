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
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// A FileCheck checks one aspect of the metadata of a whole file.
type FileCheck func(f File) ([]string, error)

// fileChecks lists every file-level check, in the order CheckFile runs
// them.
var fileChecks = []FileCheck{
	Filename,
	TimeMonoton,
	Times,
}

// CheckFile runs all file-level checks on f, then all variable-level
// checks on every variable in f with each finding prefixed by the
// variable name. If a check fails to run, the findings gathered so far
// are returned along with the first error; the remaining checks are
// still run.
func CheckFile(f File) ([]string, error) {
	var errs []string
	var firstErr error
	for _, check := range fileChecks {
		found, err := check(f)
		errs = append(errs, found...)
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}
	for _, name := range f.Variables() {
		v, ok := f.Var(name)
		if !ok {
			continue
		}
		found, err := CheckVar(f, v)
		for _, e := range found {
			errs = append(errs, fmt.Sprintf("%s: %s", name, e))
		}
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return errs, firstErr
}

// Filename checks that the Logical_source and Logical_file_id global
// attributes match the actual file name.
func Filename(f File) ([]string, error) {
	var errs []string
	for _, a := range []string{"Logical_source", "Logical_file_id"} {
		if !f.Attributes().Has(a) {
			errs = append(errs, fmt.Sprintf("No %s in global attrs", a))
		}
	}
	if len(errs) > 0 {
		return errs, nil
	}
	fname := filepath.Base(f.Path())
	source, _ := f.Attributes().Get("Logical_source")
	fileID, _ := f.Attributes().Get("Logical_file_id")
	if !strings.HasPrefix(fname, source.Text()) {
		errs = append(errs, fmt.Sprintf("Logical_source %s doesn't match filename %s",
			source.Text(), fname))
	}
	// The last four characters are assumed to be the extension.
	base := fname
	if len(fname) >= 4 {
		base = fname[:len(fname)-4]
	}
	if base != fileID.Text() {
		errs = append(errs, fmt.Sprintf("Logical_file_id %s doesn't match filename %s",
			fileID.Text(), fname))
	}
	return errs, nil
}

// TimeMonoton checks that every time-typed variable is monotonically
// increasing. Each strictly decreasing value is reported with its
// 1-based record index.
func TimeMonoton(f File) ([]string, error) {
	var errs []string
	for _, name := range f.Variables() {
		v, ok := f.Var(name)
		if !ok || !v.Type().IsTimeType() {
			continue
		}
		times, err := v.Times()
		if err != nil {
			return errs, err
		}
		var idxs []string
		for i := 1; i < len(times); i++ {
			if times[i].Before(times[i-1]) {
				idxs = append(idxs, strconv.Itoa(i+1))
			}
		}
		if len(idxs) > 0 {
			errs = append(errs, fmt.Sprintf("%s: nonmonotonic time at record %s",
				name, strings.Join(idxs, ", ")))
		}
	}
	return errs, nil
}

var fileDateRE = regexp.MustCompile(`\d{8}`)

// Times checks that every time-typed variable only contains times on
// the date given in the file name (the first 8-digit run, YYYYMMDD).
func Times(f File) ([]string, error) {
	fname := filepath.Base(f.Path())
	m := fileDateRE.FindString(fname)
	if m == "" {
		return []string{fmt.Sprintf("Cannot parse date from filename %s", fname)}, nil
	}
	var errs []string
	for _, name := range f.Variables() {
		v, ok := f.Var(name)
		if !ok || !v.Type().IsTimeType() {
			continue
		}
		times, err := v.Times()
		if err != nil {
			return errs, err
		}
		seen := make(map[string]struct{})
		for _, t := range times {
			seen[t.UTC().Format("20060102")] = struct{}{}
		}
		switch {
		case len(seen) == 0:
			continue
		case len(seen) > 1:
			dates := make([]string, 0, len(seen))
			for d := range seen {
				dates = append(dates, d)
			}
			sort.Strings(dates)
			errs = append(errs, fmt.Sprintf("%s: multiple days %s",
				name, strings.Join(dates, ", ")))
		default:
			for d := range seen {
				if d != m {
					errs = append(errs, fmt.Sprintf("%s: date %s doesn't match file %s",
						name, d, fname))
				}
			}
		}
	}
	return errs, nil
}
