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

// Package istp checks variable and file metadata in self-describing
// scientific data files for compliance with the ISTP metadata standard
// (https://spdf.gsfc.nasa.gov/sp_use_of_cdf.html), which specifies the
// interpretation of the attributes that describe relationships between
// variables and their physical interpretation.
//
// The checks operate on the File and Variable interfaces so that any
// file container can be checked; package ncfile adapts NetCDF files.
// All checks return a list of human-readable findings (empty if the
// metadata is compliant). FillVal and Format infer and write
// ISTP-compliant FILLVAL and FORMAT attributes.
package istp

import (
	"time"

	"github.com/ctessum/sparse"
)

// Version is the version of this library.
const Version = "1.1.0"

// File is a named container of variables plus a set of global
// attributes. Implementations are not expected to be safe for
// concurrent use.
type File interface {
	// Path returns the path the file was opened from.
	Path() string

	// Attributes returns the global attributes of the file.
	Attributes() *AttrMap

	// Variables returns the names of all variables in the file,
	// in file order.
	Variables() []string

	// Var returns the named variable, reporting whether it exists.
	Var(name string) (Variable, bool)
}

// Variable is a single variable within a File.
type Variable interface {
	// Name returns the name of the variable within its file.
	Name() string

	// Type returns the variable data type.
	Type() TypeCode

	// Shape returns the dimension sizes of the variable. If the
	// variable is record-varying, the leading dimension is the
	// record count.
	Shape() []int

	// RecordVarying reports whether the leading dimension of the
	// variable indexes records.
	RecordVarying() bool

	// Attributes returns the attributes of the variable. The
	// returned map is live; setting or deleting entries changes
	// the variable metadata.
	Attributes() *AttrMap

	// Data returns the raw (unscaled) values of the variable as a
	// dense array of the variable's shape. It returns an error for
	// variables with no numeric representation.
	Data() (*sparse.DenseArray, error)

	// Times returns the decoded timestamps of the variable. It
	// returns an error if the variable is not one of the time
	// types.
	Times() ([]time.Time, error)

	// ElemLen returns the number of characters per element for the
	// character types, and 0 otherwise.
	ElemLen() int
}

// records returns the number of records in v.
func records(v Variable) int {
	s := v.Shape()
	if len(s) == 0 {
		return 0
	}
	return s[0]
}
