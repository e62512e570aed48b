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
	"testing"
	"time"
)

func TestFilename(t *testing.T) {
	f := NewMemFile("/data/thg_l2_mag_20200101_v01.cdf")

	errs, err := Filename(f)
	noErr(t, err)
	check(t, errs,
		[]string{"No Logical_source in global attrs"},
		[]string{"No Logical_file_id in global attrs"})

	f.Attributes().Set("Logical_source", StringAttr("thg_l2_mag"))
	f.Attributes().Set("Logical_file_id", StringAttr("thg_l2_mag_20200101_v01"))
	errs, err = Filename(f)
	noErr(t, err)
	check(t, errs)

	f.Attributes().Set("Logical_source", StringAttr("thg_l2_esa"))
	f.Attributes().Set("Logical_file_id", StringAttr("thg_l2_mag_20200102_v01"))
	errs, err = Filename(f)
	noErr(t, err)
	check(t, errs,
		[]string{"Logical_source thg_l2_esa doesn't match filename thg_l2_mag_20200101_v01.cdf"},
		[]string{"Logical_file_id thg_l2_mag_20200102_v01 doesn't match filename thg_l2_mag_20200101_v01.cdf"})
}

func TestTimeMonoton(t *testing.T) {
	t0 := time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)
	t1 := t0.Add(time.Hour)

	f := NewMemFile("test_20200101_v01.cdf")
	f.AddVar(NewMemVar("Epoch", EPOCH, true, 3).
		SetValues(epochMS(t0), epochMS(t1), epochMS(t0)))
	f.AddVar(NewMemVar("flux", REAL4, true, 3).SetValues(3, 2, 1))

	errs, err := TimeMonoton(f)
	noErr(t, err)
	check(t, errs, []string{"Epoch: nonmonotonic time at record 3"})

	f.AddVar(NewMemVar("Epoch", EPOCH, true, 3).
		SetValues(epochMS(t0), epochMS(t1), epochMS(t1)))
	errs, err = TimeMonoton(f)
	noErr(t, err)
	check(t, errs)
}

func TestTimes(t *testing.T) {
	day1 := time.Date(2020, time.January, 1, 10, 0, 0, 0, time.UTC)
	day2 := day1.AddDate(0, 0, 1)

	f := NewMemFile("test_20200101_v01.cdf")
	f.AddVar(NewMemVar("Epoch", EPOCH, true, 2).
		SetValues(epochMS(day1), epochMS(day1.Add(time.Hour))))
	errs, err := Times(f)
	noErr(t, err)
	check(t, errs)

	f.AddVar(NewMemVar("Epoch", EPOCH, true, 2).
		SetValues(epochMS(day1), epochMS(day2)))
	errs, err = Times(f)
	noErr(t, err)
	check(t, errs, []string{"Epoch: multiple days 20200101, 20200102"})

	f.AddVar(NewMemVar("Epoch", EPOCH, true, 1).SetValues(epochMS(day2)))
	errs, err = Times(f)
	noErr(t, err)
	check(t, errs, []string{"Epoch: date 20200102 doesn't match file test_20200101_v01.cdf"})

	undated := NewMemFile("test_vXX.cdf")
	errs, err = Times(undated)
	noErr(t, err)
	check(t, errs, []string{"Cannot parse date from filename test_vXX.cdf"})
}

func TestCheckFilePrefixesVarFindings(t *testing.T) {
	f := NewMemFile("/data/thg_l2_mag_20200101_v01.cdf")
	f.Attributes().Set("Logical_source", StringAttr("thg_l2_mag"))
	f.Attributes().Set("Logical_file_id", StringAttr("thg_l2_mag_20200101_v01"))
	v := NewMemVar("counts", REAL4, true, 10, 4)
	v.Attributes().Set("FIELDNAM", StringAttr("counts"))
	v.Attributes().Set("DEPEND_1", StringAttr("energy"))
	f.AddVar(v)

	errs, err := CheckFile(f)
	noErr(t, err)
	check(t, errs, []string{"counts: DEPEND_1 variable energy missing"})
}
