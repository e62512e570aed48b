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

// epochMS encodes a timestamp as an EPOCH value (milliseconds since
// 0000-01-01). The span since year 0 overflows time.Duration, so the
// difference is taken in whole seconds.
func epochMS(t time.Time) float64 {
	return float64(t.Unix()-epochBase.Unix())*1000 + float64(t.Nanosecond())/1e6
}

// epoch16Sec encodes a timestamp as the seconds part of an EPOCH16
// value.
func epoch16Sec(t time.Time) float64 {
	return float64(t.Unix() - epochBase.Unix())
}

// tt2000NS encodes a timestamp as a TT2000 value (nanoseconds since
// J2000 in Terrestrial Time). taiUTC is the cumulative leap-second
// count at the given instant.
func tt2000NS(t time.Time, taiUTC int64) int64 {
	tt := t.Add(time.Duration(taiUTC)*time.Second + 32184*time.Millisecond)
	return tt.Sub(tt2000Base).Nanoseconds()
}

func TestEpochTime(t *testing.T) {
	want := time.Date(2020, time.January, 1, 0, 30, 0, 0, time.UTC)
	if have := EpochTime(epochMS(want)); !have.Equal(want) {
		t.Errorf("have %v, want %v", have, want)
	}
	for _, ms := range []float64{-1e31, -1, 5e14} {
		if have := EpochTime(ms); !have.Equal(illegalTime) {
			t.Errorf("EpochTime(%g): have %v, want illegal time", ms, have)
		}
	}
}

func TestEpoch16Time(t *testing.T) {
	base := time.Date(2020, time.January, 1, 12, 0, 0, 0, time.UTC)
	want := base.Add(500 * time.Millisecond)
	have := Epoch16Time(epoch16Sec(base), 5e11) // half a second of picoseconds
	if !have.Equal(want) {
		t.Errorf("have %v, want %v", have, want)
	}
	if have := Epoch16Time(-1e31, -1e31); !have.Equal(illegalTime) {
		t.Errorf("fill: have %v, want illegal time", have)
	}
}

func TestTT2000Time(t *testing.T) {
	tests := []struct {
		want   time.Time
		taiUTC int64
	}{
		// TAI-UTC was 32s until the end of 2005 and has been 37s
		// since 2017.
		{time.Date(2005, time.June, 1, 0, 0, 0, 0, time.UTC), 32},
		{time.Date(2020, time.January, 1, 0, 30, 0, 0, time.UTC), 37},
	}
	for _, test := range tests {
		have := TT2000Time(tt2000NS(test.want, test.taiUTC))
		if !have.Equal(test.want) {
			t.Errorf("have %v, want %v", have, test.want)
		}
	}
	if have := TT2000Time(-9223372036854775808); !have.Equal(illegalTime) {
		t.Errorf("fill: have %v, want illegal time", have)
	}
}

func TestTimesFromData(t *testing.T) {
	t0 := time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)
	t1 := t0.Add(time.Hour)

	v := NewMemVar("Epoch", EPOCH, true, 2).SetValues(epochMS(t0), epochMS(t1))
	times, err := v.Times()
	if err != nil {
		t.Fatal(err)
	}
	if len(times) != 2 || !times[0].Equal(t0) || !times[1].Equal(t1) {
		t.Errorf("have %v, want [%v %v]", times, t0, t1)
	}

	// EPOCH16 stores (seconds, picoseconds) pairs.
	v16 := NewMemVar("Epoch16", EPOCH16, true, 2, 2).
		SetValues(epoch16Sec(t0), 0, epoch16Sec(t1), 0)
	times, err = v16.Times()
	if err != nil {
		t.Fatal(err)
	}
	if len(times) != 2 || !times[0].Equal(t0) || !times[1].Equal(t1) {
		t.Errorf("have %v, want [%v %v]", times, t0, t1)
	}

	odd := NewMemVar("Epoch16", EPOCH16, true, 3).SetValues(1, 2, 3)
	if _, err := odd.Times(); err == nil {
		t.Error("expected error for odd EPOCH16 element count")
	}

	flux := NewMemVar("flux", REAL4, true, 2).SetValues(1, 2)
	if _, err := flux.Times(); err == nil {
		t.Error("expected error for non-time type")
	}
}
