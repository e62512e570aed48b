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
	"math"
	"time"

	"github.com/ctessum/sparse"
)

// epochBase is the zero point of the EPOCH and EPOCH16 types.
var epochBase = time.Date(0, time.January, 1, 0, 0, 0, 0, time.UTC)

// tt2000Base is the zero point of the TT2000 type: J2000 (2000-01-01
// 12:00:00) in Terrestrial Time.
var tt2000Base = time.Date(2000, time.January, 1, 12, 0, 0, 0, time.UTC)

// illegalTime is returned for time values that cannot be decoded,
// such as the -1e31 fill sentinel.
var illegalTime = time.Date(9999, time.December, 31, 23, 59, 59, 999999000, time.UTC)

// ttMinusTAI is the fixed offset between Terrestrial Time and TAI, in
// nanoseconds.
const ttMinusTAI = 32184 * int64(time.Millisecond)

// leapSeconds holds the UTC instants at which a leap second took
// effect since 2000, with the cumulative TAI-UTC offset from that
// instant on. Times before the first entry use the initial offset.
var leapSeconds = []struct {
	at     time.Time
	taiUTC int64 // seconds
}{
	{time.Date(1999, time.January, 1, 0, 0, 0, 0, time.UTC), 32},
	{time.Date(2006, time.January, 1, 0, 0, 0, 0, time.UTC), 33},
	{time.Date(2009, time.January, 1, 0, 0, 0, 0, time.UTC), 34},
	{time.Date(2012, time.July, 1, 0, 0, 0, 0, time.UTC), 35},
	{time.Date(2015, time.July, 1, 0, 0, 0, 0, time.UTC), 36},
	{time.Date(2017, time.January, 1, 0, 0, 0, 0, time.UTC), 37},
}

const msPerDay = 86400000

// EpochTime decodes an EPOCH value (milliseconds since 0000-01-01) to
// a UTC timestamp.
func EpochTime(ms float64) time.Time {
	if math.IsNaN(ms) || ms < 0 || ms > 4e14 { // year 0 through ~year 12600
		return illegalTime
	}
	days := int(ms / msPerDay)
	rem := ms - float64(days)*msPerDay
	return epochBase.AddDate(0, 0, days).Add(time.Duration(rem * float64(time.Millisecond)))
}

// Epoch16Time decodes an EPOCH16 value (seconds and picoseconds since
// 0000-01-01) to a UTC timestamp.
func Epoch16Time(sec, psec float64) time.Time {
	if math.IsNaN(sec) || sec < 0 || sec > 4e11 {
		return illegalTime
	}
	days := int(sec / 86400)
	rem := sec - float64(days)*86400
	return epochBase.AddDate(0, 0, days).
		Add(time.Duration(rem * float64(time.Second))).
		Add(time.Duration(psec / 1000))
}

// TT2000Time decodes a TT2000 value (nanoseconds since J2000 in
// Terrestrial Time) to a UTC timestamp.
func TT2000Time(ns int64) time.Time {
	if ns == -9223372036854775808 { // TT2000 fill sentinel
		return illegalTime
	}
	tt := tt2000Base.Add(time.Duration(ns))
	// TT = TAI + 32.184s; UTC = TAI - leap seconds.
	taiUTC := leapSeconds[0].taiUTC
	for _, ls := range leapSeconds {
		if tt.After(ls.at) {
			taiUTC = ls.taiUTC
		}
	}
	return tt.Add(-time.Duration(ttMinusTAI) - time.Duration(taiUTC)*time.Second)
}

// TimesFromData decodes the raw values in data, which must be of the
// given time type, to UTC timestamps. EPOCH16 data must have a
// trailing dimension of size 2 holding the (seconds, picoseconds)
// pairs.
func TimesFromData(t TypeCode, data *sparse.DenseArray) ([]time.Time, error) {
	if data == nil {
		return nil, nil
	}
	switch t {
	case EPOCH:
		out := make([]time.Time, len(data.Elements))
		for i, ms := range data.Elements {
			out[i] = EpochTime(ms)
		}
		return out, nil
	case EPOCH16:
		if len(data.Elements)%2 != 0 {
			return nil, fmt.Errorf("istp: EPOCH16 data has odd element count %d", len(data.Elements))
		}
		out := make([]time.Time, len(data.Elements)/2)
		for i := range out {
			out[i] = Epoch16Time(data.Elements[2*i], data.Elements[2*i+1])
		}
		return out, nil
	case TT2000:
		out := make([]time.Time, len(data.Elements))
		for i, ns := range data.Elements {
			out[i] = TT2000Time(int64(ns))
		}
		return out, nil
	default:
		return nil, fmt.Errorf("istp: %v is not a time type", t)
	}
}
