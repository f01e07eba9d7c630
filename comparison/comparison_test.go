// This file is part of Lightspeed.
//
// Lightspeed is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Lightspeed is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Lightspeed.  If not, see <https://www.gnu.org/licenses/>.

package comparison_test

import (
	"path/filepath"
	"testing"

	"github.com/jetsetilly/lightspeed/comparison"
	"github.com/jetsetilly/lightspeed/curated"
	"github.com/jetsetilly/lightspeed/test"
	"github.com/jetsetilly/lightspeed/wavwriter"
)

func write(t *testing.T, name string, rate int, samples []int16) *comparison.Recording {
	t.Helper()
	fn := filepath.Join(t.TempDir(), name)
	w, err := wavwriter.New(fn, rate, 2)
	test.DemandSuccess(t, err)
	test.DemandSuccess(t, w.WriteSamples(samples))
	test.DemandSuccess(t, w.EndMixing())

	rec, err := comparison.Load(fn)
	test.DemandSuccess(t, err)
	return rec
}

func stereo(n int) []int16 {
	s := make([]int16, n*2)
	for i := range s {
		s[i] = int16((i%64)*512 - 16384)
	}
	return s
}

func TestRoundTrip(t *testing.T) {
	samples := stereo(100)
	rec := write(t, "a.wav", 48000, samples)
	test.ExpectEquality(t, rec.Frames(), 100)
	test.ExpectEquality(t, rec.Buffer.Format.SampleRate, 48000)
	test.ExpectEquality(t, rec.Buffer.Format.NumChannels, 2)
	test.ExpectEquality(t, rec.BitDepth, 16)
	for i, s := range samples {
		if !test.ExpectEquality(t, rec.Buffer.Data[i], int(s), i) {
			break
		}
	}
}

func TestIdentical(t *testing.T) {
	a := write(t, "a.wav", 48000, stereo(100))
	b := write(t, "b.wav", 48000, stereo(100))
	cmp, err := comparison.NewComparison(a, b)
	test.DemandSuccess(t, err)

	res := cmp.Compare(10, 0)
	test.ExpectSuccess(t, res.Identical())
	test.ExpectEquality(t, res.Blocks, 10)
	test.ExpectEquality(t, res.FirstBlock, -1)
	test.ExpectEquality(t, res.MaxDelta, 0)
	test.ExpectEquality(t, res.RMS, 0.0)
}

func TestDifference(t *testing.T) {
	s := stereo(100)
	s[2*35+1] += 100
	s[2*36] += 3

	a := write(t, "a.wav", 48000, stereo(100))
	b := write(t, "b.wav", 48000, s)
	cmp, err := comparison.NewComparison(a, b)
	test.DemandSuccess(t, err)

	res := cmp.Compare(10, 0)
	test.ExpectFailure(t, res.Identical())
	test.ExpectEquality(t, res.DifferentBlocks, 1)
	test.ExpectEquality(t, res.FirstBlock, 3)
	test.ExpectEquality(t, res.FirstSample, 35)
	test.ExpectEquality(t, res.MaxDelta, 100)

	// the small difference is within tolerance but the large one is not
	res = cmp.Compare(10, 5)
	test.ExpectEquality(t, res.DifferentBlocks, 1)

	res = cmp.Compare(10, 100)
	test.ExpectSuccess(t, res.Identical())
	test.ExpectEquality(t, res.MaxDelta, 100)
}

func TestLength(t *testing.T) {
	a := write(t, "a.wav", 48000, stereo(100))
	b := write(t, "b.wav", 48000, stereo(90))
	cmp, err := comparison.NewComparison(a, b)
	test.DemandSuccess(t, err)

	res := cmp.Compare(10, 0)
	test.ExpectFailure(t, res.Identical())
	test.ExpectEquality(t, res.Frames, 90)
	test.ExpectEquality(t, res.LengthDelta, 10)
	test.ExpectEquality(t, res.DifferentBlocks, 0)
}

func TestFormatMismatch(t *testing.T) {
	a := write(t, "a.wav", 48000, stereo(10))
	b := write(t, "b.wav", 44100, stereo(10))
	_, err := comparison.NewComparison(a, b)
	test.ExpectSuccess(t, curated.Is(err, comparison.FormatMismatch))
}

func TestNotWAV(t *testing.T) {
	_, err := comparison.Load(filepath.Join(t.TempDir(), "missing.wav"))
	test.ExpectFailure(t, err)
}
