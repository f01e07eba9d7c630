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

package wavwriter_test

import (
	"path/filepath"
	"testing"

	"github.com/jetsetilly/lightspeed/comparison"
	"github.com/jetsetilly/lightspeed/curated"
	"github.com/jetsetilly/lightspeed/test"
	"github.com/jetsetilly/lightspeed/wavwriter"
)

func TestChannels(t *testing.T) {
	_, err := wavwriter.New("out.wav", 48000, 3)
	test.ExpectSuccess(t, curated.Is(err, wavwriter.BadChannels))

	aw, err := wavwriter.New("out.wav", 48000, 2)
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, curated.Is(aw.WriteSamples([]int16{1, 2, 3}), wavwriter.OddBuffer))
	test.ExpectEquality(t, aw.NumSamples(), 0)
}

func TestWrite(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "out.wav")

	aw, err := wavwriter.New(fn, 48000, 2)
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, aw.WriteSamples([]int16{1, -1, 100, -100}))
	test.ExpectEquality(t, aw.NumSamples(), 2)
	test.DemandSuccess(t, aw.EndMixing())

	rec, err := comparison.Load(fn)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, rec.Frames(), 2)
	test.ExpectEquality(t, rec.String(), "48000Hz 2ch 16bit")

	aw.Reset()
	test.ExpectEquality(t, aw.NumSamples(), 0)
}
