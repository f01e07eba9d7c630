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

package packest_test

import (
	"math/rand/v2"
	"testing"

	"github.com/jetsetilly/lightspeed/packest"
	"github.com/jetsetilly/lightspeed/test"
)

func TestRepetitive(t *testing.T) {
	data := make([]byte, 16384)
	for i := range data {
		data[i] = byte(i % 4)
	}

	r, err := packest.NewReport("repetitive", data)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, r.Size, 16384)
	test.ExpectSuccess(t, r.Packed < 1024)
	test.ExpectSuccess(t, r.Ratio() < 10)
	test.ExpectSuccess(t, r.Zstd > 0 && r.Zstd < 1024)
}

func TestRandom(t *testing.T) {
	rnd := rand.New(rand.NewPCG(1, 2))
	data := make([]byte, 4096)
	for i := range data {
		data[i] = byte(rnd.Uint32())
	}

	p, err := packest.Estimate(data)
	test.DemandSuccess(t, err)

	// random data does not compress
	test.ExpectSuccess(t, p > 4000)

	z, err := packest.EstimateZstd(data)
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, z > 4000)
}

func TestEmpty(t *testing.T) {
	r, err := packest.NewReport("empty", nil)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, r.Ratio(), 0.0)
}
