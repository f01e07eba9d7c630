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

package dictionary_test

import (
	"testing"

	"github.com/jetsetilly/lightspeed/curated"
	"github.com/jetsetilly/lightspeed/dictionary"
	"github.com/jetsetilly/lightspeed/test"
)

func TestBijection(t *testing.T) {
	d := dictionary.NewDictionary(1<<16, 765)

	for _, v := range []int{0x0311, 0x0000, 0x00ff, 0xc000} {
		c := d.RegisterValue(v)
		test.ExpectEquality(t, d.CodeFromValue(v), c)
		test.ExpectEquality(t, d.ValueFromCode(c), v)
	}
	test.ExpectEquality(t, d.CodesCount(), 4)

	// registering the same value again returns the same code and increments the count
	c := d.RegisterValue(0x00ff)
	test.ExpectEquality(t, c, 2)
	test.ExpectEquality(t, d.Count(0x00ff), 2)
	test.ExpectEquality(t, d.CodesCount(), 4)
	test.ExpectEquality(t, d.ValueUsedCount(), 5)

	// out of range and unknown values
	test.ExpectEquality(t, d.RegisterValue(-1), -1)
	test.ExpectEquality(t, d.RegisterValue(1<<16), -1)
	test.ExpectEquality(t, d.CodeFromValue(0x1234), -1)
	test.ExpectEquality(t, d.ValueFromCode(4), -1)
	test.ExpectFailure(t, d.IsValueRegistered(0x1234))
}

func TestFrequencyOrdering(t *testing.T) {
	d := dictionary.NewDictionary(256, 256)

	// value 10 once, 20 three times, 30 twice, 40 three times, 50 once
	for _, v := range []int{10, 20, 30, 20, 40, 30, 20, 40, 50, 40} {
		d.RegisterValue(v)
	}
	d.SortValues()

	for c := 1; c < d.CodesCount(); c++ {
		prev := d.Count(d.ValueFromCode(c - 1))
		cur := d.Count(d.ValueFromCode(c))
		test.ExpectSuccess(t, prev >= cur, "code", c)
	}

	// equal counts keep their registration order
	test.ExpectEquality(t, d.ValueFromCode(0), 20)
	test.ExpectEquality(t, d.ValueFromCode(1), 40)
	test.ExpectEquality(t, d.ValueFromCode(2), 30)
	test.ExpectEquality(t, d.ValueFromCode(3), 10)
	test.ExpectEquality(t, d.ValueFromCode(4), 50)

	// sorting does not change the bijection
	for c := 0; c < d.CodesCount(); c++ {
		test.ExpectEquality(t, d.CodeFromValue(d.ValueFromCode(c)), c)
	}
}

func TestEscapeReservation(t *testing.T) {
	d := dictionary.NewDictionary(1<<16, 765)
	for v := 0; v < 10; v++ {
		d.RegisterValue(v * 2)
	}
	d.SortValues()

	for d.CodesCount() < 255 {
		test.DemandSuccess(t, d.AddDummyCodeEntry())
	}
	test.ExpectEquality(t, d.CodesCount(), 255)
	test.ExpectSuccess(t, d.IsDummyCodeEntry(10))
	test.ExpectFailure(t, d.IsDummyCodeEntry(0))

	for range 3 {
		v := d.FirstUnusedValue()
		test.ExpectFailure(t, d.IsValueRegistered(v))
		c := d.RegisterValue(v)
		test.ExpectSuccess(t, c >= 255)
		test.ExpectFailure(t, d.IsDummyCodeEntry(c))
	}

	test.ExpectSuccess(t, d.CheckCapacity())
}

func TestCapacity(t *testing.T) {
	d := dictionary.NewDictionary(16, 4)
	for v := range 4 {
		d.RegisterValue(v)
	}
	test.ExpectSuccess(t, d.CheckCapacity())

	d.RegisterValue(4)
	err := d.CheckCapacity()
	test.ExpectSuccess(t, curated.Is(err, dictionary.CodeSpaceExhausted))

	full := dictionary.NewDictionary(2, 2)
	full.RegisterValue(0)
	full.RegisterValue(1)
	test.ExpectEquality(t, full.FirstUnusedValue(), -1)
	test.ExpectFailure(t, full.AddDummyCodeEntry())
}

func TestCodeSizes(t *testing.T) {
	test.ExpectEquality(t, dictionary.CodeSize(0), 1)
	test.ExpectEquality(t, dictionary.CodeSize(254), 1)
	test.ExpectEquality(t, dictionary.CodeSize(255), 2)
	test.ExpectEquality(t, dictionary.CodeSize(764), 3)

	test.ExpectEquality(t, dictionary.TableSize(258), 260)
	test.ExpectEquality(t, dictionary.TableSize(255), 256)
	test.ExpectEquality(t, dictionary.TableSize(765), 768)
}
