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

package test_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jetsetilly/lightspeed/test"
)

func TestExpectFailure(t *testing.T) {
	test.ExpectFailure(t, false)
	test.ExpectFailure(t, errors.New("test"))
}

func TestExpectSuccess(t *testing.T) {
	test.ExpectSuccess(t, true)
	var err error
	test.ExpectSuccess(t, err)
	test.ExpectSuccess(t, nil)
}

func TestExpectEquality(t *testing.T) {
	test.ExpectEquality(t, 10, 5+5)
	test.ExpectEquality(t, true, true)
	test.ExpectEquality(t, true, !false)
}

func TestExpectInequality(t *testing.T) {
	test.ExpectInequality(t, 11, 5+5)
	test.ExpectInequality(t, true, false)
}

func TestExpectApproximate(t *testing.T) {
	test.ExpectApproximate(t, 10, 11, 0.1)
}

func TestDemand(t *testing.T) {
	test.DemandSuccess(t, true)
	test.DemandSuccess(t, nil)
	test.DemandEquality(t, "lsp", "ls"+"p")
}

func TestCompareWriter(t *testing.T) {
	cw := &test.CompareWriter{}
	fmt.Fprintf(cw, "one\ntwo\n")
	test.ExpectSuccess(t, cw.Compare("one\ntwo\n"))
	test.ExpectEquality(t, cw.Difference("one\ntwo\n"), "")
	test.ExpectEquality(t, cw.Difference("one\nthree\n"), `line 2: "two" does not equal "three"`)

	cw.Clear()
	test.ExpectSuccess(t, cw.Compare(""))
}
