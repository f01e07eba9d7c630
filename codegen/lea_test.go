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

package codegen

import (
	"testing"

	"github.com/jetsetilly/lightspeed/test"
)

func TestLea(t *testing.T) {
	ops := func(offset int, rs int, rd int) []string {
		g := &generator{p: &Program{}}
		g.lea(offset, rs, rd, "")
		var s []string
		for _, l := range g.p.Lines {
			s = append(s, l.String())
		}
		return s
	}

	test.ExpectEquality(t, len(ops(0, 0, 0)), 0)
	test.ExpectEquality(t, ops(0, 0, 4)[0], "movea.l [a0 a4]")
	test.ExpectEquality(t, ops(100, 0, 4)[0], "lea [100(a0) a4]")
	test.ExpectEquality(t, ops(32767, 0, 0)[0], "lea [32767(a0) a0]")

	l := ops(40000, 0, 4)
	test.DemandEquality(t, len(l), 2)
	test.ExpectEquality(t, l[0], "movea.l [a0 a4]")
	test.ExpectEquality(t, l[1], "add.l [#40000 a4]")

	l = ops(40000, 4, 4)
	test.DemandEquality(t, len(l), 1)
	test.ExpectEquality(t, l[0], "add.l [#40000 a4]")
}
