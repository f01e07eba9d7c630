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

package test

import (
	"fmt"
	"strings"
)

// CompareWriter collects everything written to it so that output can be
// checked against an expected string.
type CompareWriter struct {
	strings.Builder
}

// Clear discards the collected output.
func (cw *CompareWriter) Clear() {
	cw.Reset()
}

// Compare returns true if the collected output is exactly s.
func (cw *CompareWriter) Compare(s string) bool {
	return cw.String() == s
}

// Difference describes the first line of the collected output that differs
// from s. Returns the empty string if the output is exactly s.
func (cw *CompareWriter) Difference(s string) string {
	if cw.Compare(s) {
		return ""
	}

	got := strings.Split(cw.String(), "\n")
	want := strings.Split(s, "\n")
	for i := range max(len(got), len(want)) {
		var g, w string
		if i < len(got) {
			g = got[i]
		}
		if i < len(want) {
			w = want[i]
		}
		if g != w {
			return fmt.Sprintf("line %d: %q does not equal %q", i+1, g, w)
		}
	}

	return "trailing output differs"
}
