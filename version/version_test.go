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

package version_test

import (
	"strings"
	"testing"

	"github.com/jetsetilly/lightspeed/test"
	"github.com/jetsetilly/lightspeed/version"
)

func TestBanner(t *testing.T) {
	test.ExpectEquality(t, version.Format(), "1.22")

	b := version.Banner()
	test.ExpectSuccess(t, strings.HasPrefix(b, version.ApplicationName+" "))
	test.ExpectSuccess(t, strings.HasSuffix(b, "(LSP v1.22)"))

	v, r, _ := version.Version()
	test.ExpectSuccess(t, v != "")
	test.ExpectSuccess(t, r != "")
}
