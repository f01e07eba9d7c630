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

package convert

import (
	"path/filepath"
	"testing"

	"github.com/jetsetilly/lightspeed/prefs"
	"github.com/jetsetilly/lightspeed/test"
)

func TestPreferences(t *testing.T) {
	pth := filepath.Join(t.TempDir(), prefs.DefaultPrefsFile)

	p, err := newPreferences(pth)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, p.Params("a.mod"), Params{Filename: "a.mod"})

	test.ExpectSuccess(t, p.Shrink.Set(true))
	test.ExpectSuccess(t, p.Jobs.Set(3))
	test.DemandSuccess(t, p.Save())

	p, err = newPreferences(pth)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, p.Params("a.mod"), Params{Filename: "a.mod", Shrink: true})
	test.ExpectEquality(t, p.Jobs.Value(), 3)

	// preferences on the command line override the file
	prefs.PushCommandLineStack("convert.pack::true")
	test.DemandSuccess(t, p.Load())
	prefs.PopCommandLineStack()
	test.ExpectSuccess(t, p.Pack.Value())
}
