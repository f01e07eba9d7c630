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

package prefs_test

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/jetsetilly/lightspeed/prefs"
	"github.com/jetsetilly/lightspeed/test"
)

func newDisk(t *testing.T) (*prefs.Disk, string) {
	t.Helper()
	fn := filepath.Join(t.TempDir(), prefs.DefaultPrefsFile)
	dsk, err := prefs.NewDisk(fn)
	test.DemandSuccess(t, err)
	return dsk, fn
}

func cmpFile(t *testing.T, fn string, expected string) {
	t.Helper()
	data, err := os.ReadFile(fn)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, string(data), fmt.Sprintf("%s\n%s", prefs.WarningBoilerPlate, expected))
}

func TestBool(t *testing.T) {
	dsk, fn := newDisk(t)

	var v, w, x prefs.Bool
	test.ExpectSuccess(t, dsk.Add("test", &v))
	test.ExpectSuccess(t, dsk.Add("testB", &w))
	test.ExpectSuccess(t, dsk.Add("testC", &x))

	test.ExpectSuccess(t, v.Set(true))
	test.ExpectSuccess(t, w.Set("foo"))
	test.ExpectSuccess(t, x.Set("TRUE"))
	test.ExpectFailure(t, x.Set(10))

	test.DemandSuccess(t, dsk.Save())
	cmpFile(t, fn, "test :: true\ntestB :: false\ntestC :: true\n")
}

func TestInt(t *testing.T) {
	dsk, fn := newDisk(t)

	var v, w prefs.Int
	test.ExpectSuccess(t, dsk.Add("number", &v))
	test.ExpectSuccess(t, dsk.Add("numberB", &w))

	test.ExpectSuccess(t, v.Set(10))
	test.ExpectSuccess(t, w.Set("99"))

	test.DemandSuccess(t, dsk.Save())
	cmpFile(t, fn, "number :: 10\nnumberB :: 99\n")

	test.ExpectFailure(t, v.Set("---"))
	test.ExpectFailure(t, v.Set(1.0))
	test.ExpectEquality(t, v.Value(), 10)
}

func TestString(t *testing.T) {
	dsk, fn := newDisk(t)

	var v prefs.String
	test.ExpectSuccess(t, dsk.Add("foo", &v))
	test.ExpectSuccess(t, v.Set("bar"))
	test.DemandSuccess(t, dsk.Save())
	cmpFile(t, fn, "foo :: bar\n")

	test.ExpectFailure(t, dsk.Add("foo bar", &v))
}

func TestGeneric(t *testing.T) {
	dsk, fn := newDisk(t)

	var w, h int
	v := prefs.NewGeneric(
		func(s string) error {
			_, err := fmt.Sscanf(s, "%d,%d", &w, &h)
			return err
		},
		func() string {
			return fmt.Sprintf("%d,%d", w, h)
		},
	)
	test.ExpectSuccess(t, dsk.Add("generic", v))

	w = 1
	h = 2
	test.DemandSuccess(t, dsk.Save())
	cmpFile(t, fn, "generic :: 1,2\n")

	w = 0
	h = 0
	test.DemandSuccess(t, dsk.Load(false))
	test.ExpectEquality(t, w, 1)
	test.ExpectEquality(t, h, 2)
}

// a second Disk instance using the same file does not clobber the entries of
// the first
func TestSharedFile(t *testing.T) {
	dsk, fn := newDisk(t)

	var v prefs.Bool
	test.ExpectSuccess(t, dsk.Add("test", &v))
	test.ExpectSuccess(t, v.Set(true))
	test.DemandSuccess(t, dsk.Save())

	dsk, err := prefs.NewDisk(fn)
	test.DemandSuccess(t, err)

	var s prefs.String
	test.ExpectSuccess(t, dsk.Add("foo", &s))
	test.ExpectSuccess(t, s.Set("bar"))
	test.DemandSuccess(t, dsk.Save())

	cmpFile(t, fn, "foo :: bar\ntest :: true\n")
}

func TestLoad(t *testing.T) {
	dsk, fn := newDisk(t)

	var v prefs.Int
	test.ExpectSuccess(t, v.Set(4))
	test.ExpectSuccess(t, dsk.Add("jobs", &v))

	// missing file is created with the current values
	test.DemandSuccess(t, dsk.Load(true))
	cmpFile(t, fn, "jobs :: 4\n")

	test.ExpectSuccess(t, v.Set(0))
	test.DemandSuccess(t, dsk.Load(false))
	test.ExpectEquality(t, v.Value(), 4)

	// the command line takes priority over the file
	prefs.PushCommandLineStack("jobs::8")
	test.DemandSuccess(t, dsk.Load(false))
	test.ExpectEquality(t, v.Value(), 8)
	test.ExpectEquality(t, prefs.PopCommandLineStack(), "")

	// hooks are called after the value changes
	var hooked int
	v.SetHook(func(nv prefs.Value) error {
		hooked = nv.(int)
		return nil
	})
	test.ExpectSuccess(t, v.Set("16"))
	test.ExpectEquality(t, hooked, 16)
}

func TestNotPrefsFile(t *testing.T) {
	dsk, fn := newDisk(t)
	test.DemandSuccess(t, os.WriteFile(fn, []byte("hello world\n"), 0o600))

	var v prefs.Bool
	test.ExpectSuccess(t, dsk.Add("test", &v))
	test.ExpectFailure(t, dsk.Load(false))
}
