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

// Package prefs holds typed preference values and saves them to disk.
//
// A preference is one of the Bool, String, Int or Generic types. Values are
// registered with a Disk under a key and are loaded and saved as a group:
//
//	var shrink prefs.Bool
//	dsk, _ := prefs.NewDisk(paths.ResourcePath(prefs.DefaultPrefsFile))
//	dsk.Add("convert.shrink", &shrink)
//	dsk.Load(true)
//
// The file on disk has one "key :: value" entry per line. Entries that are
// not registered with a Disk instance are preserved when the Disk is saved,
// so different parts of the program can share the same file.
//
// Values can also be supplied on the command line, as a string of the form
// "key::value; key::value". The string is pushed onto the command line stack
// with PushCommandLineStack() and takes priority over the value on disk the
// next time Load() is called.
package prefs
