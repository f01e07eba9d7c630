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

// Package modalflag is a wrapper for the flag package in the Go standard
// library. It handles program modes, each with its own set of flags.
//
// Arguments are supplied with NewArgs() and parsed with Parse(). Flags are
// added before each call to Parse():
//
//	md := modalflag.Modes{Output: os.Stdout}
//	md.NewArgs(os.Args[1:])
//	verbose := md.AddBool("v", false, "verbose output")
//	_, _ = md.Parse()
//
// Non-flag arguments are retrieved with RemainingArgs() or GetArg().
//
// A mode is a command line argument that puts the program into a different
// mode of operation, in the same way as the go command has the build, test
// and vet modes. Modes are added with AddSubModes(). The first mode in the
// list is the default mode, used when the first argument after the flags is
// not a mode:
//
//	md.AddSubModes("CONVERT", "PREVIEW", "VERIFY")
//
// Mode comparisons are case insensitive. After Parse() the selected mode is
// returned by Mode(). Each mode then calls NewMode(), adds its own flags and
// calls Parse() again, which continues from the arguments after the mode.
//
//	lightspeed -log VERIFY -micro song.mod
//
// In the example, -log is a flag of the top level and -micro is a flag of
// the VERIFY mode. Path() returns the series of modes that have been
// selected, which is useful for error messages.
//
// A -help flag is handled automatically. Parse() prints the flags and modes
// that are available at that level and returns ParseHelp.
package modalflag
