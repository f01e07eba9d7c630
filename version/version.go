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

// Package version reports the version of the program and the version of the
// LSP format it produces.
package version

import (
	"fmt"
	"runtime/debug"

	"github.com/jetsetilly/lightspeed/encoder"
)

// ApplicationName is the name to use when referring to the application.
const ApplicationName = "Lightspeed"

// number is set by the linker for release builds
var number string

// revision is the vcs revision, suffixed with "+dirty" if the source had been
// modified but not committed
var revision string

// version is the release number. "unreleased" means the program was built
// from a vcs checkout without a release number and "local" means there is no
// vcs information at all, which happens with "go run ."
var version string

// Version returns the version string, the revision string and whether this is a
// numbered release.
func Version() (string, string, bool) {
	return version, revision, number != "" && version == number
}

// Format returns the version of the LSP format written by the encoder.
func Format() string {
	return fmt.Sprintf("%d.%02d", encoder.MajorVersion, encoder.MinorVersion)
}

// Banner is the line printed when the program starts.
func Banner() string {
	v, r, release := Version()
	if release {
		return fmt.Sprintf("%s %s (LSP v%s)", ApplicationName, v, Format())
	}
	return fmt.Sprintf("%s %s [%s] (LSP v%s)", ApplicationName, v, r, Format())
}

func init() {
	var vcs bool
	var dirty bool

	if info, ok := debug.ReadBuildInfo(); ok {
		for _, s := range info.Settings {
			switch s.Key {
			case "vcs":
				vcs = true
			case "vcs.revision":
				revision = s.Value
			case "vcs.modified":
				dirty = s.Value == "true"
			}
		}
	}

	switch {
	case revision == "":
		revision = "no revision information"
	case dirty:
		revision = fmt.Sprintf("%s+dirty", revision)
	}

	switch {
	case number != "":
		version = number
	case vcs:
		version = "unreleased"
	default:
		version = "local"
	}
}
