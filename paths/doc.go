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

// Package paths contains functions to prepare paths to Lightspeed resources,
// such as the preferences file.
//
// The ResourcePath() function prepends the supplied resource with the
// appropriate config directory. For example:
//
//	p := paths.ResourcePath("preferences")
//
// The policy of ResourcePath() is simple: if the base resource path,
// ".lightspeed", is present in the program's current directory then that is
// the base path that will used. If it is not present then the user's config
// directory is used, as reported by os.UserConfigDir().
//
// In the example above, on a modern Linux system, the path returned will be:
//
//	/home/user/.config/lightspeed/preferences
//
// UniqueFilename() creates timestamped names for files written by the
// program that are not named after a MOD file, such as profiles.
package paths
