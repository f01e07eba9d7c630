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

package paths

import (
	"os"
	"path/filepath"
)

// the base path for all resources. only used directly by getBasePath()
const baseResourcePath = ".lightspeed"

// ResourcePath returns the resource joined to the base resource path. The
// existence of the resource is not checked.
func ResourcePath(resource ...string) string {
	p := make([]string, 0, len(resource)+1)
	p = append(p, getBasePath())
	p = append(p, resource...)
	return filepath.Join(p...)
}

// CreateResourcePath is like ResourcePath() but creates the directory the
// resource will be in.
func CreateResourcePath(resource ...string) (string, error) {
	pth := ResourcePath(resource...)
	if err := os.MkdirAll(filepath.Dir(pth), 0o700); err != nil {
		return "", err
	}
	return pth, nil
}

// getBasePath returns baseResourcePath, with the user's config directory
// prepended if baseResourcePath cannot be found in the current directory
func getBasePath() string {
	if _, err := os.Stat(baseResourcePath); err == nil {
		return baseResourcePath
	}

	cnf, err := os.UserConfigDir()
	if err != nil {
		return baseResourcePath
	}
	return filepath.Join(cnf, baseResourcePath[1:])
}
