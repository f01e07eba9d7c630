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

//go:build headless

package playback

import (
	"context"
	"io"

	"github.com/jetsetilly/lightspeed/curated"
)

// Available returns true if audio playback is possible.
func Available() bool {
	return false
}

// Play always fails in headless builds.
func Play(_ context.Context, _ io.Reader, _ int) error {
	return curated.Errorf(NotAvailable)
}
