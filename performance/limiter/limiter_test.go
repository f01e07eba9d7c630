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

package limiter_test

import (
	"testing"
	"time"

	"github.com/jetsetilly/lightspeed/performance/limiter"
	"github.com/jetsetilly/lightspeed/test"
)

func TestLimiter(t *testing.T) {
	lim := limiter.NewLimiter(200)
	defer lim.Stop()

	start := time.Now()
	for range 10 {
		lim.Wait()
	}

	// ten ticks at 200 a second take at least 50ms
	test.ExpectSuccess(t, time.Since(start) >= 45*time.Millisecond)

	lim.SetRate(1)
	test.ExpectEquality(t, lim.Rate(), 1.0)
	test.ExpectSuccess(t, !lim.HasWaited())
}
