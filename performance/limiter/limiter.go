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

// Package limiter paces a loop to a number of iterations per second. It is
// used to show the decoded frames of a score at the speed the music would
// play.
package limiter

import (
	"time"
)

// Limiter paces calls to Wait().
type Limiter struct {
	ticker *time.Ticker
	rate   float64
}

// NewLimiter is the preferred method of initialisation for the Limiter
// type. The rate is the number of calls to Wait() per second.
func NewLimiter(rate float64) *Limiter {
	lim := &Limiter{}
	lim.ticker = time.NewTicker(period(rate))
	lim.rate = rate
	return lim
}

func period(rate float64) time.Duration {
	if rate <= 0 {
		rate = 1
	}
	return time.Duration(float64(time.Second) / rate)
}

// SetRate changes the number of calls to Wait() per second.
func (lim *Limiter) SetRate(rate float64) {
	if rate == lim.rate {
		return
	}
	lim.rate = rate
	lim.ticker.Reset(period(rate))
}

// Rate returns the current rate.
func (lim *Limiter) Rate() float64 {
	return lim.rate
}

// Wait blocks until the next tick.
func (lim *Limiter) Wait() {
	<-lim.ticker.C
}

// HasWaited returns true if a tick has happened since the last call to
// Wait() or HasWaited(). It does not block.
func (lim *Limiter) HasWaited() bool {
	select {
	case <-lim.ticker.C:
		return true
	default:
		return false
	}
}

// Stop the limiter. It should not be used after it has been stopped.
func (lim *Limiter) Stop() {
	lim.ticker.Stop()
}
