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

package performance

// CalcFPS returns the number of frames decoded per second and how many times
// faster than real time that is. The bpm argument is the tempo of the music,
// which determines how many frames a second the replay routine is called.
func CalcFPS(numFrames int, seconds float64, bpm int) (fps float64, realtime float64) {
	if seconds <= 0 || bpm <= 0 {
		return 0, 0
	}
	fps = float64(numFrames) / seconds
	realtime = fps / (float64(bpm) * 2 / 5)
	return fps, realtime
}
