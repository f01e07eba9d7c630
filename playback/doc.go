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

// Package playback plays a converted score through the host's audio device.
// The score is decoded and rendered by the Paula emulation a frame at a time as
// the audio device asks for more data.
//
// The audio device is accessed with the oto library. Building with the
// headless build tag removes the dependency, in which case Available() returns
// false and Play() always fails.
package playback
