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

package sequencer

// PAL clock of the Paula chip. A period of p plays at clock/p samples per
// second.
const palClock = 3546895

// fine tuning values are .12 fixed point and used to scale the note period.
// index 8 is no fine tuning. the values for index 0 to 7 are for a finetune
// of -8 to -1
var fineTuning = []int{
	4340, 4308, 4277, 4247, 4216, 4186, 4156, 4126,
	4096, 4067, 4037, 4008, 3979, 3951, 3922, 3894,
}

// the first half of the ProTracker sine table. the second half is the same
// magnitude with the sign flipped
var sineTable = []int{
	0, 24, 49, 74, 97, 120, 141, 161, 180, 197, 212, 224, 235, 244, 250, 253,
	255, 253, 250, 244, 235, 224, 212, 197, 180, 161, 141, 120, 97, 74, 49, 24,
}

// fineTuneIndex converts the 4bit finetune value of a sample to an index
// into the fineTuning table
func fineTuneIndex(fineTune int) int {
	return (fineTune&7 - fineTune&8 + 8) & 15
}
