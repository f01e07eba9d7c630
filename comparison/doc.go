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

// Package comparison compares the audio in two WAV files. It is used to
// compare the preview rendered by the MOD sequencer with the preview rendered
// by decoding the converted score through the Paula emulation.
//
// The two recordings are compared in blocks of samples. The size of a block is
// normally the length of a replay frame so that the report can say in which
// frame the audio first diverges.
//
// The two mixers are not expected to produce identical output. The tolerance
// argument to Compare() says how far apart two sample values can be before
// they are considered to be different.
package comparison
