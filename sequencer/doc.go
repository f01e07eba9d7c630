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

// Package sequencer plays a MOD file tick by tick. On every tick it reports
// the state of the four voices to a Capture implementation, which is normally
// the LSP encoder.
//
// The sequencer also mixes the audio of each tick. The mix is used to find
// how much of each sample is actually played and can be written to an Output
// for a preview of the music as the sequencer hears it.
//
// The end of the music is found by remembering which rows have been played.
// The music ends when a row is about to be played for a second time. The
// sequence position of that row is the loop point of the music.
//
// Supported effects are the common ProTracker effects: portamento (1xx, 2xx,
// 3xx, 5xx), vibrato (4xx, 6xx), tremolo (7xx), sample offset (9xx), volume
// slide (Axx), position jump (Bxx), set volume (Cxx), pattern break (Dxx),
// the extended effects E1x, E2x, E9x, EAx, EBx, ECx and EDx, and speed and
// tempo (Fxx). Pattern loop (E6x) and pattern delay (EEx) are ignored.
package sequencer
