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

// Package paula emulates the four DMA sound channels of the Amiga custom
// chip. It is precise enough to replay an LSP score exactly as the 68000
// replay routine would, and is used to verify converted music and to render
// previews.
//
// Each voice has a current and a next sample pointer. Writing the address
// and length registers only changes the next pointer. The current pointer is
// loaded from the next pointer when DMA starts on the voice and whenever the
// current sample has been played to its end. This is how the real chip loops
// samples and it is what the replay routine relies on.
//
// DMA control is written in two halves, just as the replay routine does it.
// The first write, without the SET bit, switches voices off. The second
// write, with the SET bit, switches voices on. A voice that is switched on
// when it was previously off restarts from its next pointer. See
// WriteDMAMask() and CommitDMA().
//
// Rendering is fixed point throughout so that output is bit exact and
// repeatable.
package paula
