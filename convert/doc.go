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

// Package convert runs a conversion of a MOD file to the LSP format. The
// Run() function drives the whole pipeline: the MOD file is parsed and played
// through the sequencer, the captured events are encoded and the score and
// sample bank files are written. Depending on the Params the replay source
// for the insane player is generated, previews are rendered and the packed
// size of the score is estimated.
//
// The files written by Run() are named after the MOD file. See the Names
// type.
//
// Preview() decodes a score and sample bank through the Paula emulation and
// can be used without a conversion.
//
// Batch() converts many MOD files concurrently.
package convert
