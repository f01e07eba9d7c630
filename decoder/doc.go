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

// Package decoder reads the score and sample bank written by the encoder and
// plays them back on a sound chip, one frame at a time, in the same way as
// the Amiga replay routine. It is used to verify a conversion and to create
// the Amiga preview.
//
// The chip is anything that implements the Chip interface. In practice that
// is the Paula emulation found in the hardware/paula package:
//
//	sc, err := decoder.Load(score, bank)
//	pl := paula.NewPaula(encoder.HostRate)
//	dec, err := decoder.NewDecoder(sc, pl)
//	frames, err := dec.Render(pl, output)
//
// Both the normal and the micro layouts are supported. The layout is
// detected from the magic value at the start of the score.
package decoder
