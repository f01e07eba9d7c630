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

// Package codegen creates the "insane" replay routine for a score. The
// routine has one handler for every command word used by the music and
// reaches the handler through a jump table indexed by the command code. The
// handlers contain no branches.
//
// The routine is built as a Program, a list of lines made of an opcode and
// its operands. The Program is turned into 68000 assembly text by the
// Renderer, or examined by any other Visitor:
//
//	prg, err := codegen.Generate(enc, "music.lsmusic")
//	err = codegen.Render(w, prg)
//
// The generated source is specific to a single conversion. It contains the
// unique id, the instrument table and the stream offsets of the score.
package codegen
