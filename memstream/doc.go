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

// Package memstream implements the growable big-endian byte buffers that the
// LSP format is assembled from, and a matching Reader used when parsing
// the format back.
//
// A Stream has an explicit capacity. Writes that would take the stream past
// its capacity fail with a CapacityExceeded error and the error is retained,
// so that a sequence of writes can be checked once with Err(). Reads past the
// end of a Reader fail with ReadOverrun.
package memstream
