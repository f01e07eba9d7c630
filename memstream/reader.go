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

package memstream

import (
	"github.com/jetsetilly/lightspeed/curated"
)

// ReadOverrun is returned when a read goes past the end of the data.
const ReadOverrun = "memstream: read of %d bytes at offset %d overruns data of %d bytes"

// Reader reads big-endian values from a byte slice.
type Reader struct {
	data []byte
	pos  int
}

// NewReader is the preferred method of initialisation for the Reader type.
func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

// Pos returns the current read position.
func (r *Reader) Pos() int {
	return r.pos
}

// Len returns the length of the underlying data.
func (r *Reader) Len() int {
	return len(r.data)
}

// Remaining returns the unread part of the data.
func (r *Reader) Remaining() []byte {
	return r.data[r.pos:]
}

func (r *Reader) take(n int) ([]byte, error) {
	if n < 0 || r.pos+n > len(r.data) {
		return nil, curated.Errorf(ReadOverrun, n, r.pos, len(r.data))
	}
	b := r.data[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}

// U8 reads a byte.
func (r *Reader) U8() (uint8, error) {
	b, err := r.take(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// U16 reads a big-endian 16 bit value.
func (r *Reader) U16() (uint16, error) {
	b, err := r.take(2)
	if err != nil {
		return 0, err
	}
	return uint16(b[0])<<8 | uint16(b[1]), nil
}

// S16 reads a big-endian signed 16 bit value.
func (r *Reader) S16() (int16, error) {
	v, err := r.U16()
	return int16(v), err
}

// U32 reads a big-endian 32 bit value.
func (r *Reader) U32() (uint32, error) {
	b, err := r.take(4)
	if err != nil {
		return 0, err
	}
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3]), nil
}

// Skip moves the read position forward.
func (r *Reader) Skip(n int) error {
	_, err := r.take(n)
	return err
}

// Seek moves the read position to an absolute offset.
func (r *Reader) Seek(pos int) error {
	if pos < 0 || pos > len(r.data) {
		return curated.Errorf(ReadOverrun, 0, pos, len(r.data))
	}
	r.pos = pos
	return nil
}
