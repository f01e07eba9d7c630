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
	"io"

	"github.com/jetsetilly/lightspeed/curated"
)

// Sentinal error patterns.
const (
	CapacityExceeded = "memstream: capacity of %d bytes exceeded"
	Misaligned       = "memstream: misaligned %d bit store at offset %d"
)

// DefaultCapacity is large enough for any LSP stream. The largest possible
// stream is far smaller than this because the frame count is bounded.
const DefaultCapacity = 16 * 1024 * 1024

// the amount the underlying buffer is extended by when a store goes past
// the end of the buffer
const growingSize = 64 * 1024

// Stream is an append-only big-endian byte buffer.
type Stream struct {
	buf      []byte
	capacity int
	err      error
}

// NewStream is the preferred method of initialisation for the Stream type. A
// capacity of zero or less means DefaultCapacity.
func NewStream(capacity int) *Stream {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Stream{capacity: capacity}
}

// Err returns the first error encountered by any write to the stream.
func (s *Stream) Err() error {
	return s.err
}

// Len returns the number of bytes in the stream.
func (s *Stream) Len() int {
	return len(s.buf)
}

// Cap returns the capacity of the stream.
func (s *Stream) Cap() int {
	return s.capacity
}

// Bytes returns the content of the stream. The returned slice is only valid
// until the next write.
func (s *Stream) Bytes() []byte {
	return s.buf
}

// Reset empties the stream and clears any error.
func (s *Stream) Reset() {
	s.buf = s.buf[:0]
	s.err = nil
}

func (s *Stream) reserve(n int) error {
	if s.err != nil {
		return s.err
	}
	if len(s.buf)+n > s.capacity {
		s.err = curated.Errorf(CapacityExceeded, s.capacity)
		return s.err
	}
	return nil
}

// Add8 appends a byte.
func (s *Stream) Add8(v uint8) error {
	if err := s.reserve(1); err != nil {
		return err
	}
	s.buf = append(s.buf, v)
	return nil
}

// Add16 appends a big-endian 16 bit value.
func (s *Stream) Add16(v uint16) error {
	if err := s.reserve(2); err != nil {
		return err
	}
	s.buf = append(s.buf, uint8(v>>8), uint8(v))
	return nil
}

// Add32 appends a big-endian 32 bit value.
func (s *Stream) Add32(v uint32) error {
	if err := s.reserve(4); err != nil {
		return err
	}
	s.buf = append(s.buf, uint8(v>>24), uint8(v>>16), uint8(v>>8), uint8(v))
	return nil
}

// Append adds the content of another stream.
func (s *Stream) Append(o *Stream) error {
	if o.err != nil {
		return o.err
	}
	if err := s.reserve(len(o.buf)); err != nil {
		return err
	}
	s.buf = append(s.buf, o.buf...)
	return nil
}

// Write implements the io.Writer interface. The write fails without adding
// anything if the capacity of the stream would be exceeded.
func (s *Stream) Write(p []byte) (int, error) {
	if err := s.reserve(len(p)); err != nil {
		return 0, err
	}
	s.buf = append(s.buf, p...)
	return len(p), nil
}

// Store8 writes a byte at an arbitrary offset. The stream grows if the offset
// is beyond the end of the stream.
func (s *Stream) Store8(v uint8, offset int) error {
	if s.err != nil {
		return s.err
	}
	if offset < 0 || offset >= s.capacity {
		s.err = curated.Errorf(CapacityExceeded, s.capacity)
		return s.err
	}
	if offset >= len(s.buf) {
		if offset >= cap(s.buf) {
			n := make([]byte, len(s.buf), min(offset+growingSize, s.capacity))
			copy(n, s.buf)
			s.buf = n
		}
		l := len(s.buf)
		s.buf = s.buf[:offset+1]
		clear(s.buf[l:])
	}
	s.buf[offset] = v
	return nil
}

// Store16 writes a big-endian 16 bit value at an even offset.
func (s *Stream) Store16(v uint16, offset int) error {
	if offset&1 != 0 {
		return curated.Errorf(Misaligned, 16, offset)
	}
	if err := s.Store8(uint8(v>>8), offset); err != nil {
		return err
	}
	return s.Store8(uint8(v), offset+1)
}

// Store32 writes a big-endian 32 bit value at an even offset.
func (s *Stream) Store32(v uint32, offset int) error {
	if offset&1 != 0 {
		return curated.Errorf(Misaligned, 32, offset)
	}
	if err := s.Store16(uint16(v>>16), offset); err != nil {
		return err
	}
	return s.Store16(uint16(v), offset+2)
}

// DeltaProcess replaces every byte with its difference from the previous
// byte. Used to test how well a stream would compress after delta coding.
func (s *Stream) DeltaProcess() {
	var cur uint8
	for i, v := range s.buf {
		s.buf[i] = v - cur
		cur = v
	}
}

// WriteTo implements the io.WriterTo interface.
func (s *Stream) WriteTo(w io.Writer) (int64, error) {
	if s.err != nil {
		return 0, s.err
	}
	n, err := w.Write(s.buf)
	return int64(n), err
}
