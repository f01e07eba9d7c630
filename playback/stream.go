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

package playback

import (
	"encoding/binary"

	"github.com/jetsetilly/lightspeed/decoder"
)

// Stream is an io.Reader of 16bit little endian stereo PCM data. The audio is
// decoded a frame at a time as it is read.
type Stream struct {
	dec *decoder.Decoder
	r   decoder.Renderer

	samples []int16
	pending []byte

	// the error returned by the decoder. io.EOF at the end of the music
	err error
}

// NewStream is the preferred method of initialisation for the Stream type.
func NewStream(dec *decoder.Decoder, r decoder.Renderer) *Stream {
	return &Stream{
		dec: dec,
		r:   r,
	}
}

// Read implements the io.Reader interface.
func (s *Stream) Read(p []byte) (int, error) {
	n := 0
	for n < len(p) {
		if len(s.pending) == 0 {
			if s.err != nil {
				if n > 0 {
					return n, nil
				}
				return 0, s.err
			}

			c, err := s.dec.Step()
			if err != nil {
				s.err = err
				continue
			}

			if cap(s.samples) < c*2 {
				s.samples = make([]int16, c*2)
			}
			s.samples = s.samples[:c*2]
			s.r.Render(s.samples)

			s.pending = s.pending[:0]
			for _, v := range s.samples {
				s.pending = binary.LittleEndian.AppendUint16(s.pending, uint16(v))
			}
		}

		k := copy(p[n:], s.pending)
		s.pending = s.pending[k:]
		n += k
	}

	return n, nil
}
