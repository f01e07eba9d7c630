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

package decoder

import (
	"io"
)

// Renderer produces the audio of a chip.
type Renderer interface {
	// Render fills buf with interleaved stereo samples and returns the
	// number of stereo samples.
	Render(buf []int16) int
}

// Output receives interleaved stereo samples at the host rate.
type Output interface {
	WriteSamples(buf []int16) error
}

// Render decodes frames until the end of the music, rendering the audio of
// each frame to the output. Returns the number of frames decoded.
//
// For a looping decoder the function only returns when the output returns
// an error.
func (dec *Decoder) Render(r Renderer, out Output) (int, error) {
	var buf []int16

	for {
		n, err := dec.Step()
		if err != nil {
			if err == io.EOF {
				return dec.frame, nil
			}
			return dec.frame, err
		}

		if cap(buf) < n*2 {
			buf = make([]int16, n*2)
		}
		buf = buf[:n*2]
		r.Render(buf)

		if out != nil {
			if err := out.WriteSamples(buf); err != nil {
				return dec.frame, err
			}
		}
	}
}
