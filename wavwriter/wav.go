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

// Package wavwriter allows writing of audio data to disk as a WAV file. Note
// that audio data is buffered in memory in its entirity, and written to disk
// when EndMixing() is called.
//
// Samples are 16bit signed values. Stereo audio is supplied as interleaved
// left and right values, which is the format produced by the Paula emulation.
package wavwriter

import (
	"os"

	"github.com/jetsetilly/lightspeed/curated"
	"github.com/jetsetilly/lightspeed/logger"
	"github.com/youpy/go-wav"
)

// Sentinal error patterns.
const (
	BadChannels = "wavwriter: unsupported number of channels (%d)"
	OddBuffer   = "wavwriter: stereo buffer has an odd number of values"
)

// WavWriter implements the decoder.Output interface.
type WavWriter struct {
	filename string
	rate     int
	channels int
	buffer   []wav.Sample
}

// New is the preferred method of initialisation for the WavWriter type.
func New(filename string, rate int, channels int) (*WavWriter, error) {
	if channels != 1 && channels != 2 {
		return nil, curated.Errorf(BadChannels, channels)
	}

	aw := &WavWriter{
		filename: filename,
		rate:     rate,
		channels: channels,
		buffer:   make([]wav.Sample, 0),
	}

	return aw, nil
}

// WriteSamples implements the decoder.Output interface.
func (aw *WavWriter) WriteSamples(buf []int16) error {
	if aw.channels == 1 {
		for _, s := range buf {
			w := wav.Sample{}
			w.Values[0] = int(s)
			aw.buffer = append(aw.buffer, w)
		}
		return nil
	}

	if len(buf)%2 != 0 {
		return curated.Errorf(OddBuffer)
	}

	for i := 0; i < len(buf); i += 2 {
		w := wav.Sample{}
		w.Values[0] = int(buf[i])
		w.Values[1] = int(buf[i+1])
		aw.buffer = append(aw.buffer, w)
	}

	return nil
}

// NumSamples returns the number of samples per channel written so far.
func (aw *WavWriter) NumSamples() int {
	return len(aw.buffer)
}

// EndMixing writes the buffered audio to disk.
func (aw *WavWriter) EndMixing() (rerr error) {
	f, err := os.Create(aw.filename)
	if err != nil {
		return curated.Errorf("wavwriter: %v", err)
	}
	defer func() {
		err := f.Close()
		if err != nil {
			rerr = curated.Errorf("wavwriter: %v", err)
		}
	}()

	enc := wav.NewWriter(f, uint32(len(aw.buffer)), uint16(aw.channels), uint32(aw.rate), 16)
	if enc == nil {
		return curated.Errorf("wavwriter: %v", "bad parameters for wav encoding")
	}

	logger.Logf(logger.Allow, "wavwriter", "writing audio to %s", aw.filename)
	err = enc.WriteSamples(aw.buffer)
	if err != nil {
		return curated.Errorf("wavwriter: %v", err)
	}

	return nil
}

// Reset discards all buffered audio.
func (aw *WavWriter) Reset() {
	aw.buffer = aw.buffer[:0]
}
