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

package comparison

import (
	"fmt"
	"math"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/jetsetilly/lightspeed/curated"
)

// Sentinal error patterns.
const (
	NotWAV         = "comparison: %s is not a valid wav file"
	FormatMismatch = "comparison: formats differ (%s and %s)"
)

// Recording is the audio data of a single WAV file.
type Recording struct {
	Filename string
	Buffer   *audio.IntBuffer
	BitDepth int
}

func (rec *Recording) String() string {
	return fmt.Sprintf("%dHz %dch %dbit", rec.Buffer.Format.SampleRate, rec.Buffer.Format.NumChannels, rec.BitDepth)
}

// Frames returns the number of samples per channel.
func (rec *Recording) Frames() int {
	return len(rec.Buffer.Data) / rec.Buffer.Format.NumChannels
}

// Load reads the entirety of a WAV file.
func Load(filename string) (*Recording, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, curated.Errorf("comparison: %v", err)
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if dec == nil || !dec.IsValidFile() {
		return nil, curated.Errorf(NotWAV, filename)
	}

	// load all data at once
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, curated.Errorf("comparison: %v", err)
	}

	return &Recording{
		Filename: filename,
		Buffer:   buf,
		BitDepth: int(dec.BitDepth),
	}, nil
}

// Comparison of two recordings with the same format.
type Comparison struct {
	A *Recording
	B *Recording
}

// NewComparison is the preferred method of initialisation for the Comparison
// type.
func NewComparison(a *Recording, b *Recording) (*Comparison, error) {
	if a.String() != b.String() {
		return nil, curated.Errorf(FormatMismatch, a.String(), b.String())
	}
	return &Comparison{A: a, B: b}, nil
}

// Result of a comparison.
type Result struct {
	// number of samples per channel compared. this is the length of the
	// shorter recording
	Frames int

	// difference in length between the two recordings, in samples per
	// channel
	LengthDelta int

	// number of blocks compared and how many of them contain a difference
	Blocks          int
	DifferentBlocks int

	// the block and the sample in which the first difference was found.
	// both values are -1 if there is no difference
	FirstBlock  int
	FirstSample int

	// largest difference in any sample value
	MaxDelta int

	// root mean square of the difference between the recordings, relative to
	// full scale
	RMS float64
}

// Identical is true if the recordings have the same length and there is no
// difference larger than the tolerance.
func (r Result) Identical() bool {
	return r.LengthDelta == 0 && r.DifferentBlocks == 0
}

func (r Result) String() string {
	if r.Identical() {
		return fmt.Sprintf("%d samples compared: no differences (max delta %d)", r.Frames, r.MaxDelta)
	}
	return fmt.Sprintf("%d samples compared: %d of %d blocks differ, first at block %d (sample %d), max delta %d, rms %.5f, length delta %d",
		r.Frames, r.DifferentBlocks, r.Blocks, r.FirstBlock, r.FirstSample, r.MaxDelta, r.RMS, r.LengthDelta)
}

// Compare the two recordings in blocks of blockSize samples per channel.
// Sample values that differ by no more than the tolerance are considered to
// be equal.
func (cmp *Comparison) Compare(blockSize int, tolerance int) Result {
	if blockSize <= 0 {
		blockSize = 1
	}

	a := cmp.A.Buffer
	b := cmp.B.Buffer
	chans := a.Format.NumChannels

	res := Result{
		Frames:      min(cmp.A.Frames(), cmp.B.Frames()),
		LengthDelta: cmp.A.Frames() - cmp.B.Frames(),
		FirstBlock:  -1,
		FirstSample: -1,
	}
	res.Blocks = (res.Frames + blockSize - 1) / blockSize

	fullScale := 32768.0
	if cmp.A.BitDepth > 0 {
		fullScale = float64(int(1) << (cmp.A.BitDepth - 1))
	}

	var sum float64
	for blk := 0; blk < res.Blocks; blk++ {
		different := false
		end := min((blk+1)*blockSize, res.Frames)

		for s := blk * blockSize; s < end; s++ {
			for c := 0; c < chans; c++ {
				i := s*chans + c
				d := a.Data[i] - b.Data[i]
				if d < 0 {
					d = -d
				}
				res.MaxDelta = max(res.MaxDelta, d)

				f := float64(d) / fullScale
				sum += f * f

				if d > tolerance && !different {
					different = true
					if res.FirstSample == -1 {
						res.FirstBlock = blk
						res.FirstSample = s
					}
				}
			}
		}

		if different {
			res.DifferentBlocks++
		}
	}

	if res.Frames > 0 {
		res.RMS = math.Sqrt(sum / float64(res.Frames*chans))
	}

	return res
}
