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

package sequencer_test

import (
	"fmt"
	"slices"
	"testing"

	"github.com/jetsetilly/lightspeed/encoder"
	"github.com/jetsetilly/lightspeed/modfile"
	"github.com/jetsetilly/lightspeed/sequencer"
	"github.com/jetsetilly/lightspeed/test"
)

var _ sequencer.Capture = (*encoder.Encoder)(nil)

// recorder implements the sequencer.Capture interface
type recorder struct {
	frame   int
	samples []int
	notes   []string
	periods map[int]int
	volumes map[int]int
	seqPos  []int
	loop    int
	tempos  []string
	fetch   map[int]int
	rates   map[int]int
}

func newRecorder() *recorder {
	return &recorder{
		periods: make(map[int]int),
		volumes: make(map[int]int),
		fetch:   make(map[int]int),
		rates:   make(map[int]int),
		loop:    -1,
	}
}

func (r *recorder) SetPeriod(voice int, period int) {
	if voice == 0 {
		r.periods[r.frame] = period
	}
}

func (r *recorder) SetVolume(voice int, volume int) {
	if voice == 0 {
		r.volumes[r.frame] = volume
	}
}

func (r *recorder) NoteOn(voice int, instrument int, offset int, dmaRestart bool) {
	r.notes = append(r.notes, fmt.Sprintf("%d: %d %d %d %v", r.frame, voice, instrument, offset, dmaRestart))
}

func (r *recorder) SetSeqPos(pos int) {
	r.seqPos = append(r.seqPos, pos)
}

func (r *recorder) SetSeqLoop(pos int) {
	r.loop = pos
}

func (r *recorder) SetTempo(bpm int) {
	r.tempos = append(r.tempos, fmt.Sprintf("%d: %d", r.frame, bpm))
}

func (r *recorder) SetSampleReplayRate(instrument int, rate int) {
	r.rates[instrument] = max(r.rates[instrument], rate)
}

func (r *recorder) SetSampleFetch(instrument int, offset int) {
	r.fetch[instrument] = max(r.fetch[instrument], offset)
}

func (r *recorder) NextFrame(hostSamples int) error {
	r.samples = append(r.samples, hostSamples)
	r.frame++
	return nil
}

func (r *recorder) Err() error {
	return nil
}

// output counts the samples written to it
type output struct {
	values int
	left   bool
	right  bool
}

func (o *output) WriteSamples(buf []int16) error {
	o.values += len(buf)
	for i, s := range buf {
		if s != 0 {
			if i%2 == 0 {
				o.left = true
			} else {
				o.right = true
			}
		}
	}
	return nil
}

func ramp(n int) []byte {
	d := make([]byte, n)
	for i := range d {
		d[i] = byte(i + 1)
	}
	return d
}

func run(t *testing.T, b *modfile.Builder, opts sequencer.Options) (*recorder, int) {
	t.Helper()
	mod, err := modfile.Parse(b.Bytes())
	test.DemandSuccess(t, err)

	r := newRecorder()
	frames, err := sequencer.NewSequencer(mod, opts).Run(r, nil)
	test.DemandSuccess(t, err)
	test.DemandEquality(t, frames, len(r.samples))
	return r, frames
}

func TestSinglePattern(t *testing.T) {
	b := modfile.NewBuilder("single")
	b.SetSample(1, ramp(64), 48, 0, 0)
	b.SetNote(0, 0, 0, modfile.Note{Sample: 1, Period: 428})

	r, frames := run(t, b, sequencer.Options{})

	// 64 rows at speed 6
	test.ExpectEquality(t, frames, 384)
	test.ExpectEquality(t, r.samples[0], 960)
	test.ExpectEquality(t, len(r.notes), 1)
	test.ExpectEquality(t, r.notes[0], "0: 0 1 0 true")
	test.ExpectEquality(t, r.periods[0], 428)
	test.ExpectEquality(t, r.volumes[0], 48)
	test.ExpectSuccess(t, slices.Equal(r.seqPos, []int{0}))
	test.ExpectEquality(t, r.loop, 0)

	// the sample does not loop and is played to the end in the first tick
	test.ExpectEquality(t, r.fetch[1], 63)
	test.ExpectEquality(t, r.rates[1], 3546895/428)
}

func TestTempo(t *testing.T) {
	b := modfile.NewBuilder("tempo")
	b.SetNote(0, 0, 1, modfile.Note{Effect: 0xf, Param: 150})
	b.SetNote(0, 1, 1, modfile.Note{Effect: 0xf, Param: 3})

	r, frames := run(t, b, sequencer.Options{})
	test.ExpectEquality(t, frames, 6+63*3)
	test.ExpectEquality(t, r.samples[0], 800)
	test.ExpectSuccess(t, slices.Equal(r.tempos, []string{"0: 150"}))

	r, frames = run(t, b, sequencer.Options{NoSetTempo: true})
	test.ExpectEquality(t, frames, 6+63*3)
	test.ExpectEquality(t, r.samples[0], 960)
	test.ExpectEquality(t, len(r.tempos), 0)
}

func TestPositionJump(t *testing.T) {
	b := modfile.NewBuilder("jump")
	b.Orders = []int{0, 1, 2}
	b.SetNote(2, 0, 0, modfile.Note{Effect: 0xb, Param: 1})

	r, frames := run(t, b, sequencer.Options{})
	test.ExpectEquality(t, frames, 64*6*2+6)
	test.ExpectSuccess(t, slices.Equal(r.seqPos, []int{0, 1, 2}))
	test.ExpectEquality(t, r.loop, 1)
}

func TestPatternBreak(t *testing.T) {
	b := modfile.NewBuilder("break")
	b.Orders = []int{0, 1}
	b.SetNote(0, 10, 2, modfile.Note{Effect: 0xd, Param: 0x32})

	r, frames := run(t, b, sequencer.Options{})

	// pattern break to row 32 of the next pattern
	test.ExpectEquality(t, frames, 11*6+32*6)
	test.ExpectEquality(t, r.loop, 0)
}

func TestRestartPosition(t *testing.T) {
	b := modfile.NewBuilder("restart")
	b.Orders = []int{0, 1}
	b.RestartPos = 1

	r, _ := run(t, b, sequencer.Options{})
	test.ExpectEquality(t, r.loop, 1)
}

func TestSampleOffset(t *testing.T) {
	b := modfile.NewBuilder("offset")
	b.SetSample(1, ramp(1024), 64, 0, 1024)
	b.SetNote(0, 0, 0, modfile.Note{Sample: 1, Period: 428, Effect: 0x9, Param: 2})

	r, _ := run(t, b, sequencer.Options{})
	test.ExpectEquality(t, r.notes[0], "0: 0 1 512 true")

	// looping sample. every byte is fetched eventually
	test.ExpectEquality(t, r.fetch[1], 1023)
}

func TestSwap(t *testing.T) {
	b := modfile.NewBuilder("swap")
	b.SetSample(1, ramp(256), 64, 0, 256)
	b.SetSample(2, ramp(256), 32, 0, 256)
	b.SetNote(0, 0, 0, modfile.Note{Sample: 1, Period: 428})
	b.SetNote(0, 1, 0, modfile.Note{Sample: 2})
	b.SetNote(0, 2, 0, modfile.Note{Sample: 2})

	r, _ := run(t, b, sequencer.Options{})
	test.DemandEquality(t, len(r.notes), 2)
	test.ExpectEquality(t, r.notes[0], "0: 0 1 0 true")
	test.ExpectEquality(t, r.notes[1], "6: 0 2 0 false")
	test.ExpectEquality(t, r.volumes[6], 32)
}

func TestVolumeSlide(t *testing.T) {
	b := modfile.NewBuilder("slide")
	b.SetSample(1, ramp(256), 32, 0, 256)
	b.SetNote(0, 0, 0, modfile.Note{Sample: 1, Period: 428, Effect: 0xa, Param: 0x20})

	r, _ := run(t, b, sequencer.Options{})
	test.ExpectEquality(t, r.volumes[0], 32)
	test.ExpectEquality(t, r.volumes[1], 34)
	test.ExpectEquality(t, r.volumes[5], 42)

	// the effect is not continued in the next row
	test.ExpectEquality(t, r.volumes[6], 42)
}

func TestNoteDelay(t *testing.T) {
	b := modfile.NewBuilder("delay")
	b.SetSample(1, ramp(256), 64, 0, 256)
	b.SetNote(0, 0, 3, modfile.Note{Sample: 1, Period: 428, Effect: 0xe, Param: 0xd3})

	r, _ := run(t, b, sequencer.Options{})
	test.ExpectSuccess(t, slices.Equal(r.notes, []string{"3: 3 1 0 true"}))
}

func TestMix(t *testing.T) {
	b := modfile.NewBuilder("mix")
	b.SetSample(1, ramp(256), 64, 0, 256)
	b.SetNote(0, 0, 0, modfile.Note{Sample: 1, Period: 428})

	mod, err := modfile.Parse(b.Bytes())
	test.DemandSuccess(t, err)

	var out output
	frames, err := sequencer.NewSequencer(mod, sequencer.Options{}).Run(newRecorder(), &out)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, out.values, frames*960*2)

	// voice 0 is on the left
	test.ExpectSuccess(t, out.left)
	test.ExpectFailure(t, out.right)
}

func TestEncoderCapture(t *testing.T) {
	b := modfile.NewBuilder("encoder")
	b.SetSample(1, ramp(256), 64, 0, 256)
	b.SetNote(0, 0, 0, modfile.Note{Sample: 1, Period: 428})
	b.SetNote(0, 4, 0, modfile.Note{Effect: 0xf, Param: 150})
	data := b.Bytes()

	mod, err := modfile.Parse(data)
	test.DemandSuccess(t, err)

	e := encoder.New(encoder.Params{}, data)
	smp := mod.Samples[0]
	test.DemandSuccess(t, e.SetSampleInfo(1, smp.Data, smp.Offset, smp.LoopStart, smp.LoopLength))
	e.SetOriginalSampleBank(mod.SampleRegion())

	frames, err := sequencer.NewSequencer(mod, sequencer.Options{}).Run(e, nil)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, e.FrameCount(), frames)
	test.ExpectEquality(t, e.FrameTempo(24), 150)
	test.ExpectEquality(t, e.Event(0, 0).Period, 428)
}
