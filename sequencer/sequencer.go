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

package sequencer

import (
	"github.com/jetsetilly/lightspeed/curated"
	"github.com/jetsetilly/lightspeed/modfile"
)

// Capture receives the state of the voices on every tick. The calls for a
// tick are made before NextFrame() is called for that tick.
type Capture interface {
	SetPeriod(voice int, period int)
	SetVolume(voice int, volume int)
	NoteOn(voice int, instrument int, offset int, dmaRestart bool)
	SetSeqPos(pos int)
	SetSeqLoop(pos int)
	SetTempo(bpm int)
	SetSampleReplayRate(instrument int, rate int)
	SetSampleFetch(instrument int, offset int)
	NextFrame(hostSamples int) error
	Err() error
}

// Output receives the mixed audio of every tick as interleaved stereo
// samples.
type Output interface {
	WriteSamples(buf []int16) error
}

// DefaultRate is the sample rate of the mix if Options.Rate is zero.
const DefaultRate = 48000

// Options for the Sequencer.
type Options struct {
	// ignore Fxx tempo changes. Fxx speed changes are not affected
	NoSetTempo bool

	// sample rate of the mix
	Rate int
}

// Sequencer plays a MOD file.
type Sequencer struct {
	mod  *modfile.Module
	opts Options
	rate int

	tempo          int
	speed          int
	samplesPerTick int

	// position in the song
	tick  int
	row   int
	order int

	// position jump and pattern break of the current row. -1 if there is
	// no jump or break
	jumpOrder int
	breakRow  int

	// rows that have been played
	visited [modfile.MaxOrders][modfile.RowsPerPattern]bool

	// the sequence position that was last reported
	seqPos int

	// sequence position the music loops to
	loopOrder int

	channels [modfile.NumChannels]channel

	frames int
	buf    []int16
}

// NewSequencer is the preferred method of initialisation for the Sequencer
// type.
func NewSequencer(mod *modfile.Module, opts Options) *Sequencer {
	seq := &Sequencer{
		mod:  mod,
		opts: opts,
		rate: opts.Rate,
	}
	if seq.rate == 0 {
		seq.rate = DefaultRate
	}
	seq.reset()
	return seq
}

func (seq *Sequencer) reset() {
	seq.setTempo(125)
	seq.speed = 6
	seq.tick = 0
	seq.row = 0
	seq.order = 0
	seq.jumpOrder = -1
	seq.breakRow = -1
	seq.visited = [modfile.MaxOrders][modfile.RowsPerPattern]bool{}
	seq.seqPos = -1
	seq.loopOrder = 0
	seq.frames = 0
	for i := range seq.channels {
		seq.channels[i].reset()
	}
}

func (seq *Sequencer) setTempo(bpm int) {
	seq.tempo = bpm
	seq.samplesPerTick = seq.rate * 5 / (bpm * 2)
}

// Frames returns the number of ticks played.
func (seq *Sequencer) Frames() int {
	return seq.frames
}

// LoopOrder returns the sequence position the music loops to. Only valid
// after Run().
func (seq *Sequencer) LoopOrder() int {
	return seq.loopOrder
}

// Run plays the song from the start to the end. The Output can be nil.
// Returns the number of ticks played.
func (seq *Sequencer) Run(capture Capture, out Output) (int, error) {
	seq.reset()

	for seq.sequenceTick(capture) {
		seq.report(capture)

		n := seq.samplesPerTick
		if cap(seq.buf) < n*2 {
			seq.buf = make([]int16, n*2)
		}
		buf := seq.buf[:n*2]
		seq.mix(buf, capture)

		if out != nil {
			if err := out.WriteSamples(buf); err != nil {
				return seq.frames, curated.Errorf("sequencer: %v", err)
			}
		}

		if err := capture.NextFrame(n); err != nil {
			return seq.frames, err
		}
		seq.frames++
	}

	if seq.loopOrder < 0 || seq.loopOrder >= len(seq.mod.Orders) || !seq.visited[seq.loopOrder][0] {
		seq.loopOrder = 0
	}
	capture.SetSeqLoop(seq.loopOrder)

	return seq.frames, capture.Err()
}

// sequenceTick advances the song by one tick. Returns false if the end of the
// song has been reached, in which case nothing has been played.
func (seq *Sequencer) sequenceTick(capture Capture) bool {
	seq.tick--
	if seq.tick > 0 {
		for i := range seq.channels {
			seq.channels[i].tick()
		}
		return true
	}
	seq.tick = seq.speed

	if seq.order >= len(seq.mod.Orders) {
		seq.loopOrder = seq.mod.RestartPos
		return false
	}
	if seq.visited[seq.order][seq.row] {
		seq.loopOrder = seq.order
		return false
	}
	seq.visited[seq.order][seq.row] = true

	if seq.order != seq.seqPos {
		seq.seqPos = seq.order
		capture.SetSeqPos(seq.order)
	}

	pattern := seq.mod.Orders[seq.order]
	for i := range seq.channels {
		note := seq.mod.Note(pattern, seq.row, i)
		seq.channels[i].row(note, &seq.mod.Samples)
		seq.effect(note, capture)
	}

	// position of the next row
	if seq.jumpOrder >= 0 || seq.breakRow >= 0 {
		if seq.jumpOrder >= 0 {
			seq.order = seq.jumpOrder
		} else {
			seq.order++
		}
		seq.row = max(seq.breakRow, 0)
		seq.jumpOrder = -1
		seq.breakRow = -1
	} else {
		seq.row++
		if seq.row >= modfile.RowsPerPattern {
			seq.row = 0
			seq.order++
		}
	}

	return true
}

// effect handles the effects that change the speed or position of the song
func (seq *Sequencer) effect(note modfile.Note, capture Capture) {
	switch note.Effect {
	case effectSetSpeed:
		switch {
		case note.Param == 0:
			// F00 stops the song in some players. ignored
		case note.Param >= 0x20:
			if seq.opts.NoSetTempo {
				return
			}
			seq.setTempo(int(note.Param))
			capture.SetTempo(int(note.Param))
		default:
			seq.speed = int(note.Param)
			seq.tick = seq.speed
		}
	case effectJumpToPattern:
		seq.jumpOrder = int(note.Param)
	case effectPatternBrk:
		row := int(note.Param>>4)*10 + int(note.Param&0x0f)
		if row >= modfile.RowsPerPattern {
			row = 0
		}
		seq.breakRow = row
	}
}

// report the state of every voice to the capture
func (seq *Sequencer) report(capture Capture) {
	for v := range seq.channels {
		c := &seq.channels[v]

		if c.triggered {
			capture.NoteOn(v, c.sample, c.offset, true)
		} else if c.swapped {
			capture.NoteOn(v, c.sample, 0, false)
		}
		c.triggered = false
		c.swapped = false
		c.fetched = 0

		if c.period > 0 {
			capture.SetPeriod(v, c.outputPeriod())
			if c.sample > 0 {
				capture.SetSampleReplayRate(c.sample, palClock/c.outputPeriod())
			}
		}
		capture.SetVolume(v, c.outputVolume())
	}
}

// mix the audio of one tick. voices 0 and 3 are on the left and voices 1 and
// 2 are on the right, like the Amiga
func (seq *Sequencer) mix(out []int16, capture Capture) {
	clear(out)

	for v := range seq.channels {
		c := &seq.channels[v]
		if c.sample == 0 || c.period <= 0 {
			continue
		}

		id := c.sample
		smp := &seq.mod.Samples[id-1]
		if smp.Length == 0 {
			c.sample = 0
			continue
		}

		step := uint(uint64(palClock) << 16 / uint64(c.outputPeriod()) / uint64(seq.rate))
		vol := c.outputVolume() * 2
		loopStart := uint(smp.LoopStart) << 16
		loopLength := uint(smp.LoopLength) << 16

		// the whole sample is played once and then the loop is repeated
		end := uint(smp.Length) << 16
		if c.looped {
			end = loopStart + loopLength
		}

		side := 0
		if v == 1 || v == 2 {
			side = 1
		}

		pos := c.position
		for i := side; i < len(out); i += 2 {
			if pos >= end {
				if !smp.Looping() {
					c.sample = 0
					break
				}
				pos = loopStart + (pos-end)%loopLength
				end = loopStart + loopLength
				c.looped = true
			}
			idx := int(pos >> 16)
			c.fetched = max(c.fetched, idx)
			out[i] += int16(int(int8(smp.Data[idx])) * vol)
			pos += step
		}
		c.position = pos

		capture.SetSampleFetch(id, c.fetched)
	}
}
