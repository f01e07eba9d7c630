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

package encoder

import (
	"github.com/jetsetilly/lightspeed/curated"
	"github.com/jetsetilly/lightspeed/logger"
)

// current returns the event for the voice in the current frame. Returns nil
// and records an error if the capture is not possible.
func (e *Encoder) current(voice int, what string) *event {
	if e.synthesized {
		e.fail(curated.Errorf(OutOfOrder, what))
		return nil
	}
	if voice < 0 || voice >= NumVoices {
		e.fail(curated.Errorf(BadEvent, "voice", voice, e.frameCount))
		return nil
	}
	if e.frameCount > e.frameMax {
		e.fail(curated.Errorf(FrameCapacity, e.frameMax))
		return nil
	}
	return &e.events[voice][e.frameCount]
}

// SetPeriod records the period of the voice for the current frame. The
// period is marked as changed only if it differs from the previous value.
func (e *Encoder) SetPeriod(voice int, period int) {
	ev := e.current(voice, "SetPeriod")
	if ev == nil {
		return
	}
	if period < MinPeriod || period >= 1<<PeriodBits {
		e.fail(curated.Errorf(BadEvent, "period", period, e.frameCount))
		return
	}
	ev.period = period
	ev.perSet = period != e.prevPeriod[voice]
	ev.perKnown = true
	e.prevPeriod[voice] = period
}

// SetVolume records the volume of the voice for the current frame. The
// volume is marked as changed only if it differs from the previous value.
func (e *Encoder) SetVolume(voice int, volume int) {
	ev := e.current(voice, "SetVolume")
	if ev == nil {
		return
	}
	if volume < 0 || volume > MaxVolume {
		e.fail(curated.Errorf(BadEvent, "volume", volume, e.frameCount))
		return
	}
	ev.volume = volume
	ev.volSet = volume != e.prevVolume[voice]
	ev.volKnown = true
	e.prevVolume[voice] = volume
}

// NoteOn records an instrument being played on the voice. The offset is the
// sample offset in bytes and must be a multiple of 256.
//
// If dmaRestart is false the instrument is changed without restarting the
// sample. This happens with some tracker effects. It is ignored if the
// instrument is the same as the previous instrument on the voice.
func (e *Encoder) NoteOn(voice int, instrument int, offset int, dmaRestart bool) {
	if voice < 0 || voice >= NumVoices {
		e.fail(curated.Errorf(BadEvent, "voice", voice, e.frameCount))
		return
	}

	if !dmaRestart {
		if instrument == e.prevInstrument[voice] {
			return
		}
		e.sampleWithoutANote = true
	}
	e.prevInstrument[voice] = instrument

	ev := e.current(voice, "NoteOn")
	if ev == nil {
		return
	}
	if instrument < 1 || instrument > NumSamples {
		e.fail(curated.Errorf(BadEvent, "instrument", instrument, e.frameCount))
		return
	}
	if offset < 0 || offset&0xff != 0 || offset>>8 > 0xff {
		e.fail(curated.Errorf(BadEvent, "sample offset", offset, e.frameCount))
		return
	}

	smp := &e.samples[instrument-1]
	if smp.length() == 0 {
		logger.Logf(e.verbose, "encoder warning", "playing an empty sample (#%d)", instrument)
		return
	}

	if offset > 0 {
		e.sampleOffsetUsed = true
	}
	ev.instrument = instrument
	ev.offset = offset
	ev.dmaRestart = dmaRestart
	e.usedMask |= 1 << (instrument - 1)
}

// SetSeqPos records the first frame at which a sequence position is reached.
// Subsequent visits to the same position are ignored.
func (e *Encoder) SetSeqPos(pos int) {
	if pos < 0 || pos >= MaxSeqPositions {
		e.fail(curated.Errorf(BadEvent, "sequence position", pos, e.frameCount))
		return
	}
	if e.seqPosFrame[pos] >= 0 && (pos != 0 || e.seqHighest >= 0) {
		return
	}

	if pos > e.seqHighest {
		e.seqHighest = pos
	}
	e.seqPosFrame[pos] = e.frameCount

	sec := e.hostSamples / HostRate
	logger.Logf(e.verbose, "encoder", "%02d:%02d | seq #%2d: frame %d", sec/60, sec%60, pos, e.frameCount)
}

// SetSeqLoop sets the loop point of the music to the first frame of the
// sequence position.
func (e *Encoder) SetSeqLoop(pos int) {
	if pos < 0 || pos >= MaxSeqPositions || e.seqPosFrame[pos] < 0 {
		e.fail(curated.Errorf(BadEvent, "loop position", pos, e.frameCount))
		return
	}
	e.frameLoop = e.seqPosFrame[pos]
	logger.Logf(e.verbose, "encoder", "loop, seq=%d (frame=%d)", pos, e.frameLoop)
}

// SetTempo records a change of tempo in the current frame. Calls with the
// current tempo are ignored.
func (e *Encoder) SetTempo(bpm int) {
	if bpm == e.bpm {
		return
	}
	if bpm < 1 || bpm > 255 {
		e.fail(curated.Errorf(BadEvent, "tempo", bpm, e.frameCount))
		return
	}
	if e.frameCount > e.frameMax {
		e.fail(curated.Errorf(FrameCapacity, e.frameMax))
		return
	}

	tickRate := bpm * 2 / 5
	e.frames[e.frameCount].bpm = bpm
	logger.Logf(e.verbose, "encoder", "set BPM to %d (%dHz)", bpm, tickRate)

	e.setBPMCount++
	e.bpm = bpm
	if tickRate < e.minTickRate {
		e.minTickRate = tickRate
	}
}

// NextFrame ends the current frame. The hostSamples argument is the number
// of samples at HostRate the frame lasted for and is only used for timing
// information.
//
// Returns an error if the frame capacity is exceeded or if any capture
// function failed during the frame.
func (e *Encoder) NextFrame(hostSamples int) error {
	if e.err != nil {
		return e.err
	}
	if e.synthesized {
		return curated.Errorf(OutOfOrder, "NextFrame")
	}
	if e.frameCount >= e.frameMax {
		e.fail(curated.Errorf(FrameCapacity, e.frameMax))
		return e.err
	}
	e.frameCount++
	e.hostSamples += hostSamples
	return nil
}
