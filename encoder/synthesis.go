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

// VoiceCode is the 2bit action of a voice in a normal command word.
type VoiceCode int

// List of valid VoiceCode values.
const (
	VoiceNone VoiceCode = iota

	// the loop part of the previous instrument is loaded. this always
	// happens in the frame after a DMA restart
	VoiceResetLength

	// the instrument is changed without restarting DMA
	VoicePlayWithoutNote

	// DMA is restarted with a new instrument
	VoicePlayInstrument
)

func (c VoiceCode) String() string {
	switch c {
	case VoiceNone:
		return "none"
	case VoiceResetLength:
		return "reset"
	case VoicePlayWithoutNote:
		return "swap"
	case VoicePlayInstrument:
		return "play"
	}
	return "unknown"
}

// VoiceCodeOf returns the code for the voice in a normal command word.
func VoiceCodeOf(word uint16, voice int) VoiceCode {
	return VoiceCode(word>>(8+voice*2)) & 3
}

// voiceCodes folds the DMA, reset and instrument masks of a frame into the
// voice code byte of a normal command word.
func voiceCodes(dma int, reset int, inst int) (int, bool) {
	var ret int
	for v := 0; v < NumVoices; v++ {
		c := (reset>>v&1)<<2 | (dma>>v&1)<<1 | inst>>v&1
		switch c {
		case 0:
		case 1:
			ret |= int(VoicePlayWithoutNote) << (v * 2)
		case 3:
			ret |= int(VoicePlayInstrument) << (v * 2)
		case 4:
			ret |= int(VoiceResetLength) << (v * 2)
		default:
			return c, false
		}
	}
	return ret, true
}

// forceLoopFrame marks the volume and period of every voice as changed at
// the loop frame. the replay routine reinitialises its state at the loop
// point and so needs explicit values. the value used is the most recent value
// reported at or before the loop frame.
//
// unlike the original converter, which forces all four voices, a voice that
// has no value by the loop frame is left alone. there is no value to give it
// and a forced zero would be written to a voice the music never uses
func (e *Encoder) forceLoopFrame() {
	for v := 0; v < NumVoices; v++ {
		ev := &e.events[v][e.frameLoop]

		for f := e.frameLoop; f >= 0; f-- {
			if e.events[v][f].volKnown {
				ev.volume = e.events[v][f].volume
				ev.volSet = true
				break
			}
		}

		for f := e.frameLoop; f >= 0; f-- {
			if e.events[v][f].perKnown {
				ev.period = e.events[v][f].period
				ev.perSet = true
				break
			}
		}
	}
}

// Synthesize is the second pass of the conversion. It creates the command
// word for every captured frame and builds the command and instrument
// dictionaries.
//
// After this function the command dictionary is sorted, padded to at least
// 255 codes and has the three escape codes registered.
func (e *Encoder) Synthesize() error {
	if e.err != nil {
		return e.err
	}
	if e.synthesized {
		return curated.Errorf(OutOfOrder, "Synthesize")
	}
	e.synthesized = true

	if e.params.Micro && e.sampleWithoutANote {
		return curated.Errorf(MicroSampleWithoutNote)
	}

	if e.frameCount > 0 {
		e.forceLoopFrame()
	}

	var prevDMA int
	var prevInstrument [NumVoices]int

	for f := 0; f < e.frameCount; f++ {
		var dma, volMask, instMask, perMask int

		for v := NumVoices - 1; v >= 0; v-- {
			ev := &e.events[v][f]

			if ev.instrument > 0 {
				value := instrumentValue(ev.instrument, ev.offset)
				if !e.instruments.IsValueRegistered(value) {
					code := e.instruments.RegisterValue(value)
					if e.params.Micro && code >= MaxMicroInstruments {
						return curated.Errorf(MicroInstrumentLimit, MaxMicroInstruments)
					}
					if code < 0 || code >= MaxInstruments {
						return curated.Errorf(TooManyInstruments, MaxInstruments)
					}
					e.addInstrument(code, ev.instrument, ev.offset)
				}

				if ev.dmaRestart {
					instMask |= 1 << v
					dma |= 1 << v
				} else if prevInstrument[v] != ev.instrument {
					instMask |= 1 << v
					prevInstrument[v] = ev.instrument
				}
			}

			if ev.volSet {
				volMask |= 1 << v
			}
			if ev.perSet {
				perMask |= 1 << v
				e.periods.RegisterValue(ev.period)
			}
		}

		reset := prevDMA &^ dma

		var word int
		if e.params.Micro {
			word = volMask<<8 | perMask<<4 | dma
		} else {
			codes, ok := voiceCodes(dma, reset, instMask)
			if !ok {
				return curated.Errorf(BadVoiceCode, codes, f)
			}
			word = codes<<8 | volMask<<4 | perMask
		}
		e.frames[f].word = uint16(word)

		code := e.cmds.RegisterValue(word)
		if code < 0 || code >= MaxCommands {
			return curated.Errorf(TooManyCommands, e.cmds.CodesCount(), MaxCommands)
		}

		prevDMA = dma
	}

	// most frequent command words are given the shortest codes
	e.cmds.SortValues()

	// escape codes must be beyond the first 255 codes so that the replay
	// routine can test for them in the extended code path only
	for e.cmds.CodesCount() < 255 {
		if err := e.cmds.AddDummyCodeEntry(); err != nil {
			return curated.Errorf("encoder: %v", err)
		}
	}

	var err error
	if e.escRewind, err = e.reserveEscape(); err != nil {
		return err
	}
	if e.escSetBPM, err = e.reserveEscape(); err != nil {
		return err
	}
	if e.escGetPos, err = e.reserveEscape(); err != nil {
		return err
	}

	if n := e.cmds.CodesCount(); n > MaxCommands {
		return curated.Errorf(TooManyCommands, n, MaxCommands)
	}

	if e.params.Micro && e.setBPMCount > 1 {
		return curated.Errorf(MicroTempoChange, e.setBPMCount)
	}

	e.logSampleUsage()

	return nil
}

func (e *Encoder) reserveEscape() (int, error) {
	v := e.cmds.FirstUnusedValue()
	if v < 0 {
		return -1, curated.Errorf(TooManyCommands, e.cmds.CodesCount()+1, MaxCommands)
	}
	e.cmds.RegisterValue(v)
	return v, nil
}

// verbose information about how the MOD samples are used
func (e *Encoder) logSampleUsage() {
	if !e.verbose.AllowLogging() {
		return
	}

	for i := range e.samples {
		smp := &e.samples[i]
		if e.usedMask&(1<<i) != 0 {
			logger.Logf(e.verbose, "encoder", "instrument #%2d: %d bytes, max replay rate = %dHz", i+1, smp.length(), smp.maxReplayRate)
			if smp.repLen > 2 && smp.length() > smp.repStart+smp.repLen {
				logger.Logf(e.verbose, "encoder warning", "instrument #%2d: sample goes past loop end (%d > %d)", i+1, smp.length(), smp.repStart+smp.repLen)
			}
			if smp.resampleMaxLen > 0 {
				cmpLen := smp.resampleMaxLen * (100 + shrinkMargin) / 100
				if smp.length() > cmpLen {
					logger.Logf(e.verbose, "encoder warning", "instrument #%2d: only %d sample bytes used (len=%d)", i+1, smp.resampleMaxLen, smp.length())
				}
			}
		} else if smp.length() > 2 && smp.resampleMaxLen == 0 {
			logger.Logf(e.verbose, "encoder warning", "instrument #%d is never used (len=%d)", i+1, smp.length())
		}
	}
}
