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
	"github.com/jetsetilly/lightspeed/memstream"
)

// stream indexes in the normal layout
const (
	wordStream = 0
	byteStream = 1
)

// stream indexes in the micro layout. periods are first so that they are
// word aligned in the file
func microPeriodStream(v int) int     { return v }
func microCommandStream(v int) int    { return 4 + v }
func microVolumeStream(v int) int     { return 8 + v }
func microInstrumentStream(v int) int { return 12 + v }

// bits in a micro command byte
const (
	MicroVolume     = 0x80
	MicroPeriod     = 0x40
	MicroInstrument = 0x20

	// loop bookkeeping in bits 3 and 4. only used on voice 3
	MicroLoopMask    = 0x18
	MicroLoopBackup  = 2 << 3
	MicroLoopRestore = 3 << 3
)

// InstrumentStride is the size in bytes of an instrument table entry.
const InstrumentStride = 12

// StoreCode writes a command code to a stream in the variable length
// representation. A zero byte for every 255 units of the code followed by
// the remainder plus one.
func StoreCode(s *memstream.Stream, code int) error {
	for i := 0; i < code/255; i++ {
		if err := s.Add8(0); err != nil {
			return err
		}
	}
	return s.Add8(uint8(code%255 + 1))
}

// frameToSeq returns the sequence position that starts on the frame or -1
func (e *Encoder) frameToSeq(frame int) int {
	for i := 0; i < e.seqFinalCount; i++ {
		if e.seqPosFrame[i] == frame {
			return i
		}
	}
	return -1
}

// Export is the final pass of the conversion. The streams are created and
// the sample bank layout is fixed. The score and bank can be written after a
// successful call to Export().
func (e *Encoder) Export() error {
	if !e.synthesized || e.exported {
		return curated.Errorf(OutOfOrder, "Export")
	}
	e.exported = true

	e.seqFinalCount = 0
	if e.params.GetPos || e.params.SetPos {
		e.seqFinalCount = e.seqHighest + 1
	}

	var err error
	if e.params.Micro {
		err = e.exportMicro()
	} else {
		err = e.exportNormal()
	}
	if err != nil {
		return err
	}

	for _, s := range e.streams {
		if s.Err() != nil {
			return curated.Errorf("encoder: %v", s.Err())
		}
	}

	e.fixSampleLayout()

	return nil
}

func (e *Encoder) exportNormal() error {
	e.streams = []*memstream.Stream{memstream.NewStream(0), memstream.NewStream(0)}
	words := e.streams[wordStream]
	bytes := e.streams[byteStream]

	e.byteLoopPos = -1
	e.wordLoopPos = -1

	seqEnabled := e.params.GetPos || e.params.SetPos

	for f := 0; f < e.frameCount; f++ {
		if f == e.frameLoop {
			e.byteLoopPos = bytes.Len()
			e.wordLoopPos = words.Len()
		}

		if seqEnabled {
			if seq := e.frameToSeq(f); seq >= 0 {
				e.seqPosByte[seq] = bytes.Len()
				e.seqPosWord[seq] = words.Len()

				if e.params.GetPos {
					StoreCode(bytes, e.cmds.CodeFromValue(e.escGetPos))
					bytes.Add8(uint8(seq))
				}
			}
		}

		if e.frames[f].bpm != 0 && e.setBPMCount > 1 {
			StoreCode(bytes, e.cmds.CodeFromValue(e.escSetBPM))
			bytes.Add8(uint8(e.frames[f].bpm))
		}

		word := e.frames[f].word
		code := e.cmds.CodeFromValue(int(word))
		if code < 0 {
			return curated.Errorf(BadVoiceCode, word, f)
		}
		StoreCode(bytes, code)

		for v := NumVoices - 1; v >= 0; v-- {
			if word&(1<<(v+4)) != 0 {
				bytes.Add8(uint8(e.events[v][f].volume))
			}
		}

		for v := NumVoices - 1; v >= 0; v-- {
			if word&(1<<v) != 0 {
				words.Add16(uint16(e.events[v][f].period))
			}
		}

		// instrument offsets are relative to a cursor that follows the replay
		// routine's address register. the cursor starts twelve bytes before
		// the table because of the three longwords of state that precede it
		// and is advanced by six bytes by each instrument fetch
		cursor := -InstrumentStride
		for v := NumVoices - 1; v >= 0; v-- {
			if VoiceCodeOf(word, v)&2 == 0 {
				continue
			}
			ev := &e.events[v][f]
			id := e.instruments.CodeFromValue(instrumentValue(ev.instrument, ev.offset))
			if id < 0 {
				return curated.Errorf(BadEvent, "instrument", ev.instrument, f)
			}

			offset := id*InstrumentStride - cursor

			// an instrument set without a note points to the loop half of
			// the table entry
			if !ev.dmaRestart {
				offset += InstrumentStride / 2
			}

			words.Add16(uint16(int16(offset)))
			cursor += offset + InstrumentStride/2
		}
	}

	return StoreCode(bytes, e.cmds.CodeFromValue(e.escRewind))
}

func (e *Encoder) exportMicro() error {
	e.streams = make([]*memstream.Stream, MicroStreamCount)
	for i := range e.streams {
		e.streams[i] = memstream.NewStream(0)
	}

	for v := NumVoices - 1; v >= 0; v-- {
		for f := 0; f < e.frameCount; f++ {
			word := e.frames[f].word
			ev := &e.events[v][f]

			var cmd uint8
			if word&(1<<(v+8)) != 0 {
				cmd |= MicroVolume
			}
			if word&(1<<(v+4)) != 0 {
				cmd |= MicroPeriod
			}
			if word&(1<<v) != 0 {
				cmd |= MicroInstrument
			}

			// the replay backs up the stream pointers after a frame so the
			// backup command is placed on the frame before the loop
			if v == NumVoices-1 {
				if e.frameLoop > 0 && f == e.frameLoop-1 {
					cmd |= MicroLoopBackup
				}
				if f == e.frameCount-1 {
					cmd |= MicroLoopRestore
				}
			}

			e.streams[microCommandStream(v)].Add8(cmd)

			if cmd&MicroVolume != 0 {
				e.streams[microVolumeStream(v)].Add8(uint8(ev.volume))
			}

			if cmd&MicroPeriod != 0 {
				s := e.streams[microPeriodStream(v)]
				s.Add8(uint8(ev.period >> 8))
				s.Add8(uint8(ev.period))
			}

			if cmd&MicroInstrument != 0 {
				id := e.instruments.CodeFromValue(instrumentValue(ev.instrument, ev.offset))
				if id < 0 || id >= MaxMicroInstruments {
					return curated.Errorf(MicroInstrumentLimit, MaxMicroInstruments)
				}
				e.streams[microInstrumentStream(v)].Add8(uint8(id))
			}
		}
	}

	return nil
}
