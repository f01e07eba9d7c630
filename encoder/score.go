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
	"io"

	"github.com/jetsetilly/lightspeed/curated"
	"github.com/jetsetilly/lightspeed/dictionary"
	"github.com/jetsetilly/lightspeed/memstream"
)

// Magic values at the start of a score.
const (
	MagicNormal = 0x4c535031 // 'LSP1'
	MagicMicro  = 0x4c53506d // 'LSPm'
)

// Flags in the score header.
const (
	FlagGetPos = 0x0001
	FlagSetPos = 0x0002
)

// Descriptor is an entry in the instrument table of the score. Addresses are
// offsets from the start of the sample bank and lengths are in words.
type Descriptor struct {
	Start      uint32
	Length     uint16
	LoopStart  uint32
	LoopLength uint16
}

// Descriptors returns the instrument table. Only meaningful after Export()
// because the sample layout is fixed by Export().
func (e *Encoder) Descriptors() ([]Descriptor, error) {
	d := make([]Descriptor, e.instruments.CodesCount())
	for i := range d {
		if i >= len(e.table) {
			return nil, curated.Errorf(BadSample, 0, "instrument table is incomplete")
		}
		inst := e.table[i]
		smp := &e.samples[inst.sample-1]

		l := smp.length() - inst.offset
		if l < 2 || l > 0xffff*2 {
			return nil, curated.Errorf(BadSample, inst.sample, "played length is out of range")
		}

		d[i] = Descriptor{
			Start:      uint32(smp.bankStart + inst.offset),
			Length:     uint16(l / 2),
			LoopStart:  uint32(smp.bankStart + smp.repStart),
			LoopLength: uint16(smp.repLen / 2),
		}
	}
	return d, nil
}

// HeaderSize returns the size of the normal score without the streams. This
// is the number of bytes the generated replay routine skips to find the word
// stream.
func (e *Encoder) HeaderSize() int {
	size := 4 + 4 + 2 // magic, uid and version
	size += 2         // flags
	size += 2         // bpm
	size += 2 * 3     // escape codes
	size += 4         // frame count
	size += 2 + e.instruments.CodesCount()*InstrumentStride
	size += 2 + dictionary.TableSize(e.cmds.CodesCount())*2
	size += 2 // sequence count
	if e.params.SetPos {
		size += e.seqFinalCount * 8
	}
	size += 4 // word stream size
	size += 4 // byte stream loop
	size += 4 // word stream loop
	return size
}

// ScoreSize returns the size of the most recently written score.
func (e *Encoder) ScoreSize() int {
	return e.scoreSize
}

// BankSize returns the size of the sample bank, not including the unique id.
// Only meaningful after Export().
func (e *Encoder) BankSize() int {
	return e.bankSize
}

// WriteScore writes the score to the io.Writer.
func (e *Encoder) WriteScore(w io.Writer) (int64, error) {
	if !e.exported {
		return 0, curated.Errorf(OutOfOrder, "WriteScore")
	}

	descriptors, err := e.Descriptors()
	if err != nil {
		return 0, err
	}

	h := memstream.NewStream(0)

	if e.params.Micro {
		h.Add32(MagicMicro)
	} else {
		h.Add32(MagicNormal)
		h.Add32(e.uid)
	}
	h.Add8(MajorVersion)
	h.Add8(MinorVersion)

	if e.params.Micro {
		h.Add16(uint16(e.BPM()))
	} else {
		var flags uint16
		if e.params.GetPos {
			flags |= FlagGetPos
		}
		if e.params.SetPos {
			flags |= FlagSetPos
		}
		h.Add16(flags)
		h.Add16(uint16(e.BPM()))
		h.Add16(uint16(e.escRewind))
		h.Add16(uint16(e.escSetBPM))
		h.Add16(uint16(e.escGetPos))
		h.Add32(uint32(e.frameCount))
	}

	h.Add16(uint16(len(descriptors)))
	for _, d := range descriptors {
		h.Add32(d.Start)
		h.Add16(d.Length)
		h.Add32(d.LoopStart)
		h.Add16(d.LoopLength)
	}

	if e.params.Micro {
		var offsets [MicroStreamCount]int
		var offset int
		for i, s := range e.streams {
			offsets[i] = offset
			offset += s.Len()
		}

		// the offset table is ordered by the replay routine's register
		// usage and not by the order of the streams in the file
		for v := 0; v < NumVoices; v++ {
			h.Add32(uint32(offsets[microCommandStream(v)]))
		}
		for v := 0; v < NumVoices; v++ {
			h.Add32(uint32(offsets[microVolumeStream(v)]))
		}
		for v := 0; v < NumVoices; v++ {
			h.Add32(uint32(offsets[microPeriodStream(v)]))
		}
		for v := 0; v < NumVoices; v++ {
			h.Add32(uint32(offsets[microInstrumentStream(v)]))
		}
	} else {
		n := e.cmds.CodesCount()
		h.Add16(uint16(dictionary.TableSize(n)))
		for c := 0; c < n; c++ {
			if c%255 == 0 {
				h.Add16(0)
			}
			h.Add16(uint16(e.cmds.ValueFromCode(c)))
		}

		wordSize := e.streams[wordStream].Len()
		if e.params.SetPos {
			h.Add16(uint16(e.seqFinalCount))
			for i := 0; i < e.seqFinalCount; i++ {
				h.Add32(uint32(e.seqPosWord[i]))
				h.Add32(uint32(e.seqPosByte[i] + wordSize))
			}
		} else {
			h.Add16(0)
		}

		if wordSize&1 != 0 || wordSize/2 >= 0x10000 {
			return 0, curated.Errorf(memstream.CapacityExceeded, 0x20000)
		}
		h.Add32(uint32(wordSize))
		h.Add32(uint32(e.byteLoopPos))
		h.Add32(uint32(e.wordLoopPos))
	}

	for _, s := range e.streams {
		h.Append(s)
	}

	if h.Err() != nil {
		return 0, curated.Errorf("encoder: %v", h.Err())
	}

	n, err := h.WriteTo(w)
	if err != nil {
		return n, curated.Errorf("encoder: %v", err)
	}
	e.scoreSize = int(n)
	return n, nil
}

// WriteBank writes the sample bank to the io.Writer. The bank starts with
// the unique id followed by the used samples in the order of their MOD
// instrument number. If the original layout is being kept the sample region
// of the MOD file is written instead.
func (e *Encoder) WriteBank(w io.Writer) (int64, error) {
	if !e.exported {
		return 0, curated.Errorf(OutOfOrder, "WriteBank")
	}

	b := memstream.NewStream(0)
	b.Add32(e.uid)
	if e.params.KeepLayout {
		b.Write(e.originalBank)
	} else {
		for i := range e.samples {
			if e.usedMask&(1<<i) != 0 {
				b.Write(e.samples[i].data)
			}
		}
	}

	if b.Err() != nil {
		return 0, curated.Errorf("encoder: %v", b.Err())
	}

	n, err := b.WriteTo(w)
	if err != nil {
		return n, curated.Errorf("encoder: %v", err)
	}
	return n, nil
}
