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
	"fmt"
	"strings"

	"github.com/jetsetilly/lightspeed/curated"
	"github.com/jetsetilly/lightspeed/encoder"
	"github.com/jetsetilly/lightspeed/logger"
	"github.com/jetsetilly/lightspeed/memstream"
)

// Sentinal error patterns.
const (
	NotLSP        = "decoder: not an LSP score (magic %#08x)"
	MagicMismatch = "decoder: score and sample bank do not match (%#08x and %#08x)"
	Truncated     = "decoder: truncated %s: %v"
	BadCode       = "decoder: %s at frame %d"
)

// half of an instrument table entry. the first half is the sample as it is
// started and the second half is the loop
type half struct {
	address uint32
	length  uint16
}

// SeqEntry is an entry in the sequence table of a normal score.
type SeqEntry struct {
	WordOffset int
	ByteOffset int
}

// Score is a parsed LSP score and the sample bank that goes with it.
type Score struct {
	Micro bool
	UID   uint32

	MajorVersion int
	MinorVersion int

	Flags uint16
	BPM   int

	// escape words. not used by the micro layout
	Rewind uint16
	SetBPM uint16
	GetPos uint16

	// number of frames in the music. the micro layout does not record the
	// number of frames and the value will be zero
	FrameCount int

	Instruments []encoder.Descriptor

	// the code table including the reserved zero entries. not used by the
	// micro layout
	Codes []uint16

	Seq []SeqEntry

	WordStreamSize int
	ByteLoop       int
	WordLoop       int

	halves []half

	// normal layout has two streams: the word stream and the byte stream.
	// the micro layout has sixteen streams in the order of the offset table
	streams [][]byte

	bank []byte
}

// Load parses the score and checks that the sample bank belongs to it.
func Load(score []byte, bank []byte) (*Score, error) {
	r := memstream.NewReader(score)

	sc := &Score{bank: bank}

	magic, err := r.U32()
	if err != nil {
		return nil, curated.Errorf(Truncated, "score", err)
	}

	switch magic {
	case encoder.MagicNormal:
	case encoder.MagicMicro:
		sc.Micro = true
	default:
		return nil, curated.Errorf(NotLSP, magic)
	}

	bankUID, err := memstream.NewReader(bank).U32()
	if err != nil {
		return nil, curated.Errorf(Truncated, "sample bank", err)
	}

	if sc.Micro {
		sc.UID = bankUID
		err = sc.parseMicro(r)
	} else {
		sc.UID, err = r.U32()
		if err != nil {
			return nil, curated.Errorf(Truncated, "score", err)
		}
		if sc.UID != bankUID {
			return nil, curated.Errorf(MagicMismatch, sc.UID, bankUID)
		}
		err = sc.parseNormal(r)
	}
	if err != nil {
		return nil, curated.Errorf(Truncated, "score", err)
	}

	return sc, nil
}

// fields common to both layouts
func (sc *Score) parseVersion(r *memstream.Reader) error {
	major, err := r.U8()
	if err != nil {
		return err
	}
	minor, err := r.U8()
	if err != nil {
		return err
	}
	sc.MajorVersion = int(major)
	sc.MinorVersion = int(minor)
	return nil
}

func (sc *Score) parseInstruments(r *memstream.Reader) error {
	n, err := r.U16()
	if err != nil {
		return err
	}

	sc.Instruments = make([]encoder.Descriptor, n)
	sc.halves = make([]half, n*2)
	for i := range sc.Instruments {
		d := &sc.Instruments[i]
		if d.Start, err = r.U32(); err != nil {
			return err
		}
		if d.Length, err = r.U16(); err != nil {
			return err
		}
		if d.LoopStart, err = r.U32(); err != nil {
			return err
		}
		if d.LoopLength, err = r.U16(); err != nil {
			return err
		}
		sc.halves[i*2] = half{address: d.Start, length: d.Length}
		sc.halves[i*2+1] = half{address: d.LoopStart, length: d.LoopLength}
	}
	return nil
}

func (sc *Score) parseMicro(r *memstream.Reader) error {
	if err := sc.parseVersion(r); err != nil {
		return err
	}

	bpm, err := r.U16()
	if err != nil {
		return err
	}
	sc.BPM = int(bpm)

	if err := sc.parseInstruments(r); err != nil {
		return err
	}

	var offsets [encoder.MicroStreamCount]uint32
	for i := range offsets {
		if offsets[i], err = r.U32(); err != nil {
			return err
		}
	}

	// streams have no size so each one runs to the end of the file
	data := r.Remaining()
	sc.streams = make([][]byte, encoder.MicroStreamCount)
	for i, o := range offsets {
		if int(o) > len(data) {
			return fmt.Errorf("stream %d starts beyond the end of the file", i)
		}
		sc.streams[i] = data[o:]
	}

	return nil
}

func (sc *Score) parseNormal(r *memstream.Reader) error {
	if err := sc.parseVersion(r); err != nil {
		return err
	}

	var err error
	if sc.Flags, err = r.U16(); err != nil {
		return err
	}
	bpm, err := r.U16()
	if err != nil {
		return err
	}
	sc.BPM = int(bpm)

	if sc.Rewind, err = r.U16(); err != nil {
		return err
	}
	if sc.SetBPM, err = r.U16(); err != nil {
		return err
	}
	if sc.GetPos, err = r.U16(); err != nil {
		return err
	}

	frames, err := r.U32()
	if err != nil {
		return err
	}
	sc.FrameCount = int(frames)

	if err := sc.parseInstruments(r); err != nil {
		return err
	}

	n, err := r.U16()
	if err != nil {
		return err
	}
	sc.Codes = make([]uint16, n)
	for i := range sc.Codes {
		if sc.Codes[i], err = r.U16(); err != nil {
			return err
		}
	}

	n, err = r.U16()
	if err != nil {
		return err
	}
	sc.Seq = make([]SeqEntry, n)
	for i := range sc.Seq {
		w, err := r.U32()
		if err != nil {
			return err
		}
		b, err := r.U32()
		if err != nil {
			return err
		}
		sc.Seq[i] = SeqEntry{WordOffset: int(w), ByteOffset: int(b)}
	}

	var v uint32
	if v, err = r.U32(); err != nil {
		return err
	}
	sc.WordStreamSize = int(v)
	if v, err = r.U32(); err != nil {
		return err
	}
	sc.ByteLoop = int(v)
	if v, err = r.U32(); err != nil {
		return err
	}
	sc.WordLoop = int(v)

	data := r.Remaining()
	if sc.WordStreamSize > len(data) {
		return fmt.Errorf("word stream of %d bytes is larger than the file", sc.WordStreamSize)
	}
	sc.streams = [][]byte{data[:sc.WordStreamSize], data[sc.WordStreamSize:]}

	return nil
}

// Bank returns the sample bank, including the unique id.
func (sc *Score) Bank() []byte {
	return sc.bank
}

func (sc *Score) String() string {
	s := strings.Builder{}
	if sc.Micro {
		s.WriteString("micro ")
	}
	s.WriteString(fmt.Sprintf("v%d.%02d %d BPM, %d instruments", sc.MajorVersion, sc.MinorVersion, sc.BPM, len(sc.Instruments)))
	if !sc.Micro {
		s.WriteString(fmt.Sprintf(", %d codes, %d frames", len(sc.Codes), sc.FrameCount))
	}
	return s.String()
}

// Log writes details of the score to the central logger.
func (sc *Score) Log(perm logger.Permission) {
	logger.Logf(perm, "decoder", "version: $%02x%02x", sc.MajorVersion, sc.MinorVersion)
	logger.Logf(perm, "decoder", "main BPM: %d", sc.BPM)
	logger.Logf(perm, "decoder", "LSP instruments: %d", len(sc.Instruments))
	for i, d := range sc.Instruments {
		logger.Logf(perm, "decoder", "LSP instrument #%3d : %08x|%04x|%08x|%04x", i, d.Start, d.Length, d.LoopStart, d.LoopLength)
	}
	if !sc.Micro {
		logger.Logf(perm, "decoder", "LSP codes: %d", len(sc.Codes))
	}
}
