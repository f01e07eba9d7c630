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

	"github.com/jetsetilly/lightspeed/curated"
	"github.com/jetsetilly/lightspeed/encoder"
	"github.com/jetsetilly/lightspeed/memstream"
)

// Chip is the sound chip driven by the decoder. The DMA control register is
// written in two halves. WriteDMAMask() switches off the voices in the mask
// and CommitDMA() switches on the voices in the mask.
type Chip interface {
	UploadChipMemory(data []byte, address int) error
	SetVolume(voice int, volume uint8)
	SetPeriod(voice int, period uint16)
	SetAddress(voice int, address uint32)
	SetLength(voice int, words uint16)
	WriteDMAMask(mask uint16)
	CommitDMA(mask uint16)
}

// Tracker implementations are notified at the end of every decoded frame.
// The word is the command word of the frame. For the micro layout the word
// is made from the command bytes of the four voices in the same way as the
// encoder makes it.
type Tracker interface {
	DecodedFrame(frame int, word uint16)
}

// Decoder plays a Score on a Chip.
type Decoder struct {
	score *Score
	chip  Chip

	// the addition of a tracker is not required
	tracker Tracker

	// continue from the loop point when the end of the music is reached
	looping bool

	frame int
	bpm   int
	ended bool

	// most recent sequence position reported by a getpos escape
	seqPos int

	// normal layout
	words *memstream.Reader
	bytes *memstream.Reader
	next  [encoder.NumVoices]half

	// micro layout
	streams [encoder.MicroStreamCount]*memstream.Reader
	backup  [encoder.MicroStreamCount]int
	reset   [encoder.NumVoices]half
	prevDMA uint16
}

// NewDecoder is the preferred method of initialisation for the Decoder type.
// The sample bank is uploaded to the chip at address zero.
func NewDecoder(score *Score, chip Chip) (*Decoder, error) {
	if err := chip.UploadChipMemory(score.bank, 0); err != nil {
		return nil, curated.Errorf("decoder: %v", err)
	}

	dec := &Decoder{
		score: score,
		chip:  chip,
	}
	dec.Rewind()

	return dec, nil
}

// SetTracker adds a Tracker implementation to the decoder.
func (dec *Decoder) SetTracker(tracker Tracker) {
	dec.tracker = tracker
}

// SetLooping sets whether the music restarts from the loop point when it
// ends. A looping decoder never returns io.EOF from Step().
func (dec *Decoder) SetLooping(looping bool) {
	dec.looping = looping
}

// Rewind returns the decoder to the start of the music. The state of the
// chip is not changed.
func (dec *Decoder) Rewind() {
	dec.frame = 0
	dec.bpm = dec.score.BPM
	dec.ended = false
	dec.seqPos = 0

	if dec.score.Micro {
		for i := range dec.streams {
			dec.streams[i] = memstream.NewReader(dec.score.streams[i])
			dec.backup[i] = 0
		}
		dec.reset = [encoder.NumVoices]half{}
		dec.prevDMA = 0
	} else {
		dec.words = memstream.NewReader(dec.score.streams[0])
		dec.bytes = memstream.NewReader(dec.score.streams[1])
		dec.next = [encoder.NumVoices]half{}
	}
}

// Frame returns the number of frames decoded so far.
func (dec *Decoder) Frame() int {
	return dec.frame
}

// BPM returns the current tempo.
func (dec *Decoder) BPM() int {
	return dec.bpm
}

// SeqPos returns the most recent sequence position reported by the score.
// Only scores created with get position support report sequence positions.
func (dec *Decoder) SeqPos() int {
	return dec.seqPos
}

// FrameSamples returns the number of samples at the host rate in a frame at
// the current tempo.
func (dec *Decoder) FrameSamples() int {
	return encoder.HostRate * 5 / (dec.bpm * 2)
}

// Step decodes the next frame and writes the result to the chip. Returns
// the number of host samples the frame lasts for.
//
// Returns io.EOF if the music has ended.
func (dec *Decoder) Step() (int, error) {
	if dec.ended {
		return 0, io.EOF
	}

	var word uint16
	var err error
	if dec.score.Micro {
		word, err = dec.microFrame()
	} else {
		if !dec.looping && dec.frame >= dec.score.FrameCount {
			dec.ended = true
			return 0, io.EOF
		}
		word, err = dec.normalFrame()
	}
	if err != nil {
		if err == io.EOF {
			dec.ended = true
		}
		return 0, err
	}

	if dec.tracker != nil {
		dec.tracker.DecodedFrame(dec.frame, word)
	}
	dec.frame++

	return dec.FrameSamples(), nil
}

// readCode reads a variable length code from the byte stream. The code is
// returned as an index into the code table, which has a reserved zero entry
// before every 255 codes.
func (dec *Decoder) readCode() (int, error) {
	var idx int
	for {
		b, err := dec.bytes.U8()
		if err != nil {
			return 0, curated.Errorf(Truncated, "byte stream", err)
		}
		idx |= int(b)
		if b != 0 {
			break
		}
		idx += 256
	}
	if idx >= len(dec.score.Codes) {
		return 0, curated.Errorf(BadCode, "code outside the code table", dec.frame)
	}
	return idx, nil
}

func (dec *Decoder) normalFrame() (uint16, error) {
	var word uint16

	// escape codes do not use a frame of their own
	for {
		idx, err := dec.readCode()
		if err != nil {
			return 0, err
		}
		word = dec.score.Codes[idx]

		switch word {
		case dec.score.Rewind:
			if !dec.looping {
				return 0, io.EOF
			}
			if err := dec.bytes.Seek(dec.score.ByteLoop); err != nil {
				return 0, curated.Errorf(Truncated, "byte stream", err)
			}
			if err := dec.words.Seek(dec.score.WordLoop); err != nil {
				return 0, curated.Errorf(Truncated, "word stream", err)
			}
			continue
		case dec.score.SetBPM:
			b, err := dec.bytes.U8()
			if err != nil {
				return 0, curated.Errorf(Truncated, "byte stream", err)
			}
			if b == 0 {
				return 0, curated.Errorf(BadCode, "zero tempo", dec.frame)
			}
			dec.bpm = int(b)
			continue
		case dec.score.GetPos:
			b, err := dec.bytes.U8()
			if err != nil {
				return 0, curated.Errorf(Truncated, "byte stream", err)
			}
			dec.seqPos = int(b)
			continue
		}
		break
	}

	for b := 7; b >= 4; b-- {
		if word&(1<<b) != 0 {
			vol, err := dec.bytes.U8()
			if err != nil {
				return 0, curated.Errorf(Truncated, "byte stream", err)
			}
			dec.chip.SetVolume(b-4, vol)
		}
	}

	for b := 3; b >= 0; b-- {
		if word&(1<<b) != 0 {
			per, err := dec.words.U16()
			if err != nil {
				return 0, curated.Errorf(Truncated, "word stream", err)
			}
			dec.chip.SetPeriod(b, per)
		}
	}

	// the instrument offset follows the address register of the replay
	// routine. see the encoder for the details
	ioff := -encoder.InstrumentStride
	var dma uint16

	for v := encoder.NumVoices - 1; v >= 0; v-- {
		switch encoder.VoiceCodeOf(word, v) {
		case encoder.VoiceNone:
			continue
		case encoder.VoiceResetLength:
			dec.chip.SetAddress(v, dec.next[v].address)
			dec.chip.SetLength(v, dec.next[v].length)
			continue
		}

		off, err := dec.words.S16()
		if err != nil {
			return 0, curated.Errorf(Truncated, "word stream", err)
		}
		ioff += int(off)

		play := encoder.VoiceCodeOf(word, v) == encoder.VoicePlayInstrument
		if play {
			dma |= 1 << v
			dec.chip.WriteDMAMask(dma)
		}

		const halfStride = encoder.InstrumentStride / 2
		id := ioff / halfStride
		if ioff < 0 || ioff%halfStride != 0 || id >= len(dec.score.halves) || (play && id+1 >= len(dec.score.halves)) {
			return 0, curated.Errorf(BadCode, "instrument offset outside the instrument table", dec.frame)
		}

		dec.chip.SetAddress(v, dec.score.halves[id].address)
		dec.chip.SetLength(v, dec.score.halves[id].length)
		if play {
			dec.next[v] = dec.score.halves[id+1]
		} else {
			dec.next[v] = half{}
		}

		ioff += halfStride
	}

	dec.chip.CommitDMA(dma)

	return word, nil
}

// indexes of the micro streams in the order of the offset table
func cmdStream(v int) int  { return v }
func volStream(v int) int  { return 4 + v }
func perStream(v int) int  { return 8 + v }
func instStream(v int) int { return 12 + v }

func (dec *Decoder) microFrame() (uint16, error) {
	var dma uint16
	var volMask, perMask uint16
	var backup, restore bool

	for v := 0; v < encoder.NumVoices; v++ {
		// the loop part of an instrument started in the previous frame
		if dec.prevDMA&(1<<v) != 0 {
			dec.chip.SetAddress(v, dec.reset[v].address)
			dec.chip.SetLength(v, dec.reset[v].length)
		}

		cmd, err := dec.streams[cmdStream(v)].U8()
		if err != nil {
			return 0, curated.Errorf(Truncated, "command stream", err)
		}

		if cmd&encoder.MicroVolume != 0 {
			vol, err := dec.streams[volStream(v)].U8()
			if err != nil {
				return 0, curated.Errorf(Truncated, "volume stream", err)
			}
			dec.chip.SetVolume(v, vol)
			volMask |= 1 << v
		}

		if cmd&encoder.MicroPeriod != 0 {
			per, err := dec.streams[perStream(v)].U16()
			if err != nil {
				return 0, curated.Errorf(Truncated, "period stream", err)
			}
			dec.chip.SetPeriod(v, per)
			perMask |= 1 << v
		}

		if cmd&encoder.MicroInstrument != 0 {
			id, err := dec.streams[instStream(v)].U8()
			if err != nil {
				return 0, curated.Errorf(Truncated, "instrument stream", err)
			}
			if int(id) >= len(dec.score.Instruments) {
				return 0, curated.Errorf(BadCode, "instrument outside the instrument table", dec.frame)
			}
			dma |= 1 << v
			h := dec.score.halves[int(id)*2]
			dec.chip.SetAddress(v, h.address)
			dec.chip.SetLength(v, h.length)
			dec.reset[v] = dec.score.halves[int(id)*2+1]
		}

		switch cmd & encoder.MicroLoopMask {
		case encoder.MicroLoopBackup:
			backup = true
		case encoder.MicroLoopRestore:
			restore = true
		}
	}

	dec.chip.WriteDMAMask(dma)
	dec.chip.CommitDMA(dma)
	dec.prevDMA = dma

	if backup {
		for i, s := range dec.streams {
			dec.backup[i] = s.Pos()
		}
	}

	if restore {
		if dec.looping {
			for i, s := range dec.streams {
				if err := s.Seek(dec.backup[i]); err != nil {
					return 0, curated.Errorf(Truncated, "micro stream", err)
				}
			}
		} else {
			// the frame is still played
			dec.ended = true
		}
	}

	return volMask<<8 | perMask<<4 | dma, nil
}
