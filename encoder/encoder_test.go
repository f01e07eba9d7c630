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

package encoder_test

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"
	"testing"

	"github.com/jetsetilly/lightspeed/curated"
	"github.com/jetsetilly/lightspeed/dictionary"
	"github.com/jetsetilly/lightspeed/encoder"
	"github.com/jetsetilly/lightspeed/memstream"
	"github.com/jetsetilly/lightspeed/test"
)

// the number of host samples in a frame at 125 BPM
const tick = encoder.HostRate * 5 / 250

var mod = []byte("M.K. this is not really a mod file")

// create an encoder with two looping samples of 64 bytes
func prepare(t *testing.T, params encoder.Params) *encoder.Encoder {
	t.Helper()
	e := encoder.New(params, mod)
	for i := 1; i <= 2; i++ {
		test.DemandSuccess(t, e.SetSampleInfo(i, make([]byte, 64), (i-1)*64, 0, 64))
	}
	e.SetOriginalSampleBank(make([]byte, 128))
	return e
}

// capture the frames of the scenario: voice 0 plays a note in the first
// frame and nothing happens in the second frame
func scenario(t *testing.T, e *encoder.Encoder) {
	t.Helper()
	e.SetPeriod(0, 428)
	e.SetVolume(0, 64)
	e.NoteOn(0, 1, 0, true)
	test.DemandSuccess(t, e.NextFrame(tick))
	test.DemandSuccess(t, e.NextFrame(tick))
}

func TestScenario(t *testing.T) {
	e := prepare(t, encoder.Params{})
	scenario(t, e)
	test.DemandSuccess(t, e.Synthesize())

	test.ExpectEquality(t, e.CommandWord(0), 0x0311)
	test.ExpectEquality(t, e.CommandWord(1), 0x0100)
	test.ExpectEquality(t, encoder.VoiceCodeOf(e.CommandWord(0), 0), encoder.VoicePlayInstrument)
	test.ExpectEquality(t, encoder.VoiceCodeOf(e.CommandWord(1), 0), encoder.VoiceResetLength)

	test.ExpectEquality(t, e.InstrumentCount(), 1)
	test.ExpectEquality(t, e.InstrumentCode(1, 0), 0)

	// dummy entries take the lowest unused values so the escapes follow
	rewind, setBPM, getPos := e.Escapes()
	test.ExpectEquality(t, rewind, 253)
	test.ExpectEquality(t, setBPM, 254)
	test.ExpectEquality(t, getPos, 255)

	cmds := e.Commands()
	test.ExpectEquality(t, cmds.CodesCount(), 258)
	for _, v := range []int{rewind, setBPM, getPos} {
		test.ExpectSuccess(t, cmds.CodeFromValue(v) >= 255)
	}
}

func TestStreams(t *testing.T) {
	e := prepare(t, encoder.Params{})
	scenario(t, e)
	test.DemandSuccess(t, e.Synthesize())
	test.DemandSuccess(t, e.Export())

	// period followed by the instrument offset. the offset of the first
	// instrument is twelve because the cursor starts at -12
	test.ExpectEquality(t, e.WordStreamSize(), 4)
	sizes := e.StreamSizes()
	test.DemandEquality(t, len(sizes), 2)

	// code 0, volume, code 1 and the rewind code which is extended
	test.ExpectEquality(t, sizes[1], 5)

	score := &bytes.Buffer{}
	n, err := e.WriteScore(score)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, int(n), e.HeaderSize()+4+5)
	test.ExpectEquality(t, e.ScoreSize(), int(n))

	data := score.Bytes()
	test.ExpectSuccess(t, bytes.Equal(data[len(data)-9:], []byte{0x01, 0xac, 0x00, 0x0c, 1, 64, 2, 0, 1}))

	r := memstream.NewReader(data)
	magic, _ := r.U32()
	test.ExpectEquality(t, magic, encoder.MagicNormal)
	uid, _ := r.U32()
	test.ExpectEquality(t, uid, e.UID())
	major, _ := r.U8()
	minor, _ := r.U8()
	test.ExpectEquality(t, major, encoder.MajorVersion)
	test.ExpectEquality(t, minor, encoder.MinorVersion)
	flags, _ := r.U16()
	test.ExpectEquality(t, flags, 0)
	bpm, _ := r.U16()
	test.ExpectEquality(t, bpm, 125)
	r.Skip(6)
	frames, _ := r.U32()
	test.ExpectEquality(t, frames, 2)
	instruments, _ := r.U16()
	test.ExpectEquality(t, instruments, 1)

	start, _ := r.U32()
	test.ExpectEquality(t, start, 4)
	length, _ := r.U16()
	test.ExpectEquality(t, length, 32)
	loopStart, _ := r.U32()
	test.ExpectEquality(t, loopStart, 4)
	loopLength, _ := r.U16()
	test.ExpectEquality(t, loopLength, 32)

	tableSize, _ := r.U16()
	test.ExpectEquality(t, tableSize, 260)

	bank := &bytes.Buffer{}
	n, err = e.WriteBank(bank)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, n, int64(4+64))
	test.ExpectEquality(t, binary.BigEndian.Uint32(bank.Bytes()), e.UID())
}

func TestMicroStreams(t *testing.T) {
	e := prepare(t, encoder.Params{Micro: true})
	scenario(t, e)
	test.DemandSuccess(t, e.Synthesize())
	test.ExpectEquality(t, e.CommandWord(0), 0x0111)
	test.ExpectEquality(t, e.CommandWord(1), 0x0000)
	test.DemandSuccess(t, e.Export())

	sizes := e.StreamSizes()
	test.DemandEquality(t, len(sizes), encoder.MicroStreamCount)

	// period, command, volume and instrument streams of voice 0
	test.ExpectEquality(t, sizes[0], 2)
	test.ExpectEquality(t, sizes[4], 2)
	test.ExpectEquality(t, sizes[8], 1)
	test.ExpectEquality(t, sizes[12], 1)

	// command stream of voice 3 carries the end of music marker
	test.ExpectEquality(t, sizes[7], 2)

	score := &bytes.Buffer{}
	_, err := e.WriteScore(score)
	test.DemandSuccess(t, err)

	r := memstream.NewReader(score.Bytes())
	magic, _ := r.U32()
	test.ExpectEquality(t, magic, encoder.MagicMicro)
	r.Skip(2)
	bpm, _ := r.U16()
	test.ExpectEquality(t, bpm, 125)
	instruments, _ := r.U16()
	test.ExpectEquality(t, instruments, 1)
	r.Skip(encoder.InstrumentStride)

	// the first offset is that of the command stream of voice 0, which
	// follows the four period streams
	offset, _ := r.U32()
	test.ExpectEquality(t, offset, 2)

	streams := r.Remaining()[15*4:]
	test.ExpectEquality(t, streams[2], encoder.MicroVolume|encoder.MicroPeriod|encoder.MicroInstrument)
	test.ExpectEquality(t, streams[3], 0)
}

func TestLabels(t *testing.T) {
	e := prepare(t, encoder.Params{})
	test.ExpectEquality(t, e.Label(0x0311), "Atvp")
	test.ExpectEquality(t, e.Label(0x0000), "None")
	test.ExpectEquality(t, e.Label(0x40c0), "CvDrv")
	test.ExpectEquality(t, e.Label(0xa000), "CsDs")

	scenario(t, e)
	test.DemandSuccess(t, e.Synthesize())
	rewind, setBPM, getPos := e.Escapes()
	test.ExpectEquality(t, e.Label(rewind), "rewind")
	test.ExpectEquality(t, e.Label(setBPM), "setBPM")
	test.ExpectEquality(t, e.Label(getPos), "getpos")
}

// capture a frame for every value of k. the bits of k describe which voices
// change instrument without a note (bits 8 to 11), volume (bits 4 to 7)
// and period (bits 0 to 3). every k produces a different command word
func distinctWords(t *testing.T, e *encoder.Encoder, count int) {
	t.Helper()

	inst := [encoder.NumVoices]int{2, 2, 2, 2}
	vol := [encoder.NumVoices]int{64, 64, 64, 64}
	per := [encoder.NumVoices]int{430, 430, 430, 430}

	for k := 0; k < count; k++ {
		for v := 0; v < encoder.NumVoices; v++ {
			if k&(0x100<<v) != 0 {
				inst[v] = 3 - inst[v]
				e.NoteOn(v, inst[v], 0, false)
			}
			if k&(0x10<<v) != 0 {
				vol[v] = 127 - vol[v]
				e.SetVolume(v, vol[v])
			}
			if k&(0x01<<v) != 0 {
				per[v] = 858 - per[v]
				e.SetPeriod(v, per[v])
			}
		}
		test.DemandSuccess(t, e.NextFrame(tick))
	}
}

func TestCapacityBoundary(t *testing.T) {
	// three codes are reserved for the escape words
	e := prepare(t, encoder.Params{})
	distinctWords(t, e, encoder.MaxCommands-3)
	test.ExpectSuccess(t, e.Synthesize())
	test.ExpectEquality(t, e.Commands().CodesCount(), encoder.MaxCommands)

	e = prepare(t, encoder.Params{})
	distinctWords(t, e, encoder.MaxCommands-2)
	err := e.Synthesize()
	test.ExpectFailure(t, err)
	test.ExpectSuccess(t, curated.Is(err, encoder.TooManyCommands))
}

// capture a note with a different instrument and sample offset pair in every
// frame
func distinctInstruments(t *testing.T, params encoder.Params, count int) *encoder.Encoder {
	t.Helper()

	e := encoder.New(params, mod)
	for i := 1; i <= encoder.NumSamples; i++ {
		test.DemandSuccess(t, e.SetSampleInfo(i, make([]byte, 0x10000), (i-1)*0x10000, 0, 0))
	}

	for k := 0; k < count; k++ {
		e.NoteOn(0, 1+k/256, (k%256)<<8, true)
		test.DemandSuccess(t, e.NextFrame(tick))
	}
	return e
}

func TestInstrumentCapacity(t *testing.T) {
	e := distinctInstruments(t, encoder.Params{}, encoder.MaxInstruments)
	test.ExpectSuccess(t, e.Synthesize())
	test.ExpectEquality(t, e.InstrumentCount(), encoder.MaxInstruments)

	e = distinctInstruments(t, encoder.Params{}, encoder.MaxInstruments+1)
	err := e.Synthesize()
	test.ExpectFailure(t, err)
	test.ExpectSuccess(t, curated.Is(err, encoder.TooManyInstruments))
}

func TestMicroInstrumentCapacity(t *testing.T) {
	e := distinctInstruments(t, encoder.Params{Micro: true}, encoder.MaxMicroInstruments)
	test.ExpectSuccess(t, e.Synthesize())
	test.ExpectEquality(t, e.InstrumentCount(), encoder.MaxMicroInstruments)

	e = distinctInstruments(t, encoder.Params{Micro: true}, encoder.MaxMicroInstruments+1)
	err := e.Synthesize()
	test.ExpectFailure(t, err)
	test.ExpectSuccess(t, curated.Is(err, encoder.MicroInstrumentLimit))
}

func TestFrameCapacity(t *testing.T) {
	e := prepare(t, encoder.Params{FrameMax: 4})
	for i := 0; i < 4; i++ {
		test.DemandSuccess(t, e.NextFrame(tick))
	}
	err := e.NextFrame(tick)
	test.ExpectSuccess(t, curated.Is(err, encoder.FrameCapacity))

	// error is sticky
	test.ExpectSuccess(t, curated.Is(e.Synthesize(), encoder.FrameCapacity))
}

func TestMicroRestrictions(t *testing.T) {
	e := prepare(t, encoder.Params{Micro: true})
	e.NoteOn(0, 1, 0, true)
	test.DemandSuccess(t, e.NextFrame(tick))
	e.NoteOn(0, 2, 0, false)
	test.DemandSuccess(t, e.NextFrame(tick))
	test.ExpectSuccess(t, curated.Is(e.Synthesize(), encoder.MicroSampleWithoutNote))

	e = prepare(t, encoder.Params{Micro: true})
	e.SetTempo(100)
	test.DemandSuccess(t, e.NextFrame(tick))
	e.SetTempo(150)
	test.DemandSuccess(t, e.NextFrame(tick))
	test.ExpectSuccess(t, curated.Is(e.Synthesize(), encoder.MicroTempoChange))

	// a single tempo change is fine and becomes the tempo of the score
	e = prepare(t, encoder.Params{Micro: true})
	e.SetTempo(100)
	test.DemandSuccess(t, e.NextFrame(tick))
	test.ExpectSuccess(t, e.Synthesize())
	test.ExpectEquality(t, e.BPM(), 100)
}

func TestSameInstrumentWithoutNote(t *testing.T) {
	e := prepare(t, encoder.Params{Micro: true})
	e.NoteOn(0, 1, 0, true)
	test.DemandSuccess(t, e.NextFrame(tick))

	// the same instrument without a note is a portamento and is ignored
	e.NoteOn(0, 1, 0, false)
	test.DemandSuccess(t, e.NextFrame(tick))
	test.ExpectSuccess(t, e.Synthesize())
	test.ExpectEquality(t, e.Event(1, 0).Instrument, 0)
}

func TestTempoEscape(t *testing.T) {
	e := prepare(t, encoder.Params{})
	e.SetTempo(100)
	test.DemandSuccess(t, e.NextFrame(tick))
	e.SetTempo(150)
	test.DemandSuccess(t, e.NextFrame(tick))
	test.DemandSuccess(t, e.Synthesize())
	test.DemandSuccess(t, e.Export())

	// the score starts at the default tempo and both changes are escapes
	test.ExpectEquality(t, e.BPM(), encoder.DefaultBPM)
	test.ExpectEquality(t, e.SetBPMCount(), 2)

	// escape code 256 is stored as two bytes. each escape is followed by the
	// tempo byte and the command code of the frame
	sizes := e.StreamSizes()
	test.ExpectEquality(t, sizes[1], (2+1+1)*2+2)
}

func TestSeqPositions(t *testing.T) {
	e := prepare(t, encoder.Params{GetPos: true, SetPos: true})
	e.SetSeqPos(0)
	test.DemandSuccess(t, e.NextFrame(tick))
	e.SetSeqPos(1)
	test.DemandSuccess(t, e.NextFrame(tick))
	e.SetSeqPos(0)
	e.SetSeqLoop(1)
	test.DemandSuccess(t, e.NextFrame(tick))
	test.DemandSuccess(t, e.Synthesize())
	test.DemandSuccess(t, e.Export())

	test.ExpectEquality(t, e.FrameLoop(), 1)

	// one byte for each frame because the only command word is the zero
	// word. each sequence position adds a two byte getpos escape and the
	// position byte. the rewind escape is two bytes
	sizes := e.StreamSizes()
	test.ExpectEquality(t, sizes[1], 3+2*3+2)

	byteLoop, wordLoop := e.LoopPositions()
	test.ExpectEquality(t, byteLoop, 3+1)
	test.ExpectEquality(t, wordLoop, 0)

	// two sequence entries of eight bytes each
	table := dictionary.TableSize(e.Commands().CodesCount())
	test.ExpectEquality(t, e.HeaderSize(), 24+2+2+table*2+2+2*8+12)
}

func TestSampleExtension(t *testing.T) {
	e := encoder.New(encoder.Params{}, mod)
	test.DemandSuccess(t, e.SetSampleInfo(1, []byte{1, 2, 3, 4}, 0, 0, 4))
	e.SetSampleReplayRate(1, 40000)
	e.NoteOn(0, 1, 0, true)
	test.DemandSuccess(t, e.NextFrame(tick))
	test.DemandSuccess(t, e.Synthesize())
	test.DemandSuccess(t, e.Export())

	// a tick at 50Hz and the capped replay rate of 28800Hz is 576 bytes.
	// with the margin that is 633 bytes which is rounded up to whole loops
	d, err := e.Descriptors()
	test.DemandSuccess(t, err)
	test.DemandEquality(t, len(d), 1)
	test.ExpectEquality(t, d[0].Length, 636/2)
	test.ExpectEquality(t, e.BankSize(), 4+636)

	bank := &bytes.Buffer{}
	e.WriteBank(bank)
	test.ExpectSuccess(t, bytes.Equal(bank.Bytes()[4:12], []byte{1, 2, 3, 4, 1, 2, 3, 4}))
}

func TestSampleShrink(t *testing.T) {
	e := encoder.New(encoder.Params{Shrink: true}, mod)

	// one-shot sample. the first two bytes are cleared
	data := make([]byte, 1000)
	data[0] = 0x7f
	data[1] = 0x7f
	test.DemandSuccess(t, e.SetSampleInfo(1, data, 0, 0, 2))
	e.SetSampleFetch(1, 199)
	e.NoteOn(0, 1, 0, true)
	test.DemandSuccess(t, e.NextFrame(tick))
	test.DemandSuccess(t, e.Synthesize())
	test.DemandSuccess(t, e.Export())

	// 200 bytes played plus five percent
	test.ExpectEquality(t, e.BankSize(), 4+210)

	bank := &bytes.Buffer{}
	e.WriteBank(bank)
	test.ExpectEquality(t, bank.Bytes()[4], 0)
	test.ExpectEquality(t, bank.Bytes()[5], 0)
}

func TestSampleShrinkKeepsLoop(t *testing.T) {
	e := encoder.New(encoder.Params{Shrink: true}, mod)

	// the loop starts well after the last byte that is played
	test.DemandSuccess(t, e.SetSampleInfo(1, make([]byte, 1000), 0, 600, 400))
	e.SetSampleFetch(1, 99)
	e.NoteOn(0, 1, 0, true)
	test.DemandSuccess(t, e.NextFrame(tick))
	test.DemandSuccess(t, e.Synthesize())
	test.DemandSuccess(t, e.Export())

	// shrunk to the loop start plus a single word of loop
	test.ExpectEquality(t, e.BankSize(), 4+602)

	d, err := e.Descriptors()
	test.DemandSuccess(t, err)
	test.DemandEquality(t, len(d), 1)
	test.ExpectEquality(t, d[0].Length, 301)
	test.ExpectEquality(t, d[0].LoopStart, 4+600)
	test.ExpectEquality(t, d[0].LoopLength, 1)
	test.ExpectSuccess(t, int(d[0].LoopStart)+int(d[0].LoopLength)*2 <= e.BankSize())
}

func TestBadSampleOffset(t *testing.T) {
	e := prepare(t, encoder.Params{})
	e.NoteOn(0, 1, 0x100, true)
	test.DemandSuccess(t, e.NextFrame(tick))
	test.DemandSuccess(t, e.Synthesize())
	test.DemandSuccess(t, e.Export())

	// offset is beyond the end of the 64 byte sample and is forced to the
	// loop start
	d, err := e.Descriptors()
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, d[0].Start, 4)
	test.ExpectEquality(t, d[0].Length, 32)
}

func TestUniqueID(t *testing.T) {
	a := encoder.UniqueID(mod, encoder.Params{})
	test.ExpectInequality(t, a, encoder.UniqueID(mod, encoder.Params{Micro: true}))
	test.ExpectInequality(t, a, encoder.UniqueID(mod, encoder.Params{KeepLayout: true}))

	// options that don't affect the sample bank don't change the id
	test.ExpectEquality(t, a, encoder.UniqueID(mod, encoder.Params{Shrink: true, GetPos: true}))

	b := append([]byte{}, mod...)
	b = append(b, 1, 0, 0, 0, 22, 0, 0, 0, 0, 0)
	test.ExpectEquality(t, a, ^crc32.ChecksumIEEE(b))
}

func TestCaptureErrors(t *testing.T) {
	e := prepare(t, encoder.Params{})
	e.SetPeriod(0, 5)
	test.ExpectSuccess(t, curated.Is(e.NextFrame(tick), encoder.BadEvent))

	e = prepare(t, encoder.Params{})
	e.SetVolume(4, 10)
	test.ExpectSuccess(t, curated.Is(e.Err(), encoder.BadEvent))

	e = prepare(t, encoder.Params{})
	test.DemandSuccess(t, e.Synthesize())
	e.SetVolume(0, 10)
	test.ExpectSuccess(t, curated.Is(e.Err(), encoder.OutOfOrder))

	test.ExpectFailure(t, e.SetSampleInfo(32, nil, 0, 0, 0))
	test.ExpectFailure(t, e.SetSampleInfo(1, make([]byte, 4), 0, 2, 4))
}
