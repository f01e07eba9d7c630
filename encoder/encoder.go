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
	"github.com/jetsetilly/lightspeed/dictionary"
	"github.com/jetsetilly/lightspeed/logger"
	"github.com/jetsetilly/lightspeed/memstream"
)

// Format version written to the score.
const (
	MajorVersion = 1
	MinorVersion = 22
)

// Hardware and format limits.
const (
	NumVoices      = 4
	NumSamples     = 31
	PeriodBits     = 12
	MinPeriod      = 14
	MaxVolume      = 64
	MaxReplayRate  = 28800
	HostRate       = 48000
	MaxCommands    = 255 * 3
	MaxInstruments = 2600

	// the micro replay reads the instrument id from a single byte
	MaxMicroInstruments = 256

	// sequence positions in a MOD file
	MaxSeqPositions = 128

	// 30 minutes of music at 100Hz
	DefaultFrameMax = 60 * 30 * 100

	// number of streams in the micro layout
	MicroStreamCount = 16

	// tempo of a MOD before any Fxx command. written to the header of a
	// score that changes tempo
	DefaultBPM = 125
)

// Sentinal error patterns.
const (
	TooManyCommands        = "encoder: too many command word combinations (%d codes, maximum is %d)"
	TooManyInstruments     = "encoder: more than %d instruments (too many 9xx commands)"
	MicroInstrumentLimit   = "encoder: micro mode supports %d instruments at most (too many 9xx commands)"
	FrameCapacity          = "encoder: song is longer than %d frames (music end detection issue)"
	MicroSampleWithoutNote = "encoder: micro mode does not support instruments played without a note"
	MicroTempoChange       = "encoder: micro mode does not support tempo changes within the song (%d changes)"
	BadVoiceCode           = "encoder: impossible voice state %#x at frame %d"
	BadEvent               = "encoder: bad %s (%d) at frame %d"
	BadSample              = "encoder: bad sample #%d: %s"
	OutOfOrder             = "encoder: %s called out of order"
)

// Params are the conversion options that affect the encoder.
type Params struct {
	// use the micro layout
	Micro bool

	// keep the sample layout of the MOD file. equivalent to the
	// -nosampleoptim option
	KeepLayout bool

	// shrink samples to the part actually played
	Shrink bool

	// sequence position support
	GetPos bool
	SetPos bool

	// maximum number of frames. zero means DefaultFrameMax
	FrameMax int

	// verbose statistics and warnings
	Verbose bool
}

// voice state for a single frame
type event struct {
	period     int
	volume     int
	instrument int
	offset     int
	dmaRestart bool

	// values differ from the previous frame
	volSet bool
	perSet bool

	// a value was reported this frame even if it did not change
	volKnown bool
	perKnown bool
}

type frame struct {
	bpm  int
	word uint16
}

// instrument is an entry in the LSP instrument table. A (sample, offset)
// pair.
type instrument struct {
	sample int
	offset int
}

// Encoder is the conversion context. All buffers are owned by the Encoder and
// are rebuilt by Reset().
type Encoder struct {
	params  Params
	verbose logger.Permission

	uid     uint32
	modSize int

	frameMax   int
	frameCount int
	frames     []frame
	events     [NumVoices][]event

	prevVolume     [NumVoices]int
	prevPeriod     [NumVoices]int
	prevInstrument [NumVoices]int

	samples      [NumSamples]sample
	originalBank []byte
	usedMask     uint32
	bankSize     int

	cmds        *dictionary.Dictionary
	instruments *dictionary.Dictionary
	periods     *dictionary.Dictionary
	table       []instrument

	escRewind int
	escSetBPM int
	escGetPos int

	bpm         int
	minTickRate int
	setBPMCount int

	sampleWithoutANote bool
	sampleOffsetUsed   bool

	seqPosFrame   [MaxSeqPositions]int
	seqPosWord    [MaxSeqPositions]int
	seqPosByte    [MaxSeqPositions]int
	seqHighest    int
	seqFinalCount int
	frameLoop     int

	byteLoopPos int
	wordLoopPos int

	// host samples rendered by the playback simulation. used for timing
	// information only
	hostSamples int

	streams   []*memstream.Stream
	scoreSize int

	synthesized bool
	exported    bool

	// first error encountered by a capture function
	err error
}

// New is the preferred method of initialisation for the Encoder type. The
// mod argument is the content of the MOD file and is used to create the
// unique id shared by the score and the sample bank.
func New(params Params, mod []byte) *Encoder {
	e := &Encoder{
		params:  params,
		verbose: logger.Flag(params.Verbose),
		modSize: len(mod),
	}
	e.uid = UniqueID(mod, params)

	e.frameMax = params.FrameMax
	if e.frameMax <= 0 {
		e.frameMax = DefaultFrameMax
	}

	e.Reset()
	return e
}

// Reset discards all captured and derived data. Sample information set by
// SetSampleInfo() is also discarded.
func (e *Encoder) Reset() {
	e.frameCount = 0
	e.frames = make([]frame, e.frameMax+1)
	for v := range e.events {
		e.events[v] = make([]event, e.frameMax+1)
		e.prevVolume[v] = -1
		e.prevPeriod[v] = -1
		e.prevInstrument[v] = -1
	}

	e.samples = [NumSamples]sample{}
	e.originalBank = nil
	e.usedMask = 0
	e.bankSize = 0

	e.cmds = dictionary.NewDictionary(1<<16, MaxCommands)
	e.instruments = dictionary.NewDictionary(NumSamples<<8, MaxInstruments)
	e.periods = dictionary.NewDictionary(1<<PeriodBits, 256)
	e.table = e.table[:0]

	e.escRewind = -1
	e.escSetBPM = -1
	e.escGetPos = -1

	e.bpm = DefaultBPM
	e.minTickRate = 50
	e.setBPMCount = 0

	e.sampleWithoutANote = false
	e.sampleOffsetUsed = false

	for i := range e.seqPosFrame {
		e.seqPosFrame[i] = -1
		e.seqPosWord[i] = 0
		e.seqPosByte[i] = 0
	}
	e.seqPosFrame[0] = 0
	e.seqHighest = -1
	e.seqFinalCount = 0
	e.frameLoop = 0
	e.byteLoopPos = -1
	e.wordLoopPos = -1

	e.hostSamples = 0
	e.streams = nil
	e.scoreSize = 0

	e.synthesized = false
	e.exported = false
	e.err = nil
}

// Err returns the first error encountered by a capture function.
func (e *Encoder) Err() error {
	return e.err
}

func (e *Encoder) fail(err error) {
	if e.err == nil {
		e.err = err
	}
}

// Params returns the parameters the Encoder was created with.
func (e *Encoder) Params() Params {
	return e.params
}

// UID returns the unique id shared by the score and the sample bank.
func (e *Encoder) UID() uint32 {
	return e.uid
}

// FrameCount returns the number of frames captured.
func (e *Encoder) FrameCount() int {
	return e.frameCount
}

// FrameLoop returns the frame the music loops to.
func (e *Encoder) FrameLoop() int {
	return e.frameLoop
}

// BPM returns the tempo stored in the score header.
func (e *Encoder) BPM() int {
	if e.setBPMCount > 1 {
		return DefaultBPM
	}
	return e.bpm
}

// SetBPMCount returns the number of tempo changes captured.
func (e *Encoder) SetBPMCount() int {
	return e.setBPMCount
}

// Commands returns the command word dictionary. Only meaningful after
// Synthesize().
func (e *Encoder) Commands() *dictionary.Dictionary {
	return e.cmds
}

// InstrumentCount returns the number of entries in the instrument table.
func (e *Encoder) InstrumentCount() int {
	return e.instruments.CodesCount()
}

// InstrumentCode returns the instrument table index for the MOD instrument
// (1 to 31) and sample offset in bytes. Returns -1 if there is no such
// instrument.
func (e *Encoder) InstrumentCode(modInstrument int, offset int) int {
	if modInstrument < 1 || modInstrument > NumSamples {
		return -1
	}
	return e.instruments.CodeFromValue(instrumentValue(modInstrument, offset))
}

// PeriodCount returns the number of distinct periods seen by Synthesize().
func (e *Encoder) PeriodCount() int {
	return e.periods.CodesCount()
}

// Escapes returns the command word values reserved for the rewind, set tempo
// and get position escape codes. Values are -1 before Synthesize().
func (e *Encoder) Escapes() (rewind int, setBPM int, getPos int) {
	return e.escRewind, e.escSetBPM, e.escGetPos
}

// LoopPositions returns the offsets in the byte and word streams of the loop
// frame. Only meaningful after Export() in the normal layout.
func (e *Encoder) LoopPositions() (byteStream int, wordStream int) {
	return e.byteLoopPos, e.wordLoopPos
}

// WordStreamSize returns the size in bytes of the word stream. Only
// meaningful after Export() in the normal layout.
func (e *Encoder) WordStreamSize() int {
	if len(e.streams) != 2 {
		return 0
	}
	return e.streams[wordStream].Len()
}

// StreamSizes returns the size of every stream in the order they are written
// to the score.
func (e *Encoder) StreamSizes() []int {
	s := make([]int, len(e.streams))
	for i := range e.streams {
		s[i] = e.streams[i].Len()
	}
	return s
}

// Event is the captured state of a voice in a frame.
type Event struct {
	Period     int
	Volume     int
	Instrument int
	Offset     int
	DMARestart bool
	VolumeSet  bool
	PeriodSet  bool
}

// Event returns the captured state of the voice in the frame. The volume and
// period flags at the loop frame reflect the changes made by Synthesize().
func (e *Encoder) Event(frame int, voice int) Event {
	if frame < 0 || frame >= e.frameCount || voice < 0 || voice >= NumVoices {
		return Event{}
	}
	ev := e.events[voice][frame]
	return Event{
		Period:     ev.period,
		Volume:     ev.volume,
		Instrument: ev.instrument,
		Offset:     ev.offset,
		DMARestart: ev.dmaRestart,
		VolumeSet:  ev.volSet,
		PeriodSet:  ev.perSet,
	}
}

// CommandWord returns the command word of the frame. Only meaningful after
// Synthesize().
func (e *Encoder) CommandWord(frame int) uint16 {
	if frame < 0 || frame >= e.frameCount {
		return 0
	}
	return e.frames[frame].word
}

// FrameTempo returns the tempo set in the frame or zero if the tempo did not
// change.
func (e *Encoder) FrameTempo(frame int) int {
	if frame < 0 || frame >= e.frameCount {
		return 0
	}
	return e.frames[frame].bpm
}
