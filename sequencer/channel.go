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

import "github.com/jetsetilly/lightspeed/modfile"

// effects
const (
	effectPortamentoUp        = 0x1
	effectPortamentoDown      = 0x2
	effectPortaToNote         = 0x3
	effectVibrato             = 0x4
	effectPortaToNoteVolSlide = 0x5
	effectVibratoVolSlide     = 0x6
	effectTremolo             = 0x7
	effectSampleOffset        = 0x9
	effectVolumeSlide         = 0xa
	effectJumpToPattern       = 0xb
	effectSetVolume           = 0xc
	effectPatternBrk          = 0xd
	effectExtended            = 0xe
	effectSetSpeed            = 0xf
)

// extended effects (Exy)
const (
	extendedFinePortaUp       = 0x1
	extendedFinePortaDown     = 0x2
	extendedNoteRetrig        = 0x9
	extendedFineVolSlideUp    = 0xa
	extendedFineVolSlideDown  = 0xb
	extendedNoteCut           = 0xc
	extendedNoteDelay         = 0xd
)

// limits of the period of a voice
const (
	minPeriod = 14
	maxPeriod = 4095
)

type channel struct {
	// sample being played. zero if no sample is being played
	sample int

	// sample to be played by the next note
	sampleToPlay int

	// position in the sample in 16.16 fixed point
	position uint

	// the end of the sample has been reached and the loop is being played
	looped bool

	// highest byte fetched from the sample in the current tick
	fetched int

	period      int
	portaPeriod int
	portaSpeed  int
	volume      int
	fineTune    int

	// sample offset of the note. in bytes
	offset int

	tremoloDepth  int
	tremoloSpeed  int
	tremoloPhase  int
	tremoloAdjust int

	vibratoDepth  int
	vibratoSpeed  int
	vibratoPhase  int
	vibratoAdjust int

	effect        uint8
	param         uint8
	effectCounter int

	// the events since the last report
	triggered bool
	swapped   bool
}

func (c *channel) reset() {
	*c = channel{}
}

// trigger starts the sample to be played from the current offset
func (c *channel) trigger() {
	c.sample = c.sampleToPlay
	c.position = uint(c.offset) << 16
	c.looped = false
	c.tremoloPhase = 0
	c.vibratoPhase = 0
	c.triggered = c.sample > 0
	c.swapped = false
}

// outputPeriod is the period heard by the listener
func (c *channel) outputPeriod() int {
	return min(max(c.period+c.vibratoAdjust, minPeriod), maxPeriod)
}

// outputVolume is the volume heard by the listener
func (c *channel) outputVolume() int {
	return min(max(c.volume+c.tremoloAdjust, 0), 64)
}

func (c *channel) portaToNote() {
	period := c.period
	if period < c.portaPeriod {
		period = min(period+c.portaSpeed, c.portaPeriod)
	} else if period > c.portaPeriod {
		period = max(period-c.portaSpeed, c.portaPeriod)
	}
	c.period = period
}

func (c *channel) volumeSlide() {
	if c.param>>4 > 0 {
		c.volume = min(c.volume+int(c.param>>4), 64)
	} else if c.param != 0 {
		c.volume = max(c.volume-int(c.param&0xf), 0)
	}
}

func (c *channel) vibrato() {
	c.vibratoAdjust = (sineTable[c.vibratoPhase&31] * c.vibratoDepth) >> 7
	if c.vibratoPhase >= 32 {
		c.vibratoAdjust = -c.vibratoAdjust
	}
	c.vibratoPhase = (c.vibratoPhase + c.vibratoSpeed) & 63
}

func (c *channel) tremolo() {
	c.tremoloAdjust = (sineTable[c.tremoloPhase&31] * c.tremoloDepth) >> 6
	if c.tremoloPhase >= 32 {
		c.tremoloAdjust = -c.tremoloAdjust
	}
	c.tremoloPhase = (c.tremoloPhase + c.tremoloSpeed) & 63
}

// row processes the note of a new row. effects that change the position in
// the song are handled by the sequencer
func (c *channel) row(note modfile.Note, samples *[modfile.NumSamples]modfile.Sample) {
	c.effectCounter = 0

	delayed := note.Effect == effectExtended && note.Param>>4 == extendedNoteDelay
	porta := note.Effect == effectPortaToNote || note.Effect == effectPortaToNoteVolSlide

	// an instrument number resets the volume of the channel
	if note.Sample > 0 && note.Sample <= modfile.NumSamples {
		smp := &samples[note.Sample-1]
		c.volume = smp.Volume
		c.fineTune = fineTuneIndex(smp.FineTune)
		c.sampleToPlay = note.Sample

		// an instrument without a note changes the sample of a playing
		// channel without restarting it
		if (note.Period == 0 || porta) && c.sample > 0 && c.sample != note.Sample {
			c.sample = note.Sample
			c.swapped = true
		}
	}

	c.offset = 0
	if note.Effect == effectSampleOffset {
		c.offset = int(note.Param) << 8
	}

	if note.Period > 0 {
		c.portaPeriod = (note.Period * fineTuning[c.fineTune]) >> 12
		if !porta && !delayed {
			c.period = c.portaPeriod
			c.trigger()
		}
	}

	c.effect = note.Effect
	c.param = note.Param
	c.vibratoAdjust = 0
	c.tremoloAdjust = 0

	switch note.Effect {
	case effectPortaToNote:
		if note.Param > 0 {
			c.portaSpeed = int(note.Param)
		}
	case effectVibrato:
		if note.Param&0xf0 > 0 {
			c.vibratoSpeed = int(note.Param >> 4)
		}
		if note.Param&0x0f > 0 {
			c.vibratoDepth = int(note.Param & 0x0f)
		}
	case effectTremolo:
		if note.Param&0xf0 > 0 {
			c.tremoloSpeed = int(note.Param >> 4)
		}
		if note.Param&0x0f > 0 {
			c.tremoloDepth = int(note.Param & 0x0f)
		}
	case effectSetVolume:
		c.volume = min(int(note.Param), 64)
	case effectExtended:
		switch note.Param >> 4 {
		case extendedFinePortaUp:
			c.period = max(c.period-int(note.Param&0xf), minPeriod)
		case extendedFinePortaDown:
			c.period = min(c.period+int(note.Param&0xf), maxPeriod)
		case extendedFineVolSlideUp:
			c.volume = min(c.volume+int(note.Param&0xf), 64)
		case extendedFineVolSlideDown:
			c.volume = max(c.volume-int(note.Param&0xf), 0)
		case extendedNoteCut:
			if note.Param&0xf == 0 {
				c.volume = 0
			}
		}
	}
}

// tick processes the effects of the channel on the ticks between rows
func (c *channel) tick() {
	c.effectCounter++

	switch c.effect {
	case effectPortamentoUp:
		c.period = max(c.period-int(c.param), minPeriod)
	case effectPortamentoDown:
		c.period = min(c.period+int(c.param), maxPeriod)
	case effectPortaToNote:
		c.portaToNote()
	case effectVibrato:
		c.vibrato()
	case effectPortaToNoteVolSlide:
		c.portaToNote()
		c.volumeSlide()
	case effectVibratoVolSlide:
		c.vibrato()
		c.volumeSlide()
	case effectTremolo:
		c.tremolo()
	case effectVolumeSlide:
		c.volumeSlide()
	case effectExtended:
		switch c.param >> 4 {
		case extendedNoteRetrig:
			if c.param&0xf > 0 && c.effectCounter >= int(c.param&0xf) {
				c.effectCounter = 0
				c.offset = 0
				c.trigger()
			}
		case extendedNoteCut:
			if c.effectCounter == int(c.param&0xf) {
				c.volume = 0
			}
		case extendedNoteDelay:
			if c.effectCounter == int(c.param&0xf) && c.portaPeriod > 0 {
				c.period = c.portaPeriod
				c.trigger()
			}
		}
	}
}
