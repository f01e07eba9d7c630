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

package paula

import (
	"fmt"
	"strings"

	"github.com/jetsetilly/lightspeed/curated"
)

// Clock is the PAL Paula clock in Hz.
const Clock = 3546895

// ChipRAMSize is the amount of chip memory available to sample data.
const ChipRAMSize = 2 * 512 * 1024

// MinPeriod is the smallest period value that the chip honours. Smaller values
// are clamped.
const MinPeriod = 14

// NumVoices is the number of DMA sound channels.
const NumVoices = 4

// the number of fractional bits in the playback position of a voice
const posPrecision = 15

// gain applied to the mix of two voices, in 8.8 fixed point. two voices of
// 8bit samples at full volume produce a 15bit value so a gain of two would be
// safe. a little more than that sounds better and clipping is rare.
//
// 742 is 2.9 * 256 truncated.
const gain = 742

// DMA control register bits.
const (
	DMASet   = 0x8000
	DMAVoice = 0x000f
)

// ChipRAMOverflow is returned when sample data would not fit in chip memory.
const ChipRAMOverflow = "paula: %d bytes at address %#06x overflows chip memory"

// Register identifies the voice register being written. Used when reporting
// writes to a Tracker.
type Register int

// List of valid Register values.
const (
	RegVolume Register = iota
	RegPeriod
	RegAddress
	RegLength
	RegDMAStart
	RegDMAStop
)

func (r Register) String() string {
	switch r {
	case RegVolume:
		return "vol"
	case RegPeriod:
		return "per"
	case RegAddress:
		return "adr"
	case RegLength:
		return "len"
	case RegDMAStart:
		return "dma+"
	case RegDMAStop:
		return "dma-"
	}
	return "unknown"
}

// Tracker implementations are notified of every register write.
type Tracker interface {
	PaulaWrite(voice int, reg Register, value int)
}

// Paula is the chip emulation.
type Paula struct {
	voices [NumVoices]voice
	dmaCon uint16

	chipRAM    []int8
	renderRate int

	// the addition of a tracker is not required
	tracker Tracker
}

// NewPaula is the preferred method of initialisation for the Paula type. The
// renderRate is the rate in Hz of the samples produced by Render().
func NewPaula(renderRate int) *Paula {
	return &Paula{
		chipRAM:    make([]int8, ChipRAMSize),
		renderRate: renderRate,
	}
}

// SetTracker adds a Tracker implementation to the chip.
func (pl *Paula) SetTracker(tracker Tracker) {
	pl.tracker = tracker
}

func (pl *Paula) track(v int, reg Register, value int) {
	if pl.tracker != nil {
		pl.tracker.PaulaWrite(v, reg, value)
	}
}

func (pl *Paula) String() string {
	s := strings.Builder{}
	s.WriteString(fmt.Sprintf("dmacon=%04x", pl.dmaCon))
	for i := range pl.voices {
		s.WriteString(fmt.Sprintf(" %c: %s", 'A'+i, pl.voices[i].String()))
	}
	return s.String()
}

// UploadChipMemory copies sample data into chip memory at the address.
func (pl *Paula) UploadChipMemory(data []byte, address int) error {
	if address < 0 || address+len(data) > len(pl.chipRAM) {
		return curated.Errorf(ChipRAMOverflow, len(data), address)
	}
	for i, b := range data {
		pl.chipRAM[address+i] = int8(b)
	}
	return nil
}

// SetVolume sets the volume register of the voice. Values greater than 64
// are clamped.
func (pl *Paula) SetVolume(v int, vol uint8) {
	if vol > 64 {
		vol = 64
	}
	pl.voices[v].volume = int(vol)
	pl.track(v, RegVolume, int(vol))
}

// SetPeriod sets the period register of the voice. The playback rate of the
// voice is limited to the render rate.
func (pl *Paula) SetPeriod(v int, per uint16) {
	if per < MinPeriod {
		per = MinPeriod
	}
	freq := Clock / int(per)
	if freq > pl.renderRate {
		freq = pl.renderRate
	}
	pl.voices[v].step = uint32((freq << posPrecision) / pl.renderRate)
	pl.track(v, RegPeriod, int(per))
}

// SetAddress sets the sample address register of the voice. The value only
// affects playback on the next DMA start or loop.
func (pl *Paula) SetAddress(v int, address uint32) {
	pl.voices[v].nextAddress = address
	pl.track(v, RegAddress, int(address))
}

// SetLength sets the length register of the voice. The length is in 16bit
// words, as it is on the real chip.
func (pl *Paula) SetLength(v int, words uint16) {
	pl.voices[v].nextLength = uint32(words) * 2
	pl.track(v, RegLength, int(words))
}

// DMACon returns the voice bits of the DMA control register.
func (pl *Paula) DMACon() uint16 {
	return pl.dmaCon
}

// WriteDMAMask is the first half of a DMA control write. Voices in the mask
// are switched off.
func (pl *Paula) WriteDMAMask(mask uint16) {
	mask &= DMAVoice
	for v := range pl.voices {
		if mask&(1<<v) != 0 && pl.dmaCon&(1<<v) != 0 {
			pl.track(v, RegDMAStop, 0)
		}
	}
	pl.dmaCon &^= mask
}

// CommitDMA is the second half of a DMA control write. Voices in the mask are
// switched on. A voice that was off before the commit restarts from its next
// address and length.
func (pl *Paula) CommitDMA(mask uint16) {
	mask &= DMAVoice
	for v := range pl.voices {
		if pl.dmaCon&(1<<v) == 0 && mask&(1<<v) != 0 {
			pl.voices[v].start()
			pl.track(v, RegDMAStart, int(pl.voices[v].address))
		}
	}
	pl.dmaCon |= mask
}

// WriteDMACon writes the DMA control register as the 68000 would. If the SET
// bit is present the write is a commit, otherwise the write clears the
// voices in the value.
func (pl *Paula) WriteDMACon(value uint16) {
	if value&DMASet == DMASet {
		pl.CommitDMA(value)
	} else {
		pl.WriteDMAMask(value)
	}
}

// Render fills buf with interleaved stereo samples. Voices A and D are
// mixed to the left channel, voices B and C to the right channel. Returns the
// number of stereo samples rendered.
func (pl *Paula) Render(buf []int16) int {
	n := len(buf) / 2
	for i := 0; i < n; i++ {
		l := pl.voices[0].nextSample(pl.chipRAM, pl.dmaCon&0x01 != 0)
		r := pl.voices[1].nextSample(pl.chipRAM, pl.dmaCon&0x02 != 0)
		r += pl.voices[2].nextSample(pl.chipRAM, pl.dmaCon&0x04 != 0)
		l += pl.voices[3].nextSample(pl.chipRAM, pl.dmaCon&0x08 != 0)
		buf[i*2] = clamp((l * gain) >> 8)
		buf[i*2+1] = clamp((r * gain) >> 8)
	}
	return n
}

func clamp(v int) int16 {
	if v < -32768 {
		return -32768
	}
	if v > 32767 {
		return 32767
	}
	return int16(v)
}
