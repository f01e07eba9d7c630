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
	"fmt"

	"github.com/jetsetilly/lightspeed/curated"
	"github.com/jetsetilly/lightspeed/logger"
)

// percentage margins used when fixing the sample layout
const (
	shrinkMargin = 5
	extendMargin = 10
)

// sample is a MOD sample as it will be stored in the LSP sample bank.
type sample struct {
	data      []byte
	repStart  int
	repLen    int
	bankStart int

	// furthest byte fetched by the playback simulation
	resampleMaxLen int

	// highest replay rate seen by the playback simulation
	maxReplayRate int

	// largest sample offset played. affects how long the sample must be to
	// survive a tick at the highest replay rate
	sampleOffsetMax int
}

func (smp *sample) length() int {
	return len(smp.data)
}

// extend the sample by repeating the loop. the number of bytes added is
// rounded up to a whole number of loops
func (smp *sample) extend(n int) {
	if smp.repStart+smp.repLen > len(smp.data) {
		smp.resize(smp.repStart + smp.repLen)
	}

	loops := (n + smp.repLen - 1) / smp.repLen
	n = loops * smp.repLen

	loop := smp.data[smp.repStart : smp.repStart+smp.repLen]
	for i := 0; i < n; i++ {
		smp.data = append(smp.data, loop[i%smp.repLen])
	}
}

// instrumentValue is the value registered in the instrument dictionary for a
// MOD instrument and sample offset.
func instrumentValue(modInstrument int, offset int) int {
	return (modInstrument-1)<<8 | offset>>8
}

// SetSampleInfo records a sample of the MOD file. The instrument is numbered
// 1 to 31. The data is the sample data and bankOffset is the position of the
// sample data in the sample region of the MOD file. The loop is given in
// bytes.
//
// The data is copied. If the sample does not loop and the first two bytes
// are not zero they will be cleared unless the original layout is being
// kept. The Amiga replay routines expect a one-shot sample to start with a
// silent word.
func (e *Encoder) SetSampleInfo(modInstrument int, data []byte, bankOffset int, repStart int, repLen int) error {
	if modInstrument < 1 || modInstrument > NumSamples {
		return curated.Errorf(BadSample, modInstrument, "instrument number out of range")
	}
	if repStart < 0 || repLen < 0 || repStart+repLen > len(data) {
		return curated.Errorf(BadSample, modInstrument, fmt.Sprintf("loop %d+%d is outside the sample (%d bytes)", repStart, repLen, len(data)))
	}

	if e.verbose.AllowLogging() {
		n := min(len(data), 8)
		logger.Logf(e.verbose, "encoder", "MOD instr #%2d: start=$%06x len=$%05x repstart=$%05x replen=$%05x | % x", modInstrument,
			bankOffset, len(data), repStart, repLen, data[:n])
	}

	smp := &e.samples[modInstrument-1]
	*smp = sample{
		data:      append([]byte{}, data...),
		repStart:  repStart,
		repLen:    max(repLen, 2),
		bankStart: bankOffset + 4,
	}

	if len(data) >= 2 && smp.repLen <= 2 && repStart+1 < len(data) {
		b0 := smp.data[repStart]
		b1 := smp.data[repStart+1]
		if b0 != 0 || b1 != 0 {
			logger.Logf(e.verbose, "encoder warning", "MOD instrument #%d is not looping and the first two bytes are not zero ($%02x $%02x)", modInstrument, b0, b1)
			if !e.params.KeepLayout {
				logger.Log(e.verbose, "encoder", "fixing by clearing the first two bytes")
				smp.data[repStart] = 0
				smp.data[repStart+1] = 0
			}
		}
	}

	return nil
}

// SetOriginalSampleBank records the sample region of the MOD file. It is
// written as is to the sample bank when the original layout is being kept.
func (e *Encoder) SetOriginalSampleBank(bank []byte) {
	e.originalBank = bank
}

// SetSampleReplayRate records the replay rate of a sample. Only the highest
// rate is kept and rates are capped to MaxReplayRate.
func (e *Encoder) SetSampleReplayRate(modInstrument int, rate int) {
	if modInstrument < 1 || modInstrument > NumSamples {
		e.fail(curated.Errorf(BadEvent, "instrument", modInstrument, e.frameCount))
		return
	}
	rate = min(rate, MaxReplayRate)
	smp := &e.samples[modInstrument-1]
	smp.maxReplayRate = max(smp.maxReplayRate, rate)
}

// SetSampleFetch records that a byte of the sample has been played.
func (e *Encoder) SetSampleFetch(modInstrument int, offset int) {
	if modInstrument < 1 || modInstrument > NumSamples {
		e.fail(curated.Errorf(BadEvent, "instrument", modInstrument, e.frameCount))
		return
	}
	smp := &e.samples[modInstrument-1]
	smp.resampleMaxLen = max(smp.resampleMaxLen, offset+1)
}

// addInstrument creates the instrument table entry for a new code.
func (e *Encoder) addInstrument(code int, modInstrument int, offset int) {
	smp := &e.samples[modInstrument-1]
	if offset >= smp.length() {
		logger.Logf(logger.Allow, "encoder warning", "bad sample offset for instrument #%d (offset=%d, len=%d). forced to %d",
			modInstrument, offset, smp.length(), smp.repStart)
		offset = smp.repStart
	}

	for len(e.table) <= code {
		e.table = append(e.table, instrument{})
	}
	e.table[code] = instrument{sample: modInstrument, offset: offset}
	smp.sampleOffsetMax = max(smp.sampleOffsetMax, offset)
}

// fixSampleLayout packs the used samples one after the other in the sample
// bank, optionally shrinking them, and extends samples that are too short to
// last a tick at their highest replay rate.
func (e *Encoder) fixSampleLayout() {
	if e.params.KeepLayout {
		logger.Log(logger.Allow, "encoder warning", "original sample layout kept. no micro-sample fix will be applied")
		e.bankSize = len(e.originalBank)
		return
	}

	bankOffset := 4
	for i := range e.samples {
		if e.usedMask&(1<<i) == 0 {
			continue
		}

		smp := &e.samples[i]
		smp.bankStart = bankOffset

		if e.params.Shrink {
			// bytes after the end of a loop are never played
			if smp.repLen > 2 && smp.length() > smp.repStart+smp.repLen {
				l := smp.repStart + smp.repLen
				logger.Logf(logger.Allow, "encoder", "instrument #%02d: length overruns loop. shrinking from %d to %d bytes", i+1, smp.length(), l)
				smp.resize(l)
			}

			if smp.resampleMaxLen > 0 {
				cmpLen := smp.resampleMaxLen * (100 + shrinkMargin) / 100
				if smp.length() > cmpLen {
					l := (cmpLen + 1) &^ 1

					// never shrink into a played sample offset
					l = max(l, (smp.sampleOffsetMax+3)&^1)

					// the loop must start inside the sample
					if smp.repLen > 2 {
						l = max(l, smp.repStart+2)
					}

					if l < smp.length() {
						logger.Logf(logger.Allow, "encoder", "instrument #%02d: sample not fully played. shrinking from %d to %d bytes", i+1, smp.length(), l)
						smp.resize(l)
						if smp.repStart+smp.repLen > l && smp.repStart < l {
							smp.repLen = l - smp.repStart
						}
					}
				}
			}
		}

		minSampleLen := smp.length() - smp.sampleOffsetMax
		minTickLen := 0
		if e.minTickRate > 0 {
			minTickLen = smp.maxReplayRate / e.minTickRate
			minTickLen = minTickLen * (100 + extendMargin) / 100
		}
		if minTickLen > minSampleLen {
			l := smp.length()
			smp.extend(minTickLen - minSampleLen)
			logger.Logf(e.verbose, "encoder", "extending micro-sample #%d from %d to %d bytes", i+1, l, smp.length())
		}

		bankOffset += smp.length()
	}

	e.bankSize = bankOffset
}

func (smp *sample) resize(l int) {
	if l <= len(smp.data) {
		smp.data = smp.data[:l]
		return
	}
	smp.data = append(smp.data, make([]byte, l-len(smp.data))...)
}
