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

import "fmt"

type voice struct {
	// current sample pointer. len is in bytes
	address uint32
	length  uint32

	// next sample pointer, as written by the address and length registers
	nextAddress uint32
	nextLength  uint32

	// fixed point playback position relative to address
	pos  uint32
	step uint32

	volume int

	// the most recent sample fetched. the chip holds the last value when DMA
	// is off
	dat int
}

func (vc *voice) String() string {
	return fmt.Sprintf("%06x+%05x/%05x vol=%02d", vc.address, vc.pos>>posPrecision, vc.length, vc.volume)
}

func (vc *voice) start() {
	vc.address = vc.nextAddress
	vc.length = vc.nextLength
	vc.pos = 0
}

func (vc *voice) nextSample(chipRAM []int8, dma bool) int {
	if dma {
		idx := uint64(vc.address) + uint64(vc.pos>>posPrecision)
		if idx < uint64(len(chipRAM)) {
			vc.dat = int(chipRAM[idx])
		} else {
			vc.dat = 0
		}

		vc.pos += vc.step
		if vc.pos>>posPrecision >= vc.length {
			// loop to the next pointer, keeping the fraction
			vc.address = vc.nextAddress
			vc.length = vc.nextLength
			vc.pos &= (1 << posPrecision) - 1
		}
	}
	return vc.dat * vc.volume
}
