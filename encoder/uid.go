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
	"encoding/binary"
	"hash/crc32"
)

// UniqueID returns the id shared by the score and sample bank of a
// conversion. It is a CRC-32 of the MOD file, the format version and the
// options that affect the sample bank.
//
// The CRC is the raw register value, without the final inversion of the
// standard CRC-32.
func UniqueID(mod []byte, params Params) uint32 {
	crc := crc32.NewIEEE()
	crc.Write(mod)

	var version [8]byte
	binary.LittleEndian.PutUint32(version[0:], MajorVersion)
	binary.LittleEndian.PutUint32(version[4:], MinorVersion)
	crc.Write(version[:])

	crc.Write([]byte{boolByte(params.KeepLayout), boolByte(params.Micro)})

	return ^crc.Sum32()
}

func boolByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}
