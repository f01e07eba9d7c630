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

package modfile

import (
	"fmt"
	"strings"

	"github.com/jetsetilly/lightspeed/curated"
)

// Sentinal error patterns.
const (
	NotAModule          = "modfile: not a module: %v"
	UnsupportedChannels = "modfile: only 4 channel modules are supported (%d channels)"
)

// Layout of a 31 sample MOD file.
const (
	NumSamples      = 31
	NumChannels     = 4
	RowsPerPattern  = 64
	BytesPerNote    = 4
	MaxOrders       = 128
	titleLen        = 20
	sampleInfoLen   = 30
	orderCountPos   = titleLen + NumSamples*sampleInfoLen
	orderTablePos   = orderCountPos + 2
	signaturePos    = orderTablePos + MaxOrders
	patternDataPos  = signaturePos + 4
	PatternSize     = RowsPerPattern * NumChannels * BytesPerNote
	signatureLength = 4
)

// Sample is the information about a single sample. Lengths and loop points
// are in bytes.
type Sample struct {
	Name     string
	Length   int
	FineTune int
	Volume   int

	// the loop of a sample that does not loop is two bytes long
	LoopStart  int
	LoopLength int

	// offset of the sample data in the sample region of the file
	Offset int

	Data []byte
}

// Looping is true if the sample has a loop longer than a single word.
func (smp Sample) Looping() bool {
	return smp.LoopLength > 2
}

// Note is a single entry in a pattern.
type Note struct {
	Sample int
	Period int
	Effect uint8
	Param  uint8
}

func (n Note) String() string {
	return fmt.Sprintf("%03x %02d %x%02x", n.Period, n.Sample, n.Effect, n.Param)
}

// Module is a parsed MOD file.
type Module struct {
	Title      string
	Signature  string
	Orders     []int
	RestartPos int
	Samples    [NumSamples]Sample
	Patterns   [][]byte

	// the MOD file as it was loaded
	Data []byte

	// position of the sample region in Data
	sampleRegion int
}

func (mod *Module) String() string {
	return fmt.Sprintf("%q (%s) %d orders, %d patterns", mod.Title, mod.Signature, len(mod.Orders), len(mod.Patterns))
}

// SampleRegion returns the part of the MOD file that contains the sample
// data.
func (mod *Module) SampleRegion() []byte {
	return mod.Data[mod.sampleRegion:]
}

// Note returns the note for the channel in a row of a pattern.
func (mod *Module) Note(pattern int, row int, channel int) Note {
	i := (row*NumChannels + channel) * BytesPerNote
	return decodeNote(mod.Patterns[pattern][i : i+BytesPerNote])
}

func decodeNote(note []byte) Note {
	return Note{
		Sample: int(note[0]&0xf0 | note[2]>>4),
		Period: int(note[0]&0x0f)<<8 | int(note[1]),
		Effect: note[2] & 0x0f,
		Param:  note[3],
	}
}

// numChannels returns the number of channels indicated by the signature. A
// return value of zero means the signature is not recognised.
func numChannels(sig []byte) int {
	switch string(sig) {
	case "M.K.", "M!K!", "N.T.", "FLT4", "4CHN":
		return 4
	}

	switch string(sig[2:]) {
	case "HN":
		// xCHN, x = number of channels
		if sig[0] >= '1' && sig[0] <= '9' && sig[1] == 'C' {
			return int(sig[0] - '0')
		}
	case "CH":
		// xxCH, xx = number of channels as a two digit decimal
		if sig[0] >= '0' && sig[0] <= '9' && sig[1] >= '0' && sig[1] <= '9' {
			return int(sig[0]-'0')*10 + int(sig[1]-'0')
		}
	}

	return 0
}

func be16(b []byte) int {
	return int(b[0])<<8 | int(b[1])
}

// Parse the data of a MOD file. The data is not copied.
func Parse(data []byte) (*Module, error) {
	if len(data) < patternDataPos {
		return nil, curated.Errorf(NotAModule, "file is too short")
	}

	sig := data[signaturePos : signaturePos+signatureLength]
	n := numChannels(sig)
	if n == 0 {
		return nil, curated.Errorf(NotAModule, fmt.Sprintf("unrecognised signature %q", sig))
	}
	if n != NumChannels {
		return nil, curated.Errorf(UnsupportedChannels, n)
	}

	mod := &Module{
		Title:     strings.TrimRight(string(data[:titleLen]), "\x00 "),
		Signature: string(sig),
		Data:      data,
	}

	count := int(data[orderCountPos])
	if count == 0 || count > MaxOrders {
		return nil, curated.Errorf(NotAModule, fmt.Sprintf("bad order count (%d)", count))
	}
	mod.RestartPos = int(data[orderCountPos+1])
	if mod.RestartPos >= count {
		mod.RestartPos = 0
	}

	// the number of patterns is found from the highest pattern in the entire
	// order table, not just the part that is played
	var patterns int
	for i := 0; i < MaxOrders; i++ {
		p := int(data[orderTablePos+i])
		if i < count {
			mod.Orders = append(mod.Orders, p)
		}
		patterns = max(patterns, p+1)
	}

	if len(data) < patternDataPos+patterns*PatternSize {
		return nil, curated.Errorf(NotAModule, fmt.Sprintf("pattern data is truncated (%d patterns)", patterns))
	}
	for i := 0; i < patterns; i++ {
		p := patternDataPos + i*PatternSize
		mod.Patterns = append(mod.Patterns, data[p:p+PatternSize])
	}

	mod.sampleRegion = patternDataPos + patterns*PatternSize

	offset := 0
	for i := range mod.Samples {
		info := data[titleLen+i*sampleInfoLen : titleLen+(i+1)*sampleInfoLen]

		smp := Sample{
			Name:       strings.TrimRight(string(info[:22]), "\x00 "),
			Length:     be16(info[22:]) * 2,
			FineTune:   int(info[24] & 0x0f),
			Volume:     min(int(info[25]), 64),
			LoopStart:  be16(info[26:]) * 2,
			LoopLength: be16(info[28:]) * 2,
			Offset:     offset,
		}
		offset += smp.Length

		// some files claim more sample data than there is in the file
		start := min(mod.sampleRegion+smp.Offset, len(data))
		end := min(start+smp.Length, len(data))
		smp.Data = data[start:end]
		smp.Length = len(smp.Data)

		fixLoop(&smp)
		mod.Samples[i] = smp
	}

	return mod, nil
}

// fixLoop makes sure the loop is inside the sample data
func fixLoop(smp *Sample) {
	if smp.LoopStart >= smp.Length {
		smp.LoopStart = 0
		smp.LoopLength = 2
	}
	if smp.LoopStart+smp.LoopLength > smp.Length {
		smp.LoopLength = smp.Length - smp.LoopStart
	}
	if smp.LoopLength < 2 {
		smp.LoopLength = 2
	}
	if smp.LoopStart+smp.LoopLength > smp.Length {
		smp.LoopStart = 0
		smp.LoopLength = min(2, smp.Length)
	}
}
