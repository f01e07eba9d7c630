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

// Builder creates a four channel MOD file in memory.
type Builder struct {
	Title      string
	Orders     []int
	RestartPos int

	samples  [NumSamples]builderSample
	patterns [][]byte
}

type builderSample struct {
	name       string
	data       []byte
	volume     int
	fineTune   int
	loopStart  int
	loopLength int
}

// NewBuilder is the preferred method of initialisation for the Builder type.
func NewBuilder(title string) *Builder {
	return &Builder{Title: title}
}

// SetSample sets the data of a sample. The sample is numbered 1 to 31. The
// length of the data and the loop points should be even. A loop length of
// zero means the sample does not loop.
func (b *Builder) SetSample(sample int, data []byte, volume int, loopStart int, loopLength int) {
	if loopLength < 2 {
		loopStart = 0
		loopLength = 2
	}
	b.samples[sample-1] = builderSample{
		data:       data,
		volume:     volume,
		loopStart:  loopStart,
		loopLength: loopLength,
	}
}

// SetFineTune sets the finetune value of a sample (0 to 15).
func (b *Builder) SetFineTune(sample int, fineTune int) {
	b.samples[sample-1].fineTune = fineTune
}

// SetNote sets the note in a row of a pattern. Patterns are created as
// required.
func (b *Builder) SetNote(pattern int, row int, channel int, note Note) {
	for len(b.patterns) <= pattern {
		b.patterns = append(b.patterns, make([]byte, PatternSize))
	}
	i := (row*NumChannels + channel) * BytesPerNote
	p := b.patterns[pattern]
	p[i] = byte(note.Sample&0xf0) | byte(note.Period>>8)&0x0f
	p[i+1] = byte(note.Period)
	p[i+2] = byte(note.Sample&0x0f)<<4 | note.Effect&0x0f
	p[i+3] = note.Param
}

// Bytes returns the MOD file.
func (b *Builder) Bytes() []byte {
	patterns := max(len(b.patterns), 1)
	orders := b.Orders
	if len(orders) == 0 {
		orders = []int{0}
	}
	for _, o := range orders {
		patterns = max(patterns, o+1)
	}

	data := make([]byte, patternDataPos+patterns*PatternSize)
	copy(data, b.Title)

	for i, smp := range b.samples {
		info := data[titleLen+i*sampleInfoLen:]
		copy(info[:22], smp.name)
		put16(info[22:], len(smp.data)/2)
		info[24] = byte(smp.fineTune & 0x0f)
		info[25] = byte(smp.volume)
		put16(info[26:], smp.loopStart/2)
		loopLength := smp.loopLength
		if loopLength == 0 {
			loopLength = 2
		}
		put16(info[28:], loopLength/2)
	}

	data[orderCountPos] = byte(len(orders))
	data[orderCountPos+1] = byte(b.RestartPos)
	for i, o := range orders {
		data[orderTablePos+i] = byte(o)
	}
	copy(data[signaturePos:], "M.K.")

	for i, p := range b.patterns {
		copy(data[patternDataPos+i*PatternSize:], p)
	}

	for _, smp := range b.samples {
		data = append(data, smp.data...)
	}

	return data
}

func put16(b []byte, v int) {
	b[0] = byte(v >> 8)
	b[1] = byte(v)
}
