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

// Package dictionary implements a frequency ranked bijection between integer
// values and dense codes.
//
// Values are assigned the next free code the first time they are registered.
// Every registration, first or not, increments the usage count of the value.
// Once all values have been registered SortValues() reassigns the codes so
// that code 0 is the most used value, code 1 the next most used and so on.
//
// The LSP format stores codes as a run of zero bytes followed by a non-zero
// byte, so the lower the code the cheaper it is to store. See CodeSize().
package dictionary

import (
	"slices"

	"github.com/jetsetilly/lightspeed/curated"
)

// Sentinal error patterns.
const (
	CodeSpaceExhausted = "dictionary: %d codes exceeds maximum of %d"
	NoUnusedValue      = "dictionary: all %d values are in use"
)

// DummyCount is the usage count given to dummy entries. It is larger than any
// real usage count so dummy entries can be identified.
const DummyCount = 0x7fffffff

// Dictionary maps values in the range [0, maxValues) to codes in the range
// [0, CodesCount()).
type Dictionary struct {
	maxValues int
	maxCodes  int

	valueToCode []int
	codeToValue []int
	counts      []int
	codeCount   int
}

// NewDictionary is the preferred method of initialisation for the Dictionary
// type. The maxCodes value is the number of codes that can be represented by
// the eventual consumer of the codes. It is not enforced by RegisterValue()
// but is checked by CheckCapacity().
func NewDictionary(maxValues int, maxCodes int) *Dictionary {
	return &Dictionary{
		maxValues:   maxValues,
		maxCodes:    maxCodes,
		valueToCode: make([]int, maxValues),
		codeToValue: make([]int, maxValues),
		counts:      make([]int, maxValues),
	}
}

// MaxCodes returns the maximum number of codes the dictionary was created
// with.
func (d *Dictionary) MaxCodes() int {
	return d.maxCodes
}

// CodesCount returns the number of codes assigned.
func (d *Dictionary) CodesCount() int {
	return d.codeCount
}

// CheckCapacity returns an error if more codes have been assigned than the
// maximum allowed.
func (d *Dictionary) CheckCapacity() error {
	if d.codeCount > d.maxCodes {
		return curated.Errorf(CodeSpaceExhausted, d.codeCount, d.maxCodes)
	}
	return nil
}

// IsValueRegistered returns true if the value has a usage count greater than
// zero.
func (d *Dictionary) IsValueRegistered(value int) bool {
	if value < 0 || value >= d.maxValues {
		return false
	}
	return d.counts[value] > 0
}

// RegisterValue returns the code for the value, assigning the next free code
// if the value has not been seen before. The usage count for the value is
// incremented in both cases. Returns -1 if the value is out of range.
func (d *Dictionary) RegisterValue(value int) int {
	if value < 0 || value >= d.maxValues {
		return -1
	}

	var code int
	if d.counts[value] > 0 {
		code = d.valueToCode[value]
	} else {
		code = d.codeCount
		d.valueToCode[value] = code
		d.codeToValue[code] = value
		d.codeCount++
	}

	d.counts[value]++
	return code
}

// Count returns the usage count of a value.
func (d *Dictionary) Count(value int) int {
	if value < 0 || value >= d.maxValues {
		return 0
	}
	return d.counts[value]
}

// ValueFromCode returns the value for a code. Returns -1 if the code has not
// been assigned.
func (d *Dictionary) ValueFromCode(code int) int {
	if code < 0 || code >= d.codeCount {
		return -1
	}
	return d.codeToValue[code]
}

// CodeFromValue returns the code for a value. Returns -1 if the value is not
// registered.
func (d *Dictionary) CodeFromValue(value int) int {
	if !d.IsValueRegistered(value) {
		return -1
	}
	return d.valueToCode[value]
}

// FirstUnusedValue returns the smallest value with a usage count of zero.
// Returns -1 if every value is in use.
func (d *Dictionary) FirstUnusedValue() int {
	for v, c := range d.counts {
		if c == 0 {
			return v
		}
	}
	return -1
}

// AddDummyCodeEntry assigns the next code to an otherwise unused value. The
// entry is marked with DummyCount and is never referenced by real data.
func (d *Dictionary) AddDummyCodeEntry() error {
	v := d.FirstUnusedValue()
	if v < 0 {
		return curated.Errorf(NoUnusedValue, d.maxValues)
	}
	d.RegisterValue(v)
	d.counts[v] = DummyCount
	return nil
}

// IsDummyCodeEntry returns true if the code was created by
// AddDummyCodeEntry().
func (d *Dictionary) IsDummyCodeEntry(code int) bool {
	v := d.ValueFromCode(code)
	if v < 0 {
		return false
	}
	return d.counts[v] == DummyCount
}

// ValueUsedCount returns the sum of the usage counts of every assigned code.
// Dummy entries contribute DummyCount.
func (d *Dictionary) ValueUsedCount() int {
	var n int
	for c := 0; c < d.codeCount; c++ {
		n += d.counts[d.codeToValue[c]]
	}
	return n
}

type sortElement struct {
	value int
	count int
}

// SortValues reassigns codes in order of usage count, most used first.
//
// Values with equal usage counts keep their relative code order. In other
// words, for equal counts the value that was registered first receives the
// lower code. This makes the code assignment a deterministic function of the
// registration sequence.
func (d *Dictionary) SortValues() {
	list := make([]sortElement, d.codeCount)
	for c := range list {
		v := d.codeToValue[c]
		list[c] = sortElement{value: v, count: d.counts[v]}
	}

	slices.SortStableFunc(list, func(a, b sortElement) int {
		return b.count - a.count
	})

	for c, e := range list {
		d.valueToCode[e.value] = c
		d.codeToValue[c] = e.value
	}
}

// CodeSize returns the number of bytes needed to store a code in the
// variable length representation.
func CodeSize(code int) int {
	return code/255 + 1
}

// TableSize returns the number of entries in a code table for codesCount
// codes, including the reserved zero entry that precedes every block of 255
// codes.
func TableSize(codesCount int) int {
	return codesCount + (codesCount+254)/255
}
