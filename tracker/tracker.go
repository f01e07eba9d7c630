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

// Package tracker records the chip register writes made by the decoder,
// grouped by frame. The record is used to compare a decoded score with the
// events captured by the encoder and for the verbose frame listing.
package tracker

import (
	"fmt"
	"strings"

	"github.com/jetsetilly/lightspeed/hardware/paula"
)

// Voice is the register activity of a voice during a frame.
type Voice struct {
	Volume    int
	VolumeSet bool

	Period    int
	PeriodSet bool

	// most recent address and length written. the length is in words
	Address    int
	Length     int
	AddressSet bool

	// DMA was started for the voice. Start is the address the sample
	// started from
	Started bool
	Start   int

	Stopped bool
}

// Entry is the register activity of a frame.
type Entry struct {
	Frame  int
	Word   uint16
	Voices [paula.NumVoices]Voice
}

func (e Entry) String() string {
	s := strings.Builder{}
	s.WriteString(fmt.Sprintf("%05d %04x", e.Frame, e.Word))
	for _, v := range e.Voices {
		s.WriteString(" |")
		if v.Started {
			s.WriteString(fmt.Sprintf(" %06x", v.Start))
		} else {
			s.WriteString(" ------")
		}
		if v.PeriodSet {
			s.WriteString(fmt.Sprintf(" %s", LookupMusicalNote(v.Period)))
		} else {
			s.WriteString(" ---")
		}
		if v.VolumeSet {
			s.WriteString(fmt.Sprintf(" %02d", v.Volume))
		} else {
			s.WriteString(" --")
		}
	}
	return s.String()
}

// Tracker implements the paula.Tracker and decoder.Tracker interfaces and
// keeps a history of the register writes.
type Tracker struct {
	entries []Entry
	current Entry

	// maximum number of entries kept. older entries are dropped. zero means
	// no limit
	limit int
}

// NewTracker is the preferred method of initialisation for the Tracker type.
func NewTracker(limit int) *Tracker {
	return &Tracker{
		entries: make([]Entry, 0, 1024),
		limit:   limit,
	}
}

// Reset removes all entries.
func (tr *Tracker) Reset() {
	tr.entries = tr.entries[:0]
	tr.current = Entry{}
}

// PaulaWrite implements the paula.Tracker interface.
func (tr *Tracker) PaulaWrite(voice int, reg paula.Register, value int) {
	if voice < 0 || voice >= paula.NumVoices {
		return
	}

	v := &tr.current.Voices[voice]
	switch reg {
	case paula.RegVolume:
		v.Volume = value
		v.VolumeSet = true
	case paula.RegPeriod:
		v.Period = value
		v.PeriodSet = true
	case paula.RegAddress:
		v.Address = value
		v.AddressSet = true
	case paula.RegLength:
		v.Length = value
	case paula.RegDMAStart:
		v.Started = true
		v.Start = value
	case paula.RegDMAStop:
		v.Stopped = true
	}
}

// DecodedFrame implements the decoder.Tracker interface.
func (tr *Tracker) DecodedFrame(frame int, word uint16) {
	tr.current.Frame = frame
	tr.current.Word = word
	tr.entries = append(tr.entries, tr.current)
	if tr.limit > 0 && len(tr.entries) > tr.limit {
		tr.entries = tr.entries[1:]
	}
	tr.current = Entry{}
}

// Copy makes a copy of the Tracker entries.
func (tr *Tracker) Copy() []Entry {
	return append([]Entry{}, tr.entries...)
}
