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

package tracker

import "fmt"

// MusicalNote is the name of a note in the tracker style. For example, "C#2"
// or "A-1".
type MusicalNote string

// NoMusicalNote is returned for a period that is not close to any note.
const NoMusicalNote = MusicalNote("???")

var noteNames = [12]string{"C-", "C#", "D-", "D#", "E-", "F-", "F#", "G-", "G#", "A-", "A#", "B-"}

// periods of the three octaves of a MOD file with no finetune
var notePeriods = [36]int{
	856, 808, 762, 720, 678, 640, 604, 570, 538, 508, 480, 453,
	428, 404, 381, 360, 339, 320, 302, 285, 269, 254, 240, 226,
	214, 202, 190, 180, 170, 160, 151, 143, 135, 127, 120, 113,
}

// LookupMusicalNote converts a period into the nearest musical note. Periods
// more than a quarter tone away from a note, which includes everything
// outside the three octaves, return NoMusicalNote.
func LookupMusicalNote(period int) MusicalNote {
	best := -1
	bestDiff := 0
	for i, p := range notePeriods {
		d := p - period
		if d < 0 {
			d = -d
		}
		if best == -1 || d < bestDiff {
			best = i
			bestDiff = d
		}
	}

	// a quarter tone is roughly three percent of the period
	if bestDiff*100 > notePeriods[best]*3 {
		return NoMusicalNote
	}

	return MusicalNote(fmt.Sprintf("%s%d", noteNames[best%12], best/12+1))
}
