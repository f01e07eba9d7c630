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

import "strings"

// Label returns the name of the replay handler for a command word. The name
// is made from the voice letter followed by a letter for the voice action and
// letters for volume and period changes. For example, "AtvpDv" means voice A
// plays an instrument with new volume and period and voice D has a new
// volume.
//
// The escape words are named "rewind", "getpos" and "setBPM". The zero word
// is named "None" unless it has been taken as an escape word.
func (e *Encoder) Label(word int) string {
	switch word {
	case e.escRewind:
		return "rewind"
	case e.escGetPos:
		return "getpos"
	case e.escSetBPM:
		return "setBPM"
	case 0:
		return "None"
	}

	s := strings.Builder{}
	for v := 0; v < NumVoices; v++ {
		changes := (word >> v) & 0x11
		code := VoiceCodeOf(uint16(word), v)
		if changes == 0 && code == VoiceNone {
			continue
		}
		s.WriteByte(byte('A' + v))
		switch code {
		case VoiceResetLength:
			s.WriteByte('r')
		case VoicePlayWithoutNote:
			s.WriteByte('s')
		case VoicePlayInstrument:
			s.WriteByte('t')
		}
		if changes&0x10 != 0 {
			s.WriteByte('v')
		}
		if changes&0x01 != 0 {
			s.WriteByte('p')
		}
	}
	return s.String()
}
