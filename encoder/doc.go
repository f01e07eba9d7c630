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

// Package encoder converts the per-frame events of a simulated MOD playback
// into the LSP score and sample bank.
//
// An Encoder is a conversion context. It is created with New() and used in
// three passes. In the first pass the playback simulation calls the capture
// functions once per frame (SetPeriod(), SetVolume(), NoteOn(), SetSeqPos(),
// SetSeqLoop() and SetTempo()) followed by NextFrame(). The second pass,
// Synthesize(), folds the captured events into one command word per frame and
// builds the value dictionaries. The final pass, Export(), serialises the
// frames into the byte and word streams and fixes the layout of the sample
// bank. WriteScore() and WriteBank() then output the two files.
//
// The passes must be run in order because sorting the command dictionary in
// the second pass changes the code assignment used in the third.
//
// The normal score layout is:
//
//	'LSP1' uid major minor flags bpm esc_rewind esc_setbpm esc_getpos frames
//	instrument_count instruments[] table_size table[] seq_count seq[]
//	word_stream_size byte_loop word_loop word_stream byte_stream
//
// All values are big-endian. The micro layout ('LSPm') has no uid, no escape
// codes and no code table. Instead it has sixteen stream offsets followed by
// sixteen streams, four for each voice.
package encoder
