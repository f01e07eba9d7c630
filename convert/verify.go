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

package convert

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/jetsetilly/lightspeed/curated"
	"github.com/jetsetilly/lightspeed/decoder"
	"github.com/jetsetilly/lightspeed/encoder"
	"github.com/jetsetilly/lightspeed/hardware/paula"
	"github.com/jetsetilly/lightspeed/sequencer"
	"github.com/jetsetilly/lightspeed/tracker"
)

// VerifyFailed is returned by Verify() when the decoded score does not
// reproduce the captured events.
const VerifyFailed = "convert: verification failed: %d mismatches (first at frame %d: %s)"

// maximum number of mismatches kept in a Verification
const maxMismatches = 16

// Mismatch is a difference between a captured event and the register writes
// made by the decoder.
type Mismatch struct {
	Frame  int
	Voice  int
	Detail string
}

func (m Mismatch) String() string {
	if m.Voice < 0 {
		return fmt.Sprintf("frame %d: %s", m.Frame, m.Detail)
	}
	return fmt.Sprintf("frame %d voice %d: %s", m.Frame, m.Voice, m.Detail)
}

// Verification is the result of Verify().
type Verification struct {
	Frames     int
	Count      int
	Mismatches []Mismatch
}

func (v *Verification) add(frame int, voice int, format string, args ...any) {
	v.Count++
	if len(v.Mismatches) < maxMismatches {
		v.Mismatches = append(v.Mismatches, Mismatch{
			Frame:  frame,
			Voice:  voice,
			Detail: fmt.Sprintf(format, args...),
		})
	}
}

// Verify converts the MOD file in memory, decodes the result and checks that
// every captured event is reproduced by the decoder. No files are written.
//
// A VerifyFailed error is returned along with the Verification if there are
// any mismatches.
func Verify(ctx context.Context, p Params, output io.Writer) (*Verification, error) {
	if err := p.Check(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(p.Filename)
	if err != nil {
		return nil, curated.Errorf("convert: %v", err)
	}

	mod, e, err := prepare(p, data)
	if err != nil {
		return nil, err
	}

	seq := sequencer.NewSequencer(mod, sequencer.Options{
		NoSetTempo: p.NoSetTempo,
		Rate:       encoder.HostRate,
	})
	if _, err := seq.Run(e, nil); err != nil {
		return nil, curated.Errorf("convert: %v", err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := e.Synthesize(); err != nil {
		return nil, curated.Errorf("convert: %v", err)
	}
	if err := e.Export(); err != nil {
		return nil, curated.Errorf("convert: %v", err)
	}

	var score, bank bytes.Buffer
	if _, err := e.WriteScore(&score); err != nil {
		return nil, curated.Errorf("convert: %v", err)
	}
	if _, err := e.WriteBank(&bank); err != nil {
		return nil, curated.Errorf("convert: %v", err)
	}

	sc, err := decoder.Load(score.Bytes(), bank.Bytes())
	if err != nil {
		return nil, curated.Errorf("convert: %v", err)
	}

	tr := tracker.NewTracker(0)
	pl := paula.NewPaula(encoder.HostRate)
	pl.SetTracker(tr)

	dec, err := decoder.NewDecoder(sc, pl)
	if err != nil {
		return nil, curated.Errorf("convert: %v", err)
	}
	dec.SetTracker(tr)

	if _, err := dec.Render(pl, nil); err != nil {
		return nil, curated.Errorf("convert: %v", err)
	}

	v, err := compare(e, tr.Copy())
	if err != nil {
		return nil, err
	}

	fmt.Fprintf(output, "Verified %d frames of %s: ", v.Frames, p.Filename)
	if v.Count == 0 {
		fmt.Fprintln(output, "OK")
		return v, nil
	}
	fmt.Fprintf(output, "%d mismatches\n", v.Count)
	for _, m := range v.Mismatches {
		fmt.Fprintf(output, "  %s\n", m)
	}

	first := v.Mismatches[0]
	return v, curated.Errorf(VerifyFailed, v.Count, first.Frame, first.Detail)
}

// compare the decoded register writes with the captured events
func compare(e *encoder.Encoder, entries []tracker.Entry) (*Verification, error) {
	d, err := e.Descriptors()
	if err != nil {
		return nil, curated.Errorf("convert: %v", err)
	}

	v := &Verification{
		Frames: e.FrameCount(),
	}

	if len(entries) != e.FrameCount() {
		v.add(len(entries), -1, "decoded %d frames, expected %d", len(entries), e.FrameCount())
	}

	for f := 0; f < min(e.FrameCount(), len(entries)); f++ {
		en := entries[f]
		if en.Word != e.CommandWord(f) {
			v.add(f, -1, "command word %04x, expected %04x", en.Word, e.CommandWord(f))
		}

		for vc := 0; vc < encoder.NumVoices; vc++ {
			ev := e.Event(f, vc)
			dv := en.Voices[vc]

			if dv.VolumeSet != ev.VolumeSet || (ev.VolumeSet && dv.Volume != ev.Volume) {
				v.add(f, vc, "volume %d (set=%v), expected %d (set=%v)", dv.Volume, dv.VolumeSet, ev.Volume, ev.VolumeSet)
			}
			if dv.PeriodSet != ev.PeriodSet || (ev.PeriodSet && dv.Period != ev.Period) {
				v.add(f, vc, "period %d (set=%v), expected %d (set=%v)", dv.Period, dv.PeriodSet, ev.Period, ev.PeriodSet)
			}

			if ev.Instrument > 0 && ev.DMARestart {
				id := e.InstrumentCode(ev.Instrument, ev.Offset)
				switch {
				case id < 0 || id >= len(d):
					v.add(f, vc, "instrument %d offset %d is not in the instrument table", ev.Instrument, ev.Offset)
				case !dv.Started:
					v.add(f, vc, "sample was not started")
				case dv.Start != int(d[id].Start):
					v.add(f, vc, "sample started at %06x, expected %06x", dv.Start, d[id].Start)
				}
			} else if dv.Started {
				v.add(f, vc, "unexpected sample start at %06x", dv.Start)
			}
		}
	}

	return v, nil
}
