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
	"os"

	"github.com/jetsetilly/lightspeed/curated"
	"github.com/jetsetilly/lightspeed/decoder"
	"github.com/jetsetilly/lightspeed/digest"
	"github.com/jetsetilly/lightspeed/encoder"
	"github.com/jetsetilly/lightspeed/hardware/paula"
	"github.com/jetsetilly/lightspeed/logger"
	"github.com/jetsetilly/lightspeed/tracker"
	"github.com/jetsetilly/lightspeed/wavwriter"
)

// PreviewResult is the outcome of decoding a score.
type PreviewResult struct {
	Frames int
	Micro  bool

	// digest of the rendered audio
	Digest string
}

// fan out rendered audio to more than one output
type outputs []decoder.Output

func (o outputs) WriteSamples(buf []int16) error {
	for _, out := range o {
		if err := out.WriteSamples(buf); err != nil {
			return err
		}
	}
	return nil
}

// Preview loads a score and sample bank and decodes them through the Paula
// emulation. The audio is written to wavFile, unless it is empty. With
// verbose set every decoded frame is logged.
func Preview(scoreFile string, bankFile string, wavFile string, verbose bool) (PreviewResult, error) {
	score, err := os.ReadFile(scoreFile)
	if err != nil {
		return PreviewResult{}, curated.Errorf("convert: %v", err)
	}
	bank, err := os.ReadFile(bankFile)
	if err != nil {
		return PreviewResult{}, curated.Errorf("convert: %v", err)
	}
	return preview(score, bank, wavFile, verbose)
}

func preview(score []byte, bank []byte, wavFile string, verbose bool) (PreviewResult, error) {
	sc, err := decoder.Load(score, bank)
	if err != nil {
		return PreviewResult{}, curated.Errorf("convert: %v", err)
	}
	sc.Log(logger.Flag(verbose))

	pl := paula.NewPaula(encoder.HostRate)
	dec, err := decoder.NewDecoder(sc, pl)
	if err != nil {
		return PreviewResult{}, curated.Errorf("convert: %v", err)
	}

	var tr *tracker.Tracker
	if verbose {
		tr = tracker.NewTracker(0)
		pl.SetTracker(tr)
		dec.SetTracker(tr)
	}

	dig := digest.NewAudio()
	out := outputs{dig}

	var wav *wavwriter.WavWriter
	if wavFile != "" {
		wav, err = wavwriter.New(wavFile, encoder.HostRate, 2)
		if err != nil {
			return PreviewResult{}, curated.Errorf("convert: %v", err)
		}
		out = append(out, wav)
	}

	res := PreviewResult{
		Micro: sc.Micro,
	}

	res.Frames, err = dec.Render(pl, out)
	if err != nil {
		return PreviewResult{}, curated.Errorf("convert: %v", err)
	}

	if wav != nil {
		if err := wav.EndMixing(); err != nil {
			return PreviewResult{}, curated.Errorf("convert: %v", err)
		}
	}

	if tr != nil {
		for _, e := range tr.Copy() {
			logger.Log(logger.Allow, "preview", e.String())
		}
	}

	res.Digest = dig.Hash()

	return res, nil
}
