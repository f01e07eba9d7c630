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
	"path/filepath"

	"github.com/jetsetilly/lightspeed/codegen"
	"github.com/jetsetilly/lightspeed/curated"
	"github.com/jetsetilly/lightspeed/encoder"
	"github.com/jetsetilly/lightspeed/logger"
	"github.com/jetsetilly/lightspeed/modfile"
	"github.com/jetsetilly/lightspeed/packest"
	"github.com/jetsetilly/lightspeed/sequencer"
	"github.com/jetsetilly/lightspeed/wavwriter"
)

// Result of a conversion.
type Result struct {
	Names Names

	// number of frames captured from the sequencer
	Frames int

	// duration in seconds
	Duration int

	ScoreSize int
	BankSize  int

	// packed size estimate. only set if Params.Pack is true
	Pack *packest.Report

	// result of the amiga preview. only set if Params.AmigaPreview is true
	Preview *PreviewResult
}

// Run converts the MOD file named in the Params. Information about the
// conversion is written to output in the same form as the summary printed by
// the command line tool.
func Run(ctx context.Context, p Params, output io.Writer) (*Result, error) {
	if err := p.Check(); err != nil {
		return nil, err
	}

	res := &Result{
		Names: NewNames(p.Filename, p.Micro),
	}

	fmt.Fprintf(output, "Loading %s...\n", p.Filename)

	data, err := os.ReadFile(p.Filename)
	if err != nil {
		return nil, curated.Errorf("convert: %v", err)
	}

	mod, e, err := prepare(p, data)
	if err != nil {
		return nil, err
	}

	// capture pass
	seq := sequencer.NewSequencer(mod, sequencer.Options{
		NoSetTempo: p.NoSetTempo,
		Rate:       encoder.HostRate,
	})

	var pcm *wavwriter.WavWriter
	if p.PCPreview {
		pcm, err = wavwriter.New(res.Names.Wav, encoder.HostRate, 2)
		if err != nil {
			return nil, curated.Errorf("convert: %v", err)
		}
		fmt.Fprintf(output, "Rendering into %s...\n", res.Names.Wav)
		res.Frames, err = seq.Run(e, pcm)
	} else {
		res.Frames, err = seq.Run(e, nil)
	}
	if err != nil {
		return nil, curated.Errorf("convert: %v", err)
	}

	if pcm != nil {
		if err := pcm.EndMixing(); err != nil {
			return nil, curated.Errorf("convert: %v", err)
		}
	}

	e.ModInfo(output, len(mod.Patterns)*modfile.PatternSize)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := e.Synthesize(); err != nil {
		return nil, curated.Errorf("convert: %v", err)
	}
	if err := e.Export(); err != nil {
		return nil, curated.Errorf("convert: %v", err)
	}

	if p.Insane {
		fmt.Fprintf(output, "Writing LSP insane player source code (%s)\n", res.Names.Insane)
		prog, err := codegen.Generate(e, filepath.Base(res.Names.Score))
		if err != nil {
			return nil, curated.Errorf("convert: %v", err)
		}
		err = writeFile(res.Names.Insane, func(w io.Writer) error {
			return codegen.Render(w, prog)
		})
		if err != nil {
			return nil, err
		}
	}

	var bank bytes.Buffer
	if _, err := e.WriteBank(&bank); err != nil {
		return nil, curated.Errorf("convert: %v", err)
	}
	var score bytes.Buffer
	if _, err := e.WriteScore(&score); err != nil {
		return nil, curated.Errorf("convert: %v", err)
	}
	res.BankSize = bank.Len()
	res.ScoreSize = score.Len()
	res.Duration = e.Duration()

	if err := writeFile(res.Names.Bank, bytesWriter(bank.Bytes())); err != nil {
		return nil, err
	}
	if err := writeFile(res.Names.Score, bytesWriter(score.Bytes())); err != nil {
		return nil, err
	}

	e.Summary(output)

	if p.AmigaPreview {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		pr, err := preview(score.Bytes(), bank.Bytes(), res.Names.AmigaWav, p.Verbose)
		if err != nil {
			return nil, err
		}
		fmt.Fprintf(output, "Amiga preview...: %s (%d frames)\n", res.Names.AmigaWav, pr.Frames)
		res.Preview = &pr
	}

	if p.Pack {
		fmt.Fprintf(output, "Packing estimation for \"%s\"\n", res.Names.Score)
		r, err := packest.NewReport(res.Names.Score, score.Bytes())
		if err != nil {
			return nil, curated.Errorf("convert: %v", err)
		}
		fmt.Fprintf(output, "Packing from %d to %d bytes\n", r.Size, r.Packed)
		logger.Logf(logger.Flag(p.Verbose), "convert", "zstd estimate %d bytes", r.Zstd)
		res.Pack = &r
	}

	return res, nil
}

// prepare parses the MOD file and creates an encoder with the sample
// information of the MOD
func prepare(p Params, data []byte) (*modfile.Module, *encoder.Encoder, error) {
	mod, err := modfile.Parse(data)
	if err != nil {
		return nil, nil, curated.Errorf("convert: %v", err)
	}
	logger.Logf(logger.Flag(p.Verbose), "convert", "%s", mod)

	e := encoder.New(p.encoderParams(), data)
	for i, smp := range mod.Samples {
		if len(smp.Data) == 0 {
			continue
		}
		err := e.SetSampleInfo(i+1, smp.Data, smp.Offset, smp.LoopStart, smp.LoopLength)
		if err != nil {
			return nil, nil, curated.Errorf("convert: %v", err)
		}
	}
	e.SetOriginalSampleBank(mod.SampleRegion())

	return mod, e, nil
}

func bytesWriter(data []byte) func(io.Writer) error {
	return func(w io.Writer) error {
		_, err := w.Write(data)
		return err
	}
}

// writeFile creates the named file and passes it to the write function
func writeFile(filename string, write func(io.Writer) error) (rerr error) {
	f, err := os.Create(filename)
	if err != nil {
		return curated.Errorf("convert: %v", err)
	}
	defer func() {
		if err := f.Close(); err != nil && rerr == nil {
			rerr = curated.Errorf("convert: %v", err)
		}
	}()

	if err := write(f); err != nil {
		return curated.Errorf("convert: %v", err)
	}

	logger.Logf(logger.Allow, "convert", "written %s", filename)

	return nil
}
