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
	"path/filepath"
	"strings"

	"github.com/jetsetilly/lightspeed/curated"
	"github.com/jetsetilly/lightspeed/encoder"
)

// Sentinal error patterns.
const (
	IncompatibleOptions = "convert: %s"
	NoFilename          = "convert: no MOD file specified"
)

// Params are the options for a single conversion.
type Params struct {
	Filename string

	// generate the insane replay routine
	Insane bool

	// sequence position support
	GetPos bool
	SetPos bool

	// shrink samples to the part actually played
	Shrink bool

	// keep the sample layout of the MOD file
	KeepLayout bool

	Verbose bool

	// write the mix of the sequencer to a WAV file
	PCPreview bool

	// ignore Fxx tempo commands
	NoSetTempo bool

	// decode the converted files through the Paula emulation and write the
	// result to a WAV file
	AmigaPreview bool

	// estimate the packed size of the score
	Pack bool

	// use the micro layout
	Micro bool

	// maximum number of frames. zero means encoder.DefaultFrameMax
	FrameMax int
}

// Check returns an error if the combination of options is not supported.
func (p Params) Check() error {
	if p.Filename == "" {
		return curated.Errorf(NoFilename)
	}
	if p.Insane && p.Micro {
		return curated.Errorf(IncompatibleOptions, "insane player does not support micro mode")
	}
	if p.GetPos || p.SetPos {
		if p.Micro {
			return curated.Errorf(IncompatibleOptions, "micro mode does not support getpos or setpos")
		}
		if p.Insane {
			return curated.Errorf(IncompatibleOptions, "insane mode does not support getpos or setpos")
		}
	}
	if p.KeepLayout && p.Shrink {
		return curated.Errorf(IncompatibleOptions, "nosampleoptim is not compatible with shrink")
	}
	return nil
}

func (p Params) encoderParams() encoder.Params {
	return encoder.Params{
		Micro:      p.Micro,
		KeepLayout: p.KeepLayout,
		Shrink:     p.Shrink,
		GetPos:     p.GetPos,
		SetPos:     p.SetPos,
		FrameMax:   p.FrameMax,
		Verbose:    p.Verbose,
	}
}

// Names of the files produced by a conversion.
type Names struct {
	Bank     string
	Score    string
	Insane   string
	Wav      string
	AmigaWav string
}

// NewNames returns the output names for a MOD file. The names are the MOD
// filename with the extension replaced.
func NewNames(filename string, micro bool) Names {
	base := strings.TrimSuffix(filename, filepath.Ext(filename))

	n := Names{
		Bank:     base + ".lsbank",
		Score:    base + ".lsmusic",
		Insane:   base + "_insane.asm",
		Wav:      base + ".wav",
		AmigaWav: base + "_amiga.wav",
	}
	if micro {
		n.Score = base + "_micro.lsmusic"
	}

	return n
}
