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

import (
	"fmt"
	"io"

	"github.com/jetsetilly/lightspeed/logger"
)

func kib(n int) int {
	return (n + 1023) >> 10
}

// Duration returns the length of the music in seconds, as measured by the
// playback simulation.
func (e *Encoder) Duration() int {
	return (e.hostSamples + HostRate - 1) / HostRate
}

// ModInfo writes information about the captured MOD to the io.Writer. The
// scoreSize argument is the size of the pattern data of the MOD.
func (e *Encoder) ModInfo(output io.Writer, scoreSize int) {
	fmt.Fprintf(output, "MOD File........: %3d KiB\n", kib(e.modSize))
	fmt.Fprintf(output, "  MOD Samples...: %d bytes\n", len(e.originalBank))
	fmt.Fprintf(output, "  MOD Score.....: %d bytes\n", scoreSize)

	if e.setBPMCount > 1 {
		fmt.Fprintf(output, "  BPM changed %d times during MOD!\n", e.setBPMCount)
	} else {
		fmt.Fprintf(output, "  Main BPM......: %d (%dHz)\n", e.bpm, e.bpm*2/5)
	}

	if e.setBPMCount > 1 || e.bpm != DefaultBPM {
		logger.Log(logger.Allow, "encoder warning", "non conventional BPM. use CIA player")
	}

	logger.Logf(e.verbose, "encoder", "sample offset used: %v", e.sampleOffsetUsed)
	logger.Logf(e.verbose, "encoder", "sequence count: %d", e.seqHighest+1)
}

// Summary writes information about the conversion to the io.Writer. Only
// meaningful after the score has been written.
func (e *Encoder) Summary(output io.Writer) {
	fmt.Fprintf(output, "LSP File........: %3d KiB\n", kib(e.scoreSize+e.bankSize))
	fmt.Fprintf(output, "  LSP Samples...: %d bytes\n", e.bankSize)
	fmt.Fprintf(output, "  LSP Score.....: %d bytes\n", e.scoreSize)
	d := e.Duration()
	fmt.Fprintf(output, "  Duration......: %02d:%02d\n", d/60, d%60)
	fmt.Fprintf(output, "  LSP Frames....: %d\n", e.frameCount)
	if e.params.SetPos {
		fmt.Fprintf(output, "  SetPos enabled (%d bytes)\n", e.seqFinalCount*8)
	}
	if e.params.GetPos {
		fmt.Fprintf(output, "  GetPos enabled (%d bytes)\n", e.seqFinalCount*3)
	}

	logger.Logf(e.verbose, "encoder", "periods count: %d", e.periods.CodesCount())
	logger.Logf(e.verbose, "encoder", "LSP instruments: %d", e.instruments.CodesCount())
	logger.Logf(e.verbose, "encoder", "cmd count: %d", e.cmds.CodesCount())
	for i, s := range e.streams {
		logger.Logf(e.verbose, "encoder", "stream #%02d: %d bytes", i, s.Len())
	}

	if e.params.Micro {
		fmt.Fprintln(output, "NOTE: micro mode enabled, please use the LightSpeedPlayer_Micro.asm replayer")
	}
}
