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

package performance

import (
	"fmt"
	"io"
	"time"

	"github.com/jetsetilly/lightspeed/decoder"
	"github.com/jetsetilly/lightspeed/encoder"
	"github.com/jetsetilly/lightspeed/hardware/paula"
)

// Result of a performance check.
type Result struct {
	Frames   int
	Duration time.Duration
	FPS      float64
	Realtime float64
}

func (r Result) String() string {
	return fmt.Sprintf("%.2f fps (%d frames in %.2f seconds) %.1fx realtime", r.FPS, r.Frames, r.Duration.Seconds(), r.Realtime)
}

// Check decodes the score with the Paula emulation for the duration. The
// score loops so the duration can be longer than the music.
func Check(output io.Writer, profile Profile, score []byte, bank []byte, duration time.Duration) (Result, error) {
	sc, err := decoder.Load(score, bank)
	if err != nil {
		return Result{}, fmt.Errorf("performance: %w", err)
	}

	pl := paula.NewPaula(encoder.HostRate)
	dec, err := decoder.NewDecoder(sc, pl)
	if err != nil {
		return Result{}, fmt.Errorf("performance: %w", err)
	}
	dec.SetLooping(true)

	var res Result
	var buf []int16

	runner := func() error {
		start := time.Now()
		deadline := start.Add(duration)

		// the clock is only checked every few frames
		const brake = 64

		for {
			for range brake {
				n, err := dec.Step()
				if err != nil {
					return err
				}
				if cap(buf) < n*2 {
					buf = make([]int16, n*2)
				}
				pl.Render(buf[:n*2])
				res.Frames++
			}
			if time.Now().After(deadline) {
				break
			}
		}

		res.Duration = time.Since(start)
		return nil
	}

	if err := RunProfiler(profile, "performance", runner); err != nil {
		return Result{}, fmt.Errorf("performance: %w", err)
	}

	res.FPS, res.Realtime = CalcFPS(res.Frames, res.Duration.Seconds(), dec.BPM())
	if output != nil {
		fmt.Fprintln(output, res)
	}

	return res, nil
}
