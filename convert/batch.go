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
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Outcome of a single conversion in a batch.
type Outcome struct {
	Filename string
	Result   *Result
	Err      error

	// the information written by the conversion
	Output string
}

// Batch converts every file in the list using the same Params. Up to jobs
// conversions run concurrently. A value less than one uses the number of
// CPUs.
//
// A failed conversion does not stop the batch. The outcomes are returned in
// the same order as the filenames and the output of every conversion is
// written to output in that order once the batch has finished. The only
// error returned by Batch() is the error of the context.
func Batch(ctx context.Context, filenames []string, p Params, jobs int, output io.Writer) ([]Outcome, error) {
	if jobs < 1 {
		jobs = runtime.NumCPU()
	}

	outcomes := make([]Outcome, len(filenames))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)

	for i, fn := range filenames {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			job := p
			job.Filename = fn

			var buf bytes.Buffer
			res, err := Run(ctx, job, &buf)
			outcomes[i] = Outcome{
				Filename: fn,
				Result:   res,
				Err:      err,
				Output:   buf.String(),
			}
			return nil
		})
	}

	err := g.Wait()

	var converted int
	for _, o := range outcomes {
		if o.Filename == "" {
			continue
		}
		io.WriteString(output, o.Output)
		if o.Err != nil {
			fmt.Fprintf(output, "* %s: %v\n", o.Filename, o.Err)
		} else {
			converted++
		}
		fmt.Fprintln(output)
	}
	fmt.Fprintf(output, "converted %d of %d files\n", converted, len(filenames))

	return outcomes, err
}
