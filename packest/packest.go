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

// Package packest forecasts how well the files produced by the converter will
// compress. The forecast uses the LZMA compressor, which is similar to the
// LZ and range coder packers used on the Amiga. A second figure from the
// zstd compressor is given for files that are to be distributed with the
// music rather than packed into an Amiga executable. The results are
// informational only and have no effect on the converted files.
package packest

import (
	"bytes"
	"fmt"

	"github.com/jetsetilly/lightspeed/curated"
	"github.com/klauspost/compress/zstd"
	"github.com/ulikunitz/xz/lzma"
)

// Estimate returns the size of the data after compression.
func Estimate(data []byte) (int, error) {
	var buf bytes.Buffer

	w, err := lzma.NewWriter(&buf)
	if err != nil {
		return 0, curated.Errorf("packest: %v", err)
	}
	if _, err := w.Write(data); err != nil {
		return 0, curated.Errorf("packest: %v", err)
	}
	if err := w.Close(); err != nil {
		return 0, curated.Errorf("packest: %v", err)
	}

	// the lzma header is not something an Amiga packer would write
	return max(buf.Len()-headerLen, 0), nil
}

// size of the header written by lzma.NewWriter
const headerLen = 13

// EstimateZstd returns the size of the data after compression with zstd at
// the best compression level.
func EstimateZstd(data []byte) (int, error) {
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
	if err != nil {
		return 0, curated.Errorf("packest: %v", err)
	}
	defer enc.Close()
	return len(enc.EncodeAll(data, nil)), nil
}

// Report is the estimate for a single file.
type Report struct {
	Name   string
	Size   int
	Packed int

	// size after zstd compression
	Zstd int
}

// NewReport estimates the compressed size of the data.
func NewReport(name string, data []byte) (Report, error) {
	p, err := Estimate(data)
	if err != nil {
		return Report{}, err
	}
	z, err := EstimateZstd(data)
	if err != nil {
		return Report{}, err
	}
	return Report{
		Name:   name,
		Size:   len(data),
		Packed: p,
		Zstd:   z,
	}, nil
}

// Ratio is the packed size as a percentage of the unpacked size.
func (r Report) Ratio() float64 {
	if r.Size == 0 {
		return 0
	}
	return float64(r.Packed) * 100 / float64(r.Size)
}

func (r Report) String() string {
	return fmt.Sprintf("%s: %d bytes -> %d bytes (%.02f%%), zstd %d bytes", r.Name, r.Size, r.Packed, r.Ratio(), r.Zstd)
}
