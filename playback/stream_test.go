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

package playback_test

import (
	"bytes"
	"encoding/binary"
	"io"
	"testing"

	"github.com/jetsetilly/lightspeed/decoder"
	"github.com/jetsetilly/lightspeed/encoder"
	"github.com/jetsetilly/lightspeed/hardware/paula"
	"github.com/jetsetilly/lightspeed/playback"
	"github.com/jetsetilly/lightspeed/test"
)

func convert(t *testing.T) ([]byte, []byte) {
	t.Helper()

	smp := make([]byte, 256)
	for i := 2; i < len(smp); i++ {
		smp[i] = byte(i * 3)
	}

	e := encoder.New(encoder.Params{}, []byte("playback"))
	test.DemandSuccess(t, e.SetSampleInfo(1, smp, 0, 0, 256))

	e.SetPeriod(0, 214)
	e.SetVolume(0, 64)
	e.NoteOn(0, 1, 0, true)
	for i := 0; i < 3; i++ {
		test.DemandSuccess(t, e.NextFrame(960))
	}
	test.DemandSuccess(t, e.Synthesize())
	test.DemandSuccess(t, e.Export())

	var score, bank bytes.Buffer
	_, err := e.WriteScore(&score)
	test.DemandSuccess(t, err)
	_, err = e.WriteBank(&bank)
	test.DemandSuccess(t, err)

	return score.Bytes(), bank.Bytes()
}

func newDecoder(t *testing.T, score []byte, bank []byte) (*decoder.Decoder, *paula.Paula) {
	t.Helper()
	sc, err := decoder.Load(score, bank)
	test.DemandSuccess(t, err)
	pl := paula.NewPaula(encoder.HostRate)
	dec, err := decoder.NewDecoder(sc, pl)
	test.DemandSuccess(t, err)
	return dec, pl
}

// collects rendered audio as little endian bytes
type collector struct {
	bytes.Buffer
}

func (c *collector) WriteSamples(buf []int16) error {
	for _, v := range buf {
		c.Buffer.Write(binary.LittleEndian.AppendUint16(nil, uint16(v)))
	}
	return nil
}

func TestStream(t *testing.T) {
	score, bank := convert(t)

	dec, pl := newDecoder(t, score, bank)
	data, err := io.ReadAll(playback.NewStream(dec, pl))
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, len(data), 3*960*4)

	dec, pl = newDecoder(t, score, bank)
	var c collector
	frames, err := dec.Render(pl, &c)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, frames, 3)
	test.ExpectSuccess(t, bytes.Equal(data, c.Bytes()))

	// the note is audible
	var audible bool
	for _, b := range data {
		if b != 0 {
			audible = true
			break
		}
	}
	test.ExpectSuccess(t, audible)
}

func TestSmallReads(t *testing.T) {
	score, bank := convert(t)

	dec, pl := newDecoder(t, score, bank)
	s := playback.NewStream(dec, pl)

	var data []byte
	p := make([]byte, 7)
	for {
		n, err := s.Read(p)
		data = append(data, p[:n]...)
		if err == io.EOF {
			break
		}
		test.DemandSuccess(t, err)
	}
	test.ExpectEquality(t, len(data), 3*960*4)
}
