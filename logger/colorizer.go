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

package logger

import (
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

const (
	penNormal = "\033[0m"
	penRed    = "\033[31m"
	penYellow = "\033[33m"
)

// Colorizer applies basic coloring rules to logging output. Entries with
// "error" in the tag are red and entries with "warning" in the tag are yellow.
type Colorizer struct {
	out io.Writer
}

// NewColorizer returns a Colorizer for the file if the file is a terminal.
// Otherwise the file is returned unchanged.
func NewColorizer(out *os.File) io.Writer {
	if !term.IsTerminal(int(out.Fd())) {
		return out
	}
	return Colorizer{out: out}
}

// Write implements the io.Writer interface.
func (c Colorizer) Write(p []byte) (n int, err error) {
	s := string(p)
	tag, _, _ := strings.Cut(s, ": ")
	tag = strings.ToLower(tag)

	var pen string
	if strings.Contains(tag, "error") {
		pen = penRed
	} else if strings.Contains(tag, "warning") {
		pen = penYellow
	}

	if pen == "" {
		return c.out.Write(p)
	}

	if _, err := io.WriteString(c.out, pen); err != nil {
		return 0, err
	}
	n, err = c.out.Write(p)
	if err != nil {
		return n, err
	}
	_, err = io.WriteString(c.out, penNormal)
	return n, err
}
