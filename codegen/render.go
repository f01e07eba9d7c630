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

package codegen

import (
	"io"
	"strings"
)

// Renderer is a Visitor that writes 68000 assembly text in the style of the
// Devpac family of assemblers.
type Renderer struct {
	w io.Writer
}

// NewRenderer is the preferred method of initialisation for the Renderer
// type.
func NewRenderer(w io.Writer) *Renderer {
	return &Renderer{w: w}
}

// Visit implements the Visitor interface.
func (r *Renderer) Visit(in Instr) error {
	s := strings.Builder{}

	switch in.Kind {
	case KindLabel:
		s.WriteString(in.Label)
		s.WriteString(":")
		if in.Comment != "" {
			s.WriteString("\t; ")
			s.WriteString(in.Comment)
		}

	case KindComment:
		s.WriteString(";")
		if in.Comment != "" {
			s.WriteString("\t")
			s.WriteString(in.Comment)
		}

	case KindBlank:

	case KindInstr:
		if in.Label != "" {
			s.WriteString(in.Label)
			s.WriteString(":")
		}
		s.WriteString("\t\t")
		s.WriteString(in.Op)
		if len(in.Operands) > 0 {
			s.WriteString("\t")
			s.WriteString(strings.Join(in.Operands, ","))
		}
		if in.Comment != "" {
			s.WriteString("\t; ")
			s.WriteString(in.Comment)
		}
	}

	s.WriteString("\n")
	_, err := io.WriteString(r.w, s.String())
	return err
}

// Render writes the Program to the io.Writer as assembly text.
func Render(w io.Writer, p *Program) error {
	return p.Walk(NewRenderer(w))
}
