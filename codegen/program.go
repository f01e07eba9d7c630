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

import "fmt"

// Kind is the type of a Line in a Program.
type Kind int

// List of valid Kind values.
const (
	// an instruction or an assembler directive, with an optional label
	KindInstr Kind = iota

	// a label on its own line
	KindLabel

	// a comment on its own line
	KindComment

	// an empty line
	KindBlank
)

// Instr is a line in a Program. Not all fields are used by every Kind of
// line.
type Instr struct {
	Kind     Kind
	Label    string
	Op       string
	Operands []string
	Comment  string
}

func (in Instr) String() string {
	switch in.Kind {
	case KindLabel:
		return fmt.Sprintf("%s:", in.Label)
	case KindComment:
		return fmt.Sprintf("; %s", in.Comment)
	case KindBlank:
		return ""
	}
	return fmt.Sprintf("%s %v", in.Op, in.Operands)
}

// Program is a list of lines.
type Program struct {
	Lines []Instr
}

// Visitor implementations are called for every line of a Program.
type Visitor interface {
	Visit(in Instr) error
}

// Walk calls the Visitor for every line of the Program, in order. Walk stops
// at the first error.
func (p *Program) Walk(v Visitor) error {
	for _, in := range p.Lines {
		if err := v.Visit(in); err != nil {
			return err
		}
	}
	return nil
}

// Op adds an instruction.
func (p *Program) Op(op string, operands ...string) {
	p.Lines = append(p.Lines, Instr{Kind: KindInstr, Op: op, Operands: operands})
}

// LabelOp adds an instruction with a label.
func (p *Program) LabelOp(label string, op string, operands ...string) {
	p.Lines = append(p.Lines, Instr{Kind: KindInstr, Label: label, Op: op, Operands: operands})
}

// Label adds a label on a line of its own.
func (p *Program) Label(label string) {
	p.Lines = append(p.Lines, Instr{Kind: KindLabel, Label: label})
}

// Comment adds a comment on a line of its own.
func (p *Program) Comment(format string, args ...any) {
	p.Lines = append(p.Lines, Instr{Kind: KindComment, Comment: fmt.Sprintf(format, args...)})
}

// Blank adds an empty line.
func (p *Program) Blank() {
	p.Lines = append(p.Lines, Instr{Kind: KindBlank})
}

// Note adds a comment to the most recent line.
func (p *Program) Note(format string, args ...any) {
	if len(p.Lines) == 0 {
		return
	}
	p.Lines[len(p.Lines)-1].Comment = fmt.Sprintf(format, args...)
}

// operand helpers

func imm(v int) string {
	return fmt.Sprintf("#%d", v)
}

func immHex(v int, digits int) string {
	return fmt.Sprintf("#$%0*x", digits, v)
}

func disp(d int, reg string) string {
	if d == 0 {
		return fmt.Sprintf("(%s)", reg)
	}
	return fmt.Sprintf("%d(%s)", d, reg)
}

func hexDisp(d int, reg string) string {
	return fmt.Sprintf("$%02x(%s)", d, reg)
}

func postInc(reg string) string {
	return fmt.Sprintf("(%s)+", reg)
}

func pcRel(label string, offset int) string {
	if offset == 0 {
		return fmt.Sprintf("%s(pc)", label)
	}
	return fmt.Sprintf("%s+%d(pc)", label, offset)
}

func addrReg(n int) string {
	return fmt.Sprintf("a%d", n)
}
