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
	"fmt"

	"github.com/jetsetilly/lightspeed/curated"
	"github.com/jetsetilly/lightspeed/encoder"
)

// Sentinal error patterns.
const (
	MicroNotSupported = "codegen: replay code can not be generated for the micro layout"
	NotExported       = "codegen: replay code can only be generated after the score has been exported"
)

// size of the state block of the generated replay routine
const stateSize = 28

type generator struct {
	e *encoder.Encoder
	p *Program
}

// Generate creates the replay routine for an exported score. The scoreName
// is used in the comment at the start of the program.
func Generate(e *encoder.Encoder, scoreName string) (*Program, error) {
	if e.Params().Micro {
		return nil, curated.Errorf(MicroNotSupported)
	}
	if len(e.StreamSizes()) == 0 {
		return nil, curated.Errorf(NotExported)
	}

	descriptors, err := e.Descriptors()
	if err != nil {
		return nil, curated.Errorf("codegen: %v", err)
	}

	g := &generator{
		e: e,
		p: &Program{},
	}

	g.banner(scoreName)
	g.init(len(descriptors))
	g.state(descriptors)
	g.tick()
	g.jumpTable()
	g.handlers()

	return g.p, nil
}

// lea adds the offset to the source address register and puts the result in
// the destination register. offsets that do not fit in the 16bit
// displacement of the lea instruction are added with add.l
func (g *generator) lea(offset int, rs int, rd int, comment string) {
	p := g.p

	switch {
	case offset == 0:
		if rs == rd {
			return
		}
		p.Op("movea.l", addrReg(rs), addrReg(rd))
	case offset >= -32768 && offset <= 32767:
		p.Op("lea", disp(offset, addrReg(rs)), addrReg(rd))
	default:
		if rs != rd {
			p.Op("movea.l", addrReg(rs), addrReg(rd))
		}
		p.Op("add.l", imm(offset), addrReg(rd))
	}

	if comment != "" {
		p.Note("%s", comment)
	}
}

func (g *generator) banner(scoreName string) {
	p := g.p
	p.Comment("*****************************************************************")
	p.Comment("")
	p.Comment("Light Speed Player v%d.%02d", encoder.MajorVersion, encoder.MinorVersion)
	p.Comment("\"insane speed\" replay routine generated by lightspeed")
	p.Comment("")
	p.Comment("this source is specific to \"%s\". it must be generated again", scoreName)
	p.Comment("whenever the score is converted again")
	p.Comment("")
	p.Comment("bsr LSP_MusicInitInsane : init replay code and music")
	p.Comment("    a0: LSP music data (any memory)")
	p.Comment("    a1: LSP sound bank (chip memory)")
	p.Comment("    a2: DMACON 8bits low byte address (odd)")
	p.Comment("")
	p.Comment("bsr LSP_MusicPlayTickInsane : replay tick (call once per frame)")
	p.Comment("    a6: should be $dff0a0 (and not $dff000)")
	p.Comment("    used regs: d0/a0/a1/a2/a3/a4")
	p.Comment("")
	p.Comment("*****************************************************************")
	p.Blank()
}

func (g *generator) init(instrumentCount int) {
	p := g.p
	e := g.e

	p.Label("LSP_MusicInitInsane")
	p.Op("move.l", fmt.Sprintf("#$%08x", e.UID()), "d0")
	p.Op("cmp.l", "(a1)", "d0")
	p.Op("bne.s", ".dataError")
	p.Op("cmpi.l", "#'LSP1'", postInc("a0"))
	p.Op("bne.s", ".dataError")
	p.Op("cmp.l", postInc("a0"), "d0")
	p.Op("bne.s", ".dataError")

	// the magic and unique id have been read. the relocation byte is the
	// high byte of the flags field
	p.Op("lea", disp(2, "a0"), "a5")
	p.Note("relocation byte")
	g.lea(e.HeaderSize()-8, 0, 0, "skip header")

	p.Op("lea", pcRel("LSP_StateInsane", 0), "a3")
	p.Op("move.l", "a2", disp(12, "a3"))
	p.Op("move.l", "a0", disp(16, "a3"))
	p.Note("word stream ptr")

	byteLoop, wordLoop := e.LoopPositions()

	g.lea(e.WordStreamSize(), 0, 4, "")
	p.Op("move.l", "a4", disp(8, "a3"))
	p.Note("byte stream ptr")

	g.lea(wordLoop, 0, 0, "word stream loop pos")
	p.Op("move.l", "a0", "(a3)")
	p.Note("word stream loop ptr")

	g.lea(byteLoop, 4, 4, "byte stream loop pos")
	p.Op("move.l", "a4", disp(24, "a3"))
	p.Note("byte stream loop ptr")

	p.Op("tst.b", "(a5)")
	p.Op("bne.s", ".noReloc")
	p.Op("st", "(a5)")

	if instrumentCount > 0 {
		if instrumentCount < 128 {
			p.Op("moveq", fmt.Sprintf("#%d-1", instrumentCount), "d0")
		} else {
			p.Op("move.w", fmt.Sprintf("#%d-1", instrumentCount), "d0")
		}
		p.Op("lea", pcRel("LSP_InstrumentInfoInsane", 0), "a0")
		p.Op("move.l", "a1", "d1")
		p.LabelOp(".rloop", "add.l", "d1", "(a0)")
		p.Op("add.l", "d1", disp(6, "a0"))
		p.Op("lea", disp(encoder.InstrumentStride, "a0"), "a0")
		p.Op("dbf", "d0", ".rloop")
	}

	p.LabelOp(".noReloc", "bset.b", "#1", "$bfe001")
	p.Note("disable the low pass filter")
	p.Op("lea", pcRel("LSP_StateInsane", 6), "a0")
	p.Op("move.w", imm(e.BPM()), "(a0)")
	p.Note("music BPM")
	p.Op("rts")
	p.Blank()

	p.LabelOp(".dataError", "illegal")
	p.Blank()

	p.Label("LSP_MusicGetPos")
	if e.Params().GetPos {
		p.Op("move.w", pcRel("LSP_CurrentPos", 0), "d0")
	} else {
		p.Op("moveq", "#0", "d0")
		p.Note("music was converted without -getpos support")
	}
	p.Op("rts")
	p.Blank()

	// LSP_CurrentPos must immediately precede the state block. the getpos
	// handler writes to it relative to the state block
	if e.Params().GetPos {
		p.LabelOp("LSP_CurrentPos", "dc.w", "0")
	}
}

func (g *generator) state(descriptors []encoder.Descriptor) {
	p := g.p

	p.LabelOp("LSP_StateInsane", "dc.l", "0")
	p.Note("0  word stream loop")
	p.Op("dc.w", "0")
	p.Note("4  relocation done")
	p.Op("dc.w", "0")
	p.Note("6  current music BPM")
	p.Op("dc.l", "0")
	p.Note("8  byte stream")
	p.Op("dc.l", "0")
	p.Note("12 DMACON patch address")
	p.Op("dc.l", "0")
	p.Note("16 word stream")
	p.Op("dc.l", "0")
	p.Note("20 unused")
	p.Op("dc.l", "0")
	p.Note("24 byte stream loop")
	p.Blank()

	p.Comment("instrument offsets in the word stream are relative to LSP_StateInsane+%d", stateSize-encoder.InstrumentStride)
	p.Label("LSP_InstrumentInfoInsane")
	p.Note("(%d instruments)", len(descriptors))
	for _, d := range descriptors {
		p.Op("dc.w",
			fmt.Sprintf("$%04x", d.Start>>16),
			fmt.Sprintf("$%04x", d.Start&0xffff),
			fmt.Sprintf("$%04x", d.Length),
			fmt.Sprintf("$%04x", d.LoopStart>>16),
			fmt.Sprintf("$%04x", d.LoopStart&0xffff),
			fmt.Sprintf("$%04x", d.LoopLength),
		)
	}
	p.Blank()
}

// dispatch of a code read from the byte stream
func (g *generator) dispatch() {
	p := g.p
	p.Op("add.w", "d0", "d0")
	p.Op("move.w", ".LSP_JmpTable(pc,d0.w)", "d0")
	p.Op("jmp", ".LSP_JmpTable(pc,d0.w)")
	p.Blank()
}

func (g *generator) tick() {
	p := g.p
	e := g.e

	// number of extended code ranges
	hc := e.Commands().CodesCount() / 255

	p.Label("LSP_MusicPlayTickInsane")
	p.Op("lea", pcRel("LSP_StateInsane", 8), "a1")
	p.Op("move.l", "(a1)", "a0")
	p.Note("byte stream")
	p.LabelOp(".process", "moveq", "#0", "d0")
	p.Op("move.b", postInc("a0"), "d0")
	if hc > 0 {
		p.Op("beq.s", ".extended1")
	}
	g.dispatch()

	for x := 1; x <= hc && x <= 2; x++ {
		p.LabelOp(fmt.Sprintf(".extended%d", x), "move.w", immHex(x<<8, 4), "d0")
		p.Op("move.b", postInc("a0"), "d0")
		if x == 1 && hc > 1 {
			p.Op("beq.s", ".extended2")
		}
		g.dispatch()
	}

	p.LabelOp(".r_rewind", "move.l", "0-8(a1)", "16-8(a1)")
	p.Op("move.l", "24-8(a1)", "a0")
	p.Op("bra.s", ".process")
	p.Blank()

	if e.Params().GetPos {
		p.LabelOp(".r_getpos", "move.b", postInc("a0"), "-9(a1)")
		p.Note("patch LSP_CurrentPos low byte")
		p.Op("bra.s", ".process")
		p.Blank()
	}

	if e.SetBPMCount() > 1 {
		p.LabelOp(".r_setBPM", "move.b", postInc("a0"), "-1(a1)")
		p.Note("patch BPM byte")
		p.Op("bra.s", ".process")
		p.Blank()
	}

	p.LabelOp(".resetv", "dc.l", "0", "0", "0", "0")
	p.Blank()
}

func (g *generator) jumpTable() {
	p := g.p
	e := g.e
	cmds := e.Commands()
	_, setBPM, getPos := e.Escapes()

	p.Label(".LSP_JmpTable")
	p.Note("(%d codes)", cmds.CodesCount())

	for c := 0; c < cmds.CodesCount(); c++ {
		if c%255 == 0 {
			p.Op("dc.w", "-1")
			p.Note("extended code")
		}

		if cmds.IsDummyCodeEntry(c) {
			p.Op("dc.w", "$0000")
			p.Note("dummy code")
			continue
		}

		word := cmds.ValueFromCode(c)
		switch {
		case word == setBPM && e.SetBPMCount() <= 1:
			p.Op("dc.w", "$0000")
			p.Note("set BPM code (not used in this music)")
		case word == getPos && !e.Params().GetPos:
			p.Op("dc.w", "$0000")
			p.Note("no getpos support")
		default:
			p.Op("dc.w", fmt.Sprintf(".r_%s-.LSP_JmpTable", e.Label(word)))
		}
	}
	p.Blank()
}

// fetch is a voice that loads a sample pointer in a handler
type fetch struct {
	voice int
	code  encoder.VoiceCode

	// offset in .resetv of the loop pointer of the voice
	offset int
}

// voiceReg returns the operand for a register of a voice. a6 points to the
// registers of voice 0
func voiceReg(voice int, reg int) string {
	if voice == 0 && reg == 0 {
		return "(a6)"
	}
	return fmt.Sprintf("$%x%x(a6)", voice, reg)
}

func (g *generator) handlers() {
	cmds := g.e.Commands()
	rewind, setBPM, getPos := g.e.Escapes()

	var count int
	for c := 0; c < cmds.CodesCount(); c++ {
		if cmds.IsDummyCodeEntry(c) {
			continue
		}
		word := cmds.ValueFromCode(c)
		if word == rewind || word == setBPM || word == getPos {
			continue
		}
		count++
	}

	g.p.Comment("%d specific handlers", count)

	for c := 0; c < cmds.CodesCount(); c++ {
		if cmds.IsDummyCodeEntry(c) {
			continue
		}
		word := cmds.ValueFromCode(c)
		if word == rewind || word == setBPM || word == getPos {
			continue
		}
		g.handler(word)
	}
}

// handler for a single command word. the register usage must match the
// order in which the encoder writes the streams
func (g *generator) handler(word int) {
	p := g.p

	var fetches []fetch
	var resetCount, dmaCount, instrCount, dmaCon int

	for v := encoder.NumVoices - 1; v >= 0; v-- {
		c := encoder.VoiceCodeOf(uint16(word), v)
		if c == encoder.VoiceNone {
			continue
		}
		fetches = append(fetches, fetch{voice: v, code: c, offset: (encoder.NumVoices - 1 - v) * 4})

		switch c {
		case encoder.VoiceResetLength:
			resetCount++
		case encoder.VoicePlayWithoutNote:
			instrCount++
		case encoder.VoicePlayInstrument:
			instrCount++
			dmaCount++
			dmaCon |= 1 << v
		}
	}

	p.Label(".r_" + g.e.Label(word))

	// loop pointers are read pc relative when there are only a few of them
	// and nothing needs to be written to .resetv
	dpcA4 := resetCount <= 2 && instrCount == 0

	for b := 7; b >= 4; b-- {
		if word&(1<<b) != 0 {
			p.Op("move.b", postInc("a0"), hexDisp((b-4)*16+9, "a6"))
		}
	}

	p.Op("move.l", "a0", postInc("a1"))

	needWords := instrCount > 0 || word&0xf != 0

	if dmaCount > 0 {
		p.Op("move.l", postInc("a1"), "a0")
		p.Op("moveq", immHex(dmaCon, 2), "d0")
		p.Op("move.w", "d0", "$96-$a0(a6)")
		p.Op("move.b", "d0", "(a0)")
	} else if needWords {
		p.Op("addq.w", "#4", "a1")
	}

	if needWords {
		p.Op("move.l", "(a1)", "a0")
	}

	for v := encoder.NumVoices - 1; v >= 0; v-- {
		if word&(1<<v) != 0 {
			p.Op("move.w", postInc("a0"), hexDisp(v*16+6, "a6"))
		}
	}

	if len(fetches) > 0 {
		cur := fetches[0].offset
		if !dpcA4 {
			p.Op("lea", pcRel(".resetv", cur), "a4")
		}

		if instrCount > 0 {
			p.Op("movea.l", "a1", "a2")
		}

		for _, f := range fetches {
			delta := f.offset - cur

			if f.code == encoder.VoiceResetLength {
				switch {
				case dpcA4:
					p.Op("move.l", pcRel(".resetv", f.offset), "a3")
				case delta == 0:
					p.Op("move.l", postInc("a4"), "a3")
					cur += 4
				default:
					p.Op("move.l", disp(delta, "a4"), "a3")
				}
				p.Op("move.l", postInc("a3"), voiceReg(f.voice, 0))
				p.Op("move.w", postInc("a3"), voiceReg(f.voice, 4))
				continue
			}

			p.Op("add.w", postInc("a0"), "a2")
			p.Op("move.l", postInc("a2"), voiceReg(f.voice, 0))
			p.Op("move.w", postInc("a2"), voiceReg(f.voice, 4))

			if f.code == encoder.VoicePlayInstrument {
				if delta == 0 {
					p.Op("move.l", "a2", postInc("a4"))
					cur += 4
				} else {
					p.Op("move.l", "a2", disp(delta, "a4"))
				}
			}
		}
	}

	if needWords {
		p.Op("move.l", "a0", "(a1)")
	}

	p.Op("rts")
	p.Blank()
}
