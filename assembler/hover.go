package assembler

import (
	"fmt"
	"strings"

	"golang.org/x/arch/x86/x86asm"
)

// Disassemble decodes machine code as 16-bit x86 in Intel syntax, one instruction per
// element. Decoding stops at the first byte sequence that is not a valid instruction.
func Disassemble(code []byte) []string {
	out := []string{}
	for len(code) > 0 {
		inst, err := x86asm.Decode(code, 16)
		if err != nil {
			break
		}
		out = append(out, x86asm.IntelSyntax(inst, 0, nil))
		code = code[inst.Len:]
	}
	return out
}

// lineAt returns the assembled record of a 0-based line.
func (a *AssembledResult) lineAt(line int) (LineInfo, bool) {
	if line < 0 || line >= len(a.Lines) {
		return LineInfo{}, false
	}
	return a.Lines[line], true
}

// assumesAt is the assume table in force on a 0-based line.
func (a *AssembledResult) assumesAt(line int) AssumeTable {
	assumes := NewAssumeTable()
	for i := 0; i <= line && i < len(a.Lines); i++ {
		if a.Lines[i].Assume != nil {
			assumes = *a.Lines[i].Assume
		}
	}
	return assumes
}

func (a *AssembledResult) encodingInfo(line LineInfo) string {
	if line.Size == 0 || (line.Type != LineInstructions && line.Type != LineJump) {
		return ""
	}
	text := fmt.Sprintf(hoverInfoFormats.encoding, line.OpCode, line.Bytes(), line.Size)
	if insts := Disassemble(line.Bytes()); len(insts) > 0 {
		text += fmt.Sprintf(hoverInfoFormats.disassembly, strings.Join(insts, "; "))
	}
	return text
}

// EvaluateHover returns markdown describing the lexeme under position, and false when there
// is nothing to describe.
func (a *AssembledResult) EvaluateHover(position TextPosition) (string, bool) {
	if position.Line < 0 || position.Line >= len(a.fileContents) {
		return "", false
	}
	line, ok := a.lineAt(position.Line)
	if !ok {
		return "", false
	}

	lexemes := Lex(a.fileContents[position.Line])
	index := -1
	for i, l := range lexemes {
		if position.Char >= l.Start && position.Char < l.End() {
			index = i
			break
		}
	}
	if index < 0 {
		return "", false
	}
	l := lexemes[index]

	switch l.Type {
	case LexemeInstruction:
		return hoverInfoFormats.instructions[strings.ToLower(l.Value)] + a.encodingInfo(line), true
	case LexemeDirective, LexemeDataType:
		return hoverInfoFormats.directives[strings.ToLower(l.Value)], true
	case LexemeRegisterGeneral:
		reg, _ := LookupRegister(l.Value)
		return fmt.Sprintf(hoverInfoFormats.generalRegister, reg, reg.Size()*8, reg.Num()), true
	case LexemeRegisterSegment:
		seg, _ := LookupSegRegister(l.Value)
		return fmt.Sprintf(hoverInfoFormats.segmentRegister, seg, seg.OverridePrefix(), a.assumesAt(position.Line)[seg]), true
	case LexemeConstBin, LexemeConstDec, LexemeConstHex:
		v, err := ConstValue(l.Value)
		if err != nil {
			return "", false
		}
		return fmt.Sprintf(hoverInfoFormats.integerLiteral, l.Type, v, v), true
	case LexemeConstString:
		return fmt.Sprintf(hoverInfoFormats.textLiteral, len(l.Value)-2), true
	case LexemeUserIdentifier:
		if seg, ok := a.Segment(l.Value); ok {
			return fmt.Sprintf(hoverInfoFormats.segmentDefinition, seg.Name, seg.Size), true
		}
		id, ok := a.Identifier(l.Value)
		if !ok {
			return "", false
		}
		if id.Line == line.Number && index == 0 {
			return fmt.Sprintf(hoverInfoFormats.identifierDefinition, id.Type, id.Name, id.Offset, id.Segment), true
		}
		return fmt.Sprintf(hoverInfoFormats.identifierReference, id.Type, id.Name, id.Segment, id.Offset) + a.encodingInfo(line), true
	}
	return "", false
}
