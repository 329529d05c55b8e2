package assembler

import "strings"

// memoryOperand is "[seg :] id [ base ]".
type memoryOperand struct {
	override   *SegRegister // explicit segment override
	id         Lexeme
	base       Register
	baseLexeme Lexeme
}

// parseMemoryOperand reads a memory operand starting at lexemes[0], returning it and the
// number of lexemes it spans. The line template guarantees the shape.
func parseMemoryOperand(lexemes []Lexeme) (memoryOperand, int) {
	m := memoryOperand{}
	i := 0
	if lexemes[0].Type == LexemeRegisterSegment {
		seg, _ := LookupSegRegister(lexemes[0].Value)
		m.override = &seg
		i = 2
	}
	m.id = lexemes[i]
	m.baseLexeme = lexemes[i+2]
	m.base, _ = LookupRegister(m.baseLexeme.Value)
	return m, i + 4
}

func (t *Translator) register(l Lexeme) Register {
	r, _ := LookupRegister(l.Value)
	return r
}

// resolve looks up the identifier of a memory operand.
func (t *Translator) resolve(line *LineInfo, m memoryOperand) (*IdInfo, bool) {
	info := t.identifiers.Get(m.id.Value)
	if info == nil {
		t.fail(line, Errors.UnknownIdentifier(m.id.Value, lexemeRange(t.lineIndex(), m.id)))
		return nil, false
	}
	return info, true
}

// memoryPrefixes emits, in order, the operand-size prefix for DD operands, the segment
// override and the address-size prefix for 32-bit base registers. Without an explicit
// override, one is needed when the identifier's segment is assumed in a register other than DS.
func (t *Translator) memoryPrefixes(line *LineInfo, info *IdInfo, m memoryOperand) (OpCode, bool) {
	code := OpCode{}
	if info.Type == IdDD {
		code = append(code, makeOperandSizePrefix())
	}

	if m.override != nil {
		code = append(code, makeSegmentPrefix(*m.override))
	} else {
		seg, ok := t.assumes.Holding(info.Segment)
		if !ok {
			t.fail(line, Errors.SegmentNotAssumed(info.Name, info.Segment, lexemeRange(t.lineIndex(), m.id)))
			return OpCode{}, false
		}
		if seg != DS {
			code = append(code, makeSegmentPrefix(seg))
		}
	}

	if m.base.Is32() {
		code = append(code, makeAddressSizePrefix())
	}
	return code, true
}

// memoryTail is the ModR/M byte followed by the identifier offset as displacement.
func memoryTail(regField int, info *IdInfo, m memoryOperand) OpCode {
	code := makeModRM(regField, m.base, true)
	width := 2
	if m.base.Is32() {
		width = 4
	}
	return append(code, makeValue(int64(info.Offset), width))
}

func (t *Translator) encodeInstruction(line *LineInfo, lexemes []Lexeme) (OpCode, bool) {
	switch strings.ToUpper(lexemes[0].Value) {
	case "CLI":
		return OpCode{makeByte(0xFA)}, true
	case "INC":
		return t.encodeInc(line, lexemes)
	case "DEC":
		return t.encodeDec(line, lexemes)
	case "ADD":
		return t.encodeAdd(line, lexemes)
	case "CMP":
		return t.encodeCmp(line, lexemes)
	case "XOR":
		return t.encodeXor(line, lexemes)
	case "MOV":
		return t.encodeMov(line, lexemes)
	case "OR":
		return t.encodeOr(line, lexemes)
	}
	return OpCode{}, false
}

// INC [seg:] id [ base ]
// FE /0 is emitted for every operand size.
func (t *Translator) encodeInc(line *LineInfo, lexemes []Lexeme) (OpCode, bool) {
	m, _ := parseMemoryOperand(lexemes[1:])
	info, ok := t.resolve(line, m)
	if !ok {
		return OpCode{}, false
	}

	code, ok := t.memoryPrefixes(line, info, m)
	if !ok {
		return OpCode{}, false
	}
	if info.Type == IdDW || info.Type == IdDD {
		t.warn(Warnings.ByteFormIncrement(*info, lexemeRange(t.lineIndex(), lexemes[0])))
	}

	code = append(code, makeByte(0xFE))
	return append(code, memoryTail(0, info, m)...), true
}

// DEC reg
func (t *Translator) encodeDec(line *LineInfo, lexemes []Lexeme) (OpCode, bool) {
	reg := t.register(lexemes[1])
	switch reg.Size() {
	case 1:
		return OpCode{makeByte(0xFE), makeByte(0xC8 + reg.Num())}, true
	case 2:
		return OpCode{makeByte(0x48 + reg.Num())}, true
	}
	// 32-bit registers are emitted with the address-size prefix
	return OpCode{makeAddressSizePrefix(), makeByte(0x48 + reg.Num())}, true
}

// ADD [seg:] id [ base ] , imm
// The immediate is not checked against the operand size; it is truncated to fit.
func (t *Translator) encodeAdd(line *LineInfo, lexemes []Lexeme) (OpCode, bool) {
	m, n := parseMemoryOperand(lexemes[1:])
	immLexeme := lexemes[1+n+1]

	info, ok := t.resolve(line, m)
	if !ok {
		return OpCode{}, false
	}
	code, ok := t.memoryPrefixes(line, info, m)
	if !ok {
		return OpCode{}, false
	}

	if !immLexeme.Type.IsConst() {
		t.fail(line, Errors.InvalidConstant(immLexeme.Value, lexemeRange(t.lineIndex(), immLexeme)))
		return OpCode{}, false
	}
	imm, immSize := constOperand(immLexeme)

	typeSize := info.Type.Size()
	if immSize == -1 || immSize > typeSize {
		t.warn(Warnings.ImmediateTruncated(immLexeme.Value, *info, lexemeRange(t.lineIndex(), immLexeme)))
	}

	immWidth := typeSize
	switch {
	case immSize == 1 && typeSize != 1:
		code = append(code, makeByte(0x83))
		immWidth = 1
	case typeSize == 1:
		code = append(code, makeByte(0x80))
	default:
		code = append(code, makeByte(0x81))
	}

	code = append(code, memoryTail(0, info, m)...)
	return append(code, makeValue(imm, immWidth)), true
}

// CMP reg , [seg:] id [ base ]
func (t *Translator) encodeCmp(line *LineInfo, lexemes []Lexeme) (OpCode, bool) {
	first := t.register(lexemes[1])
	m, _ := parseMemoryOperand(lexemes[3:])

	info, ok := t.resolve(line, m)
	if !ok {
		return OpCode{}, false
	}
	if info.Type.Size() != first.Size() {
		t.fail(line, Errors.OperandSizeMismatch(first, *info, lexemeRange(t.lineIndex(), lexemes[1])))
		return OpCode{}, false
	}

	code, ok := t.memoryPrefixes(line, info, m)
	if !ok {
		return OpCode{}, false
	}
	if info.Type == IdDB {
		code = append(code, makeByte(0x3A))
	} else {
		code = append(code, makeByte(0x3B))
	}
	return append(code, memoryTail(first.Num(), info, m)...), true
}

// XOR [seg:] id [ base ] , reg
func (t *Translator) encodeXor(line *LineInfo, lexemes []Lexeme) (OpCode, bool) {
	m, _ := parseMemoryOperand(lexemes[1:])
	secondLexeme := lexemes[len(lexemes)-1]
	second := t.register(secondLexeme)

	info, ok := t.resolve(line, m)
	if !ok {
		return OpCode{}, false
	}
	if info.Type.Size() != second.Size() {
		t.fail(line, Errors.OperandSizeMismatch(second, *info, lexemeRange(t.lineIndex(), secondLexeme)))
		return OpCode{}, false
	}

	code, ok := t.memoryPrefixes(line, info, m)
	if !ok {
		return OpCode{}, false
	}
	if info.Type == IdDB {
		code = append(code, makeByte(0x30))
	} else {
		code = append(code, makeByte(0x31))
	}
	return append(code, memoryTail(second.Num(), info, m)...), true
}

// MOV reg , imm
func (t *Translator) encodeMov(line *LineInfo, lexemes []Lexeme) (OpCode, bool) {
	reg := t.register(lexemes[1])
	immLexeme := lexemes[3]
	r := lexemeRange(t.lineIndex(), immLexeme)

	if !immLexeme.Type.IsConst() {
		t.fail(line, Errors.InvalidConstant(immLexeme.Value, r))
		return OpCode{}, false
	}
	imm, immSize := constOperand(immLexeme)
	if immSize == -1 || immSize > reg.Size() {
		t.fail(line, Errors.ImmediateTooLarge(immLexeme.Value, reg, r))
		return OpCode{}, false
	}

	code := OpCode{}
	if reg.Is32() {
		code = append(code, makeOperandSizePrefix())
	}
	if reg.Size() == 1 {
		code = append(code, makeByte(0xB0+reg.Num()))
	} else {
		code = append(code, makeByte(0xB8+reg.Num()))
	}
	return append(code, makeValue(imm, reg.Size())), true
}

// OR reg , reg
func (t *Translator) encodeOr(line *LineInfo, lexemes []Lexeme) (OpCode, bool) {
	first := t.register(lexemes[1])
	second := t.register(lexemes[3])
	if first.Size() != second.Size() {
		r := TextRange{
			Start: TextPosition{Line: t.lineIndex(), Char: lexemes[1].Start},
			End:   TextPosition{Line: t.lineIndex(), Char: lexemes[3].End()},
		}
		t.fail(line, Errors.RegisterSizeMismatch(first, second, r))
		return OpCode{}, false
	}

	code := OpCode{}
	if first.Is32() {
		code = append(code, makeOperandSizePrefix())
	}
	if first.Size() == 1 {
		code = append(code, makeByte(0x0A))
	} else {
		code = append(code, makeByte(0x0B))
	}
	return append(code, makeModRM(first.Num(), second, false)...), true
}

type jumpForm struct {
	short    int   // rel8 opcode
	long     []int // rel16 opcode bytes
	reserved int   // bytes reserved for a target that is not declared yet
}

var jumpForms = map[string]jumpForm{
	"JB":  {short: 0x72, long: []int{0x0F, 0x82}, reserved: 4},
	"JMP": {short: 0xEB, long: []int{0xE9}, reserved: 3},
}

// JB id / JMP id at the given offset. In pass one an undeclared target reserves the
// size of the long form as NOPs; short jumps in either direction are padded to the same size.
func (t *Translator) encodeJump(line *LineInfo, lexemes []Lexeme, address int) (OpCode, bool) {
	form := jumpForms[strings.ToUpper(lexemes[0].Value)]
	target := lexemes[1]

	info := t.identifiers.Get(target.Value)
	if info == nil {
		if t.secondPass {
			t.fail(line, Errors.UnresolvedJump(target.Value, lexemeRange(t.lineIndex(), target)))
			return OpCode{}, false
		}
		return nops(form.reserved), true
	}

	delta := info.Offset - (address + 2)
	if delta >= -128 && delta < 127 {
		code := OpCode{makeByte(form.short), makeValue(int64(delta), 1)}
		return append(code, nops(form.reserved-2)...), true
	}

	code := OpCode{}
	for _, b := range form.long {
		code = append(code, makeByte(b))
	}
	return append(code, makeValue(int64(delta-len(form.long)), 2)), true
}
