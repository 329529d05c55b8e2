package assembler

import (
	"strings"

	"github.com/golang/glog"
)

// Translator holds the state of one assembly run. A fresh Translator must be used for
// every run.
type Translator struct {
	segments    *SegTable
	identifiers *IdTable
	assumes     AssumeTable

	currentSegment string
	currentOffset  int
	currentLine    int
	secondPass     bool

	errorLines  []int
	diagnostics []Diagnostic
}

func NewTranslator() *Translator {
	return &Translator{
		segments:       NewSegTable(),
		identifiers:    NewIdTable(),
		assumes:        NewAssumeTable(),
		currentSegment: NoSegment,
		currentOffset:  0,
		currentLine:    1,
	}
}

// SplitLines splits source text into lines the way a line reader does: "\r\n" and "\n"
// both end a line and a final line terminator does not start an extra empty line.
func SplitLines(input string) []string {
	if input == "" {
		return []string{}
	}
	lines := strings.Split(input, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

// Assemble translates the source text with a fresh Translator.
func Assemble(input string) *AssembledResult {
	return NewTranslator().Assemble(SplitLines(input))
}

// Assemble runs both passes over the source lines.
func (t *Translator) Assemble(lines []string) (res *AssembledResult) {
	res = new(AssembledResult)
	res.fileContents = lines
	res.Lines = make([]LineInfo, 0, len(lines))

	glog.V(1).Infof("Beginning pass 1 over %d lines", len(lines))
	jumps := []int{}
	for i, text := range lines {
		t.currentLine = i + 1
		line := t.translateLine(text)
		if !line.Correct {
			t.errorLines = append(t.errorLines, line.Number)
		}
		if line.Type == LineJump && line.Correct {
			jumps = append(jumps, i)
		}
		glog.V(2).Infof("%d: %s %04X [%s] %s", line.Number, line.Type, line.Address, line.OpCode, text)

		res.Lines = append(res.Lines, line)
		t.currentOffset += line.Size
	}
	res.FirstPass = append([]LineInfo(nil), res.Lines...)

	t.secondPass = true
	glog.V(1).Infof("Beginning pass 2 over %d jumps", len(jumps))
	for _, i := range jumps {
		line := t.retranslateJump(res.Lines[i])
		if !line.Correct {
			t.errorLines = append(t.errorLines, line.Number)
		}
		res.Lines[i] = line
	}

	res.Segments = t.segments.All()
	res.Identifiers = t.identifiers.All()
	res.ErrorLines = append([]int{}, t.errorLines...)
	res.Diagnostics = append([]Diagnostic{}, t.diagnostics...)
	glog.V(1).Infof("Assembled %d lines, %d segments, %d identifiers, %d errors",
		len(lines), len(res.Segments), len(res.Identifiers), len(res.ErrorLines))
	return
}

// lineIndex is the 0-based line used in diagnostic ranges.
func (t *Translator) lineIndex() int {
	return t.currentLine - 1
}

func (t *Translator) fail(line *LineInfo, d Diagnostic) {
	line.Correct = false
	if line.Reason == "" {
		line.Reason = d.Message
	}
	t.diagnostics = append(t.diagnostics, d)
}

func (t *Translator) warn(d Diagnostic) {
	t.diagnostics = append(t.diagnostics, d)
}

// declare adds an identifier in the current segment at the current offset.
func (t *Translator) declare(line *LineInfo, name Lexeme, idType IdType) {
	info := IdInfo{
		Name:    name.Value,
		Segment: t.currentSegment,
		Offset:  t.currentOffset,
		Type:    idType,
		Line:    t.currentLine,
	}
	if !t.identifiers.Add(info) {
		previous := t.identifiers.Get(name.Value)
		t.fail(line, Errors.DuplicateIdentifier(name.Value, previous.Line, lexemeRange(t.lineIndex(), name)))
	}
}

// translateLine classifies and encodes one line during pass one.
func (t *Translator) translateLine(text string) LineInfo {
	c := classify(Lex(text))
	line := LineInfo{
		Text:    text,
		Number:  t.currentLine,
		Type:    c.lineType,
		Segment: t.currentSegment,
		Correct: true,
	}

	if c.label != nil {
		t.declare(&line, *c.label, IdLabel)
	}

	code := t.encode(&line, c, t.currentOffset)
	line.setCode(code)
	line.Address = t.currentOffset
	if line.Type == LineBeginSegment && line.Correct {
		line.Segment = t.currentSegment
	}
	return line
}

// retranslateJump re-encodes a jump recorded in pass one against the complete identifier
// table, at the offset captured in pass one. The line keeps its pass one size: shorter
// encodings, including the empty encoding of an unresolved target, are padded with NOPs.
func (t *Translator) retranslateJump(first LineInfo) LineInfo {
	t.currentLine = first.Number
	c := classify(Lex(first.Text))
	line := first
	line.Reason = ""
	line.Correct = true

	code, _ := t.encodeJump(&line, c.lexemes, first.Address)
	if code.Size() < first.Size {
		code = append(code, nops(first.Size-code.Size())...)
	}
	line.setCode(code)
	return line
}

func (t *Translator) encode(line *LineInfo, c classification, address int) OpCode {
	lexemes := c.lexemes
	switch c.lineType {
	case LineBeginSegment:
		t.beginSegment(line, lexemes[0])
	case LineEndSegment:
		t.endSegment(line, lexemes[0])
	case LineDataDeclaration:
		code, _ := t.encodeData(line, lexemes)
		return code
	case LineLabel:
		t.declare(line, lexemes[0], IdLabel)
	case LineAssume:
		t.assumes.Assume(lexemes[1:])
		assumes := t.assumes
		line.Assume = &assumes
	case LineInstructions:
		code, _ := t.encodeInstruction(line, lexemes)
		return code
	case LineJump:
		code, _ := t.encodeJump(line, lexemes, address)
		return code
	case LineError:
		t.fail(line, Errors.InvalidLine(line.Text, c.template, lineRange(t.lineIndex(), line.Text)))
	}
	return OpCode{}
}

func (t *Translator) beginSegment(line *LineInfo, name Lexeme) {
	if t.currentSegment != NoSegment {
		t.fail(line, Errors.SegmentAlreadyOpen(name.Value, t.currentSegment, lexemeRange(t.lineIndex(), name)))
		return
	}
	t.currentSegment = name.Value
	t.segments.Add(name.Value)
	t.currentOffset = t.segments.Get(name.Value).Size
}

func (t *Translator) endSegment(line *LineInfo, name Lexeme) {
	if !strings.EqualFold(t.currentSegment, name.Value) {
		t.fail(line, Errors.SegmentMismatch(name.Value, t.currentSegment, lexemeRange(t.lineIndex(), name)))
	} else {
		t.segments.SetSize(t.currentSegment, t.currentOffset)
	}
	t.currentSegment = NoSegment
}

// encodeData handles "name DB|DW|DD value".
func (t *Translator) encodeData(line *LineInfo, lexemes []Lexeme) (OpCode, bool) {
	name, directive, value := lexemes[0], lexemes[1], lexemes[2]
	r := lexemeRange(t.lineIndex(), value)

	if value.Type == LexemeConstString {
		if !strings.EqualFold(directive.Value, "DB") {
			t.fail(line, Errors.StringNotAllowed(directive.Value, r))
			return OpCode{}, false
		}
		t.declare(line, name, IdDB)

		code := OpCode{}
		for _, b := range []byte(value.Value[1 : len(value.Value)-1]) {
			code = append(code, makeByte(int(b)))
		}
		return code, true
	}

	idType, _ := ParseIdType(directive.Value)
	t.declare(line, name, idType)

	v, size := constOperand(value)
	if size == -1 {
		t.fail(line, Errors.ConstantOverflow(value.Value, r))
		return OpCode{}, false
	}
	if idType.Size() < size {
		t.fail(line, Errors.ConstantTooLarge(value.Value, idType, r))
		return OpCode{}, false
	}
	return OpCode{makeValue(v, idType.Size())}, true
}
