package assembler

import (
	"regexp"
	"strings"
)

type LineType int

const (
	LineBeginSegment LineType = iota
	LineEndSegment
	LineDataDeclaration
	LineLabel
	LineAssume
	LineInstructions
	LineJump
	LineEnd
	LineError
	LineEmpty
)

var lineTypeNames = [...]string{
	"BEGIN_SEGMENT", "END_SEGMENT", "DATA_DECLARATION", "LABEL", "ASSUME",
	"INSTRUCTIONS", "JUMP", "END", "ERROR_LINE", "EMPTY",
}

func (t LineType) String() string {
	return lineTypeNames[t]
}

// validTemplates lists every accepted line shape. The position in the list is the
// template number used by the encoder.
var validTemplates = [...]string{
	/*0*/ "ID SEGMENT",
	/*1*/ "ID ENDS",
	/*2*/ "ASSUME rS : ID",
	/*3*/ "END ID",
	/*4*/ "END",
	/*5*/ "ID :",
	/*6*/ "ID DB CONST",
	/*7*/ "ID DW CONST",
	/*8*/ "ID DD CONST",
	/*9*/ "ID DB C_STR",
	/*10*/ "CLI",
	/*11*/ "INC ID [ ADDR ]",
	/*12*/ "INC rS : ID [ ADDR ]",
	/*13*/ "DEC reg",
	/*14*/ "ADD ID [ ADDR ] , CONST",
	/*15*/ "ADD rS : ID [ ADDR ] , CONST",
	/*16*/ "CMP reg , ID [ ADDR ]",
	/*17*/ "CMP reg , rS : ID [ ADDR ]",
	/*18*/ "XOR ID [ ADDR ] , reg",
	/*19*/ "XOR rS : ID [ ADDR ] , reg",
	/*20*/ "MOV reg , CONST",
	/*21*/ "OR reg , reg",
	/*22*/ "JB ID",
	/*23*/ "JMP ID",
	/*24*/ "",
}

func templateLineType(index int) LineType {
	switch {
	case index == 0:
		return LineBeginSegment
	case index == 1:
		return LineEndSegment
	case index == 2:
		return LineAssume
	case index == 3 || index == 4:
		return LineEnd
	case index == 5:
		return LineLabel
	case index < 10:
		return LineDataDeclaration
	case index == 22 || index == 23:
		return LineJump
	case index == 24:
		return LineEmpty
	}
	return LineInstructions
}

func lexemeTemplate(l Lexeme) string {
	switch l.Type {
	case LexemeInstruction, LexemeDirective, LexemeDataType:
		return strings.ToUpper(l.Value)
	case LexemeRegisterGeneral:
		reg, _ := LookupRegister(l.Value)
		name := reg.String()
		switch {
		case reg.Size() == 1:
			return "r8"
		case strings.HasPrefix(name, "E"):
			return "r32"
		case strings.ContainsAny(name, "BI"):
			return "r16a"
		}
		return "r16"
	case LexemeRegisterSegment:
		return "rS"
	case LexemeConstBin, LexemeConstDec, LexemeConstHex:
		return "CONST"
	case LexemeConstString:
		return "C_STR"
	case LexemeOneSymbol:
		return l.Value
	case LexemeUserIdentifier:
		return "ID"
	}
	if l.Value == "" {
		return ""
	}
	return "<Error lexeme " + l.Value + ">"
}

var (
	addressTemplate  = regexp.MustCompile(`\[ r16a \]|\[ r32 \]`)
	registerTemplate = regexp.MustCompile(`r16a|r16|r32|r8`)
)

// LineTemplate maps lexemes to their canonical template, e.g. "ADD ID [ ADDR ] , CONST".
func LineTemplate(lexemes []Lexeme) string {
	parts := make([]string, len(lexemes))
	for i, l := range lexemes {
		parts[i] = lexemeTemplate(l)
	}
	template := strings.Join(parts, " ")

	template = addressTemplate.ReplaceAllString(template, "[ ADDR ]")
	template = registerTemplate.ReplaceAllString(template, "reg")
	if !strings.Contains(template, "DB C_STR") {
		template = strings.ReplaceAll(template, "C_STR", "CONST")
	}
	if strings.Contains(template, "ASSUME") {
		template = strings.ReplaceAll(template, " , rS : ID", "")
	}
	return template
}

// isLabelled reports whether the template starts with a label that is followed by more tokens.
func isLabelled(template string) bool {
	return template != "ID :" && strings.HasPrefix(template, "ID :")
}

// classification is the result of matching a line against the valid templates.
type classification struct {
	lexemes  []Lexeme // lexemes after any label prefix
	label    *Lexeme  // label declared by an "ID :" prefix
	template string
	index    int // position in validTemplates, -1 when invalid
	lineType LineType
}

// Classify matches a line against the valid templates and returns its line type.
func Classify(line string) LineType {
	return classify(Lex(line)).lineType
}

func classify(lexemes []Lexeme) classification {
	c := classification{lexemes: lexemes, template: LineTemplate(lexemes), index: -1}
	if isLabelled(c.template) {
		label := lexemes[0]
		c.label = &label
		c.lexemes = lexemes[2:]
		c.template = strings.TrimSpace(strings.TrimPrefix(c.template, "ID :"))
	}

	for i, valid := range validTemplates {
		if valid == c.template {
			c.index = i
			break
		}
	}
	if c.index < 0 {
		c.lineType = LineError
	} else {
		c.lineType = templateLineType(c.index)
	}
	return c
}
