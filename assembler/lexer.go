package assembler

import (
	"regexp"
	"strconv"
	"strings"
)

type LexemeType int

const (
	LexemeInstruction LexemeType = iota
	LexemeDirective
	LexemeRegisterGeneral
	LexemeRegisterSegment
	LexemeDataType
	LexemeConstBin
	LexemeConstDec
	LexemeConstHex
	LexemeConstString
	LexemeOneSymbol
	LexemeUserIdentifier
	LexemeError
)

var lexemeDescriptions = [...]string{
	LexemeInstruction:     "Instruction mnemonic",
	LexemeDirective:       "Directive",
	LexemeRegisterGeneral: "General purpose register",
	LexemeRegisterSegment: "Segment register",
	LexemeDataType:        "Data directive",
	LexemeConstBin:        "Binary constant",
	LexemeConstDec:        "Decimal constant",
	LexemeConstHex:        "Hexadecimal constant",
	LexemeConstString:     "Text constant",
	LexemeOneSymbol:       "Single character",
	LexemeUserIdentifier:  "User identifier or undefined",
	LexemeError:           "Invalid lexeme",
}

func (t LexemeType) String() string {
	if int(t) < 0 || int(t) >= len(lexemeDescriptions) {
		return "Unknown"
	}
	return lexemeDescriptions[t]
}

// IsConst reports whether the lexeme is a numeric constant.
func (t LexemeType) IsConst() bool {
	return t == LexemeConstBin || t == LexemeConstDec || t == LexemeConstHex
}

// patterns are tried in LexemeType order, the first match wins
var lexemePatterns = [...]*regexp.Regexp{
	LexemeInstruction:     regexp.MustCompile(`(?i)^(cli|inc|dec|add|cmp|xor|mov|or|jb|jmp)$`),
	LexemeDirective:       regexp.MustCompile(`(?i)^(segment|ends|end|assume)$`),
	LexemeRegisterGeneral: regexp.MustCompile(`(?i)^(al|cl|dl|bl|ah|ch|dh|bh|ax|cx|dx|bx|sp|bp|si|di|eax|ecx|edx|ebx|esp|ebp|esi|edi)$`),
	LexemeRegisterSegment: regexp.MustCompile(`(?i)^(es|cs|ss|ds|fs|gs)$`),
	LexemeDataType:        regexp.MustCompile(`(?i)^(db|dw|dd)$`),
	LexemeConstBin:        regexp.MustCompile(`(?i)^([01]+b)$`),
	LexemeConstDec:        regexp.MustCompile(`(?i)^(\d+d?)$`),
	LexemeConstHex:        regexp.MustCompile(`(?i)^(\d+[A-F0-9]*h)$`),
	LexemeConstString:     regexp.MustCompile(`^('[^']*')$`),
	LexemeOneSymbol:       regexp.MustCompile(`^[.,:\[\]]$`),
	LexemeUserIdentifier:  regexp.MustCompile(`(?i)^([a-z][a-z0-9]{0,7})$`),
	LexemeError:           regexp.MustCompile(`^.*$`),
}

type Lexeme struct {
	Value string
	Type  LexemeType
	Start int // character offset in the source line
}

// End returns the character offset just past the lexeme.
func (l Lexeme) End() int {
	return l.Start + len(l.Value)
}

func classifyLexeme(value string) LexemeType {
	for t, pattern := range lexemePatterns {
		if pattern.MatchString(value) {
			return LexemeType(t)
		}
	}
	return LexemeError
}

func isLexemeSeparator(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n' || c == '\v' || c == '\f'
}

func isSingleSymbol(c byte) bool {
	return c == ',' || c == ':' || c == '[' || c == ']'
}

// StripComment removes everything from the first ';' to the end of the line.
func StripComment(line string) string {
	if i := strings.IndexByte(line, ';'); i >= 0 {
		return line[:i]
	}
	return line
}

// Lex splits a single source line into typed lexemes. Comments are dropped and each of
// , : [ ] always forms a lexeme of its own.
func Lex(line string) []Lexeme {
	line = StripComment(line)
	lexemes := []Lexeme{}

	start := -1
	flush := func(end int) {
		if start >= 0 {
			value := line[start:end]
			lexemes = append(lexemes, Lexeme{Value: value, Type: classifyLexeme(value), Start: start})
			start = -1
		}
	}

	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case isLexemeSeparator(c):
			flush(i)
		case isSingleSymbol(c):
			flush(i)
			lexemes = append(lexemes, Lexeme{Value: line[i : i+1], Type: LexemeOneSymbol, Start: i})
		default:
			if start < 0 {
				start = i
			}
		}
	}
	flush(len(line))

	return lexemes
}

// ConstValue converts a binary, decimal or hexadecimal constant lexeme to its value.
func ConstValue(item string) (int64, error) {
	if len(item) == 0 {
		return 0, strconv.ErrSyntax
	}
	switch item[len(item)-1] {
	case 'h', 'H':
		return strconv.ParseInt(item[:len(item)-1], 16, 64)
	case 'b', 'B':
		return strconv.ParseInt(item[:len(item)-1], 2, 64)
	case 'd', 'D':
		return strconv.ParseInt(item[:len(item)-1], 10, 64)
	}
	return strconv.ParseInt(item, 10, 64)
}

// ConstSize returns the number of bytes (1, 2 or 4) needed to hold value, or -1 when the
// value does not fit in a signed 32-bit integer.
func ConstSize(value int64) int {
	if value > 2147483647 || value < -2147483648 {
		return -1
	}
	if value < 256 {
		return 1
	}
	if value < 256*256 {
		return 2
	}
	return 4
}

// constOperand evaluates a constant lexeme, returning its value and size. Lexemes that are
// not numeric constants, or whose digits overflow 64 bits, report size -1.
func constOperand(l Lexeme) (int64, int) {
	if !l.Type.IsConst() {
		return 0, -1
	}
	value, err := ConstValue(l.Value)
	if err != nil {
		return 0, -1
	}
	return value, ConstSize(value)
}
