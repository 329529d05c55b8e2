package assembler

import (
	"strconv"
	"strings"
)

func AdjustRange(r TextRange, errorText string) (TextRange, string) {
	// Removes the leading and training whitespace from the error text, and adjusts the range accordingly
	text := errorText
	for len(text) > 0 && (text[0] == ' ' || text[0] == '\t') {
		text = text[1:]
		r.Start.Char += 1
	}

	for len(text) > 0 && (text[len(text)-1] == ' ' || text[len(text)-1] == '\t') {
		text = text[:len(text)-1]
		r.End.Char -= 1
	}

	return r, text
}

// lexemeRange is the range covered by a lexeme on 0-based line.
func lexemeRange(line int, l Lexeme) TextRange {
	return TextRange{
		Start: TextPosition{Line: line, Char: l.Start},
		End:   TextPosition{Line: line, Char: l.End()},
	}
}

// lineRange covers the whole (comment free) text of 0-based line.
func lineRange(line int, text string) TextRange {
	text = StripComment(text)
	return TextRange{
		Start: TextPosition{Line: line, Char: 0},
		End:   TextPosition{Line: line, Char: len(text)},
	}
}

// Errors
type assemblyError struct{}

var Errors assemblyError

func (assemblyError) InvalidLine(text, template string, r TextRange) Diagnostic {
	r, text = AdjustRange(r, text)
	message := "Invalid line: \"" + text + "\""
	if template != "" {
		message += ", unsupported form \"" + template + "\""
	}
	return Diagnostic{
		Range:    r,
		Message:  message,
		Source:   "Assembler",
		Severity: Error,
	}
}

func (assemblyError) DuplicateIdentifier(name string, previousLine int, r TextRange) Diagnostic {
	return Diagnostic{
		Range:    r,
		Message:  "Identifier \"" + name + "\" is already declared on line " + strconv.Itoa(previousLine),
		Source:   "Assembler",
		Severity: Error,
	}
}

func (assemblyError) SegmentAlreadyOpen(name, current string, r TextRange) Diagnostic {
	return Diagnostic{
		Range:    r,
		Message:  "Cannot open segment \"" + name + "\" inside segment \"" + current + "\"",
		Source:   "Assembler",
		Severity: Error,
	}
}

func (assemblyError) SegmentMismatch(name, current string, r TextRange) Diagnostic {
	return Diagnostic{
		Range:    r,
		Message:  "ENDS for \"" + name + "\" does not match the open segment \"" + current + "\"",
		Source:   "Assembler",
		Severity: Error,
	}
}

func (assemblyError) ConstantTooLarge(value string, t IdType, r TextRange) Diagnostic {
	return Diagnostic{
		Range:    r,
		Message:  "Constant \"" + value + "\" does not fit in " + t.String() + " (" + strconv.Itoa(t.Size()) + " bytes)",
		Source:   "Assembler",
		Severity: Error,
	}
}

func (assemblyError) ConstantOverflow(value string, r TextRange) Diagnostic {
	return Diagnostic{
		Range:    r,
		Message:  "Constant \"" + value + "\" overflows 32 bits",
		Source:   "Assembler",
		Severity: Error,
	}
}

func (assemblyError) InvalidConstant(value string, r TextRange) Diagnostic {
	return Diagnostic{
		Range:    r,
		Message:  "Expected numeric constant, got: \"" + value + "\"",
		Source:   "Assembler",
		Severity: Error,
	}
}

func (assemblyError) StringNotAllowed(directive string, r TextRange) Diagnostic {
	return Diagnostic{
		Range:    r,
		Message:  "Text constants are only allowed with DB, not " + strings.ToUpper(directive),
		Source:   "Assembler",
		Severity: Error,
	}
}

func (assemblyError) UnknownIdentifier(name string, r TextRange) Diagnostic {
	return Diagnostic{
		Range:    r,
		Message:  "Unknown identifier: \"" + name + "\"",
		Source:   "Assembler",
		Severity: Error,
	}
}

func (assemblyError) OperandSizeMismatch(register Register, id IdInfo, r TextRange) Diagnostic {
	return Diagnostic{
		Range:    r,
		Message:  "Register " + register.String() + " (" + strconv.Itoa(register.Size()) + " bytes) does not match \"" + id.Name + "\" of type " + id.Type.String(),
		Source:   "Assembler",
		Severity: Error,
	}
}

func (assemblyError) RegisterSizeMismatch(first, second Register, r TextRange) Diagnostic {
	return Diagnostic{
		Range:    r,
		Message:  "Registers " + first.String() + " and " + second.String() + " have different sizes",
		Source:   "Assembler",
		Severity: Error,
	}
}

func (assemblyError) ImmediateTooLarge(value string, register Register, r TextRange) Diagnostic {
	return Diagnostic{
		Range:    r,
		Message:  "Immediate value \"" + value + "\" does not fit in " + register.String(),
		Source:   "Assembler",
		Severity: Error,
	}
}

func (assemblyError) SegmentNotAssumed(name, segment string, r TextRange) Diagnostic {
	return Diagnostic{
		Range:    r,
		Message:  "\"" + name + "\" is in segment \"" + segment + "\" which no segment register is assumed to address",
		Source:   "Assembler",
		Severity: Error,
	}
}

func (assemblyError) UnresolvedJump(name string, r TextRange) Diagnostic {
	return Diagnostic{
		Range:    r,
		Message:  "Jump target \"" + name + "\" is never declared",
		Source:   "Assembler",
		Severity: Error,
	}
}

// Warnings
type assemblyWarning struct{}

var Warnings assemblyWarning

func (assemblyWarning) ByteFormIncrement(id IdInfo, r TextRange) Diagnostic {
	return Diagnostic{
		Range:    r,
		Message:  "INC is encoded with FE (byte form) although \"" + id.Name + "\" is " + id.Type.String(),
		Source:   "Assembler",
		Severity: Warning,
	}
}

func (assemblyWarning) ImmediateTruncated(value string, id IdInfo, r TextRange) Diagnostic {
	return Diagnostic{
		Range:    r,
		Message:  "Immediate value \"" + value + "\" is truncated to the size of \"" + id.Name + "\" (" + id.Type.String() + ")",
		Source:   "Assembler",
		Severity: Warning,
	}
}
