package assembler

import "strings"

// Register is one of the general purpose registers of the 16/32-bit x86 subset.
type Register int

const (
	AL Register = iota
	CL
	DL
	BL
	AH
	CH
	DH
	BH
	AX
	CX
	DX
	BX
	SP
	BP
	SI
	DI
	EAX
	ECX
	EDX
	EBX
	ESP
	EBP
	ESI
	EDI
)

var registerNames = [...]string{
	"AL", "CL", "DL", "BL", "AH", "CH", "DH", "BH",
	"AX", "CX", "DX", "BX", "SP", "BP", "SI", "DI",
	"EAX", "ECX", "EDX", "EBX", "ESP", "EBP", "ESI", "EDI",
}

// RegisterNameMap maps lower case register names to registers.
var RegisterNameMap = func() map[string]Register {
	m := make(map[string]Register, len(registerNames))
	for i, name := range registerNames {
		m[strings.ToLower(name)] = Register(i)
	}
	return m
}()

// LookupRegister finds a general register by name, ignoring case.
func LookupRegister(name string) (Register, bool) {
	r, ok := RegisterNameMap[strings.ToLower(name)]
	return r, ok
}

func (r Register) String() string {
	return registerNames[r]
}

// Num is the 3-bit encoding of the register within its size class.
func (r Register) Num() int {
	return int(r) % 8
}

// Size is the register width in bytes.
func (r Register) Size() int {
	switch {
	case r < AX:
		return 1
	case r < EAX:
		return 2
	}
	return 4
}

// Is32 reports whether the register is a 32-bit (E-prefixed) register.
func (r Register) Is32() bool {
	return r.Size() == 4
}

// SegRegister is a segment register; its value is the ordinal used by the assume table.
type SegRegister int

const (
	ES SegRegister = iota
	CS
	SS
	DS
	FS
	GS
)

var segRegisterNames = [...]string{"ES", "CS", "SS", "DS", "FS", "GS"}

// segment override prefix bytes, indexed by SegRegister
var segOverridePrefixes = [...]byte{0x26, 0x2E, 0x36, 0x3E, 0x64, 0x65}

func (s SegRegister) String() string {
	return segRegisterNames[s]
}

// OverridePrefix returns the segment override prefix byte for s.
func (s SegRegister) OverridePrefix() byte {
	return segOverridePrefixes[s]
}

// LookupSegRegister finds a segment register by name, ignoring case.
func LookupSegRegister(name string) (SegRegister, bool) {
	for i, n := range segRegisterNames {
		if strings.EqualFold(n, name) {
			return SegRegister(i), true
		}
	}
	return 0, false
}
