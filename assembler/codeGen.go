package assembler

import (
	"fmt"
	"strings"
)

type fieldKind int

const (
	fieldOperandSize fieldKind = iota // 66
	fieldAddressSize                  // 67
	fieldSegment                      // segment override
	fieldByte                         // opcode, ModR/M, SIB, string data
	fieldValue                        // displacement, immediate or data value
)

const (
	operandSizePrefix = 0x66
	addressSizePrefix = 0x67
	nop               = 0x90
)

type codeField struct {
	kind  fieldKind
	value int64
	width int // bytes, only meaningful for fieldValue
}

// OpCode is the encoding of one source line as an ordered list of fields.
type OpCode []codeField

func makeOperandSizePrefix() codeField {
	return codeField{kind: fieldOperandSize, value: operandSizePrefix, width: 1}
}

func makeAddressSizePrefix() codeField {
	return codeField{kind: fieldAddressSize, value: addressSizePrefix, width: 1}
}

func makeSegmentPrefix(s SegRegister) codeField {
	return codeField{kind: fieldSegment, value: int64(s.OverridePrefix()), width: 1}
}

func makeByte(b int) codeField {
	return codeField{kind: fieldByte, value: int64(b & 0xFF), width: 1}
}

func makeValue(v int64, width int) codeField {
	return codeField{kind: fieldValue, value: v, width: width}
}

func nops(count int) OpCode {
	code := OpCode{}
	for i := 0; i < count; i++ {
		code = append(code, makeByte(nop))
	}
	return code
}

// toHex formats the low width bytes of v as upper case hex, most significant first.
func toHex(v int64, width int) string {
	if width <= 0 {
		return ""
	}
	if width < 8 {
		v &= int64(1)<<(uint(width)*8) - 1
	}
	return fmt.Sprintf("%0*X", width*2, uint64(v))
}

// String renders the listing form: bytes separated by spaces, operand/address size prefixes
// followed by '|' and segment overrides followed by ':'. Multi-byte values are one group.
func (o OpCode) String() string {
	parts := make([]string, 0, len(o))
	for _, f := range o {
		switch f.kind {
		case fieldOperandSize, fieldAddressSize:
			parts = append(parts, toHex(f.value, 1)+"|")
		case fieldSegment:
			parts = append(parts, toHex(f.value, 1)+":")
		case fieldByte:
			parts = append(parts, toHex(f.value, 1))
		case fieldValue:
			if f.width > 0 {
				parts = append(parts, toHex(f.value, f.width))
			}
		}
	}
	return strings.Join(parts, " ")
}

// Size is the number of encoded bytes.
func (o OpCode) Size() int {
	size := 0
	for _, f := range o {
		size += f.width
	}
	return size
}

// Bytes returns the machine code, multi-byte values in little-endian order.
func (o OpCode) Bytes() []byte {
	out := make([]byte, 0, o.Size())
	for _, f := range o {
		if f.kind != fieldValue {
			out = append(out, byte(f.value))
			continue
		}
		for i := 0; i < f.width; i++ {
			out = append(out, byte(uint64(f.value)>>(uint(i)*8)))
		}
	}
	return out
}

// makeModRM builds the ModR/M byte (and SIB byte for [ESP]) for the reg field and base
// register. isAddress selects memory with displacement (mod 10) over register direct (mod 11).
func makeModRM(regField int, base Register, isAddress bool) OpCode {
	modrm := 0xC0
	if isAddress {
		modrm = 0x80
	}
	modrm += 0x08 * regField

	if base.Is32() {
		modrm += base.Num()
	}

	switch base {
	case SI:
		modrm += 4
	case DI:
		modrm += 5
	case BP:
		modrm += 6
	case BX:
		modrm += 7
	case ESP:
		return OpCode{makeByte(modrm), makeByte(0x24)}
	}

	return OpCode{makeByte(modrm)}
}
