package assembler

type hoverInfoFormatsType struct {
	identifierDefinition string
	identifierReference  string
	segmentDefinition    string
	integerLiteral       string
	textLiteral          string
	generalRegister      string
	segmentRegister      string
	encoding             string
	disassembly          string

	instructions map[string]string
	directives   map[string]string
}

var hoverInfoFormats = hoverInfoFormatsType{
	identifierDefinition: "Definition of %s `%s`.\n\nOffset 0x%04X in segment `%s`",
	identifierReference:  "Reference to %s `%s`\n\nEvaluates to `%s:%04X`",
	segmentDefinition:    "Segment `%s`\n\nSize 0x%04X bytes",
	integerLiteral:       "%s `%d` (`0x%X`)",
	textLiteral:          "Text Constant of %d bytes",
	generalRegister:      "Register `%s` (%d-bit)\n\nEncoded as `%d` in ModR/M fields",
	segmentRegister:      "Segment Register `%s`\n\nOverride prefix `%02X:`\n\nAssumed to address `%s`",
	encoding:             "\n\n---\n\nListing `%s`\n\nMachine code `% X` (%d bytes)",
	disassembly:          "\n\nDisassembles to `%s`",

	instructions: map[string]string{
		"cli": "Clear Interrupt Flag.\n\nFormat: `cli`\n\nEncoded as `FA`",
		"inc": "Increment Instruction.\n\nFormat: `inc <id>[<base>]`\n\nExample: `inc var1[bx]` is the same as `var1[bx] = var1[bx] + 1`",
		"dec": "Decrement Instruction.\n\nFormat: `dec <reg>`\n\nExample: `dec cx` is the same as `cx = cx - 1`",
		"add": "Addition Instruction.\n\nFormat: `add <id>[<base>], <imm>`\n\nExample: `add var1[bx], 5` is the same as `var1[bx] = var1[bx] + 5`",
		"cmp": "Compare Instruction.\n\nFormat: `cmp <reg>, <id>[<base>]`\n\nExample: `cmp al, var1[si]` sets the flags of `al - var1[si]`",
		"xor": "XOR Instruction.\n\nFormat: `xor <id>[<base>], <reg>`\n\nExample: `xor var1[di], cx` is the same as `var1[di] = var1[di] ^ cx`",
		"mov": "Move Immediate Instruction.\n\nFormat: `mov <reg>, <imm>`\n\nExample: `mov ax, 5` is the same as `ax = 5`",
		"or":  "OR Instruction.\n\nFormat: `or <reg>, <reg>`\n\nExample: `or ax, bx` is the same as `ax = ax | bx`",
		"jb":  "Jump If Below.\n\nFormat: `jb <label>`\n\nJumps when the carry flag is set. Short form `72 rel8`, near form `0F 82 rel16`",
		"jmp": "Unconditional Jump.\n\nFormat: `jmp <label>`\n\nShort form `EB rel8`, near form `E9 rel16`",
	},
	directives: map[string]string{
		"segment": "Opens a segment.\n\nFormat: `<name> segment`",
		"ends":    "Closes the open segment.\n\nFormat: `<name> ends`",
		"assume":  "Declares which segment each segment register addresses.\n\nFormat: `assume <sreg>:<name>, ...`",
		"end":     "Ends the program.\n\nFormat: `end [<entry label>]`",
		"db":      "Declares a byte (or a text constant).\n\nFormat: `<name> db <value>`",
		"dw":      "Declares a word (2 bytes).\n\nFormat: `<name> dw <value>`",
		"dd":      "Declares a double word (4 bytes).\n\nFormat: `<name> dd <value>`",
	},
}
