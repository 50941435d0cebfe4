package opcode

import (
	"fmt"
	"sync"
)

// Descriptor describes a single opcode byte.
type Descriptor struct {
	Code     uint8    // Opcode byte.
	Mnemonic Mnemonic // Instruction name.
	Mode     Mode     // Operand addressing mode.
	Length   uint8    // Instruction length in bytes, including the opcode.
	Cycles   uint8    // Base cycle count.
}

// String returns the descriptor as 'LDA zp,x'.
func (desc Descriptor) String() string {
	if desc.Mode == MODE_NONE {
		return desc.Mnemonic.String()
	}
	return fmt.Sprintf("%v %v", desc.Mnemonic, desc.Mode)
}

// Table is a read-only map of opcode bytes to descriptors.
type Table struct {
	code  [256]Descriptor
	valid [256]bool
}

// NewTable creates a table from a list of descriptors.
// Later descriptors replace earlier ones with the same opcode byte.
func NewTable(descs ...Descriptor) (table *Table) {
	table = &Table{}
	for _, desc := range descs {
		table.code[desc.Code] = desc
		table.valid[desc.Code] = true
	}
	return
}

// Lookup returns the descriptor for an opcode byte.
func (table *Table) Lookup(code uint8) (desc Descriptor, ok bool) {
	if !table.valid[code] {
		return
	}
	return table.code[code], true
}

// Find returns the first descriptor, in opcode order, with the given
// mnemonic and mode.
func (table *Table) Find(mnemonic Mnemonic, mode Mode) (desc Descriptor, ok bool) {
	for code := range 256 {
		if !table.valid[code] {
			continue
		}
		if table.code[code].Mnemonic == mnemonic && table.code[code].Mode == mode {
			return table.code[code], true
		}
	}
	return
}

// Len returns the number of opcodes in the table.
func (table *Table) Len() (count int) {
	for _, ok := range table.valid {
		if ok {
			count++
		}
	}
	return
}

// JMP_INDIRECT is the opcode of JMP (addr), which shares MODE_NONE with
// the absolute JMP.
const JMP_INDIRECT = uint8(0x6c)

// Standard returns the documented MOS 6502 instruction table.
// Implied, accumulator, relative and jump instructions use MODE_NONE.
var Standard = sync.OnceValue(func() *Table {
	return NewTable(standard...)
})

var standard = []Descriptor{
	{0x00, OP_BRK, MODE_NONE, 1, 7},
	{0xea, OP_NOP, MODE_NONE, 1, 2},

	// Arithmetic
	{0x69, OP_ADC, MODE_IMMEDIATE, 2, 2},
	{0x65, OP_ADC, MODE_ZERO_PAGE, 2, 3},
	{0x75, OP_ADC, MODE_ZERO_PAGE_X, 2, 4},
	{0x6d, OP_ADC, MODE_ABSOLUTE, 3, 4},
	{0x7d, OP_ADC, MODE_ABSOLUTE_X, 3, 4},
	{0x79, OP_ADC, MODE_ABSOLUTE_Y, 3, 4},
	{0x61, OP_ADC, MODE_INDIRECT_X, 2, 6},
	{0x71, OP_ADC, MODE_INDIRECT_Y, 2, 5},

	{0xe9, OP_SBC, MODE_IMMEDIATE, 2, 2},
	{0xe5, OP_SBC, MODE_ZERO_PAGE, 2, 3},
	{0xf5, OP_SBC, MODE_ZERO_PAGE_X, 2, 4},
	{0xed, OP_SBC, MODE_ABSOLUTE, 3, 4},
	{0xfd, OP_SBC, MODE_ABSOLUTE_X, 3, 4},
	{0xf9, OP_SBC, MODE_ABSOLUTE_Y, 3, 4},
	{0xe1, OP_SBC, MODE_INDIRECT_X, 2, 6},
	{0xf1, OP_SBC, MODE_INDIRECT_Y, 2, 5},

	// Logic
	{0x29, OP_AND, MODE_IMMEDIATE, 2, 2},
	{0x25, OP_AND, MODE_ZERO_PAGE, 2, 3},
	{0x35, OP_AND, MODE_ZERO_PAGE_X, 2, 4},
	{0x2d, OP_AND, MODE_ABSOLUTE, 3, 4},
	{0x3d, OP_AND, MODE_ABSOLUTE_X, 3, 4},
	{0x39, OP_AND, MODE_ABSOLUTE_Y, 3, 4},
	{0x21, OP_AND, MODE_INDIRECT_X, 2, 6},
	{0x31, OP_AND, MODE_INDIRECT_Y, 2, 5},

	{0x49, OP_EOR, MODE_IMMEDIATE, 2, 2},
	{0x45, OP_EOR, MODE_ZERO_PAGE, 2, 3},
	{0x55, OP_EOR, MODE_ZERO_PAGE_X, 2, 4},
	{0x4d, OP_EOR, MODE_ABSOLUTE, 3, 4},
	{0x5d, OP_EOR, MODE_ABSOLUTE_X, 3, 4},
	{0x59, OP_EOR, MODE_ABSOLUTE_Y, 3, 4},
	{0x41, OP_EOR, MODE_INDIRECT_X, 2, 6},
	{0x51, OP_EOR, MODE_INDIRECT_Y, 2, 5},

	{0x09, OP_ORA, MODE_IMMEDIATE, 2, 2},
	{0x05, OP_ORA, MODE_ZERO_PAGE, 2, 3},
	{0x15, OP_ORA, MODE_ZERO_PAGE_X, 2, 4},
	{0x0d, OP_ORA, MODE_ABSOLUTE, 3, 4},
	{0x1d, OP_ORA, MODE_ABSOLUTE_X, 3, 4},
	{0x19, OP_ORA, MODE_ABSOLUTE_Y, 3, 4},
	{0x01, OP_ORA, MODE_INDIRECT_X, 2, 6},
	{0x11, OP_ORA, MODE_INDIRECT_Y, 2, 5},

	{0x24, OP_BIT, MODE_ZERO_PAGE, 2, 3},
	{0x2c, OP_BIT, MODE_ABSOLUTE, 3, 4},

	// Shifts and rotates
	{0x0a, OP_ASL, MODE_NONE, 1, 2},
	{0x06, OP_ASL, MODE_ZERO_PAGE, 2, 5},
	{0x16, OP_ASL, MODE_ZERO_PAGE_X, 2, 6},
	{0x0e, OP_ASL, MODE_ABSOLUTE, 3, 6},
	{0x1e, OP_ASL, MODE_ABSOLUTE_X, 3, 7},

	{0x4a, OP_LSR, MODE_NONE, 1, 2},
	{0x46, OP_LSR, MODE_ZERO_PAGE, 2, 5},
	{0x56, OP_LSR, MODE_ZERO_PAGE_X, 2, 6},
	{0x4e, OP_LSR, MODE_ABSOLUTE, 3, 6},
	{0x5e, OP_LSR, MODE_ABSOLUTE_X, 3, 7},

	{0x2a, OP_ROL, MODE_NONE, 1, 2},
	{0x26, OP_ROL, MODE_ZERO_PAGE, 2, 5},
	{0x36, OP_ROL, MODE_ZERO_PAGE_X, 2, 6},
	{0x2e, OP_ROL, MODE_ABSOLUTE, 3, 6},
	{0x3e, OP_ROL, MODE_ABSOLUTE_X, 3, 7},

	{0x6a, OP_ROR, MODE_NONE, 1, 2},
	{0x66, OP_ROR, MODE_ZERO_PAGE, 2, 5},
	{0x76, OP_ROR, MODE_ZERO_PAGE_X, 2, 6},
	{0x6e, OP_ROR, MODE_ABSOLUTE, 3, 6},
	{0x7e, OP_ROR, MODE_ABSOLUTE_X, 3, 7},

	// Increments and decrements
	{0xe6, OP_INC, MODE_ZERO_PAGE, 2, 5},
	{0xf6, OP_INC, MODE_ZERO_PAGE_X, 2, 6},
	{0xee, OP_INC, MODE_ABSOLUTE, 3, 6},
	{0xfe, OP_INC, MODE_ABSOLUTE_X, 3, 7},
	{0xe8, OP_INX, MODE_NONE, 1, 2},
	{0xc8, OP_INY, MODE_NONE, 1, 2},

	{0xc6, OP_DEC, MODE_ZERO_PAGE, 2, 5},
	{0xd6, OP_DEC, MODE_ZERO_PAGE_X, 2, 6},
	{0xce, OP_DEC, MODE_ABSOLUTE, 3, 6},
	{0xde, OP_DEC, MODE_ABSOLUTE_X, 3, 7},
	{0xca, OP_DEX, MODE_NONE, 1, 2},
	{0x88, OP_DEY, MODE_NONE, 1, 2},

	// Compares
	{0xc9, OP_CMP, MODE_IMMEDIATE, 2, 2},
	{0xc5, OP_CMP, MODE_ZERO_PAGE, 2, 3},
	{0xd5, OP_CMP, MODE_ZERO_PAGE_X, 2, 4},
	{0xcd, OP_CMP, MODE_ABSOLUTE, 3, 4},
	{0xdd, OP_CMP, MODE_ABSOLUTE_X, 3, 4},
	{0xd9, OP_CMP, MODE_ABSOLUTE_Y, 3, 4},
	{0xc1, OP_CMP, MODE_INDIRECT_X, 2, 6},
	{0xd1, OP_CMP, MODE_INDIRECT_Y, 2, 5},

	{0xe0, OP_CPX, MODE_IMMEDIATE, 2, 2},
	{0xe4, OP_CPX, MODE_ZERO_PAGE, 2, 3},
	{0xec, OP_CPX, MODE_ABSOLUTE, 3, 4},

	{0xc0, OP_CPY, MODE_IMMEDIATE, 2, 2},
	{0xc4, OP_CPY, MODE_ZERO_PAGE, 2, 3},
	{0xcc, OP_CPY, MODE_ABSOLUTE, 3, 4},

	// Jumps and branches
	{0x4c, OP_JMP, MODE_NONE, 3, 3},
	{0x6c, OP_JMP, MODE_NONE, 3, 5},
	{0x20, OP_JSR, MODE_NONE, 3, 6},
	{0x60, OP_RTS, MODE_NONE, 1, 6},
	{0x40, OP_RTI, MODE_NONE, 1, 6},

	{0xd0, OP_BNE, MODE_NONE, 2, 2},
	{0x70, OP_BVS, MODE_NONE, 2, 2},
	{0x50, OP_BVC, MODE_NONE, 2, 2},
	{0x30, OP_BMI, MODE_NONE, 2, 2},
	{0xf0, OP_BEQ, MODE_NONE, 2, 2},
	{0xb0, OP_BCS, MODE_NONE, 2, 2},
	{0x90, OP_BCC, MODE_NONE, 2, 2},
	{0x10, OP_BPL, MODE_NONE, 2, 2},

	// Loads
	{0xa9, OP_LDA, MODE_IMMEDIATE, 2, 2},
	{0xa5, OP_LDA, MODE_ZERO_PAGE, 2, 3},
	{0xb5, OP_LDA, MODE_ZERO_PAGE_X, 2, 4},
	{0xad, OP_LDA, MODE_ABSOLUTE, 3, 4},
	{0xbd, OP_LDA, MODE_ABSOLUTE_X, 3, 4},
	{0xb9, OP_LDA, MODE_ABSOLUTE_Y, 3, 4},
	{0xa1, OP_LDA, MODE_INDIRECT_X, 2, 6},
	{0xb1, OP_LDA, MODE_INDIRECT_Y, 2, 5},

	{0xa2, OP_LDX, MODE_IMMEDIATE, 2, 2},
	{0xa6, OP_LDX, MODE_ZERO_PAGE, 2, 3},
	{0xb6, OP_LDX, MODE_ZERO_PAGE_Y, 2, 4},
	{0xae, OP_LDX, MODE_ABSOLUTE, 3, 4},
	{0xbe, OP_LDX, MODE_ABSOLUTE_Y, 3, 4},

	{0xa0, OP_LDY, MODE_IMMEDIATE, 2, 2},
	{0xa4, OP_LDY, MODE_ZERO_PAGE, 2, 3},
	{0xb4, OP_LDY, MODE_ZERO_PAGE_X, 2, 4},
	{0xac, OP_LDY, MODE_ABSOLUTE, 3, 4},
	{0xbc, OP_LDY, MODE_ABSOLUTE_X, 3, 4},

	// Stores
	{0x85, OP_STA, MODE_ZERO_PAGE, 2, 3},
	{0x95, OP_STA, MODE_ZERO_PAGE_X, 2, 4},
	{0x8d, OP_STA, MODE_ABSOLUTE, 3, 4},
	{0x9d, OP_STA, MODE_ABSOLUTE_X, 3, 5},
	{0x99, OP_STA, MODE_ABSOLUTE_Y, 3, 5},
	{0x81, OP_STA, MODE_INDIRECT_X, 2, 6},
	{0x91, OP_STA, MODE_INDIRECT_Y, 2, 6},

	{0x86, OP_STX, MODE_ZERO_PAGE, 2, 3},
	{0x96, OP_STX, MODE_ZERO_PAGE_Y, 2, 4},
	{0x8e, OP_STX, MODE_ABSOLUTE, 3, 4},

	{0x84, OP_STY, MODE_ZERO_PAGE, 2, 3},
	{0x94, OP_STY, MODE_ZERO_PAGE_X, 2, 4},
	{0x8c, OP_STY, MODE_ABSOLUTE, 3, 4},

	// Flags
	{0xd8, OP_CLD, MODE_NONE, 1, 2},
	{0x58, OP_CLI, MODE_NONE, 1, 2},
	{0xb8, OP_CLV, MODE_NONE, 1, 2},
	{0x18, OP_CLC, MODE_NONE, 1, 2},
	{0x38, OP_SEC, MODE_NONE, 1, 2},
	{0x78, OP_SEI, MODE_NONE, 1, 2},
	{0xf8, OP_SED, MODE_NONE, 1, 2},

	// Transfers
	{0xaa, OP_TAX, MODE_NONE, 1, 2},
	{0xa8, OP_TAY, MODE_NONE, 1, 2},
	{0xba, OP_TSX, MODE_NONE, 1, 2},
	{0x8a, OP_TXA, MODE_NONE, 1, 2},
	{0x9a, OP_TXS, MODE_NONE, 1, 2},
	{0x98, OP_TYA, MODE_NONE, 1, 2},

	// Stack
	{0x48, OP_PHA, MODE_NONE, 1, 3},
	{0x68, OP_PLA, MODE_NONE, 1, 4},
	{0x08, OP_PHP, MODE_NONE, 1, 3},
	{0x28, OP_PLP, MODE_NONE, 1, 4},
}
