// Package opcode holds the static instruction table of the MOS 6502.
//
// The table maps each documented opcode byte to its mnemonic, addressing
// mode, instruction length and base cycle count. It is built once per
// process and is never modified afterwards.
package opcode

import (
	"strings"
)

// Mode is an operand addressing mode.
type Mode int

//go:generate go tool stringer -linecomment -type=Mode
const (
	MODE_IMMEDIATE   = Mode(0) // imm
	MODE_ZERO_PAGE   = Mode(1) // zp
	MODE_ZERO_PAGE_X = Mode(2) // zp,x
	MODE_ZERO_PAGE_Y = Mode(3) // zp,y
	MODE_ABSOLUTE    = Mode(4) // abs
	MODE_ABSOLUTE_X  = Mode(5) // abs,x
	MODE_ABSOLUTE_Y  = Mode(6) // abs,y
	MODE_INDIRECT_X  = Mode(7) // (ind,x)
	MODE_INDIRECT_Y  = Mode(8) // (ind),y
	MODE_NONE        = Mode(9) // none
)

// Operands returns the number of operand bytes that follow the opcode.
func (mode Mode) Operands() int {
	switch mode {
	case MODE_ABSOLUTE, MODE_ABSOLUTE_X, MODE_ABSOLUTE_Y:
		return 2
	case MODE_NONE:
		return 0
	default:
		return 1
	}
}

// ZeroPage returns the zero page variant of an absolute mode.
func (mode Mode) ZeroPage() (zp Mode, ok bool) {
	switch mode {
	case MODE_ABSOLUTE:
		return MODE_ZERO_PAGE, true
	case MODE_ABSOLUTE_X:
		return MODE_ZERO_PAGE_X, true
	case MODE_ABSOLUTE_Y:
		return MODE_ZERO_PAGE_Y, true
	}
	return mode, false
}

// Mnemonic is an instruction name, shared by all addressing modes of
// the instruction.
type Mnemonic int

//go:generate go tool stringer -linecomment -type=Mnemonic
const (
	OP_ADC = Mnemonic(0)  // ADC
	OP_AND = Mnemonic(1)  // AND
	OP_ASL = Mnemonic(2)  // ASL
	OP_BCC = Mnemonic(3)  // BCC
	OP_BCS = Mnemonic(4)  // BCS
	OP_BEQ = Mnemonic(5)  // BEQ
	OP_BIT = Mnemonic(6)  // BIT
	OP_BMI = Mnemonic(7)  // BMI
	OP_BNE = Mnemonic(8)  // BNE
	OP_BPL = Mnemonic(9)  // BPL
	OP_BRK = Mnemonic(10) // BRK
	OP_BVC = Mnemonic(11) // BVC
	OP_BVS = Mnemonic(12) // BVS
	OP_CLC = Mnemonic(13) // CLC
	OP_CLD = Mnemonic(14) // CLD
	OP_CLI = Mnemonic(15) // CLI
	OP_CLV = Mnemonic(16) // CLV
	OP_CMP = Mnemonic(17) // CMP
	OP_CPX = Mnemonic(18) // CPX
	OP_CPY = Mnemonic(19) // CPY
	OP_DEC = Mnemonic(20) // DEC
	OP_DEX = Mnemonic(21) // DEX
	OP_DEY = Mnemonic(22) // DEY
	OP_EOR = Mnemonic(23) // EOR
	OP_INC = Mnemonic(24) // INC
	OP_INX = Mnemonic(25) // INX
	OP_INY = Mnemonic(26) // INY
	OP_JMP = Mnemonic(27) // JMP
	OP_JSR = Mnemonic(28) // JSR
	OP_LDA = Mnemonic(29) // LDA
	OP_LDX = Mnemonic(30) // LDX
	OP_LDY = Mnemonic(31) // LDY
	OP_LSR = Mnemonic(32) // LSR
	OP_NOP = Mnemonic(33) // NOP
	OP_ORA = Mnemonic(34) // ORA
	OP_PHA = Mnemonic(35) // PHA
	OP_PHP = Mnemonic(36) // PHP
	OP_PLA = Mnemonic(37) // PLA
	OP_PLP = Mnemonic(38) // PLP
	OP_ROL = Mnemonic(39) // ROL
	OP_ROR = Mnemonic(40) // ROR
	OP_RTI = Mnemonic(41) // RTI
	OP_RTS = Mnemonic(42) // RTS
	OP_SBC = Mnemonic(43) // SBC
	OP_SEC = Mnemonic(44) // SEC
	OP_SED = Mnemonic(45) // SED
	OP_SEI = Mnemonic(46) // SEI
	OP_STA = Mnemonic(47) // STA
	OP_STX = Mnemonic(48) // STX
	OP_STY = Mnemonic(49) // STY
	OP_TAX = Mnemonic(50) // TAX
	OP_TAY = Mnemonic(51) // TAY
	OP_TSX = Mnemonic(52) // TSX
	OP_TXA = Mnemonic(53) // TXA
	OP_TXS = Mnemonic(54) // TXS
	OP_TYA = Mnemonic(55) // TYA
)

// ParseMnemonic returns the Mnemonic for a case insensitive name.
func ParseMnemonic(name string) (mnemonic Mnemonic, ok bool) {
	name = strings.ToUpper(name)
	for mnemonic = OP_ADC; mnemonic <= OP_TYA; mnemonic++ {
		if mnemonic.String() == name {
			ok = true
			return
		}
	}
	return
}
