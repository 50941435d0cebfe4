package cpu

import (
	"github.com/ezrec/mos6502/opcode"
)

// Resolve returns the effective operand address for an addressing mode.
// The program counter must point at the first operand byte, and is not
// advanced.
func (cpu *Cpu) Resolve(mode opcode.Mode) (addr uint16, err error) {
	mem := &cpu.Memory
	pc := cpu.Pc

	switch mode {
	case opcode.MODE_IMMEDIATE:
		addr = pc
	case opcode.MODE_ZERO_PAGE:
		addr = uint16(mem.Read(pc))
	case opcode.MODE_ZERO_PAGE_X:
		addr = uint16(mem.Read(pc) + cpu.X)
	case opcode.MODE_ZERO_PAGE_Y:
		addr = uint16(mem.Read(pc) + cpu.Y)
	case opcode.MODE_ABSOLUTE:
		addr = mem.ReadWord(pc)
	case opcode.MODE_ABSOLUTE_X:
		addr = mem.ReadWord(pc) + uint16(cpu.X)
	case opcode.MODE_ABSOLUTE_Y:
		addr = mem.ReadWord(pc) + uint16(cpu.Y)
	case opcode.MODE_INDIRECT_X:
		// Pre-indexed; the pointer never leaves page zero.
		ptr := mem.Read(pc) + cpu.X
		addr = cpu.zeroPageWord(ptr)
	case opcode.MODE_INDIRECT_Y:
		// Post-indexed; the index is applied after the pointer is read.
		ptr := mem.Read(pc)
		addr = cpu.zeroPageWord(ptr) + uint16(cpu.Y)
	default:
		err = &ErrInvalidAddressing{Mode: mode}
	}

	return
}

// zeroPageWord reads a little endian pointer from page zero, where the
// high byte of a pointer at 0xff is at 0x00.
func (cpu *Cpu) zeroPageWord(ptr uint8) uint16 {
	lo := cpu.Memory.Read(uint16(ptr))
	hi := cpu.Memory.Read(uint16(ptr + 1))

	return (uint16(hi) << 8) | uint16(lo)
}
