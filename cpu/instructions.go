package cpu

import (
	"github.com/ezrec/mos6502/opcode"
)

// instruction executes a mnemonic with the addressing mode of the decoded
// opcode. The program counter points at the first operand byte.
type instruction func(cpu *Cpu, mode opcode.Mode) error

// instructions is the dispatch table. Mnemonics that are in the opcode
// table but not here decode as ErrUnimplementedOpcode.
var instructions = map[opcode.Mnemonic]instruction{
	opcode.OP_LDA: func(cpu *Cpu, mode opcode.Mode) error { return cpu.load(&cpu.A, mode) },
	opcode.OP_LDX: func(cpu *Cpu, mode opcode.Mode) error { return cpu.load(&cpu.X, mode) },
	opcode.OP_LDY: func(cpu *Cpu, mode opcode.Mode) error { return cpu.load(&cpu.Y, mode) },

	opcode.OP_STA: func(cpu *Cpu, mode opcode.Mode) error { return cpu.store(cpu.A, mode) },
	opcode.OP_STX: func(cpu *Cpu, mode opcode.Mode) error { return cpu.store(cpu.X, mode) },
	opcode.OP_STY: func(cpu *Cpu, mode opcode.Mode) error { return cpu.store(cpu.Y, mode) },

	opcode.OP_TAX: func(cpu *Cpu, mode opcode.Mode) error { return cpu.transfer(&cpu.X, cpu.A) },
	opcode.OP_TAY: func(cpu *Cpu, mode opcode.Mode) error { return cpu.transfer(&cpu.Y, cpu.A) },
	opcode.OP_TXA: func(cpu *Cpu, mode opcode.Mode) error { return cpu.transfer(&cpu.A, cpu.X) },
	opcode.OP_TYA: func(cpu *Cpu, mode opcode.Mode) error { return cpu.transfer(&cpu.A, cpu.Y) },
	opcode.OP_TSX: func(cpu *Cpu, mode opcode.Mode) error { return cpu.transfer(&cpu.X, cpu.Sp) },
	opcode.OP_TXS: func(cpu *Cpu, mode opcode.Mode) error {
		// The only transfer that leaves the flags alone.
		cpu.Sp = cpu.X
		return nil
	},

	opcode.OP_INX: func(cpu *Cpu, mode opcode.Mode) error { return cpu.transfer(&cpu.X, cpu.X+1) },
	opcode.OP_INY: func(cpu *Cpu, mode opcode.Mode) error { return cpu.transfer(&cpu.Y, cpu.Y+1) },
	opcode.OP_DEX: func(cpu *Cpu, mode opcode.Mode) error { return cpu.transfer(&cpu.X, cpu.X-1) },
	opcode.OP_DEY: func(cpu *Cpu, mode opcode.Mode) error { return cpu.transfer(&cpu.Y, cpu.Y-1) },

	opcode.OP_CLC: func(cpu *Cpu, mode opcode.Mode) error { return cpu.flag(STATUS_CARRY, false) },
	opcode.OP_SEC: func(cpu *Cpu, mode opcode.Mode) error { return cpu.flag(STATUS_CARRY, true) },
	opcode.OP_CLI: func(cpu *Cpu, mode opcode.Mode) error { return cpu.flag(STATUS_INTERRUPT_DISABLE, false) },
	opcode.OP_SEI: func(cpu *Cpu, mode opcode.Mode) error { return cpu.flag(STATUS_INTERRUPT_DISABLE, true) },
	opcode.OP_CLD: func(cpu *Cpu, mode opcode.Mode) error { return cpu.flag(STATUS_DECIMAL_MODE, false) },
	opcode.OP_SED: func(cpu *Cpu, mode opcode.Mode) error { return cpu.flag(STATUS_DECIMAL_MODE, true) },
	opcode.OP_CLV: func(cpu *Cpu, mode opcode.Mode) error { return cpu.flag(STATUS_OVERFLOW, false) },

	opcode.OP_PHA: func(cpu *Cpu, mode opcode.Mode) error {
		cpu.push(cpu.A)
		return nil
	},
	opcode.OP_PLA: func(cpu *Cpu, mode opcode.Mode) error { return cpu.transfer(&cpu.A, cpu.pull()) },
	opcode.OP_PHP: func(cpu *Cpu, mode opcode.Mode) error {
		// Pushed status always has both break bits set.
		cpu.push(uint8(cpu.Status | STATUS_BREAK_A | STATUS_BREAK_B))
		return nil
	},
	opcode.OP_PLP: func(cpu *Cpu, mode opcode.Mode) error {
		// Break bits are not in the processor, and are kept as-is.
		const breaks = STATUS_BREAK_A | STATUS_BREAK_B
		cpu.Status = (Status(cpu.pull()) &^ breaks) | (cpu.Status & breaks)
		return nil
	},

	opcode.OP_NOP: func(cpu *Cpu, mode opcode.Mode) error { return nil },
}

// load reads the operand into a register.
func (cpu *Cpu) load(reg *uint8, mode opcode.Mode) (err error) {
	addr, err := cpu.Resolve(mode)
	if err != nil {
		return
	}

	*reg = cpu.Memory.Read(addr)
	cpu.Status.UpdateZeroNegative(*reg)

	return
}

// store writes a register to the operand. Flags are not modified.
func (cpu *Cpu) store(value uint8, mode opcode.Mode) (err error) {
	addr, err := cpu.Resolve(mode)
	if err != nil {
		return
	}

	cpu.Memory.Write(addr, value)

	return
}

// transfer sets a register to a value.
func (cpu *Cpu) transfer(reg *uint8, value uint8) error {
	*reg = value
	cpu.Status.UpdateZeroNegative(value)
	return nil
}

func (cpu *Cpu) flag(flag Status, on bool) error {
	cpu.Status.Set(flag, on)
	return nil
}
