package cpu

import (
	"errors"
	"fmt"
	"iter"
	"log"
	"maps"

	"github.com/ezrec/mos6502/opcode"
)

const (
	ORIGIN       = uint16(0x8000) // Program load address.
	RESET_VECTOR = uint16(0xfffc) // Location of the reset program counter.
	STACK_BASE   = uint16(0x0100) // Page of the hardware stack.
	SP_RESET     = uint8(0xfd)    // Stack pointer at power on.

	PROGRAM_LIMIT = MEMORY_SIZE - int(ORIGIN) // Largest loadable program.
)

var _cpu_defines = map[string]string{
	"ORIGIN":       fmt.Sprintf("0x%04x", ORIGIN),
	"RESET_VECTOR": fmt.Sprintf("0x%04x", RESET_VECTOR),
	"STACK_BASE":   fmt.Sprintf("0x%04x", STACK_BASE),
	"SP_RESET":     fmt.Sprintf("0x%02x", SP_RESET),
}

// Cpu is the simulation context for a 6502.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	Opcodes *opcode.Table // Opcode table used for decode.

	A      uint8  // Accumulator.
	X      uint8  // X index register.
	Y      uint8  // Y index register.
	Sp     uint8  // Stack pointer, offset into STACK_BASE.
	Pc     uint16 // Program counter.
	Status Status // Processor status flags.

	Ticks  int // Instructions executed since reset.
	Cycles int // Base cycles of the instructions executed since reset.

	Memory Memory // Address space.
}

// NewCpu creates a new CPU that decodes with the given opcode table.
func NewCpu(table *opcode.Table) (cpu *Cpu) {
	cpu = &Cpu{
		Opcodes: table,
		Status:  STATUS_POWER_ON,
	}

	return
}

// Defines for the cpu
func (cpu *Cpu) Defines() iter.Seq2[string, string] {
	return maps.All(_cpu_defines)
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	regs := []string{"a", "x", "y", "status", "pc", "sp", "top"}
	for _, reg := range regs {
		var strval string
		switch reg {
		case "a":
			strval = fmt.Sprintf("%02X %08b", cpu.A, cpu.A)
		case "x":
			strval = fmt.Sprintf("%02X %08b", cpu.X, cpu.X)
		case "y":
			strval = fmt.Sprintf("%02X %08b", cpu.Y, cpu.Y)
		case "status":
			strval = fmt.Sprintf("%02X %v", uint8(cpu.Status), cpu.Status)
		case "pc":
			strval = fmt.Sprintf("%04X", cpu.Pc)
		case "sp":
			strval = fmt.Sprintf("%02X", cpu.Sp)
		case "top":
			strval = "--"
			if value, ok := cpu.PeekStack(); ok {
				strval = fmt.Sprintf("%02X", value)
			}
		}
		text += fmt.Sprintf("% 6s: %v\n", reg, strval)
	}

	return
}

// Trace returns the CPU state as a single line.
func (cpu *Cpu) Trace() string {
	return fmt.Sprintf("A:%02X X:%02X Y:%02X P:%02X SP:%02X PC:%04X",
		cpu.A, cpu.X, cpu.Y, uint8(cpu.Status), cpu.Sp, cpu.Pc)
}

// Peek reads a byte of memory.
func (cpu *Cpu) Peek(addr uint16) uint8 {
	return cpu.Memory.Read(addr)
}

// Load copies a program to ORIGIN, and sets the program counter to ORIGIN.
// When the program does not cover the reset vector and the vector is
// unset (zero), the vector is set to ORIGIN. Registers are not modified.
func (cpu *Cpu) Load(program []uint8) (err error) {
	if len(program) > PROGRAM_LIMIT {
		err = errors.Join(ErrProgramSize, fmt.Errorf("%d > %d", len(program), PROGRAM_LIMIT))
		return
	}

	covered := int(ORIGIN)+len(program) > int(RESET_VECTOR)
	cpu.Memory.Copy(ORIGIN, program)
	if !covered && cpu.Memory.ReadWord(RESET_VECTOR) == 0 {
		cpu.Memory.WriteWord(RESET_VECTOR, ORIGIN)
	}
	cpu.Pc = ORIGIN

	if cpu.Verbose {
		log.Printf("cpu: load %d bytes at 0x%04x", len(program), ORIGIN)
	}

	return
}

// Reset the CPU state.
// - Clears A, X and Y.
// - Sets the stack pointer and status to their power on values.
// - Zeros statistics counters.
// - Loads the program counter from the reset vector.
func (cpu *Cpu) Reset() {
	cpu.A = 0
	cpu.X = 0
	cpu.Y = 0
	cpu.Sp = SP_RESET
	cpu.Status = STATUS_POWER_ON
	cpu.Ticks = 0
	cpu.Cycles = 0

	cpu.Pc = cpu.Memory.ReadWord(RESET_VECTOR)

	if cpu.Verbose {
		log.Printf("cpu: reset to 0x%04x", cpu.Pc)
	}
}

// Step executes a single instruction. Returns done when BRK is decoded.
func (cpu *Cpu) Step() (done bool, err error) {
	pc := cpu.Pc
	code := cpu.Memory.Read(pc)
	cpu.Pc++

	desc, ok := cpu.Opcodes.Lookup(code)
	if !ok {
		err = &ErrUnrecognizedOpcode{Opcode: code, Pc: pc}
		return
	}

	if cpu.Verbose {
		log.Printf("cpu: %04x: %02x %v", pc, code, desc)
	}

	if desc.Mnemonic == opcode.OP_BRK {
		done = true
		return
	}

	exec, ok := instructions[desc.Mnemonic]
	if !ok {
		err = &ErrUnimplementedOpcode{Opcode: code, Mnemonic: desc.Mnemonic, Pc: pc}
		return
	}

	err = exec(cpu, desc.Mode)
	if err != nil {
		err = errors.Join(fmt.Errorf("0x%04x: %v", pc, desc), err)
		return
	}

	cpu.Pc += uint16(desc.Length) - 1
	cpu.Ticks++
	cpu.Cycles += int(desc.Cycles)

	return
}

// Run executes instructions until BRK, or an error.
func (cpu *Cpu) Run() (err error) {
	for {
		var done bool
		done, err = cpu.Step()
		if done || err != nil {
			return
		}
	}
}

// LoadAndRun loads a program, resets the CPU, and runs until BRK.
func (cpu *Cpu) LoadAndRun(program []uint8) (err error) {
	err = cpu.Load(program)
	if err != nil {
		return
	}

	cpu.Reset()

	return cpu.Run()
}
