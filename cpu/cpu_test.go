package cpu

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/mos6502/opcode"
)

func TestNewCpu(t *testing.T) {
	assert := assert.New(t)

	table := opcode.Standard()
	cpu := NewCpu(table)
	assert.Same(table, cpu.Opcodes)
	assert.Equal(STATUS_POWER_ON, cpu.Status)
	assert.Equal(uint16(0), cpu.Pc)

	defines := map[string]string{}
	for key, value := range cpu.Defines() {
		defines[key] = value
	}
	assert.Equal("0x8000", defines["ORIGIN"])
	assert.Equal("0xfffc", defines["RESET_VECTOR"])
}

func TestReset(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu(opcode.Standard())
	cpu.A = 1
	cpu.X = 2
	cpu.Y = 3
	cpu.Sp = 4
	cpu.Status = 0xff
	cpu.Ticks = 5
	cpu.Cycles = 6
	cpu.Memory.WriteWord(RESET_VECTOR, 0x1234)

	cpu.Reset()
	assert.Equal(uint8(0), cpu.A)
	assert.Equal(uint8(0), cpu.X)
	assert.Equal(uint8(0), cpu.Y)
	assert.Equal(uint8(0xfd), cpu.Sp)
	assert.Equal(Status(0x24), cpu.Status)
	assert.Equal(0, cpu.Ticks)
	assert.Equal(0, cpu.Cycles)
	assert.Equal(uint16(0x1234), cpu.Pc)
	assert.Equal("A:00 X:00 Y:00 P:24 SP:FD PC:1234", cpu.Trace())
}

func TestLoad(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu(opcode.Standard())
	cpu.A = 5

	err := cpu.Load([]uint8{1, 2, 3})
	assert.NoError(err)
	assert.Equal(uint8(1), cpu.Peek(0x8000))
	assert.Equal(uint8(2), cpu.Peek(0x8001))
	assert.Equal(uint8(3), cpu.Peek(0x8002))
	assert.Equal(uint16(0x8000), cpu.Pc)
	assert.Equal(uint16(0x8000), cpu.Memory.ReadWord(RESET_VECTOR))
	assert.Equal(uint8(5), cpu.A)
}

func TestLoadVector(t *testing.T) {
	assert := assert.New(t)

	program := make([]uint8, PROGRAM_LIMIT)
	program[int(RESET_VECTOR-ORIGIN)] = 0x34
	program[int(RESET_VECTOR-ORIGIN)+1] = 0x12

	cpu := NewCpu(opcode.Standard())
	err := cpu.Load(program)
	assert.NoError(err)
	assert.Equal(uint16(0x1234), cpu.Memory.ReadWord(RESET_VECTOR))

	cpu.Reset()
	assert.Equal(uint16(0x1234), cpu.Pc)
}

func TestLoadKeepsVector(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu(opcode.Standard())
	cpu.Memory.WriteWord(RESET_VECTOR, 0x8002)

	err := cpu.LoadAndRun([]uint8{0xa9, 0x11, 0xa9, 0x22, 0x00})
	assert.NoError(err)
	assert.Equal(uint16(0x8002), cpu.Memory.ReadWord(RESET_VECTOR))
	assert.Equal(uint8(0x22), cpu.A)
	assert.Equal(1, cpu.Ticks)

	// A full image with a zero vector is loaded as-is.
	cpu = NewCpu(opcode.Standard())
	assert.NoError(cpu.Load(make([]uint8, PROGRAM_LIMIT)))
	assert.Equal(uint16(0x0000), cpu.Memory.ReadWord(RESET_VECTOR))
}

func TestLoadTooLarge(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu(opcode.Standard())
	err := cpu.Load(make([]uint8, PROGRAM_LIMIT+1))
	assert.True(errors.Is(err, ErrProgramSize))
	assert.Equal(uint16(0), cpu.Pc)
	assert.Equal(uint16(0), cpu.Memory.ReadWord(RESET_VECTOR))
}

func TestLoadAndRun(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu(opcode.Standard())
	err := cpu.LoadAndRun([]uint8{0xa9, 0xc0, 0xaa, 0xe8, 0x00})
	assert.NoError(err)
	assert.Equal(uint8(0xc0), cpu.A)
	assert.Equal(uint8(0xc1), cpu.X)
	assert.True(cpu.Status.Has(STATUS_NEGATIVE))
	assert.False(cpu.Status.Has(STATUS_ZERO))
	assert.Equal(Status(0xa4), cpu.Status)
	assert.Equal(uint16(0x8005), cpu.Pc)
	assert.Equal(3, cpu.Ticks)
	assert.Equal(6, cpu.Cycles)
}

func TestStep(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu(opcode.Standard())
	assert.NoError(cpu.Load([]uint8{0xa9, 0xc0, 0xaa, 0xe8, 0x00}))
	cpu.Reset()

	done, err := cpu.Step()
	assert.NoError(err)
	assert.False(done)
	assert.Equal(uint8(0xc0), cpu.A)
	assert.True(cpu.Status.Has(STATUS_NEGATIVE))
	assert.Equal(uint16(0x8002), cpu.Pc)

	done, err = cpu.Step()
	assert.NoError(err)
	assert.False(done)
	assert.Equal(uint8(0xc0), cpu.X)
	assert.Equal(uint16(0x8003), cpu.Pc)

	done, err = cpu.Step()
	assert.NoError(err)
	assert.False(done)
	assert.Equal(uint8(0xc1), cpu.X)

	done, err = cpu.Step()
	assert.NoError(err)
	assert.True(done)
	assert.Equal(uint16(0x8005), cpu.Pc)
}

func TestLoadFlags(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu(opcode.Standard())

	assert.NoError(cpu.LoadAndRun([]uint8{0xa9, 0x00, 0x00}))
	assert.True(cpu.Status.Has(STATUS_ZERO))
	assert.False(cpu.Status.Has(STATUS_NEGATIVE))

	assert.NoError(cpu.LoadAndRun([]uint8{0xa9, 0x80, 0x00}))
	assert.False(cpu.Status.Has(STATUS_ZERO))
	assert.True(cpu.Status.Has(STATUS_NEGATIVE))

	assert.NoError(cpu.LoadAndRun([]uint8{0xa9, 0x7f, 0x00}))
	assert.False(cpu.Status.Has(STATUS_ZERO))
	assert.False(cpu.Status.Has(STATUS_NEGATIVE))
}

func TestUnrecognized(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu(opcode.Standard())
	err := cpu.LoadAndRun([]uint8{0xea, 0xff})
	assert.True(errors.Is(err, ErrUnrecognized))

	var unrecognized *ErrUnrecognizedOpcode
	assert.True(errors.As(err, &unrecognized))
	assert.Equal(uint8(0xff), unrecognized.Opcode)
	assert.Equal(uint16(0x8001), unrecognized.Pc)
	assert.Equal(1, cpu.Ticks)

	// A table without LDA does not decode it.
	cpu = NewCpu(opcode.NewTable(opcode.Descriptor{Code: 0x00, Mnemonic: opcode.OP_BRK, Mode: opcode.MODE_NONE, Length: 1, Cycles: 7}))
	err = cpu.LoadAndRun([]uint8{0xa9, 0x01, 0x00})
	assert.True(errors.As(err, &unrecognized))
	assert.Equal(uint8(0xa9), unrecognized.Opcode)
}

func TestUnimplemented(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu(opcode.Standard())
	err := cpu.LoadAndRun([]uint8{0x69, 0x01, 0x00})
	assert.True(errors.Is(err, ErrUnimplemented))
	assert.False(errors.Is(err, ErrUnrecognized))

	var unimplemented *ErrUnimplementedOpcode
	assert.True(errors.As(err, &unimplemented))
	assert.Equal(uint8(0x69), unimplemented.Opcode)
	assert.Equal(opcode.OP_ADC, unimplemented.Mnemonic)
	assert.Equal(uint16(0x8000), unimplemented.Pc)
}

func TestInvalidAddressing(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu(opcode.NewTable(
		opcode.Descriptor{Code: 0x00, Mnemonic: opcode.OP_BRK, Mode: opcode.MODE_NONE, Length: 1, Cycles: 7},
		opcode.Descriptor{Code: 0xa9, Mnemonic: opcode.OP_LDA, Mode: opcode.MODE_NONE, Length: 1, Cycles: 2},
	))
	err := cpu.LoadAndRun([]uint8{0xa9, 0x00})
	assert.True(errors.Is(err, ErrAddressing))
	assert.Equal(0, cpu.Ticks)
}

func TestString(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu(opcode.Standard())
	assert.NoError(cpu.LoadAndRun([]uint8{0xa9, 0xc0, 0x48, 0x00}))

	text := cpu.String()
	assert.Contains(text, "     a: C0 11000000\n")
	assert.Contains(text, "status: A4 N-B--I--\n")
	assert.Contains(text, "    pc: 8004\n")
	assert.Contains(text, "    sp: FC\n")
	assert.Contains(text, "   top: C0\n")

	cpu.Sp = 0xff
	assert.Contains(cpu.String(), "   top: --\n")
}
