package emulator

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/mos6502/cpu"
	"github.com/ezrec/mos6502/opcode"
	"github.com/ezrec/mos6502/rom"
)

func TestEmulator(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()

	assert.False(emu.Verbose)
	assert.Same(opcode.Standard(), emu.Cpu.Opcodes)
	assert.Equal(0, len(emu.Program.Lines))
}

// doRunSingle steps through each line of a straight line program, which
// must end in BRK.
func doRunSingle(emu *Emulator, program []string, t *testing.T) {
	assert := assert.New(t)

	err := emu.Assemble(strings.NewReader(strings.Join(program, "\n")))
	if !assert.NoError(err) {
		t.FailNow()
	}

	err = emu.Reset()
	assert.NoError(err)

	last := len(emu.Program.Lines) - 1
	for n, line := range emu.Program.Lines {
		here := program[line.LineNo-1]
		assert.Equal(line.LineNo, emu.LineNo(), here)
		assert.Equal(line.Pc, emu.Cpu.Pc, here)

		desc, ok := emu.Opcode()
		assert.True(ok, here)
		assert.Equal(line.Bytes[0], desc.Code, here)

		done, err := emu.Tick()
		if err != nil {
			t.Log(emu.Cpu.String())
			t.Fatalf("%v", err)
		}
		assert.Equal(n == last, done, here)
	}
}

func TestEmulatorDemo(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()

	program := []string{
		"LDA #$C0",
		"TAX",
		"INX",
		"BRK",
	}
	doRunSingle(emu, program, t)

	assert.Equal([]uint8{0xa9, 0xc0, 0xaa, 0xe8, 0x00}, emu.Program.Binary())
	assert.Equal(uint8(0xc0), emu.Cpu.A)
	assert.Equal(uint8(0xc1), emu.Cpu.X)
	assert.True(emu.Cpu.Status.Has(cpu.STATUS_NEGATIVE))
	assert.Equal(3, emu.Cpu.Ticks)
}

func TestEmulatorRegisters(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()

	program := []string{
		"\tLDX #>ROM_ORIGIN ; 0x80",
		"\tLDY #SP_RESET",
		"\tTYA",
		"\tSTA $0200,X",
		"\tPHA",
		"\tSEC",
		"\tBRK",
	}
	doRunSingle(emu, program, t)

	assert.Equal(uint8(0xfd), emu.Cpu.A)
	assert.Equal(uint8(0x80), emu.Cpu.X)
	assert.Equal(uint8(0xfd), emu.Cpu.Y)
	assert.Equal(uint8(0xfc), emu.Cpu.Sp)
	assert.Equal(uint8(0xfd), emu.Cpu.Peek(0x0280))
	assert.Equal(uint8(0xfd), emu.Cpu.Peek(0x01fd))
	assert.Equal(cpu.Status(0xa5), emu.Cpu.Status)
}

func TestEmulatorDefines(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()

	defines := map[string]string{}
	for key, value := range emu.Defines() {
		defines[key] = value
	}
	assert.Equal("0x8000", defines["ORIGIN"])
	assert.Equal("0xfffc", defines["RESET_VECTOR"])
	assert.Equal("0x8000", defines["ROM_ORIGIN"])
	assert.Equal("0x8000", defines["ROM_SIZE"])
}

func TestEmulatorRuntimeError(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()

	err := emu.Assemble(strings.NewReader("\tLDA #1\n\tADC #1\n\tBRK\n"))
	assert.NoError(err)
	assert.NoError(emu.Reset())

	err = emu.Run()
	assert.True(errors.Is(err, cpu.ErrUnimplemented))

	var runtime *ErrRuntime
	if assert.True(errors.As(err, &runtime)) {
		assert.Equal(2, runtime.LineNo)
		assert.Equal(uint16(0x8002), runtime.Pc)
	}

	var unimplemented *cpu.ErrUnimplementedOpcode
	if assert.True(errors.As(err, &unimplemented)) {
		assert.Equal(opcode.OP_ADC, unimplemented.Mnemonic)
	}
}

func TestEmulatorAssembleError(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	prog := emu.Program

	err := emu.Assemble(strings.NewReader("\tLDA #1\n\tBOGUS\n"))
	assert.True(errors.Is(err, cpu.ErrOpcodeInvalid))
	assert.Same(prog, emu.Program)
}

func TestEmulatorRom(t *testing.T) {
	assert := assert.New(t)

	image, err := rom.Read(bytes.NewReader([]uint8{0xa0, 0x7f, 0xc8, 0xff}))
	assert.NoError(err)

	emu := NewEmulator()
	emu.Program = image.Program()
	assert.NoError(emu.Reset())
	assert.Equal(uint16(0x8000), emu.Cpu.Pc)
	assert.Equal(0, emu.LineNo())

	err = emu.Run()
	assert.True(errors.Is(err, cpu.ErrUnrecognized))
	assert.Equal(uint8(0x80), emu.Cpu.Y)
	assert.True(emu.Cpu.Status.Has(cpu.STATUS_NEGATIVE))

	var runtime *ErrRuntime
	if assert.True(errors.As(err, &runtime)) {
		assert.Equal(uint16(0x8003), runtime.Pc)
	}
}

func TestEmulatorResetClearsMemory(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	emu.Cpu.Memory.Write(0x0200, 0x55)

	assert.NoError(emu.Assemble(strings.NewReader("\tLDA $0200\n\tBRK\n")))
	assert.NoError(emu.Reset())
	assert.NoError(emu.Run())
	assert.Equal(uint8(0x00), emu.Cpu.A)
	assert.True(emu.Cpu.Status.Has(cpu.STATUS_ZERO))
}
