package cpu

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgramDebug(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	prog, err := asm.Parse(strings.NewReader("\tLDA #1\n\n\tSTA $1234\n\tBRK\n"))
	assert.NoError(err)
	assert.Equal(3, len(prog.Lines))

	dbg := prog.Debug(0x8000)
	assert.NotNil(dbg.Line)
	assert.Equal(1, dbg.LineNo)
	assert.Equal(0, dbg.Index)

	dbg = prog.Debug(0x8004)
	assert.NotNil(dbg.Line)
	assert.Equal(3, dbg.LineNo)
	assert.Equal(uint16(0x8002), dbg.Pc)
	assert.Equal(2, dbg.Index)
	assert.Equal([]string{"STA", "$1234"}, dbg.Words)

	dbg = prog.Debug(0x8005)
	assert.Equal(4, dbg.LineNo)

	dbg = prog.Debug(0x9000)
	assert.Nil(dbg.Line)
}

func TestProgramFromBinary(t *testing.T) {
	assert := assert.New(t)

	prog := ProgramFromBinary([]uint8{0xa9, 0x01, 0x00})
	assert.Equal(1, len(prog.Lines))
	assert.Equal(ORIGIN, prog.Lines[0].Pc)
	assert.Equal([]uint8{0xa9, 0x01, 0x00}, prog.Binary())
	assert.Equal(2, prog.Debug(0x8002).Index)

	prog = ProgramFromBinary(nil)
	assert.Equal(0, len(prog.Lines))
	assert.Nil(prog.Binary())
}

func TestLineLink(t *testing.T) {
	assert := assert.New(t)

	line := Line{Pc: 0x8000, Bytes: []uint8{0xd0, 0x00}}
	assert.NoError(line.link(0x8000))
	assert.Equal(uint8(0xfe), line.Bytes[1])

	assert.NoError(line.link(0x8081))
	assert.Equal(uint8(0x7f), line.Bytes[1])

	assert.ErrorIs(line.link(0x8082), ErrBranchRange)
	assert.ErrorIs(line.link(0x7f81), ErrBranchRange)

	line = Line{Pc: 0x8000, Bytes: []uint8{0x4c, 0x00, 0x00}}
	assert.NoError(line.link(0xbeef))
	assert.Equal([]uint8{0x4c, 0xef, 0xbe}, line.Bytes)

	line = Line{Pc: 0x8000, Bytes: []uint8{0xea}}
	assert.ErrorIs(line.link(0x1234), ErrOperandInvalid)
}
