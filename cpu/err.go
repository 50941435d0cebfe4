package cpu

import (
	"errors"

	"github.com/ezrec/mos6502/opcode"
	"github.com/ezrec/mos6502/translate"
)

var f = translate.From

var (
	// Cpu errors
	ErrUnrecognized  = errors.New(f("unrecognized opcode"))
	ErrUnimplemented = errors.New(f("unimplemented opcode"))
	ErrAddressing    = errors.New(f("invalid addressing"))
	ErrProgramSize   = errors.New(f("program too large"))

	// Assembler errors
	ErrEquateSyntax       = errors.New(f(".equ syntax"))
	ErrEquateDuplicate    = errors.New(f(".equ duplicated"))
	ErrLabelDuplicate     = errors.New(f("label duplicated"))
	ErrDirectiveInvalid   = errors.New(f("directive invalid"))
	ErrOpcodeExtraArgs    = errors.New(f("excessive arguments"))
	ErrOpcodeValueMissing = errors.New(f("value missing"))
	ErrOpcodeInvalid      = errors.New(f("opcode invalid"))
	ErrOperandInvalid     = errors.New(f("operand invalid"))
	ErrOperandRange       = errors.New(f("operand out of range"))
	ErrBranchRange        = errors.New(f("branch out of range"))
	ErrMacroSyntax        = errors.New(f(".macro syntax"))
	ErrMacroNesting       = errors.New(f(".macro in .macro prohibited"))
	ErrMacroDuplicate     = errors.New(f(".macro duplicated"))
	ErrMacroLonely        = errors.New(f(".macro without .endm"))
	ErrMacroLonelyEndm    = errors.New(f(".endm without .macro"))
)

// ErrUnrecognizedOpcode is an opcode byte with no table entry.
type ErrUnrecognizedOpcode struct {
	Opcode uint8  // Opcode byte.
	Pc     uint16 // Program counter at fetch.
}

func (err *ErrUnrecognizedOpcode) Error() string {
	return f("unrecognized opcode 0x%02x at 0x%04x", err.Opcode, err.Pc)
}

func (err *ErrUnrecognizedOpcode) Is(target error) bool {
	return target == ErrUnrecognized
}

// ErrUnimplementedOpcode is an opcode with a table entry, but no execution.
type ErrUnimplementedOpcode struct {
	Opcode   uint8
	Mnemonic opcode.Mnemonic
	Pc       uint16
}

func (err *ErrUnimplementedOpcode) Error() string {
	return f("unimplemented opcode 0x%02x %v at 0x%04x", err.Opcode, err.Mnemonic, err.Pc)
}

func (err *ErrUnimplementedOpcode) Is(target error) bool {
	return target == ErrUnimplemented
}

// ErrInvalidAddressing is an address resolution with a mode that has
// no memory operand.
type ErrInvalidAddressing struct {
	Mode opcode.Mode
}

func (err *ErrInvalidAddressing) Error() string {
	return f("invalid addressing mode %v", err.Mode)
}

func (err *ErrInvalidAddressing) Is(target error) bool {
	return target == ErrAddressing
}

type ErrLabelMissing string

func (el ErrLabelMissing) Error() string {
	return f("label %v missing", string(el))
}

type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}

type ErrMacro struct {
	Macro string
	Line  int
	Err   error
}

func (err ErrMacro) Error() string {
	return f("macro %v line %v %v", err.Macro, err.Line, err.Err.Error())
}

func (err ErrMacro) Unwrap() error {
	return err.Err
}
