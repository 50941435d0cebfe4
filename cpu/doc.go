// Package cpu implements the processor and assembler for the MOS 6502.
//
// The CPU consists of an accumulator (A), two index registers (X, Y), an
// 8-bit stack pointer, a 16-bit program counter, a status register of
// eight flags, and 64KiB of flat memory. Instructions are decoded through
// an injected opcode table and dispatched by mnemonic, with the operand
// address computed from the opcode's addressing mode.
//
// The assembler accepts conventional 6502 syntax, supporting labels,
// equates, data directives and compile-time expression evaluation.
package cpu
