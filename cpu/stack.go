package cpu

// push writes a byte to the stack page, and decrements the stack pointer.
// The stack pointer wraps within STACK_BASE.
func (cpu *Cpu) push(value uint8) {
	cpu.Memory.Write(STACK_BASE|uint16(cpu.Sp), value)
	cpu.Sp--
}

// pull increments the stack pointer, and reads the byte at the top of stack.
func (cpu *Cpu) pull() (value uint8) {
	cpu.Sp++
	return cpu.Memory.Read(STACK_BASE | uint16(cpu.Sp))
}

// PeekStack returns the byte at the top of stack, if any.
func (cpu *Cpu) PeekStack() (value uint8, ok bool) {
	if cpu.Sp == 0xff {
		return
	}
	return cpu.Memory.Read(STACK_BASE | uint16(cpu.Sp+1)), true
}
