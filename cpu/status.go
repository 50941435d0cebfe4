package cpu

// Status is the processor status register.
type Status uint8

// Status flags, by bit position.
const (
	STATUS_CARRY             = Status(1 << 0)
	STATUS_ZERO              = Status(1 << 1)
	STATUS_INTERRUPT_DISABLE = Status(1 << 2)
	STATUS_DECIMAL_MODE      = Status(1 << 3)
	STATUS_BREAK_A           = Status(1 << 4) // No arithmetic meaning.
	STATUS_BREAK_B           = Status(1 << 5) // No arithmetic meaning.
	STATUS_OVERFLOW          = Status(1 << 6)
	STATUS_NEGATIVE          = Status(1 << 7)

	STATUS_POWER_ON = STATUS_BREAK_B | STATUS_INTERRUPT_DISABLE // 0b0010_0100
)

// Has returns true if all of the flags are set.
func (st Status) Has(flags Status) bool {
	return st&flags == flags
}

// Set sets or clears the flags.
func (st *Status) Set(flags Status, on bool) {
	if on {
		*st |= flags
	} else {
		*st &^= flags
	}
}

// UpdateZeroNegative sets STATUS_ZERO iff the result is zero, and
// STATUS_NEGATIVE iff bit 7 of the result is set.
func (st *Status) UpdateZeroNegative(result uint8) {
	st.Set(STATUS_ZERO, result == 0)
	st.Set(STATUS_NEGATIVE, result&0x80 != 0)
}

// String returns the flags as 'NVBBDIZC', with '-' for a clear flag.
func (st Status) String() string {
	const names = "NVBBDIZC"

	text := []byte(names)
	for n := range len(names) {
		if !st.Has(Status(0x80 >> n)) {
			text[n] = '-'
		}
	}

	return string(text)
}
