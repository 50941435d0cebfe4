package cpu

// Line is a line of assembled code with its source location and
// generated bytes.
type Line struct {
	LineNo    int
	Pc        uint16
	Words     []string
	Bytes     []uint8
	LinkLabel string
}

// link resolves the operand of a line to a target address. Two byte
// lines are relative branches, three byte lines take the address.
func (line *Line) link(target uint16) (err error) {
	switch len(line.Bytes) {
	case 2:
		offset := int(target) - (int(line.Pc) + 2)
		if offset < -128 || offset > 127 {
			err = ErrBranchRange
			return
		}
		line.Bytes[1] = uint8(int8(offset))
	case 3:
		line.Bytes[1] = uint8(target & 0xff)
		line.Bytes[2] = uint8(target >> 8)
	default:
		err = ErrOperandInvalid
	}
	return
}

type Program struct {
	Lines []Line
}

// ProgramFromBinary creates a program from a raw image loaded at ORIGIN.
func ProgramFromBinary(data []uint8) (prog *Program) {
	prog = &Program{}
	if len(data) > 0 {
		prog.Lines = []Line{{Pc: ORIGIN, Bytes: data}}
	}
	return
}

type Debug struct {
	*Line
	Index int
}

// Debug returns the line that contains the address pc.
func (prog *Program) Debug(pc uint16) (dbg Debug) {
	for n, line := range prog.Lines {
		if int(pc) >= int(line.Pc) && int(pc) < int(line.Pc)+len(line.Bytes) {
			dbg = Debug{
				Line:  &prog.Lines[n],
				Index: int(pc - line.Pc),
			}
			break
		}
	}

	return
}

// Binary returns the program image, to be loaded at ORIGIN.
func (prog *Program) Binary() (bins []uint8) {
	for _, line := range prog.Lines {
		bins = append(bins, line.Bytes...)
	}

	return
}
