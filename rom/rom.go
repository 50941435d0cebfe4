// Package rom provides raw program images for the 6502 emulator.
// An image is the byte stream loaded at the program origin.
package rom

import (
	"fmt"
	"io"
	"io/fs"
	"iter"
	"maps"

	"github.com/ezrec/mos6502/cpu"
)

const (
	ROM_ORIGIN = cpu.ORIGIN        // Load address of an image.
	ROM_SIZE   = cpu.PROGRAM_LIMIT // Largest image, origin to top of memory.
)

var _rom_defines = map[string]string{
	"ROM_ORIGIN": fmt.Sprintf("0x%04x", ROM_ORIGIN),
	"ROM_SIZE":   fmt.Sprintf("0x%04x", ROM_SIZE),
}

// Rom is a program image.
type Rom struct {
	Data []uint8
}

var _ io.WriterTo = (*Rom)(nil)

// Defines returns the ROM equates.
func Defines() iter.Seq2[string, string] {
	return maps.All(_rom_defines)
}

// Read reads an image from a stream.
func Read(r io.Reader) (rom *Rom, err error) {
	data, err := io.ReadAll(io.LimitReader(r, int64(ROM_SIZE)+1))
	if err != nil {
		return
	}

	if len(data) == 0 {
		err = ErrRomEmpty
		return
	}

	if len(data) > ROM_SIZE {
		err = ErrRomSize
		return
	}

	rom = &Rom{Data: data}
	return
}

// Open reads an image from a file in a file system.
func Open(fsys fs.FS, name string) (rom *Rom, err error) {
	inf, err := fsys.Open(name)
	if err != nil {
		return
	}
	defer inf.Close()

	rom, err = Read(inf)
	if err != nil {
		err = fmt.Errorf("%v: %w", name, err)
		return
	}

	return
}

// WriteTo writes the image to a stream.
func (rom *Rom) WriteTo(w io.Writer) (n int64, err error) {
	count, err := w.Write(rom.Data)
	n = int64(count)
	return
}

// Program returns the image as a program listing.
func (rom *Rom) Program() *cpu.Program {
	return cpu.ProgramFromBinary(rom.Data)
}
