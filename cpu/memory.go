package cpu

const (
	MEMORY_SIZE = 0x10000 // Size of the address space.
)

// Memory is the flat 64KiB address space. All addresses wrap modulo
// MEMORY_SIZE.
type Memory [MEMORY_SIZE]uint8

// Read a byte.
func (mem *Memory) Read(addr uint16) uint8 {
	return mem[addr]
}

// Write a byte.
func (mem *Memory) Write(addr uint16, data uint8) {
	mem[addr] = data
}

// ReadWord reads a little endian word. The high byte address wraps from
// 0xffff to 0x0000.
func (mem *Memory) ReadWord(addr uint16) uint16 {
	lo := mem.Read(addr)
	hi := mem.Read(addr + 1)

	return (uint16(hi) << 8) | uint16(lo)
}

// WriteWord writes a little endian word, low byte first.
func (mem *Memory) WriteWord(addr uint16, data uint16) {
	mem.Write(addr, uint8(data&0xff))
	mem.Write(addr+1, uint8(data>>8))
}

// Copy data into memory starting at addr, wrapping at the top of memory.
func (mem *Memory) Copy(addr uint16, data []uint8) {
	for n, value := range data {
		mem.Write(addr+uint16(n), value)
	}
}

// Reset clears all of memory.
func (mem *Memory) Reset() {
	clear(mem[:])
}
