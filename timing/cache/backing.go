package cache

import (
	"github.com/sarchlab/rv32core/emu"
)

// MemoryBacking wraps emu.Memory as a BackingStore. Every byte goes through
// Memory.Access, so line fills past the end of the bank fail with an
// OutOfBounds fault.
type MemoryBacking struct {
	memory *emu.Memory
}

// NewMemoryBacking creates a new MemoryBacking adapter.
func NewMemoryBacking(memory *emu.Memory) *MemoryBacking {
	return &MemoryBacking{memory: memory}
}

// Read fetches size bytes from the backing memory.
func (m *MemoryBacking) Read(addr uint32, size int) ([]byte, error) {
	data := make([]byte, size)
	for i := range data {
		b, err := m.memory.Access(addr+uint32(i), 0, emu.MemRead|emu.MemToReg, emu.WidthByte)
		if err != nil {
			return nil, err
		}
		data[i] = byte(b)
	}
	return data, nil
}

// Write stores data to the backing memory.
func (m *MemoryBacking) Write(addr uint32, data []byte) error {
	for i, b := range data {
		if _, err := m.memory.Access(addr+uint32(i), uint32(b), emu.MemWrite, emu.WidthByte); err != nil {
			return err
		}
	}
	return nil
}
