// Package emu provides the memory stage of the RV32I emulator.
package emu

import (
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/sarchlab/rv32core/fault"
)

// DefaultBankSize is the size of the memory bank in bytes.
const DefaultBankSize = 51200

// MemFlags selects what a memory access does.
type MemFlags uint8

// Memory access flags. MemRead and MemWrite must not be combined.
const (
	MemNoFlags MemFlags = 0
	MemWrite   MemFlags = 1 << 0
	MemRead    MemFlags = 1 << 1
	MemToReg   MemFlags = 1 << 2 // Return the loaded value instead of the address
)

// Has reports whether all bits of flag are set in f.
func (f MemFlags) Has(flag MemFlags) bool {
	return f&flag == flag
}

// String renders the set flags, e.g. "read|memtoreg".
func (f MemFlags) String() string {
	if f == MemNoFlags {
		return "none"
	}

	var parts []string
	if f.Has(MemWrite) {
		parts = append(parts, "write")
	}
	if f.Has(MemRead) {
		parts = append(parts, "read")
	}
	if f.Has(MemToReg) {
		parts = append(parts, "memtoreg")
	}
	return strings.Join(parts, "|")
}

// DataWidth is the number of bytes moved by one access.
type DataWidth uint8

// Access widths.
const (
	WidthByte     DataWidth = 1
	WidthHalfword DataWidth = 2
	WidthWord     DataWidth = 4
)

// Valid reports whether w is one of the three RV32I access widths.
func (w DataWidth) Valid() bool {
	return w == WidthByte || w == WidthHalfword || w == WidthWord
}

// Bits returns the width in bits.
func (w DataWidth) Bits() uint {
	return uint(w) * 8
}

// Memory is a fixed-size, byte-addressable, little-endian memory bank.
// All access goes through Access, which is safe for concurrent use.
type Memory struct {
	mu   sync.Mutex
	bank []byte
	log  logrus.FieldLogger
}

// MemoryOption is a functional option for configuring Memory.
type MemoryOption func(*Memory)

// WithBankSize sets the bank size in bytes. Non-positive sizes are ignored.
func WithBankSize(size int) MemoryOption {
	return func(m *Memory) {
		if size > 0 {
			m.bank = make([]byte, size)
		}
	}
}

// WithMemoryLogger sets the logger used to trace accesses.
func WithMemoryLogger(log logrus.FieldLogger) MemoryOption {
	return func(m *Memory) {
		m.log = log
	}
}

// NewMemory creates a zeroed memory bank of DefaultBankSize bytes.
func NewMemory(opts ...MemoryOption) *Memory {
	m := &Memory{log: logrus.StandardLogger()}
	for _, opt := range opts {
		opt(m)
	}
	if m.bank == nil {
		m.bank = make([]byte, DefaultBankSize)
	}
	return m
}

// Size returns the bank size in bytes.
func (m *Memory) Size() int {
	return len(m.bank)
}

// Access performs one memory operation.
//
// With MemWrite, the low width bytes of data are stored at addr, least
// significant byte first, and addr is returned. With MemRead, width bytes
// are loaded from addr; the value is returned if MemToReg is also set,
// otherwise addr is returned. With neither, addr is returned untouched.
//
// Requesting both MemRead and MemWrite, or a width other than 1, 2 or 4,
// is an IllegalValue fault. An access that does not fit entirely in the
// bank is an OutOfBounds fault and leaves the bank unchanged.
func (m *Memory) Access(addr, data uint32, flags MemFlags, width DataWidth) (uint32, error) {
	if flags.Has(MemRead | MemWrite) {
		return 0, fault.New(fault.IllegalValue, "memory access",
			"read and write requested together")
	}
	if !width.Valid() {
		return 0, fault.New(fault.IllegalValue, "memory access",
			"width %d", width)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.checkBounds(addr, int(width)); err != nil {
		return 0, err
	}

	m.log.WithFields(logrus.Fields{
		"addr":  addr,
		"width": uint8(width),
		"flags": flags.String(),
	}).Trace("memory access")

	switch {
	case flags.Has(MemRead):
		value := m.read(addr, width)
		if flags.Has(MemToReg) {
			return value, nil
		}
		return addr, nil
	case flags.Has(MemWrite):
		m.write(addr, data, width)
		return addr, nil
	default:
		return addr, nil
	}
}

// Load copies data into the bank starting at addr. It fails with
// OutOfBounds, copying nothing, if data does not fit.
func (m *Memory) Load(addr uint32, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.checkBounds(addr, len(data)); err != nil {
		return err
	}

	copy(m.bank[addr:], data)
	return nil
}

// Reset zeroes the whole bank.
func (m *Memory) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	clear(m.bank)
}

func (m *Memory) checkBounds(addr uint32, n int) error {
	if uint64(addr)+uint64(n) > uint64(len(m.bank)) {
		return fault.New(fault.OutOfBounds, "memory access",
			"%d bytes at 0x%x exceed bank of %d bytes", n, addr, len(m.bank))
	}
	return nil
}

// read assembles the value starting from the most significant byte, which
// sits at the highest address.
func (m *Memory) read(addr uint32, width DataWidth) uint32 {
	var value uint32
	for i := int(width) - 1; i >= 0; i-- {
		value <<= 8
		value |= uint32(m.bank[addr+uint32(i)])
	}
	return value
}

func (m *Memory) write(addr, data uint32, width DataWidth) {
	for i := uint32(0); i < uint32(width); i++ {
		m.bank[addr+i] = byte(data)
		data >>= 8
	}
}
