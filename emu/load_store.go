package emu

import (
	"github.com/sarchlab/rv32core/fault"
	"github.com/sarchlab/rv32core/insts"
)

// LoadStoreUnit turns decoded LOAD and STORE instructions into memory
// accesses. Address computation from registers is the caller's job; the
// unit only picks the width, flags and extension.
type LoadStoreUnit struct {
	memory *Memory
}

// NewLoadStoreUnit creates a new LoadStoreUnit connected to the given memory.
func NewLoadStoreUnit(memory *Memory) *LoadStoreUnit {
	return &LoadStoreUnit{memory: memory}
}

// LoadWidth returns the access width of a LOAD funct3 and whether the
// loaded value is sign-extended.
func LoadWidth(f3 insts.Funct3) (width DataWidth, signed bool, err error) {
	switch f3 {
	case insts.LoadLB:
		return WidthByte, true, nil
	case insts.LoadLH:
		return WidthHalfword, true, nil
	case insts.LoadLW:
		return WidthWord, false, nil
	case insts.LoadLBU:
		return WidthByte, false, nil
	case insts.LoadLHU:
		return WidthHalfword, false, nil
	default:
		return 0, false, fault.New(fault.IllegalValue, "load", "funct3 %d", f3)
	}
}

// StoreWidth returns the access width of a STORE funct3.
func StoreWidth(f3 insts.Funct3) (DataWidth, error) {
	switch f3 {
	case insts.StoreSB:
		return WidthByte, nil
	case insts.StoreSH:
		return WidthHalfword, nil
	case insts.StoreSW:
		return WidthWord, nil
	default:
		return 0, fault.New(fault.IllegalValue, "store", "funct3 %d", f3)
	}
}

// EffectiveAddress adds the instruction's immediate to base, wrapping at 32
// bits. It is defined for LOAD, JALR and STORE.
func EffectiveAddress(base uint32, inst *insts.Instruction) (uint32, error) {
	if inst == nil {
		return 0, fault.New(fault.IllegalValue, "effective address", "nil instruction")
	}

	switch inst.Opcode() {
	case insts.OpcodeLoad, insts.OpcodeJALR:
		i, _ := inst.I()
		return base + i.Imm, nil
	case insts.OpcodeStore:
		s, _ := inst.S()
		return base + s.Imm, nil
	default:
		return 0, fault.New(fault.IllegalValue, "effective address",
			"%s has no memory operand", inst.Opcode())
	}
}

// Load performs a LOAD at addr: lb/lh sign-extend, lbu/lhu zero-extend.
func (lsu *LoadStoreUnit) Load(inst *insts.Instruction, addr uint32) (uint32, error) {
	if inst == nil || inst.Opcode() != insts.OpcodeLoad {
		return 0, fault.New(fault.IllegalValue, "load", "not a LOAD instruction")
	}

	i, _ := inst.I()
	width, signed, err := LoadWidth(i.Funct3)
	if err != nil {
		return 0, err
	}

	value, err := lsu.memory.Access(addr, 0, MemRead|MemToReg, width)
	if err != nil {
		return 0, err
	}

	if signed {
		value = insts.SignExtend(value, width.Bits())
	}
	return value, nil
}

// Store performs a STORE of the low bytes of value at addr.
func (lsu *LoadStoreUnit) Store(inst *insts.Instruction, addr, value uint32) error {
	if inst == nil || inst.Opcode() != insts.OpcodeStore {
		return fault.New(fault.IllegalValue, "store", "not a STORE instruction")
	}

	s, _ := inst.S()
	width, err := StoreWidth(s.Funct3)
	if err != nil {
		return err
	}

	_, err = lsu.memory.Access(addr, value, MemWrite, width)
	return err
}
