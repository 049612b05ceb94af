package insts

import "fmt"

const mnemonicUnknown = "unknown"

// Mnemonic returns the assembler name of the instruction, e.g. "addi".
// Encodings whose funct fields name no RV32I instruction return "unknown".
func (i *Instruction) Mnemonic() string {
	switch f := i.fields.(type) {
	case RType:
		return opMnemonic(f)
	case IType:
		return immMnemonic(i.opcode, f)
	case SType:
		return lookup(storeMnemonics, f.Funct3)
	case BType:
		return lookup(branchMnemonics, f.Funct3)
	case UType:
		if i.opcode == OpcodeLUI {
			return "lui"
		}
		return "auipc"
	case JType:
		return "jal"
	default:
		return mnemonicUnknown
	}
}

// String renders the instruction in assembler syntax, e.g. "addi x5, x0, 1".
func (i *Instruction) String() string {
	m := i.Mnemonic()
	if m == mnemonicUnknown {
		return fmt.Sprintf("%s 0x%08x", m, uint32(i.word))
	}

	switch f := i.fields.(type) {
	case RType:
		return fmt.Sprintf("%s x%d, x%d, x%d", m, f.Rd, f.Rs1, f.Rs2)
	case IType:
		switch i.opcode {
		case OpcodeLoad, OpcodeJALR:
			return fmt.Sprintf("%s x%d, %d(x%d)", m, f.Rd, int32(f.Imm), f.Rs1)
		case OpcodeSystem:
			return m
		}
		if f.Funct3 == OpImmSLLI || f.Funct3 == OpImmSRI {
			return fmt.Sprintf("%s x%d, x%d, %d", m, f.Rd, f.Rs1, f.Imm&0x1F)
		}
		return fmt.Sprintf("%s x%d, x%d, %d", m, f.Rd, f.Rs1, int32(f.Imm))
	case SType:
		return fmt.Sprintf("%s x%d, %d(x%d)", m, f.Rs2, int32(f.Imm), f.Rs1)
	case BType:
		return fmt.Sprintf("%s x%d, x%d, %d", m, f.Rs1, f.Rs2, int32(f.Imm))
	case UType:
		return fmt.Sprintf("%s x%d, 0x%x", m, f.Rd, f.Imm>>12)
	case JType:
		return fmt.Sprintf("%s x%d, %d", m, f.Rd, int32(f.Imm))
	}

	return m
}

func lookup(table map[Funct3]string, f3 Funct3) string {
	if m, ok := table[f3]; ok {
		return m
	}
	return mnemonicUnknown
}

func opMnemonic(f RType) string {
	switch f.Funct7 {
	case Funct7Add:
		switch f.Funct3 {
		case OpADDSUB:
			return "add"
		case OpSR:
			return "srl"
		}
		return lookup(opMnemonics, f.Funct3)
	case Funct7Sub:
		switch f.Funct3 {
		case OpADDSUB:
			return "sub"
		case OpSR:
			return "sra"
		}
	}
	return mnemonicUnknown
}

func immMnemonic(op Opcode, f IType) string {
	switch op {
	case OpcodeLoad:
		return lookup(loadMnemonics, f.Funct3)
	case OpcodeJALR:
		if f.Funct3 == 0 {
			return "jalr"
		}
	case OpcodeSystem:
		if f.Funct3 != SystemCall || f.Rs1 != 0 || f.Rd != 0 {
			return mnemonicUnknown
		}
		switch f.Imm {
		case 0:
			return "ecall"
		case 1:
			return "ebreak"
		}
	case OpcodeOpImm:
		return opImmMnemonic(f)
	}
	return mnemonicUnknown
}

// opImmMnemonic resolves OP-IMM, where the shift forms carry a funct7 in
// imm[11:5].
func opImmMnemonic(f IType) string {
	upper := Funct7((f.Imm >> 5) & 0x7F)

	switch f.Funct3 {
	case OpImmSLLI:
		if upper == Funct7Logical {
			return "slli"
		}
		return mnemonicUnknown
	case OpImmSRI:
		switch upper {
		case Funct7Logical:
			return "srli"
		case Funct7Arithmetic:
			return "srai"
		}
		return mnemonicUnknown
	}

	return lookup(opImmMnemonics, f.Funct3)
}
