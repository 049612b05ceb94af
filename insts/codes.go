package insts

// Funct3 is the 3-bit secondary selector, bits [14:12]. Its meaning depends
// on the opcode.
type Funct3 uint8

// Funct7 is the 7-bit selector of R-type instructions, bits [31:25].
type Funct7 uint8

// funct3 for LOAD.
const (
	LoadLB  Funct3 = 0
	LoadLH  Funct3 = 1
	LoadLW  Funct3 = 2
	LoadLBU Funct3 = 4
	LoadLHU Funct3 = 5
)

// funct3 for OP-IMM.
const (
	OpImmADDI  Funct3 = 0
	OpImmSLLI  Funct3 = 1
	OpImmSLTI  Funct3 = 2
	OpImmSLTIU Funct3 = 3
	OpImmXORI  Funct3 = 4
	OpImmSRI   Funct3 = 5 // SRLI or SRAI, selected by imm[11:5]
	OpImmORI   Funct3 = 6
	OpImmANDI  Funct3 = 7
)

// funct3 for STORE.
const (
	StoreSB Funct3 = 0
	StoreSH Funct3 = 1
	StoreSW Funct3 = 2
)

// funct3 for OP.
const (
	OpADDSUB Funct3 = 0 // ADD or SUB, selected by funct7
	OpSLL    Funct3 = 1
	OpSLT    Funct3 = 2
	OpSLTU   Funct3 = 3
	OpXOR    Funct3 = 4
	OpSR     Funct3 = 5 // SRL or SRA, selected by funct7
	OpOR     Funct3 = 6
	OpAND    Funct3 = 7
)

// funct3 for BRANCH.
const (
	BranchBEQ  Funct3 = 0
	BranchBNE  Funct3 = 1
	BranchBLT  Funct3 = 4
	BranchBGE  Funct3 = 5
	BranchBLTU Funct3 = 6
	BranchBGEU Funct3 = 7
)

// funct3 for SYSTEM.
const (
	SystemCall Funct3 = 0 // ECALL or EBREAK, selected by imm
)

// funct7 values for OP and for the shift-immediate forms of OP-IMM.
const (
	Funct7Logical    Funct7 = 0x00 // SRL, SRLI
	Funct7Arithmetic Funct7 = 0x20 // SRA, SRAI
	Funct7Add        Funct7 = 0x00
	Funct7Sub        Funct7 = 0x20
)

// SyscallCode is the service number passed in a7 to ECALL.
type SyscallCode uint32

// Environment call service numbers.
const (
	SyscallPrintInt     SyscallCode = 1
	SyscallPrintStr     SyscallCode = 4
	SyscallExit         SyscallCode = 10
	SyscallPrintChar    SyscallCode = 11
	SyscallPrintHex     SyscallCode = 34
	SyscallPrintBin     SyscallCode = 35
	SyscallPrintUint    SyscallCode = 36
	SyscallRandInt      SyscallCode = 41
	SyscallRandIntBound SyscallCode = 42
	SyscallExitCode     SyscallCode = 93
)

var syscallNames = map[SyscallCode]string{
	SyscallPrintInt:     "print_int",
	SyscallPrintStr:     "print_str",
	SyscallExit:         "exit",
	SyscallPrintChar:    "print_char",
	SyscallPrintHex:     "print_hex",
	SyscallPrintBin:     "print_bin",
	SyscallPrintUint:    "print_uint",
	SyscallRandInt:      "rand_int",
	SyscallRandIntBound: "rand_int_bound",
	SyscallExitCode:     "exit_code",
}

// Known reports whether c is a recognized service number.
func (c SyscallCode) Known() bool {
	_, ok := syscallNames[c]
	return ok
}

// String returns the service name, or "unknown".
func (c SyscallCode) String() string {
	if name, ok := syscallNames[c]; ok {
		return name
	}
	return "unknown"
}

var (
	loadMnemonics = map[Funct3]string{
		LoadLB: "lb", LoadLH: "lh", LoadLW: "lw", LoadLBU: "lbu", LoadLHU: "lhu",
	}
	opImmMnemonics = map[Funct3]string{
		OpImmADDI: "addi", OpImmSLLI: "slli", OpImmSLTI: "slti",
		OpImmSLTIU: "sltiu", OpImmXORI: "xori", OpImmORI: "ori", OpImmANDI: "andi",
	}
	opMnemonics = map[Funct3]string{
		OpSLL: "sll", OpSLT: "slt", OpSLTU: "sltu", OpXOR: "xor", OpOR: "or", OpAND: "and",
	}
	storeMnemonics = map[Funct3]string{
		StoreSB: "sb", StoreSH: "sh", StoreSW: "sw",
	}
	branchMnemonics = map[Funct3]string{
		BranchBEQ: "beq", BranchBNE: "bne", BranchBLT: "blt",
		BranchBGE: "bge", BranchBLTU: "bltu", BranchBGEU: "bgeu",
	}
)
