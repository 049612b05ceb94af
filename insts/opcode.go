package insts

import (
	"fmt"

	"github.com/sarchlab/rv32core/fault"
)

// Opcode represents an RV32I base opcode, bits [6:0] of an instruction.
type Opcode uint8

// RV32I base opcodes.
const (
	OpcodeLoad   Opcode = 0x03
	OpcodeOpImm  Opcode = 0x13
	OpcodeAUIPC  Opcode = 0x17
	OpcodeStore  Opcode = 0x23
	OpcodeOp     Opcode = 0x33
	OpcodeLUI    Opcode = 0x37
	OpcodeBranch Opcode = 0x63
	OpcodeJALR   Opcode = 0x67
	OpcodeJAL    Opcode = 0x6F
	OpcodeSystem Opcode = 0x73
)

// Format represents an instruction encoding format.
type Format uint8

// Instruction formats.
const (
	FormatUnknown Format = iota
	FormatR              // Register-register
	FormatI              // Short immediate and loads
	FormatS              // Stores
	FormatB              // Conditional branches
	FormatU              // Upper immediate
	FormatJ              // Unconditional jump
)

var formatNames = [...]string{
	FormatUnknown: "unknown",
	FormatR:       "R",
	FormatI:       "I",
	FormatS:       "S",
	FormatB:       "B",
	FormatU:       "U",
	FormatJ:       "J",
}

// String returns the format letter.
func (f Format) String() string {
	if int(f) < len(formatNames) {
		return formatNames[f]
	}
	return formatNames[FormatUnknown]
}

type opcodeInfo struct {
	name   string
	format Format
}

var opcodeTable = map[Opcode]opcodeInfo{
	OpcodeLoad:   {"LOAD", FormatI},
	OpcodeOpImm:  {"OP-IMM", FormatI},
	OpcodeAUIPC:  {"AUIPC", FormatU},
	OpcodeStore:  {"STORE", FormatS},
	OpcodeOp:     {"OP", FormatR},
	OpcodeLUI:    {"LUI", FormatU},
	OpcodeBranch: {"BRANCH", FormatB},
	OpcodeJALR:   {"JALR", FormatI},
	OpcodeJAL:    {"JAL", FormatJ},
	OpcodeSystem: {"SYSTEM", FormatI},
}

// Valid reports whether op is one of the ten RV32I base opcodes.
func (op Opcode) Valid() bool {
	_, ok := opcodeTable[op]
	return ok
}

// Format returns the encoding format used by op, or FormatUnknown.
func (op Opcode) Format() Format {
	return opcodeTable[op].format
}

// String returns the opcode family name.
func (op Opcode) String() string {
	if info, ok := opcodeTable[op]; ok {
		return info.name
	}
	return fmt.Sprintf("Opcode(0x%02x)", uint8(op))
}

// Classify extracts the opcode of w and checks it against the legal set.
// An unrecognized opcode yields an IllegalValue fault.
func Classify(w Word) (Opcode, error) {
	op := Opcode(w.OpcodeBits())
	if !op.Valid() {
		return 0, fault.New(fault.IllegalValue, "classify",
			"opcode 0x%02x in word 0x%08x", uint8(op), uint32(w))
	}
	return op, nil
}
