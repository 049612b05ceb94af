package insts

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// Fields is the format-specific part of a decoded instruction. It is
// implemented only by RType, IType, SType, BType, UType and JType.
type Fields interface {
	Format() Format
}

// RType holds the fields of a register-register instruction.
type RType struct {
	Funct7 Funct7
	Rs2    uint8
	Rs1    uint8
	Rd     uint8
	Funct3 Funct3
}

// IType holds the fields of an immediate, load, JALR or SYSTEM instruction.
type IType struct {
	Imm    uint32 // Sign-extended 12-bit immediate
	Rs1    uint8
	Rd     uint8
	Funct3 Funct3
}

// SType holds the fields of a store instruction.
type SType struct {
	Imm    uint32 // Sign-extended 12-bit offset
	Rs2    uint8
	Rs1    uint8
	Funct3 Funct3
}

// BType holds the fields of a conditional branch.
type BType struct {
	Imm    uint32 // Sign-extended 13-bit byte offset, always even
	Rs2    uint8
	Rs1    uint8
	Funct3 Funct3
}

// UType holds the fields of LUI and AUIPC.
type UType struct {
	Imm uint32 // Upper 20 bits in place, low 12 bits zero
	Rd  uint8
}

// JType holds the fields of JAL.
type JType struct {
	Imm uint32 // Sign-extended 21-bit byte offset, always even
	Rd  uint8
}

// Format implements Fields.
func (RType) Format() Format { return FormatR }

// Format implements Fields.
func (IType) Format() Format { return FormatI }

// Format implements Fields.
func (SType) Format() Format { return FormatS }

// Format implements Fields.
func (BType) Format() Format { return FormatB }

// Format implements Fields.
func (UType) Format() Format { return FormatU }

// Format implements Fields.
func (JType) Format() Format { return FormatJ }

// Instruction represents a decoded RV32I instruction. Exactly one variant
// of Fields is held, and it always matches Opcode().Format().
type Instruction struct {
	word   Word
	opcode Opcode
	fields Fields
}

// Word returns the raw encoding the instruction was decoded from.
func (i *Instruction) Word() Word { return i.word }

// Opcode returns the base opcode.
func (i *Instruction) Opcode() Opcode { return i.opcode }

// Fields returns the active format-specific variant, or nil for the zero
// Instruction.
func (i *Instruction) Fields() Fields { return i.fields }

// Format returns the encoding format of the active variant.
func (i *Instruction) Format() Format {
	if i.fields == nil {
		return FormatUnknown
	}
	return i.fields.Format()
}

// R returns the R-type fields if the instruction is R-type.
func (i *Instruction) R() (RType, bool) {
	f, ok := i.fields.(RType)
	return f, ok
}

// I returns the I-type fields if the instruction is I-type.
func (i *Instruction) I() (IType, bool) {
	f, ok := i.fields.(IType)
	return f, ok
}

// S returns the S-type fields if the instruction is S-type.
func (i *Instruction) S() (SType, bool) {
	f, ok := i.fields.(SType)
	return f, ok
}

// B returns the B-type fields if the instruction is B-type.
func (i *Instruction) B() (BType, bool) {
	f, ok := i.fields.(BType)
	return f, ok
}

// U returns the U-type fields if the instruction is U-type.
func (i *Instruction) U() (UType, bool) {
	f, ok := i.fields.(UType)
	return f, ok
}

// J returns the J-type fields if the instruction is J-type.
func (i *Instruction) J() (JType, bool) {
	f, ok := i.fields.(JType)
	return f, ok
}

// Decoder decodes RV32I machine code into instructions.
// It holds no per-instruction state and is safe for concurrent use.
type Decoder struct {
	log logrus.FieldLogger
}

// DecoderOption is a functional option for configuring the Decoder.
type DecoderOption func(*Decoder)

// WithLogger sets the logger used to trace rejected words.
func WithLogger(log logrus.FieldLogger) DecoderOption {
	return func(d *Decoder) {
		d.log = log
	}
}

// NewDecoder creates a new RV32I instruction decoder.
func NewDecoder(opts ...DecoderOption) *Decoder {
	d := &Decoder{log: logrus.StandardLogger()}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Decode decodes a 32-bit RV32I instruction word. A word whose opcode is
// not one of the ten base opcodes yields an IllegalValue fault.
func (d *Decoder) Decode(word Word) (*Instruction, error) {
	op, err := Classify(word)
	if err != nil {
		d.log.WithFields(logrus.Fields{
			"word":   fmt.Sprintf("0x%08x", uint32(word)),
			"opcode": fmt.Sprintf("0x%02x", word.OpcodeBits()),
		}).Debug("rejected instruction word")
		return nil, err
	}

	inst := &Instruction{word: word, opcode: op}

	switch op.Format() {
	case FormatR:
		inst.fields = d.decodeR(word)
	case FormatI:
		inst.fields = d.decodeI(word)
	case FormatS:
		inst.fields = d.decodeS(word)
	case FormatB:
		inst.fields = d.decodeB(word)
	case FormatU:
		inst.fields = d.decodeU(word)
	case FormatJ:
		inst.fields = d.decodeJ(word)
	}

	return inst, nil
}

// DecodeBytes assembles four little-endian bytes and decodes the result.
func (d *Decoder) DecodeBytes(b [4]byte) (*Instruction, error) {
	return d.Decode(WordFromBytes(b))
}

// decodeR decodes register-register instructions.
// Format: funct7 | rs2 | rs1 | funct3 | rd | opcode
func (d *Decoder) decodeR(w Word) RType {
	return RType{
		Funct7: w.Funct7(),
		Rs2:    w.Rs2(),
		Rs1:    w.Rs1(),
		Rd:     w.Rd(),
		Funct3: w.Funct3(),
	}
}

// decodeI decodes immediate instructions.
// Format: imm[11:0] | rs1 | funct3 | rd | opcode
func (d *Decoder) decodeI(w Word) IType {
	return IType{
		Imm:    w.ImmI(),
		Rs1:    w.Rs1(),
		Rd:     w.Rd(),
		Funct3: w.Funct3(),
	}
}

// decodeS decodes stores.
// Format: imm[11:5] | rs2 | rs1 | funct3 | imm[4:0] | opcode
func (d *Decoder) decodeS(w Word) SType {
	return SType{
		Imm:    w.ImmS(),
		Rs2:    w.Rs2(),
		Rs1:    w.Rs1(),
		Funct3: w.Funct3(),
	}
}

// decodeB decodes conditional branches.
// Format: imm[12|10:5] | rs2 | rs1 | funct3 | imm[4:1|11] | opcode
func (d *Decoder) decodeB(w Word) BType {
	return BType{
		Imm:    w.ImmB(),
		Rs2:    w.Rs2(),
		Rs1:    w.Rs1(),
		Funct3: w.Funct3(),
	}
}

// decodeU decodes LUI and AUIPC.
// Format: imm[31:12] | rd | opcode
func (d *Decoder) decodeU(w Word) UType {
	return UType{
		Imm: w.ImmU(),
		Rd:  w.Rd(),
	}
}

// decodeJ decodes JAL.
// Format: imm[20|10:1|11|19:12] | rd | opcode
func (d *Decoder) decodeJ(w Word) JType {
	return JType{
		Imm: w.ImmJ(),
		Rd:  w.Rd(),
	}
}
