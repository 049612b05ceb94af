package insts

import "github.com/sarchlab/rv32core/fault"

// Word is a raw 32-bit RV32I instruction as fetched from memory.
type Word uint32

// WordFromBytes assembles four bytes into a Word in little-endian order.
// b[0] is the least significant byte. No validation is done here.
func WordFromBytes(b [4]byte) Word {
	var w Word
	for i := len(b) - 1; i >= 0; i-- {
		w <<= 8
		w |= Word(b[i])
	}
	return w
}

// WordFromSlice assembles the first four bytes of b. Extra bytes are ignored.
func WordFromSlice(b []byte) (Word, error) {
	if len(b) < 4 {
		return 0, fault.New(fault.OutOfBounds, "word from slice",
			"need 4 bytes, got %d", len(b))
	}
	return WordFromBytes([4]byte(b[:4])), nil
}

// OpcodeBits returns bits [6:0] without checking them against the legal set.
func (w Word) OpcodeBits() uint8 {
	return uint8(w & 0x7F)
}

// Rd returns the destination register, bits [11:7].
func (w Word) Rd() uint8 {
	return uint8((w >> 7) & 0x1F)
}

// Funct3 returns bits [14:12].
func (w Word) Funct3() Funct3 {
	return Funct3((w >> 12) & 0x7)
}

// Rs1 returns the first source register, bits [19:15].
func (w Word) Rs1() uint8 {
	return uint8((w >> 15) & 0x1F)
}

// Rs2 returns the second source register, bits [24:20].
func (w Word) Rs2() uint8 {
	return uint8((w >> 20) & 0x1F)
}

// Funct7 returns bits [31:25].
func (w Word) Funct7() Funct7 {
	return Funct7((w >> 25) & 0x7F)
}

// ImmI returns the sign-extended I-type immediate.
// Format: imm[11:0] | rs1 | funct3 | rd | opcode
func (w Word) ImmI() uint32 {
	imm := uint32(w>>20) & 0xFFF // bits [31:20]
	return SignExtend(imm, 12)
}

// ImmS returns the sign-extended S-type immediate.
// Format: imm[11:5] | rs2 | rs1 | funct3 | imm[4:0] | opcode
func (w Word) ImmS() uint32 {
	hi := (uint32(w) >> 25) & 0x7F // bits [31:25] -> imm[11:5]
	lo := (uint32(w) >> 7) & 0x1F  // bits [11:7]  -> imm[4:0]
	return SignExtend(hi<<5|lo, 12)
}

// ImmB returns the sign-extended B-type immediate. Bit 0 is always zero.
// Format: imm[12|10:5] | rs2 | rs1 | funct3 | imm[4:1|11] | opcode
func (w Word) ImmB() uint32 {
	v := uint32(w)
	imm := (v&0x80000000)>>19 | // bit 31     -> imm[12]
		(v&0x7E000000)>>20 | // bits [30:25] -> imm[10:5]
		(v&0x00000F00)>>7 | // bits [11:8]  -> imm[4:1]
		(v&0x00000080)<<4 // bit 7        -> imm[11]
	return SignExtend(imm, 13)
}

// ImmU returns the U-type immediate with its low 12 bits cleared.
// Format: imm[31:12] | rd | opcode
func (w Word) ImmU() uint32 {
	return uint32(w) & 0xFFFFF000
}

// ImmJ returns the sign-extended J-type immediate. Bit 0 is always zero.
// Format: imm[20|10:1|11|19:12] | rd | opcode
func (w Word) ImmJ() uint32 {
	v := uint32(w)
	imm := (v&0x80000000)>>11 | // bit 31       -> imm[20]
		(v&0x7FE00000)>>20 | // bits [30:21] -> imm[10:1]
		(v&0x00100000)>>9 | // bit 20       -> imm[11]
		(v & 0x000FF000) // bits [19:12] -> imm[19:12]
	return SignExtend(imm, 21)
}

// SignExtend treats the low bits of value as a two's complement number and
// widens it to 32 bits: if bit (bits-1) is set, bits [31:bits] are set.
//
// A width of 32 (or any width outside 1..31) returns value unchanged.
func SignExtend(value uint32, bits uint) uint32 {
	if bits == 0 || bits >= 32 {
		return value
	}

	sign := uint32(1) << (bits - 1)
	if value&sign == 0 {
		return value
	}

	return value | ^(sign<<1 - 1)
}
