// Package insts provides RV32I instruction definitions and decoding.
//
// This package turns raw 32-bit RISC-V machine words into structured
// instruction values. It covers the ten base opcodes of RV32I and the six
// encoding formats they use:
//   - R-type: OP (register-register arithmetic)
//   - I-type: LOAD, OP-IMM, JALR, SYSTEM
//   - S-type: STORE
//   - B-type: BRANCH
//   - U-type: LUI, AUIPC
//   - J-type: JAL
//
// Usage:
//
//	decoder := insts.NewDecoder()
//	word := insts.WordFromBytes([4]byte{0x93, 0x02, 0x10, 0x00})
//	inst, err := decoder.Decode(word) // addi x5, x0, 1
//	if err != nil {
//		return err
//	}
//	if i, ok := inst.I(); ok {
//		fmt.Printf("rd=%d rs1=%d imm=%d\n", i.Rd, i.Rs1, int32(i.Imm))
//	}
package insts
