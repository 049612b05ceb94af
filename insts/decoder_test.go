package insts_test

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/rv32core/fault"
	"github.com/sarchlab/rv32core/insts"
)

var _ = Describe("Decoder", func() {
	var decoder *insts.Decoder

	BeforeEach(func() {
		decoder = insts.NewDecoder()
	})

	Describe("Classify", func() {
		It("should accept exactly the ten base opcodes", func() {
			legal := 0
			for bits := uint32(0); bits < 0x80; bits++ {
				w := insts.Word(0xABCDE000 | bits)
				op, err := insts.Classify(w)
				if err != nil {
					Expect(errors.Is(err, fault.ErrIllegalValue)).To(BeTrue())
					continue
				}
				legal++
				Expect(op.Valid()).To(BeTrue())
				Expect(uint32(op)).To(Equal(bits))
			}
			Expect(legal).To(Equal(10))
		})

		It("should reject a corrupted word with IllegalValue", func() {
			_, err := insts.Classify(0x9f01514a)

			Expect(err).To(MatchError(fault.ErrIllegalValue))
			Expect(fault.KindOf(err)).To(Equal(fault.IllegalValue))
		})

		DescribeTable("opcode to format",
			func(op insts.Opcode, format insts.Format) {
				Expect(op.Format()).To(Equal(format))
			},
			Entry("LOAD", insts.OpcodeLoad, insts.FormatI),
			Entry("OP-IMM", insts.OpcodeOpImm, insts.FormatI),
			Entry("AUIPC", insts.OpcodeAUIPC, insts.FormatU),
			Entry("STORE", insts.OpcodeStore, insts.FormatS),
			Entry("OP", insts.OpcodeOp, insts.FormatR),
			Entry("LUI", insts.OpcodeLUI, insts.FormatU),
			Entry("BRANCH", insts.OpcodeBranch, insts.FormatB),
			Entry("JALR", insts.OpcodeJALR, insts.FormatI),
			Entry("JAL", insts.OpcodeJAL, insts.FormatJ),
			Entry("SYSTEM", insts.OpcodeSystem, insts.FormatI),
			Entry("illegal", insts.Opcode(0x0B), insts.FormatUnknown),
		)

		It("should name opcodes", func() {
			Expect(insts.OpcodeOpImm.String()).To(Equal("OP-IMM"))
			Expect(insts.Opcode(0x7F).String()).To(Equal("Opcode(0x7f)"))
			Expect(insts.FormatB.String()).To(Equal("B"))
		})
	})

	Describe("I-type", func() {
		// addi x5, x0, 1 -> bytes 93 02 10 00
		It("should decode addi x5, x0, 1 from bytes", func() {
			inst, err := decoder.DecodeBytes([4]byte{0x93, 0x02, 0x10, 0x00})
			Expect(err).NotTo(HaveOccurred())

			Expect(inst.Word()).To(Equal(insts.Word(0x00100293)))
			Expect(inst.Opcode()).To(Equal(insts.OpcodeOpImm))
			Expect(inst.Format()).To(Equal(insts.FormatI))

			i, ok := inst.I()
			Expect(ok).To(BeTrue())
			Expect(i.Rd).To(Equal(uint8(5)))
			Expect(i.Funct3).To(Equal(insts.OpImmADDI))
			Expect(i.Rs1).To(Equal(uint8(0)))
			Expect(i.Imm).To(Equal(uint32(1)))
		})

		// lw x5, -4(x2) -> 0xFFC12283
		It("should decode a load with a negative offset", func() {
			inst, err := decoder.Decode(0xFFC12283)
			Expect(err).NotTo(HaveOccurred())

			i, ok := inst.I()
			Expect(ok).To(BeTrue())
			Expect(inst.Opcode()).To(Equal(insts.OpcodeLoad))
			Expect(i.Funct3).To(Equal(insts.LoadLW))
			Expect(i.Rd).To(Equal(uint8(5)))
			Expect(i.Rs1).To(Equal(uint8(2)))
			Expect(int32(i.Imm)).To(Equal(int32(-4)))
		})

		It("should decode jalr and system as I-type", func() {
			inst, err := decoder.Decode(0x00008067) // jalr x0, 0(x1)
			Expect(err).NotTo(HaveOccurred())
			Expect(inst.Format()).To(Equal(insts.FormatI))

			inst, err = decoder.Decode(0x00000073) // ecall
			Expect(err).NotTo(HaveOccurred())
			Expect(inst.Format()).To(Equal(insts.FormatI))
		})
	})

	Describe("R-type", func() {
		// sub x3, x1, x2 -> 0x402081B3
		It("should decode sub x3, x1, x2", func() {
			inst, err := decoder.Decode(0x402081B3)
			Expect(err).NotTo(HaveOccurred())

			r, ok := inst.R()
			Expect(ok).To(BeTrue())
			Expect(r.Funct7).To(Equal(insts.Funct7Sub))
			Expect(r.Rs2).To(Equal(uint8(2)))
			Expect(r.Rs1).To(Equal(uint8(1)))
			Expect(r.Rd).To(Equal(uint8(3)))
			Expect(r.Funct3).To(Equal(insts.OpADDSUB))
		})
	})

	Describe("S-type", func() {
		// sw x5, -4(x2) -> 0xFE512E23
		It("should decode sw x5, -4(x2)", func() {
			inst, err := decoder.Decode(0xFE512E23)
			Expect(err).NotTo(HaveOccurred())

			s, ok := inst.S()
			Expect(ok).To(BeTrue())
			Expect(s.Funct3).To(Equal(insts.StoreSW))
			Expect(s.Rs2).To(Equal(uint8(5)))
			Expect(s.Rs1).To(Equal(uint8(2)))
			Expect(s.Imm).To(Equal(uint32(0xFFFFFFFC)))
		})
	})

	Describe("B-type", func() {
		// beq x1, x2, -8 -> 0xFE208CE3
		It("should decode beq x1, x2, -8", func() {
			inst, err := decoder.Decode(0xFE208CE3)
			Expect(err).NotTo(HaveOccurred())

			b, ok := inst.B()
			Expect(ok).To(BeTrue())
			Expect(b.Funct3).To(Equal(insts.BranchBEQ))
			Expect(b.Rs1).To(Equal(uint8(1)))
			Expect(b.Rs2).To(Equal(uint8(2)))
			Expect(int32(b.Imm)).To(Equal(int32(-8)))
		})
	})

	Describe("U-type", func() {
		It("should decode lui and auipc", func() {
			inst, err := decoder.Decode(0x123452B7) // lui x5, 0x12345
			Expect(err).NotTo(HaveOccurred())

			u, ok := inst.U()
			Expect(ok).To(BeTrue())
			Expect(inst.Opcode()).To(Equal(insts.OpcodeLUI))
			Expect(u.Rd).To(Equal(uint8(5)))
			Expect(u.Imm).To(Equal(uint32(0x12345000)))

			inst, err = decoder.Decode(0xFFFFF097) // auipc x1, 0xfffff
			Expect(err).NotTo(HaveOccurred())

			u, ok = inst.U()
			Expect(ok).To(BeTrue())
			Expect(inst.Opcode()).To(Equal(insts.OpcodeAUIPC))
			Expect(u.Imm).To(Equal(uint32(0xFFFFF000)))
		})
	})

	Describe("J-type", func() {
		// jal x0, -4 -> 0xFFDFF06F
		It("should decode jal x0, -4", func() {
			inst, err := decoder.Decode(0xFFDFF06F)
			Expect(err).NotTo(HaveOccurred())

			j, ok := inst.J()
			Expect(ok).To(BeTrue())
			Expect(j.Rd).To(Equal(uint8(0)))
			Expect(int32(j.Imm)).To(Equal(int32(-4)))
		})
	})

	Describe("variant access", func() {
		It("should expose only the active variant", func() {
			inst, err := decoder.Decode(0x00512423) // sw x5, 8(x2)
			Expect(err).NotTo(HaveOccurred())

			_, ok := inst.S()
			Expect(ok).To(BeTrue())

			_, ok = inst.R()
			Expect(ok).To(BeFalse())
			_, ok = inst.I()
			Expect(ok).To(BeFalse())
			_, ok = inst.B()
			Expect(ok).To(BeFalse())
			_, ok = inst.U()
			Expect(ok).To(BeFalse())
			_, ok = inst.J()
			Expect(ok).To(BeFalse())

			Expect(inst.Fields().Format()).To(Equal(inst.Opcode().Format()))
		})
	})

	Describe("illegal words", func() {
		DescribeTable("should fail with IllegalValue",
			func(word uint32) {
				inst, err := decoder.Decode(insts.Word(word))

				Expect(inst).To(BeNil())
				Expect(errors.Is(err, fault.ErrIllegalValue)).To(BeTrue())
			},
			Entry("all zeros", uint32(0x00000000)),
			Entry("all ones", uint32(0xFFFFFFFF)),
			Entry("custom-0 opcode", uint32(0x0000000B)),
			Entry("compressed-looking word", uint32(0x9f01514a)),
		)
	})
})
