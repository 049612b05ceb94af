package fault_test

import (
	"bytes"
	"errors"
	"fmt"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sirupsen/logrus"

	"github.com/sarchlab/rv32core/fault"
)

var _ = Describe("Fault", func() {
	Describe("New", func() {
		It("should record the kind, op and message", func() {
			err := fault.New(fault.OutOfBounds, "memory access", "address 0x%x", 0x10)

			Expect(err.Kind).To(Equal(fault.OutOfBounds))
			Expect(err.Error()).To(Equal("memory access: out of bounds: address 0x10"))
		})

		It("should record the caller location", func() {
			err := fault.New(fault.IllegalValue, "decode", "bad")

			Expect(err.File).To(Equal("fault_test.go"))
			Expect(err.Line).To(BeNumerically(">", 0))
			Expect(err.Location()).To(HavePrefix("fault_test.go:"))
		})
	})

	Describe("errors.Is", func() {
		It("should match sentinels by kind", func() {
			err := fault.New(fault.IllegalValue, "decode", "opcode 0x7f")

			Expect(errors.Is(err, fault.ErrIllegalValue)).To(BeTrue())
			Expect(errors.Is(err, fault.ErrOutOfBounds)).To(BeFalse())
		})

		It("should see through wrapping", func() {
			err := fmt.Errorf("step 3: %w", fault.New(fault.OutOfBounds, "memory access", ""))

			Expect(errors.Is(err, fault.ErrOutOfBounds)).To(BeTrue())
			Expect(fault.KindOf(err)).To(Equal(fault.OutOfBounds))
		})

		It("should report unknown kind for foreign errors", func() {
			Expect(fault.KindOf(errors.New("boom"))).To(Equal(fault.KindUnknown))
		})
	})

	Describe("Kind", func() {
		DescribeTable("String",
			func(k fault.Kind, want string) {
				Expect(k.String()).To(Equal(want))
			},
			Entry("out of bounds", fault.OutOfBounds, "out of bounds"),
			Entry("illegal value", fault.IllegalValue, "illegal value"),
			Entry("divide by zero", fault.DivideByZero, "divide by zero"),
			Entry("unknown", fault.Kind(42), "unknown fault"),
		)
	})

	Describe("FatalReporter", func() {
		var (
			buf      *bytes.Buffer
			logger   *logrus.Logger
			exitCode int
			exited   bool
			reporter *fault.FatalReporter
		)

		BeforeEach(func() {
			buf = &bytes.Buffer{}
			logger = logrus.New()
			logger.SetOutput(buf)
			logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
			exited = false
			reporter = fault.NewFatalReporter(logger, func(code int) {
				exited = true
				exitCode = code
			})
		})

		It("should log the kind and location then exit with status 1", func() {
			reporter.Report(fault.New(fault.OutOfBounds, "memory access", "address 0xc7ff"))

			Expect(exited).To(BeTrue())
			Expect(exitCode).To(Equal(1))
			Expect(buf.String()).To(ContainSubstring(`kind="out of bounds"`))
			Expect(buf.String()).To(ContainSubstring("location="))
		})

		It("should ignore nil errors", func() {
			reporter.Report(nil)

			Expect(exited).To(BeFalse())
			Expect(buf.Len()).To(BeZero())
		})
	})
})
