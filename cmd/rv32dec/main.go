// Package main provides rv32dec, a tool that decodes RV32I machine words.
//
// Words are given as hex arguments, either as 32-bit values ("0x00100293")
// or, with -bytes, as four little-endian bytes in fetch order ("93021000").
package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/sarchlab/rv32core/config"
	"github.com/sarchlab/rv32core/emu"
	"github.com/sarchlab/rv32core/fault"
	"github.com/sarchlab/rv32core/insts"
	"github.com/sarchlab/rv32core/timing/cache"
)

var (
	configPath = flag.String("config", "", "Path to core configuration JSON file")
	asBytes    = flag.Bool("bytes", false, "Arguments are little-endian byte strings")
	viaMemory  = flag.Bool("via-memory", false, "Stage words in memory and read them back through the cache")
	verbose    = flag.Bool("v", false, "Verbose output")
)

func main() {
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Usage: rv32dec [options] <word>...\n")
		fmt.Fprintf(os.Stderr, "\nOptions:\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	reporter := fault.NewFatalReporter(log, os.Exit)

	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid config: %v\n", err)
		os.Exit(1)
	}

	log.SetLevel(cfg.Level())
	if *verbose && log.GetLevel() < logrus.DebugLevel {
		log.SetLevel(logrus.DebugLevel)
	}

	words := make([]insts.Word, 0, flag.NArg())
	for _, arg := range flag.Args() {
		w, err := parseWord(arg, *asBytes)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing %q: %v\n", arg, err)
			os.Exit(1)
		}
		words = append(words, w)
	}

	if *viaMemory {
		var err error
		words, err = roundTrip(cfg, log, words)
		reporter.Report(err)
	}

	decoder := insts.NewDecoder(insts.WithLogger(log))
	for _, w := range words {
		inst, err := decoder.Decode(w)
		reporter.Report(err)
		printInstruction(inst)
	}
}

// parseWord reads a hex word, or four hex bytes in memory order.
func parseWord(arg string, littleEndianBytes bool) (insts.Word, error) {
	arg = strings.TrimPrefix(strings.ToLower(arg), "0x")

	if littleEndianBytes {
		raw, err := hex.DecodeString(arg)
		if err != nil {
			return 0, err
		}
		if len(raw) > 4 {
			return 0, fmt.Errorf("need 4 bytes, got %d", len(raw))
		}
		return insts.WordFromSlice(raw)
	}

	v, err := strconv.ParseUint(arg, 16, 32)
	if err != nil {
		return 0, err
	}
	return insts.Word(v), nil
}

// roundTrip writes the words to consecutive addresses in a fresh memory
// bank, then reads them back through the data cache.
func roundTrip(cfg *config.Config, log *logrus.Logger, words []insts.Word) ([]insts.Word, error) {
	memory := cfg.NewMemory(log)
	for i, w := range words {
		if _, err := memory.Access(uint32(i*4), uint32(w), emu.MemWrite, emu.WidthWord); err != nil {
			return nil, fmt.Errorf("staging word %d: %w", i, err)
		}
	}

	dcache := cache.New(cfg.Cache, cache.NewMemoryBacking(memory))
	out := make([]insts.Word, len(words))
	for i := range words {
		r, err := dcache.Read(uint32(i*4), emu.WidthWord)
		if err != nil {
			return nil, fmt.Errorf("reading word %d: %w", i, err)
		}
		out[i] = insts.Word(r.Data)
	}

	stats := dcache.Stats()
	log.WithFields(logrus.Fields{
		"reads":  stats.Reads,
		"hits":   stats.Hits,
		"misses": stats.Misses,
	}).Info("cache statistics")

	return out, nil
}

func printInstruction(inst *insts.Instruction) {
	fmt.Printf("0x%08x  %-24s  %s-type %s\n",
		uint32(inst.Word()), inst.String(), inst.Format(), inst.Opcode())

	if !*verbose {
		return
	}

	switch f := inst.Fields().(type) {
	case insts.RType:
		fmt.Printf("  funct7=0x%02x rs2=%d rs1=%d funct3=%d rd=%d\n",
			uint8(f.Funct7), f.Rs2, f.Rs1, f.Funct3, f.Rd)
	case insts.IType:
		fmt.Printf("  imm=%d rs1=%d funct3=%d rd=%d\n", int32(f.Imm), f.Rs1, f.Funct3, f.Rd)
	case insts.SType:
		fmt.Printf("  imm=%d rs2=%d rs1=%d funct3=%d\n", int32(f.Imm), f.Rs2, f.Rs1, f.Funct3)
	case insts.BType:
		fmt.Printf("  imm=%d rs2=%d rs1=%d funct3=%d\n", int32(f.Imm), f.Rs2, f.Rs1, f.Funct3)
	case insts.UType:
		fmt.Printf("  imm=0x%08x rd=%d\n", f.Imm, f.Rd)
	case insts.JType:
		fmt.Printf("  imm=%d rd=%d\n", int32(f.Imm), f.Rd)
	}
}
