// Package main provides the entry point for rv32core.
// rv32core is the decode and memory-access core of an RV32I emulator.
//
// For the decoder CLI, use: go run ./cmd/rv32dec
package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Println("rv32core - RV32I decode and memory core")
	fmt.Println("")
	fmt.Println("Usage: rv32dec [options] <word>...")
	fmt.Println("")
	fmt.Println("Options:")
	fmt.Println("  -config      Path to core configuration JSON file")
	fmt.Println("  -bytes       Arguments are little-endian byte strings")
	fmt.Println("  -via-memory  Stage words in memory and read them back through the cache")
	fmt.Println("  -v           Verbose output")
	fmt.Println("")
	fmt.Println("Run 'go run ./cmd/rv32dec' for the full CLI.")

	if len(os.Args) > 1 {
		fmt.Println("\nNote: You provided arguments. Use 'go run ./cmd/rv32dec' instead.")
	}
}
