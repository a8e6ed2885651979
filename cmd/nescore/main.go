// Command nescore loads an iNES ROM and runs the CPU core against it for
// a fixed step budget, optionally printing an instruction trace.
package main

import (
	"flag"
	"fmt"
	"os"

	"nescore/nes"
)

func main() {
	steps := flag.Int("steps", 1000, "number of CPU steps to run")
	trace := flag.Bool("trace", false, "print an instruction trace line per step")
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "usage: nescore [-steps N] [-trace] <rom-file>")
		os.Exit(1)
	}

	if err := run(flag.Arg(0), *steps, *trace); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(romPath string, steps int, trace bool) error {
	session, err := nes.NewFromCartridge(romPath)
	if err != nil {
		return fmt.Errorf("nescore: load %s: %w", romPath, err)
	}
	session.SetTrace(trace)

	for i := 0; i < steps; i++ {
		if err := session.Step(); err != nil {
			snap := session.CPU().Snap()
			return fmt.Errorf("nescore: halted at step %d, PC=0x%04X: %w", i, snap.PC, err)
		}
		if trace {
			fmt.Println(session.LastTrace())
		}
	}
	return nil
}
