// Command meshprep reads a generator-native mesh, builds its topology,
// partitions it across ranks, and writes the per-rank local mesh data the
// distributed assembler consumes (spec §6).
package main

import (
	"fmt"
	"os"

	"github.com/cpmech/meshprep/errs"
)

func main() {
	os.Exit(run())
}

// run wraps rootCmd.Execute in a recover, mirroring the teacher's
// panic-to-stderr main shape (mpi dropped: distributed execution across
// processes is out of scope here, partitioning is a library call).
func run() (code int) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "meshprep: panic: %v\n", r)
			code = 1
		}
	}()

	rootCmd.SilenceUsage = true
	rootCmd.SilenceErrors = true
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "meshprep:", err)
		if _, ok := err.(*errs.Error); ok {
			return errs.ExitCodeFor(err)
		}
		return 2
	}
	return 0
}
