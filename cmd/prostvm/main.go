// Command prostvm is the command-line driver around the engine: run a
// compiled program, disassemble it, or step through it interactively.
// None of this package is part of the engine's own contract - it is
// scaffolding around the core.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "prostvm",
		Short: "Run and inspect prostvm bytecode programs",
	}

	root.AddCommand(newRunCmd())
	root.AddCommand(newDisasmCmd())
	root.AddCommand(newDebugCmd())
	return root
}
