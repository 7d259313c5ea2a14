package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/zhrexx/prostvm/vm"
)

func newDisasmCmd() *cobra.Command {
	var plain bool

	cmd := &cobra.Command{
		Use:   "disasm <file.pco>",
		Short: "Print a human-readable listing of a compiled program",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			prog, err := vm.Deserialize(data)
			if err != nil {
				return err
			}
			listing := vm.Disassemble(prog)
			if plain {
				fmt.Print(listing)
				return nil
			}
			fmt.Print(colorizeListing(listing))
			return nil
		},
	}
	cmd.Flags().BoolVar(&plain, "plain", false, "disable colorized output")
	return cmd
}

var (
	mnemonicColor = color.New(color.FgCyan, color.Bold)
	argColor      = color.New(color.FgYellow)
	funcColor     = color.New(color.FgGreen, color.Bold)
)

// colorizeListing re-colors a plain Disassemble listing line by line:
// opcode mnemonics in one color, their argument in another, matching the
// color-coded CLI output convention other tooling in this ecosystem
// applies to its own REPL/listing output.
func colorizeListing(listing string) string {
	lines := strings.Split(listing, "\n")
	for i, line := range lines {
		trimmed := strings.TrimLeft(line, " ")
		switch {
		case strings.HasPrefix(trimmed, "func "):
			lines[i] = funcColor.Sprint(line)
		case strings.Contains(trimmed, ": "):
			idx := strings.Index(line, ": ")
			rest := line[idx+2:]
			fields := strings.SplitN(rest, " ", 2)
			out := line[:idx+2] + mnemonicColor.Sprint(fields[0])
			if len(fields) > 1 {
				out += " " + argColor.Sprint(fields[1])
			}
			lines[i] = out
		}
	}
	return strings.Join(lines, "\n")
}
