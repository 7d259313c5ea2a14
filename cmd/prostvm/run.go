package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/zhrexx/prostvm/internal/config"
	"github.com/zhrexx/prostvm/internal/hostlib"
	"github.com/zhrexx/prostvm/vm"
)

func newRunCmd() *cobra.Command {
	var libraries []string
	var verbose bool
	var configPath string

	cmd := &cobra.Command{
		Use:   "run <file.pco>",
		Short: "Load and execute a compiled program",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if verbose {
				cfg.Verbose = true
			}
			return runProgram(args[0], libraries, cfg)
		},
	}

	cmd.Flags().StringArrayVarP(&libraries, "library", "l", nil, "path to a dynamic host library to load before running (repeatable)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "print a post-run summary")
	cmd.Flags().StringVar(&configPath, "config", "", "path to a prostvm.yaml configuration file")
	return cmd
}

// isBytecodeFile reports whether path's extension marks it as a
// compiled program, matching the original's .pco/.pa convention: only
// .pco is ever loaded directly, since the textual assembler producing
// .pa sources is out of scope here.
func isBytecodeFile(path string) bool {
	return filepath.Ext(path) == ".pco"
}

func runProgram(path string, libraries []string, cfg config.Config) error {
	if !isBytecodeFile(path) {
		return fmt.Errorf("prostvm: %s is not a .pco bytecode file (the textual assembler is not part of this tool)", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	prog, err := vm.Deserialize(data)
	if err != nil {
		return err
	}

	machine := vm.New()
	if err := hostlib.Register(machine); err != vm.StatusOK {
		return fmt.Errorf("prostvm: failed to register built-in host library: %s", err)
	}
	for _, lib := range libraries {
		path := lib
		if filepath.Base(lib) == lib {
			for _, dir := range cfg.LibraryPaths {
				candidate := filepath.Join(dir, lib)
				if _, err := os.Stat(candidate); err == nil {
					path = candidate
					break
				}
			}
		}
		if status := machine.LoadLibrary(path); status != vm.StatusOK {
			return fmt.Errorf("prostvm: failed to load library %s: %s", path, status)
		}
	}

	machine.Load(prog)
	status := machine.Run("__entry")

	if cfg.Verbose {
		top, _ := machine.StackTop()
		fmt.Fprintf(os.Stderr, "--- prostvm run summary ---\n")
		fmt.Fprintf(os.Stderr, "status:    %s\n", status)
		fmt.Fprintf(os.Stderr, "function:  %s\n", machine.CurrentFunction())
		fmt.Fprintf(os.Stderr, "ip:        %d\n", machine.CurrentIP())
		fmt.Fprintf(os.Stderr, "stack len: %d\n", machine.StackDepth())
		fmt.Fprintf(os.Stderr, "stack top: %s\n", top.Display())
	}

	if status != vm.StatusOK {
		return fmt.Errorf("prostvm: run ended with status %s in %s at ip %d", status, machine.CurrentFunction(), machine.CurrentIP())
	}
	return nil
}
