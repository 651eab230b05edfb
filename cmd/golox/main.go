package main

import (
	"fmt"
	"os"

	lox "github.com/lox-lang/lox"
	"github.com/spf13/cobra"
)

// exitCode is set by whichever subcommand actually ran the interpreter, so
// main can translate a non-zero Runtime result into a process exit code
// without cobra's own error-printing path getting in the way (spec.md §6's
// exit codes are produced by the Runtime, not by argument parsing).
var exitCode int

func main() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		if exitCode == lox.ExitOK {
			exitCode = lox.ExitUsage
		}
	}

	os.Exit(exitCode)
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "golox",
		Short:         "golox runs Lox programs",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newRunCmd(), newReplCmd())
	return root
}

// newRunCmd wires `golox run <file>` to Runtime.RunFile.
func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run <file>",
		Short: "Scan, parse, resolve and interpret a Lox source file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			exitCode = lox.NewRuntime().RunFile(args[0])
			if exitCode != lox.ExitOK {
				return fmt.Errorf("golox: run failed with exit code %d", exitCode)
			}
			return nil
		},
	}
}

// newReplCmd wires `golox repl` to Runtime.RunPrompt; a REPL session always
// exits 0 when the user closes stdin.
func newReplCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Start an interactive Lox prompt",
		Long: "Start an interactive Lox prompt.\n\n" +
			"Two commands inspect interpreter state instead of running as Lox:\n" +
			"  :globals           list every name bound at the top level\n" +
			"  :methods <Class>   list the methods <Class> declares",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			lox.NewRuntime().RunPrompt()
			return nil
		},
	}
}
