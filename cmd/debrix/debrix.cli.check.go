package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *cli) newCheckCommand() *cobra.Command {
	var targetName string

	cmd := &cobra.Command{
		Use:   CmdNameCheck + " [files...]",
		Short: "Report errors in templates without writing output",
		Long: `Parses and compiles each template and prints a diagnostic with a code
frame for every failure. Reads stdin when no file is given.`,
		Example: `  debrix check src/*.debrix
  debrix check - < card.debrix`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				args = []string{InputSourceStdin}
			}
			return c.runCheck(targetName, args)
		},
	}

	cmd.Flags().StringVarP(&targetName, FlagTarget, FlagTargetShort, FlagDefaultTarget, "Compilation target: client, hydration, server")

	return cmd
}

func (c *cli) runCheck(targetName string, paths []string) error {
	target, err := c.parseTarget(targetName)
	if err != nil {
		return err
	}

	out := newPrinter(c.stdout)
	failed := 0
	unreadable := 0
	for _, path := range paths {
		name := sourceName(path)
		data, err := readInput(path, c.stdin)
		if err != nil {
			fmt.Fprintf(c.stderr, FmtErrorWithCause, ErrMsgReadFileFailed, err)
			unreadable++
			continue
		}

		compiler, err := c.newCompiler(target, name)
		if err != nil {
			return err
		}
		if err := compiler.Check(string(data)); err != nil {
			failed++
			out.diagnostic(newDiagnostic(name, string(data), err))
			continue
		}
		out.fileOK(name)
	}

	out.summary(fmt.Sprintf(DiagSummaryFmt, len(paths), failed+unreadable), failed+unreadable > 0)

	switch {
	case unreadable > 0:
		return exitWith(ExitCodeInputError, nil)
	case failed > 0:
		return exitWith(ExitCodeCompileError, nil)
	}
	return nil
}
