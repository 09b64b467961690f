package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/debrix-lang/debrix-go"
)

func (c *cli) newASTCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   CmdNameAST + " [file|-]",
		Short: "Print the syntax tree of a template",
		Long: `Parses a template and prints its document tree with node kinds and
byte spans, as JSON or YAML.`,
		Example: `  debrix ast card.debrix
  debrix ast --format yaml card.debrix`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runAST(format, inputPath(args))
		},
	}

	cmd.Flags().StringVarP(&format, FlagFormat, FlagFormatShort, FlagDefaultFormat, "Output format: json, yaml")

	return cmd
}

func (c *cli) runAST(format, path string) error {
	if format != OutputFormatJSON && format != OutputFormatYAML {
		fmt.Fprintf(c.stderr, FmtErrorWithCause, ErrMsgInvalidFormat, format)
		return exitWith(ExitCodeUsageError, nil)
	}

	input, err := c.loadInput(path)
	if err != nil {
		return err
	}

	name := sourceName(path)
	compiler, err := c.newCompiler(debrix.TargetClient, name)
	if err != nil {
		return err
	}

	tree, err := compiler.Dump(input)
	if err != nil {
		newPrinter(c.stderr).diagnostic(newDiagnostic(name, input, err))
		return exitWith(failureCode(err), err)
	}

	var data []byte
	if format == OutputFormatYAML {
		data, err = yaml.Marshal(tree)
	} else {
		data, err = json.MarshalIndent(tree, "", "  ")
		data = append(data, '\n')
	}
	if err != nil {
		fmt.Fprintf(c.stderr, FmtErrorWithCause, ErrMsgEncodeFailed, err)
		return exitWith(ExitCodeError, err)
	}

	if _, err := c.stdout.Write(data); err != nil {
		fmt.Fprintf(c.stderr, FmtErrorWithCause, ErrMsgWriteOutputFailed, err)
		return exitWith(ExitCodeError, err)
	}
	return nil
}
