package main

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/debrix-lang/debrix-go"
)

// buildConfig holds parsed build command configuration
type buildConfig struct {
	target   string
	output   string
	name     string
	writeMap bool
	json     bool
}

// buildOutput is the --json success result, shaped like the host adapter
// objects
type buildOutput struct {
	Source   string   `json:"source"`
	Mappings [][4]int `json:"mappings"`
}

// buildFailure is the --json failure result
type buildFailure struct {
	Error *errorOutput `json:"error"`
}

// errorOutput carries type 0 for compiler and 1 for parser errors
type errorOutput struct {
	Type      int      `json:"type"`
	Message   string   `json:"message"`
	Start     *int     `json:"start,omitempty"`
	End       *int     `json:"end,omitempty"`
	Reason    string   `json:"_message,omitempty"`
	Positives []string `json:"positives,omitempty"`
}

func (c *cli) newBuildCommand() *cobra.Command {
	cfg := &buildConfig{}

	cmd := &cobra.Command{
		Use:   CmdNameBuild + " [file|-]",
		Short: "Compile one template to a JavaScript module",
		Long: `Compiles a single template, read from a file or stdin, and writes the
module to stdout or to --output.

With --map the source map is written next to the output file, or inlined
as a data URL when writing to stdout. With --json the result is printed as
{"source", "mappings"} or {"error"} for bundler integrations.`,
		Example: `  debrix build card.debrix -o card.js --map
  cat card.debrix | debrix build --json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runBuild(cmd, cfg, inputPath(args))
		},
	}

	cmd.Flags().StringVarP(&cfg.target, FlagTarget, FlagTargetShort, FlagDefaultTarget, "Compilation target: client, hydration, server")
	cmd.Flags().StringVarP(&cfg.output, FlagOutput, FlagOutputShort, FlagDefaultOutput, "Output file (default: stdout)")
	cmd.Flags().StringVar(&cfg.name, FlagName, "", "Source name used in diagnostics and source maps")
	cmd.Flags().BoolVar(&cfg.writeMap, FlagMap, false, "Emit a source map")
	cmd.Flags().BoolVar(&cfg.json, FlagJSON, false, "Print the build result as JSON")

	return cmd
}

func (c *cli) runBuild(cmd *cobra.Command, cfg *buildConfig, path string) error {
	target, err := c.parseTarget(cfg.target)
	if err != nil {
		return err
	}

	input, err := c.loadInput(path)
	if err != nil {
		return err
	}

	name := cfg.name
	if name == "" {
		name = sourceName(path)
	}
	compiler, err := c.newCompiler(target, name)
	if err != nil {
		return err
	}

	chunk, buildErr := compiler.Build(cmd.Context(), input)

	if cfg.json {
		return c.writeBuildJSON(cfg.output, chunk, buildErr)
	}
	if buildErr != nil {
		newPrinter(c.stderr).diagnostic(newDiagnostic(name, input, buildErr))
		return exitWith(failureCode(buildErr), buildErr)
	}

	code := chunk.Source
	if cfg.writeMap {
		code, err = c.attachSourceMap(cfg.output, name, input, chunk)
		if err != nil {
			return err
		}
	}

	if err := writeOutput(cfg.output, []byte(code), c.stdout); err != nil {
		fmt.Fprintf(c.stderr, FmtErrorWithCause, ErrMsgWriteOutputFailed, err)
		return exitWith(ExitCodeError, err)
	}
	return nil
}

// attachSourceMap writes the map beside output, or inlines it for stdout,
// and returns the code with its sourceMappingURL comment
func (c *cli) attachSourceMap(output, name, input string, chunk *debrix.Chunk) (string, error) {
	file := ""
	if output != FlagDefaultOutput {
		file = filepath.Base(output)
	}

	data, err := chunk.MarshalSourceMap(file, filepath.ToSlash(name), input)
	if err != nil {
		fmt.Fprintf(c.stderr, FmtErrorWithCause, ErrMsgEncodeFailed, err)
		return "", exitWith(ExitCodeError, err)
	}

	if output == FlagDefaultOutput {
		return chunk.Source + debrix.InlineSourceMapComment(data), nil
	}

	mapPath := output + debrix.SourceMapExtension
	if err := writeOutput(mapPath, data, c.stdout); err != nil {
		fmt.Fprintf(c.stderr, FmtErrorWithCause, ErrMsgWriteOutputFailed, err)
		return "", exitWith(ExitCodeError, err)
	}
	return chunk.Source + debrix.SourceMapURLComment(filepath.Base(mapPath)), nil
}

func (c *cli) writeBuildJSON(output string, chunk *debrix.Chunk, buildErr error) error {
	var result any
	if buildErr != nil {
		result = buildFailure{Error: newErrorOutput(buildErr)}
	} else {
		result = buildOutput{Source: chunk.Source, Mappings: chunk.Tuples()}
	}

	data, err := json.Marshal(result)
	if err != nil {
		fmt.Fprintf(c.stderr, FmtErrorWithCause, ErrMsgEncodeFailed, err)
		return exitWith(ExitCodeError, err)
	}
	data = append(data, '\n')

	if err := writeOutput(output, data, c.stdout); err != nil {
		fmt.Fprintf(c.stderr, FmtErrorWithCause, ErrMsgWriteOutputFailed, err)
		return exitWith(ExitCodeError, err)
	}
	if buildErr != nil {
		return exitWith(failureCode(buildErr), buildErr)
	}
	return nil
}

func newErrorOutput(err error) *errorOutput {
	out := &errorOutput{Type: debrix.ErrorKind(err), Message: err.Error()}

	if pe, ok := debrix.AsParserError(err); ok {
		out.Message = pe.Error()
		out.Start = &pe.Position
		out.Positives = pe.Positives
	}
	if ce, ok := debrix.AsCompilerError(err); ok {
		out.Message = ce.Error()
		out.Start = &ce.Start
		out.End = &ce.End
		out.Reason = ce.Message
	}
	return out
}
