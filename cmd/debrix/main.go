package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/debrix-lang/debrix-go"
)

func main() {
	exitCode := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	os.Exit(exitCode)
}

// streams carries the standard streams of one CLI invocation
type streams struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

// cli is the state shared by the commands of one invocation
type cli struct {
	streams
	verbose bool
	logger  *zap.Logger
}

// exitError ends a command with a specific exit code. The message, if
// any, has already been printed.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	if e.err == nil {
		return fmt.Sprintf("exit status %d", e.code)
	}
	return e.err.Error()
}

func (e *exitError) Unwrap() error {
	return e.err
}

func exitWith(code int, err error) error {
	return &exitError{code: code, err: err}
}

// run is the main entry point for the CLI, separated for testing
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	c := &cli{streams: streams{stdin: stdin, stdout: stdout, stderr: stderr}}
	root := c.newRootCommand()
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(context.Background())
	if c.logger != nil {
		_ = c.logger.Sync()
	}
	if err == nil {
		return ExitCodeSuccess
	}

	var exit *exitError
	if errors.As(err, &exit) {
		return exit.code
	}

	// anything cobra rejects before a command runs is a usage problem
	fmt.Fprintf(stderr, FmtErrorWithCause, DiagLabelError, err)
	fmt.Fprint(stderr, root.UsageString())
	return ExitCodeUsageError
}

func (c *cli) newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           CLIName,
		Short:         CLIDescription,
		Long:          CLILong,
		Version:       debrix.Version,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			c.logger = newLogger(c.verbose, c.stderr)
		},
	}
	root.PersistentFlags().BoolVarP(&c.verbose, FlagVerbose, FlagVerboseShort, false, "Log pipeline and project events to stderr")

	root.AddCommand(c.newBuildCommand())
	root.AddCommand(c.newCheckCommand())
	root.AddCommand(c.newASTCommand())
	root.AddCommand(c.newProjectCommand())
	root.AddCommand(c.newVersionCommand())
	return root
}

// newLogger returns a development logger on w when verbose, else a no-op
func newLogger(verbose bool, w io.Writer) *zap.Logger {
	if !verbose {
		return zap.NewNop()
	}
	encoderConfig := zap.NewDevelopmentEncoderConfig()
	encoderConfig.TimeKey = ""
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig),
		zapcore.AddSync(w),
		zapcore.DebugLevel,
	)
	return zap.New(core)
}

// parseTarget converts the --target flag, reporting a usage error
func (c *cli) parseTarget(name string) (debrix.Target, error) {
	target, err := debrix.ParseTarget(name)
	if err != nil {
		fmt.Fprintf(c.stderr, FmtErrorWithCause, ErrMsgInvalidTarget, name)
		return 0, exitWith(ExitCodeUsageError, err)
	}
	return target, nil
}

// newCompiler creates a compiler for one command
func (c *cli) newCompiler(target debrix.Target, name string) (*debrix.Compiler, error) {
	compiler, err := debrix.New(
		debrix.WithTarget(target),
		debrix.WithSourceName(name),
		debrix.WithLogger(c.logger),
	)
	if err != nil {
		fmt.Fprintf(c.stderr, FmtErrorWithCause, ErrMsgCompilerFailed, err)
		return nil, exitWith(ExitCodeError, err)
	}
	return compiler, nil
}

// failureCode maps a build error to the exit code
func failureCode(err error) int {
	switch debrix.ErrorKind(err) {
	case debrix.ErrorKindParser, debrix.ErrorKindCompiler:
		return ExitCodeCompileError
	default:
		return ExitCodeError
	}
}
