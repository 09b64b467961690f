package main

import (
	"fmt"
	"io"
	"os"
)

// readInput reads content from a file or stdin
func readInput(path string, stdin io.Reader) ([]byte, error) {
	if path == InputSourceStdin {
		return io.ReadAll(stdin)
	}

	return os.ReadFile(path)
}

// writeOutput writes content to a file or stdout
func writeOutput(path string, data []byte, stdout io.Writer) error {
	if path == FlagDefaultOutput {
		_, err := stdout.Write(data)
		return err
	}

	return os.WriteFile(path, data, FilePermissions)
}

// sourceName is the name diagnostics and artifacts use for path
func sourceName(path string) string {
	if path == InputSourceStdin {
		return StdinSourceName
	}
	return path
}

// inputPath returns the single optional positional argument, or stdin
func inputPath(args []string) string {
	if len(args) == 0 {
		return InputSourceStdin
	}
	return args[0]
}

// loadInput reads path and reports failures as input errors
func (c *cli) loadInput(path string) (string, error) {
	data, err := readInput(path, c.stdin)
	if err != nil {
		fmt.Fprintf(c.stderr, FmtErrorWithCause, ErrMsgReadFileFailed, err)
		return "", exitWith(ExitCodeInputError, err)
	}
	return string(data), nil
}
