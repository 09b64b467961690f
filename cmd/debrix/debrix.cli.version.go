package main

import (
	"encoding/json"
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/debrix-lang/debrix-go"
)

// versionOutput represents JSON output for version
type versionOutput struct {
	Version   string   `json:"version"`
	GoVersion string   `json:"go_version"`
	Targets   []string `json:"targets"`
}

func (c *cli) newVersionCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   CmdNameVersion,
		Short: "Show version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runVersion(format)
		},
	}

	cmd.Flags().StringVarP(&format, FlagFormat, FlagFormatShort, OutputFormatText, "Output format: text, json")

	return cmd
}

func (c *cli) runVersion(format string) error {
	switch format {
	case OutputFormatText:
		fmt.Fprintf(c.stdout, VersionTextTemplate+FmtNewline, debrix.Version, runtime.Version())
		return nil
	case OutputFormatJSON:
		output := versionOutput{
			Version:   debrix.Version,
			GoVersion: runtime.Version(),
			Targets:   supportedTargets(),
		}
		data, err := json.MarshalIndent(output, "", "  ")
		if err != nil {
			fmt.Fprintf(c.stderr, FmtErrorWithCause, ErrMsgEncodeFailed, err)
			return exitWith(ExitCodeError, err)
		}
		fmt.Fprintln(c.stdout, string(data))
		return nil
	default:
		fmt.Fprintf(c.stderr, FmtErrorWithCause, ErrMsgInvalidFormat, format)
		return exitWith(ExitCodeUsageError, nil)
	}
}

// supportedTargets lists the targets the compiler can emit
func supportedTargets() []string {
	var names []string
	for _, t := range []debrix.Target{debrix.TargetClient, debrix.TargetHydration, debrix.TargetServer} {
		if t.Supported() {
			names = append(names, t.String())
		}
	}
	return names
}
