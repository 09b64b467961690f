package main

// Command names
const (
	CmdNameBuild   = "build"
	CmdNameCheck   = "check"
	CmdNameAST     = "ast"
	CmdNameProject = "project"
	CmdNameVersion = "version"
)

// Flag names - long form
const (
	FlagTarget  = "target"
	FlagOutput  = "output"
	FlagMap     = "map"
	FlagJSON    = "json"
	FlagFormat  = "format"
	FlagConfig  = "config"
	FlagWatch   = "watch"
	FlagVerbose = "verbose"
	FlagName    = "name"
)

// Flag names - short form
const (
	FlagTargetShort  = "t"
	FlagOutputShort  = "o"
	FlagFormatShort  = "F"
	FlagConfigShort  = "c"
	FlagWatchShort   = "w"
	FlagVerboseShort = "v"
)

// Flag default values
const (
	FlagDefaultOutput = "-" // stdout
	FlagDefaultTarget = "client"
	FlagDefaultFormat = OutputFormatJSON
)

// Output formats
const (
	OutputFormatText = "text"
	OutputFormatJSON = "json"
	OutputFormatYAML = "yaml"
)

// Exit codes
const (
	ExitCodeSuccess      = 0
	ExitCodeError        = 1
	ExitCodeUsageError   = 2
	ExitCodeCompileError = 3
	ExitCodeInputError   = 4
)

// Input source indicators
const (
	InputSourceStdin = "-"
	StdinSourceName  = "<stdin>"
)

// Error messages - ALL must be constants
const (
	ErrMsgReadFileFailed     = "failed to read input"
	ErrMsgWriteOutputFailed  = "failed to write output"
	ErrMsgInvalidFormat      = "invalid output format"
	ErrMsgInvalidTarget      = "invalid target"
	ErrMsgLoadConfigFailed   = "failed to load project config"
	ErrMsgOpenProjectFailed  = "failed to open project"
	ErrMsgProjectBuildFailed = "project build failed"
	ErrMsgEncodeFailed       = "failed to encode output"
	ErrMsgCompilerFailed     = "failed to create compiler"
)

// Diagnostic labels
const (
	DiagLabelError   = "error"
	DiagLabelOK      = "ok"
	DiagLabelFail    = "fail"
	DiagFrameArrow   = "-->"
	DiagFrameGutter  = "|"
	DiagFrameCaret   = "^"
	DiagLocationFmt  = "%s:%d:%d"
	DiagSummaryFmt   = "%d file(s) checked, %d failed"
	DiagProjectFmt   = "%d file(s) built, %d failed in %s"
	DiagWatchFmt     = "watching %s for changes (ctrl+c to stop)"
	DiagRemovedFmt   = "removed %s"
	DiagBuiltFileFmt = "%s -> %s"
)

// Version output format templates
const (
	VersionTextTemplate = "debrix version %s\nGo: %s"
)

// CLI metadata
const (
	CLIName        = "debrix"
	CLIDescription = "Compile debrix component templates to JavaScript"
	CLILong        = `debrix compiles .debrix component templates into JavaScript modules
for the @debrix/internal runtime, with source maps back to the template.`
)

// File permission constant
const (
	FilePermissions = 0o644
)

// Format string constants
const (
	FmtErrorWithCause = "%s: %v\n"
	FmtNewline        = "\n"
)

// Terminal colors
const (
	ColorError   = "#ef4444"
	ColorSuccess = "#10b981"
	ColorWarning = "#f59e0b"
	ColorMuted   = "#94a3b8"
)
