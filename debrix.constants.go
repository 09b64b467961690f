package debrix

import "time"

// Version is the compiler version reported by the CLI
const Version = "0.4.0"

// Defaults
const (
	DefaultSourceName     = "input.debrix"
	DefaultConfigFile     = "debrix.yaml"
	DefaultSourceDir      = "."
	DefaultOutputDir      = "dist"
	DefaultIncludePattern = "**/*.debrix"

	SourceExtension    = ".debrix"
	OutputExtension    = ".js"
	SourceMapExtension = ".map"

	WatchDebounce = 100 * time.Millisecond
)

// Error code constants for categorization
const (
	ErrCodeParse   = "DEBRIX_PARSE"
	ErrCodeCompile = "DEBRIX_COMPILE"
	ErrCodeTarget  = "DEBRIX_TARGET"
	ErrCodeConfig  = "DEBRIX_CONFIG"
	ErrCodeStore   = "DEBRIX_STORE"
	ErrCodeIO      = "DEBRIX_IO"
)

// Error message constants
const (
	ErrMsgParseFailed       = "template parsing failed"
	ErrMsgCompileFailed     = "template compilation failed"
	ErrMsgTargetUnsupported = "compilation target is not supported yet"
	ErrMsgUnknownTarget     = "unknown compilation target"
	ErrMsgReadSource        = "failed to read source file"
	ErrMsgWriteOutput       = "failed to write output file"
	ErrMsgEncodeSourceMap   = "failed to encode source map"

	ErrMsgConfigRead         = "failed to read config file"
	ErrMsgConfigParse        = "failed to parse config file"
	ErrMsgConfigEmptySource  = "config: src must not be empty"
	ErrMsgConfigEmptyOutput  = "config: out must not be empty"
	ErrMsgConfigBadPattern   = "config: invalid include pattern"
	ErrMsgConfigStoreDriver  = "config: store driver must be set when a dsn is given"
	ErrMsgConfigSameInOutDir = "config: out must differ from src"

	ErrMsgWatchFailed = "failed to watch source directory"
	ErrMsgStoreOpen   = "failed to open artifact store"
)

// Metadata keys attached to public errors
const (
	MetaKeyKind      = "kind"
	MetaKeyPosition  = "position"
	MetaKeyLine      = "line"
	MetaKeyColumn    = "column"
	MetaKeyStart     = "start"
	MetaKeyEnd       = "end"
	MetaKeyPositives = "positives"
	MetaKeyTarget    = "target"
	MetaKeyPath      = "path"
	MetaKeyPattern   = "pattern"
	MetaKeyDriver    = "driver"
)

// Error kinds, matching the tag the host adapters use
const (
	ErrorKindCompiler = 0
	ErrorKindParser   = 1
	ErrorKindOther    = -1

	errorKindNameCompiler = "compiler"
	errorKindNameParser   = "parser"
)

// Log messages
const (
	LogMsgCompilerCreated = "debrix compiler created"
	LogMsgBuildStart      = "build started"
	LogMsgBuildDone       = "build finished"
	LogMsgBuildFailed     = "build failed"
	LogMsgStoreHit        = "artifact store hit"
	LogMsgStoreMiss       = "artifact store miss"
	LogMsgStorePutFailed  = "artifact store write failed"
	LogMsgStoreGetFailed  = "artifact store read failed"

	LogMsgProjectStart    = "project build started"
	LogMsgProjectFile     = "project file compiled"
	LogMsgProjectFileFail = "project file failed"
	LogMsgProjectDone     = "project build finished"

	LogMsgWatchStart   = "watching for changes"
	LogMsgWatchEvent   = "source change detected"
	LogMsgWatchRebuild = "rebuilding changed files"
	LogMsgWatchError   = "watcher error"
	LogMsgWatchStop    = "watcher stopped"
)

// Log field names
const (
	LogFieldTarget   = "target"
	LogFieldSource   = "source"
	LogFieldPath     = "path"
	LogFieldBytes    = "bytes"
	LogFieldMappings = "mappings"
	LogFieldKey      = "key"
	LogFieldFiles    = "files"
	LogFieldFailed   = "failed"
	LogFieldDuration = "duration"
	LogFieldEvent    = "event"
	LogFieldError    = "error"
)
