package debrix

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/itsatony/go-cuserr"
	"go.uber.org/zap"

	"github.com/debrix-lang/debrix-go/internal"
)

// Compiler turns debrix templates into script modules. A Compiler holds
// only configuration; every Build owns its own pipeline state, so one
// Compiler may be used from several goroutines.
type Compiler struct {
	config *compilerConfig
	logger *zap.Logger
}

// New creates a Compiler with the given options
func New(opts ...Option) (*Compiler, error) {
	config := defaultCompilerConfig()
	for _, opt := range opts {
		opt(config)
	}

	if config.target < TargetClient || config.target > TargetServer {
		return nil, cuserr.NewValidationError(ErrCodeTarget, ErrMsgUnknownTarget).
			WithMetadata(MetaKeyTarget, config.target.String())
	}

	logger := config.logger
	if logger == nil {
		logger = zap.NewNop()
	}
	logger.Debug(LogMsgCompilerCreated, zap.Stringer(LogFieldTarget, config.target))

	return &Compiler{
		config: config,
		logger: logger,
	}, nil
}

// MustNew creates a Compiler and panics if there's an error
func MustNew(opts ...Option) *Compiler {
	c, err := New(opts...)
	if err != nil {
		panic(err)
	}
	return c
}

// Build compiles input with the package defaults for target
func Build(input string, target Target) (*Chunk, error) {
	c, err := New(WithTarget(target))
	if err != nil {
		return nil, err
	}
	return c.Build(context.Background(), input)
}

// Target returns the configured compilation target
func (c *Compiler) Target() Target {
	return c.config.target
}

// Build compiles input under the configured source name
func (c *Compiler) Build(ctx context.Context, input string) (*Chunk, error) {
	return c.BuildNamed(ctx, c.config.sourceName, input)
}

// BuildNamed compiles input, recording name in logs and stored artifacts.
// Unsupported targets fail before any parsing. With a store configured,
// a cached artifact is returned when present and fresh output is stored;
// store failures are logged and never fail the build.
func (c *Compiler) BuildNamed(ctx context.Context, name, input string) (*Chunk, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	target := c.config.target
	if !target.Supported() {
		return nil, NewUnsupportedTargetError(target)
	}

	logger := c.logger.With(zap.String(LogFieldSource, name))
	logger.Debug(LogMsgBuildStart, zap.Stringer(LogFieldTarget, target), zap.Int(LogFieldBytes, len(input)))
	start := time.Now()

	key := ""
	if c.config.store != nil {
		key = ArtifactKey(target, input)
		artifact, err := c.config.store.Get(ctx, key)
		switch {
		case err == nil:
			logger.Debug(LogMsgStoreHit, zap.String(LogFieldKey, key))
			return artifact.Chunk(), nil
		case IsArtifactNotFound(err):
			logger.Debug(LogMsgStoreMiss, zap.String(LogFieldKey, key))
		default:
			logger.Warn(LogMsgStoreGetFailed, zap.String(LogFieldKey, key), zap.Error(err))
		}
	}

	chunk, err := c.compile(input, logger)
	if err != nil {
		logger.Debug(LogMsgBuildFailed, zap.Error(err))
		return nil, err
	}

	if c.config.store != nil {
		if err := c.config.store.Put(ctx, NewArtifact(name, target, input, chunk)); err != nil {
			logger.Warn(LogMsgStorePutFailed, zap.String(LogFieldKey, key), zap.Error(err))
		}
	}

	logger.Debug(LogMsgBuildDone,
		zap.Int(LogFieldBytes, len(chunk.Source)),
		zap.Int(LogFieldMappings, len(chunk.Mappings)),
		zap.Duration(LogFieldDuration, time.Since(start)))
	return chunk, nil
}

func (c *Compiler) compile(input string, logger *zap.Logger) (*Chunk, error) {
	lines := newLineIndex(input)

	doc, err := internal.Parse(input, logger)
	if err != nil {
		return nil, wrapPipelineError(err, lines)
	}
	generated, err := internal.Generate(doc, logger)
	if err != nil {
		return nil, wrapPipelineError(err, lines)
	}
	return newChunk(generated, lines), nil
}

// BuildFile reads and compiles the file at path. Relative paths are
// resolved against the configured source root.
func (c *Compiler) BuildFile(ctx context.Context, path string) (*Chunk, error) {
	input, name, err := c.readSource(path)
	if err != nil {
		return nil, err
	}
	return c.BuildNamed(ctx, name, input)
}

func (c *Compiler) readSource(path string) (string, string, error) {
	full := path
	if c.config.sourceRoot != "" && !filepath.IsAbs(path) {
		full = filepath.Join(c.config.sourceRoot, path)
	}

	data, err := os.ReadFile(full)
	if err != nil {
		return "", "", NewIOError(ErrMsgReadSource, full, err)
	}

	name := filepath.ToSlash(path)
	if c.config.sourceRoot != "" {
		if rel, err := filepath.Rel(c.config.sourceRoot, full); err == nil {
			name = filepath.ToSlash(rel)
		}
	}
	return string(data), name, nil
}

// Check parses and generates input without consulting the store. It
// returns the first error, or nil when input compiles.
func (c *Compiler) Check(input string) error {
	if !c.config.target.Supported() {
		return NewUnsupportedTargetError(c.config.target)
	}
	_, err := c.compile(input, c.logger)
	return err
}

// Dump parses input and returns its syntax tree as plain maps and
// slices, ready for JSON or YAML encoding
func (c *Compiler) Dump(input string) (map[string]any, error) {
	doc, err := internal.Parse(input, c.logger)
	if err != nil {
		return nil, wrapPipelineError(err, newLineIndex(input))
	}
	return internal.Dump(doc), nil
}
