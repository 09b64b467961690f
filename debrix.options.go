package debrix

import (
	"go.uber.org/zap"
)

// Option is a functional option for configuring the Compiler.
type Option func(*compilerConfig)

// compilerConfig holds the internal configuration for a Compiler.
type compilerConfig struct {
	target     Target
	sourceName string
	sourceRoot string
	store      ArtifactStore
	logger     *zap.Logger
}

// defaultCompilerConfig returns the default compiler configuration.
func defaultCompilerConfig() *compilerConfig {
	return &compilerConfig{
		target:     TargetClient,
		sourceName: DefaultSourceName,
	}
}

// WithTarget sets the compilation target.
// Default: TargetClient
func WithTarget(target Target) Option {
	return func(c *compilerConfig) {
		c.target = target
	}
}

// WithSourceName sets the name recorded for sources passed to Build.
// Default: "input.debrix"
func WithSourceName(name string) Option {
	return func(c *compilerConfig) {
		if name != "" {
			c.sourceName = name
		}
	}
}

// WithSourceRoot sets the directory relative paths given to BuildFile
// are resolved against. Artifact names are recorded relative to it.
func WithSourceRoot(dir string) Option {
	return func(c *compilerConfig) {
		c.sourceRoot = dir
	}
}

// WithStore caches build output in store. The compiler does not close it.
// Default: nil (no caching)
func WithStore(store ArtifactStore) Option {
	return func(c *compilerConfig) {
		c.store = store
	}
}

// WithLogger sets the logger for the compiler.
// Default: nil (no logging)
func WithLogger(logger *zap.Logger) Option {
	return func(c *compilerConfig) {
		c.logger = logger
	}
}
