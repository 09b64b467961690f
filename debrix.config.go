package debrix

import (
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/itsatony/go-cuserr"
	"gopkg.in/yaml.v3"
)

// StoreConfig selects the artifact store of a project
type StoreConfig struct {
	Driver string `yaml:"driver,omitempty"`
	DSN    string `yaml:"dsn,omitempty"`
}

// Config is a project configuration, usually read from debrix.yaml:
//
//	target: client
//	src: src
//	out: dist
//	include:
//	  - "**/*.debrix"
//	sourcemaps: true
//	store:
//	  driver: filesystem
//	  dsn: .debrix-cache
type Config struct {
	Target     Target      `yaml:"target"`
	Src        string      `yaml:"src"`
	Out        string      `yaml:"out"`
	Include    []string    `yaml:"include"`
	SourceMaps bool        `yaml:"sourcemaps"`
	Store      StoreConfig `yaml:"store,omitempty"`

	// BaseDir is the directory relative paths are resolved against. It is
	// set by LoadConfig to the directory of the config file.
	BaseDir string `yaml:"-"`
}

// DefaultConfig returns the configuration used when no file exists
func DefaultConfig() *Config {
	return &Config{
		Target:     TargetClient,
		Src:        DefaultSourceDir,
		Out:        DefaultOutputDir,
		Include:    []string{DefaultIncludePattern},
		SourceMaps: true,
		BaseDir:    ".",
	}
}

// ParseConfig decodes YAML over the defaults and validates the result
func ParseConfig(data []byte) (*Config, error) {
	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, NewConfigError(ErrMsgConfigParse, err)
	}
	if len(config.Include) == 0 {
		config.Include = []string{DefaultIncludePattern}
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// LoadConfig reads the config file at path
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, cuserr.WrapStdError(err, ErrCodeConfig, ErrMsgConfigRead).
			WithMetadata(MetaKeyPath, path)
	}
	config, err := ParseConfig(data)
	if err != nil {
		return nil, err
	}
	config.BaseDir = filepath.Dir(path)
	return config, nil
}

// Validate checks the configuration for values a build cannot use
func (c *Config) Validate() error {
	if c.Src == "" {
		return NewConfigError(ErrMsgConfigEmptySource, nil)
	}
	if c.Out == "" {
		return NewConfigError(ErrMsgConfigEmptyOutput, nil)
	}
	if filepath.Clean(c.Src) == filepath.Clean(c.Out) {
		return NewConfigError(ErrMsgConfigSameInOutDir, nil)
	}
	for _, pattern := range c.Include {
		if !doublestar.ValidatePattern(pattern) {
			return cuserr.NewValidationError(ErrCodeConfig, ErrMsgConfigBadPattern).
				WithMetadata(MetaKeyPattern, pattern)
		}
	}
	if c.Store.DSN != "" && c.Store.Driver == "" {
		return NewConfigError(ErrMsgConfigStoreDriver, nil)
	}
	return nil
}

// SourceDir returns the source root resolved against BaseDir
func (c *Config) SourceDir() string {
	return c.resolve(c.Src)
}

// OutputDir returns the output directory resolved against BaseDir
func (c *Config) OutputDir() string {
	return c.resolve(c.Out)
}

func (c *Config) resolve(path string) string {
	if filepath.IsAbs(path) || c.BaseDir == "" {
		return path
	}
	return filepath.Join(c.BaseDir, path)
}

// Includes reports whether rel, a slash separated path relative to the
// source root, matches one of the include patterns
func (c *Config) Includes(rel string) bool {
	for _, pattern := range c.Include {
		if ok, err := doublestar.Match(pattern, rel); err == nil && ok {
			return true
		}
	}
	return false
}

// OpenStore opens the configured artifact store. It returns nil when no
// driver is configured. A relative filesystem DSN is resolved against
// BaseDir.
func (c *Config) OpenStore() (ArtifactStore, error) {
	if c.Store.Driver == "" {
		return nil, nil
	}
	dsn := c.Store.DSN
	if c.Store.Driver == StoreDriverNameFilesystem {
		dsn = c.resolve(dsn)
	}
	store, err := OpenStore(c.Store.Driver, dsn)
	if err != nil {
		return nil, cuserr.WrapStdError(err, ErrCodeStore, ErrMsgStoreOpen).
			WithMetadata(MetaKeyDriver, c.Store.Driver)
	}
	return store, nil
}
