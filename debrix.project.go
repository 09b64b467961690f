package debrix

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"go.uber.org/zap"
)

// FileResult is the outcome of compiling one project file
type FileResult struct {
	// Path is the source path relative to the source root, slash separated.
	Path string

	// Output and SourceMap are the written files. SourceMap is empty when
	// source maps are disabled.
	Output    string
	SourceMap string

	Err      error
	Duration time.Duration
}

// OK reports whether the file compiled and was written
func (r FileResult) OK() bool {
	return r.Err == nil
}

// BuildReport collects the results of a project build in path order
type BuildReport struct {
	Files    []FileResult
	Duration time.Duration
}

// Failed returns the results that carry an error
func (r *BuildReport) Failed() []FileResult {
	var failed []FileResult
	for _, f := range r.Files {
		if !f.OK() {
			failed = append(failed, f)
		}
	}
	return failed
}

// HasErrors reports whether any file failed
func (r *BuildReport) HasErrors() bool {
	return len(r.Failed()) > 0
}

// Project compiles every included template under a source root into an
// output directory
type Project struct {
	config    *Config
	compiler  *Compiler
	store     ArtifactStore
	ownsStore bool
	logger    *zap.Logger
}

// NewProject creates a project for config. When config names a store and
// no WithStore option is given, the project opens the store and closes it
// in Close.
func NewProject(config *Config, opts ...Option) (*Project, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	probe := defaultCompilerConfig()
	for _, opt := range opts {
		opt(probe)
	}

	p := &Project{config: config, store: probe.store}
	if p.store == nil {
		store, err := config.OpenStore()
		if err != nil {
			return nil, err
		}
		p.store = store
		p.ownsStore = store != nil
	}

	all := append([]Option{}, opts...)
	all = append(all,
		WithTarget(config.Target),
		WithSourceRoot(config.SourceDir()),
		WithStore(p.store),
	)
	compiler, err := New(all...)
	if err != nil {
		p.Close()
		return nil, err
	}
	p.compiler = compiler
	p.logger = compiler.logger
	return p, nil
}

// Config returns the project configuration
func (p *Project) Config() *Config {
	return p.config
}

// Compiler returns the compiler the project builds with
func (p *Project) Compiler() *Compiler {
	return p.compiler
}

// Close releases the store the project opened itself
func (p *Project) Close() error {
	if p.ownsStore && p.store != nil {
		return p.store.Close()
	}
	return nil
}

// Discover returns the included source paths relative to the source
// root, slash separated and sorted
func (p *Project) Discover() ([]string, error) {
	root := p.config.SourceDir()
	fsys := os.DirFS(root)

	seen := make(map[string]struct{})
	var paths []string
	for _, pattern := range p.config.Include {
		matches, err := doublestar.Glob(fsys, pattern)
		if err != nil {
			return nil, NewIOError(ErrMsgReadSource, root, err)
		}
		for _, m := range matches {
			if _, dup := seen[m]; dup {
				continue
			}
			info, err := os.Stat(filepath.Join(root, filepath.FromSlash(m)))
			if err != nil || info.IsDir() {
				continue
			}
			seen[m] = struct{}{}
			paths = append(paths, m)
		}
	}
	sort.Strings(paths)
	return paths, nil
}

// OutputPath returns where the module for rel is written
func (p *Project) OutputPath(rel string) string {
	base := strings.TrimSuffix(rel, filepath.Ext(rel))
	return filepath.Join(p.config.OutputDir(), filepath.FromSlash(base)+OutputExtension)
}

// BuildAll compiles every included file. A failing file is recorded in
// the report and does not stop the others; the returned error is only
// set when discovery fails or ctx ends.
func (p *Project) BuildAll(ctx context.Context) (*BuildReport, error) {
	paths, err := p.Discover()
	if err != nil {
		return nil, err
	}
	return p.BuildFiles(ctx, paths)
}

// BuildFiles compiles the given source paths, relative to the source root
func (p *Project) BuildFiles(ctx context.Context, paths []string) (*BuildReport, error) {
	start := time.Now()
	p.logger.Info(LogMsgProjectStart,
		zap.String(LogFieldPath, p.config.SourceDir()),
		zap.Int(LogFieldFiles, len(paths)))

	report := &BuildReport{Files: make([]FileResult, 0, len(paths))}
	for _, rel := range paths {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		result := p.buildFile(ctx, rel)
		if result.OK() {
			p.logger.Info(LogMsgProjectFile,
				zap.String(LogFieldPath, rel),
				zap.Duration(LogFieldDuration, result.Duration))
		} else {
			p.logger.Warn(LogMsgProjectFileFail,
				zap.String(LogFieldPath, rel),
				zap.Error(result.Err))
		}
		report.Files = append(report.Files, result)
	}

	report.Duration = time.Since(start)
	p.logger.Info(LogMsgProjectDone,
		zap.Int(LogFieldFiles, len(report.Files)),
		zap.Int(LogFieldFailed, len(report.Failed())),
		zap.Duration(LogFieldDuration, report.Duration))
	return report, nil
}

func (p *Project) buildFile(ctx context.Context, rel string) (result FileResult) {
	start := time.Now()
	result.Path = rel
	defer func() { result.Duration = time.Since(start) }()

	sourcePath := filepath.Join(p.config.SourceDir(), filepath.FromSlash(rel))
	data, err := os.ReadFile(sourcePath)
	if err != nil {
		result.Err = NewIOError(ErrMsgReadSource, sourcePath, err)
		return result
	}
	input := string(data)

	chunk, err := p.compiler.BuildNamed(ctx, rel, input)
	if err != nil {
		result.Err = err
		return result
	}

	out := p.OutputPath(rel)
	if err := os.MkdirAll(filepath.Dir(out), FilesystemDirPermissions); err != nil {
		result.Err = NewIOError(ErrMsgWriteOutput, out, err)
		return result
	}

	code := chunk.Source
	if p.config.SourceMaps {
		mapPath := out + SourceMapExtension
		sourceRef := filepath.Base(sourcePath)
		if r, err := filepath.Rel(filepath.Dir(out), sourcePath); err == nil {
			sourceRef = filepath.ToSlash(r)
		}

		data, err := chunk.MarshalSourceMap(filepath.Base(out), sourceRef, input)
		if err != nil {
			result.Err = err
			return result
		}
		if err := os.WriteFile(mapPath, data, FilesystemFilePermissions); err != nil {
			result.Err = NewIOError(ErrMsgWriteOutput, mapPath, err)
			return result
		}
		code += SourceMapURLComment(filepath.Base(mapPath))
		result.SourceMap = mapPath
	}

	if err := os.WriteFile(out, []byte(code), FilesystemFilePermissions); err != nil {
		result.Err = NewIOError(ErrMsgWriteOutput, out, err)
		return result
	}
	result.Output = out
	return result
}
