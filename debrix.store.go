package debrix

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"sort"
	"sync"
	"time"
)

// Artifact is one compiled module kept by an ArtifactStore
type Artifact struct {
	// Key identifies the artifact; see ArtifactKey.
	Key string `json:"key"`

	// Name is the source name the module was compiled from.
	Name string `json:"name"`

	Target     Target    `json:"target"`
	SourceHash string    `json:"source_hash"`
	Source     string    `json:"source"`
	Code       string    `json:"code"`
	Mappings   []Mapping `json:"mappings"`
	CreatedAt  time.Time `json:"created_at"`
}

// Chunk returns the build output stored in the artifact
func (a *Artifact) Chunk() *Chunk {
	mappings := make([]Mapping, len(a.Mappings))
	copy(mappings, a.Mappings)
	return &Chunk{Source: a.Code, Mappings: mappings}
}

// NewArtifact creates an artifact for the output of compiling source.
// CreatedAt has microsecond precision so it survives every store.
func NewArtifact(name string, target Target, source string, chunk *Chunk) *Artifact {
	mappings := make([]Mapping, len(chunk.Mappings))
	copy(mappings, chunk.Mappings)
	return &Artifact{
		Key:        ArtifactKey(target, source),
		Name:       name,
		Target:     target,
		SourceHash: SourceHash(source),
		Source:     source,
		Code:       chunk.Source,
		Mappings:   mappings,
		CreatedAt:  time.Now().UTC().Truncate(time.Microsecond),
	}
}

// ArtifactQuery filters ArtifactStore.List. Zero values match everything.
type ArtifactQuery struct {
	Name   string
	Target *Target
	Limit  int
	Offset int
}

// ArtifactStore caches compiled modules by ArtifactKey.
// Implementations must be safe for concurrent use.
type ArtifactStore interface {
	// Get returns the artifact stored under key, or a StoreError for which
	// IsArtifactNotFound reports true.
	Get(ctx context.Context, key string) (*Artifact, error)

	// Put stores artifact, replacing any artifact with the same key.
	Put(ctx context.Context, artifact *Artifact) error

	// Delete removes the artifact stored under key.
	Delete(ctx context.Context, key string) error

	// List returns artifacts matching query, newest first.
	List(ctx context.Context, query *ArtifactQuery) ([]*Artifact, error)

	// Close releases resources. Further calls fail.
	Close() error
}

// StoreDriver opens ArtifactStores from a driver specific DSN
type StoreDriver interface {
	Open(dsn string) (ArtifactStore, error)
}

// ArtifactKey returns the cache key of compiling source for target.
// The compiler version is part of the key so upgrades invalidate caches.
func ArtifactKey(target Target, source string) string {
	h := sha256.New()
	h.Write([]byte(Version))
	h.Write([]byte{0})
	h.Write([]byte(target.String()))
	h.Write([]byte{0})
	h.Write([]byte(source))
	return hex.EncodeToString(h.Sum(nil))
}

// SourceHash returns the hex sha256 of source
func SourceHash(source string) string {
	sum := sha256.Sum256([]byte(source))
	return hex.EncodeToString(sum[:])
}

// Store driver names
const (
	StoreDriverNameMemory     = "memory"
	StoreDriverNameFilesystem = "filesystem"
	StoreDriverNamePostgres   = "postgres"
)

// Store error message constants
const (
	ErrMsgNilStoreDriver          = "store driver is nil"
	ErrMsgStoreDriverRegistered   = "store driver already registered"
	ErrMsgStoreDriverNotFound     = "store driver not found"
	ErrMsgStoreClosed             = "store is closed"
	ErrMsgArtifactNotFound        = "artifact not found"
	ErrMsgInvalidArtifactKey      = "invalid artifact key"
	ErrMsgNilArtifact             = "artifact is nil"
	ErrMsgInvalidStoreRoot        = "store root directory must not be empty"
	ErrMsgCreateStoreDir          = "failed to create store directory"
	ErrMsgReadArtifact            = "failed to read artifact"
	ErrMsgWriteArtifact           = "failed to write artifact"
	ErrMsgDeleteArtifact          = "failed to delete artifact"
	ErrMsgPostgresEmptyDSN        = "postgres dsn must not be empty"
	ErrMsgPostgresConnection      = "failed to connect to postgres"
	ErrMsgPostgresQuery           = "postgres query failed"
	ErrMsgPostgresMigration       = "postgres migration failed"
	ErrMsgPostgresAlreadyClosed   = "postgres store already closed"
	ErrMsgPostgresInvalidMappings = "stored mappings are not valid JSON"
)

var (
	storeDriversMu sync.RWMutex
	storeDrivers   = make(map[string]StoreDriver)
)

// RegisterStoreDriver registers a store driver by name. It is called from
// the drivers' init functions and panics on duplicates.
func RegisterStoreDriver(name string, driver StoreDriver) {
	storeDriversMu.Lock()
	defer storeDriversMu.Unlock()

	if driver == nil {
		panic(ErrMsgNilStoreDriver)
	}
	if _, exists := storeDrivers[name]; exists {
		panic(ErrMsgStoreDriverRegistered + ": " + name)
	}
	storeDrivers[name] = driver
}

// OpenStore opens a store with the named driver
func OpenStore(driverName, dsn string) (ArtifactStore, error) {
	storeDriversMu.RLock()
	driver, ok := storeDrivers[driverName]
	storeDriversMu.RUnlock()

	if !ok {
		return nil, &StoreError{Message: ErrMsgStoreDriverNotFound, Key: driverName}
	}
	return driver.Open(dsn)
}

// ListStoreDrivers returns the registered driver names, sorted
func ListStoreDrivers() []string {
	storeDriversMu.RLock()
	defer storeDriversMu.RUnlock()

	names := make([]string, 0, len(storeDrivers))
	for name := range storeDrivers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// StoreError is returned by ArtifactStore implementations
type StoreError struct {
	Message string
	Key     string
	Cause   error
}

// Error implements the error interface
func (e *StoreError) Error() string {
	msg := e.Message
	if e.Key != "" {
		msg += ": " + e.Key
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause
func (e *StoreError) Unwrap() error {
	return e.Cause
}

// NewArtifactNotFoundError creates the error returned for missing keys
func NewArtifactNotFoundError(key string) error {
	return &StoreError{Message: ErrMsgArtifactNotFound, Key: key}
}

// NewStoreClosedError creates the error returned after Close
func NewStoreClosedError() error {
	return &StoreError{Message: ErrMsgStoreClosed}
}

// IsArtifactNotFound reports whether err means the key is not stored
func IsArtifactNotFound(err error) bool {
	var se *StoreError
	return errors.As(err, &se) && se.Message == ErrMsgArtifactNotFound
}

// validateArtifactKey accepts the hex sha256 keys produced by ArtifactKey.
// Filesystem paths are derived from keys, so nothing else may pass.
func validateArtifactKey(key string) error {
	if len(key) != sha256.Size*2 {
		return &StoreError{Message: ErrMsgInvalidArtifactKey, Key: key}
	}
	if _, err := hex.DecodeString(key); err != nil {
		return &StoreError{Message: ErrMsgInvalidArtifactKey, Key: key, Cause: err}
	}
	return nil
}

func copyArtifact(a *Artifact) *Artifact {
	c := *a
	c.Mappings = make([]Mapping, len(a.Mappings))
	copy(c.Mappings, a.Mappings)
	return &c
}

// matchArtifact reports whether a passes the filters of query
func matchArtifact(a *Artifact, query *ArtifactQuery) bool {
	if query == nil {
		return true
	}
	if query.Name != "" && a.Name != query.Name {
		return false
	}
	if query.Target != nil && a.Target != *query.Target {
		return false
	}
	return true
}

// pageArtifacts sorts newest first and applies offset and limit
func pageArtifacts(artifacts []*Artifact, query *ArtifactQuery) []*Artifact {
	sort.Slice(artifacts, func(i, j int) bool {
		if !artifacts[i].CreatedAt.Equal(artifacts[j].CreatedAt) {
			return artifacts[i].CreatedAt.After(artifacts[j].CreatedAt)
		}
		return artifacts[i].Key < artifacts[j].Key
	})
	if query == nil {
		return artifacts
	}
	if query.Offset > 0 {
		if query.Offset >= len(artifacts) {
			return []*Artifact{}
		}
		artifacts = artifacts[query.Offset:]
	}
	if query.Limit > 0 && query.Limit < len(artifacts) {
		artifacts = artifacts[:query.Limit]
	}
	return artifacts
}
