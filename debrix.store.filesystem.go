package debrix

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Filesystem store layout constants
const (
	FilesystemDirPermissions  = 0o755
	FilesystemFilePermissions = 0o644
	filesystemArtifactSuffix  = ".json"
	filesystemTempPattern     = ".artifact-*"
	filesystemShardLength     = 2
)

// FilesystemStore keeps artifacts as JSON files, sharded by the first two
// characters of the key:
//
//	<root>/
//	  3f/
//	    3f9a...e1.json
//	  c0/
//	    c04b...7d.json
//
// Writes go through a temporary file and a rename, so readers never see a
// partial artifact.
type FilesystemStore struct {
	mu     sync.RWMutex
	root   string
	closed bool
}

// FilesystemStoreDriver opens FilesystemStores
type FilesystemStoreDriver struct{}

func init() {
	RegisterStoreDriver(StoreDriverNameFilesystem, &FilesystemStoreDriver{})
}

// Open creates a FilesystemStore rooted at the directory dsn
func (d *FilesystemStoreDriver) Open(dsn string) (ArtifactStore, error) {
	return NewFilesystemStore(dsn)
}

// NewFilesystemStore creates a store rooted at root, creating the
// directory when missing
func NewFilesystemStore(root string) (*FilesystemStore, error) {
	if root == "" {
		return nil, &StoreError{Message: ErrMsgInvalidStoreRoot}
	}
	if err := os.MkdirAll(root, FilesystemDirPermissions); err != nil {
		return nil, &StoreError{Message: ErrMsgCreateStoreDir, Key: root, Cause: err}
	}
	return &FilesystemStore{root: root}, nil
}

// Root returns the store directory
func (s *FilesystemStore) Root() string {
	return s.root
}

func (s *FilesystemStore) path(key string) string {
	return filepath.Join(s.root, key[:filesystemShardLength], key+filesystemArtifactSuffix)
}

// Get reads the artifact stored under key
func (s *FilesystemStore) Get(ctx context.Context, key string) (*Artifact, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := validateArtifactKey(key); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, NewStoreClosedError()
	}
	return s.load(s.path(key), key)
}

func (s *FilesystemStore) load(path, key string) (*Artifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, NewArtifactNotFoundError(key)
		}
		return nil, &StoreError{Message: ErrMsgReadArtifact, Key: key, Cause: err}
	}

	var a Artifact
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, &StoreError{Message: ErrMsgReadArtifact, Key: key, Cause: err}
	}
	if a.Mappings == nil {
		a.Mappings = []Mapping{}
	}
	return &a, nil
}

// Put writes artifact, replacing any previous file for its key
func (s *FilesystemStore) Put(ctx context.Context, artifact *Artifact) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if artifact == nil {
		return &StoreError{Message: ErrMsgNilArtifact}
	}
	if err := validateArtifactKey(artifact.Key); err != nil {
		return err
	}

	data, err := json.MarshalIndent(artifact, "", "  ")
	if err != nil {
		return &StoreError{Message: ErrMsgWriteArtifact, Key: artifact.Key, Cause: err}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return NewStoreClosedError()
	}

	target := s.path(artifact.Key)
	dir := filepath.Dir(target)
	if err := os.MkdirAll(dir, FilesystemDirPermissions); err != nil {
		return &StoreError{Message: ErrMsgCreateStoreDir, Key: dir, Cause: err}
	}
	if err := writeFileAtomic(dir, target, data); err != nil {
		return &StoreError{Message: ErrMsgWriteArtifact, Key: artifact.Key, Cause: err}
	}
	return nil
}

// writeFileAtomic writes data to a temporary file in dir and renames it
// over target
func writeFileAtomic(dir, target string, data []byte) error {
	tmp, err := os.CreateTemp(dir, filesystemTempPattern)
	if err != nil {
		return err
	}
	name := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(name)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(name)
		return err
	}
	if err := os.Chmod(name, FilesystemFilePermissions); err != nil {
		os.Remove(name)
		return err
	}
	if err := os.Rename(name, target); err != nil {
		os.Remove(name)
		return err
	}
	return nil
}

// Delete removes the file stored under key
func (s *FilesystemStore) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := validateArtifactKey(key); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return NewStoreClosedError()
	}
	if err := os.Remove(s.path(key)); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return NewArtifactNotFoundError(key)
		}
		return &StoreError{Message: ErrMsgDeleteArtifact, Key: key, Cause: err}
	}
	return nil
}

// List reads every artifact file and returns the matching ones, newest
// first
func (s *FilesystemStore) List(ctx context.Context, query *ArtifactQuery) ([]*Artifact, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, NewStoreClosedError()
	}

	shards, err := os.ReadDir(s.root)
	if err != nil {
		return nil, &StoreError{Message: ErrMsgReadArtifact, Key: s.root, Cause: err}
	}

	out := []*Artifact{}
	for _, shard := range shards {
		if !shard.IsDir() || len(shard.Name()) != filesystemShardLength {
			continue
		}
		entries, err := os.ReadDir(filepath.Join(s.root, shard.Name()))
		if err != nil {
			continue
		}
		for _, entry := range entries {
			name := entry.Name()
			if entry.IsDir() || !strings.HasSuffix(name, filesystemArtifactSuffix) {
				continue
			}
			key := strings.TrimSuffix(name, filesystemArtifactSuffix)
			if validateArtifactKey(key) != nil {
				continue
			}
			a, err := s.load(filepath.Join(s.root, shard.Name(), name), key)
			if err != nil {
				continue
			}
			if matchArtifact(a, query) {
				out = append(out, a)
			}
		}
	}
	return pageArtifacts(out, query), nil
}

// Close marks the store closed. Files stay on disk.
func (s *FilesystemStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	return nil
}
