package debrix

import (
	"context"
	"sync"
)

// MemoryStore is an in-memory ArtifactStore. Contents are lost when the
// process exits.
type MemoryStore struct {
	mu        sync.RWMutex
	artifacts map[string]*Artifact
	closed    bool
}

// MemoryStoreDriver opens MemoryStores
type MemoryStoreDriver struct{}

func init() {
	RegisterStoreDriver(StoreDriverNameMemory, &MemoryStoreDriver{})
}

// Open creates a new MemoryStore. The dsn is ignored.
func (d *MemoryStoreDriver) Open(dsn string) (ArtifactStore, error) {
	return NewMemoryStore(), nil
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{artifacts: make(map[string]*Artifact)}
}

// Get returns a copy of the artifact stored under key
func (s *MemoryStore) Get(ctx context.Context, key string) (*Artifact, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, NewStoreClosedError()
	}
	a, ok := s.artifacts[key]
	if !ok {
		return nil, NewArtifactNotFoundError(key)
	}
	return copyArtifact(a), nil
}

// Put stores a copy of artifact
func (s *MemoryStore) Put(ctx context.Context, artifact *Artifact) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if artifact == nil {
		return &StoreError{Message: ErrMsgNilArtifact}
	}
	if err := validateArtifactKey(artifact.Key); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return NewStoreClosedError()
	}
	s.artifacts[artifact.Key] = copyArtifact(artifact)
	return nil
}

// Delete removes the artifact stored under key
func (s *MemoryStore) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return NewStoreClosedError()
	}
	if _, ok := s.artifacts[key]; !ok {
		return NewArtifactNotFoundError(key)
	}
	delete(s.artifacts, key)
	return nil
}

// List returns copies of the matching artifacts, newest first
func (s *MemoryStore) List(ctx context.Context, query *ArtifactQuery) ([]*Artifact, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, NewStoreClosedError()
	}

	out := make([]*Artifact, 0, len(s.artifacts))
	for _, a := range s.artifacts {
		if matchArtifact(a, query) {
			out = append(out, copyArtifact(a))
		}
	}
	return pageArtifacts(out, query), nil
}

// Close drops all artifacts
func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	s.artifacts = nil
	return nil
}
