package repository

import (
	"context"
	"errors"
	"sync"

	errorvalues "github.com/limbo/habitflow/internal/error_values"
	"github.com/limbo/habitflow/pkg/entity"
)

// MemorySnapshotsRepository stores encoded snapshots in a map. Callers never
// share memory with the store: every read decodes a fresh copy.
type MemorySnapshotsRepository struct {
	mu        sync.Mutex
	snapshots map[string][]byte
}

func NewMemorySnapshotsRepo() *MemorySnapshotsRepository {
	return &MemorySnapshotsRepository{
		snapshots: make(map[string][]byte),
	}
}

func (r *MemorySnapshotsRepository) Create(ctx context.Context, s *entity.UserSnapshot) error {
	if s == nil {
		return errors.New("snapshot is nil")
	}
	data, err := entity.MarshalSnapshot(s)
	if err != nil {
		return storageError("encoding snapshot", err)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.snapshots[s.Identity]; ok {
		return errorvalues.ErrUserExists
	}
	r.snapshots[s.Identity] = data
	return nil
}

func (r *MemorySnapshotsRepository) Load(ctx context.Context, identity string) (*entity.UserSnapshot, error) {
	r.mu.Lock()
	data, ok := r.snapshots[identity]
	r.mu.Unlock()
	if !ok {
		return nil, errorvalues.ErrUserNotFound
	}
	return decodeStored(data)
}

func (r *MemorySnapshotsRepository) Save(ctx context.Context, s *entity.UserSnapshot) error {
	if s == nil {
		return errors.New("snapshot is nil")
	}
	data, err := entity.MarshalSnapshot(s)
	if err != nil {
		return storageError("encoding snapshot", err)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.snapshots[s.Identity]; !ok {
		return errorvalues.ErrUserNotFound
	}
	r.snapshots[s.Identity] = data
	return nil
}

func (r *MemorySnapshotsRepository) Update(ctx context.Context, identity string, fn UpdateFunc) (*entity.UserSnapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	data, ok := r.snapshots[identity]
	if !ok {
		return nil, errorvalues.ErrUserNotFound
	}
	s, err := decodeStored(data)
	if err != nil {
		return nil, err
	}
	if err = fn(s); err != nil {
		return nil, err
	}
	data, err = entity.MarshalSnapshot(s)
	if err != nil {
		return nil, storageError("encoding snapshot", err)
	}
	r.snapshots[identity] = data
	return s, nil
}

func (r *MemorySnapshotsRepository) Delete(ctx context.Context, identity string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.snapshots[identity]; !ok {
		return errorvalues.ErrUserNotFound
	}
	delete(r.snapshots, identity)
	return nil
}

func decodeStored(data []byte) (*entity.UserSnapshot, error) {
	s, err := entity.UnmarshalSnapshot(data)
	if err != nil {
		return nil, storageError("decoding snapshot", err)
	}
	return s, nil
}

// MemorySessionRepository keeps client sessions in process memory.
type MemorySessionRepository struct {
	mu       sync.RWMutex
	sessions map[string]string
}

func NewMemorySessionRepo() *MemorySessionRepository {
	return &MemorySessionRepository{
		sessions: make(map[string]string),
	}
}

func (r *MemorySessionRepository) LoadCurrentIdentity(ctx context.Context, clientID string) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	identity, ok := r.sessions[clientID]
	if !ok {
		return "", errorvalues.ErrNoSession
	}
	return identity, nil
}

func (r *MemorySessionRepository) SetCurrentIdentity(ctx context.Context, clientID, identity string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[clientID] = identity
	return nil
}

func (r *MemorySessionRepository) ClearCurrentIdentity(ctx context.Context, clientID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, clientID)
	return nil
}
