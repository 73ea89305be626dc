package service_test

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/limbo/habitflow/internal/repository"
	"github.com/limbo/habitflow/internal/service"
	"github.com/limbo/habitflow/pkg/entity"
)

var now = time.Date(2026, time.January, 10, 12, 0, 0, 0, time.UTC)

func clock() time.Time {
	return now
}

type recordingPublisher struct {
	mu     sync.Mutex
	keys   []string
	events []any
	err    error
}

func (p *recordingPublisher) Publish(ctx context.Context, key string, event any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.keys = append(p.keys, key)
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) Close() error {
	return nil
}

var errBroker = errors.New("broker unavailable")

// seededRepo returns a memory store holding a fresh snapshot for identity.
func seededRepo(identity string) (*repository.MemorySnapshotsRepository, *entity.UserSnapshot) {
	repo := repository.NewMemorySnapshotsRepo()
	s := entity.NewUserSnapshot(identity, "", "pass_hash", now)
	if err := repo.Create(context.Background(), s); err != nil {
		panic(err)
	}
	return repo, s
}

func options(p *recordingPublisher) []service.Option {
	return []service.Option{service.WithClock(clock), service.WithPublisher(p)}
}
