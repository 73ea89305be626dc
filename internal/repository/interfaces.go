package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	errorvalues "github.com/limbo/habitflow/internal/error_values"
	"github.com/limbo/habitflow/pkg/entity"
)

//go:generate mockgen -destination=mocks/mock_repository.go -package=mocks . SnapshotsRepositoryI,SessionRepositoryI

// UpdateFunc mutates a snapshot in place. Returning an error aborts the update
// and nothing is written.
type UpdateFunc func(s *entity.UserSnapshot) error

type SnapshotsRepositoryI interface {
	// Stores snapshot of a newly registered identity. ErrUserExists if identity is taken
	Create(ctx context.Context, s *entity.UserSnapshot) error
	// Loads whole snapshot of identity. ErrUserNotFound if absent
	Load(ctx context.Context, identity string) (*entity.UserSnapshot, error)
	// Replaces stored snapshot with s (last writer wins)
	Save(ctx context.Context, s *entity.UserSnapshot) error
	// Read-modify-write of one snapshot as a single atomic step. Returns the stored result
	Update(ctx context.Context, identity string, fn UpdateFunc) (*entity.UserSnapshot, error)
	// Deletes snapshot of identity
	Delete(ctx context.Context, identity string) error
}

// SessionRepositoryI keeps the identity signed in on a client across restarts.
type SessionRepositoryI interface {
	// Returns identity bound to clientID. ErrNoSession if there is none
	LoadCurrentIdentity(ctx context.Context, clientID string) (string, error)
	SetCurrentIdentity(ctx context.Context, clientID, identity string) error
	ClearCurrentIdentity(ctx context.Context, clientID string) error
}

type DBConfig interface {
	ConnString() string
}

type PgConnection interface {
	Ping(ctx context.Context) error
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Begin(ctx context.Context) (pgx.Tx, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type PGCfg struct {
	Address  string
	Username string
	Password string
	DB       string
}

func (pgcfg *PGCfg) ConnString() string {
	return fmt.Sprintf("postgresql://%s:%s@%s/%s", pgcfg.Username, pgcfg.Password, pgcfg.Address, pgcfg.DB)
}

func storageError(op string, err error) error {
	return fmt.Errorf("%w: %s error: %v", errorvalues.ErrStorage, op, err)
}
