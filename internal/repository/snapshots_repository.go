package repository

import (
	"context"
	"errors"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	errorvalues "github.com/limbo/habitflow/internal/error_values"
	"github.com/limbo/habitflow/pkg/cleanup"
	"github.com/limbo/habitflow/pkg/entity"
)

// SnapshotsRepository keeps one JSONB document per identity in PostgreSQL.
type SnapshotsRepository struct {
	conn PgConnection
}

func NewSnapshotsRepo(cfg DBConfig) *SnapshotsRepository {
	pool, err := pgxpool.New(context.Background(), cfg.ConnString())
	if err != nil {
		log.Fatal("creating connection for snapshotsRepo error: " + err.Error())
	}
	err = pool.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for snapshotsRepo: " + err.Error())
	}
	cleanup.Register(&cleanup.Job{
		Name: "closing pgxpool",
		F: func() error {
			pool.Close()
			return nil
		},
	})
	return &SnapshotsRepository{
		conn: pool,
	}
}

func NewSnapshotsRepoWithConn(conn PgConnection) *SnapshotsRepository {
	err := conn.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for snapshotsRepo: " + err.Error())
	}
	return &SnapshotsRepository{
		conn: conn,
	}
}

func (sr *SnapshotsRepository) Create(ctx context.Context, s *entity.UserSnapshot) error {
	if s == nil {
		return errors.New("snapshot is nil")
	}
	data, err := entity.MarshalSnapshot(s)
	if err != nil {
		return storageError("encoding snapshot", err)
	}
	_, err = sr.conn.Exec(ctx, `INSERT INTO snapshots (identity, data) VALUES ($1, $2);`, s.Identity, data)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			// Unique violation
			case "23505":
				return errorvalues.ErrUserExists
			}
		}
		return storageError("creating snapshot", err)
	}
	return nil
}

func (sr *SnapshotsRepository) Load(ctx context.Context, identity string) (*entity.UserSnapshot, error) {
	var data []byte
	row := sr.conn.QueryRow(ctx, `SELECT data FROM snapshots WHERE identity = $1;`, identity)
	if err := row.Scan(&data); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorvalues.ErrUserNotFound
		}
		return nil, storageError("loading snapshot", err)
	}
	s, err := entity.UnmarshalSnapshot(data)
	if err != nil {
		return nil, storageError("decoding snapshot", err)
	}
	return s, nil
}

func (sr *SnapshotsRepository) Save(ctx context.Context, s *entity.UserSnapshot) error {
	if s == nil {
		return errors.New("snapshot is nil")
	}
	data, err := entity.MarshalSnapshot(s)
	if err != nil {
		return storageError("encoding snapshot", err)
	}
	ct, err := sr.conn.Exec(ctx, `UPDATE snapshots SET data = $1, updated_at = NOW() WHERE identity = $2;`, data, s.Identity)
	if err != nil {
		return storageError("saving snapshot", err)
	}
	if ct.RowsAffected() == 0 {
		return errorvalues.ErrUserNotFound
	}
	return nil
}

// Update locks the row for the duration of fn, so concurrent updates of the
// same identity are applied one after another.
func (sr *SnapshotsRepository) Update(ctx context.Context, identity string, fn UpdateFunc) (*entity.UserSnapshot, error) {
	tx, err := sr.conn.Begin(ctx)
	if err != nil {
		return nil, storageError("beginning transaction", err)
	}
	s, err := sr.updateInTx(ctx, tx, identity, fn)
	if err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			log.Println("snapshot update rollback error: " + rbErr.Error())
		}
		return nil, err
	}
	if err = tx.Commit(ctx); err != nil {
		return nil, storageError("committing snapshot", err)
	}
	return s, nil
}

func (sr *SnapshotsRepository) updateInTx(ctx context.Context, tx pgx.Tx, identity string, fn UpdateFunc) (*entity.UserSnapshot, error) {
	var data []byte
	row := tx.QueryRow(ctx, `SELECT data FROM snapshots WHERE identity = $1 FOR UPDATE;`, identity)
	if err := row.Scan(&data); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorvalues.ErrUserNotFound
		}
		return nil, storageError("loading snapshot", err)
	}
	s, err := entity.UnmarshalSnapshot(data)
	if err != nil {
		return nil, storageError("decoding snapshot", err)
	}
	if err = fn(s); err != nil {
		return nil, err
	}
	data, err = entity.MarshalSnapshot(s)
	if err != nil {
		return nil, storageError("encoding snapshot", err)
	}
	_, err = tx.Exec(ctx, `UPDATE snapshots SET data = $1, updated_at = NOW() WHERE identity = $2;`, data, identity)
	if err != nil {
		return nil, storageError("saving snapshot", err)
	}
	return s, nil
}

func (sr *SnapshotsRepository) Delete(ctx context.Context, identity string) error {
	ct, err := sr.conn.Exec(ctx, `DELETE FROM snapshots WHERE identity = $1;`, identity)
	if err != nil {
		return storageError("deleting snapshot", err)
	}
	if ct.RowsAffected() == 0 {
		return errorvalues.ErrUserNotFound
	}
	return nil
}
