package repository

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"path/filepath"
	"strings"
	"time"

	errorvalues "github.com/limbo/habitflow/internal/error_values"
	"github.com/limbo/habitflow/pkg/entity"
	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS snapshots (
    identity   TEXT PRIMARY KEY,
    data       TEXT NOT NULL,
    created_at INTEGER NOT NULL,
    updated_at INTEGER NOT NULL
);`

// SQLiteSnapshotsRepository keeps snapshots in a local SQLite file, the
// client-side storage used when the app runs on a single device.
type SQLiteSnapshotsRepository struct {
	db *sql.DB
}

func NewSQLiteSnapshotsRepo(path string) (*SQLiteSnapshotsRepository, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("sqlite path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, errors.New("opening sqlite db error: " + err.Error())
	}
	// one connection serializes every read-modify-write
	db.SetMaxOpenConns(1)
	if err = db.Ping(); err != nil {
		_ = db.Close()
		return nil, errors.New("pinging sqlite db error: " + err.Error())
	}
	if _, err = db.Exec(sqliteSchema); err != nil {
		_ = db.Close()
		return nil, errors.New("creating sqlite schema error: " + err.Error())
	}
	return &SQLiteSnapshotsRepository{db: db}, nil
}

func (r *SQLiteSnapshotsRepository) Close() error {
	return r.db.Close()
}

func (r *SQLiteSnapshotsRepository) Create(ctx context.Context, s *entity.UserSnapshot) error {
	if s == nil {
		return errors.New("snapshot is nil")
	}
	data, err := entity.MarshalSnapshot(s)
	if err != nil {
		return storageError("encoding snapshot", err)
	}
	now := time.Now().UnixMilli()
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO snapshots (identity, data, created_at, updated_at) VALUES (?, ?, ?, ?);`,
		s.Identity, string(data), now, now,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return errorvalues.ErrUserExists
		}
		return storageError("creating snapshot", err)
	}
	return nil
}

func (r *SQLiteSnapshotsRepository) Load(ctx context.Context, identity string) (*entity.UserSnapshot, error) {
	return loadSQL(ctx, r.db, identity)
}

func (r *SQLiteSnapshotsRepository) Save(ctx context.Context, s *entity.UserSnapshot) error {
	if s == nil {
		return errors.New("snapshot is nil")
	}
	return saveSQL(ctx, r.db, s)
}

func (r *SQLiteSnapshotsRepository) Update(ctx context.Context, identity string, fn UpdateFunc) (*entity.UserSnapshot, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, storageError("beginning transaction", err)
	}
	s, err := loadSQL(ctx, tx, identity)
	if err == nil {
		err = fn(s)
	}
	if err == nil {
		err = saveSQL(ctx, tx, s)
	}
	if err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			log.Println("snapshot update rollback error: " + rbErr.Error())
		}
		return nil, err
	}
	if err = tx.Commit(); err != nil {
		return nil, storageError("committing snapshot", err)
	}
	return s, nil
}

func (r *SQLiteSnapshotsRepository) Delete(ctx context.Context, identity string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM snapshots WHERE identity = ?;`, identity)
	if err != nil {
		return storageError("deleting snapshot", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errorvalues.ErrUserNotFound
	}
	return nil
}

type sqlExecutor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func loadSQL(ctx context.Context, db sqlExecutor, identity string) (*entity.UserSnapshot, error) {
	var data string
	row := db.QueryRowContext(ctx, `SELECT data FROM snapshots WHERE identity = ?;`, identity)
	if err := row.Scan(&data); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errorvalues.ErrUserNotFound
		}
		return nil, storageError("loading snapshot", err)
	}
	s, err := entity.UnmarshalSnapshot([]byte(data))
	if err != nil {
		return nil, storageError("decoding snapshot", err)
	}
	return s, nil
}

func saveSQL(ctx context.Context, db sqlExecutor, s *entity.UserSnapshot) error {
	data, err := entity.MarshalSnapshot(s)
	if err != nil {
		return storageError("encoding snapshot", err)
	}
	res, err := db.ExecContext(ctx,
		`UPDATE snapshots SET data = ?, updated_at = ? WHERE identity = ?;`,
		string(data), time.Now().UnixMilli(), s.Identity,
	)
	if err != nil {
		return storageError("saving snapshot", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errorvalues.ErrUserNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
			return true
		}
	}
	return strings.Contains(strings.ToLower(err.Error()), "unique constraint failed")
}
