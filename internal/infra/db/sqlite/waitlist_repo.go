package sqlite

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	domain "github.com/400brands/brand-doctor/internal/domain/waitlist"
)

// Fixed width so text ordering matches time ordering.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

const schema = `
CREATE TABLE IF NOT EXISTS waitlist (
	id         TEXT PRIMARY KEY,
	email      TEXT NOT NULL UNIQUE,
	status     TEXT NOT NULL DEFAULT 'pending',
	created_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_waitlist_created ON waitlist (created_at DESC);
`

// WaitlistRepository is a single-file store for local development and the CLI.
type WaitlistRepository struct {
	db *sqlx.DB
}

// Open creates the file (and its directory) when missing and applies the schema.
// Use ":memory:" for a throwaway database.
func Open(path string) (*WaitlistRepository, error) {
	dsn := path
	if path != ":memory:" {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create db dir: %w", err)
			}
		}
		dsn = path + "?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)"
	}

	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &WaitlistRepository{db: db}, nil
}

func (r *WaitlistRepository) Close() error { return r.db.Close() }

type entryRow struct {
	ID        string `db:"id"`
	Email     string `db:"email"`
	Status    string `db:"status"`
	CreatedAt string `db:"created_at"`
}

func (r *WaitlistRepository) Insert(ctx context.Context, e *domain.Entry) error {
	status := e.Status
	if status == "" {
		status = domain.StatusPending
	}
	created := e.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO waitlist (id, email, status, created_at) VALUES (?, ?, ?, ?)`,
		e.ID, e.Email, string(status), created.UTC().Format(timeLayout),
	)
	if err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return domain.ErrAlreadyOnWaitlist
	}
	return err
}

func (r *WaitlistRepository) List(ctx context.Context, limit, offset int) ([]*domain.Entry, error) {
	var rows []entryRow
	err := r.db.SelectContext(ctx, &rows,
		`SELECT id, email, status, created_at FROM waitlist ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`,
		limit, offset,
	)
	if err != nil {
		return nil, err
	}

	out := make([]*domain.Entry, 0, len(rows))
	for _, row := range rows {
		t, err := time.Parse(timeLayout, row.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("parse created_at for %s: %w", row.ID, err)
		}
		out = append(out, &domain.Entry{
			ID:        row.ID,
			Email:     row.Email,
			Status:    domain.Status(row.Status),
			CreatedAt: t,
		})
	}
	return out, nil
}

func (r *WaitlistRepository) Stats(ctx context.Context) (domain.Stats, error) {
	var rows []struct {
		Status string `db:"status"`
		N      int64  `db:"n"`
	}
	if err := r.db.SelectContext(ctx, &rows, `SELECT status, COUNT(*) AS n FROM waitlist GROUP BY status`); err != nil {
		return domain.Stats{}, err
	}
	var st domain.Stats
	for _, row := range rows {
		st.Add(domain.Status(row.Status), row.N)
	}
	return st, nil
}

func (r *WaitlistRepository) Ping(ctx context.Context) error { return r.db.PingContext(ctx) }
