package mysql

import (
	"context"
	"database/sql"
	"time"

	domain "github.com/400brands/brand-doctor/internal/domain/waitlist"
)

type WaitlistRepository struct {
	db *sql.DB
}

func NewWaitlistRepository(db *sql.DB) *WaitlistRepository {
	return &WaitlistRepository{db: db}
}

// Insert adds an entry. The unique key on email reports duplicates.
func (r *WaitlistRepository) Insert(ctx context.Context, e *domain.Entry) error {
	const q = `INSERT INTO waitlist (id, email, status, created_at) VALUES (?,?,?,?);`

	created := e.CreatedAt
	if created.IsZero() {
		created = time.Now().UTC()
	}
	_, err := r.db.ExecContext(ctx, q, e.ID, e.Email, statusOrPending(e.Status), created)
	if isDuplicate(err) {
		return domain.ErrAlreadyOnWaitlist
	}
	return err
}

// List newest first
func (r *WaitlistRepository) List(ctx context.Context, limit, offset int) ([]*domain.Entry, error) {
	const q = `
SELECT id, email, status, created_at
FROM waitlist
ORDER BY created_at DESC, id DESC
LIMIT ? OFFSET ?;`

	rows, err := r.db.QueryContext(ctx, q, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*domain.Entry, 0, limit)
	for rows.Next() {
		var e domain.Entry
		if err := rows.Scan(&e.ID, &e.Email, &e.Status, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, &e)
	}
	return out, rows.Err()
}

// Stats counts entries per status
func (r *WaitlistRepository) Stats(ctx context.Context) (domain.Stats, error) {
	const q = `SELECT status, COUNT(*) FROM waitlist GROUP BY status;`

	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return domain.Stats{}, err
	}
	defer rows.Close()

	var st domain.Stats
	for rows.Next() {
		var status string
		var n int64
		if err := rows.Scan(&status, &n); err != nil {
			return domain.Stats{}, err
		}
		st.Add(domain.Status(status), n)
	}
	return st, rows.Err()
}

func (r *WaitlistRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
