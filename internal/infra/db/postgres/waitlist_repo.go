package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"

	domain "github.com/400brands/brand-doctor/internal/domain/waitlist"
)

// unique_violation
const uniqueViolation = pq.ErrorCode("23505")

type WaitlistRepository struct{ db *sql.DB }

func NewWaitlistRepository(db *sql.DB) *WaitlistRepository { return &WaitlistRepository{db: db} }

func (r *WaitlistRepository) Insert(ctx context.Context, e *domain.Entry) error {
	const q = `INSERT INTO waitlist (id, email, status, created_at) VALUES ($1,$2,$3,$4);`

	status := e.Status
	if status == "" {
		status = domain.StatusPending
	}
	created := e.CreatedAt
	if created.IsZero() {
		created = time.Now().UTC()
	}

	_, err := r.db.ExecContext(ctx, q, e.ID, e.Email, status, created)
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return domain.ErrAlreadyOnWaitlist
	}
	return err
}

func (r *WaitlistRepository) List(ctx context.Context, limit, offset int) ([]*domain.Entry, error) {
	const q = `
SELECT id, email, status, created_at
FROM waitlist
ORDER BY created_at DESC, id DESC
LIMIT $1 OFFSET $2;`

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

func (r *WaitlistRepository) Ping(ctx context.Context) error { return r.db.PingContext(ctx) }
