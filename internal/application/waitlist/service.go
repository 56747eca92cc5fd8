package waitlist

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/400brands/brand-doctor/internal/application"
	domain "github.com/400brands/brand-doctor/internal/domain/waitlist"
	"github.com/400brands/brand-doctor/internal/metrics"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Service implements the waitlist use cases
type Service struct {
	Repo  domain.Repository
	Clock application.Clock
}

// Join validates the address and stores a pending entry. Duplicate detection
// is left to the store's unique constraint.
func (s *Service) Join(ctx context.Context, email string) (*domain.Entry, error) {
	normalized, err := domain.NormalizeEmail(email)
	if err != nil {
		metrics.WaitlistSignups.WithLabelValues("invalid").Inc()
		return nil, err
	}

	e := &domain.Entry{
		ID:        uuid.New().String(),
		Email:     normalized,
		Status:    domain.StatusPending,
		CreatedAt: s.Clock.Now(),
	}
	if err := s.Repo.Insert(ctx, e); err != nil {
		if errors.Is(err, domain.ErrAlreadyOnWaitlist) {
			metrics.WaitlistSignups.WithLabelValues("duplicate").Inc()
			return nil, domain.ErrAlreadyOnWaitlist
		}
		metrics.WaitlistSignups.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("waitlist insert: %w", err)
	}

	metrics.WaitlistSignups.WithLabelValues("created").Inc()
	zerolog.Ctx(ctx).Info().Str("id", e.ID).Msg("waitlist signup")
	return e, nil
}

// List returns one page of entries, newest first, with totals.
func (s *Service) List(ctx context.Context, page, pageSize int) (*domain.Page, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}

	entries, err := s.Repo.List(ctx, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, fmt.Errorf("waitlist list: %w", err)
	}
	st, err := s.Repo.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("waitlist stats: %w", err)
	}

	totalPages := int((st.Total + int64(pageSize) - 1) / int64(pageSize))
	return &domain.Page{
		Data:       entries,
		Page:       page,
		PageSize:   pageSize,
		Total:      st.Total,
		TotalPages: totalPages,
	}, nil
}

// Stats returns the admin counters.
func (s *Service) Stats(ctx context.Context) (domain.Stats, error) {
	return s.Repo.Stats(ctx)
}
