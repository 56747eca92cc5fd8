package waitlist

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/400brands/brand-doctor/internal/application"
	domain "github.com/400brands/brand-doctor/internal/domain/waitlist"
)

type mockRepo struct{ mock.Mock }

func (m *mockRepo) Insert(ctx context.Context, e *domain.Entry) error {
	return m.Called(ctx, e).Error(0)
}

func (m *mockRepo) List(ctx context.Context, limit, offset int) ([]*domain.Entry, error) {
	args := m.Called(ctx, limit, offset)
	out, _ := args.Get(0).([]*domain.Entry)
	return out, args.Error(1)
}

func (m *mockRepo) Stats(ctx context.Context) (domain.Stats, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.Stats), args.Error(1)
}

func (m *mockRepo) Ping(ctx context.Context) error { return m.Called(ctx).Error(0) }

var now = time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)

func TestJoin(t *testing.T) {
	repo := &mockRepo{}
	repo.On("Insert", mock.Anything, mock.MatchedBy(func(e *domain.Entry) bool {
		return e.Email == "ada@example.com" && e.Status == domain.StatusPending && e.CreatedAt.Equal(now) && e.ID != ""
	})).Return(nil)

	svc := &Service{Repo: repo, Clock: application.FixedClock{T: now}}
	e, err := svc.Join(context.Background(), " Ada@Example.com ")

	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", e.Email)
	repo.AssertExpectations(t)
}

func TestJoin_InvalidSkipsStore(t *testing.T) {
	repo := &mockRepo{}
	svc := &Service{Repo: repo, Clock: application.FixedClock{T: now}}

	_, err := svc.Join(context.Background(), "not-an-email")
	assert.Equal(t, domain.ErrInvalidEmail, err)

	_, err = svc.Join(context.Background(), "")
	assert.Equal(t, domain.ErrEmptyEmail, err)

	repo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestJoin_Duplicate(t *testing.T) {
	repo := &mockRepo{}
	repo.On("Insert", mock.Anything, mock.Anything).Return(domain.ErrAlreadyOnWaitlist).Once()

	svc := &Service{Repo: repo, Clock: application.FixedClock{T: now}}
	_, err := svc.Join(context.Background(), "ada@example.com")

	assert.Equal(t, domain.ErrAlreadyOnWaitlist, err)
	assert.Equal(t, "This email is already on our waitlist!", err.Error())
}

func TestJoin_StoreError(t *testing.T) {
	repo := &mockRepo{}
	repo.On("Insert", mock.Anything, mock.Anything).Return(errors.New("conn refused"))

	svc := &Service{Repo: repo, Clock: application.FixedClock{T: now}}
	_, err := svc.Join(context.Background(), "ada@example.com")

	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrAlreadyOnWaitlist)
}

func TestList(t *testing.T) {
	repo := &mockRepo{}
	entries := []*domain.Entry{{ID: "1", Email: "a@b.co"}}
	repo.On("List", mock.Anything, 100, 100).Return(entries, nil)
	repo.On("Stats", mock.Anything).Return(domain.Stats{Total: 250, Pending: 250}, nil)

	svc := &Service{Repo: repo}
	page, err := svc.List(context.Background(), 2, 500)

	require.NoError(t, err)
	assert.Equal(t, 2, page.Page)
	assert.Equal(t, MaxPageSize, page.PageSize)
	assert.Equal(t, int64(250), page.Total)
	assert.Equal(t, 3, page.TotalPages)
	assert.Equal(t, entries, page.Data)
}

func TestList_Defaults(t *testing.T) {
	repo := &mockRepo{}
	repo.On("List", mock.Anything, DefaultPageSize, 0).Return([]*domain.Entry{}, nil)
	repo.On("Stats", mock.Anything).Return(domain.Stats{}, nil)

	svc := &Service{Repo: repo}
	page, err := svc.List(context.Background(), 0, 0)

	require.NoError(t, err)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 0, page.TotalPages)
}
