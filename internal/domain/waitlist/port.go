package waitlist

import "context"

// Repository port. Insert must report ErrAlreadyOnWaitlist from the store's
// unique constraint on email.
type Repository interface {
	Insert(ctx context.Context, e *Entry) error
	List(ctx context.Context, limit, offset int) ([]*Entry, error)
	Stats(ctx context.Context) (Stats, error)
	Ping(ctx context.Context) error
}
