package waitlist

import "time"

// Status enum
type Status string

const (
	StatusPending  Status = "pending"
	StatusNotified Status = "notified"
	StatusLaunched Status = "launched"
)

// Entry is one waitlist signup.
type Entry struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// Stats are the counters shown on the admin dashboard.
type Stats struct {
	Total    int64 `json:"total"`
	Pending  int64 `json:"pending"`
	Notified int64 `json:"notified"`
	Launched int64 `json:"launched"`
}

// Add counts n entries with status s.
func (st *Stats) Add(s Status, n int64) {
	st.Total += n
	switch s {
	case StatusPending:
		st.Pending += n
	case StatusNotified:
		st.Notified += n
	case StatusLaunched:
		st.Launched += n
	}
}
