package waitlist

// Page is a paginated listing with metadata
type Page struct {
	Data       []*Entry `json:"data"`
	Page       int      `json:"page"`
	PageSize   int      `json:"pageSize"`
	Total      int64    `json:"totalItems"`
	TotalPages int      `json:"totalPages"`
}
