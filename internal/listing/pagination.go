package listing

// Cursor points at an adjacent result page.
type Cursor struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// Pagination carries next/prev cursors. A cursor is omitted from the
// JSON output when the corresponding page does not exist.
type Pagination struct {
	Next *Cursor `json:"next,omitempty"`
	Prev *Cursor `json:"prev,omitempty"`
}

// NewPagination computes the next/prev cursors for a window over total
// matching rows. next exists iff endIndex < total; prev exists iff
// startIndex > 0. Windows past the end of the result set are not errors.
func NewPagination(page, limit, total int) Pagination {
	startIndex := (page - 1) * limit
	endIndex := page * limit

	var p Pagination
	if endIndex < total {
		p.Next = &Cursor{Page: page + 1, Limit: limit}
	}
	if startIndex > 0 {
		p.Prev = &Cursor{Page: page - 1, Limit: limit}
	}
	return p
}
