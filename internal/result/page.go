package result

// Pagination selects a window of a listing. A zero Limit means no limit.
type Pagination struct {
	Limit  int
	Offset int
}

// Page is a window of a listing together with the total row count.
// NextCursor is the offset of the following window, or nil when the
// window reaches the end of the listing or no limit was requested.
type Page[T any] struct {
	Data       []T   `json:"data"`
	Limit      int   `json:"limit,omitempty"`
	Offset     int   `json:"offset"`
	Total      int64 `json:"total"`
	NextCursor *int  `json:"nextCursor"`
}

// NewPage builds a page and computes its next cursor.
func NewPage[T any](data []T, p Pagination, total int64) Page[T] {
	if data == nil {
		data = []T{}
	}
	page := Page[T]{
		Data:   data,
		Limit:  p.Limit,
		Offset: p.Offset,
		Total:  total,
	}
	if p.Limit > 0 && total > int64(p.Offset+p.Limit) {
		next := p.Offset + p.Limit
		page.NextCursor = &next
	}
	return page
}
