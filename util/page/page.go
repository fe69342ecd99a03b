package page

import "shareit/util/apperr"

const (
	DefaultFrom = 0
	DefaultSize = 10
)

// Page is a resolved window over an ordered result set.
type Page struct {
	Offset int
	Limit  int
}

// New turns a from/size pair into a page window. from is snapped down to
// the start of the page that contains it.
func New(from, size int) (Page, error) {
	if from < 0 || size <= 0 {
		return Page{}, apperr.Validation("invalid pagination: from=%d size=%d", from, size)
	}
	idx := from / size
	return Page{Offset: idx * size, Limit: size}, nil
}
