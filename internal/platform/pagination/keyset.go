package pagination

import (
	"net/url"
	"strconv"
)

// Page is one page of a keyset listing.
type Page[T any] struct {
	Items      []T
	NextCursor string
	LinkHeader string
}

// Keyset builds a page from rows fetched with limit+1. The extra row only
// signals that another page exists and is dropped.
func Keyset[T any](
	rows []T,
	limit int,
	cursorType string,
	key func(T) string,
	baseURL string,
	query url.Values,
) Page[T] {
	items := rows
	var next string
	if limit > 0 && len(rows) > limit {
		items = rows[:limit]
		next = Cursor{Type: cursorType, Value: key(items[len(items)-1])}.Encode()
	}
	if items == nil {
		items = []T{}
	}

	q := cloneValues(query)
	q.Set("limit", strconv.Itoa(limit))
	return Page[T]{
		Items:      items,
		NextCursor: next,
		LinkHeader: BuildLinkHeader(baseURL, q, next),
	}
}
