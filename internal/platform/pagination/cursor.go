package pagination

import (
	"encoding/base64"
	"errors"
	"strconv"
	"strings"
)

var (
	// ErrInvalidCursor indicates the cursor could not be decoded.
	ErrInvalidCursor = errors.New("invalid cursor format")
	// ErrCursorType indicates a cursor issued for another resource.
	ErrCursorType = errors.New("cursor type mismatch")
)

// Cursor is an opaque pagination position: the resource type and the key of
// the last item on the previous page.
type Cursor struct {
	Type  string
	Value string
}

// Encode returns a URL-safe Base64 representation.
func (c Cursor) Encode() string {
	return base64.RawURLEncoding.EncodeToString([]byte(c.Type + ":" + c.Value))
}

// DecodeCursor parses an encoded cursor. An empty string is the first page.
func DecodeCursor(s string) (Cursor, error) {
	if s == "" {
		return Cursor{}, nil
	}
	b, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return Cursor{}, ErrInvalidCursor
	}
	typ, value, ok := strings.Cut(string(b), ":")
	if !ok || typ == "" {
		return Cursor{}, ErrInvalidCursor
	}
	return Cursor{Type: typ, Value: value}, nil
}

// AfterID decodes a cursor over numeric keys and returns the key to continue
// after. The first page yields 0.
func AfterID(s, cursorType string) (int64, error) {
	c, err := DecodeCursor(s)
	if err != nil {
		return 0, err
	}
	if c.Type == "" {
		return 0, nil
	}
	if c.Type != cursorType {
		return 0, ErrCursorType
	}
	id, err := strconv.ParseInt(c.Value, 10, 64)
	if err != nil || id < 0 {
		return 0, ErrInvalidCursor
	}
	return id, nil
}
