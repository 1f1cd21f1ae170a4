// Package pagination implements keyset pagination for rows listed newest
// first by (timestamp, id).
package pagination

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

var ErrInvalidCursor = errors.New("invalid cursor")

// Cursor identifies the last row of a page. The next page holds rows that
// sort strictly after it: an older timestamp, or the same timestamp and a
// smaller id.
type Cursor struct {
	ID        uuid.UUID `json:"id"`
	Timestamp time.Time `json:"ts"`
}

func At(ts time.Time, id uuid.UUID) Cursor {
	return Cursor{ID: id, Timestamp: ts.UTC()}
}

// Encode returns the opaque, URL-safe form handed to clients.
func (c Cursor) Encode() string {
	data, _ := json.Marshal(c)
	return base64.RawURLEncoding.EncodeToString(data)
}

// DecodeCursor parses a cursor produced by Encode. An empty string is the
// first page and yields a nil cursor.
func DecodeCursor(encoded string) (*Cursor, error) {
	if encoded == "" {
		return nil, nil
	}

	data, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(encoded, "="))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCursor, err)
	}

	var c Cursor
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCursor, err)
	}
	if c.ID == uuid.Nil || c.Timestamp.IsZero() {
		return nil, fmt.Errorf("%w: missing position", ErrInvalidCursor)
	}
	return &c, nil
}

// NormalizeLimit clamps a requested page size to [1, MaxLimit], using
// DefaultLimit when none was given.
func NormalizeLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultLimit
	case limit > MaxLimit:
		return MaxLimit
	default:
		return limit
	}
}

// Page trims rows fetched with limit+1 to limit. When the extra row was
// present it also returns the encoded cursor of the last kept row.
func Page[T any](rows []T, limit int, position func(T) Cursor) ([]T, string) {
	if len(rows) <= limit || limit <= 0 {
		return rows, ""
	}
	rows = rows[:limit]
	return rows, position(rows[len(rows)-1]).Encode()
}
