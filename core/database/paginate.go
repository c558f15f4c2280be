package database

import (
	"context"

	"ordered-sync/core/orderedsync"

	"gorm.io/gorm"
)

// DefaultPageSize is used when a paginated sequence is given no page size.
const DefaultPageSize = 500

// PageFunc loads up to limit rows ordered strictly after last.
// last is nil for the first page.
type PageFunc[T any] func(ctx context.Context, last *T, limit int) ([]T, error)

// Paginate returns a sequence that reads a table page by page with keyset
// pagination. Each page is fully read before it is yielded, so no cursor stays
// open while a sink writes to the same database. A short page ends the
// sequence; rows inserted behind the last key are never read back.
func Paginate[T any](pageSize int, fetch PageFunc[T]) *orderedsync.FuncSequence[T] {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	var (
		page []T
		pos  int
		last *T
		done bool
	)

	return orderedsync.FromFunc(func(ctx context.Context) (T, bool, error) {
		var zero T
		if pos >= len(page) {
			if done {
				return zero, false, nil
			}
			next, err := fetch(ctx, last, pageSize)
			if err != nil {
				return zero, false, err
			}
			page, pos = next, 0
			if len(next) < pageSize {
				done = true
			}
			if len(next) == 0 {
				return zero, false, nil
			}
		}

		item := page[pos]
		last = &page[pos]
		pos++
		return item, true, nil
	})
}

// ByteOrder returns column wrapped so that the database compares it byte by
// byte, which is the order Go uses for strings. MySQL's default collations are
// case-insensitive; SQLite compares TEXT with BINARY already.
func ByteOrder(db *gorm.DB, column string) string {
	if db.Dialector.Name() == DriverMySQL {
		return "BINARY " + column
	}
	return column
}
