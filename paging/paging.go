package paging

import (
	"context"
	"errors"
	"fmt"
)

const (
	defaultLimit = 256
	maxLimit     = 1024
)

// Result holds the items gathered by Collect
type Result[T any] struct {
	Items       []T  `json:"items"`
	Pages       int  `json:"pages"`
	HasNextPage bool `json:"has_next"`
}

// NormalizeLimit ensures that limit is within an acceptable range
func NormalizeLimit(limit int) int {
	if limit <= 0 || limit > maxLimit {
		return defaultLimit
	}
	return limit
}

// WalkFunc is called for every visited page
type WalkFunc[T any] func(page *Cursor[T]) error

// Walk visits start and then follows rel until the empty cursor is reached.
// maxPages caps the number of visited pages, 0 means no cap. Returning
// ErrStopWalk from fn ends the walk without error.
func Walk[T any](ctx context.Context, start *Cursor[T], rel Relation, maxPages int, fn WalkFunc[T]) error {
	page := start
	for visited := 0; page != nil && !page.IsEmpty(); visited++ {
		if maxPages > 0 && visited >= maxPages {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := fn(page); err != nil {
			if errors.Is(err, ErrStopWalk) {
				return nil
			}
			return err
		}
		next, err := page.Follow(ctx, rel)
		if err != nil {
			return fmt.Errorf("follow %s link: %w", rel, err)
		}
		page = next
	}
	return nil
}

// Collect follows next links from start gathering at most limit items
func Collect[T any](ctx context.Context, start *Cursor[T], limit int) (*Result[T], error) {
	limit = NormalizeLimit(limit)
	result := &Result[T]{Items: make([]T, 0)}

	err := Walk(ctx, start, Next, 0, func(page *Cursor[T]) error {
		result.Pages++
		items := page.Content()
		if room := limit - len(result.Items); len(items) > room {
			result.Items = append(result.Items, items[:room]...)
			result.HasNextPage = true
			return ErrStopWalk
		}
		result.Items = append(result.Items, items...)
		if len(result.Items) == limit {
			result.HasNextPage = page.Has(Next)
			return ErrStopWalk
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("pagination error: %w", err)
	}
	return result, nil
}
