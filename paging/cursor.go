package paging

import (
	"context"
	"maps"
	"net/url"
	"slices"
)

// Executor fetches the page behind a relation URL and wraps it in a new cursor
type Executor[T any] interface {
	FetchPage(ctx context.Context, target *url.URL, params map[string]string) (*Cursor[T], error)
}

// ExecutorFunc adapts a function to Executor
type ExecutorFunc[T any] func(ctx context.Context, target *url.URL, params map[string]string) (*Cursor[T], error)

// FetchPage calls f
func (f ExecutorFunc[T]) FetchPage(ctx context.Context, target *url.URL, params map[string]string) (*Cursor[T], error) {
	return f(ctx, target, params)
}

// Cursor is one fetched page of a collection plus the links to its neighbours.
// A cursor is immutable; navigation always yields another cursor.
type Cursor[T any] struct {
	executor Executor[T]
	params   map[string]string
	content  []T
	links    LinkSet
	terminal bool
}

// New builds a cursor from a decoded page and the page's Link header values.
// It fails with a *MalformedLinkError if any relation carries a malformed URL.
func New[T any](executor Executor[T], params map[string]string, content []T, linkValues []string) (*Cursor[T], error) {
	links, err := ParseLinkSet(linkValues)
	if err != nil {
		return nil, err
	}
	if content == nil {
		content = make([]T, 0)
	}
	return &Cursor[T]{
		executor: executor,
		params:   params,
		content:  content,
		links:    links,
	}, nil
}

// Empty returns a terminal cursor with no content and no links
func Empty[T any]() *Cursor[T] {
	return &Cursor[T]{
		content:  make([]T, 0),
		terminal: true,
	}
}

// Content returns the items of this page
func (c *Cursor[T]) Content() []T {
	return slices.Clone(c.content)
}

// Len returns the number of items on this page
func (c *Cursor[T]) Len() int {
	return len(c.content)
}

// Params returns the request parameters carried to neighbour fetches
func (c *Cursor[T]) Params() map[string]string {
	if c.params == nil {
		return map[string]string{}
	}
	return maps.Clone(c.params)
}

// Links returns the resolved relations
func (c *Cursor[T]) Links() LinkSet {
	return c.links
}

// Link returns the URL of rel, if present
func (c *Cursor[T]) Link(rel Relation) (*url.URL, bool) {
	return c.links.Get(rel)
}

// Has reports whether rel leads to another page
func (c *Cursor[T]) Has(rel Relation) bool {
	return c.links.Has(rel)
}

// IsEmpty reports whether this is the terminal cursor
func (c *Cursor[T]) IsEmpty() bool {
	return c.terminal
}

// First fetches the first page
func (c *Cursor[T]) First(ctx context.Context) (*Cursor[T], error) {
	return c.Follow(ctx, First)
}

// Prev fetches the previous page
func (c *Cursor[T]) Prev(ctx context.Context) (*Cursor[T], error) {
	return c.Follow(ctx, Prev)
}

// Next fetches the next page
func (c *Cursor[T]) Next(ctx context.Context) (*Cursor[T], error) {
	return c.Follow(ctx, Next)
}

// Last fetches the last page
func (c *Cursor[T]) Last(ctx context.Context) (*Cursor[T], error) {
	return c.Follow(ctx, Last)
}

// Follow fetches the page behind rel. An absent relation yields an empty
// cursor without I/O, and the empty cursor always returns itself. Errors from
// the executor are returned as is; a nil page from it reads as the empty cursor.
func (c *Cursor[T]) Follow(ctx context.Context, rel Relation) (*Cursor[T], error) {
	if c.terminal {
		return c, nil
	}
	target, ok := c.links.Get(rel)
	if !ok {
		return Empty[T](), nil
	}
	if c.executor == nil {
		return nil, ErrNoExecutor
	}
	next, err := c.executor.FetchPage(ctx, target, c.params)
	if err == nil && next == nil {
		return Empty[T](), nil
	}
	return next, err
}
