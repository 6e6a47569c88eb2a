package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"

	"github.com/ncobase/pagelink/ctxutil"
	"github.com/ncobase/pagelink/paging"
)

// pager decodes pages of T and implements paging.Executor
type pager[T any] struct {
	client *Client
}

// Executor returns a paging.Executor decoding each page body as a JSON array of T
func Executor[T any](c *Client) paging.Executor[T] {
	return &pager[T]{client: c}
}

// List fetches the first page of the collection at path (resolved against the
// base URL). The configured per_page is added unless params carries one.
func List[T any](ctx context.Context, c *Client, path string, params map[string]string) (*paging.Cursor[T], error) {
	target, err := c.Resolve(path)
	if err != nil {
		return nil, err
	}
	defaults, err := ParamsFrom(ListOptions{PerPage: c.perPage})
	if err != nil {
		return nil, err
	}
	return Executor[T](c).FetchPage(ctx, target, MergeParams(params, defaults))
}

// FetchPage fetches target and wraps the decoded body in a cursor. An empty
// body or 204 yields the empty cursor.
func (p *pager[T]) FetchPage(ctx context.Context, target *url.URL, params map[string]string) (*paging.Cursor[T], error) {
	u := withParams(target, params)
	resp, err := p.client.get(ctx, u)
	if err != nil {
		return nil, err
	}
	if resp.noContent() {
		return paging.Empty[T](), nil
	}

	var items []T
	if err := json.Unmarshal(resp.body, &items); err != nil {
		return nil, &DecodeError{URL: u.Redacted(), Err: err}
	}

	page, err := paging.New[T](p, params, items, resp.header.Values("Link"))
	if err != nil {
		if errors.Is(err, paging.ErrMalformedLink) {
			p.client.logger.Warnf(ctxutil.SetPageURL(ctx, u.String()), "discarding page with malformed link header: %v", err)
		}
		return nil, err
	}
	return page, nil
}
