// Package paging provides cursors over HTTP APIs that announce page
// boundaries with RFC 5988 Link headers.
//
// A response such as
//
//	Link: <https://api.example.com/items?page=1>; rel="first",
//	      <https://api.example.com/items?page=3>; rel="next"
//
// is turned into a Cursor holding the decoded page plus the URL of every
// relation (first, prev, next, last) that the header carried.
//
// # Basic Usage
//
// Build the first cursor from an initial response:
//
//	page, err := paging.New(executor, params, items, resp.Header.Values("Link"))
//	if err != nil {
//	    return err // *paging.MalformedLinkError
//	}
//
// Navigate lazily; each call performs at most one fetch:
//
//	for !page.IsEmpty() {
//	    handle(page.Content())
//	    if page, err = page.Next(ctx); err != nil {
//	        return err
//	    }
//	}
//
// Following a relation the page does not carry returns an empty cursor
// instead of an error. The empty cursor returns itself from every
// navigation call, so loops need no end-of-collection special case.
//
// # Executors
//
// The package does no I/O of its own. An Executor fetches the URL behind a
// relation and wraps the response in a new cursor:
//
//	exec := paging.ExecutorFunc[Item](func(ctx context.Context, u *url.URL, params map[string]string) (*paging.Cursor[Item], error) {
//	    ...
//	})
//
// See package client for an HTTP implementation.
//
// # Traversal
//
// Walk and Collect drive a cursor along a relation:
//
//	res, err := paging.Collect(ctx, page, 100)
//	// res.Items, res.Pages, res.HasNextPage
package paging
