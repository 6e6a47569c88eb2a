package paging

import (
	"context"
	"errors"
	"net/url"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fetchCall struct {
	target string
	params map[string]string
}

// mockExecutor serves canned pages keyed by URL and counts fetches
type mockExecutor struct {
	mu     sync.Mutex
	pages  map[string]func(e *mockExecutor) (*Cursor[string], error)
	calls  []fetchCall
	count  atomic.Int32
	failOn error
}

func newMockExecutor() *mockExecutor {
	return &mockExecutor{pages: map[string]func(e *mockExecutor) (*Cursor[string], error){}}
}

func (m *mockExecutor) serve(rawURL string, content []string, links ...string) {
	m.pages[rawURL] = func(e *mockExecutor) (*Cursor[string], error) {
		return New[string](e, map[string]string{"per_page": "2"}, content, links)
	}
}

func (m *mockExecutor) FetchPage(_ context.Context, target *url.URL, params map[string]string) (*Cursor[string], error) {
	m.count.Add(1)
	m.mu.Lock()
	m.calls = append(m.calls, fetchCall{target: target.String(), params: params})
	m.mu.Unlock()
	if m.failOn != nil {
		return nil, m.failOn
	}
	page, ok := m.pages[target.String()]
	if !ok {
		return nil, errors.New("unexpected url " + target.String())
	}
	return page(m)
}

func TestCursorNextFetchesOnce(t *testing.T) {
	exec := newMockExecutor()
	exec.serve("https://api.example/items?page=2", []string{"C", "D"})

	params := map[string]string{"per_page": "2", "q": "go"}
	page, err := New[string](exec, params, []string{"A", "B"}, []string{`<https://api.example/items?page=2>; rel="next"`})
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, page.Content())

	next, err := page.Next(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"C", "D"}, next.Content())
	assert.False(t, next.IsEmpty())

	require.Equal(t, int32(1), exec.count.Load())
	assert.Equal(t, "https://api.example/items?page=2", exec.calls[0].target)
	assert.Equal(t, params, exec.calls[0].params)
}

func TestCursorAbsentRelations(t *testing.T) {
	exec := newMockExecutor()
	page, err := New[string](exec, nil, []string{"A"}, nil)
	require.NoError(t, err)

	ctx := context.Background()
	for _, nav := range []func(context.Context) (*Cursor[string], error){page.First, page.Prev, page.Next, page.Last} {
		got, err := nav(ctx)
		require.NoError(t, err)
		assert.True(t, got.IsEmpty())
		assert.NotNil(t, got.Content())
		assert.Empty(t, got.Content())
		assert.Equal(t, 0, got.Links().Len())
	}
	assert.Zero(t, exec.count.Load())
}

func TestCursorPrevWithoutRelation(t *testing.T) {
	exec := newMockExecutor()
	page, err := New[string](exec, nil, []string{"A", "B"}, []string{`<https://api.example/items?page=2>; rel="next"`})
	require.NoError(t, err)

	prev, err := page.Prev(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{}, prev.Content())
	assert.Zero(t, exec.count.Load())
}

func TestEmptyCursorIsAbsorbing(t *testing.T) {
	exec := newMockExecutor()
	page, err := New[string](exec, nil, []string{"A"}, nil)
	require.NoError(t, err)

	ctx := context.Background()
	empty, err := page.Next(ctx)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		for _, rel := range Relations() {
			got, err := empty.Follow(ctx, rel)
			require.NoError(t, err)
			assert.Same(t, empty, got)
			assert.Equal(t, []string{}, got.Content())
		}
	}
	assert.Zero(t, exec.count.Load())
}

func TestEmptyConstructor(t *testing.T) {
	empty := Empty[int]()
	assert.True(t, empty.IsEmpty())
	assert.Equal(t, []int{}, empty.Content())
	assert.Equal(t, map[string]string{}, empty.Params())

	next, err := empty.Next(context.Background())
	require.NoError(t, err)
	assert.Same(t, empty, next)
}

func TestCursorMalformedLink(t *testing.T) {
	page, err := New[string](newMockExecutor(), nil, []string{"A"}, []string{`<not a url>; rel="next"`})
	assert.Nil(t, page)
	assert.ErrorIs(t, err, ErrMalformedLink)

	var mErr *MalformedLinkError
	require.ErrorAs(t, err, &mErr)
	assert.Equal(t, Next, mErr.Rel)
}

func TestCursorExecutorErrorPassesThrough(t *testing.T) {
	transportErr := errors.New("connection reset")
	exec := newMockExecutor()
	exec.failOn = transportErr

	page, err := New[string](exec, nil, []string{"A"}, []string{`<https://api.example/items?page=9>; rel="last"`})
	require.NoError(t, err)

	got, err := page.Last(context.Background())
	assert.Nil(t, got)
	assert.Same(t, transportErr, err)
}

func TestCursorRefetchesEveryCall(t *testing.T) {
	exec := newMockExecutor()
	exec.serve("https://api.example/items?page=1", []string{"A"})
	page, err := New[string](exec, nil, []string{"B"}, []string{`<https://api.example/items?page=1>; rel="first"`})
	require.NoError(t, err)

	ctx := context.Background()
	a, err := page.First(ctx)
	require.NoError(t, err)
	b, err := page.First(ctx)
	require.NoError(t, err)

	assert.NotSame(t, a, b)
	assert.Equal(t, int32(2), exec.count.Load())
}

func TestCursorConcurrentNavigation(t *testing.T) {
	exec := newMockExecutor()
	exec.serve("https://api.example/items?page=2", []string{"C"})
	page, err := New[string](exec, nil, []string{"A"}, []string{`<https://api.example/items?page=2>; rel="next"`})
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			next, err := page.Next(context.Background())
			assert.NoError(t, err)
			assert.Equal(t, []string{"C"}, next.Content())
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(8), exec.count.Load())
}

func TestCursorContentIsCopied(t *testing.T) {
	page, err := New[string](nil, nil, []string{"A", "B"}, nil)
	require.NoError(t, err)

	items := page.Content()
	items[0] = "Z"
	assert.Equal(t, []string{"A", "B"}, page.Content())
	assert.Equal(t, 2, page.Len())
}

func TestCursorNilContent(t *testing.T) {
	page, err := New[string](nil, nil, nil, nil)
	require.NoError(t, err)
	assert.NotNil(t, page.Content())
	assert.False(t, page.IsEmpty())
}

func TestCursorWithoutExecutor(t *testing.T) {
	page, err := New[string](nil, nil, []string{"A"}, []string{`<https://api.example/items?page=2>; rel="next"`})
	require.NoError(t, err)

	_, err = page.Next(context.Background())
	assert.ErrorIs(t, err, ErrNoExecutor)
}

func TestExecutorFunc(t *testing.T) {
	var calls int
	exec := ExecutorFunc[int](func(_ context.Context, target *url.URL, _ map[string]string) (*Cursor[int], error) {
		calls++
		return New[int](nil, nil, []int{calls}, nil)
	})
	page, err := New[int](exec, nil, []int{0}, []string{`<https://api.example/n>; rel="next"`})
	require.NoError(t, err)

	next, err := page.Next(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []int{1}, next.Content())
}

func TestCursorNilPageIsEmpty(t *testing.T) {
	exec := ExecutorFunc[int](func(context.Context, *url.URL, map[string]string) (*Cursor[int], error) {
		return nil, nil
	})
	page, err := New[int](exec, nil, []int{1}, []string{`<https://api.example/n>; rel="next"`})
	require.NoError(t, err)

	next, err := page.Next(context.Background())
	require.NoError(t, err)
	require.NotNil(t, next)
	assert.True(t, next.IsEmpty())
}
