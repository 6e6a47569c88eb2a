package client

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParamsFrom(t *testing.T) {
	params, err := ParamsFrom(ListOptions{Page: 3, PerPage: 50})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"page": "3", "per_page": "50"}, params)

	params, err = ParamsFrom(ListOptions{})
	require.NoError(t, err)
	assert.Empty(t, params)

	_, err = ParamsFrom("not a struct")
	assert.Error(t, err)
}

func TestMergeParams(t *testing.T) {
	merged := MergeParams(map[string]string{"per_page": "10"}, map[string]string{"per_page": "50", "sort": "id"})
	assert.Equal(t, map[string]string{"per_page": "10", "sort": "id"}, merged)
}

func TestWithParams(t *testing.T) {
	target, _ := url.Parse("https://api.example/items?page=2&per_page=20")

	u := withParams(target, map[string]string{"per_page": "50", "q": "go"})
	assert.Equal(t, "go", u.Query().Get("q"))
	assert.Equal(t, "20", u.Query().Get("per_page"))
	assert.Equal(t, "page=2&per_page=20", target.RawQuery)

	same := withParams(target, map[string]string{"page": "9"})
	assert.Equal(t, target.RawQuery, same.RawQuery)
}
