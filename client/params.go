package client

import (
	"fmt"
	"maps"
	"net/url"

	"github.com/google/go-querystring/query"
)

// ListOptions are the common pagination parameters of a paged endpoint
type ListOptions struct {
	Page    int `url:"page,omitempty"`
	PerPage int `url:"per_page,omitempty"`
}

// ParamsFrom encodes an options struct tagged with `url:"..."` into request
// params. Only the first value of multi-valued fields is kept.
func ParamsFrom(opts any) (map[string]string, error) {
	values, err := query.Values(opts)
	if err != nil {
		return nil, fmt.Errorf("encode params: %w", err)
	}
	params := make(map[string]string, len(values))
	for k, v := range values {
		if len(v) > 0 {
			params[k] = v[0]
		}
	}
	return params, nil
}

// MergeParams returns a copy of params with defaults added for missing keys
func MergeParams(params, defaults map[string]string) map[string]string {
	merged := make(map[string]string, len(params)+len(defaults))
	maps.Copy(merged, defaults)
	maps.Copy(merged, params)
	return merged
}

// withParams returns target with params added for keys its query does not
// already carry. A relation URL usually encodes them already.
func withParams(target *url.URL, params map[string]string) *url.URL {
	u := *target
	if len(params) == 0 {
		return &u
	}
	q := u.Query()
	changed := false
	for k, v := range params {
		if !q.Has(k) {
			q.Set(k, v)
			changed = true
		}
	}
	if changed {
		u.RawQuery = q.Encode()
	}
	return &u
}
