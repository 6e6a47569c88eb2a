package paging

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// Relation is a pagination role carried in a Link header
type Relation int

const (
	First Relation = iota
	Prev
	Next
	Last
)

var relationNames = [...]string{"first", "prev", "next", "last"}

// Relations returns every relation in header order
func Relations() []Relation {
	return []Relation{First, Prev, Next, Last}
}

// String returns the wire name of the relation
func (r Relation) String() string {
	if !r.valid() {
		return fmt.Sprintf("Relation(%d)", int(r))
	}
	return relationNames[r]
}

func (r Relation) valid() bool {
	return r >= First && r <= Last
}

// ParseRelation parses a wire name such as "next"
func ParseRelation(s string) (Relation, error) {
	for i, name := range relationNames {
		if strings.EqualFold(s, name) {
			return Relation(i), nil
		}
	}
	return 0, fmt.Errorf("unknown link relation %q", s)
}

// segmentPatterns holds one anchored pattern per relation,
// e.g. <https://api/x?page=2>; rel="next"
var segmentPatterns = func() [len(relationNames)]*regexp.Regexp {
	var p [len(relationNames)]*regexp.Regexp
	for i, name := range relationNames {
		p[i] = regexp.MustCompile(`^<(.+)>;\s+rel="` + regexp.QuoteMeta(name) + `"$`)
	}
	return p
}()

// LinkSet holds the resolved URL of each relation. The zero value has no links.
type LinkSet struct {
	urls [len(relationNames)]*url.URL
}

// Get returns a copy of the URL for rel
func (s LinkSet) Get(rel Relation) (*url.URL, bool) {
	if !rel.valid() || s.urls[rel] == nil {
		return nil, false
	}
	u := *s.urls[rel]
	return &u, true
}

// Has reports whether rel resolved to a URL
func (s LinkSet) Has(rel Relation) bool {
	return rel.valid() && s.urls[rel] != nil
}

// Len returns the number of resolved relations
func (s LinkSet) Len() int {
	n := 0
	for _, u := range s.urls {
		if u != nil {
			n++
		}
	}
	return n
}

// Map returns the resolved relations keyed by wire name
func (s LinkSet) Map() map[string]string {
	m := make(map[string]string, s.Len())
	for i, u := range s.urls {
		if u != nil {
			m[relationNames[i]] = u.String()
		}
	}
	return m
}

// ParseLinkSet resolves all four relations from the given Link header values
func ParseLinkSet(values []string) (LinkSet, error) {
	var s LinkSet
	for _, rel := range Relations() {
		u, err := Resolve(rel, values)
		if err != nil {
			return LinkSet{}, err
		}
		s.urls[rel] = u
	}
	return s, nil
}

// Resolve returns the URL of the first segment carrying rel, scanning header
// values and their comma-separated segments in order. A nil URL with a nil
// error means the relation is absent.
func Resolve(rel Relation, values []string) (*url.URL, error) {
	if !rel.valid() {
		return nil, fmt.Errorf("unknown link relation %s", rel)
	}
	pattern := segmentPatterns[rel]
	for _, value := range values {
		for _, segment := range strings.Split(value, ",") {
			m := pattern.FindStringSubmatch(strings.TrimSpace(segment))
			if m == nil {
				continue
			}
			return parseLinkURL(rel, m[1])
		}
	}
	return nil, nil
}

func parseLinkURL(rel Relation, raw string) (*url.URL, error) {
	if strings.ContainsAny(raw, " \t\r\n") {
		return nil, &MalformedLinkError{Rel: rel, Raw: raw, Err: errContainsSpace}
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, &MalformedLinkError{Rel: rel, Raw: raw, Err: err}
	}
	if !u.IsAbs() || u.Host == "" {
		return nil, &MalformedLinkError{Rel: rel, Raw: raw, Err: errNotAbsolute}
	}
	return u, nil
}
