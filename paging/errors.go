package paging

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedLink matches every *MalformedLinkError
	ErrMalformedLink = errors.New("malformed link header")

	// ErrNoExecutor is returned when a cursor with links was built without an executor
	ErrNoExecutor = errors.New("cursor has no executor")

	// ErrStopWalk stops Walk without reporting an error
	ErrStopWalk = errors.New("stop walk")

	errNotAbsolute   = errors.New("not an absolute url")
	errContainsSpace = errors.New("url contains whitespace")
)

// MalformedLinkError reports a Link segment whose relation matched but whose
// URL is not a valid absolute URL.
type MalformedLinkError struct {
	Rel Relation
	Raw string
	Err error
}

func (e *MalformedLinkError) Error() string {
	return fmt.Sprintf("malformed %s link %q: %v", e.Rel, e.Raw, e.Err)
}

func (e *MalformedLinkError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is match ErrMalformedLink
func (e *MalformedLinkError) Is(target error) bool {
	return target == ErrMalformedLink
}
