package lastfm

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a failed API call.
type ErrorKind int

const (
	// KindTransport covers network failures, timeouts and non-2xx responses.
	KindTransport ErrorKind = iota + 1
	// KindDecode covers bodies that could not be parsed into the expected shape.
	KindDecode
	// KindNotFound covers the API's own entity-not-found responses.
	KindNotFound
)

func (k ErrorKind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindDecode:
		return "decode"
	case KindNotFound:
		return "not_found"
	default:
		return "unknown"
	}
}

// Error folds every failure mode of a Last.fm call into a single type so
// callers never see raw transport errors.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("lastfm: %s: %s", e.Kind, e.Message)
}

// IsNotFound reports whether err is an entity-not-found API error.
func IsNotFound(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Kind == KindNotFound
}
