package serve

import (
	"errors"
	"io/fs"
	"net/http"

	"github.com/RadicalZephyr/sufficient/internal/resolver"
)

// Kind classifies every failure the server can produce. Rejection kinds are
// semantic: they carry their own meaning and no underlying cause. IO is a
// blanket kind wrapping whatever the filesystem reported.
type Kind int

const (
	KindNotAbsolute Kind = iota
	KindNotUTF8
	KindOutsideRoot
	KindNotFound
	KindPermission
	KindIO
)

// Error is the single error type of the request pipeline. Err is the
// underlying cause for blanket kinds and nil for semantic ones.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindNotAbsolute:
		return "requested URI is not an absolute path"
	case KindNotUTF8:
		return "requested URI is not UTF-8"
	case KindOutsideRoot:
		return "requested path is outside the served root"
	case KindNotFound:
		return "no such file or directory"
	case KindPermission:
		return "permission denied"
	default:
		return "internal I/O failure"
	}
}

func (e *Error) Unwrap() error { return e.Err }

// Status maps an error kind to its HTTP status. Escapes are deliberately 400
// rather than 403 so the response never confirms anything exists outside the
// root.
func (e *Error) Status() int {
	switch e.Kind {
	case KindNotAbsolute, KindNotUTF8, KindOutsideRoot:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindPermission:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// rejectionError converts a resolver rejection into the pipeline error type.
func rejectionError(r resolver.Reason) *Error {
	switch r {
	case resolver.NotAbsolute:
		return &Error{Kind: KindNotAbsolute}
	case resolver.NotUTF8:
		return &Error{Kind: KindNotUTF8}
	default:
		return &Error{Kind: KindOutsideRoot}
	}
}

// classify wraps a raw filesystem error in the pipeline error type.
func classify(err error) *Error {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return &Error{Kind: KindNotFound, Err: err}
	case errors.Is(err, fs.ErrPermission):
		return &Error{Kind: KindPermission, Err: err}
	default:
		return &Error{Kind: KindIO, Err: err}
	}
}
