// Package resolver turns request URIs into safe filesystem paths.
package resolver

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"syscall"
	"unicode/utf8"
)

// Reason explains why a URI was rejected before any filesystem lookup.
type Reason int

const (
	// NotAbsolute means the URI did not parse, or its path component does
	// not begin with "/".
	NotAbsolute Reason = iota
	// NotUTF8 means the percent-decoded path is not valid UTF-8 text.
	NotUTF8
	// OutsideRoot means the path would escape the served root directory,
	// either textually (a ".." segment) or through a symbolic link.
	OutsideRoot
)

func (r Reason) String() string {
	switch r {
	case NotAbsolute:
		return "requested URI is not an absolute path"
	case NotUTF8:
		return "requested URI is not UTF-8"
	case OutsideRoot:
		return "requested path is outside the served root"
	}
	return fmt.Sprintf("unknown rejection reason %d", int(r))
}

// Kind discriminates the variants of a Target.
type Kind int

const (
	// File is an existing regular file under the root.
	File Kind = iota
	// Directory is an existing directory under the root (or the root itself).
	Directory
	// Rejected means the URI never reached a filesystem lookup; see Reason.
	Rejected
)

// Target is the result of resolving one request URI. For File and Directory
// the Path is absolute, canonical, and guaranteed to be the root or a
// descendant of it. For Rejected only Reason is meaningful.
type Target struct {
	Kind   Kind
	Path   string
	Reason Reason
}

func rejected(r Reason) Target {
	return Target{Kind: Rejected, Reason: r}
}

// Resolve validates uri against root and locates the filesystem object it
// names. root must already be absolute and canonical (symlinks resolved).
//
// A malformed or escaping URI yields a Rejected target and a nil error. A
// well-formed URI naming something that does not exist, or whose metadata
// cannot be read, yields a filesystem error for the caller to classify.
// Filesystem objects that are neither regular files nor directories resolve
// to fs.ErrNotExist.
//
// The check-then-use gap between this lookup and any later open is inherent;
// callers must classify the open error on its own rather than trusting the
// Kind reported here.
func Resolve(root, uri string) (Target, error) {
	u, err := url.ParseRequestURI(uri)
	if err != nil {
		return rejected(NotAbsolute), nil
	}

	// ParseRequestURI has already percent-decoded the path. Escapes it
	// could not decode fail above; raw bytes it did decode may still not
	// form UTF-8 text.
	path := u.Path
	if !strings.HasPrefix(path, "/") {
		return rejected(NotAbsolute), nil
	}
	if !utf8.ValidString(path) {
		return rejected(NotUTF8), nil
	}

	// Refuse ".." outright instead of collapsing it; collapsing arithmetic
	// is where traversal bugs live. "." and empty segments are no-ops.
	segments := make([]string, 0, 8)
	for _, seg := range strings.Split(path, "/") {
		switch seg {
		case "", ".":
			continue
		case "..":
			return rejected(OutsideRoot), nil
		}
		segments = append(segments, seg)
	}

	candidate := filepath.Join(append([]string{root}, segments...)...)

	// Canonicalize so symlinks inside the root cannot point the lookup
	// outside of it. A nonexistent path surfaces here as fs.ErrNotExist.
	// Traversing through a regular file ("/file.txt/extra") reports
	// ENOTDIR instead; to a client that is the same miss.
	canonical, err := filepath.EvalSymlinks(candidate)
	if err != nil {
		if errors.Is(err, syscall.ENOTDIR) {
			err = fmt.Errorf("%v: %w", err, fs.ErrNotExist)
		}
		return Target{}, err
	}
	if !contains(root, canonical) {
		return rejected(OutsideRoot), nil
	}

	info, err := os.Stat(canonical)
	if err != nil {
		return Target{}, err
	}
	switch {
	case info.IsDir():
		return Target{Kind: Directory, Path: canonical}, nil
	case info.Mode().IsRegular():
		return Target{Kind: File, Path: canonical}, nil
	default:
		// Devices, sockets and the like are never served.
		return Target{}, fmt.Errorf("refusing special file: %w", fs.ErrNotExist)
	}
}

// contains reports whether path is root or a descendant of root. Both must
// be absolute and canonical.
func contains(root, path string) bool {
	if path == root {
		return true
	}
	return strings.HasPrefix(path, root+string(filepath.Separator))
}
