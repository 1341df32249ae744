// Package serve builds HTTP responses for resolved filesystem targets.
package serve

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"

	"github.com/RadicalZephyr/sufficient/internal/logging"
	"github.com/RadicalZephyr/sufficient/internal/resolver"
)

// indexFile is served in place of a directory listing when present.
const indexFile = "index.html"

// Request is one inbound request as handed over by the transport layer.
type Request struct {
	// Method is the HTTP method; only GET and HEAD are served.
	Method string
	// URI is the raw request-target from the request line.
	URI string
	// Accept is the Accept header value, consulted only by the developer
	// extensions.
	Accept string
}

// Response is the terminal result of one request. Body is nil for HEAD and
// for statuses without content; when non-nil the caller owns it and must
// close it after transmission.
type Response struct {
	Status        int
	Header        http.Header
	Body          io.ReadCloser
	ContentLength int64
}

// Builder turns requests into responses. It holds no per-request state and
// is safe for concurrent use.
type Builder struct {
	root   string
	mime   *MimeTable
	log    logging.Logger
	devExt bool
}

// NewBuilder returns a Builder serving the given canonical root directory.
// devExt enables the developer extensions (Markdown conversion for text
// clients).
func NewBuilder(root string, mime *MimeTable, log logging.Logger, devExt bool) *Builder {
	return &Builder{root: root, mime: mime, log: log, devExt: devExt}
}

// Build produces exactly one terminal response for req. Every internal
// failure is converted to an error response here; Build never returns an
// error and never panics.
func (b *Builder) Build(req Request) *Response {
	resp := b.dispatch(req)
	if req.Method == http.MethodHead && resp.Body != nil {
		resp.Body.Close()
		resp.Body = nil
	}
	return resp
}

func (b *Builder) dispatch(req Request) *Response {
	if req.Method != http.MethodGet && req.Method != http.MethodHead {
		resp := textResponse(http.StatusMethodNotAllowed, "method not allowed")
		resp.Header.Set("Allow", "GET, HEAD")
		return resp
	}

	target, err := resolver.Resolve(b.root, req.URI)
	if err != nil {
		return b.errorResponse(classify(err))
	}

	switch target.Kind {
	case resolver.Rejected:
		return b.errorResponse(rejectionError(target.Reason))
	case resolver.Directory:
		return b.serveDirectory(req, target.Path)
	default:
		return b.serveFile(req, target.Path)
	}
}

// serveFile streams a regular file, or hands it to the markdown extension
// when that is enabled and the client asked for it.
func (b *Builder) serveFile(req Request, path string) *Response {
	contentType := b.mime.Lookup(path)

	f, err := os.Open(path)
	if err != nil {
		return b.errorResponse(classify(err))
	}

	if b.devExt && contentType == "text/html" && prefersMarkdown(req.Accept) {
		defer f.Close()
		markdown, err := convertToMarkdown(f)
		if err != nil {
			return b.errorResponse(classify(fmt.Errorf("markdown extension: %w", err)))
		}
		return contentResponse(markdownContentType, markdown)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return b.errorResponse(classify(err))
	}

	resp := &Response{
		Status:        http.StatusOK,
		Header:        make(http.Header),
		Body:          f,
		ContentLength: info.Size(),
	}
	resp.Header.Set("Content-Type", contentType)
	resp.Header.Set("Content-Length", strconv.FormatInt(info.Size(), 10))
	return resp
}

// serveDirectory promotes an index.html entry when one exists, otherwise
// synthesizes a listing of the directory's immediate entries.
func (b *Builder) serveDirectory(req Request, dir string) *Response {
	index := filepath.Join(dir, indexFile)
	if info, err := os.Stat(index); err == nil && info.Mode().IsRegular() {
		return b.serveFile(req, index)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return b.errorResponse(classify(err))
	}

	body := renderListing(requestPath(req.URI), entries)
	return contentResponse("text/html; charset=utf-8", body)
}

// errorResponse maps a pipeline error to its terminal response. 500-class
// failures log their full cause chain server-side and the client sees only a
// generic body; all other bodies are the error's own short diagnostic, which
// never contains a path.
func (b *Builder) errorResponse(e *Error) *Response {
	status := e.Status()
	if status == http.StatusInternalServerError {
		logging.ErrorChain(b.log, e)
		return textResponse(status, "internal server error")
	}
	return textResponse(status, e.Error())
}

func textResponse(status int, msg string) *Response {
	resp := contentResponse("text/plain; charset=utf-8", []byte(msg+"\n"))
	resp.Status = status
	return resp
}

func contentResponse(contentType string, body []byte) *Response {
	resp := &Response{
		Status:        http.StatusOK,
		Header:        make(http.Header),
		Body:          io.NopCloser(bytes.NewReader(body)),
		ContentLength: int64(len(body)),
	}
	resp.Header.Set("Content-Type", contentType)
	resp.Header.Set("Content-Length", strconv.Itoa(len(body)))
	return resp
}

// requestPath extracts the decoded path for listing links. The URI has
// already survived resolution, so parse failures cannot happen here; fall
// back to "/" regardless.
func requestPath(uri string) string {
	u, err := url.ParseRequestURI(uri)
	if err != nil || u.Path == "" {
		return "/"
	}
	return u.Path
}
