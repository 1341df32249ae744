package serve

import (
	"io"
	"net/http"
)

// ServeHTTP adapts the Builder to net/http. Build has already converted
// every failure into a response, so nothing here can error except the write
// to a client that went away.
func (b *Builder) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	resp := b.Build(Request{
		Method: r.Method,
		URI:    r.RequestURI,
		Accept: r.Header.Get("Accept"),
	})

	h := w.Header()
	for name, values := range resp.Header {
		h[name] = values
	}
	w.WriteHeader(resp.Status)

	if resp.Body == nil {
		return
	}
	defer resp.Body.Close()
	if _, err := io.Copy(w, resp.Body); err != nil {
		b.log.Errorf("writing response for %s: %v", r.RequestURI, err)
	}
}
