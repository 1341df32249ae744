package serve

import (
	"fmt"
	"io"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/PuerkitoBio/goquery"
)

// markdownContentType is served when an HTML document is converted for a
// text client.
const markdownContentType = "text/markdown; charset=utf-8"

// prefersMarkdown reports whether an Accept header explicitly lists
// text/markdown. Ordinary browsers never send it, so the conversion path
// stays cold unless a client asks.
func prefersMarkdown(accept string) bool {
	for _, part := range strings.Split(accept, ",") {
		mediaType, _, _ := strings.Cut(strings.TrimSpace(part), ";")
		if strings.EqualFold(strings.TrimSpace(mediaType), "text/markdown") {
			return true
		}
	}
	return false
}

// convertToMarkdown renders an HTML document as Markdown. Part of the opt-in
// developer extensions; never reached in the default configuration.
func convertToMarkdown(r io.Reader) ([]byte, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML for markdown conversion: %w", err)
	}
	conv := md.NewConverter("", true, nil)
	out := conv.Convert(doc.Selection)
	if !strings.HasSuffix(out, "\n") {
		out += "\n"
	}
	return []byte(out), nil
}
