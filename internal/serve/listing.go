package serve

import (
	"bytes"
	"fmt"
	"io/fs"
	"net/url"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// sizePrinter groups digits in listing byte counts (1234567 -> 1,234,567).
var sizePrinter = message.NewPrinter(language.English)

// renderListing synthesizes the HTML page for a directory with no index
// file. requestPath is the decoded URL path of the directory; entry links
// are rendered relative to it. Only immediate entries are listed, with
// directories suffixed by "/".
func renderListing(requestPath string, entries []fs.DirEntry) []byte {
	base := requestPath
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}

	title := html.EscapeString(requestPath)
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "<!DOCTYPE html>\n<html>\n<head><meta charset=\"utf-8\"><title>Index of %s</title></head>\n<body>\n", title)
	fmt.Fprintf(&buf, "<h1>Index of %s</h1>\n<ul>\n", title)

	for _, entry := range entries {
		name := entry.Name()
		href := escapePath(base) + url.PathEscape(name)
		display := html.EscapeString(name)
		if entry.IsDir() {
			fmt.Fprintf(&buf, "<li><a href=\"%s/\">%s/</a></li>\n", href, display)
			continue
		}
		size := ""
		if info, err := entry.Info(); err == nil && info.Mode().IsRegular() {
			size = sizePrinter.Sprintf(" (%d bytes)", info.Size())
		}
		fmt.Fprintf(&buf, "<li><a href=\"%s\">%s</a>%s</li>\n", href, display, size)
	}

	buf.WriteString("</ul>\n</body>\n</html>\n")
	return buf.Bytes()
}

// escapePath percent-encodes each segment of an already-decoded URL path,
// preserving the slashes between them.
func escapePath(p string) string {
	segments := strings.Split(p, "/")
	for i, seg := range segments {
		segments[i] = url.PathEscape(seg)
	}
	return strings.Join(segments, "/")
}
