// Package origin resolves the base origin of the unobits application backend.
//
// The origin is resolved once when the process starts and then passed to the components that need it.
// Pages rendered by the website publish the resolved value in a meta tag (see MetaName) so that scripts
// and tools inspecting a page can find the backend without further configuration.
package origin

import (
	"context"
	"io"
	"net/http"
	"strings"

	"golang.org/x/net/html"
)

const (
	// MetaName is the name of the meta tag that carries the backend origin: <meta name="unobits:app-origin" content="...">
	MetaName = "unobits:app-origin"

	// Fallback is used when no origin has been configured
	Fallback = "https://unobits.app"

	// maximum size of a page read by FromURL
	maxDocumentSize = 2 << 20
)

// Resolve returns the trimmed value, or Fallback when the value is empty.
func Resolve(value string) string {
	if v := strings.TrimSpace(value); v != "" {
		return v
	}
	return Fallback
}

// FromDocument resolves the origin from the meta annotation of an HTML document.
// Documents that cannot be read or do not contain a usable annotation resolve to Fallback.
func FromDocument(r io.Reader) string {
	if r == nil {
		return Fallback
	}

	doc, err := html.Parse(r)
	if err != nil {
		return Fallback
	}

	content, _ := findMetaContent(doc, MetaName, 0)
	return Resolve(content)
}

// FromURL fetches an HTML page and resolves the origin from its meta annotation.
// Any failure to fetch the page resolves to Fallback.
func FromURL(ctx context.Context, httpClient *http.Client, pageURL string) string {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return Fallback
	}
	req.Header.Set("Accept", "text/html")

	res, err := httpClient.Do(req)
	if err != nil {
		return Fallback
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return Fallback
	}

	return FromDocument(io.LimitReader(res.Body, maxDocumentSize))
}

// findMetaContent returns the content attribute of the first <meta> element with the given name
func findMetaContent(n *html.Node, name string, depth int) (string, bool) {
	if depth > 64 {
		return "", false
	}

	if n.Type == html.ElementNode && n.Data == "meta" && strings.EqualFold(getAttr(n, "name"), name) {
		return getAttr(n, "content"), true
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if content, found := findMetaContent(c, name, depth+1); found {
			return content, true
		}
	}
	return "", false
}

func getAttr(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}
