// the client package is used by the website to call the unobits application API.
// The client handles the error responses from the API, translating the backend error codes into user-friendly messages.
// The machine readable code, HTTP status and raw payload are returned alongside the message so callers can log them (see client/errors.go)
package client

import (
	"net/http"
	"strings"
	"time"
)

const (
	// APIPrefix is prepended to every request path
	APIPrefix = "/api"

	DefaultTimeout = 10 * time.Second

	// maximum size of a response body read from the API
	maxResponseSize = 1 << 20
)

// Client handles communication with the unobits API
type Client struct {
	origin     string
	httpClient *http.Client
}

// NewClient returns a client for the API served at origin (scheme://host[:port]).
// When httpClient is nil a client with DefaultTimeout is used.
// Supply an http.Client with a cookie jar if the session cookies set by the API should be kept between calls.
func NewClient(origin string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: DefaultTimeout,
		}
	}

	return &Client{
		origin:     strings.TrimRight(origin, "/"),
		httpClient: httpClient,
	}
}

// Origin returns the origin the client sends requests to
func (c *Client) Origin() string {
	return c.origin
}

// endpoint returns the absolute url for an API path - callers only ever supply paths relative to the API prefix
func (c *Client) endpoint(path string) string {
	if path != "" && !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return c.origin + APIPrefix + path
}
