package client

import (
	"context"
	"net/http"
)

// Common context keys - use a struct to prevent conflicts
type contextKey struct {
	name string
}

var credentialsKey = contextKey{"credentials"}

// ContextWithCredentials returns a context carrying the cookies that should be forwarded to the API,
// typically the cookies sent by the visitor's browser to the website.
func ContextWithCredentials(ctx context.Context, cookies []*http.Cookie) context.Context {
	return context.WithValue(ctx, credentialsKey, cookies)
}

func ContextCredentials(ctx context.Context) ([]*http.Cookie, bool) {
	cookies, ok := ctx.Value(credentialsKey).([]*http.Cookie)
	return cookies, ok
}
