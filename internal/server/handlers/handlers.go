// the handlers package serves the website pages and the endpoints used by the browser to sign in, sign up and send contact messages.
// Authentication requests are passed to the unobits API using the client package; the visitor's cookies are forwarded
// with each request and the session cookies set by the API are relayed back to the browser.
package handlers

import (
	"log/slog"
	"net/http"

	"github.com/unobits/website/internal/client"
	"github.com/unobits/website/internal/contact"
	"github.com/unobits/website/internal/logger"
	"github.com/unobits/website/internal/site"
)

type HandlerService struct {
	Renderer    *site.Renderer
	ApiClient   *client.Client
	Validator   *contact.Validator
	Store       contact.Store
	Environment string
}

// renderPage renders a page with the supplied status code
func (h *HandlerService) renderPage(w http.ResponseWriter, r *http.Request, status int, page string, data site.PageData) {
	if data.Path == "" {
		data.Path = r.URL.Path
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)

	if err := h.Renderer.Render(w, page, data); err != nil {
		reqLogger := logger.RequestLogger(r.Context())
		reqLogger.Error("Failed to render page", slog.String("page", page), slog.String("error", err.Error()))
	}
}
