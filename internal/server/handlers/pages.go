package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/unobits/website/internal/apperrors"
	"github.com/unobits/website/internal/responses"
	"github.com/unobits/website/internal/site"
	"github.com/unobits/website/internal/utils"
)

func (h *HandlerService) HandleHome(w http.ResponseWriter, r *http.Request) {
	h.renderPage(w, r, http.StatusOK, site.PageHome, site.PageData{
		Description: "unobits keeps projects, files and conversations together.",
	})
}

func (h *HandlerService) HandleContact(w http.ResponseWriter, r *http.Request) {
	data := site.PageData{
		Title:       "Contact",
		Description: "Get in touch with the unobits team.",
	}
	if r.URL.Query().Get("sent") == "1" {
		data.Notice = "Thanks for your message - we will be in touch soon."
	}
	h.renderPage(w, r, http.StatusOK, site.PageContact, data)
}

func (h *HandlerService) HandleHelp(w http.ResponseWriter, r *http.Request) {
	h.renderPage(w, r, http.StatusOK, site.PageHelp, site.PageData{
		Title:       "Help center",
		Description: "Guides and answers for unobits.",
		Articles:    h.Renderer.Articles(),
	})
}

// HandleHelpArticle renders a help article. Non-canonical slugs are redirected to the canonical form.
func (h *HandlerService) HandleHelpArticle(w http.ResponseWriter, r *http.Request) {
	requested := chi.URLParam(r, "slug")

	slug := utils.Slugify(requested)
	if slug == "" {
		h.HandleNotFound(w, r)
		return
	}

	if slug != requested {
		http.Redirect(w, r, "/help/"+slug, http.StatusMovedPermanently)
		return
	}

	article, ok := h.Renderer.Article(slug)
	if !ok {
		h.HandleNotFound(w, r)
		return
	}

	h.renderPage(w, r, http.StatusOK, site.PageHelpArticle, site.PageData{
		Title:       article.Title,
		Description: article.Title + " - unobits help center",
		Body:        article.Body,
	})
}

// HandleAppRedirect sends links to organization workspaces (/o/<org>/...) to the application
func (h *HandlerService) HandleAppRedirect(w http.ResponseWriter, r *http.Request) {
	org := utils.OrgFromRequest(r)
	if org == "" {
		h.HandleNotFound(w, r)
		return
	}

	target := h.Renderer.Origin() + "/o/" + org
	if rest := strings.Trim(chi.URLParam(r, "*"), "/"); rest != "" {
		target += "/" + rest
	}
	if r.URL.RawQuery != "" {
		target += "?" + r.URL.RawQuery
	}

	http.Redirect(w, r, target, http.StatusFound)
}

// HandleNotFound renders the not found page. Unknown /auth endpoints get a JSON error since they are called by browser code.
func (h *HandlerService) HandleNotFound(w http.ResponseWriter, r *http.Request) {
	if strings.HasPrefix(r.URL.Path, "/auth/") {
		responses.RespondWithError(w, r, http.StatusNotFound, apperrors.ErrCodeNotFound, "Not found.")
		return
	}
	h.renderPage(w, r, http.StatusNotFound, site.PageNotFound, site.PageData{
		Title: "Page not found",
	})
}
