// Package site renders the pages of the marketing website.
//
// Every page is rendered inside the shared layout, which publishes the application origin in the
// unobits:app-origin meta tag.
package site

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path"
	"slices"
	"strings"
	"time"

	"github.com/unobits/website/internal/utils"
	"github.com/unobits/website/web"
)

// page names
const (
	PageHome        = "home"
	PageContact     = "contact"
	PageHelp        = "help"
	PageHelpArticle = "help_article"
	PageNotFound    = "not_found"
)

var pageNames = []string{PageHome, PageContact, PageHelp, PageHelpArticle, PageNotFound}

// Article is a help center article
type Article struct {
	Slug  string
	Title string
	Body  template.HTML
}

// PageData is passed to the page templates
type PageData struct {
	Title       string
	Description string
	Path        string
	Notice      string // status message shown above the page content
	Articles    []Article
	Body        template.HTML
}

// layoutData is PageData plus the values that are the same for every page
type layoutData struct {
	PageData
	Origin    string
	Canonical string
	Year      int
}

type Renderer struct {
	origin   string
	baseURL  string
	pages    map[string]*template.Template
	articles map[string]Article
	index    []Article
}

// NewRenderer parses the embedded templates and help articles.
// origin is published in every page, baseURL is the public URL of the website (used for canonical links).
func NewRenderer(origin, baseURL string) (*Renderer, error) {
	r := &Renderer{
		origin:   origin,
		baseURL:  strings.TrimRight(baseURL, "/"),
		pages:    make(map[string]*template.Template, len(pageNames)),
		articles: make(map[string]Article),
	}

	for _, name := range pageNames {
		tmpl, err := template.ParseFS(web.Templates, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("could not parse %s template: %w", name, err)
		}
		r.pages[name] = tmpl
	}

	if err := r.loadArticles(web.Help); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Renderer) loadArticles(fsys fs.FS) error {
	files, err := fs.Glob(fsys, "help/*.html")
	if err != nil {
		return fmt.Errorf("could not list help articles: %w", err)
	}

	for _, file := range files {
		body, err := fs.ReadFile(fsys, file)
		if err != nil {
			return fmt.Errorf("could not read help article %s: %w", file, err)
		}

		slug := utils.Slugify(strings.TrimSuffix(path.Base(file), ".html"))
		if slug == "" {
			continue
		}

		article := Article{
			Slug:  slug,
			Title: utils.HelpTitle(slug),
			Body:  template.HTML(body), // #nosec G203 -- embedded at build time
		}
		r.articles[slug] = article
		r.index = append(r.index, article)
	}

	slices.SortFunc(r.index, func(a, b Article) int {
		return strings.Compare(a.Title, b.Title)
	})
	return nil
}

// Origin returns the application origin published in the pages
func (r *Renderer) Origin() string {
	return r.origin
}

// Articles returns the help articles sorted by title
func (r *Renderer) Articles() []Article {
	return slices.Clone(r.index)
}

// Article returns the help article with the given slug
func (r *Renderer) Article(slug string) (Article, bool) {
	a, ok := r.articles[slug]
	return a, ok
}

// Render writes a page to w. The page is rendered to a buffer first so a template error does not produce a partial page
func (r *Renderer) Render(w io.Writer, page string, data PageData) error {
	tmpl, ok := r.pages[page]
	if !ok {
		return fmt.Errorf("unknown page %q", page)
	}

	var buf bytes.Buffer
	err := tmpl.ExecuteTemplate(&buf, "layout", layoutData{
		PageData:  data,
		Origin:    r.origin,
		Canonical: r.baseURL + data.Path,
		Year:      time.Now().Year(),
	})
	if err != nil {
		return fmt.Errorf("could not render %s page: %w", page, err)
	}

	_, err = buf.WriteTo(w)
	return err
}
