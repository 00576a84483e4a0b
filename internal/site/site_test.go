package site

import (
	"bytes"
	"strings"
	"testing"

	"github.com/unobits/website/internal/origin"
)

func newTestRenderer(t *testing.T, appOrigin string) *Renderer {
	t.Helper()

	r, err := NewRenderer(appOrigin, "https://unobits.com/")
	if err != nil {
		t.Fatalf("NewRenderer() error = %v", err)
	}
	return r
}

func TestRender_PublishesOrigin(t *testing.T) {
	r := newTestRenderer(t, "https://eu.unobits.app")

	for _, page := range pageNames {
		t.Run(page, func(t *testing.T) {
			var buf bytes.Buffer
			if err := r.Render(&buf, page, PageData{Title: "Test", Path: "/test"}); err != nil {
				t.Fatalf("Render() error = %v", err)
			}

			if got := origin.FromDocument(&buf); got != "https://eu.unobits.app" {
				t.Errorf("origin published by %s page = %q, want %q", page, got, "https://eu.unobits.app")
			}
		})
	}
}

func TestRender_Canonical(t *testing.T) {
	r := newTestRenderer(t, origin.Fallback)

	var buf bytes.Buffer
	if err := r.Render(&buf, PageContact, PageData{Title: "Contact", Path: "/contact"}); err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	if !strings.Contains(buf.String(), `<link rel="canonical" href="https://unobits.com/contact">`) {
		t.Errorf("canonical link missing from page:\n%s", buf.String())
	}
	if !strings.Contains(buf.String(), "<title>Contact | unobits</title>") {
		t.Errorf("title missing from page:\n%s", buf.String())
	}
}

func TestRender_UnknownPage(t *testing.T) {
	r := newTestRenderer(t, origin.Fallback)

	var buf bytes.Buffer
	if err := r.Render(&buf, "pricing", PageData{}); err == nil {
		t.Error("Render() error = nil, want error for unknown page")
	}
	if buf.Len() != 0 {
		t.Error("nothing should be written for an unknown page")
	}
}

func TestArticles(t *testing.T) {
	r := newTestRenderer(t, origin.Fallback)

	articles := r.Articles()
	if len(articles) == 0 {
		t.Fatal("no help articles loaded")
	}

	for i := 1; i < len(articles); i++ {
		if articles[i-1].Title > articles[i].Title {
			t.Errorf("articles not sorted by title: %q before %q", articles[i-1].Title, articles[i].Title)
		}
	}

	a, ok := r.Article("getting-started")
	if !ok {
		t.Fatal("getting-started article not found")
	}
	if a.Title != "Getting Started" {
		t.Errorf("Title = %q, want %q", a.Title, "Getting Started")
	}
	if a.Body == "" {
		t.Error("article body is empty")
	}

	if _, ok := r.Article("Getting-Started"); ok {
		t.Error("lookup must use the canonical slug")
	}
}
