// Package pages renders the site's server-side HTML pages from embedded
// templates.
package pages

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
)

//go:embed templates/*.html
var templatesFS embed.FS

const (
	CaseStudy = "case_study"
	WorkIndex = "work_index"
	NotFound  = "not_found"
	Error     = "error"
)

type Site struct {
	Name    string
	Tagline string
}

// View is what every template receives.
type View struct {
	Site Site
	Page any
}

type Renderer struct {
	site      Site
	templates map[string]*template.Template
}

func New(site Site) (*Renderer, error) {
	layout, err := template.ParseFS(templatesFS, "templates/layout.html")
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}

	r := &Renderer{site: site, templates: make(map[string]*template.Template)}
	for _, name := range []string{CaseStudy, WorkIndex, NotFound, Error} {
		t, err := layout.Clone()
		if err != nil {
			return nil, fmt.Errorf("clone layout for %s: %w", name, err)
		}
		if _, err := t.ParseFS(templatesFS, "templates/"+name+".html"); err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		r.templates[name] = t
	}
	return r, nil
}

// Render executes a page into memory so a template failure never leaves a
// half-written response.
func (r *Renderer) Render(name string, page any) ([]byte, error) {
	t, ok := r.templates[name]
	if !ok {
		return nil, fmt.Errorf("unknown page template %q", name)
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", View{Site: r.site, Page: page}); err != nil {
		return nil, fmt.Errorf("render %s: %w", name, err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) Write(w http.ResponseWriter, status int, name string, page any) error {
	body, err := r.Render(name, page)
	if err != nil {
		return err
	}
	WriteHTML(w, status, body)
	return nil
}

func WriteHTML(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}
