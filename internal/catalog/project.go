package catalog

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"sort"
	"strings"

	"folio-backend/internal/content"
)

// BespokePage is a project told through hand-authored markup instead of
// the generic template. Header is only used when the project has no
// catalog record.
type BespokePage struct {
	Slug     string
	Header   *BespokeHeader
	Sections []template.HTML
}

type BespokeHeader struct {
	Title    string
	Client   string
	Category content.Category
	Year     string
}

// Registry is the bespoke allow-list: one declared mapping from slug to
// page.
type Registry struct {
	pages map[string]BespokePage
}

func NewRegistry(pages ...BespokePage) (*Registry, error) {
	reg := &Registry{pages: make(map[string]BespokePage, len(pages))}
	for _, p := range pages {
		slug := strings.TrimSpace(p.Slug)
		if slug == "" {
			return nil, errors.New("bespoke page without slug")
		}
		if _, ok := reg.pages[slug]; ok {
			return nil, fmt.Errorf("%w: bespoke %q", ErrDuplicateSlug, slug)
		}
		p.Slug = slug
		reg.pages[slug] = p
	}
	return reg, nil
}

func (r *Registry) Lookup(slug string) (BespokePage, bool) {
	if r == nil {
		return BespokePage{}, false
	}
	p, ok := r.pages[slug]
	return p, ok
}

func (r *Registry) Slugs() []string {
	if r == nil {
		return nil
	}
	out := make([]string, 0, len(r.pages))
	for slug := range r.pages {
		out = append(out, slug)
	}
	sort.Strings(out)
	return out
}

// Project is what a slug resolves to: Generic or Bespoke.
type Project interface {
	Slug() string
	project()
}

// Generic is rendered by the block pipeline.
type Generic struct {
	Study content.CaseStudy
}

// Bespoke is rendered from its hand-authored sections. Study is nil when
// the page exists outside the catalog.
type Bespoke struct {
	Study *content.CaseStudy
	Page  BespokePage
}

func (g Generic) Slug() string { return g.Study.Slug }
func (b Bespoke) Slug() string { return b.Page.Slug }

func (Generic) project() {}
func (Bespoke) project() {}

type Resolver struct {
	repo    Repository
	bespoke *Registry
}

func NewResolver(repo Repository, bespoke *Registry) *Resolver {
	return &Resolver{repo: repo, bespoke: bespoke}
}

// Resolve looks the slug up once and decides how it is rendered.
func (r *Resolver) Resolve(ctx context.Context, slug string) (Project, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, ErrNotFound
	}

	study, err := r.repo.FindBySlug(ctx, slug)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, err
	}
	found := err == nil

	if page, ok := r.bespoke.Lookup(slug); ok {
		if found {
			return Bespoke{Study: &study, Page: page}, nil
		}
		if page.Header != nil {
			return Bespoke{Page: page}, nil
		}
		return nil, ErrNotFound
	}

	if !found {
		return nil, ErrNotFound
	}
	return Generic{Study: study}, nil
}
