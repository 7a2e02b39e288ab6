package casestudies

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"folio-backend/internal/catalog"
	"folio-backend/internal/content"
	"folio-backend/internal/partition"
	"folio-backend/internal/render"
)

// DefaultYear is shown for projects without a publish date. It is fixed,
// never the current year, so older projects keep a stable label.
const DefaultYear = "2025"

var ErrNotFound = catalog.ErrNotFound

// Assembler composes case-study pages. Each call is a pure function of
// the slug and the catalog snapshot it reads.
type Assembler struct {
	repo        catalog.Repository
	resolver    *catalog.Resolver
	renderer    *render.Renderer
	location    *time.Location
	defaultYear string
}

func NewAssembler(repo catalog.Repository, resolver *catalog.Resolver, renderer *render.Renderer, location *time.Location, defaultYear string) *Assembler {
	if location == nil {
		location = time.UTC
	}
	if strings.TrimSpace(defaultYear) == "" {
		defaultYear = DefaultYear
	}
	return &Assembler{
		repo:        repo,
		resolver:    resolver,
		renderer:    renderer,
		location:    location,
		defaultYear: defaultYear,
	}
}

// Assemble builds the page for slug. It reports ErrNotFound rather than
// rendering anything for unknown slugs.
func (a *Assembler) Assemble(ctx context.Context, slug string) (Page, error) {
	project, err := a.resolver.Resolve(ctx, slug)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			return Page{}, ErrNotFound
		}
		return Page{}, err
	}

	var (
		page  Page
		study *content.CaseStudy
	)
	switch p := project.(type) {
	case catalog.Generic:
		study = &p.Study
		page = a.base(p.Study)
		page.Sections = a.genericSections(p.Study)
	case catalog.Bespoke:
		if p.Study != nil {
			study = p.Study
			page = a.base(*p.Study)
		} else {
			page = a.bespokeOnly(p.Page)
		}
		page.Bespoke = true
		page.Sections = bespokeSections(p.Page)
	default:
		return Page{}, ErrNotFound
	}

	if study != nil {
		items, err := a.repo.ListAll(ctx)
		if err != nil {
			return Page{}, err
		}
		prev, next, _ := catalog.Neighbors(items, study.Slug)
		page.Prev = navLink(prev)
		page.Next = navLink(next)
	}
	return page, nil
}

// ListCards returns the work index in declaration order, optionally
// restricted to one category.
func (a *Assembler) ListCards(ctx context.Context, category string) ([]Card, error) {
	items, err := a.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	category = strings.TrimSpace(category)

	cards := make([]Card, 0, len(items))
	for _, item := range items {
		if category != "" && string(item.Category) != category {
			continue
		}
		cards = append(cards, Card{
			Slug:          item.Slug,
			Title:         item.Title,
			Client:        item.Client,
			Excerpt:       item.Excerpt,
			Category:      item.Category,
			CategoryLabel: content.CategoryLabel(item.Category),
			Year:          a.Year(item),
			Featured:      item.Featured,
			Hero:          item.HeroImage,
			Href:          WorkHref(item.Slug),
		})
	}
	return cards, nil
}

// CategoryOptions lists the known categories for filters, marking the
// selected one.
func CategoryOptions(selected string) []CategoryOption {
	cats := content.Categories()
	out := make([]CategoryOption, 0, len(cats))
	for _, c := range cats {
		out = append(out, CategoryOption{Value: c, Label: content.CategoryLabel(c), Selected: string(c) == selected})
	}
	return out
}

// Year is the display year of a case study.
func (a *Assembler) Year(cs content.CaseStudy) string {
	if cs.PublishedAt == nil || cs.PublishedAt.IsZero() {
		return a.defaultYear
	}
	return strconv.Itoa(cs.PublishedAt.In(a.location).Year())
}

func WorkHref(slug string) string {
	return "/work/" + slug
}

func (a *Assembler) base(cs content.CaseStudy) Page {
	page := Page{
		Slug:   cs.Slug,
		Header: header(cs.Title, cs.Client, cs.Category, a.Year(cs)),
		Intro: Intro{
			Excerpt:      cs.Excerpt,
			Deliverables: nonEmpty(cs.Deliverables),
		},
		Results:   results(cs.Results),
		Documents: documents(cs.Attachments),
	}
	if cs.HeroImage.URL != "" {
		hero := cs.HeroImage
		page.Intro.Hero = &hero
		page.Intro.HeroWidth, page.Intro.HeroHeight = render.Dimensions(hero)
	}
	if t := cs.Testimonial; t != nil && strings.TrimSpace(t.Quote) != "" {
		testimonial := *t
		page.Testimonial = &testimonial
	}
	return page
}

func (a *Assembler) bespokeOnly(p catalog.BespokePage) Page {
	h := p.Header
	year := h.Year
	if year == "" {
		year = a.defaultYear
	}
	return Page{
		Slug:   p.Slug,
		Header: header(h.Title, h.Client, h.Category, year),
	}
}

func header(title, client string, category content.Category, year string) Header {
	return Header{
		Breadcrumbs: []Breadcrumb{
			{Label: "Home", Href: "/"},
			{Label: "Work", Href: "/work"},
			{Label: title},
		},
		Category:      category,
		CategoryLabel: content.CategoryLabel(category),
		Title:         title,
		Client:        client,
		Year:          year,
	}
}

// genericSections interleaves the body thirds with the fixed media
// placeholders: circle, first third, landscape, second third, small
// rectangle, last third. Thirds that render to nothing are left out.
func (a *Assembler) genericSections(cs content.CaseStudy) []Section {
	first, second, third := partition.Thirds([]content.Block(cs.Body))

	var img *content.Image
	if cs.HeroImage.URL != "" {
		hero := cs.HeroImage
		img = &hero
	}

	sections := make([]Section, 0, 6)
	for i, part := range [][]content.Block{first, second, third} {
		sections = append(sections, Section{Kind: SectionMedia, Variant: mediaVariants[i], Image: img})
		nodes := a.renderer.Render(part)
		if len(nodes) == 0 {
			continue
		}
		sections = append(sections, Section{Kind: SectionText, Nodes: nodes})
	}
	return sections
}

var mediaVariants = [3]string{MediaCircle, MediaLandscape, MediaSmallRect}

func bespokeSections(p catalog.BespokePage) []Section {
	sections := make([]Section, 0, len(p.Sections))
	for _, html := range p.Sections {
		sections = append(sections, Section{Kind: SectionBespoke, HTML: html})
	}
	return sections
}

func navLink(cs *content.CaseStudy) *NavLink {
	if cs == nil {
		return nil
	}
	return &NavLink{Slug: cs.Slug, Title: cs.Title, Href: WorkHref(cs.Slug)}
}

func documents(items []content.Attachment) []Document {
	var out []Document
	for _, a := range items {
		href := a.Href()
		if href == "" {
			continue
		}
		title := strings.TrimSpace(a.Title)
		if title == "" {
			title = href
		}
		out = append(out, Document{Title: title, Href: href, External: a.FileURL == ""})
	}
	return out
}

func results(items []content.Result) []content.Result {
	var out []content.Result
	for _, r := range items {
		if strings.TrimSpace(r.Metric) == "" && strings.TrimSpace(r.Value) == "" {
			continue
		}
		out = append(out, r)
	}
	return out
}

func nonEmpty(items []string) []string {
	var out []string
	for _, s := range items {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
