package casestudies

import (
	"html/template"

	"folio-backend/internal/content"
	"folio-backend/internal/render"
)

type SectionKind string

const (
	SectionMedia   SectionKind = "media"
	SectionText    SectionKind = "text"
	SectionBespoke SectionKind = "bespoke"
)

// Media placeholder shapes, in page order.
const (
	MediaCircle    = "circle"
	MediaLandscape = "landscape"
	MediaSmallRect = "small-rect"
)

// Page is a fully assembled case-study page. Optional parts are nil or
// empty when there is nothing to show; templates omit them entirely.
type Page struct {
	Slug        string               `json:"slug"`
	Bespoke     bool                 `json:"bespoke"`
	Header      Header               `json:"header"`
	Intro       Intro                `json:"intro"`
	Sections    []Section            `json:"sections"`
	Results     []content.Result     `json:"results,omitempty"`
	Testimonial *content.Testimonial `json:"testimonial,omitempty"`
	Documents   []Document           `json:"documents,omitempty"`
	Prev        *NavLink             `json:"prev,omitempty"`
	Next        *NavLink             `json:"next,omitempty"`
}

type Breadcrumb struct {
	Label string `json:"label"`
	Href  string `json:"href,omitempty"`
}

type Header struct {
	Breadcrumbs   []Breadcrumb     `json:"breadcrumbs"`
	Category      content.Category `json:"category"`
	CategoryLabel string           `json:"categoryLabel"`
	Title         string           `json:"title"`
	Client        string           `json:"client"`
	Year          string           `json:"year"`
}

type Intro struct {
	Excerpt      string         `json:"excerpt,omitempty"`
	Deliverables []string       `json:"deliverables,omitempty"`
	Hero         *content.Image `json:"hero,omitempty"`
	HeroWidth    int            `json:"heroWidth,omitempty"`
	HeroHeight   int            `json:"heroHeight,omitempty"`
}

// Section is one band of the page: a media placeholder, a slice of the
// rendered body, or a hand-authored bespoke section.
type Section struct {
	Kind    SectionKind    `json:"kind"`
	Variant string         `json:"variant,omitempty"`
	Image   *content.Image `json:"image,omitempty"`
	Nodes   []render.Node  `json:"nodes,omitempty"`
	HTML    template.HTML  `json:"html,omitempty"`
}

type Document struct {
	Title    string `json:"title"`
	Href     string `json:"href"`
	External bool   `json:"external"`
}

type NavLink struct {
	Slug  string `json:"slug"`
	Title string `json:"title"`
	Href  string `json:"href"`
}

// Card is a work index entry.
type Card struct {
	Slug          string           `json:"slug"`
	Title         string           `json:"title"`
	Client        string           `json:"client"`
	Excerpt       string           `json:"excerpt"`
	Category      content.Category `json:"category"`
	CategoryLabel string           `json:"categoryLabel"`
	Year          string           `json:"year"`
	Featured      bool             `json:"featured"`
	Hero          content.Image    `json:"hero"`
	Href          string           `json:"href"`
}

type CategoryOption struct {
	Value    content.Category `json:"value"`
	Label    string           `json:"label"`
	Selected bool             `json:"selected,omitempty"`
}
