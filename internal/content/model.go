// Package content defines the case-study document model shared by the
// catalog, the renderer and the authoring tools.
package content

import "time"

// CaseStudy is one portfolio project. It is read-only once loaded: the
// site never mutates a case study, it renders and partitions it.
type CaseStudy struct {
	Title        string       `bson:"title" json:"title" validate:"required,min=5,max=100"`
	Slug         string       `bson:"slug" json:"slug" validate:"required,slug"`
	Client       string       `bson:"client" json:"client" validate:"required,min=2,max=80"`
	Category     Category     `bson:"category" json:"category" validate:"required,oneof=advertising website longform brand email social"`
	Excerpt      string       `bson:"excerpt" json:"excerpt" validate:"required,min=50,max=300"`
	Body         Body         `bson:"body" json:"body"`
	Deliverables []string     `bson:"deliverables" json:"deliverables" validate:"min=1,dive,required"`
	HeroImage    Image        `bson:"hero_image" json:"heroImage"`
	Attachments  []Attachment `bson:"attachments,omitempty" json:"attachments,omitempty" validate:"dive"`
	Results      []Result     `bson:"results,omitempty" json:"results,omitempty" validate:"dive"`
	Testimonial  *Testimonial `bson:"testimonial,omitempty" json:"testimonial,omitempty" validate:"omitempty"`
	Featured     bool         `bson:"featured" json:"featured"`
	PublishedAt  *time.Time   `bson:"published_at,omitempty" json:"publishedAt,omitempty"`
}

// Image is an image reference. Zero Width or Height means the intrinsic
// size is unknown.
type Image struct {
	URL    string `bson:"url" json:"url" validate:"required"`
	Alt    string `bson:"alt" json:"alt" validate:"required"`
	Width  int    `bson:"width,omitempty" json:"width,omitempty" validate:"gte=0"`
	Height int    `bson:"height,omitempty" json:"height,omitempty" validate:"gte=0"`
}

// Attachment is a downloadable resource: an uploaded file or an external
// link. An attachment carrying neither is kept but never rendered.
type Attachment struct {
	Title       string `bson:"title" json:"title" validate:"required"`
	FileURL     string `bson:"file_url,omitempty" json:"fileUrl,omitempty" validate:"omitempty,url"`
	ExternalURL string `bson:"external_url,omitempty" json:"externalUrl,omitempty" validate:"omitempty,url"`
}

// Href returns the uploaded file when present, the external link otherwise.
func (a Attachment) Href() string {
	if a.FileURL != "" {
		return a.FileURL
	}
	return a.ExternalURL
}

type Result struct {
	Metric      string `bson:"metric" json:"metric" validate:"required"`
	Value       string `bson:"value" json:"value" validate:"required"`
	Description string `bson:"description,omitempty" json:"description,omitempty"`
}

type Testimonial struct {
	Quote  string `bson:"quote" json:"quote" validate:"required"`
	Author string `bson:"author" json:"author" validate:"required"`
	Role   string `bson:"role,omitempty" json:"role,omitempty"`
}
