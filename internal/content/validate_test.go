package content

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validStudy() CaseStudy {
	return CaseStudy{
		Title:        "Relaunching a neighbourhood bakery",
		Slug:         "neighbourhood-bakery",
		Client:       "Crumb & Co",
		Category:     CategoryBrand,
		Excerpt:      "A new voice for a forty-year-old bakery that wanted to sound as warm as its bread.",
		Deliverables: []string{"Brand voice guide", "Website copy"},
		HeroImage:    Image{URL: "/images/bakery.jpg", Alt: "Loaves cooling on a rack"},
		Body: Body{
			TextBlock{Style: StyleNormal, Spans: []Span{{Text: "Hello"}}},
			ImageBlock{Asset: Image{URL: "/images/shop.jpg", Alt: "Shop front"}},
			Divider{Style: DividerSpacer},
			PullQuote{Text: "Bread, said plainly."},
		},
	}
}

func fieldKinds(res ValidationResult) map[string]ErrorKind {
	out := make(map[string]ErrorKind, len(res.Errors))
	for _, e := range res.Errors {
		out[e.Field] = e.Kind
	}
	return out
}

func TestValidate_Valid(t *testing.T) {
	res := Validate(validStudy())
	assert.True(t, res.Valid(), "unexpected errors: %v", res.Errors)
	assert.Nil(t, res.Details())
}

func TestValidate_HeroImageAltRequired(t *testing.T) {
	cs := validStudy()
	cs.HeroImage.Alt = ""

	res := Validate(cs)
	require.False(t, res.Valid())
	assert.Equal(t, KindMissingRequired, fieldKinds(res)["heroImage.alt"])
}

func TestValidate_ImageBlockAltRequired(t *testing.T) {
	cs := validStudy()
	cs.Body[1] = ImageBlock{Asset: Image{URL: "/images/shop.jpg"}}

	res := Validate(cs)
	require.False(t, res.Valid())
	assert.Equal(t, KindMissingRequired, fieldKinds(res)["body[1].asset.alt"])
}

func TestValidate_FieldKinds(t *testing.T) {
	tests := []struct {
		name  string
		edit  func(cs *CaseStudy)
		field string
		kind  ErrorKind
	}{
		{"missing title", func(cs *CaseStudy) { cs.Title = "" }, "title", KindMissingRequired},
		{"short title", func(cs *CaseStudy) { cs.Title = "Ads" }, "title", KindOutOfRangeLength},
		{"short excerpt", func(cs *CaseStudy) { cs.Excerpt = "Too short." }, "excerpt", KindOutOfRangeLength},
		{"bad slug", func(cs *CaseStudy) { cs.Slug = "Not A Slug" }, "slug", KindFailedPattern},
		{"unknown category", func(cs *CaseStudy) { cs.Category = "podcast" }, "category", KindInvalidEnumValue},
		{"no deliverables", func(cs *CaseStudy) { cs.Deliverables = nil }, "deliverables", KindMissingRequired},
		{"blank deliverable", func(cs *CaseStudy) { cs.Deliverables = []string{""} }, "deliverables[0]", KindMissingRequired},
		{"client too short", func(cs *CaseStudy) { cs.Client = "X" }, "client", KindOutOfRangeLength},
		{"bad divider", func(cs *CaseStudy) { cs.Body[2] = Divider{Style: "wavy"} }, "body[2].style", KindInvalidEnumValue},
		{"empty quote", func(cs *CaseStudy) { cs.Body[3] = PullQuote{} }, "body[3].text", KindMissingRequired},
		{"empty text block", func(cs *CaseStudy) { cs.Body[0] = TextBlock{} }, "body[0].children", KindMissingRequired},
		{"unknown block", func(cs *CaseStudy) { cs.Body[0] = UnknownBlock{Type: "video"} }, "body[0]._type", KindInvalidEnumValue},
		{"malformed block", func(cs *CaseStudy) { cs.Body[1] = UnknownBlock{Type: "block", Malformed: true} }, "body[1]", KindFailedPattern},
		{"testimonial author", func(cs *CaseStudy) { cs.Testimonial = &Testimonial{Quote: "Great"} }, "testimonial.author", KindMissingRequired},
		{"attachment url", func(cs *CaseStudy) {
			cs.Attachments = []Attachment{{Title: "Brief", ExternalURL: "not a url"}}
		}, "attachments[0].externalUrl", KindFailedPattern},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cs := validStudy()
			tt.edit(&cs)
			res := Validate(cs)
			require.False(t, res.Valid())
			kinds := fieldKinds(res)
			assert.Contains(t, kinds, tt.field, "errors: %v", res.Errors)
			assert.Equal(t, tt.kind, kinds[tt.field])
		})
	}
}

func TestValidate_DecodedMalformedBlock(t *testing.T) {
	cs := validStudy()
	require.NoError(t, json.Unmarshal([]byte(`[{"_type": "block", "children": "oops"}]`), &cs.Body))

	res := Validate(cs)
	kinds := fieldKinds(res)
	assert.Equal(t, KindFailedPattern, kinds["body[0]"])
	assert.NotContains(t, kinds, "body[0]._type")
}

func TestValidate_UndefinedLinkMark(t *testing.T) {
	cs := validStudy()
	cs.Body[0] = TextBlock{Spans: []Span{{Text: "see", Marks: []string{"k1"}}}}

	res := Validate(cs)
	assert.Equal(t, KindInvalidEnumValue, fieldKinds(res)["body[0].children[0].marks"])
}

func TestValidateCatalog_DuplicateSlug(t *testing.T) {
	a := validStudy()
	b := validStudy()
	c := validStudy()
	c.Slug = "another-project"

	out := ValidateCatalog([]CaseStudy{a, b, c})
	require.Len(t, out, 1)
	res, ok := out[1]
	require.True(t, ok)
	assert.Equal(t, KindDuplicateValue, fieldKinds(res)["slug"])
}

func TestCategoryLabel(t *testing.T) {
	assert.Equal(t, "Brand Voice", CategoryLabel(CategoryBrand))
	assert.Equal(t, "podcast", CategoryLabel("podcast"))
	assert.True(t, IsValidCategory(CategoryEmail))
	assert.False(t, IsValidCategory("editorial"))
	assert.Len(t, Categories(), 6)
}
