package utils

import (
	"testing"

	"folio-backend/internal/validation"
)

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Harbour Lights":              "harbour-lights",
		"  Crumb & Co  ":              "crumb-and-co",
		"The long read: what's next?": "the-long-read-whats-next",
		"Café menus / Summer 2024":    "cafe-menus-summer-2024",
		"---":                         "",
	}
	for in, want := range cases {
		got := Slugify(in)
		if got != want {
			t.Fatalf("Slugify(%q) = %q, want %q", in, got, want)
		}
		if got != "" && !validation.IsSlug(got) {
			t.Fatalf("Slugify(%q) = %q is not a valid slug", in, got)
		}
	}
}
