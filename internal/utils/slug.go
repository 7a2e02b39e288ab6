package utils

import (
	"strings"

	"github.com/gosimple/slug"
)

// Slugify turns a case-study title into a URL slug: lower-case ASCII
// words joined by single hyphens. Ampersands read as "and".
func Slugify(input string) string {
	s := strings.ReplaceAll(strings.TrimSpace(input), "'", "")
	s = strings.ReplaceAll(s, "’", "")
	return slug.MakeLang(s, "en")
}
