package catalog

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"folio-backend/internal/content"
)

//go:embed data/case-studies.json
var staticCatalog []byte

// StaticRepository is the in-process catalog. It is immutable after
// construction and safe for concurrent use.
type StaticRepository struct {
	items []content.CaseStudy
}

// NewStatic copies items and rejects duplicate slugs, so a lookup can
// never be ambiguous.
func NewStatic(items []content.CaseStudy) (*StaticRepository, error) {
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		if _, ok := seen[item.Slug]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateSlug, item.Slug)
		}
		seen[item.Slug] = struct{}{}
	}
	copied := make([]content.CaseStudy, len(items))
	copy(copied, items)
	return &StaticRepository{items: copied}, nil
}

// LoadStatic builds the repository from the embedded catalog file.
func LoadStatic() (*StaticRepository, error) {
	items, err := DecodeCatalog(staticCatalog)
	if err != nil {
		return nil, err
	}
	return NewStatic(items)
}

// DecodeCatalog parses the catalog file format: an ordered JSON array of
// case studies. Array order is the declaration order.
func DecodeCatalog(data []byte) ([]content.CaseStudy, error) {
	var items []content.CaseStudy
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	return items, nil
}

func (r *StaticRepository) ListAll(ctx context.Context) ([]content.CaseStudy, error) {
	out := make([]content.CaseStudy, len(r.items))
	copy(out, r.items)
	return out, nil
}

func (r *StaticRepository) FindBySlug(ctx context.Context, slug string) (content.CaseStudy, error) {
	slug = strings.TrimSpace(slug)
	for _, item := range r.items {
		if item.Slug == slug {
			return item, nil
		}
	}
	return content.CaseStudy{}, ErrNotFound
}
