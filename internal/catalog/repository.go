// Package catalog provides the case-study content sources behind one
// read-only contract, and resolves slugs to generic or bespoke projects.
package catalog

import (
	"context"
	"errors"

	"folio-backend/internal/content"
)

var (
	ErrNotFound      = errors.New("case study not found")
	ErrDuplicateSlug = errors.New("duplicate case study slug")
)

// Repository is the read contract every content source honours. ListAll
// returns records in catalog declaration order, which is also the
// prev/next navigation order. FindBySlug returns ErrNotFound for unknown
// slugs.
type Repository interface {
	ListAll(ctx context.Context) ([]content.CaseStudy, error)
	FindBySlug(ctx context.Context, slug string) (content.CaseStudy, error)
}

// Neighbors returns the records before and after slug in declaration
// order. The first record has no previous one and the last has no next
// one; there is no wrap-around.
func Neighbors(items []content.CaseStudy, slug string) (prev, next *content.CaseStudy, found bool) {
	for i := range items {
		if items[i].Slug != slug {
			continue
		}
		if i > 0 {
			p := items[i-1]
			prev = &p
		}
		if i < len(items)-1 {
			n := items[i+1]
			next = &n
		}
		return prev, next, true
	}
	return nil, nil, false
}
