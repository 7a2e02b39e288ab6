// Package bespoke holds the projects told through hand-authored markup.
// Each directory under pages/ is one project; its .html files are the
// page sections, in file-name order. A page.yaml next to them supplies
// the header for projects that have no catalog record.
package bespoke

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"path"
	"sort"

	"folio-backend/internal/catalog"
	"folio-backend/internal/content"

	"gopkg.in/yaml.v3"
)

//go:embed pages
var pagesFS embed.FS

const headerFile = "page.yaml"

type headerDoc struct {
	Title    string `yaml:"title"`
	Client   string `yaml:"client"`
	Category string `yaml:"category"`
	Year     string `yaml:"year"`
}

// Registry builds the allow-list from the embedded pages.
func Registry() (*catalog.Registry, error) {
	pages, err := load(pagesFS, "pages")
	if err != nil {
		return nil, err
	}
	return catalog.NewRegistry(pages...)
}

func load(fsys fs.FS, root string) ([]catalog.BespokePage, error) {
	dirs, err := fs.ReadDir(fsys, root)
	if err != nil {
		return nil, fmt.Errorf("bespoke: %w", err)
	}

	var pages []catalog.BespokePage
	for _, dir := range dirs {
		if !dir.IsDir() {
			continue
		}
		slug := dir.Name()
		files, err := fs.ReadDir(fsys, path.Join(root, slug))
		if err != nil {
			return nil, fmt.Errorf("bespoke %s: %w", slug, err)
		}
		names := make([]string, 0, len(files))
		hasHeader := false
		for _, f := range files {
			if f.IsDir() {
				continue
			}
			switch {
			case f.Name() == headerFile:
				hasHeader = true
			case path.Ext(f.Name()) == ".html":
				names = append(names, f.Name())
			}
		}
		sort.Strings(names)

		page := catalog.BespokePage{Slug: slug}
		if hasHeader {
			header, err := readHeader(fsys, path.Join(root, slug, headerFile))
			if err != nil {
				return nil, fmt.Errorf("bespoke %s: %w", slug, err)
			}
			page.Header = header
		}
		for _, name := range names {
			raw, err := fs.ReadFile(fsys, path.Join(root, slug, name))
			if err != nil {
				return nil, fmt.Errorf("bespoke %s/%s: %w", slug, name, err)
			}
			page.Sections = append(page.Sections, template.HTML(raw))
		}
		pages = append(pages, page)
	}
	return pages, nil
}

func readHeader(fsys fs.FS, name string) (*catalog.BespokeHeader, error) {
	raw, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, err
	}
	var doc headerDoc
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", headerFile, err)
	}
	if doc.Title == "" {
		return nil, fmt.Errorf("%s: title is required", headerFile)
	}
	return &catalog.BespokeHeader{
		Title:    doc.Title,
		Client:   doc.Client,
		Category: content.Category(doc.Category),
		Year:     doc.Year,
	}, nil
}
