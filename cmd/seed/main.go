// Command seed validates a case-study catalog and publishes it to MongoDB
// in declaration order.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"sort"
	"strings"
	"time"

	"folio-backend/internal/catalog"
	"folio-backend/internal/config"
	"folio-backend/internal/content"
	"folio-backend/internal/db"
	"folio-backend/internal/utils"
)

func main() {
	file := flag.String("file", "", "catalog JSON file (defaults to the embedded catalog)")
	prune := flag.Bool("prune", false, "delete stored case studies missing from the catalog")
	dryRun := flag.Bool("dry-run", false, "validate only, do not write")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	items, err := readCatalog(*file)
	if err != nil {
		log.Fatal(err)
	}

	items, problems := prepare(items)
	if len(problems) > 0 {
		for _, p := range problems {
			log.Println(p)
		}
		log.Fatalf("seed aborted: %d invalid record(s)", len(problems))
	}
	log.Printf("catalog valid: %d case studies", len(items))
	if *dryRun {
		return
	}

	uri := cfg.MongoURI
	if uri == "" {
		log.Fatal("seed: MONGO_URI is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, cols, err := db.Connect(ctx, uri, cfg.MongoDB)
	if err != nil {
		log.Fatal(err)
	}
	defer client.Disconnect(context.Background())

	if err := db.EnsureIndexes(ctx, cols); err != nil {
		log.Fatal(err)
	}

	repo := catalog.NewMongoRepository(cols.CaseStudies)
	now := time.Now().In(cfg.Timezone)
	slugs := make([]string, 0, len(items))
	for i, item := range items {
		if err := repo.Upsert(ctx, item, i, now); err != nil {
			log.Fatalf("seed error for %s: %v", item.Slug, err)
		}
		slugs = append(slugs, item.Slug)
	}

	if *prune {
		removed, err := repo.Prune(ctx, slugs)
		if err != nil {
			log.Fatalf("seed prune error: %v", err)
		}
		log.Printf("seed pruned %d stale case studies", removed)
	}

	log.Println("seed completed")
}

func readCatalog(path string) ([]content.CaseStudy, error) {
	if path == "" {
		repo, err := catalog.LoadStatic()
		if err != nil {
			return nil, err
		}
		return repo.ListAll(context.Background())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return catalog.DecodeCatalog(data)
}

// prepare derives missing slugs from titles, then validates the whole
// catalog. It returns one line per invalid record, in record order.
func prepare(items []content.CaseStudy) ([]content.CaseStudy, []string) {
	out := make([]content.CaseStudy, len(items))
	copy(out, items)
	for i := range out {
		if strings.TrimSpace(out[i].Slug) == "" {
			out[i].Slug = utils.Slugify(out[i].Title)
		}
	}

	results := content.ValidateCatalog(out)
	idx := make([]int, 0, len(results))
	for i := range results {
		idx = append(idx, i)
	}
	sort.Ints(idx)

	problems := make([]string, 0, len(idx))
	for _, i := range idx {
		fields := make([]string, 0, len(results[i].Errors))
		for _, e := range results[i].Errors {
			fields = append(fields, e.Error())
		}
		problems = append(problems, fmt.Sprintf("record %d (%s): %s", i, out[i].Slug, strings.Join(fields, "; ")))
	}
	return out, problems
}
