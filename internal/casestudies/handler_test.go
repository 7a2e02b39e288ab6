package casestudies

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"folio-backend/internal/cache"
	"folio-backend/internal/pages"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T, c cache.Cache) http.Handler {
	t.Helper()
	a, _ := fixture(t)
	renderer, err := pages.New(pages.Site{Name: "Folio"})
	require.NoError(t, err)

	h := NewHandler(a, renderer, c, time.Minute, slog.New(slog.DiscardHandler))
	r := chi.NewRouter()
	r.Get("/work", h.WorkIndex)
	r.Get("/work/{slug}", h.WorkPage)
	r.Get("/api/v1/case-studies", h.PublicList)
	r.Get("/api/v1/case-studies/{slug}", h.PublicGetBySlug)
	r.Get("/api/v1/categories", h.Categories)
	r.NotFound(h.NotFound)
	return r
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestWorkPageRendersAndCaches(t *testing.T) {
	mem := cache.NewMemory()
	router := newTestRouter(t, mem)

	rec := get(t, router, "/work/b")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	body := rec.Body.String()
	assert.Contains(t, body, "Beta project")
	assert.Contains(t, body, "<p>paragraph 6</p>")
	assert.Contains(t, body, `href="/work/a"`)
	assert.Contains(t, body, `href="/work/c"`)

	cached, ok, err := mem.Get(t.Context(), PageCachePrefix+"work:b")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, body, string(cached))
}

func TestWorkPageNotFound(t *testing.T) {
	rec := get(t, newTestRouter(t, nil), "/work/z")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.NotContains(t, rec.Body.String(), "paragraph")
}

func TestUnknownRouteUsesNotFoundPage(t *testing.T) {
	rec := get(t, newTestRouter(t, nil), "/nope")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
}

func TestWorkIndexFilters(t *testing.T) {
	router := newTestRouter(t, nil)

	rec := get(t, router, "/work")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	for _, title := range []string{"Alpha project", "Beta project", "Gamma project"} {
		assert.Contains(t, body, title)
	}

	rec = get(t, router, "/work?category=email")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Alpha project")
	assert.NotContains(t, rec.Body.String(), "Beta project")
}

func TestPublicJSON(t *testing.T) {
	router := newTestRouter(t, nil)

	rec := get(t, router, "/api/v1/case-studies")
	require.Equal(t, http.StatusOK, rec.Code)
	var list struct {
		Items []Card `json:"items"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&list))
	assert.Len(t, list.Items, 3)

	rec = get(t, router, "/api/v1/case-studies/b")
	require.Equal(t, http.StatusOK, rec.Code)
	var page struct {
		Slug     string `json:"slug"`
		Sections []struct {
			Kind string `json:"kind"`
		} `json:"sections"`
		Prev *NavLink `json:"prev"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&page))
	assert.Equal(t, "b", page.Slug)
	assert.Len(t, page.Sections, 6)
	require.NotNil(t, page.Prev)
	assert.Equal(t, "a", page.Prev.Slug)

	rec = get(t, router, "/api/v1/case-studies/z")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "not found"))
}

func TestCategoriesEndpoint(t *testing.T) {
	rec := get(t, newTestRouter(t, nil), "/api/v1/categories")
	require.Equal(t, http.StatusOK, rec.Code)
	var out struct {
		Items []CategoryOption `json:"items"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&out))
	assert.Len(t, out.Items, 6)
}

func TestPublicListPaging(t *testing.T) {
	router := newTestRouter(t, nil)

	rec := get(t, router, "/api/v1/case-studies?limit=1&offset=1")
	require.Equal(t, http.StatusOK, rec.Code)
	var list struct {
		Items []Card `json:"items"`
		Total int    `json:"total"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&list))
	require.Len(t, list.Items, 1)
	assert.Equal(t, "b", list.Items[0].Slug)
	assert.Equal(t, 3, list.Total)

	rec = get(t, router, "/api/v1/case-studies?limit=-1")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
