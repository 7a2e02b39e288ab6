package main

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"folio-backend/internal/admin"
	"folio-backend/internal/bespoke"
	"folio-backend/internal/cache"
	"folio-backend/internal/casestudies"
	"folio-backend/internal/catalog"
	"folio-backend/internal/contact"
	"folio-backend/internal/middleware"
	"folio-backend/internal/pages"
	"folio-backend/internal/render"
	"folio-backend/internal/validation"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testServer(t *testing.T) http.Handler {
	t.Helper()
	log := slog.New(slog.DiscardHandler)

	repo, err := catalog.LoadStatic()
	require.NoError(t, err)
	registry, err := bespoke.Registry()
	require.NoError(t, err)
	renderer, err := pages.New(pages.Site{Name: "Folio"})
	require.NoError(t, err)

	assembler := casestudies.NewAssembler(repo, catalog.NewResolver(repo, registry), render.New(log), time.UTC, "")
	val := validation.New()

	return newRouter(routerDeps{
		Log:            log,
		CaseStudies:    casestudies.NewHandler(assembler, renderer, cache.NewMemory(), time.Minute, log),
		Contact:        contact.NewHandler(contact.NewService(contact.NewMemoryRepository(), time.UTC, nil), val, log),
		Admin:          admin.NewHandler(admin.Credentials{User: "editor"}, nil, val, log),
		AdminAPIKey:    "key",
		ContactLimiter: middleware.NewRateLimiter(5, time.Minute),
		Registry:       prometheus.NewRegistry(),
	})
}

func TestRoutes(t *testing.T) {
	srv := testServer(t)

	cases := []struct {
		method, path string
		header       map[string]string
		status       int
		contains     string
	}{
		{http.MethodGet, "/healthz", nil, http.StatusOK, "ok"},
		{http.MethodGet, "/work", nil, http.StatusOK, "Harbour Lights"},
		{http.MethodGet, "/work/neighbourhood-bakery", nil, http.StatusOK, "Bread, said plainly."},
		{http.MethodGet, "/work/harbour-lights", nil, http.StatusOK, "case-study--bespoke"},
		{http.MethodGet, "/work/studio-notes", nil, http.StatusOK, "Studio notes"},
		{http.MethodGet, "/work/missing", nil, http.StatusNotFound, ""},
		{http.MethodGet, "/about-us", nil, http.StatusNotFound, ""},
		{http.MethodGet, "/api/v1/case-studies", nil, http.StatusOK, "onboarding-emails"},
		{http.MethodGet, "/api/v1/case-studies/rainwater-long-read", nil, http.StatusOK, `"year":"2025"`},
		{http.MethodGet, "/api/v1/categories", nil, http.StatusOK, "Brand Voice"},
		{http.MethodPost, "/api/v1/admin/cache/purge", nil, http.StatusUnauthorized, "unauthorized"},
		{http.MethodPost, "/api/v1/admin/cache/purge", map[string]string{"X-Admin-Key": "key"}, http.StatusOK, "purged"},
		{http.MethodGet, "/metrics", nil, http.StatusOK, "folio_http_requests_total"},
	}

	for _, tc := range cases {
		req := httptest.NewRequest(tc.method, tc.path, nil)
		for k, v := range tc.header {
			req.Header.Set(k, v)
		}
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)

		assert.Equal(t, tc.status, rec.Code, "%s %s", tc.method, tc.path)
		if tc.contains != "" {
			assert.Contains(t, rec.Body.String(), tc.contains, "%s %s", tc.method, tc.path)
		}
		assert.NotEmpty(t, rec.Header().Get(middleware.RequestIDHeader))
	}
}

func TestContactRoute(t *testing.T) {
	srv := testServer(t)
	body := `{"name":"Ada","email":"ada@example.com","message":"Could you help with our launch copy?"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/contact", strings.NewReader(body))
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLevel("debug"))
	assert.Equal(t, slog.LevelWarn, parseLevel("WARN"))
	assert.Equal(t, slog.LevelInfo, parseLevel("chatty"))
}
