package casestudies

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"folio-backend/internal/cache"
	"folio-backend/internal/httpx"
	"folio-backend/internal/middleware"
	"folio-backend/internal/pages"
	"folio-backend/internal/transport"

	"github.com/go-chi/chi/v5"
)

// PageCachePrefix namespaces rendered HTML in the cache.
const PageCachePrefix = "page:"

type Handler struct {
	assembler *Assembler
	pages     *pages.Renderer
	cache     cache.Cache
	cacheTTL  time.Duration
	log       *slog.Logger
}

func NewHandler(assembler *Assembler, pageRenderer *pages.Renderer, c cache.Cache, cacheTTL time.Duration, log *slog.Logger) *Handler {
	if c == nil {
		c = cache.NewNoop()
	}
	return &Handler{
		assembler: assembler,
		pages:     pageRenderer,
		cache:     c,
		cacheTTL:  cacheTTL,
		log:       log,
	}
}

type workIndexView struct {
	Category   string
	Categories []CategoryOption
	Cards      []Card
}

func (h *Handler) WorkIndex(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	category := strings.TrimSpace(r.URL.Query().Get("category"))

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	cards, err := h.assembler.ListCards(ctx, category)
	if err != nil {
		log.Error("work index: catalog error", slog.String("error", err.Error()))
		h.writeErrorPage(w, log)
		return
	}

	view := workIndexView{Category: category, Categories: CategoryOptions(category), Cards: cards}
	if err := h.pages.Write(w, http.StatusOK, pages.WorkIndex, view); err != nil {
		log.Error("work index: render error", slog.String("error", err.Error()))
		h.writeErrorPage(w, log)
		return
	}
	log.Info("work index: ok", slog.Int("count", len(cards)), slog.String("category", category))
}

func (h *Handler) WorkPage(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	slug := strings.TrimSpace(chi.URLParam(r, "slug"))

	cacheKey := PageCachePrefix + "work:" + slug
	if cached, ok, err := h.cache.Get(r.Context(), cacheKey); err == nil && ok {
		log.Info("work page: cache hit", slog.String("slug", slug))
		pages.WriteHTML(w, http.StatusOK, cached)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	page, err := h.assembler.Assemble(ctx, slug)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			log.Info("work page: not found", slog.String("slug", slug))
			h.writeNotFound(w, log)
			return
		}
		log.Error("work page: catalog error", slog.String("slug", slug), slog.String("error", err.Error()))
		h.writeErrorPage(w, log)
		return
	}

	body, err := h.pages.Render(pages.CaseStudy, page)
	if err != nil {
		log.Error("work page: render error", slog.String("slug", slug), slog.String("error", err.Error()))
		h.writeErrorPage(w, log)
		return
	}
	if err := h.cache.Set(r.Context(), cacheKey, body, h.cacheTTL); err != nil {
		log.Warn("work page: cache set failed", slog.String("error", err.Error()))
	}

	log.Info("work page: ok", slog.String("slug", slug), slog.Bool("bespoke", page.Bespoke))
	pages.WriteHTML(w, http.StatusOK, body)
}

// NotFound renders the site 404 page for unmatched routes.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.writeNotFound(w, h.logWithRequest(r))
}

func (h *Handler) PublicList(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	category := strings.TrimSpace(r.URL.Query().Get("category"))
	limit, offset, err := httpx.ParseLimitOffset(r.URL.Query(), 50, 200)
	if err != nil {
		log.Warn("case studies public list: invalid paging", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	cards, err := h.assembler.ListCards(ctx, category)
	if err != nil {
		log.Error("case studies public list: catalog error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "catalog error", nil)
		return
	}

	log.Info("case studies public list: ok", slog.Int("count", len(cards)))
	transport.WriteList(w, httpx.Page(cards, limit, offset), len(cards), limit, offset)
}

func (h *Handler) PublicGetBySlug(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	slug := strings.TrimSpace(chi.URLParam(r, "slug"))
	if slug == "" {
		log.Warn("case studies public get: missing slug")
		transport.WriteError(w, http.StatusBadRequest, "missing slug", nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	page, err := h.assembler.Assemble(ctx, slug)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			log.Info("case studies public get: not found", slog.String("slug", slug))
			transport.WriteError(w, http.StatusNotFound, "case study not found", nil)
			return
		}
		log.Error("case studies public get: catalog error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "catalog error", nil)
		return
	}

	log.Info("case studies public get: ok", slog.String("slug", slug))
	transport.WriteJSON(w, http.StatusOK, page)
}

func (h *Handler) Categories(w http.ResponseWriter, r *http.Request) {
	opts := CategoryOptions("")
	transport.WriteList(w, opts, len(opts), 0, 0)
}

func (h *Handler) writeNotFound(w http.ResponseWriter, log *slog.Logger) {
	if err := h.pages.Write(w, http.StatusNotFound, pages.NotFound, nil); err != nil {
		log.Error("not found page: render error", slog.String("error", err.Error()))
		http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
	}
}

func (h *Handler) writeErrorPage(w http.ResponseWriter, log *slog.Logger) {
	if err := h.pages.Write(w, http.StatusInternalServerError, pages.Error, nil); err != nil {
		log.Error("error page: render error", slog.String("error", err.Error()))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

func (h *Handler) logWithRequest(r *http.Request) *slog.Logger {
	if r == nil {
		return h.log
	}
	if id := middleware.RequestIDFromContext(r.Context()); id != "" {
		return h.log.With(slog.String("request_id", id))
	}
	return h.log
}
