// Package admin serves the authoring endpoints: login for the editor,
// validation of candidate case studies before publishing, and cache
// purges after a publish.
package admin

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"folio-backend/internal/auth"
	"folio-backend/internal/content"
	"folio-backend/internal/httpx"
	"folio-backend/internal/middleware"
	"folio-backend/internal/transport"
	"folio-backend/internal/utils"
	"folio-backend/internal/validation"
)

// Purger drops cached content. Both the catalog cache and the rendered
// page cache implement it.
type Purger interface {
	Purge(ctx context.Context) error
}

// PurgerFunc adapts a function to Purger.
type PurgerFunc func(ctx context.Context) error

func (f PurgerFunc) Purge(ctx context.Context) error { return f(ctx) }

type Credentials struct {
	User         string
	PasswordHash string
	CookieSecure bool
}

type Handler struct {
	creds   Credentials
	manager *auth.Manager
	purgers []Purger
	val     *validation.Validator
	log     *slog.Logger
}

// NewHandler accepts a nil manager; login then answers 503.
func NewHandler(creds Credentials, manager *auth.Manager, val *validation.Validator, log *slog.Logger, purgers ...Purger) *Handler {
	return &Handler{
		creds:   creds,
		manager: manager,
		purgers: purgers,
		val:     val,
		log:     log,
	}
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type statusResponse struct {
	Status string `json:"status"`
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	var req LoginRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		log.Warn("admin login: invalid json")
		transport.WriteError(w, http.StatusBadRequest, "invalid json", nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		log.Warn("admin login: validation error")
		transport.WriteError(w, http.StatusBadRequest, "validation error", httpx.ValidationDetails(h.val.ValidationErrors(err)))
		return
	}

	if h.manager == nil || h.creds.PasswordHash == "" {
		log.Warn("admin login: not configured")
		transport.WriteError(w, http.StatusServiceUnavailable, "admin auth not configured", nil)
		return
	}

	userOK := req.Username == h.creds.User
	// Always run bcrypt so a wrong username costs the same as a wrong password.
	passErr := auth.ComparePassword(h.creds.PasswordHash, req.Password)
	if !userOK || passErr != nil {
		log.Warn("admin login: invalid credentials", slog.String("username", req.Username))
		transport.WriteError(w, http.StatusUnauthorized, "invalid credentials", nil)
		return
	}

	token, err := h.manager.NewAccessToken(req.Username, auth.RoleAdmin)
	if err != nil {
		log.Error("admin login: token error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "token error", nil)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.AccessCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.creds.CookieSecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(h.manager.AccessTTL().Seconds()),
	})
	log.Info("admin login: ok", slog.String("username", req.Username))
	transport.WriteJSON(w, http.StatusOK, statusResponse{Status: "ok"})
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.AccessCookie,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   h.creds.CookieSecure,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
	})
	h.logWithRequest(r).Info("admin logout: ok")
	transport.WriteJSON(w, http.StatusOK, statusResponse{Status: "ok"})
}

type validateResponse struct {
	Valid         bool                 `json:"valid"`
	Errors        []content.FieldError `json:"errors,omitempty"`
	SuggestedSlug string               `json:"suggestedSlug,omitempty"`
}

// ValidateCaseStudy checks one candidate record. Invalid candidates are
// reported with 422 and the full list of field errors.
func (h *Handler) ValidateCaseStudy(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	var cs content.CaseStudy
	if err := decodeCandidate(w, r, &cs); err != nil {
		log.Warn("admin validate: invalid json", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusBadRequest, "invalid json", nil)
		return
	}

	res := content.Validate(cs)
	out := validateResponse{Valid: res.Valid(), Errors: res.Errors}
	if !validation.IsSlug(cs.Slug) {
		out.SuggestedSlug = utils.Slugify(cs.Title)
	}

	status := http.StatusOK
	if !out.Valid {
		status = http.StatusUnprocessableEntity
	}
	log.Info("admin validate: done", slog.String("slug", cs.Slug), slog.Int("errors", len(res.Errors)))
	transport.WriteJSON(w, status, out)
}

type catalogEntry struct {
	Index  int                  `json:"index"`
	Slug   string               `json:"slug"`
	Errors []content.FieldError `json:"errors"`
}

// ValidateCatalog checks a whole catalog, including slug uniqueness
// across records.
func (h *Handler) ValidateCatalog(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	var items []content.CaseStudy
	if err := decodeCandidate(w, r, &items); err != nil {
		log.Warn("admin validate catalog: invalid json", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusBadRequest, "invalid json", nil)
		return
	}

	results := content.ValidateCatalog(items)
	invalid := make([]catalogEntry, 0, len(results))
	for i := range items {
		if res, ok := results[i]; ok {
			invalid = append(invalid, catalogEntry{Index: i, Slug: items[i].Slug, Errors: res.Errors})
		}
	}

	status := http.StatusOK
	if len(invalid) > 0 {
		status = http.StatusUnprocessableEntity
	}
	log.Info("admin validate catalog: done", slog.Int("count", len(items)), slog.Int("invalid", len(invalid)))
	transport.WriteJSON(w, status, map[string]interface{}{
		"valid":   len(invalid) == 0,
		"count":   len(items),
		"invalid": invalid,
	})
}

func (h *Handler) PurgeCache(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var errs []error
	for _, p := range h.purgers {
		if err := p.Purge(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		log.Error("admin purge: cache error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusBadGateway, "cache purge failed", nil)
		return
	}

	log.Info("admin purge: ok", slog.Int("stores", len(h.purgers)))
	transport.WriteJSON(w, http.StatusOK, statusResponse{Status: "purged"})
}

// decodeCandidate is lenient about unknown fields: authoring tools send
// extra metadata that validation does not care about.
func decodeCandidate(w http.ResponseWriter, r *http.Request, v interface{}) error {
	return json.NewDecoder(http.MaxBytesReader(w, r.Body, httpx.MaxBodyBytes)).Decode(v)
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
