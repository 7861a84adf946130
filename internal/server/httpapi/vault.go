package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/passvault/internal/server/models"
	"github.com/dmitrijs2005/passvault/internal/server/repositories/vault"
	"github.com/dmitrijs2005/passvault/internal/server/services"

	"github.com/go-chi/chi/v5"
)

// VaultService defines the vault operations required by the HTTP handlers.
type VaultService interface {
	Create(ctx context.Context, ownerID string, entry *models.VaultEntry) (*models.VaultEntry, error)
	FindByID(ctx context.Context, ownerID, id string) (*models.VaultEntry, error)
	Update(ctx context.Context, ownerID, id string, patch *models.VaultEntryPatch) (*models.VaultEntry, error)
	Delete(ctx context.Context, ownerID, id string) error
	List(ctx context.Context, ownerID string, opts vault.ListOptions) (*services.VaultPage, error)
}

// VaultHandler handles HTTP requests for vault entries. All routes require
// an authenticated principal in the request context.
type VaultHandler struct {
	VaultService VaultService
}

// EntryRequest represents the JSON payload for creating an entry.
type EntryRequest struct {
	SiteName  string   `json:"siteName"`
	Username  string   `json:"username"`
	Secret    string   `json:"secret"`
	Email     string   `json:"email"`
	Phone     string   `json:"phone"`
	Notes     string   `json:"notes"`
	URL       string   `json:"url"`
	AvatarURL string   `json:"avatarUrl"`
	Category  string   `json:"category"`
	Tags      []string `json:"tags"`
	Favorite  bool     `json:"favorite"`
}

// EntryPatchRequest represents the JSON payload for a partial update.
// Absent fields keep their stored values.
type EntryPatchRequest struct {
	SiteName   *string    `json:"siteName"`
	Username   *string    `json:"username"`
	Secret     *string    `json:"secret"`
	Email      *string    `json:"email"`
	Phone      *string    `json:"phone"`
	Notes      *string    `json:"notes"`
	URL        *string    `json:"url"`
	AvatarURL  *string    `json:"avatarUrl"`
	Category   *string    `json:"category"`
	Tags       *[]string  `json:"tags"`
	Favorite   *bool      `json:"favorite"`
	LastUsedAt *time.Time `json:"lastUsedAt"`
}

// EntryResponse is the JSON shape of a vault entry.
type EntryResponse struct {
	ID         string     `json:"id"`
	SiteName   string     `json:"siteName"`
	Username   string     `json:"username"`
	Secret     string     `json:"secret"`
	Email      string     `json:"email,omitempty"`
	Phone      string     `json:"phone,omitempty"`
	Notes      string     `json:"notes,omitempty"`
	URL        string     `json:"url,omitempty"`
	AvatarURL  string     `json:"avatarUrl,omitempty"`
	Category   string     `json:"category,omitempty"`
	Tags       []string   `json:"tags"`
	Favorite   bool       `json:"favorite"`
	LastUsedAt *time.Time `json:"lastUsedAt,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

// PageResponse is the JSON shape of one listing page.
type PageResponse struct {
	Results    []EntryResponse `json:"results"`
	Total      int64           `json:"total"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
	TotalPages int             `json:"totalPages"`
}

// Create stores a new entry for the authenticated account.
func (h *VaultHandler) Create(w http.ResponseWriter, r *http.Request) {
	principal, ok := PrincipalFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authorization required")
		return
	}

	var req EntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	entry := &models.VaultEntry{
		SiteName:  req.SiteName,
		Username:  req.Username,
		Secret:    req.Secret,
		Email:     req.Email,
		Phone:     req.Phone,
		Notes:     req.Notes,
		URL:       req.URL,
		AvatarURL: req.AvatarURL,
		Category:  req.Category,
		Tags:      req.Tags,
		Favorite:  req.Favorite,
	}

	created, err := h.VaultService.Create(r.Context(), principal.AccountID, entry)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, entryResponse(created))
}

// FindByID returns one entry with the secret decrypted.
func (h *VaultHandler) FindByID(w http.ResponseWriter, r *http.Request) {
	principal, ok := PrincipalFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authorization required")
		return
	}

	entry, err := h.VaultService.FindByID(r.Context(), principal.AccountID, chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entryResponse(entry))
}

// Update applies a partial update and returns the refreshed entry.
func (h *VaultHandler) Update(w http.ResponseWriter, r *http.Request) {
	principal, ok := PrincipalFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authorization required")
		return
	}

	var req EntryPatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	patch := &models.VaultEntryPatch{
		SiteName:   req.SiteName,
		Username:   req.Username,
		Secret:     req.Secret,
		Email:      req.Email,
		Phone:      req.Phone,
		Notes:      req.Notes,
		URL:        req.URL,
		AvatarURL:  req.AvatarURL,
		Category:   req.Category,
		Tags:       req.Tags,
		Favorite:   req.Favorite,
		LastUsedAt: req.LastUsedAt,
	}

	updated, err := h.VaultService.Update(r.Context(), principal.AccountID, chi.URLParam(r, "id"), patch)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entryResponse(updated))
}

// Delete removes one entry.
func (h *VaultHandler) Delete(w http.ResponseWriter, r *http.Request) {
	principal, ok := PrincipalFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authorization required")
		return
	}

	if err := h.VaultService.Delete(r.Context(), principal.AccountID, chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "entry deleted")
}

// List returns one page of the account's entries. Supported query
// parameters: page, limit, search, sortBy, sortOrder, category, favorite,
// tags (repeated or comma-separated).
func (h *VaultHandler) List(w http.ResponseWriter, r *http.Request) {
	principal, ok := PrincipalFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authorization required")
		return
	}

	opts, err := parseListOptions(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	page, err := h.VaultService.List(r.Context(), principal.AccountID, opts)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	results := make([]EntryResponse, 0, len(page.Results))
	for _, entry := range page.Results {
		results = append(results, entryResponse(entry))
	}
	writeJSON(w, http.StatusOK, PageResponse{
		Results:    results,
		Total:      page.Total,
		Page:       page.Page,
		Limit:      page.Limit,
		TotalPages: page.TotalPages,
	})
}

// --- helpers below ---

func parseListOptions(r *http.Request) (vault.ListOptions, error) {
	q := r.URL.Query()
	opts := vault.ListOptions{
		Search:    q.Get("search"),
		SortBy:    q.Get("sortBy"),
		SortOrder: q.Get("sortOrder"),
		Category:  q.Get("category"),
	}

	if raw := q.Get("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return opts, errBadQueryParam("page")
		}
		opts.Page = n
	}
	if raw := q.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return opts, errBadQueryParam("limit")
		}
		opts.Limit = n
	}
	if raw := q.Get("favorite"); raw != "" {
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return opts, errBadQueryParam("favorite")
		}
		opts.Favorite = &b
	}
	for _, raw := range q["tags"] {
		for _, tag := range strings.Split(raw, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				opts.Tags = append(opts.Tags, tag)
			}
		}
	}
	return opts, nil
}

type badQueryParamError string

func errBadQueryParam(name string) error { return badQueryParamError(name) }

func (e badQueryParamError) Error() string { return "invalid query parameter: " + string(e) }

func entryResponse(entry *models.VaultEntry) EntryResponse {
	tags := entry.Tags
	if tags == nil {
		tags = []string{}
	}
	return EntryResponse{
		ID:         entry.ID,
		SiteName:   entry.SiteName,
		Username:   entry.Username,
		Secret:     entry.Secret,
		Email:      entry.Email,
		Phone:      entry.Phone,
		Notes:      entry.Notes,
		URL:        entry.URL,
		AvatarURL:  entry.AvatarURL,
		Category:   entry.Category,
		Tags:       tags,
		Favorite:   entry.Favorite,
		LastUsedAt: entry.LastUsedAt,
		CreatedAt:  entry.CreatedAt,
		UpdatedAt:  entry.UpdatedAt,
	}
}
