package catalog

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/RealRussianBoi/Shopify-Integrated-PDF-Generator/internal/platform/httpx"
)

// Handler serves catalog lookups.
type Handler struct {
	logger *slog.Logger
	items  ItemSource
}

// NewHandler builds Handler instance.
func NewHandler(logger *slog.Logger, items ItemSource) *Handler {
	return &Handler{logger: logger, items: items}
}

// MountRoutes registers catalog routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/item-data", h.itemData)
}

const maxLookup = 100

func (h *Handler) itemData(w http.ResponseWriter, r *http.Request) {
	ids, err := parseVariantIDs(r.URL.Query().Get("variant_ids"))
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "variant_ids must be a comma separated list of positive integers")
		return
	}
	if len(ids) == 0 {
		httpx.JSON(w, http.StatusOK, map[string]any{"items": []Item{}})
		return
	}

	items, err := h.items.Items(r.Context(), ids)
	if err != nil {
		h.logger.Error("catalog lookup failed", "error", err, "variants", len(ids))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	if items == nil {
		items = []Item{}
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": items})
}

func parseVariantIDs(raw string) ([]int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	if len(parts) > maxLookup {
		parts = parts[:maxLookup]
	}
	ids := make([]int64, 0, len(parts))
	seen := make(map[int64]struct{}, len(parts))
	for _, p := range parts {
		id, err := strconv.ParseInt(strings.TrimSpace(p), 10, 64)
		if err != nil || id <= 0 {
			return nil, ErrNotFound
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids, nil
}
