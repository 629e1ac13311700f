package masterdata

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/RealRussianBoi/Shopify-Integrated-PDF-Generator/internal/platform/httpx"
)

// Handler serves master data endpoints.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler builds Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

// MountRoutes registers master data routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/data-for-new", h.dataForNew)
}

func (h *Handler) dataForNew(w http.ResponseWriter, r *http.Request) {
	data, err := h.service.DataForNew(r.Context())
	if err != nil {
		h.logger.Error("load data-for-new failed", "error", err)
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	httpx.JSON(w, http.StatusOK, data)
}
