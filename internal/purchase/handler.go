package purchase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/RealRussianBoi/Shopify-Integrated-PDF-Generator/internal/platform/httpx"
)

// PDFRenderer turns an order into a finished PDF document.
type PDFRenderer interface {
	RenderOrder(ctx context.Context, order Order) ([]byte, error)
}

// PDFEnqueuer queues an order for background rendering and returns the
// document identifier the caller can poll.
type PDFEnqueuer interface {
	EnqueueOrderPDF(ctx context.Context, orderID int64) (string, error)
}

// Handler manages purchase order endpoints.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	renderer PDFRenderer
	enqueuer PDFEnqueuer
}

// NewHandler builds Handler instance. Renderer and enqueuer are optional;
// the PDF endpoints answer 503 without them.
func NewHandler(logger *slog.Logger, service *Service, renderer PDFRenderer, enqueuer PDFEnqueuer) *Handler {
	return &Handler{logger: logger, service: service, renderer: renderer, enqueuer: enqueuer}
}

// MountRoutes registers purchase order routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.deleteDraft)
	r.Post("/{id}/finalize", h.finalize)
	r.Post("/{id}/receive", h.receive)
	r.Post("/{id}/status", h.setStatus)
	r.Get("/{id}/pdf", h.renderPDF)
	r.Post("/{id}/pdf", h.enqueuePDF)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, _ := strconv.Atoi(q.Get("limit"))
	offset, _ := strconv.Atoi(q.Get("offset"))
	vendor, _ := strconv.ParseInt(q.Get("vendor_id"), 10, 64)

	items, total, err := h.service.List(r.Context(), limit, offset, ListFilters{
		Status:  q.Get("status"),
		Vendor:  vendor,
		Search:  q.Get("search"),
		SortBy:  q.Get("sort_by"),
		SortDir: q.Get("sort_dir"),
	})
	if err != nil {
		h.logger.Error("list purchase orders failed", "error", err)
		h.respondError(w, err)
		return
	}
	if items == nil {
		items = []ListItem{}
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": items, "total": total})
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req SaveOrderRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	if err := req.Validate(); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}

	order, err := h.service.CreateDraft(r.Context(), req.ToSaveInput())
	if errors.Is(err, ErrValidation) {
		httpx.JSON(w, http.StatusUnprocessableEntity, order.Validation)
		return
	}
	if err != nil {
		h.logger.Error("create purchase order failed", "error", err)
		h.respondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, order)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.orderID(w, r)
	if !ok {
		return
	}
	order, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.respondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, order)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.orderID(w, r)
	if !ok {
		return
	}
	var req SaveOrderRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	if err := req.Validate(); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}

	order, err := h.service.Update(r.Context(), id, req.ToSaveInput())
	if errors.Is(err, ErrValidation) {
		httpx.JSON(w, http.StatusUnprocessableEntity, order.Validation)
		return
	}
	if err != nil {
		h.logger.Error("update purchase order failed", "error", err, "id", id)
		h.respondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, order)
}

func (h *Handler) deleteDraft(w http.ResponseWriter, r *http.Request) {
	id, ok := h.orderID(w, r)
	if !ok {
		return
	}
	if err := h.service.DeleteDraft(r.Context(), id); err != nil {
		h.respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) finalize(w http.ResponseWriter, r *http.Request) {
	id, ok := h.orderID(w, r)
	if !ok {
		return
	}
	res, err := h.service.Finalize(r.Context(), id)
	if errors.Is(err, ErrValidation) {
		httpx.JSON(w, http.StatusUnprocessableEntity, res)
		return
	}
	if err != nil {
		h.respondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, res)
}

func (h *Handler) receive(w http.ResponseWriter, r *http.Request) {
	id, ok := h.orderID(w, r)
	if !ok {
		return
	}
	var req ReceiveRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	if err := req.Validate(); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}

	order, err := h.service.Receive(r.Context(), id, req.ToReceipts())
	if err != nil {
		h.respondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, order)
}

func (h *Handler) setStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := h.orderID(w, r)
	if !ok {
		return
	}
	var req StatusRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	if err := req.Validate(); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}

	if err := h.service.SetStatus(r.Context(), id, Status(req.Status)); err != nil {
		h.respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) renderPDF(w http.ResponseWriter, r *http.Request) {
	if h.renderer == nil {
		httpx.Problem(w, http.StatusServiceUnavailable, "Unavailable", "PDF rendering is not configured")
		return
	}
	id, ok := h.orderID(w, r)
	if !ok {
		return
	}
	order, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.respondError(w, err)
		return
	}
	pdf, err := h.renderer.RenderOrder(r.Context(), order)
	if err != nil {
		h.logger.Error("render purchase order pdf failed", "error", err, "id", id)
		httpx.Problem(w, http.StatusBadGateway, "Render Failed", "the document renderer did not produce a PDF")
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", order.Header.PONumber+".pdf"))
	_, _ = w.Write(pdf)
}

func (h *Handler) enqueuePDF(w http.ResponseWriter, r *http.Request) {
	if h.enqueuer == nil {
		httpx.Problem(w, http.StatusServiceUnavailable, "Unavailable", "background rendering is not configured")
		return
	}
	id, ok := h.orderID(w, r)
	if !ok {
		return
	}
	if _, err := h.service.Get(r.Context(), id); err != nil {
		h.respondError(w, err)
		return
	}
	docID, err := h.enqueuer.EnqueueOrderPDF(r.Context(), id)
	if err != nil {
		h.logger.Error("enqueue purchase order pdf failed", "error", err, "id", id)
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	httpx.JSON(w, http.StatusAccepted, map[string]string{"document_id": docID})
}

func (h *Handler) orderID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid order id")
		return 0, false
	}
	return id, true
}

func (h *Handler) respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		httpx.Problem(w, http.StatusNotFound, "Not Found", "purchase order not found")
	case errors.Is(err, ErrDuplicate):
		httpx.Problem(w, http.StatusConflict, "Duplicate", "po number already exists")
	case errors.Is(err, ErrLocked):
		httpx.Problem(w, http.StatusConflict, "Read Only", "the order can no longer be edited")
	case errors.Is(err, ErrInvalidState):
		httpx.Problem(w, http.StatusConflict, "Invalid State", "the requested transition is not allowed")
	case errors.Is(err, ErrValidation):
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "")
	default:
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
	}
}
