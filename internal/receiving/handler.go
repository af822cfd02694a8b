package receiving

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/roundstock/roundstock/internal/platform/httpx"
	"github.com/roundstock/roundstock/internal/shared"
)

type Handler struct {
	logger   *slog.Logger
	service  *Service
	validate *validator.Validate
}

func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{
		logger:   logger,
		service:  service,
		validate: validator.New(),
	}
}

func (h *Handler) CreateReceipt(w http.ResponseWriter, r *http.Request) {
	var req CreateReceiptRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: %v", shared.ErrValidation, err))
		return
	}
	receipt, err := h.service.CreateReceipt(r.Context(), req)
	if err != nil {
		h.logger.Error("create receipt failed", slog.Any("error", err), slog.Int64("round_id", req.RoundID))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, receipt)
}

func (h *Handler) AddItem(w http.ResponseWriter, r *http.Request) {
	receiptID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid receipt id")
		return
	}
	var req AddItemRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: %v", shared.ErrValidation, err))
		return
	}
	item, err := h.service.AddItem(r.Context(), receiptID, req)
	if err != nil {
		h.logger.Error("add receipt item failed", slog.Any("error", err), slog.Int64("receipt_id", receiptID))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, item)
}

func (h *Handler) ListByRound(w http.ResponseWriter, r *http.Request) {
	roundID, err := strconv.ParseInt(chi.URLParam(r, "roundID"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid round id")
		return
	}
	receipts, err := h.service.ListByRound(r.Context(), roundID)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	if receipts == nil {
		receipts = []Receipt{}
	}
	httpx.JSON(w, http.StatusOK, receipts)
}

func (h *Handler) ListItems(w http.ResponseWriter, r *http.Request) {
	receiptID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid receipt id")
		return
	}
	items, err := h.service.ListItems(r.Context(), receiptID)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	if items == nil {
		items = []ReceiptItem{}
	}
	httpx.JSON(w, http.StatusOK, items)
}

func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/receipts", h.CreateReceipt)
	r.Post("/receipts/{id}/items", h.AddItem)
	r.Get("/receipts/{id}/items", h.ListItems)
	r.Get("/rounds/{roundID}/receipts", h.ListByRound)
}
