package orders

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

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateOrderRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: %v", shared.ErrValidation, err))
		return
	}
	order, err := h.service.Create(r.Context(), req)
	if err != nil {
		h.logger.Error("create order failed", slog.Any("error", err), slog.Int64("round_id", req.RoundID))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, order)
}

func (h *Handler) AddItem(w http.ResponseWriter, r *http.Request) {
	orderID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid order id")
		return
	}
	var req AddOrderItemRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: %v", shared.ErrValidation, err))
		return
	}
	item, err := h.service.AddItem(r.Context(), orderID, req)
	if err != nil {
		h.logger.Error("add order item failed", slog.Any("error", err), slog.Int64("order_id", orderID))
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
	result, err := h.service.ListByRound(r.Context(), roundID)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	if result == nil {
		result = []Order{}
	}
	httpx.JSON(w, http.StatusOK, result)
}

func (h *Handler) ListItems(w http.ResponseWriter, r *http.Request) {
	orderID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid order id")
		return
	}
	items, err := h.service.ListItems(r.Context(), orderID)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	if items == nil {
		items = []OrderItem{}
	}
	httpx.JSON(w, http.StatusOK, items)
}

func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	roundID, err := strconv.ParseInt(chi.URLParam(r, "roundID"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid round id")
		return
	}
	summary, err := h.service.SummaryByRound(r.Context(), roundID)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	if summary == nil {
		summary = []SummaryRow{}
	}
	httpx.JSON(w, http.StatusOK, summary)
}

func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/orders", h.Create)
	r.Post("/orders/{id}/items", h.AddItem)
	r.Get("/orders/{id}/items", h.ListItems)
	r.Get("/rounds/{roundID}/orders", h.ListByRound)
	r.Get("/rounds/{roundID}/orders/summary", h.Summary)
}
