package distribution

import (
	"errors"
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

func (h *Handler) Set(w http.ResponseWriter, r *http.Request) {
	var req SetRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: %v", shared.ErrValidation, err))
		return
	}
	if err := h.service.Set(r.Context(), req); err != nil {
		h.logger.Error("set allocation failed", slog.Any("error", err), slog.String("product_code", req.ProductCode))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, req)
}

func (h *Handler) BulkSet(w http.ResponseWriter, r *http.Request) {
	roundID, err := strconv.ParseInt(chi.URLParam(r, "roundID"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid round id")
		return
	}
	var req BulkSetRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: %v", shared.ErrValidation, err))
		return
	}
	problems, err := h.service.BulkSet(r.Context(), roundID, req)
	if err != nil {
		// on an enforced rejection the caller needs the offending rows
		if errors.Is(err, shared.ErrOverAllocated) {
			httpx.JSON(w, http.StatusUnprocessableEntity, map[string]any{
				"title":    "Over-Allocated",
				"status":   http.StatusUnprocessableEntity,
				"detail":   err.Error(),
				"problems": problems,
			})
			return
		}
		h.logger.Error("bulk set failed", slog.Any("error", err), slog.Int64("round_id", roundID))
		httpx.RespondError(w, err)
		return
	}
	if problems == nil {
		problems = []Problem{}
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"problems": problems})
}

func (h *Handler) Validate(w http.ResponseWriter, r *http.Request) {
	roundID, err := strconv.ParseInt(chi.URLParam(r, "roundID"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid round id")
		return
	}
	problems, err := h.service.Validate(r.Context(), roundID)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	if problems == nil {
		problems = []Problem{}
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"problems": problems})
}

func (h *Handler) AutoFill(w http.ResponseWriter, r *http.Request) {
	roundID, err := strconv.ParseInt(chi.URLParam(r, "roundID"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid round id")
		return
	}
	cells, err := h.service.AutoFillFromOrders(r.Context(), roundID)
	if err != nil {
		h.logger.Error("autofill failed", slog.Any("error", err), slog.Int64("round_id", roundID))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"cells_written": cells})
}

func (h *Handler) Allocations(w http.ResponseWriter, r *http.Request) {
	roundID, err := strconv.ParseInt(chi.URLParam(r, "roundID"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid round id")
		return
	}
	allocations, err := h.service.AllocationsByRound(r.Context(), roundID)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	if allocations == nil {
		allocations = []ShopAllocation{}
	}
	httpx.JSON(w, http.StatusOK, allocations)
}

func (h *Handler) Matrix(w http.ResponseWriter, r *http.Request) {
	roundID, err := strconv.ParseInt(chi.URLParam(r, "roundID"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid round id")
		return
	}
	matrix, err := h.service.MatrixByRound(r.Context(), roundID)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	if matrix == nil {
		matrix = []MatrixRow{}
	}
	httpx.JSON(w, http.StatusOK, matrix)
}

func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/distribution", h.Set)
	r.Put("/rounds/{roundID}/distribution", h.BulkSet)
	r.Post("/rounds/{roundID}/distribution/autofill", h.AutoFill)
	r.Get("/rounds/{roundID}/distribution", h.Matrix)
	r.Get("/rounds/{roundID}/distribution/validate", h.Validate)
	r.Get("/rounds/{roundID}/allocations", h.Allocations)
}
