package inventory

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

func (h *Handler) GetByRound(w http.ResponseWriter, r *http.Request) {
	roundID, err := strconv.ParseInt(chi.URLParam(r, "roundID"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid round id")
		return
	}
	rows, err := h.service.GetByRound(r.Context(), roundID)
	if err != nil {
		h.logger.Error("get inventory failed", slog.Any("error", err), slog.Int64("round_id", roundID))
		httpx.RespondError(w, err)
		return
	}
	if rows == nil {
		rows = []Row{}
	}
	httpx.JSON(w, http.StatusOK, rows)
}

func (h *Handler) BulkUpdate(w http.ResponseWriter, r *http.Request) {
	roundID, err := strconv.ParseInt(chi.URLParam(r, "roundID"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid round id")
		return
	}
	var req BulkUpdateRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: %v", shared.ErrValidation, err))
		return
	}
	if err := h.service.BulkUpdate(r.Context(), roundID, req); err != nil {
		h.logger.Error("bulk update inventory failed", slog.Any("error", err), slog.Int64("round_id", roundID))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"updated": len(req.Rows)})
}

func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/rounds/{roundID}/inventory", h.GetByRound)
	r.Put("/rounds/{roundID}/inventory", h.BulkUpdate)
}
