package reports

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/roundstock/roundstock/internal/platform/httpx"
)

type Handler struct {
	logger  *slog.Logger
	service *Service
}

func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

func (h *Handler) Financials(w http.ResponseWriter, r *http.Request) {
	roundID, err := strconv.ParseInt(chi.URLParam(r, "roundID"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid round id")
		return
	}
	financials, err := h.service.RoundFinancials(r.Context(), roundID)
	if err != nil {
		h.logger.Error("round financials failed", slog.Any("error", err), slog.Int64("round_id", roundID))
		httpx.RespondError(w, err)
		return
	}
	if financials.Products == nil {
		financials.Products = []ProductFinancials{}
	}
	httpx.JSON(w, http.StatusOK, financials)
}

func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/rounds/{roundID}/reports/financials", h.Financials)
}
