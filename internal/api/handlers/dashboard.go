package handlers

import (
	"log/slog"
	"net/http"

	"github.com/aaravmahajanofficial/shopdesk/internal/api/middleware"
	service "github.com/aaravmahajanofficial/shopdesk/internal/services"
	"github.com/aaravmahajanofficial/shopdesk/internal/utils/response"
)

type DashboardHandler struct {
	service service.DashboardService
}

func NewDashboardHandler(service service.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

// Dashboard godoc
//
//	@Summary		Back-office overview
//	@Description	Counts, revenue, the five latest orders, low stock and products per category.
//	@Tags			Dashboard
//	@Produce		json
//	@Success		200	{object}	response.APIResponse{data=models.DashboardStats}
//	@Failure		502	{object}	response.ErrorResponse
//	@Security		BearerAuth
//	@Router			/dashboard [get]
func (h *DashboardHandler) Dashboard() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		stats, err := h.service.Stats(r.Context())
		if err != nil {
			middleware.LoggerFromContext(r.Context()).Error("Failed to load dashboard", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		render(w, r, http.StatusOK, stats)
	}
}
