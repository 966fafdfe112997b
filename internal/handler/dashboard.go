package handler

import (
	"net/http"

	"github.com/templui/proofstreak/internal/ctxkeys"
	"github.com/templui/proofstreak/internal/service"
)

type DashboardHandler struct {
	dashboardService *service.DashboardService
}

func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
	}
}

func (h *DashboardHandler) Progress(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	progress, err := h.dashboardService.Progress(r.Context(), user.ID)
	if err != nil {
		writeServiceError(w, err, "failed to compute progress", "user_id", user.ID)
		return
	}

	writeJSON(w, http.StatusOK, progress)
}
