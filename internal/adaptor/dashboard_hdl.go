package adaptor

import (
	"net/http"

	"fleet-rental/internal/usecase"
	"fleet-rental/pkg/utils"

	"go.uber.org/zap"
)

type DashboardHandler struct {
	service usecase.DashboardService
	log     *zap.Logger
}

func NewDashboardHandler(service usecase.DashboardService, log *zap.Logger) *DashboardHandler {
	return &DashboardHandler{
		service: service,
		log:     log.With(zap.String("handler", "dashboard")),
	}
}

// GetDashboard handles GET /api/dashboard
func (h *DashboardHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	companyID, ok := utils.GetCompanyIDFromContext(r.Context())
	if !ok {
		utils.ResponseBadRequest(w, "Company scope required", nil)
		return
	}

	data, err := h.service.Data(r.Context(), companyID)
	if err != nil {
		writeServiceError(w, h.log, err, "get dashboard data")
		return
	}

	utils.ResponseSuccess(w, "success", data)
}
