package adaptor

import (
	"encoding/json"
	"net/http"

	"fleet-rental/internal/dto/request"
	"fleet-rental/internal/usecase"
	"fleet-rental/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type WarehouseHandler struct {
	service usecase.WarehouseService
	log     *zap.Logger
}

func NewWarehouseHandler(service usecase.WarehouseService, log *zap.Logger) *WarehouseHandler {
	return &WarehouseHandler{
		service: service,
		log:     log.With(zap.String("handler", "warehouse")),
	}
}

// ListWarehouses handles GET /api/warehouses
func (h *WarehouseHandler) ListWarehouses(w http.ResponseWriter, r *http.Request) {
	companyID, ok := utils.GetCompanyIDFromContext(r.Context())
	if !ok {
		utils.ResponseBadRequest(w, "Company scope required", nil)
		return
	}

	warehouses, err := h.service.List(r.Context(), companyID)
	if err != nil {
		writeServiceError(w, h.log, err, "list warehouses")
		return
	}

	utils.ResponseSuccess(w, "success", warehouses)
}

// GetWarehouse handles GET /api/warehouses/{id}
func (h *WarehouseHandler) GetWarehouse(w http.ResponseWriter, r *http.Request) {
	warehouseID := chi.URLParam(r, "id")
	if warehouseID == "" {
		utils.ResponseBadRequest(w, "Warehouse ID is required", nil)
		return
	}

	warehouse, err := h.service.Get(r.Context(), warehouseID)
	if err != nil {
		writeServiceError(w, h.log, err, "get warehouse")
		return
	}

	utils.ResponseSuccess(w, "success", warehouse)
}

// SetRentalLocation handles PUT /api/warehouses/{id}/rental-location
func (h *WarehouseHandler) SetRentalLocation(w http.ResponseWriter, r *http.Request) {
	warehouseID := chi.URLParam(r, "id")

	var req request.SetRentalLocationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	warehouse, err := h.service.SetRentalLocation(r.Context(), warehouseID, &req)
	if err != nil {
		writeServiceError(w, h.log, err, "set rental location")
		return
	}

	utils.ResponseSuccess(w, "success", warehouse)
}
