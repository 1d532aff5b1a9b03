package adaptor

import (
	"encoding/json"
	"net/http"
	"time"

	"fleet-rental/internal/dto/request"
	"fleet-rental/internal/usecase"
	"fleet-rental/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type AvailabilityHandler struct {
	service usecase.AvailabilityService
	log     *zap.Logger
}

func NewAvailabilityHandler(service usecase.AvailabilityService, log *zap.Logger) *AvailabilityHandler {
	return &AvailabilityHandler{
		service: service,
		log:     log.With(zap.String("handler", "availability")),
	}
}

// GetGrid handles GET /api/availability/grid
func (h *AvailabilityHandler) GetGrid(w http.ResponseWriter, r *http.Request) {
	companyID, ok := utils.GetCompanyIDFromContext(r.Context())
	if !ok {
		utils.ResponseBadRequest(w, "Company scope required", nil)
		return
	}

	query := r.URL.Query()

	productIDs, err := utils.ParseUUIDList(query.Get("product_ids"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid product_ids parameter", nil)
		return
	}
	if len(productIDs) == 0 {
		utils.ResponseBadRequest(w, "product_ids is required", nil)
		return
	}

	dateStart := time.Now()
	if raw := query.Get("date_start"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			utils.ResponseBadRequest(w, "Invalid date_start parameter, expected RFC 3339", nil)
			return
		}
		dateStart = parsed
	}

	gridQuery := usecase.GridQuery{
		ProductIDs: productIDs,
		CompanyID:  companyID,
		DateStart:  dateStart,
		WeekCount:  utils.ParseInt(query.Get("weeks"), 12),
	}

	if raw := query.Get("warehouse_id"); raw != "" {
		warehouseID, err := uuid.Parse(raw)
		if err != nil {
			utils.ResponseBadRequest(w, "Invalid warehouse_id parameter", nil)
			return
		}
		gridQuery.WarehouseID = &warehouseID
	}

	grid, err := h.service.Grid(r.Context(), gridQuery)
	if err != nil {
		writeServiceError(w, h.log, err, "build availability grid")
		return
	}

	utils.ResponseSuccess(w, "success", grid)
}

// PostGrid handles POST /api/availability/grid. Unlike the GET variant it
// accepts a needed overlay, a per-product wanted quantity the grid previews
// against without touching stored state.
func (h *AvailabilityHandler) PostGrid(w http.ResponseWriter, r *http.Request) {
	companyID, ok := utils.GetCompanyIDFromContext(r.Context())
	if !ok {
		utils.ResponseBadRequest(w, "Company scope required", nil)
		return
	}

	var req request.GridRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}
	if errs := utils.ValidateStruct(&req); len(errs) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", errs)
		return
	}

	gridQuery := usecase.GridQuery{
		CompanyID: companyID,
		WeekCount: req.WeekCount,
	}

	for _, raw := range req.ProductIDs {
		productID, err := uuid.Parse(raw)
		if err != nil {
			utils.ResponseBadRequest(w, "Invalid product ID in product_ids", nil)
			return
		}
		gridQuery.ProductIDs = append(gridQuery.ProductIDs, productID)
	}

	dateStart, err := time.Parse(time.RFC3339, req.DateStart)
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid date_start, expected RFC 3339", nil)
		return
	}
	gridQuery.DateStart = dateStart

	if req.WarehouseID != "" {
		warehouseID, err := uuid.Parse(req.WarehouseID)
		if err != nil {
			utils.ResponseBadRequest(w, "Invalid warehouse_id", nil)
			return
		}
		gridQuery.WarehouseID = &warehouseID
	}

	if len(req.Needed) > 0 {
		gridQuery.Needed = make(map[uuid.UUID]decimal.Decimal, len(req.Needed))
		for raw, qty := range req.Needed {
			productID, err := uuid.Parse(raw)
			if err != nil {
				utils.ResponseBadRequest(w, "Invalid product ID in needed", nil)
				return
			}
			gridQuery.Needed[productID] = qty
		}
	}

	grid, err := h.service.Grid(r.Context(), gridQuery)
	if err != nil {
		writeServiceError(w, h.log, err, "build availability grid")
		return
	}

	utils.ResponseSuccess(w, "success", grid)
}

// GetGridForBooking handles GET /api/availability/grid/booking/{id}
func (h *AvailabilityHandler) GetGridForBooking(w http.ResponseWriter, r *http.Request) {
	bookingID := chi.URLParam(r, "id")
	if bookingID == "" {
		utils.ResponseBadRequest(w, "Booking ID is required", nil)
		return
	}

	weeks := utils.ParseInt(r.URL.Query().Get("weeks"), 12)

	grid, err := h.service.GridForBooking(r.Context(), bookingID, weeks)
	if err != nil {
		writeServiceError(w, h.log, err, "build booking availability grid")
		return
	}

	utils.ResponseSuccess(w, "success", grid)
}
