package adaptor

import (
	"net/http"

	"fleet-rental/internal/dto/request"
	"fleet-rental/internal/usecase"
	"fleet-rental/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ProductHandler struct {
	service usecase.ProductService
	log     *zap.Logger
}

func NewProductHandler(service usecase.ProductService, log *zap.Logger) *ProductHandler {
	return &ProductHandler{
		service: service,
		log:     log.With(zap.String("handler", "product")),
	}
}

// ListProducts handles GET /api/products
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &request.PaginatedRequest{
		Page:    utils.ParseInt(query.Get("page"), 1),
		PerPage: utils.ParseInt(query.Get("per_page"), 10),
	}

	products, err := h.service.List(r.Context(), req)
	if err != nil {
		writeServiceError(w, h.log, err, "list products")
		return
	}

	utils.ResponseSuccess(w, "success", products)
}

// GetCapacity handles GET /api/products/{id}/capacity
func (h *ProductHandler) GetCapacity(w http.ResponseWriter, r *http.Request) {
	companyID, ok := utils.GetCompanyIDFromContext(r.Context())
	if !ok {
		utils.ResponseBadRequest(w, "Company scope required", nil)
		return
	}

	productID := chi.URLParam(r, "id")
	if productID == "" {
		utils.ResponseBadRequest(w, "Product ID is required", nil)
		return
	}

	capacity, err := h.service.Capacity(r.Context(), productID, companyID)
	if err != nil {
		writeServiceError(w, h.log, err, "resolve product capacity")
		return
	}

	utils.ResponseSuccess(w, "success", capacity)
}
