package adaptor

import (
	"context"
	"encoding/json"
	"net/http"

	"fleet-rental/internal/dto/request"
	"fleet-rental/internal/dto/response"
	"fleet-rental/internal/usecase"
	"fleet-rental/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type BookingHandler struct {
	service usecase.BookingService
	log     *zap.Logger
}

func NewBookingHandler(service usecase.BookingService, log *zap.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		log:     log.With(zap.String("handler", "booking")),
	}
}

// CreateBooking handles POST /api/bookings
func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	companyID, ok := utils.GetCompanyIDFromContext(r.Context())
	if !ok {
		utils.ResponseBadRequest(w, "Company scope required", nil)
		return
	}

	var req request.CreateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	booking, err := h.service.Create(r.Context(), companyID, &req)
	if err != nil {
		writeServiceError(w, h.log, err, "create booking")
		return
	}

	utils.ResponseCreated(w, "success", booking)
}

// GetBooking handles GET /api/bookings/{id}
func (h *BookingHandler) GetBooking(w http.ResponseWriter, r *http.Request) {
	bookingID := chi.URLParam(r, "id")
	if bookingID == "" {
		utils.ResponseBadRequest(w, "Booking ID is required", nil)
		return
	}

	booking, err := h.service.Get(r.Context(), bookingID)
	if err != nil {
		writeServiceError(w, h.log, err, "get booking")
		return
	}

	utils.ResponseSuccess(w, "success", booking)
}

// ListBookings handles GET /api/bookings
func (h *BookingHandler) ListBookings(w http.ResponseWriter, r *http.Request) {
	companyID, ok := utils.GetCompanyIDFromContext(r.Context())
	if !ok {
		utils.ResponseBadRequest(w, "Company scope required", nil)
		return
	}

	query := r.URL.Query()
	req := &request.PaginatedRequest{
		Page:    utils.ParseInt(query.Get("page"), 1),
		PerPage: utils.ParseInt(query.Get("per_page"), 10),
	}

	bookings, err := h.service.List(r.Context(), companyID, query.Get("state"), req)
	if err != nil {
		writeServiceError(w, h.log, err, "list bookings")
		return
	}

	utils.ResponseSuccess(w, "success", bookings)
}

// UpdateBooking handles PUT /api/bookings/{id}
func (h *BookingHandler) UpdateBooking(w http.ResponseWriter, r *http.Request) {
	bookingID := chi.URLParam(r, "id")

	var req request.UpdateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	booking, err := h.service.Update(r.Context(), bookingID, &req)
	if err != nil {
		writeServiceError(w, h.log, err, "update booking")
		return
	}

	utils.ResponseSuccess(w, "success", booking)
}

// DeleteBooking handles DELETE /api/bookings/{id} (draft only)
func (h *BookingHandler) DeleteBooking(w http.ResponseWriter, r *http.Request) {
	bookingID := chi.URLParam(r, "id")

	if err := h.service.Delete(r.Context(), bookingID); err != nil {
		writeServiceError(w, h.log, err, "delete booking")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}

// ReplaceLines handles PUT /api/bookings/{id}/lines
func (h *BookingHandler) ReplaceLines(w http.ResponseWriter, r *http.Request) {
	bookingID := chi.URLParam(r, "id")

	var req request.ReplaceLinesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	booking, err := h.service.ReplaceLines(r.Context(), bookingID, &req)
	if err != nil {
		writeServiceError(w, h.log, err, "replace booking lines")
		return
	}

	utils.ResponseSuccess(w, "success", booking)
}

// AddLine handles POST /api/bookings/{id}/lines
func (h *BookingHandler) AddLine(w http.ResponseWriter, r *http.Request) {
	bookingID := chi.URLParam(r, "id")

	var req request.AddLineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	booking, err := h.service.AddLine(r.Context(), bookingID, &req)
	if err != nil {
		writeServiceError(w, h.log, err, "add booking line")
		return
	}

	utils.ResponseSuccess(w, "success", booking)
}

// RemoveLine handles DELETE /api/bookings/{id}/lines/{lineID}
func (h *BookingHandler) RemoveLine(w http.ResponseWriter, r *http.Request) {
	bookingID := chi.URLParam(r, "id")
	lineID := chi.URLParam(r, "lineID")

	booking, err := h.service.RemoveLine(r.Context(), bookingID, lineID)
	if err != nil {
		writeServiceError(w, h.log, err, "remove booking line")
		return
	}

	utils.ResponseSuccess(w, "success", booking)
}

// ==================== LIFECYCLE TRANSITIONS ====================

// Confirm handles POST /api/bookings/{id}/confirm
func (h *BookingHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	h.runTransition(w, r, "confirm booking", h.service.Confirm)
}

// Reserve handles POST /api/bookings/{id}/reserve
func (h *BookingHandler) Reserve(w http.ResponseWriter, r *http.Request) {
	h.runTransition(w, r, "reserve booking", h.service.Reserve)
}

// Start handles POST /api/bookings/{id}/start
func (h *BookingHandler) Start(w http.ResponseWriter, r *http.Request) {
	h.runTransition(w, r, "start booking", h.service.MarkOngoing)
}

// Finish handles POST /api/bookings/{id}/finish
func (h *BookingHandler) Finish(w http.ResponseWriter, r *http.Request) {
	h.runTransition(w, r, "finish booking", h.service.Finish)
}

// Return handles POST /api/bookings/{id}/return
func (h *BookingHandler) Return(w http.ResponseWriter, r *http.Request) {
	h.runTransition(w, r, "return booking", h.service.Return)
}

// Cancel handles POST /api/bookings/{id}/cancel
func (h *BookingHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	h.runTransition(w, r, "cancel booking", h.service.Cancel)
}

func (h *BookingHandler) runTransition(
	w http.ResponseWriter,
	r *http.Request,
	operation string,
	fn func(ctx context.Context, bookingID string) (*response.BookingResponse, error),
) {
	bookingID := chi.URLParam(r, "id")
	if bookingID == "" {
		utils.ResponseBadRequest(w, "Booking ID is required", nil)
		return
	}

	booking, err := fn(r.Context(), bookingID)
	if err != nil {
		writeServiceError(w, h.log, err, operation)
		return
	}

	utils.ResponseSuccess(w, "success", booking)
}
