package wire

import (
	"fleet-rental/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireAvailability(r chi.Router, availabilityHandler *adaptor.AvailabilityHandler, dashboardHandler *adaptor.DashboardHandler) {
	// GET /api/availability/grid - global weekly availability grid
	r.Get("/availability/grid", availabilityHandler.GetGrid)

	// POST /api/availability/grid - grid with a needed overlay
	r.Post("/availability/grid", availabilityHandler.PostGrid)

	// GET /api/availability/grid/booking/{id} - grid anchored at a booking
	r.Get("/availability/grid/booking/{id}", availabilityHandler.GetGridForBooking)

	// GET /api/dashboard - booking KPIs
	r.Get("/dashboard", dashboardHandler.GetDashboard)
}
