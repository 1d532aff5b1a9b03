package wire

import (
	"fleet-rental/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireBooking(r chi.Router, bookingHandler *adaptor.BookingHandler) {
	r.Route("/bookings", func(r chi.Router) {
		// POST /api/bookings - create a draft booking
		r.Post("/", bookingHandler.CreateBooking)

		// GET /api/bookings - list bookings (filter by state)
		r.Get("/", bookingHandler.ListBookings)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", bookingHandler.GetBooking)
			r.Put("/", bookingHandler.UpdateBooking)
			r.Delete("/", bookingHandler.DeleteBooking)

			// Line editing (draft/planned only)
			r.Put("/lines", bookingHandler.ReplaceLines)
			r.Post("/lines", bookingHandler.AddLine)
			r.Delete("/lines/{lineID}", bookingHandler.RemoveLine)

			// Lifecycle transitions
			r.Post("/confirm", bookingHandler.Confirm)
			r.Post("/reserve", bookingHandler.Reserve)
			r.Post("/start", bookingHandler.Start)
			r.Post("/finish", bookingHandler.Finish)
			r.Post("/return", bookingHandler.Return)
			r.Post("/cancel", bookingHandler.Cancel)
		})
	})
}
