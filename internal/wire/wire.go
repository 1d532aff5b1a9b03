// internal/wire/wire.go
package wire

import (
	"fleet-rental/internal/adaptor"
	"fleet-rental/internal/data/repository"
	"fleet-rental/internal/usecase"
	"fleet-rental/pkg/middleware"
	"fleet-rental/pkg/utils"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// App holds the assembled dependencies
type App struct {
	Router  *chi.Mux
	Service *usecase.Service
}

// Wiring initializes all dependencies
func Wiring(repo *repository.Repository, config *utils.Config, logger *zap.Logger) *App {
	service := usecase.NewService(repo, config, logger)
	handler := adaptor.NewHandler(service, logger)

	router := setupRouter(handler, config, logger)

	return &App{
		Router:  router,
		Service: service,
	}
}

// setupRouter configures the chi router
func setupRouter(
	handler *adaptor.Handler,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Apply global middleware
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS())

	// Company scope applies to every /api route
	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Company(config.Rental.DefaultCompanyID, logger))

		wireBooking(r, handler.Booking)
		wireAvailability(r, handler.Availability, handler.Dashboard)
		wireProduct(r, handler.Product)
		wireWarehouse(r, handler.Warehouse)
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
