// main.go
package main

import (
	"context"
	"log"
	"time"

	"fleet-rental/cmd"
	"fleet-rental/internal/data/repository"
	"fleet-rental/internal/wire"
	"fleet-rental/pkg/database"
	"fleet-rental/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	// Connect to database
	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	// Initialize all repositories
	repos := repository.NewRepository(db, logger)

	// Wire all dependencies
	app := wire.Wiring(repos, config, logger)

	// Periodic overdue-booking scan (advisory; never transitions state)
	startReconcileLoop(app, config, logger)

	// Start server
	logger.Info("Starting HTTP server", zap.String("port", config.App.Port))

	cmd.APIServer(app.Router, config.App.Port)
}

func startReconcileLoop(app *wire.App, config *utils.Config, logger *zap.Logger) {
	companyID, err := uuid.Parse(config.Rental.DefaultCompanyID)
	if err != nil {
		logger.Warn("Reconcile loop disabled: no default company configured")
		return
	}

	interval := time.Duration(config.Rental.ReconcileIntervalMinutes) * time.Minute
	if interval <= 0 {
		interval = time.Hour
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for range ticker.C {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			notices, err := app.Service.Reconcile.Run(ctx, companyID, time.Now())
			cancel()
			if err != nil {
				logger.Error("Reconcile run failed", zap.Error(err))
				continue
			}
			if len(notices) > 0 {
				logger.Info("Reconcile run finished", zap.Int("notices", len(notices)))
			}
		}
	}()
}
