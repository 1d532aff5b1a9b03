package usecase

import (
	"context"
	"fmt"
	"time"

	"fleet-rental/internal/data/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ReconcileNotice flags a booking whose window has drifted past its state.
// Advisory only; reconciliation never transitions state.
type ReconcileNotice struct {
	BookingID uuid.UUID `json:"booking_id"`
	Reference string    `json:"reference"`
	Kind      string    `json:"kind"` // late_start | late_return
	State     string    `json:"state"`
	Since     time.Time `json:"since"`
}

type ReconcileService interface {
	Run(ctx context.Context, companyID uuid.UUID, now time.Time) ([]ReconcileNotice, error)
}

type reconcileService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewReconcileService(repo *repository.Repository, log *zap.Logger) ReconcileService {
	return &reconcileService{
		repo: repo,
		log:  log.With(zap.String("service", "reconcile")),
	}
}

func (s *reconcileService) Run(ctx context.Context, companyID uuid.UUID, now time.Time) ([]ReconcileNotice, error) {
	var notices []ReconcileNotice

	lateStarts, err := s.repo.Booking.FindLateStarts(ctx, companyID, now)
	if err != nil {
		return nil, fmt.Errorf("reconcile late starts: %w", err)
	}
	for _, booking := range lateStarts {
		notice := ReconcileNotice{
			BookingID: booking.ID,
			Reference: booking.Reference,
			Kind:      "late_start",
			State:     string(booking.State),
			Since:     *booking.DateStart,
		}
		notices = append(notices, notice)
		s.log.Warn("Booking start date passed without pickup",
			zap.String("booking_id", booking.ID.String()),
			zap.String("reference", booking.Reference),
			zap.String("state", string(booking.State)),
			zap.Time("date_start", *booking.DateStart),
		)
	}

	lateReturns, err := s.repo.Booking.FindLateReturns(ctx, companyID, now)
	if err != nil {
		return nil, fmt.Errorf("reconcile late returns: %w", err)
	}
	for _, booking := range lateReturns {
		notice := ReconcileNotice{
			BookingID: booking.ID,
			Reference: booking.Reference,
			Kind:      "late_return",
			State:     string(booking.State),
			Since:     *booking.DateEnd,
		}
		notices = append(notices, notice)
		s.log.Warn("Booking end date passed without return",
			zap.String("booking_id", booking.ID.String()),
			zap.String("reference", booking.Reference),
			zap.String("state", string(booking.State)),
			zap.Time("date_end", *booking.DateEnd),
		)
	}

	return notices, nil
}
