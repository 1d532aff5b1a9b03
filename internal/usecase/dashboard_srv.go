package usecase

import (
	"context"
	"fmt"
	"time"

	"fleet-rental/internal/data/repository"
	"fleet-rental/internal/dto/response"
	"fleet-rental/internal/rental"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const recentBookingsLimit = 5

type DashboardService interface {
	Data(ctx context.Context, companyID uuid.UUID) (*response.DashboardResponse, error)
}

type dashboardService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewDashboardService(repo *repository.Repository, log *zap.Logger) DashboardService {
	return &dashboardService{
		repo: repo,
		log:  log.With(zap.String("service", "dashboard")),
	}
}

func (s *dashboardService) Data(ctx context.Context, companyID uuid.UUID) (*response.DashboardResponse, error) {
	counts, err := s.repo.Booking.CountByState(ctx, companyID)
	if err != nil {
		s.log.Error("Failed to count bookings by state", zap.Error(err))
		return nil, fmt.Errorf("dashboard state counts: %w", err)
	}

	var total int64
	stateCounts := make(map[string]int64, len(counts))
	for state, count := range counts {
		stateCounts[string(state)] = count
		total += count
	}

	now := time.Now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	active := []rental.BookingState{rental.StateReserved, rental.StatePlanned, rental.StateOngoing}

	startingToday, err := s.repo.Booking.CountStartingBetween(ctx, companyID, dayStart, dayEnd, active)
	if err != nil {
		return nil, fmt.Errorf("dashboard starting today: %w", err)
	}

	endingToday, err := s.repo.Booking.CountEndingBetween(ctx, companyID, dayStart, dayEnd,
		[]rental.BookingState{rental.StateReserved, rental.StateOngoing})
	if err != nil {
		return nil, fmt.Errorf("dashboard ending today: %w", err)
	}

	// Overdue: the return window closed and the goods are still out.
	overdue, err := s.repo.Booking.CountEndingBetween(ctx, companyID, time.Time{}, dayStart,
		[]rental.BookingState{rental.StateReserved, rental.StateOngoing})
	if err != nil {
		return nil, fmt.Errorf("dashboard overdue: %w", err)
	}

	recent, err := s.repo.Booking.FindRecent(ctx, companyID, recentBookingsLimit)
	if err != nil {
		return nil, fmt.Errorf("dashboard recent bookings: %w", err)
	}

	recentResponses := make([]response.BookingResponse, len(recent))
	for i, booking := range recent {
		lines, _ := s.repo.BookingLine.FindByBookingID(ctx, booking.ID)
		recentResponses[i] = response.BookingToResponse(booking, lines)
	}

	return &response.DashboardResponse{
		TotalBookings:  total,
		ActiveRentals:  stateCounts[string(rental.StateOngoing)],
		StartingToday:  startingToday,
		EndingToday:    endingToday,
		Overdue:        overdue,
		StateCounts:    stateCounts,
		RecentBookings: recentResponses,
	}, nil
}
