package usecase

import (
	"context"
	"testing"
	"time"

	"fleet-rental/internal/rental"

	"github.com/stretchr/testify/require"
)

func TestDashboardCounts(t *testing.T) {
	env := newTestEnv(t)
	productID := env.seedProduct(t, "Excavator", 20)

	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 12, 0, 0, 0, now.Location())
	yesterday := today.AddDate(0, 0, -1)
	nextWeek := today.AddDate(0, 0, 7)

	// Starting today, still out, ending today, overdue, and background noise.
	env.seedBooking(t, rental.StateReserved, today, nextWeek, seedLine{productID, 1})
	env.seedBooking(t, rental.StateOngoing, yesterday, nextWeek, seedLine{productID, 1})
	env.seedBooking(t, rental.StateOngoing, yesterday, today, seedLine{productID, 1})
	env.seedBooking(t, rental.StateReserved, yesterday.AddDate(0, 0, -7), yesterday, seedLine{productID, 1})
	env.seedBooking(t, rental.StateDraft, nextWeek, nextWeek.AddDate(0, 0, 7))
	env.seedBooking(t, rental.StateCancelled, yesterday, today)

	data, err := env.dashboard.Data(context.Background(), env.companyID)
	require.NoError(t, err)

	require.Equal(t, int64(6), data.TotalBookings)
	require.Equal(t, int64(2), data.ActiveRentals)
	require.Equal(t, int64(1), data.StartingToday)
	require.Equal(t, int64(1), data.EndingToday)
	require.Equal(t, int64(1), data.Overdue, "ended before today and still reserved")

	require.Equal(t, int64(2), data.StateCounts["reserved"])
	require.Equal(t, int64(2), data.StateCounts["ongoing"])
	require.Equal(t, int64(1), data.StateCounts["draft"])
	require.Equal(t, int64(1), data.StateCounts["cancelled"])

	require.Len(t, data.RecentBookings, 5, "recent list is capped")
}

func TestDashboardEmptyCompany(t *testing.T) {
	env := newTestEnv(t)

	data, err := env.dashboard.Data(context.Background(), env.companyID)
	require.NoError(t, err)
	require.Zero(t, data.TotalBookings)
	require.Zero(t, data.Overdue)
	require.Empty(t, data.RecentBookings)
}
