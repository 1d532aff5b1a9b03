package response

type DashboardResponse struct {
	TotalBookings  int64             `json:"total_bookings"`
	ActiveRentals  int64             `json:"active_rentals"`
	StartingToday  int64             `json:"starting_today"`
	EndingToday    int64             `json:"ending_today"`
	Overdue        int64             `json:"overdue"`
	StateCounts    map[string]int64  `json:"state_counts"`
	RecentBookings []BookingResponse `json:"recent_bookings"`
}
