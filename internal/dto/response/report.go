package response

type ReportSummaryResponse struct {
	Date                  string  `json:"date"`
	TotalReservations     int     `json:"total_reservations"`
	ConfirmedReservations int     `json:"confirmed_reservations"`
	CancelledReservations int     `json:"cancelled_reservations"`
	TotalRevenueCents     int64   `json:"total_revenue_cents"`
	ConfirmedSeats        int     `json:"confirmed_seats"`
	CancelledSeats        int     `json:"cancelled_seats"`
	TotalSeatsCapacity    int     `json:"total_seats_capacity"`
	OccupancyRate         float64 `json:"occupancy_rate"`
}

type ReportShowtimeRow struct {
	ShowtimeID     string `json:"showtime_id"`
	MovieID        string `json:"movie_id"`
	MovieTitle     string `json:"movie_title"`
	AuditoriumID   string `json:"auditorium_id"`
	AuditoriumName string `json:"auditorium_name"`
	StartTime      string `json:"start_time"`
	EndTime        string `json:"end_time"`
	PriceCents     int    `json:"price_cents"`
	Capacity       int    `json:"capacity"`
	BookedSeats    int    `json:"booked_seats"`
	RevenueCents   int64  `json:"revenue_cents"`
}

type ReportShowtimesResponse struct {
	Date string              `json:"date"`
	Rows []ReportShowtimeRow `json:"rows"`
}
