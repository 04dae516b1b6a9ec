package request

// ReserveRequest carries the seats to book. An empty list is rejected by
// the reservation service after the showtime lookup.
type ReserveRequest struct {
	SeatIDs []string `json:"seat_ids" validate:"dive,uuid"`
}
