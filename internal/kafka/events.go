package kafka

import "time"

// ReservationEvent is the payload published on reservation lifecycle changes
// and consumed by the notification worker.
type ReservationEvent struct {
	Type          string    `json:"type"`
	ReservationID int64     `json:"reservation_id"`
	FlightID      string    `json:"flight_id"`
	SeatNumber    string    `json:"seat_number"`
	CustomerEmail string    `json:"customer_email"`
	Status        string    `json:"status"`
	Price         float64   `json:"price"`
	OccurredAt    time.Time `json:"occurred_at"`
}

const (
	EventReservationCreated   = "reservation_created"
	EventReservationConfirmed = "reservation_confirmed"
	EventReservationCancelled = "reservation_cancelled"
)
