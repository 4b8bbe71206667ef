package notifier

import (
	"context"
	"fmt"
	"log"

	"github.com/btair/btair/internal/kafka"
)

// Sender delivers a customer notification for a reservation event.
type Sender interface {
	Send(ctx context.Context, event *kafka.ReservationEvent) error
}

// LogSender writes notifications to the process log. It stands in for an
// email or SMS gateway in environments without one.
type LogSender struct{}

func NewLogSender() *LogSender {
	return &LogSender{}
}

func (s *LogSender) Send(_ context.Context, event *kafka.ReservationEvent) error {
	var subject string
	switch event.Type {
	case kafka.EventReservationCreated:
		subject = fmt.Sprintf("Reservation received for flight %s, seat %s", event.FlightID, event.SeatNumber)
	case kafka.EventReservationConfirmed:
		subject = fmt.Sprintf("Reservation confirmed for flight %s, total $%.2f", event.FlightID, event.Price)
	case kafka.EventReservationCancelled:
		subject = fmt.Sprintf("Reservation cancelled for flight %s", event.FlightID)
	default:
		subject = fmt.Sprintf("Reservation update for flight %s", event.FlightID)
	}

	log.Printf("notify %s: %s (reservation %d)", event.CustomerEmail, subject, event.ReservationID)
	return nil
}
