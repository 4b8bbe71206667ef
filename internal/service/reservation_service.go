package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	models "github.com/btair/btair/internal"
	"github.com/btair/btair/internal/kafka"
	"github.com/btair/btair/internal/ports"
)

type ReservationService struct {
	reservations ports.ReservationRepository
	flights      ports.FlightRepository
	users        ports.UserRepository
	producer     ports.EventProducer
	topics       []string
}

// ReservationOption configures optional collaborators.
type ReservationOption func(*ReservationService)

// WithEventProducer enables reservation lifecycle events on the given topics.
// Duplicate and empty topic names are skipped, so the events and notifications
// topics may share a name without double publishing.
func WithEventProducer(producer ports.EventProducer, topics ...string) ReservationOption {
	return func(s *ReservationService) {
		s.producer = producer
		s.topics = s.topics[:0]
		seen := make(map[string]bool, len(topics))
		for _, topic := range topics {
			if topic == "" || seen[topic] {
				continue
			}
			seen[topic] = true
			s.topics = append(s.topics, topic)
		}
	}
}

func NewReservationService(reservations ports.ReservationRepository, flights ports.FlightRepository,
	users ports.UserRepository, opts ...ReservationOption) *ReservationService {
	s := &ReservationService{
		reservations: reservations,
		flights:      flights,
		users:        users,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *ReservationService) GetReservation(ctx context.Context, id int64) (*models.Reservation, error) {
	return s.reservations.GetReservation(ctx, id)
}

func (s *ReservationService) CustomerReservations(ctx context.Context, customerID int64) ([]models.Reservation, error) {
	if _, err := s.users.GetCustomer(ctx, customerID); err != nil {
		return nil, err
	}
	return s.reservations.ListReservationsByCustomer(ctx, customerID)
}

// CreateReservation books a seat for one of the customer's passengers. The
// seat decrement and the double booking guard run inside the repository
// transaction; the checks here exist to fail fast with a precise error.
func (s *ReservationService) CreateReservation(ctx context.Context, customerID int64, req *models.CreateReservationRequest) (*models.Reservation, error) {
	if _, err := s.users.GetCustomer(ctx, customerID); err != nil {
		return nil, err
	}

	flight, err := s.flights.GetFlight(ctx, req.FlightID)
	if err != nil {
		return nil, err
	}
	if flight.Status != models.FlightScheduled {
		return nil, models.ErrFlightNotScheduled
	}
	if flight.AvailableSeats <= 0 {
		return nil, models.ErrFlightFull
	}

	seat, err := s.flights.GetSeat(ctx, req.SeatID)
	if err != nil {
		return nil, err
	}
	if seat.FlightID != flight.ID {
		return nil, models.ErrSeatWrongFlight
	}

	taken, err := s.reservations.ActiveSeatReservationExists(ctx, flight.ID, seat.ID, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, models.ErrSeatTaken
	}

	passenger, err := s.reservations.GetPassenger(ctx, req.PassengerID)
	if err != nil {
		return nil, err
	}
	if passenger.CustomerID != customerID {
		return nil, models.ErrPassengerNotFound
	}

	reservation := &models.Reservation{
		CustomerID:      customerID,
		FlightID:        flight.ID,
		PassengerID:     passenger.ID,
		SeatID:          seat.ID,
		BookingDateTime: time.Now(),
		Status:          models.ReservationPending,
		Price:           flight.BasePrice * seat.PriceMultiplier,
	}
	ticket := &models.Ticket{
		ID:         "TKT-" + uuid.NewString(),
		IssueDate:  reservation.BookingDateTime,
		Status:     models.TicketValid,
		TicketType: "Electronic",
	}

	created, err := s.reservations.CreateReservation(ctx, reservation, ticket)
	if err != nil {
		return nil, err
	}

	full, err := s.reservations.GetReservation(ctx, created.ID)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, kafka.EventReservationCreated, full)
	return full, nil
}

func (s *ReservationService) UpdateReservation(ctx context.Context, id int64, req *models.UpdateReservationRequest) (*models.Reservation, error) {
	reservation, err := s.reservations.GetReservation(ctx, id)
	if err != nil {
		return nil, err
	}

	// Confirmed and Cancelled are reached through the payment and cancel
	// endpoints, which run the counter and ticket side effects.
	if req.Status != "" && models.ReservationStatus(req.Status) != reservation.Status {
		return nil, models.ErrStatusChangeNotAllowed
	}

	if req.SeatID != nil && *req.SeatID != reservation.SeatID {
		seat, err := s.flights.GetSeat(ctx, *req.SeatID)
		if err != nil {
			return nil, err
		}
		if seat.FlightID != reservation.FlightID {
			return nil, models.ErrSeatWrongFlight
		}
		taken, err := s.reservations.ActiveSeatReservationExists(ctx, reservation.FlightID, seat.ID, reservation.ID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, models.ErrSeatTaken
		}

		flight, err := s.flights.GetFlight(ctx, reservation.FlightID)
		if err != nil {
			return nil, err
		}
		reservation.SeatID = seat.ID
		reservation.Price = flight.BasePrice * seat.PriceMultiplier
	}

	if err = s.reservations.UpdateReservation(ctx, reservation); err != nil {
		return nil, err
	}
	return s.reservations.GetReservation(ctx, id)
}

// CancelReservation releases the seat, voids the tickets and refunds any
// completed payment. Cancelling twice is a conflict.
func (s *ReservationService) CancelReservation(ctx context.Context, id int64) error {
	reservation, err := s.reservations.GetReservation(ctx, id)
	if err != nil {
		return err
	}
	if err = s.reservations.CancelReservation(ctx, id); err != nil {
		return err
	}

	reservation.Status = models.ReservationCancelled
	s.publish(ctx, kafka.EventReservationCancelled, reservation)
	return nil
}

// ProcessPayment captures payment for a pending reservation and confirms it.
// Card details from the request are never persisted.
func (s *ReservationService) ProcessPayment(ctx context.Context, req *models.CreatePaymentRequest) (*models.Payment, error) {
	reservation, err := s.reservations.GetReservation(ctx, req.ReservationID)
	if err != nil {
		return nil, err
	}
	if reservation.Status != models.ReservationPending {
		return nil, models.ErrReservationNotPending
	}

	payment := &models.Payment{
		ID:                   "PAY-" + uuid.NewString(),
		ReservationID:        reservation.ID,
		PaymentDate:          time.Now(),
		Status:               models.PaymentCompleted,
		PaymentMethod:        req.PaymentMethod,
		TransactionReference: "TXN-" + uuid.NewString(),
	}
	if err = s.reservations.ConfirmWithPayment(ctx, payment); err != nil {
		return nil, err
	}

	reservation.Status = models.ReservationConfirmed
	s.publish(ctx, kafka.EventReservationConfirmed, reservation)
	return payment, nil
}

func (s *ReservationService) CustomerPassengers(ctx context.Context, customerID int64) ([]models.Passenger, error) {
	if _, err := s.users.GetCustomer(ctx, customerID); err != nil {
		return nil, err
	}
	return s.reservations.ListPassengers(ctx, customerID)
}

func (s *ReservationService) CreatePassenger(ctx context.Context, customerID int64, req *models.CreatePassengerRequest) (*models.Passenger, error) {
	if _, err := s.users.GetCustomer(ctx, customerID); err != nil {
		return nil, err
	}

	passenger := &models.Passenger{
		CustomerID:     customerID,
		FullName:       req.FullName,
		PassportNumber: req.PassportNumber,
		Age:            req.Age,
		Nationality:    req.Nationality,
		Gender:         req.Gender,
		DateOfBirth:    req.DateOfBirth,
		CreatedAt:      time.Now(),
	}
	return s.reservations.CreatePassenger(ctx, passenger)
}

func (s *ReservationService) publish(ctx context.Context, eventType string, reservation *models.Reservation) {
	if s.producer == nil {
		return
	}

	event := kafka.ReservationEvent{
		Type:          eventType,
		ReservationID: reservation.ID,
		FlightID:      reservation.FlightID,
		SeatNumber:    reservation.SeatNumber,
		CustomerEmail: reservation.CustomerEmail,
		Status:        string(reservation.Status),
		Price:         reservation.Price,
		OccurredAt:    time.Now(),
	}
	key := fmt.Sprintf("%d", reservation.ID)
	for _, topic := range s.topics {
		if err := s.producer.Publish(ctx, topic, key, event); err != nil {
			log.Printf("event publish to %s failed for reservation %d: %v", topic, reservation.ID, err)
		}
	}
}
