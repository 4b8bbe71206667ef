package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	models "github.com/btair/btair/internal"
	"github.com/btair/btair/internal/kafka"
	"github.com/btair/btair/internal/mocks"
	"github.com/btair/btair/internal/service"
)

func scheduledFlight() *models.Flight {
	return &models.Flight{
		ID:                "BT0042",
		FlightNumber:      42,
		DepartureTime:     time.Now().Add(48 * time.Hour),
		ArrivalTime:       time.Now().Add(51 * time.Hour),
		DepartureLocation: "Vilnius",
		ArrivalLocation:   "London",
		Status:            models.FlightScheduled,
		AvailableSeats:    120,
		BasePrice:         100,
		AircraftID:        7,
	}
}

func TestCreateReservation(t *testing.T) {
	ctx := context.Background()
	customer := &models.Customer{ID: 5, UserID: 9, Name: "Jane Doe", Email: "jane@example.com"}
	seat := &models.Seat{ID: 33, SeatNumber: "1A", SeatClass: "First", PriceMultiplier: 3.0, FlightID: "BT0042"}
	passenger := &models.Passenger{ID: 12, CustomerID: 5, FullName: "Jane Doe"}
	req := &models.CreateReservationRequest{FlightID: "BT0042", PassengerID: 12, SeatID: 33}

	t.Run("creates pending reservation with class price", func(t *testing.T) {
		reservations := new(mocks.MockReservationRepository)
		flights := new(mocks.MockFlightRepository)
		users := new(mocks.MockUserRepository)
		producer := new(mocks.MockEventProducer)
		svc := service.NewReservationService(reservations, flights, users,
			service.WithEventProducer(producer, "reservation-events"))

		users.On("GetCustomer", ctx, int64(5)).Return(customer, nil)
		flights.On("GetFlight", ctx, "BT0042").Return(scheduledFlight(), nil)
		flights.On("GetSeat", ctx, int64(33)).Return(seat, nil)
		reservations.On("ActiveSeatReservationExists", ctx, "BT0042", int64(33), int64(0)).Return(false, nil)
		reservations.On("GetPassenger", ctx, int64(12)).Return(passenger, nil)

		reservations.On("CreateReservation", ctx, mock.AnythingOfType("*models.Reservation"),
			mock.AnythingOfType("*models.Ticket")).
			Run(func(args mock.Arguments) {
				r := args.Get(1).(*models.Reservation)
				assert.Equal(t, models.ReservationPending, r.Status)
				assert.Equal(t, 300.0, r.Price)

				ticket := args.Get(2).(*models.Ticket)
				assert.Equal(t, models.TicketValid, ticket.Status)
				assert.Equal(t, "Electronic", ticket.TicketType)
				assert.Contains(t, ticket.ID, "TKT-")
			}).
			Return(&models.Reservation{ID: 77}, nil)
		reservations.On("GetReservation", ctx, int64(77)).Return(&models.Reservation{
			ID:            77,
			CustomerID:    5,
			FlightID:      "BT0042",
			SeatID:        33,
			SeatNumber:    "1A",
			Status:        models.ReservationPending,
			Price:         300,
			CustomerEmail: "jane@example.com",
		}, nil)
		producer.On("Publish", ctx, "reservation-events", "77", mock.AnythingOfType("kafka.ReservationEvent")).
			Run(func(args mock.Arguments) {
				event := args.Get(3).(kafka.ReservationEvent)
				assert.Equal(t, kafka.EventReservationCreated, event.Type)
				assert.Equal(t, "jane@example.com", event.CustomerEmail)
			}).
			Return(nil)

		reservation, err := svc.CreateReservation(ctx, 5, req)

		assert.NoError(t, err)
		assert.Equal(t, int64(77), reservation.ID)
		assert.Equal(t, 300.0, reservation.Price)
		reservations.AssertExpectations(t)
		producer.AssertExpectations(t)
	})

	t.Run("rejects flight that is not scheduled", func(t *testing.T) {
		reservations := new(mocks.MockReservationRepository)
		flights := new(mocks.MockFlightRepository)
		users := new(mocks.MockUserRepository)
		svc := service.NewReservationService(reservations, flights, users)

		cancelled := scheduledFlight()
		cancelled.Status = models.FlightCancelled
		users.On("GetCustomer", ctx, int64(5)).Return(customer, nil)
		flights.On("GetFlight", ctx, "BT0042").Return(cancelled, nil)

		_, err := svc.CreateReservation(ctx, 5, req)
		assert.ErrorIs(t, err, models.ErrFlightNotScheduled)
	})

	t.Run("rejects full flight", func(t *testing.T) {
		reservations := new(mocks.MockReservationRepository)
		flights := new(mocks.MockFlightRepository)
		users := new(mocks.MockUserRepository)
		svc := service.NewReservationService(reservations, flights, users)

		full := scheduledFlight()
		full.AvailableSeats = 0
		users.On("GetCustomer", ctx, int64(5)).Return(customer, nil)
		flights.On("GetFlight", ctx, "BT0042").Return(full, nil)

		_, err := svc.CreateReservation(ctx, 5, req)
		assert.ErrorIs(t, err, models.ErrFlightFull)
	})

	t.Run("rejects seat from another flight", func(t *testing.T) {
		reservations := new(mocks.MockReservationRepository)
		flights := new(mocks.MockFlightRepository)
		users := new(mocks.MockUserRepository)
		svc := service.NewReservationService(reservations, flights, users)

		wrongSeat := &models.Seat{ID: 33, FlightID: "BT0099", PriceMultiplier: 1.0}
		users.On("GetCustomer", ctx, int64(5)).Return(customer, nil)
		flights.On("GetFlight", ctx, "BT0042").Return(scheduledFlight(), nil)
		flights.On("GetSeat", ctx, int64(33)).Return(wrongSeat, nil)

		_, err := svc.CreateReservation(ctx, 5, req)
		assert.ErrorIs(t, err, models.ErrSeatWrongFlight)
	})

	t.Run("rejects taken seat", func(t *testing.T) {
		reservations := new(mocks.MockReservationRepository)
		flights := new(mocks.MockFlightRepository)
		users := new(mocks.MockUserRepository)
		svc := service.NewReservationService(reservations, flights, users)

		users.On("GetCustomer", ctx, int64(5)).Return(customer, nil)
		flights.On("GetFlight", ctx, "BT0042").Return(scheduledFlight(), nil)
		flights.On("GetSeat", ctx, int64(33)).Return(seat, nil)
		reservations.On("ActiveSeatReservationExists", ctx, "BT0042", int64(33), int64(0)).Return(true, nil)

		_, err := svc.CreateReservation(ctx, 5, req)
		assert.ErrorIs(t, err, models.ErrSeatTaken)
	})

	t.Run("rejects passenger owned by another customer", func(t *testing.T) {
		reservations := new(mocks.MockReservationRepository)
		flights := new(mocks.MockFlightRepository)
		users := new(mocks.MockUserRepository)
		svc := service.NewReservationService(reservations, flights, users)

		foreign := &models.Passenger{ID: 12, CustomerID: 99}
		users.On("GetCustomer", ctx, int64(5)).Return(customer, nil)
		flights.On("GetFlight", ctx, "BT0042").Return(scheduledFlight(), nil)
		flights.On("GetSeat", ctx, int64(33)).Return(seat, nil)
		reservations.On("ActiveSeatReservationExists", ctx, "BT0042", int64(33), int64(0)).Return(false, nil)
		reservations.On("GetPassenger", ctx, int64(12)).Return(foreign, nil)

		_, err := svc.CreateReservation(ctx, 5, req)
		assert.ErrorIs(t, err, models.ErrPassengerNotFound)
	})
}

func TestUpdateReservationSeatChange(t *testing.T) {
	ctx := context.Background()

	reservations := new(mocks.MockReservationRepository)
	flights := new(mocks.MockFlightRepository)
	users := new(mocks.MockUserRepository)
	svc := service.NewReservationService(reservations, flights, users)

	existing := &models.Reservation{
		ID: 77, CustomerID: 5, FlightID: "BT0042", SeatID: 33,
		Status: models.ReservationPending, Price: 300,
	}
	newSeat := &models.Seat{ID: 40, SeatNumber: "10C", SeatClass: "Economy", PriceMultiplier: 1.0, FlightID: "BT0042"}
	newSeatID := int64(40)

	reservations.On("GetReservation", ctx, int64(77)).Return(existing, nil).Once()
	flights.On("GetSeat", ctx, int64(40)).Return(newSeat, nil)
	reservations.On("ActiveSeatReservationExists", ctx, "BT0042", int64(40), int64(77)).Return(false, nil)
	flights.On("GetFlight", ctx, "BT0042").Return(scheduledFlight(), nil)
	reservations.On("UpdateReservation", ctx, mock.AnythingOfType("*models.Reservation")).
		Run(func(args mock.Arguments) {
			r := args.Get(1).(*models.Reservation)
			assert.Equal(t, int64(40), r.SeatID)
			assert.Equal(t, 100.0, r.Price)
		}).
		Return(nil)
	reservations.On("GetReservation", ctx, int64(77)).Return(&models.Reservation{
		ID: 77, SeatID: 40, Price: 100, Status: models.ReservationPending,
	}, nil).Once()

	updated, err := svc.UpdateReservation(ctx, 77, &models.UpdateReservationRequest{SeatID: &newSeatID})

	assert.NoError(t, err)
	assert.Equal(t, int64(40), updated.SeatID)
	assert.Equal(t, 100.0, updated.Price)
	reservations.AssertExpectations(t)
}

func TestUpdateReservationStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects status transitions", func(t *testing.T) {
		reservations := new(mocks.MockReservationRepository)
		flights := new(mocks.MockFlightRepository)
		users := new(mocks.MockUserRepository)
		svc := service.NewReservationService(reservations, flights, users)

		reservations.On("GetReservation", ctx, int64(77)).Return(&models.Reservation{
			ID: 77, FlightID: "BT0042", SeatID: 33, Status: models.ReservationPending,
		}, nil)

		for _, status := range []string{"Cancelled", "Confirmed"} {
			_, err := svc.UpdateReservation(ctx, 77, &models.UpdateReservationRequest{Status: status})
			assert.ErrorIs(t, err, models.ErrStatusChangeNotAllowed)
		}
		reservations.AssertNotCalled(t, "UpdateReservation", mock.Anything, mock.Anything)
	})

	t.Run("accepts the current status as a no-op", func(t *testing.T) {
		reservations := new(mocks.MockReservationRepository)
		flights := new(mocks.MockFlightRepository)
		users := new(mocks.MockUserRepository)
		svc := service.NewReservationService(reservations, flights, users)

		existing := &models.Reservation{ID: 77, FlightID: "BT0042", SeatID: 33, Status: models.ReservationPending}
		reservations.On("GetReservation", ctx, int64(77)).Return(existing, nil)
		reservations.On("UpdateReservation", ctx, existing).Return(nil)

		_, err := svc.UpdateReservation(ctx, 77, &models.UpdateReservationRequest{Status: "Pending"})
		assert.NoError(t, err)
		reservations.AssertExpectations(t)
	})
}

func TestEventTopicFanout(t *testing.T) {
	ctx := context.Background()
	cancelled := func() (*mocks.MockReservationRepository, *mocks.MockFlightRepository, *mocks.MockUserRepository) {
		reservations := new(mocks.MockReservationRepository)
		reservations.On("GetReservation", ctx, int64(77)).Return(&models.Reservation{
			ID: 77, FlightID: "BT0042", Status: models.ReservationPending, Price: 300,
		}, nil)
		reservations.On("CancelReservation", ctx, int64(77)).Return(nil)
		return reservations, new(mocks.MockFlightRepository), new(mocks.MockUserRepository)
	}

	t.Run("publishes to every configured topic", func(t *testing.T) {
		reservations, flights, users := cancelled()
		producer := new(mocks.MockEventProducer)
		svc := service.NewReservationService(reservations, flights, users,
			service.WithEventProducer(producer, "reservation-events", "reservation-notifications"))

		producer.On("Publish", ctx, "reservation-events", "77", mock.AnythingOfType("kafka.ReservationEvent")).
			Return(nil).Once()
		producer.On("Publish", ctx, "reservation-notifications", "77", mock.AnythingOfType("kafka.ReservationEvent")).
			Return(nil).Once()

		assert.NoError(t, svc.CancelReservation(ctx, 77))
		producer.AssertExpectations(t)
	})

	t.Run("shared topic name publishes once", func(t *testing.T) {
		reservations, flights, users := cancelled()
		producer := new(mocks.MockEventProducer)
		svc := service.NewReservationService(reservations, flights, users,
			service.WithEventProducer(producer, "reservation-events", "reservation-events"))

		producer.On("Publish", ctx, "reservation-events", "77", mock.AnythingOfType("kafka.ReservationEvent")).
			Return(nil)

		assert.NoError(t, svc.CancelReservation(ctx, 77))
		producer.AssertNumberOfCalls(t, "Publish", 1)
	})
}

func TestCancelReservation(t *testing.T) {
	ctx := context.Background()

	reservations := new(mocks.MockReservationRepository)
	flights := new(mocks.MockFlightRepository)
	users := new(mocks.MockUserRepository)
	producer := new(mocks.MockEventProducer)
	svc := service.NewReservationService(reservations, flights, users,
		service.WithEventProducer(producer, "reservation-events"))

	reservations.On("GetReservation", ctx, int64(77)).Return(&models.Reservation{
		ID: 77, FlightID: "BT0042", Status: models.ReservationConfirmed, Price: 300,
	}, nil)
	reservations.On("CancelReservation", ctx, int64(77)).Return(nil)
	producer.On("Publish", ctx, "reservation-events", "77", mock.AnythingOfType("kafka.ReservationEvent")).
		Run(func(args mock.Arguments) {
			event := args.Get(3).(kafka.ReservationEvent)
			assert.Equal(t, kafka.EventReservationCancelled, event.Type)
			assert.Equal(t, string(models.ReservationCancelled), event.Status)
		}).
		Return(nil)

	err := svc.CancelReservation(ctx, 77)

	assert.NoError(t, err)
	reservations.AssertExpectations(t)
	producer.AssertExpectations(t)
}

func TestProcessPayment(t *testing.T) {
	ctx := context.Background()
	req := &models.CreatePaymentRequest{ReservationID: 77, PaymentMethod: "CreditCard"}

	t.Run("confirms pending reservation", func(t *testing.T) {
		reservations := new(mocks.MockReservationRepository)
		flights := new(mocks.MockFlightRepository)
		users := new(mocks.MockUserRepository)
		svc := service.NewReservationService(reservations, flights, users)

		reservations.On("GetReservation", ctx, int64(77)).Return(&models.Reservation{
			ID: 77, Status: models.ReservationPending, Price: 300,
		}, nil)
		reservations.On("ConfirmWithPayment", ctx, mock.AnythingOfType("*models.Payment")).
			Run(func(args mock.Arguments) {
				p := args.Get(1).(*models.Payment)
				p.Amount = 300
				assert.Equal(t, int64(77), p.ReservationID)
				assert.Equal(t, models.PaymentCompleted, p.Status)
				assert.Contains(t, p.ID, "PAY-")
				assert.Contains(t, p.TransactionReference, "TXN-")
			}).
			Return(nil)

		payment, err := svc.ProcessPayment(ctx, req)

		assert.NoError(t, err)
		assert.Equal(t, 300.0, payment.Amount)
		assert.Equal(t, "CreditCard", payment.PaymentMethod)
		reservations.AssertExpectations(t)
	})

	t.Run("rejects non pending reservation", func(t *testing.T) {
		reservations := new(mocks.MockReservationRepository)
		flights := new(mocks.MockFlightRepository)
		users := new(mocks.MockUserRepository)
		svc := service.NewReservationService(reservations, flights, users)

		reservations.On("GetReservation", ctx, int64(77)).Return(&models.Reservation{
			ID: 77, Status: models.ReservationConfirmed,
		}, nil)

		_, err := svc.ProcessPayment(ctx, req)
		assert.ErrorIs(t, err, models.ErrReservationNotPending)
	})
}

func TestCreatePassenger(t *testing.T) {
	ctx := context.Background()

	reservations := new(mocks.MockReservationRepository)
	flights := new(mocks.MockFlightRepository)
	users := new(mocks.MockUserRepository)
	svc := service.NewReservationService(reservations, flights, users)

	users.On("GetCustomer", ctx, int64(5)).Return(&models.Customer{ID: 5}, nil)
	reservations.On("CreatePassenger", ctx, mock.AnythingOfType("*models.Passenger")).
		Run(func(args mock.Arguments) {
			p := args.Get(1).(*models.Passenger)
			assert.Equal(t, int64(5), p.CustomerID)
			assert.Equal(t, "AB123456", p.PassportNumber)
		}).
		Return(&models.Passenger{ID: 12, CustomerID: 5, PassportNumber: "AB123456"}, nil)

	passenger, err := svc.CreatePassenger(ctx, 5, &models.CreatePassengerRequest{
		FullName:       "Jane Doe",
		PassportNumber: "AB123456",
		Age:            34,
		Nationality:    "Lithuanian",
		DateOfBirth:    time.Date(1992, 3, 1, 0, 0, 0, 0, time.UTC),
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(12), passenger.ID)
	reservations.AssertExpectations(t)
}
