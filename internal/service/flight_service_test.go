package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	models "github.com/btair/btair/internal"
	"github.com/btair/btair/internal/mocks"
	"github.com/btair/btair/internal/service"
)

func availableAircraft() *models.Aircraft {
	return &models.Aircraft{
		ID:              7,
		Model:           "A320",
		SeatingCapacity: 180,
		Status:          models.AircraftAvailable,
		Registration:    "LY-BTA",
		SeatLayout:      "standard",
	}
}

func TestListFlightsCache(t *testing.T) {
	ctx := context.Background()
	cached := []models.Flight{{ID: "BT0001"}}
	fresh := []models.Flight{{ID: "BT0001"}, {ID: "BT0002"}}

	t.Run("serves from cache on hit", func(t *testing.T) {
		flights := new(mocks.MockFlightRepository)
		aircraft := new(mocks.MockAircraftRepository)
		cache := new(mocks.MockFlightCache)
		svc := service.NewFlightService(flights, aircraft, cache)

		cache.On("GetFlights", ctx).Return(cached, nil)

		got, err := svc.ListFlights(ctx)

		assert.NoError(t, err)
		assert.Equal(t, cached, got)
		flights.AssertNotCalled(t, "ListFlights", ctx)
	})

	t.Run("falls back to database and fills cache on miss", func(t *testing.T) {
		flights := new(mocks.MockFlightRepository)
		aircraft := new(mocks.MockAircraftRepository)
		cache := new(mocks.MockFlightCache)
		svc := service.NewFlightService(flights, aircraft, cache)

		cache.On("GetFlights", ctx).Return(nil, nil)
		flights.On("ListFlights", ctx).Return(fresh, nil)
		cache.On("SetFlights", ctx, fresh).Return(nil)

		got, err := svc.ListFlights(ctx)

		assert.NoError(t, err)
		assert.Equal(t, fresh, got)
		cache.AssertExpectations(t)
	})

	t.Run("works without a cache", func(t *testing.T) {
		flights := new(mocks.MockFlightRepository)
		aircraft := new(mocks.MockAircraftRepository)
		svc := service.NewFlightService(flights, aircraft, nil)

		flights.On("ListFlights", ctx).Return(fresh, nil)

		got, err := svc.ListFlights(ctx)

		assert.NoError(t, err)
		assert.Equal(t, fresh, got)
	})
}

func TestCreateFlight(t *testing.T) {
	ctx := context.Background()
	departure := time.Date(2026, 9, 10, 10, 0, 0, 0, time.UTC)
	arrival := departure.Add(3 * time.Hour)
	req := &models.CreateFlightRequest{
		FlightNumber:      42,
		DepartureTime:     departure,
		ArrivalTime:       arrival,
		DepartureLocation: "Vilnius",
		ArrivalLocation:   "London",
		BasePrice:         100,
		AircraftID:        7,
	}

	t.Run("creates flight with generated id and seat map", func(t *testing.T) {
		flights := new(mocks.MockFlightRepository)
		aircraft := new(mocks.MockAircraftRepository)
		cache := new(mocks.MockFlightCache)
		svc := service.NewFlightService(flights, aircraft, cache)

		aircraft.On("GetAircraft", ctx, int64(7)).Return(availableAircraft(), nil)
		flights.On("HasAircraftConflict", ctx, int64(7), departure, arrival, "").Return(false, nil)
		flights.On("CreateFlight", ctx, mock.AnythingOfType("*models.Flight"), mock.AnythingOfType("[]models.Seat")).
			Run(func(args mock.Arguments) {
				f := args.Get(1).(*models.Flight)
				assert.Equal(t, "BT0042", f.ID)
				assert.Equal(t, models.FlightScheduled, f.Status)
				assert.Equal(t, 180, f.AvailableSeats)

				seats := args.Get(2).([]models.Seat)
				assert.Len(t, seats, 180)
			}).
			Return(&models.Flight{ID: "BT0042", AvailableSeats: 180}, nil)
		cache.On("InvalidateFlights", ctx).Return(nil)

		flight, err := svc.CreateFlight(ctx, req)

		assert.NoError(t, err)
		assert.Equal(t, "BT0042", flight.ID)
		assert.Equal(t, "A320", flight.AircraftModel)
		flights.AssertExpectations(t)
		cache.AssertExpectations(t)
	})

	t.Run("rejects aircraft in maintenance", func(t *testing.T) {
		flights := new(mocks.MockFlightRepository)
		aircraft := new(mocks.MockAircraftRepository)
		svc := service.NewFlightService(flights, aircraft, nil)

		grounded := availableAircraft()
		grounded.Status = models.AircraftMaintenance
		aircraft.On("GetAircraft", ctx, int64(7)).Return(grounded, nil)

		_, err := svc.CreateFlight(ctx, req)
		assert.ErrorIs(t, err, models.ErrAircraftUnavailable)
	})

	t.Run("rejects overlapping schedule", func(t *testing.T) {
		flights := new(mocks.MockFlightRepository)
		aircraft := new(mocks.MockAircraftRepository)
		svc := service.NewFlightService(flights, aircraft, nil)

		aircraft.On("GetAircraft", ctx, int64(7)).Return(availableAircraft(), nil)
		flights.On("HasAircraftConflict", ctx, int64(7), departure, arrival, "").Return(true, nil)

		_, err := svc.CreateFlight(ctx, req)
		assert.ErrorIs(t, err, models.ErrAircraftUnavailable)
	})
}

func TestIsAircraftAvailable(t *testing.T) {
	ctx := context.Background()
	departure := time.Date(2026, 9, 10, 11, 0, 0, 0, time.UTC)
	arrival := departure.Add(2 * time.Hour)

	t.Run("unavailable when windows overlap", func(t *testing.T) {
		flights := new(mocks.MockFlightRepository)
		aircraft := new(mocks.MockAircraftRepository)
		svc := service.NewFlightService(flights, aircraft, nil)

		aircraft.On("GetAircraft", ctx, int64(7)).Return(availableAircraft(), nil)
		flights.On("HasAircraftConflict", ctx, int64(7), departure, arrival, "").Return(true, nil)

		available, err := svc.IsAircraftAvailable(ctx, 7, departure, arrival, "")
		assert.NoError(t, err)
		assert.False(t, available)
	})

	t.Run("available when windows only touch", func(t *testing.T) {
		flights := new(mocks.MockFlightRepository)
		aircraft := new(mocks.MockAircraftRepository)
		svc := service.NewFlightService(flights, aircraft, nil)

		touching := arrival
		end := touching.Add(2 * time.Hour)
		aircraft.On("GetAircraft", ctx, int64(7)).Return(availableAircraft(), nil)
		flights.On("HasAircraftConflict", ctx, int64(7), touching, end, "BT0042").Return(false, nil)

		available, err := svc.IsAircraftAvailable(ctx, 7, touching, end, "BT0042")
		assert.NoError(t, err)
		assert.True(t, available)
	})
}

func TestDeleteFlight(t *testing.T) {
	ctx := context.Background()

	t.Run("deletes flight without reservations", func(t *testing.T) {
		flights := new(mocks.MockFlightRepository)
		aircraft := new(mocks.MockAircraftRepository)
		svc := service.NewFlightService(flights, aircraft, nil)

		flights.On("FlightHasReservations", ctx, "BT0042").Return(false, nil)
		flights.On("DeleteFlight", ctx, "BT0042").Return(nil)

		assert.NoError(t, svc.DeleteFlight(ctx, "BT0042"))
		flights.AssertExpectations(t)
	})

	t.Run("cancels flight with reservations instead", func(t *testing.T) {
		flights := new(mocks.MockFlightRepository)
		aircraft := new(mocks.MockAircraftRepository)
		svc := service.NewFlightService(flights, aircraft, nil)

		flights.On("FlightHasReservations", ctx, "BT0042").Return(true, nil)
		flights.On("GetFlight", ctx, "BT0042").Return(scheduledFlight(), nil)
		flights.On("UpdateFlight", ctx, mock.AnythingOfType("*models.Flight")).
			Run(func(args mock.Arguments) {
				f := args.Get(1).(*models.Flight)
				assert.Equal(t, models.FlightCancelled, f.Status)
			}).
			Return(nil)

		assert.NoError(t, svc.DeleteFlight(ctx, "BT0042"))
		flights.AssertNotCalled(t, "DeleteFlight", ctx, "BT0042")
	})
}

func TestGenerateSeats(t *testing.T) {
	ctx := context.Background()

	t.Run("backfills missing seat map", func(t *testing.T) {
		flights := new(mocks.MockFlightRepository)
		aircraft := new(mocks.MockAircraftRepository)
		svc := service.NewFlightService(flights, aircraft, nil)

		flights.On("GetFlight", ctx, "BT0042").Return(scheduledFlight(), nil)
		aircraft.On("GetAircraft", ctx, int64(7)).Return(availableAircraft(), nil)
		flights.On("CreateSeats", ctx, "BT0042", mock.AnythingOfType("[]models.Seat")).Return(180, nil)

		created, err := svc.GenerateSeats(ctx, "BT0042")
		assert.NoError(t, err)
		assert.Equal(t, 180, created)
	})

	t.Run("rejects flight that already has seats", func(t *testing.T) {
		flights := new(mocks.MockFlightRepository)
		aircraft := new(mocks.MockAircraftRepository)
		svc := service.NewFlightService(flights, aircraft, nil)

		flights.On("GetFlight", ctx, "BT0042").Return(scheduledFlight(), nil)
		aircraft.On("GetAircraft", ctx, int64(7)).Return(availableAircraft(), nil)
		flights.On("CreateSeats", ctx, "BT0042", mock.AnythingOfType("[]models.Seat")).Return(0, nil)

		_, err := svc.GenerateSeats(ctx, "BT0042")
		assert.ErrorIs(t, err, models.ErrSeatsAlreadyGenerated)
	})
}
