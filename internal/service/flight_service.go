package service

import (
	"context"
	"fmt"
	"log"
	"time"

	models "github.com/btair/btair/internal"
	"github.com/btair/btair/internal/ports"
	"github.com/btair/btair/internal/seatmap"
)

type FlightService struct {
	flights  ports.FlightRepository
	aircraft ports.AircraftRepository
	cache    ports.FlightCache
}

func NewFlightService(flights ports.FlightRepository, aircraft ports.AircraftRepository, cache ports.FlightCache) *FlightService {
	return &FlightService{flights: flights, aircraft: aircraft, cache: cache}
}

// ListFlights reads through the cache when one is configured. Cache failures
// fall back to the database.
func (s *FlightService) ListFlights(ctx context.Context) ([]models.Flight, error) {
	if s.cache != nil {
		cached, err := s.cache.GetFlights(ctx)
		if err != nil {
			log.Printf("flight cache read failed: %v", err)
		} else if cached != nil {
			return cached, nil
		}
	}

	flights, err := s.flights.ListFlights(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetFlights(ctx, flights); err != nil {
			log.Printf("flight cache write failed: %v", err)
		}
	}
	return flights, nil
}

func (s *FlightService) GetFlight(ctx context.Context, flightID string) (*models.Flight, error) {
	return s.flights.GetFlight(ctx, flightID)
}

func (s *FlightService) SearchFlights(ctx context.Context, req *models.FlightSearchRequest) ([]models.Flight, error) {
	if req.Passengers < 1 {
		req.Passengers = 1
	}
	return s.flights.SearchFlights(ctx, req)
}

func (s *FlightService) CreateFlight(ctx context.Context, req *models.CreateFlightRequest) (*models.Flight, error) {
	aircraft, err := s.aircraft.GetAircraft(ctx, req.AircraftID)
	if err != nil {
		return nil, err
	}
	if aircraft.Status != models.AircraftAvailable {
		return nil, models.ErrAircraftUnavailable
	}

	conflict, err := s.flights.HasAircraftConflict(ctx, req.AircraftID, req.DepartureTime, req.ArrivalTime, "")
	if err != nil {
		return nil, err
	}
	if conflict {
		return nil, models.ErrAircraftUnavailable
	}

	flight := &models.Flight{
		ID:                fmt.Sprintf("BT%04d", req.FlightNumber),
		FlightNumber:      req.FlightNumber,
		DepartureTime:     req.DepartureTime,
		ArrivalTime:       req.ArrivalTime,
		DepartureLocation: req.DepartureLocation,
		ArrivalLocation:   req.ArrivalLocation,
		Status:            models.FlightScheduled,
		AvailableSeats:    aircraft.SeatingCapacity,
		BasePrice:         req.BasePrice,
		AircraftID:        aircraft.ID,
		CreatedAt:         time.Now(),
	}
	seats := seatmap.Generate(flight.ID, aircraft.ID, seatmap.LayoutByName(aircraft.SeatLayout))

	created, err := s.flights.CreateFlight(ctx, flight, seats)
	if err != nil {
		return nil, err
	}
	created.AircraftModel = aircraft.Model

	s.invalidateCache(ctx)
	return created, nil
}

func (s *FlightService) UpdateFlight(ctx context.Context, flightID string, req *models.UpdateFlightRequest) (*models.Flight, error) {
	flight, err := s.flights.GetFlight(ctx, flightID)
	if err != nil {
		return nil, err
	}

	if req.DepartureTime != nil {
		flight.DepartureTime = *req.DepartureTime
	}
	if req.ArrivalTime != nil {
		flight.ArrivalTime = *req.ArrivalTime
	}
	if req.DepartureLocation != "" {
		flight.DepartureLocation = req.DepartureLocation
	}
	if req.ArrivalLocation != "" {
		flight.ArrivalLocation = req.ArrivalLocation
	}
	if req.Status != "" {
		flight.Status = models.FlightStatus(req.Status)
	}
	if req.BasePrice != nil {
		flight.BasePrice = *req.BasePrice
	}
	if req.AircraftID != nil {
		flight.AircraftID = *req.AircraftID
	}

	// A schedule or aircraft change must not double book the aircraft.
	if req.DepartureTime != nil || req.ArrivalTime != nil || req.AircraftID != nil {
		conflict, err := s.flights.HasAircraftConflict(ctx, flight.AircraftID,
			flight.DepartureTime, flight.ArrivalTime, flight.ID)
		if err != nil {
			return nil, err
		}
		if conflict {
			return nil, models.ErrAircraftUnavailable
		}
	}

	if err = s.flights.UpdateFlight(ctx, flight); err != nil {
		return nil, err
	}

	s.invalidateCache(ctx)
	return s.flights.GetFlight(ctx, flightID)
}

// DeleteFlight removes a flight that never took bookings. A flight with
// reservations is cancelled instead, so its history stays intact.
func (s *FlightService) DeleteFlight(ctx context.Context, flightID string) error {
	hasReservations, err := s.flights.FlightHasReservations(ctx, flightID)
	if err != nil {
		return err
	}

	if hasReservations {
		flight, err := s.flights.GetFlight(ctx, flightID)
		if err != nil {
			return err
		}
		flight.Status = models.FlightCancelled
		if err = s.flights.UpdateFlight(ctx, flight); err != nil {
			return err
		}
	} else if err = s.flights.DeleteFlight(ctx, flightID); err != nil {
		return err
	}

	s.invalidateCache(ctx)
	return nil
}

func (s *FlightService) ListSeats(ctx context.Context, flightID string) ([]models.Seat, error) {
	if _, err := s.flights.GetFlight(ctx, flightID); err != nil {
		return nil, err
	}
	return s.flights.ListSeats(ctx, flightID)
}

func (s *FlightService) IsAircraftAvailable(ctx context.Context, aircraftID int64, departure, arrival time.Time, excludeFlightID string) (bool, error) {
	if _, err := s.aircraft.GetAircraft(ctx, aircraftID); err != nil {
		return false, err
	}
	conflict, err := s.flights.HasAircraftConflict(ctx, aircraftID, departure, arrival, excludeFlightID)
	if err != nil {
		return false, err
	}
	return !conflict, nil
}

// GenerateSeats backfills the seat map for a flight created before seat maps
// existed. It is a no-op error if the flight already has seats.
func (s *FlightService) GenerateSeats(ctx context.Context, flightID string) (int, error) {
	flight, err := s.flights.GetFlight(ctx, flightID)
	if err != nil {
		return 0, err
	}
	aircraft, err := s.aircraft.GetAircraft(ctx, flight.AircraftID)
	if err != nil {
		return 0, err
	}

	seats := seatmap.Generate(flight.ID, aircraft.ID, seatmap.LayoutByName(aircraft.SeatLayout))
	created, err := s.flights.CreateSeats(ctx, flightID, seats)
	if err != nil {
		return 0, err
	}
	if created == 0 {
		return 0, models.ErrSeatsAlreadyGenerated
	}
	return created, nil
}

func (s *FlightService) invalidateCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateFlights(ctx); err != nil {
		log.Printf("flight cache invalidation failed: %v", err)
	}
}
