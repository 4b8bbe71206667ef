package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	models "github.com/btair/btair/internal"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) CreateUserWithCustomer(ctx context.Context, user *models.User, customer *models.Customer) error {
	args := m.Called(ctx, user, customer)
	return args.Error(0)
}

func (m *MockUserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) ListUsers(ctx context.Context) ([]models.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockUserRepository) UpdateUserRole(ctx context.Context, id int64, role string) error {
	args := m.Called(ctx, id, role)
	return args.Error(0)
}

func (m *MockUserRepository) DeleteUserWithCustomer(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockUserRepository) GetCustomer(ctx context.Context, id int64) (*models.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Customer), args.Error(1)
}

func (m *MockUserRepository) GetCustomerByUserID(ctx context.Context, userID int64) (*models.Customer, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Customer), args.Error(1)
}

func (m *MockUserRepository) ListCustomers(ctx context.Context) ([]models.Customer, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Customer), args.Error(1)
}

func (m *MockUserRepository) UpdateCustomer(ctx context.Context, customer *models.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockUserRepository) DeleteCustomerWithUser(ctx context.Context, customerID int64) error {
	args := m.Called(ctx, customerID)
	return args.Error(0)
}

func (m *MockUserRepository) CustomerHasReservations(ctx context.Context, customerID int64) (bool, error) {
	args := m.Called(ctx, customerID)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) CustomerSummary(ctx context.Context, customerID int64) (*models.CustomerSummary, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CustomerSummary), args.Error(1)
}

type MockAircraftRepository struct {
	mock.Mock
}

func (m *MockAircraftRepository) ListAircraft(ctx context.Context) ([]models.Aircraft, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Aircraft), args.Error(1)
}

func (m *MockAircraftRepository) GetAircraft(ctx context.Context, id int64) (*models.Aircraft, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Aircraft), args.Error(1)
}

func (m *MockAircraftRepository) CreateAircraft(ctx context.Context, aircraft *models.Aircraft) (*models.Aircraft, error) {
	args := m.Called(ctx, aircraft)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Aircraft), args.Error(1)
}

func (m *MockAircraftRepository) UpdateAircraft(ctx context.Context, aircraft *models.Aircraft) error {
	args := m.Called(ctx, aircraft)
	return args.Error(0)
}

func (m *MockAircraftRepository) DeleteAircraft(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockAircraftRepository) AircraftHasFlights(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

type MockFlightRepository struct {
	mock.Mock
}

func (m *MockFlightRepository) ListFlights(ctx context.Context) ([]models.Flight, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Flight), args.Error(1)
}

func (m *MockFlightRepository) GetFlight(ctx context.Context, id string) (*models.Flight, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Flight), args.Error(1)
}

func (m *MockFlightRepository) SearchFlights(ctx context.Context, req *models.FlightSearchRequest) ([]models.Flight, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Flight), args.Error(1)
}

func (m *MockFlightRepository) CreateFlight(ctx context.Context, flight *models.Flight, seats []models.Seat) (*models.Flight, error) {
	args := m.Called(ctx, flight, seats)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Flight), args.Error(1)
}

func (m *MockFlightRepository) UpdateFlight(ctx context.Context, flight *models.Flight) error {
	args := m.Called(ctx, flight)
	return args.Error(0)
}

func (m *MockFlightRepository) DeleteFlight(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockFlightRepository) FlightHasReservations(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockFlightRepository) ListSeats(ctx context.Context, flightID string) ([]models.Seat, error) {
	args := m.Called(ctx, flightID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Seat), args.Error(1)
}

func (m *MockFlightRepository) GetSeat(ctx context.Context, seatID int64) (*models.Seat, error) {
	args := m.Called(ctx, seatID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Seat), args.Error(1)
}

func (m *MockFlightRepository) CreateSeats(ctx context.Context, flightID string, seats []models.Seat) (int, error) {
	args := m.Called(ctx, flightID, seats)
	return args.Int(0), args.Error(1)
}

func (m *MockFlightRepository) HasAircraftConflict(ctx context.Context, aircraftID int64, departure, arrival time.Time, excludeFlightID string) (bool, error) {
	args := m.Called(ctx, aircraftID, departure, arrival, excludeFlightID)
	return args.Bool(0), args.Error(1)
}

type MockReservationRepository struct {
	mock.Mock
}

func (m *MockReservationRepository) GetReservation(ctx context.Context, id int64) (*models.Reservation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Reservation), args.Error(1)
}

func (m *MockReservationRepository) ListReservationsByCustomer(ctx context.Context, customerID int64) ([]models.Reservation, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Reservation), args.Error(1)
}

func (m *MockReservationRepository) ActiveSeatReservationExists(ctx context.Context, flightID string, seatID, excludeReservationID int64) (bool, error) {
	args := m.Called(ctx, flightID, seatID, excludeReservationID)
	return args.Bool(0), args.Error(1)
}

func (m *MockReservationRepository) CreateReservation(ctx context.Context, reservation *models.Reservation, ticket *models.Ticket) (*models.Reservation, error) {
	args := m.Called(ctx, reservation, ticket)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Reservation), args.Error(1)
}

func (m *MockReservationRepository) UpdateReservation(ctx context.Context, reservation *models.Reservation) error {
	args := m.Called(ctx, reservation)
	return args.Error(0)
}

func (m *MockReservationRepository) CancelReservation(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockReservationRepository) ConfirmWithPayment(ctx context.Context, payment *models.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *MockReservationRepository) ListPassengers(ctx context.Context, customerID int64) ([]models.Passenger, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Passenger), args.Error(1)
}

func (m *MockReservationRepository) GetPassenger(ctx context.Context, id int64) (*models.Passenger, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Passenger), args.Error(1)
}

func (m *MockReservationRepository) CreatePassenger(ctx context.Context, passenger *models.Passenger) (*models.Passenger, error) {
	args := m.Called(ctx, passenger)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Passenger), args.Error(1)
}

type MockStatsRepository struct {
	mock.Mock
}

func (m *MockStatsRepository) SystemStatistics(ctx context.Context) (*models.SystemStatistics, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SystemStatistics), args.Error(1)
}

func (m *MockStatsRepository) RecentActivities(ctx context.Context, limit int) ([]models.Activity, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Activity), args.Error(1)
}

type MockFlightCache struct {
	mock.Mock
}

func (m *MockFlightCache) GetFlights(ctx context.Context) ([]models.Flight, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Flight), args.Error(1)
}

func (m *MockFlightCache) SetFlights(ctx context.Context, flights []models.Flight) error {
	args := m.Called(ctx, flights)
	return args.Error(0)
}

func (m *MockFlightCache) InvalidateFlights(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MockEventProducer struct {
	mock.Mock
}

func (m *MockEventProducer) Publish(ctx context.Context, topic, key string, value interface{}) error {
	args := m.Called(ctx, topic, key, value)
	return args.Error(0)
}
