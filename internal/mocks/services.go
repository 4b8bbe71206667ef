package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	models "github.com/btair/btair/internal"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, req *models.RegisterRequest) (*models.AuthResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AuthResponse), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AuthResponse), args.Error(1)
}

func (m *MockAuthService) GetUser(ctx context.Context, userID int64) (*models.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockAuthService) ValidateToken(ctx context.Context, token string) (bool, error) {
	args := m.Called(ctx, token)
	return args.Bool(0), args.Error(1)
}

type MockFlightService struct {
	mock.Mock
}

func (m *MockFlightService) ListFlights(ctx context.Context) ([]models.Flight, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Flight), args.Error(1)
}

func (m *MockFlightService) GetFlight(ctx context.Context, flightID string) (*models.Flight, error) {
	args := m.Called(ctx, flightID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Flight), args.Error(1)
}

func (m *MockFlightService) SearchFlights(ctx context.Context, req *models.FlightSearchRequest) ([]models.Flight, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Flight), args.Error(1)
}

func (m *MockFlightService) CreateFlight(ctx context.Context, req *models.CreateFlightRequest) (*models.Flight, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Flight), args.Error(1)
}

func (m *MockFlightService) UpdateFlight(ctx context.Context, flightID string, req *models.UpdateFlightRequest) (*models.Flight, error) {
	args := m.Called(ctx, flightID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Flight), args.Error(1)
}

func (m *MockFlightService) DeleteFlight(ctx context.Context, flightID string) error {
	args := m.Called(ctx, flightID)
	return args.Error(0)
}

func (m *MockFlightService) ListSeats(ctx context.Context, flightID string) ([]models.Seat, error) {
	args := m.Called(ctx, flightID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Seat), args.Error(1)
}

func (m *MockFlightService) IsAircraftAvailable(ctx context.Context, aircraftID int64, departure, arrival time.Time, excludeFlightID string) (bool, error) {
	args := m.Called(ctx, aircraftID, departure, arrival, excludeFlightID)
	return args.Bool(0), args.Error(1)
}

func (m *MockFlightService) GenerateSeats(ctx context.Context, flightID string) (int, error) {
	args := m.Called(ctx, flightID)
	return args.Int(0), args.Error(1)
}

type MockReservationService struct {
	mock.Mock
}

func (m *MockReservationService) GetReservation(ctx context.Context, id int64) (*models.Reservation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Reservation), args.Error(1)
}

func (m *MockReservationService) CustomerReservations(ctx context.Context, customerID int64) ([]models.Reservation, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Reservation), args.Error(1)
}

func (m *MockReservationService) CreateReservation(ctx context.Context, customerID int64, req *models.CreateReservationRequest) (*models.Reservation, error) {
	args := m.Called(ctx, customerID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Reservation), args.Error(1)
}

func (m *MockReservationService) UpdateReservation(ctx context.Context, id int64, req *models.UpdateReservationRequest) (*models.Reservation, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Reservation), args.Error(1)
}

func (m *MockReservationService) CancelReservation(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockReservationService) ProcessPayment(ctx context.Context, req *models.CreatePaymentRequest) (*models.Payment, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Payment), args.Error(1)
}

func (m *MockReservationService) CustomerPassengers(ctx context.Context, customerID int64) ([]models.Passenger, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Passenger), args.Error(1)
}

func (m *MockReservationService) CreatePassenger(ctx context.Context, customerID int64, req *models.CreatePassengerRequest) (*models.Passenger, error) {
	args := m.Called(ctx, customerID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Passenger), args.Error(1)
}

type MockCustomerService struct {
	mock.Mock
}

func (m *MockCustomerService) ListCustomers(ctx context.Context) ([]models.Customer, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Customer), args.Error(1)
}

func (m *MockCustomerService) GetCustomer(ctx context.Context, id int64) (*models.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Customer), args.Error(1)
}

func (m *MockCustomerService) CreateCustomer(ctx context.Context, req *models.RegisterRequest) (*models.Customer, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Customer), args.Error(1)
}

func (m *MockCustomerService) UpdateCustomer(ctx context.Context, id int64, req *models.UpdateCustomerRequest) (*models.Customer, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Customer), args.Error(1)
}

func (m *MockCustomerService) DeleteCustomer(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCustomerService) CustomerSummary(ctx context.Context, id int64) (*models.CustomerSummary, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CustomerSummary), args.Error(1)
}

type MockAdminService struct {
	mock.Mock
}

func (m *MockAdminService) ListAircraft(ctx context.Context) ([]models.Aircraft, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Aircraft), args.Error(1)
}

func (m *MockAdminService) GetAircraft(ctx context.Context, id int64) (*models.Aircraft, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Aircraft), args.Error(1)
}

func (m *MockAdminService) CreateAircraft(ctx context.Context, req *models.CreateAircraftRequest) (*models.Aircraft, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Aircraft), args.Error(1)
}

func (m *MockAdminService) UpdateAircraft(ctx context.Context, id int64, req *models.UpdateAircraftRequest) (*models.Aircraft, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Aircraft), args.Error(1)
}

func (m *MockAdminService) DeleteAircraft(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockAdminService) Statistics(ctx context.Context) (*models.SystemStatistics, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SystemStatistics), args.Error(1)
}

func (m *MockAdminService) ListUsers(ctx context.Context) ([]models.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockAdminService) UpdateUserRole(ctx context.Context, userID int64, role string) error {
	args := m.Called(ctx, userID, role)
	return args.Error(0)
}

func (m *MockAdminService) DeleteUser(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockAdminService) RecentActivities(ctx context.Context) ([]models.Activity, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Activity), args.Error(1)
}
