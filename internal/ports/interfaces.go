package ports

import (
	"context"
	"time"

	models "github.com/btair/btair/internal"
)

type UserRepository interface {
	CreateUserWithCustomer(ctx context.Context, user *models.User, customer *models.Customer) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	UpdateUserRole(ctx context.Context, id int64, role string) error
	DeleteUserWithCustomer(ctx context.Context, userID int64) error
	GetCustomer(ctx context.Context, id int64) (*models.Customer, error)
	GetCustomerByUserID(ctx context.Context, userID int64) (*models.Customer, error)
	ListCustomers(ctx context.Context) ([]models.Customer, error)
	UpdateCustomer(ctx context.Context, customer *models.Customer) error
	DeleteCustomerWithUser(ctx context.Context, customerID int64) error
	CustomerHasReservations(ctx context.Context, customerID int64) (bool, error)
	CustomerSummary(ctx context.Context, customerID int64) (*models.CustomerSummary, error)
}

type AircraftRepository interface {
	ListAircraft(ctx context.Context) ([]models.Aircraft, error)
	GetAircraft(ctx context.Context, id int64) (*models.Aircraft, error)
	CreateAircraft(ctx context.Context, aircraft *models.Aircraft) (*models.Aircraft, error)
	UpdateAircraft(ctx context.Context, aircraft *models.Aircraft) error
	DeleteAircraft(ctx context.Context, id int64) error
	AircraftHasFlights(ctx context.Context, id int64) (bool, error)
}

type FlightRepository interface {
	ListFlights(ctx context.Context) ([]models.Flight, error)
	GetFlight(ctx context.Context, id string) (*models.Flight, error)
	SearchFlights(ctx context.Context, req *models.FlightSearchRequest) ([]models.Flight, error)
	CreateFlight(ctx context.Context, flight *models.Flight, seats []models.Seat) (*models.Flight, error)
	UpdateFlight(ctx context.Context, flight *models.Flight) error
	DeleteFlight(ctx context.Context, id string) error
	FlightHasReservations(ctx context.Context, id string) (bool, error)
	ListSeats(ctx context.Context, flightID string) ([]models.Seat, error)
	GetSeat(ctx context.Context, seatID int64) (*models.Seat, error)
	CreateSeats(ctx context.Context, flightID string, seats []models.Seat) (int, error)
	HasAircraftConflict(ctx context.Context, aircraftID int64, departure, arrival time.Time, excludeFlightID string) (bool, error)
}

type ReservationRepository interface {
	GetReservation(ctx context.Context, id int64) (*models.Reservation, error)
	ListReservationsByCustomer(ctx context.Context, customerID int64) ([]models.Reservation, error)
	ActiveSeatReservationExists(ctx context.Context, flightID string, seatID, excludeReservationID int64) (bool, error)
	CreateReservation(ctx context.Context, reservation *models.Reservation, ticket *models.Ticket) (*models.Reservation, error)
	UpdateReservation(ctx context.Context, reservation *models.Reservation) error
	CancelReservation(ctx context.Context, id int64) error
	ConfirmWithPayment(ctx context.Context, payment *models.Payment) error
	ListPassengers(ctx context.Context, customerID int64) ([]models.Passenger, error)
	GetPassenger(ctx context.Context, id int64) (*models.Passenger, error)
	CreatePassenger(ctx context.Context, passenger *models.Passenger) (*models.Passenger, error)
}

type StatsRepository interface {
	SystemStatistics(ctx context.Context) (*models.SystemStatistics, error)
	RecentActivities(ctx context.Context, limit int) ([]models.Activity, error)
}

// FlightCache is the optional read-through cache for the flight list. A nil
// cache disables caching.
type FlightCache interface {
	GetFlights(ctx context.Context) ([]models.Flight, error)
	SetFlights(ctx context.Context, flights []models.Flight) error
	InvalidateFlights(ctx context.Context) error
}

// EventProducer publishes reservation lifecycle events. Publishing is best
// effort; a nil producer disables it.
type EventProducer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type AuthService interface {
	Register(ctx context.Context, req *models.RegisterRequest) (*models.AuthResponse, error)
	Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error)
	GetUser(ctx context.Context, userID int64) (*models.User, error)
	ValidateToken(ctx context.Context, token string) (bool, error)
}

type FlightService interface {
	ListFlights(ctx context.Context) ([]models.Flight, error)
	GetFlight(ctx context.Context, flightID string) (*models.Flight, error)
	SearchFlights(ctx context.Context, req *models.FlightSearchRequest) ([]models.Flight, error)
	CreateFlight(ctx context.Context, req *models.CreateFlightRequest) (*models.Flight, error)
	UpdateFlight(ctx context.Context, flightID string, req *models.UpdateFlightRequest) (*models.Flight, error)
	DeleteFlight(ctx context.Context, flightID string) error
	ListSeats(ctx context.Context, flightID string) ([]models.Seat, error)
	IsAircraftAvailable(ctx context.Context, aircraftID int64, departure, arrival time.Time, excludeFlightID string) (bool, error)
	GenerateSeats(ctx context.Context, flightID string) (int, error)
}

type ReservationService interface {
	GetReservation(ctx context.Context, id int64) (*models.Reservation, error)
	CustomerReservations(ctx context.Context, customerID int64) ([]models.Reservation, error)
	CreateReservation(ctx context.Context, customerID int64, req *models.CreateReservationRequest) (*models.Reservation, error)
	UpdateReservation(ctx context.Context, id int64, req *models.UpdateReservationRequest) (*models.Reservation, error)
	CancelReservation(ctx context.Context, id int64) error
	ProcessPayment(ctx context.Context, req *models.CreatePaymentRequest) (*models.Payment, error)
	CustomerPassengers(ctx context.Context, customerID int64) ([]models.Passenger, error)
	CreatePassenger(ctx context.Context, customerID int64, req *models.CreatePassengerRequest) (*models.Passenger, error)
}

type CustomerService interface {
	ListCustomers(ctx context.Context) ([]models.Customer, error)
	GetCustomer(ctx context.Context, id int64) (*models.Customer, error)
	CreateCustomer(ctx context.Context, req *models.RegisterRequest) (*models.Customer, error)
	UpdateCustomer(ctx context.Context, id int64, req *models.UpdateCustomerRequest) (*models.Customer, error)
	DeleteCustomer(ctx context.Context, id int64) error
	CustomerSummary(ctx context.Context, id int64) (*models.CustomerSummary, error)
}

type AdminService interface {
	ListAircraft(ctx context.Context) ([]models.Aircraft, error)
	GetAircraft(ctx context.Context, id int64) (*models.Aircraft, error)
	CreateAircraft(ctx context.Context, req *models.CreateAircraftRequest) (*models.Aircraft, error)
	UpdateAircraft(ctx context.Context, id int64, req *models.UpdateAircraftRequest) (*models.Aircraft, error)
	DeleteAircraft(ctx context.Context, id int64) error
	Statistics(ctx context.Context) (*models.SystemStatistics, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	UpdateUserRole(ctx context.Context, userID int64, role string) error
	DeleteUser(ctx context.Context, userID int64) error
	RecentActivities(ctx context.Context) ([]models.Activity, error)
}
