package models

import (
	"time"
)

type FlightStatus string

const (
	FlightScheduled FlightStatus = "Scheduled"
	FlightDelayed   FlightStatus = "Delayed"
	FlightCancelled FlightStatus = "Cancelled"
	FlightCompleted FlightStatus = "Completed"
)

type ReservationStatus string

const (
	ReservationPending   ReservationStatus = "Pending"
	ReservationConfirmed ReservationStatus = "Confirmed"
	ReservationCancelled ReservationStatus = "Cancelled"
)

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "Pending"
	PaymentCompleted PaymentStatus = "Completed"
	PaymentRefunded  PaymentStatus = "Refunded"
)

type TicketStatus string

const (
	TicketValid     TicketStatus = "Valid"
	TicketCancelled TicketStatus = "Cancelled"
)

type AircraftStatus string

const (
	AircraftAvailable   AircraftStatus = "Available"
	AircraftMaintenance AircraftStatus = "Maintenance"
	AircraftRetired     AircraftStatus = "Retired"
)

const (
	RoleCustomer = "Customer"
	RoleStaff    = "Staff"
	RoleAdmin    = "Admin"
)

type User struct {
	ID        int64     `json:"userId"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
}

type Customer struct {
	ID          int64     `json:"customerId"`
	UserID      int64     `json:"userId"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Address     string    `json:"address"`
	PhoneNumber string    `json:"phoneNumber"`
	CreatedAt   time.Time `json:"createdAt"`
}

type Aircraft struct {
	ID              int64          `json:"aircraftId"`
	Model           string         `json:"model"`
	SeatingCapacity int            `json:"seatingCapacity"`
	Status          AircraftStatus `json:"status"`
	Registration    string         `json:"registration"`
	SeatLayout      string         `json:"seatLayout"`
	LastMaintenance time.Time      `json:"lastMaintenance"`
	NextMaintenance time.Time      `json:"nextMaintenance"`
	CreatedAt       time.Time      `json:"createdAt"`
}

// Flight IDs are human readable strings like "BT0042", generated from the
// flight number. They appear in URLs and on tickets.
type Flight struct {
	ID                string       `json:"flightId"`
	FlightNumber      int          `json:"flightNumber"`
	DepartureTime     time.Time    `json:"departureTime"`
	ArrivalTime       time.Time    `json:"arrivalTime"`
	DepartureLocation string       `json:"departureLocation"`
	ArrivalLocation   string       `json:"arrivalLocation"`
	Status            FlightStatus `json:"status"`
	AvailableSeats    int          `json:"availableSeats"`
	BasePrice         float64      `json:"basePrice"`
	AircraftID        int64        `json:"aircraftId"`
	AircraftModel     string       `json:"aircraftModel,omitempty"`
	CreatedAt         time.Time    `json:"createdAt"`
}

type Seat struct {
	ID              int64   `json:"seatId"`
	SeatNumber      string  `json:"seatNumber"`
	SeatClass       string  `json:"seatClass"`
	PriceMultiplier float64 `json:"priceMultiplier"`
	FlightID        string  `json:"flightId"`
	AircraftID      int64   `json:"aircraftId"`
	IsAvailable     bool    `json:"isAvailable"`
}

type Passenger struct {
	ID             int64     `json:"passengerId"`
	CustomerID     int64     `json:"customerId"`
	FullName       string    `json:"fullName"`
	PassportNumber string    `json:"passportNumber"`
	Age            int       `json:"age"`
	Nationality    string    `json:"nationality"`
	Gender         string    `json:"gender"`
	DateOfBirth    time.Time `json:"dateOfBirth"`
	CreatedAt      time.Time `json:"createdAt"`
}

type Reservation struct {
	ID              int64             `json:"reservationId"`
	CustomerID      int64             `json:"customerId"`
	FlightID        string            `json:"flightId"`
	PassengerID     int64             `json:"passengerId"`
	SeatID          int64             `json:"seatId"`
	BookingDateTime time.Time         `json:"bookingDateTime"`
	Status          ReservationStatus `json:"status"`
	Price           float64           `json:"price"`

	// Joined fields, populated on reads.
	FlightNumber      int       `json:"flightNumber,omitempty"`
	DepartureLocation string    `json:"departureLocation,omitempty"`
	ArrivalLocation   string    `json:"arrivalLocation,omitempty"`
	DepartureTime     time.Time `json:"departureTime,omitempty"`
	ArrivalTime       time.Time `json:"arrivalTime,omitempty"`
	SeatNumber        string    `json:"seatNumber,omitempty"`
	SeatClass         string    `json:"seatClass,omitempty"`
	PassengerName     string    `json:"passengerName,omitempty"`
	PassportNumber    string    `json:"passportNumber,omitempty"`
	CustomerEmail     string    `json:"-"`
}

type Ticket struct {
	ID            string       `json:"ticketId"`
	ReservationID int64        `json:"reservationId"`
	IssueDate     time.Time    `json:"issueDate"`
	Status        TicketStatus `json:"ticketStatus"`
	TicketType    string       `json:"ticketType"`
}

type Payment struct {
	ID                   string        `json:"paymentId"`
	ReservationID        int64         `json:"reservationId"`
	Amount               float64       `json:"amount"`
	PaymentDate          time.Time     `json:"paymentDate"`
	Status               PaymentStatus `json:"status"`
	PaymentMethod        string        `json:"paymentMethod"`
	TransactionReference string        `json:"transactionReference"`
}

type RegisterRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=100"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8,max=72"`
	Address     string `json:"address" validate:"required,max=200"`
	PhoneNumber string `json:"phoneNumber" validate:"required,max=20"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	UserID      int64     `json:"userId"`
	CustomerID  int64     `json:"customerId,omitempty"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Role        string    `json:"role"`
	Token       string    `json:"token"`
	TokenExpiry time.Time `json:"tokenExpiry"`
}

type CreateReservationRequest struct {
	FlightID    string `json:"flightID" validate:"required,flight_id"`
	PassengerID int64  `json:"passengerID" validate:"required,gt=0"`
	SeatID      int64  `json:"seatID" validate:"required,gt=0"`
}

type UpdateReservationRequest struct {
	Status string `json:"status,omitempty" validate:"omitempty,oneof=Pending Confirmed Cancelled"`
	SeatID *int64 `json:"seatID,omitempty" validate:"omitempty,gt=0"`
}

type CreatePaymentRequest struct {
	ReservationID int64  `json:"reservationID" validate:"required,gt=0"`
	PaymentMethod string `json:"paymentMethod" validate:"required,max=50"`

	// Card fields are accepted for form compatibility and never stored.
	CardNumber     string `json:"cardNumber,omitempty"`
	CardHolderName string `json:"cardHolderName,omitempty"`
	ExpiryDate     string `json:"expiryDate,omitempty"`
	CVV            string `json:"cvv,omitempty"`
}

type CreatePassengerRequest struct {
	FullName       string    `json:"fullName" validate:"required,min=2,max=100"`
	PassportNumber string    `json:"passportNumber" validate:"required,passport"`
	Age            int       `json:"age" validate:"required,gte=0,lte=130"`
	Nationality    string    `json:"nationality" validate:"required,max=50"`
	Gender         string    `json:"gender" validate:"omitempty,oneof=Male Female Other"`
	DateOfBirth    time.Time `json:"dateOfBirth" validate:"required,past_date"`
}

type CreateFlightRequest struct {
	FlightNumber      int       `json:"flightNumber" validate:"required,gt=0,lte=9999"`
	DepartureTime     time.Time `json:"departureTime" validate:"required"`
	ArrivalTime       time.Time `json:"arrivalTime" validate:"required,gtfield=DepartureTime"`
	DepartureLocation string    `json:"departureLocation" validate:"required,max=100"`
	ArrivalLocation   string    `json:"arrivalLocation" validate:"required,max=100"`
	BasePrice         float64   `json:"basePrice" validate:"required,gt=0"`
	AircraftID        int64     `json:"aircraftID" validate:"required,gt=0"`
}

type UpdateFlightRequest struct {
	DepartureTime     *time.Time `json:"departureTime,omitempty"`
	ArrivalTime       *time.Time `json:"arrivalTime,omitempty"`
	DepartureLocation string     `json:"departureLocation,omitempty" validate:"omitempty,max=100"`
	ArrivalLocation   string     `json:"arrivalLocation,omitempty" validate:"omitempty,max=100"`
	Status            string     `json:"status,omitempty" validate:"omitempty,oneof=Scheduled Delayed Cancelled Completed"`
	BasePrice         *float64   `json:"basePrice,omitempty" validate:"omitempty,gt=0"`
	AircraftID        *int64     `json:"aircraftID,omitempty" validate:"omitempty,gt=0"`
}

type FlightSearchRequest struct {
	DepartureLocation string     `json:"departureLocation,omitempty"`
	ArrivalLocation   string     `json:"arrivalLocation,omitempty"`
	DepartureDate     *time.Time `json:"departureDate,omitempty"`
	MaxPrice          *float64   `json:"maxPrice,omitempty" validate:"omitempty,gt=0"`
	Passengers        int        `json:"passengers" validate:"gte=1,lte=9"`
}

type AvailabilityResponse struct {
	IsAvailable bool `json:"isAvailable"`
}

type CreateAircraftRequest struct {
	Model           string `json:"model" validate:"required,max=100"`
	SeatingCapacity int    `json:"seatingCapacity" validate:"required,gt=0"`
	Registration    string `json:"registration" validate:"required,max=50"`
	SeatLayout      string `json:"seatLayout,omitempty" validate:"omitempty,oneof=standard wide"`
}

type UpdateAircraftRequest struct {
	Model           string     `json:"model,omitempty" validate:"omitempty,max=100"`
	SeatingCapacity *int       `json:"seatingCapacity,omitempty" validate:"omitempty,gt=0"`
	Status          string     `json:"status,omitempty" validate:"omitempty,oneof=Available Maintenance Retired"`
	Registration    string     `json:"registration,omitempty" validate:"omitempty,max=50"`
	SeatLayout      string     `json:"seatLayout,omitempty" validate:"omitempty,oneof=standard wide"`
	NextMaintenance *time.Time `json:"nextMaintenance,omitempty"`
}

type UpdateCustomerRequest struct {
	Name        string `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Address     string `json:"address,omitempty" validate:"omitempty,max=200"`
	PhoneNumber string `json:"phoneNumber,omitempty" validate:"omitempty,max=20"`
}

type UpdateUserRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=Customer Staff Admin"`
}

type TokenValidationRequest struct {
	Token string `json:"token" validate:"required"`
}

type CustomerSummary struct {
	CustomerID       int64   `json:"customerId"`
	ReservationCount int     `json:"reservationCount"`
	PassengerCount   int     `json:"passengerCount"`
	TotalSpent       float64 `json:"totalSpent"`
}

type SystemStatistics struct {
	TotalFlights      int     `json:"totalFlights"`
	ActiveFlights     int     `json:"activeFlights"`
	TotalReservations int     `json:"totalReservations"`
	TotalCustomers    int     `json:"totalCustomers"`
	TotalAircraft     int     `json:"totalAircraft"`
	AvailableAircraft int     `json:"availableAircraft"`
	TotalRevenue      float64 `json:"totalRevenue"`
}

type Activity struct {
	Type        string    `json:"type"`
	Description string    `json:"description"`
	Timestamp   time.Time `json:"timestamp"`
	Amount      float64   `json:"amount"`
}
