package models

import "errors"

// Precondition failures surfaced to the API layer. Services return these
// unwrapped so handlers can map them to HTTP status codes.
var (
	ErrUserNotFound        = errors.New("user not found")
	ErrCustomerNotFound    = errors.New("customer not found")
	ErrAircraftNotFound    = errors.New("aircraft not found")
	ErrFlightNotFound      = errors.New("flight not found")
	ErrSeatNotFound        = errors.New("seat not found")
	ErrPassengerNotFound   = errors.New("passenger not found")
	ErrReservationNotFound = errors.New("reservation not found")

	ErrEmailTaken            = errors.New("email already registered")
	ErrDuplicatePassport     = errors.New("passenger with this passport already exists")
	ErrSeatTaken             = errors.New("seat already reserved for this flight")
	ErrFlightFull            = errors.New("no available seats on this flight")
	ErrAircraftUnavailable   = errors.New("aircraft is not available for this time window")
	ErrAircraftInUse         = errors.New("aircraft has scheduled flights")
	ErrCustomerHasBookings   = errors.New("customer has existing reservations")
	ErrUserHasBookings       = errors.New("user has existing reservations")
	ErrAdminUndeletable      = errors.New("admin users cannot be deleted")
	ErrSeatsAlreadyGenerated = errors.New("seats already exist for this flight")
	ErrReservationCancelled  = errors.New("reservation is already cancelled")

	ErrFlightNotScheduled     = errors.New("flight is not scheduled")
	ErrReservationNotPending  = errors.New("reservation is not pending")
	ErrSeatWrongFlight        = errors.New("seat does not belong to this flight")
	ErrStatusChangeNotAllowed = errors.New("reservation status changes only through payment or cancellation")

	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
)
