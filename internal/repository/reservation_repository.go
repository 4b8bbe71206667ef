package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	models "github.com/btair/btair/internal"
)

// uniqueViolation is the Postgres error code raised by the partial unique
// index on active (flight_id, seat_id) reservation pairs.
const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

type ReservationRepository struct {
	db DBConn
}

func NewReservationRepository(db DBConn) *ReservationRepository {
	return &ReservationRepository{db: db}
}

const reservationSelect = `
        SELECT
            R.id, R.customer_id, R.flight_id, R.passenger_id, R.seat_id,
            R.booking_datetime, R.status, R.price,
            F.flight_number, F.departure_location, F.arrival_location, F.departure_time, F.arrival_time,
            S.seat_number, S.seat_class,
            P.full_name, P.passport_number,
            U.email
        FROM reservations R
        JOIN flights F ON F.id = R.flight_id
        JOIN seats S ON S.id = R.seat_id
        JOIN passengers P ON P.id = R.passenger_id
        JOIN customers C ON C.id = R.customer_id
        JOIN users U ON U.id = C.user_id
    `

func (r *ReservationRepository) GetReservation(ctx context.Context, id int64) (*models.Reservation, error) {
	row := r.db.QueryRow(ctx, reservationSelect+" WHERE R.id = $1", id)
	res, err := scanReservation(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrReservationNotFound
	}
	return res, err
}

func (r *ReservationRepository) ListReservationsByCustomer(ctx context.Context, customerID int64) ([]models.Reservation, error) {
	rows, err := r.db.Query(ctx, reservationSelect+" WHERE R.customer_id = $1 ORDER BY R.booking_datetime DESC", customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reservations []models.Reservation
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		reservations = append(reservations, *res)
	}
	return reservations, rows.Err()
}

func (r *ReservationRepository) ActiveSeatReservationExists(ctx context.Context, flightID string, seatID, excludeReservationID int64) (bool, error) {
	query := `
        SELECT EXISTS (
            SELECT 1 FROM reservations
            WHERE flight_id = $1 AND seat_id = $2 AND status <> 'Cancelled' AND id <> $3
        )
    `
	var exists bool
	err := r.db.QueryRow(ctx, query, flightID, seatID, excludeReservationID).Scan(&exists)
	return exists, err
}

// CreateReservation inserts the reservation and its ticket and decrements the
// flight seat counter in one transaction. The store enforces the two booking
// invariants: the counter update is conditional on available_seats > 0 and the
// insert is guarded against an existing active reservation for the same seat.
func (r *ReservationRepository) CreateReservation(ctx context.Context, reservation *models.Reservation, ticket *models.Ticket) (*models.Reservation, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `
        UPDATE flights SET available_seats = available_seats - 1
        WHERE id = $1 AND available_seats > 0
    `, reservation.FlightID)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, models.ErrFlightFull
	}

	err = tx.QueryRow(ctx, `
        INSERT INTO reservations (customer_id, flight_id, passenger_id, seat_id, booking_datetime, status, price)
        SELECT $1, $2, $3, $4, $5, $6, $7
        WHERE NOT EXISTS (
            SELECT 1 FROM reservations
            WHERE flight_id = $2 AND seat_id = $4 AND status <> 'Cancelled'
        )
        RETURNING id
    `, reservation.CustomerID, reservation.FlightID, reservation.PassengerID, reservation.SeatID,
		reservation.BookingDateTime, reservation.Status, reservation.Price).Scan(&reservation.ID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrSeatTaken
	}
	if isUniqueViolation(err) {
		return nil, models.ErrSeatTaken
	}
	if err != nil {
		return nil, err
	}

	ticket.ReservationID = reservation.ID
	_, err = tx.Exec(ctx, `
        INSERT INTO tickets (id, reservation_id, issue_date, status, ticket_type)
        VALUES ($1, $2, $3, $4, $5)
    `, ticket.ID, ticket.ReservationID, ticket.IssueDate, ticket.Status, ticket.TicketType)
	if err != nil {
		return nil, err
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, err
	}
	return reservation, nil
}

// UpdateReservation persists a status or seat change. The partial unique
// index on active (flight_id, seat_id) pairs backstops concurrent seat
// changes; a violation means the seat was taken between check and write.
func (r *ReservationRepository) UpdateReservation(ctx context.Context, reservation *models.Reservation) error {
	tag, err := r.db.Exec(ctx, `
        UPDATE reservations SET status = $2, seat_id = $3, price = $4 WHERE id = $1
    `, reservation.ID, reservation.Status, reservation.SeatID, reservation.Price)
	if isUniqueViolation(err) {
		return models.ErrSeatTaken
	}
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return models.ErrReservationNotFound
	}
	return nil
}

// CancelReservation releases the seat in one transaction: the reservation and
// its tickets are cancelled, completed payments refunded and the flight seat
// counter incremented. The guarded status flip prevents a double release; a
// repeat cancel is reported as a conflict.
func (r *ReservationRepository) CancelReservation(ctx context.Context, id int64) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var flightID string
	err = tx.QueryRow(ctx, `
        UPDATE reservations SET status = 'Cancelled'
        WHERE id = $1 AND status <> 'Cancelled'
        RETURNING flight_id
    `, id).Scan(&flightID)
	if errors.Is(err, pgx.ErrNoRows) {
		var exists bool
		if err = tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM reservations WHERE id = $1)`, id).Scan(&exists); err != nil {
			return err
		}
		if exists {
			return models.ErrReservationCancelled
		}
		return models.ErrReservationNotFound
	}
	if err != nil {
		return err
	}

	if _, err = tx.Exec(ctx, `UPDATE tickets SET status = 'Cancelled' WHERE reservation_id = $1`, id); err != nil {
		return err
	}
	if _, err = tx.Exec(ctx, `UPDATE payments SET status = 'Refunded' WHERE reservation_id = $1 AND status = 'Completed'`, id); err != nil {
		return err
	}
	if _, err = tx.Exec(ctx, `UPDATE flights SET available_seats = available_seats + 1 WHERE id = $1`, flightID); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// ConfirmWithPayment flips a pending reservation to Confirmed and records the
// completed payment in one transaction. The guarded update re-checks the
// Pending state immediately before commit.
func (r *ReservationRepository) ConfirmWithPayment(ctx context.Context, payment *models.Payment) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var price float64
	err = tx.QueryRow(ctx, `
        UPDATE reservations SET status = 'Confirmed'
        WHERE id = $1 AND status = 'Pending'
        RETURNING price
    `, payment.ReservationID).Scan(&price)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.ErrReservationNotPending
	}
	if err != nil {
		return err
	}

	payment.Amount = price
	payment.Status = models.PaymentCompleted
	_, err = tx.Exec(ctx, `
        INSERT INTO payments (id, reservation_id, amount, payment_date, status, payment_method, transaction_reference)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
    `, payment.ID, payment.ReservationID, payment.Amount, payment.PaymentDate,
		payment.Status, payment.PaymentMethod, payment.TransactionReference)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *ReservationRepository) ListPassengers(ctx context.Context, customerID int64) ([]models.Passenger, error) {
	rows, err := r.db.Query(ctx, `
        SELECT id, customer_id, full_name, passport_number, age, nationality, gender, date_of_birth, created_at
        FROM passengers WHERE customer_id = $1 ORDER BY id
    `, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var passengers []models.Passenger
	for rows.Next() {
		var p models.Passenger
		err = rows.Scan(&p.ID, &p.CustomerID, &p.FullName, &p.PassportNumber, &p.Age,
			&p.Nationality, &p.Gender, &p.DateOfBirth, &p.CreatedAt)
		if err != nil {
			return nil, err
		}
		passengers = append(passengers, p)
	}
	return passengers, rows.Err()
}

func (r *ReservationRepository) GetPassenger(ctx context.Context, id int64) (*models.Passenger, error) {
	var p models.Passenger
	err := r.db.QueryRow(ctx, `
        SELECT id, customer_id, full_name, passport_number, age, nationality, gender, date_of_birth, created_at
        FROM passengers WHERE id = $1
    `, id).Scan(&p.ID, &p.CustomerID, &p.FullName, &p.PassportNumber, &p.Age,
		&p.Nationality, &p.Gender, &p.DateOfBirth, &p.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrPassengerNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// CreatePassenger relies on a guarded insert for the per-customer passport
// uniqueness invariant.
func (r *ReservationRepository) CreatePassenger(ctx context.Context, passenger *models.Passenger) (*models.Passenger, error) {
	if passenger.CreatedAt.IsZero() {
		passenger.CreatedAt = time.Now().UTC()
	}
	err := r.db.QueryRow(ctx, `
        INSERT INTO passengers (customer_id, full_name, passport_number, age, nationality, gender, date_of_birth, created_at)
        SELECT $1, $2, $3, $4, $5, $6, $7, $8
        WHERE NOT EXISTS (
            SELECT 1 FROM passengers WHERE customer_id = $1 AND passport_number = $3
        )
        RETURNING id
    `, passenger.CustomerID, passenger.FullName, passenger.PassportNumber, passenger.Age,
		passenger.Nationality, passenger.Gender, passenger.DateOfBirth, passenger.CreatedAt).Scan(&passenger.ID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrDuplicatePassport
	}
	if err != nil {
		return nil, err
	}
	return passenger, nil
}

func scanReservation(row pgx.Row) (*models.Reservation, error) {
	var res models.Reservation
	err := row.Scan(
		&res.ID, &res.CustomerID, &res.FlightID, &res.PassengerID, &res.SeatID,
		&res.BookingDateTime, &res.Status, &res.Price,
		&res.FlightNumber, &res.DepartureLocation, &res.ArrivalLocation, &res.DepartureTime, &res.ArrivalTime,
		&res.SeatNumber, &res.SeatClass,
		&res.PassengerName, &res.PassportNumber,
		&res.CustomerEmail,
	)
	if err != nil {
		return nil, err
	}
	return &res, nil
}
