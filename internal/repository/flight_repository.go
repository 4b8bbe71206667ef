package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	models "github.com/btair/btair/internal"
)

type FlightRepository struct {
	db DBConn
}

func NewFlightRepository(db DBConn) *FlightRepository {
	return &FlightRepository{db: db}
}

const flightSelect = `
        SELECT
            F.id, F.flight_number, F.departure_time, F.arrival_time,
            F.departure_location, F.arrival_location, F.status,
            F.available_seats, F.base_price, F.aircraft_id, A.model, F.created_at
        FROM flights F
        JOIN aircraft A ON A.id = F.aircraft_id
    `

func (r *FlightRepository) ListFlights(ctx context.Context) ([]models.Flight, error) {
	rows, err := r.db.Query(ctx, flightSelect+" ORDER BY F.departure_time")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectFlights(rows)
}

func (r *FlightRepository) GetFlight(ctx context.Context, id string) (*models.Flight, error) {
	row := r.db.QueryRow(ctx, flightSelect+" WHERE F.id = $1", id)
	flight, err := scanFlight(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrFlightNotFound
	}
	return flight, err
}

func (r *FlightRepository) SearchFlights(ctx context.Context, req *models.FlightSearchRequest) ([]models.Flight, error) {
	query := flightSelect + " WHERE F.status = 'Scheduled' AND F.available_seats >= $1"
	args := []interface{}{req.Passengers}

	if req.DepartureLocation != "" {
		args = append(args, "%"+req.DepartureLocation+"%")
		query += fmt.Sprintf(" AND F.departure_location ILIKE $%d", len(args))
	}
	if req.ArrivalLocation != "" {
		args = append(args, "%"+req.ArrivalLocation+"%")
		query += fmt.Sprintf(" AND F.arrival_location ILIKE $%d", len(args))
	}
	if req.DepartureDate != nil {
		dayStart := req.DepartureDate.Truncate(24 * time.Hour)
		args = append(args, dayStart)
		query += fmt.Sprintf(" AND F.departure_time >= $%d", len(args))
		args = append(args, dayStart.Add(24*time.Hour))
		query += fmt.Sprintf(" AND F.departure_time < $%d", len(args))
	}
	if req.MaxPrice != nil {
		args = append(args, *req.MaxPrice)
		query += fmt.Sprintf(" AND F.base_price <= $%d", len(args))
	}
	query += " ORDER BY F.departure_time"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectFlights(rows)
}

// CreateFlight inserts the flight and generates its seat map in one
// transaction. Seat generation is skipped when seats already exist for the
// flight, keeping creation idempotent.
func (r *FlightRepository) CreateFlight(ctx context.Context, flight *models.Flight, seats []models.Seat) (*models.Flight, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
        INSERT INTO flights (id, flight_number, departure_time, arrival_time,
            departure_location, arrival_location, status, available_seats, base_price, aircraft_id, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
    `, flight.ID, flight.FlightNumber, flight.DepartureTime, flight.ArrivalTime,
		flight.DepartureLocation, flight.ArrivalLocation, flight.Status,
		flight.AvailableSeats, flight.BasePrice, flight.AircraftID, flight.CreatedAt)
	if err != nil {
		return nil, err
	}

	if err = insertSeatsTx(ctx, tx, flight.ID, seats); err != nil {
		return nil, err
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, err
	}
	return flight, nil
}

func (r *FlightRepository) UpdateFlight(ctx context.Context, flight *models.Flight) error {
	tag, err := r.db.Exec(ctx, `
        UPDATE flights SET departure_time = $2, arrival_time = $3, departure_location = $4,
            arrival_location = $5, status = $6, base_price = $7, aircraft_id = $8
        WHERE id = $1
    `, flight.ID, flight.DepartureTime, flight.ArrivalTime, flight.DepartureLocation,
		flight.ArrivalLocation, flight.Status, flight.BasePrice, flight.AircraftID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return models.ErrFlightNotFound
	}
	return nil
}

func (r *FlightRepository) DeleteFlight(ctx context.Context, id string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err = tx.Exec(ctx, `DELETE FROM seats WHERE flight_id = $1`, id); err != nil {
		return err
	}
	tag, err := tx.Exec(ctx, `DELETE FROM flights WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return models.ErrFlightNotFound
	}
	return tx.Commit(ctx)
}

func (r *FlightRepository) FlightHasReservations(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM reservations WHERE flight_id = $1)`, id).Scan(&exists)
	return exists, err
}

// ListSeats reports each seat with its computed availability: a seat is
// available while no non-cancelled reservation holds it.
func (r *FlightRepository) ListSeats(ctx context.Context, flightID string) ([]models.Seat, error) {
	rows, err := r.db.Query(ctx, `
        SELECT S.id, S.seat_number, S.seat_class, S.price_multiplier, S.flight_id, S.aircraft_id,
            NOT EXISTS (
                SELECT 1 FROM reservations R
                WHERE R.flight_id = S.flight_id AND R.seat_id = S.id AND R.status <> 'Cancelled'
            ) AS is_available
        FROM seats S
        WHERE S.flight_id = $1
        ORDER BY S.id
    `, flightID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var seats []models.Seat
	for rows.Next() {
		var s models.Seat
		err = rows.Scan(&s.ID, &s.SeatNumber, &s.SeatClass, &s.PriceMultiplier,
			&s.FlightID, &s.AircraftID, &s.IsAvailable)
		if err != nil {
			return nil, err
		}
		seats = append(seats, s)
	}
	return seats, rows.Err()
}

func (r *FlightRepository) GetSeat(ctx context.Context, seatID int64) (*models.Seat, error) {
	var s models.Seat
	err := r.db.QueryRow(ctx, `
        SELECT id, seat_number, seat_class, price_multiplier, flight_id, aircraft_id
        FROM seats WHERE id = $1
    `, seatID).Scan(&s.ID, &s.SeatNumber, &s.SeatClass, &s.PriceMultiplier, &s.FlightID, &s.AircraftID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrSeatNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// CreateSeats generates the seat map for an existing flight, returning the
// number of seats inserted. Zero means seats already existed.
func (r *FlightRepository) CreateSeats(ctx context.Context, flightID string, seats []models.Seat) (int, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	var exists bool
	if err = tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM seats WHERE flight_id = $1)`, flightID).Scan(&exists); err != nil {
		return 0, err
	}
	if exists {
		return 0, nil
	}

	if err = insertSeatsTx(ctx, tx, flightID, seats); err != nil {
		return 0, err
	}
	if err = tx.Commit(ctx); err != nil {
		return 0, err
	}
	return len(seats), nil
}

func (r *FlightRepository) HasAircraftConflict(ctx context.Context, aircraftID int64, departure, arrival time.Time, excludeFlightID string) (bool, error) {
	query := `
        SELECT EXISTS (
            SELECT 1 FROM flights
            WHERE aircraft_id = $1 AND status <> 'Cancelled'
              AND id <> $2
              AND departure_time < $3 AND arrival_time > $4
        )
    `
	var conflict bool
	err := r.db.QueryRow(ctx, query, aircraftID, excludeFlightID, arrival, departure).Scan(&conflict)
	return conflict, err
}

func insertSeatsTx(ctx context.Context, tx pgx.Tx, flightID string, seats []models.Seat) error {
	if len(seats) == 0 {
		return nil
	}
	values := make([]string, 0, len(seats))
	args := make([]interface{}, 0, len(seats)*5)
	for i, s := range seats {
		values = append(values, fmt.Sprintf("($%d, $%d, $%d, $%d, $%d)", i*5+1, i*5+2, i*5+3, i*5+4, i*5+5))
		args = append(args, s.SeatNumber, s.SeatClass, s.PriceMultiplier, flightID, s.AircraftID)
	}
	query := `INSERT INTO seats (seat_number, seat_class, price_multiplier, flight_id, aircraft_id) VALUES ` +
		strings.Join(values, ", ")
	_, err := tx.Exec(ctx, query, args...)
	return err
}

func collectFlights(rows pgx.Rows) ([]models.Flight, error) {
	var flights []models.Flight
	for rows.Next() {
		flight, err := scanFlight(rows)
		if err != nil {
			return nil, err
		}
		flights = append(flights, *flight)
	}
	return flights, rows.Err()
}

func scanFlight(row pgx.Row) (*models.Flight, error) {
	var f models.Flight
	err := row.Scan(
		&f.ID, &f.FlightNumber, &f.DepartureTime, &f.ArrivalTime,
		&f.DepartureLocation, &f.ArrivalLocation, &f.Status,
		&f.AvailableSeats, &f.BasePrice, &f.AircraftID, &f.AircraftModel, &f.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &f, nil
}
