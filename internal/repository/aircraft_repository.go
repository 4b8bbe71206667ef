package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	models "github.com/btair/btair/internal"
)

type AircraftRepository struct {
	db DBConn
}

func NewAircraftRepository(db DBConn) *AircraftRepository {
	return &AircraftRepository{db: db}
}

const aircraftSelect = `
        SELECT id, model, seating_capacity, status, registration, seat_layout,
            last_maintenance, next_maintenance, created_at
        FROM aircraft
    `

func (r *AircraftRepository) ListAircraft(ctx context.Context) ([]models.Aircraft, error) {
	rows, err := r.db.Query(ctx, aircraftSelect+" ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var fleet []models.Aircraft
	for rows.Next() {
		var a models.Aircraft
		err = rows.Scan(&a.ID, &a.Model, &a.SeatingCapacity, &a.Status, &a.Registration,
			&a.SeatLayout, &a.LastMaintenance, &a.NextMaintenance, &a.CreatedAt)
		if err != nil {
			return nil, err
		}
		fleet = append(fleet, a)
	}
	return fleet, rows.Err()
}

func (r *AircraftRepository) GetAircraft(ctx context.Context, id int64) (*models.Aircraft, error) {
	var a models.Aircraft
	err := r.db.QueryRow(ctx, aircraftSelect+" WHERE id = $1", id).
		Scan(&a.ID, &a.Model, &a.SeatingCapacity, &a.Status, &a.Registration,
			&a.SeatLayout, &a.LastMaintenance, &a.NextMaintenance, &a.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrAircraftNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AircraftRepository) CreateAircraft(ctx context.Context, aircraft *models.Aircraft) (*models.Aircraft, error) {
	err := r.db.QueryRow(ctx, `
        INSERT INTO aircraft (model, seating_capacity, status, registration, seat_layout,
            last_maintenance, next_maintenance, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING id
    `, aircraft.Model, aircraft.SeatingCapacity, aircraft.Status, aircraft.Registration,
		aircraft.SeatLayout, aircraft.LastMaintenance, aircraft.NextMaintenance, aircraft.CreatedAt).
		Scan(&aircraft.ID)
	if err != nil {
		return nil, err
	}
	return aircraft, nil
}

func (r *AircraftRepository) UpdateAircraft(ctx context.Context, aircraft *models.Aircraft) error {
	tag, err := r.db.Exec(ctx, `
        UPDATE aircraft SET model = $2, seating_capacity = $3, status = $4, registration = $5,
            seat_layout = $6, next_maintenance = $7
        WHERE id = $1
    `, aircraft.ID, aircraft.Model, aircraft.SeatingCapacity, aircraft.Status,
		aircraft.Registration, aircraft.SeatLayout, aircraft.NextMaintenance)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return models.ErrAircraftNotFound
	}
	return nil
}

func (r *AircraftRepository) DeleteAircraft(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM aircraft WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return models.ErrAircraftNotFound
	}
	return nil
}

func (r *AircraftRepository) AircraftHasFlights(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM flights WHERE aircraft_id = $1)`, id).Scan(&exists)
	return exists, err
}
