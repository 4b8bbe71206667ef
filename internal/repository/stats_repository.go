package repository

import (
	"context"
	"fmt"
	"sort"

	models "github.com/btair/btair/internal"
)

type StatsRepository struct {
	db DBConn
}

func NewStatsRepository(db DBConn) *StatsRepository {
	return &StatsRepository{db: db}
}

func (r *StatsRepository) SystemStatistics(ctx context.Context) (*models.SystemStatistics, error) {
	var stats models.SystemStatistics
	err := r.db.QueryRow(ctx, `
        SELECT
            (SELECT COUNT(*) FROM flights),
            (SELECT COUNT(*) FROM flights WHERE status = 'Scheduled'),
            (SELECT COUNT(*) FROM reservations),
            (SELECT COUNT(*) FROM customers),
            (SELECT COUNT(*) FROM aircraft),
            (SELECT COUNT(*) FROM aircraft WHERE status = 'Available'),
            (SELECT COALESCE(SUM(amount), 0) FROM payments WHERE status = 'Completed')
    `).Scan(&stats.TotalFlights, &stats.ActiveFlights, &stats.TotalReservations,
		&stats.TotalCustomers, &stats.TotalAircraft, &stats.AvailableAircraft, &stats.TotalRevenue)
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

// RecentActivities merges the latest reservations and payments, newest first.
func (r *StatsRepository) RecentActivities(ctx context.Context, limit int) ([]models.Activity, error) {
	activities := make([]models.Activity, 0, limit*2)

	rows, err := r.db.Query(ctx, `
        SELECT U.name, F.flight_number, R.booking_datetime, R.price
        FROM reservations R
        JOIN flights F ON F.id = R.flight_id
        JOIN customers C ON C.id = R.customer_id
        JOIN users U ON U.id = C.user_id
        ORDER BY R.booking_datetime DESC
        LIMIT $1
    `, limit)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var name string
		var flightNumber int
		var a models.Activity
		if err = rows.Scan(&name, &flightNumber, &a.Timestamp, &a.Amount); err != nil {
			rows.Close()
			return nil, err
		}
		a.Type = "Reservation"
		a.Description = fmt.Sprintf("New reservation by %s for flight %d", name, flightNumber)
		activities = append(activities, a)
	}
	rows.Close()
	if err = rows.Err(); err != nil {
		return nil, err
	}

	rows, err = r.db.Query(ctx, `
        SELECT U.name, P.payment_date, P.amount
        FROM payments P
        JOIN reservations R ON R.id = P.reservation_id
        JOIN customers C ON C.id = R.customer_id
        JOIN users U ON U.id = C.user_id
        ORDER BY P.payment_date DESC
        LIMIT $1
    `, limit)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var name string
		var a models.Activity
		if err = rows.Scan(&name, &a.Timestamp, &a.Amount); err != nil {
			rows.Close()
			return nil, err
		}
		a.Type = "Payment"
		a.Description = fmt.Sprintf("Payment of $%.2f received from %s", a.Amount, name)
		activities = append(activities, a)
	}
	rows.Close()
	if err = rows.Err(); err != nil {
		return nil, err
	}

	sort.Slice(activities, func(i, j int) bool {
		return activities[i].Timestamp.After(activities[j].Timestamp)
	})
	if len(activities) > limit*2 {
		activities = activities[:limit*2]
	}
	return activities, nil
}
