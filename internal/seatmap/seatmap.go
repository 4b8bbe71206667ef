// Package seatmap generates the per-flight seat inventory from an aircraft
// cabin layout.
package seatmap

import (
	"fmt"

	models "github.com/btair/btair/internal"
)

const (
	ClassFirst    = "First"
	ClassBusiness = "Business"
	ClassEconomy  = "Economy"

	MultiplierFirst    = 3.0
	MultiplierBusiness = 2.0
	MultiplierEconomy  = 1.0
)

var seatLetters = []byte{'A', 'B', 'C', 'D', 'E', 'F'}

// Layout describes a cabin as contiguous row ranges per class, front to back.
// Every row has six seats, A through F.
type Layout struct {
	Name         string
	FirstRows    int
	BusinessRows int
	EconomyRows  int
}

func (l Layout) TotalSeats() int {
	return (l.FirstRows + l.BusinessRows + l.EconomyRows) * len(seatLetters)
}

var layouts = map[string]Layout{
	"standard": {Name: "standard", FirstRows: 2, BusinessRows: 4, EconomyRows: 24},
	"wide":     {Name: "wide", FirstRows: 3, BusinessRows: 5, EconomyRows: 27},
}

// LayoutByName returns the named layout, falling back to "standard" for
// unknown or empty names.
func LayoutByName(name string) Layout {
	if l, ok := layouts[name]; ok {
		return l
	}
	return layouts["standard"]
}

// Generate produces the complete, deterministic seat list for a flight. Row 1
// is the first First class row; Business and Economy rows follow without gaps.
func Generate(flightID string, aircraftID int64, layout Layout) []models.Seat {
	seats := make([]models.Seat, 0, layout.TotalSeats())

	row := 1
	for end := layout.FirstRows; row <= end; row++ {
		seats = append(seats, rowSeats(flightID, aircraftID, row, ClassFirst, MultiplierFirst)...)
	}
	for end := layout.FirstRows + layout.BusinessRows; row <= end; row++ {
		seats = append(seats, rowSeats(flightID, aircraftID, row, ClassBusiness, MultiplierBusiness)...)
	}
	for end := layout.FirstRows + layout.BusinessRows + layout.EconomyRows; row <= end; row++ {
		seats = append(seats, rowSeats(flightID, aircraftID, row, ClassEconomy, MultiplierEconomy)...)
	}

	return seats
}

func rowSeats(flightID string, aircraftID int64, row int, class string, multiplier float64) []models.Seat {
	seats := make([]models.Seat, 0, len(seatLetters))
	for _, letter := range seatLetters {
		seats = append(seats, models.Seat{
			SeatNumber:      fmt.Sprintf("%d%c", row, letter),
			SeatClass:       class,
			PriceMultiplier: multiplier,
			FlightID:        flightID,
			AircraftID:      aircraftID,
			IsAvailable:     true,
		})
	}
	return seats
}
