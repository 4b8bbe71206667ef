package validator_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	models "github.com/btair/btair/internal"
	"github.com/btair/btair/internal/validator"
)

func validPassengerRequest() models.CreatePassengerRequest {
	return models.CreatePassengerRequest{
		FullName:       "Jane Doe",
		PassportNumber: "AB123456",
		Age:            34,
		Nationality:    "Lithuanian",
		Gender:         "Female",
		DateOfBirth:    time.Date(1992, 3, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestFlightIDRule(t *testing.T) {
	v := validator.NewCustomValidator()

	valid := models.CreateReservationRequest{FlightID: "BT0042", PassengerID: 1, SeatID: 1}
	assert.NoError(t, v.Validate(valid))

	for _, id := range []string{"BT42", "XX0042", "bt0042", "BT00042", "0042"} {
		invalid := valid
		invalid.FlightID = id
		assert.Error(t, v.Validate(invalid), "flight id %q should fail", id)
	}
}

func TestPassportRule(t *testing.T) {
	v := validator.NewCustomValidator()

	assert.NoError(t, v.Validate(validPassengerRequest()))

	t.Run("too short", func(t *testing.T) {
		req := validPassengerRequest()
		req.PassportNumber = "AB12"
		assert.Error(t, v.Validate(req))
	})

	t.Run("non alphanumeric", func(t *testing.T) {
		req := validPassengerRequest()
		req.PassportNumber = "AB-123456"
		assert.Error(t, v.Validate(req))
	})
}

func TestPastDateRule(t *testing.T) {
	v := validator.NewCustomValidator()

	req := validPassengerRequest()
	req.DateOfBirth = time.Now().Add(24 * time.Hour)
	assert.Error(t, v.Validate(req))
}

func TestFlightTimesRule(t *testing.T) {
	v := validator.NewCustomValidator()

	departure := time.Date(2026, 9, 10, 10, 0, 0, 0, time.UTC)
	req := models.CreateFlightRequest{
		FlightNumber:      42,
		DepartureTime:     departure,
		ArrivalTime:       departure.Add(3 * time.Hour),
		DepartureLocation: "Vilnius",
		ArrivalLocation:   "London",
		BasePrice:         100,
		AircraftID:        7,
	}
	assert.NoError(t, v.Validate(req))

	req.ArrivalTime = departure.Add(-time.Hour)
	assert.Error(t, v.Validate(req))
}
