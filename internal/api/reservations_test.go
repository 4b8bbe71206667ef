package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	models "github.com/btair/btair/internal"
	"github.com/btair/btair/internal/api"
	"github.com/btair/btair/internal/mocks"
)

func jsonBody(t *testing.T, v interface{}) *bytes.Reader {
	t.Helper()
	payload, err := json.Marshal(v)
	assert.NoError(t, err)
	return bytes.NewReader(payload)
}

func TestCreateReservationHandler(t *testing.T) {
	t.Run("creates reservation", func(t *testing.T) {
		svc := new(mocks.MockReservationService)
		svc.On("CreateReservation", mock.Anything, int64(5), mock.AnythingOfType("*models.CreateReservationRequest")).
			Return(&models.Reservation{ID: 77, FlightID: "BT0042", Price: 300}, nil)

		body := jsonBody(t, models.CreateReservationRequest{FlightID: "BT0042", PassengerID: 12, SeatID: 33})
		req := httptest.NewRequest(http.MethodPost, "/api/reservations/customer/5", body)
		req.SetPathValue("customerId", "5")
		rec := httptest.NewRecorder()

		api.CreateReservationHandler(svc)(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)

		var res models.Reservation
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
		assert.Equal(t, int64(77), res.ID)
		svc.AssertExpectations(t)
	})

	t.Run("rejects malformed flight id", func(t *testing.T) {
		svc := new(mocks.MockReservationService)

		body := jsonBody(t, models.CreateReservationRequest{FlightID: "42", PassengerID: 12, SeatID: 33})
		req := httptest.NewRequest(http.MethodPost, "/api/reservations/customer/5", body)
		req.SetPathValue("customerId", "5")
		rec := httptest.NewRecorder()

		api.CreateReservationHandler(svc)(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		svc.AssertNotCalled(t, "CreateReservation", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("maps taken seat to conflict", func(t *testing.T) {
		svc := new(mocks.MockReservationService)
		svc.On("CreateReservation", mock.Anything, int64(5), mock.Anything).
			Return(nil, models.ErrSeatTaken)

		body := jsonBody(t, models.CreateReservationRequest{FlightID: "BT0042", PassengerID: 12, SeatID: 33})
		req := httptest.NewRequest(http.MethodPost, "/api/reservations/customer/5", body)
		req.SetPathValue("customerId", "5")
		rec := httptest.NewRecorder()

		api.CreateReservationHandler(svc)(rec, req)

		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("rejects non numeric customer id", func(t *testing.T) {
		svc := new(mocks.MockReservationService)

		req := httptest.NewRequest(http.MethodPost, "/api/reservations/customer/abc", nil)
		req.SetPathValue("customerId", "abc")
		rec := httptest.NewRecorder()

		api.CreateReservationHandler(svc)(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestCancelReservationHandler(t *testing.T) {
	t.Run("cancels reservation", func(t *testing.T) {
		svc := new(mocks.MockReservationService)
		svc.On("CancelReservation", mock.Anything, int64(77)).Return(nil)

		req := httptest.NewRequest(http.MethodDelete, "/api/reservations/77", nil)
		req.SetPathValue("reservationId", "77")
		rec := httptest.NewRecorder()

		api.CancelReservationHandler(svc)(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		svc.AssertExpectations(t)
	})

	t.Run("maps double cancel to conflict", func(t *testing.T) {
		svc := new(mocks.MockReservationService)
		svc.On("CancelReservation", mock.Anything, int64(77)).Return(models.ErrReservationCancelled)

		req := httptest.NewRequest(http.MethodDelete, "/api/reservations/77", nil)
		req.SetPathValue("reservationId", "77")
		rec := httptest.NewRecorder()

		api.CancelReservationHandler(svc)(rec, req)

		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("maps missing reservation to not found", func(t *testing.T) {
		svc := new(mocks.MockReservationService)
		svc.On("CancelReservation", mock.Anything, int64(99)).Return(models.ErrReservationNotFound)

		req := httptest.NewRequest(http.MethodDelete, "/api/reservations/99", nil)
		req.SetPathValue("reservationId", "99")
		rec := httptest.NewRecorder()

		api.CancelReservationHandler(svc)(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestCreatePaymentHandler(t *testing.T) {
	t.Run("records payment", func(t *testing.T) {
		svc := new(mocks.MockReservationService)
		svc.On("ProcessPayment", mock.Anything, mock.AnythingOfType("*models.CreatePaymentRequest")).
			Return(&models.Payment{ID: "PAY-1", Amount: 300, Status: models.PaymentCompleted}, nil)

		body := jsonBody(t, models.CreatePaymentRequest{ReservationID: 77, PaymentMethod: "CreditCard"})
		req := httptest.NewRequest(http.MethodPost, "/api/reservations/payments", body)
		rec := httptest.NewRecorder()

		api.CreatePaymentHandler(svc)(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)

		var payment models.Payment
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payment))
		assert.Equal(t, 300.0, payment.Amount)
	})

	t.Run("maps already paid to unprocessable", func(t *testing.T) {
		svc := new(mocks.MockReservationService)
		svc.On("ProcessPayment", mock.Anything, mock.Anything).
			Return(nil, models.ErrReservationNotPending)

		body := jsonBody(t, models.CreatePaymentRequest{ReservationID: 77, PaymentMethod: "CreditCard"})
		req := httptest.NewRequest(http.MethodPost, "/api/reservations/payments", body)
		rec := httptest.NewRecorder()

		api.CreatePaymentHandler(svc)(rec, req)

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})
}

func TestCreatePassengerHandler(t *testing.T) {
	svc := new(mocks.MockReservationService)
	svc.On("CreatePassenger", mock.Anything, int64(5), mock.AnythingOfType("*models.CreatePassengerRequest")).
		Return(nil, models.ErrDuplicatePassport)

	body := jsonBody(t, map[string]interface{}{
		"fullName":       "Jane Doe",
		"passportNumber": "AB123456",
		"age":            34,
		"nationality":    "Lithuanian",
		"dateOfBirth":    "1992-03-01T00:00:00Z",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/reservations/customers/5/passengers", body)
	req.SetPathValue("customerId", "5")
	rec := httptest.NewRecorder()

	api.CreatePassengerHandler(svc)(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
}
