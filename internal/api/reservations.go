package api

import (
	"net/http"

	models "github.com/btair/btair/internal"
	"github.com/btair/btair/internal/ports"
	"github.com/btair/btair/internal/utils"
	"github.com/btair/btair/internal/validator"
)

func GetReservationHandler(service ports.ReservationService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "reservationId")
		if err != nil {
			renderBadRequest(w, r, "invalid reservation id")
			return
		}

		reservation, err := service.GetReservation(r.Context(), id)
		if err != nil {
			renderError(w, r, err)
			return
		}
		utils.RenderResponse(r, w, http.StatusOK, reservation)
	}
}

func CustomerReservationsHandler(service ports.ReservationService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		customerID, err := pathID(r, "customerId")
		if err != nil {
			renderBadRequest(w, r, "invalid customer id")
			return
		}

		reservations, err := service.CustomerReservations(r.Context(), customerID)
		if err != nil {
			renderError(w, r, err)
			return
		}
		utils.RenderResponse(r, w, http.StatusOK, reservations)
	}
}

func CreateReservationHandler(service ports.ReservationService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		customerID, err := pathID(r, "customerId")
		if err != nil {
			renderBadRequest(w, r, "invalid customer id")
			return
		}

		var req models.CreateReservationRequest
		if err := utils.JsonDecodeBody(r, &req); err != nil {
			renderBadRequest(w, r, "error json decoding body")
			return
		}

		v := validator.NewCustomValidator()
		if err := v.Validate(req); err != nil {
			renderBadRequest(w, r, err.Error())
			return
		}

		reservation, err := service.CreateReservation(r.Context(), customerID, &req)
		if err != nil {
			renderError(w, r, err)
			return
		}
		utils.RenderResponse(r, w, http.StatusCreated, reservation)
	}
}

func UpdateReservationHandler(service ports.ReservationService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "reservationId")
		if err != nil {
			renderBadRequest(w, r, "invalid reservation id")
			return
		}

		var req models.UpdateReservationRequest
		if err := utils.JsonDecodeBody(r, &req); err != nil {
			renderBadRequest(w, r, "error json decoding body")
			return
		}

		v := validator.NewCustomValidator()
		if err := v.Validate(req); err != nil {
			renderBadRequest(w, r, err.Error())
			return
		}

		reservation, err := service.UpdateReservation(r.Context(), id, &req)
		if err != nil {
			renderError(w, r, err)
			return
		}
		utils.RenderResponse(r, w, http.StatusOK, reservation)
	}
}

func CancelReservationHandler(service ports.ReservationService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "reservationId")
		if err != nil {
			renderBadRequest(w, r, "invalid reservation id")
			return
		}

		if err = service.CancelReservation(r.Context(), id); err != nil {
			renderError(w, r, err)
			return
		}
		utils.RenderResponse(r, w, http.StatusNoContent, nil)
	}
}

func CreatePaymentHandler(service ports.ReservationService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.CreatePaymentRequest
		if err := utils.JsonDecodeBody(r, &req); err != nil {
			renderBadRequest(w, r, "error json decoding body")
			return
		}

		v := validator.NewCustomValidator()
		if err := v.Validate(req); err != nil {
			renderBadRequest(w, r, err.Error())
			return
		}

		payment, err := service.ProcessPayment(r.Context(), &req)
		if err != nil {
			renderError(w, r, err)
			return
		}
		utils.RenderResponse(r, w, http.StatusCreated, payment)
	}
}

func CustomerPassengersHandler(service ports.ReservationService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		customerID, err := pathID(r, "customerId")
		if err != nil {
			renderBadRequest(w, r, "invalid customer id")
			return
		}

		passengers, err := service.CustomerPassengers(r.Context(), customerID)
		if err != nil {
			renderError(w, r, err)
			return
		}
		utils.RenderResponse(r, w, http.StatusOK, passengers)
	}
}

func CreatePassengerHandler(service ports.ReservationService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		customerID, err := pathID(r, "customerId")
		if err != nil {
			renderBadRequest(w, r, "invalid customer id")
			return
		}

		var req models.CreatePassengerRequest
		if err := utils.JsonDecodeBody(r, &req); err != nil {
			renderBadRequest(w, r, "error json decoding body")
			return
		}

		v := validator.NewCustomValidator()
		if err := v.Validate(req); err != nil {
			renderBadRequest(w, r, err.Error())
			return
		}

		passenger, err := service.CreatePassenger(r.Context(), customerID, &req)
		if err != nil {
			renderError(w, r, err)
			return
		}
		utils.RenderResponse(r, w, http.StatusCreated, passenger)
	}
}
