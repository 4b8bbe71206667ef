package api

import (
	"net/http"
	"strconv"

	models "github.com/btair/btair/internal"
	"github.com/btair/btair/internal/utils"
)

func getApiError(err error) utils.ApiError {
	ae := utils.ApiError{Msg: err.Error()}
	switch err {
	case models.ErrUserNotFound, models.ErrCustomerNotFound, models.ErrAircraftNotFound,
		models.ErrFlightNotFound, models.ErrSeatNotFound, models.ErrPassengerNotFound,
		models.ErrReservationNotFound:
		ae.StatusCode = http.StatusNotFound
	case models.ErrEmailTaken, models.ErrDuplicatePassport, models.ErrSeatTaken,
		models.ErrFlightFull, models.ErrAircraftUnavailable, models.ErrAircraftInUse,
		models.ErrCustomerHasBookings, models.ErrUserHasBookings, models.ErrAdminUndeletable,
		models.ErrSeatsAlreadyGenerated, models.ErrReservationCancelled:
		ae.StatusCode = http.StatusConflict
	case models.ErrFlightNotScheduled, models.ErrReservationNotPending, models.ErrSeatWrongFlight,
		models.ErrStatusChangeNotAllowed:
		ae.StatusCode = http.StatusUnprocessableEntity
	case models.ErrInvalidCredentials, models.ErrInvalidToken:
		ae.StatusCode = http.StatusUnauthorized
	default:
		ae.StatusCode = http.StatusInternalServerError
	}
	return ae
}

func renderError(w http.ResponseWriter, r *http.Request, err error) {
	ae := getApiError(err)
	utils.RenderResponse(r, w, ae.StatusCode, ae)
}

func renderBadRequest(w http.ResponseWriter, r *http.Request, msg string) {
	ae := utils.NewBadRequest(msg)
	utils.RenderResponse(r, w, ae.StatusCode, ae)
}

func pathID(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(r.PathValue(name), 10, 64)
}
