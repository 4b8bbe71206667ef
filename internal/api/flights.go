package api

import (
	"net/http"
	"strconv"
	"time"

	models "github.com/btair/btair/internal"
	"github.com/btair/btair/internal/ports"
	"github.com/btair/btair/internal/utils"
	"github.com/btair/btair/internal/validator"
)

func ListFlightsHandler(service ports.FlightService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		flights, err := service.ListFlights(r.Context())
		if err != nil {
			renderError(w, r, err)
			return
		}
		utils.RenderResponse(r, w, http.StatusOK, flights)
	}
}

func GetFlightHandler(service ports.FlightService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		flight, err := service.GetFlight(r.Context(), r.PathValue("flightId"))
		if err != nil {
			renderError(w, r, err)
			return
		}
		utils.RenderResponse(r, w, http.StatusOK, flight)
	}
}

// SearchFlightsHandler filters scheduled flights. POST takes a JSON
// FlightSearchRequest body; GET takes the same fields as query parameters:
// departureLocation, arrivalLocation, departureDate (2006-01-02), maxPrice
// and passengers.
func SearchFlightsHandler(service ports.FlightService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, err := flightSearchRequest(r)
		if err != nil {
			renderBadRequest(w, r, err.Error())
			return
		}

		v := validator.NewCustomValidator()
		if err := v.Validate(*req); err != nil {
			renderBadRequest(w, r, err.Error())
			return
		}

		flights, err := service.SearchFlights(r.Context(), req)
		if err != nil {
			renderError(w, r, err)
			return
		}
		utils.RenderResponse(r, w, http.StatusOK, flights)
	}
}

func CreateFlightHandler(service ports.FlightService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.CreateFlightRequest
		if err := utils.JsonDecodeBody(r, &req); err != nil {
			renderBadRequest(w, r, "error json decoding body")
			return
		}

		v := validator.NewCustomValidator()
		if err := v.Validate(req); err != nil {
			renderBadRequest(w, r, err.Error())
			return
		}

		flight, err := service.CreateFlight(r.Context(), &req)
		if err != nil {
			renderError(w, r, err)
			return
		}
		utils.RenderResponse(r, w, http.StatusCreated, flight)
	}
}

func UpdateFlightHandler(service ports.FlightService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.UpdateFlightRequest
		if err := utils.JsonDecodeBody(r, &req); err != nil {
			renderBadRequest(w, r, "error json decoding body")
			return
		}

		v := validator.NewCustomValidator()
		if err := v.Validate(req); err != nil {
			renderBadRequest(w, r, err.Error())
			return
		}

		flight, err := service.UpdateFlight(r.Context(), r.PathValue("flightId"), &req)
		if err != nil {
			renderError(w, r, err)
			return
		}
		utils.RenderResponse(r, w, http.StatusOK, flight)
	}
}

func DeleteFlightHandler(service ports.FlightService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := service.DeleteFlight(r.Context(), r.PathValue("flightId")); err != nil {
			renderError(w, r, err)
			return
		}
		utils.RenderResponse(r, w, http.StatusNoContent, nil)
	}
}

func ListSeatsHandler(service ports.FlightService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		seats, err := service.ListSeats(r.Context(), r.PathValue("flightId"))
		if err != nil {
			renderError(w, r, err)
			return
		}
		utils.RenderResponse(r, w, http.StatusOK, seats)
	}
}

// AircraftAvailabilityHandler answers whether an aircraft is free for the
// window given by the departureTime and arrivalTime query parameters
// (RFC 3339). An excludeFlightId parameter ignores that flight's own slot.
func AircraftAvailabilityHandler(service ports.FlightService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		aircraftID, err := pathID(r, "aircraftId")
		if err != nil {
			renderBadRequest(w, r, "invalid aircraft id")
			return
		}

		departure, err := time.Parse(time.RFC3339, r.URL.Query().Get("departureTime"))
		if err != nil {
			renderBadRequest(w, r, "invalid departureTime")
			return
		}
		arrival, err := time.Parse(time.RFC3339, r.URL.Query().Get("arrivalTime"))
		if err != nil {
			renderBadRequest(w, r, "invalid arrivalTime")
			return
		}
		if !arrival.After(departure) {
			renderBadRequest(w, r, "arrivalTime must be after departureTime")
			return
		}

		available, err := service.IsAircraftAvailable(r.Context(), aircraftID,
			departure, arrival, r.URL.Query().Get("excludeFlightId"))
		if err != nil {
			renderError(w, r, err)
			return
		}
		utils.RenderResponse(r, w, http.StatusOK, models.AvailabilityResponse{IsAvailable: available})
	}
}

func GenerateSeatsHandler(service ports.FlightService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		created, err := service.GenerateSeats(r.Context(), r.PathValue("flightId"))
		if err != nil {
			renderError(w, r, err)
			return
		}
		utils.RenderResponse(r, w, http.StatusCreated, map[string]int{"seatsCreated": created})
	}
}

func flightSearchRequest(r *http.Request) (*models.FlightSearchRequest, error) {
	if r.Method != http.MethodPost {
		return flightSearchFromQuery(r)
	}

	req := models.FlightSearchRequest{Passengers: 1}
	if err := utils.JsonDecodeBody(r, &req); err != nil {
		return nil, err
	}
	return &req, nil
}

func flightSearchFromQuery(r *http.Request) (*models.FlightSearchRequest, error) {
	q := r.URL.Query()
	req := models.FlightSearchRequest{
		DepartureLocation: q.Get("departureLocation"),
		ArrivalLocation:   q.Get("arrivalLocation"),
		Passengers:        1,
	}

	if raw := q.Get("departureDate"); raw != "" {
		date, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return nil, err
		}
		req.DepartureDate = &date
	}
	if raw := q.Get("maxPrice"); raw != "" {
		price, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, err
		}
		req.MaxPrice = &price
	}
	if raw := q.Get("passengers"); raw != "" {
		passengers, err := strconv.Atoi(raw)
		if err != nil {
			return nil, err
		}
		req.Passengers = passengers
	}
	return &req, nil
}
