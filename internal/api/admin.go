package api

import (
	"net/http"

	models "github.com/btair/btair/internal"
	"github.com/btair/btair/internal/ports"
	"github.com/btair/btair/internal/utils"
	"github.com/btair/btair/internal/validator"
)

func ListAircraftHandler(service ports.AdminService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		fleet, err := service.ListAircraft(r.Context())
		if err != nil {
			renderError(w, r, err)
			return
		}
		utils.RenderResponse(r, w, http.StatusOK, fleet)
	}
}

func GetAircraftHandler(service ports.AdminService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "aircraftId")
		if err != nil {
			renderBadRequest(w, r, "invalid aircraft id")
			return
		}

		aircraft, err := service.GetAircraft(r.Context(), id)
		if err != nil {
			renderError(w, r, err)
			return
		}
		utils.RenderResponse(r, w, http.StatusOK, aircraft)
	}
}

func CreateAircraftHandler(service ports.AdminService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.CreateAircraftRequest
		if err := utils.JsonDecodeBody(r, &req); err != nil {
			renderBadRequest(w, r, "error json decoding body")
			return
		}

		v := validator.NewCustomValidator()
		if err := v.Validate(req); err != nil {
			renderBadRequest(w, r, err.Error())
			return
		}

		aircraft, err := service.CreateAircraft(r.Context(), &req)
		if err != nil {
			renderError(w, r, err)
			return
		}
		utils.RenderResponse(r, w, http.StatusCreated, aircraft)
	}
}

func UpdateAircraftHandler(service ports.AdminService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "aircraftId")
		if err != nil {
			renderBadRequest(w, r, "invalid aircraft id")
			return
		}

		var req models.UpdateAircraftRequest
		if err := utils.JsonDecodeBody(r, &req); err != nil {
			renderBadRequest(w, r, "error json decoding body")
			return
		}

		v := validator.NewCustomValidator()
		if err := v.Validate(req); err != nil {
			renderBadRequest(w, r, err.Error())
			return
		}

		aircraft, err := service.UpdateAircraft(r.Context(), id, &req)
		if err != nil {
			renderError(w, r, err)
			return
		}
		utils.RenderResponse(r, w, http.StatusOK, aircraft)
	}
}

func DeleteAircraftHandler(service ports.AdminService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "aircraftId")
		if err != nil {
			renderBadRequest(w, r, "invalid aircraft id")
			return
		}

		if err = service.DeleteAircraft(r.Context(), id); err != nil {
			renderError(w, r, err)
			return
		}
		utils.RenderResponse(r, w, http.StatusNoContent, nil)
	}
}

func StatisticsHandler(service ports.AdminService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := service.Statistics(r.Context())
		if err != nil {
			renderError(w, r, err)
			return
		}
		utils.RenderResponse(r, w, http.StatusOK, stats)
	}
}

func ListUsersHandler(service ports.AdminService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		users, err := service.ListUsers(r.Context())
		if err != nil {
			renderError(w, r, err)
			return
		}
		utils.RenderResponse(r, w, http.StatusOK, users)
	}
}

func UpdateUserRoleHandler(service ports.AdminService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := pathID(r, "userId")
		if err != nil {
			renderBadRequest(w, r, "invalid user id")
			return
		}

		var req models.UpdateUserRoleRequest
		if err := utils.JsonDecodeBody(r, &req); err != nil {
			renderBadRequest(w, r, "error json decoding body")
			return
		}

		v := validator.NewCustomValidator()
		if err := v.Validate(req); err != nil {
			renderBadRequest(w, r, err.Error())
			return
		}

		if err = service.UpdateUserRole(r.Context(), userID, req.Role); err != nil {
			renderError(w, r, err)
			return
		}
		utils.RenderResponse(r, w, http.StatusNoContent, nil)
	}
}

func DeleteUserHandler(service ports.AdminService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := pathID(r, "userId")
		if err != nil {
			renderBadRequest(w, r, "invalid user id")
			return
		}

		if err = service.DeleteUser(r.Context(), userID); err != nil {
			renderError(w, r, err)
			return
		}
		utils.RenderResponse(r, w, http.StatusNoContent, nil)
	}
}

func RecentActivitiesHandler(service ports.AdminService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		activities, err := service.RecentActivities(r.Context())
		if err != nil {
			renderError(w, r, err)
			return
		}
		utils.RenderResponse(r, w, http.StatusOK, activities)
	}
}
