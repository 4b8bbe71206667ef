package api

import (
	"net/http"

	models "github.com/btair/btair/internal"
	"github.com/btair/btair/internal/ports"
	"github.com/btair/btair/internal/utils"
	"github.com/btair/btair/internal/validator"
)

func RegisterHandler(service ports.AuthService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.RegisterRequest
		if err := utils.JsonDecodeBody(r, &req); err != nil {
			renderBadRequest(w, r, "error json decoding body")
			return
		}

		v := validator.NewCustomValidator()
		if err := v.Validate(req); err != nil {
			renderBadRequest(w, r, err.Error())
			return
		}

		ans, err := service.Register(r.Context(), &req)
		if err != nil {
			renderError(w, r, err)
			return
		}
		utils.RenderResponse(r, w, http.StatusCreated, ans)
	}
}

func LoginHandler(service ports.AuthService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.LoginRequest
		if err := utils.JsonDecodeBody(r, &req); err != nil {
			renderBadRequest(w, r, "error json decoding body")
			return
		}

		v := validator.NewCustomValidator()
		if err := v.Validate(req); err != nil {
			renderBadRequest(w, r, err.Error())
			return
		}

		ans, err := service.Login(r.Context(), &req)
		if err != nil {
			renderError(w, r, err)
			return
		}
		utils.RenderResponse(r, w, http.StatusOK, ans)
	}
}

func GetUserHandler(service ports.AuthService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := pathID(r, "userId")
		if err != nil {
			renderBadRequest(w, r, "invalid user id")
			return
		}

		user, err := service.GetUser(r.Context(), userID)
		if err != nil {
			renderError(w, r, err)
			return
		}
		utils.RenderResponse(r, w, http.StatusOK, user)
	}
}

func ValidateTokenHandler(service ports.AuthService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.TokenValidationRequest
		if err := utils.JsonDecodeBody(r, &req); err != nil {
			renderBadRequest(w, r, "error json decoding body")
			return
		}

		v := validator.NewCustomValidator()
		if err := v.Validate(req); err != nil {
			renderBadRequest(w, r, err.Error())
			return
		}

		valid, err := service.ValidateToken(r.Context(), req.Token)
		if err != nil {
			renderError(w, r, err)
			return
		}
		utils.RenderResponse(r, w, http.StatusOK, map[string]bool{"isValid": valid})
	}
}
