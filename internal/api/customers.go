package api

import (
	"net/http"

	models "github.com/btair/btair/internal"
	"github.com/btair/btair/internal/ports"
	"github.com/btair/btair/internal/utils"
	"github.com/btair/btair/internal/validator"
)

func ListCustomersHandler(service ports.CustomerService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		customers, err := service.ListCustomers(r.Context())
		if err != nil {
			renderError(w, r, err)
			return
		}
		utils.RenderResponse(r, w, http.StatusOK, customers)
	}
}

func GetCustomerHandler(service ports.CustomerService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "customerId")
		if err != nil {
			renderBadRequest(w, r, "invalid customer id")
			return
		}

		customer, err := service.GetCustomer(r.Context(), id)
		if err != nil {
			renderError(w, r, err)
			return
		}
		utils.RenderResponse(r, w, http.StatusOK, customer)
	}
}

func CreateCustomerHandler(service ports.CustomerService) http.HandlerFunc {
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

		customer, err := service.CreateCustomer(r.Context(), &req)
		if err != nil {
			renderError(w, r, err)
			return
		}
		utils.RenderResponse(r, w, http.StatusCreated, customer)
	}
}

func UpdateCustomerHandler(service ports.CustomerService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "customerId")
		if err != nil {
			renderBadRequest(w, r, "invalid customer id")
			return
		}

		var req models.UpdateCustomerRequest
		if err := utils.JsonDecodeBody(r, &req); err != nil {
			renderBadRequest(w, r, "error json decoding body")
			return
		}

		v := validator.NewCustomValidator()
		if err := v.Validate(req); err != nil {
			renderBadRequest(w, r, err.Error())
			return
		}

		customer, err := service.UpdateCustomer(r.Context(), id, &req)
		if err != nil {
			renderError(w, r, err)
			return
		}
		utils.RenderResponse(r, w, http.StatusOK, customer)
	}
}

func DeleteCustomerHandler(service ports.CustomerService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "customerId")
		if err != nil {
			renderBadRequest(w, r, "invalid customer id")
			return
		}

		if err = service.DeleteCustomer(r.Context(), id); err != nil {
			renderError(w, r, err)
			return
		}
		utils.RenderResponse(r, w, http.StatusNoContent, nil)
	}
}

func CustomerSummaryHandler(service ports.CustomerService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "customerId")
		if err != nil {
			renderBadRequest(w, r, "invalid customer id")
			return
		}

		summary, err := service.CustomerSummary(r.Context(), id)
		if err != nil {
			renderError(w, r, err)
			return
		}
		utils.RenderResponse(r, w, http.StatusOK, summary)
	}
}
