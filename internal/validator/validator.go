package validator

import (
	"regexp"
	"time"

	"github.com/go-playground/validator/v10"
)

var (
	flightIDPattern = regexp.MustCompile(`^BT\d{4}$`)
	passportPattern = regexp.MustCompile(`^[A-Za-z0-9]{5,20}$`)
)

type CustomValidator struct {
	validator *validator.Validate
}

func NewCustomValidator() *CustomValidator {
	v := validator.New()
	v.RegisterValidation("flight_id", validateFlightID)
	v.RegisterValidation("passport", validatePassport)
	v.RegisterValidation("past_date", validatePastDate)
	v.RegisterValidation("future_date", validateFutureDate)

	return &CustomValidator{validator: v}
}

func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

func validateFlightID(fl validator.FieldLevel) bool {
	return flightIDPattern.MatchString(fl.Field().String())
}

func validatePassport(fl validator.FieldLevel) bool {
	return passportPattern.MatchString(fl.Field().String())
}

func validatePastDate(fl validator.FieldLevel) bool {
	date, ok := fl.Field().Interface().(time.Time)
	if !ok {
		return false
	}
	return date.Before(time.Now())
}

func validateFutureDate(fl validator.FieldLevel) bool {
	date, ok := fl.Field().Interface().(time.Time)
	if !ok {
		return false
	}
	return date.After(time.Now())
}
