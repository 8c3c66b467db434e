package services

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"tattoo-studio-api/internal/models"
)

// newValidator returns a validator that reports fields by their JSON names
// and knows the booking and order status enums
func newValidator() *validator.Validate {
	v := validator.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// Registration only fails for empty tags or nil funcs.
	_ = v.RegisterValidation("booking_status", func(fl validator.FieldLevel) bool {
		return models.BookingStatus(fl.Field().String()).IsValid()
	})
	_ = v.RegisterValidation("order_status", func(fl validator.FieldLevel) bool {
		return models.OrderStatus(fl.Field().String()).IsValid()
	})

	return v
}

// validateRequest validates req and turns the first failure into a
// ValidationError. Missing required fields produce requiredMessage.
func validateRequest(v *validator.Validate, op string, req interface{}, requiredMessage string) error {
	err := v.Struct(req)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return fmt.Errorf("%s: validation failed: %w", op, err)
	}

	for _, fe := range fieldErrs {
		if fe.Tag() == "required" {
			return NewValidationError(op, requiredMessage)
		}
	}

	return NewValidationError(op, invalidFieldMessage(fieldErrs[0].Field()))
}

func invalidFieldMessage(field string) string {
	return fmt.Sprintf("Некорректное значение поля %s", field)
}
