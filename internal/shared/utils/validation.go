package utils

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/orris-inc/fitment/internal/shared/errors"
	"github.com/orris-inc/fitment/internal/shared/query"
)

var validate *validator.Validate

// init initializes the validator
func init() {
	validate = validator.New()

	// Use JSON tag names for validation errors
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = validate.RegisterValidation("optid", validateOptionalID)
	_ = validate.RegisterValidation("optyear", validateOptionalYear)
}

// Validator returns the shared validator so the HTTP binding layer can use the same custom rules.
func Validator() *validator.Validate {
	return validate
}

// validateOptionalID accepts an unset marker ("", "None", "null") or a positive integer id.
func validateOptionalID(fl validator.FieldLevel) bool {
	raw := fl.Field().String()
	if query.IsUnset(raw) {
		return true
	}
	return query.ParseID(raw).IsSet()
}

// validateOptionalYear accepts an unset marker or a positive whole year ("2020" or "2020.0").
func validateOptionalYear(fl validator.FieldLevel) bool {
	raw := fl.Field().String()
	if query.IsUnset(raw) {
		return true
	}
	return query.ParseYearString(raw).IsSet()
}

// ValidateStruct validates a struct and returns a user-friendly error
func ValidateStruct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok || len(validationErrors) == 0 {
		return errors.NewValidationError("Validation failed", err.Error())
	}

	return ValidationErrorFrom(validationErrors)
}

// ValidationErrorFrom converts validator field errors into a single validation AppError.
func ValidationErrorFrom(validationErrors validator.ValidationErrors) error {
	errorMessages := make([]string, 0, len(validationErrors))
	for _, fieldError := range validationErrors {
		errorMessages = append(errorMessages, getFieldErrorMessage(fieldError))
	}

	return errors.NewValidationError(
		"Validation failed",
		strings.Join(errorMessages, "; "),
	)
}

// getFieldErrorMessage returns a user-friendly error message for a field validation error
func getFieldErrorMessage(fe validator.FieldError) string {
	field := fe.Field()
	tag := fe.Tag()
	param := fe.Param()

	switch tag {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "optid":
		return fmt.Sprintf("%s must be a positive id or empty", field)
	case "optyear":
		return fmt.Sprintf("%s must be a positive year or empty", field)
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters long", field, param)
		}
		return fmt.Sprintf("%s must be at least %s", field, param)
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at most %s characters long", field, param)
		}
		return fmt.Sprintf("%s must be at most %s", field, param)
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", field, param)
	case "lte":
		return fmt.Sprintf("%s must be less than or equal to %s", field, param)
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", field, param)
	default:
		return fmt.Sprintf("%s failed validation for '%s'", field, tag)
	}
}
