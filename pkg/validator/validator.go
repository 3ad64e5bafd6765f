package validator

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

type ErrorResponse struct {
	FailedField string
	Tag         string
	Value       string
}

var validate = validator.New()

func init() {
	// Rejects strings made only of whitespace
	validate.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
}

func ValidateStruct(data interface{}) []*ErrorResponse {
	var errors []*ErrorResponse
	err := validate.Struct(data)
	if err != nil {
		validationErrs, ok := err.(validator.ValidationErrors)
		if !ok {
			return []*ErrorResponse{{FailedField: "", Tag: "invalid", Value: err.Error()}}
		}
		for _, err := range validationErrs {
			var element ErrorResponse
			element.FailedField = err.Field()
			element.Tag = err.Tag()
			element.Value = err.Param()
			errors = append(errors, &element)
		}
	}
	return errors
}

// Describe renders the first failure as a short human-readable message.
func Describe(errs []*ErrorResponse) string {
	if len(errs) == 0 {
		return ""
	}
	e := errs[0]
	switch e.Tag {
	case "required", "notblank":
		return fmt.Sprintf("%s is required", e.FailedField)
	case "gte":
		return fmt.Sprintf("%s must be at least %s", e.FailedField, e.Value)
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", e.FailedField, e.Value)
	default:
		return fmt.Sprintf("%s failed on '%s'", e.FailedField, e.Tag)
	}
}
