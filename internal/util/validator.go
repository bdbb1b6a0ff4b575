package util

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

type ApiError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func msgForTag(fe validator.FieldError) string {
	field := fe.Field()

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "strNotEmpty":
		return fmt.Sprintf("%s must not be empty", field)
	case "cmin":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "cmax":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	}
	return fe.Error()
}

// GenerateErrorMessages lists one message per failed field, e.g.
//
//	[{"field": "name", "message": "name must not be empty"}]
//
// Anything that is not a validation error becomes a single entry without a field.
func GenerateErrorMessages(err error) []ApiError {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return []ApiError{{Message: err.Error()}}
	}

	out := make([]ApiError, len(ve))
	for i, fe := range ve {
		out[i] = ApiError{Field: fe.Field(), Message: msgForTag(fe)}
	}
	return out
}

// jsonFieldName reports fields by their json name so messages match the request body.
func jsonFieldName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	if name == "" || name == "-" {
		return f.Name
	}
	return name
}

// check if string is empty, after trimming spaces
// Usage: `binding:"strNotEmpty"`
func StrNotEmpty(fl validator.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() != reflect.String {
		return false
	}
	return strings.TrimSpace(field.String()) != ""
}

func trimmedLen(fl validator.FieldLevel) (int, int, bool) {
	field := fl.Field()
	if field.Kind() != reflect.String {
		return 0, 0, false
	}
	limit, err := strconv.Atoi(fl.Param())
	if err != nil {
		return 0, 0, false
	}
	return len(strings.TrimSpace(field.String())), limit, true
}

// Usage: `binding:"cmin=3"`, length counted after trimming spaces
func CustomMin(fl validator.FieldLevel) bool {
	n, limit, ok := trimmedLen(fl)
	return ok && n >= limit
}

// Usage: `binding:"cmax=3"`, length counted after trimming spaces
func CustomMax(fl validator.FieldLevel) bool {
	n, limit, ok := trimmedLen(fl)
	return ok && n <= limit
}

// RegisterCustomValidations registers strNotEmpty, cmin and cmax on v and names
// fields by their json tag.
func RegisterCustomValidations(v *validator.Validate) error {
	v.RegisterTagNameFunc(jsonFieldName)

	if err := v.RegisterValidation("strNotEmpty", StrNotEmpty); err != nil {
		return err
	}
	if err := v.RegisterValidation("cmin", CustomMin); err != nil {
		return err
	}
	return v.RegisterValidation("cmax", CustomMax)
}
