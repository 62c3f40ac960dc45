package utils

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	validate = newValidator()
	enums    = map[string][]string{}
)

func newValidator() *validator.Validate {
	v := validator.New()

	// report json names so the error map matches the request body
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	return v
}

// RegisterEnum adds a validation tag accepting exactly the given values.
// Empty strings pass so optional fields can be combined with omitempty.
func RegisterEnum(tag string, values ...string) {
	allowed := make(map[string]struct{}, len(values))
	for _, v := range values {
		allowed[v] = struct{}{}
	}
	enums[tag] = values

	validate.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
		if fl.Field().Kind() != reflect.String {
			return false
		}
		v := fl.Field().String()
		if v == "" {
			return true
		}
		_, ok := allowed[v]
		return ok
	})
}

// InEnum reports whether value is one of the values registered for tag.
func InEnum(tag, value string) bool {
	for _, v := range enums[tag] {
		if v == value {
			return true
		}
	}
	return false
}

func ValidateStruct(data interface{}) map[string]string {
	err := validate.Struct(data)
	if err == nil {
		return nil
	}

	errors := make(map[string]string)
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, err := range validationErrors {
			errors[fieldPath(err)] = getErrorMessage(err)
		}
	}

	return errors
}

// fieldPath returns the json path of the failing field without the root
// struct name, e.g. "snack_orders[1].quantity".
func fieldPath(err validator.FieldError) string {
	ns := err.Namespace()
	if _, rest, found := strings.Cut(ns, "."); found {
		return rest
	}
	return err.Field()
}

// converts validator errors to human-readable messages
func getErrorMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "This field is required"
	case "email":
		return "Invalid email format"
	case "min":
		return fmt.Sprintf("Minimum value or length is %s", err.Param())
	case "max":
		return fmt.Sprintf("Maximum value or length is %s", err.Param())
	case "gt":
		return fmt.Sprintf("Must be greater than %s", err.Param())
	case "gte":
		return fmt.Sprintf("Must be at least %s", err.Param())
	case "len":
		return fmt.Sprintf("Must be exactly %s characters", err.Param())
	case "oneof":
		options := strings.ReplaceAll(err.Param(), " ", ", ")
		return fmt.Sprintf("Must be one of: %s", options)
	case "uuid", "uuid4":
		return "Must be a valid UUID"
	case "url":
		return "Must be a valid URL"
	case "datetime":
		return fmt.Sprintf("Must match the format %s", err.Param())
	case "unique":
		return "Values must be unique"
	case "eqfield":
		return fmt.Sprintf("Must match %s", err.Param())
	default:
		if values, ok := enums[err.Tag()]; ok {
			return fmt.Sprintf("Must be one of: %s", strings.Join(values, ", "))
		}
		return fmt.Sprintf("Invalid %s field", err.Field())
	}
}
