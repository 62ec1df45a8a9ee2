package common

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	validator "github.com/go-playground/validator/v10"
)

var promoCodePattern = regexp.MustCompile(`^[A-Za-z0-9_-]{3,40}$`)

// NewValidator returns a validator using JSON field names and the project's custom tags.
func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("promocode", func(fl validator.FieldLevel) bool {
		return promoCodePattern.MatchString(strings.TrimSpace(fl.Field().String()))
	})
	return v
}

// ValidateStruct runs v against payload and converts failures into a validation AppError.
func ValidateStruct(v *validator.Validate, payload any) error {
	if v == nil {
		return nil
	}
	err := v.Struct(payload)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return Validation("VALIDATION_FAILED", "invalid payload")
	}
	details := make(map[string]string, len(fieldErrs))
	for _, fe := range fieldErrs {
		key := fe.Namespace()
		if idx := strings.Index(key, "."); idx != -1 {
			key = key[idx+1:]
		}
		details[key] = fe.Tag()
	}
	return Validation("VALIDATION_FAILED", "Invalid payload").WithDetails(details)
}
