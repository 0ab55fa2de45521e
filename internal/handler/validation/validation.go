// Package validation registers the booking-specific binding tags on gin's validator engine.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"coach-booking/internal/domain/calendar"
	"coach-booking/internal/domain/timeslot"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

const (
	TagTimeSlot    = "timeslot"
	TagBookingDate = "bookingdate"
)

var ErrEngineUnavailable = errors.New("gin binding engine is not go-playground/validator")

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// RegisterWithGin installs the custom tags on the engine used by ShouldBind*.
func RegisterWithGin() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return ErrEngineUnavailable
	}
	return Register(v)
}

func Register(v *validator.Validate) error {
	v.RegisterTagNameFunc(jsonFieldName)

	if err := v.RegisterValidation(TagTimeSlot, validateTimeSlot); err != nil {
		return fmt.Errorf("register %q validator: %w", TagTimeSlot, err)
	}
	if err := v.RegisterValidation(TagBookingDate, validateBookingDate); err != nil {
		return fmt.Errorf("register %q validator: %w", TagBookingDate, err)
	}
	return nil
}

func validateTimeSlot(fl validator.FieldLevel) bool {
	s, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	_, err := timeslot.Parse(s)
	return err == nil
}

func validateBookingDate(fl validator.FieldLevel) bool {
	s, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	_, err := calendar.ParseDate(s)
	return err == nil
}

func jsonFieldName(f reflect.StructField) string {
	for _, tag := range []string{"json", "form"} {
		name, _, _ := strings.Cut(f.Tag.Get(tag), ",")
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return f.Name
}

// Details turns binding failures into per-field messages for the error body.
// Errors that are not validation failures (malformed JSON, wrong types) yield nil.
func Details(err error) []FieldError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}

	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{Field: fe.Field(), Message: message(fe)})
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "min":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param())
	case "uuid":
		return fmt.Sprintf("%s must be a UUID", fe.Field())
	case TagTimeSlot:
		return fmt.Sprintf("%s must be a time of day in HH:MM format", fe.Field())
	case TagBookingDate:
		return fmt.Sprintf("%s must be a date in YYYY-MM-DD format", fe.Field())
	default:
		return fe.Error()
	}
}
