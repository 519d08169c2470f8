// Package validate configures go-playground/validator with the tags shared by
// request binding and place submission checks.
package validate

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/placequest/explorer-api/internal/core/domain"
)

var imageDataPrefix = regexp.MustCompile(`^data:image/(png|jpeg|jpg|gif);base64,`)

var std = New()

// New returns a validator with the custom category and imagedata tags.
// Field names in errors follow the json tag of the field.
func New() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonName)
	mustRegister(v, "category", isCategory)
	mustRegister(v, "imagedata", isImageData)
	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("validate: register %q: %v", tag, err))
	}
}

// Struct validates s with the shared validator and converts failures with
// Describe.
func Struct(s any) error {
	return Describe(std.Struct(s))
}

// Describe turns validator errors into a *domain.ValidationError. Other
// errors are returned unchanged.
func Describe(err error) error {
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err
	}
	if len(ve) == 1 {
		return &domain.ValidationError{Field: fieldName(ve[0]), Message: fieldError(ve[0])}
	}
	msgs := make([]string, 0, len(ve))
	for _, fe := range ve {
		msgs = append(msgs, fieldName(fe)+": "+fieldError(fe))
	}
	return &domain.ValidationError{Message: strings.Join(msgs, "; ")}
}

// IsImageData reports whether s starts with an accepted base64 image prefix.
func IsImageData(s string) bool {
	return imageDataPrefix.MatchString(s)
}

func isCategory(fl validator.FieldLevel) bool {
	return domain.Category(fl.Field().String()).IsValid()
}

func isImageData(fl validator.FieldLevel) bool {
	return IsImageData(fl.Field().String())
}

func jsonName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	switch name {
	case "-":
		return ""
	case "":
		return f.Name
	}
	return name
}

func fieldName(fe validator.FieldError) string {
	ns := fe.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return fe.Field()
}

func fieldError(fe validator.FieldError) string {
	collection := fe.Kind() == reflect.Slice || fe.Kind() == reflect.Map
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email"
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "min":
		if collection {
			return fmt.Sprintf("must contain at least %s items", fe.Param())
		}
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		if collection {
			return fmt.Sprintf("must contain at most %s items", fe.Param())
		}
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at most %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	case "latitude", "longitude":
		return "must be a valid " + fe.Tag()
	case "category":
		return "must be a known category"
	case "imagedata":
		return "must be a base64 png, jpeg or gif data URI"
	default:
		return fmt.Sprintf("failed validation (%s)", fe.Tag())
	}
}
