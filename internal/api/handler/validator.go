package handler

import (
	"github.com/go-playground/validator/v10"

	"github.com/placequest/explorer-api/internal/pkg/validate"
)

// echoValidator wraps go-playground/validator so Echo can call c.Validate(req).
type echoValidator struct {
	v *validator.Validate
}

// NewValidator returns an echoValidator ready to be assigned to echo.Echo.Validator.
func NewValidator() *echoValidator {
	return &echoValidator{v: validate.New()}
}

// Validate satisfies the echo.Validator interface. Failures come back as
// *domain.ValidationError.
func (ev *echoValidator) Validate(i any) error {
	return validate.Describe(ev.v.Struct(i))
}
