// Package validator adapts go-playground/validator to echo's Validator
// interface so handlers can call c.Validate on bound requests.
package validator

import (
	playground "github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

type requestValidator struct {
	validate *playground.Validate
}

// New creates an echo.Validator backed by go-playground struct tags.
func New() echo.Validator {
	return &requestValidator{validate: playground.New()}
}

// Validate checks the struct against its `validate` tags.
func (v *requestValidator) Validate(i any) error {
	return errors.WithStack(v.validate.Struct(i))
}
