package validation

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidEmail is returned for addresses that fail syntax checks.
var ErrInvalidEmail = errors.New("invalid email address")

// EmailValidator checks an address and returns the form it is stored under.
type EmailValidator interface {
	Normalize(raw string) (string, error)
}

// TagEmailValidator validates syntax with the validator "email" tag. It never
// checks deliverability.
type TagEmailValidator struct {
	validate *validator.Validate
}

// NewTagEmailValidator creates a TagEmailValidator.
func NewTagEmailValidator() *TagEmailValidator {
	return &TagEmailValidator{validate: validator.New()}
}

// Normalize trims the address and lowercases its domain part. The local part
// is kept as typed.
func (v *TagEmailValidator) Normalize(raw string) (string, error) {
	addr := strings.TrimSpace(raw)
	if err := v.validate.Var(addr, "required,email"); err != nil {
		return "", ErrInvalidEmail
	}
	at := strings.LastIndexByte(addr, '@')
	if at <= 0 {
		return "", ErrInvalidEmail
	}
	return addr[:at] + "@" + strings.ToLower(addr[at+1:]), nil
}
