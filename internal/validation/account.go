package validation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/yukikurage/lift-project-api/internal/constants"
)

// AccountField is a field of the registration or login form.
type AccountField int

const (
	AccountEmail AccountField = iota
	AccountName
	AccountPassword
	AccountLoginEmail
	AccountLoginPassword

	accountFieldCount
)

var accountKeys = [accountFieldCount]string{
	AccountEmail:         "email",
	AccountName:          "username",
	AccountPassword:      "password",
	AccountLoginEmail:    "loginEmail",
	AccountLoginPassword: "loginPassword",
}

// AccountFieldByKey maps a request key to its account field.
func AccountFieldByKey(key string) (AccountField, bool) {
	for f, k := range accountKeys {
		if k == key {
			return AccountField(f), true
		}
	}
	return 0, false
}

// Key is the request and error-map key of the field.
func (f AccountField) Key() string {
	if f < 0 || f >= accountFieldCount {
		return fmt.Sprintf("account_field(%d)", int(f))
	}
	return accountKeys[f]
}

// EmailLookup reports whether an account already uses a normalized address.
type EmailLookup interface {
	EmailExists(ctx context.Context, email string) (bool, error)
}

// Result is the outcome of a live single-field check. Flags is set for the
// registration password only.
type Result struct {
	Message string
	Flags   []PasswordFlag
}

// OK reports whether the value passed.
func (r Result) OK() bool { return r.Message == "" && len(r.Flags) == 0 }

// AccountValidator checks registration and login input.
type AccountValidator struct {
	emails EmailValidator
	lookup EmailLookup
}

// NewAccountValidator creates an AccountValidator.
func NewAccountValidator(emails EmailValidator, lookup EmailLookup) *AccountValidator {
	return &AccountValidator{emails: emails, lookup: lookup}
}

// Normalize returns the stored form of an email address.
func (v *AccountValidator) Normalize(raw string) (string, error) {
	return v.emails.Normalize(raw)
}

// ValidateField checks one account field the way the live form does.
func (v *AccountValidator) ValidateField(ctx context.Context, f AccountField, value string) (Result, error) {
	empty := value == ""
	if f != AccountPassword && f != AccountLoginPassword {
		// Passwords are taken verbatim
		empty = strings.TrimSpace(value) == ""
	}
	if empty {
		return Result{Message: constants.MsgRequired}, nil
	}

	switch f {
	case AccountLoginEmail:
		if _, err := v.emails.Normalize(value); err != nil {
			return Result{Message: constants.MsgInvalidEmail}, nil
		}
	case AccountEmail:
		msg, err := v.checkNewEmail(ctx, value)
		if err != nil {
			return Result{}, err
		}
		return Result{Message: msg}, nil
	case AccountName:
		if utf8.RuneCountInString(strings.TrimSpace(value)) < constants.MinNameLength {
			return Result{Message: constants.MsgNameTooShort}, nil
		}
	case AccountPassword:
		return Result{Flags: CheckPassword(value)}, nil
	case AccountLoginPassword:
	default:
		return Result{Message: constants.MsgInvalidField}, nil
	}
	return Result{}, nil
}

// Registration is the submitted sign-up form.
type Registration struct {
	Email    string
	Name     string
	Password string
}

// ValidateRegistration checks every sign-up field independently and returns
// the normalized email when it is valid.
func (v *AccountValidator) ValidateRegistration(ctx context.Context, r Registration) (string, Errors, error) {
	errs := Errors{}

	var normalized string
	if strings.TrimSpace(r.Email) == "" {
		errs[AccountEmail.Key()] = constants.MsgRequired
	} else {
		msg, err := v.checkNewEmail(ctx, r.Email)
		if err != nil {
			return "", nil, err
		}
		if msg != "" {
			errs[AccountEmail.Key()] = msg
		} else {
			normalized, _ = v.emails.Normalize(r.Email)
		}
	}

	name := strings.TrimSpace(r.Name)
	switch {
	case name == "":
		errs[AccountName.Key()] = constants.MsgRequired
	case utf8.RuneCountInString(name) < constants.MinNameLength:
		errs[AccountName.Key()] = constants.MsgNameTooShort
	}

	if r.Password == "" {
		errs[AccountPassword.Key()] = constants.MsgRequired
	} else if flags := CheckPassword(r.Password); len(flags) > 0 {
		errs[AccountPassword.Key()] = PasswordMessage(flags)
	}

	return normalized, errs, nil
}

// ValidateLogin checks the login form shape and returns the normalized email.
// Credentials themselves are checked by the caller.
func (v *AccountValidator) ValidateLogin(email, password string) (string, Errors) {
	errs := Errors{}
	var normalized string
	if strings.TrimSpace(email) == "" {
		errs[AccountLoginEmail.Key()] = constants.MsgRequired
	} else if n, err := v.emails.Normalize(email); err != nil {
		errs[AccountLoginEmail.Key()] = constants.MsgInvalidEmail
	} else {
		normalized = n
	}
	if password == "" {
		errs[AccountLoginPassword.Key()] = constants.MsgRequired
	}
	return normalized, errs
}

func (v *AccountValidator) checkNewEmail(ctx context.Context, raw string) (string, error) {
	normalized, err := v.emails.Normalize(raw)
	if errors.Is(err, ErrInvalidEmail) {
		return constants.MsgInvalidEmail, nil
	}
	if err != nil {
		return "", err
	}
	exists, err := v.lookup.EmailExists(ctx, normalized)
	if err != nil {
		return "", fmt.Errorf("check email availability: %w", err)
	}
	if exists {
		return constants.MsgEmailTaken, nil
	}
	return "", nil
}
