package validation

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/yukikurage/lift-project-api/internal/constants"
)

// PasswordFlag names a password rule the candidate does not meet.
type PasswordFlag string

const (
	PasswordTooShort  PasswordFlag = "len"
	PasswordNoMixCase PasswordFlag = "case"
	PasswordNoDigit   PasswordFlag = "digit"
	PasswordNoSpecial PasswordFlag = "special"
)

// Message returns the user-facing text of the rule.
func (f PasswordFlag) Message() string {
	switch f {
	case PasswordTooShort:
		return constants.MsgPasswordLength
	case PasswordNoMixCase:
		return constants.MsgPasswordCase
	case PasswordNoDigit:
		return constants.MsgPasswordDigit
	case PasswordNoSpecial:
		return constants.MsgPasswordSpecial
	}
	return constants.MsgInvalidField
}

// CheckPassword returns every unmet rule, in a stable order. An empty result
// means the password is acceptable.
func CheckPassword(pw string) []PasswordFlag {
	var flags []PasswordFlag
	if utf8.RuneCountInString(pw) < constants.MinPasswordLength {
		flags = append(flags, PasswordTooShort)
	}

	var upper, lower, digit, special bool
	for _, r := range pw {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		}
		if strings.ContainsRune(constants.PasswordSpecials, r) {
			special = true
		}
	}
	if !upper || !lower {
		flags = append(flags, PasswordNoMixCase)
	}
	if !digit {
		flags = append(flags, PasswordNoDigit)
	}
	if !special {
		flags = append(flags, PasswordNoSpecial)
	}
	return flags
}

// PasswordMessage joins the messages of flags into one sentence list.
func PasswordMessage(flags []PasswordFlag) string {
	msgs := make([]string, len(flags))
	for i, f := range flags {
		msgs[i] = f.Message()
	}
	return strings.Join(msgs, ". ")
}
