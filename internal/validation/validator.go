package validation

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/yukikurage/lift-project-api/internal/catalog"
	"github.com/yukikurage/lift-project-api/internal/constants"
)

// CatalogCounter counts the distinct catalog rows whose code is in codes.
type CatalogCounter interface {
	Count(ctx context.Context, kind catalog.Kind, codes []string) (int64, error)
}

// OrderNumberChecker reports order-number collisions among a user's projects.
type OrderNumberChecker interface {
	OrderNumberTaken(ctx context.Context, userID uint64, orderNumber string, excludeID uint64) (bool, error)
}

// Scope identifies who is validating. ExcludeProjectID is the project being
// edited, or zero when creating.
type Scope struct {
	UserID           uint64
	ExcludeProjectID uint64
}

// Errors maps request keys to user-facing messages.
type Errors map[string]string

// ValidationError carries the accumulated field errors of a rejected form.
type ValidationError struct {
	Fields Errors
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return fmt.Sprintf("validation failed: %s", strings.Join(keys, ", "))
}

// Validator checks project form fields against their rules.
type Validator struct {
	catalogs CatalogCounter
	orders   OrderNumberChecker
}

// New creates a Validator.
func New(catalogs CatalogCounter, orders OrderNumberChecker) *Validator {
	return &Validator{catalogs: catalogs, orders: orders}
}

// ValidateField checks one field. It returns the empty string when the value
// is acceptable and a message otherwise. Store faults are returned as errors.
func (v *Validator) ValidateField(ctx context.Context, f Field, val Value, scope Scope) (string, error) {
	if !f.valid() {
		return constants.MsgInvalidField, nil
	}

	text := strings.TrimSpace(val.Text)
	codes := trimCodes(val.List)

	if isEmpty(f, text, codes) {
		if f.Required() {
			return constants.MsgRequired, nil
		}
		return "", nil
	}

	switch f.Rule() {
	case RulePostalCode:
		if !isPostalCode(text) {
			return constants.MsgPostalCode, nil
		}
	case RuleOrderNumber:
		taken, err := v.orders.OrderNumberTaken(ctx, scope.UserID, text, scope.ExcludeProjectID)
		if err != nil {
			return "", fmt.Errorf("check order number: %w", err)
		}
		if taken {
			return constants.MsgOrderNumberTaken, nil
		}
	case RuleCatalogMulti:
		ok, err := v.allKnown(ctx, specs[f].kind, codes)
		if err != nil {
			return "", err
		}
		if !ok {
			return catalogMessage(specs[f].kind), nil
		}
	case RuleCatalogSingle:
		ok, err := v.allKnown(ctx, specs[f].kind, []string{text})
		if err != nil {
			return "", err
		}
		if !ok {
			return catalogMessage(specs[f].kind), nil
		}
	}
	return "", nil
}

// ValidateProject checks every field independently. A nil error with a
// non-empty map means the form is rejected.
func (v *Validator) ValidateProject(ctx context.Context, vals *Values, scope Scope) (Errors, error) {
	errs := Errors{}
	for _, f := range Fields() {
		msg, err := v.ValidateField(ctx, f, vals.Get(f), scope)
		if err != nil {
			return nil, err
		}
		if msg != "" {
			errs[f.Key()] = msg
		}
	}
	return errs, nil
}

// allKnown reports whether every code matches exactly one catalog row.
// Repeated codes make the counts differ and are rejected.
func (v *Validator) allKnown(ctx context.Context, kind catalog.Kind, codes []string) (bool, error) {
	n, err := v.catalogs.Count(ctx, kind, codes)
	if err != nil {
		return false, fmt.Errorf("count %s codes: %w", kind, err)
	}
	return n == int64(len(codes)), nil
}

func isEmpty(f Field, text string, codes []string) bool {
	if f.Rule() == RuleCatalogMulti {
		return len(codes) == 0
	}
	return text == ""
}

// trimCodes trims every code. Blank codes are kept so they count as
// submitted and fail the catalog comparison.
func trimCodes(list []string) []string {
	out := make([]string, len(list))
	for i, c := range list {
		out[i] = strings.TrimSpace(c)
	}
	return out
}

func isPostalCode(s string) bool {
	if len(s) != constants.PostalCodeLength {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func catalogMessage(kind catalog.Kind) string {
	switch kind {
	case catalog.ModificationTypes:
		return constants.MsgInvalidModification
	case catalog.ApplicableNorms:
		return constants.MsgInvalidNorm
	case catalog.LegalizationProcesses:
		return constants.MsgInvalidProcess
	}
	return constants.MsgInvalidField
}
