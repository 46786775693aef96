package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"unicode"

	"trainlog/workout-app/internal/domain"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Validator checks request structs against their `validate` tags and turns
// every violated rule into a "field: message" pair. All violations are
// reported, not just the first.
type Validator struct {
	validate *validator.Validate
}

// New builds a Validator with the custom rules the request shapes use.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their json name so error paths match the wire format.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// Registration errors only occur for blank tags or nil funcs.
	_ = v.RegisterValidation("objectid", isObjectID)
	_ = v.RegisterValidation("contains_upper", containsUpper)
	_ = v.RegisterValidation("contains_digit", containsDigit)
	_ = v.RegisterValidation("contains_special", containsSpecial)

	return &Validator{validate: v}
}

// Struct validates s and returns a domain validation error carrying every
// violated rule joined as "field: message, field: message", or nil.
func (v *Validator) Struct(s interface{}) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		// InvalidValidationError: the caller passed a non-struct.
		return domain.NewValidationError("invalid request")
	}

	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, fmt.Sprintf("%s: %s", fieldPath(fe), message(fe)))
	}
	return domain.NewValidationError(strings.Join(parts, ", "))
}

// fieldPath strips the root struct name from the namespace, leaving the json
// path into the request body, e.g. "exercises[0].sets".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("must contain at least %s entries", fe.Param())
		}
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of %s", fe.Param())
	case "objectid":
		return "must be a valid id"
	case "contains_upper":
		return "must contain an uppercase letter"
	case "contains_digit":
		return "must contain a number"
	case "contains_special":
		return "must contain a special character"
	default:
		return fmt.Sprintf("failed on rule %q", fe.Tag())
	}
}

// NormalizeEmail applies the canonical email form: trimmed, lowercased.
// Must be called before validation and before any repository lookup so the
// unique index sees one spelling per address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func isObjectID(fl validator.FieldLevel) bool {
	_, err := primitive.ObjectIDFromHex(fl.Field().String())
	return err == nil
}

func containsUpper(fl validator.FieldLevel) bool {
	for _, r := range fl.Field().String() {
		if unicode.IsUpper(r) {
			return true
		}
	}
	return false
}

func containsDigit(fl validator.FieldLevel) bool {
	for _, r := range fl.Field().String() {
		if unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

func containsSpecial(fl validator.FieldLevel) bool {
	for _, r := range fl.Field().String() {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return true
		}
	}
	return false
}
