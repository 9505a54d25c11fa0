package document

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// FieldError is one rejected form field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError lists every rejected field of a form.
type ValidationError struct {
	Kind   Kind         `json:"kind"`
	Fields []FieldError `json:"fields"`
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.Field + ": " + f.Message
	}
	return fmt.Sprintf("invalid %s form: %s", e.Kind, strings.Join(parts, "; "))
}

// Messages maps a field name to its error text.
func (e *ValidationError) Messages() map[string]string {
	out := make(map[string]string, len(e.Fields))
	for _, f := range e.Fields {
		out[f.Field] = f.Message
	}
	return out
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		// Report form field names as they appear in the form.
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return validate
}

// Polish messages per "field.tag" or per tag.
var defaultMessages = map[string]string{
	"required": "Pole wymagane",
	"oneof":    "Nieprawidłowa wartość",
	"number":   "Podaj liczbę",
	"datetime": "Nieprawidłowa data (RRRR-MM-DD)",
}

func messageFor(fe validator.FieldError, overrides map[string]string) string {
	keys := []string{fe.Field() + "." + fe.Tag(), fe.Tag()}
	for _, k := range keys {
		if msg, ok := overrides[k]; ok {
			return msg
		}
		if msg, ok := defaultMessages[k]; ok {
			return msg
		}
	}
	if fe.Tag() == "max" {
		return fmt.Sprintf("Maksymalnie %s znaków", fe.Param())
	}
	return "Nieprawidłowa wartość"
}

// validateForm runs struct tag validation and converts failures into a
// *ValidationError. overrides replaces default messages per "field.tag".
func validateForm(kind Kind, form any, overrides map[string]string) error {
	err := validatorInstance().Struct(form)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validating %s form: %w", kind, err)
	}
	out := &ValidationError{Kind: kind}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, FieldError{
			Field:   fe.Field(),
			Message: messageFor(fe, overrides),
		})
	}
	return out
}
