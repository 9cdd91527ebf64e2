// Package validation decodes, checks and defaults a simulation request before any
// calculator sees it.
package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/smallbiznis/immolens/internal/simulation/domain"
)

const source = "validation"

// Validation failure codes reported in ValidationError details.
const (
	CodeRequired     = "required"
	CodeOutOfRange   = "out_of_range"
	CodeInvalidValue = "invalid_value"
	CodeInvalidType  = "invalid_type"
)

var marginalBrackets = []float64{0, 11, 30, 41, 45}

type Validator struct {
	validate *validator.Validate
}

func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	// oneof does not accept floats, hence the two custom rules.
	_ = v.RegisterValidation("energy_rating", func(fl validator.FieldLevel) bool {
		s := strings.ToUpper(strings.TrimSpace(fl.Field().String()))
		return len(s) == 1 && s[0] >= 'A' && s[0] <= 'G'
	})
	_ = v.RegisterValidation("marginal_bracket", func(fl validator.FieldLevel) bool {
		rate := fl.Field().Float()
		for _, b := range marginalBrackets {
			if rate == b {
				return true
			}
		}
		return false
	})
	return &Validator{validate: v}
}

// Decode parses a JSON request. Type mismatches are reported against the offending
// field.
func (v *Validator) Decode(payload []byte) (domain.RawInput, error) {
	var raw domain.RawInput
	if len(bytes.TrimSpace(payload)) == 0 {
		return raw, domain.NewValidationError("", domain.ErrInvalidPayload, "request body is empty", nil)
	}

	dec := json.NewDecoder(bytes.NewReader(payload))
	if err := dec.Decode(&raw); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return domain.RawInput{}, domain.NewValidationError(typeErr.Field, domain.ErrInvalidField,
				fmt.Sprintf("expected %s, got %s", typeErr.Type.Kind(), typeErr.Value),
				map[string]any{"code": CodeInvalidType})
		}
		return domain.RawInput{}, domain.NewValidationError("", domain.ErrInvalidPayload, "request body is not valid JSON", nil)
	}
	if _, err := dec.Token(); err != io.EOF {
		return domain.RawInput{}, domain.NewValidationError("", domain.ErrInvalidPayload, "request body holds trailing data", nil)
	}
	return raw, nil
}

// Schema runs the declarative type and range rules. The first violation is returned
// and every violation is listed in its details.
func (v *Validator) Schema(raw domain.RawInput) error {
	err := v.validate.Struct(raw)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return domain.NewValidationError("", domain.ErrInvalidPayload, err.Error(), nil)
	}

	violations := make([]map[string]string, 0, len(verrs))
	for _, fe := range verrs {
		violations = append(violations, map[string]string{
			"field": fieldPath(fe),
			"code":  codeFor(fe.Tag()),
		})
	}
	first := verrs[0]
	return domain.NewValidationError(fieldPath(first), domain.ErrInvalidField, messageFor(first), map[string]any{
		"code":       codeFor(first.Tag()),
		"violations": violations,
	})
}

// fieldPath drops the root type name from the validator namespace.
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func codeFor(tag string) string {
	switch tag {
	case "required":
		return CodeRequired
	case "gt", "gte", "lt", "lte", "min", "max":
		return CodeOutOfRange
	default:
		return CodeInvalidValue
	}
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "gt":
		return "must be greater than " + fe.Param()
	case "gte", "min":
		return "must be at least " + fe.Param()
	case "lt":
		return "must be less than " + fe.Param()
	case "lte", "max":
		return "must be at most " + fe.Param()
	case "oneof":
		return "must be one of: " + fe.Param()
	case "energy_rating":
		return "must be an energy rating between A and G"
	case "marginal_bracket":
		return "must be one of: 0 11 30 41 45"
	default:
		return "is invalid"
	}
}
