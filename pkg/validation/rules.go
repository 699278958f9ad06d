package validation

import (
	"fmt"
	"net/mail"
	"net/url"
	"reflect"
	"regexp"
	"time"

	"github.com/google/uuid"
)

// Required fails when the attribute is absent, nil, or an empty string.
func Required(field string) Validator {
	return func(t Target) {
		if !t.Has(field) {
			t.AddError(&FieldError{
				Field:   field,
				Code:    ErrCodeRequired,
				Message: "is required",
			})
			return
		}
		if s, ok := t.Get(field).(string); ok && s == "" {
			t.AddError(&FieldError{
				Field:   field,
				Code:    ErrCodeRequired,
				Message: "must not be empty",
			})
		}
	}
}

// MinLength fails when the attribute is a string shorter than min.
// Absent attributes pass; combine with Required to reject them.
func MinLength(field string, min int) Validator {
	return func(t Target) {
		s, ok := stringValue(t, field)
		if !ok {
			return
		}
		if len(s) < min {
			t.AddError(&FieldError{
				Field:   field,
				Code:    ErrCodeMinLength,
				Message: fmt.Sprintf("must be at least %d characters", min),
			})
		}
	}
}

// MaxLength fails when the attribute is a string longer than max.
func MaxLength(field string, max int) Validator {
	return func(t Target) {
		s, ok := stringValue(t, field)
		if !ok {
			return
		}
		if len(s) > max {
			t.AddError(&FieldError{
				Field:   field,
				Code:    ErrCodeMaxLength,
				Message: fmt.Sprintf("must be at most %d characters", max),
			})
		}
	}
}

// Pattern fails when the attribute does not match the regular expression.
// An invalid pattern is reported as a validation error rather than a panic.
func Pattern(field, pattern string) Validator {
	re, err := regexp.Compile(pattern)
	return func(t Target) {
		if err != nil {
			t.AddError(&FieldError{
				Field:   field,
				Code:    ErrCodePattern,
				Message: fmt.Sprintf("invalid pattern %q: %v", pattern, err),
			})
			return
		}
		s, ok := stringValue(t, field)
		if !ok {
			return
		}
		if !re.MatchString(s) {
			t.AddError(&FieldError{
				Field:   field,
				Code:    ErrCodePattern,
				Message: fmt.Sprintf("must match %q", pattern),
			})
		}
	}
}

// Min fails when the attribute is a number below min.
func Min(field string, min float64) Validator {
	return func(t Target) {
		n, ok := numberValue(t, field)
		if !ok {
			return
		}
		if n < min {
			t.AddError(&FieldError{
				Field:   field,
				Code:    ErrCodeMin,
				Message: fmt.Sprintf("must be at least %v", min),
			})
		}
	}
}

// Max fails when the attribute is a number above max.
func Max(field string, max float64) Validator {
	return func(t Target) {
		n, ok := numberValue(t, field)
		if !ok {
			return
		}
		if n > max {
			t.AddError(&FieldError{
				Field:   field,
				Code:    ErrCodeMax,
				Message: fmt.Sprintf("must be at most %v", max),
			})
		}
	}
}

// Enum fails when the attribute is present but not one of the allowed values.
func Enum(field string, allowed ...any) Validator {
	return func(t Target) {
		if !t.Has(field) {
			return
		}
		value := t.Get(field)
		for _, a := range allowed {
			if equalValue(value, a) {
				return
			}
		}
		t.AddError(&FieldError{
			Field:   field,
			Code:    ErrCodeEnum,
			Message: fmt.Sprintf("must be one of %v", allowed),
		})
	}
}

// Format fails when the attribute does not conform to a named string format.
// Supported formats: email, uuid, date-time, date, uri. Unknown format names
// pass, matching how lenient servers treat unrecognized formats.
func Format(field, format string) Validator {
	return func(t Target) {
		s, ok := stringValue(t, field)
		if !ok {
			return
		}
		if !checkFormat(format, s) {
			t.AddError(&FieldError{
				Field:   field,
				Code:    ErrCodeFormat,
				Message: fmt.Sprintf("must be a valid %s", format),
			})
		}
	}
}

func checkFormat(format, value string) bool {
	switch format {
	case "email":
		_, err := mail.ParseAddress(value)
		return err == nil
	case "uuid":
		_, err := uuid.Parse(value)
		return err == nil
	case "date-time", "datetime":
		_, err := time.Parse(time.RFC3339, value)
		return err == nil
	case "date":
		_, err := time.Parse("2006-01-02", value)
		return err == nil
	case "uri", "url":
		u, err := url.Parse(value)
		return err == nil && u.Scheme != "" && u.Host != ""
	default:
		return true
	}
}

func stringValue(t Target, field string) (string, bool) {
	if !t.Has(field) {
		return "", false
	}
	s, ok := t.Get(field).(string)
	return s, ok
}

func numberValue(t Target, field string) (float64, bool) {
	if !t.Has(field) {
		return 0, false
	}
	return toFloat(t.Get(field))
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint64:
		return float64(n), true
	default:
		return 0, false
	}
}

// equalValue compares attribute values, treating numeric types as equal when
// their values match so that JSON-decoded float64s compare against Go ints.
func equalValue(a, b any) bool {
	if af, ok := toFloat(a); ok {
		if bf, ok := toFloat(b); ok {
			return af == bf
		}
		return false
	}
	return reflect.DeepEqual(a, b)
}
