package validation

import (
	"fmt"

	"github.com/ohler55/ojg/jp"
)

// Path builds a validator that extracts values addressed by a JSONPath
// expression from the attribute map and hands them to check. A false return
// registers a failure on field with the given message.
//
//	validation.Path("$.tags[*]", "tags", "too many tags",
//	    func(values []any) bool { return len(values) <= 5 })
func Path(path, field, message string, check func(values []any) bool) Validator {
	compiled, parseErr := jp.ParseString(path)
	return func(t Target) {
		if parseErr != nil {
			t.AddError(&FieldError{
				Field:   field,
				Code:    ErrCodePath,
				Message: fmt.Sprintf("invalid path %q: %v", path, parseErr),
			})
			return
		}
		if !check(compiled.Get(any(t.Attributes()))) {
			t.AddError(&FieldError{
				Field:   field,
				Code:    ErrCodePath,
				Message: message,
			})
		}
	}
}

// PathEquals fails unless the JSONPath expression yields exactly the
// expected value. Numeric values compare by value, so a JSON-decoded float64
// matches a Go int.
func PathEquals(path string, expected any, field, message string) Validator {
	return Path(path, field, message, func(values []any) bool {
		return len(values) == 1 && equalValue(values[0], expected)
	})
}
