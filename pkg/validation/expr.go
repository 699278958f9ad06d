package validation

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Expr builds a validator from an expr-lang expression evaluated against the
// attribute map. The expression must yield a boolean; false registers a
// failure on field with the given message. Attributes are addressed by name:
//
//	validation.Expr(`len(name) > 0 && age >= 18`, "age", "must be an adult")
//
// Compile errors are reported as validation errors on every run so that a
// bad expression in a schema definition surfaces at validation time instead
// of panicking at schema construction.
func Expr(expression, field, message string) Validator {
	program, compileErr := expr.Compile(expression, expr.AllowUndefinedVariables())
	return func(t Target) {
		if compileErr != nil {
			t.AddError(&FieldError{
				Field:   field,
				Code:    ErrCodeExpr,
				Message: fmt.Sprintf("invalid expression %q: %v", expression, compileErr),
			})
			return
		}
		ok, err := runBool(program, t.Attributes())
		if err != nil {
			t.AddError(&FieldError{
				Field:   field,
				Code:    ErrCodeExpr,
				Message: fmt.Sprintf("expression %q failed: %v", expression, err),
			})
			return
		}
		if !ok {
			t.AddError(&FieldError{
				Field:   field,
				Code:    ErrCodeExpr,
				Message: message,
			})
		}
	}
}

func runBool(program *vm.Program, env map[string]any) (bool, error) {
	out, err := expr.Run(program, env)
	if err != nil {
		return false, err
	}
	b, ok := out.(bool)
	if !ok {
		return false, fmt.Errorf("expression returned %T, want bool", out)
	}
	return b, nil
}
