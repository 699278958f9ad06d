package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Schema builds a validator that checks the full attribute map against a
// JSON Schema document. Each leaf cause becomes one field error, with the
// instance location mapped to an attribute path ("/address/city" becomes
// "address.city").
func Schema(schemaJSON string) Validator {
	compiled, compileErr := jsonschema.CompileString("record-schema.json", schemaJSON)
	return func(t Target) {
		if compileErr != nil {
			t.AddError(&FieldError{
				Code:    ErrCodeSchema,
				Message: fmt.Sprintf("invalid schema: %v", compileErr),
			})
			return
		}

		// Round-trip through JSON so attribute values carry the types the
		// schema validator expects (ints become float64 and so on).
		normalized, err := normalizeJSON(t.Attributes())
		if err != nil {
			t.AddError(&FieldError{
				Code:    ErrCodeSchema,
				Message: fmt.Sprintf("attributes are not JSON-serializable: %v", err),
			})
			return
		}

		err = compiled.Validate(normalized)
		if err == nil {
			return
		}
		var ve *jsonschema.ValidationError
		if !errors.As(err, &ve) {
			t.AddError(&FieldError{Code: ErrCodeSchema, Message: err.Error()})
			return
		}
		for _, leaf := range leafCauses(ve) {
			t.AddError(&FieldError{
				Field:   locationToField(leaf.InstanceLocation),
				Code:    ErrCodeSchema,
				Message: leaf.Message,
			})
		}
	}
}

func normalizeJSON(attrs map[string]any) (any, error) {
	raw, err := json.Marshal(attrs)
	if err != nil {
		return nil, err
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, err
	}
	return v, nil
}

func leafCauses(ve *jsonschema.ValidationError) []*jsonschema.ValidationError {
	if len(ve.Causes) == 0 {
		return []*jsonschema.ValidationError{ve}
	}
	var leaves []*jsonschema.ValidationError
	for _, cause := range ve.Causes {
		leaves = append(leaves, leafCauses(cause)...)
	}
	return leaves
}

func locationToField(location string) string {
	return strings.ReplaceAll(strings.TrimPrefix(location, "/"), "/", ".")
}
