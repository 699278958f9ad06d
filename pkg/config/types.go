package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/restmodel/restmodel/internal/id"
	"github.com/restmodel/restmodel/pkg/record"
	"github.com/restmodel/restmodel/pkg/validation"
)

// Definition describes one record schema as declared in a definition file.
type Definition struct {
	// Name is the resource name, e.g. "users".
	Name string `json:"name" yaml:"name"`

	// BasePath is the collection URL path, e.g. "/api/users".
	BasePath string `json:"basePath" yaml:"basePath"`

	// PrimaryKey overrides the primary-key attribute (default "id").
	PrimaryKey string `json:"primaryKey,omitempty" yaml:"primaryKey,omitempty"`

	// GenerateID selects client-side key generation: "", "uuid" or "ulid".
	GenerateID string `json:"generateId,omitempty" yaml:"generateId,omitempty"`

	// Fields declares attributes and their rules.
	Fields []FieldDef `json:"fields,omitempty" yaml:"fields,omitempty"`

	// Validators declares record-level validators.
	Validators []ValidatorDef `json:"validators,omitempty" yaml:"validators,omitempty"`
}

// FieldDef declares one attribute and its rules.
type FieldDef struct {
	Name      string   `json:"name" yaml:"name"`
	Required  bool     `json:"required,omitempty" yaml:"required,omitempty"`
	MinLength *int     `json:"minLength,omitempty" yaml:"minLength,omitempty"`
	MaxLength *int     `json:"maxLength,omitempty" yaml:"maxLength,omitempty"`
	Pattern   string   `json:"pattern,omitempty" yaml:"pattern,omitempty"`
	Format    string   `json:"format,omitempty" yaml:"format,omitempty"`
	Min       *float64 `json:"min,omitempty" yaml:"min,omitempty"`
	Max       *float64 `json:"max,omitempty" yaml:"max,omitempty"`
	Enum      []any    `json:"enum,omitempty" yaml:"enum,omitempty"`
}

// ValidatorDef declares one record-level validator. Exactly one of Expr,
// Schema, or Path must be set.
type ValidatorDef struct {
	// Expr is an expr-lang expression over the attribute map that must
	// yield true.
	Expr string `json:"expr,omitempty" yaml:"expr,omitempty"`

	// Schema is an inline JSON Schema document for the attribute map.
	Schema string `json:"schema,omitempty" yaml:"schema,omitempty"`

	// Path is a JSONPath expression; combined with Equals it asserts the
	// addressed value.
	Path   string `json:"path,omitempty" yaml:"path,omitempty"`
	Equals any    `json:"equals,omitempty" yaml:"equals,omitempty"`

	// Field is the attribute failures are reported against.
	Field string `json:"field,omitempty" yaml:"field,omitempty"`

	// Message is the failure message for expr and path validators.
	Message string `json:"message,omitempty" yaml:"message,omitempty"`
}

// Validate checks the definition for structural problems.
func (d *Definition) Validate() error {
	if d.Name == "" {
		return errors.New("definition name is required")
	}
	if d.BasePath == "" {
		return errors.New("definition basePath is required")
	}
	switch strings.ToLower(d.GenerateID) {
	case "", "uuid", "ulid":
	default:
		return fmt.Errorf("unknown generateId %q (want uuid or ulid)", d.GenerateID)
	}
	for i, f := range d.Fields {
		if f.Name == "" {
			return fmt.Errorf("fields[%d]: name is required", i)
		}
	}
	for i, v := range d.Validators {
		set := 0
		if v.Expr != "" {
			set++
		}
		if v.Schema != "" {
			set++
		}
		if v.Path != "" {
			set++
		}
		if set != 1 {
			return fmt.Errorf("validators[%d]: exactly one of expr, schema, or path is required", i)
		}
	}
	return nil
}

// Schema compiles the definition into a record schema. Extra options are
// appended after the compiled ones, so callers can attach a transport,
// logger, or observer:
//
//	schema, err := def.Schema(record.WithTransport(client))
func (d *Definition) Schema(opts ...record.Option) (*record.Schema, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}

	compiled := make([]record.Option, 0, len(opts)+4)
	if d.PrimaryKey != "" {
		compiled = append(compiled, record.WithPrimaryKey(d.PrimaryKey))
	}
	switch strings.ToLower(d.GenerateID) {
	case "uuid":
		compiled = append(compiled, record.WithIDGenerator(id.UUID))
	case "ulid":
		compiled = append(compiled, record.WithIDGenerator(id.ULID))
	}
	if names := d.fieldNames(); len(names) > 0 {
		compiled = append(compiled, record.WithFields(names...))
	}
	if validators := d.compileValidators(); len(validators) > 0 {
		compiled = append(compiled, record.WithValidators(validators...))
	}
	compiled = append(compiled, opts...)

	return record.NewSchema(d.Name, d.BasePath, compiled...)
}

func (d *Definition) fieldNames() []string {
	names := make([]string, 0, len(d.Fields))
	for _, f := range d.Fields {
		names = append(names, f.Name)
	}
	return names
}

func (d *Definition) compileValidators() []validation.Validator {
	var validators []validation.Validator
	for _, f := range d.Fields {
		if f.Required {
			validators = append(validators, validation.Required(f.Name))
		}
		if f.MinLength != nil {
			validators = append(validators, validation.MinLength(f.Name, *f.MinLength))
		}
		if f.MaxLength != nil {
			validators = append(validators, validation.MaxLength(f.Name, *f.MaxLength))
		}
		if f.Pattern != "" {
			validators = append(validators, validation.Pattern(f.Name, f.Pattern))
		}
		if f.Format != "" {
			validators = append(validators, validation.Format(f.Name, f.Format))
		}
		if f.Min != nil {
			validators = append(validators, validation.Min(f.Name, *f.Min))
		}
		if f.Max != nil {
			validators = append(validators, validation.Max(f.Name, *f.Max))
		}
		if len(f.Enum) > 0 {
			validators = append(validators, validation.Enum(f.Name, f.Enum...))
		}
	}
	for _, v := range d.Validators {
		switch {
		case v.Expr != "":
			validators = append(validators, validation.Expr(v.Expr, v.Field, v.Message))
		case v.Schema != "":
			validators = append(validators, validation.Schema(v.Schema))
		case v.Path != "":
			validators = append(validators, validation.PathEquals(v.Path, v.Equals, v.Field, v.Message))
		}
	}
	return validators
}
