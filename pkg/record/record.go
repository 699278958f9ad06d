package record

import (
	"sort"

	"github.com/restmodel/restmodel/pkg/validation"
)

// Record is a persistent, validatable attribute bag bound to a Schema.
//
// The zero value is not usable; records are created through Schema.New.
type Record struct {
	schema    *Schema
	attrs     map[string]any
	dirty     map[string]struct{}
	errs      []*validation.FieldError
	destroyed bool
	subs      map[Event][]Listener
}

func newRecord(s *Schema, attrs map[string]any) *Record {
	r := &Record{
		schema: s,
		attrs:  make(map[string]any, len(attrs)),
		dirty:  make(map[string]struct{}),
		subs:   make(map[Event][]Listener),
	}
	// Initial attributes are the clean baseline, not local mutations.
	for name, value := range attrs {
		r.attrs[name] = value
	}
	return r
}

// Schema returns the definition this record is bound to.
func (r *Record) Schema() *Schema {
	return r.schema
}

// Get returns the current value of an attribute, or nil when absent.
func (r *Record) Get(name string) any {
	return r.attrs[name]
}

// Has reports whether the attribute is present and non-nil.
func (r *Record) Has(name string) bool {
	v, ok := r.attrs[name]
	return ok && v != nil
}

// Set assigns an attribute and marks it dirty.
func (r *Record) Set(name string, value any) {
	r.attrs[name] = value
	r.dirty[name] = struct{}{}
}

// SetAll assigns every entry of attrs through the single-attribute path,
// marking each one dirty.
func (r *Record) SetAll(attrs map[string]any) {
	for name, value := range attrs {
		r.Set(name, value)
	}
}

// Attributes returns the live backing attribute map. It is not a copy:
// callers serializing the record read the same map the record mutates.
func (r *Record) Attributes() map[string]any {
	return r.attrs
}

// Changed reports whether any attribute has been mutated locally since the
// last successful save or update.
func (r *Record) Changed() bool {
	return len(r.dirty) > 0
}

// Dirty returns the sorted names of locally mutated attributes, or nil when
// the record is clean.
func (r *Record) Dirty() []string {
	if len(r.dirty) == 0 {
		return nil
	}
	names := make([]string, 0, len(r.dirty))
	for name := range r.dirty {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// clearDirty forgets all dirty marks. Called only on confirmed persistence
// success.
func (r *Record) clearDirty() {
	r.dirty = make(map[string]struct{})
}

// applyServer assigns an attribute on behalf of the server. Server-driven
// mutation never marks the attribute dirty.
func (r *Record) applyServer(name string, value any) {
	r.attrs[name] = value
}

// Validate rebuilds the error list from scratch and runs every schema
// validator in registration order. A failing validator does not stop the
// remaining ones.
func (r *Record) Validate() {
	r.errs = nil
	for _, v := range r.schema.validators {
		v(r)
	}
}

// Valid re-validates the record and reports whether no errors were found.
func (r *Record) Valid() bool {
	r.Validate()
	return len(r.errs) == 0
}

// Errors returns the errors found by the most recent validation run.
func (r *Record) Errors() []*validation.FieldError {
	return r.errs
}

// Error registers a validation failure for an attribute. Validators call
// this (directly or through the rule constructors) to report problems.
func (r *Record) Error(name, message string) {
	r.AddError(&validation.FieldError{
		Field:   name,
		Code:    validation.ErrCodeInvalid,
		Message: message,
	})
}

// AddError appends a structured validation error.
func (r *Record) AddError(err *validation.FieldError) {
	r.errs = append(r.errs, err)
}

// Destroyed reports whether the record has been deleted on the server.
// A destroyed record is terminal: no persistence operation may run again.
func (r *Record) Destroyed() bool {
	return r.destroyed
}

var _ validation.Target = (*Record)(nil)
