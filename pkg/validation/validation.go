package validation

// Target is the view of a record that validators operate on.
//
// Get returns the current value of an attribute (nil when absent). Has
// reports whether the attribute is present and non-nil. Attributes exposes
// the live attribute map for validators that inspect the whole record.
// Error and AddError register a validation failure; they never halt the run.
type Target interface {
	Get(name string) any
	Has(name string) bool
	Attributes() map[string]any
	Error(name, message string)
	AddError(err *FieldError)
}

// Validator inspects a record and may register errors on it.
type Validator func(t Target)
