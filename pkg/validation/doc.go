// Package validation provides the validator pipeline that records run before
// persisting.
//
// A Validator inspects a Target (the record under validation) and registers
// zero or more field errors on it. Validators never abort the pipeline: every
// registered validator runs and errors accumulate, so a single validation
// pass reports everything that is wrong.
//
// Rule constructors cover the common cases (Required, MinLength, Format, ...).
// Expr compiles an expr-lang expression over the attribute map, Schema
// validates the whole attribute map against a JSON Schema document, and Path
// checks nested values addressed by JSONPath.
package validation
