package record

import (
	"errors"
	"fmt"

	"github.com/restmodel/restmodel/pkg/validation"
)

// Sentinel errors returned by persistence operations.
var (
	// ErrNotPersisted is returned by Destroy and Fetch on a record that was
	// never saved: there is nothing on the server to address.
	ErrNotPersisted = errors.New("record has not been saved")

	// ErrDestroyed is returned by any persistence operation on a record
	// whose server-side deletion has been confirmed.
	ErrDestroyed = errors.New("record has been destroyed")

	// ErrNoPrimaryKey is returned by URL when the record has no primary key
	// to build a resource path from.
	ErrNoPrimaryKey = errors.New("record has no primary key")
)

// ValidationError is returned by Save and Update when validation fails. The
// per-attribute details are in Fields and remain readable on the record via
// Errors() until the next validation run.
type ValidationError struct {
	Fields []*validation.FieldError
}

func (e *ValidationError) Error() string {
	switch len(e.Fields) {
	case 0:
		return "validation failed"
	case 1:
		return fmt.Sprintf("validation failed: %s", e.Fields[0])
	default:
		return fmt.Sprintf("validation failed: %s (and %d more)", e.Fields[0], len(e.Fields)-1)
	}
}
