package record

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/restmodel/restmodel/pkg/transport"
	"github.com/restmodel/restmodel/pkg/validation"
)

// IsNew reports whether the record has never been persisted: a record is new
// exactly when its primary-key attribute is absent.
func (r *Record) IsNew() bool {
	return !r.Has(r.schema.primaryKey)
}

// Primary returns the primary-key value, or nil for a new record.
func (r *Record) Primary() any {
	return r.Get(r.schema.primaryKey)
}

// SetPrimary assigns the primary-key attribute. Setting it on a new record
// promotes the record out of the "new" state.
func (r *Record) SetPrimary(value any) {
	r.Set(r.schema.primaryKey, value)
}

// URL returns the record's resource URL, basePath/primaryKey, with any
// suffix segments appended. Fails with ErrNoPrimaryKey on a new record.
func (r *Record) URL(suffix ...string) (string, error) {
	id, ok := r.primaryString()
	if !ok {
		return "", ErrNoPrimaryKey
	}
	url := r.schema.ResourceURL(id)
	for _, s := range suffix {
		url += "/" + s
	}
	return url, nil
}

// Save persists the record. A new record is created with a POST to the
// collection URL; a persisted record delegates to Update. Validation runs
// first and a failure means no network call. On a successful create the
// primary key is taken from the response body (promoting the record out of
// "new"), the dirty set is cleared, and EventSave fires.
//
// Any failure leaves the record exactly as it was, so a retried Save is a
// pure replay.
func (r *Record) Save(ctx context.Context) error {
	if r.destroyed {
		return ErrDestroyed
	}
	if !r.IsNew() {
		return r.Update(ctx)
	}
	if err := r.runValidation("create"); err != nil {
		return err
	}

	// Schemas with client-side key generation assign one right before the
	// create request. Rolled back on failure so the record stays "new".
	generated := false
	if r.schema.generateID != nil {
		r.applyServer(r.schema.primaryKey, r.schema.generateID())
		generated = true
	}
	rollback := func() {
		if generated {
			delete(r.attrs, r.schema.primaryKey)
		}
	}

	body, err := json.Marshal(r.attrs)
	if err != nil {
		rollback()
		r.schema.observer.OnError(r.schema.name, "create", err)
		return fmt.Errorf("serializing record: %w", err)
	}

	start := time.Now()
	resp, err := r.schema.transport.Send(ctx, http.MethodPost, r.schema.CollectionURL(), body)
	if err != nil {
		rollback()
		r.schema.observer.OnError(r.schema.name, "create", err)
		return err
	}
	if !resp.Success() {
		rollback()
		statusErr := transport.NewStatusError(http.MethodPost, r.schema.CollectionURL(), resp)
		r.schema.observer.OnError(r.schema.name, "create", statusErr)
		return statusErr
	}

	if v, ok := resp.JSON(); ok {
		if obj, ok := v.(map[string]any); ok {
			if id, present := obj[r.schema.primaryKey]; present {
				r.applyServer(r.schema.primaryKey, id)
			} else if id, present := obj["id"]; present {
				r.applyServer(r.schema.primaryKey, id)
			}
		}
	} else if resp.IsJSON() && len(resp.Body) > 0 {
		// A declared-JSON body that does not parse yields no primary key,
		// leaving the record new. Log it so the outcome is diagnosable.
		r.schema.log.Debug("create response body is not valid JSON",
			"schema", r.schema.name, "status", resp.StatusCode)
	}
	r.clearDirty()

	id, _ := r.primaryString()
	r.schema.observer.OnCreate(r.schema.name, id, time.Since(start))
	r.schema.log.Debug("record created", "schema", r.schema.name, "id", id)
	r.emit(EventSave)
	return nil
}

// Update persists a record's attributes with a PUT to its resource URL. The
// full attribute map is sent, not a diff. On success the dirty set is
// cleared and EventUpdate fires; no separate EventSave fires when Update was
// reached through Save.
func (r *Record) Update(ctx context.Context) error {
	if r.destroyed {
		return ErrDestroyed
	}
	if err := r.runValidation("update"); err != nil {
		return err
	}
	url, err := r.URL()
	if err != nil {
		r.schema.observer.OnError(r.schema.name, "update", err)
		return err
	}

	body, err := json.Marshal(r.attrs)
	if err != nil {
		r.schema.observer.OnError(r.schema.name, "update", err)
		return fmt.Errorf("serializing record: %w", err)
	}

	start := time.Now()
	resp, err := r.schema.transport.Send(ctx, http.MethodPut, url, body)
	if err != nil {
		r.schema.observer.OnError(r.schema.name, "update", err)
		return err
	}
	if !resp.Success() {
		statusErr := transport.NewStatusError(http.MethodPut, url, resp)
		r.schema.observer.OnError(r.schema.name, "update", statusErr)
		return statusErr
	}

	r.clearDirty()

	id, _ := r.primaryString()
	r.schema.observer.OnUpdate(r.schema.name, id, time.Since(start))
	r.schema.log.Debug("record updated", "schema", r.schema.name, "id", id)
	r.emit(EventUpdate)
	return nil
}

// Destroy deletes the record on the server. A record that was never saved
// has nothing to delete and fails with ErrNotPersisted before any network
// call. On confirmed deletion EventDestroy fires first, while the record is
// still observable as not-destroyed, and only then is the terminal flag set.
func (r *Record) Destroy(ctx context.Context) error {
	if r.destroyed {
		return ErrDestroyed
	}
	if r.IsNew() {
		r.schema.observer.OnError(r.schema.name, "destroy", ErrNotPersisted)
		return ErrNotPersisted
	}
	url, err := r.URL()
	if err != nil {
		r.schema.observer.OnError(r.schema.name, "destroy", err)
		return err
	}

	start := time.Now()
	resp, err := r.schema.transport.Send(ctx, http.MethodDelete, url, nil)
	if err != nil {
		r.schema.observer.OnError(r.schema.name, "destroy", err)
		return err
	}
	if !resp.Success() {
		statusErr := transport.NewStatusError(http.MethodDelete, url, resp)
		r.schema.observer.OnError(r.schema.name, "destroy", statusErr)
		return statusErr
	}

	id, _ := r.primaryString()
	r.schema.observer.OnDestroy(r.schema.name, id, time.Since(start))
	r.schema.log.Debug("record destroyed", "schema", r.schema.name, "id", id)
	r.emit(EventDestroy)
	r.destroyed = true
	return nil
}

// Fetch reloads the record's attributes from the server with a GET to its
// resource URL. Server state overwrites local values without marking
// anything dirty; attributes the server did not echo keep their local
// values, and the dirty set is left untouched.
func (r *Record) Fetch(ctx context.Context) error {
	if r.destroyed {
		return ErrDestroyed
	}
	if r.IsNew() {
		r.schema.observer.OnError(r.schema.name, "fetch", ErrNotPersisted)
		return ErrNotPersisted
	}
	url, err := r.URL()
	if err != nil {
		r.schema.observer.OnError(r.schema.name, "fetch", err)
		return err
	}

	start := time.Now()
	resp, err := r.schema.transport.Send(ctx, http.MethodGet, url, nil)
	if err != nil {
		r.schema.observer.OnError(r.schema.name, "fetch", err)
		return err
	}
	if !resp.Success() {
		statusErr := transport.NewStatusError(http.MethodGet, url, resp)
		r.schema.observer.OnError(r.schema.name, "fetch", statusErr)
		return statusErr
	}

	v, ok := resp.JSON()
	if !ok {
		err := fmt.Errorf("GET %s: expected a JSON body", url)
		r.schema.observer.OnError(r.schema.name, "fetch", err)
		return err
	}
	obj, ok := v.(map[string]any)
	if !ok {
		err := fmt.Errorf("GET %s: expected a JSON object, got %T", url, v)
		r.schema.observer.OnError(r.schema.name, "fetch", err)
		return err
	}
	for name, value := range obj {
		r.applyServer(name, value)
	}

	id, _ := r.primaryString()
	r.schema.observer.OnFetch(r.schema.name, id, time.Since(start))
	r.emit(EventFetch)
	return nil
}

// runValidation validates the record and wraps any failures in a
// *ValidationError without touching the transport.
func (r *Record) runValidation(operation string) error {
	if r.Valid() {
		return nil
	}
	fields := make([]*validation.FieldError, len(r.errs))
	copy(fields, r.errs)
	err := &ValidationError{Fields: fields}
	r.schema.observer.OnError(r.schema.name, operation, err)
	return err
}

// primaryString renders the primary key for URL building. JSON-decoded
// numeric keys format without a trailing ".0".
func (r *Record) primaryString() (string, bool) {
	if !r.Has(r.schema.primaryKey) {
		return "", false
	}
	switch v := r.Primary().(type) {
	case string:
		return v, v != ""
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case int:
		return strconv.Itoa(v), true
	case int64:
		return strconv.FormatInt(v, 10), true
	default:
		return fmt.Sprintf("%v", v), true
	}
}
