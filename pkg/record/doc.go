// Package record implements the record lifecycle: an attribute bag with
// dirty tracking, a validation pipeline, and save/update/destroy
// orchestration against a remote REST resource.
//
// A Schema is the immutable definition shared by a family of records: the
// resource base path, the primary-key attribute, the ordered validator list,
// and the transport used to reach the server. Records are created from a
// schema and then mutated, validated, and persisted:
//
//	users, _ := record.NewSchema("users", "/api/users",
//	    record.WithValidators(validation.Required("name")),
//	    record.WithTransport(transport.NewClient(transport.WithBaseURL(apiURL))),
//	)
//
//	u := users.New(map[string]any{"name": "ada"})
//	if err := u.Save(ctx); err != nil { ... }
//
// A record is "new" until it has a primary key; Save issues a POST for new
// records and delegates to Update (PUT) for persisted ones. Destroy issues a
// DELETE and marks the record terminal. Dirty and error state are only ever
// cleared on confirmed transport success, so a failed call can simply be
// retried.
//
// Records are not safe for concurrent use. Each record owns its attribute
// map exclusively and persistence operations are expected to be serialized
// by the caller.
package record
