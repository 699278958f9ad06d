package record

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/restmodel/restmodel/pkg/logging"
	"github.com/restmodel/restmodel/pkg/transport"
	"github.com/restmodel/restmodel/pkg/validation"
)

// DefaultPrimaryKey is the attribute that identifies a record unless the
// schema configures another.
const DefaultPrimaryKey = "id"

// Schema is the shared, immutable definition for a family of records: the
// resource base path, primary-key attribute, validator list, declared
// fields, and the transport that reaches the server.
type Schema struct {
	name       string
	basePath   string
	primaryKey string
	validators []validation.Validator
	fields     []Field
	generateID func() string
	observer   Observer
	transport  transport.Transport
	log        *slog.Logger
}

// Option configures a Schema.
type Option func(*Schema)

// WithPrimaryKey sets the primary-key attribute name.
func WithPrimaryKey(name string) Option {
	return func(s *Schema) {
		s.primaryKey = name
	}
}

// WithValidators appends validators, run in the order given.
func WithValidators(validators ...validation.Validator) Option {
	return func(s *Schema) {
		s.validators = append(s.validators, validators...)
	}
}

// WithFields declares named fields, generating one typed accessor per field.
func WithFields(names ...string) Option {
	return func(s *Schema) {
		for _, name := range names {
			s.fields = append(s.fields, Field{name: name})
		}
	}
}

// WithIDGenerator makes the schema assign client-side primary keys: a new
// record without a primary key receives generate() right before its create
// request, instead of waiting for the server to assign one.
func WithIDGenerator(generate func() string) Option {
	return func(s *Schema) {
		s.generateID = generate
	}
}

// WithObserver installs lifecycle hooks for metrics collection.
func WithObserver(obs Observer) Option {
	return func(s *Schema) {
		if obs != nil {
			s.observer = obs
		}
	}
}

// WithTransport sets the transport used by persistence operations.
func WithTransport(t transport.Transport) Option {
	return func(s *Schema) {
		if t != nil {
			s.transport = t
		}
	}
}

// WithLogger sets the operational logger.
func WithLogger(log *slog.Logger) Option {
	return func(s *Schema) {
		if log != nil {
			s.log = log
		}
	}
}

// NewSchema constructs a schema for the resource rooted at basePath, e.g.
// "/api/users". The path may also be absolute ("https://...") when no
// transport-level base URL is configured.
func NewSchema(name, basePath string, opts ...Option) (*Schema, error) {
	if name == "" {
		return nil, errors.New("schema name cannot be empty")
	}
	if basePath == "" {
		return nil, errors.New("schema basePath cannot be empty")
	}
	if !strings.HasPrefix(basePath, "/") && !strings.Contains(basePath, "://") {
		return nil, fmt.Errorf("schema basePath %q must start with / or be an absolute URL", basePath)
	}

	s := &Schema{
		name:       name,
		basePath:   strings.TrimRight(basePath, "/"),
		primaryKey: DefaultPrimaryKey,
		observer:   &NoopObserver{},
		log:        logging.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.transport == nil {
		s.transport = transport.NewClient(transport.WithLogger(s.log))
	}
	return s, nil
}

// Name returns the resource name.
func (s *Schema) Name() string {
	return s.name
}

// BasePath returns the resource base path.
func (s *Schema) BasePath() string {
	return s.basePath
}

// PrimaryKey returns the primary-key attribute name.
func (s *Schema) PrimaryKey() string {
	return s.primaryKey
}

// CollectionURL returns the URL that creates target, i.e. the base path.
func (s *Schema) CollectionURL() string {
	return s.basePath
}

// ResourceURL returns the URL of one resource instance.
func (s *Schema) ResourceURL(id string) string {
	return s.basePath + "/" + id
}

// Fields returns the declared field accessors, in declaration order.
func (s *Schema) Fields() []Field {
	return s.fields
}

// Field returns the accessor for a named attribute. The accessor works for
// undeclared names too; declaration exists so models can hand out a fixed
// accessor set.
func (s *Schema) Field(name string) Field {
	return Field{name: name}
}

// New constructs a record bound to this schema with an optional initial
// attribute set. Initial attributes are clean: they do not mark the record
// dirty.
func (s *Schema) New(attrs map[string]any) *Record {
	return newRecord(s, attrs)
}

// Field is a typed accessor for one declared attribute, generated at
// schema-definition time. Reads and writes route through the record's
// attribute store so dirty tracking stays intact.
type Field struct {
	name string
}

// Name returns the attribute this accessor addresses.
func (f Field) Name() string {
	return f.name
}

// Get reads the attribute from a record.
func (f Field) Get(r *Record) any {
	return r.Get(f.name)
}

// Set writes the attribute on a record, marking it dirty.
func (f Field) Set(r *Record, value any) {
	r.Set(f.name, value)
}
