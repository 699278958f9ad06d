package record

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/restmodel/restmodel/pkg/validation"
)

func testSchema(t *testing.T, opts ...Option) *Schema {
	t.Helper()
	s, err := NewSchema("users", "/api/users", opts...)
	require.NoError(t, err)
	return s
}

func TestNewSchema(t *testing.T) {
	t.Parallel()

	t.Run("defaults", func(t *testing.T) {
		t.Parallel()
		s := testSchema(t)
		assert.Equal(t, "users", s.Name())
		assert.Equal(t, "/api/users", s.BasePath())
		assert.Equal(t, "id", s.PrimaryKey())
		assert.Equal(t, "/api/users", s.CollectionURL())
		assert.Equal(t, "/api/users/5", s.ResourceURL("5"))
	})

	t.Run("rejects empty name", func(t *testing.T) {
		t.Parallel()
		_, err := NewSchema("", "/api/users")
		require.Error(t, err)
	})

	t.Run("rejects relative basePath", func(t *testing.T) {
		t.Parallel()
		_, err := NewSchema("users", "api/users")
		require.Error(t, err)
	})

	t.Run("accepts absolute url basePath", func(t *testing.T) {
		t.Parallel()
		s, err := NewSchema("users", "https://api.example.com/users/")
		require.NoError(t, err)
		assert.Equal(t, "https://api.example.com/users", s.BasePath())
	})

	t.Run("custom primary key", func(t *testing.T) {
		t.Parallel()
		s := testSchema(t, WithPrimaryKey("uuid"))
		assert.Equal(t, "uuid", s.PrimaryKey())
	})
}

func TestAttributeStore(t *testing.T) {
	t.Parallel()

	t.Run("get set has", func(t *testing.T) {
		t.Parallel()
		r := testSchema(t).New(nil)
		assert.Nil(t, r.Get("name"))
		assert.False(t, r.Has("name"))

		r.Set("name", "ada")
		assert.Equal(t, "ada", r.Get("name"))
		assert.True(t, r.Has("name"))

		r.Set("name", nil)
		assert.False(t, r.Has("name"), "nil value counts as absent")
	})

	t.Run("bulk set goes through single-attribute path", func(t *testing.T) {
		t.Parallel()
		r := testSchema(t).New(nil)
		r.SetAll(map[string]any{"name": "ada", "age": 36})
		assert.Equal(t, "ada", r.Get("name"))
		assert.Equal(t, 36, r.Get("age"))
		assert.ElementsMatch(t, []string{"age", "name"}, r.Dirty())
	})

	t.Run("attributes returns the live backing map", func(t *testing.T) {
		t.Parallel()
		r := testSchema(t).New(map[string]any{"name": "ada"})
		attrs := r.Attributes()
		r.Set("name", "grace")
		assert.Equal(t, "grace", attrs["name"])
	})

	t.Run("initial attributes are copied in", func(t *testing.T) {
		t.Parallel()
		initial := map[string]any{"name": "ada"}
		r := testSchema(t).New(initial)
		initial["name"] = "mutated"
		assert.Equal(t, "ada", r.Get("name"))
	})
}

func TestDirtyTracker(t *testing.T) {
	t.Parallel()

	t.Run("initial attributes are clean", func(t *testing.T) {
		t.Parallel()
		r := testSchema(t).New(map[string]any{"name": "ada"})
		assert.False(t, r.Changed())
		assert.Nil(t, r.Dirty())
	})

	t.Run("set marks dirty", func(t *testing.T) {
		t.Parallel()
		r := testSchema(t).New(map[string]any{"name": "ada"})
		r.Set("name", "grace")
		assert.True(t, r.Changed())
		assert.Equal(t, []string{"name"}, r.Dirty())
	})

	t.Run("validation does not clear dirty", func(t *testing.T) {
		t.Parallel()
		r := testSchema(t, WithValidators(validation.Required("name"))).New(nil)
		r.Set("name", "ada")
		r.Validate()
		assert.True(t, r.Changed())
	})

	t.Run("dirty names are sorted", func(t *testing.T) {
		t.Parallel()
		r := testSchema(t).New(nil)
		r.Set("zeta", 1)
		r.Set("alpha", 2)
		r.Set("mid", 3)
		assert.Equal(t, []string{"alpha", "mid", "zeta"}, r.Dirty())
	})
}

func TestValidationEngine(t *testing.T) {
	t.Parallel()

	t.Run("errors rebuilt from scratch each run", func(t *testing.T) {
		t.Parallel()
		r := testSchema(t, WithValidators(validation.Required("name"))).New(nil)
		assert.False(t, r.Valid())
		require.Len(t, r.Errors(), 1)

		// Fixing the attribute and re-validating discards the old error.
		r.Set("name", "ada")
		assert.True(t, r.Valid())
		assert.Empty(t, r.Errors())
	})

	t.Run("all validators run and errors accumulate in order", func(t *testing.T) {
		t.Parallel()
		first := func(target validation.Target) { target.Error("a", "first failed") }
		second := func(target validation.Target) { target.Error("b", "second failed") }
		r := testSchema(t, WithValidators(first, second)).New(nil)

		r.Validate()
		require.Len(t, r.Errors(), 2)
		assert.Equal(t, "a", r.Errors()[0].Field)
		assert.Equal(t, "b", r.Errors()[1].Field)
	})

	t.Run("valid result is idempotent without mutation", func(t *testing.T) {
		t.Parallel()
		r := testSchema(t, WithValidators(validation.MinLength("name", 2))).New(map[string]any{"name": "x"})
		assert.Equal(t, r.Valid(), r.Valid())
		assert.False(t, r.Valid())

		r.Set("name", "xy")
		assert.Equal(t, r.Valid(), r.Valid())
		assert.True(t, r.Valid())
	})
}

func TestNewStateInvariant(t *testing.T) {
	t.Parallel()

	s := testSchema(t)

	r := s.New(nil)
	assert.True(t, r.IsNew())
	assert.Nil(t, r.Primary())

	r.SetPrimary(5)
	assert.False(t, r.IsNew())
	assert.Equal(t, 5, r.Primary())

	// Primary is a convenience over the attribute store.
	assert.Equal(t, 5, r.Get("id"))

	withID := s.New(map[string]any{"id": "abc"})
	assert.False(t, withID.IsNew())

	nilID := s.New(map[string]any{"id": nil})
	assert.True(t, nilID.IsNew(), "nil primary key means new")
}

func TestURL(t *testing.T) {
	t.Parallel()

	s := testSchema(t)

	t.Run("requires a primary key", func(t *testing.T) {
		t.Parallel()
		_, err := s.New(nil).URL()
		assert.ErrorIs(t, err, ErrNoPrimaryKey)
	})

	t.Run("string key", func(t *testing.T) {
		t.Parallel()
		url, err := s.New(map[string]any{"id": "abc"}).URL()
		require.NoError(t, err)
		assert.Equal(t, "/api/users/abc", url)
	})

	t.Run("json numeric key formats without decimals", func(t *testing.T) {
		t.Parallel()
		url, err := s.New(map[string]any{"id": float64(5)}).URL()
		require.NoError(t, err)
		assert.Equal(t, "/api/users/5", url)
	})

	t.Run("suffix segments", func(t *testing.T) {
		t.Parallel()
		url, err := s.New(map[string]any{"id": 7}).URL("activate")
		require.NoError(t, err)
		assert.Equal(t, "/api/users/7/activate", url)
	})
}

func TestFieldAccessors(t *testing.T) {
	t.Parallel()

	s := testSchema(t, WithFields("name", "email"))
	require.Len(t, s.Fields(), 2)
	assert.Equal(t, "name", s.Fields()[0].Name())

	name := s.Field("name")
	r := s.New(nil)
	name.Set(r, "ada")

	assert.Equal(t, "ada", name.Get(r))
	assert.Equal(t, "ada", r.Get("name"))
	assert.Equal(t, []string{"name"}, r.Dirty(), "field writes route through the dirty tracker")
}
