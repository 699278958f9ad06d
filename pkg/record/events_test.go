package record

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/restmodel/restmodel/pkg/transport"
)

func TestListenerOrder(t *testing.T) {
	t.Parallel()

	ft := &fakeTransport{responses: []*transport.Response{jsonResponse(201, `{"id":1}`)}}
	s := newFakeSchema(t, ft)

	r := s.New(map[string]any{"name": "a"})
	var order []string
	r.On(EventSave, func(*Record) { order = append(order, "first") })
	r.On(EventSave, func(*Record) { order = append(order, "second") })
	r.On(EventSave, func(*Record) { order = append(order, "third") })

	require.NoError(t, r.Save(context.Background()))
	assert.Equal(t, []string{"first", "second", "third"}, order)
}

func TestListenersAreSynchronous(t *testing.T) {
	t.Parallel()

	ft := &fakeTransport{responses: []*transport.Response{jsonResponse(200, `{}`)}}
	s := newFakeSchema(t, ft)

	r := s.New(map[string]any{"id": 5})
	fired := false
	r.On(EventUpdate, func(*Record) { fired = true })

	require.NoError(t, r.Update(context.Background()))
	// The event is observable by the time the operation returns.
	assert.True(t, fired)
}

func TestNoEventsOnFailure(t *testing.T) {
	t.Parallel()

	ft := &fakeTransport{responses: []*transport.Response{
		textResponse(500, "boom"),
		textResponse(500, "boom"),
	}}
	s := newFakeSchema(t, ft)

	r := s.New(map[string]any{"id": 5, "name": "a"})
	updates := countEvents(r, EventUpdate)
	destroys := countEvents(r, EventDestroy)

	require.Error(t, r.Update(context.Background()))
	require.Error(t, r.Destroy(context.Background()))

	assert.Equal(t, 0, *updates)
	assert.Equal(t, 0, *destroys)
}

func TestListenerSeesReconciledState(t *testing.T) {
	t.Parallel()

	ft := &fakeTransport{responses: []*transport.Response{jsonResponse(201, `{"id":9}`)}}
	s := newFakeSchema(t, ft)

	r := s.New(map[string]any{"name": "a"})
	var primaryDuringEvent any
	var dirtyDuringEvent bool
	r.On(EventSave, func(rec *Record) {
		primaryDuringEvent = rec.Primary()
		dirtyDuringEvent = rec.Changed()
	})

	require.NoError(t, r.Save(context.Background()))
	assert.Equal(t, float64(9), primaryDuringEvent)
	assert.False(t, dirtyDuringEvent)
}

func TestNilListenerIgnored(t *testing.T) {
	t.Parallel()

	ft := &fakeTransport{responses: []*transport.Response{jsonResponse(200, `{}`)}}
	s := newFakeSchema(t, ft)

	r := s.New(map[string]any{"id": 5})
	r.On(EventUpdate, nil)
	require.NoError(t, r.Update(context.Background()))
}
