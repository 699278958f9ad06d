package record

// Event names a lifecycle moment that listeners can subscribe to.
type Event string

// Lifecycle events.
const (
	// EventSave fires after a successful create. Save calls that delegate
	// to Update fire EventUpdate only.
	EventSave Event = "save"
	// EventUpdate fires after a successful update.
	EventUpdate Event = "update"
	// EventDestroy fires after a confirmed deletion, before the destroyed
	// flag is set: listeners observe a record about to become terminal.
	EventDestroy Event = "destroy"
	// EventFetch fires after a successful fetch.
	EventFetch Event = "fetch"
)

// Listener receives a lifecycle event for the record it is subscribed to.
type Listener func(*Record)

// On subscribes a listener to an event. Listeners run synchronously, in
// subscription order, before the triggering operation returns.
func (r *Record) On(event Event, fn Listener) {
	if fn == nil {
		return
	}
	r.subs[event] = append(r.subs[event], fn)
}

func (r *Record) emit(event Event) {
	for _, fn := range r.subs[event] {
		fn(r)
	}
}
