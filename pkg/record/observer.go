package record

import (
	"sync/atomic"
	"time"
)

// Observer defines schema-level hooks for observability. Unlike per-record
// event listeners, one observer sees every record of a schema, which makes
// it the place to collect metrics or feed an observability pipeline.
type Observer interface {
	// OnCreate is called after a successful create.
	OnCreate(schema, id string, duration time.Duration)

	// OnUpdate is called after a successful update.
	OnUpdate(schema, id string, duration time.Duration)

	// OnDestroy is called after a confirmed deletion.
	OnDestroy(schema, id string, duration time.Duration)

	// OnFetch is called after a successful fetch.
	OnFetch(schema, id string, duration time.Duration)

	// OnError is called when an operation fails, including validation
	// failures that never reach the transport.
	OnError(schema, operation string, err error)
}

// NoopObserver ignores every hook.
type NoopObserver struct{}

func (n *NoopObserver) OnCreate(schema, id string, duration time.Duration)  {}
func (n *NoopObserver) OnUpdate(schema, id string, duration time.Duration)  {}
func (n *NoopObserver) OnDestroy(schema, id string, duration time.Duration) {}
func (n *NoopObserver) OnFetch(schema, id string, duration time.Duration)   {}
func (n *NoopObserver) OnError(schema, operation string, err error)         {}

// MetricsObserver counts operations with atomic counters. Safe for use by
// multiple goroutines even though individual records are not.
type MetricsObserver struct {
	createCount    atomic.Int64
	updateCount    atomic.Int64
	destroyCount   atomic.Int64
	fetchCount     atomic.Int64
	errorCount     atomic.Int64
	totalLatencyNs atomic.Int64
}

// NewMetricsObserver creates a metrics observer with zeroed counters.
func NewMetricsObserver() *MetricsObserver {
	return &MetricsObserver{}
}

func (m *MetricsObserver) OnCreate(schema, id string, duration time.Duration) {
	m.createCount.Add(1)
	m.totalLatencyNs.Add(int64(duration))
}

func (m *MetricsObserver) OnUpdate(schema, id string, duration time.Duration) {
	m.updateCount.Add(1)
	m.totalLatencyNs.Add(int64(duration))
}

func (m *MetricsObserver) OnDestroy(schema, id string, duration time.Duration) {
	m.destroyCount.Add(1)
	m.totalLatencyNs.Add(int64(duration))
}

func (m *MetricsObserver) OnFetch(schema, id string, duration time.Duration) {
	m.fetchCount.Add(1)
	m.totalLatencyNs.Add(int64(duration))
}

func (m *MetricsObserver) OnError(schema, operation string, err error) {
	m.errorCount.Add(1)
}

// Snapshot returns a point-in-time copy of the counters.
func (m *MetricsObserver) Snapshot() MetricsSnapshot {
	return MetricsSnapshot{
		CreateCount:  m.createCount.Load(),
		UpdateCount:  m.updateCount.Load(),
		DestroyCount: m.destroyCount.Load(),
		FetchCount:   m.fetchCount.Load(),
		ErrorCount:   m.errorCount.Load(),
		TotalLatency: time.Duration(m.totalLatencyNs.Load()),
	}
}

// MetricsSnapshot is a point-in-time view of a MetricsObserver.
type MetricsSnapshot struct {
	CreateCount  int64         `json:"createCount"`
	UpdateCount  int64         `json:"updateCount"`
	DestroyCount int64         `json:"destroyCount"`
	FetchCount   int64         `json:"fetchCount"`
	ErrorCount   int64         `json:"errorCount"`
	TotalLatency time.Duration `json:"totalLatencyNs"`
}

// TotalOperations returns the count of successful operations.
func (s MetricsSnapshot) TotalOperations() int64 {
	return s.CreateCount + s.UpdateCount + s.DestroyCount + s.FetchCount
}
