package web

import (
	"sync/atomic"
	"time"
)

// Metrics collects in-memory server metrics using atomic counters.
type Metrics struct {
	startTime         time.Time
	requests          atomic.Int64
	serverErrors      atomic.Int64
	clientErrors      atomic.Int64
	mutationsAccepted atomic.Int64
	mutationsRejected atomic.Int64
	snapshotRefreshes atomic.Int64
}

// MetricsSnapshot is a point-in-time view of server metrics.
type MetricsSnapshot struct {
	UptimeSeconds     float64 `json:"uptime_seconds"`
	Requests          int64   `json:"requests"`
	ServerErrors      int64   `json:"server_errors"`
	ClientErrors      int64   `json:"client_errors"`
	MutationsAccepted int64   `json:"mutations_accepted"`
	MutationsRejected int64   `json:"mutations_rejected"`
	SnapshotRefreshes int64   `json:"snapshot_refreshes"`
}

// NewMetrics creates a new Metrics instance with the current time as start.
func NewMetrics() *Metrics {
	return &Metrics{startTime: time.Now()}
}

// RecordRequest increments the total request counter.
func (m *Metrics) RecordRequest() {
	m.requests.Add(1)
}

// RecordError increments the server error (5xx) counter.
func (m *Metrics) RecordError() {
	m.serverErrors.Add(1)
}

// RecordClientError increments the client error (4xx) counter.
func (m *Metrics) RecordClientError() {
	m.clientErrors.Add(1)
}

// RecordMutationAccepted increments the accepted mutation counter.
func (m *Metrics) RecordMutationAccepted() {
	m.mutationsAccepted.Add(1)
}

// RecordMutationRejected increments the rejected mutation counter.
func (m *Metrics) RecordMutationRejected() {
	m.mutationsRejected.Add(1)
}

// RecordSnapshotRefresh increments the confirmed-snapshot refresh counter.
func (m *Metrics) RecordSnapshotRefresh() {
	m.snapshotRefreshes.Add(1)
}

// Snapshot returns a point-in-time copy of the metrics.
func (m *Metrics) Snapshot() MetricsSnapshot {
	return MetricsSnapshot{
		UptimeSeconds:     time.Since(m.startTime).Seconds(),
		Requests:          m.requests.Load(),
		ServerErrors:      m.serverErrors.Load(),
		ClientErrors:      m.clientErrors.Load(),
		MutationsAccepted: m.mutationsAccepted.Load(),
		MutationsRejected: m.mutationsRejected.Load(),
		SnapshotRefreshes: m.snapshotRefreshes.Load(),
	}
}
