package domain

// Monitoring defines an interface for collecting worker state snapshots.
//
// Implementations of this interface can keep metrics in various ways, such as:
// - In-memory storage for debugging and tests.
// - Exporters for external systems like Prometheus.
type Monitoring interface {
	// SaveMetrics records a snapshot of a worker's state.
	// It is called from the worker goroutine on every observed transition and after every work unit.
	SaveMetrics(dto StateDTO)
}
