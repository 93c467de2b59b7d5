package domain

// Pool is the configuration of a worker pool.
type Pool struct {
	// ID identifies the pool in logs. Defaults to DEFAULT_POOL_ID.
	ID string
}
