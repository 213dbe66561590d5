package storage

// NoopStore discards writes and reports every slot as absent. It stands in
// for durable storage in execution contexts that have none, where hydration
// must still succeed with empty state.
type NoopStore struct{}

// NewNoopStore returns the no-op medium.
func NewNoopStore() *NoopStore { return &NoopStore{} }

// Get always reports the slot as absent.
func (*NoopStore) Get(string) ([]byte, error) { return nil, ErrSlotNotFound }

// Set discards the write.
func (*NoopStore) Set(string, []byte) error { return nil }

// Delete is a no-op.
func (*NoopStore) Delete(string) error { return nil }
