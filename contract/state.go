package contract

// State is the kv storage boundary the engine runs against. Implementations
// must behave like a flat string map; Get returns nil for missing keys.
type State interface {
	Set(key, value string)
	Get(key string) *string
	Delete(key string)
}

// MemState is the map-backed State used by tests and the local sandbox.
type MemState struct {
	db map[string]string
}

func NewMemState() *MemState {
	return &MemState{db: make(map[string]string)}
}

func (m *MemState) Set(key, value string) {
	m.db[key] = value
}

func (m *MemState) Get(key string) *string {
	val, ok := m.db[key]
	if !ok {
		return nil
	}
	return &val
}

func (m *MemState) Delete(key string) {
	delete(m.db, key)
}

// Len reports the number of stored keys, handy for no-state-change asserts.
func (m *MemState) Len() int { return len(m.db) }

// Snapshot copies the full map so tests can diff before/after an operation.
func (m *MemState) Snapshot() map[string]string {
	out := make(map[string]string, len(m.db))
	for k, v := range m.db {
		out[k] = v
	}
	return out
}
