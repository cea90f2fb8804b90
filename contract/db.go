package contract

import (
	"encoding/json"
	"fmt"
)

////////////////////////////////////////////////////////////////////////////////
// State persistence
////////////////////////////////////////////////////////////////////////////////

// saveJSON marshals a record under key. Records are plain structs with
// string amounts, so marshaling cannot realistically fail; a failure here
// means a programming error and panics.
func saveJSON(s State, key string, v any) {
	raw, err := json.Marshal(v)
	if err != nil {
		panic(fmt.Sprintf("marshal %s: %v", key, err))
	}
	s.Set(key, string(raw))
}

// loadJSON unmarshals the record under key into out, reporting whether the
// key existed. Stored records were written by saveJSON, so bad JSON panics.
func loadJSON(s State, key string, out any) bool {
	raw := s.Get(key)
	if raw == nil {
		return false
	}
	if err := json.Unmarshal([]byte(*raw), out); err != nil {
		panic(fmt.Sprintf("corrupt record %s: %v", key, err))
	}
	return true
}

////////////////////////////////////////////////////////////////////////////////
// Write staging
////////////////////////////////////////////////////////////////////////////////

// stage buffers an operation's writes and events so they land all at once.
// Reads during an operation go straight to State; nothing consults the stage,
// so every operation must finish deciding before it starts writing.
type stage struct {
	keys   []string
	vals   []string
	events []string
}

func (st *stage) set(key, value string) {
	st.keys = append(st.keys, key)
	st.vals = append(st.vals, value)
}

func (st *stage) setJSON(key string, v any) {
	raw, err := json.Marshal(v)
	if err != nil {
		panic(fmt.Sprintf("marshal %s: %v", key, err))
	}
	st.set(key, string(raw))
}

func (st *stage) emit(msg string) {
	st.events = append(st.events, msg)
}

// flush applies the staged writes in order and replays the events.
func (st *stage) flush(s State, log Logger) {
	for i, key := range st.keys {
		s.Set(key, st.vals[i])
	}
	for _, ev := range st.events {
		log.Log(ev)
	}
}
