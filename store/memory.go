package store

import (
	"sort"
	"strings"
)

// Memory is the map backed state used by tests and by the cli when no data
// dir is configured. Iteration sorts the matching keys on every call.
type Memory struct {
	db map[string]string
}

func NewMemory() *Memory {
	return &Memory{db: make(map[string]string)}
}

func (m *Memory) Set(key, value string) {
	m.db[key] = value
}

func (m *Memory) Get(key string) *string {
	val, ok := m.db[key]
	if !ok {
		return nil
	}
	return &val
}

func (m *Memory) Delete(key string) {
	delete(m.db, key)
}

func (m *Memory) Iterate(prefix string, reverse bool, fn func(key, value string) bool) {
	keys := make([]string, 0)
	for k := range m.db {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	if reverse {
		for i, j := 0, len(keys)-1; i < j; i, j = i+1, j-1 {
			keys[i], keys[j] = keys[j], keys[i]
		}
	}
	for _, k := range keys {
		v, ok := m.db[k]
		if !ok {
			continue
		}
		if !fn(k, v) {
			return
		}
	}
}

// ApplyBatch writes all ops; a nil value deletes. Memory cannot fail halfway.
func (m *Memory) ApplyBatch(ops []Op) error {
	for _, op := range ops {
		if op.Value == nil {
			delete(m.db, op.Key)
			continue
		}
		m.db[op.Key] = *op.Value
	}
	return nil
}

func (m *Memory) Len() int { return len(m.db) }
