package store

import (
	"errors"
	"sort"

	"govlock/sdk"
)

var ErrReadOnly = errors.New("state is read only")

// Op is one buffered write. A nil Value is a delete.
type Op struct {
	Key   string
	Value *string
}

// Batcher is implemented by backends that can apply a set of writes atomically.
type Batcher interface {
	ApplyBatch(ops []Op) error
}

// Failer is implemented by backends whose reads can fail (disk, closed db).
// The error is sticky so the caller can abort after the fact.
type Failer interface {
	Err() error
}

// Cache buffers every write of one invocation on top of base. Nothing reaches
// base until Commit; Discard drops the buffer. Caches nest.
type Cache struct {
	base  sdk.State
	dirty map[string]*string
}

func NewCache(base sdk.State) *Cache {
	return &Cache{base: base, dirty: make(map[string]*string)}
}

func (c *Cache) Set(key, value string) {
	v := value
	c.dirty[key] = &v
}

func (c *Cache) Get(key string) *string {
	if v, ok := c.dirty[key]; ok {
		if v == nil {
			return nil
		}
		out := *v
		return &out
	}
	return c.base.Get(key)
}

func (c *Cache) Delete(key string) {
	c.dirty[key] = nil
}

// Iterate merges the buffered writes over base in key order.
func (c *Cache) Iterate(prefix string, reverse bool, fn func(key, value string) bool) {
	merged := make(map[string]string)
	c.base.Iterate(prefix, false, func(k, v string) bool {
		merged[k] = v
		return true
	})
	for k, v := range c.dirty {
		if len(k) < len(prefix) || k[:len(prefix)] != prefix {
			continue
		}
		if v == nil {
			delete(merged, k)
			continue
		}
		merged[k] = *v
	}
	keys := make([]string, 0, len(merged))
	for k := range merged {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	if reverse {
		for i, j := 0, len(keys)-1; i < j; i, j = i+1, j-1 {
			keys[i], keys[j] = keys[j], keys[i]
		}
	}
	for _, k := range keys {
		if !fn(k, merged[k]) {
			return
		}
	}
}

// Err surfaces a sticky read failure of the backend underneath.
func (c *Cache) Err() error {
	if f, ok := c.base.(Failer); ok {
		return f.Err()
	}
	return nil
}

// Ops lists the buffered writes in key order.
func (c *Cache) Ops() []Op {
	keys := make([]string, 0, len(c.dirty))
	for k := range c.dirty {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	ops := make([]Op, 0, len(keys))
	for _, k := range keys {
		ops = append(ops, Op{Key: k, Value: c.dirty[k]})
	}
	return ops
}

// Commit flushes the buffer into base, in one batch when base supports it.
func (c *Cache) Commit() error {
	if err := c.Err(); err != nil {
		return err
	}
	ops := c.Ops()
	if b, ok := c.base.(Batcher); ok {
		if err := b.ApplyBatch(ops); err != nil {
			return err
		}
	} else {
		for _, op := range ops {
			if op.Value == nil {
				c.base.Delete(op.Key)
				continue
			}
			c.base.Set(op.Key, *op.Value)
		}
	}
	c.Discard()
	return nil
}

func (c *Cache) Discard() {
	c.dirty = make(map[string]*string)
}

// ApplyBatch lets a cache sit under another cache.
func (c *Cache) ApplyBatch(ops []Op) error {
	for _, op := range ops {
		c.dirty[op.Key] = op.Value
	}
	return nil
}

// ReadOnly rejects writes; queries run against it so a buggy query handler
// cannot mutate committed state.
type ReadOnly struct {
	sdk.State
}

func (ReadOnly) Set(string, string) { panic(ErrReadOnly) }

func (ReadOnly) Delete(string) { panic(ErrReadOnly) }
