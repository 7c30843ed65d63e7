package store

import "govlock/sdk"

// Prefix scopes a state to one namespace, the way each contract only ever
// sees its own keys. Keys passed in and handed back are unprefixed.
type Prefix struct {
	base   sdk.State
	prefix string
}

// NewPrefix wraps base.
// Example payload: store.NewPrefix(mem, "contract:locker/")
func NewPrefix(base sdk.State, prefix string) *Prefix {
	return &Prefix{base: base, prefix: prefix}
}

func (p *Prefix) Set(key, value string) { p.base.Set(p.prefix+key, value) }

func (p *Prefix) Get(key string) *string { return p.base.Get(p.prefix + key) }

func (p *Prefix) Delete(key string) { p.base.Delete(p.prefix + key) }

func (p *Prefix) Iterate(prefix string, reverse bool, fn func(key, value string) bool) {
	n := len(p.prefix)
	p.base.Iterate(p.prefix+prefix, reverse, func(k, v string) bool {
		return fn(k[n:], v)
	})
}
