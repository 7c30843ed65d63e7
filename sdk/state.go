package sdk

// State is the contract's view of the key-value store. Keys and values are raw
// byte strings; every contract lives in its own namespace.
type State interface {
	Set(key, value string)
	Get(key string) *string
	Delete(key string)
	// Iterate walks keys starting with prefix in byte order (or reverse order)
	// until fn returns false.
	Iterate(prefix string, reverse bool, fn func(key, value string) bool)
}
