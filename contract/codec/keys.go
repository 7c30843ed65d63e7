package codec

// Key builds a storage key from a one byte namespace and parts appended
// verbatim. Ids go in big-endian so prefix scans come back in id order.
type Key []byte

func NewKey(prefix byte) Key {
	return Key{prefix}
}

func (k Key) U64(x uint64) Key {
	return append(k,
		byte(x>>56),
		byte(x>>48),
		byte(x>>40),
		byte(x>>32),
		byte(x>>24),
		byte(x>>16),
		byte(x>>8),
		byte(x),
	)
}

// Str appends a length byte and the raw string so "ab"+"c" never collides with "a"+"bc".
// Strings longer than 255 bytes are rejected upstream by address validation.
func (k Key) Str(s string) Key {
	k = append(k, byte(len(s)))
	return append(k, s...)
}

// Tail appends s without a length byte; only for the last component.
func (k Key) Tail(s string) Key {
	return append(k, s...)
}

func (k Key) Byte(b byte) Key {
	return append(k, b)
}

func (k Key) String() string { return string(k) }

// DecodeU64 reads a big-endian id back out of a key at offset.
func DecodeU64(key string, offset int) (uint64, bool) {
	if len(key) < offset+8 {
		return 0, false
	}
	var x uint64
	for i := 0; i < 8; i++ {
		x = x<<8 | uint64(key[offset+i])
	}
	return x, true
}
