package codec

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"govlock/coin"
)

// TestRecordRoundTrip checks field order survives a write and read so stored records stay readable.
func TestRecordRoundTrip(t *testing.T) {
	limit := uint64(42)
	w := NewWriter()
	w.WriteBool(true)
	w.WriteUint64(1 << 40)
	w.WriteString("alice")
	w.WriteAmount(coin.MustParseAmount("340282366920938463463374607431768211455"))
	w.WriteDecimal(coin.MustParseDecimal("0.25"))
	w.WriteCoins(coin.Coins{coin.NewCoin("TKN", coin.NewAmount(5))})
	w.WriteOptionalUint64(&limit)
	w.WriteOptionalUint64(nil)

	r := NewReader(w.Bytes())
	b, err := r.ReadBool()
	require.NoError(t, err)
	assert.True(t, b)
	n, err := r.ReadUint64()
	require.NoError(t, err)
	assert.Equal(t, uint64(1<<40), n)
	s, err := r.ReadString()
	require.NoError(t, err)
	assert.Equal(t, "alice", s)
	a, err := r.ReadAmount()
	require.NoError(t, err)
	assert.Equal(t, "340282366920938463463374607431768211455", a.String())
	d, err := r.ReadDecimal()
	require.NoError(t, err)
	assert.True(t, d.Equal(coin.MustParseDecimal("0.25")))
	cs, err := r.ReadCoins()
	require.NoError(t, err)
	assert.Equal(t, "5TKN", cs.String())
	opt, err := r.ReadOptionalUint64()
	require.NoError(t, err)
	require.NotNil(t, opt)
	assert.Equal(t, limit, *opt)
	opt, err = r.ReadOptionalUint64()
	require.NoError(t, err)
	assert.Nil(t, opt)
	assert.True(t, r.Done())

	_, err = r.ReadUint64()
	assert.True(t, errors.Is(err, ErrUnexpectedEOF))
}

func TestTruncatedString(t *testing.T) {
	w := NewWriter()
	w.WriteString("hello")
	r := NewReader(w.Bytes()[:3])
	_, err := r.ReadString()
	assert.ErrorIs(t, err, ErrUnexpectedEOF)
}

// TestKeysSortById checks big-endian ids so prefix scans list ids ascending.
func TestKeysSortById(t *testing.T) {
	k1 := NewKey(0x10).U64(1).String()
	k2 := NewKey(0x10).U64(256).String()
	assert.Less(t, k1, k2)

	id, ok := DecodeU64(k2, 1)
	assert.True(t, ok)
	assert.Equal(t, uint64(256), id)

	assert.NotEqual(t, NewKey(1).Str("ab").Tail("c").String(), NewKey(1).Str("a").Tail("bc").String())
}

func TestVariant(t *testing.T) {
	name, body, err := Variant([]byte(`{"lock":{"app_id":1,"locking_period":"t1"}}`))
	require.NoError(t, err)
	assert.Equal(t, "lock", name)
	assert.JSONEq(t, `{"app_id":1,"locking_period":"t1"}`, string(body))

	_, _, err = Variant([]byte(`{"a":{},"b":{}}`))
	assert.ErrorIs(t, err, ErrInvalidJSON)
	_, _, err = Variant([]byte(`{}`))
	assert.ErrorIs(t, err, ErrInvalidJSON)
	_, _, err = Variant([]byte(`nope`))
	assert.ErrorIs(t, err, ErrInvalidJSON)

	name, body, err = Variant([]byte(`"yes"`))
	require.NoError(t, err)
	assert.Equal(t, "yes", name)
	assert.Nil(t, body)
}
