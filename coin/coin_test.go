package coin

import (
	"errors"
	"math/big"
	"testing"

	"github.com/CosmWasm/tinyjson/jlexer"
	"github.com/CosmWasm/tinyjson/jwriter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const maxU128 = "340282366920938463463374607431768211455"

// TestAmountBounds checks the u128 edges so overflow never wraps silently.
func TestAmountBounds(t *testing.T) {
	max := MustParseAmount(maxU128)
	_, err := max.Add(NewAmount(1))
	assert.True(t, errors.Is(err, ErrOverflow))

	_, err = ParseAmount("340282366920938463463374607431768211456")
	assert.True(t, errors.Is(err, ErrOverflow))

	_, err = NewAmount(1).Sub(NewAmount(2))
	assert.True(t, errors.Is(err, ErrUnderflow))

	_, err = max.Mul(NewAmount(2))
	assert.True(t, errors.Is(err, ErrOverflow))

	sum, err := NewAmount(40).Add(NewAmount(2))
	require.NoError(t, err)
	assert.Equal(t, "42", sum.String())
}

// TestAmountBytes checks the 16 byte state encoding keeps big values intact.
func TestAmountBytes(t *testing.T) {
	max := MustParseAmount(maxU128)
	back, err := AmountFromBytes(max.Bytes())
	require.NoError(t, err)
	assert.True(t, back.Equal(max))

	_, err = AmountFromBytes([]byte{1, 2})
	assert.Error(t, err)

	_, err = AmountFromBig(big.NewInt(-1))
	assert.True(t, errors.Is(err, ErrUnderflow))
}

// TestDecimalMulFloor checks the weight conversion truncates the way the locker expects.
func TestDecimalMulFloor(t *testing.T) {
	w := MustParseDecimal("0.25")
	got, err := w.MulAmountFloor(NewAmount(100))
	require.NoError(t, err)
	assert.Equal(t, "25", got.String())

	got, err = w.MulAmountFloor(NewAmount(3))
	require.NoError(t, err)
	assert.Equal(t, "0", got.String())

	got, err = MustParseDecimal("0.333333333333333333").MulAmountFloor(NewAmount(1_000_000))
	require.NoError(t, err)
	assert.Equal(t, "333333", got.String())

	got, err = OneDecimal().MulAmountFloor(MustParseAmount(maxU128))
	require.NoError(t, err)
	assert.Equal(t, maxU128, got.String())
}

// TestDecimalMulCeil checks the round-up used for votes needed (8 of 15 at 50%).
func TestDecimalMulCeil(t *testing.T) {
	got, err := Percent(50).MulAmountCeil(NewAmount(15))
	require.NoError(t, err)
	assert.Equal(t, "8", got.String())

	got, err = Percent(50).MulAmountCeil(NewAmount(16))
	require.NoError(t, err)
	assert.Equal(t, "8", got.String())
}

func TestParseDecimalRejectsNegative(t *testing.T) {
	_, err := ParseDecimal("-0.1")
	assert.True(t, errors.Is(err, ErrInvalidDecimal))
	_, err = ParseDecimal("abc")
	assert.True(t, errors.Is(err, ErrInvalidDecimal))
}

// TestCoinsAddSub checks projection maintenance drops empty entries.
func TestCoinsAddSub(t *testing.T) {
	var cs Coins
	cs, err := cs.Add(NewCoin("a", NewAmount(10)))
	require.NoError(t, err)
	cs, err = cs.Add(NewCoin("b", NewAmount(5)))
	require.NoError(t, err)
	cs, err = cs.Add(NewCoin("a", NewAmount(1)))
	require.NoError(t, err)
	assert.Equal(t, "11a,5b", cs.String())

	cs, err = cs.Sub(NewCoin("a", NewAmount(11)))
	require.NoError(t, err)
	assert.Equal(t, "5b", cs.String())

	_, err = cs.Sub(NewCoin("b", NewAmount(6)))
	assert.True(t, errors.Is(err, ErrUnderflow))

	_, err = cs.Sub(NewCoin("zzz", NewAmount(1)))
	assert.True(t, errors.Is(err, ErrDenomMissing))
}

func TestParseCoin(t *testing.T) {
	c, err := ParseCoin("100TKN")
	require.NoError(t, err)
	assert.Equal(t, "TKN", c.Denom)
	assert.Equal(t, "100", c.Amount.String())

	_, err = ParseCoin("TKN")
	assert.Error(t, err)
	_, err = ParseCoin("100")
	assert.Error(t, err)

	cs, err := ParseCoins("1a, 2b")
	require.NoError(t, err)
	assert.Len(t, cs, 2)
}

// TestCoinsJSON checks amounts stay strings on the wire.
func TestCoinsJSON(t *testing.T) {
	cs := Coins{NewCoin("TKN", MustParseAmount(maxU128))}
	w := jwriter.Writer{}
	cs.MarshalTinyJSON(&w)
	raw, err := w.BuildBytes()
	require.NoError(t, err)
	assert.JSONEq(t, `[{"denom":"TKN","amount":"`+maxU128+`"}]`, string(raw))

	var back Coins
	l := jlexer.Lexer{Data: raw}
	back.UnmarshalTinyJSON(&l)
	require.NoError(t, l.Error())
	assert.Equal(t, cs, back)

	bad := jlexer.Lexer{Data: []byte(`[{"denom":"TKN","amount":"-1"}]`)}
	back.UnmarshalTinyJSON(&bad)
	assert.Error(t, bad.Error())
}

func TestCoinsSingle(t *testing.T) {
	_, ok := Coins{}.Single()
	assert.False(t, ok)
	c, ok := Coins{NewCoin("a", NewAmount(1))}.Single()
	assert.True(t, ok)
	assert.Equal(t, "1a", c.String())
	_, ok = Coins{NewCoin("a", NewAmount(1)), NewCoin("b", NewAmount(1))}.Single()
	assert.False(t, ok)
}
