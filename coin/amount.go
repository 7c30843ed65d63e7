package coin

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/holiman/uint256"
)

// maxBits caps every Amount at u128 even though the backing word is 256 bits wide.
const maxBits = 128

var (
	ErrOverflow      = errors.New("arithmetic overflow")
	ErrUnderflow     = errors.New("arithmetic underflow")
	ErrInvalidAmount = errors.New("invalid amount")
)

// Amount is an unsigned integer bounded to 128 bits. The zero value is 0 and
// every arithmetic helper returns a fresh value, so Amounts can be copied freely.
type Amount struct {
	v uint256.Int
}

// NewAmount wraps a plain uint64.
// Example payload: coin.NewAmount(100)
func NewAmount(n uint64) Amount {
	var a Amount
	a.v.SetUint64(n)
	return a
}

// ZeroAmount is spelled out for readability at call sites.
func ZeroAmount() Amount { return Amount{} }

// ParseAmount reads a base-10 string such as "1000000".
// Example payload: coin.ParseAmount("25")
func ParseAmount(s string) (Amount, error) {
	if s == "" {
		return Amount{}, fmt.Errorf("%w: empty", ErrInvalidAmount)
	}
	v, err := uint256.FromDecimal(s)
	if err != nil {
		return Amount{}, fmt.Errorf("%w: %q: %v", ErrInvalidAmount, s, err)
	}
	if v.BitLen() > maxBits {
		return Amount{}, fmt.Errorf("%w: %q exceeds 128 bits", ErrOverflow, s)
	}
	return Amount{v: *v}, nil
}

// MustParseAmount is the test/config shortcut that panics on bad input.
func MustParseAmount(s string) Amount {
	a, err := ParseAmount(s)
	if err != nil {
		panic(err)
	}
	return a
}

// AmountFromBig converts a non-negative big.Int, rejecting anything outside u128.
func AmountFromBig(b *big.Int) (Amount, error) {
	if b.Sign() < 0 {
		return Amount{}, fmt.Errorf("%w: negative %s", ErrUnderflow, b.String())
	}
	v, overflow := uint256.FromBig(b)
	if overflow || v.BitLen() > maxBits {
		return Amount{}, fmt.Errorf("%w: %s exceeds 128 bits", ErrOverflow, b.String())
	}
	return Amount{v: *v}, nil
}

// AmountFromBytes decodes the 16 byte big-endian form used by the state codec.
func AmountFromBytes(b []byte) (Amount, error) {
	if len(b) != 16 {
		return Amount{}, fmt.Errorf("%w: want 16 bytes, got %d", ErrInvalidAmount, len(b))
	}
	var a Amount
	a.v.SetBytes(b)
	return a, nil
}

// Bytes returns the fixed 16 byte big-endian encoding.
func (a Amount) Bytes() []byte {
	full := a.v.Bytes32()
	out := make([]byte, 16)
	copy(out, full[16:])
	return out
}

func (a Amount) BigInt() *big.Int { return a.v.ToBig() }

func (a Amount) String() string { return a.v.Dec() }

func (a Amount) IsZero() bool { return a.v.IsZero() }

// Uint64 reports the value and whether it fit.
func (a Amount) Uint64() (uint64, bool) {
	return a.v.Uint64(), a.v.IsUint64()
}

func (a Amount) Cmp(b Amount) int { return a.v.Cmp(&b.v) }

func (a Amount) Equal(b Amount) bool { return a.v.Eq(&b.v) }

func (a Amount) LT(b Amount) bool { return a.v.Lt(&b.v) }

func (a Amount) GT(b Amount) bool { return a.v.Gt(&b.v) }

func (a Amount) GTE(b Amount) bool { return !a.v.Lt(&b.v) }

func (a Amount) LTE(b Amount) bool { return !a.v.Gt(&b.v) }

// Add returns a+b or ErrOverflow when the sum leaves u128.
func (a Amount) Add(b Amount) (Amount, error) {
	var out Amount
	if _, overflow := out.v.AddOverflow(&a.v, &b.v); overflow || out.v.BitLen() > maxBits {
		return Amount{}, fmt.Errorf("%w: %s + %s", ErrOverflow, a, b)
	}
	return out, nil
}

// Sub returns a-b or ErrUnderflow when b > a.
func (a Amount) Sub(b Amount) (Amount, error) {
	var out Amount
	if _, underflow := out.v.SubOverflow(&a.v, &b.v); underflow {
		return Amount{}, fmt.Errorf("%w: %s - %s", ErrUnderflow, a, b)
	}
	return out, nil
}

// Mul returns a*b or ErrOverflow.
func (a Amount) Mul(b Amount) (Amount, error) {
	var out Amount
	if _, overflow := out.v.MulOverflow(&a.v, &b.v); overflow || out.v.BitLen() > maxBits {
		return Amount{}, fmt.Errorf("%w: %s * %s", ErrOverflow, a, b)
	}
	return out, nil
}

// SaturatingSub floors at zero. Only used where a negative remainder means "nothing left",
// never for balances.
func (a Amount) SaturatingSub(b Amount) Amount {
	if a.LTE(b) {
		return Amount{}
	}
	out, _ := a.Sub(b)
	return out
}

// Min picks the smaller of two amounts.
func Min(a, b Amount) Amount {
	if a.LT(b) {
		return a
	}
	return b
}
