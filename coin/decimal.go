package coin

import (
	"errors"
	"fmt"

	sdkmath "cosmossdk.io/math"
)

var ErrInvalidDecimal = errors.New("invalid decimal")

// Decimal is an 18 place fixed-point number. Weights, thresholds and quorums
// all use it so every node computes the same truncation.
type Decimal struct {
	d sdkmath.LegacyDec
}

// ParseDecimal reads "0.25", "1", "0.333333333333333333".
// Example payload: coin.ParseDecimal("0.25")
func ParseDecimal(s string) (Decimal, error) {
	d, err := sdkmath.LegacyNewDecFromStr(s)
	if err != nil {
		return Decimal{}, fmt.Errorf("%w: %q: %v", ErrInvalidDecimal, s, err)
	}
	if d.IsNegative() {
		return Decimal{}, fmt.Errorf("%w: %q is negative", ErrInvalidDecimal, s)
	}
	return Decimal{d: d}, nil
}

// MustParseDecimal panics on bad input, meant for constants and tests.
func MustParseDecimal(s string) Decimal {
	d, err := ParseDecimal(s)
	if err != nil {
		panic(err)
	}
	return d
}

// Percent builds n/100.
// Example payload: coin.Percent(33)
func Percent(n int64) Decimal {
	return Decimal{d: sdkmath.LegacyNewDecWithPrec(n, 2)}
}

func OneDecimal() Decimal { return Decimal{d: sdkmath.LegacyOneDec()} }

func ZeroDecimal() Decimal { return Decimal{d: sdkmath.LegacyZeroDec()} }

func (d Decimal) dec() sdkmath.LegacyDec {
	if d.d.IsNil() {
		return sdkmath.LegacyZeroDec()
	}
	return d.d
}

func (d Decimal) String() string { return d.dec().String() }

func (d Decimal) IsZero() bool { return d.dec().IsZero() }

func (d Decimal) GT(o Decimal) bool { return d.dec().GT(o.dec()) }

func (d Decimal) LT(o Decimal) bool { return d.dec().LT(o.dec()) }

func (d Decimal) Equal(o Decimal) bool { return d.dec().Equal(o.dec()) }

// Sub is only used on values already known to be ordered (1 - threshold).
func (d Decimal) Sub(o Decimal) Decimal { return Decimal{d: d.dec().Sub(o.dec())} }

// MulAmountFloor computes floor(d * a) and fails if the result leaves u128.
// Example payload: coin.MustParseDecimal("0.25").MulAmountFloor(coin.NewAmount(100)) // 25
func (d Decimal) MulAmountFloor(a Amount) (Amount, error) {
	product := d.dec().MulInt(sdkmath.NewIntFromBigInt(a.BigInt())).TruncateInt()
	return AmountFromBig(product.BigInt())
}

// MulAmountCeil computes ceil(d * a), used for "votes needed" where 7.5 means 8.
func (d Decimal) MulAmountCeil(a Amount) (Amount, error) {
	product := d.dec().MulInt(sdkmath.NewIntFromBigInt(a.BigInt())).Ceil().TruncateInt()
	return AmountFromBig(product.BigInt())
}
