package coin

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrEmptyDenom   = errors.New("empty denom")
	ErrInvalidCoin  = errors.New("invalid coin")
	ErrDenomMissing = errors.New("denom not present")
)

// Coin pairs a denomination with an amount.
type Coin struct {
	Denom  string
	Amount Amount
}

// NewCoin is the short constructor used all over the tests.
// Example payload: coin.NewCoin("TKN", coin.NewAmount(100))
func NewCoin(denom string, amount Amount) Coin {
	return Coin{Denom: denom, Amount: amount}
}

// ParseCoin reads the "100TKN" notation the cli accepts.
// Example payload: coin.ParseCoin("100ucmdx")
func ParseCoin(s string) (Coin, error) {
	s = strings.TrimSpace(s)
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == 0 || i == len(s) {
		return Coin{}, fmt.Errorf("%w: %q", ErrInvalidCoin, s)
	}
	amt, err := ParseAmount(s[:i])
	if err != nil {
		return Coin{}, err
	}
	return Coin{Denom: s[i:], Amount: amt}, nil
}

func (c Coin) String() string {
	return c.Amount.String() + c.Denom
}

func (c Coin) IsZero() bool { return c.Amount.IsZero() }

// Coins keeps at most one entry per denom. Order is insertion order, which
// matches how balances were projected on-chain.
type Coins []Coin

// ParseCoins splits a comma separated list like "10a,5b".
func ParseCoins(s string) (Coins, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	var out Coins
	for _, part := range strings.Split(s, ",") {
		c, err := ParseCoin(part)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

// AmountOf returns the amount for denom and whether the denom is present.
func (cs Coins) AmountOf(denom string) (Amount, bool) {
	for _, c := range cs {
		if c.Denom == denom {
			return c.Amount, true
		}
	}
	return Amount{}, false
}

// Add returns a copy with c merged in (create or add).
func (cs Coins) Add(c Coin) (Coins, error) {
	if c.Denom == "" {
		return nil, ErrEmptyDenom
	}
	out := make(Coins, len(cs), len(cs)+1)
	copy(out, cs)
	for i := range out {
		if out[i].Denom == c.Denom {
			sum, err := out[i].Amount.Add(c.Amount)
			if err != nil {
				return nil, err
			}
			out[i].Amount = sum
			return out, nil
		}
	}
	return append(out, c), nil
}

// Sub returns a copy with c taken out; entries that reach zero are dropped.
func (cs Coins) Sub(c Coin) (Coins, error) {
	out := make(Coins, 0, len(cs))
	found := false
	for _, cur := range cs {
		if cur.Denom != c.Denom {
			out = append(out, cur)
			continue
		}
		found = true
		rest, err := cur.Amount.Sub(c.Amount)
		if err != nil {
			return nil, err
		}
		if !rest.IsZero() {
			out = append(out, Coin{Denom: cur.Denom, Amount: rest})
		}
	}
	if !found {
		if c.Amount.IsZero() {
			return out, nil
		}
		return nil, fmt.Errorf("%w: %s", ErrDenomMissing, c.Denom)
	}
	return out, nil
}

// Single returns the only coin of cs, or false when cs holds zero or several entries.
func (cs Coins) Single() (Coin, bool) {
	if len(cs) != 1 {
		return Coin{}, false
	}
	return cs[0], true
}

// Filter keeps only the given denom.
func (cs Coins) Filter(denom string) Coins {
	var out Coins
	for _, c := range cs {
		if c.Denom == denom {
			out = append(out, c)
		}
	}
	return out
}

func (cs Coins) String() string {
	parts := make([]string, len(cs))
	for i, c := range cs {
		parts[i] = c.String()
	}
	return strings.Join(parts, ",")
}

// VDenom is the derivative denomination issued for locked principal.
// Example payload: coin.VDenom("TKN") // "vTKN"
func VDenom(denom string) string {
	return "v" + denom
}
