package host

import (
	"errors"
	"fmt"

	"govlock/coin"
	"govlock/contract/codec"
	"govlock/sdk"
)

var ErrInsufficientBalance = errors.New("insufficient balance")

const (
	kBalance byte = 0x01
	kSupply  byte = 0x02
)

func balanceKey(addr sdk.Address, denom string) string {
	return codec.NewKey(kBalance).Str(addr.String()).Tail(denom).String()
}

func balancePrefix(addr sdk.Address) string {
	return codec.NewKey(kBalance).Str(addr.String()).String()
}

func supplyKey(denom string) string {
	return codec.NewKey(kSupply).Tail(denom).String()
}

// Bank is the custody ledger: per account balances and per denom supply,
// stored as decimal strings in the bank namespace.
type Bank struct {
	st sdk.State
}

func NewBank(st sdk.State) *Bank {
	return &Bank{st: st}
}

func (b *Bank) read(key string) (coin.Amount, error) {
	raw := b.st.Get(key)
	if raw == nil {
		return coin.ZeroAmount(), nil
	}
	return coin.ParseAmount(*raw)
}

func (b *Bank) write(key string, a coin.Amount) {
	if a.IsZero() {
		b.st.Delete(key)
		return
	}
	b.st.Set(key, a.String())
}

func (b *Bank) Balance(addr sdk.Address, denom string) (coin.Amount, error) {
	return b.read(balanceKey(addr, denom))
}

// Balances lists every non-zero balance of addr sorted by denom.
func (b *Bank) Balances(addr sdk.Address) (coin.Coins, error) {
	prefix := balancePrefix(addr)
	var out coin.Coins
	var err error
	b.st.Iterate(prefix, false, func(key, value string) bool {
		var a coin.Amount
		if a, err = coin.ParseAmount(value); err != nil {
			return false
		}
		out = append(out, coin.NewCoin(key[len(prefix):], a))
		return true
	})
	return out, err
}

func (b *Bank) Supply(denom string) (coin.Amount, error) {
	return b.read(supplyKey(denom))
}

// Mint credits new coins to addr and grows the supply.
func (b *Bank) Mint(addr sdk.Address, cs coin.Coins) error {
	for _, c := range cs {
		bal, err := b.Balance(addr, c.Denom)
		if err != nil {
			return err
		}
		supply, err := b.Supply(c.Denom)
		if err != nil {
			return err
		}
		if bal, err = bal.Add(c.Amount); err != nil {
			return err
		}
		if supply, err = supply.Add(c.Amount); err != nil {
			return err
		}
		b.write(balanceKey(addr, c.Denom), bal)
		b.write(supplyKey(c.Denom), supply)
	}
	return nil
}

func (b *Bank) debit(addr sdk.Address, c coin.Coin) error {
	bal, err := b.Balance(addr, c.Denom)
	if err != nil {
		return err
	}
	if bal.LT(c.Amount) {
		return fmt.Errorf("%w: %s has %s%s, needs %s", ErrInsufficientBalance, addr, bal, c.Denom, c)
	}
	rest, err := bal.Sub(c.Amount)
	if err != nil {
		return err
	}
	b.write(balanceKey(addr, c.Denom), rest)
	return nil
}

// Send moves coins between accounts. A shortfall in any denom fails the
// whole send; the host discards the partial writes with the invocation.
func (b *Bank) Send(from, to sdk.Address, cs coin.Coins) error {
	for _, c := range cs {
		if c.IsZero() {
			continue
		}
		if err := b.debit(from, c); err != nil {
			return err
		}
		bal, err := b.Balance(to, c.Denom)
		if err != nil {
			return err
		}
		if bal, err = bal.Add(c.Amount); err != nil {
			return err
		}
		b.write(balanceKey(to, c.Denom), bal)
	}
	return nil
}

// Burn removes coins from an account and from the supply.
func (b *Bank) Burn(from sdk.Address, c coin.Coin) error {
	if err := b.debit(from, c); err != nil {
		return err
	}
	supply, err := b.Supply(c.Denom)
	if err != nil {
		return err
	}
	if supply, err = supply.Sub(c.Amount); err != nil {
		return err
	}
	b.write(supplyKey(c.Denom), supply)
	return nil
}
