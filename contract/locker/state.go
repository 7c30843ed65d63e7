package locker

import (
	"fmt"

	"govlock/coin"
	"govlock/contract/codec"
	"govlock/sdk"
)

// ---- config

func loadConfig(st sdk.State) (Config, error) {
	raw := st.Get(configKey())
	if raw == nil {
		return Config{}, ErrNotInstantiated
	}
	return decodeConfig(*raw)
}

func saveConfig(st sdk.State, cfg *Config) {
	st.Set(configKey(), encodeConfig(cfg))
}

// ---- token info

// loadTokenInfo returns nil when the owner never locked anything.
func loadTokenInfo(st sdk.State, owner sdk.Address) (*TokenInfo, error) {
	raw := st.Get(tokenInfoKey(owner))
	if raw == nil {
		return nil, nil
	}
	t, err := decodeTokenInfo(*raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func saveTokenInfo(st sdk.State, t *TokenInfo) {
	st.Set(tokenInfoKey(t.Owner), encodeTokenInfo(t))
}

// ---- balance projections

func loadBalances(st sdk.State, kind Status, owner sdk.Address) (coin.Coins, bool, error) {
	raw := st.Get(balanceKey(kind, owner))
	if raw == nil {
		return nil, false, nil
	}
	cs, err := codec.NewStringReader(*raw).ReadCoins()
	if err != nil {
		return nil, false, fmt.Errorf("%w: balances: %v", ErrCorruptState, err)
	}
	return cs, true, nil
}

// saveBalances drops the key once the projection is empty so queries report NotFound again.
func saveBalances(st sdk.State, kind Status, owner sdk.Address, cs coin.Coins) {
	if len(cs) == 0 {
		st.Delete(balanceKey(kind, owner))
		return
	}
	w := codec.NewWriter()
	w.WriteCoins(cs)
	st.Set(balanceKey(kind, owner), w.String())
}

// balanceDelta is a pending change to one projection, applied after every check passed.
type balanceDelta struct {
	kind Status
	add  bool
	c    coin.Coin
}

// applyBalanceDeltas computes all new projections first and writes them only
// if every add/sub succeeded.
func applyBalanceDeltas(st sdk.State, owner sdk.Address, deltas []balanceDelta) error {
	next := map[Status]coin.Coins{}
	for _, d := range deltas {
		cur, ok := next[d.kind]
		if !ok {
			loaded, _, err := loadBalances(st, d.kind, owner)
			if err != nil {
				return err
			}
			cur = loaded
		}
		var err error
		if d.add {
			cur, err = cur.Add(d.c)
		} else {
			cur, err = cur.Sub(d.c)
		}
		if err != nil {
			return fmt.Errorf("%s projection: %w", d.kind, err)
		}
		next[d.kind] = cur
	}
	for _, kind := range []Status{StatusLocked, StatusUnlocking, StatusUnlocked} {
		if cs, ok := next[kind]; ok {
			saveBalances(st, kind, owner, cs)
		}
	}
	return nil
}

// ---- supply

func loadSupply(st sdk.State, vdenom string) (Supply, bool, error) {
	raw := st.Get(supplyKey(vdenom))
	if raw == nil {
		return Supply{}, false, nil
	}
	s, err := decodeSupply(*raw)
	return s, err == nil, err
}

func saveSupply(st sdk.State, vdenom string, s Supply) {
	st.Set(supplyKey(vdenom), encodeSupply(s))
}
