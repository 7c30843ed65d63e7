package locker

import (
	"fmt"

	"govlock/coin"
	"govlock/sdk"
)

// LockingPeriod selects one of the four tiers fixed at instantiation.
type LockingPeriod uint8

const (
	T1 LockingPeriod = iota + 1
	T2
	T3
	T4
)

// Periods lists the tiers lowest first; tier fallback walks this order.
var Periods = []LockingPeriod{T1, T2, T3, T4}

func (p LockingPeriod) String() string {
	switch p {
	case T1:
		return "t1"
	case T2:
		return "t2"
	case T3:
		return "t3"
	case T4:
		return "t4"
	default:
		return fmt.Sprintf("t?(%d)", uint8(p))
	}
}

// ParseLockingPeriod accepts "t1".."t4" (and the upper case form).
// Example payload: locker.ParseLockingPeriod("t2")
func ParseLockingPeriod(s string) (LockingPeriod, error) {
	switch s {
	case "t1", "T1":
		return T1, nil
	case "t2", "T2":
		return T2, nil
	case "t3", "T3":
		return T3, nil
	case "t4", "T4":
		return T4, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidPeriod, s)
}

// Status of one VToken record. Locked records carry voting power; Unlocking
// waits out the cooldown; Unlocked is withdrawable.
type Status uint8

const (
	StatusLocked Status = iota
	StatusUnlocking
	StatusUnlocked
)

func (s Status) String() string {
	switch s {
	case StatusLocked:
		return "locked"
	case StatusUnlocking:
		return "unlocking"
	case StatusUnlocked:
		return "unlocked"
	default:
		return "unknown"
	}
}

func parseStatus(s string) (Status, error) {
	switch s {
	case "locked":
		return StatusLocked, nil
	case "unlocking":
		return StatusUnlocking, nil
	case "unlocked":
		return StatusUnlocked, nil
	}
	return 0, fmt.Errorf("unknown status %q", s)
}

// PeriodWeight is one tier: lock duration in seconds plus conversion weight in [0,1].
type PeriodWeight struct {
	Period uint64
	Weight coin.Decimal
}

// Config is the tier table plus the token id counter. The tiers never change
// after instantiate; NumTokens only grows.
type Config struct {
	T1           PeriodWeight
	T2           PeriodWeight
	T3           PeriodWeight
	T4           PeriodWeight
	UnlockPeriod uint64
	NumTokens    uint64
}

func (c Config) Tier(p LockingPeriod) (PeriodWeight, error) {
	switch p {
	case T1:
		return c.T1, nil
	case T2:
		return c.T2, nil
	case T3:
		return c.T3, nil
	case T4:
		return c.T4, nil
	}
	return PeriodWeight{}, fmt.Errorf("%w: %d", ErrInvalidPeriod, uint8(p))
}

// VToken is one (denom, tier) position of an owner.
type VToken struct {
	Token     coin.Coin
	VToken    coin.Coin
	Period    LockingPeriod
	StartTime uint64
	EndTime   uint64
	Status    Status
}

// TokenInfo is the per-owner record, the "nft" of the locker. It is not transferable.
type TokenInfo struct {
	Owner   sdk.Address
	VTokens []VToken
	TokenID uint64
}

// find returns the index of the (denom, period) position or -1.
func (t *TokenInfo) find(denom string, period LockingPeriod) int {
	for i := range t.VTokens {
		if t.VTokens[i].Token.Denom == denom && t.VTokens[i].Period == period {
			return i
		}
	}
	return -1
}

// Supply is kept per vdenom. VToken only ever grows; Token tracks the principal
// still in custody under the source denom.
type Supply struct {
	Token  coin.Amount
	VToken coin.Amount
}
