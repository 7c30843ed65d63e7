package locker

import (
	"fmt"
	"strconv"
	"strings"

	"govlock/coin"
	"govlock/sdk"
)

// PowerEntry is one voting power snapshot: from Height on, the owner held Power.
type PowerEntry struct {
	Power  coin.Amount
	Height uint64
}

// getHead reads the decimal counter of the newest entry. ok is false when no history exists.
func getHead(st sdk.State, owner sdk.Address, vdenom string) (uint64, bool) {
	ptr := st.Get(powerHeadKey(owner, vdenom))
	if ptr == nil || *ptr == "" {
		return 0, false
	}
	n, err := strconv.ParseUint(*ptr, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

func setHead(st sdk.State, owner sdk.Address, vdenom string, n uint64) {
	st.Set(powerHeadKey(owner, vdenom), strconv.FormatUint(n, 10))
}

// loadPowerEntry parses the {power}_{height} format.
func loadPowerEntry(st sdk.State, owner sdk.Address, vdenom string, seq uint64) (*PowerEntry, error) {
	ptr := st.Get(powerEntryKey(owner, vdenom, seq))
	if ptr == nil {
		return nil, nil
	}
	power, height, ok := strings.Cut(*ptr, "_")
	if !ok {
		return nil, fmt.Errorf("%w: power entry %q", ErrCorruptState, *ptr)
	}
	p, err := coin.ParseAmount(power)
	if err != nil {
		return nil, fmt.Errorf("%w: power entry: %v", ErrCorruptState, err)
	}
	h, err := strconv.ParseUint(height, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: power entry: %v", ErrCorruptState, err)
	}
	return &PowerEntry{Power: p, Height: h}, nil
}

// recordPower appends a snapshot. Several changes within one block collapse
// into the last entry so a lookup at that height sees the final value.
func recordPower(st sdk.State, owner sdk.Address, vdenom string, height uint64, power coin.Amount) error {
	value := power.String() + "_" + strconv.FormatUint(height, 10)
	head, ok := getHead(st, owner, vdenom)
	if ok {
		last, err := loadPowerEntry(st, owner, vdenom, head)
		if err != nil {
			return err
		}
		if last != nil && last.Height == height {
			st.Set(powerEntryKey(owner, vdenom, head), value)
			return nil
		}
		if last != nil && last.Power.Equal(power) {
			return nil
		}
		head++
	}
	st.Set(powerEntryKey(owner, vdenom, head), value)
	setHead(st, owner, vdenom, head)
	return nil
}

// powerAt searches backwards from the head for the first snapshot at or
// before height. No snapshot means the owner held nothing yet.
func powerAt(st sdk.State, owner sdk.Address, vdenom string, height uint64) (coin.Amount, error) {
	head, ok := getHead(st, owner, vdenom)
	if !ok {
		return coin.ZeroAmount(), nil
	}
	for i := int64(head); i >= 0; i-- {
		entry, err := loadPowerEntry(st, owner, vdenom, uint64(i))
		if err != nil {
			return coin.Amount{}, err
		}
		if entry == nil {
			continue
		}
		if entry.Height <= height {
			return entry.Power, nil
		}
	}
	return coin.ZeroAmount(), nil
}

// lockedPower sums the vtoken amount of every Locked position minting vdenom.
func lockedPower(t *TokenInfo, vdenom string) (coin.Amount, error) {
	total := coin.ZeroAmount()
	if t == nil {
		return total, nil
	}
	for _, v := range t.VTokens {
		if v.Status != StatusLocked || v.VToken.Denom != vdenom {
			continue
		}
		var err error
		if total, err = total.Add(v.VToken.Amount); err != nil {
			return coin.Amount{}, err
		}
	}
	return total, nil
}
