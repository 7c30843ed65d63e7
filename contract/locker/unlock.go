package locker

import (
	"govlock/coin"
	"govlock/sdk"
)

// pickUnlockTarget resolves the position Unlock works on. Without a tier the
// lowest tier that is not yet Unlocked wins.
func pickUnlockTarget(info *TokenInfo, denom string, period *LockingPeriod) (int, error) {
	if period != nil {
		idx := info.find(denom, *period)
		if idx < 0 {
			return -1, ErrNotFound
		}
		return idx, nil
	}
	sawUnlocked := false
	for _, p := range Periods {
		idx := info.find(denom, p)
		if idx < 0 {
			continue
		}
		if info.VTokens[idx].Status == StatusUnlocked {
			sawUnlocked = true
			continue
		}
		return idx, nil
	}
	if sawUnlocked {
		return -1, ErrAlreadyUnlocked
	}
	return -1, ErrNotFound
}

// cooldownEnd is end_time + unlock_period, pinned at max uint64.
func cooldownEnd(v *VToken, unlockPeriod uint64) uint64 {
	end := v.EndTime + unlockPeriod
	if end < v.EndTime {
		return ^uint64(0)
	}
	return end
}

// Unlock moves a matured position towards withdrawable. Past end_time it
// becomes Unlocking; once unlock_period has also passed it becomes Unlocked.
// Example payload: {"unlock":{"app_id":1,"denom":"TKN"}}
func Unlock(ctx *sdk.Context, msg UnlockMsg) (*sdk.Response, error) {
	cfg, err := loadConfig(ctx.State)
	if err != nil {
		return nil, err
	}
	owner := ctx.Sender()
	info, err := loadTokenInfo(ctx.State, owner)
	if err != nil {
		return nil, err
	}
	if info == nil {
		return nil, ErrNotFound
	}
	idx, err := pickUnlockTarget(info, msg.Denom, msg.LockingPeriod)
	if err != nil {
		return nil, err
	}
	pos := &info.VTokens[idx]
	now := ctx.Now()
	release := cooldownEnd(pos, cfg.UnlockPeriod)

	var deltas []balanceDelta
	from := pos.Status
	switch pos.Status {
	case StatusUnlocked:
		return nil, ErrAlreadyUnlocked
	case StatusLocked:
		if pos.EndTime >= now {
			return nil, ErrTimeNotOvered
		}
		if now < release {
			pos.Status = StatusUnlocking
		} else {
			pos.Status = StatusUnlocked
		}
	case StatusUnlocking:
		if now < release {
			return nil, ErrTimeNotOvered
		}
		pos.Status = StatusUnlocked
	}
	deltas = append(deltas,
		balanceDelta{kind: from, add: false, c: pos.Token},
		balanceDelta{kind: pos.Status, add: true, c: pos.Token},
	)

	var power coin.Amount
	if from == StatusLocked {
		if power, err = lockedPower(info, pos.VToken.Denom); err != nil {
			return nil, err
		}
	}

	if err := applyBalanceDeltas(ctx.State, owner, deltas); err != nil {
		return nil, err
	}
	saveTokenInfo(ctx.State, info)
	if from == StatusLocked {
		if err := recordPower(ctx.State, owner, pos.VToken.Denom, ctx.Height(), power); err != nil {
			return nil, err
		}
	}

	emitStatusEvent(ctx, owner, pos.Token.Denom, pos.Period, pos.Status)
	return sdk.NewResponse().
		AddAttribute("action", "unlock").
		AddAttribute("from", owner.String()).
		AddAttribute("status", pos.Status.String()), nil
}
