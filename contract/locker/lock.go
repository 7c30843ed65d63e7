package locker

import (
	"fmt"

	"govlock/coin"
	"govlock/sdk"
)

// singleCoin enforces the one non-zero coin rule of Lock.
func singleCoin(funds coin.Coins) (coin.Coin, error) {
	switch {
	case len(funds) == 0:
		return coin.Coin{}, fmt.Errorf("%w: 0", ErrInsufficientFunds)
	case len(funds) > 1:
		return coin.Coin{}, ErrMultipleDenoms
	case funds[0].IsZero():
		return coin.Coin{}, fmt.Errorf("%w: 0", ErrInsufficientFunds)
	}
	return funds[0], nil
}

// Lock custodies the attached coin under the chosen tier and mints
// floor(weight * principal) vtokens. Adding to an existing Locked position
// restarts its clock for the whole balance.
// Example payload: {"lock":{"app_id":1,"locking_period":"t1"}} with funds 100TKN
func Lock(ctx *sdk.Context, msg LockMsg) (*sdk.Response, error) {
	deposit, err := singleCoin(ctx.Info.Funds)
	if err != nil {
		return nil, err
	}
	cfg, err := loadConfig(ctx.State)
	if err != nil {
		return nil, err
	}
	tier, err := cfg.Tier(msg.LockingPeriod)
	if err != nil {
		return nil, err
	}

	owner := ctx.Sender()
	info, err := loadTokenInfo(ctx.State, owner)
	if err != nil {
		return nil, err
	}
	newOwner := info == nil
	if newOwner {
		cfg.NumTokens++
		info = &TokenInfo{Owner: owner, TokenID: cfg.NumTokens}
	}

	now := ctx.Now()
	end := now + tier.Period
	if end < now {
		return nil, fmt.Errorf("%w: end time", coin.ErrOverflow)
	}
	vdenom := coin.VDenom(deposit.Denom)

	var issued coin.Amount
	if idx := info.find(deposit.Denom, msg.LockingPeriod); idx < 0 {
		minted, err := tier.Weight.MulAmountFloor(deposit.Amount)
		if err != nil {
			return nil, err
		}
		info.VTokens = append(info.VTokens, VToken{
			Token:     deposit,
			VToken:    coin.NewCoin(vdenom, minted),
			Period:    msg.LockingPeriod,
			StartTime: now,
			EndTime:   end,
			Status:    StatusLocked,
		})
		issued = minted
	} else {
		pos := &info.VTokens[idx]
		if pos.Status != StatusLocked {
			return nil, ErrNotLocked
		}
		total, err := pos.Token.Amount.Add(deposit.Amount)
		if err != nil {
			return nil, err
		}
		minted, err := tier.Weight.MulAmountFloor(total)
		if err != nil {
			return nil, err
		}
		if issued, err = minted.Sub(pos.VToken.Amount); err != nil {
			return nil, err
		}
		pos.Token.Amount = total
		pos.VToken.Amount = minted
		pos.StartTime = now
		pos.EndTime = end
	}

	supply, _, err := loadSupply(ctx.State, vdenom)
	if err != nil {
		return nil, err
	}
	if supply.VToken, err = supply.VToken.Add(issued); err != nil {
		return nil, err
	}
	if supply.Token, err = supply.Token.Add(deposit.Amount); err != nil {
		return nil, err
	}
	power, err := lockedPower(info, vdenom)
	if err != nil {
		return nil, err
	}

	// all checks passed, write
	if err := applyBalanceDeltas(ctx.State, owner, []balanceDelta{
		{kind: StatusLocked, add: true, c: deposit},
	}); err != nil {
		return nil, err
	}
	if newOwner {
		saveConfig(ctx.State, &cfg)
	}
	saveTokenInfo(ctx.State, info)
	saveSupply(ctx.State, vdenom, supply)
	if err := recordPower(ctx.State, owner, vdenom, ctx.Height(), power); err != nil {
		return nil, err
	}

	emitLockEvent(ctx, owner, deposit, msg.LockingPeriod, end)
	if !issued.IsZero() {
		emitIssueEvent(ctx, owner, coin.NewCoin(vdenom, issued))
	}
	return sdk.NewResponse().
		AddAttribute("action", "lock").
		AddAttribute("from", owner.String()), nil
}
