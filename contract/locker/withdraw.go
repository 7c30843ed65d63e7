package locker

import (
	"fmt"

	"govlock/coin"
	"govlock/sdk"
)

// pickWithdrawSource finds the Unlocked position to draw from. Without a tier
// the lowest Unlocked tier is used.
func pickWithdrawSource(info *TokenInfo, denom string, period *LockingPeriod) (int, error) {
	if period != nil {
		idx := info.find(denom, *period)
		if idx < 0 {
			return -1, ErrNotFound
		}
		if info.VTokens[idx].Status != StatusUnlocked {
			return -1, ErrNotUnlocked
		}
		return idx, nil
	}
	seen := false
	for _, p := range Periods {
		idx := info.find(denom, p)
		if idx < 0 {
			continue
		}
		seen = true
		if info.VTokens[idx].Status == StatusUnlocked {
			return idx, nil
		}
	}
	if seen {
		return -1, ErrNotUnlocked
	}
	return -1, ErrNotFound
}

// Withdraw pays principal of an Unlocked position back to its owner. The
// payout is returned as a deferred BankSend; the position is removed when
// it runs empty.
// Example payload: {"withdraw":{"app_id":1,"denom":"TKN","amount":"10"}}
func Withdraw(ctx *sdk.Context, msg WithdrawMsg) (*sdk.Response, error) {
	if msg.Amount.IsZero() {
		return nil, ErrZeroAmount
	}
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
	idx, err := pickWithdrawSource(info, msg.Denom, msg.LockingPeriod)
	if err != nil {
		return nil, err
	}
	pos := info.VTokens[idx]
	if msg.Amount.GT(pos.Token.Amount) {
		return nil, fmt.Errorf("%w: requested %s, available %s", ErrInsufficientFunds, msg.Amount, pos.Token.Amount)
	}
	remaining, err := pos.Token.Amount.Sub(msg.Amount)
	if err != nil {
		return nil, err
	}
	if remaining.IsZero() {
		info.VTokens = append(info.VTokens[:idx], info.VTokens[idx+1:]...)
	} else {
		tier, err := cfg.Tier(pos.Period)
		if err != nil {
			return nil, err
		}
		left, err := tier.Weight.MulAmountFloor(remaining)
		if err != nil {
			return nil, err
		}
		info.VTokens[idx].Token.Amount = remaining
		info.VTokens[idx].VToken.Amount = left
	}

	supply, ok, err := loadSupply(ctx.State, pos.VToken.Denom)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: supply for %s", ErrCorruptState, pos.VToken.Denom)
	}
	if supply.Token, err = supply.Token.Sub(msg.Amount); err != nil {
		return nil, err
	}

	payout := coin.NewCoin(msg.Denom, msg.Amount)
	if err := applyBalanceDeltas(ctx.State, owner, []balanceDelta{
		{kind: StatusUnlocked, add: false, c: payout},
	}); err != nil {
		return nil, err
	}
	saveTokenInfo(ctx.State, info)
	saveSupply(ctx.State, pos.VToken.Denom, supply)

	emitWithdrawEvent(ctx, owner, payout, pos.Period, remaining)
	return sdk.NewResponse().
		AddAttribute("action", "Withdraw").
		AddAttribute("Recipent", owner.String()).
		AddMessage(sdk.BankSend{To: owner, Amount: coin.Coins{payout}}), nil
}
