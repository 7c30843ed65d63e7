package locker

import (
	"fmt"

	"govlock/coin"
	"govlock/sdk"
)

// emitLockEvent leaves a "lk" line per deposit so indexers can rebuild positions.
func emitLockEvent(ctx *sdk.Context, owner sdk.Address, c coin.Coin, period LockingPeriod, endTime uint64) {
	ctx.Log(fmt.Sprintf(
		"lk|by:%s|d:%s|t:%s|am:%s|end:%d",
		owner,
		c.Denom,
		period,
		c.Amount,
		endTime,
	))
}

// emitIssueEvent fires when fresh vtokens are minted on top of the supply counter.
func emitIssueEvent(ctx *sdk.Context, owner sdk.Address, vtoken coin.Coin) {
	ctx.Log(fmt.Sprintf(
		"vi|by:%s|d:%s|am:%s",
		owner,
		vtoken.Denom,
		vtoken.Amount,
	))
}

func emitStatusEvent(ctx *sdk.Context, owner sdk.Address, denom string, period LockingPeriod, status Status) {
	ctx.Log(fmt.Sprintf(
		"us|by:%s|d:%s|t:%s|s:%s",
		owner,
		denom,
		period,
		status,
	))
}

func emitWithdrawEvent(ctx *sdk.Context, owner sdk.Address, c coin.Coin, period LockingPeriod, remaining coin.Amount) {
	ctx.Log(fmt.Sprintf(
		"wd|by:%s|d:%s|t:%s|am:%s|left:%s",
		owner,
		c.Denom,
		period,
		c.Amount,
		remaining,
	))
}
