package governance

import (
	"fmt"

	"govlock/coin"
	"govlock/sdk"
)

func emitProposalCreatedEvent(ctx *sdk.Context, p *Proposal) {
	ctx.Log(fmt.Sprintf(
		"pc|id:%d|by:%s|app:%d|k:%s|s:%s|exp:%s",
		p.ID,
		p.Proposer,
		p.AppMappingID,
		p.Action.Kind,
		p.Status,
		p.Expires,
	))
}

func emitVoteEvent(ctx *sdk.Context, id uint64, voter sdk.Address, vote Vote, weight coin.Amount) {
	ctx.Log(fmt.Sprintf(
		"pv|id:%d|by:%s|v:%s|w:%s",
		id,
		voter,
		vote,
		weight,
	))
}

// emitStatusEvent is logged whenever a write changes the persisted status.
func emitStatusEvent(ctx *sdk.Context, id uint64, from, to Status) {
	ctx.Log(fmt.Sprintf("ps|id:%d|from:%s|to:%s", id, from, to))
}

func emitExecuteEvent(ctx *sdk.Context, id uint64, by sdk.Address, kind string) {
	ctx.Log(fmt.Sprintf("px|id:%d|by:%s|k:%s", id, by, kind))
}

func emitDepositEvent(ctx *sdk.Context, id uint64, by sdk.Address, c coin.Coin) {
	ctx.Log(fmt.Sprintf(
		"pd|id:%d|by:%s|d:%s|am:%s",
		id,
		by,
		c.Denom,
		c.Amount,
	))
}

func emitRefundEvent(ctx *sdk.Context, id uint64, to sdk.Address, cs coin.Coins) {
	ctx.Log(fmt.Sprintf("pr|id:%d|to:%s|am:%s", id, to, cs))
}

func emitSlashEvent(ctx *sdk.Context, id uint64, by sdk.Address, burned coin.Coin) {
	ctx.Log(fmt.Sprintf(
		"sl|id:%d|by:%s|d:%s|am:%s",
		id,
		by,
		burned.Denom,
		burned.Amount,
	))
}
