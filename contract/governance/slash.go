package governance

import (
	"strconv"

	"govlock/coin"
	"govlock/sdk"
)

// Slash burns the whole remaining deposit pool of a rejected, vetoed
// proposal. It succeeds at most once per proposal.
// Example payload: {"slash":{"proposal_id":1}}
func Slash(ctx *sdk.Context, msg ProposalMsg) (*sdk.Response, error) {
	if err := noFunds(ctx); err != nil {
		return nil, err
	}
	prop, err := loadProposal(ctx.State, msg.ProposalID)
	if err != nil {
		return nil, err
	}
	status, err := prop.CurrentStatus(ctx.Env.Block)
	if err != nil {
		return nil, err
	}
	if status != StatusRejected {
		return nil, ErrNotRejected
	}
	vetoed, err := prop.CheckVetoed()
	if err != nil {
		return nil, err
	}
	if !vetoed {
		return nil, ErrProposalNotVetoed
	}
	if prop.IsSlashed {
		return nil, ErrAlreadySlashed
	}

	burned := coin.NewCoin(prop.TokenDenom, prop.CurrentDeposit)
	prop.IsSlashed = true
	prop.Status = status
	saveProposal(ctx.State, &prop)

	resp := sdk.NewResponse()
	if !burned.IsZero() {
		resp.AddMessage(BurnMsg{AppID: prop.AppMappingID, Amount: burned, From: ctx.Env.Contract})
	}
	emitSlashEvent(ctx, prop.ID, ctx.Sender(), burned)
	return resp.
		AddAttribute("action", "Slash").
		AddAttribute("trigger_address", ctx.Sender().String()).
		AddAttribute("proposal_id", strconv.FormatUint(prop.ID, 10)), nil
}
