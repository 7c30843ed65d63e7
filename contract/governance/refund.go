package governance

import (
	"strconv"

	"govlock/sdk"
)

// Refund returns the sender's recorded deposit once voting is over. Deposits
// of vetoed proposals are forfeit to Slash.
// Example payload: {"refund":{"proposal_id":1}}
func Refund(ctx *sdk.Context, msg ProposalMsg) (*sdk.Response, error) {
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
	switch status {
	case StatusPending:
		return nil, ErrPendingProposal
	case StatusOpen:
		return nil, ErrOpenProposal
	case StatusRejected:
		vetoed, err := prop.CheckVetoed()
		if err != nil {
			return nil, err
		}
		if vetoed || prop.IsSlashed {
			return nil, ErrSlashedProposal
		}
	}

	sender := ctx.Sender()
	record, ok, err := loadDeposit(ctx.State, prop.ID, sender)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNoDeposit
	}
	refunded, _ := record.AmountOf(prop.TokenDenom)
	if prop.CurrentDeposit, err = prop.CurrentDeposit.Sub(refunded); err != nil {
		return nil, err
	}

	deleteDeposit(ctx.State, prop.ID, sender)
	saveProposal(ctx.State, &prop)

	emitRefundEvent(ctx, prop.ID, sender, record)
	return sdk.NewResponse().
		AddMessage(sdk.BankSend{To: sender, Amount: record}).
		AddAttribute("action", "refund").
		AddAttribute("sender", sender.String()).
		AddAttribute("proposal_id", strconv.FormatUint(prop.ID, 10)), nil
}
