package governance

import (
	"strconv"

	"govlock/sdk"
)

// Execute marks a passed proposal executed and hands its action to the
// platform. Anyone may trigger it.
// Example payload: {"execute":{"proposal_id":1}}
func Execute(ctx *sdk.Context, msg ProposalMsg) (*sdk.Response, error) {
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
	if status != StatusPassed {
		return nil, ErrWrongExecuteStatus
	}

	prop.Status = StatusExecuted
	saveProposal(ctx.State, &prop)

	emitExecuteEvent(ctx, prop.ID, ctx.Sender(), prop.Action.Kind)
	return sdk.NewResponse().
		AddMessage(ExecuteActionMsg{ProposalID: prop.ID, Action: prop.Action}).
		AddAttribute("action", "execute").
		AddAttribute("sender", ctx.Sender().String()).
		AddAttribute("proposal_id", strconv.FormatUint(prop.ID, 10)), nil
}
