package governance

import (
	"strconv"

	"govlock/sdk"
)

// CastVote records or replaces the sender's ballot. Power is read at the block
// before the proposal started, so locking after the fact adds nothing.
// Example payload: {"vote":{"proposal_id":1,"vote":"yes"}}
func CastVote(ctx *sdk.Context, deps Deps, msg VoteMsg) (*sdk.Response, error) {
	if err := noFunds(ctx); err != nil {
		return nil, err
	}
	prop, err := loadProposal(ctx.State, msg.ProposalID)
	if err != nil {
		return nil, err
	}
	block := ctx.Env.Block
	status, err := prop.CurrentStatus(block)
	if err != nil {
		return nil, err
	}
	if status != StatusOpen {
		return nil, ErrNotOpen
	}

	voter := ctx.Sender()
	power, err := deps.Locker.VotingPowerAt(voter, prop.TokenDenom, snapshotHeight(prop.StartHeight))
	if err != nil {
		return nil, err
	}
	prev, err := loadBallot(ctx.State, prop.ID, voter)
	if err != nil {
		return nil, err
	}
	if prev != nil {
		if err := prop.Votes.Sub(prev.Vote, prev.Weight); err != nil {
			return nil, err
		}
	}
	if err := prop.Votes.Add(msg.Vote, power); err != nil {
		return nil, err
	}
	before := prop.Status
	if err := prop.UpdateStatus(block); err != nil {
		return nil, err
	}

	saveBallot(ctx.State, prop.ID, voter, Ballot{Weight: power, Vote: msg.Vote})
	saveProposal(ctx.State, &prop)

	emitVoteEvent(ctx, prop.ID, voter, msg.Vote, power)
	if before != prop.Status {
		emitStatusEvent(ctx, prop.ID, before, prop.Status)
	}
	return sdk.NewResponse().
		AddAttribute("action", "vote").
		AddAttribute("voter", voter.String()).
		AddAttribute("proposal_id", strconv.FormatUint(prop.ID, 10)).
		AddAttribute("status", prop.Status.String()).
		AddAttribute("vote", msg.Vote.String()), nil
}
