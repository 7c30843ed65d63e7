package governance

import (
	"github.com/CosmWasm/tinyjson/jwriter"

	"govlock/coin"
	"govlock/sdk"
)

// ThresholdResponse pairs the pass rule with the weight it is measured against.
type ThresholdResponse struct {
	Threshold   Threshold
	TotalWeight coin.Amount
}

// ProposalResponseTotal is the detailed view; Status is the derived one.
type ProposalResponseTotal struct {
	Proposal
}

// ProposalResponse is the short form used by the list queries.
type ProposalResponse struct {
	ID          uint64
	Title       string
	Description string
	Action      Action
	Status      Status
	Expires     Expiration
	Threshold   ThresholdResponse
}

type ProposalListResponse struct {
	Proposals []ProposalResponse
}

type VoteInfo struct {
	ProposalID uint64
	Voter      sdk.Address
	Vote       Vote
	Weight     coin.Amount
}

// VoteResponse holds a nil Vote when the voter has no ballot.
type VoteResponse struct {
	Vote *VoteInfo
}

type VoteListResponse struct {
	Votes []VoteInfo
}

type AppProposalResponse struct {
	Proposals     []ProposalResponseTotal
	ProposalCount uint64
}

type AppAllUpResponse struct {
	ProposalCount             uint64
	CurrentSupply             coin.Amount
	ActiveParticipationSupply coin.Amount
	PlatformSupply            coin.Amount
}

// ---- json

func (v Votes) MarshalTinyJSON(w *jwriter.Writer) {
	w.RawString(`{"yes":`)
	v.Yes.MarshalTinyJSON(w)
	w.RawString(`,"no":`)
	v.No.MarshalTinyJSON(w)
	w.RawString(`,"abstain":`)
	v.Abstain.MarshalTinyJSON(w)
	w.RawString(`,"veto":`)
	v.Veto.MarshalTinyJSON(w)
	w.RawByte('}')
}

// MarshalTinyJSON nests total_weight inside the threshold variant.
// Example payload: {"threshold_quorum":{"threshold":"0.5","quorum":"0.33","total_weight":"100"}}
func (r ThresholdResponse) MarshalTinyJSON(w *jwriter.Writer) {
	t := r.Threshold
	switch t.Kind {
	case ThresholdAbsoluteCount:
		w.RawString(`{"absolute_count":{"weight":`)
		w.Uint64(t.Weight)
	case ThresholdAbsolutePercentage:
		w.RawString(`{"absolute_percentage":{"percentage":`)
		t.Percentage.MarshalTinyJSON(w)
	default:
		w.RawString(`{"threshold_quorum":{"threshold":`)
		t.Threshold.MarshalTinyJSON(w)
		w.RawString(`,"quorum":`)
		t.Quorum.MarshalTinyJSON(w)
	}
	w.RawString(`,"total_weight":`)
	r.TotalWeight.MarshalTinyJSON(w)
	w.RawString(`}}`)
}

func (r ProposalResponseTotal) MarshalTinyJSON(w *jwriter.Writer) {
	p := r.Proposal
	w.RawString(`{"id":`)
	w.Uint64(p.ID)
	w.RawString(`,"title":`)
	w.String(p.Title)
	w.RawString(`,"start_time":`)
	w.String(unixNanos(p.StartTime))
	w.RawString(`,"description":`)
	w.String(p.Description)
	w.RawString(`,"start_height":`)
	w.Uint64(p.StartHeight)
	w.RawString(`,"expires":`)
	p.Expires.MarshalTinyJSON(w)
	w.RawString(`,"msgs":[`)
	p.Action.MarshalTinyJSON(w)
	w.RawString(`],"status":`)
	p.Status.MarshalTinyJSON(w)
	w.RawString(`,"duration":`)
	p.Duration.MarshalTinyJSON(w)
	w.RawString(`,"threshold":`)
	p.Threshold.MarshalTinyJSON(w)
	w.RawString(`,"total_weight":`)
	p.TotalWeight.MarshalTinyJSON(w)
	w.RawString(`,"votes":`)
	p.Votes.MarshalTinyJSON(w)
	w.RawString(`,"proposer":`)
	w.String(p.Proposer.String())
	w.RawString(`,"token_denom":`)
	w.String(p.TokenDenom)
	w.RawString(`,"deposit":`)
	p.Deposit.MarshalTinyJSON(w)
	w.RawString(`,"min_deposit":`)
	p.MinDeposit.MarshalTinyJSON(w)
	w.RawString(`,"current_deposit":`)
	p.CurrentDeposit.MarshalTinyJSON(w)
	w.RawString(`,"app_mapping_id":`)
	w.Uint64(p.AppMappingID)
	w.RawString(`,"is_slashed":`)
	w.Bool(p.IsSlashed)
	w.RawByte('}')
}

func (r ProposalResponse) MarshalTinyJSON(w *jwriter.Writer) {
	w.RawString(`{"id":`)
	w.Uint64(r.ID)
	w.RawString(`,"title":`)
	w.String(r.Title)
	w.RawString(`,"description":`)
	w.String(r.Description)
	w.RawString(`,"msgs":[`)
	r.Action.MarshalTinyJSON(w)
	w.RawString(`],"status":`)
	r.Status.MarshalTinyJSON(w)
	w.RawString(`,"expires":`)
	r.Expires.MarshalTinyJSON(w)
	w.RawString(`,"threshold":`)
	r.Threshold.MarshalTinyJSON(w)
	w.RawByte('}')
}

func (r ProposalListResponse) MarshalTinyJSON(w *jwriter.Writer) {
	w.RawString(`{"proposals":[`)
	for i, p := range r.Proposals {
		if i > 0 {
			w.RawByte(',')
		}
		p.MarshalTinyJSON(w)
	}
	w.RawString(`]}`)
}

func (v VoteInfo) MarshalTinyJSON(w *jwriter.Writer) {
	w.RawString(`{"proposal_id":`)
	w.Uint64(v.ProposalID)
	w.RawString(`,"voter":`)
	w.String(v.Voter.String())
	w.RawString(`,"vote":`)
	v.Vote.MarshalTinyJSON(w)
	w.RawString(`,"weight":`)
	v.Weight.MarshalTinyJSON(w)
	w.RawByte('}')
}

func (r VoteResponse) MarshalTinyJSON(w *jwriter.Writer) {
	w.RawString(`{"vote":`)
	if r.Vote == nil {
		w.RawString("null")
	} else {
		r.Vote.MarshalTinyJSON(w)
	}
	w.RawByte('}')
}

func (r VoteListResponse) MarshalTinyJSON(w *jwriter.Writer) {
	w.RawString(`{"votes":[`)
	for i, v := range r.Votes {
		if i > 0 {
			w.RawByte(',')
		}
		v.MarshalTinyJSON(w)
	}
	w.RawString(`]}`)
}

func (r AppProposalResponse) MarshalTinyJSON(w *jwriter.Writer) {
	w.RawString(`{"proposals":[`)
	for i, p := range r.Proposals {
		if i > 0 {
			w.RawByte(',')
		}
		p.MarshalTinyJSON(w)
	}
	w.RawString(`],"proposal_count":`)
	w.Uint64(r.ProposalCount)
	w.RawByte('}')
}

func (r AppAllUpResponse) MarshalTinyJSON(w *jwriter.Writer) {
	w.RawString(`{"proposal_count":`)
	w.Uint64(r.ProposalCount)
	w.RawString(`,"current_supply":`)
	r.CurrentSupply.MarshalTinyJSON(w)
	w.RawString(`,"active_participation_supply":`)
	r.ActiveParticipationSupply.MarshalTinyJSON(w)
	w.RawString(`,"platform_supply":`)
	r.PlatformSupply.MarshalTinyJSON(w)
	w.RawByte('}')
}
