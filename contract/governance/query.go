package governance

import (
	"govlock/coin"
	"govlock/sdk"
)

const (
	DefaultLimit = 100
	MaxLimit     = 300
)

func clampLimit(limit *uint64) int {
	if limit == nil {
		return DefaultLimit
	}
	if *limit > MaxLimit {
		return MaxLimit
	}
	return int(*limit)
}

// QueryThreshold returns the proposal's snapshotted pass rule and total weight.
func QueryThreshold(st sdk.State, id uint64) (ThresholdResponse, error) {
	prop, err := loadProposal(st, id)
	if err != nil {
		return ThresholdResponse{}, err
	}
	return ThresholdResponse{Threshold: prop.Threshold, TotalWeight: prop.TotalWeight}, nil
}

func detailOf(p *Proposal, block sdk.BlockInfo) (ProposalResponseTotal, error) {
	status, err := p.CurrentStatus(block)
	if err != nil {
		return ProposalResponseTotal{}, err
	}
	out := ProposalResponseTotal{Proposal: *p}
	out.Status = status
	return out, nil
}

// QueryProposal returns the full record with the status derived at block.
func QueryProposal(st sdk.State, block sdk.BlockInfo, id uint64) (ProposalResponseTotal, error) {
	prop, err := loadProposal(st, id)
	if err != nil {
		return ProposalResponseTotal{}, err
	}
	return detailOf(&prop, block)
}

// listProposals walks the proposal namespace in id order. start is exclusive.
func listProposals(st sdk.State, block sdk.BlockInfo, start *uint64, limit *uint64, reverse bool) (ProposalListResponse, error) {
	n := clampLimit(limit)
	out := ProposalListResponse{Proposals: []ProposalResponse{}}
	var err error
	st.Iterate(proposalPrefix(), reverse, func(_, value string) bool {
		if len(out.Proposals) >= n {
			return false
		}
		var prop Proposal
		if prop, err = decodeProposal(value); err != nil {
			return false
		}
		if start != nil {
			if !reverse && prop.ID <= *start {
				return true
			}
			if reverse && prop.ID >= *start {
				return true
			}
		}
		var status Status
		if status, err = prop.CurrentStatus(block); err != nil {
			return false
		}
		out.Proposals = append(out.Proposals, ProposalResponse{
			ID:          prop.ID,
			Title:       prop.Title,
			Description: prop.Description,
			Action:      prop.Action,
			Status:      status,
			Expires:     prop.Expires,
			Threshold:   ThresholdResponse{Threshold: prop.Threshold, TotalWeight: prop.TotalWeight},
		})
		return true
	})
	return out, err
}

// QueryListProposals lists ascending by id after startAfter.
func QueryListProposals(st sdk.State, block sdk.BlockInfo, startAfter, limit *uint64) (ProposalListResponse, error) {
	return listProposals(st, block, startAfter, limit, false)
}

// QueryReverseProposals lists descending by id before startBefore.
func QueryReverseProposals(st sdk.State, block sdk.BlockInfo, startBefore, limit *uint64) (ProposalListResponse, error) {
	return listProposals(st, block, startBefore, limit, true)
}

// QueryVote returns the voter's ballot, nil inside the response when there is none.
func QueryVote(st sdk.State, id uint64, voter sdk.Address) (VoteResponse, error) {
	b, err := loadBallot(st, id, voter)
	if err != nil || b == nil {
		return VoteResponse{}, err
	}
	return VoteResponse{Vote: &VoteInfo{ProposalID: id, Voter: voter, Vote: b.Vote, Weight: b.Weight}}, nil
}

// QueryListVotes lists ballots ascending by voter address after startAfter.
func QueryListVotes(st sdk.State, id uint64, startAfter *string, limit *uint64) (VoteListResponse, error) {
	n := clampLimit(limit)
	prefix := ballotPrefix(id)
	out := VoteListResponse{Votes: []VoteInfo{}}
	var err error
	st.Iterate(prefix, false, func(key, value string) bool {
		if len(out.Votes) >= n {
			return false
		}
		voter := key[len(prefix):]
		if startAfter != nil && voter <= *startAfter {
			return true
		}
		var b Ballot
		if b, err = decodeBallot(value); err != nil {
			return false
		}
		out.Votes = append(out.Votes, VoteInfo{
			ProposalID: id,
			Voter:      sdk.Address(voter),
			Vote:       b.Vote,
			Weight:     b.Weight,
		})
		return true
	})
	return out, err
}

// QueryListAppProposal lists an app's proposals newest first. status filters
// on the derived status; offset and limit slice the filtered list and
// ProposalCount reports its full length.
func QueryListAppProposal(st sdk.State, block sdk.BlockInfo, appID uint64, offset, limit *uint64, status *Status) (AppProposalResponse, error) {
	var matched []ProposalResponseTotal
	for _, id := range appProposalIDs(st, appID) {
		prop, err := loadProposal(st, id)
		if err != nil {
			return AppProposalResponse{}, err
		}
		detail, err := detailOf(&prop, block)
		if err != nil {
			return AppProposalResponse{}, err
		}
		if status != nil && detail.Status != *status {
			continue
		}
		matched = append(matched, detail)
	}
	out := AppProposalResponse{Proposals: []ProposalResponseTotal{}, ProposalCount: uint64(len(matched))}
	from := 0
	if offset != nil {
		if *offset >= uint64(len(matched)) {
			return out, nil
		}
		from = int(*offset)
	}
	to := from + clampLimit(limit)
	if to > len(matched) {
		to = len(matched)
	}
	out.Proposals = append(out.Proposals, matched[from:to]...)
	return out, nil
}

// QueryAppAllUpData combines the stored per app counters with the live
// locker supply, the summed participation and the platform's own supply figure.
func QueryAppAllUpData(st sdk.State, deps Deps, appID uint64) (AppAllUpResponse, error) {
	appGov, err := loadAppGov(st, appID)
	if err != nil {
		return AppAllUpResponse{}, err
	}
	app, denom, err := govDenom(deps.Platform, appID)
	if err != nil {
		return AppAllUpResponse{}, err
	}
	live, err := deps.Locker.VTokenSupply(denom)
	if err != nil {
		return AppAllUpResponse{}, err
	}
	participation := coin.ZeroAmount()
	for _, id := range appProposalIDs(st, appID) {
		prop, err := loadProposal(st, id)
		if err != nil {
			return AppAllUpResponse{}, err
		}
		total, err := prop.Votes.Total()
		if err != nil {
			return AppAllUpResponse{}, err
		}
		if participation, err = participation.Add(total); err != nil {
			return AppAllUpResponse{}, err
		}
	}
	platformSupply, err := deps.Platform.TotalSupply(appID, app.GovTokenID)
	if err != nil {
		return AppAllUpResponse{}, err
	}
	return AppAllUpResponse{
		ProposalCount:             appGov.ProposalCount,
		CurrentSupply:             live,
		ActiveParticipationSupply: participation,
		PlatformSupply:            platformSupply,
	}, nil
}
