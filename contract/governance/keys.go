package governance

import (
	"govlock/contract/codec"
	"govlock/sdk"
)

const (
	// kConfig holds the single Config record.
	kConfig byte = 0x01
	// kProposalCount is the decimal id counter.
	kProposalCount byte = 0x02
	// kProposal maps id to Proposal.
	kProposal byte = 0x03
	// kBallot maps (id, voter) to Ballot.
	kBallot byte = 0x04
	// kDeposit maps (id, depositor) to the coins that depositor put in.
	kDeposit byte = 0x05
	// kAppProposal indexes (app, id) with an empty value.
	kAppProposal byte = 0x06
	// kAppGov maps app to AppGovConfig.
	kAppGov byte = 0x07
)

func configKey() string {
	return codec.NewKey(kConfig).String()
}

func proposalCountKey() string {
	return codec.NewKey(kProposalCount).String()
}

func proposalKey(id uint64) string {
	return codec.NewKey(kProposal).U64(id).String()
}

func proposalPrefix() string {
	return codec.NewKey(kProposal).String()
}

func ballotKey(id uint64, voter sdk.Address) string {
	return codec.NewKey(kBallot).U64(id).Tail(voter.String()).String()
}

func ballotPrefix(id uint64) string {
	return codec.NewKey(kBallot).U64(id).String()
}

func depositKey(id uint64, depositor sdk.Address) string {
	return codec.NewKey(kDeposit).U64(id).Tail(depositor.String()).String()
}

func appProposalKey(appID, id uint64) string {
	return codec.NewKey(kAppProposal).U64(appID).U64(id).String()
}

func appProposalPrefix(appID uint64) string {
	return codec.NewKey(kAppProposal).U64(appID).String()
}

func appGovKey(appID uint64) string {
	return codec.NewKey(kAppGov).U64(appID).String()
}
