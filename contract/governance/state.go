package governance

import (
	"fmt"
	"strconv"

	"govlock/coin"
	"govlock/contract/codec"
	"govlock/sdk"
)

// ---- config

func loadConfig(st sdk.State) (Config, error) {
	raw := st.Get(configKey())
	if raw == nil {
		return Config{}, ErrNotInstantiated
	}
	return decodeConfig(*raw)
}

func saveConfig(st sdk.State, cfg *Config) {
	st.Set(configKey(), encodeConfig(cfg))
}

// ---- counters

// getCount reads the decimal proposal counter, 0 when unset.
func getCount(st sdk.State) uint64 {
	ptr := st.Get(proposalCountKey())
	if ptr == nil || *ptr == "" {
		return 0
	}
	n, err := strconv.ParseUint(*ptr, 10, 64)
	if err != nil {
		return 0
	}
	return n
}

func setCount(st sdk.State, n uint64) {
	st.Set(proposalCountKey(), strconv.FormatUint(n, 10))
}

// nextProposalID bumps the counter; the first proposal gets id 1.
func nextProposalID(st sdk.State) uint64 {
	id := getCount(st) + 1
	setCount(st, id)
	return id
}

// ---- proposals

func loadProposal(st sdk.State, id uint64) (Proposal, error) {
	raw := st.Get(proposalKey(id))
	if raw == nil {
		return Proposal{}, fmt.Errorf("%w: proposal %d", ErrNotFound, id)
	}
	return decodeProposal(*raw)
}

func saveProposal(st sdk.State, p *Proposal) {
	st.Set(proposalKey(p.ID), encodeProposal(p))
}

// ---- ballots

func loadBallot(st sdk.State, id uint64, voter sdk.Address) (*Ballot, error) {
	raw := st.Get(ballotKey(id, voter))
	if raw == nil {
		return nil, nil
	}
	b, err := decodeBallot(*raw)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func saveBallot(st sdk.State, id uint64, voter sdk.Address, b Ballot) {
	st.Set(ballotKey(id, voter), encodeBallot(b))
}

// ---- deposits

func loadDeposit(st sdk.State, id uint64, depositor sdk.Address) (coin.Coins, bool, error) {
	raw := st.Get(depositKey(id, depositor))
	if raw == nil {
		return nil, false, nil
	}
	cs, err := codec.NewStringReader(*raw).ReadCoins()
	if err != nil {
		return nil, false, fmt.Errorf("%w: deposit: %v", ErrCorruptState, err)
	}
	return cs, true, nil
}

func saveDeposit(st sdk.State, id uint64, depositor sdk.Address, cs coin.Coins) {
	w := codec.NewWriter()
	w.WriteCoins(cs)
	st.Set(depositKey(id, depositor), w.String())
}

func deleteDeposit(st sdk.State, id uint64, depositor sdk.Address) {
	st.Delete(depositKey(id, depositor))
}

// ---- per app index

func indexAppProposal(st sdk.State, appID, id uint64) {
	st.Set(appProposalKey(appID, id), "")
}

// appProposalIDs lists the app's proposals, newest first.
func appProposalIDs(st sdk.State, appID uint64) []uint64 {
	prefix := appProposalPrefix(appID)
	var ids []uint64
	st.Iterate(prefix, true, func(key, _ string) bool {
		if id, ok := codec.DecodeU64(key, len(prefix)); ok {
			ids = append(ids, id)
		}
		return true
	})
	return ids
}

func loadAppGov(st sdk.State, appID uint64) (AppGovConfig, error) {
	raw := st.Get(appGovKey(appID))
	if raw == nil {
		return AppGovConfig{}, nil
	}
	return decodeAppGov(*raw)
}

func saveAppGov(st sdk.State, appID uint64, a AppGovConfig) {
	st.Set(appGovKey(appID), encodeAppGov(a))
}
