package locker

import (
	"fmt"

	"govlock/coin"
	"govlock/sdk"
)

// QueryIssuedNft returns the owner's record or ErrNotFound.
func QueryIssuedNft(st sdk.State, owner sdk.Address) (TokenInfo, error) {
	info, err := loadTokenInfo(st, owner)
	if err != nil {
		return TokenInfo{}, err
	}
	if info == nil {
		return TokenInfo{}, fmt.Errorf("%w: nft of %s", ErrNotFound, owner)
	}
	return *info, nil
}

// QueryTokens reads one balance projection, optionally narrowed to denom.
// A missing projection and a denom without match are both ErrNotFound.
func QueryTokens(st sdk.State, kind Status, owner sdk.Address, denom *string) (coin.Coins, error) {
	cs, ok, err := loadBalances(st, kind, owner)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: no %s tokens", ErrNotFound, kind)
	}
	if denom == nil {
		return cs, nil
	}
	filtered := cs.Filter(*denom)
	if len(filtered) == 0 {
		return nil, fmt.Errorf("%w: no %s tokens of %s", ErrNotFound, kind, *denom)
	}
	return filtered, nil
}

// QueryIssuedVtokens lists every position; an unknown owner simply has none.
func QueryIssuedVtokens(st sdk.State, owner sdk.Address) ([]VToken, error) {
	info, err := loadTokenInfo(st, owner)
	if err != nil {
		return nil, err
	}
	if info == nil {
		return []VToken{}, nil
	}
	return info.VTokens, nil
}

// QuerySupply reports the counters for the vtoken minted from denom.
func QuerySupply(st sdk.State, denom string) (Supply, error) {
	s, ok, err := loadSupply(st, coin.VDenom(denom))
	if err != nil {
		return Supply{}, err
	}
	if !ok {
		return Supply{}, fmt.Errorf("%w: supply of %s", ErrNotFound, coin.VDenom(denom))
	}
	return s, nil
}

// QueryTotalVTokens returns the voting power owner held at height.
func QueryTotalVTokens(st sdk.State, owner sdk.Address, denom string, height uint64) (coin.Amount, error) {
	return powerAt(st, owner, coin.VDenom(denom), height)
}

// Querier is the in-process view governance reads through.
type Querier struct {
	st sdk.State
}

func NewQuerier(st sdk.State) *Querier {
	return &Querier{st: st}
}

// VTokenSupply is the issued vtoken total for the source denom; zero when nothing was ever locked.
func (q *Querier) VTokenSupply(denom string) (coin.Amount, error) {
	s, ok, err := loadSupply(q.st, coin.VDenom(denom))
	if err != nil || !ok {
		return coin.ZeroAmount(), err
	}
	return s.VToken, nil
}

func (q *Querier) VotingPowerAt(owner sdk.Address, denom string, height uint64) (coin.Amount, error) {
	return QueryTotalVTokens(q.st, owner, denom, height)
}
