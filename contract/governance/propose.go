package governance

import (
	"fmt"
	"strconv"

	"govlock/coin"
	"govlock/sdk"
)

// Deps are the collaborators the governance operations read through.
type Deps struct {
	Platform Platform
	Locker   LockerQuerier
}

// noFunds rejects coins attached to calls that do not take a deposit.
func noFunds(ctx *sdk.Context) error {
	if len(ctx.Info.Funds) > 0 {
		return ErrFundsNotAllowed
	}
	return nil
}

// snapshotHeight is the height voting power is read at: the block before the proposal started.
func snapshotHeight(startHeight uint64) uint64 {
	if startHeight == 0 {
		return 0
	}
	return startHeight - 1
}

// govDenom resolves the governance token of an app through the platform.
func govDenom(p Platform, appID uint64) (AppInfo, string, error) {
	app, err := p.GetApp(appID)
	if err != nil {
		return AppInfo{}, "", err
	}
	if app.GovTokenID == 0 {
		return AppInfo{}, "", fmt.Errorf("%w: app %d", ErrNoGovToken, appID)
	}
	asset, err := p.GetAssetData(app.GovTokenID)
	if err != nil {
		return AppInfo{}, "", err
	}
	if asset.Denom == "" {
		return AppInfo{}, "", fmt.Errorf("%w: asset %d has no denom", ErrNoGovToken, app.GovTokenID)
	}
	return app, asset.Denom, nil
}

// resolveExpiry clamps the proposer's hint to the app's voting window.
func resolveExpiry(block sdk.BlockInfo, hint *Expiration, max Expiration) (Expiration, error) {
	if hint == nil {
		return max, nil
	}
	cmp, ok := hint.Compare(max)
	if !ok {
		return Expiration{}, fmt.Errorf("%w: %s against %s", ErrWrongExpiration, hint, max)
	}
	if hint.IsExpired(block) {
		return Expiration{}, fmt.Errorf("%w: %s already passed", ErrWrongExpiration, hint)
	}
	if cmp > 0 {
		return max, nil
	}
	return *hint, nil
}

// validateAction runs the eligibility, app id and platform dry run checks.
func validateAction(p Platform, a Action, appID uint64) error {
	if !Proposable(a.Kind) {
		return fmt.Errorf("%w: %s", ErrProposalNotEligible, a.Kind)
	}
	if a.AppMappingID != appID {
		return fmt.Errorf("%w: action targets %d, proposal %d", ErrDifferentAppID, a.AppMappingID, appID)
	}
	res, err := p.ValidateAction(a)
	if err != nil {
		return err
	}
	if !res.Found {
		return fmt.Errorf("%w: %s", ErrProposal, res.Err)
	}
	return nil
}

// Propose opens a proposal carrying exactly one platform action. The
// proposer's voting power is counted as a Yes ballot and the attached coin as
// the first deposit.
// Example payload: {"propose":{"propose":{"title":"t","description":"d","msgs":[{"msg_white_list_asset_locker":{"app_mapping_id":1,"asset_id":2}}],"app_id_param":1}}}
func Propose(ctx *sdk.Context, deps Deps, msg ProposeMsg) (*sdk.Response, error) {
	switch {
	case len(msg.Msgs) == 0:
		return nil, ErrNoMessage
	case len(msg.Msgs) > 1:
		return nil, ErrExtraMessages
	}
	action := msg.Msgs[0]

	cfg, err := loadConfig(ctx.State)
	if err != nil {
		return nil, err
	}
	app, denom, err := govDenom(deps.Platform, msg.AppID)
	if err != nil {
		return nil, err
	}
	totalWeight, err := deps.Locker.VTokenSupply(denom)
	if err != nil {
		return nil, err
	}
	if totalWeight.IsZero() {
		return nil, fmt.Errorf("%w: %s", ErrZeroSupply, coin.VDenom(denom))
	}

	proposer := ctx.Sender()
	block := ctx.Env.Block
	power, err := deps.Locker.VotingPowerAt(proposer, denom, snapshotHeight(block.Height))
	if err != nil {
		return nil, err
	}

	window := Duration{Value: app.GovTimeInSeconds}
	latest, err := window.After(block)
	if err != nil {
		return nil, err
	}
	expires, err := resolveExpiry(block, msg.Latest, latest)
	if err != nil {
		return nil, err
	}

	switch {
	case len(ctx.Info.Funds) > 1:
		return nil, ErrAdditionalDenomDeposit
	case len(ctx.Info.Funds) == 0:
		return nil, ErrInsufficientFundsSend
	case ctx.Info.Funds[0].Denom != denom:
		return nil, fmt.Errorf("%w: want %s", ErrDenomNotFound, denom)
	}
	deposit := ctx.Info.Funds[0]

	if err := validateAction(deps.Platform, action, msg.AppID); err != nil {
		return nil, err
	}

	status := StatusPending
	if deposit.Amount.GTE(app.MinGovDeposit) {
		status = StatusOpen
	}
	prop := Proposal{
		Title:          msg.Title,
		Description:    msg.Description,
		StartTime:      block.Time,
		StartHeight:    block.Height,
		Expires:        expires,
		Action:         action,
		Duration:       window,
		Status:         status,
		Threshold:      cfg.Threshold,
		TotalWeight:    totalWeight,
		Deposit:        coin.Coins{deposit},
		Proposer:       proposer,
		TokenDenom:     denom,
		MinDeposit:     app.MinGovDeposit,
		CurrentDeposit: deposit.Amount,
		AppMappingID:   msg.AppID,
	}
	prop.Votes.Yes = power
	if err := prop.UpdateStatus(block); err != nil {
		return nil, err
	}

	appGov, err := loadAppGov(ctx.State, msg.AppID)
	if err != nil {
		return nil, err
	}
	appGov.ProposalCount++
	appGov.CurrentSupply = totalWeight

	// all checks passed, write
	prop.ID = nextProposalID(ctx.State)
	saveProposal(ctx.State, &prop)
	indexAppProposal(ctx.State, msg.AppID, prop.ID)
	saveBallot(ctx.State, prop.ID, proposer, Ballot{Weight: power, Vote: VoteYes})
	saveDeposit(ctx.State, prop.ID, proposer, coin.Coins{deposit})
	saveAppGov(ctx.State, msg.AppID, appGov)

	emitProposalCreatedEvent(ctx, &prop)
	emitVoteEvent(ctx, prop.ID, proposer, VoteYes, power)
	return sdk.NewResponse().
		AddAttribute("action", "propose").
		AddAttribute("proposer", proposer.String()).
		AddAttribute("proposal_id", strconv.FormatUint(prop.ID, 10)).
		AddAttribute("status", prop.Status.String()), nil
}
