package governance

import (
	"fmt"
	"strconv"

	"govlock/sdk"
)

// Deposit tops up a pending or open proposal. Reaching the minimum deposit
// opens a pending one.
// Example payload: {"deposit":{"proposal_id":1}} with funds 50ucmdx
func Deposit(ctx *sdk.Context, msg ProposalMsg) (*sdk.Response, error) {
	if len(ctx.Info.Funds) == 0 {
		return nil, ErrInsufficientFundsSend
	}
	c, ok := ctx.Info.Funds.Single()
	if !ok {
		return nil, ErrMultipleDenoms
	}
	if c.IsZero() {
		return nil, ErrInsufficientFundsSend
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
	if status != StatusPending && status != StatusOpen {
		return nil, ErrCannotDeposit
	}
	if c.Denom != prop.TokenDenom {
		return nil, fmt.Errorf("%w: want %s", ErrIncorrectDenomDeposit, prop.TokenDenom)
	}

	depositor := ctx.Sender()
	record, _, err := loadDeposit(ctx.State, prop.ID, depositor)
	if err != nil {
		return nil, err
	}
	if record, err = record.Add(c); err != nil {
		return nil, err
	}
	if prop.Deposit, err = prop.Deposit.Add(c); err != nil {
		return nil, err
	}
	if prop.CurrentDeposit, err = prop.CurrentDeposit.Add(c.Amount); err != nil {
		return nil, err
	}
	before := prop.Status
	prop.Status = status
	if prop.Status == StatusPending && prop.CurrentDeposit.GTE(prop.MinDeposit) {
		prop.Status = StatusOpen
		if err := prop.UpdateStatus(block); err != nil {
			return nil, err
		}
	}

	saveDeposit(ctx.State, prop.ID, depositor, record)
	saveProposal(ctx.State, &prop)

	emitDepositEvent(ctx, prop.ID, depositor, c)
	if before != prop.Status {
		emitStatusEvent(ctx, prop.ID, before, prop.Status)
	}
	return sdk.NewResponse().
		AddAttribute("action", "deposit").
		AddAttribute("depositor", depositor.String()).
		AddAttribute("proposal_id", strconv.FormatUint(prop.ID, 10)), nil
}
