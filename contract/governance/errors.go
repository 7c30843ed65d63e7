package governance

import "errors"

var (
	ErrProposalNotEligible           = errors.New("proposal is not eligible")
	ErrAdditionalDenomDeposit        = errors.New("additional denom deposit detected")
	ErrExtraMessages                 = errors.New("more than 1 messages provided")
	ErrNoMessage                     = errors.New("no messages provided")
	ErrNoDeposit                     = errors.New("no deposit record found for proposal")
	ErrInsufficientFundsSend         = errors.New("insufficient funds sent")
	ErrMultipleDenoms                = errors.New("exactly one coin must be sent")
	ErrFundsNotAllowed               = errors.New("funds deposit not allowed")
	ErrNotOpen                       = errors.New("proposal is not open")
	ErrNoGovToken                    = errors.New("governance token does not exist for app")
	ErrDenomNotFound                 = errors.New("gov token not found in funds")
	ErrAbsoluteCountNotAccepted      = errors.New("absolute count not accepted")
	ErrAbsolutePercentageNotAccepted = errors.New("absolute percentage not accepted")
	ErrInvalidThreshold              = errors.New("invalid threshold")
	ErrZeroQuorumThreshold           = errors.New("required quorum threshold cannot be zero")
	ErrUnreachableQuorumThreshold    = errors.New("not possible to reach required quorum threshold")
	ErrWrongExpiration               = errors.New("wrong expiration option")
	ErrWrongExecuteStatus            = errors.New("proposal must have passed and not yet been executed")
	ErrIncorrectDenomDeposit         = errors.New("incorrect denom deposit")
	ErrCannotDeposit                 = errors.New("proposal must be open or pending to deposit")
	ErrZeroSupply                    = errors.New("total gov token supply is 0")
	ErrProposal                      = errors.New("proposal msg error")
	ErrDifferentAppID                = errors.New("incorrect app id provided in msg")
	ErrSlashedProposal               = errors.New("proposal is slashed")
	ErrProposalNotVetoed             = errors.New("proposal is not vetoed")
	ErrNotRejected                   = errors.New("proposal is not rejected")
	ErrAlreadySlashed                = errors.New("proposal is already slashed")
	ErrPendingProposal               = errors.New("proposal is still pending")
	ErrOpenProposal                  = errors.New("proposal is still open")
	ErrNotFound                      = errors.New("not found")
	ErrNotInstantiated               = errors.New("governance is not instantiated")
	ErrAlreadyInstalled              = errors.New("governance is already instantiated")
	ErrUnknownMessage                = errors.New("unknown message")
	ErrCorruptState                  = errors.New("corrupt state record")
)
