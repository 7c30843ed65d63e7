package locker

import "errors"

var (
	ErrInsufficientFunds = errors.New("insufficient funds were sent")
	ErrMultipleDenoms    = errors.New("multiple denominations are not supported")
	ErrZeroAmount        = errors.New("amount must be greater than zero")
	ErrInvalidPeriod     = errors.New("invalid locking period")
	ErrInvalidWeight     = errors.New("weight must lie in [0,1]")
	ErrNotLocked         = errors.New("the token is not in locked state")
	ErrTimeNotOvered     = errors.New("the locking period is still active")
	ErrAlreadyUnlocked   = errors.New("the vtoken is already unlocked")
	ErrNotUnlocked       = errors.New("the vtoken is not unlocked")
	ErrNotFound          = errors.New("not found")
	ErrNotInstantiated   = errors.New("locker is not instantiated")
	ErrAlreadyInstalled  = errors.New("locker is already instantiated")
	ErrUnknownMessage    = errors.New("unknown message")
	ErrCorruptState      = errors.New("corrupt state record")
)
