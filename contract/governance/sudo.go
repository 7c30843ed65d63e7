package governance

import (
	"govlock/sdk"
)

// UpdateLockingContract points governance at another locker. Proposals keep
// their snapshotted total weight.
// Example payload: {"update_locking_contract":{"address":"contract:locker2"}}
func UpdateLockingContract(ctx *sdk.Context, address string) (*sdk.Response, error) {
	addr, err := sdk.ValidateAddress(address)
	if err != nil {
		return nil, err
	}
	cfg, err := loadConfig(ctx.State)
	if err != nil {
		return nil, err
	}
	cfg.LockingContract = addr
	saveConfig(ctx.State, &cfg)
	return sdk.NewResponse().
		AddAttribute("action", "update_locking_contract").
		AddAttribute("address", addr.String()), nil
}

// UpdateThreshold replaces the rule used by proposals created from now on.
// Example payload: {"update_threshold":{"threshold":{"threshold_quorum":{"threshold":"0.6","quorum":"0.4"}}}}
func UpdateThreshold(ctx *sdk.Context, t Threshold) (*sdk.Response, error) {
	if err := ValidateThreshold(t); err != nil {
		return nil, err
	}
	cfg, err := loadConfig(ctx.State)
	if err != nil {
		return nil, err
	}
	cfg.Threshold = t
	saveConfig(ctx.State, &cfg)
	return sdk.NewResponse().
		AddAttribute("action", "update_threshold").
		AddAttribute("threshold", t.Threshold.String()).
		AddAttribute("quorum", t.Quorum.String()), nil
}
