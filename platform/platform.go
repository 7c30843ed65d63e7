// Package platform is the reference app and asset registry the governance
// contract validates against and dispatches passed actions to.
package platform

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"govlock/coin"
	"govlock/contract/governance"
	"govlock/sdk"
)

var (
	ErrAppNotFound    = errors.New("app not found")
	ErrAssetNotFound  = errors.New("asset not found")
	ErrDuplicateApp   = errors.New("app already registered")
	ErrDuplicateAsset = errors.New("asset already registered")
	ErrUnknownAction  = errors.New("unknown action kind")
	ErrInvalidParams  = errors.New("invalid action params")
	ErrWrongBurnDenom = errors.New("burn denom is not the app governance token")
	ErrCorruptState   = errors.New("corrupt platform record")
)

// Bank is the part of the host ledger the platform needs.
type Bank interface {
	Supply(denom string) (coin.Amount, error)
	Burn(from sdk.Address, c coin.Coin) error
}

// App is a registered application. GovTokenID 0 means no governance token.
type App struct {
	ID               uint64
	Name             string
	MinGovDeposit    coin.Amount
	GovTimeInSeconds uint64
	GovTokenID       uint64
}

type Asset struct {
	ID    uint64
	Denom string
}

// Module serves the registry over one state namespace. It holds no state of
// its own, so the host builds one per invocation over its write cache.
type Module struct {
	st     sdk.State
	bank   Bank
	logger *zap.Logger
}

func New(st sdk.State, bank Bank, logger *zap.Logger) *Module {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Module{st: st, bank: bank, logger: logger}
}

// RegisterApp adds an app. Ids are fixed by the caller and never reused.
func (m *Module) RegisterApp(a App) error {
	if a.ID == 0 {
		return fmt.Errorf("%w: app id 0", ErrInvalidParams)
	}
	if m.st.Get(appKey(a.ID)) != nil {
		return fmt.Errorf("%w: %d", ErrDuplicateApp, a.ID)
	}
	if a.GovTokenID != 0 {
		if _, err := m.asset(a.GovTokenID); err != nil {
			return err
		}
	}
	m.st.Set(appKey(a.ID), encodeApp(a))
	m.logger.Info("app registered", zap.Uint64("app", a.ID), zap.Uint64("gov_token", a.GovTokenID))
	return nil
}

func (m *Module) RegisterAsset(a Asset) error {
	if a.ID == 0 || a.Denom == "" {
		return fmt.Errorf("%w: asset %d %q", ErrInvalidParams, a.ID, a.Denom)
	}
	if m.st.Get(assetKey(a.ID)) != nil {
		return fmt.Errorf("%w: %d", ErrDuplicateAsset, a.ID)
	}
	m.st.Set(assetKey(a.ID), encodeAsset(a))
	m.logger.Info("asset registered", zap.Uint64("asset", a.ID), zap.String("denom", a.Denom))
	return nil
}

func (m *Module) app(id uint64) (App, error) {
	raw := m.st.Get(appKey(id))
	if raw == nil {
		return App{}, fmt.Errorf("%w: %d", ErrAppNotFound, id)
	}
	return decodeApp(*raw)
}

func (m *Module) asset(id uint64) (Asset, error) {
	raw := m.st.Get(assetKey(id))
	if raw == nil {
		return Asset{}, fmt.Errorf("%w: %d", ErrAssetNotFound, id)
	}
	return decodeAsset(*raw)
}

// Apps lists every registered app in id order.
func (m *Module) Apps() ([]App, error) {
	var out []App
	var err error
	m.st.Iterate(appPrefix(), false, func(_, value string) bool {
		var a App
		if a, err = decodeApp(value); err != nil {
			return false
		}
		out = append(out, a)
		return true
	})
	return out, err
}

// ---- governance.Platform

func (m *Module) GetApp(appID uint64) (governance.AppInfo, error) {
	a, err := m.app(appID)
	if err != nil {
		return governance.AppInfo{}, err
	}
	return governance.AppInfo{
		MinGovDeposit:    a.MinGovDeposit,
		GovTimeInSeconds: a.GovTimeInSeconds,
		GovTokenID:       a.GovTokenID,
	}, nil
}

func (m *Module) GetAssetData(assetID uint64) (governance.AssetData, error) {
	a, err := m.asset(assetID)
	if err != nil {
		return governance.AssetData{}, err
	}
	return governance.AssetData{Denom: a.Denom}, nil
}

// TotalSupply is the bank supply of the asset's denom, scoped to an existing app.
func (m *Module) TotalSupply(appID, assetID uint64) (coin.Amount, error) {
	if _, err := m.app(appID); err != nil {
		return coin.Amount{}, err
	}
	a, err := m.asset(assetID)
	if err != nil {
		return coin.Amount{}, err
	}
	return m.bank.Supply(a.Denom)
}

// ValidateAction dry runs an action. Registry misses are reported in the
// response, not as an error, so governance can surface the reason.
func (m *Module) ValidateAction(a governance.Action) (governance.ValidateResponse, error) {
	if err := m.check(a); err != nil {
		if errors.Is(err, ErrAppNotFound) || errors.Is(err, ErrAssetNotFound) || errors.Is(err, ErrInvalidParams) || errors.Is(err, ErrUnknownAction) {
			return governance.ValidateResponse{Found: false, Err: err.Error()}, nil
		}
		return governance.ValidateResponse{}, err
	}
	return governance.ValidateResponse{Found: true}, nil
}

func (m *Module) check(a governance.Action) error {
	if !governance.IsKnownKind(a.Kind) {
		return fmt.Errorf("%w: %s", ErrUnknownAction, a.Kind)
	}
	if _, err := m.app(a.AppMappingID); err != nil {
		return err
	}
	refs, err := assetRefs(a)
	if err != nil {
		return err
	}
	for _, id := range refs {
		if _, err := m.asset(id); err != nil {
			return err
		}
	}
	return nil
}

// ApplyAction executes a passed action by recording its parameter set under
// (app, kind), replacing what an earlier proposal set.
func (m *Module) ApplyAction(proposalID uint64, a governance.Action) error {
	if err := m.check(a); err != nil {
		return err
	}
	if a.Kind == governance.KindBurnToken {
		b, err := parseBurn(a)
		if err != nil {
			return err
		}
		if err := m.Burn(a.AppMappingID, b.from, b.amount); err != nil {
			return err
		}
	}
	m.st.Set(appliedKey(a.AppMappingID, a.Kind), encodeApplied(Applied{ProposalID: proposalID, Params: a.Params}))
	m.logger.Info("action applied",
		zap.Uint64("proposal", proposalID),
		zap.Uint64("app", a.AppMappingID),
		zap.String("kind", a.Kind),
	)
	return nil
}

// Applied is the last parameter set written for an (app, kind) pair.
type Applied struct {
	ProposalID uint64
	Params     []byte
}

func (m *Module) AppliedParams(appID uint64, kind string) (Applied, bool, error) {
	raw := m.st.Get(appliedKey(appID, kind))
	if raw == nil {
		return Applied{}, false, nil
	}
	a, err := decodeApplied(*raw)
	return a, err == nil, err
}

// Burn destroys an app's governance tokens held by from.
func (m *Module) Burn(appID uint64, from sdk.Address, c coin.Coin) error {
	app, err := m.app(appID)
	if err != nil {
		return err
	}
	if app.GovTokenID == 0 {
		return fmt.Errorf("%w: app %d has no governance token", ErrWrongBurnDenom, appID)
	}
	gov, err := m.asset(app.GovTokenID)
	if err != nil {
		return err
	}
	if c.Denom != gov.Denom {
		return fmt.Errorf("%w: %s, want %s", ErrWrongBurnDenom, c.Denom, gov.Denom)
	}
	if err := m.bank.Burn(from, c); err != nil {
		return err
	}
	m.logger.Info("tokens burned", zap.Uint64("app", appID), zap.String("from", from.String()), zap.String("amount", c.String()))
	return nil
}
