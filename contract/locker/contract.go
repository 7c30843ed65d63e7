package locker

import (
	"fmt"

	"github.com/CosmWasm/tinyjson"

	"govlock/coin"
	"govlock/contract/codec"
	"govlock/sdk"
)

const (
	ContractName    = "govlock-locker"
	ContractVersion = "0.1.0"
)

// Contract adapts the locker to the host's byte-level entry points.
type Contract struct{}

func New() *Contract { return &Contract{} }

func validateTier(name string, pw PeriodWeight) error {
	if pw.Weight.GT(coin.OneDecimal()) {
		return fmt.Errorf("%w: %s weight %s", ErrInvalidWeight, name, pw.Weight)
	}
	return nil
}

// Instantiate stores the tier table. It can run only once per namespace.
// Example payload: {"t1":{"period":604800,"weight":"0.25"},...,"unlock_period":604800}
func Instantiate(ctx *sdk.Context, msg InstantiateMsg) (*sdk.Response, error) {
	if ctx.State.Get(configKey()) != nil {
		return nil, ErrAlreadyInstalled
	}
	for i, pw := range []PeriodWeight{msg.T1, msg.T2, msg.T3, msg.T4} {
		if err := validateTier(Periods[i].String(), pw); err != nil {
			return nil, err
		}
	}
	if err := sdk.SetContractVersion(ctx.State, ContractName, ContractVersion); err != nil {
		return nil, err
	}
	cfg := Config{
		T1:           msg.T1,
		T2:           msg.T2,
		T3:           msg.T3,
		T4:           msg.T4,
		UnlockPeriod: msg.UnlockPeriod,
	}
	saveConfig(ctx.State, &cfg)
	return sdk.NewResponse().
		AddAttribute("action", "instantiate").
		AddAttribute("from", ctx.Sender().String()), nil
}

func (c *Contract) Instantiate(ctx *sdk.Context, raw []byte) (*sdk.Response, error) {
	var msg InstantiateMsg
	if err := codec.Unmarshal(raw, &msg); err != nil {
		return nil, err
	}
	return Instantiate(ctx, msg)
}

func (c *Contract) Execute(ctx *sdk.Context, raw []byte) (*sdk.Response, error) {
	name, body, err := codec.Variant(raw)
	if err != nil {
		return nil, err
	}
	switch name {
	case "lock":
		var msg LockMsg
		if err := codec.Unmarshal(body, &msg); err != nil {
			return nil, err
		}
		return Lock(ctx, msg)
	case "unlock":
		var msg UnlockMsg
		if err := codec.Unmarshal(body, &msg); err != nil {
			return nil, err
		}
		return Unlock(ctx, msg)
	case "withdraw":
		var msg WithdrawMsg
		if err := codec.Unmarshal(body, &msg); err != nil {
			return nil, err
		}
		return Withdraw(ctx, msg)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownMessage, name)
}

// owner falls back to the query sender when no address is given.
func owner(ctx *sdk.Context, addr *string) (sdk.Address, error) {
	if addr == nil {
		return ctx.Sender(), nil
	}
	return sdk.ValidateAddress(*addr)
}

func (c *Contract) Query(ctx *sdk.Context, raw []byte) ([]byte, error) {
	name, body, err := codec.Variant(raw)
	if err != nil {
		return nil, err
	}
	var out tinyjson.Marshaler
	switch name {
	case "issued_nft", "locked_tokens", "unlocking_tokens", "unlocked_tokens", "issued_vtokens":
		var q ownerQuery
		if err := codec.Unmarshal(body, &q); err != nil {
			return nil, err
		}
		who, err := owner(ctx, q.Address)
		if err != nil {
			return nil, err
		}
		switch name {
		case "issued_nft":
			info, err := QueryIssuedNft(ctx.State, who)
			if err != nil {
				return nil, err
			}
			out = IssuedNftResponse{Nft: info}
		case "issued_vtokens":
			vs, err := QueryIssuedVtokens(ctx.State, who)
			if err != nil {
				return nil, err
			}
			out = IssuedVtokensResponse{VTokens: vs}
		default:
			kind := map[string]Status{
				"locked_tokens":    StatusLocked,
				"unlocking_tokens": StatusUnlocking,
				"unlocked_tokens":  StatusUnlocked,
			}[name]
			cs, err := QueryTokens(ctx.State, kind, who, q.Denom)
			if err != nil {
				return nil, err
			}
			out = TokensResponse{Tokens: cs}
		}
	case "supply":
		var q ownerQuery
		if err := codec.Unmarshal(body, &q); err != nil {
			return nil, err
		}
		if q.Denom == nil {
			return nil, fmt.Errorf("%w: supply needs a denom", codec.ErrInvalidJSON)
		}
		s, err := QuerySupply(ctx.State, *q.Denom)
		if err != nil {
			return nil, err
		}
		out = s
	case "total_v_tokens":
		var q powerQuery
		if err := codec.Unmarshal(body, &q); err != nil {
			return nil, err
		}
		who, err := sdk.ValidateAddress(q.Address)
		if err != nil {
			return nil, err
		}
		height := ctx.Height()
		if q.Height != nil {
			height = *q.Height
		}
		amt, err := QueryTotalVTokens(ctx.State, who, q.Denom, height)
		if err != nil {
			return nil, err
		}
		out = amt
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownMessage, name)
	}
	return codec.Marshal(out)
}

// Migrate only moves the version tag forward; the record layout is unchanged.
func (c *Contract) Migrate(ctx *sdk.Context, _ []byte) (*sdk.Response, error) {
	if err := sdk.AssertMigratable(ctx.State, ContractName, ContractVersion); err != nil {
		return nil, err
	}
	if err := sdk.SetContractVersion(ctx.State, ContractName, ContractVersion); err != nil {
		return nil, err
	}
	return sdk.NewResponse().
		AddAttribute("action", "migrate").
		AddAttribute("version", ContractVersion), nil
}
