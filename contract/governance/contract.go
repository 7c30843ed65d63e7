package governance

import (
	"fmt"

	"github.com/CosmWasm/tinyjson"

	"govlock/contract/codec"
	"govlock/sdk"
)

const (
	ContractName    = "govlock-governance"
	ContractVersion = "0.1.0"
)

// LockerResolver finds the locker deployed at addr.
type LockerResolver func(addr sdk.Address) (LockerQuerier, error)

// Contract adapts governance to the host's byte-level entry points.
type Contract struct {
	platform Platform
	lockers  LockerResolver
}

func New(platform Platform, lockers LockerResolver) *Contract {
	return &Contract{platform: platform, lockers: lockers}
}

// deps resolves the locker currently named in config.
func (c *Contract) deps(st sdk.State) (Deps, error) {
	cfg, err := loadConfig(st)
	if err != nil {
		return Deps{}, err
	}
	locker, err := c.lockers(cfg.LockingContract)
	if err != nil {
		return Deps{}, err
	}
	return Deps{Platform: c.platform, Locker: locker}, nil
}

// Instantiate stores the threshold and locker address.
// Example payload: {"threshold":{"threshold_quorum":{"threshold":"0.5","quorum":"0.33"}},"locking_contract":"contract:locker"}
func Instantiate(ctx *sdk.Context, msg InstantiateMsg) (*sdk.Response, error) {
	if err := noFunds(ctx); err != nil {
		return nil, err
	}
	if ctx.State.Get(configKey()) != nil {
		return nil, ErrAlreadyInstalled
	}
	if err := ValidateThreshold(msg.Threshold); err != nil {
		return nil, err
	}
	locker, err := sdk.ValidateAddress(msg.LockingContract)
	if err != nil {
		return nil, err
	}
	if err := sdk.SetContractVersion(ctx.State, ContractName, ContractVersion); err != nil {
		return nil, err
	}
	saveConfig(ctx.State, &Config{Threshold: msg.Threshold, LockingContract: locker})
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
	case "propose":
		var env proposeEnvelope
		if err := codec.Unmarshal(body, &env); err != nil {
			return nil, err
		}
		deps, err := c.deps(ctx.State)
		if err != nil {
			return nil, err
		}
		return Propose(ctx, deps, env.Propose)
	case "vote":
		var msg VoteMsg
		if err := codec.Unmarshal(body, &msg); err != nil {
			return nil, err
		}
		deps, err := c.deps(ctx.State)
		if err != nil {
			return nil, err
		}
		return CastVote(ctx, deps, msg)
	case "execute", "deposit", "refund", "slash":
		var msg ProposalMsg
		if err := codec.Unmarshal(body, &msg); err != nil {
			return nil, err
		}
		switch name {
		case "execute":
			return Execute(ctx, msg)
		case "deposit":
			return Deposit(ctx, msg)
		case "refund":
			return Refund(ctx, msg)
		default:
			return Slash(ctx, msg)
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownMessage, name)
}

func (c *Contract) Query(ctx *sdk.Context, raw []byte) ([]byte, error) {
	name, body, err := codec.Variant(raw)
	if err != nil {
		return nil, err
	}
	block := ctx.Env.Block
	var out tinyjson.Marshaler
	switch name {
	case "threshold", "proposal":
		var q proposalQuery
		if err := codec.Unmarshal(body, &q); err != nil {
			return nil, err
		}
		if name == "threshold" {
			out, err = QueryThreshold(ctx.State, q.ProposalID)
		} else {
			out, err = QueryProposal(ctx.State, block, q.ProposalID)
		}
	case "list_proposals", "reverse_proposals":
		var q listQuery
		if err := codec.Unmarshal(body, &q); err != nil {
			return nil, err
		}
		if name == "list_proposals" {
			out, err = QueryListProposals(ctx.State, block, q.Start, q.Limit)
		} else {
			out, err = QueryReverseProposals(ctx.State, block, q.Start, q.Limit)
		}
	case "vote":
		var q voteQuery
		if err := codec.Unmarshal(body, &q); err != nil {
			return nil, err
		}
		voter, verr := sdk.ValidateAddress(q.Voter)
		if verr != nil {
			return nil, verr
		}
		out, err = QueryVote(ctx.State, q.ProposalID, voter)
	case "list_votes":
		var q listVotesQuery
		if err := codec.Unmarshal(body, &q); err != nil {
			return nil, err
		}
		out, err = QueryListVotes(ctx.State, q.ProposalID, q.StartAfter, q.Limit)
	case "list_app_proposal":
		var q appProposalQuery
		if err := codec.Unmarshal(body, &q); err != nil {
			return nil, err
		}
		out, err = QueryListAppProposal(ctx.State, block, q.AppID, q.StartAfter, q.Limit, q.Status)
	case "app_all_up_data":
		var q appQuery
		if err := codec.Unmarshal(body, &q); err != nil {
			return nil, err
		}
		deps, derr := c.deps(ctx.State)
		if derr != nil {
			return nil, derr
		}
		out, err = QueryAppAllUpData(ctx.State, deps, q.AppID)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownMessage, name)
	}
	if err != nil {
		return nil, err
	}
	return codec.Marshal(out)
}

// Sudo serves the privileged reconfiguration messages. The host only routes
// here from its admin path.
func (c *Contract) Sudo(ctx *sdk.Context, raw []byte) (*sdk.Response, error) {
	name, body, err := codec.Variant(raw)
	if err != nil {
		return nil, err
	}
	switch name {
	case "update_locking_contract":
		var msg updateLockingContractMsg
		if err := codec.Unmarshal(body, &msg); err != nil {
			return nil, err
		}
		return UpdateLockingContract(ctx, msg.Address)
	case "update_threshold":
		var msg updateThresholdMsg
		if err := codec.Unmarshal(body, &msg); err != nil {
			return nil, err
		}
		return UpdateThreshold(ctx, msg.Threshold)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownMessage, name)
}

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
