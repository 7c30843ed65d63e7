package governance

import (
	"fmt"

	"github.com/CosmWasm/tinyjson/jlexer"
	"github.com/CosmWasm/tinyjson/jwriter"

	"govlock/coin"
	"govlock/contract/codec"
	"govlock/sdk"
)

// AppInfo is the slice of app config governance reads.
type AppInfo struct {
	MinGovDeposit    coin.Amount
	GovTimeInSeconds uint64
	GovTokenID       uint64
}

type AssetData struct {
	Denom string
}

// ValidateResponse mirrors the platform's dry run answer. Err explains a
// rejection when Found is false.
type ValidateResponse struct {
	Found bool
	Err   string
}

// Platform is the external app registry governance consults and dispatches to.
type Platform interface {
	GetApp(appID uint64) (AppInfo, error)
	GetAssetData(assetID uint64) (AssetData, error)
	TotalSupply(appID, assetID uint64) (coin.Amount, error)
	ValidateAction(a Action) (ValidateResponse, error)
}

// LockerQuerier is the read side of the locking contract governance needs.
type LockerQuerier interface {
	VTokenSupply(denom string) (coin.Amount, error)
	VotingPowerAt(owner sdk.Address, denom string, height uint64) (coin.Amount, error)
}

// ---- actions

const KindBurnToken = "msg_burn_token"

// ActionKinds lists every parameter change the platform understands.
var ActionKinds = []string{
	"msg_white_list_asset_locker",
	"msg_add_extended_pairs_vault",
	"msg_set_collector_lookup_table",
	"msg_set_auction_mapping_for_app",
	"msg_whitelist_app_id_vault_interest",
	"msg_whitelist_app_id_locker_rewards",
	"msg_update_lsr_in_pairs_vault",
	"msg_update_lsr_in_collector_lookup_table",
	"msg_remove_whitelist_asset_locker",
	"msg_remove_whitelist_app_id_vault_interest",
	"msg_whitelist_app_id_liquidation",
	"msg_remove_whitelist_app_id_liquidation",
	"msg_add_auction_params",
	"msg_add_e_s_m_trigger_params",
	KindBurnToken,
}

// IsKnownKind reports whether kind is one of ActionKinds.
func IsKnownKind(kind string) bool {
	for _, k := range ActionKinds {
		if k == kind {
			return true
		}
	}
	return false
}

// Proposable reports whether governance may carry the kind. Token burns are
// issued by Slash only.
func Proposable(kind string) bool {
	return kind != KindBurnToken && IsKnownKind(kind)
}

// Action is one opaque parameter change. Params keeps the raw JSON object of
// the variant, app_mapping_id included.
type Action struct {
	Kind         string
	AppMappingID uint64
	Params       []byte
}

// ParseAction reads the {"<kind>":{...,"app_mapping_id":N}} form.
// Example payload: {"msg_white_list_asset_locker":{"app_mapping_id":1,"asset_id":2}}
func ParseAction(data []byte) (Action, error) {
	var a Action
	if err := codec.Unmarshal(data, &a); err != nil {
		return Action{}, err
	}
	return a, nil
}

func (a Action) MarshalTinyJSON(w *jwriter.Writer) {
	w.RawByte('{')
	w.String(a.Kind)
	w.RawByte(':')
	if len(a.Params) == 0 {
		w.RawString(`{"app_mapping_id":`)
		w.Uint64(a.AppMappingID)
		w.RawByte('}')
	} else {
		w.Raw(a.Params, nil)
	}
	w.RawByte('}')
}

func (a *Action) UnmarshalTinyJSON(l *jlexer.Lexer) {
	l.Delim('{')
	seen := false
	for !l.IsDelim('}') {
		kind := l.UnsafeFieldName(false)
		l.WantColon()
		if seen {
			l.AddError(fmt.Errorf("action carries more than one variant: %q", kind))
			return
		}
		seen = true
		a.Kind = kind
		a.Params = append([]byte(nil), l.Raw()...)
		l.WantComma()
	}
	l.Delim('}')
	if !l.Ok() {
		return
	}
	if !seen {
		l.AddError(fmt.Errorf("empty action"))
		return
	}
	inner := jlexer.Lexer{Data: a.Params}
	inner.Delim('{')
	for !inner.IsDelim('}') {
		key := inner.UnsafeFieldName(false)
		inner.WantColon()
		if key == "app_mapping_id" {
			a.AppMappingID = inner.Uint64()
		} else {
			inner.SkipRecursive()
		}
		inner.WantComma()
	}
	inner.Delim('}')
	if err := inner.Error(); err != nil {
		l.AddError(fmt.Errorf("action %s: %v", a.Kind, err))
	}
}

// ---- deferred messages

// ExecuteActionMsg hands a passed proposal's action to the platform.
type ExecuteActionMsg struct {
	ProposalID uint64
	Action     Action
}

func (ExecuteActionMsg) MsgKind() string { return "execute_action" }

func (m ExecuteActionMsg) MarshalTinyJSON(w *jwriter.Writer) {
	w.RawString(`{"execute_action":{"proposal_id":`)
	w.Uint64(m.ProposalID)
	w.RawString(`,"action":`)
	m.Action.MarshalTinyJSON(w)
	w.RawString(`}}`)
}

// BurnMsg burns a slashed deposit pool held by the governance contract.
type BurnMsg struct {
	AppID  uint64
	Amount coin.Coin
	From   sdk.Address
}

func (BurnMsg) MsgKind() string { return "burn_gov_tokens" }

func (m BurnMsg) MarshalTinyJSON(w *jwriter.Writer) {
	w.RawString(`{"msg_burn_gov_tokens_for_app":{"app_id":`)
	w.Uint64(m.AppID)
	w.RawString(`,"amount":`)
	m.Amount.MarshalTinyJSON(w)
	w.RawString(`,"from":`)
	w.String(m.From.String())
	w.RawString(`}}`)
}
