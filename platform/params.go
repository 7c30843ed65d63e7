package platform

import (
	"fmt"

	"github.com/CosmWasm/tinyjson/jlexer"

	"govlock/coin"
	"govlock/contract/governance"
	"govlock/sdk"
)

// assetFields names the params of each kind that reference registered assets.
// A field holds either one id or a list of ids.
var assetFields = map[string][]string{
	"msg_white_list_asset_locker":              {"asset_id"},
	"msg_remove_whitelist_asset_locker":        {"asset_id"},
	"msg_set_collector_lookup_table":           {"collector_asset_id", "secondary_asset_id"},
	"msg_set_auction_mapping_for_app":          {"asset_id"},
	"msg_whitelist_app_id_locker_rewards":      {"asset_id"},
	"msg_update_lsr_in_collector_lookup_table": {"asset_id"},
}

func wanted(fields []string, key string) bool {
	for _, f := range fields {
		if f == key {
			return true
		}
	}
	return false
}

// assetRefs collects the asset ids an action points at. Every field listed
// for the kind must be present.
func assetRefs(a governance.Action) ([]uint64, error) {
	fields := assetFields[a.Kind]
	if len(fields) == 0 {
		return nil, nil
	}
	if len(a.Params) == 0 {
		return nil, fmt.Errorf("%w: %s needs %v", ErrInvalidParams, a.Kind, fields)
	}
	var ids []uint64
	seen := map[string]bool{}
	l := jlexer.Lexer{Data: a.Params}
	l.Delim('{')
	for !l.IsDelim('}') {
		key := l.UnsafeFieldName(false)
		l.WantColon()
		if !wanted(fields, key) {
			l.SkipRecursive()
			l.WantComma()
			continue
		}
		seen[key] = true
		if l.IsDelim('[') {
			l.Delim('[')
			for !l.IsDelim(']') {
				ids = append(ids, l.Uint64())
				l.WantComma()
			}
			l.Delim(']')
		} else {
			ids = append(ids, l.Uint64())
		}
		l.WantComma()
	}
	l.Delim('}')
	if err := l.Error(); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidParams, a.Kind, err)
	}
	for _, f := range fields {
		if !seen[f] {
			return nil, fmt.Errorf("%w: %s missing %s", ErrInvalidParams, a.Kind, f)
		}
	}
	return ids, nil
}

type burnParams struct {
	amount coin.Coin
	from   sdk.Address
}

// parseBurn reads {"app_mapping_id":N,"module":"...","amount":{...},"from_address":"..."}.
func parseBurn(a governance.Action) (burnParams, error) {
	var out burnParams
	l := jlexer.Lexer{Data: a.Params}
	l.Delim('{')
	for !l.IsDelim('}') {
		key := l.UnsafeFieldName(false)
		l.WantColon()
		switch key {
		case "amount":
			out.amount.UnmarshalTinyJSON(&l)
		case "from_address":
			out.from = sdk.Address(l.String())
		default:
			l.SkipRecursive()
		}
		l.WantComma()
	}
	l.Delim('}')
	if err := l.Error(); err != nil {
		return burnParams{}, fmt.Errorf("%w: %s: %v", ErrInvalidParams, a.Kind, err)
	}
	if !out.from.IsValid() || out.amount.Denom == "" {
		return burnParams{}, fmt.Errorf("%w: %s needs amount and from_address", ErrInvalidParams, a.Kind)
	}
	return out, nil
}
