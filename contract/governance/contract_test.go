package governance

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"govlock/coin"
	"govlock/contract/codec"
	"govlock/sdk"
	"govlock/store"
)

const initJSON = `{"threshold":{"threshold_quorum":{"threshold":"0.5","quorum":"0.33"}},"locking_contract":"contract:locker"}`

// TestContractJSONFlow drives a proposal from the wire format through vote, execute and the queries.
func TestContractJSONFlow(t *testing.T) {
	st := store.NewMemory()
	platform := newFakePlatform()
	locker := newFakeLocker()
	var resolved []sdk.Address
	c := New(platform, func(addr sdk.Address) (LockerQuerier, error) {
		resolved = append(resolved, addr)
		return locker, nil
	})
	height, now := uint64(10), genesis
	ctx := func(sender sdk.Address, funds ...coin.Coin) *sdk.Context {
		env := sdk.Env{Block: sdk.BlockInfo{Height: height, Time: now}, Contract: "contract:gov"}
		return sdk.NewContext(env, sdk.MessageInfo{Sender: sender, Funds: funds}, st, nil)
	}

	_, err := c.Instantiate(ctx("admin"), []byte(initJSON))
	require.NoError(t, err)

	res, err := c.Execute(ctx("alice", gov(10)), []byte(`{"propose":{"propose":{
		"title":"wl","description":"whitelist asset 2",
		"msgs":[{"msg_white_list_asset_locker":{"app_mapping_id":1,"asset_id":2}}],
		"latest":null,"app_id_param":1}}}`))
	require.NoError(t, err)
	id, _ := res.Attr("proposal_id")
	assert.Equal(t, "1", id)
	assert.Equal(t, []sdk.Address{"contract:locker"}, resolved)

	_, err = c.Execute(ctx("bob"), []byte(`{"vote":{"proposal_id":1,"vote":"yes"}}`))
	require.NoError(t, err)

	out, err := c.Query(ctx("bob"), []byte(`{"vote":{"proposal_id":1,"voter":"bob"}}`))
	require.NoError(t, err)
	assert.JSONEq(t, `{"vote":{"proposal_id":1,"voter":"bob","vote":"yes","weight":"30"}}`, string(out))

	out, err = c.Query(ctx("bob"), []byte(`{"vote":{"proposal_id":1,"voter":"zed"}}`))
	require.NoError(t, err)
	assert.JSONEq(t, `{"vote":null}`, string(out))

	out, err = c.Query(ctx("bob"), []byte(`{"proposal":{"proposal_id":1}}`))
	require.NoError(t, err)
	for _, frag := range []string{
		`"status":"passed"`,
		`"votes":{"yes":"70","no":"0","abstain":"0","veto":"0"}`,
		`"start_time":"1700000000000000000"`,
		`"expires":{"at_time":"1700003600000000000"}`,
		`"msgs":[{"msg_white_list_asset_locker":{"app_mapping_id":1,"asset_id":2}}]`,
		`"current_deposit":"10"`,
		`"is_slashed":false`,
	} {
		assert.Contains(t, string(out), frag)
	}

	out, err = c.Query(ctx("bob"), []byte(`{"threshold":{"proposal_id":1}}`))
	require.NoError(t, err)
	assert.Contains(t, string(out), `"total_weight":"100"`)

	res, err = c.Execute(ctx("carol"), []byte(`{"execute":{"proposal_id":1}}`))
	require.NoError(t, err)
	require.Len(t, res.Messages, 1)
	raw, err := codec.Marshal(res.Messages[0])
	require.NoError(t, err)
	assert.JSONEq(t, `{"execute_action":{"proposal_id":1,"action":{"msg_white_list_asset_locker":{"app_mapping_id":1,"asset_id":2}}}}`, string(raw))

	out, err = c.Query(ctx("bob"), []byte(`{"list_app_proposal":{"app_id":1,"status":"executed"}}`))
	require.NoError(t, err)
	assert.Contains(t, string(out), `"proposal_count":1`)

	out, err = c.Query(ctx("bob"), []byte(`{"list_votes":{"proposal_id":1,"start_after":"alice","limit":5}}`))
	require.NoError(t, err)
	assert.JSONEq(t, `{"votes":[{"proposal_id":1,"voter":"bob","vote":"yes","weight":"30"}]}`, string(out))

	out, err = c.Query(ctx("bob"), []byte(`{"reverse_proposals":{"start_before":null,"limit":2}}`))
	require.NoError(t, err)
	assert.Contains(t, string(out), `"status":"executed"`)

	out, err = c.Query(ctx("bob"), []byte(`{"app_all_up_data":{"app_id":1}}`))
	require.NoError(t, err)
	assert.JSONEq(t, `{"proposal_count":1,"current_supply":"100","active_participation_supply":"70","platform_supply":"5000"}`, string(out))

	_, err = c.Execute(ctx("carol"), []byte(`{"vote":{"proposal_id":1,"vote":"maybe"}}`))
	assert.ErrorIs(t, err, codec.ErrInvalidJSON)
	_, err = c.Execute(ctx("carol"), []byte(`{"close":{"proposal_id":1}}`))
	assert.ErrorIs(t, err, ErrUnknownMessage)
	_, err = c.Query(ctx("carol"), []byte(`{"config":{}}`))
	assert.ErrorIs(t, err, ErrUnknownMessage)
	_, err = c.Query(ctx("carol"), []byte(`{"proposal":{"proposal_id":9}}`))
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = c.Sudo(ctx("admin"), []byte(`{"update_locking_contract":{"address":"contract:locker2"}}`))
	require.NoError(t, err)
	now += 10
	height++
	_, err = c.Execute(ctx("alice", gov(10)), []byte(fmt.Sprintf(`{"propose":{"propose":{
		"title":"t","description":"d","action":{"msg_whitelist_app_id_locker_rewards":{"app_mapping_id":%d}},"app_id":1}}}`, appID)))
	require.NoError(t, err)
	assert.Equal(t, sdk.Address("contract:locker2"), resolved[len(resolved)-1])

	_, err = c.Sudo(ctx("admin"), []byte(`{"update_threshold":{"threshold":{"threshold_quorum":{"threshold":"0.6","quorum":"0.2"}}}}`))
	require.NoError(t, err)
	cfg, err := loadConfig(st)
	require.NoError(t, err)
	assert.True(t, cfg.Threshold.Quorum.Equal(coin.Percent(20)))

	_, err = c.Sudo(ctx("admin"), []byte(`{"pause":{}}`))
	assert.ErrorIs(t, err, ErrUnknownMessage)
}

func TestMigrate(t *testing.T) {
	st := store.NewMemory()
	ctx := sdk.NewContext(sdk.Env{}, sdk.MessageInfo{Sender: "admin"}, st, nil)
	c := New(newFakePlatform(), nil)
	_, err := c.Instantiate(ctx, []byte(initJSON))
	require.NoError(t, err)

	_, err = c.Migrate(ctx, nil)
	assert.NoError(t, err)

	require.NoError(t, sdk.SetContractVersion(st, ContractName, "3.0.0"))
	_, err = c.Migrate(ctx, nil)
	assert.ErrorIs(t, err, sdk.ErrMigrateNewer)

	require.NoError(t, sdk.SetContractVersion(st, "govlock-locker", "0.1.0"))
	_, err = c.Migrate(ctx, nil)
	assert.ErrorIs(t, err, sdk.ErrMigrateName)
}
