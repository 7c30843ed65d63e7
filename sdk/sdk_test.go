package sdk_test

import (
	"errors"
	"testing"

	"github.com/CosmWasm/tinyjson/jwriter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"govlock/coin"
	"govlock/sdk"
	"govlock/store"
)

func TestAddressValidity(t *testing.T) {
	assert.True(t, sdk.Address("comdex1abc").IsValid())
	assert.False(t, sdk.Address("").IsValid())
	assert.False(t, sdk.Address("foo bar").IsValid())
	assert.Equal(t, sdk.AddressDomainContract, sdk.Address("contract:locker").Domain())
	assert.Equal(t, sdk.AddressDomainUser, sdk.Address("alice").Domain())

	_, err := sdk.ValidateAddress("a\tb")
	assert.ErrorIs(t, err, sdk.ErrInvalidAddress)
}

// TestMigrateGate checks the version tag flow so upgrades never go backwards.
func TestMigrateGate(t *testing.T) {
	st := store.NewMemory()
	assert.ErrorIs(t, sdk.AssertMigratable(st, "govlock-locker", "0.1.0"), sdk.ErrNoVersion)

	require.NoError(t, sdk.SetContractVersion(st, "govlock-locker", "0.2.0"))
	v, err := sdk.GetContractVersion(st)
	require.NoError(t, err)
	assert.Equal(t, "v0.2.0", v.Version)

	assert.NoError(t, sdk.AssertMigratable(st, "govlock-locker", "0.2.0"))
	assert.NoError(t, sdk.AssertMigratable(st, "govlock-locker", "v0.3.0"))
	assert.True(t, errors.Is(sdk.AssertMigratable(st, "govlock-locker", "0.1.9"), sdk.ErrMigrateNewer))
	assert.True(t, errors.Is(sdk.AssertMigratable(st, "govlock-governance", "0.2.0"), sdk.ErrMigrateName))
	assert.ErrorIs(t, sdk.SetContractVersion(st, "x", "not-a-version"), sdk.ErrInvalidVersion)
}

func TestContextLogMirrorsToZap(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	env := sdk.Env{Block: sdk.BlockInfo{Height: 7, Time: 100}, Contract: "contract:locker"}
	ctx := sdk.NewContext(env, sdk.MessageInfo{Sender: "alice"}, store.NewMemory(), zap.New(core))

	ctx.Log("lk|by:alice")
	ctx.Log("ul|by:alice")
	assert.Equal(t, []string{"lk|by:alice", "ul|by:alice"}, ctx.Events())
	assert.Equal(t, 2, logs.FilterMessage("contract event").Len())
	assert.Equal(t, sdk.Address("alice"), ctx.Sender())
	assert.Equal(t, uint64(7), ctx.Height())
	assert.Equal(t, uint64(100), ctx.Now())
}

func TestResponseJSON(t *testing.T) {
	res := sdk.NewResponse().
		AddAttribute("action", "Withdraw").
		AddAttribute("Recipent", "alice").
		AddMessage(sdk.BankSend{To: "alice", Amount: coin.Coins{coin.NewCoin("TKN", coin.NewAmount(10))}})
	res.Events = []string{"wd|by:alice"}

	v, ok := res.Attr("Recipent")
	assert.True(t, ok)
	assert.Equal(t, "alice", v)

	w := jwriter.Writer{}
	res.MarshalTinyJSON(&w)
	raw, err := w.BuildBytes()
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"attributes":[{"key":"action","value":"Withdraw"},{"key":"Recipent","value":"alice"}],
		"events":["wd|by:alice"],
		"messages":[{"bank_send":{"to_address":"alice","amount":[{"denom":"TKN","amount":"10"}]}}]
	}`, string(raw))
}
