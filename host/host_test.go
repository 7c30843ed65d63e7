package host

import (
	"fmt"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"govlock/coin"
	"govlock/contract/governance"
	"govlock/contract/locker"
	"govlock/platform"
	"govlock/sdk"
	"govlock/store"
)

const (
	week        = uint64(604_800)
	genesis     = uint64(1_700_000_000)
	lockerAddr  = sdk.Address("contract:locker")
	govAddr     = sdk.Address("contract:gov")
	govDenom    = "ucmdx"
	votingDelay = 3600
)

const lockerInit = `{
	"t1":{"period":604800,"weight":"0.25"},
	"t2":{"period":1209600,"weight":"0.5"},
	"t3":{"period":1814400,"weight":"0.75"},
	"t4":{"period":2419200,"weight":"1"},
	"unlock_period":604800}`

const govInit = `{"threshold":{"threshold_quorum":{"threshold":"0.5","quorum":"0.33"}},"locking_contract":"contract:locker"}`

const whitelistAction = `{"msg_white_list_asset_locker":{"app_mapping_id":1,"asset_id":2}}`

func coins(s string) coin.Coins {
	cs, err := coin.ParseCoins(s)
	if err != nil {
		panic(err)
	}
	return cs
}

// newRuntime wires both contracts and the platform over a fresh backend.
func newRuntime(t *testing.T, backend sdk.State, logger *zap.Logger) *Runtime {
	t.Helper()
	rt, err := New(backend, Options{
		ChainID:      "govlock-test",
		StartHeight:  1,
		StartTime:    genesis,
		BlockSeconds: 5,
		Logger:       logger,
		Registerer:   prometheus.NewRegistry(),
	})
	require.NoError(t, err)
	require.NoError(t, rt.Register(lockerAddr, locker.New()))
	require.NoError(t, rt.Register(govAddr, governance.New(rt.Platform(), rt.LockerResolver())))

	require.NoError(t, rt.RegisterAsset(platform.Asset{ID: 7, Denom: govDenom}))
	require.NoError(t, rt.RegisterAsset(platform.Asset{ID: 2, Denom: "uatom"}))
	require.NoError(t, rt.RegisterApp(platform.App{ID: 1, Name: "harbor", MinGovDeposit: coin.NewAmount(10), GovTimeInSeconds: votingDelay, GovTokenID: 7}))

	_, err = rt.Instantiate(lockerAddr, "admin", []byte(lockerInit), nil)
	require.NoError(t, err)
	_, err = rt.Instantiate(govAddr, "admin", []byte(govInit), nil)
	require.NoError(t, err)
	return rt
}

// HostSuite runs the end to end scenarios on one runtime per test.
type HostSuite struct {
	suite.Suite
	rt *Runtime
}

func TestHostSuite(t *testing.T) {
	suite.Run(t, new(HostSuite))
}

func (s *HostSuite) SetupTest() {
	s.rt = newRuntime(s.T(), store.NewMemory(), nil)
	for _, who := range []sdk.Address{"alice", "bob", "carol", "dave"} {
		s.Require().NoError(s.rt.Fund(who, coins("1000ucmdx,1000TKN")))
	}
}

func (s *HostSuite) exec(contract, sender sdk.Address, msg string, funds string) (*sdk.Response, error) {
	var cs coin.Coins
	if funds != "" {
		cs = coins(funds)
	}
	return s.rt.Execute(contract, sender, []byte(msg), cs)
}

func (s *HostSuite) mustExec(contract, sender sdk.Address, msg string, funds string) *sdk.Response {
	res, err := s.exec(contract, sender, msg, funds)
	s.Require().NoError(err)
	return res
}

func (s *HostSuite) balance(addr sdk.Address, denom string) string {
	cs, err := s.rt.Balance(addr)
	s.Require().NoError(err)
	a, _ := cs.AmountOf(denom)
	return a.String()
}

func (s *HostSuite) query(contract sdk.Address, msg string) string {
	out, err := s.rt.Query(contract, []byte(msg))
	s.Require().NoError(err)
	return string(out)
}

// lockPower gives alice 40, bob 30, carol 20 and dave 10 voting power at weight 1.
func (s *HostSuite) lockPower() {
	for who, n := range map[sdk.Address]int{"alice": 40, "bob": 30, "carol": 20, "dave": 10} {
		s.mustExec(lockerAddr, who, `{"lock":{"app_id":1,"locking_period":"t4"}}`, fmt.Sprintf("%ducmdx", n))
	}
	s.Require().NoError(s.rt.AdvanceBlocks(2))
}

func (s *HostSuite) propose(sender sdk.Address, deposit string) string {
	res := s.mustExec(govAddr, sender, `{"propose":{"propose":{"title":"wl","description":"whitelist uatom","msgs":[`+whitelistAction+`],"app_id_param":1}}}`, deposit)
	id, _ := res.Attr("proposal_id")
	return id
}

func (s *HostSuite) vote(sender sdk.Address, id, v string) {
	s.mustExec(govAddr, sender, fmt.Sprintf(`{"vote":{"proposal_id":%s,"vote":%q}}`, id, v), "")
}

// expire moves the clock past the voting window.
func (s *HostSuite) expire() {
	s.Require().NoError(s.rt.AdvanceBlocks(votingDelay/5 + 1))
}

// TestLockLifecycle checks lock, relock, unlock and withdraw with custody moving through the bank.
func (s *HostSuite) TestLockLifecycle() {
	s.mustExec(lockerAddr, "alice", `{"lock":{"app_id":1,"locking_period":"t1"}}`, "100TKN")
	s.Equal("900", s.balance("alice", "TKN"))
	s.Equal("100", s.balance(lockerAddr, "TKN"))
	s.JSONEq(`{"vtokens":[{
		"token":{"denom":"TKN","amount":"100"},
		"vtoken":{"denom":"vTKN","amount":"25"},
		"period":"t1","start_time":1700000000,"end_time":1700604800,"status":"locked"}]}`,
		s.query(lockerAddr, `{"issued_vtokens":{"address":"alice"}}`))

	relock := genesis + 100_000
	s.Require().NoError(s.rt.SetBlock(2, relock))
	s.mustExec(lockerAddr, "alice", `{"lock":{"app_id":1,"locking_period":"t1"}}`, "100TKN")
	out := s.query(lockerAddr, `{"issued_vtokens":{"address":"alice"}}`)
	s.Contains(out, `"token":{"denom":"TKN","amount":"200"}`)
	s.Contains(out, `"vtoken":{"denom":"vTKN","amount":"50"}`)
	s.Contains(out, fmt.Sprintf(`"end_time":%d`, relock+week))

	end := relock + week
	s.Require().NoError(s.rt.SetBlock(3, end+week-1))
	s.mustExec(lockerAddr, "alice", `{"unlock":{"app_id":1,"denom":"TKN"}}`, "")
	s.Contains(s.query(lockerAddr, `{"issued_vtokens":{"address":"alice"}}`), `"status":"unlocking"`)

	s.Require().NoError(s.rt.SetBlock(4, end+week+1))
	s.mustExec(lockerAddr, "alice", `{"unlock":{"app_id":1,"denom":"TKN"}}`, "")
	s.Contains(s.query(lockerAddr, `{"issued_vtokens":{"address":"alice"}}`), `"status":"unlocked"`)

	res := s.mustExec(lockerAddr, "alice", `{"withdraw":{"app_id":1,"denom":"TKN","amount":"10","locking_period":"t1"}}`, "")
	s.Len(res.Messages, 1)
	s.Equal("810", s.balance("alice", "TKN"))
	s.Equal("190", s.balance(lockerAddr, "TKN"))

	s.mustExec(lockerAddr, "alice", `{"withdraw":{"app_id":1,"denom":"TKN","amount":"190","locking_period":"t1"}}`, "")
	s.Equal("1000", s.balance("alice", "TKN"))
	s.JSONEq(`{"vtokens":[]}`, s.query(lockerAddr, `{"issued_vtokens":{"address":"alice"}}`))
	_, err := s.exec(lockerAddr, "alice", `{"withdraw":{"app_id":1,"denom":"TKN","amount":"1"}}`, "")
	s.ErrorIs(err, locker.ErrNotFound)
}

// TestFailedCallLeavesNoTrace checks a rejected call returns the attached funds and writes nothing.
func (s *HostSuite) TestFailedCallLeavesNoTrace() {
	s.lockPower()

	_, err := s.exec(govAddr, "alice", `{"propose":{"propose":{"title":"t","description":"d","msgs":[],"app_id_param":1}}}`, "10ucmdx")
	s.ErrorIs(err, governance.ErrNoMessage)
	_, err = s.exec(govAddr, "alice", `{"propose":{"propose":{"title":"t","description":"d","msgs":[`+whitelistAction+`,`+whitelistAction+`],"app_id_param":1}}}`, "10ucmdx")
	s.ErrorIs(err, governance.ErrExtraMessages)

	s.Equal("960", s.balance("alice", govDenom))
	s.Equal("0", s.balance(govAddr, govDenom))
	s.JSONEq(`{"proposals":[]}`, s.query(govAddr, `{"list_proposals":{}}`))

	_, err = s.exec(govAddr, "eve", `{"vote":{"proposal_id":1,"vote":"yes"}}`, "5ucmdx")
	s.ErrorIs(err, ErrInsufficientBalance)

	_, err = s.exec("contract:nobody", "alice", `{"lock":{}}`, "")
	s.ErrorIs(err, ErrUnknownContract)
}

// TestPendingThenOpen checks a short deposit leaves the proposal pending until topped up.
func (s *HostSuite) TestPendingThenOpen() {
	s.lockPower()
	id := s.propose("alice", "5ucmdx")
	s.Contains(s.query(govAddr, `{"proposal":{"proposal_id":1}}`), `"status":"pending"`)

	_, err := s.exec(govAddr, "bob", `{"vote":{"proposal_id":1,"vote":"yes"}}`, "")
	s.ErrorIs(err, governance.ErrNotOpen)

	s.mustExec(govAddr, "bob", fmt.Sprintf(`{"deposit":{"proposal_id":%s}}`, id), "5ucmdx")
	s.Contains(s.query(govAddr, `{"proposal":{"proposal_id":1}}`), `"status":"open"`)
	s.Equal("10", s.balance(govAddr, govDenom))
}

// TestPassAndExecute checks a passed proposal's action lands in the platform.
func (s *HostSuite) TestPassAndExecute() {
	s.lockPower()
	id := s.propose("alice", "10ucmdx")
	s.vote("bob", id, "yes")
	s.Contains(s.query(govAddr, `{"proposal":{"proposal_id":1}}`), `"status":"passed"`)

	res := s.mustExec(govAddr, "carol", `{"execute":{"proposal_id":1}}`, "")
	s.Require().Len(res.Messages, 1)
	applied, ok, err := s.rt.Platform().AppliedParams(1, "msg_white_list_asset_locker")
	s.Require().NoError(err)
	s.Require().True(ok)
	s.Equal(uint64(1), applied.ProposalID)
	s.JSONEq(`{"app_mapping_id":1,"asset_id":2}`, string(applied.Params))
	s.Equal(1.0, testutil.ToFloat64(s.rt.metrics.messages.WithLabelValues("execute_action")))

	_, err = s.exec(govAddr, "carol", `{"execute":{"proposal_id":1}}`, "")
	s.ErrorIs(err, governance.ErrWrongExecuteStatus)

	s.mustExec(govAddr, "alice", `{"refund":{"proposal_id":1}}`, "")
	s.Equal("960", s.balance("alice", govDenom))

	s.JSONEq(`{"proposal_count":1,"current_supply":"100","active_participation_supply":"70","platform_supply":"4000"}`,
		s.query(govAddr, `{"app_all_up_data":{"app_id":1}}`))
}

// TestRejectedRefund checks a rejection without a veto majority refunds every depositor.
func (s *HostSuite) TestRejectedRefund() {
	s.lockPower()
	id := s.propose("dave", "10ucmdx")
	s.mustExec(govAddr, "bob", fmt.Sprintf(`{"deposit":{"proposal_id":%s}}`, id), "5ucmdx")
	s.vote("carol", id, "no")
	s.vote("bob", id, "no")
	s.expire()
	s.Contains(s.query(govAddr, `{"proposal":{"proposal_id":1}}`), `"status":"rejected"`)

	_, err := s.exec(govAddr, "carol", `{"slash":{"proposal_id":1}}`, "")
	s.ErrorIs(err, governance.ErrProposalNotVetoed)

	s.mustExec(govAddr, "dave", `{"refund":{"proposal_id":1}}`, "")
	s.mustExec(govAddr, "bob", `{"refund":{"proposal_id":1}}`, "")
	s.Equal("990", s.balance("dave", govDenom))
	s.Equal("970", s.balance("bob", govDenom))
	s.Equal("0", s.balance(govAddr, govDenom))

	_, err = s.exec(govAddr, "dave", `{"refund":{"proposal_id":1}}`, "")
	s.ErrorIs(err, governance.ErrNoDeposit)
}

// TestVetoSlash checks a vetoed proposal burns its whole deposit pool exactly once.
func (s *HostSuite) TestVetoSlash() {
	s.lockPower()
	id := s.propose("dave", "10ucmdx")
	s.mustExec(govAddr, "bob", fmt.Sprintf(`{"deposit":{"proposal_id":%s}}`, id), "5ucmdx")
	s.vote("bob", id, "veto")
	s.vote("carol", id, "no")
	s.expire()

	_, err := s.exec(govAddr, "dave", `{"refund":{"proposal_id":1}}`, "")
	s.ErrorIs(err, governance.ErrSlashedProposal)

	bank := NewBank(store.NewPrefix(s.rt.backend, bankNS))
	before, err := bank.Supply(govDenom)
	s.Require().NoError(err)

	res := s.mustExec(govAddr, "carol", `{"slash":{"proposal_id":1}}`, "")
	s.Require().Len(res.Messages, 1)
	s.Equal("0", s.balance(govAddr, govDenom))
	after, err := bank.Supply(govDenom)
	s.Require().NoError(err)
	burned, err := before.Sub(after)
	s.Require().NoError(err)
	s.Equal("15", burned.String())
	s.Contains(s.query(govAddr, `{"proposal":{"proposal_id":1}}`), `"is_slashed":true`)

	_, err = s.exec(govAddr, "carol", `{"slash":{"proposal_id":1}}`, "")
	s.ErrorIs(err, governance.ErrAlreadySlashed)
}

// TestSudoSwitchesLocker checks governance follows the locker named by the latest sudo update.
func (s *HostSuite) TestSudoSwitchesLocker() {
	s.lockPower()
	s.Require().NoError(s.rt.Register("contract:locker2", locker.New()))
	_, err := s.rt.Instantiate("contract:locker2", "admin", []byte(lockerInit), nil)
	s.Require().NoError(err)

	_, err = s.rt.Sudo(govAddr, []byte(`{"update_locking_contract":{"address":"contract:locker2"}}`))
	s.Require().NoError(err)

	_, err = s.exec(govAddr, "alice", `{"propose":{"propose":{"title":"t","description":"d","msgs":[`+whitelistAction+`],"app_id_param":1}}}`, "10ucmdx")
	s.ErrorIs(err, governance.ErrZeroSupply)

	_, err = s.rt.Sudo(govAddr, []byte(`{"update_locking_contract":{"address":"contract:gov"}}`))
	s.Require().NoError(err)
	_, err = s.exec(govAddr, "alice", `{"propose":{"propose":{"title":"t","description":"d","msgs":[`+whitelistAction+`],"app_id_param":1}}}`, "10ucmdx")
	s.ErrorIs(err, ErrNotLocker)

	_, err = s.rt.Sudo(lockerAddr, []byte(`{"anything":{}}`))
	s.ErrorIs(err, ErrNoSudo)
}

func (s *HostSuite) TestMigrate() {
	_, err := s.rt.Migrate(govAddr, "admin", nil)
	s.NoError(err)
	_, err = s.rt.Migrate(lockerAddr, "admin", nil)
	s.NoError(err)
}

// ---- plain tests

// writer is a contract whose query tries to write.
type writer struct{}

func (writer) Instantiate(*sdk.Context, []byte) (*sdk.Response, error) { return sdk.NewResponse(), nil }
func (writer) Execute(*sdk.Context, []byte) (*sdk.Response, error)     { return sdk.NewResponse(), nil }
func (writer) Migrate(*sdk.Context, []byte) (*sdk.Response, error)     { return sdk.NewResponse(), nil }

func (writer) Query(ctx *sdk.Context, _ []byte) ([]byte, error) {
	ctx.State.Set("k", "v")
	return nil, nil
}

func TestQueryIsReadOnly(t *testing.T) {
	rt, err := New(store.NewMemory(), Options{})
	require.NoError(t, err)
	require.NoError(t, rt.Register("contract:w", writer{}))
	_, err = rt.Query("contract:w", []byte(`{}`))
	assert.ErrorIs(t, err, ErrContractPanic)
}

// TestRegisterRejectsNestedAddress checks a contract address cannot extend another contract's store namespace.
func TestRegisterRejectsNestedAddress(t *testing.T) {
	rt, err := New(store.NewMemory(), Options{})
	require.NoError(t, err)
	require.NoError(t, rt.Register("contract:w", writer{}))

	err = rt.Register("contract:w/y", writer{})
	assert.ErrorIs(t, err, sdk.ErrInvalidAddress)
	_, err = rt.Query("contract:w/y", []byte(`{}`))
	assert.ErrorIs(t, err, ErrUnknownContract)
}

func TestClockPersists(t *testing.T) {
	mem := store.NewMemory()
	rt, err := New(mem, Options{StartHeight: 1, StartTime: genesis, BlockSeconds: 6})
	require.NoError(t, err)
	require.NoError(t, rt.AdvanceBlocks(10))
	assert.Equal(t, sdk.BlockInfo{Height: 11, Time: genesis + 60}, rt.Block())

	assert.ErrorIs(t, rt.SetBlock(5, genesis), ErrClock)

	again, err := New(mem, Options{ChainID: "c", StartHeight: 1, StartTime: genesis})
	require.NoError(t, err)
	assert.Equal(t, sdk.BlockInfo{Height: 11, Time: genesis + 60, ChainID: "c"}, again.Block())
}

// TestBadgerBackend checks the full stack on the badger store, reopening the runtime on the same db.
func TestBadgerBackend(t *testing.T) {
	db, err := store.OpenBadger("", true, nil)
	require.NoError(t, err)
	defer db.Close()

	rt := newRuntime(t, db, nil)
	require.NoError(t, rt.Fund("alice", coins("100ucmdx")))
	_, err = rt.Execute(lockerAddr, "alice", []byte(`{"lock":{"app_id":1,"locking_period":"t4"}}`), coins("40ucmdx"))
	require.NoError(t, err)
	require.NoError(t, db.Err())

	out, err := rt.Query(lockerAddr, []byte(`{"supply":{"denom":"ucmdx"}}`))
	require.NoError(t, err)
	assert.JSONEq(t, `{"token":"40","vtoken":"40"}`, string(out))

	bal, err := rt.Balance("alice")
	require.NoError(t, err)
	assert.Equal(t, "60ucmdx", bal.String())
}

// TestInvocationLogsAndMetrics checks events are mirrored to zap and invocations are counted.
func TestInvocationLogsAndMetrics(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	rt := newRuntime(t, store.NewMemory(), zap.New(core))
	require.NoError(t, rt.Fund("alice", coins("100ucmdx")))

	_, err := rt.Execute(lockerAddr, "alice", []byte(`{"lock":{"app_id":1,"locking_period":"t4"}}`), coins("40ucmdx"))
	require.NoError(t, err)
	_, err = rt.Execute(lockerAddr, "alice", []byte(`{"lock":{"app_id":1,"locking_period":"t9"}}`), coins("1ucmdx"))
	require.Error(t, err)

	events := logs.FilterMessage("contract event").FilterField(zap.String("action", "lock"))
	assert.NotZero(t, events.Len())
	assert.Equal(t, 1, logs.FilterMessage("invocation failed").Len())

	assert.Equal(t, 1.0, testutil.ToFloat64(rt.metrics.invocations.WithLabelValues(lockerAddr.String(), "lock", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(rt.metrics.invocations.WithLabelValues(lockerAddr.String(), "lock", "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(rt.metrics.height))
}

func TestBank(t *testing.T) {
	b := NewBank(store.NewMemory())
	require.NoError(t, b.Mint("alice", coins("10ucmdx,5uatom")))
	require.NoError(t, b.Send("alice", "bob", coins("4ucmdx")))
	err := b.Send("alice", "bob", coins("7ucmdx"))
	assert.ErrorIs(t, err, ErrInsufficientBalance)
	require.NoError(t, b.Burn("bob", coin.NewCoin("ucmdx", coin.NewAmount(4))))

	all, err := b.Balances("alice")
	require.NoError(t, err)
	assert.Equal(t, "5uatom,6ucmdx", all.String())
	bob, err := b.Balances("bob")
	require.NoError(t, err)
	assert.Empty(t, bob)

	supply, err := b.Supply("ucmdx")
	require.NoError(t, err)
	assert.Equal(t, "6", supply.String())
}
