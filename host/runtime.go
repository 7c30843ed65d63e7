// Package host runs the contracts the way a chain would: one block clock, a
// custody bank, and every invocation applied all-or-nothing.
package host

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"govlock/coin"
	"govlock/contract/codec"
	"govlock/contract/governance"
	"govlock/contract/locker"
	"govlock/platform"
	"govlock/sdk"
	"govlock/store"
)

var (
	ErrUnknownContract   = errors.New("no contract at address")
	ErrDuplicateContract = errors.New("contract address already registered")
	ErrNotLocker         = errors.New("contract is not a locker")
	ErrNoSudo            = errors.New("contract has no sudo entry point")
	ErrUnknownMsg        = errors.New("unknown deferred message")
	ErrContractPanic     = errors.New("contract panicked")
	ErrClock             = errors.New("block clock cannot move backwards")
)

// SudoSender is the caller every sudo invocation runs as.
const SudoSender sdk.Address = "system:sudo"

const (
	bankNS     = "bank/"
	platformNS = "platform/"
	hostNS     = "host/"
	blockKey   = hostNS + "block"
)

// contractNS is the store prefix of one contract. Register keeps '/' out of
// contract addresses so no namespace is a prefix of another.
func contractNS(addr sdk.Address) string {
	return "c/" + addr.String() + "/"
}

// Contract is the byte level surface every contract exposes.
type Contract interface {
	Instantiate(ctx *sdk.Context, raw []byte) (*sdk.Response, error)
	Execute(ctx *sdk.Context, raw []byte) (*sdk.Response, error)
	Query(ctx *sdk.Context, raw []byte) ([]byte, error)
	Migrate(ctx *sdk.Context, raw []byte) (*sdk.Response, error)
}

type Sudoer interface {
	Sudo(ctx *sdk.Context, raw []byte) (*sdk.Response, error)
}

type Options struct {
	ChainID      string
	StartHeight  uint64
	StartTime    uint64
	BlockSeconds uint64
	Logger       *zap.Logger
	Registerer   prometheus.Registerer
}

// Runtime owns the backend and serialises every invocation on it.
type Runtime struct {
	mu           sync.Mutex
	backend      sdk.State
	block        sdk.BlockInfo
	blockSeconds uint64
	contracts    map[sdk.Address]Contract
	txSeq        uint64
	logger       *zap.Logger
	metrics      *Metrics
}

// New opens a runtime over backend. A clock persisted by an earlier run wins
// over the start options.
func New(backend sdk.State, opts Options) (*Runtime, error) {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.BlockSeconds == 0 {
		opts.BlockSeconds = 5
	}
	r := &Runtime{
		backend:      backend,
		block:        sdk.BlockInfo{Height: opts.StartHeight, Time: opts.StartTime, ChainID: opts.ChainID},
		blockSeconds: opts.BlockSeconds,
		contracts:    make(map[sdk.Address]Contract),
		logger:       opts.Logger,
		metrics:      NewMetrics(opts.Registerer),
	}
	if raw := backend.Get(blockKey); raw != nil {
		b, err := decodeBlock(*raw)
		if err != nil {
			return nil, err
		}
		b.ChainID = opts.ChainID
		r.block = b
	}
	r.metrics.SetHeight(r.block.Height)
	return r, nil
}

func encodeBlock(b sdk.BlockInfo) string {
	w := codec.NewWriter()
	w.WriteUint64(b.Height)
	w.WriteUint64(b.Time)
	return w.String()
}

func decodeBlock(raw string) (sdk.BlockInfo, error) {
	r := codec.NewStringReader(raw)
	h, err := r.ReadUint64()
	if err != nil {
		return sdk.BlockInfo{}, fmt.Errorf("stored block: %w", err)
	}
	t, err := r.ReadUint64()
	if err != nil {
		return sdk.BlockInfo{}, fmt.Errorf("stored block: %w", err)
	}
	return sdk.BlockInfo{Height: h, Time: t}, nil
}

// Register binds a contract implementation to an address. Registration is
// per process; the contract's state lives in the backend.
func (r *Runtime) Register(addr sdk.Address, c Contract) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !addr.IsValid() {
		return fmt.Errorf("%w: %q", sdk.ErrInvalidAddress, addr)
	}
	if strings.Contains(addr.String(), "/") {
		return fmt.Errorf("%w: contract address %q contains '/'", sdk.ErrInvalidAddress, addr)
	}
	if _, ok := r.contracts[addr]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateContract, addr)
	}
	r.contracts[addr] = c
	return nil
}

// Platform is the registry over committed state, read only.
func (r *Runtime) Platform() *platform.Module {
	return platform.New(
		store.ReadOnly{State: store.NewPrefix(r.backend, platformNS)},
		NewBank(store.ReadOnly{State: store.NewPrefix(r.backend, bankNS)}),
		r.logger,
	)
}

// LockerResolver hands governance a querier over the committed namespace of
// whichever locker its config currently names.
func (r *Runtime) LockerResolver() governance.LockerResolver {
	return func(addr sdk.Address) (governance.LockerQuerier, error) {
		c, ok := r.contracts[addr]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownContract, addr)
		}
		if _, ok := c.(*locker.Contract); !ok {
			return nil, fmt.Errorf("%w: %s", ErrNotLocker, addr)
		}
		return locker.NewQuerier(store.ReadOnly{State: store.NewPrefix(r.backend, contractNS(addr))}), nil
	}
}

func (r *Runtime) Block() sdk.BlockInfo {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.block
}

func (r *Runtime) setBlock(b sdk.BlockInfo) error {
	cache := store.NewCache(r.backend)
	cache.Set(blockKey, encodeBlock(b))
	if err := cache.Commit(); err != nil {
		return err
	}
	b.ChainID = r.block.ChainID
	r.block = b
	r.metrics.SetHeight(b.Height)
	r.logger.Debug("block moved", zap.Uint64("height", b.Height), zap.Uint64("time", b.Time))
	return nil
}

// AdvanceBlocks moves the clock n blocks forward, block_seconds each.
func (r *Runtime) AdvanceBlocks(n uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.setBlock(sdk.BlockInfo{Height: r.block.Height + n, Time: r.block.Time + n*r.blockSeconds})
}

func (r *Runtime) SetBlock(height, unix uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if height < r.block.Height || unix < r.block.Time {
		return fmt.Errorf("%w: at %d/%d, asked %d/%d", ErrClock, r.block.Height, r.block.Time, height, unix)
	}
	return r.setBlock(sdk.BlockInfo{Height: height, Time: unix})
}

// write runs fn on a fresh cache and commits only when fn succeeds.
func (r *Runtime) write(fn func(cache *store.Cache) error) error {
	cache := store.NewCache(r.backend)
	if err := fn(cache); err != nil {
		cache.Discard()
		return err
	}
	return cache.Commit()
}

func (r *Runtime) platformOn(cache *store.Cache) *platform.Module {
	return platform.New(store.NewPrefix(cache, platformNS), NewBank(store.NewPrefix(cache, bankNS)), r.logger)
}

// Fund mints coins straight into an account, the faucet of the reference host.
func (r *Runtime) Fund(addr sdk.Address, cs coin.Coins) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !addr.IsValid() {
		return fmt.Errorf("%w: %q", sdk.ErrInvalidAddress, addr)
	}
	return r.write(func(cache *store.Cache) error {
		return NewBank(store.NewPrefix(cache, bankNS)).Mint(addr, cs)
	})
}

func (r *Runtime) Balance(addr sdk.Address) (coin.Coins, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return NewBank(store.NewPrefix(r.backend, bankNS)).Balances(addr)
}

func (r *Runtime) RegisterAsset(a platform.Asset) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.write(func(cache *store.Cache) error {
		return r.platformOn(cache).RegisterAsset(a)
	})
}

func (r *Runtime) RegisterApp(a platform.App) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.write(func(cache *store.Cache) error {
		return r.platformOn(cache).RegisterApp(a)
	})
}

// ---- invocation

type entryFn func(c Contract, ctx *sdk.Context) (*sdk.Response, error)

func actionOf(entry string, raw []byte) string {
	if entry != "execute" && entry != "sudo" {
		return entry
	}
	name, _, err := codec.Variant(raw)
	if err != nil {
		return "invalid"
	}
	return name
}

// invoke is the one write path: funds move in, the contract runs on its
// namespace, deferred messages dispatch, and the cache commits only if all
// of that succeeded.
func (r *Runtime) invoke(addr, sender sdk.Address, entry string, raw []byte, funds coin.Coins, run entryFn) (res *sdk.Response, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	action := actionOf(entry, raw)
	start := time.Now()
	log := r.logger.With(
		zap.String("contract", addr.String()),
		zap.String("entry", entry),
		zap.String("action", action),
		zap.Uint64("height", r.block.Height),
	)
	defer func() {
		r.metrics.ObserveInvocation(addr.String(), entry, action, time.Since(start).Seconds(), err)
		if err != nil {
			log.Info("invocation failed", zap.String("sender", sender.String()), zap.Error(err))
		}
	}()

	c, ok := r.contracts[addr]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownContract, addr)
	}
	if !sender.IsValid() {
		return nil, fmt.Errorf("%w: %q", sdk.ErrInvalidAddress, sender)
	}

	cache := store.NewCache(r.backend)
	defer func() {
		if rec := recover(); rec != nil {
			cache.Discard()
			res, err = nil, fmt.Errorf("%w: %v", ErrContractPanic, rec)
		}
	}()

	bank := NewBank(store.NewPrefix(cache, bankNS))
	if err := bank.Send(sender, addr, funds); err != nil {
		cache.Discard()
		return nil, err
	}

	r.txSeq++
	env := sdk.Env{Block: r.block, Contract: addr, TxID: strconv.FormatUint(r.block.Height, 10) + "-" + strconv.FormatUint(r.txSeq, 10)}
	ctx := sdk.NewContext(env, sdk.MessageInfo{Sender: sender, Funds: funds}, store.NewPrefix(cache, contractNS(addr)), log)
	res, err = run(c, ctx)
	if err != nil {
		cache.Discard()
		return nil, err
	}
	res.Events = ctx.Events()

	for _, m := range res.Messages {
		if err := r.dispatch(cache, bank, addr, m); err != nil {
			cache.Discard()
			return nil, err
		}
	}
	if err := cache.Commit(); err != nil {
		return nil, err
	}
	log.Debug("invocation committed", zap.String("sender", sender.String()), zap.Int("messages", len(res.Messages)))
	return res, nil
}

// dispatch executes one deferred message on the invocation's cache.
func (r *Runtime) dispatch(cache *store.Cache, bank *Bank, from sdk.Address, m sdk.Msg) error {
	var err error
	switch msg := m.(type) {
	case sdk.BankSend:
		err = bank.Send(from, msg.To, msg.Amount)
	case governance.ExecuteActionMsg:
		err = r.platformOn(cache).ApplyAction(msg.ProposalID, msg.Action)
	case governance.BurnMsg:
		err = r.platformOn(cache).Burn(msg.AppID, msg.From, msg.Amount)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownMsg, m.MsgKind())
	}
	if err != nil {
		return fmt.Errorf("dispatch %s: %w", m.MsgKind(), err)
	}
	r.metrics.AddMessage(m.MsgKind())
	return nil
}

func (r *Runtime) Instantiate(addr, sender sdk.Address, raw []byte, funds coin.Coins) (*sdk.Response, error) {
	return r.invoke(addr, sender, "instantiate", raw, funds, func(c Contract, ctx *sdk.Context) (*sdk.Response, error) {
		return c.Instantiate(ctx, raw)
	})
}

func (r *Runtime) Execute(addr, sender sdk.Address, raw []byte, funds coin.Coins) (*sdk.Response, error) {
	return r.invoke(addr, sender, "execute", raw, funds, func(c Contract, ctx *sdk.Context) (*sdk.Response, error) {
		return c.Execute(ctx, raw)
	})
}

func (r *Runtime) Migrate(addr, sender sdk.Address, raw []byte) (*sdk.Response, error) {
	return r.invoke(addr, sender, "migrate", raw, nil, func(c Contract, ctx *sdk.Context) (*sdk.Response, error) {
		return c.Migrate(ctx, raw)
	})
}

// Sudo is the privileged path; callers gate who may reach it.
func (r *Runtime) Sudo(addr sdk.Address, raw []byte) (*sdk.Response, error) {
	return r.invoke(addr, SudoSender, "sudo", raw, nil, func(c Contract, ctx *sdk.Context) (*sdk.Response, error) {
		s, ok := c.(Sudoer)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrNoSudo, ctx.Env.Contract)
		}
		return s.Sudo(ctx, raw)
	})
}

// Query runs against committed state through a read only view.
func (r *Runtime) Query(addr sdk.Address, raw []byte) (out []byte, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.contracts[addr]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownContract, addr)
	}
	defer func() {
		if rec := recover(); rec != nil {
			out, err = nil, fmt.Errorf("%w: %v", ErrContractPanic, rec)
		}
	}()
	env := sdk.Env{Block: r.block, Contract: addr}
	ctx := sdk.NewContext(env, sdk.MessageInfo{}, store.ReadOnly{State: store.NewPrefix(r.backend, contractNS(addr))}, r.logger)
	return c.Query(ctx, raw)
}
