package sdk

import "go.uber.org/zap"

// Context bundles what one invocation may touch: the block env, the caller,
// the contract's own state namespace and an event sink. A Context lives for
// exactly one call and is never shared.
type Context struct {
	Env    Env
	Info   MessageInfo
	State  State
	logger *zap.Logger
	events []string
}

// NewContext wires a fresh invocation context. A nil logger is replaced by a no-op one.
func NewContext(env Env, info MessageInfo, st State, logger *zap.Logger) *Context {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Context{Env: env, Info: info, State: st, logger: logger}
}

// Log records a terse event line (like "lk|by:alice|d:TKN|t:t1|am:100") for indexers.
// Example payload: ctx.Log("pc|id:1|by:alice")
func (c *Context) Log(line string) {
	c.events = append(c.events, line)
	c.logger.Debug("contract event",
		zap.String("contract", c.Env.Contract.String()),
		zap.Uint64("height", c.Env.Block.Height),
		zap.String("event", line),
	)
}

// Events returns the lines logged so far, in order.
func (c *Context) Events() []string {
	out := make([]string, len(c.events))
	copy(out, c.events)
	return out
}

func (c *Context) Logger() *zap.Logger { return c.logger }

func (c *Context) Sender() Address { return c.Info.Sender }

func (c *Context) Now() uint64 { return c.Env.Block.Time }

func (c *Context) Height() uint64 { return c.Env.Block.Height }
