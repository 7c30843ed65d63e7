package sdk

import "govlock/coin"

// BlockInfo is all the core reads from the chain: height and unix time in seconds.
type BlockInfo struct {
	Height  uint64
	Time    uint64
	ChainID string
}

// MessageInfo carries the authenticated sender and the funds attached to the call.
// Funds are already in the contract's custody when the contract runs.
type MessageInfo struct {
	Sender Address
	Funds  coin.Coins
}

// Env is the per-invocation snapshot handed to a contract.
type Env struct {
	Block    BlockInfo
	Contract Address
	TxID     string
}
