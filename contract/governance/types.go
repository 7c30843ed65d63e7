package governance

import (
	"fmt"
	"math/bits"

	"govlock/coin"
	"govlock/sdk"
)

// Vote is one ballot option.
type Vote uint8

const (
	VoteYes Vote = iota
	VoteNo
	VoteAbstain
	VoteVeto
)

func (v Vote) String() string {
	switch v {
	case VoteYes:
		return "yes"
	case VoteNo:
		return "no"
	case VoteAbstain:
		return "abstain"
	case VoteVeto:
		return "veto"
	default:
		return "unknown"
	}
}

// ParseVote accepts the lower case wire names.
// Example payload: governance.ParseVote("veto")
func ParseVote(s string) (Vote, error) {
	switch s {
	case "yes":
		return VoteYes, nil
	case "no":
		return VoteNo, nil
	case "abstain":
		return VoteAbstain, nil
	case "veto":
		return VoteVeto, nil
	}
	return 0, fmt.Errorf("%w: vote %q", ErrUnknownMessage, s)
}

// Status of a proposal. Executed is terminal.
type Status uint8

const (
	StatusPending Status = iota
	StatusOpen
	StatusRejected
	StatusPassed
	StatusExecuted
)

func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusOpen:
		return "open"
	case StatusRejected:
		return "rejected"
	case StatusPassed:
		return "passed"
	case StatusExecuted:
		return "executed"
	default:
		return "unknown"
	}
}

func ParseStatus(s string) (Status, error) {
	switch s {
	case "pending":
		return StatusPending, nil
	case "open":
		return StatusOpen, nil
	case "rejected":
		return StatusRejected, nil
	case "passed":
		return StatusPassed, nil
	case "executed":
		return StatusExecuted, nil
	}
	return 0, fmt.Errorf("%w: status %q", ErrUnknownMessage, s)
}

// Votes is the running tally of a proposal.
type Votes struct {
	Yes     coin.Amount
	No      coin.Amount
	Abstain coin.Amount
	Veto    coin.Amount
}

func (v *Votes) bucket(vote Vote) *coin.Amount {
	switch vote {
	case VoteYes:
		return &v.Yes
	case VoteNo:
		return &v.No
	case VoteAbstain:
		return &v.Abstain
	default:
		return &v.Veto
	}
}

// Add puts weight on vote's bucket.
func (v *Votes) Add(vote Vote, weight coin.Amount) error {
	b := v.bucket(vote)
	sum, err := b.Add(weight)
	if err != nil {
		return err
	}
	*b = sum
	return nil
}

// Sub takes a previous ballot back out of the tally.
func (v *Votes) Sub(vote Vote, weight coin.Amount) error {
	b := v.bucket(vote)
	rest, err := b.Sub(weight)
	if err != nil {
		return err
	}
	*b = rest
	return nil
}

// Total sums all four buckets.
func (v Votes) Total() (coin.Amount, error) {
	total := v.Yes
	for _, a := range []coin.Amount{v.No, v.Abstain, v.Veto} {
		var err error
		if total, err = total.Add(a); err != nil {
			return coin.Amount{}, err
		}
	}
	return total, nil
}

// Ballot is one voter's current choice on a proposal.
type Ballot struct {
	Weight coin.Amount
	Vote   Vote
}

// ExpirationKind tags the Expiration union.
type ExpirationKind uint8

const (
	ExpiresNever ExpirationKind = iota
	ExpiresAtHeight
	ExpiresAtTime
)

// Expiration is a deadline by block height, by unix seconds, or none.
type Expiration struct {
	Kind  ExpirationKind
	Value uint64
}

func AtHeight(h uint64) Expiration { return Expiration{Kind: ExpiresAtHeight, Value: h} }

func AtTime(secs uint64) Expiration { return Expiration{Kind: ExpiresAtTime, Value: secs} }

func Never() Expiration { return Expiration{Kind: ExpiresNever} }

// IsExpired reports whether block has reached the deadline.
func (e Expiration) IsExpired(block sdk.BlockInfo) bool {
	switch e.Kind {
	case ExpiresAtHeight:
		return block.Height >= e.Value
	case ExpiresAtTime:
		return block.Time >= e.Value
	default:
		return false
	}
}

// Compare orders two deadlines. ok is false when one is by height and the
// other by time. Never sorts after everything else.
func (e Expiration) Compare(o Expiration) (cmp int, ok bool) {
	switch {
	case e.Kind == ExpiresNever && o.Kind == ExpiresNever:
		return 0, true
	case e.Kind == ExpiresNever:
		return 1, true
	case o.Kind == ExpiresNever:
		return -1, true
	case e.Kind != o.Kind:
		return 0, false
	case e.Value < o.Value:
		return -1, true
	case e.Value > o.Value:
		return 1, true
	}
	return 0, true
}

func (e Expiration) String() string {
	switch e.Kind {
	case ExpiresAtHeight:
		return fmt.Sprintf("height:%d", e.Value)
	case ExpiresAtTime:
		return fmt.Sprintf("time:%d", e.Value)
	default:
		return "never"
	}
}

// Duration is a voting window, in seconds or in blocks.
type Duration struct {
	Height bool
	Value  uint64
}

// After turns the window into a deadline starting at block. A window that
// runs past the end of the clock is ErrOverflow.
func (d Duration) After(block sdk.BlockInfo) (Expiration, error) {
	start, unit := block.Time, "time"
	if d.Height {
		start, unit = block.Height, "height"
	}
	end, carry := bits.Add64(start, d.Value, 0)
	if carry != 0 {
		return Expiration{}, fmt.Errorf("%w: %s %d + %d", coin.ErrOverflow, unit, start, d.Value)
	}
	if d.Height {
		return AtHeight(end), nil
	}
	return AtTime(end), nil
}

// ThresholdKind tags the Threshold union. Only ThresholdQuorum is accepted.
type ThresholdKind uint8

const (
	ThresholdAbsoluteCount ThresholdKind = iota
	ThresholdAbsolutePercentage
	ThresholdQuorumKind
)

// Threshold is the pass requirement. Weight is read for AbsoluteCount,
// Percentage for AbsolutePercentage, and Threshold/Quorum for ThresholdQuorum.
type Threshold struct {
	Kind       ThresholdKind
	Weight     uint64
	Percentage coin.Decimal
	Threshold  coin.Decimal
	Quorum     coin.Decimal
}

// NewThresholdQuorum builds the one accepted threshold kind.
// Example payload: governance.NewThresholdQuorum(coin.Percent(50), coin.Percent(33))
func NewThresholdQuorum(threshold, quorum coin.Decimal) Threshold {
	return Threshold{Kind: ThresholdQuorumKind, Threshold: threshold, Quorum: quorum}
}

// Config is the single governance config record.
type Config struct {
	Threshold       Threshold
	LockingContract sdk.Address
}

// Proposal carries one governance action and every snapshot the status math needs.
type Proposal struct {
	ID             uint64
	Title          string
	Description    string
	StartTime      uint64
	StartHeight    uint64
	Expires        Expiration
	Action         Action
	Duration       Duration
	Status         Status
	Votes          Votes
	Threshold      Threshold
	TotalWeight    coin.Amount
	Deposit        coin.Coins
	Proposer       sdk.Address
	TokenDenom     string
	MinDeposit     coin.Amount
	CurrentDeposit coin.Amount
	AppMappingID   uint64
	IsSlashed      bool
}

// AppGovConfig is the per app aggregate kept next to the proposals.
type AppGovConfig struct {
	ProposalCount             uint64
	CurrentSupply             coin.Amount
	ActiveParticipationSupply coin.Amount
}
