package governance

import (
	"govlock/coin"
	"govlock/sdk"
)

// vetoShare is the share of participating weight above which veto blocks a proposal.
var vetoShare = coin.Percent(33)

// VotesNeeded returns ceil(pct * weight).
// Example payload: governance.VotesNeeded(coin.NewAmount(15), coin.Percent(50)) // 8
func VotesNeeded(weight coin.Amount, pct coin.Decimal) (coin.Amount, error) {
	return pct.MulAmountCeil(weight)
}

// ValidateThreshold accepts ThresholdQuorum with threshold in [0.5,1] and quorum in (0,1].
func ValidateThreshold(t Threshold) error {
	switch t.Kind {
	case ThresholdAbsoluteCount:
		return ErrAbsoluteCountNotAccepted
	case ThresholdAbsolutePercentage:
		return ErrAbsolutePercentageNotAccepted
	case ThresholdQuorumKind:
	default:
		return ErrInvalidThreshold
	}
	if t.Threshold.LT(coin.Percent(50)) || t.Threshold.GT(coin.OneDecimal()) {
		return ErrInvalidThreshold
	}
	if t.Quorum.IsZero() {
		return ErrZeroQuorumThreshold
	}
	if t.Quorum.GT(coin.OneDecimal()) {
		return ErrUnreachableQuorumThreshold
	}
	return nil
}

func (p *Proposal) quorumMet(total coin.Amount) (bool, error) {
	need, err := VotesNeeded(p.TotalWeight, p.Threshold.Quorum)
	if err != nil {
		return false, err
	}
	return total.GTE(need), nil
}

// IsPassed applies the quorum, veto and opinion checks to the tally as it stands.
func (p *Proposal) IsPassed() (bool, error) {
	total, err := p.Votes.Total()
	if err != nil {
		return false, err
	}
	if ok, err := p.quorumMet(total); err != nil || !ok {
		return false, err
	}
	if total.Equal(p.Votes.Abstain) {
		return false, nil
	}
	vetoMax, err := vetoShare.MulAmountFloor(total)
	if err != nil {
		return false, err
	}
	if p.Votes.Veto.GT(vetoMax) {
		return false, nil
	}
	opinions, err := total.Sub(p.Votes.Abstain)
	if err != nil {
		return false, err
	}
	need, err := VotesNeeded(opinions, p.Threshold.Threshold)
	if err != nil {
		return false, err
	}
	return p.Votes.Yes.GTE(need), nil
}

// passGuaranteed holds when no way of casting the remaining weight can make
// the proposal fail: every uncast unit is counted as veto for the veto check
// and as no for the opinion check.
func (p *Proposal) passGuaranteed() (bool, error) {
	total, err := p.Votes.Total()
	if err != nil {
		return false, err
	}
	if ok, err := p.quorumMet(total); err != nil || !ok {
		return false, err
	}
	if total.Equal(p.Votes.Abstain) {
		return false, nil
	}
	remaining := p.TotalWeight.SaturatingSub(total)
	final, err := total.Add(remaining)
	if err != nil {
		return false, err
	}
	vetoMax, err := vetoShare.MulAmountFloor(final)
	if err != nil {
		return false, err
	}
	worstVeto, err := p.Votes.Veto.Add(remaining)
	if err != nil {
		return false, err
	}
	if worstVeto.GT(vetoMax) {
		return false, nil
	}
	opinions, err := total.Sub(p.Votes.Abstain)
	if err != nil {
		return false, err
	}
	if opinions, err = opinions.Add(remaining); err != nil {
		return false, err
	}
	need, err := VotesNeeded(opinions, p.Threshold.Threshold)
	if err != nil {
		return false, err
	}
	return p.Votes.Yes.GTE(need), nil
}

// CheckVetoed reports a proposal that reached quorum and was then vetoed by
// more than a third of participating weight. Only those are slashable.
func (p *Proposal) CheckVetoed() (bool, error) {
	total, err := p.Votes.Total()
	if err != nil {
		return false, err
	}
	if ok, err := p.quorumMet(total); err != nil || !ok {
		return false, err
	}
	vetoMax, err := vetoShare.MulAmountFloor(total)
	if err != nil {
		return false, err
	}
	return p.Votes.Veto.GT(vetoMax), nil
}

// CurrentStatus derives the status at block without touching the record.
func (p *Proposal) CurrentStatus(block sdk.BlockInfo) (Status, error) {
	expired := p.Expires.IsExpired(block)
	switch p.Status {
	case StatusPending:
		if expired {
			return StatusRejected, nil
		}
		return StatusPending, nil
	case StatusOpen:
		if expired {
			passed, err := p.IsPassed()
			if err != nil {
				return p.Status, err
			}
			if passed {
				return StatusPassed, nil
			}
			return StatusRejected, nil
		}
		sealed, err := p.passGuaranteed()
		if err != nil {
			return p.Status, err
		}
		if sealed {
			return StatusPassed, nil
		}
		return StatusOpen, nil
	}
	return p.Status, nil
}

// UpdateStatus stores the derived status on the record.
func (p *Proposal) UpdateStatus(block sdk.BlockInfo) error {
	s, err := p.CurrentStatus(block)
	if err != nil {
		return err
	}
	p.Status = s
	return nil
}
