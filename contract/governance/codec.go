package governance

import (
	"fmt"

	"govlock/contract/codec"
	"govlock/sdk"
)

func encodeThreshold(w *codec.Writer, t Threshold) {
	_ = w.WriteByte(byte(t.Kind))
	w.WriteUint64(t.Weight)
	w.WriteDecimal(t.Percentage)
	w.WriteDecimal(t.Threshold)
	w.WriteDecimal(t.Quorum)
}

func decodeThreshold(r *codec.Reader) (Threshold, error) {
	var t Threshold
	k, err := r.ReadByte()
	if err != nil {
		return t, err
	}
	t.Kind = ThresholdKind(k)
	if t.Weight, err = r.ReadUint64(); err != nil {
		return t, err
	}
	if t.Percentage, err = r.ReadDecimal(); err != nil {
		return t, err
	}
	if t.Threshold, err = r.ReadDecimal(); err != nil {
		return t, err
	}
	t.Quorum, err = r.ReadDecimal()
	return t, err
}

func encodeConfig(cfg *Config) string {
	w := codec.NewWriter()
	encodeThreshold(w, cfg.Threshold)
	w.WriteString(cfg.LockingContract.String())
	return w.String()
}

func decodeConfig(raw string) (Config, error) {
	r := codec.NewStringReader(raw)
	var cfg Config
	var err error
	if cfg.Threshold, err = decodeThreshold(r); err != nil {
		return cfg, fmt.Errorf("%w: config: %v", ErrCorruptState, err)
	}
	addr, err := r.ReadString()
	if err != nil {
		return cfg, fmt.Errorf("%w: config: %v", ErrCorruptState, err)
	}
	cfg.LockingContract = sdk.Address(addr)
	return cfg, nil
}

func encodeVotes(w *codec.Writer, v Votes) {
	w.WriteAmount(v.Yes)
	w.WriteAmount(v.No)
	w.WriteAmount(v.Abstain)
	w.WriteAmount(v.Veto)
}

func decodeVotes(r *codec.Reader) (Votes, error) {
	var v Votes
	var err error
	if v.Yes, err = r.ReadAmount(); err != nil {
		return v, err
	}
	if v.No, err = r.ReadAmount(); err != nil {
		return v, err
	}
	if v.Abstain, err = r.ReadAmount(); err != nil {
		return v, err
	}
	v.Veto, err = r.ReadAmount()
	return v, err
}

func encodeAction(w *codec.Writer, a Action) {
	w.WriteString(a.Kind)
	w.WriteUint64(a.AppMappingID)
	w.WriteBytes(a.Params)
}

func decodeAction(r *codec.Reader) (Action, error) {
	var a Action
	var err error
	if a.Kind, err = r.ReadString(); err != nil {
		return a, err
	}
	if a.AppMappingID, err = r.ReadUint64(); err != nil {
		return a, err
	}
	a.Params, err = r.ReadBytes()
	return a, err
}

func encodeProposal(p *Proposal) string {
	w := codec.NewWriter()
	w.WriteUint64(p.ID)
	w.WriteString(p.Title)
	w.WriteString(p.Description)
	w.WriteUint64(p.StartTime)
	w.WriteUint64(p.StartHeight)
	_ = w.WriteByte(byte(p.Expires.Kind))
	w.WriteUint64(p.Expires.Value)
	encodeAction(w, p.Action)
	w.WriteBool(p.Duration.Height)
	w.WriteUint64(p.Duration.Value)
	_ = w.WriteByte(byte(p.Status))
	encodeVotes(w, p.Votes)
	encodeThreshold(w, p.Threshold)
	w.WriteAmount(p.TotalWeight)
	w.WriteCoins(p.Deposit)
	w.WriteString(p.Proposer.String())
	w.WriteString(p.TokenDenom)
	w.WriteAmount(p.MinDeposit)
	w.WriteAmount(p.CurrentDeposit)
	w.WriteUint64(p.AppMappingID)
	w.WriteBool(p.IsSlashed)
	return w.String()
}

func decodeProposal(raw string) (Proposal, error) {
	p, err := readProposal(codec.NewStringReader(raw))
	if err != nil {
		return p, fmt.Errorf("%w: proposal: %v", ErrCorruptState, err)
	}
	return p, nil
}

func readProposal(r *codec.Reader) (Proposal, error) {
	var p Proposal
	var err error
	if p.ID, err = r.ReadUint64(); err != nil {
		return p, err
	}
	if p.Title, err = r.ReadString(); err != nil {
		return p, err
	}
	if p.Description, err = r.ReadString(); err != nil {
		return p, err
	}
	if p.StartTime, err = r.ReadUint64(); err != nil {
		return p, err
	}
	if p.StartHeight, err = r.ReadUint64(); err != nil {
		return p, err
	}
	kind, err := r.ReadByte()
	if err != nil {
		return p, err
	}
	p.Expires.Kind = ExpirationKind(kind)
	if p.Expires.Value, err = r.ReadUint64(); err != nil {
		return p, err
	}
	if p.Action, err = decodeAction(r); err != nil {
		return p, err
	}
	if p.Duration.Height, err = r.ReadBool(); err != nil {
		return p, err
	}
	if p.Duration.Value, err = r.ReadUint64(); err != nil {
		return p, err
	}
	status, err := r.ReadByte()
	if err != nil {
		return p, err
	}
	p.Status = Status(status)
	if p.Votes, err = decodeVotes(r); err != nil {
		return p, err
	}
	if p.Threshold, err = decodeThreshold(r); err != nil {
		return p, err
	}
	if p.TotalWeight, err = r.ReadAmount(); err != nil {
		return p, err
	}
	if p.Deposit, err = r.ReadCoins(); err != nil {
		return p, err
	}
	proposer, err := r.ReadString()
	if err != nil {
		return p, err
	}
	p.Proposer = sdk.Address(proposer)
	if p.TokenDenom, err = r.ReadString(); err != nil {
		return p, err
	}
	if p.MinDeposit, err = r.ReadAmount(); err != nil {
		return p, err
	}
	if p.CurrentDeposit, err = r.ReadAmount(); err != nil {
		return p, err
	}
	if p.AppMappingID, err = r.ReadUint64(); err != nil {
		return p, err
	}
	p.IsSlashed, err = r.ReadBool()
	return p, err
}

func encodeBallot(b Ballot) string {
	w := codec.NewWriter()
	w.WriteAmount(b.Weight)
	_ = w.WriteByte(byte(b.Vote))
	return w.String()
}

func decodeBallot(raw string) (Ballot, error) {
	r := codec.NewStringReader(raw)
	var b Ballot
	var err error
	if b.Weight, err = r.ReadAmount(); err != nil {
		return b, fmt.Errorf("%w: ballot: %v", ErrCorruptState, err)
	}
	v, err := r.ReadByte()
	if err != nil {
		return b, fmt.Errorf("%w: ballot: %v", ErrCorruptState, err)
	}
	b.Vote = Vote(v)
	return b, nil
}

func encodeAppGov(a AppGovConfig) string {
	w := codec.NewWriter()
	w.WriteUint64(a.ProposalCount)
	w.WriteAmount(a.CurrentSupply)
	w.WriteAmount(a.ActiveParticipationSupply)
	return w.String()
}

func decodeAppGov(raw string) (AppGovConfig, error) {
	r := codec.NewStringReader(raw)
	var a AppGovConfig
	var err error
	if a.ProposalCount, err = r.ReadUint64(); err != nil {
		return a, fmt.Errorf("%w: app gov: %v", ErrCorruptState, err)
	}
	if a.CurrentSupply, err = r.ReadAmount(); err != nil {
		return a, fmt.Errorf("%w: app gov: %v", ErrCorruptState, err)
	}
	if a.ActiveParticipationSupply, err = r.ReadAmount(); err != nil {
		return a, fmt.Errorf("%w: app gov: %v", ErrCorruptState, err)
	}
	return a, nil
}
