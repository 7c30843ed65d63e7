package governance

import (
	"fmt"
	"strconv"

	"github.com/CosmWasm/tinyjson/jlexer"
	"github.com/CosmWasm/tinyjson/jwriter"

	"govlock/coin"
	"govlock/contract/codec"
)

const nanosPerSecond = 1_000_000_000

// unixNanos renders whole seconds as nanoseconds. The product of a u64 and
// 1e9 always fits the 128 bits of an Amount.
func unixNanos(secs uint64) string {
	n, _ := coin.NewAmount(secs).Mul(coin.NewAmount(nanosPerSecond))
	return n.String()
}

type InstantiateMsg struct {
	Threshold       Threshold
	LockingContract string
}

// ProposeMsg carries the actions as a list so a wrong count can be reported
// as such instead of failing to parse.
type ProposeMsg struct {
	Title       string
	Description string
	Msgs        []Action
	Latest      *Expiration
	AppID       uint64
}

type VoteMsg struct {
	ProposalID uint64
	Vote       Vote
}

// ProposalMsg is the body of execute, deposit, refund and slash.
type ProposalMsg struct {
	ProposalID uint64
}

// ---- json: enums and unions

func (v Vote) MarshalTinyJSON(w *jwriter.Writer) {
	w.String(v.String())
}

func (v *Vote) UnmarshalTinyJSON(l *jlexer.Lexer) {
	s := l.String()
	if !l.Ok() {
		return
	}
	parsed, err := ParseVote(s)
	if err != nil {
		l.AddError(err)
		return
	}
	*v = parsed
}

func (s Status) MarshalTinyJSON(w *jwriter.Writer) {
	w.String(s.String())
}

func (s *Status) UnmarshalTinyJSON(l *jlexer.Lexer) {
	str := l.String()
	if !l.Ok() {
		return
	}
	parsed, err := ParseStatus(str)
	if err != nil {
		l.AddError(err)
		return
	}
	*s = parsed
}

// Expiration travels as {"at_height":N}, {"at_time":"<unix nanos>"} or {"never":{}}.
func (e Expiration) MarshalTinyJSON(w *jwriter.Writer) {
	switch e.Kind {
	case ExpiresAtHeight:
		w.RawString(`{"at_height":`)
		w.Uint64(e.Value)
		w.RawByte('}')
	case ExpiresAtTime:
		w.RawString(`{"at_time":`)
		w.String(unixNanos(e.Value))
		w.RawByte('}')
	default:
		w.RawString(`{"never":{}}`)
	}
}

func (e *Expiration) UnmarshalTinyJSON(l *jlexer.Lexer) {
	l.Delim('{')
	seen := false
	for !l.IsDelim('}') {
		key := l.UnsafeFieldName(false)
		l.WantColon()
		if seen {
			l.AddError(fmt.Errorf("%w: expiration has more than one variant", ErrWrongExpiration))
			return
		}
		seen = true
		switch key {
		case "at_height":
			*e = AtHeight(l.Uint64())
		case "at_time":
			nanos, err := strconv.ParseUint(l.String(), 10, 64)
			if err != nil {
				l.AddError(fmt.Errorf("%w: at_time: %v", ErrWrongExpiration, err))
				return
			}
			if nanos%nanosPerSecond != 0 {
				l.AddError(fmt.Errorf("%w: at_time %d is not a whole second", ErrWrongExpiration, nanos))
				return
			}
			*e = AtTime(nanos / nanosPerSecond)
		case "never":
			l.SkipRecursive()
			*e = Never()
		default:
			l.AddError(fmt.Errorf("%w: %q", ErrWrongExpiration, key))
			return
		}
		l.WantComma()
	}
	l.Delim('}')
	if l.Ok() && !seen {
		l.AddError(fmt.Errorf("%w: empty expiration", ErrWrongExpiration))
	}
}

func optExpiration(l *jlexer.Lexer) *Expiration {
	if l.IsNull() {
		l.Skip()
		return nil
	}
	var e Expiration
	e.UnmarshalTinyJSON(l)
	return &e
}

func (d Duration) MarshalTinyJSON(w *jwriter.Writer) {
	if d.Height {
		w.RawString(`{"height":`)
	} else {
		w.RawString(`{"time":`)
	}
	w.Uint64(d.Value)
	w.RawByte('}')
}

func (t Threshold) MarshalTinyJSON(w *jwriter.Writer) {
	switch t.Kind {
	case ThresholdAbsoluteCount:
		w.RawString(`{"absolute_count":{"weight":`)
		w.Uint64(t.Weight)
		w.RawString(`}}`)
	case ThresholdAbsolutePercentage:
		w.RawString(`{"absolute_percentage":{"percentage":`)
		t.Percentage.MarshalTinyJSON(w)
		w.RawString(`}}`)
	default:
		w.RawString(`{"threshold_quorum":{"threshold":`)
		t.Threshold.MarshalTinyJSON(w)
		w.RawString(`,"quorum":`)
		t.Quorum.MarshalTinyJSON(w)
		w.RawString(`}}`)
	}
}

// UnmarshalTinyJSON reads every kind so ValidateThreshold can name the rejected one.
func (t *Threshold) UnmarshalTinyJSON(l *jlexer.Lexer) {
	l.Delim('{')
	seen := false
	for !l.IsDelim('}') {
		kind := l.UnsafeFieldName(false)
		l.WantColon()
		if seen {
			l.AddError(fmt.Errorf("%w: more than one kind", ErrInvalidThreshold))
			return
		}
		seen = true
		switch kind {
		case "absolute_count":
			t.Kind = ThresholdAbsoluteCount
		case "absolute_percentage":
			t.Kind = ThresholdAbsolutePercentage
		case "threshold_quorum":
			t.Kind = ThresholdQuorumKind
		default:
			l.AddError(fmt.Errorf("%w: kind %q", ErrInvalidThreshold, kind))
			return
		}
		l.Delim('{')
		for !l.IsDelim('}') {
			key := l.UnsafeFieldName(false)
			l.WantColon()
			switch key {
			case "weight":
				t.Weight = l.Uint64()
			case "percentage":
				t.Percentage.UnmarshalTinyJSON(l)
			case "threshold":
				t.Threshold.UnmarshalTinyJSON(l)
			case "quorum":
				t.Quorum.UnmarshalTinyJSON(l)
			default:
				l.SkipRecursive()
			}
			l.WantComma()
		}
		l.Delim('}')
		l.WantComma()
	}
	l.Delim('}')
	if l.Ok() && !seen {
		l.AddError(fmt.Errorf("%w: empty threshold", ErrInvalidThreshold))
	}
}

// ---- json: instantiate, execute, sudo

func (m InstantiateMsg) MarshalTinyJSON(w *jwriter.Writer) {
	w.RawString(`{"threshold":`)
	m.Threshold.MarshalTinyJSON(w)
	w.RawString(`,"locking_contract":`)
	w.String(m.LockingContract)
	w.RawByte('}')
}

func (m *InstantiateMsg) UnmarshalTinyJSON(l *jlexer.Lexer) {
	l.Delim('{')
	for !l.IsDelim('}') {
		key := l.UnsafeFieldName(false)
		l.WantColon()
		switch key {
		case "threshold":
			m.Threshold.UnmarshalTinyJSON(l)
		case "locking_contract":
			m.LockingContract = l.String()
		default:
			l.SkipRecursive()
		}
		l.WantComma()
	}
	l.Delim('}')
}

// UnmarshalTinyJSON reads the inner propose object. "action" is taken as a
// single element list, "latest_expiry" and "app_id" as aliases.
func (m *ProposeMsg) UnmarshalTinyJSON(l *jlexer.Lexer) {
	l.Delim('{')
	for !l.IsDelim('}') {
		key := l.UnsafeFieldName(false)
		l.WantColon()
		switch key {
		case "title":
			m.Title = l.String()
		case "description":
			m.Description = l.String()
		case "msgs":
			m.Msgs = []Action{}
			l.Delim('[')
			for !l.IsDelim(']') {
				var a Action
				a.UnmarshalTinyJSON(l)
				m.Msgs = append(m.Msgs, a)
				l.WantComma()
			}
			l.Delim(']')
		case "action":
			if l.IsNull() {
				l.Skip()
				break
			}
			var a Action
			a.UnmarshalTinyJSON(l)
			m.Msgs = append(m.Msgs, a)
		case "latest", "latest_expiry":
			m.Latest = optExpiration(l)
		case "app_id_param", "app_id":
			m.AppID = l.Uint64()
		default:
			l.SkipRecursive()
		}
		l.WantComma()
	}
	l.Delim('}')
}

func (m ProposeMsg) MarshalTinyJSON(w *jwriter.Writer) {
	w.RawString(`{"title":`)
	w.String(m.Title)
	w.RawString(`,"description":`)
	w.String(m.Description)
	w.RawString(`,"msgs":[`)
	for i, a := range m.Msgs {
		if i > 0 {
			w.RawByte(',')
		}
		a.MarshalTinyJSON(w)
	}
	w.RawString(`],"latest":`)
	if m.Latest == nil {
		w.RawString("null")
	} else {
		m.Latest.MarshalTinyJSON(w)
	}
	w.RawString(`,"app_id_param":`)
	w.Uint64(m.AppID)
	w.RawByte('}')
}

// proposeEnvelope unwraps {"propose":{...}}, the body of the propose variant.
type proposeEnvelope struct {
	Propose ProposeMsg
}

func (m *proposeEnvelope) UnmarshalTinyJSON(l *jlexer.Lexer) {
	l.Delim('{')
	for !l.IsDelim('}') {
		key := l.UnsafeFieldName(false)
		l.WantColon()
		if key == "propose" {
			m.Propose.UnmarshalTinyJSON(l)
		} else {
			l.SkipRecursive()
		}
		l.WantComma()
	}
	l.Delim('}')
}

func (m *VoteMsg) UnmarshalTinyJSON(l *jlexer.Lexer) {
	l.Delim('{')
	for !l.IsDelim('}') {
		key := l.UnsafeFieldName(false)
		l.WantColon()
		switch key {
		case "proposal_id":
			m.ProposalID = l.Uint64()
		case "vote":
			m.Vote.UnmarshalTinyJSON(l)
		default:
			l.SkipRecursive()
		}
		l.WantComma()
	}
	l.Delim('}')
}

func (m *ProposalMsg) UnmarshalTinyJSON(l *jlexer.Lexer) {
	l.Delim('{')
	for !l.IsDelim('}') {
		key := l.UnsafeFieldName(false)
		l.WantColon()
		if key == "proposal_id" {
			m.ProposalID = l.Uint64()
		} else {
			l.SkipRecursive()
		}
		l.WantComma()
	}
	l.Delim('}')
}

type updateLockingContractMsg struct {
	Address string
}

func (m *updateLockingContractMsg) UnmarshalTinyJSON(l *jlexer.Lexer) {
	l.Delim('{')
	for !l.IsDelim('}') {
		key := l.UnsafeFieldName(false)
		l.WantColon()
		if key == "address" {
			m.Address = l.String()
		} else {
			l.SkipRecursive()
		}
		l.WantComma()
	}
	l.Delim('}')
}

type updateThresholdMsg struct {
	Threshold Threshold
}

func (m *updateThresholdMsg) UnmarshalTinyJSON(l *jlexer.Lexer) {
	l.Delim('{')
	for !l.IsDelim('}') {
		key := l.UnsafeFieldName(false)
		l.WantColon()
		if key == "threshold" {
			m.Threshold.UnmarshalTinyJSON(l)
		} else {
			l.SkipRecursive()
		}
		l.WantComma()
	}
	l.Delim('}')
}

// ---- json: queries

type proposalQuery struct {
	ProposalID uint64
}

func (q *proposalQuery) UnmarshalTinyJSON(l *jlexer.Lexer) {
	l.Delim('{')
	for !l.IsDelim('}') {
		key := l.UnsafeFieldName(false)
		l.WantColon()
		if key == "proposal_id" {
			q.ProposalID = l.Uint64()
		} else {
			l.SkipRecursive()
		}
		l.WantComma()
	}
	l.Delim('}')
}

// listQuery serves both ListProposals (start_after) and ReverseProposals (start_before).
type listQuery struct {
	Start *uint64
	Limit *uint64
}

func (q *listQuery) UnmarshalTinyJSON(l *jlexer.Lexer) {
	l.Delim('{')
	for !l.IsDelim('}') {
		key := l.UnsafeFieldName(false)
		l.WantColon()
		switch key {
		case "start_after", "start_before":
			q.Start = codec.OptUint64(l)
		case "limit":
			q.Limit = codec.OptUint64(l)
		default:
			l.SkipRecursive()
		}
		l.WantComma()
	}
	l.Delim('}')
}

type voteQuery struct {
	ProposalID uint64
	Voter      string
}

func (q *voteQuery) UnmarshalTinyJSON(l *jlexer.Lexer) {
	l.Delim('{')
	for !l.IsDelim('}') {
		key := l.UnsafeFieldName(false)
		l.WantColon()
		switch key {
		case "proposal_id":
			q.ProposalID = l.Uint64()
		case "voter":
			q.Voter = l.String()
		default:
			l.SkipRecursive()
		}
		l.WantComma()
	}
	l.Delim('}')
}

type listVotesQuery struct {
	ProposalID uint64
	StartAfter *string
	Limit      *uint64
}

func (q *listVotesQuery) UnmarshalTinyJSON(l *jlexer.Lexer) {
	l.Delim('{')
	for !l.IsDelim('}') {
		key := l.UnsafeFieldName(false)
		l.WantColon()
		switch key {
		case "proposal_id":
			q.ProposalID = l.Uint64()
		case "start_after":
			q.StartAfter = codec.OptString(l)
		case "limit":
			q.Limit = codec.OptUint64(l)
		default:
			l.SkipRecursive()
		}
		l.WantComma()
	}
	l.Delim('}')
}

type appProposalQuery struct {
	AppID      uint64
	StartAfter *uint64
	Limit      *uint64
	Status     *Status
}

func (q *appProposalQuery) UnmarshalTinyJSON(l *jlexer.Lexer) {
	l.Delim('{')
	for !l.IsDelim('}') {
		key := l.UnsafeFieldName(false)
		l.WantColon()
		switch key {
		case "app_id":
			q.AppID = l.Uint64()
		case "start_after":
			q.StartAfter = codec.OptUint64(l)
		case "limit":
			q.Limit = codec.OptUint64(l)
		case "status":
			if l.IsNull() {
				l.Skip()
				break
			}
			var s Status
			s.UnmarshalTinyJSON(l)
			q.Status = &s
		default:
			l.SkipRecursive()
		}
		l.WantComma()
	}
	l.Delim('}')
}

type appQuery struct {
	AppID uint64
}

func (q *appQuery) UnmarshalTinyJSON(l *jlexer.Lexer) {
	l.Delim('{')
	for !l.IsDelim('}') {
		key := l.UnsafeFieldName(false)
		l.WantColon()
		if key == "app_id" {
			q.AppID = l.Uint64()
		} else {
			l.SkipRecursive()
		}
		l.WantComma()
	}
	l.Delim('}')
}
