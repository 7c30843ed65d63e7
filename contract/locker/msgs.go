package locker

import (
	"github.com/CosmWasm/tinyjson/jlexer"
	"github.com/CosmWasm/tinyjson/jwriter"

	"govlock/coin"
	"govlock/contract/codec"
)

type InstantiateMsg struct {
	T1           PeriodWeight
	T2           PeriodWeight
	T3           PeriodWeight
	T4           PeriodWeight
	UnlockPeriod uint64
}

type LockMsg struct {
	AppID         uint64
	LockingPeriod LockingPeriod
}

// UnlockMsg leaves LockingPeriod nil to pick the lowest eligible tier.
type UnlockMsg struct {
	AppID         uint64
	Denom         string
	LockingPeriod *LockingPeriod
}

type WithdrawMsg struct {
	AppID         uint64
	Denom         string
	Amount        coin.Amount
	LockingPeriod *LockingPeriod
}

// ---- json: shared

func (p LockingPeriod) MarshalTinyJSON(w *jwriter.Writer) {
	w.String(p.String())
}

func (p *LockingPeriod) UnmarshalTinyJSON(l *jlexer.Lexer) {
	s := l.String()
	if !l.Ok() {
		return
	}
	v, err := ParseLockingPeriod(s)
	if err != nil {
		l.AddError(err)
		return
	}
	*p = v
}

func optPeriod(l *jlexer.Lexer) *LockingPeriod {
	if l.IsNull() {
		l.Skip()
		return nil
	}
	var p LockingPeriod
	p.UnmarshalTinyJSON(l)
	return &p
}

func (s Status) MarshalTinyJSON(w *jwriter.Writer) {
	w.String(s.String())
}

func (s *Status) UnmarshalTinyJSON(l *jlexer.Lexer) {
	v, err := parseStatus(l.String())
	if err != nil {
		l.AddError(err)
		return
	}
	*s = v
}

func (pw PeriodWeight) MarshalTinyJSON(w *jwriter.Writer) {
	w.RawString(`{"period":`)
	w.Uint64(pw.Period)
	w.RawString(`,"weight":`)
	pw.Weight.MarshalTinyJSON(w)
	w.RawByte('}')
}

func (pw *PeriodWeight) UnmarshalTinyJSON(l *jlexer.Lexer) {
	l.Delim('{')
	for !l.IsDelim('}') {
		key := l.UnsafeFieldName(false)
		l.WantColon()
		switch key {
		case "period":
			pw.Period = l.Uint64()
		case "weight":
			pw.Weight.UnmarshalTinyJSON(l)
		default:
			l.SkipRecursive()
		}
		l.WantComma()
	}
	l.Delim('}')
}

// ---- json: execute

func (m InstantiateMsg) MarshalTinyJSON(w *jwriter.Writer) {
	w.RawString(`{"t1":`)
	m.T1.MarshalTinyJSON(w)
	w.RawString(`,"t2":`)
	m.T2.MarshalTinyJSON(w)
	w.RawString(`,"t3":`)
	m.T3.MarshalTinyJSON(w)
	w.RawString(`,"t4":`)
	m.T4.MarshalTinyJSON(w)
	w.RawString(`,"unlock_period":`)
	w.Uint64(m.UnlockPeriod)
	w.RawByte('}')
}

func (m *InstantiateMsg) UnmarshalTinyJSON(l *jlexer.Lexer) {
	l.Delim('{')
	for !l.IsDelim('}') {
		key := l.UnsafeFieldName(false)
		l.WantColon()
		switch key {
		case "t1":
			m.T1.UnmarshalTinyJSON(l)
		case "t2":
			m.T2.UnmarshalTinyJSON(l)
		case "t3":
			m.T3.UnmarshalTinyJSON(l)
		case "t4":
			m.T4.UnmarshalTinyJSON(l)
		case "unlock_period":
			m.UnlockPeriod = l.Uint64()
		default:
			l.SkipRecursive()
		}
		l.WantComma()
	}
	l.Delim('}')
}

func (m *LockMsg) UnmarshalTinyJSON(l *jlexer.Lexer) {
	l.Delim('{')
	for !l.IsDelim('}') {
		key := l.UnsafeFieldName(false)
		l.WantColon()
		switch key {
		case "app_id":
			m.AppID = l.Uint64()
		case "locking_period":
			m.LockingPeriod.UnmarshalTinyJSON(l)
		default:
			l.SkipRecursive()
		}
		l.WantComma()
	}
	l.Delim('}')
}

func (m *UnlockMsg) UnmarshalTinyJSON(l *jlexer.Lexer) {
	l.Delim('{')
	for !l.IsDelim('}') {
		key := l.UnsafeFieldName(false)
		l.WantColon()
		switch key {
		case "app_id":
			m.AppID = l.Uint64()
		case "denom":
			m.Denom = l.String()
		case "locking_period":
			m.LockingPeriod = optPeriod(l)
		default:
			l.SkipRecursive()
		}
		l.WantComma()
	}
	l.Delim('}')
}

func (m *WithdrawMsg) UnmarshalTinyJSON(l *jlexer.Lexer) {
	l.Delim('{')
	for !l.IsDelim('}') {
		key := l.UnsafeFieldName(false)
		l.WantColon()
		switch key {
		case "app_id":
			m.AppID = l.Uint64()
		case "denom":
			m.Denom = l.String()
		case "amount":
			m.Amount.UnmarshalTinyJSON(l)
		case "locking_period":
			m.LockingPeriod = optPeriod(l)
		default:
			l.SkipRecursive()
		}
		l.WantComma()
	}
	l.Delim('}')
}

// ---- json: query

// ownerQuery covers issued_nft, the three balance queries and issued_vtokens.
type ownerQuery struct {
	Address *string
	Denom   *string
}

func (q *ownerQuery) UnmarshalTinyJSON(l *jlexer.Lexer) {
	l.Delim('{')
	for !l.IsDelim('}') {
		key := l.UnsafeFieldName(false)
		l.WantColon()
		switch key {
		case "address":
			q.Address = codec.OptString(l)
		case "denom":
			q.Denom = codec.OptString(l)
		default:
			l.SkipRecursive()
		}
		l.WantComma()
	}
	l.Delim('}')
}

type powerQuery struct {
	Address string
	Denom   string
	Height  *uint64
}

func (q *powerQuery) UnmarshalTinyJSON(l *jlexer.Lexer) {
	l.Delim('{')
	for !l.IsDelim('}') {
		key := l.UnsafeFieldName(false)
		l.WantColon()
		switch key {
		case "address":
			q.Address = l.String()
		case "denom":
			q.Denom = l.String()
		case "height":
			q.Height = codec.OptUint64(l)
		default:
			l.SkipRecursive()
		}
		l.WantComma()
	}
	l.Delim('}')
}

// ---- json: records and responses

func (v VToken) MarshalTinyJSON(w *jwriter.Writer) {
	w.RawString(`{"token":`)
	v.Token.MarshalTinyJSON(w)
	w.RawString(`,"vtoken":`)
	v.VToken.MarshalTinyJSON(w)
	w.RawString(`,"period":`)
	v.Period.MarshalTinyJSON(w)
	w.RawString(`,"start_time":`)
	w.Uint64(v.StartTime)
	w.RawString(`,"end_time":`)
	w.Uint64(v.EndTime)
	w.RawString(`,"status":`)
	v.Status.MarshalTinyJSON(w)
	w.RawByte('}')
}

func (v *VToken) UnmarshalTinyJSON(l *jlexer.Lexer) {
	l.Delim('{')
	for !l.IsDelim('}') {
		key := l.UnsafeFieldName(false)
		l.WantColon()
		switch key {
		case "token":
			v.Token.UnmarshalTinyJSON(l)
		case "vtoken":
			v.VToken.UnmarshalTinyJSON(l)
		case "period":
			v.Period.UnmarshalTinyJSON(l)
		case "start_time":
			v.StartTime = l.Uint64()
		case "end_time":
			v.EndTime = l.Uint64()
		case "status":
			v.Status.UnmarshalTinyJSON(l)
		default:
			l.SkipRecursive()
		}
		l.WantComma()
	}
	l.Delim('}')
}

type VTokens []VToken

func (vs VTokens) MarshalTinyJSON(w *jwriter.Writer) {
	w.RawByte('[')
	for i, v := range vs {
		if i > 0 {
			w.RawByte(',')
		}
		v.MarshalTinyJSON(w)
	}
	w.RawByte(']')
}

func (vs *VTokens) UnmarshalTinyJSON(l *jlexer.Lexer) {
	out := VTokens{}
	l.Delim('[')
	for !l.IsDelim(']') {
		var v VToken
		v.UnmarshalTinyJSON(l)
		out = append(out, v)
		l.WantComma()
	}
	l.Delim(']')
	*vs = out
}

func (t TokenInfo) MarshalTinyJSON(w *jwriter.Writer) {
	w.RawString(`{"owner":`)
	w.String(t.Owner.String())
	w.RawString(`,"vtokens":`)
	VTokens(t.VTokens).MarshalTinyJSON(w)
	w.RawString(`,"token_id":`)
	w.Uint64(t.TokenID)
	w.RawByte('}')
}

type IssuedNftResponse struct {
	Nft TokenInfo
}

func (r IssuedNftResponse) MarshalTinyJSON(w *jwriter.Writer) {
	w.RawString(`{"nft":`)
	r.Nft.MarshalTinyJSON(w)
	w.RawByte('}')
}

// TokensResponse answers locked_tokens, unlocking_tokens and unlocked_tokens.
type TokensResponse struct {
	Tokens coin.Coins
}

func (r TokensResponse) MarshalTinyJSON(w *jwriter.Writer) {
	w.RawString(`{"tokens":`)
	if r.Tokens == nil {
		w.RawString(`[]`)
	} else {
		r.Tokens.MarshalTinyJSON(w)
	}
	w.RawByte('}')
}

func (r *TokensResponse) UnmarshalTinyJSON(l *jlexer.Lexer) {
	l.Delim('{')
	for !l.IsDelim('}') {
		key := l.UnsafeFieldName(false)
		l.WantColon()
		if key == "tokens" {
			r.Tokens.UnmarshalTinyJSON(l)
		} else {
			l.SkipRecursive()
		}
		l.WantComma()
	}
	l.Delim('}')
}

type IssuedVtokensResponse struct {
	VTokens VTokens
}

func (r IssuedVtokensResponse) MarshalTinyJSON(w *jwriter.Writer) {
	w.RawString(`{"vtokens":`)
	if r.VTokens == nil {
		w.RawString(`[]`)
	} else {
		r.VTokens.MarshalTinyJSON(w)
	}
	w.RawByte('}')
}

func (r *IssuedVtokensResponse) UnmarshalTinyJSON(l *jlexer.Lexer) {
	l.Delim('{')
	for !l.IsDelim('}') {
		key := l.UnsafeFieldName(false)
		l.WantColon()
		if key == "vtokens" {
			r.VTokens.UnmarshalTinyJSON(l)
		} else {
			l.SkipRecursive()
		}
		l.WantComma()
	}
	l.Delim('}')
}

func (s Supply) MarshalTinyJSON(w *jwriter.Writer) {
	w.RawString(`{"token":`)
	s.Token.MarshalTinyJSON(w)
	w.RawString(`,"vtoken":`)
	s.VToken.MarshalTinyJSON(w)
	w.RawByte('}')
}

func (s *Supply) UnmarshalTinyJSON(l *jlexer.Lexer) {
	l.Delim('{')
	for !l.IsDelim('}') {
		key := l.UnsafeFieldName(false)
		l.WantColon()
		switch key {
		case "token":
			s.Token.UnmarshalTinyJSON(l)
		case "vtoken":
			s.VToken.UnmarshalTinyJSON(l)
		default:
			l.SkipRecursive()
		}
		l.WantComma()
	}
	l.Delim('}')
}
