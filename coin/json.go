package coin

import (
	"github.com/CosmWasm/tinyjson/jlexer"
	"github.com/CosmWasm/tinyjson/jwriter"
)

// Amounts and decimals travel as JSON strings so u128 values survive
// javascript clients, same convention as Uint128/Decimal on cosmwasm chains.

func (a Amount) MarshalTinyJSON(w *jwriter.Writer) {
	w.String(a.String())
}

func (a *Amount) UnmarshalTinyJSON(l *jlexer.Lexer) {
	s := l.String()
	if !l.Ok() {
		return
	}
	v, err := ParseAmount(s)
	if err != nil {
		l.AddError(err)
		return
	}
	*a = v
}

func (d Decimal) MarshalTinyJSON(w *jwriter.Writer) {
	w.String(d.String())
}

func (d *Decimal) UnmarshalTinyJSON(l *jlexer.Lexer) {
	s := l.String()
	if !l.Ok() {
		return
	}
	v, err := ParseDecimal(s)
	if err != nil {
		l.AddError(err)
		return
	}
	*d = v
}

func (c Coin) MarshalTinyJSON(w *jwriter.Writer) {
	w.RawString(`{"denom":`)
	w.String(c.Denom)
	w.RawString(`,"amount":`)
	c.Amount.MarshalTinyJSON(w)
	w.RawByte('}')
}

func (c *Coin) UnmarshalTinyJSON(l *jlexer.Lexer) {
	if l.IsNull() {
		l.Skip()
		return
	}
	l.Delim('{')
	for !l.IsDelim('}') {
		key := l.UnsafeFieldName(false)
		l.WantColon()
		if l.IsNull() {
			l.Skip()
			l.WantComma()
			continue
		}
		switch key {
		case "denom":
			c.Denom = l.String()
		case "amount":
			c.Amount.UnmarshalTinyJSON(l)
		default:
			l.SkipRecursive()
		}
		l.WantComma()
	}
	l.Delim('}')
}

func (cs Coins) MarshalTinyJSON(w *jwriter.Writer) {
	w.RawByte('[')
	for i, c := range cs {
		if i > 0 {
			w.RawByte(',')
		}
		c.MarshalTinyJSON(w)
	}
	w.RawByte(']')
}

func (cs *Coins) UnmarshalTinyJSON(l *jlexer.Lexer) {
	if l.IsNull() {
		l.Skip()
		*cs = nil
		return
	}
	l.Delim('[')
	out := Coins{}
	for !l.IsDelim(']') {
		var c Coin
		c.UnmarshalTinyJSON(l)
		out = append(out, c)
		l.WantComma()
	}
	l.Delim(']')
	*cs = out
}
