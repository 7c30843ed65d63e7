package sdk

import (
	"github.com/CosmWasm/tinyjson/jwriter"

	"govlock/coin"
)

// Msg is a deferred instruction the host executes after the contract returns
// and before the state delta is committed. A failing Msg aborts the whole call.
type Msg interface {
	MsgKind() string
	MarshalTinyJSON(w *jwriter.Writer)
}

// BankSend moves funds out of the executing contract's custody.
// Example payload: sdk.BankSend{To: "alice", Amount: coin.Coins{coin.NewCoin("TKN", coin.NewAmount(10))}}
type BankSend struct {
	To     Address
	Amount coin.Coins
}

func (BankSend) MsgKind() string { return "bank_send" }

func (m BankSend) MarshalTinyJSON(w *jwriter.Writer) {
	w.RawString(`{"bank_send":{"to_address":`)
	w.String(m.To.String())
	w.RawString(`,"amount":`)
	m.Amount.MarshalTinyJSON(w)
	w.RawString(`}}`)
}

type Attribute struct {
	Key   string
	Value string
}

// Response is what a successful execute returns. Data holds the JSON body of
// queries and is empty for most executes.
type Response struct {
	Attributes []Attribute
	Events     []string
	Messages   []Msg
	Data       []byte
}

func NewResponse() *Response { return &Response{} }

func (r *Response) AddAttribute(key, value string) *Response {
	r.Attributes = append(r.Attributes, Attribute{Key: key, Value: value})
	return r
}

func (r *Response) AddMessage(m Msg) *Response {
	r.Messages = append(r.Messages, m)
	return r
}

// Attr looks up the first attribute with key.
func (r *Response) Attr(key string) (string, bool) {
	for _, a := range r.Attributes {
		if a.Key == key {
			return a.Value, true
		}
	}
	return "", false
}

func (r Response) MarshalTinyJSON(w *jwriter.Writer) {
	w.RawString(`{"attributes":[`)
	for i, a := range r.Attributes {
		if i > 0 {
			w.RawByte(',')
		}
		w.RawString(`{"key":`)
		w.String(a.Key)
		w.RawString(`,"value":`)
		w.String(a.Value)
		w.RawByte('}')
	}
	w.RawString(`],"events":[`)
	for i, e := range r.Events {
		if i > 0 {
			w.RawByte(',')
		}
		w.String(e)
	}
	w.RawString(`],"messages":[`)
	for i, m := range r.Messages {
		if i > 0 {
			w.RawByte(',')
		}
		m.MarshalTinyJSON(w)
	}
	w.RawByte(']')
	if len(r.Data) > 0 {
		w.RawString(`,"data":`)
		w.Raw(r.Data, nil)
	}
	w.RawByte('}')
}
