package codec

import (
	"errors"
	"fmt"

	"github.com/CosmWasm/tinyjson"
	"github.com/CosmWasm/tinyjson/jlexer"
	"github.com/CosmWasm/tinyjson/jwriter"
)

var ErrInvalidJSON = errors.New("invalid json payload")

// Marshal renders v through its hand written tinyjson codec.
func Marshal(v tinyjson.Marshaler) ([]byte, error) {
	w := jwriter.Writer{}
	v.MarshalTinyJSON(&w)
	return w.BuildBytes()
}

// Unmarshal wraps decoding failures in ErrInvalidJSON so contracts can report a
// single parse error kind.
func Unmarshal(data []byte, v tinyjson.Unmarshaler) error {
	l := jlexer.Lexer{Data: data}
	v.UnmarshalTinyJSON(&l)
	if err := l.Error(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	return nil
}

// Variant reads the {"name": {...}} envelope every message enum uses and
// returns the variant name with its raw body. Unit variants may also be
// sent as a bare string ("yes").
func Variant(data []byte) (string, []byte, error) {
	l := jlexer.Lexer{Data: data}
	if l.IsNull() {
		return "", nil, fmt.Errorf("%w: null message", ErrInvalidJSON)
	}
	if len(data) > 0 && data[0] == '"' {
		name := l.String()
		if err := l.Error(); err != nil || name == "" {
			return "", nil, fmt.Errorf("%w: bad unit variant", ErrInvalidJSON)
		}
		return name, nil, nil
	}
	var name string
	var body []byte
	l.Delim('{')
	for !l.IsDelim('}') {
		key := l.UnsafeFieldName(false)
		l.WantColon()
		if name != "" {
			l.AddError(fmt.Errorf("expected a single variant, got %q and %q", name, key))
			break
		}
		name = key
		body = append([]byte(nil), l.Raw()...)
		l.WantComma()
	}
	l.Delim('}')
	if err := l.Error(); err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	if name == "" {
		return "", nil, fmt.Errorf("%w: empty message", ErrInvalidJSON)
	}
	return name, body, nil
}

// OptUint64 decodes a nullable number field.
func OptUint64(l *jlexer.Lexer) *uint64 {
	if l.IsNull() {
		l.Skip()
		return nil
	}
	v := l.Uint64()
	return &v
}

// OptString decodes a nullable string field.
func OptString(l *jlexer.Lexer) *string {
	if l.IsNull() {
		l.Skip()
		return nil
	}
	v := l.String()
	return &v
}

// WriteOptUint64 writes the value or null.
func WriteOptUint64(w *jwriter.Writer, v *uint64) {
	if v == nil {
		w.RawString("null")
		return
	}
	w.Uint64(*v)
}

func WriteOptString(w *jwriter.Writer, v *string) {
	if v == nil {
		w.RawString("null")
		return
	}
	w.String(*v)
}
