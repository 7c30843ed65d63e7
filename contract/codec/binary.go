package codec

import (
	"bytes"
	"encoding/binary"
	"errors"

	"govlock/coin"
)

var ErrUnexpectedEOF = errors.New("unexpected EOF")

// Writer appends fixed width numbers and length prefixed strings. Records are
// written field by field in declaration order; readers must mirror that order.
type Writer struct {
	buf bytes.Buffer
}

func NewWriter() *Writer { return &Writer{} }

func (w *Writer) Bytes() []byte { return w.buf.Bytes() }

func (w *Writer) String() string { return w.buf.String() }

func (w *Writer) WriteByte(b byte) error {
	return w.buf.WriteByte(b)
}

func (w *Writer) WriteBool(v bool) {
	if v {
		w.buf.WriteByte(1)
	} else {
		w.buf.WriteByte(0)
	}
}

func (w *Writer) WriteUint64(v uint64) {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], v)
	w.buf.Write(b[:])
}

func (w *Writer) WriteVarUint(v uint64) {
	var tmp [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(tmp[:], v)
	w.buf.Write(tmp[:n])
}

func (w *Writer) WriteString(s string) {
	w.WriteVarUint(uint64(len(s)))
	w.buf.WriteString(s)
}

func (w *Writer) WriteBytes(b []byte) {
	w.WriteVarUint(uint64(len(b)))
	w.buf.Write(b)
}

// WriteAmount stores the 16 byte big-endian form.
func (w *Writer) WriteAmount(a coin.Amount) {
	w.buf.Write(a.Bytes())
}

// WriteDecimal stores the canonical decimal string; LegacyDec round trips it exactly.
func (w *Writer) WriteDecimal(d coin.Decimal) {
	w.WriteString(d.String())
}

func (w *Writer) WriteCoin(c coin.Coin) {
	w.WriteString(c.Denom)
	w.WriteAmount(c.Amount)
}

func (w *Writer) WriteCoins(cs coin.Coins) {
	w.WriteVarUint(uint64(len(cs)))
	for _, c := range cs {
		w.WriteCoin(c)
	}
}

func (w *Writer) WriteOptionalUint64(ptr *uint64) {
	if ptr == nil {
		w.WriteBool(false)
		return
	}
	w.WriteBool(true)
	w.WriteUint64(*ptr)
}

// Reader walks a buffer produced by Writer.
type Reader struct {
	data []byte
	pos  int
}

func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

// NewStringReader avoids a copy at call sites that hold state values as strings.
func NewStringReader(s string) *Reader {
	return &Reader{data: []byte(s)}
}

// Done reports whether every byte was consumed.
func (r *Reader) Done() bool { return r.pos == len(r.data) }

func (r *Reader) ReadByte() (byte, error) {
	if r.pos >= len(r.data) {
		return 0, ErrUnexpectedEOF
	}
	b := r.data[r.pos]
	r.pos++
	return b, nil
}

func (r *Reader) ReadBool() (bool, error) {
	b, err := r.ReadByte()
	if err != nil {
		return false, err
	}
	return b == 1, nil
}

func (r *Reader) ReadUint64() (uint64, error) {
	if r.pos+8 > len(r.data) {
		return 0, ErrUnexpectedEOF
	}
	v := binary.BigEndian.Uint64(r.data[r.pos : r.pos+8])
	r.pos += 8
	return v, nil
}

func (r *Reader) ReadVarUint() (uint64, error) {
	val, n := binary.Uvarint(r.data[r.pos:])
	if n <= 0 {
		return 0, errors.New("invalid varuint")
	}
	r.pos += n
	return val, nil
}

func (r *Reader) ReadString() (string, error) {
	b, err := r.ReadBytes()
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (r *Reader) ReadBytes() ([]byte, error) {
	l, err := r.ReadVarUint()
	if err != nil {
		return nil, err
	}
	if l > uint64(len(r.data)-r.pos) {
		return nil, ErrUnexpectedEOF
	}
	out := make([]byte, l)
	copy(out, r.data[r.pos:r.pos+int(l)])
	r.pos += int(l)
	return out, nil
}

func (r *Reader) ReadAmount() (coin.Amount, error) {
	if r.pos+16 > len(r.data) {
		return coin.Amount{}, ErrUnexpectedEOF
	}
	a, err := coin.AmountFromBytes(r.data[r.pos : r.pos+16])
	if err != nil {
		return coin.Amount{}, err
	}
	r.pos += 16
	return a, nil
}

func (r *Reader) ReadDecimal() (coin.Decimal, error) {
	s, err := r.ReadString()
	if err != nil {
		return coin.Decimal{}, err
	}
	return coin.ParseDecimal(s)
}

func (r *Reader) ReadCoin() (coin.Coin, error) {
	denom, err := r.ReadString()
	if err != nil {
		return coin.Coin{}, err
	}
	amt, err := r.ReadAmount()
	if err != nil {
		return coin.Coin{}, err
	}
	return coin.NewCoin(denom, amt), nil
}

func (r *Reader) ReadCoins() (coin.Coins, error) {
	n, err := r.ReadVarUint()
	if err != nil {
		return nil, err
	}
	if n > uint64(len(r.data)-r.pos) {
		return nil, ErrUnexpectedEOF
	}
	out := make(coin.Coins, 0, n)
	for i := uint64(0); i < n; i++ {
		c, err := r.ReadCoin()
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

func (r *Reader) ReadOptionalUint64() (*uint64, error) {
	ok, err := r.ReadBool()
	if err != nil || !ok {
		return nil, err
	}
	v, err := r.ReadUint64()
	if err != nil {
		return nil, err
	}
	return &v, nil
}
