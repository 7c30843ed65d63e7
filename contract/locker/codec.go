package locker

import (
	"fmt"

	"govlock/contract/codec"
	"govlock/sdk"
)

func encodePeriodWeight(w *codec.Writer, pw PeriodWeight) {
	w.WriteUint64(pw.Period)
	w.WriteDecimal(pw.Weight)
}

func decodePeriodWeight(r *codec.Reader) (PeriodWeight, error) {
	var pw PeriodWeight
	var err error
	if pw.Period, err = r.ReadUint64(); err != nil {
		return pw, err
	}
	pw.Weight, err = r.ReadDecimal()
	return pw, err
}

func encodeConfig(cfg *Config) string {
	w := codec.NewWriter()
	for _, pw := range []PeriodWeight{cfg.T1, cfg.T2, cfg.T3, cfg.T4} {
		encodePeriodWeight(w, pw)
	}
	w.WriteUint64(cfg.UnlockPeriod)
	w.WriteUint64(cfg.NumTokens)
	return w.String()
}

func decodeConfig(raw string) (Config, error) {
	r := codec.NewStringReader(raw)
	var cfg Config
	tiers := []*PeriodWeight{&cfg.T1, &cfg.T2, &cfg.T3, &cfg.T4}
	for _, t := range tiers {
		pw, err := decodePeriodWeight(r)
		if err != nil {
			return cfg, fmt.Errorf("%w: config: %v", ErrCorruptState, err)
		}
		*t = pw
	}
	var err error
	if cfg.UnlockPeriod, err = r.ReadUint64(); err != nil {
		return cfg, fmt.Errorf("%w: config: %v", ErrCorruptState, err)
	}
	if cfg.NumTokens, err = r.ReadUint64(); err != nil {
		return cfg, fmt.Errorf("%w: config: %v", ErrCorruptState, err)
	}
	return cfg, nil
}

func encodeVToken(w *codec.Writer, v *VToken) {
	w.WriteCoin(v.Token)
	w.WriteCoin(v.VToken)
	_ = w.WriteByte(byte(v.Period))
	w.WriteUint64(v.StartTime)
	w.WriteUint64(v.EndTime)
	_ = w.WriteByte(byte(v.Status))
}

func decodeVToken(r *codec.Reader) (VToken, error) {
	var v VToken
	var err error
	if v.Token, err = r.ReadCoin(); err != nil {
		return v, err
	}
	if v.VToken, err = r.ReadCoin(); err != nil {
		return v, err
	}
	p, err := r.ReadByte()
	if err != nil {
		return v, err
	}
	v.Period = LockingPeriod(p)
	if v.StartTime, err = r.ReadUint64(); err != nil {
		return v, err
	}
	if v.EndTime, err = r.ReadUint64(); err != nil {
		return v, err
	}
	s, err := r.ReadByte()
	if err != nil {
		return v, err
	}
	v.Status = Status(s)
	return v, nil
}

func encodeTokenInfo(t *TokenInfo) string {
	w := codec.NewWriter()
	w.WriteString(t.Owner.String())
	w.WriteUint64(t.TokenID)
	w.WriteVarUint(uint64(len(t.VTokens)))
	for i := range t.VTokens {
		encodeVToken(w, &t.VTokens[i])
	}
	return w.String()
}

func decodeTokenInfo(raw string) (TokenInfo, error) {
	r := codec.NewStringReader(raw)
	var t TokenInfo
	owner, err := r.ReadString()
	if err != nil {
		return t, fmt.Errorf("%w: token info: %v", ErrCorruptState, err)
	}
	t.Owner = sdk.Address(owner)
	if t.TokenID, err = r.ReadUint64(); err != nil {
		return t, fmt.Errorf("%w: token info: %v", ErrCorruptState, err)
	}
	n, err := r.ReadVarUint()
	if err != nil {
		return t, fmt.Errorf("%w: token info: %v", ErrCorruptState, err)
	}
	t.VTokens = make([]VToken, 0, n)
	for i := uint64(0); i < n; i++ {
		v, err := decodeVToken(r)
		if err != nil {
			return t, fmt.Errorf("%w: vtoken %d: %v", ErrCorruptState, i, err)
		}
		t.VTokens = append(t.VTokens, v)
	}
	return t, nil
}

func encodeSupply(s Supply) string {
	w := codec.NewWriter()
	w.WriteAmount(s.Token)
	w.WriteAmount(s.VToken)
	return w.String()
}

func decodeSupply(raw string) (Supply, error) {
	r := codec.NewStringReader(raw)
	var s Supply
	var err error
	if s.Token, err = r.ReadAmount(); err != nil {
		return s, fmt.Errorf("%w: supply: %v", ErrCorruptState, err)
	}
	if s.VToken, err = r.ReadAmount(); err != nil {
		return s, fmt.Errorf("%w: supply: %v", ErrCorruptState, err)
	}
	return s, nil
}
