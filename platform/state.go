package platform

import (
	"fmt"

	"govlock/contract/codec"
)

const (
	kApp     byte = 0x01
	kAsset   byte = 0x02
	kApplied byte = 0x03
)

func appKey(id uint64) string   { return codec.NewKey(kApp).U64(id).String() }
func appPrefix() string         { return codec.NewKey(kApp).String() }
func assetKey(id uint64) string { return codec.NewKey(kAsset).U64(id).String() }

func appliedKey(appID uint64, kind string) string {
	return codec.NewKey(kApplied).U64(appID).Tail(kind).String()
}

func encodeApp(a App) string {
	w := codec.NewWriter()
	w.WriteUint64(a.ID)
	w.WriteString(a.Name)
	w.WriteAmount(a.MinGovDeposit)
	w.WriteUint64(a.GovTimeInSeconds)
	w.WriteUint64(a.GovTokenID)
	return w.String()
}

func decodeApp(raw string) (App, error) {
	r := codec.NewStringReader(raw)
	var a App
	var err error
	if a.ID, err = r.ReadUint64(); err != nil {
		return App{}, fmt.Errorf("%w: %v", ErrCorruptState, err)
	}
	if a.Name, err = r.ReadString(); err != nil {
		return App{}, fmt.Errorf("%w: %v", ErrCorruptState, err)
	}
	if a.MinGovDeposit, err = r.ReadAmount(); err != nil {
		return App{}, fmt.Errorf("%w: %v", ErrCorruptState, err)
	}
	if a.GovTimeInSeconds, err = r.ReadUint64(); err != nil {
		return App{}, fmt.Errorf("%w: %v", ErrCorruptState, err)
	}
	if a.GovTokenID, err = r.ReadUint64(); err != nil {
		return App{}, fmt.Errorf("%w: %v", ErrCorruptState, err)
	}
	return a, nil
}

func encodeAsset(a Asset) string {
	w := codec.NewWriter()
	w.WriteUint64(a.ID)
	w.WriteString(a.Denom)
	return w.String()
}

func decodeAsset(raw string) (Asset, error) {
	r := codec.NewStringReader(raw)
	var a Asset
	var err error
	if a.ID, err = r.ReadUint64(); err != nil {
		return Asset{}, fmt.Errorf("%w: %v", ErrCorruptState, err)
	}
	if a.Denom, err = r.ReadString(); err != nil {
		return Asset{}, fmt.Errorf("%w: %v", ErrCorruptState, err)
	}
	return a, nil
}

func encodeApplied(a Applied) string {
	w := codec.NewWriter()
	w.WriteUint64(a.ProposalID)
	w.WriteBytes(a.Params)
	return w.String()
}

func decodeApplied(raw string) (Applied, error) {
	r := codec.NewStringReader(raw)
	var a Applied
	var err error
	if a.ProposalID, err = r.ReadUint64(); err != nil {
		return Applied{}, fmt.Errorf("%w: %v", ErrCorruptState, err)
	}
	if a.Params, err = r.ReadBytes(); err != nil {
		return Applied{}, fmt.Errorf("%w: %v", ErrCorruptState, err)
	}
	return a, nil
}
