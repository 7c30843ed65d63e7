package locker

import (
	"govlock/contract/codec"
	"govlock/sdk"
)

const (
	// kConfig holds the single Config record.
	kConfig byte = 0x01
	// kTokenInfo maps owner to TokenInfo.
	kTokenInfo byte = 0x02
	// kBalance maps (status, owner) to the coin projection for that status.
	kBalance byte = 0x03
	// kSupply maps vdenom to Supply.
	kSupply byte = 0x04
	// kPowerHead is the decimal counter of the newest power entry per (owner, vdenom).
	kPowerHead byte = 0x05
	// kPowerEntry stores {power}_{height} snapshots per (owner, vdenom, seq).
	kPowerEntry byte = 0x06
)

func configKey() string {
	return codec.NewKey(kConfig).String()
}

func tokenInfoKey(owner sdk.Address) string {
	return codec.NewKey(kTokenInfo).Tail(owner.String()).String()
}

func balanceKey(kind Status, owner sdk.Address) string {
	return codec.NewKey(kBalance).Byte(byte(kind)).Tail(owner.String()).String()
}

func supplyKey(vdenom string) string {
	return codec.NewKey(kSupply).Tail(vdenom).String()
}

func powerHeadKey(owner sdk.Address, vdenom string) string {
	return codec.NewKey(kPowerHead).Str(owner.String()).Tail(vdenom).String()
}

func powerEntryKey(owner sdk.Address, vdenom string, seq uint64) string {
	return codec.NewKey(kPowerEntry).Str(owner.String()).Str(vdenom).U64(seq).String()
}
