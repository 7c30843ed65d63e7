package sdk

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/mod/semver"
)

// versionKey sits outside every contract prefix byte so it never collides with records.
const versionKey = "\xffcontract_info"

var (
	ErrMigrateName    = errors.New("cannot migrate from a different contract")
	ErrMigrateNewer   = errors.New("cannot migrate from a newer version")
	ErrInvalidVersion = errors.New("invalid contract version")
	ErrNoVersion      = errors.New("contract version not set")
)

// ContractVersion is the name@version tag written on instantiate and checked on migrate.
type ContractVersion struct {
	Contract string
	Version  string
}

func canonical(v string) (string, error) {
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	if !semver.IsValid(v) {
		return "", fmt.Errorf("%w: %q", ErrInvalidVersion, v)
	}
	return v, nil
}

// SetContractVersion stores the tag, normalising "1.2.0" into "v1.2.0".
// Example payload: sdk.SetContractVersion(st, "govlock-locker", "0.1.0")
func SetContractVersion(st State, name, version string) error {
	v, err := canonical(version)
	if err != nil {
		return err
	}
	st.Set(versionKey, name+"@"+v)
	return nil
}

func GetContractVersion(st State) (ContractVersion, error) {
	raw := st.Get(versionKey)
	if raw == nil {
		return ContractVersion{}, ErrNoVersion
	}
	name, v, ok := strings.Cut(*raw, "@")
	if !ok {
		return ContractVersion{}, fmt.Errorf("%w: %q", ErrInvalidVersion, *raw)
	}
	return ContractVersion{Contract: name, Version: v}, nil
}

// AssertMigratable rejects a migration onto a different contract or onto an
// older build than the one that last wrote the state. Same version is allowed.
func AssertMigratable(st State, name, version string) error {
	stored, err := GetContractVersion(st)
	if err != nil {
		return err
	}
	if stored.Contract != name {
		return fmt.Errorf("%w: stored %s, running %s", ErrMigrateName, stored.Contract, name)
	}
	running, err := canonical(version)
	if err != nil {
		return err
	}
	if semver.Compare(stored.Version, running) > 0 {
		return fmt.Errorf("%w: stored %s, running %s", ErrMigrateNewer, stored.Version, running)
	}
	return nil
}
