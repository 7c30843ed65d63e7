package sdk

import (
	"errors"
	"strings"
	"unicode"
)

var ErrInvalidAddress = errors.New("invalid address")

type AddressDomain string

const (
	AddressDomainUser     AddressDomain = "user"
	AddressDomainContract AddressDomain = "contract"
	AddressDomainSystem   AddressDomain = "system"
)

// Address is the opaque account or contract id handed in by the host.
type Address string

// String returns the literal representation (like comdex1abc or contract:locker) of the address.
// Example payload: sdk.Address("comdex1abc").String()
func (a Address) String() string {
	return string(a)
}

// Domain checks the prefix to tell contracts and system callers apart from users.
// Example payload: sdk.Address("contract:locker").Domain()
func (a Address) Domain() AddressDomain {
	if strings.HasPrefix(a.String(), "system:") {
		return AddressDomainSystem
	}
	if strings.HasPrefix(a.String(), "contract:") {
		return AddressDomainContract
	}
	return AddressDomainUser
}

// IsValid is the light sanity check used before an address becomes part of a storage key:
// non-empty, printable and without whitespace.
// Example payload: sdk.Address("foo bar").IsValid() // false
func (a Address) IsValid() bool {
	if a == "" || len(a) > 255 {
		return false
	}
	for _, r := range a.String() {
		if unicode.IsSpace(r) || !unicode.IsPrint(r) {
			return false
		}
	}
	return true
}

// ValidateAddress turns IsValid into an error for the query/exec paths.
func ValidateAddress(s string) (Address, error) {
	a := Address(s)
	if !a.IsValid() {
		return "", ErrInvalidAddress
	}
	return a, nil
}
