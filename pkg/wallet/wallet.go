// Package wallet holds helpers for EVM wallet addresses and transaction hashes.
package wallet

import (
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// PlaceholderAddress is the identity substituted for callers without an address
// header when anonymous access is enabled.
const PlaceholderAddress = "0x0000000000000000000000000000000000000001"

// IsValidAddress reports whether s is a 0x-prefixed 20-byte hex address.
func IsValidAddress(s string) bool {
	return len(s) == 2+2*common.AddressLength && strings.HasPrefix(s, "0x") && common.IsHexAddress(s)
}

// Normalize returns the canonical storage form of an address (lower-case).
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Checksum returns the EIP-55 mixed-case form of a valid address.
func Checksum(s string) string {
	return common.HexToAddress(s).Hex()
}

// IsValidTxHash reports whether s is a 0x-prefixed 32-byte hex hash.
func IsValidTxHash(s string) bool {
	b, err := hexutil.Decode(s)
	return err == nil && len(b) == common.HashLength
}

// Truncate shortens an address for display, e.g. 0x1234...abcd.
func Truncate(s string) string {
	if len(s) <= 10 {
		return s
	}
	return s[:6] + "..." + s[len(s)-4:]
}
