package chains

import (
	"encoding/hex"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

const base58Alphabet = "123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"

func isBase58(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !strings.ContainsRune(base58Alphabet, r) {
			return false
		}
	}
	return true
}

// ValidAddress performs a shape check of address for the given chain type.
// It does not verify checksums except where go-ethereum does.
func ValidAddress(chainType ChainType, address string) bool {
	switch chainType {
	case ChainTypeEVM:
		return common.IsHexAddress(address)
	case ChainTypeTron:
		return len(address) == 34 && address[0] == 'T' && isBase58(address)
	case ChainTypeTon:
		return validTonAddress(address)
	case ChainTypeAELF:
		return isBase58(unwrapAELFAddress(address))
	}
	return false
}

// unwrapAELFAddress strips the ELF_<address>_<chain> display form.
func unwrapAELFAddress(address string) string {
	parts := strings.Split(address, "_")
	if len(parts) == 3 && parts[0] == "ELF" {
		return parts[1]
	}
	return address
}

func validTonAddress(address string) bool {
	if wc, raw, ok := strings.Cut(address, ":"); ok {
		if wc != "0" && wc != "-1" {
			return false
		}
		b, err := hex.DecodeString(raw)
		return err == nil && len(b) == 32
	}
	if len(address) != 48 {
		return false
	}
	for _, r := range address {
		switch {
		case r >= 'A' && r <= 'Z', r >= 'a' && r <= 'z', r >= '0' && r <= '9':
		case r == '-' || r == '_' || r == '+' || r == '/':
		default:
			return false
		}
	}
	return true
}
