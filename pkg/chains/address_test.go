package chains

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidAddress(t *testing.T) {
	testCases := []struct {
		name      string
		chainType ChainType
		address   string
		want      bool
	}{
		{"EVMValid", ChainTypeEVM, "0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2", true},
		{"EVMNoPrefix", ChainTypeEVM, "C02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2", true},
		{"EVMShort", ChainTypeEVM, "0x1234", false},
		{"TronValid", ChainTypeTron, "TNUC9Qb1rRpS5CbWLmNMxXBjyFoydXjWFR", true},
		{"TronWrongPrefix", ChainTypeTron, "XNUC9Qb1rRpS5CbWLmNMxXBjyFoydXjWFR", false},
		{"TronBadChar", ChainTypeTron, "TNUC9Qb1rRpS5CbWLmNMxXBjyFoydXjWF0", false},
		{"TonRaw", ChainTypeTon, "0:83dfd552e63729b472fcbcc8c45ebcc6691702558b68ec7527e1ba403a0f31a8", true},
		{"TonRawBadWorkchain", ChainTypeTon, "5:83dfd552e63729b472fcbcc8c45ebcc6691702558b68ec7527e1ba403a0f31a8", false},
		{"TonFriendly", ChainTypeTon, "EQCD39VS5jcptHL8vMjEXrzGaRcCVYto7HUn4bpAOg8xqB2N", true},
		{"TonFriendlyShort", ChainTypeTon, "EQCD39VS5jcptHL8", false},
		{"AELFPlain", ChainTypeAELF, "2N6dJpBcS5TLm2Mj9Q5ACYtZwsvi5N4tqDDSG5mpsPQDXLpCyS", true},
		{"AELFWrapped", ChainTypeAELF, "ELF_2N6dJpBcS5TLm2Mj9Q5ACYtZwsvi5N4tqDDSG5mpsPQDXLpCyS_AELF", true},
		{"AELFBadChar", ChainTypeAELF, "0OIl", false},
		{"Empty", ChainTypeAELF, "", false},
		{"UnknownType", ChainType("solana"), "abc", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ValidAddress(tc.chainType, tc.address))
		})
	}
}
