package crosschain

import (
	"encoding/json"
	"testing"

	"github.com/bridgescan/bridgenode/pkg/chains"
	"github.com/bridgescan/bridgenode/pkg/optional"
	"github.com/bridgescan/bridgenode/pkg/symbol"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestParser() *Parser {
	return NewParser(chains.IdentityTranslator, symbol.DefaultFormatter())
}

func TestParseCrossChainTransfers_AbsentItems(t *testing.T) {
	got := newTestParser().ParseCrossChainTransfers(TransfersRequest{})
	assert.False(t, got.IsPresent())
}

func TestParseCrossChainTransfers_EmptyItems(t *testing.T) {
	got := newTestParser().ParseCrossChainTransfers(TransfersRequest{
		Items: optional.Some([]RawTransferRecord{}),
	})
	items, ok := got.Get()
	require.True(t, ok)
	assert.NotNil(t, items)
	assert.Len(t, items, 0)
}

func TestParseCrossChainTransfers_IdentityTranslator(t *testing.T) {
	raw := []RawTransferRecord{
		{TransferFields: TransferFields{TransferTransactionID: "tx1"}, ToChainID: "AELF", FromChainID: "ETH"},
		{TransferFields: TransferFields{TransferTransactionID: "tx2"}, ToChainID: "BSC", FromChainID: "AELF"},
	}

	got := newTestParser().ParseCrossChainTransfers(TransfersRequest{Items: optional.Some(raw)})
	items, ok := got.Get()
	require.True(t, ok)
	require.Len(t, items, 2)

	assert.Equal(t, TransferRecord{
		TransferFields: TransferFields{TransferTransactionID: "tx1"},
		ToChainID:      "AELF",
		FromChainID:    "ETH",
	}, items[0])
	assert.Equal(t, TransferRecord{
		TransferFields: TransferFields{TransferTransactionID: "tx2"},
		ToChainID:      "BSC",
		FromChainID:    "AELF",
	}, items[1])
}

func TestParseCrossChainTransfers_TranslatesChainIDs(t *testing.T) {
	raw := []RawTransferRecord{
		{FromChainID: "MainChain_AELF", ToChainID: "Sepolia"},
		{FromChainID: "BSCTest", ToChainID: "SideChain_tDVW"},
		{FromChainID: "Unknown", ToChainID: "Ton"},
	}
	p := NewParser(chains.DefaultRegistry(), symbol.DefaultFormatter())

	items, ok := p.ParseCrossChainTransfers(TransfersRequest{Items: optional.Some(raw)}).Get()
	require.True(t, ok)
	require.Len(t, items, 3)

	assert.Equal(t, chains.AELF, items[0].FromChainID)
	assert.Equal(t, chains.Sepolia, items[0].ToChainID)
	assert.Equal(t, chains.BSCTestnet, items[1].FromChainID)
	assert.Equal(t, chains.TDVW, items[1].ToChainID)
	assert.Equal(t, chains.ChainID("Unknown"), items[2].FromChainID)
	assert.Equal(t, chains.Ton, items[2].ToChainID)
}

func TestParseCrossChainTransfers_PreservesOrder(t *testing.T) {
	var raw []RawTransferRecord
	for _, id := range []string{"c", "a", "b", "a"} {
		raw = append(raw, RawTransferRecord{TransferFields: TransferFields{ID: id}})
	}

	items, ok := newTestParser().ParseCrossChainTransfers(TransfersRequest{Items: optional.Some(raw)}).Get()
	require.True(t, ok)
	require.Len(t, items, len(raw))
	for i := range raw {
		assert.Equal(t, raw[i].ID, items[i].ID)
	}
}

func TestParseCrossChainTransfers_TransferToken(t *testing.T) {
	raw := []RawTransferRecord{
		{TransferToken: &Token{Symbol: "SGR-1", Address: "sgr", Decimals: 8, Extra: Extra{"isNativeToken": json.RawMessage(`false`)}}},
		{TransferToken: &Token{Symbol: "WETH", Address: "weth", Decimals: 18}},
		{},
	}

	items, ok := newTestParser().ParseCrossChainTransfers(TransfersRequest{Items: optional.Some(raw)}).Get()
	require.True(t, ok)

	require.NotNil(t, items[0].TransferToken)
	assert.Equal(t, "SGR", items[0].TransferToken.Symbol)
	assert.Equal(t, "sgr", items[0].TransferToken.Address)
	assert.Equal(t, 8, items[0].TransferToken.Decimals)
	assert.Equal(t, json.RawMessage(`false`), items[0].TransferToken.Extra["isNativeToken"])

	// the parser uses the base formatter, wrapped-native symbols stay wrapped
	assert.Equal(t, "WETH", items[1].TransferToken.Symbol)

	assert.Nil(t, items[2].TransferToken)
}

func TestParseCrossChainTransfers_ReceiveTokenUntouched(t *testing.T) {
	raw := []RawTransferRecord{
		{TransferFields: TransferFields{ReceiveToken: &Token{Symbol: "SGR-1"}}},
	}

	items, ok := newTestParser().ParseCrossChainTransfers(TransfersRequest{Items: optional.Some(raw)}).Get()
	require.True(t, ok)
	assert.Equal(t, "SGR-1", items[0].ReceiveToken.Symbol)
}

func TestParseCrossChainTransfers_DoesNotMutateInput(t *testing.T) {
	raw := []RawTransferRecord{
		{
			TransferFields: TransferFields{
				ID:           "1",
				ReceiveToken: &Token{Symbol: "ELF"},
				Extra:        Extra{"memo": json.RawMessage(`"hi"`)},
			},
			FromChainID:   "MainChain_AELF",
			ToChainID:     "Ethereum",
			TransferToken: &Token{Symbol: "SGR-1"},
		},
	}
	p := NewParser(chains.DefaultRegistry(), symbol.DefaultFormatter())

	items, ok := p.ParseCrossChainTransfers(TransfersRequest{Items: optional.Some(raw)}).Get()
	require.True(t, ok)

	assert.Equal(t, "SGR-1", raw[0].TransferToken.Symbol)
	assert.Equal(t, "MainChain_AELF", raw[0].FromChainID)

	items[0].ReceiveToken.Symbol = "changed"
	items[0].Extra["memo"] = json.RawMessage(`"changed"`)
	assert.Equal(t, "ELF", raw[0].ReceiveToken.Symbol)
	assert.Equal(t, json.RawMessage(`"hi"`), raw[0].Extra["memo"])
}

func TestParseCrossChainTransfers_StubTranslator(t *testing.T) {
	calls := []string{}
	stub := chains.TranslatorFunc(func(apiID string) chains.ChainID {
		calls = append(calls, apiID)
		return chains.ChainID("canon-" + apiID)
	})

	raw := []RawTransferRecord{{FromChainID: "a", ToChainID: "b"}}
	items, ok := ParseCrossChainTransfers(TransfersRequest{Items: optional.Some(raw)}, stub, nil).Get()
	require.True(t, ok)

	assert.Equal(t, []string{"a", "b"}, calls)
	assert.Equal(t, chains.ChainID("canon-a"), items[0].FromChainID)
	assert.Equal(t, chains.ChainID("canon-b"), items[0].ToChainID)
}

func TestNewParser_Defaults(t *testing.T) {
	p := NewParser(nil, nil)
	raw := []RawTransferRecord{{FromChainID: "x", TransferToken: &Token{Symbol: "SGR-1"}}}

	items, ok := p.ParseCrossChainTransfers(TransfersRequest{Items: optional.Some(raw)}).Get()
	require.True(t, ok)
	assert.Equal(t, chains.ChainID("x"), items[0].FromChainID)
	assert.Equal(t, "SGR", items[0].TransferToken.Symbol)
}

func TestTransferRecordDisplaySymbol(t *testing.T) {
	f := symbol.DefaultFormatter()

	assert.Equal(t, "ETH", TransferRecord{TransferToken: &Token{Symbol: "WETH"}}.DisplaySymbol(f))
	assert.Equal(t, "SGR", TransferRecord{TransferToken: &Token{Symbol: "SGR-1"}}.DisplaySymbol(f))
	assert.Equal(t, "", TransferRecord{}.DisplaySymbol(f))
}
