package crosschain

import (
	"github.com/bridgescan/bridgenode/pkg/chains"
	"github.com/bridgescan/bridgenode/pkg/optional"
	"github.com/bridgescan/bridgenode/pkg/symbol"
)

// Parser normalizes indexer records for display. It holds no mutable state.
type Parser struct {
	translator chains.Translator
	formatter  *symbol.Formatter
}

// NewParser falls back to the identity translator and the default symbol
// tables when either dependency is nil.
func NewParser(translator chains.Translator, formatter *symbol.Formatter) *Parser {
	if translator == nil {
		translator = chains.IdentityTranslator
	}
	if formatter == nil {
		formatter = symbol.DefaultFormatter()
	}
	return &Parser{translator: translator, formatter: formatter}
}

// ParseCrossChainTransfers maps every raw record to its normalized form,
// keeping length and order. Absent items give an absent result, which is not
// the same as an empty list.
func (p *Parser) ParseCrossChainTransfers(req TransfersRequest) optional.Value[[]TransferRecord] {
	items, ok := req.Items.Get()
	if !ok {
		return optional.None[[]TransferRecord]()
	}
	out := make([]TransferRecord, len(items))
	for i := range items {
		out[i] = p.parseTransfer(&items[i])
	}
	return optional.Some(out)
}

func (p *Parser) parseTransfer(raw *RawTransferRecord) TransferRecord {
	rec := TransferRecord{
		TransferFields: raw.TransferFields.clone(),
		FromChainID:    p.translator.Translate(raw.FromChainID),
		ToChainID:      p.translator.Translate(raw.ToChainID),
	}
	if raw.TransferToken != nil {
		rec.TransferToken = raw.TransferToken.clone()
		rec.TransferToken.Symbol = p.formatter.FormatSymbol(raw.TransferToken.Symbol)
	}
	return rec
}

// ParseCrossChainTransfers is a convenience wrapper around Parser.
func ParseCrossChainTransfers(req TransfersRequest, translator chains.Translator, formatter *symbol.Formatter) optional.Value[[]TransferRecord] {
	return NewParser(translator, formatter).ParseCrossChainTransfers(req)
}

// DisplaySymbol is the symbol shown in history tables, with wrapped-native
// tokens unwrapped. Records without a transfer token yield "".
func (r TransferRecord) DisplaySymbol(f *symbol.Formatter) string {
	if r.TransferToken == nil {
		return ""
	}
	return f.FormatSymbolAndNativeToken(r.TransferToken.Symbol)
}
