package main

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/bridgescan/bridgenode/pkg/chains"
	"github.com/bridgescan/bridgenode/pkg/crosschain"
	"github.com/bridgescan/bridgenode/pkg/symbol"
	"github.com/jedib0t/go-pretty/v6/table"
)

func formatMillis(ms int64) string {
	if ms <= 0 {
		return "-"
	}
	return time.UnixMilli(ms).UTC().Format("2006-01-02 15:04:05")
}

// formatAmount prints the amount exactly as the indexer sent it.
func formatAmount(n json.Number) string {
	if n == "" {
		return "0"
	}
	return n.String()
}

func renderTransfers(w io.Writer, transfers []crosschain.TransferRecord, totalCount int64, formatter *symbol.Formatter) {
	if len(transfers) == 0 {
		fmt.Fprintln(w, "No transfers to display.")
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"ID", "From", "To", "Amount", "Symbol", "Status", "Transfer Time"})
	for _, tr := range transfers {
		t.AppendRow(table.Row{
			tr.ID,
			tr.FromChainID,
			tr.ToChainID,
			formatAmount(tr.TransferAmount),
			tr.DisplaySymbol(formatter),
			tr.Status,
			formatMillis(tr.TransferTime),
		})
	}
	t.AppendFooter(table.Row{"", "", "", "", "", "Total", totalCount})
	t.Render()
}

func renderChains(w io.Writer, all []chains.Chain) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"ID", "API Name", "Name", "Type", "Native", "Testnet"})
	for _, c := range all {
		t.AppendRow(table.Row{c.ID, c.APIName, c.Name, c.Type, c.NativeSymbol, c.Testnet})
	}
	t.Render()
}
