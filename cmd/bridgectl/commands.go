package main

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/bridgescan/bridgenode/internal/config"
	"github.com/bridgescan/bridgenode/internal/indexer"
	"github.com/bridgescan/bridgenode/pkg/chains"
	"github.com/bridgescan/bridgenode/pkg/crosschain"
	"github.com/bridgescan/bridgenode/pkg/symbol"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "bridgectl",
		Short:         "Inspect cross-chain bridge transfers",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			verbose, _ := cmd.Flags().GetBool("verbose")
			setupLogger(verbose)
		},
	}

	cfg := config.Get()
	root.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	root.PersistentFlags().Bool("json", false, "Print JSON instead of a table")
	root.PersistentFlags().String("symbol-overrides", cfg.SymbolFormatOverrides, "Extra symbol mappings as RAW:CANON,...")

	root.AddCommand(
		transfersCmd(cfg),
		symbolCmd(),
		chainsCmd(),
	)
	return root
}

func setupLogger(verbose bool) {
	if verbose {
		zap.ReplaceGlobals(zap.Must(zap.NewDevelopment()))
		return
	}
	logCfg := zap.NewProductionConfig()
	logCfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	zap.ReplaceGlobals(zap.Must(logCfg.Build()))
}

func formatterFromFlags(cmd *cobra.Command) (*symbol.Formatter, error) {
	raw, _ := cmd.Flags().GetString("symbol-overrides")
	overrides, err := symbol.ParseFormatMap(raw)
	if err != nil {
		return nil, err
	}
	return symbol.NewFormatter(symbol.DefaultFormatMap().Merge(overrides), symbol.DefaultNativeTokens()), nil
}

func writeJSON(cmd *cobra.Command, v any) error {
	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func transfersCmd(cfg config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transfers",
		Short: "Fetch and normalize transfers from the indexer",
		Args:  cobra.NoArgs,
		RunE:  runTransfers,
	}

	cmd.Flags().String("indexer-url", cfg.IndexerApiUrl, "Base URL of the bridge indexer")
	cmd.Flags().Duration("timeout", time.Duration(cfg.IndexerTimeoutSeconds)*time.Second, "Indexer request timeout")
	cmd.Flags().String("from-chain", "", "Source chain as the indexer names it (e.g. MainChain_AELF)")
	cmd.Flags().String("to-chain", "", "Destination chain as the indexer names it")
	cmd.Flags().String("from-address", "", "Sender address")
	cmd.Flags().String("to-address", "", "Receiver address")
	cmd.Flags().Int("type", 0, "Transfer type: 1 transfer, 2 receive")
	cmd.Flags().Int("skip", 0, "Number of transfers to skip")
	cmd.Flags().Int("limit", 20, "Maximum number of transfers")
	return cmd
}

func runTransfers(cmd *cobra.Command, args []string) error {
	formatter, err := formatterFromFlags(cmd)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	baseURL, _ := flags.GetString("indexer-url")
	timeout, _ := flags.GetDuration("timeout")
	transferType, _ := flags.GetInt("type")

	q := indexer.Query{Type: crosschain.TransferType(transferType)}
	q.FromChainID, _ = flags.GetString("from-chain")
	q.ToChainID, _ = flags.GetString("to-chain")
	q.FromAddress, _ = flags.GetString("from-address")
	q.ToAddress, _ = flags.GetString("to-address")
	q.SkipCount, _ = flags.GetInt("skip")
	q.MaxResultCount, _ = flags.GetInt("limit")

	registry := chains.DefaultRegistry()
	if err := q.Validate(registry); err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	req, err := indexer.NewClient(baseURL, timeout).FetchCrossChainTransfers(ctx, q)
	if err != nil {
		return err
	}

	parsed := crosschain.NewParser(registry, formatter).ParseCrossChainTransfers(req)
	asJSON, _ := flags.GetBool("json")
	if asJSON {
		return writeJSON(cmd, parsed)
	}

	transfers, ok := parsed.Get()
	if !ok {
		fmt.Fprintln(cmd.OutOrStdout(), "Indexer returned no items.")
		return nil
	}
	renderTransfers(cmd.OutOrStdout(), transfers, req.TotalCount, formatter)
	return nil
}

func symbolCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "symbol <symbol>",
		Short: "Show the display form of a token symbol",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter, err := formatterFromFlags(cmd)
			if err != nil {
				return err
			}
			native, _ := cmd.Flags().GetBool("native")
			if native {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatSymbolAndNativeToken(args[0]))
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatSymbol(args[0]))
			}
			return nil
		},
	}
	cmd.Flags().Bool("native", false, "Also unwrap wrapped-native tokens (WETH -> ETH)")
	return cmd
}

func chainsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "chains",
		Short: "List the supported chains",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			all := chains.DefaultRegistry().Chains()
			asJSON, _ := cmd.Flags().GetBool("json")
			if asJSON {
				return writeJSON(cmd, all)
			}
			renderChains(cmd.OutOrStdout(), all)
			return nil
		},
	}
}
