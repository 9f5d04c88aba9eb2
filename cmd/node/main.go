package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bridgescan/bridgenode/internal/config"
	"github.com/bridgescan/bridgenode/internal/node"
	"github.com/bridgescan/bridgenode/pkg/symbol"
	"go.uber.org/zap"
)

var Version = "dev" // Overridden by release build script

func setupLogger(mode string) {
	logger := zap.Must(zap.NewProduction())
	if mode == "development" {
		logger = zap.Must(zap.NewDevelopment())
	}
	zap.ReplaceGlobals(logger)
}

func nodeConfig(cfg config.Config) (node.NodeConfig, error) {
	overrides, err := symbol.ParseFormatMap(cfg.SymbolFormatOverrides)
	if err != nil {
		return node.NodeConfig{}, fmt.Errorf("SYMBOL_FORMAT_OVERRIDES: %w", err)
	}
	return node.NodeConfig{
		RPCPort:         cfg.RPCPort,
		SqlitePath:      cfg.SqlitePath,
		BadgerPath:      cfg.BadgerPath,
		IndexerApiUrl:   cfg.IndexerApiUrl,
		IndexerTimeout:  time.Duration(cfg.IndexerTimeoutSeconds) * time.Second,
		SyncInterval:    time.Duration(cfg.SyncIntervalSeconds) * time.Second,
		SyncPageSize:    cfg.SyncPageSize,
		SyncMaxPages:    cfg.SyncMaxPages,
		SymbolOverrides: overrides,
	}, nil
}

func main() {
	cfg := config.Get()
	setupLogger(cfg.LogZapMode)

	zap.L().Info("Starting bridgenode...",
		zap.String("Version", Version))

	// Catch up to two signals: first for graceful, second to force
	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	nodeCfg, err := nodeConfig(cfg)
	if err != nil {
		zap.L().Fatal("Invalid configuration", zap.Error(err))
	}

	n := node.NewNode(nodeCfg)
	if err := n.Start(); err != nil {
		zap.L().Fatal("Failed to start node", zap.Error(err))
	}

	doneCh := make(chan struct{})

	go func() {
		<-sigCh
		zap.L().Info("Received shutdown signal, initiating graceful shutdown...")

		// RPC first, then the syncer, then storage
		if err := n.Stop(); err != nil {
			zap.L().Warn("Error stopping node", zap.Error(err))
		}

		close(doneCh)

		// If a second signal arrives, force an immediate exit
		<-sigCh
		zap.L().Error("Received second signal, forcing shutdown")
		os.Exit(1)
	}()

	<-doneCh

	zap.L().Info("Shutdown complete")
	_ = zap.L().Sync()
}
