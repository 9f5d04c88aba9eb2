package node

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/bridgescan/bridgenode/internal/db"
	"github.com/bridgescan/bridgenode/internal/indexer"
	"github.com/bridgescan/bridgenode/internal/rpc"
	"github.com/bridgescan/bridgenode/internal/syncer"
	"github.com/bridgescan/bridgenode/internal/transferdb"
	"github.com/bridgescan/bridgenode/pkg/chains"
	"github.com/bridgescan/bridgenode/pkg/crosschain"
	"github.com/bridgescan/bridgenode/pkg/symbol"
	"github.com/dgraph-io/badger/v4"
	"go.uber.org/zap"
)

// NodeConfig holds user-supplied settings from flags or env
type NodeConfig struct {
	RPCPort    int
	SqlitePath string
	// BadgerPath empty keeps checkpoints in memory.
	BadgerPath string

	IndexerApiUrl  string
	IndexerTimeout time.Duration
	// SyncInterval <= 0 or an empty IndexerApiUrl disables mirroring.
	SyncInterval time.Duration
	SyncPageSize int
	SyncMaxPages int

	SymbolOverrides symbol.FormatMap
}

// Node represents the running instance
type Node struct {
	mu      sync.Mutex
	cfg     NodeConfig
	running bool

	sqlite   *sql.DB
	kv       *badger.DB
	closeRPC func()
	cancel   context.CancelFunc
	wg       sync.WaitGroup
}

func NewNode(cfg NodeConfig) *Node {
	return &Node{cfg: cfg}
}

// Start opens storage, starts the syncer and serves the API.
func (n *Node) Start() error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.running {
		return fmt.Errorf("node is already running")
	}
	if n.cfg.RPCPort <= 0 {
		return fmt.Errorf("invalid rpc port %d", n.cfg.RPCPort)
	}
	if n.cfg.SqlitePath == "" {
		return fmt.Errorf("sqlite path is required")
	}

	sqlite, err := db.OpenSqlite(n.cfg.SqlitePath)
	if err != nil {
		return fmt.Errorf("failed to open sqlite: %w", err)
	}
	kv, err := n.openBadger()
	if err != nil {
		_ = sqlite.Close()
		return fmt.Errorf("failed to open badger: %w", err)
	}

	registry := chains.DefaultRegistry()
	formatter := symbol.NewFormatter(symbol.DefaultFormatMap().Merge(n.cfg.SymbolOverrides), symbol.DefaultNativeTokens())
	checkpoints := syncer.NewCheckpointStore(kv)

	ctx, cancel := context.WithCancel(context.Background())
	if n.syncEnabled() {
		s := syncer.New(
			indexer.NewClient(n.cfg.IndexerApiUrl, n.cfg.IndexerTimeout),
			crosschain.NewParser(registry, formatter),
			sqlite,
			transferdb.NewTransferDb(),
			checkpoints,
			n.cfg.SyncPageSize,
			n.cfg.SyncMaxPages,
		)
		n.wg.Add(1)
		go func() {
			defer n.wg.Done()
			s.Run(ctx, n.cfg.SyncInterval)
		}()
	} else {
		zap.L().Warn("Indexer sync disabled", zap.String("indexerApiUrl", n.cfg.IndexerApiUrl))
	}

	n.closeRPC = rpc.StartRPCServer(n.cfg.RPCPort, sqlite, rpc.Services{
		Checkpoints: checkpoints,
		Registry:    registry,
		Formatter:   formatter,
	}, ctx)

	n.sqlite = sqlite
	n.kv = kv
	n.cancel = cancel
	n.running = true
	zap.L().Info("Node started successfully",
		zap.Int("rpcPort", n.cfg.RPCPort),
		zap.String("sqlitePath", n.cfg.SqlitePath),
		zap.String("badgerPath", n.cfg.BadgerPath),
		zap.Bool("syncEnabled", n.syncEnabled()),
	)
	return nil
}

func (n *Node) syncEnabled() bool {
	return n.cfg.IndexerApiUrl != "" && n.cfg.SyncInterval > 0
}

func (n *Node) openBadger() (*badger.DB, error) {
	if n.cfg.BadgerPath == "" {
		return db.OpenBadgerInMemory()
	}
	return db.OpenBadger(n.cfg.BadgerPath)
}

// Stop shuts the API down first, then waits for the syncer before closing storage.
func (n *Node) Stop() error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if !n.running {
		return fmt.Errorf("node not running")
	}

	n.closeRPC()
	n.cancel()
	n.wg.Wait()

	var firstErr error
	if err := n.kv.Close(); err != nil {
		zap.L().Warn("Error closing badger", zap.Error(err))
		firstErr = err
	}
	if err := n.sqlite.Close(); err != nil {
		zap.L().Warn("Error closing sqlite", zap.Error(err))
		if firstErr == nil {
			firstErr = err
		}
	}

	n.running = false
	zap.L().Info("Node stopped.")
	return firstErr
}
