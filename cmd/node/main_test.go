package main

import (
	"io"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"testing"
	"time"

	"github.com/bridgescan/bridgenode/internal/config"
	"github.com/bridgescan/bridgenode/pkg/symbol"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNodeConfig(t *testing.T) {
	cfg := config.Config{
		RPCPort:               9090,
		SqlitePath:            "/data/sqlite",
		BadgerPath:            "/data/badger",
		IndexerApiUrl:         "https://indexer.example",
		IndexerTimeoutSeconds: 15,
		SyncIntervalSeconds:   30,
		SyncPageSize:          200,
		SyncMaxPages:          3,
		SymbolFormatOverrides: "SGR-1:SEED, ABC-1:ABC",
	}

	nodeCfg, err := nodeConfig(cfg)
	require.NoError(t, err)

	assert.Equal(t, 9090, nodeCfg.RPCPort)
	assert.Equal(t, "/data/sqlite", nodeCfg.SqlitePath)
	assert.Equal(t, "/data/badger", nodeCfg.BadgerPath)
	assert.Equal(t, "https://indexer.example", nodeCfg.IndexerApiUrl)
	assert.Equal(t, 15*time.Second, nodeCfg.IndexerTimeout)
	assert.Equal(t, 30*time.Second, nodeCfg.SyncInterval)
	assert.Equal(t, 200, nodeCfg.SyncPageSize)
	assert.Equal(t, 3, nodeCfg.SyncMaxPages)
	assert.Equal(t, symbol.FormatMap{"SGR-1": "SEED", "ABC-1": "ABC"}, nodeCfg.SymbolOverrides)
}

func TestNodeConfig_BadOverrides(t *testing.T) {
	_, err := nodeConfig(config.Config{SymbolFormatOverrides: "SGR-1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SYMBOL_FORMAT_OVERRIDES")
}

// TestNodeStartAndStop runs main(), waits for "Node started successfully",
// then sends SIGTERM and expects the graceful shutdown logs.
func TestNodeStartAndStop(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := ln.Addr().(*net.TCPAddr).Port
	require.NoError(t, ln.Close())

	tmpDir := t.TempDir()
	t.Setenv("RPC_PORT", strconv.Itoa(port))
	t.Setenv("SQLITE_PATH", filepath.Join(tmpDir, "sqlite", "sqlite"))
	t.Setenv("BADGER_PATH", filepath.Join(tmpDir, "badger"))
	t.Setenv("SYNC_INTERVAL_SECONDS", "0")

	oldStderr := os.Stderr
	defer func() { os.Stderr = oldStderr }()

	// production zap logs go to stderr
	r, w, _ := os.Pipe()
	os.Stderr = w

	done := make(chan struct{})
	go func() {
		main()
		close(done)
	}()

	time.Sleep(time.Second)

	proc, err := os.FindProcess(os.Getpid())
	if err != nil {
		t.Fatalf("failed to find our own process: %v", err)
	}
	_ = proc.Signal(syscall.SIGTERM)

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("main() did not exit after sending SIGTERM")
	}

	w.Close()
	os.Stderr = oldStderr

	outBytes, _ := io.ReadAll(r)
	out := string(outBytes)

	if !strings.Contains(out, "Node started successfully") {
		t.Errorf("Expected 'Node started successfully', but not found. Output:\n%s", out)
	}
	if !strings.Contains(out, "Node stopped.") {
		t.Errorf("Expected 'Node stopped.', but not found. Output:\n%s", out)
	}
	if !strings.Contains(out, "Received shutdown signal") {
		t.Errorf("Expected 'Received shutdown signal', but not found. Output:\n%s", out)
	}
}
