package transferdb

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"github.com/bridgescan/bridgenode/internal/db"
	"github.com/bridgescan/bridgenode/internal/db/testdb"
	"github.com/bridgescan/bridgenode/pkg/chains"
	"github.com/bridgescan/bridgenode/pkg/crosschain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTransfer(id string, transferTime int64, from, to string) crosschain.TransferRecord {
	return crosschain.TransferRecord{
		TransferFields: crosschain.TransferFields{
			ID:                    id,
			FromAddress:           from,
			ToAddress:             to,
			TransferTransactionID: "tx-" + id,
			TransferAmount:        json.Number("1.5"),
			TransferTime:          transferTime,
			Status:                crosschain.StatusTransferring,
			Extra:                 crosschain.Extra{"fromChainIcon": json.RawMessage(`"icon.png"`)},
		},
		FromChainID:   chains.AELF,
		ToChainID:     chains.Sepolia,
		TransferToken: &crosschain.Token{Symbol: "SGR", Decimals: 8},
	}
}

func storeAll(t *testing.T, sqlite *sql.DB, transferDb TransferDb, transfers ...crosschain.TransferRecord) {
	_, err := db.TxRunner(context.Background(), sqlite, func(tx *sql.Tx) (struct{}, error) {
		for _, tr := range transfers {
			if err := transferDb.StoreTransfer(tx, tr); err != nil {
				return struct{}{}, err
			}
		}
		return struct{}{}, nil
	})
	require.NoError(t, err)
}

func TestStoreAndGetTransfer(t *testing.T) {
	sqlite, cleanup := testdb.SetupTestDB(t)
	defer cleanup()

	transferDb := NewTransferDb()
	storeAll(t, sqlite, transferDb, sampleTransfer("a", 100, "alice", "bob"))

	got, err := transferDb.GetTransfer(sqlite, "a")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "a", got.ID)
	assert.Equal(t, chains.AELF, got.FromChainID)
	assert.Equal(t, chains.Sepolia, got.ToChainID)
	assert.Equal(t, "SGR", got.TransferToken.Symbol)
	assert.Equal(t, json.RawMessage(`"icon.png"`), got.Extra["fromChainIcon"])

	missing, err := transferDb.GetTransfer(sqlite, "missing")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestStoreTransfer_Upsert(t *testing.T) {
	sqlite, cleanup := testdb.SetupTestDB(t)
	defer cleanup()

	transferDb := NewTransferDb()
	first := sampleTransfer("a", 100, "alice", "bob")
	storeAll(t, sqlite, transferDb, first)

	updated := first
	updated.Status = crosschain.StatusReceived
	updated.ReceiveTransactionID = "rx-a"
	storeAll(t, sqlite, transferDb, updated)

	var count int
	require.NoError(t, sqlite.QueryRow(`SELECT COUNT(*) FROM cross_chain_transfers`).Scan(&count))
	assert.Equal(t, 1, count)

	got, err := transferDb.GetTransfer(sqlite, "a")
	require.NoError(t, err)
	assert.Equal(t, crosschain.StatusReceived, got.Status)
	assert.Equal(t, "rx-a", got.ReceiveTransactionID)
}

func TestStoreTransfer_RequiresID(t *testing.T) {
	sqlite, cleanup := testdb.SetupTestDB(t)
	defer cleanup()

	_, err := db.TxRunner(context.Background(), sqlite, func(tx *sql.Tx) (struct{}, error) {
		return struct{}{}, NewTransferDb().StoreTransfer(tx, crosschain.TransferRecord{})
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "transfer has no id")
}

func TestGetPaginatedResponseForQuery(t *testing.T) {
	sqlite, cleanup := testdb.SetupTestDB(t)
	defer cleanup()

	transferDb := &TransferDbImpl{now: func() time.Time { return time.Unix(1700000000, 0) }}
	storeAll(t, sqlite, transferDb,
		sampleTransfer("c", 300, "alice", "bob"),
		sampleTransfer("a", 100, "alice", "carol"),
		sampleTransfer("b", 200, "dave", "alice"),
		sampleTransfer("d", 400, "dave", "erin"),
	)

	t.Run("all descending", func(t *testing.T) {
		total, transfers, err := transferDb.GetPaginatedResponseForQuery(sqlite, db.QueryOptions{
			Page: 1, PageSize: 10, Direction: db.QueryDirectionDesc,
		}, nil)
		require.NoError(t, err)
		assert.Equal(t, 4, total)
		require.Len(t, transfers, 4)
		assert.Equal(t, []string{"d", "c", "b", "a"}, ids(transfers))
	})

	t.Run("second page", func(t *testing.T) {
		total, transfers, err := transferDb.GetPaginatedResponseForQuery(sqlite, db.QueryOptions{
			Page: 2, PageSize: 3, Direction: db.QueryDirectionAsc,
		}, nil)
		require.NoError(t, err)
		assert.Equal(t, 4, total)
		assert.Equal(t, []string{"d"}, ids(transfers))
	})

	t.Run("address filter", func(t *testing.T) {
		total, transfers, err := transferDb.GetPaginatedResponseForQuery(sqlite, db.QueryOptions{
			Where:     "(from_address = ? OR to_address = ?)",
			Page:      1,
			PageSize:  10,
			Direction: db.QueryDirectionAsc,
		}, []interface{}{"alice", "alice"})
		require.NoError(t, err)
		assert.Equal(t, 3, total)
		assert.Equal(t, []string{"a", "b", "c"}, ids(transfers))
	})

	t.Run("no match", func(t *testing.T) {
		total, transfers, err := transferDb.GetPaginatedResponseForQuery(sqlite, db.QueryOptions{
			Where: "from_chain_id = ?", Page: 1, PageSize: 10, Direction: db.QueryDirectionAsc,
		}, []interface{}{"97"})
		require.NoError(t, err)
		assert.Equal(t, 0, total)
		assert.Empty(t, transfers)
	})
}

func ids(transfers []*crosschain.TransferRecord) []string {
	out := make([]string, len(transfers))
	for i, tr := range transfers {
		out[i] = tr.ID
	}
	return out
}

func TestStoreTransfer_KeepsExactAmount(t *testing.T) {
	sqlite, cleanup := testdb.SetupTestDB(t)
	defer cleanup()

	store := NewTransferDb()
	rec := sampleTransfer("precise", 1700000000000, "a", "b")
	rec.TransferAmount = json.Number("98765432109876543210.000000000000000001")

	_, err := db.TxRunner(context.Background(), sqlite, func(tx *sql.Tx) (struct{}, error) {
		return struct{}{}, store.StoreTransfer(tx, rec)
	})
	require.NoError(t, err)

	got, err := store.GetTransfer(sqlite, "precise")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, json.Number("98765432109876543210.000000000000000001"), got.TransferAmount)

	var column float64
	require.NoError(t, sqlite.QueryRow(`SELECT transfer_amount FROM cross_chain_transfers WHERE id = ?`, "precise").Scan(&column))
	assert.InDelta(t, 9.876543210987654e19, column, 1e6)
}
