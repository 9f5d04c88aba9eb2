package transferdb

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/bridgescan/bridgenode/internal/db"
	"github.com/bridgescan/bridgenode/pkg/crosschain"
)

const tableName = "cross_chain_transfers"

const allTransfersQuery = `SELECT record_json FROM ` + tableName

var orderColumns = []string{"transfer_time", "id"}

// TransferDb stores normalized cross-chain transfers.
type TransferDb interface {
	StoreTransfer(tx *sql.Tx, transfer crosschain.TransferRecord) error
	GetTransfer(rq db.QueryRunner, id string) (*crosschain.TransferRecord, error)
	GetPaginatedResponseForQuery(rq db.QueryRunner, queryOptions db.QueryOptions, queryParams []interface{}) (total int, transfers []*crosschain.TransferRecord, err error)
}

func NewTransferDb() TransferDb {
	return &TransferDbImpl{now: time.Now}
}

type TransferDbImpl struct {
	now func() time.Time
}

// StoreTransfer inserts the transfer or replaces the stored copy with the same id.
func (t *TransferDbImpl) StoreTransfer(tx *sql.Tx, transfer crosschain.TransferRecord) error {
	if transfer.ID == "" {
		return fmt.Errorf("transfer has no id")
	}
	recordJSON, err := json.Marshal(transfer)
	if err != nil {
		return fmt.Errorf("failed to encode transfer %s: %w", transfer.ID, err)
	}

	// the indexed column is only for sorting/filtering; record_json keeps the exact value
	amount, _ := transfer.TransferAmount.Float64()

	symbol := ""
	if transfer.TransferToken != nil {
		symbol = transfer.TransferToken.Symbol
	}

	_, err = tx.Exec(`
		INSERT INTO cross_chain_transfers (
			id, from_chain_id, to_chain_id, from_address, to_address, transfer_tx_id,
			receive_tx_id, transfer_symbol, transfer_amount, transfer_time, status, record_json, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			from_chain_id = excluded.from_chain_id,
			to_chain_id = excluded.to_chain_id,
			from_address = excluded.from_address,
			to_address = excluded.to_address,
			transfer_tx_id = excluded.transfer_tx_id,
			receive_tx_id = excluded.receive_tx_id,
			transfer_symbol = excluded.transfer_symbol,
			transfer_amount = excluded.transfer_amount,
			transfer_time = excluded.transfer_time,
			status = excluded.status,
			record_json = excluded.record_json,
			updated_at = excluded.updated_at`,
		transfer.ID, string(transfer.FromChainID), string(transfer.ToChainID), transfer.FromAddress,
		transfer.ToAddress, transfer.TransferTransactionID, transfer.ReceiveTransactionID, symbol,
		amount, transfer.TransferTime, int(transfer.Status), string(recordJSON),
		t.now().Unix())
	return err
}

// GetTransfer returns nil without error when the id is unknown.
func (t *TransferDbImpl) GetTransfer(rq db.QueryRunner, id string) (*crosschain.TransferRecord, error) {
	row := rq.QueryRow(allTransfersQuery+` WHERE id = ?`, id)
	stored := &storedTransfer{}
	if err := stored.ScanRow(row); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &stored.TransferRecord, nil
}

func (t *TransferDbImpl) GetPaginatedResponseForQuery(rq db.QueryRunner, queryOptions db.QueryOptions, queryParams []interface{}) (total int, transfers []*crosschain.TransferRecord, err error) {
	total, rows, err := db.GetPaginatedResponseForQuery(
		tableName, rq, allTransfersQuery, queryOptions, orderColumns, queryParams,
		func() *storedTransfer { return &storedTransfer{} },
	)
	if err != nil {
		return 0, nil, err
	}
	transfers = make([]*crosschain.TransferRecord, len(rows))
	for i, row := range rows {
		transfers[i] = &row.TransferRecord
	}
	return total, transfers, nil
}

type storedTransfer struct {
	crosschain.TransferRecord
}

func (s *storedTransfer) ScanRow(scanner db.RowScanner) error {
	var recordJSON string
	if err := scanner.Scan(&recordJSON); err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(recordJSON), &s.TransferRecord); err != nil {
		return fmt.Errorf("failed to decode stored transfer: %w", err)
	}
	return nil
}
