package handlers

import (
	"database/sql"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/bridgescan/bridgenode/internal/transferdb"
	"github.com/bridgescan/bridgenode/pkg/chains"
	"github.com/bridgescan/bridgenode/pkg/crosschain"
)

var transferDb transferdb.TransferDb = transferdb.NewTransferDb()
var PaginatedTransferQueryHandlerFunc = PaginatedQueryHandler[crosschain.TransferRecord]

func CrossChainTransfersGetHandler(r *http.Request, db *sql.DB, registry *chains.Registry) (interface{}, error) {
	// For /api/v1/cross_chain_transfers => parts = ["api","v1","cross_chain_transfers"]
	// For /api/v1/cross_chain_transfers/abc => parts = ["api","v1","cross_chain_transfers","abc"]
	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	if len(parts) > 3 {
		return crossChainTransferByID(db, parts[3])
	}

	query, queryParams, err := transferFilters(r, registry)
	if err != nil {
		return nil, err
	}
	return PaginatedTransferQueryHandlerFunc(r, db, transferDb, query, queryParams)
}

func crossChainTransferByID(db *sql.DB, id string) (*crosschain.TransferRecord, error) {
	transfer, err := transferDb.GetTransfer(db, id)
	if err != nil {
		return nil, err
	}
	if transfer == nil {
		return nil, &NotFoundError{Message: fmt.Sprintf("transfer %s not found", id)}
	}
	return transfer, nil
}

// transferFilters builds the WHERE clause from the query string. Chain ids may be
// given either normalized ("1") or as the indexer names them ("MainChain_AELF").
func transferFilters(r *http.Request, registry *chains.Registry) (string, []interface{}, error) {
	values := r.URL.Query()
	var clauses []string
	queryParams := []interface{}{}

	if from := values.Get("from_chain_id"); from != "" {
		clauses = append(clauses, "from_chain_id = ?")
		queryParams = append(queryParams, string(registry.Translate(from)))
	}
	if to := values.Get("to_chain_id"); to != "" {
		clauses = append(clauses, "to_chain_id = ?")
		queryParams = append(queryParams, string(registry.Translate(to)))
	}
	if address := values.Get("address"); address != "" {
		clauses = append(clauses, "(from_address = ? OR to_address = ?)")
		queryParams = append(queryParams, address, address)
	}
	if statusStr := values.Get("status"); statusStr != "" {
		status, err := strconv.Atoi(statusStr)
		if err != nil || crosschain.TransferStatus(status).String() == "Unknown" {
			return "", nil, &BadRequestError{Message: fmt.Sprintf("invalid status %q", statusStr)}
		}
		clauses = append(clauses, "status = ?")
		queryParams = append(queryParams, status)
	}

	return strings.Join(clauses, " AND "), queryParams, nil
}
