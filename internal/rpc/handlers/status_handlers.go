package handlers

import (
	"net/http"
	"time"

	"github.com/bridgescan/bridgenode/internal/syncer"
)

type StatusResponse struct {
	Status       string     `json:"status"`
	LastSyncedAt *time.Time `json:"last_synced_at"`
	TotalCount   int64      `json:"total_count"`
}

func StatusGetHandler(r *http.Request, checkpoints syncer.CheckpointStore) (StatusResponse, error) {
	resp := StatusResponse{Status: "OK"}
	if checkpoints == nil {
		return resp, nil
	}
	cp, ok, err := checkpoints.Load()
	if err != nil {
		return StatusResponse{}, err
	}
	if ok {
		lastSyncedAt := cp.LastSyncedAt
		resp.LastSyncedAt = &lastSyncedAt
		resp.TotalCount = cp.TotalCount
	}
	return resp, nil
}
