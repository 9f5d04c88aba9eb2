package syncer

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
)

var checkpointKey = []byte("syncer/checkpoint")

// Checkpoint records the outcome of the last completed sync round.
type Checkpoint struct {
	LastSyncedAt time.Time `json:"last_synced_at"`
	TotalCount   int64     `json:"total_count"`
	Stored       int       `json:"stored"`
}

type CheckpointStore interface {
	Save(cp Checkpoint) error
	Load() (Checkpoint, bool, error)
}

func NewCheckpointStore(kv *badger.DB) CheckpointStore {
	return &badgerCheckpointStore{kv: kv}
}

type badgerCheckpointStore struct {
	kv *badger.DB
}

func (s *badgerCheckpointStore) Save(cp Checkpoint) error {
	b, err := json.Marshal(cp)
	if err != nil {
		return fmt.Errorf("failed to encode checkpoint: %w", err)
	}
	return s.kv.Update(func(txn *badger.Txn) error {
		return txn.Set(checkpointKey, b)
	})
}

// Load reports false when no round has completed yet.
func (s *badgerCheckpointStore) Load() (Checkpoint, bool, error) {
	var cp Checkpoint
	err := s.kv.View(func(txn *badger.Txn) error {
		item, err := txn.Get(checkpointKey)
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &cp)
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return Checkpoint{}, false, nil
	}
	if err != nil {
		return Checkpoint{}, false, fmt.Errorf("failed to load checkpoint: %w", err)
	}
	return cp, true, nil
}
