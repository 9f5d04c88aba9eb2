package syncer

import (
	"context"
	"database/sql"
	"time"

	"github.com/bridgescan/bridgenode/internal/db"
	"github.com/bridgescan/bridgenode/internal/indexer"
	"github.com/bridgescan/bridgenode/internal/transferdb"
	"github.com/bridgescan/bridgenode/pkg/crosschain"
	"go.uber.org/zap"
)

// TransferFetcher is the part of the indexer client the syncer needs.
type TransferFetcher interface {
	FetchCrossChainTransfers(ctx context.Context, q indexer.Query) (crosschain.TransfersRequest, error)
}

type Syncer struct {
	fetcher     TransferFetcher
	parser      *crosschain.Parser
	sqlite      *sql.DB
	transferDb  transferdb.TransferDb
	checkpoints CheckpointStore
	pageSize    int
	maxPages    int
	now         func() time.Time
}

func New(
	fetcher TransferFetcher,
	parser *crosschain.Parser,
	sqlite *sql.DB,
	transferDb transferdb.TransferDb,
	checkpoints CheckpointStore,
	pageSize, maxPages int,
) *Syncer {
	if pageSize <= 0 {
		pageSize = 100
	}
	if pageSize > indexer.MaxResultCountLimit {
		pageSize = indexer.MaxResultCountLimit
	}
	if maxPages <= 0 {
		maxPages = 1
	}
	return &Syncer{
		fetcher:     fetcher,
		parser:      parser,
		sqlite:      sqlite,
		transferDb:  transferDb,
		checkpoints: checkpoints,
		pageSize:    pageSize,
		maxPages:    maxPages,
		now:         time.Now,
	}
}

// SyncOnce mirrors up to maxPages pages of the newest transfers.
func (s *Syncer) SyncOnce(ctx context.Context) (Checkpoint, error) {
	cp := Checkpoint{}
	for page := 0; page < s.maxPages; page++ {
		if err := ctx.Err(); err != nil {
			return cp, err
		}
		req, err := s.fetcher.FetchCrossChainTransfers(ctx, indexer.Query{
			SkipCount:      page * s.pageSize,
			MaxResultCount: s.pageSize,
		})
		if err != nil {
			return cp, err
		}
		cp.TotalCount = req.TotalCount

		records, ok := s.parser.ParseCrossChainTransfers(req).Get()
		if !ok {
			zap.L().Warn("Indexer returned no items", zap.Int("page", page))
			break
		}

		stored, err := db.TxRunner(ctx, s.sqlite, func(tx *sql.Tx) (int, error) {
			for _, rec := range records {
				if err := s.transferDb.StoreTransfer(tx, rec); err != nil {
					return 0, err
				}
			}
			return len(records), nil
		})
		if err != nil {
			return cp, err
		}
		cp.Stored += stored

		if len(records) < s.pageSize {
			break
		}
	}

	cp.LastSyncedAt = s.now().UTC()
	if err := s.checkpoints.Save(cp); err != nil {
		return cp, err
	}
	zap.L().Info("Sync round completed",
		zap.Int("stored", cp.Stored),
		zap.Int64("totalCount", cp.TotalCount),
	)
	return cp, nil
}

// Run syncs immediately and then on every tick until ctx is done.
func (s *Syncer) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if _, err := s.SyncOnce(ctx); err != nil && ctx.Err() == nil {
			zap.L().Error("Sync round failed", zap.Error(err))
		}
		select {
		case <-ctx.Done():
			zap.L().Info("Syncer stopped")
			return
		case <-ticker.C:
		}
	}
}
