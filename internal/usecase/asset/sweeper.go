package asset

import (
	"context"
	"time"

	domainAsset "github.com/MohdOwais22/subaku-backend/internal/domain/asset"
	"github.com/MohdOwais22/subaku-backend/internal/logger"

	"go.uber.org/zap"
)

// Sweeper retries deletes of images that could not be removed inline.
type Sweeper struct {
	store     domainAsset.Store
	queue     domainAsset.OrphanQueue
	batchSize int
}

func NewSweeper(store domainAsset.Store, queue domainAsset.OrphanQueue, batchSize int) *Sweeper {
	if batchSize <= 0 {
		batchSize = 50
	}
	return &Sweeper{
		store:     store,
		queue:     queue,
		batchSize: batchSize,
	}
}

// Start runs the sweep every interval until ctx is cancelled.
func (s *Sweeper) Start(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	logger.Info("Orphaned image sweeper started",
		zap.Duration("interval", interval),
	)

	s.Sweep(ctx)

	for {
		select {
		case <-ctx.Done():
			logger.Info("Orphaned image sweeper stopped")
			return
		case <-ticker.C:
			s.Sweep(ctx)
		}
	}
}

// Sweep drains one batch and returns how many images were deleted.
// Failed deletes are put back on the queue.
func (s *Sweeper) Sweep(ctx context.Context) int {
	ids, err := s.queue.Pop(ctx, s.batchSize)
	if err != nil {
		logger.Error("Failed to read orphaned images", zap.Error(err))
		return 0
	}
	if len(ids) == 0 {
		return 0
	}

	var retry []string
	deleted := 0
	for _, id := range ids {
		if err := s.store.Delete(ctx, id); err != nil {
			retry = append(retry, id)
			continue
		}
		deleted++
	}

	if len(retry) > 0 {
		if err := s.queue.Push(ctx, retry...); err != nil {
			logger.Error("Failed to requeue orphaned images",
				zap.Strings("public_ids", retry),
				zap.Error(err),
			)
		}
	}

	logger.Debug("Orphaned images swept",
		zap.Int("deleted", deleted),
		zap.Int("requeued", len(retry)),
	)
	return deleted
}
