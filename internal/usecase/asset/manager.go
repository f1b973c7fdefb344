package asset

import (
	"context"
	"fmt"

	domainAsset "github.com/MohdOwais22/subaku-backend/internal/domain/asset"
	"github.com/MohdOwais22/subaku-backend/internal/logger"

	"go.uber.org/zap"
)

// Target is where and how a batch of payloads is stored.
type Target struct {
	Folder       string
	Width        int
	Crop         string
	AutoOptimize bool
}

var (
	ProductImages = Target{Folder: domainAsset.FolderProducts}
	Avatars       = Target{Folder: domainAsset.FolderAvatars, Width: 150, Crop: "scale", AutoOptimize: true}
)

// Manager applies one policy to every image create/destroy: uploads are
// retried and sequential, deletes are best-effort and never fail the caller.
type Manager struct {
	store   domainAsset.Store
	orphans domainAsset.OrphanQueue
	policy  RetryPolicy
}

// NewManager creates a Manager. orphans may be nil, in which case failed
// deletes are only logged.
func NewManager(store domainAsset.Store, orphans domainAsset.OrphanQueue, policy RetryPolicy) *Manager {
	return &Manager{
		store:   store,
		orphans: orphans,
		policy:  policy,
	}
}

func (m *Manager) Upload(ctx context.Context, payload string, target Target) (*domainAsset.Image, error) {
	input := domainAsset.UploadInput{
		Data:   payload,
		Folder: target.Folder,
		Width:  target.Width,
		Crop:   target.Crop,

		AutoOptimize: target.AutoOptimize,
	}

	return Retry(ctx, m.policy, "upload", func(ctx context.Context) (*domainAsset.Image, error) {
		return m.store.Upload(ctx, input)
	})
}

// UploadAll uploads payloads in order. If one fails, the images already
// uploaded by this call are discarded and the error is returned.
func (m *Manager) UploadAll(ctx context.Context, payloads []string, target Target) ([]domainAsset.Image, error) {
	images := make([]domainAsset.Image, 0, len(payloads))
	for i, payload := range payloads {
		img, err := m.Upload(ctx, payload, target)
		if err != nil {
			m.Discard(ctx, images...)
			return nil, fmt.Errorf("upload image %d of %d: %w", i+1, len(payloads), err)
		}
		images = append(images, *img)
	}
	return images, nil
}

// Discard deletes images one by one. Failures are logged and queued for
// the sweeper.
func (m *Manager) Discard(ctx context.Context, images ...domainAsset.Image) {
	var failed []string
	for _, img := range images {
		if img.PublicID == "" {
			continue
		}
		if err := m.store.Delete(ctx, img.PublicID); err != nil {
			logger.Warn("Failed to delete image, queueing for cleanup",
				zap.String("public_id", img.PublicID),
				zap.Error(err),
				zap.String("event", "image_delete_failed"),
			)
			failed = append(failed, img.PublicID)
		}
	}

	if len(failed) == 0 || m.orphans == nil {
		return
	}
	if err := m.orphans.Push(context.WithoutCancel(ctx), failed...); err != nil {
		logger.Error("Failed to queue orphaned images",
			zap.Strings("public_ids", failed),
			zap.Error(err),
		)
	}
}
