package asset

import "context"

// OrphanQueue records public ids whose deletion failed so a sweeper can retry later.
type OrphanQueue interface {
	Push(ctx context.Context, publicIDs ...string) error
	Pop(ctx context.Context, max int) ([]string, error)
}
