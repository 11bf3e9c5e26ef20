package store

import (
	"context"

	"github.com/lore-ai/lore-ai/pkg/types"
)

// KnowledgeStore persists knowledge documents. The agent pipeline and the
// HTTP CRUD surface both ride on this interface.
type KnowledgeStore interface {
	Create(ctx context.Context, data types.Knowledge) error
	Get(ctx context.Context, id string) (*types.Knowledge, error)
	ListIndex(ctx context.Context) ([]types.KnowledgeIndexEntry, error)
	ListByIDs(ctx context.Context, ids []string) ([]*types.Knowledge, error)
	Update(ctx context.Context, id string, args types.UpdateKnowledgeArgs) error
	Delete(ctx context.Context, id string) error
}
