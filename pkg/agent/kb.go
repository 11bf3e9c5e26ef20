package agent

import (
	"context"

	"github.com/lore-ai/lore-ai/pkg/types"
)

// KnowledgeBase is the agent's view of the knowledge store. Implementations
// degrade to empty results when the backing store is unavailable; the
// pipeline never aborts a turn over a retrieval failure.
type KnowledgeBase interface {
	ListIndex(ctx context.Context) ([]types.KnowledgeIndexEntry, error)
	FetchByIDs(ctx context.Context, ids []string) ([]*types.Knowledge, error)
	Insert(ctx context.Context, data types.Knowledge) (string, error)
}
