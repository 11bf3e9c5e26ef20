package core

import (
	"context"

	"github.com/lore-ai/lore-ai/app/store/sqlstore"
	"github.com/lore-ai/lore-ai/pkg/types"
)

// knowledgeBase adapts the sql-backed knowledge store to the agent's view.
type knowledgeBase struct {
	stores func() *sqlstore.Provider
}

func (k *knowledgeBase) ListIndex(ctx context.Context) ([]types.KnowledgeIndexEntry, error) {
	return k.stores().KnowledgeStore().ListIndex(ctx)
}

func (k *knowledgeBase) FetchByIDs(ctx context.Context, ids []string) ([]*types.Knowledge, error) {
	return k.stores().KnowledgeStore().ListByIDs(ctx, ids)
}

func (k *knowledgeBase) Insert(ctx context.Context, data types.Knowledge) (string, error) {
	if err := k.stores().KnowledgeStore().Create(ctx, data); err != nil {
		return "", err
	}
	return data.ID, nil
}
