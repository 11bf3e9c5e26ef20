package v1

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/lore-ai/lore-ai/app/core"
	"github.com/lore-ai/lore-ai/pkg/errors"
	"github.com/lore-ai/lore-ai/pkg/types"
	"github.com/lore-ai/lore-ai/pkg/utils"
)

type KnowledgeLogic struct {
	ctx  context.Context
	core *core.Core
}

func NewKnowledgeLogic(ctx context.Context, core *core.Core) *KnowledgeLogic {
	return &KnowledgeLogic{
		ctx:  ctx,
		core: core,
	}
}

func (l *KnowledgeLogic) GetKnowledge(id string) (*types.Knowledge, error) {
	data, err := l.core.Store().KnowledgeStore().Get(l.ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.New("KnowledgeLogic.GetKnowledge", "document not found", err).Code(http.StatusNotFound)
		}
		return nil, errors.New("KnowledgeLogic.GetKnowledge", "failed to load document", err)
	}
	return data, nil
}

func (l *KnowledgeLogic) ListKnowledgeIndex() ([]types.KnowledgeIndexEntry, error) {
	index, err := l.core.Store().KnowledgeStore().ListIndex(l.ctx)
	if err != nil {
		return nil, errors.New("KnowledgeLogic.ListKnowledgeIndex", "failed to list documents", err)
	}
	return index, nil
}

func (l *KnowledgeLogic) CreateKnowledge(data types.Knowledge) (string, error) {
	if data.ID == "" {
		data.ID = utils.GenRandomID()
	}
	if data.Status == "" {
		data.Status = types.KNOWLEDGE_STATUS_UNVERIFIED
	}
	if data.Kind == "" {
		data.Kind = types.KNOWLEDGE_KIND_TEXT
	}
	data.CreatedAt = time.Now().Unix()

	if err := l.core.Store().KnowledgeStore().Create(l.ctx, data); err != nil {
		return "", errors.New("KnowledgeLogic.CreateKnowledge", "failed to create document", err)
	}
	return data.ID, nil
}

func (l *KnowledgeLogic) UpdateKnowledge(id string, args types.UpdateKnowledgeArgs) error {
	if err := l.core.Store().KnowledgeStore().Update(l.ctx, id, args); err != nil {
		return errors.New("KnowledgeLogic.UpdateKnowledge", "failed to update document", err)
	}
	return nil
}

func (l *KnowledgeLogic) DeleteKnowledge(id string) error {
	if err := l.core.Store().KnowledgeStore().Delete(l.ctx, id); err != nil {
		return errors.New("KnowledgeLogic.DeleteKnowledge", "failed to delete document", err)
	}
	return nil
}
