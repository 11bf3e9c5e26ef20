package v1

import (
	"context"
	"time"

	"github.com/lore-ai/lore-ai/app/core"
	"github.com/lore-ai/lore-ai/pkg/ai"
	"github.com/lore-ai/lore-ai/pkg/errors"
	"github.com/lore-ai/lore-ai/pkg/types"
	"github.com/lore-ai/lore-ai/pkg/utils"
)

type ExtractLogic struct {
	ctx  context.Context
	core *core.Core
}

func NewExtractLogic(ctx context.Context, core *core.Core) *ExtractLogic {
	return &ExtractLogic{
		ctx:  ctx,
		core: core,
	}
}

// ExtractMetadata derives title/tags/summary without persisting anything.
func (l *ExtractLogic) ExtractMetadata(text string) (ai.ExtractResult, error) {
	result, err := l.core.Srv().AI().Extractor().ExtractMetadata(l.ctx, text)
	if err != nil {
		return ai.ExtractResult{}, errors.New("ExtractLogic.ExtractMetadata", "metadata extraction failed", err)
	}
	return result, nil
}

// ExtractAndSave extracts metadata and inserts the document in one step.
func (l *ExtractLogic) ExtractAndSave(text string, kind types.KnowledgeKind, aiCreated bool) (*types.Knowledge, error) {
	metadata, err := l.ExtractMetadata(text)
	if err != nil {
		return nil, err
	}

	if kind == "" {
		kind = types.KNOWLEDGE_KIND_CODE
	}

	data := types.Knowledge{
		ID:        utils.GenRandomID(),
		Title:     metadata.Title,
		Content:   text,
		Tags:      metadata.Tags,
		Summary:   metadata.Summary,
		Kind:      kind,
		Status:    types.KNOWLEDGE_STATUS_UNVERIFIED,
		AICreated: aiCreated,
		CreatedAt: time.Now().Unix(),
	}

	if err = l.core.Store().KnowledgeStore().Create(l.ctx, data); err != nil {
		return nil, errors.New("ExtractLogic.ExtractAndSave", "failed to save document", err)
	}
	return &data, nil
}
