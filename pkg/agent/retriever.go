package agent

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/samber/lo"

	"github.com/lore-ai/lore-ai/pkg/ai"
	"github.com/lore-ai/lore-ai/pkg/types"
)

const MAX_RETRIEVED_DOCS = 5

// Retriever asks the completion service to pick relevant document ids from a
// compact index, then resolves them to full documents. Selector failures of
// any kind produce an empty selection, never an error.
type Retriever struct {
	completer ai.Completer
	kb        KnowledgeBase
}

func NewRetriever(completer ai.Completer, kb KnowledgeBase) *Retriever {
	return &Retriever{
		completer: completer,
		kb:        kb,
	}
}

func (r *Retriever) Retrieve(ctx context.Context, query string) []*types.Knowledge {
	index, err := r.kb.ListIndex(ctx)
	if err != nil {
		slog.Warn("knowledge index unavailable", slog.Any("error", err))
		return nil
	}
	if len(index) == 0 {
		return nil
	}

	selected := r.selectIDs(ctx, query, index)
	if len(selected) == 0 {
		return nil
	}

	docs, err := r.kb.FetchByIDs(ctx, selected)
	if err != nil {
		slog.Warn("knowledge fetch failed", slog.Any("error", err))
		return nil
	}
	return docs
}

func (r *Retriever) selectIDs(ctx context.Context, query string, index []types.KnowledgeIndexEntry) []string {
	raw, err := r.completer.Complete(ctx, ai.RenderPrompt(RETRIEVAL_PROMPT, map[string]string{
		"query": query,
		"index": renderIndex(index),
	}))
	if err != nil {
		slog.Warn("retrieval selection failed", slog.Any("error", err))
		return nil
	}

	var ids []string
	if err = ai.DecodeFencedJSON(raw, &ids); err != nil {
		slog.Warn("retrieval selection unparsable", slog.Any("error", err))
		return nil
	}

	// only ids present in the supplied index count, capped at 5
	known := lo.SliceToMap(index, func(item types.KnowledgeIndexEntry) (string, struct{}) {
		return item.ID, struct{}{}
	})
	ids = lo.Filter(ids, func(id string, _ int) bool {
		_, ok := known[id]
		return ok
	})
	if len(ids) > MAX_RETRIEVED_DOCS {
		ids = ids[:MAX_RETRIEVED_DOCS]
	}
	return ids
}

func renderIndex(index []types.KnowledgeIndexEntry) string {
	var b strings.Builder
	for _, item := range index {
		tags := "none"
		if len(item.Tags) > 0 {
			tags = strings.Join(item.Tags, ", ")
		}
		summary := item.Summary
		if summary == "" {
			summary = "N/A"
		}
		fmt.Fprintf(&b, "ID: %s\nTitle: %s\nTags: %s\nSummary: %s\n\n", item.ID, item.Title, tags, summary)
	}
	return b.String()
}
