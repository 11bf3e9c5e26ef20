package agent

import (
	"context"
	"errors"
	"strings"

	"github.com/lore-ai/lore-ai/pkg/types"
)

// scriptedModel routes completion prompts to canned responses by template
// markers, so one stub serves classifier, retriever, generator and extractor.
type scriptedModel struct {
	correction   string
	confirmation string
	intent       string
	selection    string
	answer       string
	direct       string
	metadata     string
	cleaned      string

	err     error
	generr  error
	prompts []string
}

func (m *scriptedModel) Complete(ctx context.Context, prompt string) (string, error) {
	m.prompts = append(m.prompts, prompt)
	if m.err != nil {
		return "", m.err
	}
	switch {
	case strings.Contains(prompt, "CORRECTION or IMPROVEMENT"):
		return m.correction, nil
	case strings.Contains(prompt, "confirming that the answer worked"):
		return m.confirmation, nil
	case strings.Contains(prompt, "Classify this user message"):
		return m.intent, nil
	case strings.Contains(prompt, "semantic search expert"):
		return m.selection, nil
	case strings.Contains(prompt, "Knowledge Base Cleaner"):
		return m.cleaned, nil
	case strings.Contains(prompt, "Output JSON format"):
		return m.metadata, nil
	case strings.Contains(prompt, "Respond warmly"), strings.Contains(prompt, "Respond naturally"):
		return m.direct, nil
	default:
		if m.generr != nil {
			return "", m.generr
		}
		return m.answer, nil
	}
}

type completeFunc func(ctx context.Context, prompt string) (string, error)

func (f completeFunc) Complete(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

type judgeFunc func(ctx context.Context, prompt string) (bool, error)

func (f judgeFunc) JudgeYesNo(ctx context.Context, prompt string) (bool, error) {
	return f(ctx, prompt)
}

var errStub = errors.New("stub failure")

// memoryKB is an in-memory KnowledgeBase with injectable failures.
type memoryKB struct {
	index []types.KnowledgeIndexEntry
	docs  map[string]*types.Knowledge

	inserted []types.Knowledge

	listErr   error
	fetchErr  error
	insertErr error
}

func (kb *memoryKB) ListIndex(ctx context.Context) ([]types.KnowledgeIndexEntry, error) {
	if kb.listErr != nil {
		return nil, kb.listErr
	}
	return kb.index, nil
}

func (kb *memoryKB) FetchByIDs(ctx context.Context, ids []string) ([]*types.Knowledge, error) {
	if kb.fetchErr != nil {
		return nil, kb.fetchErr
	}
	var docs []*types.Knowledge
	for _, id := range ids {
		if doc, ok := kb.docs[id]; ok {
			docs = append(docs, doc)
		}
	}
	return docs, nil
}

func (kb *memoryKB) Insert(ctx context.Context, data types.Knowledge) (string, error) {
	if kb.insertErr != nil {
		return "", kb.insertErr
	}
	kb.inserted = append(kb.inserted, data)
	if kb.docs == nil {
		kb.docs = make(map[string]*types.Knowledge)
	}
	doc := data
	kb.docs[data.ID] = &doc
	return data.ID, nil
}
