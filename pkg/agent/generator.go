package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/lore-ai/lore-ai/pkg/ai"
	"github.com/lore-ai/lore-ai/pkg/types"
)

const HISTORY_CONTEXT_TURNS = 5

// GenerateResult is the generator's field-update set for the state bundle.
type GenerateResult struct {
	Answer            string
	UsedKnowledgeBase bool
	SourceIDs         []string
	NeedsLearning     bool
}

// Generator produces the user-facing answer, grounded in retrieved documents
// when any are present.
type Generator struct {
	completer ai.Completer
}

func NewGenerator(completer ai.Completer) *Generator {
	return &Generator{completer: completer}
}

func (g *Generator) Generate(ctx context.Context, state *State) (GenerateResult, error) {
	query := state.CurrentQuery()
	history := state.TrailingHistory(HISTORY_CONTEXT_TURNS)

	var prompt string
	usedKB := len(state.ContextDocs) > 0
	if usedKB {
		prompt = ai.RenderPrompt(GENERATION_PROMPT_KB, map[string]string{
			"history": history,
			"query":   query,
			"context": renderDocContext(state.ContextDocs),
		})
	} else {
		prompt = ai.RenderPrompt(GENERATION_PROMPT_GENERAL, map[string]string{
			"history": history,
			"query":   query,
		})
	}

	answer, err := g.completer.Complete(ctx, prompt)
	if err != nil {
		return GenerateResult{}, fmt.Errorf("Generator.Generate: %w", err)
	}

	return GenerateResult{
		Answer:            answer,
		UsedKnowledgeBase: usedKB,
		SourceIDs: lo.Map(state.ContextDocs, func(doc *types.Knowledge, _ int) string {
			return doc.ID
		}),
		NeedsLearning: !usedKB || state.Intent == types.INTENT_CORRECTION,
	}, nil
}

// DirectResponse handles greetings and general conversation. Terminal: no
// retrieval, no learning flags.
func (g *Generator) DirectResponse(ctx context.Context, state *State) (string, error) {
	tpl := GENERAL_CHAT_PROMPT
	if state.Intent == types.INTENT_GREETING {
		tpl = GREETING_PROMPT
	}

	answer, err := g.completer.Complete(ctx, ai.RenderPrompt(tpl, map[string]string{"query": state.CurrentQuery()}))
	if err != nil {
		return "", fmt.Errorf("Generator.DirectResponse: %w", err)
	}
	return answer, nil
}

func renderDocContext(docs []*types.Knowledge) string {
	var b strings.Builder
	for _, doc := range docs {
		status := doc.Status
		if status == "" {
			status = types.KNOWLEDGE_STATUS_UNVERIFIED
		}
		fmt.Fprintf(&b, "\n--- Document (ID: %s, Status: %s) ---\n", doc.ID, status)
		fmt.Fprintf(&b, "Title: %s\nContent:\n%s\n", doc.Title, doc.Content)
		if status == types.KNOWLEDGE_STATUS_UNVERIFIED {
			b.WriteString("⚠️ WARNING: THIS DOCUMENT IS UNVERIFIED.\n")
		}
	}
	return b.String()
}
