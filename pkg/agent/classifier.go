package agent

import (
	"context"
	"log/slog"
	"strings"

	"github.com/lore-ai/lore-ai/pkg/ai"
	"github.com/lore-ai/lore-ai/pkg/types"
)

// Classification is the classifier verdict for one turn. PreviousQuery and
// PreviousAnswer are only populated for learner confirmations.
type Classification struct {
	Intent         types.Intent
	PreviousQuery  string
	PreviousAnswer string
}

// Classifier assigns an intent to the latest user message. The yes/no gates
// ride on the completion service and fail open: a judge error never aborts a
// turn, it just falls through to the next check.
type Classifier struct {
	judge     ai.YesNoJudge
	completer ai.Completer
}

func NewClassifier(completer ai.Completer, judge ai.YesNoJudge) *Classifier {
	return &Classifier{
		judge:     judge,
		completer: completer,
	}
}

// Classify runs the checks in strict order, short-circuiting on first match:
// correction gate, confirmation gate, bucket classification.
func (c *Classifier) Classify(ctx context.Context, state *State) Classification {
	query := state.CurrentQuery()

	// 1. correction/improvement check, independent of history position
	isCorrection, err := c.judge.JudgeYesNo(ctx, ai.RenderPrompt(CORRECTION_PROMPT, map[string]string{"query": query}))
	if err != nil {
		slog.Warn("correction detection failed", slog.String("session_id", state.SessionID), slog.Any("error", err))
	}
	if isCorrection {
		return Classification{Intent: types.INTENT_CORRECTION}
	}

	// 2. confirmation check, only reachable while a learning offer is pending
	// and the immediately preceding message is the assistant's. An unrelated
	// message in between drops the offer silently; there is no expiry policy.
	if result, ok := c.checkConfirmation(ctx, state, query); ok {
		return result
	}

	// 3. fallback bucket classification
	raw, err := c.completer.Complete(ctx, ai.RenderPrompt(INTENT_CLASSIFICATION_PROMPT, map[string]string{"query": query}))
	if err != nil {
		slog.Warn("intent classification failed", slog.String("session_id", state.SessionID), slog.Any("error", err))
		return Classification{Intent: types.INTENT_TECHNICAL}
	}

	intent := types.Intent(strings.ToLower(strings.TrimSpace(raw)))
	switch intent {
	case types.INTENT_GREETING, types.INTENT_GENERAL_CHAT, types.INTENT_CLARIFICATION, types.INTENT_CORRECTION, types.INTENT_TECHNICAL:
		return Classification{Intent: intent}
	default:
		// conservative default: the most expensive path beats dropping the message
		return Classification{Intent: types.INTENT_TECHNICAL}
	}
}

func (c *Classifier) checkConfirmation(ctx context.Context, state *State, query string) (Classification, bool) {
	if !state.LearnerAsked {
		return Classification{}, false
	}

	lastAssistant, ok := state.PrecedingAssistantMessage()
	if !ok || !strings.Contains(lastAssistant.Content, LEARNER_SENTINEL) {
		return Classification{}, false
	}

	confirmed, err := c.judge.JudgeYesNo(ctx, ai.RenderPrompt(CONFIRMATION_PROMPT, map[string]string{
		"history": state.TrailingHistory(4),
		"query":   query,
	}))
	if err != nil {
		slog.Warn("confirmation detection failed", slog.String("session_id", state.SessionID), slog.Any("error", err))
		return Classification{}, false
	}
	if !confirmed {
		return Classification{}, false
	}

	answer := SplitLearnerOffer(lastAssistant.Content)

	// the original query sits two turns back: user question, offered answer,
	// current confirmation
	originalQuery := state.PreviousQuery
	if len(state.History) >= 3 {
		if msg := state.History[len(state.History)-3]; msg.Role == types.USER_ROLE_USER {
			originalQuery = msg.Content
		}
	}

	return Classification{
		Intent:         types.INTENT_LEARNER_CONFIRMATION,
		PreviousQuery:  originalQuery,
		PreviousAnswer: answer,
	}, true
}
