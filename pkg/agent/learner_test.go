package agent

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lore-ai/lore-ai/pkg/ai"
	"github.com/lore-ai/lore-ai/pkg/types"
)

func newLearner(model *scriptedModel, kb *memoryKB) *Learner {
	return NewLearner(ai.NewMetadataExtractor(model), kb, func() string { return "fixed-id" })
}

func TestOfferAppendsTemplate(t *testing.T) {
	l := newLearner(&scriptedModel{}, &memoryKB{})

	state := newTurnState("question")
	state.Answer = "generated answer"

	got := l.Offer(state)
	assert.True(t, got.LearnerAsked)
	assert.True(t, strings.HasPrefix(got.Answer, "generated answer"))
	assert.Contains(t, got.Answer, LEARNER_SENTINEL)
	assert.Contains(t, got.Answer, "Did this answer work for you?")
}

func TestOfferCorrectionVariant(t *testing.T) {
	l := newLearner(&scriptedModel{}, &memoryKB{})

	state := newTurnState("fix the join")
	state.Intent = types.INTENT_CORRECTION
	state.Answer = "corrected answer"

	got := l.Offer(state)
	assert.True(t, got.LearnerAsked)
	assert.Contains(t, got.Answer, "correction or improvement")
}

func TestOfferSkipsClarifyingAnswers(t *testing.T) {
	l := newLearner(&scriptedModel{}, &memoryKB{})

	state := newTurnState("hmm")
	state.Answer = "Could you clarify which item type you mean?"

	got := l.Offer(state)
	assert.False(t, got.LearnerAsked)
	assert.Equal(t, state.Answer, got.Answer)
}

func TestSaveMissingSnapshot(t *testing.T) {
	kb := &memoryKB{}
	l := newLearner(&scriptedModel{}, kb)

	state := newTurnState("yes")

	got := l.Save(context.Background(), state)
	assert.Equal(t, LEARNER_SAVE_MISSING_CONTEXT, got.Answer)
	assert.False(t, got.Saved)
	assert.False(t, got.ResetAsked)
	assert.Empty(t, kb.inserted)
}

func savableState() *State {
	state := newTurnState("yes")
	state.PreviousQuery = "how do I get all orders"
	state.PreviousAnswer = "Sure! SELECT {o.pk} FROM {Order AS o}" + LEARNER_SEPARATOR + "### " + LEARNER_SENTINEL + "\noffer text"
	return state
}

func TestSavePersistsUnverifiedDoc(t *testing.T) {
	kb := &memoryKB{}
	model := &scriptedModel{
		cleaned:  "SELECT {o.pk} FROM {Order AS o}",
		metadata: `{"title": "Fetch all orders", "tags": ["Order", "flexsearch"], "summary": "Selects every order."}`,
	}
	l := newLearner(model, kb)

	got := l.Save(context.Background(), savableState())

	assert.True(t, got.Saved)
	assert.True(t, got.ResetAsked)
	assert.Equal(t, "fixed-id", got.DocID)
	assert.Equal(t, []string{"fixed-id"}, got.SourceIDs)
	assert.Contains(t, got.Answer, "fixed-id")
	assert.Contains(t, got.Answer, "Fetch all orders")

	require.Len(t, kb.inserted, 1)
	doc := kb.inserted[0]
	assert.Equal(t, "SELECT {o.pk} FROM {Order AS o}", doc.Content)
	assert.Equal(t, types.KNOWLEDGE_STATUS_UNVERIFIED, doc.Status)
	assert.True(t, doc.AICreated)
	assert.Equal(t, []string{"Order", "flexsearch"}, []string(doc.Tags))
}

func TestSaveCleaningFailureKeepsRawText(t *testing.T) {
	kb := &memoryKB{}
	calls := 0
	completer := completeFunc(func(ctx context.Context, prompt string) (string, error) {
		calls++
		if strings.Contains(prompt, "Knowledge Base Cleaner") {
			return "", errStub
		}
		return `{"title": "t", "tags": [], "summary": "s"}`, nil
	})
	l := NewLearner(ai.NewMetadataExtractor(completer), kb, func() string { return "fixed-id" })

	got := l.Save(context.Background(), savableState())

	assert.True(t, got.Saved)
	require.Len(t, kb.inserted, 1)
	assert.Equal(t, "Sure! SELECT {o.pk} FROM {Order AS o}", kb.inserted[0].Content)
	assert.Equal(t, 2, calls)
}

func TestSaveExtractionFailure(t *testing.T) {
	kb := &memoryKB{}
	model := &scriptedModel{cleaned: "content", metadata: "not json at all"}
	l := newLearner(model, kb)

	got := l.Save(context.Background(), savableState())

	assert.False(t, got.Saved)
	assert.True(t, got.ResetAsked)
	assert.Contains(t, got.Answer, "error while saving")
	assert.Empty(t, kb.inserted)
}

func TestSaveInsertFailure(t *testing.T) {
	kb := &memoryKB{insertErr: errStub}
	model := &scriptedModel{
		cleaned:  "content",
		metadata: `{"title": "t", "tags": [], "summary": "s"}`,
	}
	l := newLearner(model, kb)

	got := l.Save(context.Background(), savableState())

	assert.False(t, got.Saved)
	assert.True(t, got.ResetAsked)
	assert.Contains(t, got.Answer, "error while saving")
}
