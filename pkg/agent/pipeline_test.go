package agent

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lore-ai/lore-ai/pkg/ai"
	"github.com/lore-ai/lore-ai/pkg/types"
)

func newTestPipeline(model *scriptedModel, kb *memoryKB) *Pipeline {
	return NewPipeline(PipelineConfig{
		Completer: model,
		Judge:     ai.Judge{Completer: model},
		Extractor: ai.NewMetadataExtractor(model),
		Knowledge: kb,
		IDFunc:    func() string { return "fixed-id" },
	})
}

func collect(events *[]types.StreamEvent) EmitFunc {
	return func(event types.StreamEvent) {
		*events = append(*events, event)
	}
}

func eventTypes(events []types.StreamEvent) []types.StreamEventType {
	var out []types.StreamEventType
	for _, e := range events {
		out = append(out, e.Type)
	}
	return out
}

func TestRunGreetingTurn(t *testing.T) {
	model := &scriptedModel{correction: "no", intent: "greeting", direct: "Hello! I can help with FlexSearch."}
	p := newTestPipeline(model, &memoryKB{})

	var events []types.StreamEvent
	err := p.Run(context.Background(), "s1", "hi there", collect(&events))
	require.NoError(t, err)

	require.Len(t, events, 2)
	assert.Equal(t, types.STREAM_EVENT_STEP, events[0].Type)
	assert.Equal(t, types.STREAM_EVENT_ANSWER, events[1].Type)
	assert.Equal(t, "Hello! I can help with FlexSearch.", events[1].Content)

	state, ok := p.states.Get("s1")
	require.True(t, ok)
	assert.False(t, state.LearnerAsked)
	assert.Len(t, state.History, 2)
	assert.Equal(t, types.USER_ROLE_ASSISTANT, state.History[1].Role)
}

func TestRunUngroundedTechnicalTurn(t *testing.T) {
	model := &scriptedModel{
		correction: "no",
		intent:     "technical",
		answer:     "SELECT {o.pk} FROM {Order AS o}",
	}
	p := newTestPipeline(model, &memoryKB{})

	var events []types.StreamEvent
	err := p.Run(context.Background(), "s1", "how do I get all orders", collect(&events))
	require.NoError(t, err)

	var answers []types.StreamEvent
	for _, e := range events {
		if e.Type == types.STREAM_EVENT_ANSWER {
			answers = append(answers, e)
		}
	}
	require.Len(t, answers, 2)
	assert.Equal(t, "SELECT {o.pk} FROM {Order AS o}", answers[0].Content)
	assert.Contains(t, answers[1].Content, LEARNER_SENTINEL)

	// the "no match" steps show up before any answer
	var sawEmptyStep bool
	for _, e := range events {
		if e.Type == types.STREAM_EVENT_ANSWER {
			break
		}
		if strings.Contains(e.Content, "haven't learned") {
			sawEmptyStep = true
		}
	}
	assert.True(t, sawEmptyStep)

	state, ok := p.states.Get("s1")
	require.True(t, ok)
	assert.True(t, state.LearnerAsked)
	assert.Equal(t, "how do I get all orders", state.PreviousQuery)
	assert.Equal(t, "SELECT {o.pk} FROM {Order AS o}", state.PreviousAnswer)
	assert.Contains(t, state.History[1].Content, LEARNER_SENTINEL)
}

func TestRunGroundedTechnicalTurn(t *testing.T) {
	index, docs := indexOf("doc-1", "doc-2")
	kb := &memoryKB{index: index, docs: docs}
	model := &scriptedModel{
		correction: "no",
		intent:     "technical",
		selection:  `["doc-1"]`,
		answer:     "grounded answer [Source: doc-1]",
	}
	p := newTestPipeline(model, kb)

	var events []types.StreamEvent
	err := p.Run(context.Background(), "s1", "how do I query products", collect(&events))
	require.NoError(t, err)

	var infos, answers int
	for _, e := range events {
		switch e.Type {
		case types.STREAM_EVENT_INFO:
			infos++
		case types.STREAM_EVENT_ANSWER:
			answers++
		}
	}
	assert.Equal(t, 1, infos)
	assert.Equal(t, 1, answers, "grounded answers carry no learning offer")

	state, ok := p.states.Get("s1")
	require.True(t, ok)
	assert.True(t, state.UsedKnowledgeBase)
	assert.False(t, state.LearnerAsked)
	assert.Equal(t, []string{"doc-1"}, state.SourceIDs)
}

func TestRunConfirmationSavesKnowledge(t *testing.T) {
	kb := &memoryKB{}
	model := &scriptedModel{
		correction:   "no",
		confirmation: "yes",
		intent:       "technical",
		answer:       "SELECT {o.pk} FROM {Order AS o}",
		cleaned:      "SELECT {o.pk} FROM {Order AS o}",
		metadata:     `{"title": "Fetch all orders", "tags": ["Order"], "summary": "Selects every order."}`,
	}
	p := newTestPipeline(model, kb)

	var events []types.StreamEvent
	require.NoError(t, p.Run(context.Background(), "s1", "how do I get all orders", collect(&events)))

	events = nil
	require.NoError(t, p.Run(context.Background(), "s1", "yes it worked", collect(&events)))

	require.Len(t, kb.inserted, 1)
	doc := kb.inserted[0]
	assert.Equal(t, "SELECT {o.pk} FROM {Order AS o}", doc.Content)
	assert.Equal(t, types.KNOWLEDGE_STATUS_UNVERIFIED, doc.Status)
	assert.True(t, doc.AICreated)

	final := events[len(events)-1]
	assert.Equal(t, types.STREAM_EVENT_ANSWER, final.Type)
	assert.Contains(t, final.Content, "fixed-id")

	state, ok := p.states.Get("s1")
	require.True(t, ok)
	assert.False(t, state.LearnerAsked)
	assert.Empty(t, state.PreviousQuery)
	assert.Equal(t, []string{"fixed-id"}, state.SourceIDs)

	// the saved document is retrievable with its metadata intact
	fetched, err := kb.FetchByIDs(context.Background(), []string{"fixed-id"})
	require.NoError(t, err)
	require.Len(t, fetched, 1)
	assert.Equal(t, "Fetch all orders", fetched[0].Title)
	assert.Equal(t, []string{"Order"}, []string(fetched[0].Tags))
	assert.Equal(t, "Selects every order.", fetched[0].Summary)
	assert.Equal(t, doc.Content, fetched[0].Content)
}

func TestRunGenerationFailureAbandonsTurn(t *testing.T) {
	model := &scriptedModel{correction: "no", intent: "technical", generr: errStub}
	p := newTestPipeline(model, &memoryKB{})

	var events []types.StreamEvent
	err := p.Run(context.Background(), "s1", "how do I get all orders", collect(&events))
	require.Error(t, err)

	final := events[len(events)-1]
	assert.Equal(t, types.STREAM_EVENT_ERROR, final.Type)

	_, ok := p.states.Get("s1")
	assert.False(t, ok, "failed first turn leaves no committed state")

	// activity was still recorded, the reaper owns cleanup
	assert.Equal(t, 1, p.Sessions().Count())
}

func TestRunStepsPrecedeAnswer(t *testing.T) {
	model := &scriptedModel{correction: "no", intent: "technical", answer: "answer"}
	p := newTestPipeline(model, &memoryKB{})

	var events []types.StreamEvent
	require.NoError(t, p.Run(context.Background(), "s1", "query", collect(&events)))

	kinds := eventTypes(events)
	firstAnswer := -1
	for i, k := range kinds {
		if k == types.STREAM_EVENT_ANSWER {
			firstAnswer = i
			break
		}
	}
	require.Greater(t, firstAnswer, 0)
	for _, k := range kinds[:firstAnswer] {
		assert.Contains(t, []types.StreamEventType{types.STREAM_EVENT_STEP, types.STREAM_EVENT_INFO}, k)
	}
}

func TestDeleteSessionIdempotent(t *testing.T) {
	model := &scriptedModel{correction: "no", intent: "greeting", direct: "hello"}
	p := newTestPipeline(model, &memoryKB{})

	var events []types.StreamEvent
	require.NoError(t, p.Run(context.Background(), "s1", "hi", collect(&events)))

	assert.True(t, p.DeleteSession("s1"))
	assert.False(t, p.DeleteSession("s1"))
	assert.False(t, p.DeleteSession("never-seen"))

	_, ok := p.states.Get("s1")
	assert.False(t, ok)
	assert.Equal(t, 0, p.Sessions().Count())
}

func TestDeleteSessionWaitsForInFlightTurn(t *testing.T) {
	inner := &scriptedModel{correction: "no", intent: "greeting", direct: "hello"}

	entered := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once
	blocking := completeFunc(func(ctx context.Context, prompt string) (string, error) {
		once.Do(func() {
			close(entered)
			<-release
		})
		return inner.Complete(ctx, prompt)
	})

	p := NewPipeline(PipelineConfig{
		Completer: blocking,
		Judge:     ai.Judge{Completer: blocking},
		Extractor: ai.NewMetadataExtractor(blocking),
		Knowledge: &memoryKB{},
		IDFunc:    func() string { return "fixed-id" },
	})

	turnDone := make(chan error, 1)
	go func() {
		turnDone <- p.Run(context.Background(), "s1", "hi", func(types.StreamEvent) {})
	}()
	<-entered

	deleteDone := make(chan bool, 1)
	go func() {
		deleteDone <- p.DeleteSession("s1")
	}()

	close(release)
	require.NoError(t, <-turnDone)
	assert.True(t, <-deleteDone)

	// the turn's commit did not outlive the delete
	_, ok := p.states.Get("s1")
	assert.False(t, ok)
	assert.Equal(t, 0, p.Sessions().Count())
	assert.Equal(t, 0, p.locks.Count())
}

func TestDeleteSessionAfterFailedTurn(t *testing.T) {
	model := &scriptedModel{correction: "no", intent: "technical", generr: errStub}
	p := newTestPipeline(model, &memoryKB{})

	var events []types.StreamEvent
	require.Error(t, p.Run(context.Background(), "s1", "query", collect(&events)))

	// no committed state, but the registry entry still counts as tracked
	_, ok := p.states.Get("s1")
	require.False(t, ok)
	assert.True(t, p.DeleteSession("s1"))
	assert.Equal(t, 0, p.Sessions().Count())
	assert.False(t, p.DeleteSession("s1"))
}

func TestReapExpiredRemovesEverything(t *testing.T) {
	model := &scriptedModel{correction: "no", intent: "greeting", direct: "hello"}
	p := newTestPipeline(model, &memoryKB{})

	var events []types.StreamEvent
	require.NoError(t, p.Run(context.Background(), "s1", "hi", collect(&events)))

	p.sessions.lastActive.Set("s1", p.sessions.nowFunc().Unix())
	assert.Empty(t, p.ReapExpired(300*time.Second))

	// push the session past the timeout
	p.sessions.lastActive.Set("s1", p.sessions.nowFunc().Unix()-301)

	removed := p.ReapExpired(300 * time.Second)
	assert.Equal(t, []string{"s1"}, removed)

	_, ok := p.states.Get("s1")
	assert.False(t, ok)
	assert.Equal(t, 0, p.Sessions().Count())
}
