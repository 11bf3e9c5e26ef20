package agent

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	cmap "github.com/orcaman/concurrent-map/v2"

	"github.com/lore-ai/lore-ai/pkg/ai"
	"github.com/lore-ai/lore-ai/pkg/types"
)

// EmitFunc receives progress and answer events while a turn is processed.
// For every stage that emits, progress events strictly precede the answer
// event.
type EmitFunc func(event types.StreamEvent)

// Pipeline composes classifier, router, retriever, generator and learner into
// the per-message flow, and owns the session-scoped memory around it.
//
// Turns for one session are serialized with a per-session mutex; independent
// sessions process concurrently. A turn works on a copy of the committed
// state and commits at its terminal stage, so an abandoned or failed turn
// leaves the session exactly as the previous turn committed it.
type Pipeline struct {
	sessions   *SessionRegistry
	states     StateStore
	classifier *Classifier
	retriever  *Retriever
	generator  *Generator
	learner    *Learner

	locks cmap.ConcurrentMap[string, *sync.Mutex]
}

type PipelineConfig struct {
	Completer ai.Completer
	Judge     ai.YesNoJudge
	Extractor *ai.MetadataExtractor
	Knowledge KnowledgeBase
	States    StateStore
	IDFunc    func() string
}

func NewPipeline(cfg PipelineConfig) *Pipeline {
	if cfg.States == nil {
		cfg.States = NewMemoryStateStore()
	}
	if cfg.Judge == nil {
		cfg.Judge = ai.Judge{Completer: cfg.Completer}
	}

	return &Pipeline{
		sessions:   NewSessionRegistry(),
		states:     cfg.States,
		classifier: NewClassifier(cfg.Completer, cfg.Judge),
		retriever:  NewRetriever(cfg.Completer, cfg.Knowledge),
		generator:  NewGenerator(cfg.Completer),
		learner:    NewLearner(cfg.Extractor, cfg.Knowledge, cfg.IDFunc),
		locks:      cmap.New[*sync.Mutex](),
	}
}

func (p *Pipeline) Sessions() *SessionRegistry {
	return p.sessions
}

// Run processes one inbound message for a session and emits events until the
// turn reaches a terminal stage. The returned error marks a failed turn; all
// events already emitted remain valid.
func (p *Pipeline) Run(ctx context.Context, sessionID, message string, emit EmitFunc) error {
	// activity is independent of the turn outcome
	p.sessions.UpdateActivity(sessionID)

	mu := p.lockSession(sessionID)
	defer mu.Unlock()

	committed, ok := p.states.Get(sessionID)
	if !ok {
		committed = NewState(sessionID)
	}
	state := committed.Clone()
	state.BeginTurn(message)

	cls := p.classifier.Classify(ctx, state)
	state.Intent = cls.Intent
	if cls.Intent == types.INTENT_LEARNER_CONFIRMATION {
		state.PreviousQuery = cls.PreviousQuery
		state.PreviousAnswer = cls.PreviousAnswer
	}
	p.emitClassified(emit, state.Intent)

	switch Route(state.Intent) {
	case STAGE_RETRIEVER:
		state.ContextDocs = p.retriever.Retrieve(ctx, state.CurrentQuery())
		p.emitRetrieved(emit, len(state.ContextDocs))
		if err := p.runGenerator(ctx, state, emit); err != nil {
			return err
		}

	case STAGE_GENERATOR:
		if err := p.runGenerator(ctx, state, emit); err != nil {
			return err
		}

	case STAGE_LEARNER_SAVE:
		emit(types.StreamEvent{Type: types.STREAM_EVENT_STEP, Content: "Saving this new knowledge to my permanent memory..."})
		result := p.learner.Save(ctx, state)
		state.Answer = result.Answer
		if result.ResetAsked {
			state.LearnerAsked = false
		}
		if result.Saved {
			state.SourceIDs = result.SourceIDs
			state.PreviousQuery = ""
			state.PreviousAnswer = ""
		}
		emit(types.StreamEvent{Type: types.STREAM_EVENT_ANSWER, Content: state.Answer})

	default: // STAGE_DIRECT_RESPONSE
		answer, err := p.generator.DirectResponse(ctx, state)
		if err != nil {
			return p.failTurn(emit, sessionID, err)
		}
		state.Answer = answer
		emit(types.StreamEvent{Type: types.STREAM_EVENT_ANSWER, Content: state.Answer})
	}

	state.History = append(state.History, types.Message{Role: types.USER_ROLE_ASSISTANT, Content: state.Answer})

	// caller gone: abandon the turn, keep the previous committed state
	if err := ctx.Err(); err != nil {
		return err
	}

	p.states.Put(state)
	// committed state always carries a registry entry, so the reaper can
	// collect it even when a delete raced the turn
	p.sessions.UpdateActivity(sessionID)
	return nil
}

func (p *Pipeline) runGenerator(ctx context.Context, state *State, emit EmitFunc) error {
	emit(types.StreamEvent{Type: types.STREAM_EVENT_STEP, Content: "Drafting the answer for you..."})

	result, err := p.generator.Generate(ctx, state)
	if err != nil {
		return p.failTurn(emit, state.SessionID, err)
	}

	state.Answer = result.Answer
	state.UsedKnowledgeBase = result.UsedKnowledgeBase
	state.SourceIDs = result.SourceIDs
	state.NeedsLearning = result.NeedsLearning

	// snapshot the exchange a later confirmation will refer to; each turn
	// overwrites it, so confirmations always resolve the most recent offer
	state.PreviousQuery = state.CurrentQuery()
	state.PreviousAnswer = result.Answer

	emit(types.StreamEvent{Type: types.STREAM_EVENT_ANSWER, Content: state.Answer})

	if state.NeedsLearning {
		emit(types.StreamEvent{Type: types.STREAM_EVENT_STEP, Content: "Checking if this answer is worth saving..."})
		offered := p.learner.Offer(state)
		state.Answer = offered.Answer
		state.LearnerAsked = offered.LearnerAsked
		emit(types.StreamEvent{Type: types.STREAM_EVENT_ANSWER, Content: state.Answer})
	}

	return nil
}

func (p *Pipeline) failTurn(emit EmitFunc, sessionID string, err error) error {
	slog.Error("turn failed", slog.String("session_id", sessionID), slog.Any("error", err))
	emit(types.StreamEvent{Type: types.STREAM_EVENT_ERROR, Content: err.Error()})
	return fmt.Errorf("Pipeline.Run: %w", err)
}

func (p *Pipeline) emitClassified(emit EmitFunc, intent types.Intent) {
	switch intent {
	case types.INTENT_GREETING:
		emit(types.StreamEvent{Type: types.STREAM_EVENT_STEP, Content: "Just saying hello..."})
	case types.INTENT_GENERAL_CHAT:
		emit(types.StreamEvent{Type: types.STREAM_EVENT_STEP, Content: "Reading your message..."})
	case types.INTENT_TECHNICAL:
		emit(types.StreamEvent{Type: types.STREAM_EVENT_STEP, Content: "Identifying the technical topic..."})
		emit(types.StreamEvent{Type: types.STREAM_EVENT_STEP, Content: "Checking if I have learned this before..."})
	}
}

func (p *Pipeline) emitRetrieved(emit EmitFunc, found int) {
	if found > 0 {
		emit(types.StreamEvent{Type: types.STREAM_EVENT_STEP, Content: "Found some related knowledge in my database..."})
		emit(types.StreamEvent{Type: types.STREAM_EVENT_INFO, Content: fmt.Sprintf("Found %d relevant examples.", found)})
		return
	}
	emit(types.StreamEvent{Type: types.STREAM_EVENT_STEP, Content: "I haven't learned this specific topic yet."})
	emit(types.StreamEvent{Type: types.STREAM_EVENT_STEP, Content: "Using my general training to create a solution..."})
}

// DeleteSession removes the registry entry and conversation state. It waits
// for an in-flight turn on the session to finish, so a late commit cannot
// bring the state back. Idempotent; reports whether anything was tracked for
// the session.
func (p *Pipeline) DeleteSession(sessionID string) bool {
	mu := p.lockSession(sessionID)
	defer mu.Unlock()

	_, hadState := p.states.Get(sessionID)
	existed := hadState || p.sessions.Has(sessionID)

	p.states.Delete(sessionID)
	p.sessions.RemoveSession(sessionID)
	p.locks.Remove(sessionID)
	return existed
}

// ReapExpired deletes every session inactive longer than timeout, returning
// the removed ids.
func (p *Pipeline) ReapExpired(timeout time.Duration) []string {
	expired := p.sessions.GetExpiredSessions(timeout)
	for _, sessionID := range expired {
		p.DeleteSession(sessionID)
		slog.Info("expired session removed", slog.String("session_id", sessionID))
	}
	return expired
}

// lockSession acquires the session's current mutex. A mutex handed out before
// DeleteSession dropped it from the map is stale; retry with the fresh one so
// two holders can never overlap across a delete.
func (p *Pipeline) lockSession(sessionID string) *sync.Mutex {
	for {
		mu := p.lockFor(sessionID)
		mu.Lock()
		if cur, ok := p.locks.Get(sessionID); ok && cur == mu {
			return mu
		}
		mu.Unlock()
	}
}

func (p *Pipeline) lockFor(sessionID string) *sync.Mutex {
	if mu, ok := p.locks.Get(sessionID); ok {
		return mu
	}
	mu := &sync.Mutex{}
	if !p.locks.SetIfAbsent(sessionID, mu) {
		mu, _ = p.locks.Get(sessionID)
	}
	return mu
}
