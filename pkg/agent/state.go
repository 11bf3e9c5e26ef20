package agent

import (
	"strings"

	"github.com/lore-ai/lore-ai/pkg/types"
)

// State is the conversation record owned by one session. History is
// append-only across turns; every other field describes the turn currently
// being processed. Stages work on a copy handed out by the pipeline and the
// pipeline commits the copy back when the turn reaches a terminal stage.
type State struct {
	SessionID string

	History []types.Message

	// turn-scoped, reset at the start of each turn
	Intent            types.Intent
	ContextDocs       []*types.Knowledge
	Answer            string
	UsedKnowledgeBase bool
	NeedsLearning     bool
	SourceIDs         []string

	// learning-offer bookkeeping, carried across turns
	LearnerAsked   bool
	PreviousQuery  string
	PreviousAnswer string
}

func NewState(sessionID string) *State {
	return &State{SessionID: sessionID}
}

// Clone returns a deep enough copy for a pipeline run: history and doc slices
// are duplicated so an abandoned turn never leaks mutations into the
// committed state.
func (s *State) Clone() *State {
	cp := *s
	cp.History = append([]types.Message(nil), s.History...)
	cp.ContextDocs = append([]*types.Knowledge(nil), s.ContextDocs...)
	cp.SourceIDs = append([]string(nil), s.SourceIDs...)
	return &cp
}

// BeginTurn appends the inbound user message and resets turn-scoped fields.
func (s *State) BeginTurn(message string) {
	s.History = append(s.History, types.Message{Role: types.USER_ROLE_USER, Content: message})
	s.Intent = ""
	s.ContextDocs = nil
	s.Answer = ""
	s.UsedKnowledgeBase = false
	s.NeedsLearning = false
	s.SourceIDs = nil
}

// CurrentQuery returns the latest user message.
func (s *State) CurrentQuery() string {
	for i := len(s.History) - 1; i >= 0; i-- {
		if s.History[i].Role == types.USER_ROLE_USER {
			return s.History[i].Content
		}
	}
	return ""
}

// PrecedingAssistantMessage returns the assistant message immediately before
// the current user message, if any.
func (s *State) PrecedingAssistantMessage() (types.Message, bool) {
	if len(s.History) < 2 {
		return types.Message{}, false
	}
	msg := s.History[len(s.History)-2]
	if msg.Role != types.USER_ROLE_ASSISTANT {
		return types.Message{}, false
	}
	return msg, true
}

// TrailingHistory renders up to limit messages preceding the current one as a
// role-prefixed transcript for prompt context.
func (s *State) TrailingHistory(limit int) string {
	if len(s.History) <= 1 {
		return ""
	}
	msgs := s.History[:len(s.History)-1]
	if len(msgs) > limit {
		msgs = msgs[len(msgs)-limit:]
	}

	var b strings.Builder
	for _, msg := range msgs {
		role := "User"
		if msg.Role == types.USER_ROLE_ASSISTANT {
			role = "Assistant"
		}
		b.WriteString(role)
		b.WriteString(": ")
		b.WriteString(msg.Content)
		b.WriteString("\n")
	}
	return b.String()
}

// SplitLearnerOffer recovers the actual answer from an assistant message that
// may carry a learning offer. When no separator is found the whole message is
// returned.
func SplitLearnerOffer(content string) string {
	if strings.Contains(content, LEARNER_SEPARATOR) {
		return strings.TrimSpace(strings.SplitN(content, LEARNER_SEPARATOR, 2)[0])
	}
	if strings.Contains(content, "---") && strings.Contains(content, LEARNER_SENTINEL) {
		return strings.TrimSpace(strings.SplitN(content, "---", 2)[0])
	}
	if idx := strings.Index(content, LEARNER_SENTINEL); idx > 0 {
		return strings.TrimSpace(content[:idx])
	}
	return content
}
