package agent

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/lore-ai/lore-ai/pkg/ai"
	"github.com/lore-ai/lore-ai/pkg/types"
)

// answers containing these phrases signal confusion; offering to save them
// would persist a non-answer
var clarificationPhrases = []string{
	"please specify",
	"i don't understand",
	"could you clarify",
	"not sure which",
}

// LearnerResult is the learner's field-update set.
type LearnerResult struct {
	Answer       string
	LearnerAsked bool
}

// SaveResult reports the outcome of persisting a confirmed answer.
// ResetAsked is false only when the snapshot was missing and there was no
// pending offer to resolve.
type SaveResult struct {
	Answer     string
	DocID      string
	Saved      bool
	ResetAsked bool
	SourceIDs  []string
}

// Learner appends learning offers to ungrounded answers and persists
// confirmed ones into the knowledge base.
type Learner struct {
	extractor *ai.MetadataExtractor
	kb        KnowledgeBase
	idFunc    func() string
}

func NewLearner(extractor *ai.MetadataExtractor, kb KnowledgeBase, idFunc func() string) *Learner {
	return &Learner{
		extractor: extractor,
		kb:        kb,
		idFunc:    idFunc,
	}
}

// Offer appends the learning-offer template to the current answer unless the
// answer itself signals confusion. Pure with respect to external services.
func (l *Learner) Offer(state *State) LearnerResult {
	answer := state.Answer

	lowered := strings.ToLower(answer)
	for _, phrase := range clarificationPhrases {
		if strings.Contains(lowered, phrase) {
			return LearnerResult{Answer: answer, LearnerAsked: state.LearnerAsked}
		}
	}

	offer := LEARNER_OFFER_TEMPLATE
	if state.Intent == types.INTENT_CORRECTION {
		offer = LEARNER_OFFER_CORRECTION
	}

	return LearnerResult{
		Answer:       answer + offer,
		LearnerAsked: true,
	}
}

// Save persists the previously offered answer. Requires both snapshot fields;
// failures return a templated in-band message and never raise to the caller.
func (l *Learner) Save(ctx context.Context, state *State) SaveResult {
	if state.PreviousQuery == "" || state.PreviousAnswer == "" {
		return SaveResult{Answer: LEARNER_SAVE_MISSING_CONTEXT}
	}

	cleanAnswer := SplitLearnerOffer(state.PreviousAnswer)

	cleaned, err := l.extractor.CleanForStorage(ctx, cleanAnswer)
	if err != nil {
		// keep the raw text, cleaning is best-effort
		slog.Warn("content cleaning failed", slog.String("session_id", state.SessionID), slog.Any("error", err))
	} else {
		cleanAnswer = cleaned
	}

	extractionInput := fmt.Sprintf("Query: %s\nAnswer: %s", state.PreviousQuery, cleanAnswer)
	metadata, err := l.extractor.ExtractMetadata(ctx, extractionInput)
	if err != nil {
		return SaveResult{Answer: saveFailureMessage(err), ResetAsked: true}
	}

	docID, err := l.kb.Insert(ctx, types.Knowledge{
		ID:        l.idFunc(),
		Title:     metadata.Title,
		Content:   cleanAnswer,
		Tags:      metadata.Tags,
		Summary:   metadata.Summary,
		Kind:      types.KNOWLEDGE_KIND_TEXT,
		Status:    types.KNOWLEDGE_STATUS_UNVERIFIED,
		AICreated: true,
		CreatedAt: time.Now().Unix(),
	})
	if err != nil {
		return SaveResult{Answer: saveFailureMessage(err), ResetAsked: true}
	}

	return SaveResult{
		Answer: ai.RenderPrompt(LEARNER_SAVE_SUCCESS, map[string]string{
			"doc_id": docID,
			"title":  metadata.Title,
			"tags":   strings.Join(metadata.Tags, ", "),
		}),
		DocID:      docID,
		Saved:      true,
		ResetAsked: true,
		SourceIDs:  []string{docID},
	}
}

func saveFailureMessage(err error) string {
	return ai.RenderPrompt(LEARNER_SAVE_FAILURE, map[string]string{"error": err.Error()})
}
