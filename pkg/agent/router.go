package agent

import (
	"github.com/lore-ai/lore-ai/pkg/types"
)

type Stage string

const (
	STAGE_RETRIEVER       Stage = "retriever"
	STAGE_GENERATOR       Stage = "generator"
	STAGE_DIRECT_RESPONSE Stage = "direct-response"
	STAGE_LEARNER_SAVE    Stage = "learner-save"
)

// Route maps a classified intent to the next processing stage. Total:
// unrecognized intents fall through to direct-response.
func Route(intent types.Intent) Stage {
	switch intent {
	case types.INTENT_LEARNER_CONFIRMATION:
		return STAGE_LEARNER_SAVE
	case types.INTENT_TECHNICAL:
		return STAGE_RETRIEVER
	case types.INTENT_CORRECTION:
		return STAGE_GENERATOR
	case types.INTENT_CLARIFICATION:
		return STAGE_GENERATOR
	default:
		return STAGE_DIRECT_RESPONSE
	}
}
