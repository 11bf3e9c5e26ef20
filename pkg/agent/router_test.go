package agent

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lore-ai/lore-ai/pkg/types"
)

func TestRoute(t *testing.T) {
	tests := []struct {
		intent types.Intent
		want   Stage
	}{
		{types.INTENT_TECHNICAL, STAGE_RETRIEVER},
		{types.INTENT_CORRECTION, STAGE_GENERATOR},
		{types.INTENT_CLARIFICATION, STAGE_GENERATOR},
		{types.INTENT_LEARNER_CONFIRMATION, STAGE_LEARNER_SAVE},
		{types.INTENT_GREETING, STAGE_DIRECT_RESPONSE},
		{types.INTENT_GENERAL_CHAT, STAGE_DIRECT_RESPONSE},
	}

	for _, tt := range tests {
		t.Run(string(tt.intent), func(t *testing.T) {
			assert.Equal(t, tt.want, Route(tt.intent))
		})
	}
}

func TestRouteUnknownIntent(t *testing.T) {
	assert.Equal(t, STAGE_DIRECT_RESPONSE, Route(types.Intent("nonsense")))
	assert.Equal(t, STAGE_DIRECT_RESPONSE, Route(types.Intent("")))
}
