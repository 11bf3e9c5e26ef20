package v1

import (
	"context"

	"github.com/lore-ai/lore-ai/app/core"
	"github.com/lore-ai/lore-ai/pkg/agent"
)

type ChatLogic struct {
	ctx  context.Context
	core *core.Core
}

func NewChatLogic(ctx context.Context, core *core.Core) *ChatLogic {
	return &ChatLogic{
		ctx:  ctx,
		core: core,
	}
}

// SendMessage runs the agent pipeline for one inbound message, forwarding
// every progress/answer event to emit before returning.
func (l *ChatLogic) SendMessage(sessionID, message string, emit agent.EmitFunc) error {
	return l.core.Agent().Run(l.ctx, sessionID, message, emit)
}

// DeleteSession drops the session's conversation state and registry entry.
// Idempotent; the bool reports whether the session was known.
func (l *ChatLogic) DeleteSession(sessionID string) bool {
	return l.core.Agent().DeleteSession(sessionID)
}
