package handler

import (
	"encoding/json"
	"io"

	"github.com/gin-gonic/gin"

	v1 "github.com/lore-ai/lore-ai/app/logic/v1"
	"github.com/lore-ai/lore-ai/app/response"
	"github.com/lore-ai/lore-ai/pkg/safe"
	"github.com/lore-ai/lore-ai/pkg/types"
	"github.com/lore-ai/lore-ai/pkg/utils"
)

type CreateChatMessageRequest struct {
	SessionID string `json:"session_id" binding:"required"`
	Message   string `json:"message" binding:"required"`
}

// CreateChatMessage 处理一条用户消息，以 NDJSON 流式返回处理过程与回答
func (s *HttpSrv) CreateChatMessage(c *gin.Context) {
	var (
		err error
		req CreateChatMessageRequest
	)

	if err = utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}

	ctx := c.Request.Context()
	events := make(chan types.StreamEvent, 10)

	logic := v1.NewChatLogic(ctx, s.Core)
	go safe.Run(func() {
		defer close(events)
		// failures surface in-stream as error events
		_ = logic.SendMessage(req.SessionID, req.Message, func(event types.StreamEvent) {
			select {
			case events <- event:
			case <-ctx.Done():
			}
		})
	})

	c.Header("Content-Type", "application/x-ndjson")
	c.Header("Cache-Control", "no-cache")
	c.Stream(func(w io.Writer) bool {
		select {
		case event, ok := <-events:
			if !ok {
				return false
			}
			raw, err := json.Marshal(event)
			if err != nil {
				return false
			}
			w.Write(raw)
			w.Write([]byte("\n"))
			return true
		case <-ctx.Done():
			return false
		}
	})
}

type DeleteChatSessionResponse struct {
	Deleted bool `json:"deleted"`
}

func (s *HttpSrv) DeleteChatSession(c *gin.Context) {
	sessionID, _ := c.Params.Get("session")

	deleted := v1.NewChatLogic(c.Request.Context(), s.Core).DeleteSession(sessionID)
	response.APISuccess(c, DeleteChatSessionResponse{
		Deleted: deleted,
	})
}
