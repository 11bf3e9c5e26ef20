package handler

import (
	"github.com/gin-gonic/gin"

	v1 "github.com/lore-ai/lore-ai/app/logic/v1"
	"github.com/lore-ai/lore-ai/app/response"
	"github.com/lore-ai/lore-ai/pkg/types"
	"github.com/lore-ai/lore-ai/pkg/utils"
)

type ExtractRequest struct {
	Text string `json:"text" binding:"required"`
}

// ExtractMetadata 仅抽取元数据，不落库
func (s *HttpSrv) ExtractMetadata(c *gin.Context) {
	var req ExtractRequest
	if err := utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}

	result, err := v1.NewExtractLogic(c.Request.Context(), s.Core).ExtractMetadata(req.Text)
	if err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, result)
}

type ExtractSaveRequest struct {
	Text      string              `json:"text" binding:"required"`
	Kind      types.KnowledgeKind `json:"kind"`
	AICreated bool                `json:"ai_created"`
}

func (s *HttpSrv) ExtractAndSave(c *gin.Context) {
	var req ExtractSaveRequest
	if err := utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}

	knowledge, err := v1.NewExtractLogic(c.Request.Context(), s.Core).ExtractAndSave(req.Text, req.Kind, req.AICreated)
	if err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, knowledge)
}
