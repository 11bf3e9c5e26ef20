package handler

import (
	"github.com/gin-gonic/gin"

	v1 "github.com/lore-ai/lore-ai/app/logic/v1"
	"github.com/lore-ai/lore-ai/app/response"
	"github.com/lore-ai/lore-ai/pkg/types"
	"github.com/lore-ai/lore-ai/pkg/utils"
)

func (s *HttpSrv) ListKnowledge(c *gin.Context) {
	index, err := v1.NewKnowledgeLogic(c.Request.Context(), s.Core).ListKnowledgeIndex()
	if err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, index)
}

func (s *HttpSrv) GetKnowledge(c *gin.Context) {
	id, _ := c.Params.Get("id")

	knowledge, err := v1.NewKnowledgeLogic(c.Request.Context(), s.Core).GetKnowledge(id)
	if err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, knowledge)
}

type CreateKnowledgeRequest struct {
	Title   string              `json:"title" binding:"required"`
	Content string              `json:"content" binding:"required"`
	Tags    []string            `json:"tags"`
	Summary string              `json:"summary"`
	Kind    types.KnowledgeKind `json:"kind"`
}

type CreateKnowledgeResponse struct {
	ID string `json:"id"`
}

func (s *HttpSrv) CreateKnowledge(c *gin.Context) {
	var req CreateKnowledgeRequest
	if err := utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}

	id, err := v1.NewKnowledgeLogic(c.Request.Context(), s.Core).CreateKnowledge(types.Knowledge{
		Title:   req.Title,
		Content: req.Content,
		Tags:    req.Tags,
		Summary: req.Summary,
		Kind:    req.Kind,
		Status:  types.KNOWLEDGE_STATUS_VERIFIED,
	})
	if err != nil {
		response.APIError(c, err)
		return
	}

	response.APISuccess(c, CreateKnowledgeResponse{
		ID: id,
	})
}

type UpdateKnowledgeRequest struct {
	Title   *string                `json:"title"`
	Content *string                `json:"content"`
	Tags    *[]string              `json:"tags"`
	Summary *string                `json:"summary"`
	Kind    *types.KnowledgeKind   `json:"kind"`
	Status  *types.KnowledgeStatus `json:"status"`
}

func (s *HttpSrv) UpdateKnowledge(c *gin.Context) {
	var (
		err error
		req UpdateKnowledgeRequest
	)
	if err = utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}

	id, _ := c.Params.Get("id")
	err = v1.NewKnowledgeLogic(c.Request.Context(), s.Core).UpdateKnowledge(id, types.UpdateKnowledgeArgs{
		Title:   req.Title,
		Content: req.Content,
		Tags:    req.Tags,
		Summary: req.Summary,
		Kind:    req.Kind,
		Status:  req.Status,
	})
	if err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, nil)
}

func (s *HttpSrv) DeleteKnowledge(c *gin.Context) {
	id, _ := c.Params.Get("id")

	if err := v1.NewKnowledgeLogic(c.Request.Context(), s.Core).DeleteKnowledge(id); err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, nil)
}
