package service

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lore-ai/lore-ai/app/core"
	"github.com/lore-ai/lore-ai/app/response"
	"github.com/lore-ai/lore-ai/cmd/service/handler"
	"github.com/lore-ai/lore-ai/cmd/service/middleware"
)

func serve(core *core.Core) {
	httpSrv := &handler.HttpSrv{
		Core:   core,
		Engine: core.HttpEngine(),
	}
	setupHttpRouter(httpSrv)

	core.HttpEngine().Run(core.Cfg().Addr)
}

func setupHttpRouter(s *handler.HttpSrv) {
	s.Engine.Use(gin.Recovery())
	s.Engine.Use(middleware.Cors)

	s.Engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	apiV1 := s.Engine.Group("/api/v1")
	apiV1.Use(response.NewResponse())
	{
		chat := apiV1.Group("/chat")
		{
			chat.POST("", s.CreateChatMessage)
			chat.DELETE("/session/:session", s.DeleteChatSession)
		}

		knowledge := apiV1.Group("/knowledge")
		{
			knowledge.GET("", s.ListKnowledge)
			knowledge.GET("/:id", s.GetKnowledge)
			knowledge.POST("", s.CreateKnowledge)
			knowledge.PUT("/:id", s.UpdateKnowledge)
			knowledge.DELETE("/:id", s.DeleteKnowledge)
		}

		extract := apiV1.Group("/extract")
		{
			extract.POST("", s.ExtractMetadata)
			extract.POST("/save", s.ExtractAndSave)
		}
	}
}
