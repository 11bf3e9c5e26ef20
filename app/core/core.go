package core

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/lore-ai/lore-ai/app/core/srv"
	"github.com/lore-ai/lore-ai/app/store/sqlstore"
	"github.com/lore-ai/lore-ai/pkg/agent"
	"github.com/lore-ai/lore-ai/pkg/utils"
)

type Core struct {
	cfg CoreConfig
	srv *srv.Srv

	stores     func() *sqlstore.Provider
	httpEngine *gin.Engine

	agent *agent.Pipeline
}

func MustSetupCore(cfg CoreConfig) *Core {
	{
		var writer io.Writer = os.Stdout
		if cfg.Log.Path != "" {
			writer = &lumberjack.Logger{
				Filename:   cfg.Log.Path,
				MaxSize:    500, // megabytes
				MaxBackups: 3,
				MaxAge:     28, // days
				Compress:   true,
			}
		}
		l := slog.New(slog.NewJSONHandler(writer, &slog.HandlerOptions{
			Level: cfg.Log.SlogLevel(),
		}))
		slog.SetDefault(l)
	}

	core := &Core{
		cfg:        cfg,
		httpEngine: gin.New(),
	}

	setupSqlStore(core)

	core.srv = srv.SetupSrvs(srv.ApplyAI(cfg.AI))

	core.agent = agent.NewPipeline(agent.PipelineConfig{
		Completer: core.srv.AI().Completer(),
		Judge:     core.srv.AI().Judge(),
		Extractor: core.srv.AI().Extractor(),
		Knowledge: &knowledgeBase{stores: core.stores},
		States:    agent.NewMemoryStateStore(),
		IDFunc:    utils.GenRandomID,
	})

	return core
}

func setupSqlStore(core *Core) {
	core.stores = sqlstore.MustSetup(core.cfg.Postgres)
	// the store degrades to empty results when unreachable; a failed install
	// is a configuration warning, not a startup fault
	if err := core.stores().Install(); err != nil {
		slog.Warn("knowledge store unavailable, continuing degraded", slog.Any("error", err))
	}
}

func (s *Core) Cfg() CoreConfig {
	return s.cfg
}

func (s *Core) HttpEngine() *gin.Engine {
	return s.httpEngine
}

func (s *Core) Store() *sqlstore.Provider {
	return s.stores()
}

func (s *Core) Srv() *srv.Srv {
	return s.srv
}

func (s *Core) Agent() *agent.Pipeline {
	return s.agent
}

func (s *Core) SessionTimeout() time.Duration {
	return time.Duration(s.cfg.Session.Timeout()) * time.Second
}
