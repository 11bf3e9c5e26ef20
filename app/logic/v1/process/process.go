package process

import (
	"log/slog"

	"github.com/robfig/cron/v3"

	"github.com/lore-ai/lore-ai/app/core"
	"github.com/lore-ai/lore-ai/pkg/safe"
)

type Process struct {
	cron *cron.Cron
	core *core.Core
}

func NewProcess(core *core.Core) *Process {
	p := &Process{
		cron: cron.New(),
		core: core,
	}

	p.cron.AddFunc("@every 1m", func() {
		safe.Run(p.reapSessions)
	})

	return p
}

// reapSessions 清理超时未活跃的会话
func (p *Process) reapSessions() {
	timeout := p.core.SessionTimeout()
	removed := p.core.Agent().ReapExpired(timeout)
	if len(removed) > 0 {
		slog.Info("session reaper cycle finished",
			slog.Int("removed", len(removed)),
			slog.Duration("timeout", timeout))
	}
}

func (p *Process) Cron() *cron.Cron {
	return p.cron
}

func (p *Process) Start() {
	p.cron.Start()
}

func (p *Process) Stop() {
	if p.cron != nil {
		ctx := p.cron.Stop()
		<-ctx.Done()
	}
}
