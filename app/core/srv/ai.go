package srv

import (
	"os"
	"time"

	"github.com/lore-ai/lore-ai/pkg/ai"
	"github.com/lore-ai/lore-ai/pkg/ai/openai"
)

type AIConfig struct {
	Token          string `toml:"token"`
	Endpoint       string `toml:"endpoint"` // OpenAI-compatible base url, empty for the default
	Model          string `toml:"model"`
	TimeoutSeconds int    `toml:"timeout_seconds"` // per external call, 0 for the driver default
}

func (c *AIConfig) FromENV() {
	c.Token = os.Getenv("LORE_AI_TOKEN")
	c.Endpoint = os.Getenv("LORE_AI_ENDPOINT")
	c.Model = os.Getenv("LORE_AI_MODEL")
}

// AI bundles the completion service views the pipeline depends on.
type AI struct {
	completer ai.Completer
	judge     ai.YesNoJudge
	extractor *ai.MetadataExtractor
}

func ApplyAI(cfg AIConfig) ApplyFunc {
	return func(s *Srv) {
		driver := openai.New(cfg.Token, cfg.Endpoint, cfg.Model, time.Duration(cfg.TimeoutSeconds)*time.Second)
		s.ai = &AI{
			completer: driver,
			judge:     ai.Judge{Completer: driver},
			extractor: ai.NewMetadataExtractor(driver),
		}
	}
}

func (a *AI) Completer() ai.Completer {
	return a.completer
}

func (a *AI) Judge() ai.YesNoJudge {
	return a.judge
}

func (a *AI) Extractor() *ai.MetadataExtractor {
	return a.extractor
}
