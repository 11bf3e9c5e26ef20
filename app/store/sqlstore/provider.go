package sqlstore

import (
	"embed"
	"strings"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/lib/pq"

	"github.com/lore-ai/lore-ai/app/store"
	"github.com/lore-ai/lore-ai/pkg/sqlstore"
)

//go:embed *.sql
var CreateTableFiles embed.FS

func init() {
	sq.StatementBuilder = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
}

type Provider struct {
	*sqlstore.SqlProvider

	knowledgeStore store.KnowledgeStore
}

func MustSetup(m sqlstore.ConnectConfig, s ...sqlstore.ConnectConfig) func() *Provider {
	provider := &Provider{
		SqlProvider: sqlstore.MustSetupProvider(m, s...),
	}
	provider.knowledgeStore = NewKnowledgeStore(provider)

	return func() *Provider {
		return provider
	}
}

// Install 初始化数据表
func (p *Provider) Install() error {
	files, err := CreateTableFiles.ReadDir(".")
	if err != nil {
		return err
	}

	for _, file := range files {
		if file.IsDir() || !strings.HasSuffix(file.Name(), ".sql") {
			continue
		}
		raw, err := CreateTableFiles.ReadFile(file.Name())
		if err != nil {
			return err
		}
		if _, err = p.SqlProvider.GetMaster().Exec(string(raw)); err != nil {
			return err
		}
	}
	return nil
}

func (p *Provider) KnowledgeStore() store.KnowledgeStore {
	return p.knowledgeStore
}
