package sqlstore

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/lore-ai/lore-ai/pkg/types"
)

// KnowledgeStore 处理知识库表的操作
type KnowledgeStore struct {
	CommonFields
}

func NewKnowledgeStore(provider SqlProviderAchieve) *KnowledgeStore {
	store := &KnowledgeStore{}
	store.SetProvider(provider)
	store.SetTable(types.TABLE_KNOWLEDGE)
	store.SetAllColumns("id", "title", "content", "tags", "summary", "kind", "status", "ai_created", "created_at", "updated_at")
	return store
}

// Create 创建新的知识记录
func (s *KnowledgeStore) Create(ctx context.Context, data types.Knowledge) error {
	if data.CreatedAt == 0 {
		data.CreatedAt = time.Now().Unix()
	}
	if data.UpdatedAt == 0 {
		data.UpdatedAt = time.Now().Unix()
	}

	query := sq.Insert(s.GetTable()).
		Columns("id", "title", "content", "tags", "summary", "kind", "status", "ai_created", "created_at", "updated_at").
		Values(data.ID, data.Title, data.Content, pq.Array(data.Tags), data.Summary, data.Kind, data.Status, data.AICreated, data.CreatedAt, data.UpdatedAt)

	queryString, args, err := query.ToSql()
	if err != nil {
		return ErrorSqlBuild(err)
	}

	_, err = s.GetMaster(ctx).Exec(queryString, args...)
	return err
}

// Get 根据ID获取知识记录
func (s *KnowledgeStore) Get(ctx context.Context, id string) (*types.Knowledge, error) {
	query := sq.Select(s.GetAllColumns()...).From(s.GetTable()).Where(sq.Eq{"id": id})

	queryString, args, err := query.ToSql()
	if err != nil {
		return nil, ErrorSqlBuild(err)
	}

	var res types.Knowledge
	if err = s.GetReplica(ctx).Get(&res, queryString, args...); err != nil {
		return nil, err
	}
	return &res, nil
}

// ListIndex 获取轻量索引，检索选择阶段使用
func (s *KnowledgeStore) ListIndex(ctx context.Context) ([]types.KnowledgeIndexEntry, error) {
	query := sq.Select("id", "title", "tags", "summary", "status", "ai_created").
		From(s.GetTable()).
		OrderBy("created_at DESC")

	queryString, args, err := query.ToSql()
	if err != nil {
		return nil, ErrorSqlBuild(err)
	}

	var res []types.KnowledgeIndexEntry
	if err = s.GetReplica(ctx).Select(&res, queryString, args...); err != nil {
		return nil, err
	}
	return res, nil
}

// ListByIDs 批量获取完整文档
func (s *KnowledgeStore) ListByIDs(ctx context.Context, ids []string) ([]*types.Knowledge, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := sq.Select(s.GetAllColumns()...).From(s.GetTable()).Where(sq.Eq{"id": ids})

	queryString, args, err := query.ToSql()
	if err != nil {
		return nil, ErrorSqlBuild(err)
	}

	var res []*types.Knowledge
	if err = s.GetReplica(ctx).Select(&res, queryString, args...); err != nil {
		return nil, err
	}
	return res, nil
}

// Update 更新知识记录，nil 字段不参与更新
func (s *KnowledgeStore) Update(ctx context.Context, id string, args types.UpdateKnowledgeArgs) error {
	query := sq.Update(s.GetTable()).
		Set("updated_at", time.Now().Unix()).
		Where(sq.Eq{"id": id})

	if args.Title != nil {
		query = query.Set("title", *args.Title)
	}
	if args.Content != nil {
		query = query.Set("content", *args.Content)
	}
	if args.Tags != nil {
		query = query.Set("tags", pq.Array(*args.Tags))
	}
	if args.Summary != nil {
		query = query.Set("summary", *args.Summary)
	}
	if args.Kind != nil {
		query = query.Set("kind", *args.Kind)
	}
	if args.Status != nil {
		query = query.Set("status", *args.Status)
	}
	if args.AICreated != nil {
		query = query.Set("ai_created", *args.AICreated)
	}

	queryString, sqlArgs, err := query.ToSql()
	if err != nil {
		return ErrorSqlBuild(err)
	}

	_, err = s.GetMaster(ctx).Exec(queryString, sqlArgs...)
	return err
}

// Delete 删除知识记录
func (s *KnowledgeStore) Delete(ctx context.Context, id string) error {
	query := sq.Delete(s.GetTable()).Where(sq.Eq{"id": id})

	queryString, args, err := query.ToSql()
	if err != nil {
		return ErrorSqlBuild(err)
	}

	_, err = s.GetMaster(ctx).Exec(queryString, args...)
	return err
}
