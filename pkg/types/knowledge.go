package types

import (
	"github.com/lib/pq"
)

type KnowledgeStatus string

const (
	KNOWLEDGE_STATUS_UNVERIFIED KnowledgeStatus = "unverified"
	KNOWLEDGE_STATUS_VERIFIED   KnowledgeStatus = "verified"
)

type KnowledgeKind string

const (
	KNOWLEDGE_KIND_TEXT KnowledgeKind = "text"
	KNOWLEDGE_KIND_CODE KnowledgeKind = "code"
)

// Knowledge 知识库文档
type Knowledge struct {
	ID        string          `json:"id" db:"id"`
	Title     string          `json:"title" db:"title"`
	Content   string          `json:"content" db:"content"`
	Tags      pq.StringArray  `json:"tags" db:"tags"`
	Summary   string          `json:"summary" db:"summary"`
	Kind      KnowledgeKind   `json:"kind" db:"kind"`
	Status    KnowledgeStatus `json:"status" db:"status"`
	AICreated bool            `json:"ai_created" db:"ai_created"`
	CreatedAt int64           `json:"created_at" db:"created_at"`
	UpdatedAt int64           `json:"updated_at" db:"updated_at"`
}

// KnowledgeIndexEntry 知识库索引（检索阶段只需要轻量字段）
type KnowledgeIndexEntry struct {
	ID        string          `json:"id" db:"id"`
	Title     string          `json:"title" db:"title"`
	Tags      pq.StringArray  `json:"tags" db:"tags"`
	Summary   string          `json:"summary" db:"summary"`
	Status    KnowledgeStatus `json:"status" db:"status"`
	AICreated bool            `json:"ai_created" db:"ai_created"`
}

// UpdateKnowledgeArgs partial update payload, nil fields are left untouched.
type UpdateKnowledgeArgs struct {
	Title     *string          `json:"title"`
	Content   *string          `json:"content"`
	Tags      *[]string        `json:"tags"`
	Summary   *string          `json:"summary"`
	Kind      *KnowledgeKind   `json:"kind"`
	Status    *KnowledgeStatus `json:"status"`
	AICreated *bool            `json:"ai_created"`
}
