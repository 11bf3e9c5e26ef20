package types

const TABLE_PREFIX = "lore_"

type TableName string

func (t TableName) Name() string {
	return TABLE_PREFIX + string(t)
}

const (
	TABLE_KNOWLEDGE TableName = "knowledge"
)
