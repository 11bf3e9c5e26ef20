package types

type MessageRole string

const (
	USER_ROLE_USER      MessageRole = "user"
	USER_ROLE_ASSISTANT MessageRole = "assistant"
)

// Message 会话历史中的单条消息
type Message struct {
	Role    MessageRole `json:"role"`
	Content string      `json:"content"`
}

// Intent 用户意图
type Intent string

const (
	INTENT_GREETING             Intent = "greeting"
	INTENT_GENERAL_CHAT         Intent = "general_chat"
	INTENT_CLARIFICATION        Intent = "clarification"
	INTENT_TECHNICAL            Intent = "technical"
	INTENT_CORRECTION           Intent = "correction"
	INTENT_LEARNER_CONFIRMATION Intent = "learner_confirmation"
)

type StreamEventType string

const (
	STREAM_EVENT_STEP   StreamEventType = "step"
	STREAM_EVENT_INFO   StreamEventType = "info"
	STREAM_EVENT_ANSWER StreamEventType = "answer"
	STREAM_EVENT_ERROR  StreamEventType = "error"
)

// StreamEvent 流式响应事件，逐行推送给调用方
type StreamEvent struct {
	Type    StreamEventType `json:"type"`
	Content string          `json:"content"`
}
