package entity

import "encoding/json"

type MessageRole string

const (
	RoleSystem    MessageRole = "system"
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
	RoleTool      MessageRole = "tool"
)

type Message struct {
	Role       MessageRole
	Content    string
	ToolCalls  []ToolCall
	ToolCallID string
	Name       string
}

// ToolCall is an LLM-issued request to run a named tool. Input keeps the
// provider's structured payload verbatim; it is parsed once, by the tool.
type ToolCall struct {
	ID    string
	Name  string
	Input json.RawMessage
}

type ToolDefinition struct {
	Name        ToolName
	Description string
	Parameters  map[string]interface{}
}
