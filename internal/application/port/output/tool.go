package output

import (
	"context"
	"encoding/json"

	"pdf-agent/internal/domain/entity"
)

// ToolContext is the per-turn execution context handed to every tool:
// the in-turn document view plus the injected destructive callbacks.
type ToolContext struct {
	SessionID       string
	Documents       *entity.DocumentSet
	ClearRevised    entity.ClearRevisedFunc
	DeleteDocuments entity.DeleteDocumentsFunc
}

type ToolPort interface {
	Name() entity.ToolName
	Description() string
	Parameters() map[string]interface{}
	Execute(ctx context.Context, tc *ToolContext, input json.RawMessage) (*entity.ToolResult, error)
}

type ToolRegistry interface {
	Register(tool ToolPort)
	Get(name entity.ToolName) (ToolPort, bool)
	All() []ToolPort
	Definitions() []entity.ToolDefinition
}
