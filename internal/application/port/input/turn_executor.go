package input

import (
	"context"

	"pdf-agent/internal/domain/entity"
)

type Operation struct {
	ToolName entity.ToolName `json:"tool"`
	Success  bool            `json:"success"`
}

type TurnRequest struct {
	SessionID       string
	UserText        string
	History         []entity.Message
	Documents       []entity.Document
	OnLogEvent      func(entity.AgentLogEvent)
	ClearRevised    entity.ClearRevisedFunc
	DeleteDocuments entity.DeleteDocumentsFunc
}

type TurnResult struct {
	FinalText    string
	Operations   []Operation
	Messages     []entity.Message
	Documents    []entity.Document
	Iterations   int
	LimitReached bool
}

// TurnExecutor runs one chat turn to completion. It never fails: provider
// errors, tool errors and the iteration ceiling all fold into a
// best-effort TurnResult.
type TurnExecutor interface {
	RunTurn(ctx context.Context, req TurnRequest) *TurnResult
}
