package tool

import (
	"context"
	"encoding/json"
	"fmt"

	"pdf-agent/internal/application/port/output"
	"pdf-agent/internal/domain/entity"
)

var (
	_ output.ToolPort = (*ClearRevised)(nil)
	_ output.ToolPort = (*DeleteDocuments)(nil)
)

// ClearRevised removes every revised document in the session. The actual
// mutation happens through the injected callback; without one the tool
// dry-runs and says so.
type ClearRevised struct {
	deps Deps
}

func NewClearRevisedTool(deps Deps) *ClearRevised {
	return &ClearRevised{deps: deps}
}

func (t *ClearRevised) Name() entity.ToolName {
	return entity.ToolClearRevised
}

func (t *ClearRevised) Description() string {
	return "Deletes every revised (tool-produced) document in this session. Original uploads are never touched."
}

func (t *ClearRevised) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type":       "object",
		"properties": map[string]interface{}{},
		"required":   []string{},
	}
}

func (t *ClearRevised) Execute(_ context.Context, tcx *output.ToolContext, _ json.RawMessage) (*entity.ToolResult, error) {
	if tcx.ClearRevised == nil {
		revised := 0
		for _, d := range tcx.Documents.All() {
			if d.Kind == entity.DocumentRevised {
				revised++
			}
		}
		return &entity.ToolResult{
			ToolName:      t.Name(),
			Success:       true,
			Message:       fmt.Sprintf("dry run: would remove %d revised documents", revised),
			NeedsCallback: true,
		}, nil
	}

	removed, err := tcx.ClearRevised(tcx.SessionID)
	if err != nil {
		return entity.FailedResult(t.Name(), err.Error()), nil
	}
	return &entity.ToolResult{
		ToolName: t.Name(),
		Success:  true,
		Message:  fmt.Sprintf("removed %d revised documents", removed),
	}, nil
}

// DeleteDocuments deletes the requested revised documents. Originals in
// the request are skipped and counted, never an error.
type DeleteDocuments struct {
	deps Deps
}

func NewDeleteDocumentsTool(deps Deps) *DeleteDocuments {
	return &DeleteDocuments{deps: deps}
}

func (t *DeleteDocuments) Name() entity.ToolName {
	return entity.ToolDeleteDocuments
}

func (t *DeleteDocuments) Description() string {
	return "Deletes specific revised documents by id. Ids of original uploads are skipped (reported, not an error)."
}

func (t *DeleteDocuments) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"documentIds": map[string]interface{}{
				"type":        "array",
				"description": "Ids of the documents to delete.",
				"items":       map[string]interface{}{"type": "string"},
			},
		},
		"required": []string{"documentIds"},
	}
}

type deleteDocumentsInput struct {
	DocumentIDs []string `json:"documentIds"`
}

func (t *DeleteDocuments) Execute(_ context.Context, tcx *output.ToolContext, input json.RawMessage) (*entity.ToolResult, error) {
	var args deleteDocumentsInput
	if err := json.Unmarshal(input, &args); err != nil {
		return nil, fmt.Errorf("invalid input format: %w", err)
	}
	if len(args.DocumentIDs) == 0 {
		return entity.FailedResult(t.Name(), "documentIds must not be empty"), nil
	}

	if tcx.DeleteDocuments == nil {
		deletable, originals := t.partition(tcx, args.DocumentIDs)
		return &entity.ToolResult{
			ToolName:      t.Name(),
			Success:       true,
			Message:       fmt.Sprintf("dry run: would delete %d documents, skipping %d originals", deletable, originals),
			NeedsCallback: true,
		}, nil
	}

	deleted, skipped, err := tcx.DeleteDocuments(tcx.SessionID, args.DocumentIDs)
	if err != nil {
		return entity.FailedResult(t.Name(), err.Error()), nil
	}

	msg := fmt.Sprintf("deleted %d documents", deleted)
	if skipped > 0 {
		msg += fmt.Sprintf(", skipped %d original uploads (originals cannot be deleted)", skipped)
	}
	return &entity.ToolResult{
		ToolName: t.Name(),
		Success:  true,
		Message:  msg,
		Data: map[string]int{
			"deletedCount":     deleted,
			"skippedOriginals": skipped,
		},
	}, nil
}

func (t *DeleteDocuments) partition(tcx *output.ToolContext, ids []string) (deletable, originals int) {
	for _, id := range ids {
		doc, ok := tcx.Documents.Get(id)
		if !ok {
			continue
		}
		if doc.Kind == entity.DocumentOriginal {
			originals++
		} else {
			deletable++
		}
	}
	return deletable, originals
}
