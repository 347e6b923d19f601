package tool

import (
	"context"
	"encoding/json"
	"fmt"

	"pdf-agent/internal/application/port/output"
	"pdf-agent/internal/domain/entity"
)

var _ output.ToolPort = (*MergePDFs)(nil)

type MergePDFs struct {
	deps Deps
}

func NewMergePDFsTool(deps Deps) *MergePDFs {
	return &MergePDFs{deps: deps}
}

func (t *MergePDFs) Name() entity.ToolName {
	return entity.ToolMergePDFs
}

func (t *MergePDFs) Description() string {
	return "Merges two or more documents into one new document, in the listed order."
}

func (t *MergePDFs) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"documentIds": map[string]interface{}{
				"type":        "array",
				"description": "Ids of the documents to merge, in output order.",
				"items":       map[string]interface{}{"type": "string"},
			},
		},
		"required": []string{"documentIds"},
	}
}

type mergeInput struct {
	DocumentIDs []string `json:"documentIds"`
}

func (t *MergePDFs) Execute(ctx context.Context, tcx *output.ToolContext, input json.RawMessage) (*entity.ToolResult, error) {
	var args mergeInput
	if err := json.Unmarshal(input, &args); err != nil {
		return nil, fmt.Errorf("invalid input format: %w", err)
	}
	if len(args.DocumentIDs) < 2 {
		return entity.FailedResult(t.Name(), "merging needs at least two document ids"), nil
	}

	docs := make([][]byte, 0, len(args.DocumentIDs))
	for _, id := range args.DocumentIDs {
		_, data, err := fetchDocument(ctx, t.deps, tcx, id)
		if err != nil {
			return entity.FailedResult(t.Name(), err.Error()), nil
		}
		docs = append(docs, data)
	}

	merged, err := t.deps.Engine.Merge(ctx, docs)
	if err != nil {
		return entity.FailedResult(t.Name(), err.Error()), nil
	}

	out, err := saveRevised(ctx, t.deps, tcx, "merged.pdf", merged, "", t.Name())
	if err != nil {
		return entity.FailedResult(t.Name(), err.Error()), nil
	}

	return &entity.ToolResult{
		ToolName:  t.Name(),
		Success:   true,
		Message:   fmt.Sprintf("merged %d documents", len(args.DocumentIDs)),
		Documents: []entity.Document{out},
	}, nil
}
