package tool

import (
	"context"
	"encoding/json"
	"fmt"

	"pdf-agent/internal/application/port/output"
	"pdf-agent/internal/domain/entity"
)

var _ output.ToolPort = (*ReorderPages)(nil)

type ReorderPages struct {
	deps Deps
}

func NewReorderPagesTool(deps Deps) *ReorderPages {
	return &ReorderPages{deps: deps}
}

func (t *ReorderPages) Name() entity.ToolName {
	return entity.ToolReorderPages
}

func (t *ReorderPages) Description() string {
	return "Builds a new document with pages in the given 1-indexed order. Indices outside the document are dropped, so the result may have fewer pages than requested."
}

func (t *ReorderPages) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"documentId": map[string]interface{}{
				"type":        "string",
				"description": "Id of the document to reorder.",
			},
			"pageOrder": map[string]interface{}{
				"type":        "array",
				"description": "1-indexed page numbers in the desired output order. Pages may repeat or be omitted.",
				"items":       map[string]interface{}{"type": "integer"},
			},
		},
		"required": []string{"documentId", "pageOrder"},
	}
}

type reorderInput struct {
	DocumentID string `json:"documentId"`
	PageOrder  []int  `json:"pageOrder"`
}

func (t *ReorderPages) Execute(ctx context.Context, tcx *output.ToolContext, input json.RawMessage) (*entity.ToolResult, error) {
	var args reorderInput
	if err := json.Unmarshal(input, &args); err != nil {
		return nil, fmt.Errorf("invalid input format: %w", err)
	}
	if len(args.PageOrder) == 0 {
		return entity.FailedResult(t.Name(), "pageOrder must not be empty"), nil
	}

	doc, data, err := fetchDocument(ctx, t.deps, tcx, args.DocumentID)
	if err != nil {
		return entity.FailedResult(t.Name(), err.Error()), nil
	}

	pageCount, err := t.deps.Engine.PageCount(ctx, data)
	if err != nil {
		return entity.FailedResult(t.Name(), err.Error()), nil
	}

	// Lenient by contract: out-of-range indices are dropped, not errors.
	order := make([]int, 0, len(args.PageOrder))
	dropped := 0
	for _, p := range args.PageOrder {
		if p < 1 || p > pageCount {
			dropped++
			continue
		}
		order = append(order, p)
	}
	if len(order) == 0 {
		return entity.FailedResult(t.Name(), fmt.Sprintf("no valid page indices in pageOrder (document has %d pages)", pageCount)), nil
	}

	reordered, err := t.deps.Engine.Reorder(ctx, data, order)
	if err != nil {
		return entity.FailedResult(t.Name(), err.Error()), nil
	}

	out, err := saveRevised(ctx, t.deps, tcx, derivedName(doc.Name, "reordered"), reordered, "", t.Name())
	if err != nil {
		return entity.FailedResult(t.Name(), err.Error()), nil
	}

	msg := fmt.Sprintf("reordered %q into %d pages", doc.Name, len(order))
	if dropped > 0 {
		msg += fmt.Sprintf(" (%d out-of-range indices dropped)", dropped)
	}
	return &entity.ToolResult{
		ToolName:  t.Name(),
		Success:   true,
		Message:   msg,
		Documents: []entity.Document{out},
	}, nil
}
