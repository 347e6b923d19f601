package tool

import (
	"context"
	"encoding/json"
	"fmt"

	"pdf-agent/internal/application/port/output"
	"pdf-agent/internal/domain/entity"
)

var _ output.ToolPort = (*ExtractPages)(nil)

type ExtractPages struct {
	deps Deps
}

func NewExtractPagesTool(deps Deps) *ExtractPages {
	return &ExtractPages{deps: deps}
}

func (t *ExtractPages) Name() entity.ToolName {
	return entity.ToolExtractPages
}

func (t *ExtractPages) Description() string {
	return "Extracts a single 1-indexed, inclusive page range into a new document. An end past the last page is clamped to it."
}

func (t *ExtractPages) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"documentId": map[string]interface{}{
				"type":        "string",
				"description": "Id of the source document.",
			},
			"start": map[string]interface{}{"type": "integer", "description": "First page, 1-indexed."},
			"end":   map[string]interface{}{"type": "integer", "description": "Last page, inclusive."},
		},
		"required": []string{"documentId", "start", "end"},
	}
}

type extractInput struct {
	DocumentID string `json:"documentId"`
	Start      int    `json:"start"`
	End        int    `json:"end"`
}

func (t *ExtractPages) Execute(ctx context.Context, tcx *output.ToolContext, input json.RawMessage) (*entity.ToolResult, error) {
	var args extractInput
	if err := json.Unmarshal(input, &args); err != nil {
		return nil, fmt.Errorf("invalid input format: %w", err)
	}

	doc, data, err := fetchDocument(ctx, t.deps, tcx, args.DocumentID)
	if err != nil {
		return entity.FailedResult(t.Name(), err.Error()), nil
	}

	pageCount, err := t.deps.Engine.PageCount(ctx, data)
	if err != nil {
		return entity.FailedResult(t.Name(), err.Error()), nil
	}

	end, err := validatePageRange(args.Start, args.End, pageCount)
	if err != nil {
		return entity.FailedResult(t.Name(), err.Error()), nil
	}

	part, err := t.deps.Engine.ExtractPages(ctx, data, args.Start, end)
	if err != nil {
		return entity.FailedResult(t.Name(), err.Error()), nil
	}

	pages := fmt.Sprintf("%d-%d", args.Start, end)
	out, err := saveRevised(ctx, t.deps, tcx, derivedName(doc.Name, "pages-"+pages), part, pages, t.Name())
	if err != nil {
		return entity.FailedResult(t.Name(), err.Error()), nil
	}

	return &entity.ToolResult{
		ToolName:  t.Name(),
		Success:   true,
		Message:   fmt.Sprintf("extracted pages %s of %q", pages, doc.Name),
		Documents: []entity.Document{out},
	}, nil
}
