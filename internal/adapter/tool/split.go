package tool

import (
	"context"
	"encoding/json"
	"fmt"

	"pdf-agent/internal/application/port/output"
	"pdf-agent/internal/domain/entity"
)

var _ output.ToolPort = (*SplitPDF)(nil)

type SplitPDF struct {
	deps Deps
}

func NewSplitPDFTool(deps Deps) *SplitPDF {
	return &SplitPDF{deps: deps}
}

func (t *SplitPDF) Name() entity.ToolName {
	return entity.ToolSplitPDF
}

func (t *SplitPDF) Description() string {
	return "Splits a PDF into several new documents, one per requested page range. Page ranges are 1-indexed and inclusive; an end past the last page is clamped."
}

func (t *SplitPDF) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"documentId": map[string]interface{}{
				"type":        "string",
				"description": "Id of the document to split.",
			},
			"ranges": map[string]interface{}{
				"type":        "array",
				"description": "Page ranges to extract, one output document per range.",
				"items": map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"start": map[string]interface{}{"type": "integer", "description": "First page, 1-indexed."},
						"end":   map[string]interface{}{"type": "integer", "description": "Last page, inclusive."},
					},
					"required": []string{"start", "end"},
				},
			},
		},
		"required": []string{"documentId", "ranges"},
	}
}

type splitInput struct {
	DocumentID string `json:"documentId"`
	Ranges     []struct {
		Start int `json:"start"`
		End   int `json:"end"`
	} `json:"ranges"`
}

func (t *SplitPDF) Execute(ctx context.Context, tcx *output.ToolContext, input json.RawMessage) (*entity.ToolResult, error) {
	var args splitInput
	if err := json.Unmarshal(input, &args); err != nil {
		return nil, fmt.Errorf("invalid input format: %w", err)
	}
	if len(args.Ranges) == 0 {
		return entity.FailedResult(t.Name(), "at least one page range is required"), nil
	}

	doc, data, err := fetchDocument(ctx, t.deps, tcx, args.DocumentID)
	if err != nil {
		return entity.FailedResult(t.Name(), err.Error()), nil
	}

	pageCount, err := t.deps.Engine.PageCount(ctx, data)
	if err != nil {
		return entity.FailedResult(t.Name(), err.Error()), nil
	}

	result := &entity.ToolResult{ToolName: t.Name(), Success: true}
	for _, r := range args.Ranges {
		end, err := validatePageRange(r.Start, r.End, pageCount)
		if err != nil {
			return entity.FailedResult(t.Name(), err.Error()), nil
		}

		part, err := t.deps.Engine.ExtractPages(ctx, data, r.Start, end)
		if err != nil {
			return entity.FailedResult(t.Name(), err.Error()), nil
		}

		pages := fmt.Sprintf("%d-%d", r.Start, end)
		out, err := saveRevised(ctx, t.deps, tcx, derivedName(doc.Name, "pages-"+pages), part, pages, t.Name())
		if err != nil {
			return entity.FailedResult(t.Name(), err.Error()), nil
		}
		result.Documents = append(result.Documents, out)
	}

	result.Message = fmt.Sprintf("split %q into %d documents", doc.Name, len(result.Documents))
	return result, nil
}
