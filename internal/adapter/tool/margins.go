package tool

import (
	"context"
	"encoding/json"
	"fmt"

	"pdf-agent/internal/application/port/output"
	"pdf-agent/internal/domain/entity"
	"pdf-agent/internal/domain/whitespace"
)

var _ output.ToolPort = (*CheckMargins)(nil)

const defaultMarginPts = 36.0

type CheckMargins struct {
	deps Deps
}

func NewCheckMarginsTool(deps Deps) *CheckMargins {
	return &CheckMargins{deps: deps}
}

func (t *CheckMargins) Name() entity.ToolName {
	return entity.ToolCheckMargins
}

func (t *CheckMargins) Description() string {
	return "Checks whether the four page-edge margin bands of one page are clear, reporting per-edge results and an overall clear percentage."
}

func (t *CheckMargins) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"documentId": map[string]interface{}{
				"type":        "string",
				"description": "Id of the document to inspect.",
			},
			"page": map[string]interface{}{
				"type":        "integer",
				"description": "1-indexed page to inspect. Default 1.",
			},
			"margin": map[string]interface{}{
				"type":        "number",
				"description": "Margin band width in points. Default 36.",
			},
		},
		"required": []string{"documentId"},
	}
}

type checkMarginsInput struct {
	DocumentID string  `json:"documentId"`
	Page       int     `json:"page"`
	Margin     float64 `json:"margin"`
}

func (t *CheckMargins) Execute(ctx context.Context, tcx *output.ToolContext, input json.RawMessage) (*entity.ToolResult, error) {
	var args checkMarginsInput
	if err := json.Unmarshal(input, &args); err != nil {
		return nil, fmt.Errorf("invalid input format: %w", err)
	}
	if args.Page == 0 {
		args.Page = 1
	}
	if args.Margin <= 0 {
		args.Margin = defaultMarginPts
	}

	doc, data, err := fetchDocument(ctx, t.deps, tcx, args.DocumentID)
	if err != nil {
		return entity.FailedResult(t.Name(), err.Error()), nil
	}

	raster, geom, err := t.deps.Rasterizer.RasterizePage(ctx, data, args.Page, whitespaceScale)
	if err != nil {
		return entity.FailedResult(t.Name(), err.Error()), nil
	}

	report, err := whitespace.CheckMargins(raster, args.Margin, geom.Scale, 0)
	if err != nil {
		return entity.FailedResult(t.Name(), err.Error()), nil
	}

	return &entity.ToolResult{
		ToolName: t.Name(),
		Success:  true,
		Message:  fmt.Sprintf("margins of page %d of %q are %.1f%% clear", args.Page, doc.Name, report.ClearPercent),
		Data:     report,
	}, nil
}
