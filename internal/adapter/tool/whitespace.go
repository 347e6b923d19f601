package tool

import (
	"context"
	"encoding/json"
	"fmt"

	"pdf-agent/internal/application/port/output"
	"pdf-agent/internal/domain/entity"
	"pdf-agent/internal/domain/whitespace"
)

var _ output.ToolPort = (*FindWhitespace)(nil)

const whitespaceScale = 2.0

type FindWhitespace struct {
	deps Deps
}

func NewFindWhitespaceTool(deps Deps) *FindWhitespace {
	return &FindWhitespace{deps: deps}
}

func (t *FindWhitespace) Name() entity.ToolName {
	return entity.ToolFindWhitespace
}

func (t *FindWhitespace) Description() string {
	return "Searches one page for clear rectangular regions of at least the given size (points) and returns the best matches in document coordinates (origin bottom-left). found=false means the page has no such region; that is a normal answer."
}

func (t *FindWhitespace) Parameters() map[string]interface{} {
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
			"minWidth": map[string]interface{}{
				"type":        "number",
				"description": "Minimum region width in points.",
			},
			"minHeight": map[string]interface{}{
				"type":        "number",
				"description": "Minimum region height in points.",
			},
			"prefer": map[string]interface{}{
				"type":        "string",
				"description": "Ranking preference: bottom-right, bottom-left, top-right, top-left, bottom, top or any. Default any.",
			},
			"maxResults": map[string]interface{}{
				"type":        "integer",
				"description": "How many regions to return. Default 1.",
			},
		},
		"required": []string{"documentId", "minWidth", "minHeight"},
	}
}

type findWhitespaceInput struct {
	DocumentID string  `json:"documentId"`
	Page       int     `json:"page"`
	MinWidth   float64 `json:"minWidth"`
	MinHeight  float64 `json:"minHeight"`
	Prefer     string  `json:"prefer"`
	MaxResults int     `json:"maxResults"`
}

func (t *FindWhitespace) Execute(ctx context.Context, tcx *output.ToolContext, input json.RawMessage) (*entity.ToolResult, error) {
	var args findWhitespaceInput
	if err := json.Unmarshal(input, &args); err != nil {
		return nil, fmt.Errorf("invalid input format: %w", err)
	}
	if args.Page == 0 {
		args.Page = 1
	}

	doc, data, err := fetchDocument(ctx, t.deps, tcx, args.DocumentID)
	if err != nil {
		return entity.FailedResult(t.Name(), err.Error()), nil
	}

	raster, geom, err := t.deps.Rasterizer.RasterizePage(ctx, data, args.Page, whitespaceScale)
	if err != nil {
		return entity.FailedResult(t.Name(), err.Error()), nil
	}

	result, err := whitespace.FindClearRegions(raster, geom.Height, whitespace.SearchParams{
		MinWidth:   args.MinWidth,
		MinHeight:  args.MinHeight,
		Margin:     stampMarginPts,
		Scale:      geom.Scale,
		Prefer:     whitespace.ParsePreference(args.Prefer),
		MaxResults: args.MaxResults,
	})
	if err != nil {
		return entity.FailedResult(t.Name(), err.Error()), nil
	}

	msg := fmt.Sprintf("no clear %gx%g region on page %d of %q", args.MinWidth, args.MinHeight, args.Page, doc.Name)
	if result.Found {
		msg = fmt.Sprintf("found %d clear region(s) on page %d of %q", len(result.Regions), args.Page, doc.Name)
	}
	return &entity.ToolResult{
		ToolName: t.Name(),
		Success:  true,
		Message:  msg,
		Data:     result,
	}, nil
}
