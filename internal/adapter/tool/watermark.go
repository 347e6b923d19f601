package tool

import (
	"context"
	"encoding/json"
	"fmt"

	"pdf-agent/internal/application/port/output"
	"pdf-agent/internal/domain/entity"
)

var _ output.ToolPort = (*AddWatermark)(nil)

type AddWatermark struct {
	deps Deps
}

func NewAddWatermarkTool(deps Deps) *AddWatermark {
	return &AddWatermark{deps: deps}
}

func (t *AddWatermark) Name() entity.ToolName {
	return entity.ToolAddWatermark
}

func (t *AddWatermark) Description() string {
	return "Draws a semi-transparent text watermark across every page of a document and returns the watermarked copy."
}

func (t *AddWatermark) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"documentId": map[string]interface{}{
				"type":        "string",
				"description": "Id of the document to watermark.",
			},
			"text": map[string]interface{}{
				"type":        "string",
				"description": "Watermark text, e.g. DRAFT or CONFIDENTIAL.",
			},
			"fontSize": map[string]interface{}{
				"type":        "integer",
				"description": "Font size in points. Default 48.",
			},
			"opacity": map[string]interface{}{
				"type":        "number",
				"description": "Opacity between 0 and 1. Default 0.3.",
			},
			"rotation": map[string]interface{}{
				"type":        "number",
				"description": "Rotation in degrees. Default 45.",
			},
		},
		"required": []string{"documentId", "text"},
	}
}

type watermarkInput struct {
	DocumentID string   `json:"documentId"`
	Text       string   `json:"text"`
	FontSize   int      `json:"fontSize"`
	Opacity    float64  `json:"opacity"`
	Rotation   *float64 `json:"rotation"`
}

func (t *AddWatermark) Execute(ctx context.Context, tcx *output.ToolContext, input json.RawMessage) (*entity.ToolResult, error) {
	var args watermarkInput
	if err := json.Unmarshal(input, &args); err != nil {
		return nil, fmt.Errorf("invalid input format: %w", err)
	}
	if args.Text == "" {
		return entity.FailedResult(t.Name(), "watermark text is required"), nil
	}

	doc, data, err := fetchDocument(ctx, t.deps, tcx, args.DocumentID)
	if err != nil {
		return entity.FailedResult(t.Name(), err.Error()), nil
	}

	rotation := 45.0
	if args.Rotation != nil {
		rotation = *args.Rotation
	}

	marked, err := t.deps.Engine.Watermark(ctx, data, output.WatermarkOptions{
		Text:     args.Text,
		FontSize: args.FontSize,
		Opacity:  args.Opacity,
		Rotation: rotation,
	})
	if err != nil {
		return entity.FailedResult(t.Name(), err.Error()), nil
	}

	out, err := saveRevised(ctx, t.deps, tcx, derivedName(doc.Name, "watermarked"), marked, "", t.Name())
	if err != nil {
		return entity.FailedResult(t.Name(), err.Error()), nil
	}

	return &entity.ToolResult{
		ToolName:  t.Name(),
		Success:   true,
		Message:   fmt.Sprintf("watermarked %q with %q", doc.Name, args.Text),
		Documents: []entity.Document{out},
	}, nil
}
