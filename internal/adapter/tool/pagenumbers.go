package tool

import (
	"context"
	"encoding/json"
	"fmt"

	"pdf-agent/internal/application/port/output"
	"pdf-agent/internal/domain/entity"
	"pdf-agent/internal/domain/whitespace"
)

var _ output.ToolPort = (*AddPageNumbers)(nil)

// slotCodes maps the canonical slot names to stamp anchor codes.
var slotCodes = map[string]string{
	"bottom-left":   "bl",
	"bottom-center": "bc",
	"bottom-right":  "br",
	"top-left":      "tl",
	"top-center":    "tc",
	"top-right":     "tr",
}

// autoSlotOrder is the pick order when the caller leaves the position to
// us: bottom slots first, center before corners.
var autoSlotOrder = []string{
	"bottom-center", "bottom-right", "bottom-left",
	"top-center", "top-right", "top-left",
}

const slotBandPoints = 50.0

type AddPageNumbers struct {
	deps Deps
}

func NewAddPageNumbersTool(deps Deps) *AddPageNumbers {
	return &AddPageNumbers{deps: deps}
}

func (t *AddPageNumbers) Name() entity.ToolName {
	return entity.ToolAddPageNumbers
}

func (t *AddPageNumbers) Description() string {
	return "Stamps 'n of N' page numbers onto every page. With position 'auto' it inspects the first page and picks a clear slot; a fixed slot can also be forced."
}

func (t *AddPageNumbers) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"documentId": map[string]interface{}{
				"type":        "string",
				"description": "Id of the document to paginate.",
			},
			"position": map[string]interface{}{
				"type":        "string",
				"description": "One of auto, bottom-left, bottom-center, bottom-right, top-left, top-center, top-right. Default auto.",
			},
			"fontSize": map[string]interface{}{
				"type":        "integer",
				"description": "Font size in points. Default 10.",
			},
		},
		"required": []string{"documentId"},
	}
}

type pageNumbersInput struct {
	DocumentID string `json:"documentId"`
	Position   string `json:"position"`
	FontSize   int    `json:"fontSize"`
}

func (t *AddPageNumbers) Execute(ctx context.Context, tcx *output.ToolContext, input json.RawMessage) (*entity.ToolResult, error) {
	var args pageNumbersInput
	if err := json.Unmarshal(input, &args); err != nil {
		return nil, fmt.Errorf("invalid input format: %w", err)
	}

	doc, data, err := fetchDocument(ctx, t.deps, tcx, args.DocumentID)
	if err != nil {
		return entity.FailedResult(t.Name(), err.Error()), nil
	}

	position := args.Position
	degraded := false
	if position == "" || position == "auto" {
		position, degraded = t.pickSlot(ctx, data)
	}
	code, ok := slotCodes[position]
	if !ok {
		return entity.FailedResult(t.Name(), fmt.Sprintf("unknown position %q", args.Position)), nil
	}

	numbered, err := t.deps.Engine.AddPageNumbers(ctx, data, output.PageNumberOptions{
		Position: code,
		FontSize: args.FontSize,
	})
	if err != nil {
		return entity.FailedResult(t.Name(), err.Error()), nil
	}

	out, err := saveRevised(ctx, t.deps, tcx, derivedName(doc.Name, "numbered"), numbered, "", t.Name())
	if err != nil {
		return entity.FailedResult(t.Name(), err.Error()), nil
	}

	msg := fmt.Sprintf("added page numbers to %q at %s", doc.Name, position)
	if degraded {
		msg += " (no clear slot found, used the default)"
	}
	return &entity.ToolResult{
		ToolName:  t.Name(),
		Success:   true,
		Message:   msg,
		Degraded:  degraded,
		Documents: []entity.Document{out},
	}, nil
}

// pickSlot inspects the first page for a clear canonical slot. Placement
// must never fail on geometry, so any inspection problem falls back to
// bottom-center and reports degraded placement.
func (t *AddPageNumbers) pickSlot(ctx context.Context, data []byte) (string, bool) {
	raster, _, err := t.deps.Rasterizer.RasterizePage(ctx, data, 1, 1.0)
	if err != nil {
		t.deps.Logger.Warn("Slot inspection rasterization failed", "error", err)
		return "bottom-center", true
	}

	report, err := whitespace.CheckPageNumberSlots(raster, slotBandPoints, 1.0, 0)
	if err != nil {
		t.deps.Logger.Warn("Slot inspection failed", "error", err)
		return "bottom-center", true
	}

	clear := make(map[string]bool, len(report.Regions))
	for _, r := range report.Regions {
		clear[r.Name] = r.Clear
	}
	for _, slot := range autoSlotOrder {
		if clear[slot] {
			return slot, false
		}
	}
	return "bottom-center", true
}
