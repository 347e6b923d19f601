package tool

import (
	"context"
	"encoding/json"
	"fmt"

	"pdf-agent/internal/application/port/output"
	"pdf-agent/internal/domain/entity"
	"pdf-agent/internal/domain/whitespace"
)

var _ output.ToolPort = (*StampText)(nil)

const (
	stampScale       = 2.0
	stampMarginPts   = 36.0
	defaultStampFont = 12
)

type StampText struct {
	deps Deps
}

func NewStampTextTool(deps Deps) *StampText {
	return &StampText{deps: deps}
}

func (t *StampText) Name() entity.ToolName {
	return entity.ToolStampText
}

func (t *StampText) Description() string {
	return "Stamps a short text onto one page, placed in a clear region found by whitespace search. Falls back to the bottom-right corner when no clear region exists."
}

func (t *StampText) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"documentId": map[string]interface{}{
				"type":        "string",
				"description": "Id of the document to stamp.",
			},
			"text": map[string]interface{}{
				"type":        "string",
				"description": "Text to stamp.",
			},
			"page": map[string]interface{}{
				"type":        "integer",
				"description": "1-indexed page to stamp. Default 1.",
			},
			"prefer": map[string]interface{}{
				"type":        "string",
				"description": "Placement preference: bottom-right, bottom-left, top-right, top-left, bottom, top or any. Default bottom-right.",
			},
			"fontSize": map[string]interface{}{
				"type":        "integer",
				"description": "Font size in points. Default 12.",
			},
		},
		"required": []string{"documentId", "text"},
	}
}

type stampInput struct {
	DocumentID string `json:"documentId"`
	Text       string `json:"text"`
	Page       int    `json:"page"`
	Prefer     string `json:"prefer"`
	FontSize   int    `json:"fontSize"`
}

func (t *StampText) Execute(ctx context.Context, tcx *output.ToolContext, input json.RawMessage) (*entity.ToolResult, error) {
	var args stampInput
	if err := json.Unmarshal(input, &args); err != nil {
		return nil, fmt.Errorf("invalid input format: %w", err)
	}
	if args.Text == "" {
		return entity.FailedResult(t.Name(), "stamp text is required"), nil
	}
	if args.Page == 0 {
		args.Page = 1
	}
	if args.Page < 1 {
		return entity.FailedResult(t.Name(), fmt.Sprintf("page must be >= 1, got %d", args.Page)), nil
	}
	fontSize := args.FontSize
	if fontSize <= 0 {
		fontSize = defaultStampFont
	}
	prefer := args.Prefer
	if prefer == "" {
		prefer = string(whitespace.PreferBottomRight)
	}

	doc, data, err := fetchDocument(ctx, t.deps, tcx, args.DocumentID)
	if err != nil {
		return entity.FailedResult(t.Name(), err.Error()), nil
	}

	pageCount, err := t.deps.Engine.PageCount(ctx, data)
	if err != nil {
		return entity.FailedResult(t.Name(), err.Error()), nil
	}
	if args.Page > pageCount {
		return entity.FailedResult(t.Name(), fmt.Sprintf("page %d is beyond the last page (%d)", args.Page, pageCount)), nil
	}

	// Rough text box from the font metrics; Helvetica averages about half
	// the em per glyph.
	boxW := float64(len(args.Text)) * float64(fontSize) * 0.55
	boxH := float64(fontSize) * 1.4

	x, y, degraded := t.placeStamp(ctx, data, args.Page, boxW, boxH, whitespace.ParsePreference(prefer))

	stamped, err := t.deps.Engine.StampText(ctx, data, output.StampOptions{
		Text:     args.Text,
		Page:     args.Page,
		X:        x,
		Y:        y,
		FontSize: fontSize,
	})
	if err != nil {
		return entity.FailedResult(t.Name(), err.Error()), nil
	}

	out, err := saveRevised(ctx, t.deps, tcx, derivedName(doc.Name, "stamped"), stamped, "", t.Name())
	if err != nil {
		return entity.FailedResult(t.Name(), err.Error()), nil
	}

	msg := fmt.Sprintf("stamped %q on page %d of %q at (%.0f, %.0f)", args.Text, args.Page, doc.Name, x, y)
	if degraded {
		msg += " (no clear region found, used the fallback corner)"
	}
	return &entity.ToolResult{
		ToolName:  t.Name(),
		Success:   true,
		Message:   msg,
		Degraded:  degraded,
		Documents: []entity.Document{out},
	}, nil
}

// placeStamp finds a clear spot for the text box. Geometry never fails
// the stamp: every problem degrades to the fixed fallback corner.
func (t *StampText) placeStamp(ctx context.Context, data []byte, page int, boxW, boxH float64, prefer whitespace.Preference) (x, y float64, degraded bool) {
	raster, geom, err := t.deps.Rasterizer.RasterizePage(ctx, data, page, stampScale)
	if err != nil {
		t.deps.Logger.Warn("Stamp placement rasterization failed", "page", page, "error", err)
		return t.fallbackCorner(ctx, data, page, boxW)
	}

	result, err := whitespace.FindClearRegions(raster, geom.Height, whitespace.SearchParams{
		MinWidth:  boxW,
		MinHeight: boxH,
		Margin:    stampMarginPts,
		Scale:     geom.Scale,
		Prefer:    prefer,
	})
	if err != nil || !result.Found {
		if err != nil {
			t.deps.Logger.Warn("Whitespace search failed", "page", page, "error", err)
		}
		return fallbackXY(geom.Width, boxW), stampMarginPts, true
	}

	region := result.Regions[0]
	return region.X, region.Y, false
}

func (t *StampText) fallbackCorner(ctx context.Context, data []byte, page int, boxW float64) (float64, float64, bool) {
	pageW, _, err := t.deps.Engine.PageSize(ctx, data, page)
	if err != nil {
		// US Letter as the last resort.
		pageW = 612
	}
	return fallbackXY(pageW, boxW), stampMarginPts, true
}

// fallbackXY is the fixed bottom-right corner placement: right-aligned
// against the margin, sitting on the bottom margin line.
func fallbackXY(pageW, boxW float64) float64 {
	x := pageW - stampMarginPts - boxW
	if x < stampMarginPts {
		x = stampMarginPts
	}
	return x
}
