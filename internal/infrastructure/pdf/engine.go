package pdf

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"pdf-agent/internal/application/port/output"
)

var _ output.PDFEngine = (*Engine)(nil)

// Engine implements the page-mutation port on pdfcpu, entirely in memory.
type Engine struct {
	conf *model.Configuration
}

func NewEngine() *Engine {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return &Engine{conf: conf}
}

func (e *Engine) PageCount(_ context.Context, data []byte) (int, error) {
	count, err := api.PageCount(bytes.NewReader(data), e.conf)
	if err != nil {
		return 0, fmt.Errorf("page count: %w", err)
	}
	return count, nil
}

func (e *Engine) PageSize(_ context.Context, data []byte, page int) (float64, float64, error) {
	dims, err := api.PageDims(bytes.NewReader(data), e.conf)
	if err != nil {
		return 0, 0, fmt.Errorf("page dims: %w", err)
	}
	if page < 1 || page > len(dims) {
		return 0, 0, fmt.Errorf("page %d out of range [1,%d]", page, len(dims))
	}
	d := dims[page-1]
	return d.Width, d.Height, nil
}

func (e *Engine) ExtractPages(_ context.Context, data []byte, start, end int) ([]byte, error) {
	var buf bytes.Buffer
	sel := []string{fmt.Sprintf("%d-%d", start, end)}
	if err := api.Trim(bytes.NewReader(data), &buf, sel, e.conf); err != nil {
		return nil, fmt.Errorf("extract pages %d-%d: %w", start, end, err)
	}
	return buf.Bytes(), nil
}

func (e *Engine) Merge(_ context.Context, docs [][]byte) ([]byte, error) {
	readers := make([]io.ReadSeeker, len(docs))
	for i, d := range docs {
		readers[i] = bytes.NewReader(d)
	}
	var buf bytes.Buffer
	if err := api.MergeRaw(readers, &buf, false, e.conf); err != nil {
		return nil, fmt.Errorf("merge %d documents: %w", len(docs), err)
	}
	return buf.Bytes(), nil
}

func (e *Engine) Reorder(_ context.Context, data []byte, order []int) ([]byte, error) {
	sel := make([]string, len(order))
	for i, p := range order {
		sel[i] = fmt.Sprintf("%d", p)
	}
	var buf bytes.Buffer
	if err := api.Collect(bytes.NewReader(data), &buf, sel, e.conf); err != nil {
		return nil, fmt.Errorf("reorder pages: %w", err)
	}
	return buf.Bytes(), nil
}

func (e *Engine) Watermark(_ context.Context, data []byte, opts output.WatermarkOptions) ([]byte, error) {
	fontSize := opts.FontSize
	if fontSize <= 0 {
		fontSize = 48
	}
	opacity := opts.Opacity
	if opacity <= 0 || opacity > 1 {
		opacity = 0.3
	}

	desc := fmt.Sprintf("fontname:Helvetica, points:%d, scalefactor:1 abs, opacity:%.2f, rotation:%.0f, fillcolor:#808080",
		fontSize, opacity, opts.Rotation)
	wm, err := api.TextWatermark(opts.Text, desc, false, false, types.POINTS)
	if err != nil {
		return nil, fmt.Errorf("build watermark: %w", err)
	}

	var buf bytes.Buffer
	if err := api.AddWatermarks(bytes.NewReader(data), &buf, nil, wm, e.conf); err != nil {
		return nil, fmt.Errorf("add watermark: %w", err)
	}
	return buf.Bytes(), nil
}

func (e *Engine) AddPageNumbers(_ context.Context, data []byte, opts output.PageNumberOptions) ([]byte, error) {
	fontSize := opts.FontSize
	if fontSize <= 0 {
		fontSize = 10
	}
	position := opts.Position
	if position == "" {
		position = "bc"
	}
	format := opts.Format
	if format == "" {
		format = "%p of %P"
	}

	desc := fmt.Sprintf("fontname:Helvetica, points:%d, position:%s, offset:0 15, scalefactor:1 abs, opacity:1, rotation:0",
		fontSize, position)
	wm, err := api.TextWatermark(format, desc, true, false, types.POINTS)
	if err != nil {
		return nil, fmt.Errorf("build page number stamp: %w", err)
	}

	var buf bytes.Buffer
	if err := api.AddWatermarks(bytes.NewReader(data), &buf, nil, wm, e.conf); err != nil {
		return nil, fmt.Errorf("add page numbers: %w", err)
	}
	return buf.Bytes(), nil
}

func (e *Engine) StampText(_ context.Context, data []byte, opts output.StampOptions) ([]byte, error) {
	fontSize := opts.FontSize
	if fontSize <= 0 {
		fontSize = 12
	}

	// Anchor bottom-left and push by offset, so X/Y are absolute document
	// coordinates in points.
	desc := fmt.Sprintf("fontname:Helvetica, points:%d, position:bl, offset:%.1f %.1f, scalefactor:1 abs, opacity:1, rotation:0",
		fontSize, opts.X, opts.Y)
	wm, err := api.TextWatermark(opts.Text, desc, true, false, types.POINTS)
	if err != nil {
		return nil, fmt.Errorf("build stamp: %w", err)
	}

	sel := []string{fmt.Sprintf("%d", opts.Page)}
	var buf bytes.Buffer
	if err := api.AddWatermarks(bytes.NewReader(data), &buf, sel, wm, e.conf); err != nil {
		return nil, fmt.Errorf("stamp page %d: %w", opts.Page, err)
	}
	return buf.Bytes(), nil
}
