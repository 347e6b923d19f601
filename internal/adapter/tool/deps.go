package tool

import (
	"context"
	"fmt"
	"strings"

	"pdf-agent/internal/application/port/output"
	"pdf-agent/internal/domain/entity"
)

// Deps bundles the collaborators every PDF tool needs.
type Deps struct {
	Engine     output.PDFEngine
	Rasterizer output.Rasterizer
	Storage    output.StoragePort
	Logger     output.LoggerPort
}

// fetchDocument resolves an id against the in-turn view and loads its
// bytes. Unknown ids are caller errors the model can correct.
func fetchDocument(ctx context.Context, deps Deps, tcx *output.ToolContext, id string) (entity.Document, []byte, error) {
	doc, ok := tcx.Documents.Get(id)
	if !ok {
		return entity.Document{}, nil, fmt.Errorf("unknown document id %q", id)
	}
	data, err := deps.Storage.Fetch(ctx, doc.URL)
	if err != nil {
		return entity.Document{}, nil, fmt.Errorf("fetch document %q: %w", id, err)
	}
	return doc, data, nil
}

// saveRevised uploads produced bytes and describes them as a revised
// document so the loop can append it to the in-turn view.
func saveRevised(ctx context.Context, deps Deps, tcx *output.ToolContext, name string, data []byte, pages string, producedBy entity.ToolName) (entity.Document, error) {
	id, url, err := deps.Storage.Upload(ctx, tcx.SessionID, data, "application/pdf")
	if err != nil {
		return entity.Document{}, fmt.Errorf("store %q: %w", name, err)
	}

	pageCount, err := deps.Engine.PageCount(ctx, data)
	if err != nil {
		// The document stored fine; a page count is advisory metadata.
		deps.Logger.Warn("Page count of produced document failed", "name", name, "error", err)
		pageCount = 0
	}

	return entity.Document{
		ID:         id,
		Name:       name,
		URL:        url,
		Kind:       entity.DocumentRevised,
		Pages:      pages,
		PageCount:  pageCount,
		ProducedBy: producedBy,
	}, nil
}

// validatePageRange applies the asymmetric range policy: bad starts are
// caller errors, a too-large end silently clamps to the last page.
func validatePageRange(start, end, pageCount int) (int, error) {
	if start < 1 {
		return 0, fmt.Errorf("page range start must be >= 1, got %d", start)
	}
	if end < start {
		return 0, fmt.Errorf("page range end %d is before start %d", end, start)
	}
	if start > pageCount {
		return 0, fmt.Errorf("page range start %d is beyond the last page (%d)", start, pageCount)
	}
	if end > pageCount {
		end = pageCount
	}
	return end, nil
}

// derivedName builds an output file name from the source name and a
// suffix, e.g. report.pdf + "pages-2-5" -> report-pages-2-5.pdf.
func derivedName(base, suffix string) string {
	trimmed := strings.TrimSuffix(base, ".pdf")
	if trimmed == "" {
		trimmed = "document"
	}
	return fmt.Sprintf("%s-%s.pdf", trimmed, suffix)
}
