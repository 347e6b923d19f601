package output

import (
	"context"

	"pdf-agent/internal/domain/whitespace"
)

// PDFEngine covers the low-level page mutations. Implementations are thin
// wrappers over a PDF library; all range validation happens in the tools.
type PDFEngine interface {
	PageCount(ctx context.Context, data []byte) (int, error)
	// PageSize returns the width and height of a 1-indexed page in points.
	PageSize(ctx context.Context, data []byte, page int) (width, height float64, err error)
	// ExtractPages copies the 1-indexed inclusive range into a new document.
	ExtractPages(ctx context.Context, data []byte, start, end int) ([]byte, error)
	Merge(ctx context.Context, docs [][]byte) ([]byte, error)
	// Reorder builds a new document from the given 1-indexed page order.
	// Callers must pre-filter out-of-range indices.
	Reorder(ctx context.Context, data []byte, order []int) ([]byte, error)
	Watermark(ctx context.Context, data []byte, opts WatermarkOptions) ([]byte, error)
	AddPageNumbers(ctx context.Context, data []byte, opts PageNumberOptions) ([]byte, error)
	// StampText draws text on one page at an absolute position in points,
	// origin bottom-left.
	StampText(ctx context.Context, data []byte, opts StampOptions) ([]byte, error)
}

type WatermarkOptions struct {
	Text     string
	FontSize int
	Opacity  float64
	Rotation float64
}

// PageNumberOptions positions a "n of N" stamp. Position is one of the
// six canonical slots: bl, bc, br, tl, tc, tr.
type PageNumberOptions struct {
	Position string
	FontSize int
	Format   string
}

type StampOptions struct {
	Text     string
	Page     int
	X        float64
	Y        float64
	FontSize int
}

// Rasterizer renders one 1-indexed page to a grayscale raster at the
// given pixels-per-point scale, and reports the page size in points.
type Rasterizer interface {
	RasterizePage(ctx context.Context, data []byte, page int, scale float64) (*whitespace.Raster, PageGeometry, error)
}

type PageGeometry struct {
	Width  float64
	Height float64
	Scale  float64
}
