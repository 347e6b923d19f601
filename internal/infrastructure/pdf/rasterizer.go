package pdf

import (
	"context"
	"fmt"

	"github.com/disintegration/imaging"
	fitz "github.com/gen2brain/go-fitz"

	"pdf-agent/internal/application/port/output"
	"pdf-agent/internal/domain/whitespace"
)

var _ output.Rasterizer = (*FitzRasterizer)(nil)

// FitzRasterizer renders pages through MuPDF and converts them to the
// grayscale raster the whitespace engine consumes.
type FitzRasterizer struct{}

func NewFitzRasterizer() *FitzRasterizer {
	return &FitzRasterizer{}
}

func (r *FitzRasterizer) RasterizePage(_ context.Context, data []byte, page int, scale float64) (*whitespace.Raster, output.PageGeometry, error) {
	if scale <= 0 {
		return nil, output.PageGeometry{}, fmt.Errorf("scale must be positive, got %v", scale)
	}

	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return nil, output.PageGeometry{}, fmt.Errorf("open pdf: %w", err)
	}
	defer doc.Close()

	if page < 1 || page > doc.NumPage() {
		return nil, output.PageGeometry{}, fmt.Errorf("page %d out of range [1,%d]", page, doc.NumPage())
	}

	// One point is 1/72 inch, so pixels-per-point scale maps to DPI.
	img, err := doc.ImageDPI(page-1, scale*72)
	if err != nil {
		return nil, output.PageGeometry{}, fmt.Errorf("render page %d: %w", page, err)
	}

	gray := imaging.Grayscale(img)
	bounds := gray.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	// Grayscale output still carries four channels; copy one with the
	// source stride handled explicitly.
	pix := make([]uint8, width*height)
	for y := 0; y < height; y++ {
		srcRow := y * gray.Stride
		dstRow := y * width
		for x := 0; x < width; x++ {
			pix[dstRow+x] = gray.Pix[srcRow+x*4]
		}
	}

	raster, err := whitespace.NewRaster(pix, width, height, width)
	if err != nil {
		return nil, output.PageGeometry{}, fmt.Errorf("build raster: %w", err)
	}

	geom := output.PageGeometry{
		Width:  float64(width) / scale,
		Height: float64(height) / scale,
		Scale:  scale,
	}
	return raster, geom, nil
}
