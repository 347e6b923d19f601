package whitespace

import (
	"errors"
	"fmt"
)

// DefaultThreshold is the minimum 8-bit brightness a pixel needs to count
// as clear.
const DefaultThreshold uint8 = 250

var ErrBadRaster = errors.New("whitespace: bad raster")

// Raster is an 8-bit grayscale page rendering, origin top-left, y growing
// downward. Stride is explicit so callers cannot silently hand over a
// packed RGB or padded buffer and have it misread.
type Raster struct {
	Pix    []uint8
	Width  int
	Height int
	Stride int
}

func NewRaster(pix []uint8, width, height, stride int) (*Raster, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: dimensions %dx%d", ErrBadRaster, width, height)
	}
	if stride < width {
		return nil, fmt.Errorf("%w: stride %d < width %d", ErrBadRaster, stride, width)
	}
	if need := stride*(height-1) + width; len(pix) < need {
		return nil, fmt.Errorf("%w: buffer %d < required %d", ErrBadRaster, len(pix), need)
	}
	return &Raster{Pix: pix, Width: width, Height: height, Stride: stride}, nil
}

func (r *Raster) at(x, y int) uint8 {
	return r.Pix[y*r.Stride+x]
}

// integralTable holds a 2-D prefix sum over the binary clear mask, so any
// rectangle's clear-pixel count is four lookups.
type integralTable struct {
	width  int
	height int
	sum    []int
}

func newIntegralTable(r *Raster, threshold uint8) *integralTable {
	t := &integralTable{
		width:  r.Width,
		height: r.Height,
		sum:    make([]int, (r.Width+1)*(r.Height+1)),
	}
	for y := 0; y < r.Height; y++ {
		row := (y + 1) * (t.width + 1)
		prev := y * (t.width + 1)
		rowSum := 0
		for x := 0; x < r.Width; x++ {
			if r.at(x, y) >= threshold {
				rowSum++
			}
			t.sum[row+x+1] = t.sum[prev+x+1] + rowSum
		}
	}
	return t
}

func (t *integralTable) clearCount(x, y, w, h int) int {
	s := t.width + 1
	return t.sum[(y+h)*s+x+w] - t.sum[y*s+x+w] - t.sum[(y+h)*s+x] + t.sum[y*s+x]
}

func (t *integralTable) fullyClear(x, y, w, h int) bool {
	return t.clearCount(x, y, w, h) == w*h
}
