package whitespace

import (
	"fmt"
	"math"
)

// RegionReport describes one fixed, named region: whether every pixel in
// it is clear, and what fraction is.
type RegionReport struct {
	Name         string  `json:"name"`
	Clear        bool    `json:"clear"`
	ClearPercent float64 `json:"clearPercent"`
}

type AreaReport struct {
	Regions      []RegionReport `json:"regions"`
	ClearPercent float64        `json:"clearPercent"`
}

type fixedRegion struct {
	name       string
	x, y, w, h int
}

// CheckMargins tests the four page-edge bands of the given width (points)
// and reports per-edge clearness plus an aggregate clear percentage.
func CheckMargins(r *Raster, margin, scale float64, threshold uint8) (*AreaReport, error) {
	if r == nil {
		return nil, fmt.Errorf("%w: nil raster", ErrBadRaster)
	}
	if scale <= 0 {
		return nil, fmt.Errorf("whitespace: scale must be positive, got %v", scale)
	}
	m := int(math.Round(margin * scale))
	if m < 1 {
		m = 1
	}
	if m > r.Width {
		m = r.Width
	}
	if m > r.Height {
		m = r.Height
	}

	regions := []fixedRegion{
		{name: "top", x: 0, y: 0, w: r.Width, h: m},
		{name: "bottom", x: 0, y: r.Height - m, w: r.Width, h: m},
		{name: "left", x: 0, y: 0, w: m, h: r.Height},
		{name: "right", x: r.Width - m, y: 0, w: m, h: r.Height},
	}
	return reportRegions(r, regions, threshold), nil
}

// CheckPageNumberSlots tests the six canonical page-number positions:
// thirds of a horizontal band at the top and bottom of the page. band is
// the band height in points.
func CheckPageNumberSlots(r *Raster, band, scale float64, threshold uint8) (*AreaReport, error) {
	if r == nil {
		return nil, fmt.Errorf("%w: nil raster", ErrBadRaster)
	}
	if scale <= 0 {
		return nil, fmt.Errorf("whitespace: scale must be positive, got %v", scale)
	}
	h := int(math.Round(band * scale))
	if h < 1 {
		h = 1
	}
	if h > r.Height {
		h = r.Height
	}
	third := r.Width / 3
	if third < 1 {
		third = 1
	}
	lastW := r.Width - 2*third

	bottom := r.Height - h
	regions := []fixedRegion{
		{name: "top-left", x: 0, y: 0, w: third, h: h},
		{name: "top-center", x: third, y: 0, w: third, h: h},
		{name: "top-right", x: 2 * third, y: 0, w: lastW, h: h},
		{name: "bottom-left", x: 0, y: bottom, w: third, h: h},
		{name: "bottom-center", x: third, y: bottom, w: third, h: h},
		{name: "bottom-right", x: 2 * third, y: bottom, w: lastW, h: h},
	}
	return reportRegions(r, regions, threshold), nil
}

func reportRegions(r *Raster, regions []fixedRegion, threshold uint8) *AreaReport {
	if threshold == 0 {
		threshold = DefaultThreshold
	}
	table := newIntegralTable(r, threshold)

	report := &AreaReport{Regions: make([]RegionReport, 0, len(regions))}
	totalClear, totalPixels := 0, 0
	for _, reg := range regions {
		area := reg.w * reg.h
		clear := table.clearCount(reg.x, reg.y, reg.w, reg.h)
		percent := 0.0
		if area > 0 {
			percent = float64(clear) / float64(area) * 100
		}
		report.Regions = append(report.Regions, RegionReport{
			Name:         reg.name,
			Clear:        area > 0 && clear == area,
			ClearPercent: percent,
		})
		totalClear += clear
		totalPixels += area
	}
	if totalPixels > 0 {
		report.ClearPercent = float64(totalClear) / float64(totalPixels) * 100
	}
	return report
}
