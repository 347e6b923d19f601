package whitespace

import (
	"fmt"
	"math"
	"sort"
)

// Preference biases which clear region wins when several are found.
type Preference string

const (
	PreferBottomRight Preference = "bottom-right"
	PreferBottomLeft  Preference = "bottom-left"
	PreferTopRight    Preference = "top-right"
	PreferTopLeft     Preference = "top-left"
	PreferBottom      Preference = "bottom"
	PreferTop         Preference = "top"
	PreferAny         Preference = "any"
)

// ParsePreference maps free-form input to a known preference, defaulting
// to "any" so model-supplied strings never fail the search.
func ParsePreference(s string) Preference {
	switch Preference(s) {
	case PreferBottomRight, PreferBottomLeft, PreferTopRight, PreferTopLeft, PreferBottom, PreferTop:
		return Preference(s)
	default:
		return PreferAny
	}
}

// SearchParams describe one clear-rectangle query. Physical units are PDF
// points; Scale converts points to raster pixels.
type SearchParams struct {
	MinWidth   float64
	MinHeight  float64
	Margin     float64
	Scale      float64
	Threshold  uint8
	Prefer     Preference
	MaxResults int
}

// Region is a clear rectangle in document coordinates: points, origin
// bottom-left, y growing upward.
type Region struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type SearchResult struct {
	Found   bool     `json:"found"`
	Regions []Region `json:"regions"`
}

type candidate struct {
	x, y  int
	score float64
}

// FindClearRegions scans the raster for axis-aligned rectangles of at
// least the requested size whose every pixel is at or above the brightness
// threshold, ranked by the positional preference. An empty result is a
// normal outcome, never an error. pageHeight (points) anchors the flip
// from raster to document coordinates.
func FindClearRegions(r *Raster, pageHeight float64, p SearchParams) (*SearchResult, error) {
	if r == nil {
		return nil, fmt.Errorf("%w: nil raster", ErrBadRaster)
	}
	if p.Scale <= 0 {
		return nil, fmt.Errorf("whitespace: scale must be positive, got %v", p.Scale)
	}
	if p.MinWidth <= 0 || p.MinHeight <= 0 {
		return nil, fmt.Errorf("whitespace: minimum size must be positive, got %vx%v", p.MinWidth, p.MinHeight)
	}

	threshold := p.Threshold
	if threshold == 0 {
		threshold = DefaultThreshold
	}
	maxResults := p.MaxResults
	if maxResults <= 0 {
		maxResults = 1
	}

	winW := int(math.Ceil(p.MinWidth * p.Scale))
	winH := int(math.Ceil(p.MinHeight * p.Scale))
	margin := int(math.Round(p.Margin * p.Scale))
	if margin < 0 {
		margin = 0
	}

	x0 := margin
	y0 := margin
	xMax := r.Width - margin - winW
	yMax := r.Height - margin - winH
	if winW < 1 || winH < 1 || xMax < x0 || yMax < y0 {
		return &SearchResult{Found: false}, nil
	}

	table := newIntegralTable(r, threshold)

	// Quarter-window stepping: no fully-clear area larger than the window
	// can be skipped entirely, while keeping the scan cheap.
	stepX := winW / 4
	if stepX < 1 {
		stepX = 1
	}
	stepY := winH / 4
	if stepY < 1 {
		stepY = 1
	}

	var candidates []candidate
	for y := y0; y <= yMax; y += stepY {
		for x := x0; x <= xMax; x += stepX {
			if !table.fullyClear(x, y, winW, winH) {
				continue
			}
			nx, ny := 0.0, 0.0
			if xMax > x0 {
				nx = float64(x-x0) / float64(xMax-x0)
			}
			if yMax > y0 {
				ny = float64(y-y0) / float64(yMax-y0)
			}
			candidates = append(candidates, candidate{
				x:     x,
				y:     y,
				score: preferenceScore(p.Prefer, nx, ny),
			})
		}
	}

	if len(candidates) == 0 {
		return &SearchResult{Found: false}, nil
	}

	// Stable: ties keep discovery order.
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})
	if len(candidates) > maxResults {
		candidates = candidates[:maxResults]
	}

	result := &SearchResult{Found: true, Regions: make([]Region, 0, len(candidates))}
	rectW := float64(winW) / p.Scale
	rectH := float64(winH) / p.Scale
	for _, c := range candidates {
		xPts := float64(c.x) / p.Scale
		yPts := float64(c.y) / p.Scale
		result.Regions = append(result.Regions, Region{
			X: xPts,
			// Raster y grows downward, document y grows upward.
			Y:      pageHeight - yPts - rectH,
			Width:  rectW,
			Height: rectH,
		})
	}
	return result, nil
}

// preferenceScore works in raster-normalized coordinates where ny grows
// toward the page bottom.
func preferenceScore(p Preference, nx, ny float64) float64 {
	switch p {
	case PreferBottomRight:
		return nx + ny
	case PreferBottomLeft:
		return (1 - nx) + ny
	case PreferTopRight:
		return nx + (1 - ny)
	case PreferTopLeft:
		return (1 - nx) + (1 - ny)
	case PreferBottom:
		return ny
	case PreferTop:
		return 1 - ny
	default:
		return 0
	}
}
