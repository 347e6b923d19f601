package whitespace

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePreference(t *testing.T) {
	assert.Equal(t, PreferBottomRight, ParsePreference("bottom-right"))
	assert.Equal(t, PreferTop, ParsePreference("top"))
	assert.Equal(t, PreferAny, ParsePreference(""))
	assert.Equal(t, PreferAny, ParsePreference("center"))
	assert.Equal(t, PreferAny, ParsePreference("any"))
}

func TestFindClearRegions_AllWhitePrefersBottomRight(t *testing.T) {
	r := newUniformRaster(t, 600, 800, 255)

	result, err := FindClearRegions(r, 800, SearchParams{
		MinWidth:  100,
		MinHeight: 50,
		Margin:    36,
		Scale:     1,
		Prefer:    PreferBottomRight,
	})
	require.NoError(t, err)
	require.True(t, result.Found)
	require.Len(t, result.Regions, 1)

	// Quarter-window steps of 25 and 12 from origin 36 land the winner at
	// raster (461, 708); the y flip puts it at document y 42.
	best := result.Regions[0]
	assert.InDelta(t, 461, best.X, 0.001)
	assert.InDelta(t, 42, best.Y, 0.001)
	assert.InDelta(t, 100, best.Width, 0.001)
	assert.InDelta(t, 50, best.Height, 0.001)
}

func TestFindClearRegions_AllBlackFindsNothing(t *testing.T) {
	r := newUniformRaster(t, 200, 200, 0)

	result, err := FindClearRegions(r, 200, SearchParams{
		MinWidth:  20,
		MinHeight: 20,
		Scale:     1,
	})
	require.NoError(t, err)
	assert.False(t, result.Found)
	assert.Empty(t, result.Regions)
}

func TestFindClearRegions_WindowLargerThanPage(t *testing.T) {
	r := newUniformRaster(t, 100, 100, 255)

	result, err := FindClearRegions(r, 100, SearchParams{
		MinWidth:  200,
		MinHeight: 20,
		Scale:     1,
	})
	require.NoError(t, err)
	assert.False(t, result.Found)
}

func TestFindClearRegions_MarginLeavesNoRoom(t *testing.T) {
	r := newUniformRaster(t, 100, 100, 255)

	result, err := FindClearRegions(r, 100, SearchParams{
		MinWidth:  50,
		MinHeight: 50,
		Margin:    40,
		Scale:     1,
	})
	require.NoError(t, err)
	assert.False(t, result.Found)
}

func TestFindClearRegions_FindsTheOnlyClearBlock(t *testing.T) {
	r := newUniformRaster(t, 200, 200, 0)
	// Clear block in the raster's bottom-right quadrant.
	paintRect(r, 100, 150, 100, 50, 255)

	result, err := FindClearRegions(r, 200, SearchParams{
		MinWidth:  40,
		MinHeight: 20,
		Scale:     1,
	})
	require.NoError(t, err)
	require.True(t, result.Found)

	// First candidate the scan reaches inside the block is (100, 150);
	// document y = 200 - 150 - 20.
	best := result.Regions[0]
	assert.InDelta(t, 100, best.X, 0.001)
	assert.InDelta(t, 30, best.Y, 0.001)
}

func TestFindClearRegions_ScaleConvertsPointsToPixels(t *testing.T) {
	r := newUniformRaster(t, 400, 400, 255)

	// 50x25 points at scale 2 is a 100x50 pixel window on a page that is
	// 200x200 points.
	result, err := FindClearRegions(r, 200, SearchParams{
		MinWidth:  50,
		MinHeight: 25,
		Scale:     2,
		Prefer:    PreferTopLeft,
	})
	require.NoError(t, err)
	require.True(t, result.Found)

	best := result.Regions[0]
	assert.InDelta(t, 0, best.X, 0.001)
	assert.InDelta(t, 175, best.Y, 0.001)
	assert.InDelta(t, 50, best.Width, 0.001)
	assert.InDelta(t, 25, best.Height, 0.001)
}

func TestFindClearRegions_MaxResultsCapsOutput(t *testing.T) {
	r := newUniformRaster(t, 400, 400, 255)

	result, err := FindClearRegions(r, 400, SearchParams{
		MinWidth:   50,
		MinHeight:  50,
		Scale:      1,
		MaxResults: 3,
	})
	require.NoError(t, err)
	require.True(t, result.Found)
	assert.Len(t, result.Regions, 3)
}

func TestFindClearRegions_PreferenceOrdersCandidates(t *testing.T) {
	r := newUniformRaster(t, 300, 300, 255)

	top, err := FindClearRegions(r, 300, SearchParams{
		MinWidth:  50,
		MinHeight: 50,
		Scale:     1,
		Prefer:    PreferTop,
	})
	require.NoError(t, err)

	bottom, err := FindClearRegions(r, 300, SearchParams{
		MinWidth:  50,
		MinHeight: 50,
		Scale:     1,
		Prefer:    PreferBottom,
	})
	require.NoError(t, err)

	// Document y grows upward: the top pick sits above the bottom pick.
	assert.Greater(t, top.Regions[0].Y, bottom.Regions[0].Y)
}

func TestFindClearRegions_InvalidParams(t *testing.T) {
	r := newUniformRaster(t, 100, 100, 255)

	_, err := FindClearRegions(nil, 100, SearchParams{MinWidth: 10, MinHeight: 10, Scale: 1})
	assert.ErrorIs(t, err, ErrBadRaster)

	_, err = FindClearRegions(r, 100, SearchParams{MinWidth: 10, MinHeight: 10, Scale: 0})
	assert.Error(t, err)

	_, err = FindClearRegions(r, 100, SearchParams{MinWidth: 0, MinHeight: 10, Scale: 1})
	assert.Error(t, err)
}
