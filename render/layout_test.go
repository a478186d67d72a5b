package render

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFloorPlanArea(t *testing.T) {
	area := FloorPlanArea()

	assert.Equal(t, Margin, area.X)
	assert.Equal(t, Margin+TitleBlockHeight+LegendHeight, area.Y)
	assert.Equal(t, PageWidth-2*Margin, area.W)
	assert.Equal(t, PageHeight-2*Margin-TitleBlockHeight-LegendHeight, area.H)

	// Bands tile the page vertically without overlap.
	assert.Equal(t, TitleBlockArea().Top(), LegendArea().Y)
	assert.Equal(t, LegendArea().Top(), area.Y)
	assert.InDelta(t, PageHeight-Margin, area.Top(), 1e-9)
}

func TestLetterbox_PreservesAspectRatio(t *testing.T) {
	area := FloorPlanArea()

	sources := []struct{ w, h float64 }{
		{595.28, 841.89},  // A4 portrait
		{841.89, 595.28},  // A4 landscape
		{1190.55, 841.89}, // A3 landscape, same aspect as the area region
		{100, 100},        // square
		{2000, 300},       // extreme wide
		{300, 2000},       // extreme tall
	}

	for _, src := range sources {
		placed := Letterbox(src.w, src.h, area)

		// No distortion.
		assert.InDelta(t, src.w/src.h, placed.W/placed.H, 1e-9,
			"aspect ratio for %vx%v", src.w, src.h)

		// Fully contained.
		assert.GreaterOrEqual(t, placed.X, area.X)
		assert.GreaterOrEqual(t, placed.Y, area.Y)
		assert.LessOrEqual(t, placed.X+placed.W, area.X+area.W+1e-9)
		assert.LessOrEqual(t, placed.Top(), area.Top()+1e-9)

		// Centered.
		assert.InDelta(t, placed.X-area.X, (area.X+area.W)-(placed.X+placed.W), 1e-9)
		assert.InDelta(t, placed.Y-area.Y, area.Top()-placed.Top(), 1e-9)

		// The limiting dimension is filled exactly.
		fillsWidth := math.Abs(placed.W-area.W) < 1e-9
		fillsHeight := math.Abs(placed.H-area.H) < 1e-9
		assert.True(t, fillsWidth || fillsHeight)
	}
}

func TestPlanPoint_VerticalFlip(t *testing.T) {
	fp := Rect{X: 100, Y: 200, W: 400, H: 300}

	tests := []struct {
		x, y           float64
		wantX, wantY   float64
	}{
		{0, 0, 100, 500},     // top-left maps to top of rect
		{1, 1, 500, 200},     // bottom-right maps to bottom
		{0.5, 0.5, 300, 350}, // center maps to center
		{0, 1, 100, 200},
		{1, 0, 500, 500},
	}

	for _, tt := range tests {
		gotX, gotY := PlanPoint(fp, tt.x, tt.y)
		assert.InDelta(t, tt.wantX, gotX, 1e-9, "(%v,%v)", tt.x, tt.y)
		assert.InDelta(t, tt.wantY, gotY, 1e-9, "(%v,%v)", tt.x, tt.y)

		// pageY = fpY + (1-y)*fpH holds exactly.
		assert.Equal(t, fp.Y+(1-tt.y)*fp.H, gotY)
	}
}

func TestPlanPoint_CenterOfUnitArea(t *testing.T) {
	// A symbol at (0.5, 0.5) on a 100x100 floor-plan rect at the origin
	// lands at page coordinate (50, 50).
	x, y := PlanPoint(Rect{X: 0, Y: 0, W: 100, H: 100}, 0.5, 0.5)
	assert.Equal(t, 50.0, x)
	assert.Equal(t, 50.0, y)
}

func TestPlanPoint_AlwaysInsideEmbedRect(t *testing.T) {
	fp := Rect{X: 57.3, Y: 212.9, W: 803.1, H: 351.7}
	for _, nx := range []float64{0, 0.25, 0.5, 0.75, 1} {
		for _, ny := range []float64{0, 0.25, 0.5, 0.75, 1} {
			x, y := PlanPoint(fp, nx, ny)
			assert.True(t, fp.Contains(x, y), "(%v,%v) -> (%v,%v)", nx, ny, x, y)
		}
	}
}
