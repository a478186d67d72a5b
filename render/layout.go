// Package render composites floor-plan PDFs, symbol overlays, legends
// and title blocks into regulator-facing A3 technical drawings.
//
// Geometry inside this package uses PDF page space: origin at the
// bottom-left corner, y increasing upward, units in points. Normalized
// plan coordinates ([0,1], y measured top-down) are converted with a
// vertical flip.
package render

// A3 landscape page dimensions in points.
const (
	PageWidth  = 1190.55
	PageHeight = 841.89
)

// Fixed layout bands.
const (
	// Margin is applied to every page edge.
	Margin = 40.0

	// TitleBlockHeight is the title-block band at the bottom.
	TitleBlockHeight = 120.0

	// LegendHeight is the legend strip above the title block.
	LegendHeight = 50.0
)

// symbolShrink scales every symbol down from its catalog default so
// adjacent symbols do not collide on dense plans.
const symbolShrink = 0.8

// minSymbolFontSize is the smallest label size drawn inside a symbol.
const minSymbolFontSize = 6.0

// Rect is an axis-aligned rectangle in page space; X, Y is the
// bottom-left corner.
type Rect struct {
	X, Y, W, H float64
}

// Contains reports whether the point lies within the rectangle
// (inclusive of edges).
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.W && y >= r.Y && y <= r.Y+r.H
}

// Top returns the y coordinate of the top edge.
func (r Rect) Top() float64 {
	return r.Y + r.H
}

// FloorPlanArea returns the interior rectangle left for the floor plan
// after reserving the margins, title block and legend bands.
func FloorPlanArea() Rect {
	return Rect{
		X: Margin,
		Y: Margin + TitleBlockHeight + LegendHeight,
		W: PageWidth - 2*Margin,
		H: PageHeight - 2*Margin - TitleBlockHeight - LegendHeight,
	}
}

// LegendArea returns the legend strip rectangle.
func LegendArea() Rect {
	return Rect{
		X: Margin,
		Y: Margin + TitleBlockHeight,
		W: PageWidth - 2*Margin,
		H: LegendHeight,
	}
}

// TitleBlockArea returns the title-block rectangle.
func TitleBlockArea() Rect {
	return Rect{
		X: Margin,
		Y: Margin,
		W: PageWidth - 2*Margin,
		H: TitleBlockHeight,
	}
}

// Letterbox computes where a source page of srcW x srcH lands inside
// area: one uniform scale factor fits it entirely within the area
// without distortion, and the scaled page is centered. Aspect ratio is
// preserved exactly.
func Letterbox(srcW, srcH float64, area Rect) Rect {
	scale := area.W / srcW
	if s := area.H / srcH; s < scale {
		scale = s
	}

	w := srcW * scale
	h := srcH * scale
	return Rect{
		X: area.X + (area.W-w)/2,
		Y: area.Y + (area.H-h)/2,
		W: w,
		H: h,
	}
}

// PlanPoint converts a normalized plan coordinate to page space using
// the embedded floor plan's actual placed rectangle. Normalized y is
// measured top-down, page y bottom-up, hence the vertical flip.
func PlanPoint(fp Rect, x, y float64) (pageX, pageY float64) {
	return fp.X + x*fp.W, fp.Y + (1-y)*fp.H
}

// deviceY converts a page-space y coordinate to the top-down device
// space the PDF library draws in.
func deviceY(pageY float64) float64 {
	return PageHeight - pageY
}
