package render

import (
	"github.com/jung-kurt/gofpdf"

	"github.com/buildsafe/firecore/autoplan"
	"github.com/buildsafe/firecore/symbol"
)

// pointSymbols render as filled circles; everything else renders as a
// rounded rectangle.
var pointSymbols = map[string]bool{
	"smoke_detector":   true,
	"heat_detector":    true,
	"dry_riser_inlet":  true,
	"dry_riser_outlet": true,
	"assembly_point":   true,
}

// drawSymbol renders one placed symbol onto the embedded floor plan.
// An unresolvable symbol ID is skipped silently; stale IDs on old plan
// versions must not break rendering.
func (r *Renderer) drawSymbol(pdf *gofpdf.Fpdf, fp Rect, ps autoplan.PlacedSymbol) {
	def, ok := symbol.Get(ps.SymbolID)
	if !ok {
		r.logger.Debug("Skipping unresolvable symbol", "symbol_id", ps.SymbolID, "instance", ps.ID)
		return
	}

	scale := ps.Scale
	if scale <= 0 {
		scale = 1
	}

	cx, pageY := PlanPoint(fp, ps.X, ps.Y)
	cy := deviceY(pageY)
	w := def.DefaultWidth * scale * symbolShrink
	h := def.DefaultHeight * scale * symbolShrink

	if ps.Rotation != 0 {
		pdf.TransformBegin()
		// TransformRotate is counterclockwise; plan rotation is clockwise.
		pdf.TransformRotate(-ps.Rotation, cx, cy)
		defer pdf.TransformEnd()
	}

	pdf.SetFillColor(int(def.Background.R), int(def.Background.G), int(def.Background.B))
	pdf.SetDrawColor(int(def.Background.R), int(def.Background.G), int(def.Background.B))

	if pointSymbols[def.ID] {
		radius := w
		if h > w {
			radius = h
		}
		pdf.Circle(cx, cy, radius/2, "F")
	} else {
		pdf.RoundedRect(cx-w/2, cy-h/2, w, h, 3, "1234", "F")
	}

	label := ps.Label
	if label == "" {
		label = def.ShortLabel
	}

	fontSize := 8 * scale
	if fontSize < minSymbolFontSize {
		fontSize = minSymbolFontSize
	}

	pdf.SetTextColor(int(def.Foreground.R), int(def.Foreground.G), int(def.Foreground.B))
	pdf.SetFont("Helvetica", "B", fontSize)
	pdf.Text(cx-pdf.GetStringWidth(label)/2, cy+fontSize*0.35, label)
}
