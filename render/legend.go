package render

import (
	"github.com/jung-kurt/gofpdf"

	"github.com/buildsafe/firecore/symbol"
)

// legendEntry is one cell of the legend strip.
type legendEntry struct {
	symbolID    string
	label       string
	description string
}

// legendEntries is the static legend content: a fixed row of
// representative symbol types. It is not derived from the symbols
// actually placed on the plan.
var legendEntries = [8]legendEntry{
	{"fire_exit", "Fire Exit", "Designated escape exit"},
	{"fire_door_30", "Fire Door FD30", "30 min fire resisting door"},
	{"smoke_detector", "Smoke Detector", "Automatic smoke detection"},
	{"fire_alarm_call_point", "Call Point", "Manual alarm call point"},
	{"fire_extinguisher", "Extinguisher", "Portable extinguisher"},
	{"dry_riser_outlet", "Dry Riser", "Firefighting main outlet"},
	{"sprinkler_head", "Sprinkler", "Automatic suppression"},
	{"emergency_light", "Emergency Light", "Escape route lighting"},
}

// drawLegend draws the static legend strip between the floor-plan area
// and the title block.
func drawLegend(pdf *gofpdf.Fpdf) {
	area := LegendArea()
	top := deviceY(area.Top())

	pdf.SetDrawColor(60, 60, 60)
	pdf.SetLineWidth(0.8)
	pdf.Rect(area.X, top, area.W, area.H, "D")

	cellW := area.W / float64(len(legendEntries))
	glyphSize := 14.0

	for i, entry := range legendEntries {
		cellX := area.X + float64(i)*cellW
		glyphX := cellX + 8
		glyphY := top + area.H/2 - glyphSize/2

		if def, ok := symbol.Get(entry.symbolID); ok {
			pdf.SetFillColor(int(def.Background.R), int(def.Background.G), int(def.Background.B))
			if pointSymbols[def.ID] {
				pdf.Circle(glyphX+glyphSize/2, glyphY+glyphSize/2, glyphSize/2, "F")
			} else {
				pdf.RoundedRect(glyphX, glyphY, glyphSize, glyphSize, 2, "1234", "F")
			}
		}

		textX := glyphX + glyphSize + 5
		pdf.SetTextColor(33, 33, 33)
		pdf.SetFont("Helvetica", "B", 7)
		pdf.Text(textX, top+area.H/2-2, entry.label)
		pdf.SetFont("Helvetica", "", 6)
		pdf.SetTextColor(100, 100, 100)
		pdf.Text(textX, top+area.H/2+7, entry.description)
	}
}
