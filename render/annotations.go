package render

import (
	"fmt"
	"math"

	"github.com/jung-kurt/gofpdf"

	"github.com/buildsafe/firecore/autoplan"
)

// drawAnnotation renders one annotation using the same coordinate
// mapping as symbols.
func drawAnnotation(pdf *gofpdf.Fpdf, fp Rect, ann autoplan.Annotation) {
	switch a := ann.(type) {
	case autoplan.TextAnnotation:
		drawTextAnnotation(pdf, fp, a)
	case autoplan.TravelDistanceAnnotation:
		drawTravelDistance(pdf, fp, a)
	case autoplan.ArrowAnnotation:
		drawArrow(pdf, fp, a)
	case autoplan.ZoneAnnotation:
		drawZone(pdf, fp, a)
	}
}

func drawTextAnnotation(pdf *gofpdf.Fpdf, fp Rect, a autoplan.TextAnnotation) {
	size := a.FontSize
	if size <= 0 {
		size = 9
	}

	x, pageY := PlanPoint(fp, a.X, a.Y)
	pdf.SetTextColor(33, 33, 33)
	pdf.SetFont("Helvetica", "", size)
	pdf.Text(x, deviceY(pageY), a.Text)
}

func drawTravelDistance(pdf *gofpdf.Fpdf, fp Rect, a autoplan.TravelDistanceAnnotation) {
	x1, py1 := PlanPoint(fp, a.X, a.Y)
	x2, py2 := PlanPoint(fp, a.EndX, a.EndY)
	y1, y2 := deviceY(py1), deviceY(py2)

	pdf.SetDrawColor(196, 30, 30)
	pdf.SetLineWidth(1.2)
	pdf.SetDashPattern([]float64{5, 3}, 0)
	pdf.Line(x1, y1, x2, y2)
	pdf.SetDashPattern([]float64{}, 0)

	if a.DistanceMetres != nil {
		label := fmt.Sprintf("%.1f m", *a.DistanceMetres)
		mx := (x1 + x2) / 2
		my := (y1 + y2) / 2
		pdf.SetTextColor(196, 30, 30)
		pdf.SetFont("Helvetica", "B", 9)
		pdf.Text(mx-pdf.GetStringWidth(label)/2, my-4, label)
	}
}

// arrowHeadLength is the arrowhead size in points.
const arrowHeadLength = 9.0

func drawArrow(pdf *gofpdf.Fpdf, fp Rect, a autoplan.ArrowAnnotation) {
	x1, py1 := PlanPoint(fp, a.X, a.Y)
	x2, py2 := PlanPoint(fp, a.EndX, a.EndY)
	y1, y2 := deviceY(py1), deviceY(py2)

	pdf.SetDrawColor(33, 33, 33)
	pdf.SetLineWidth(1.2)
	pdf.Line(x1, y1, x2, y2)

	// Two barbs at 30 degrees off the shaft.
	angle := math.Atan2(y2-y1, x2-x1)
	for _, offset := range []float64{math.Pi * 5 / 6, -math.Pi * 5 / 6} {
		pdf.Line(x2, y2,
			x2+arrowHeadLength*math.Cos(angle+offset),
			y2+arrowHeadLength*math.Sin(angle+offset))
	}
}

func drawZone(pdf *gofpdf.Fpdf, fp Rect, a autoplan.ZoneAnnotation) {
	// (X, Y) is the zone's top-left corner in normalized space.
	x, pageY := PlanPoint(fp, a.X, a.Y)
	w := a.Width * fp.W
	h := a.Height * fp.H

	pdf.SetDrawColor(0, 82, 155)
	pdf.SetLineWidth(1)
	pdf.SetDashPattern([]float64{3, 2}, 0)
	pdf.Rect(x, deviceY(pageY), w, h, "D")
	pdf.SetDashPattern([]float64{}, 0)

	if a.ZoneType != "" {
		pdf.SetTextColor(0, 82, 155)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.Text(x+3, deviceY(pageY)+10, a.ZoneType)
	}
}
