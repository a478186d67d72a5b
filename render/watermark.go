package render

import (
	"github.com/jung-kurt/gofpdf"
)

// drawDraftWatermark stamps a large diagonal DRAFT across the page
// center. Drawn last so nothing covers it, at low alpha so it does not
// obscure the drawing underneath.
func drawDraftWatermark(pdf *gofpdf.Fpdf) {
	const text = "DRAFT"

	cx := PageWidth / 2
	cy := PageHeight / 2

	pdf.SetFont("Helvetica", "B", 160)
	pdf.SetTextColor(196, 30, 30)
	pdf.SetAlpha(0.12, "Normal")

	pdf.TransformBegin()
	pdf.TransformRotate(30, cx, cy)
	pdf.Text(cx-pdf.GetStringWidth(text)/2, cy+56, text)
	pdf.TransformEnd()

	pdf.SetAlpha(1, "Normal")
}
