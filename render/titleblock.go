package render

import (
	"encoding/json"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"github.com/buildsafe/firecore/autoplan"
)

// defaultBrand is the title-block branding when none is configured.
const defaultBrand = "BuildSafe"

// statutoryCitation returns the one-line legal citation for the
// building's jurisdiction. Unknown jurisdictions fall back to a generic
// citation.
func statutoryCitation(j autoplan.Jurisdiction) string {
	switch j {
	case autoplan.JurisdictionEngland:
		return "Prepared in accordance with the Regulatory Reform (Fire Safety) Order 2005 and the Building Safety Act 2022"
	case autoplan.JurisdictionScotland:
		return "Prepared in accordance with the Fire (Scotland) Act 2005 and the Fire Safety (Scotland) Regulations 2006"
	case autoplan.JurisdictionWales:
		return "Prepared in accordance with the Regulatory Reform (Fire Safety) Order 2005 as applied in Wales"
	}
	return "Prepared in accordance with applicable national fire safety legislation"
}

// planScale extracts the detected drawing scale from the floor's raw
// analysis document, defaulting to NTS (not to scale).
func planScale(f autoplan.Floor) string {
	if len(f.Analysis) > 0 {
		var doc struct {
			Scale string `json:"scale"`
		}
		if err := json.Unmarshal(f.Analysis, &doc); err == nil && doc.Scale != "" {
			return doc.Scale
		}
	}
	return "NTS"
}

// drawTitleBlock draws the bottom title block: branding, plan facts,
// building safety attributes, the approval box and the statutory
// citation line.
func (r *Renderer) drawTitleBlock(pdf *gofpdf.Fpdf, in Input) {
	area := TitleBlockArea()
	top := deviceY(area.Top())

	pdf.SetDrawColor(60, 60, 60)
	pdf.SetLineWidth(1)
	pdf.Rect(area.X, top, area.W, area.H, "D")

	approvalW := 190.0
	thirdW := (area.W - approvalW) / 3

	// Branding panel.
	pdf.SetTextColor(0, 82, 155)
	pdf.SetFont("Helvetica", "B", 20)
	pdf.Text(area.X+14, top+34, r.brand)
	pdf.SetTextColor(33, 33, 33)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Text(area.X+14, top+56, "FIRE SAFETY PLAN")
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(100, 100, 100)
	pdf.Text(area.X+14, top+72, "AutoPlan technical drawing")

	// Plan facts.
	planFacts := []kv{
		{"Building", in.Building.Name},
		{"Address", in.Building.Address},
		{"Floor", fmt.Sprintf("%s (level %d)", in.Floor.Name, in.Floor.Level)},
		{"Plan ref", in.Plan.Reference},
		{"Version", fmt.Sprintf("v%d", in.Plan.Version)},
		{"Scale", planScale(in.Floor)},
		{"Date", r.now().Format("02 Jan 2006")},
	}
	drawKVColumn(pdf, area.X+thirdW+10, top+16, planFacts)

	// Building safety attributes.
	safetyFacts := []kv{
		{"Jurisdiction", in.Building.Jurisdiction.String()},
		{"Evacuation", in.Building.EvacuationStrategy},
		{"Height", fmt.Sprintf("%.1f m", in.Building.HeightMetres)},
		{"Storeys", fmt.Sprintf("%d", in.Building.Storeys)},
		{"Sprinklers", yesNo(in.Building.HasSprinklers)},
	}
	drawKVColumn(pdf, area.X+2*thirdW+10, top+16, safetyFacts)

	r.drawApprovalBox(pdf, Rect{
		X: area.X + area.W - approvalW,
		Y: area.Y,
		W: approvalW,
		H: area.H,
	}, in.Approval)

	// Statutory citation along the bottom edge.
	pdf.SetTextColor(100, 100, 100)
	pdf.SetFont("Helvetica", "I", 7)
	pdf.Text(area.X+14, top+area.H-8, statutoryCitation(in.Building.Jurisdiction))
}

type kv struct {
	key, value string
}

func drawKVColumn(pdf *gofpdf.Fpdf, x, y float64, facts []kv) {
	const lineH = 13.0
	for i, f := range facts {
		lineY := y + float64(i)*lineH
		pdf.SetTextColor(100, 100, 100)
		pdf.SetFont("Helvetica", "B", 7)
		pdf.Text(x, lineY, f.key)
		pdf.SetTextColor(33, 33, 33)
		pdf.SetFont("Helvetica", "", 8)
		pdf.Text(x+60, lineY, f.value)
	}
}

// drawApprovalBox draws the sign-off panel: green with approver details
// when an approval record exists, red draft notice otherwise. There is
// no third state.
func (r *Renderer) drawApprovalBox(pdf *gofpdf.Fpdf, box Rect, approval *autoplan.Approval) {
	top := deviceY(box.Top())
	inset := 8.0

	if approval != nil {
		pdf.SetDrawColor(0, 128, 64)
		pdf.SetLineWidth(1.5)
		pdf.Rect(box.X+inset, top+inset, box.W-2*inset, box.H-2*inset-14, "D")

		pdf.SetTextColor(0, 128, 64)
		pdf.SetFont("Helvetica", "B", 11)
		pdf.Text(box.X+inset+8, top+inset+18, "APPROVED")
		pdf.SetTextColor(33, 33, 33)
		pdf.SetFont("Helvetica", "B", 8)
		pdf.Text(box.X+inset+8, top+inset+34, approval.ApproverName)
		pdf.SetFont("Helvetica", "", 7)
		pdf.Text(box.X+inset+8, top+inset+46, approval.Qualifications)
		pdf.Text(box.X+inset+8, top+inset+58, approval.Company)
		pdf.Text(box.X+inset+8, top+inset+70, approval.ApprovedAt.Format("02 Jan 2006"))
		return
	}

	pdf.SetDrawColor(196, 30, 30)
	pdf.SetLineWidth(1.5)
	pdf.Rect(box.X+inset, top+inset, box.W-2*inset, box.H-2*inset-14, "D")

	pdf.SetTextColor(196, 30, 30)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.Text(box.X+inset+8, top+inset+18, "DRAFT")
	pdf.SetFont("Helvetica", "B", 8)
	pdf.Text(box.X+inset+8, top+inset+34, "PENDING VALIDATION")
	pdf.SetTextColor(33, 33, 33)
	pdf.SetFont("Helvetica", "", 7)
	pdf.Text(box.X+inset+8, top+inset+48, "Not valid for regulatory submission")
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
