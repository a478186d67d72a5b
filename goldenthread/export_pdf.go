package goldenthread

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

// pdfExporter holds layout state while writing the report.
type pdfExporter struct {
	pdf *gofpdf.Fpdf
}

const (
	reportMargin   = 50.0
	reportLineGap  = 4.0
	footerReserve  = 60.0
	maxSpecsListed = 8
)

// ExportPDF renders the package as a human-readable A4 compliance
// report: cover, contents, compliance summary, then the full product,
// regulation, quotation and audit detail.
func ExportPDF(data *GoldenThreadData, result ValidationResult) ([]byte, error) {
	pdf := gofpdf.New("P", "pt", "A4", "")
	pdf.SetCreationDate(data.GeneratedAt)
	pdf.SetMargins(reportMargin, reportMargin, reportMargin)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AliasNbPages("")

	e := &pdfExporter{pdf: pdf}

	pdf.SetFooterFunc(func() {
		pdf.SetY(-40)
		pdf.SetFont("Helvetica", "", 8)
		pdf.SetTextColor(120, 120, 120)
		pdf.CellFormat(0, 12,
			fmt.Sprintf("BuildSafe Golden Thread    Page %d of {nb}", pdf.PageNo()),
			"", 0, "C", false, 0, "")
	})

	e.cover(data, result)
	e.contents()
	e.complianceSummary(result)
	e.products(data)
	e.regulations(data)
	e.quotations(data)
	e.auditTrail(data)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("write report pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func (e *pdfExporter) cover(data *GoldenThreadData, result ValidationResult) {
	pdf := e.pdf
	pdf.AddPage()

	pdf.SetY(140)
	pdf.SetFont("Helvetica", "B", 26)
	pdf.SetTextColor(20, 20, 20)
	pdf.CellFormat(0, 34, "Golden Thread Compliance Package", "", 1, "C", false, 0, "")

	pdf.Ln(10)
	pdf.SetFont("Helvetica", "", 14)
	pdf.CellFormat(0, 20, data.ProjectName, "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.SetTextColor(90, 90, 90)
	pdf.CellFormat(0, 16, data.PackageReference, "", 1, "C", false, 0, "")
	if data.BuildingReference != "" {
		pdf.CellFormat(0, 16, "Building reference: "+data.BuildingReference, "", 1, "C", false, 0, "")
	}
	pdf.CellFormat(0, 16,
		"Generated "+data.GeneratedAt.UTC().Format("2 January 2006 15:04 UTC"),
		"", 1, "C", false, 0, "")
	pdf.CellFormat(0, 16,
		fmt.Sprintf("%d quotes, %d products, %d regulations, %d files",
			data.Metadata.QuoteCount, data.Metadata.ProductCount,
			data.Metadata.RegulationCount, data.Metadata.TotalFiles),
		"", 1, "C", false, 0, "")

	pdf.Ln(40)
	e.statusLine("Section 88 (design and installation records)", result.Section88Compliant)
	e.statusLine("Section 91 (digital audit trail)", result.Section91Compliant)
	e.statusLine("Traceability chain", result.AuditTrailComplete)

	pdf.Ln(20)
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetTextColor(20, 20, 20)
	pdf.CellFormat(0, 22, fmt.Sprintf("Compliance score: %d / 100", result.Score), "", 1, "C", false, 0, "")
}

func (e *pdfExporter) statusLine(label string, ok bool) {
	pdf := e.pdf
	status := "NON-COMPLIANT"
	if ok {
		status = "COMPLIANT"
		pdf.SetTextColor(0, 130, 60)
	} else {
		pdf.SetTextColor(190, 40, 40)
	}
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 18, label+": "+status, "", 1, "C", false, 0, "")
}

func (e *pdfExporter) contents() {
	pdf := e.pdf
	pdf.AddPage()
	e.heading("Contents")

	pdf.SetFont("Helvetica", "", 11)
	pdf.SetTextColor(40, 40, 40)
	for i, section := range []string{
		"Compliance summary",
		"Products",
		"Regulations",
		"Quotations",
		"Audit trail",
	} {
		pdf.CellFormat(0, 18, fmt.Sprintf("%d.  %s", i+1, section), "", 1, "L", false, 0, "")
	}
}

func (e *pdfExporter) complianceSummary(result ValidationResult) {
	pdf := e.pdf
	pdf.AddPage()
	e.heading("Compliance summary")

	if len(result.Warnings) == 0 {
		pdf.SetFont("Helvetica", "", 11)
		pdf.SetTextColor(0, 130, 60)
		pdf.CellFormat(0, 16, "All checks passed.", "", 1, "L", false, 0, "")
		return
	}

	for _, w := range result.Warnings {
		e.ensureSpace(30)
		switch w.Severity {
		case SeverityError:
			pdf.SetTextColor(190, 40, 40)
		case SeverityWarning:
			pdf.SetTextColor(180, 120, 0)
		default:
			pdf.SetTextColor(90, 90, 90)
		}
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(70, 14, "["+strings.ToUpper(string(w.Severity))+"]", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.SetTextColor(40, 40, 40)
		pdf.MultiCell(0, 14, w.Code+"  "+w.Message, "", "L", false)
		pdf.Ln(reportLineGap)
	}
}

func (e *pdfExporter) products(data *GoldenThreadData) {
	pdf := e.pdf
	pdf.AddPage()
	e.heading("Products")

	if len(data.Products) == 0 {
		e.emptyNote("No products recorded.")
		return
	}

	for _, p := range data.Products {
		e.ensureSpace(120)
		pdf.SetFont("Helvetica", "B", 12)
		pdf.SetTextColor(20, 20, 20)
		pdf.CellFormat(0, 16, p.Name, "", 1, "L", false, 0, "")

		pdf.SetFont("Helvetica", "", 10)
		pdf.SetTextColor(60, 60, 60)
		e.detail("Code", p.Code)
		e.detail("Manufacturer", p.Manufacturer)
		e.detail("Pillar", p.Pillar)

		if len(p.Specifications) > 0 {
			keys := make([]string, 0, len(p.Specifications))
			for k := range p.Specifications {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			listed := keys
			if len(listed) > maxSpecsListed {
				listed = listed[:maxSpecsListed]
			}
			for _, k := range listed {
				e.detail(k, p.Specifications[k])
			}
			if extra := len(keys) - len(listed); extra > 0 {
				e.detail("", fmt.Sprintf("+%d more specifications", extra))
			}
		}
		if len(p.Certifications) > 0 {
			e.detail("Certifications", strings.Join(p.Certifications, "; "))
		}
		for _, link := range p.Regulations {
			e.detail("Regulation", link.Reference+" "+link.Name)
		}
		e.detail("Files", fmt.Sprintf("%d attached", len(p.Files)))
		pdf.Ln(10)
	}
}

func (e *pdfExporter) regulations(data *GoldenThreadData) {
	pdf := e.pdf
	pdf.AddPage()
	e.heading("Regulations")

	if len(data.RegulationsSummary) == 0 {
		e.emptyNote("No regulations linked.")
		return
	}

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(40, 40, 40)
	for _, r := range data.RegulationsSummary {
		e.ensureSpace(24)
		line := fmt.Sprintf("%s  %s (%s)  cited by %d product(s)", r.Reference, r.Name, r.Category, r.ProductCount)
		pdf.MultiCell(0, 14, line, "", "L", false)
		pdf.Ln(2)
	}
}

func (e *pdfExporter) quotations(data *GoldenThreadData) {
	pdf := e.pdf
	pdf.AddPage()
	e.heading("Quotations")

	if len(data.Quotes) == 0 {
		e.emptyNote("No quotations recorded.")
		return
	}

	for _, q := range data.Quotes {
		e.ensureSpace(90)
		pdf.SetFont("Helvetica", "B", 12)
		pdf.SetTextColor(20, 20, 20)
		pdf.CellFormat(0, 16, q.Number, "", 1, "L", false, 0, "")

		pdf.SetFont("Helvetica", "", 10)
		pdf.SetTextColor(60, 60, 60)
		e.detail("Client", q.ClientName)
		e.detail("Status", q.Status)
		e.detail("Total", fmt.Sprintf("%.2f", q.Total))
		e.detail("Created", q.CreatedAt.UTC().Format("2 January 2006"))
		for _, item := range q.LineItems {
			e.ensureSpace(16)
			e.detail("", fmt.Sprintf("%s  x%.0f", item.Description, item.Quantity))
		}
		pdf.Ln(10)
	}
}

func (e *pdfExporter) auditTrail(data *GoldenThreadData) {
	pdf := e.pdf
	pdf.AddPage()
	e.heading("Audit trail")

	if len(data.AuditTrail) == 0 {
		e.emptyNote("No prior package generations.")
		return
	}

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(40, 40, 40)
	for _, entry := range data.AuditTrail {
		e.ensureSpace(20)
		line := fmt.Sprintf("%s  %s  %s",
			entry.Timestamp.UTC().Format("2006-01-02 15:04"), entry.Action, entry.PackageReference)
		if entry.Actor != "" {
			line += "  by " + entry.Actor
		}
		pdf.CellFormat(0, 14, line, "", 1, "L", false, 0, "")
	}
}

func (e *pdfExporter) heading(text string) {
	pdf := e.pdf
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetTextColor(20, 20, 20)
	pdf.CellFormat(0, 24, text, "", 1, "L", false, 0, "")
	pdf.SetLineWidth(0.8)
	pdf.SetDrawColor(180, 180, 180)
	x := pdf.GetX()
	y := pdf.GetY()
	w, _ := pdf.GetPageSize()
	pdf.Line(x, y, w-reportMargin, y)
	pdf.Ln(12)
}

func (e *pdfExporter) detail(label, value string) {
	pdf := e.pdf
	if label != "" {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(110, 14, label, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.MultiCell(0, 14, value, "", "L", false)
		return
	}
	pdf.CellFormat(110, 14, "", "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.MultiCell(0, 14, value, "", "L", false)
}

func (e *pdfExporter) emptyNote(text string) {
	pdf := e.pdf
	pdf.SetFont("Helvetica", "I", 10)
	pdf.SetTextColor(120, 120, 120)
	pdf.CellFormat(0, 14, text, "", 1, "L", false, 0, "")
}

// ensureSpace starts a new page when fewer than need points remain
// above the footer.
func (e *pdfExporter) ensureSpace(need float64) {
	_, h := e.pdf.GetPageSize()
	if e.pdf.GetY()+need > h-footerReserve {
		e.pdf.AddPage()
	}
}
