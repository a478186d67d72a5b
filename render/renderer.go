package render

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/jung-kurt/gofpdf/contrib/gofpdi"
	ltpdf "github.com/ledongthuc/pdf"

	"github.com/buildsafe/firecore/autoplan"
)

// Input carries everything one render needs. SourcePDF is the uploaded
// floor-plan document; only its first page is used.
type Input struct {
	Plan      autoplan.Plan
	Building  autoplan.Building
	Floor     autoplan.Floor
	Approval  *autoplan.Approval
	SourcePDF []byte
}

// Renderer produces A3 fire-safety plan drawings. It is stateless; one
// Render call reads its input and returns a byte buffer.
type Renderer struct {
	logger *slog.Logger
	now    func() time.Time
	brand  string
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Renderer) {
		r.logger = logger
	}
}

// WithClock sets the time source used for the drawing date and the PDF
// creation date. Fixing the clock makes output byte-reproducible.
func WithClock(now func() time.Time) Option {
	return func(r *Renderer) {
		r.now = now
	}
}

// WithBranding sets the company name shown in the title block.
func WithBranding(name string) Option {
	return func(r *Renderer) {
		if name != "" {
			r.brand = name
		}
	}
}

// NewRenderer creates a plan renderer.
func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{
		logger: slog.Default(),
		now:    time.Now,
		brand:  defaultBrand,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render produces the final A3 landscape drawing: embedded floor plan
// with symbol and annotation overlay, legend strip, title block and,
// for non-approved plans, a diagonal DRAFT watermark.
//
// A source PDF that cannot be embedded degrades to a placeholder box;
// everything else still renders and the call succeeds.
func (r *Renderer) Render(in Input) ([]byte, error) {
	pdf := gofpdf.New("L", "pt", "A3", "")
	pdf.SetCreationDate(r.now())
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	area := FloorPlanArea()
	embed, embedded := r.embedSourcePage(pdf, in.SourcePDF, area)
	if !embedded {
		r.drawPlaceholder(pdf, area)
		embed = area
	}

	// Border around the floor-plan area.
	pdf.SetDrawColor(60, 60, 60)
	pdf.SetLineWidth(1)
	pdf.Rect(area.X, deviceY(area.Top()), area.W, area.H, "D")

	for _, ps := range in.Plan.Symbols {
		r.drawSymbol(pdf, embed, ps)
	}
	for _, ann := range in.Plan.Annotations {
		drawAnnotation(pdf, embed, ann)
	}

	drawLegend(pdf)
	r.drawTitleBlock(pdf, in)

	// Drawn last so it sits on top, but light enough not to obscure.
	if in.Plan.Status != autoplan.PlanApproved {
		drawDraftWatermark(pdf)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("write plan PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// probeSourcePage validates that src parses as a PDF with at least one
// readable page.
func probeSourcePage(src []byte) error {
	if len(src) == 0 {
		return errors.New("floor plan PDF is empty")
	}
	reader, err := ltpdf.NewReader(bytes.NewReader(src), int64(len(src)))
	if err != nil {
		return fmt.Errorf("open floor plan PDF: %w", err)
	}
	if reader.NumPage() < 1 {
		return errors.New("floor plan PDF has no pages")
	}
	if reader.Page(1).V.IsNull() {
		return errors.New("floor plan PDF page 1 is unreadable")
	}
	return nil
}

// embedSourcePage imports page 1 of the source PDF letterboxed into
// area. Import failures are recovered locally; the caller substitutes a
// placeholder.
func (r *Renderer) embedSourcePage(pdf *gofpdf.Fpdf, src []byte, area Rect) (placed Rect, ok bool) {
	if err := probeSourcePage(src); err != nil {
		r.logger.Warn("Floor plan PDF rejected, rendering placeholder", "error", err)
		return Rect{}, false
	}

	// The importer panics on documents it cannot parse.
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Warn("Floor plan PDF import failed, rendering placeholder", "panic", rec)
			placed, ok = Rect{}, false
		}
	}()

	rs := io.ReadSeeker(bytes.NewReader(src))
	tpl := gofpdi.ImportPageFromStream(pdf, &rs, 1, "/MediaBox")

	srcW, srcH := importedPageSize()
	if srcW <= 0 || srcH <= 0 {
		r.logger.Warn("Floor plan PDF has no usable page size, rendering placeholder")
		return Rect{}, false
	}

	placed = Letterbox(srcW, srcH, area)
	gofpdi.UseImportedTemplate(pdf, tpl, placed.X, deviceY(placed.Top()), placed.W, placed.H)
	return placed, true
}

// importedPageSize reads page 1's box from the last imported document.
func importedPageSize() (w, h float64) {
	sizes := gofpdi.GetPageSizes()
	boxes, found := sizes[1]
	if !found {
		return 0, 0
	}
	if box, found := boxes["/MediaBox"]; found {
		return box["w"], box["h"]
	}
	for _, box := range boxes {
		return box["w"], box["h"]
	}
	return 0, 0
}

// drawPlaceholder fills the floor-plan area with a bordered box and an
// explanatory message, so a degraded render is self-explanatory on the
// page itself.
func (r *Renderer) drawPlaceholder(pdf *gofpdf.Fpdf, area Rect) {
	pdf.SetFillColor(245, 245, 245)
	pdf.SetDrawColor(160, 160, 160)
	pdf.SetLineWidth(1)
	pdf.Rect(area.X, deviceY(area.Top()), area.W, area.H, "FD")

	msg := "Floor plan could not be embedded"
	detail := "The uploaded source PDF was missing or unreadable. Re-upload the floor plan and re-render."

	cx := area.X + area.W/2
	cy := deviceY(area.Y + area.H/2)

	pdf.SetTextColor(120, 120, 120)
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Text(cx-pdf.GetStringWidth(msg)/2, cy-6, msg)
	pdf.SetFont("Helvetica", "", 10)
	pdf.Text(cx-pdf.GetStringWidth(detail)/2, cy+12, detail)
}
