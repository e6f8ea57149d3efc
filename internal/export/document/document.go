// Package document renders a proposal snapshot as a paginated A4 PDF.
package document

import (
	"bytes"
	"fmt"

	"proposal-workers/internal/common/errors"
	"proposal-workers/internal/export"
	"proposal-workers/internal/proposal/snapshot"

	"github.com/go-pdf/fpdf"
)

const (
	ContentType = "application/pdf"

	PageWidth  = 210.0
	PageHeight = 297.0
	Margin     = 12.0

	// UsableHeight is what the paginator fills on each page.
	UsableHeight = PageHeight - 2*Margin
	contentWidth = PageWidth - 2*Margin
)

// Block heights in millimetres.
const (
	headerHeight   = 24.0
	clientHeight   = 22.0
	approachHeight = 10.0
	tileRowHeight  = 24.0
	sectionHeight  = 10.0
	categoryHeight = 8.0
	lineHeight     = 6.0
	noteHeight     = 5.0
)

// Notes are printed at the end of every proposal document.
var Notes = []string{
	"All prices are in EUR and exclude VAT (21% in Netherlands)",
	"Timeline estimates assume parallel development tracks and optimal resource allocation",
	"Platform fees (Webflow, Wix, WordPress hosting) are external and billed separately",
	"Payment gateway fees (iDEAL, cards) are transaction-based and external",
	"Marketplace commissions (Uber Eats, Thuisbezorgd) are external and vary by platform",
	"Final Statement of Work (SOW) will follow detailed discovery and requirements analysis",
}

// Filename is restaurant-proposal-<restaurant or client>.pdf.
func Filename(s snapshot.Snapshot) string {
	return fmt.Sprintf("restaurant-proposal-%s.pdf", export.SafeName(s.RestaurantOr(s.Client.Name), export.FallbackFileName))
}

type drawFunc func(pdf *fpdf.Fpdf, tr func(string) string, y float64)

type block struct {
	height float64
	draw   drawFunc
}

// Paginate splits fixed-height blocks into pages of at most usable height,
// keeping their order. A block taller than a page gets a page of its own.
// The result holds block indexes per page.
func Paginate(heights []float64, usable float64) [][]int {
	var pages [][]int
	var current []int
	used := 0.0

	for i, h := range heights {
		if len(current) > 0 && used+h > usable {
			pages = append(pages, current)
			current, used = nil, 0
		}
		current = append(current, i)
		used += h
	}
	if len(current) > 0 {
		pages = append(pages, current)
	}
	return pages
}

// Render draws the snapshot and returns the PDF bytes and page count.
func Render(s snapshot.Snapshot) ([]byte, int, error) {
	blocks := layout(s)
	heights := make([]float64, len(blocks))
	for i, b := range blocks {
		heights[i] = b.height
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(Margin, Margin, Margin)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCreationDate(s.GeneratedAt)
	pdf.SetTitle("Restaurant Digital Presence Proposal", true)
	pdf.SetAuthor("Proposal Workers", true)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pages := Paginate(heights, UsableHeight)
	for _, page := range pages {
		pdf.AddPage()
		y := Margin
		for _, i := range page {
			blocks[i].draw(pdf, tr, y)
			y += blocks[i].height
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, 0, errors.NewExportRenderFailedError("PDF", err)
	}
	return buf.Bytes(), len(pages), nil
}

func layout(s snapshot.Snapshot) []block {
	blocks := []block{
		{headerHeight, drawHeader(s)},
		{clientHeight, drawClient(s)},
		{approachHeight, drawApproach(s)},
		{tileRowHeight, drawTiles([3]tile{
			{"One-time Cost", s.Formatted.OneOffTotal, "Excluding VAT"},
			{"Contingency", s.Formatted.ContingencyAmount, s.Formatted.ContingencyPercentage + " buffer"},
			{"Total Investment", s.Formatted.GrandTotal, "Including contingency"},
		})},
		{tileRowHeight, drawTiles([3]tile{
			{"Recurring Monthly", s.Formatted.RecurringTotal, "Ongoing costs"},
			{"Development Time", s.Formatted.EffortDays, "Effort days"},
			{"Project Timeline", s.Formatted.EstimatedWeeks, deliveryLabel(s.Rush)},
		})},
		{sectionHeight, drawSection("Selected Services Breakdown")},
	}

	if len(s.Groups) == 0 {
		blocks = append(blocks, block{lineHeight, drawText("No services selected.")})
	}
	for _, g := range s.Groups {
		blocks = append(blocks, block{categoryHeight, drawCategory(g.CategoryName)})
		for _, l := range g.Lines {
			blocks = append(blocks, block{lineHeight, drawLine(l)})
		}
	}

	blocks = append(blocks, block{sectionHeight, drawSection("Important Notes")})
	for _, n := range Notes {
		blocks = append(blocks, block{noteHeight, drawText("• " + n)})
	}
	return blocks
}

func deliveryLabel(rush bool) string {
	if rush {
		return "Accelerated delivery"
	}
	return "Standard delivery"
}

func drawHeader(s snapshot.Snapshot) drawFunc {
	return func(pdf *fpdf.Fpdf, tr func(string) string, y float64) {
		pdf.SetFillColor(30, 58, 138)
		pdf.Rect(Margin, y, contentWidth, headerHeight-4, "F")
		pdf.SetTextColor(255, 255, 255)
		pdf.SetFont("Helvetica", "B", 16)
		pdf.SetXY(Margin+5, y+4)
		pdf.CellFormat(contentWidth-10, 8, tr("Restaurant Digital Presence Proposal"), "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 9)
		pdf.SetXY(Margin+5, y+12)
		pdf.CellFormat(contentWidth-10, 6, tr("Generated on "+s.Formatted.GeneratedOn), "", 0, "L", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
	}
}

func drawClient(s snapshot.Snapshot) drawFunc {
	rows := [][2]string{
		{"Client", s.ClientOr(export.FallbackNA)},
		{"Restaurant", s.RestaurantOr(export.FallbackNA)},
		{"Email", orNA(s.Client.Email)},
	}
	return func(pdf *fpdf.Fpdf, tr func(string) string, y float64) {
		for i, r := range rows {
			pdf.SetXY(Margin, y+float64(i)*7)
			pdf.SetFont("Helvetica", "B", 10)
			pdf.CellFormat(30, 7, tr(r[0]+":"), "", 0, "L", false, 0, "")
			pdf.SetFont("Helvetica", "", 10)
			pdf.CellFormat(contentWidth-30, 7, tr(r[1]), "", 0, "L", false, 0, "")
		}
	}
}

func drawApproach(s snapshot.Snapshot) drawFunc {
	return func(pdf *fpdf.Fpdf, tr func(string) string, y float64) {
		pdf.SetXY(Margin, y+1)
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(contentWidth, 8, tr("Development Approach: "+s.ApproachLabel), "", 0, "L", false, 0, "")
	}
}

type tile struct {
	title, value, caption string
}

func drawTiles(tiles [3]tile) drawFunc {
	const gap = 4.0
	w := (contentWidth - 2*gap) / 3
	return func(pdf *fpdf.Fpdf, tr func(string) string, y float64) {
		for i, t := range tiles {
			x := Margin + float64(i)*(w+gap)
			pdf.SetFillColor(241, 245, 249)
			pdf.Rect(x, y, w, tileRowHeight-4, "F")

			pdf.SetXY(x+3, y+2)
			pdf.SetFont("Helvetica", "", 8)
			pdf.CellFormat(w-6, 5, tr(t.title), "", 0, "L", false, 0, "")
			pdf.SetXY(x+3, y+7)
			pdf.SetFont("Helvetica", "B", 14)
			pdf.CellFormat(w-6, 8, tr(t.value), "", 0, "L", false, 0, "")
			pdf.SetXY(x+3, y+14)
			pdf.SetFont("Helvetica", "", 7)
			pdf.CellFormat(w-6, 5, tr(t.caption), "", 0, "L", false, 0, "")
		}
	}
}

func drawSection(title string) drawFunc {
	return func(pdf *fpdf.Fpdf, tr func(string) string, y float64) {
		pdf.SetXY(Margin, y+2)
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(contentWidth, 7, tr(title), "B", 0, "L", false, 0, "")
	}
}

func drawCategory(name string) drawFunc {
	return func(pdf *fpdf.Fpdf, tr func(string) string, y float64) {
		pdf.SetXY(Margin, y+2)
		pdf.SetFont("Helvetica", "B", 10)
		pdf.SetTextColor(30, 58, 138)
		pdf.CellFormat(contentWidth, 6, tr(name), "", 0, "L", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
	}
}

func drawLine(l snapshot.Line) drawFunc {
	days := l.FormattedDays
	if l.Recurring {
		days = ""
	}
	return func(pdf *fpdf.Fpdf, tr func(string) string, y float64) {
		pdf.SetXY(Margin+4, y)
		pdf.SetFont("Helvetica", "", 9)
		pdf.CellFormat(contentWidth-64, lineHeight, tr(l.Label), "", 0, "L", false, 0, "")
		pdf.CellFormat(35, lineHeight, tr(l.FormattedAmount), "", 0, "R", false, 0, "")
		pdf.CellFormat(25, lineHeight, tr(days), "", 0, "R", false, 0, "")
	}
}

func drawText(text string) drawFunc {
	return func(pdf *fpdf.Fpdf, tr func(string) string, y float64) {
		pdf.SetXY(Margin, y)
		pdf.SetFont("Helvetica", "", 8)
		pdf.CellFormat(contentWidth, noteHeight, tr(text), "", 0, "L", false, 0, "")
	}
}

func orNA(v string) string {
	if v == "" {
		return export.FallbackNA
	}
	return v
}
