// Package pdfreport renders the dashboard report as a PDF document.
package pdfreport

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/jsamuelsen11/referral-pipeline/internal/domain/report"
)

const (
	fontFamily = "Helvetica"
	margin     = 20.0
	rowHeight  = 7.0
)

// MoneyFormatter renders an amount in cents for display.
type MoneyFormatter func(cents int64) string

// Options controls document metadata and formatting.
type Options struct {
	Title       string
	GeneratedAt time.Time
	// Money formats cent amounts. Defaults to "$1234.56".
	Money MoneyFormatter
}

// Renderer writes dashboard PDFs.
type Renderer struct {
	opts Options
}

// New creates a Renderer.
func New(opts Options) *Renderer {
	if opts.Title == "" {
		opts.Title = "Referral Pipeline Dashboard"
	}
	if opts.Money == nil {
		opts.Money = plainMoney
	}
	return &Renderer{opts: opts}
}

// Render writes one page with the summary (optional), the weekly buckets and
// the income series for d.
func (r *Renderer) Render(w io.Writer, d *report.Dashboard, s *report.Summary) error {
	if d == nil {
		return errors.New("pdfreport: dashboard is required")
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(r.opts.Title, false)
	pdf.SetAuthor("referral-pipeline", false)
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(true, margin)
	pdf.AddPage()

	pdf.SetFont(fontFamily, "B", 18)
	pdf.CellFormat(0, 10, r.opts.Title, "", 1, "C", false, 0, "")

	pdf.SetFont(fontFamily, "", 11)
	sub := "Month " + d.Month.String()
	if !r.opts.GeneratedAt.IsZero() {
		sub += "  |  generated " + r.opts.GeneratedAt.UTC().Format(time.RFC3339)
	}
	pdf.CellFormat(0, 7, sub, "", 1, "C", false, 0, "")
	hr(pdf)

	if s != nil {
		sectionTitle(pdf, "Summary")
		kvLine(pdf, "Referral sources", fmt.Sprintf("%d", s.ReferralSourceCount))
		kvLine(pdf, "Clients", fmt.Sprintf("%d", s.ClientCount))
		kvLine(pdf, "Open pipeline value", r.opts.Money(s.OpenClientValueCents))
		hr(pdf)
	}

	sectionTitle(pdf, "Weekly activity")
	widths := []float64{60, 55, 55}
	tableHeader(pdf, widths, "Week", "Signed", "Clients added")
	for _, b := range d.Weekly {
		tableRow(pdf, widths, b.Label, fmt.Sprintf("%d", b.SignedCount), fmt.Sprintf("%d", b.ClientsAddedCount))
	}
	pdf.Ln(4)

	sectionTitle(pdf, "Expected income")
	widths = []float64{60, 110}
	tableHeader(pdf, widths, "Month", "Expected income")
	for _, p := range d.Income {
		tableRow(pdf, widths, p.Month.String(), r.opts.Money(p.ExpectedIncomeCents))
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("pdfreport: writing document: %w", err)
	}
	return nil
}

func sectionTitle(pdf *gofpdf.Fpdf, title string) {
	pdf.Ln(2)
	pdf.SetFont(fontFamily, "B", 13)
	pdf.CellFormat(0, 8, title, "", 1, "L", false, 0, "")
}

func kvLine(pdf *gofpdf.Fpdf, key, value string) {
	pdf.SetFont(fontFamily, "B", 11)
	pdf.CellFormat(60, rowHeight, key+":", "", 0, "L", false, 0, "")
	pdf.SetFont(fontFamily, "", 11)
	pdf.CellFormat(0, rowHeight, value, "", 1, "L", false, 0, "")
}

func tableHeader(pdf *gofpdf.Fpdf, widths []float64, cols ...string) {
	pdf.SetFont(fontFamily, "B", 11)
	pdf.SetFillColor(230, 230, 230)
	for i, c := range cols {
		pdf.CellFormat(widths[i], rowHeight, c, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)
}

func tableRow(pdf *gofpdf.Fpdf, widths []float64, cols ...string) {
	pdf.SetFont(fontFamily, "", 11)
	for i, c := range cols {
		align := "R"
		if i == 0 {
			align = "L"
		}
		pdf.CellFormat(widths[i], rowHeight, c, "1", 0, align, false, 0, "")
	}
	pdf.Ln(-1)
}

func hr(pdf *gofpdf.Fpdf) {
	pdf.Ln(2)
	w, _ := pdf.GetPageSize()
	y := pdf.GetY()
	pdf.SetLineWidth(0.2)
	pdf.Line(margin, y, w-margin, y)
	pdf.Ln(2)
}

func plainMoney(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s$%d.%02d", sign, cents/100, cents%100)
}
