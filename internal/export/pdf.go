// README: Renders a planning result as a printable PDF (trip facts, plan costs, best itinerary, summary).
package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/phpdave11/gofpdf"

	"tripmind/internal/types"
)

// Document is the content of one trip PDF. Plans are expected ranked, cheapest first.
type Document struct {
	Trip     types.ResolvedTrip
	Plans    []types.CostedPlan
	Summary  string
	Currency string
}

// compress is switched off in tests so page text can be inspected.
var compress = true

// PDF lays out doc on A4 pages with the core Helvetica font.
func PDF(doc Document) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetCompression(compress)
	text := printable(pdf.UnicodeTranslatorFromDescriptor(""))

	title := "TripMind " + doc.Trip.City
	pdf.SetTitle(title, true)
	pdf.SetAuthor("TripMind", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, text(fmt.Sprintf("Trip to %s", doc.Trip.Location())))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 7, text(fmt.Sprintf("Days   : %d", doc.Trip.Days)))
	pdf.Ln(7)
	pdf.Cell(0, 7, text("Budget : "+money(doc.Trip.Budget, doc.Currency)))
	pdf.Ln(10)

	if len(doc.Plans) > 0 {
		heading(pdf, "Plans")
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(70, 7, "Plan", "1", 0, "L", false, 0, "")
		pdf.CellFormat(50, 7, "Estimated cost", "1", 0, "R", false, 0, "")
		pdf.CellFormat(40, 7, "Within budget", "1", 1, "C", false, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		for _, p := range doc.Plans {
			within := "no"
			if p.WithinBudget {
				within = "yes"
			}
			pdf.CellFormat(70, 7, text(p.PlanName), "1", 0, "L", false, 0, "")
			pdf.CellFormat(50, 7, text(money(p.EstimatedCost, doc.Currency)), "1", 0, "R", false, 0, "")
			pdf.CellFormat(40, 7, within, "1", 1, "C", false, 0, "")
		}
		pdf.Ln(6)

		best := doc.Plans[0]
		heading(pdf, "Itinerary: "+text(best.PlanName))
		pdf.SetFont("Helvetica", "", 11)
		for _, d := range best.Plan.Daywise {
			line := fmt.Sprintf("Day %d - %s (%s): %s", d.Day, d.Place, money(d.DailyCost, doc.Currency), strings.Join(d.Activities, "; "))
			pdf.MultiCell(0, 6, text(line), "", "", false)
		}
		pdf.Ln(6)
	}

	if strings.TrimSpace(doc.Summary) != "" {
		heading(pdf, "Summary")
		writeMarkdown(pdf, doc.Summary, text)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("export: pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func heading(pdf *gofpdf.Fpdf, s string) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.Cell(0, 8, s)
	pdf.Ln(9)
}

// writeMarkdown prints headings in bold and everything else as wrapped paragraphs.
func writeMarkdown(pdf *gofpdf.Fpdf, md string, text func(string) string) {
	for _, line := range strings.Split(md, "\n") {
		line = strings.TrimRight(line, " \t\r")
		switch {
		case line == "":
			pdf.Ln(3)
		case strings.HasPrefix(line, "#"):
			pdf.SetFont("Helvetica", "B", 12)
			pdf.MultiCell(0, 7, text(strings.TrimSpace(strings.TrimLeft(line, "#"))), "", "", false)
		default:
			pdf.SetFont("Helvetica", "", 11)
			line = strings.ReplaceAll(line, "**", "")
			if strings.HasPrefix(line, "- ") || strings.HasPrefix(line, "* ") {
				line = "• " + line[2:]
			}
			pdf.MultiCell(0, 6, text(line), "", "", false)
		}
	}
}

var rupee = strings.NewReplacer(types.DefaultCurrency, "Rs. ")

// printable spells out the rupee sign before translating to the core font encoding.
func printable(tr func(string) string) func(string) string {
	return func(s string) string { return tr(rupee.Replace(s)) }
}

// money formats amount for the core fonts, which cannot draw the rupee sign.
func money(amount int64, currency string) string {
	if currency == "" || currency == types.DefaultCurrency {
		currency = "Rs. "
	}
	return types.Money{Amount: amount, Currency: currency}.String()
}
