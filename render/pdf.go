package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/vinayprograms/tasklist/errors"
	"github.com/vinayprograms/tasklist/tasks"
)

// SummaryPDF writes the summary report as a single-column A4 PDF.
func SummaryPDF(w io.Writer, list []tasks.Task, stats tasks.Statistics) error {
	pdf := summaryDocument(list, stats)
	if err := pdf.Output(w); err != nil {
		return errors.Wrap(err, "writing summary pdf")
	}
	return nil
}

// summaryDocument lays out the report. The core fonts are cp1252, so
// task text is translated from UTF-8 before it is placed.
func summaryDocument(list []tasks.Task, stats tasks.Statistics) *gofpdf.Fpdf {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(40, 10, "Task Summary Report")
	pdf.Ln(12)
	pdf.SetFont("Arial", "", 10)

	if len(list) == 0 {
		pdf.MultiCell(0, 6, EmptySummaryMessage, "0", "L", false)
	}
	for i, t := range list {
		line := fmt.Sprintf("%d. [%s] [%s] %s", i+1, t.Status(), strings.ToUpper(string(t.Priority)), t.Text)
		pdf.MultiCell(0, 6, tr(line), "0", "L", false)
		pdf.MultiCell(0, 6, "   Created: "+formatCreated(t.CreatedAt), "0", "L", false)
	}

	pdf.Ln(4)
	pdf.SetFont("Arial", "B", 11)
	pdf.Cell(40, 8, "Statistics")
	pdf.Ln(8)
	pdf.SetFont("Arial", "", 10)
	for _, p := range tasks.Priorities {
		pdf.MultiCell(0, 6, fmt.Sprintf("%s Priority: %d", capitalize(string(p)), stats.PriorityCounts[p]), "0", "L", false)
	}
	pdf.MultiCell(0, 6, fmt.Sprintf("Completion Rate: %d%% (%s)", stats.CompletionRate, Rating(stats.CompletionRate)), "0", "L", false)
	return pdf
}
