package export

import (
	"bytes"
	"fmt"

	"github.com/diillson/aws-external-assets-go/internal/domain/entity"
	"github.com/jung-kurt/gofpdf"
)

// ExportToPDF renders the summary and every non-empty table as landscape pages.
func (r *ExportRepositoryImpl) ExportToPDF(run *entity.CollectionRun, reportName, outputDir string) (string, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetMargins(10, 10, 10)
	pdf.SetAutoPageBreak(true, 10)

	headerColor := [3]int{40, 40, 40}
	headerTextColor := [3]int{255, 255, 255}
	bodyTextColor := [3]int{50, 50, 50}
	lineColor := [3]int{200, 200, 200}

	pageWidth, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	usable := pageWidth - left - right

	drawTable := func(headers []string, rows [][]string) {
		colWidth := usable / float64(len(headers))

		pdf.SetFont("Arial", "B", 8)
		pdf.SetFillColor(headerColor[0], headerColor[1], headerColor[2])
		pdf.SetTextColor(headerTextColor[0], headerTextColor[1], headerTextColor[2])
		pdf.SetDrawColor(lineColor[0], lineColor[1], lineColor[2])
		for _, h := range headers {
			pdf.CellFormat(colWidth, 7, tr(fitText(pdf, h, colWidth-2)), "1", 0, "L", true, 0, "")
		}
		pdf.Ln(-1)

		pdf.SetFont("Arial", "", 7)
		pdf.SetTextColor(bodyTextColor[0], bodyTextColor[1], bodyTextColor[2])
		for _, row := range rows {
			for _, cell := range row {
				pdf.CellFormat(colWidth, 6, tr(fitText(pdf, cell, colWidth-2)), "1", 0, "L", false, 0, "")
			}
			pdf.Ln(-1)
		}
	}

	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.SetTextColor(0, 0, 0)
	pdf.Cell(0, 10, tr("AWS External Assets Report"))
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, tr(fmt.Sprintf("Account: %s    Generated: %s    Endpoints: %d",
		run.AccountID, run.Timestamp.UTC().Format("2006-01-02 15:04:05 MST"), run.TotalRecords())))
	pdf.Ln(10)
	drawTable([]string{"Resource Type", "Records", "Status"}, summaryRows(run))

	for _, table := range run.NonEmptyTables() {
		pdf.AddPage()
		pdf.SetFont("Arial", "B", 12)
		pdf.SetTextColor(0, 0, 0)
		pdf.Cell(0, 8, tr(table.Type.SheetName()))
		pdf.Ln(9)

		headers := tableHeaders(table)
		rows := make([][]string, 0, table.Len())
		for _, rec := range table.Records {
			rows = append(rows, tableRow(run.AccountID, rec, headers[3:]))
		}
		drawTable(headers, rows)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return "", fmt.Errorf("error rendering PDF: %w", err)
	}
	return writeReport(run, reportName, outputDir, "pdf", buf.Bytes())
}

// fitText truncates s with an ellipsis so it fits into width at the current font.
func fitText(pdf *gofpdf.Fpdf, s string, width float64) string {
	if pdf.GetStringWidth(s) <= width {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && pdf.GetStringWidth(string(runes)+"...") > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "..."
}
