package export

import (
	"fmt"

	"github.com/diillson/aws-external-assets-go/internal/domain/entity"
	"github.com/xuri/excelize/v2"
)

const summarySheet = "Summary"

// ExportToXLSX writes a workbook with a summary sheet followed by one sheet per non-empty
// resource type, in canonical order.
func (r *ExportRepositoryImpl) ExportToXLSX(run *entity.CollectionRun, reportName, outputDir string) (string, error) {
	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"282828"}, Pattern: 1},
	})
	if err != nil {
		return "", fmt.Errorf("error creating header style: %w", err)
	}

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return "", fmt.Errorf("error naming summary sheet: %w", err)
	}
	summary := [][]string{
		{"Account ID", run.AccountID},
		{"Generated At", run.Timestamp.UTC().Format("2006-01-02 15:04:05 MST")},
		{"Total Endpoints", fmt.Sprint(run.TotalRecords())},
		{},
		{"Resource Type", "Records", "Status"},
	}
	summary = append(summary, summaryRows(run)...)
	if err := writeRows(f, summarySheet, summary); err != nil {
		return "", err
	}
	if err := f.SetRowStyle(summarySheet, 5, 5, headerStyle); err != nil {
		return "", fmt.Errorf("error styling summary sheet: %w", err)
	}

	for _, table := range run.NonEmptyTables() {
		sheet := table.Type.SheetName()
		if _, err := f.NewSheet(sheet); err != nil {
			return "", fmt.Errorf("error creating sheet %q: %w", sheet, err)
		}

		headers := tableHeaders(table)
		extraCols := headers[3:]
		rows := make([][]string, 0, table.Len()+1)
		rows = append(rows, headers)
		for _, rec := range table.Records {
			rows = append(rows, tableRow(run.AccountID, rec, extraCols))
		}
		if err := writeRows(f, sheet, rows); err != nil {
			return "", err
		}
		if err := f.SetRowStyle(sheet, 1, 1, headerStyle); err != nil {
			return "", fmt.Errorf("error styling sheet %q: %w", sheet, err)
		}

		lastCol, err := excelize.ColumnNumberToName(len(headers))
		if err != nil {
			return "", err
		}
		if err := f.SetColWidth(sheet, "A", lastCol, 28); err != nil {
			return "", fmt.Errorf("error sizing sheet %q: %w", sheet, err)
		}
	}

	f.SetActiveSheet(0)
	buf, err := f.WriteToBuffer()
	if err != nil {
		return "", fmt.Errorf("error encoding workbook: %w", err)
	}
	return writeReport(run, reportName, outputDir, "xlsx", buf.Bytes())
}

func writeRows(f *excelize.File, sheet string, rows [][]string) error {
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		values := make([]interface{}, len(row))
		for j, v := range row {
			values[j] = v
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("error writing row %d of sheet %q: %w", i+1, sheet, err)
		}
	}
	return nil
}
