package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"

	"github.com/diillson/aws-external-assets-go/internal/domain/entity"
	"github.com/diillson/aws-external-assets-go/internal/domain/repository"
)

// ExportRepositoryImpl implements ExportRepository.
type ExportRepositoryImpl struct{}

// NewExportRepository creates a new ExportRepository.
func NewExportRepository() repository.ExportRepository {
	return &ExportRepositoryImpl{}
}

// ExportToCSV writes every record of the run into one CSV file with a leading resource type column.
func (r *ExportRepositoryImpl) ExportToCSV(run *entity.CollectionRun, reportName, outputDir string) (string, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	extraCols := allExtraColumns(run)
	headers := append([]string{"Resource Type", "Account ID", "Name", "Endpoint"}, extraCols...)
	if err := writer.Write(headers); err != nil {
		return "", fmt.Errorf("error encoding CSV header: %w", err)
	}

	for _, table := range run.NonEmptyTables() {
		for _, rec := range table.Records {
			row := []string{string(rec.Type), run.AccountID, rec.Name, rec.Endpoint}
			for _, col := range extraCols {
				v, _ := rec.Get(col)
				row = append(row, v)
			}
			if err := writer.Write(row); err != nil {
				return "", fmt.Errorf("error encoding CSV row: %w", err)
			}
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", fmt.Errorf("error encoding CSV data: %w", err)
	}

	return writeReport(run, reportName, outputDir, "csv", buf.Bytes())
}

// ExportToJSON writes the whole run, failures included.
func (r *ExportRepositoryImpl) ExportToJSON(run *entity.CollectionRun, reportName, outputDir string) (string, error) {
	data, err := json.MarshalIndent(run, "", "  ")
	if err != nil {
		return "", fmt.Errorf("error encoding JSON data: %w", err)
	}
	return writeReport(run, reportName, outputDir, "json", append(data, '\n'))
}

// allExtraColumns is the union of the extra columns of all tables, in canonical table order.
func allExtraColumns(run *entity.CollectionRun) []string {
	seen := make(map[string]bool)
	var cols []string
	for _, table := range run.NonEmptyTables() {
		for _, col := range table.ExtraColumns() {
			if !seen[col] {
				seen[col] = true
				cols = append(cols, col)
			}
		}
	}
	return cols
}

// tableHeaders returns the sheet columns of a table: account, name, endpoint, then extras.
func tableHeaders(table *entity.ResourceTable) []string {
	headers := []string{"Account ID", table.Type.NameHeader(), table.Type.EndpointHeader()}
	return append(headers, table.ExtraColumns()...)
}

func tableRow(accountID string, rec entity.ResourceRecord, extraCols []string) []string {
	row := []string{accountID, rec.Name, rec.Endpoint}
	for _, col := range extraCols {
		v, _ := rec.Get(col)
		row = append(row, v)
	}
	return row
}

// summaryRows describes every collected resource type: records found and collection status.
func summaryRows(run *entity.CollectionRun) [][]string {
	rows := make([][]string, 0, len(entity.AllResourceTypes))
	for _, t := range entity.AllResourceTypes {
		status := "OK"
		if f, ok := run.Failure(t); ok {
			status = "Failed: " + f.Reason
			if f.Partial {
				status = "Partial: " + f.Reason
			}
		}
		rows = append(rows, []string{string(t), fmt.Sprint(run.Table(t).Len()), status})
	}
	return rows
}
