package repository

import (
	"github.com/diillson/aws-external-assets-go/internal/domain/entity"
)

// ExportRepository writes a CollectionRun to disk. Every method returns the absolute path of
// the file it produced and never leaves a partial file behind.
type ExportRepository interface {
	ExportToXLSX(run *entity.CollectionRun, reportName, outputDir string) (string, error)
	ExportToCSV(run *entity.CollectionRun, reportName, outputDir string) (string, error)
	ExportToJSON(run *entity.CollectionRun, reportName, outputDir string) (string, error)
	ExportToPDF(run *entity.CollectionRun, reportName, outputDir string) (string, error)
}
