package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/diillson/aws-external-assets-go/internal/domain/entity"
	"github.com/diillson/aws-external-assets-go/internal/domain/repository"
	"github.com/diillson/aws-external-assets-go/internal/shared/types"
)

// ReportTypes are the supported output formats, xlsx being the default.
var ReportTypes = []string{"xlsx", "csv", "json", "pdf"}

// RunOptions is the resolved configuration of one inventory run.
type RunOptions struct {
	Profile     string
	Regions     []string
	Services    []entity.ResourceType
	ReportName  string
	ReportTypes []string
	Dir         string
	Concurrency int
	S3Bucket    string
	S3Prefix    string
}

// InventoryResult is what a successful run produced.
type InventoryResult struct {
	Run     *entity.CollectionRun
	Reports []string
	Uploads []string
}

// InventoryUseCase sequences credential check, account resolution, collection and export.
type InventoryUseCase struct {
	awsRepo     repository.AWSRepository
	exportRepo  repository.ExportRepository
	configRepo  repository.ConfigRepository
	storageRepo repository.StorageRepository
	console     types.ConsoleInterface
	now         func() time.Time
}

// NewInventoryUseCase creates a new inventory use case.
func NewInventoryUseCase(
	awsRepo repository.AWSRepository,
	exportRepo repository.ExportRepository,
	configRepo repository.ConfigRepository,
	storageRepo repository.StorageRepository,
	console types.ConsoleInterface,
) *InventoryUseCase {
	return &InventoryUseCase{
		awsRepo:     awsRepo,
		exportRepo:  exportRepo,
		configRepo:  configRepo,
		storageRepo: storageRepo,
		console:     console,
		now:         time.Now,
	}
}

// SetClock replaces the time source used to stamp runs.
func (uc *InventoryUseCase) SetClock(now func() time.Time) {
	uc.now = now
}

// RunInventory collects every selected resource type and writes the reports. Only missing
// credentials, an unresolvable account or a failed report write abort the run.
func (uc *InventoryUseCase) RunInventory(ctx context.Context, opts RunOptions) (*InventoryResult, error) {
	reportTypes, err := normalizeReportTypes(opts.ReportTypes)
	if err != nil {
		return nil, err
	}

	status := uc.console.Status("Checking AWS credentials...")
	if err := uc.awsRepo.CheckCredentials(ctx, opts.Profile); err != nil {
		status.Stop()
		return nil, err
	}

	status.Update("Resolving AWS account...")
	accountID, err := uc.awsRepo.GetAccountID(ctx, opts.Profile)
	if err != nil {
		status.Stop()
		if !errors.Is(err, types.ErrAccountIdentity) {
			err = fmt.Errorf("%w: %v", types.ErrAccountIdentity, err)
		}
		return nil, err
	}

	regions := opts.Regions
	if len(regions) == 0 {
		status.Update("Discovering enabled regions...")
		regions, err = uc.awsRepo.GetAccessibleRegions(ctx, opts.Profile)
		if err != nil {
			uc.console.LogWarning("Could not list regions, using defaults: %s", err)
		}
	}
	status.Stop()

	collectors := selectCollectors(uc.awsRepo.Collectors(opts.Profile, regions), opts.Services)
	if len(collectors) == 0 {
		return nil, types.ErrNoServicesSelected
	}

	uc.console.LogInfo("Account %s: scanning %d services across %d regions", accountID, len(collectors), len(regions))

	run := entity.NewCollectionRun(accountID, uc.now())
	run.Profile = opts.Profile
	run.Regions = regions

	status = uc.console.Status("Collecting external endpoints...")
	done := 0
	aggregator := NewAggregator(opts.Concurrency, func(r ServiceResult) {
		done++
		status.Update(fmt.Sprintf("Collected %s (%d/%d)", r.Type, done, len(collectors)))
		if r.Err != nil {
			uc.console.LogError("%s: %s", r.Type, r.Err)
		}
	})
	aggregator.Collect(ctx, run, collectors)
	status.Stop()

	result := &InventoryResult{Run: run}
	for _, reportType := range reportTypes {
		path, err := uc.export(run, reportType, opts.ReportName, opts.Dir)
		if err != nil {
			return result, fmt.Errorf("%w (%s): %v", types.ErrWriteReport, reportType, err)
		}
		result.Reports = append(result.Reports, path)
	}

	uc.console.Println(uc.renderSummary(run))
	for _, path := range result.Reports {
		uc.console.LogSuccess("Data written to %s", path)
	}

	if opts.S3Bucket != "" && uc.storageRepo != nil {
		for _, path := range result.Reports {
			uri, err := uc.storageRepo.UploadReport(ctx, opts.Profile, path, opts.S3Bucket, opts.S3Prefix)
			if err != nil {
				uc.console.LogWarning("Failed to upload report: %s", err)
				continue
			}
			result.Uploads = append(result.Uploads, uri)
			uc.console.LogSuccess("Uploaded report to %s", uri)
		}
	}

	return result, nil
}

func (uc *InventoryUseCase) export(run *entity.CollectionRun, reportType, reportName, dir string) (string, error) {
	switch reportType {
	case "xlsx":
		return uc.exportRepo.ExportToXLSX(run, reportName, dir)
	case "csv":
		return uc.exportRepo.ExportToCSV(run, reportName, dir)
	case "json":
		return uc.exportRepo.ExportToJSON(run, reportName, dir)
	case "pdf":
		return uc.exportRepo.ExportToPDF(run, reportName, dir)
	}
	return "", fmt.Errorf("%w: %s", types.ErrUnsupportedReportType, reportType)
}

func (uc *InventoryUseCase) renderSummary(run *entity.CollectionRun) string {
	table := uc.console.CreateTable()
	table.AddColumn("Resource Type")
	table.AddColumn("Endpoints")
	table.AddColumn("Status")
	for _, t := range entity.AllResourceTypes {
		status := "ok"
		if f, ok := run.Failure(t); ok {
			status = "failed"
			if f.Partial {
				status = "partial"
			}
		}
		table.AddRow(t.SheetName(), run.Table(t).Len(), status)
	}
	return table.Render()
}

// selectCollectors keeps the collectors of the requested types, preserving canonical order.
// An empty selection keeps all of them.
func selectCollectors(all []repository.ResourceCollector, services []entity.ResourceType) []repository.ResourceCollector {
	if len(services) == 0 {
		return all
	}
	wanted := make(map[entity.ResourceType]bool, len(services))
	for _, s := range services {
		wanted[s] = true
	}
	var selected []repository.ResourceCollector
	for _, c := range all {
		if wanted[c.ResourceType()] {
			selected = append(selected, c)
		}
	}
	return selected
}

func normalizeReportTypes(requested []string) ([]string, error) {
	if len(requested) == 0 {
		return []string{"xlsx"}, nil
	}
	seen := make(map[string]bool)
	var out []string
	for _, r := range requested {
		r = strings.ToLower(strings.TrimSpace(r))
		if r == "excel" {
			r = "xlsx"
		}
		if !isReportType(r) {
			return nil, fmt.Errorf("%w: %s", types.ErrUnsupportedReportType, r)
		}
		if !seen[r] {
			seen[r] = true
			out = append(out, r)
		}
	}
	return out, nil
}

func isReportType(r string) bool {
	for _, t := range ReportTypes {
		if t == r {
			return true
		}
	}
	return false
}
