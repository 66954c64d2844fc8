package usecase

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/diillson/aws-external-assets-go/internal/domain/entity"
	"github.com/diillson/aws-external-assets-go/internal/shared/types"
)

// ResolveOptions merges the config file (when given) with the command-line arguments.
// Flags reported by isSet win over file values.
func (uc *InventoryUseCase) ResolveOptions(args *types.CLIArgs, isSet func(flag string) bool) (RunOptions, error) {
	if isSet == nil {
		isSet = func(string) bool { return true }
	}

	merged := *args
	if args.ConfigFile != "" {
		cfg, err := uc.configRepo.LoadConfigFile(args.ConfigFile)
		if err != nil {
			return RunOptions{}, err
		}
		uc.console.LogInfo("Loaded configuration from %s", args.ConfigFile)
		mergeConfig(&merged, cfg, isSet)
	}

	services, err := parseServices(merged.Services)
	if err != nil {
		return RunOptions{}, err
	}
	if _, err := normalizeReportTypes(merged.ReportType); err != nil {
		return RunOptions{}, err
	}

	dir := merged.Dir
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return RunOptions{}, err
		}
		dir = cwd
	} else {
		absDir, err := filepath.Abs(dir)
		if err != nil {
			return RunOptions{}, err
		}
		dir = absDir
	}

	return RunOptions{
		Profile:     merged.Profile,
		Regions:     merged.Regions,
		Services:    services,
		ReportName:  merged.ReportName,
		ReportTypes: merged.ReportType,
		Dir:         dir,
		Concurrency: merged.Concurrency,
		S3Bucket:    merged.S3Bucket,
		S3Prefix:    merged.S3Prefix,
	}, nil
}

func mergeConfig(args *types.CLIArgs, cfg *types.Config, isSet func(string) bool) {
	if !isSet("profile") && cfg.Profile != "" {
		args.Profile = cfg.Profile
	}
	if !isSet("regions") && len(cfg.Regions) > 0 {
		args.Regions = cfg.Regions
	}
	if !isSet("services") && len(cfg.Services) > 0 {
		args.Services = cfg.Services
	}
	if !isSet("report-name") && cfg.ReportName != "" {
		args.ReportName = cfg.ReportName
	}
	if !isSet("report-type") && len(cfg.ReportType) > 0 {
		args.ReportType = cfg.ReportType
	}
	if !isSet("dir") && cfg.Dir != "" {
		args.Dir = cfg.Dir
	}
	if !isSet("concurrency") && cfg.Concurrency > 0 {
		args.Concurrency = cfg.Concurrency
	}
	if !isSet("s3-bucket") && cfg.S3Bucket != "" {
		args.S3Bucket = cfg.S3Bucket
	}
	if !isSet("s3-prefix") && cfg.S3Prefix != "" {
		args.S3Prefix = cfg.S3Prefix
	}
}

func parseServices(names []string) ([]entity.ResourceType, error) {
	var services []entity.ResourceType
	for _, name := range names {
		t, ok := entity.ParseResourceType(name)
		if !ok {
			return nil, fmt.Errorf("%w: %s", types.ErrUnknownService, name)
		}
		services = append(services, t)
	}
	return services, nil
}
