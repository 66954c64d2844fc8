package main

import (
	"context"
	"fmt"
	"os"

	"github.com/diillson/aws-external-assets-go/internal/adapter/driven/aws"
	"github.com/diillson/aws-external-assets-go/internal/adapter/driven/config"
	"github.com/diillson/aws-external-assets-go/internal/adapter/driven/export"
	"github.com/diillson/aws-external-assets-go/internal/adapter/driven/storage"
	"github.com/diillson/aws-external-assets-go/internal/adapter/driving/cli"
	"github.com/diillson/aws-external-assets-go/internal/application/usecase"
	"github.com/diillson/aws-external-assets-go/pkg/console"
	"github.com/diillson/aws-external-assets-go/pkg/logs"
	"github.com/diillson/aws-external-assets-go/pkg/version"
)

func main() {
	// CLI application
	app := cli.NewCLIApp(version.Version)

	// Repositories
	awsRepo := aws.NewAWSRepository(aws.WithSDKLogger(logs.SDKLogger(nil)))
	exportRepo := export.NewExportRepository()
	configRepo := config.NewConfigRepository()
	storageRepo := storage.NewS3Repository(func(ctx context.Context, profile, region string) (storage.S3API, error) {
		client, err := awsRepo.S3Client(ctx, profile, region)
		if err != nil {
			return nil, err
		}
		return client, nil
	})
	consoleImpl := console.NewConsole()

	// Use case
	inventoryUseCase := usecase.NewInventoryUseCase(
		awsRepo,
		exportRepo,
		configRepo,
		storageRepo,
		consoleImpl,
	)

	app.SetInventoryUseCase(inventoryUseCase)

	if err := app.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
