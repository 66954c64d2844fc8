package cli

import (
	"context"
	"os"

	"github.com/diillson/aws-external-assets-go/internal/adapter/driven/config"
	"github.com/diillson/aws-external-assets-go/internal/application/usecase"
	"github.com/diillson/aws-external-assets-go/internal/shared/types"
	"github.com/diillson/aws-external-assets-go/pkg/logs"
	"github.com/diillson/aws-external-assets-go/pkg/version"
	"github.com/spf13/cobra"
)

// CLIApp represents the command-line interface application.
type CLIApp struct {
	rootCmd          *cobra.Command
	inventoryUseCase *usecase.InventoryUseCase
	version          string
	quiet            bool
}

// NewCLIApp creates a new CLI application.
func NewCLIApp(versionStr string) *CLIApp {
	app := &CLIApp{
		version: versionStr,
	}

	rootCmd := &cobra.Command{
		Use:   "aws-external-assets",
		Short: "Inventory the externally reachable endpoints of an AWS account",
		Long: `Enumerates Route 53 records, API Gateway stages, Lambda function URLs, AppSync APIs,
CloudFront distributions, Amplify branches, load balancers, RDS instances and public EC2
instances, and writes them into a spreadsheet named after the account and the time of the run.`,
		Version:       version.FormatVersion(),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          app.runCommand,
	}

	rootCmd.SetVersionTemplate(`{{printf "aws-external-assets version: %s\n" .Version}}`)

	rootCmd.PersistentFlags().StringP("config-file", "C", "", "Path to a TOML, YAML, or JSON configuration file")
	rootCmd.PersistentFlags().StringP("profile", "p", "", "AWS profile to use (default: the standard credential chain)")
	rootCmd.PersistentFlags().StringSliceP("regions", "r", nil, "AWS regions to scan (comma-separated, default: all enabled regions)")
	rootCmd.PersistentFlags().StringSliceP("services", "s", nil, "Resource types to collect: dns, apigateway, lambda, appsync, cloudfront, amplify, elb, rds, ec2")
	rootCmd.PersistentFlags().StringP("report-name", "n", "", "Prefix for the report file name (the account ID and timestamp are always included)")
	rootCmd.PersistentFlags().StringSliceP("report-type", "y", []string{"xlsx"}, "Specify report types: xlsx, csv, json, pdf")
	rootCmd.PersistentFlags().StringP("dir", "d", "", "Directory to save the report files (default: current directory)")
	rootCmd.PersistentFlags().IntP("concurrency", "j", usecase.DefaultConcurrency, "Number of services collected in parallel (1 = sequential)")
	rootCmd.PersistentFlags().String("s3-bucket", "", "Upload the written reports to this S3 bucket")
	rootCmd.PersistentFlags().String("s3-prefix", "", "Key prefix for uploaded reports")
	rootCmd.PersistentFlags().Bool("debug", false, "Print diagnostic logs, including AWS SDK retries and requests")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "Do not print the banner")

	app.rootCmd = rootCmd
	return app
}

// Execute runs the CLI application.
func (app *CLIApp) Execute() error {
	return app.rootCmd.Execute()
}

// parseArgs parses command-line arguments into a CLIArgs struct.
func (app *CLIApp) parseArgs() *types.CLIArgs {
	flags := app.rootCmd.Flags()
	configFile, _ := flags.GetString("config-file")
	profile, _ := flags.GetString("profile")
	regions, _ := flags.GetStringSlice("regions")
	services, _ := flags.GetStringSlice("services")
	reportName, _ := flags.GetString("report-name")
	reportType, _ := flags.GetStringSlice("report-type")
	dir, _ := flags.GetString("dir")
	concurrency, _ := flags.GetInt("concurrency")
	s3Bucket, _ := flags.GetString("s3-bucket")
	s3Prefix, _ := flags.GetString("s3-prefix")
	debug, _ := flags.GetBool("debug")
	app.quiet, _ = flags.GetBool("quiet")

	if configFile == "" {
		if cwd, err := os.Getwd(); err == nil {
			configFile = config.FindDefaultConfig(cwd)
		}
	}

	return &types.CLIArgs{
		ConfigFile:  configFile,
		Profile:     profile,
		Regions:     regions,
		Services:    services,
		ReportName:  reportName,
		ReportType:  reportType,
		Dir:         dir,
		Concurrency: concurrency,
		S3Bucket:    s3Bucket,
		S3Prefix:    s3Prefix,
		Debug:       debug,
	}
}

// runCommand is the main entry point of the root command.
func (app *CLIApp) runCommand(cmd *cobra.Command, args []string) error {
	cliArgs := app.parseArgs()
	logs.Setup(cliArgs.Debug)

	if !app.quiet {
		displayWelcomeBanner()
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	go version.CheckLatestVersion(ctx, app.version)

	opts, err := app.inventoryUseCase.ResolveOptions(cliArgs, cmd.Flags().Changed)
	if err != nil {
		return err
	}

	_, err = app.inventoryUseCase.RunInventory(ctx, opts)
	return err
}

// SetInventoryUseCase sets the inventory use case for the CLI app.
func (app *CLIApp) SetInventoryUseCase(useCase *usecase.InventoryUseCase) {
	app.inventoryUseCase = useCase
}

// SetArgs overrides the arguments parsed by Execute.
func (app *CLIApp) SetArgs(args []string) {
	app.rootCmd.SetArgs(args)
}
