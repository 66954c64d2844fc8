package types

// CLIArgs represents the command-line arguments.
type CLIArgs struct {
	ConfigFile  string
	Profile     string
	Regions     []string
	Services    []string
	ReportName  string
	ReportType  []string
	Dir         string
	Concurrency int
	S3Bucket    string
	S3Prefix    string
	Debug       bool
}
