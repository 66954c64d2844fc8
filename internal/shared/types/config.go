package types

// Config represents the application configuration that can be loaded from a file.
type Config struct {
	Profile     string   `json:"profile" yaml:"profile" toml:"profile"`
	Regions     []string `json:"regions" yaml:"regions" toml:"regions"`
	Services    []string `json:"services" yaml:"services" toml:"services"`
	ReportName  string   `json:"report_name" yaml:"report_name" toml:"report_name"`
	ReportType  []string `json:"report_type" yaml:"report_type" toml:"report_type"`
	Dir         string   `json:"dir" yaml:"dir" toml:"dir"`
	Concurrency int      `json:"concurrency" yaml:"concurrency" toml:"concurrency"`
	S3Bucket    string   `json:"s3_bucket" yaml:"s3_bucket" toml:"s3_bucket"`
	S3Prefix    string   `json:"s3_prefix" yaml:"s3_prefix" toml:"s3_prefix"`
}
