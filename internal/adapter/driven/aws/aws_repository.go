package aws

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/amplify"
	"github.com/aws/aws-sdk-go-v2/service/apigateway"
	"github.com/aws/aws-sdk-go-v2/service/apigatewayv2"
	"github.com/aws/aws-sdk-go-v2/service/appsync"
	"github.com/aws/aws-sdk-go-v2/service/cloudfront"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/elasticloadbalancing"
	"github.com/aws/aws-sdk-go-v2/service/elasticloadbalancingv2"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/aws/aws-sdk-go-v2/service/rds"
	"github.com/aws/aws-sdk-go-v2/service/route53"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/aws/smithy-go/logging"
	"github.com/diillson/aws-external-assets-go/internal/domain/repository"
	"github.com/diillson/aws-external-assets-go/internal/shared/types"
)

// globalRegion is the home region of Route 53, CloudFront and STS.
const globalRegion = "us-east-1"

var defaultRegions = []string{"us-east-1", "us-east-2", "us-west-1", "us-west-2", "eu-west-1", "eu-central-1"}

// AWSRepositoryImpl implements AWSRepository with a client cache.
type AWSRepositoryImpl struct {
	logger      logging.Logger
	cfgCache    map[string]aws.Config
	clientCache map[string]interface{}
	mu          sync.Mutex
}

// Option configures an AWSRepositoryImpl.
type Option func(*AWSRepositoryImpl)

// WithSDKLogger routes the SDK's retry and request logging to logger. The logger is only
// attached while the default slog logger has debug enabled.
func WithSDKLogger(logger logging.Logger) Option {
	return func(r *AWSRepositoryImpl) {
		r.logger = logger
	}
}

// NewAWSRepository creates a new AWSRepository.
func NewAWSRepository(opts ...Option) *AWSRepositoryImpl {
	r := &AWSRepositoryImpl{
		cfgCache:    make(map[string]aws.Config),
		clientCache: make(map[string]interface{}),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

var _ repository.AWSRepository = (*AWSRepositoryImpl)(nil)

// getAWSConfig loads the SDK config for profile. An empty profile uses the default
// credential chain (environment, shared files, SSO, instance role).
func (r *AWSRepositoryImpl) getAWSConfig(ctx context.Context, profile string) (aws.Config, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if cfg, ok := r.cfgCache[profile]; ok {
		return cfg, nil
	}

	var loadOpts []func(*config.LoadOptions) error
	if profile != "" {
		loadOpts = append(loadOpts, config.WithSharedConfigProfile(profile))
	}
	loadOpts = append(loadOpts, r.sdkLogOptions(ctx)...)

	cfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("failed to load AWS config for profile %q: %w", profile, err)
	}
	if cfg.Region == "" {
		cfg.Region = globalRegion
	}

	r.cfgCache[profile] = cfg
	return cfg, nil
}

// sdkLogOptions enables SDK retry and request logging in debug runs only.
func (r *AWSRepositoryImpl) sdkLogOptions(ctx context.Context) []func(*config.LoadOptions) error {
	if r.logger == nil || !slog.Default().Enabled(ctx, slog.LevelDebug) {
		return nil
	}
	return []func(*config.LoadOptions) error{
		config.WithLogger(r.logger),
		config.WithClientLogMode(aws.LogRetries | aws.LogRequest),
	}
}

func (r *AWSRepositoryImpl) getServiceClient(ctx context.Context, profile, region, service string) (interface{}, error) {
	cacheKey := fmt.Sprintf("%s-%s-%s", profile, region, service)

	r.mu.Lock()
	if client, ok := r.clientCache[cacheKey]; ok {
		r.mu.Unlock()
		return client, nil
	}
	r.mu.Unlock()

	cfg, err := r.getAWSConfig(ctx, profile)
	if err != nil {
		return nil, err
	}

	regionalCfg := cfg.Copy()
	if region != "" {
		regionalCfg.Region = region
	}

	var client interface{}
	switch service {
	case "sts":
		client = sts.NewFromConfig(regionalCfg)
	case "ec2":
		client = ec2.NewFromConfig(regionalCfg)
	case "route53":
		regionalCfg.Region = globalRegion
		client = route53.NewFromConfig(regionalCfg)
	case "cloudfront":
		regionalCfg.Region = globalRegion
		client = cloudfront.NewFromConfig(regionalCfg)
	case "apigateway":
		client = apigateway.NewFromConfig(regionalCfg)
	case "apigatewayv2":
		client = apigatewayv2.NewFromConfig(regionalCfg)
	case "lambda":
		client = lambda.NewFromConfig(regionalCfg)
	case "appsync":
		client = appsync.NewFromConfig(regionalCfg)
	case "amplify":
		client = amplify.NewFromConfig(regionalCfg)
	case "elb":
		client = elasticloadbalancing.NewFromConfig(regionalCfg)
	case "elbv2":
		client = elasticloadbalancingv2.NewFromConfig(regionalCfg)
	case "rds":
		client = rds.NewFromConfig(regionalCfg)
	case "s3":
		client = s3.NewFromConfig(regionalCfg)
	default:
		return nil, fmt.Errorf("unsupported service: %s", service)
	}

	r.mu.Lock()
	r.clientCache[cacheKey] = client
	r.mu.Unlock()

	return client, nil
}

// CheckCredentials resolves credentials through the configured chain. No service is called.
func (r *AWSRepositoryImpl) CheckCredentials(ctx context.Context, profile string) error {
	cfg, err := r.getAWSConfig(ctx, profile)
	if err != nil {
		return fmt.Errorf("%w: %v", types.ErrNoCredentials, err)
	}
	if cfg.Credentials == nil {
		return types.ErrNoCredentials
	}
	creds, err := cfg.Credentials.Retrieve(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", types.ErrNoCredentials, err)
	}
	if !creds.HasKeys() {
		return types.ErrNoCredentials
	}
	return nil
}

func (r *AWSRepositoryImpl) GetAccountID(ctx context.Context, profile string) (string, error) {
	client, err := clientFor[STSAPI](r, profile, "sts")(ctx, globalRegion)
	if err != nil {
		return "", fmt.Errorf("%w: %v", types.ErrAccountIdentity, err)
	}
	return getAccountID(ctx, client)
}

// STSAPI is the subset of the STS client used to resolve the caller's account.
type STSAPI interface {
	GetCallerIdentity(ctx context.Context, params *sts.GetCallerIdentityInput, optFns ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error)
}

func getAccountID(ctx context.Context, client STSAPI) (string, error) {
	result, err := client.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return "", fmt.Errorf("%w: %v", types.ErrAccountIdentity, err)
	}
	if aws.ToString(result.Account) == "" {
		return "", types.ErrAccountIdentity
	}
	return *result.Account, nil
}

// RegionsAPI is the subset of the EC2 client used for region discovery.
type RegionsAPI interface {
	DescribeRegions(ctx context.Context, params *ec2.DescribeRegionsInput, optFns ...func(*ec2.Options)) (*ec2.DescribeRegionsOutput, error)
}

// GetAccessibleRegions lists the regions enabled for the account. When the lookup fails the
// fixed default list is returned together with the error.
func (r *AWSRepositoryImpl) GetAccessibleRegions(ctx context.Context, profile string) ([]string, error) {
	client, err := clientFor[RegionsAPI](r, profile, "ec2")(ctx, globalRegion)
	if err != nil {
		return defaultRegions, fmt.Errorf("could not create EC2 client to list regions: %w", err)
	}
	return getAccessibleRegions(ctx, client)
}

func getAccessibleRegions(ctx context.Context, client RegionsAPI) ([]string, error) {
	regionsOutput, err := client.DescribeRegions(ctx, &ec2.DescribeRegionsInput{AllRegions: aws.Bool(false)})
	if err != nil {
		return defaultRegions, fmt.Errorf("failed to describe regions: %w", err)
	}

	accessibleRegions := make([]string, 0, len(regionsOutput.Regions))
	for _, region := range regionsOutput.Regions {
		if name := aws.ToString(region.RegionName); name != "" {
			accessibleRegions = append(accessibleRegions, name)
		}
	}
	if len(accessibleRegions) == 0 {
		return defaultRegions, nil
	}
	return accessibleRegions, nil
}

// Collectors returns the fixed list of collectors, one per resource type, in canonical order.
func (r *AWSRepositoryImpl) Collectors(profile string, regions []string) []repository.ResourceCollector {
	return []repository.ResourceCollector{
		NewRoute53Collector(clientFor[Route53API](r, profile, "route53")),
		NewAPIGatewayCollector(regions, clientFor[APIGatewayAPI](r, profile, "apigateway"), clientFor[APIGatewayV2API](r, profile, "apigatewayv2")),
		NewLambdaCollector(regions, clientFor[LambdaAPI](r, profile, "lambda")),
		NewAppSyncCollector(regions, clientFor[AppSyncAPI](r, profile, "appsync")),
		NewCloudFrontCollector(clientFor[CloudFrontAPI](r, profile, "cloudfront")),
		NewAmplifyCollector(regions, clientFor[AmplifyAPI](r, profile, "amplify")),
		NewELBCollector(regions, clientFor[ELBV2API](r, profile, "elbv2"), clientFor[ClassicELBAPI](r, profile, "elb")),
		NewRDSCollector(regions, clientFor[RDSAPI](r, profile, "rds")),
		NewEC2Collector(regions, clientFor[EC2API](r, profile, "ec2")),
	}
}

// S3Client returns the S3 client used for report uploads.
func (r *AWSRepositoryImpl) S3Client(ctx context.Context, profile, region string) (*s3.Client, error) {
	client, err := r.getServiceClient(ctx, profile, region, "s3")
	if err != nil {
		return nil, err
	}
	return client.(*s3.Client), nil
}

// ClientFunc builds (or returns a cached) service client for a region.
type ClientFunc[T any] func(ctx context.Context, region string) (T, error)

func clientFor[T any](r *AWSRepositoryImpl, profile, service string) ClientFunc[T] {
	return func(ctx context.Context, region string) (T, error) {
		var zero T
		client, err := r.getServiceClient(ctx, profile, region, service)
		if err != nil {
			return zero, err
		}
		typed, ok := client.(T)
		if !ok {
			return zero, fmt.Errorf("client for %s has unexpected type %T", service, client)
		}
		return typed, nil
	}
}
