package aws

import (
	"context"
	"errors"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	lambdaTypes "github.com/aws/aws-sdk-go-v2/service/lambda/types"
	"github.com/diillson/aws-external-assets-go/internal/domain/entity"
)

// LambdaAPI is the subset of the Lambda client used by the collector.
type LambdaAPI interface {
	ListFunctions(ctx context.Context, params *lambda.ListFunctionsInput, optFns ...func(*lambda.Options)) (*lambda.ListFunctionsOutput, error)
	GetFunctionUrlConfig(ctx context.Context, params *lambda.GetFunctionUrlConfigInput, optFns ...func(*lambda.Options)) (*lambda.GetFunctionUrlConfigOutput, error)
}

// LambdaFunction is a function together with its URL configuration, if it has one.
type LambdaFunction struct {
	Region    string
	Function  lambdaTypes.FunctionConfiguration
	URLConfig *lambda.GetFunctionUrlConfigOutput
}

func (LambdaFunction) ResourceType() entity.ResourceType { return entity.ResourceTypeLambda }

// LambdaCollector lists functions in every region and resolves their function URLs.
type LambdaCollector struct {
	regions []string
	client  ClientFunc[LambdaAPI]
}

func NewLambdaCollector(regions []string, client ClientFunc[LambdaAPI]) *LambdaCollector {
	return &LambdaCollector{regions: regions, client: client}
}

func (c *LambdaCollector) ResourceType() entity.ResourceType { return entity.ResourceTypeLambda }

func (c *LambdaCollector) Fetch(ctx context.Context) ([]entity.RawRecord, error) {
	return fetchRegions(ctx, c.ResourceType(), c.regions, c.fetchRegion)
}

func (c *LambdaCollector) fetchRegion(ctx context.Context, region string) ([]entity.RawRecord, error) {
	t := c.ResourceType()
	client, err := c.client(ctx, region)
	if err != nil {
		return nil, err
	}

	var records []entity.RawRecord
	var lookupErrs []error
	paginator := lambda.NewListFunctionsPaginator(client, &lambda.ListFunctionsInput{})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return records, errors.Join(append(lookupErrs, callError(t, region, "ListFunctions", err))...)
		}

		for _, fn := range page.Functions {
			raw := LambdaFunction{Region: region, Function: fn}
			name := aws.ToString(fn.FunctionName)
			urlConfig, err := client.GetFunctionUrlConfig(ctx, &lambda.GetFunctionUrlConfigInput{
				FunctionName: fn.FunctionName,
			})
			switch {
			case err == nil:
				raw.URLConfig = urlConfig
			case isNotFound(err):
				// no function URL configured
			default:
				slog.Warn("Error reading function URL", "function", name, "region", region, "error", err)
				lookupErrs = append(lookupErrs, callError(t, region, "GetFunctionUrlConfig "+name, err))
			}
			records = append(records, raw)
		}
	}
	return records, errors.Join(lookupErrs...)
}

// Normalize emits a record only for functions exposed through a function URL.
func (c *LambdaCollector) Normalize(raw entity.RawRecord) ([]entity.ResourceRecord, error) {
	t := c.ResourceType()
	fn, ok := raw.(LambdaFunction)
	if !ok {
		return nil, unexpectedRaw(t, raw)
	}
	if fn.URLConfig == nil {
		return nil, nil
	}

	name := aws.ToString(fn.Function.FunctionName)
	if name == "" {
		return nil, notNormalizable(t, "function without a name")
	}
	url := aws.ToString(fn.URLConfig.FunctionUrl)
	if url == "" {
		return nil, notNormalizable(t, "function URL config without URL for "+name)
	}

	record, err := entity.NewResourceRecord(t, name, url,
		entity.Attribute{Key: "Region", Value: fn.Region},
		entity.Attribute{Key: "Auth Type", Value: string(fn.URLConfig.AuthType)},
	)
	if err != nil {
		return nil, err
	}
	return []entity.ResourceRecord{record}, nil
}
