package aws

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/apigateway"
	apigwTypes "github.com/aws/aws-sdk-go-v2/service/apigateway/types"
	"github.com/aws/aws-sdk-go-v2/service/apigatewayv2"
	apigwv2Types "github.com/aws/aws-sdk-go-v2/service/apigatewayv2/types"
	"github.com/diillson/aws-external-assets-go/internal/domain/entity"
)

// APIGatewayAPI is the subset of the API Gateway (REST) client used by the collector.
type APIGatewayAPI interface {
	GetRestApis(ctx context.Context, params *apigateway.GetRestApisInput, optFns ...func(*apigateway.Options)) (*apigateway.GetRestApisOutput, error)
	GetStages(ctx context.Context, params *apigateway.GetStagesInput, optFns ...func(*apigateway.Options)) (*apigateway.GetStagesOutput, error)
}

// APIGatewayV2API is the subset of the API Gateway v2 (HTTP/WebSocket) client used by the collector.
type APIGatewayV2API interface {
	GetApis(ctx context.Context, params *apigatewayv2.GetApisInput, optFns ...func(*apigatewayv2.Options)) (*apigatewayv2.GetApisOutput, error)
	GetStages(ctx context.Context, params *apigatewayv2.GetStagesInput, optFns ...func(*apigatewayv2.Options)) (*apigatewayv2.GetStagesOutput, error)
}

// RestAPIStage is one deployed stage of a REST API.
type RestAPIStage struct {
	Region string
	API    apigwTypes.RestApi
	Stage  apigwTypes.Stage
}

func (RestAPIStage) ResourceType() entity.ResourceType { return entity.ResourceTypeAPIGateway }

// HTTPAPIStage is one stage of an HTTP or WebSocket API.
type HTTPAPIStage struct {
	Region string
	API    apigwv2Types.Api
	Stage  apigwv2Types.Stage
}

func (HTTPAPIStage) ResourceType() entity.ResourceType { return entity.ResourceTypeAPIGateway }

// APIGatewayCollector lists REST, HTTP and WebSocket API stages in every region.
type APIGatewayCollector struct {
	regions  []string
	client   ClientFunc[APIGatewayAPI]
	v2Client ClientFunc[APIGatewayV2API]
}

func NewAPIGatewayCollector(regions []string, client ClientFunc[APIGatewayAPI], v2Client ClientFunc[APIGatewayV2API]) *APIGatewayCollector {
	return &APIGatewayCollector{regions: regions, client: client, v2Client: v2Client}
}

func (c *APIGatewayCollector) ResourceType() entity.ResourceType {
	return entity.ResourceTypeAPIGateway
}

func (c *APIGatewayCollector) Fetch(ctx context.Context) ([]entity.RawRecord, error) {
	return fetchRegions(ctx, c.ResourceType(), c.regions, c.fetchRegion)
}

func (c *APIGatewayCollector) fetchRegion(ctx context.Context, region string) ([]entity.RawRecord, error) {
	records, err := c.fetchRestAPIs(ctx, region)
	if err != nil {
		return records, err
	}
	if c.v2Client == nil {
		return records, nil
	}
	httpRecords, err := c.fetchHTTPAPIs(ctx, region)
	return append(records, httpRecords...), err
}

func (c *APIGatewayCollector) fetchRestAPIs(ctx context.Context, region string) ([]entity.RawRecord, error) {
	t := c.ResourceType()
	client, err := c.client(ctx, region)
	if err != nil {
		return nil, err
	}

	var records []entity.RawRecord
	paginator := apigateway.NewGetRestApisPaginator(client, &apigateway.GetRestApisInput{})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return records, callError(t, region, "GetRestApis", err)
		}
		for _, api := range page.Items {
			stages, err := client.GetStages(ctx, &apigateway.GetStagesInput{RestApiId: api.Id})
			if err != nil {
				return records, callError(t, region, "GetStages "+aws.ToString(api.Id), err)
			}
			for _, stage := range stages.Item {
				records = append(records, RestAPIStage{Region: region, API: api, Stage: stage})
			}
		}
	}
	return records, nil
}

func (c *APIGatewayCollector) fetchHTTPAPIs(ctx context.Context, region string) ([]entity.RawRecord, error) {
	t := c.ResourceType()
	client, err := c.v2Client(ctx, region)
	if err != nil {
		return nil, err
	}

	var records []entity.RawRecord
	input := &apigatewayv2.GetApisInput{}
	for {
		page, err := client.GetApis(ctx, input)
		if err != nil {
			return records, callError(t, region, "GetApis", err)
		}
		for _, api := range page.Items {
			stagesInput := &apigatewayv2.GetStagesInput{ApiId: api.ApiId}
			for {
				stages, err := client.GetStages(ctx, stagesInput)
				if err != nil {
					return records, callError(t, region, "GetStages "+aws.ToString(api.ApiId), err)
				}
				for _, stage := range stages.Items {
					records = append(records, HTTPAPIStage{Region: region, API: api, Stage: stage})
				}
				if aws.ToString(stages.NextToken) == "" {
					break
				}
				stagesInput.NextToken = stages.NextToken
			}
		}
		if aws.ToString(page.NextToken) == "" {
			break
		}
		input.NextToken = page.NextToken
	}
	return records, nil
}

func (c *APIGatewayCollector) Normalize(raw entity.RawRecord) ([]entity.ResourceRecord, error) {
	switch rec := raw.(type) {
	case RestAPIStage:
		return c.normalizeRest(rec)
	case HTTPAPIStage:
		return c.normalizeHTTP(rec)
	default:
		return nil, unexpectedRaw(c.ResourceType(), raw)
	}
}

func (c *APIGatewayCollector) normalizeRest(rec RestAPIStage) ([]entity.ResourceRecord, error) {
	t := c.ResourceType()
	if isPrivateRestAPI(rec.API) {
		return nil, nil
	}

	apiID := aws.ToString(rec.API.Id)
	stage := aws.ToString(rec.Stage.StageName)
	if apiID == "" || stage == "" || rec.Region == "" {
		return nil, notNormalizable(t, "REST API stage without api id, stage name or region")
	}

	invokeURL := fmt.Sprintf("https://%s.execute-api.%s.amazonaws.com/%s", apiID, rec.Region, stage)
	record, err := entity.NewResourceRecord(t, aws.ToString(rec.API.Name), invokeURL,
		entity.Attribute{Key: "Region", Value: rec.Region},
		entity.Attribute{Key: "API ID", Value: apiID},
		entity.Attribute{Key: "Stage", Value: stage},
		entity.Attribute{Key: "Protocol", Value: "REST"},
	)
	if err != nil {
		return nil, err
	}
	return []entity.ResourceRecord{record}, nil
}

func (c *APIGatewayCollector) normalizeHTTP(rec HTTPAPIStage) ([]entity.ResourceRecord, error) {
	t := c.ResourceType()
	apiID := aws.ToString(rec.API.ApiId)
	base := strings.TrimSuffix(aws.ToString(rec.API.ApiEndpoint), "/")
	stage := aws.ToString(rec.Stage.StageName)
	if base == "" || stage == "" {
		return nil, notNormalizable(t, "API "+apiID+" without endpoint or stage name")
	}

	endpoint := base
	if stage != "$default" {
		endpoint = base + "/" + stage
	}

	record, err := entity.NewResourceRecord(t, aws.ToString(rec.API.Name), endpoint,
		entity.Attribute{Key: "Region", Value: rec.Region},
		entity.Attribute{Key: "API ID", Value: apiID},
		entity.Attribute{Key: "Stage", Value: stage},
		entity.Attribute{Key: "Protocol", Value: string(rec.API.ProtocolType)},
	)
	if err != nil {
		return nil, err
	}
	return []entity.ResourceRecord{record}, nil
}

func isPrivateRestAPI(api apigwTypes.RestApi) bool {
	if api.EndpointConfiguration == nil {
		return false
	}
	for _, t := range api.EndpointConfiguration.Types {
		if t == apigwTypes.EndpointTypePrivate {
			return true
		}
	}
	return false
}
