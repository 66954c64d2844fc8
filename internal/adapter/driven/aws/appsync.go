package aws

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/appsync"
	appsyncTypes "github.com/aws/aws-sdk-go-v2/service/appsync/types"
	"github.com/diillson/aws-external-assets-go/internal/domain/entity"
)

// AppSyncAPI is the subset of the AppSync client used by the collector.
type AppSyncAPI interface {
	ListGraphqlApis(ctx context.Context, params *appsync.ListGraphqlApisInput, optFns ...func(*appsync.Options)) (*appsync.ListGraphqlApisOutput, error)
}

// GraphQLAPI is one AppSync API.
type GraphQLAPI struct {
	Region string
	API    appsyncTypes.GraphqlApi
}

func (GraphQLAPI) ResourceType() entity.ResourceType { return entity.ResourceTypeAppSync }

// AppSyncCollector lists GraphQL APIs in every region.
type AppSyncCollector struct {
	regions []string
	client  ClientFunc[AppSyncAPI]
}

func NewAppSyncCollector(regions []string, client ClientFunc[AppSyncAPI]) *AppSyncCollector {
	return &AppSyncCollector{regions: regions, client: client}
}

func (c *AppSyncCollector) ResourceType() entity.ResourceType { return entity.ResourceTypeAppSync }

func (c *AppSyncCollector) Fetch(ctx context.Context) ([]entity.RawRecord, error) {
	return fetchRegions(ctx, c.ResourceType(), c.regions, c.fetchRegion)
}

func (c *AppSyncCollector) fetchRegion(ctx context.Context, region string) ([]entity.RawRecord, error) {
	client, err := c.client(ctx, region)
	if err != nil {
		return nil, err
	}

	var records []entity.RawRecord
	input := &appsync.ListGraphqlApisInput{}
	for {
		page, err := client.ListGraphqlApis(ctx, input)
		if err != nil {
			return records, callError(c.ResourceType(), region, "ListGraphqlApis", err)
		}
		for _, api := range page.GraphqlApis {
			records = append(records, GraphQLAPI{Region: region, API: api})
		}
		if aws.ToString(page.NextToken) == "" {
			break
		}
		input.NextToken = page.NextToken
	}
	return records, nil
}

func (c *AppSyncCollector) Normalize(raw entity.RawRecord) ([]entity.ResourceRecord, error) {
	t := c.ResourceType()
	rec, ok := raw.(GraphQLAPI)
	if !ok {
		return nil, unexpectedRaw(t, raw)
	}
	if string(rec.API.Visibility) == "PRIVATE" {
		return nil, nil
	}

	name := aws.ToString(rec.API.Name)
	url := rec.API.Uris["GRAPHQL"]
	if url == "" {
		return nil, notNormalizable(t, "GraphQL API without GRAPHQL uri: "+name)
	}

	extra := []entity.Attribute{
		{Key: "Region", Value: rec.Region},
		{Key: "API ID", Value: aws.ToString(rec.API.ApiId)},
	}
	if realtime := rec.API.Uris["REALTIME"]; realtime != "" {
		extra = append(extra, entity.Attribute{Key: "Realtime URL", Value: realtime})
	}

	record, err := entity.NewResourceRecord(t, name, url, extra...)
	if err != nil {
		return nil, err
	}
	return []entity.ResourceRecord{record}, nil
}
