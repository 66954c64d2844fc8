package aws

import (
	"context"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudfront"
	cfTypes "github.com/aws/aws-sdk-go-v2/service/cloudfront/types"
	"github.com/diillson/aws-external-assets-go/internal/domain/entity"
)

// CloudFrontAPI is the subset of the CloudFront client used by the CloudFront collector.
type CloudFrontAPI interface {
	ListDistributions(ctx context.Context, params *cloudfront.ListDistributionsInput, optFns ...func(*cloudfront.Options)) (*cloudfront.ListDistributionsOutput, error)
}

// CloudFrontDistribution is one distribution summary.
type CloudFrontDistribution struct {
	Summary cfTypes.DistributionSummary
}

func (CloudFrontDistribution) ResourceType() entity.ResourceType { return entity.ResourceTypeCloudFront }

// CloudFrontCollector lists all distributions of the account.
type CloudFrontCollector struct {
	client ClientFunc[CloudFrontAPI]
}

func NewCloudFrontCollector(client ClientFunc[CloudFrontAPI]) *CloudFrontCollector {
	return &CloudFrontCollector{client: client}
}

func (c *CloudFrontCollector) ResourceType() entity.ResourceType { return entity.ResourceTypeCloudFront }

func (c *CloudFrontCollector) Fetch(ctx context.Context) ([]entity.RawRecord, error) {
	t := c.ResourceType()
	client, err := c.client(ctx, globalRegion)
	if err != nil {
		return nil, asServiceCallError(t, "", err)
	}

	var records []entity.RawRecord
	paginator := cloudfront.NewListDistributionsPaginator(client, &cloudfront.ListDistributionsInput{})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return records, callError(t, "", "ListDistributions", err)
		}
		if page.DistributionList == nil {
			continue
		}
		for _, summary := range page.DistributionList.Items {
			records = append(records, CloudFrontDistribution{Summary: summary})
		}
	}
	return records, nil
}

// Normalize emits the distribution domain followed by one record per alternate domain name.
// Disabled distributions are not reachable and produce nothing.
func (c *CloudFrontCollector) Normalize(raw entity.RawRecord) ([]entity.ResourceRecord, error) {
	t := c.ResourceType()
	dist, ok := raw.(CloudFrontDistribution)
	if !ok {
		return nil, unexpectedRaw(t, raw)
	}

	s := dist.Summary
	if !aws.ToBool(s.Enabled) {
		return nil, nil
	}

	id := aws.ToString(s.Id)
	domain := aws.ToString(s.DomainName)
	if id == "" || domain == "" {
		return nil, notNormalizable(t, "distribution without id or domain name")
	}

	name := id
	if s.Origins != nil && len(s.Origins.Items) > 0 {
		if origin := aws.ToString(s.Origins.Items[0].Id); origin != "" {
			name = origin
		}
	}

	primary, err := entity.NewResourceRecord(t, name, domain,
		entity.Attribute{Key: "Distribution ID", Value: id},
		entity.Attribute{Key: "Domain Kind", Value: "Default"},
	)
	if err != nil {
		return nil, err
	}
	records := []entity.ResourceRecord{primary}

	if s.Aliases == nil {
		return records, nil
	}
	for _, alias := range s.Aliases.Items {
		alias = strings.TrimSpace(alias)
		if alias == "" {
			continue
		}
		rec, err := entity.NewResourceRecord(t, name, alias,
			entity.Attribute{Key: "Distribution ID", Value: id},
			entity.Attribute{Key: "Domain Kind", Value: "Alternate"},
			entity.Attribute{Key: "Alias Of", Value: domain},
		)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}
