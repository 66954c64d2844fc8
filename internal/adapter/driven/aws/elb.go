package aws

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/elasticloadbalancing"
	elbTypes "github.com/aws/aws-sdk-go-v2/service/elasticloadbalancing/types"
	"github.com/aws/aws-sdk-go-v2/service/elasticloadbalancingv2"
	elbv2Types "github.com/aws/aws-sdk-go-v2/service/elasticloadbalancingv2/types"
	"github.com/diillson/aws-external-assets-go/internal/domain/entity"
)

// ELBV2API is the subset of the ELBv2 client used by the collector.
type ELBV2API interface {
	DescribeLoadBalancers(ctx context.Context, params *elasticloadbalancingv2.DescribeLoadBalancersInput, optFns ...func(*elasticloadbalancingv2.Options)) (*elasticloadbalancingv2.DescribeLoadBalancersOutput, error)
}

// ClassicELBAPI is the subset of the classic ELB client used by the collector.
type ClassicELBAPI interface {
	DescribeLoadBalancers(ctx context.Context, params *elasticloadbalancing.DescribeLoadBalancersInput, optFns ...func(*elasticloadbalancing.Options)) (*elasticloadbalancing.DescribeLoadBalancersOutput, error)
}

// LoadBalancer is an application, network or gateway load balancer.
type LoadBalancer struct {
	Region string
	LB     elbv2Types.LoadBalancer
}

func (LoadBalancer) ResourceType() entity.ResourceType { return entity.ResourceTypeELB }

// ClassicLoadBalancer is a previous generation load balancer.
type ClassicLoadBalancer struct {
	Region string
	LB     elbTypes.LoadBalancerDescription
}

func (ClassicLoadBalancer) ResourceType() entity.ResourceType { return entity.ResourceTypeELB }

// ELBCollector lists current and classic load balancers in every region.
type ELBCollector struct {
	regions       []string
	client        ClientFunc[ELBV2API]
	classicClient ClientFunc[ClassicELBAPI]
}

func NewELBCollector(regions []string, client ClientFunc[ELBV2API], classicClient ClientFunc[ClassicELBAPI]) *ELBCollector {
	return &ELBCollector{regions: regions, client: client, classicClient: classicClient}
}

func (c *ELBCollector) ResourceType() entity.ResourceType { return entity.ResourceTypeELB }

func (c *ELBCollector) Fetch(ctx context.Context) ([]entity.RawRecord, error) {
	return fetchRegions(ctx, c.ResourceType(), c.regions, c.fetchRegion)
}

func (c *ELBCollector) fetchRegion(ctx context.Context, region string) ([]entity.RawRecord, error) {
	t := c.ResourceType()
	client, err := c.client(ctx, region)
	if err != nil {
		return nil, err
	}

	var records []entity.RawRecord
	paginator := elasticloadbalancingv2.NewDescribeLoadBalancersPaginator(client, &elasticloadbalancingv2.DescribeLoadBalancersInput{})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return records, callError(t, region, "DescribeLoadBalancers", err)
		}
		for _, lb := range page.LoadBalancers {
			records = append(records, LoadBalancer{Region: region, LB: lb})
		}
	}

	if c.classicClient == nil {
		return records, nil
	}
	classic, err := c.classicClient(ctx, region)
	if err != nil {
		return records, err
	}
	classicPaginator := elasticloadbalancing.NewDescribeLoadBalancersPaginator(classic, &elasticloadbalancing.DescribeLoadBalancersInput{})
	for classicPaginator.HasMorePages() {
		page, err := classicPaginator.NextPage(ctx)
		if err != nil {
			return records, callError(t, region, "DescribeLoadBalancers (classic)", err)
		}
		for _, lb := range page.LoadBalancerDescriptions {
			records = append(records, ClassicLoadBalancer{Region: region, LB: lb})
		}
	}
	return records, nil
}

// Normalize emits every load balancer's DNS name. Gateway load balancers have no listener
// reachable from outside the VPC and are skipped.
func (c *ELBCollector) Normalize(raw entity.RawRecord) ([]entity.ResourceRecord, error) {
	t := c.ResourceType()

	var name, dns, region, scheme, kind string
	switch rec := raw.(type) {
	case LoadBalancer:
		if rec.LB.Type == elbv2Types.LoadBalancerTypeEnumGateway {
			return nil, nil
		}
		name, dns, region = aws.ToString(rec.LB.LoadBalancerName), aws.ToString(rec.LB.DNSName), rec.Region
		scheme, kind = string(rec.LB.Scheme), string(rec.LB.Type)
	case ClassicLoadBalancer:
		name, dns, region = aws.ToString(rec.LB.LoadBalancerName), aws.ToString(rec.LB.DNSName), rec.Region
		scheme, kind = aws.ToString(rec.LB.Scheme), "classic"
	default:
		return nil, unexpectedRaw(t, raw)
	}

	if dns == "" {
		return nil, notNormalizable(t, "load balancer "+name+" has no DNS name")
	}

	record, err := entity.NewResourceRecord(t, name, dns,
		entity.Attribute{Key: "Region", Value: region},
		entity.Attribute{Key: "Scheme", Value: scheme},
		entity.Attribute{Key: "Type", Value: kind},
	)
	if err != nil {
		return nil, err
	}
	return []entity.ResourceRecord{record}, nil
}
