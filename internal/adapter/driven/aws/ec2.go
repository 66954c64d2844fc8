package aws

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2Types "github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/diillson/aws-external-assets-go/internal/domain/entity"
)

// EC2API is the subset of the EC2 client used by the collector.
type EC2API interface {
	DescribeInstances(ctx context.Context, params *ec2.DescribeInstancesInput, optFns ...func(*ec2.Options)) (*ec2.DescribeInstancesOutput, error)
}

// EC2Instance is one instance of a reservation.
type EC2Instance struct {
	Region   string
	Instance ec2Types.Instance
}

func (EC2Instance) ResourceType() entity.ResourceType { return entity.ResourceTypeEC2 }

// EC2Collector lists instances in every region.
type EC2Collector struct {
	regions []string
	client  ClientFunc[EC2API]
}

func NewEC2Collector(regions []string, client ClientFunc[EC2API]) *EC2Collector {
	return &EC2Collector{regions: regions, client: client}
}

func (c *EC2Collector) ResourceType() entity.ResourceType { return entity.ResourceTypeEC2 }

func (c *EC2Collector) Fetch(ctx context.Context) ([]entity.RawRecord, error) {
	return fetchRegions(ctx, c.ResourceType(), c.regions, c.fetchRegion)
}

func (c *EC2Collector) fetchRegion(ctx context.Context, region string) ([]entity.RawRecord, error) {
	client, err := c.client(ctx, region)
	if err != nil {
		return nil, err
	}

	var records []entity.RawRecord
	paginator := ec2.NewDescribeInstancesPaginator(client, &ec2.DescribeInstancesInput{})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return records, callError(c.ResourceType(), region, "DescribeInstances", err)
		}
		for _, reservation := range page.Reservations {
			for _, instance := range reservation.Instances {
				records = append(records, EC2Instance{Region: region, Instance: instance})
			}
		}
	}
	return records, nil
}

// Normalize only emits instances with a public IPv4 address.
func (c *EC2Collector) Normalize(raw entity.RawRecord) ([]entity.ResourceRecord, error) {
	t := c.ResourceType()
	rec, ok := raw.(EC2Instance)
	if !ok {
		return nil, unexpectedRaw(t, raw)
	}

	publicIP := aws.ToString(rec.Instance.PublicIpAddress)
	if publicIP == "" {
		return nil, nil
	}

	id := aws.ToString(rec.Instance.InstanceId)
	if id == "" {
		return nil, notNormalizable(t, "instance with public IP "+publicIP+" has no id")
	}

	publicDNS := aws.ToString(rec.Instance.PublicDnsName)
	if publicDNS == "" {
		publicDNS = "N/A"
	}
	state := ""
	if rec.Instance.State != nil {
		state = string(rec.Instance.State.Name)
	}

	record, err := entity.NewResourceRecord(t, id, publicIP,
		entity.Attribute{Key: "Region", Value: rec.Region},
		entity.Attribute{Key: "Public DNS", Value: publicDNS},
		entity.Attribute{Key: "State", Value: state},
	)
	if err != nil {
		return nil, err
	}
	return []entity.ResourceRecord{record}, nil
}
