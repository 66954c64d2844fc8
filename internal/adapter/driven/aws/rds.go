package aws

import (
	"context"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/rds"
	rdsTypes "github.com/aws/aws-sdk-go-v2/service/rds/types"
	"github.com/diillson/aws-external-assets-go/internal/domain/entity"
)

// RDSAPI is the subset of the RDS client used by the collector.
type RDSAPI interface {
	DescribeDBInstances(ctx context.Context, params *rds.DescribeDBInstancesInput, optFns ...func(*rds.Options)) (*rds.DescribeDBInstancesOutput, error)
}

// DBInstance is one RDS database instance.
type DBInstance struct {
	Region   string
	Instance rdsTypes.DBInstance
}

func (DBInstance) ResourceType() entity.ResourceType { return entity.ResourceTypeRDS }

// RDSCollector lists database instances in every region.
type RDSCollector struct {
	regions []string
	client  ClientFunc[RDSAPI]
}

func NewRDSCollector(regions []string, client ClientFunc[RDSAPI]) *RDSCollector {
	return &RDSCollector{regions: regions, client: client}
}

func (c *RDSCollector) ResourceType() entity.ResourceType { return entity.ResourceTypeRDS }

func (c *RDSCollector) Fetch(ctx context.Context) ([]entity.RawRecord, error) {
	return fetchRegions(ctx, c.ResourceType(), c.regions, c.fetchRegion)
}

func (c *RDSCollector) fetchRegion(ctx context.Context, region string) ([]entity.RawRecord, error) {
	client, err := c.client(ctx, region)
	if err != nil {
		return nil, err
	}

	var records []entity.RawRecord
	paginator := rds.NewDescribeDBInstancesPaginator(client, &rds.DescribeDBInstancesInput{})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return records, callError(c.ResourceType(), region, "DescribeDBInstances", err)
		}
		for _, db := range page.DBInstances {
			records = append(records, DBInstance{Region: region, Instance: db})
		}
	}
	return records, nil
}

func (c *RDSCollector) Normalize(raw entity.RawRecord) ([]entity.ResourceRecord, error) {
	t := c.ResourceType()
	rec, ok := raw.(DBInstance)
	if !ok {
		return nil, unexpectedRaw(t, raw)
	}

	db := rec.Instance
	id := aws.ToString(db.DBInstanceIdentifier)
	if db.Endpoint == nil || aws.ToString(db.Endpoint.Address) == "" {
		return nil, notNormalizable(t, "DB instance "+id+" has no endpoint yet")
	}

	extra := []entity.Attribute{
		{Key: "Region", Value: rec.Region},
		{Key: "Engine", Value: aws.ToString(db.Engine)},
	}
	if db.Endpoint.Port != nil {
		extra = append(extra, entity.Attribute{Key: "Port", Value: strconv.Itoa(int(*db.Endpoint.Port))})
	}
	extra = append(extra, entity.Attribute{Key: "Publicly Accessible", Value: strconv.FormatBool(aws.ToBool(db.PubliclyAccessible))})

	record, err := entity.NewResourceRecord(t, id, aws.ToString(db.Endpoint.Address), extra...)
	if err != nil {
		return nil, err
	}
	return []entity.ResourceRecord{record}, nil
}
