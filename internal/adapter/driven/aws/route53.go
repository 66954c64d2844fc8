package aws

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/route53"
	route53Types "github.com/aws/aws-sdk-go-v2/service/route53/types"
	"github.com/diillson/aws-external-assets-go/internal/domain/entity"
)

// Route53API is the subset of the Route 53 client used by the DNS collector.
type Route53API interface {
	ListHostedZones(ctx context.Context, params *route53.ListHostedZonesInput, optFns ...func(*route53.Options)) (*route53.ListHostedZonesOutput, error)
	ListResourceRecordSets(ctx context.Context, params *route53.ListResourceRecordSetsInput, optFns ...func(*route53.Options)) (*route53.ListResourceRecordSetsOutput, error)
}

// DNSRecordSet is a record set of a public hosted zone.
type DNSRecordSet struct {
	ZoneID   string
	ZoneName string
	Set      route53Types.ResourceRecordSet
}

func (DNSRecordSet) ResourceType() entity.ResourceType { return entity.ResourceTypeDNS }

// externalRecordTypes are the record types that resolve to a reachable host.
var externalRecordTypes = map[route53Types.RRType]bool{
	route53Types.RRTypeA:     true,
	route53Types.RRTypeAaaa:  true,
	route53Types.RRTypeCname: true,
}

// Route53Collector lists record sets of every public hosted zone.
type Route53Collector struct {
	client ClientFunc[Route53API]
}

func NewRoute53Collector(client ClientFunc[Route53API]) *Route53Collector {
	return &Route53Collector{client: client}
}

func (c *Route53Collector) ResourceType() entity.ResourceType { return entity.ResourceTypeDNS }

func (c *Route53Collector) Fetch(ctx context.Context) ([]entity.RawRecord, error) {
	t := c.ResourceType()
	client, err := c.client(ctx, globalRegion)
	if err != nil {
		return nil, asServiceCallError(t, "", err)
	}

	var records []entity.RawRecord
	var errs []error
	zones := route53.NewListHostedZonesPaginator(client, &route53.ListHostedZonesInput{})
	for zones.HasMorePages() {
		page, err := zones.NextPage(ctx)
		if err != nil {
			errs = append(errs, callError(t, "", "ListHostedZones", err))
			break
		}

		for _, zone := range page.HostedZones {
			zoneID := hostedZoneID(aws.ToString(zone.Id))
			zoneName := strings.TrimSuffix(aws.ToString(zone.Name), ".")
			if zone.Config != nil && zone.Config.PrivateZone {
				slog.Debug("Skipping private hosted zone", "zone", zoneName)
				continue
			}

			zoneRecords, err := listRecordSets(ctx, client, zoneID, zoneName)
			records = append(records, zoneRecords...)
			if err != nil {
				slog.Warn("Failed to list hosted zone records", "zone", zoneName, "error", err)
				errs = append(errs, callError(t, "", "ListResourceRecordSets "+zoneName, err))
			}
		}
	}
	return records, errors.Join(errs...)
}

// listRecordSets pages through a zone using the NextRecord* cursor of the previous response.
func listRecordSets(ctx context.Context, client Route53API, zoneID, zoneName string) ([]entity.RawRecord, error) {
	var records []entity.RawRecord
	input := &route53.ListResourceRecordSetsInput{HostedZoneId: aws.String(zoneID)}
	for {
		page, err := client.ListResourceRecordSets(ctx, input)
		if err != nil {
			return records, err
		}
		for _, set := range page.ResourceRecordSets {
			records = append(records, DNSRecordSet{ZoneID: zoneID, ZoneName: zoneName, Set: set})
		}
		if !page.IsTruncated {
			return records, nil
		}
		input.StartRecordName = page.NextRecordName
		input.StartRecordType = page.NextRecordType
		input.StartRecordIdentifier = page.NextRecordIdentifier
	}
}

func (c *Route53Collector) Normalize(raw entity.RawRecord) ([]entity.ResourceRecord, error) {
	t := c.ResourceType()
	rec, ok := raw.(DNSRecordSet)
	if !ok {
		return nil, unexpectedRaw(t, raw)
	}

	set := rec.Set
	if set.AliasTarget == nil && !externalRecordTypes[set.Type] {
		return nil, nil
	}

	name := decodeDNSName(aws.ToString(set.Name))
	if name == "" {
		return nil, notNormalizable(t, "record set without a name in zone "+rec.ZoneName)
	}

	var value string
	switch {
	case set.AliasTarget != nil:
		value = strings.TrimSuffix(aws.ToString(set.AliasTarget.DNSName), ".")
	case len(set.ResourceRecords) > 0:
		values := make([]string, 0, len(set.ResourceRecords))
		for _, rr := range set.ResourceRecords {
			values = append(values, aws.ToString(rr.Value))
		}
		value = strings.Join(values, ", ")
	default:
		value = "N/A"
	}

	extra := []entity.Attribute{
		{Key: "Hosted Zone", Value: rec.ZoneName},
		{Key: "Record Type", Value: string(set.Type)},
		{Key: "Record Value", Value: value},
	}
	if id := aws.ToString(set.SetIdentifier); id != "" {
		extra = append(extra, entity.Attribute{Key: "Set Identifier", Value: id})
	}

	record, err := entity.NewResourceRecord(t, name, name, extra...)
	if err != nil {
		return nil, err
	}
	return []entity.ResourceRecord{record}, nil
}

// hostedZoneID strips the "/hostedzone/" prefix returned by ListHostedZones.
func hostedZoneID(id string) string {
	if i := strings.LastIndex(id, "/"); i >= 0 {
		return id[i+1:]
	}
	return id
}

// decodeDNSName drops the trailing dot and decodes Route 53 octal escapes such as \052 (*).
func decodeDNSName(name string) string {
	name = strings.TrimSuffix(name, ".")
	if !strings.Contains(name, `\`) {
		return name
	}

	var b strings.Builder
	for i := 0; i < len(name); i++ {
		if name[i] == '\\' && i+4 <= len(name) {
			if v, err := strconv.ParseUint(name[i+1:i+4], 8, 8); err == nil {
				b.WriteByte(byte(v))
				i += 3
				continue
			}
		}
		b.WriteByte(name[i])
	}
	return b.String()
}
