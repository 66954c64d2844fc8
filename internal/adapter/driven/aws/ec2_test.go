package aws

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2Types "github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/diillson/aws-external-assets-go/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestEC2Collector_OnlyPublicInstances(t *testing.T) {
	client := new(mockEC2)
	client.On("DescribeInstances", mock.Anything, mock.Anything).Return(&ec2.DescribeInstancesOutput{
		Reservations: []ec2Types.Reservation{{
			Instances: []ec2Types.Instance{
				{
					InstanceId:      aws.String("i-public"),
					PublicIpAddress: aws.String("1.2.3.4"),
					State:           &ec2Types.InstanceState{Name: ec2Types.InstanceStateNameRunning},
				},
				{
					InstanceId:       aws.String("i-private"),
					PrivateIpAddress: aws.String("10.0.0.5"),
				},
			},
		}},
	}, nil)

	collector := NewEC2Collector([]string{"us-east-1"}, staticClient[EC2API](client))
	raw, err := collector.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, raw, 2)

	var records []entity.ResourceRecord
	for _, r := range raw {
		recs, err := collector.Normalize(r)
		require.NoError(t, err)
		records = append(records, recs...)
	}

	require.Len(t, records, 1)
	assert.Equal(t, "i-public", records[0].Name)
	assert.Equal(t, "1.2.3.4", records[0].Endpoint)

	dns, _ := records[0].Get("Public DNS")
	assert.Equal(t, "N/A", dns)
	state, _ := records[0].Get("State")
	assert.Equal(t, "running", state)
	region, _ := records[0].Get("Region")
	assert.Equal(t, "us-east-1", region)
}

func TestEC2Collector_RegionFailureKeepsOthers(t *testing.T) {
	healthy := new(mockEC2)
	healthy.On("DescribeInstances", mock.Anything, mock.Anything).Return(&ec2.DescribeInstancesOutput{
		Reservations: []ec2Types.Reservation{{
			Instances: []ec2Types.Instance{{InstanceId: aws.String("i-1"), PublicIpAddress: aws.String("5.6.7.8")}},
		}},
	}, nil)
	broken := new(mockEC2)
	broken.On("DescribeInstances", mock.Anything, mock.Anything).Return(nil, errBoom)

	clients := func(ctx context.Context, region string) (EC2API, error) {
		if region == "ap-south-1" {
			return broken, nil
		}
		return healthy, nil
	}

	collector := NewEC2Collector([]string{"us-east-1", "ap-south-1"}, clients)
	raw, err := collector.Fetch(context.Background())

	assert.ErrorIs(t, err, errBoom)
	require.Len(t, raw, 1)
	assert.Equal(t, "us-east-1", raw[0].(EC2Instance).Region)
}
