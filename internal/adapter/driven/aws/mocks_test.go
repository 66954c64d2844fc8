package aws

import (
	"context"
	"errors"

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
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/stretchr/testify/mock"
)

// staticClient returns a ClientFunc that always yields client.
func staticClient[T any](client T) ClientFunc[T] {
	return func(ctx context.Context, region string) (T, error) {
		return client, nil
	}
}

func failingClient[T any](err error) ClientFunc[T] {
	return func(ctx context.Context, region string) (T, error) {
		var zero T
		return zero, err
	}
}

var errBoom = errors.New("boom")

type mockRoute53 struct {
	mock.Mock
}

func (m *mockRoute53) ListHostedZones(ctx context.Context, params *route53.ListHostedZonesInput, optFns ...func(*route53.Options)) (*route53.ListHostedZonesOutput, error) {
	args := m.Called(ctx, params)
	out, _ := args.Get(0).(*route53.ListHostedZonesOutput)
	return out, args.Error(1)
}

func (m *mockRoute53) ListResourceRecordSets(ctx context.Context, params *route53.ListResourceRecordSetsInput, optFns ...func(*route53.Options)) (*route53.ListResourceRecordSetsOutput, error) {
	args := m.Called(ctx, params)
	out, _ := args.Get(0).(*route53.ListResourceRecordSetsOutput)
	return out, args.Error(1)
}

type mockCloudFront struct {
	mock.Mock
}

func (m *mockCloudFront) ListDistributions(ctx context.Context, params *cloudfront.ListDistributionsInput, optFns ...func(*cloudfront.Options)) (*cloudfront.ListDistributionsOutput, error) {
	args := m.Called(ctx, params)
	out, _ := args.Get(0).(*cloudfront.ListDistributionsOutput)
	return out, args.Error(1)
}

type mockEC2 struct {
	mock.Mock
}

func (m *mockEC2) DescribeInstances(ctx context.Context, params *ec2.DescribeInstancesInput, optFns ...func(*ec2.Options)) (*ec2.DescribeInstancesOutput, error) {
	args := m.Called(ctx, params)
	out, _ := args.Get(0).(*ec2.DescribeInstancesOutput)
	return out, args.Error(1)
}

func (m *mockEC2) DescribeRegions(ctx context.Context, params *ec2.DescribeRegionsInput, optFns ...func(*ec2.Options)) (*ec2.DescribeRegionsOutput, error) {
	args := m.Called(ctx, params)
	out, _ := args.Get(0).(*ec2.DescribeRegionsOutput)
	return out, args.Error(1)
}

type mockLambda struct {
	mock.Mock
}

func (m *mockLambda) ListFunctions(ctx context.Context, params *lambda.ListFunctionsInput, optFns ...func(*lambda.Options)) (*lambda.ListFunctionsOutput, error) {
	args := m.Called(ctx, params)
	out, _ := args.Get(0).(*lambda.ListFunctionsOutput)
	return out, args.Error(1)
}

func (m *mockLambda) GetFunctionUrlConfig(ctx context.Context, params *lambda.GetFunctionUrlConfigInput, optFns ...func(*lambda.Options)) (*lambda.GetFunctionUrlConfigOutput, error) {
	args := m.Called(ctx, params)
	out, _ := args.Get(0).(*lambda.GetFunctionUrlConfigOutput)
	return out, args.Error(1)
}

type mockSTS struct {
	mock.Mock
}

func (m *mockSTS) GetCallerIdentity(ctx context.Context, params *sts.GetCallerIdentityInput, optFns ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error) {
	args := m.Called(ctx, params)
	out, _ := args.Get(0).(*sts.GetCallerIdentityOutput)
	return out, args.Error(1)
}

type mockAppSync struct {
	mock.Mock
}

func (m *mockAppSync) ListGraphqlApis(ctx context.Context, params *appsync.ListGraphqlApisInput, optFns ...func(*appsync.Options)) (*appsync.ListGraphqlApisOutput, error) {
	args := m.Called(ctx, params)
	out, _ := args.Get(0).(*appsync.ListGraphqlApisOutput)
	return out, args.Error(1)
}

type mockAmplify struct {
	mock.Mock
}

func (m *mockAmplify) ListApps(ctx context.Context, params *amplify.ListAppsInput, optFns ...func(*amplify.Options)) (*amplify.ListAppsOutput, error) {
	args := m.Called(ctx, params)
	out, _ := args.Get(0).(*amplify.ListAppsOutput)
	return out, args.Error(1)
}

func (m *mockAmplify) ListBranches(ctx context.Context, params *amplify.ListBranchesInput, optFns ...func(*amplify.Options)) (*amplify.ListBranchesOutput, error) {
	args := m.Called(ctx, params)
	out, _ := args.Get(0).(*amplify.ListBranchesOutput)
	return out, args.Error(1)
}

type mockAPIGateway struct {
	mock.Mock
}

func (m *mockAPIGateway) GetRestApis(ctx context.Context, params *apigateway.GetRestApisInput, optFns ...func(*apigateway.Options)) (*apigateway.GetRestApisOutput, error) {
	args := m.Called(ctx, params)
	out, _ := args.Get(0).(*apigateway.GetRestApisOutput)
	return out, args.Error(1)
}

func (m *mockAPIGateway) GetStages(ctx context.Context, params *apigateway.GetStagesInput, optFns ...func(*apigateway.Options)) (*apigateway.GetStagesOutput, error) {
	args := m.Called(ctx, params)
	out, _ := args.Get(0).(*apigateway.GetStagesOutput)
	return out, args.Error(1)
}

type mockAPIGatewayV2 struct {
	mock.Mock
}

func (m *mockAPIGatewayV2) GetApis(ctx context.Context, params *apigatewayv2.GetApisInput, optFns ...func(*apigatewayv2.Options)) (*apigatewayv2.GetApisOutput, error) {
	args := m.Called(ctx, params)
	out, _ := args.Get(0).(*apigatewayv2.GetApisOutput)
	return out, args.Error(1)
}

func (m *mockAPIGatewayV2) GetStages(ctx context.Context, params *apigatewayv2.GetStagesInput, optFns ...func(*apigatewayv2.Options)) (*apigatewayv2.GetStagesOutput, error) {
	args := m.Called(ctx, params)
	out, _ := args.Get(0).(*apigatewayv2.GetStagesOutput)
	return out, args.Error(1)
}

type mockELBV2 struct {
	mock.Mock
}

func (m *mockELBV2) DescribeLoadBalancers(ctx context.Context, params *elasticloadbalancingv2.DescribeLoadBalancersInput, optFns ...func(*elasticloadbalancingv2.Options)) (*elasticloadbalancingv2.DescribeLoadBalancersOutput, error) {
	args := m.Called(ctx, params)
	out, _ := args.Get(0).(*elasticloadbalancingv2.DescribeLoadBalancersOutput)
	return out, args.Error(1)
}

type mockClassicELB struct {
	mock.Mock
}

func (m *mockClassicELB) DescribeLoadBalancers(ctx context.Context, params *elasticloadbalancing.DescribeLoadBalancersInput, optFns ...func(*elasticloadbalancing.Options)) (*elasticloadbalancing.DescribeLoadBalancersOutput, error) {
	args := m.Called(ctx, params)
	out, _ := args.Get(0).(*elasticloadbalancing.DescribeLoadBalancersOutput)
	return out, args.Error(1)
}

type mockRDS struct {
	mock.Mock
}

func (m *mockRDS) DescribeDBInstances(ctx context.Context, params *rds.DescribeDBInstancesInput, optFns ...func(*rds.Options)) (*rds.DescribeDBInstancesOutput, error) {
	args := m.Called(ctx, params)
	out, _ := args.Get(0).(*rds.DescribeDBInstancesOutput)
	return out, args.Error(1)
}
