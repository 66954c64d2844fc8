package aws

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/apigateway"
	apigwTypes "github.com/aws/aws-sdk-go-v2/service/apigateway/types"
	"github.com/aws/aws-sdk-go-v2/service/apigatewayv2"
	apigwv2Types "github.com/aws/aws-sdk-go-v2/service/apigatewayv2/types"
	"github.com/diillson/aws-external-assets-go/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func restAPIsPage(position string) interface{} {
	return mock.MatchedBy(func(in *apigateway.GetRestApisInput) bool {
		return aws.ToString(in.Position) == position
	})
}

func restStagesOf(apiID string) interface{} {
	return mock.MatchedBy(func(in *apigateway.GetStagesInput) bool {
		return aws.ToString(in.RestApiId) == apiID
	})
}

func httpAPIsPage(token string) interface{} {
	return mock.MatchedBy(func(in *apigatewayv2.GetApisInput) bool {
		return aws.ToString(in.NextToken) == token
	})
}

func httpStagesPage(apiID, token string) interface{} {
	return mock.MatchedBy(func(in *apigatewayv2.GetStagesInput) bool {
		return aws.ToString(in.ApiId) == apiID && aws.ToString(in.NextToken) == token
	})
}

func restStages(names ...string) []apigwTypes.Stage {
	out := make([]apigwTypes.Stage, 0, len(names))
	for _, n := range names {
		out = append(out, apigwTypes.Stage{StageName: aws.String(n)})
	}
	return out
}

func httpAPI(id string) apigwv2Types.Api {
	return apigwv2Types.Api{
		ApiId:        aws.String(id),
		Name:         aws.String(id),
		ApiEndpoint:  aws.String("https://" + id + ".execute-api.us-east-1.amazonaws.com"),
		ProtocolType: apigwv2Types.ProtocolTypeHttp,
	}
}

func httpStages(names ...string) []apigwv2Types.Stage {
	out := make([]apigwv2Types.Stage, 0, len(names))
	for _, n := range names {
		out = append(out, apigwv2Types.Stage{StageName: aws.String(n)})
	}
	return out
}

func TestAPIGatewayCollector_FetchRestAPIs(t *testing.T) {
	client := new(mockAPIGateway)
	client.On("GetRestApis", mock.Anything, restAPIsPage("")).Return(&apigateway.GetRestApisOutput{
		Items:    []apigwTypes.RestApi{{Id: aws.String("r1"), Name: aws.String("first")}},
		Position: aws.String("pos-2"),
	}, nil).Once()
	client.On("GetRestApis", mock.Anything, restAPIsPage("pos-2")).Return(&apigateway.GetRestApisOutput{
		Items: []apigwTypes.RestApi{{Id: aws.String("r2"), Name: aws.String("second")}},
	}, nil).Once()
	client.On("GetStages", mock.Anything, restStagesOf("r1")).Return(&apigateway.GetStagesOutput{Item: restStages("prod", "dev")}, nil).Once()
	client.On("GetStages", mock.Anything, restStagesOf("r2")).Return(&apigateway.GetStagesOutput{Item: restStages("v1")}, nil).Once()

	collector := NewAPIGatewayCollector([]string{"us-east-1"}, staticClient[APIGatewayAPI](client), nil)
	raw, err := collector.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{
		"https://r1.execute-api.us-east-1.amazonaws.com/prod",
		"https://r1.execute-api.us-east-1.amazonaws.com/dev",
		"https://r2.execute-api.us-east-1.amazonaws.com/v1",
	}, endpoints(t, collector, raw))
	client.AssertExpectations(t)
}

func TestAPIGatewayCollector_FetchHTTPAPIs(t *testing.T) {
	rest := new(mockAPIGateway)
	rest.On("GetRestApis", mock.Anything, restAPIsPage("")).Return(&apigateway.GetRestApisOutput{}, nil).Once()

	client := new(mockAPIGatewayV2)
	client.On("GetApis", mock.Anything, httpAPIsPage("")).Return(&apigatewayv2.GetApisOutput{
		Items:     []apigwv2Types.Api{httpAPI("h1")},
		NextToken: aws.String("apis-2"),
	}, nil).Once()
	client.On("GetApis", mock.Anything, httpAPIsPage("apis-2")).Return(&apigatewayv2.GetApisOutput{
		Items: []apigwv2Types.Api{httpAPI("h2")},
	}, nil).Once()
	client.On("GetStages", mock.Anything, httpStagesPage("h1", "")).Return(&apigatewayv2.GetStagesOutput{
		Items:     httpStages("$default"),
		NextToken: aws.String("stages-2"),
	}, nil).Once()
	client.On("GetStages", mock.Anything, httpStagesPage("h1", "stages-2")).Return(&apigatewayv2.GetStagesOutput{
		Items: httpStages("beta"),
	}, nil).Once()
	client.On("GetStages", mock.Anything, httpStagesPage("h2", "")).Return(&apigatewayv2.GetStagesOutput{
		Items: httpStages("live"),
	}, nil).Once()

	collector := NewAPIGatewayCollector([]string{"us-east-1"}, staticClient[APIGatewayAPI](rest), staticClient[APIGatewayV2API](client))
	raw, err := collector.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{
		"https://h1.execute-api.us-east-1.amazonaws.com",
		"https://h1.execute-api.us-east-1.amazonaws.com/beta",
		"https://h2.execute-api.us-east-1.amazonaws.com/live",
	}, endpoints(t, collector, raw))
	client.AssertExpectations(t)
	rest.AssertExpectations(t)
}

func TestAPIGatewayCollector_FetchErrorKeepsEarlierPages(t *testing.T) {
	t.Run("rest api page", func(t *testing.T) {
		client := new(mockAPIGateway)
		client.On("GetRestApis", mock.Anything, restAPIsPage("")).Return(&apigateway.GetRestApisOutput{
			Items:    []apigwTypes.RestApi{{Id: aws.String("r1"), Name: aws.String("first")}},
			Position: aws.String("pos-2"),
		}, nil).Once()
		client.On("GetRestApis", mock.Anything, restAPIsPage("pos-2")).Return(nil, errBoom).Once()
		client.On("GetStages", mock.Anything, restStagesOf("r1")).Return(&apigateway.GetStagesOutput{Item: restStages("prod")}, nil).Once()

		collector := NewAPIGatewayCollector([]string{"us-east-1"}, staticClient[APIGatewayAPI](client), nil)
		raw, err := collector.Fetch(context.Background())

		var callErr *entity.ServiceCallError
		require.ErrorAs(t, err, &callErr)
		assert.Equal(t, "GetRestApis", callErr.Op)
		assert.Equal(t, []string{"https://r1.execute-api.us-east-1.amazonaws.com/prod"}, endpoints(t, collector, raw))
	})

	t.Run("http stage page", func(t *testing.T) {
		rest := new(mockAPIGateway)
		rest.On("GetRestApis", mock.Anything, restAPIsPage("")).Return(&apigateway.GetRestApisOutput{
			Items: []apigwTypes.RestApi{{Id: aws.String("r1"), Name: aws.String("first")}},
		}, nil).Once()
		rest.On("GetStages", mock.Anything, restStagesOf("r1")).Return(&apigateway.GetStagesOutput{Item: restStages("prod")}, nil).Once()

		client := new(mockAPIGatewayV2)
		client.On("GetApis", mock.Anything, httpAPIsPage("")).Return(&apigatewayv2.GetApisOutput{
			Items: []apigwv2Types.Api{httpAPI("h1")},
		}, nil).Once()
		client.On("GetStages", mock.Anything, httpStagesPage("h1", "")).Return(&apigatewayv2.GetStagesOutput{
			Items:     httpStages("beta"),
			NextToken: aws.String("stages-2"),
		}, nil).Once()
		client.On("GetStages", mock.Anything, httpStagesPage("h1", "stages-2")).Return(nil, errBoom).Once()

		collector := NewAPIGatewayCollector([]string{"us-east-1"}, staticClient[APIGatewayAPI](rest), staticClient[APIGatewayV2API](client))
		raw, err := collector.Fetch(context.Background())

		var callErr *entity.ServiceCallError
		require.ErrorAs(t, err, &callErr)
		assert.Equal(t, "GetStages h1", callErr.Op)
		assert.ErrorIs(t, err, errBoom)
		assert.Equal(t, []string{
			"https://r1.execute-api.us-east-1.amazonaws.com/prod",
			"https://h1.execute-api.us-east-1.amazonaws.com/beta",
		}, endpoints(t, collector, raw))
	})
}
