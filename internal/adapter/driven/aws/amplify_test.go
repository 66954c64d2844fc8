package aws

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/amplify"
	amplifyTypes "github.com/aws/aws-sdk-go-v2/service/amplify/types"
	"github.com/diillson/aws-external-assets-go/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func appsPage(token string) interface{} {
	return mock.MatchedBy(func(in *amplify.ListAppsInput) bool {
		return aws.ToString(in.NextToken) == token
	})
}

func branchesPage(appID, token string) interface{} {
	return mock.MatchedBy(func(in *amplify.ListBranchesInput) bool {
		return aws.ToString(in.AppId) == appID && aws.ToString(in.NextToken) == token
	})
}

func amplifyApp(id string) amplifyTypes.App {
	return amplifyTypes.App{AppId: aws.String(id), Name: aws.String(id), DefaultDomain: aws.String(id + ".amplifyapp.com")}
}

func amplifyBranches(names ...string) []amplifyTypes.Branch {
	out := make([]amplifyTypes.Branch, 0, len(names))
	for _, n := range names {
		out = append(out, amplifyTypes.Branch{BranchName: aws.String(n)})
	}
	return out
}

func endpoints(t *testing.T, c interface {
	Normalize(entity.RawRecord) ([]entity.ResourceRecord, error)
}, raw []entity.RawRecord) []string {
	t.Helper()
	var out []string
	for _, r := range raw {
		recs, err := c.Normalize(r)
		require.NoError(t, err)
		for _, rec := range recs {
			out = append(out, rec.Endpoint)
		}
	}
	return out
}

func TestAmplifyCollector_Fetch(t *testing.T) {
	client := new(mockAmplify)
	client.On("ListApps", mock.Anything, appsPage("")).Return(&amplify.ListAppsOutput{
		Apps:      []amplifyTypes.App{amplifyApp("shop")},
		NextToken: aws.String("apps-2"),
	}, nil).Once()
	client.On("ListApps", mock.Anything, appsPage("apps-2")).Return(&amplify.ListAppsOutput{
		Apps: []amplifyTypes.App{amplifyApp("blog")},
	}, nil).Once()
	client.On("ListBranches", mock.Anything, branchesPage("shop", "")).Return(&amplify.ListBranchesOutput{
		Branches:  amplifyBranches("main"),
		NextToken: aws.String("branches-2"),
	}, nil).Once()
	client.On("ListBranches", mock.Anything, branchesPage("shop", "branches-2")).Return(&amplify.ListBranchesOutput{
		Branches: amplifyBranches("feature/cart"),
	}, nil).Once()
	client.On("ListBranches", mock.Anything, branchesPage("blog", "")).Return(&amplify.ListBranchesOutput{
		Branches: amplifyBranches("dev"),
	}, nil).Once()

	collector := NewAmplifyCollector([]string{"us-east-1"}, staticClient[AmplifyAPI](client))
	raw, err := collector.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{
		"https://main.shop.amplifyapp.com",
		"https://feature-cart.shop.amplifyapp.com",
		"https://dev.blog.amplifyapp.com",
	}, endpoints(t, collector, raw))
	client.AssertExpectations(t)
}

func TestAmplifyCollector_FetchErrorKeepsEarlierPages(t *testing.T) {
	client := new(mockAmplify)
	client.On("ListApps", mock.Anything, appsPage("")).Return(&amplify.ListAppsOutput{
		Apps: []amplifyTypes.App{amplifyApp("shop")},
	}, nil).Once()
	client.On("ListBranches", mock.Anything, branchesPage("shop", "")).Return(&amplify.ListBranchesOutput{
		Branches:  amplifyBranches("main"),
		NextToken: aws.String("branches-2"),
	}, nil).Once()
	client.On("ListBranches", mock.Anything, branchesPage("shop", "branches-2")).Return(nil, errBoom).Once()

	collector := NewAmplifyCollector([]string{"eu-west-1"}, staticClient[AmplifyAPI](client))
	raw, err := collector.Fetch(context.Background())

	var callErr *entity.ServiceCallError
	require.ErrorAs(t, err, &callErr)
	assert.Equal(t, "ListBranches shop", callErr.Op)
	assert.Equal(t, "eu-west-1", callErr.Region)
	assert.Equal(t, []string{"https://main.shop.amplifyapp.com"}, endpoints(t, collector, raw))
}
