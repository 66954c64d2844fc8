package aws

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/amplify"
	amplifyTypes "github.com/aws/aws-sdk-go-v2/service/amplify/types"
	"github.com/diillson/aws-external-assets-go/internal/domain/entity"
)

// AmplifyAPI is the subset of the Amplify client used by the collector.
type AmplifyAPI interface {
	ListApps(ctx context.Context, params *amplify.ListAppsInput, optFns ...func(*amplify.Options)) (*amplify.ListAppsOutput, error)
	ListBranches(ctx context.Context, params *amplify.ListBranchesInput, optFns ...func(*amplify.Options)) (*amplify.ListBranchesOutput, error)
}

// AmplifyBranch is one branch of an Amplify app.
type AmplifyBranch struct {
	Region string
	App    amplifyTypes.App
	Branch amplifyTypes.Branch
}

func (AmplifyBranch) ResourceType() entity.ResourceType { return entity.ResourceTypeAmplify }

// AmplifyCollector lists app branches in every region.
type AmplifyCollector struct {
	regions []string
	client  ClientFunc[AmplifyAPI]
}

func NewAmplifyCollector(regions []string, client ClientFunc[AmplifyAPI]) *AmplifyCollector {
	return &AmplifyCollector{regions: regions, client: client}
}

func (c *AmplifyCollector) ResourceType() entity.ResourceType { return entity.ResourceTypeAmplify }

func (c *AmplifyCollector) Fetch(ctx context.Context) ([]entity.RawRecord, error) {
	return fetchRegions(ctx, c.ResourceType(), c.regions, c.fetchRegion)
}

func (c *AmplifyCollector) fetchRegion(ctx context.Context, region string) ([]entity.RawRecord, error) {
	t := c.ResourceType()
	client, err := c.client(ctx, region)
	if err != nil {
		return nil, err
	}

	var records []entity.RawRecord
	appsInput := &amplify.ListAppsInput{}
	for {
		apps, err := client.ListApps(ctx, appsInput)
		if err != nil {
			return records, callError(t, region, "ListApps", err)
		}

		for _, app := range apps.Apps {
			branchesInput := &amplify.ListBranchesInput{AppId: app.AppId}
			for {
				branches, err := client.ListBranches(ctx, branchesInput)
				if err != nil {
					return records, callError(t, region, "ListBranches "+aws.ToString(app.AppId), err)
				}
				for _, branch := range branches.Branches {
					records = append(records, AmplifyBranch{Region: region, App: app, Branch: branch})
				}
				if aws.ToString(branches.NextToken) == "" {
					break
				}
				branchesInput.NextToken = branches.NextToken
			}
		}

		if aws.ToString(apps.NextToken) == "" {
			break
		}
		appsInput.NextToken = apps.NextToken
	}
	return records, nil
}

// Normalize builds the branch access URL https://<branch>.<default domain>. Amplify publishes
// branches with "/" in their names under a "-" separated subdomain.
func (c *AmplifyCollector) Normalize(raw entity.RawRecord) ([]entity.ResourceRecord, error) {
	t := c.ResourceType()
	rec, ok := raw.(AmplifyBranch)
	if !ok {
		return nil, unexpectedRaw(t, raw)
	}

	appID := aws.ToString(rec.App.AppId)
	domain := aws.ToString(rec.App.DefaultDomain)
	if domain == "" {
		return nil, notNormalizable(t, "app "+appID+" has no default domain")
	}

	branch := aws.ToString(rec.Branch.BranchName)
	subdomain := aws.ToString(rec.Branch.DisplayName)
	if subdomain == "" {
		subdomain = strings.ReplaceAll(branch, "/", "-")
	}
	if subdomain == "" {
		return nil, notNormalizable(t, "branch without a name in app "+appID)
	}

	appName := aws.ToString(rec.App.Name)
	record, err := entity.NewResourceRecord(t, appName, fmt.Sprintf("https://%s.%s", subdomain, domain),
		entity.Attribute{Key: "Region", Value: rec.Region},
		entity.Attribute{Key: "App ID", Value: appID},
		entity.Attribute{Key: "Branch Name", Value: branch},
	)
	if err != nil {
		return nil, err
	}
	return []entity.ResourceRecord{record}, nil
}
