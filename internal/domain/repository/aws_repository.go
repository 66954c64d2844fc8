package repository

import (
	"context"

	"github.com/diillson/aws-external-assets-go/internal/domain/entity"
)

// AWSRepository defines the interface for AWS API interactions.
type AWSRepository interface {
	// CheckCredentials resolves credentials through the default chain without calling any service.
	CheckCredentials(ctx context.Context, profile string) error
	GetAccountID(ctx context.Context, profile string) (string, error)
	GetAccessibleRegions(ctx context.Context, profile string) ([]string, error)

	// Collectors returns one collector per resource type in canonical order.
	Collectors(profile string, regions []string) []ResourceCollector
}

// ResourceCollector fetches raw records from one AWS service and maps them onto the
// common record shape.
type ResourceCollector interface {
	ResourceType() entity.ResourceType

	// Fetch follows pagination until exhausted. It may return records collected so far
	// together with an error when part of the scope (e.g. one region) failed.
	Fetch(ctx context.Context) ([]entity.RawRecord, error)

	// Normalize maps one raw record to zero or more records. A malformed record yields a
	// *entity.NormalizationError.
	Normalize(raw entity.RawRecord) ([]entity.ResourceRecord, error)
}
