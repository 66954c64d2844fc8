package aws

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/smithy-go"
	"github.com/diillson/aws-external-assets-go/internal/domain/entity"
)

// regionFetch collects the raw records of one service in one region.
type regionFetch func(ctx context.Context, region string) ([]entity.RawRecord, error)

// fetchRegions runs fetch for every region concurrently. Records are concatenated in region
// order; a failing region only loses its own records.
func fetchRegions(ctx context.Context, t entity.ResourceType, regions []string, fetch regionFetch) ([]entity.RawRecord, error) {
	results := make([][]entity.RawRecord, len(regions))
	errs := make([]error, len(regions))

	var wg sync.WaitGroup
	for i, region := range regions {
		wg.Add(1)
		go func(i int, rgn string) {
			defer wg.Done()
			records, err := fetch(ctx, rgn)
			if err != nil && serviceNotOffered(err) {
				slog.Debug("Service not offered in region", "service", t, "region", rgn, "error", err)
				err = nil
			}
			if err != nil {
				err = asServiceCallError(t, rgn, err)
				slog.Debug("Region fetch failed", "service", t, "region", rgn, "error", err)
			}
			results[i], errs[i] = records, err
		}(i, region)
	}
	wg.Wait()

	var records []entity.RawRecord
	for i, r := range results {
		slog.Debug("Region fetched", "service", t, "region", regions[i], "records", len(r))
		records = append(records, r...)
	}
	return records, errors.Join(errs...)
}

// serviceNotOffered reports whether err means the service has no endpoint in the region:
// the SDK could not resolve one, or its hostname does not exist in DNS.
func serviceNotOffered(err error) bool {
	var endpointErr *aws.EndpointNotFoundError
	if errors.As(err, &endpointErr) {
		return true
	}
	var dnsErr *net.DNSError
	return errors.As(err, &dnsErr) && dnsErr.IsNotFound
}

func asServiceCallError(t entity.ResourceType, region string, err error) error {
	var callErr *entity.ServiceCallError
	if errors.As(err, &callErr) {
		return err
	}
	return &entity.ServiceCallError{Type: t, Region: region, Op: "client", Err: err}
}

func callError(t entity.ResourceType, region, op string, err error) error {
	return &entity.ServiceCallError{Type: t, Region: region, Op: op, Err: err}
}

func apiErrorCode(err error) string {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return apiErr.ErrorCode()
	}
	return ""
}

func isNotFound(err error) bool {
	switch apiErrorCode(err) {
	case "ResourceNotFoundException", "NotFoundException", "NotFound":
		return true
	}
	return false
}

func isAccessDenied(err error) bool {
	code := apiErrorCode(err)
	return strings.HasPrefix(code, "AccessDenied") ||
		code == "UnauthorizedOperation" ||
		code == "AuthorizationError" ||
		code == "UnrecognizedClientException"
}

func notNormalizable(t entity.ResourceType, reason string) error {
	return &entity.NormalizationError{Type: t, Reason: reason}
}

func unexpectedRaw(t entity.ResourceType, raw entity.RawRecord) error {
	return &entity.NormalizationError{Type: t, Reason: fmt.Sprintf("unexpected raw record %T", raw)}
}
