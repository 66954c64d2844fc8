package types

import "errors"

var (
	ErrNoCredentials         = errors.New("no usable AWS credentials found. Please configure AWS CLI first")
	ErrAccountIdentity       = errors.New("unable to resolve the AWS account ID")
	ErrWriteReport           = errors.New("unable to write report")
	ErrUnsupportedReportType = errors.New("unsupported report type")
	ErrNoServicesSelected    = errors.New("no services selected for collection")
	ErrUnknownService        = errors.New("unknown service")
)
