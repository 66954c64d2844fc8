package entity

import "fmt"

// ServiceCallError is a failed AWS API call for one service, optionally scoped to a region.
type ServiceCallError struct {
	Type   ResourceType
	Region string
	Op     string
	Err    error
}

func (e *ServiceCallError) Error() string {
	if e.Region != "" {
		return fmt.Sprintf("%s %s in %s: %v", e.Type, e.Op, e.Region, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Type, e.Op, e.Err)
}

func (e *ServiceCallError) Unwrap() error {
	return e.Err
}

// NormalizationError is a raw record that does not have the shape its normalizer expects.
type NormalizationError struct {
	Type   ResourceType
	Reason string
}

func (e *NormalizationError) Error() string {
	return fmt.Sprintf("cannot normalize %s record: %s", e.Type, e.Reason)
}
