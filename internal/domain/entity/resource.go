package entity

import "strings"

// ResourceType identifies one category of AWS service whose endpoints are collected.
type ResourceType string

const (
	ResourceTypeDNS        ResourceType = "DNS"
	ResourceTypeAPIGateway ResourceType = "APIGateway"
	ResourceTypeLambda     ResourceType = "Lambda"
	ResourceTypeAppSync    ResourceType = "AppSync"
	ResourceTypeCloudFront ResourceType = "CloudFront"
	ResourceTypeAmplify    ResourceType = "Amplify"
	ResourceTypeELB        ResourceType = "ELB"
	ResourceTypeRDS        ResourceType = "RDS"
	ResourceTypeEC2        ResourceType = "EC2"
)

// AllResourceTypes is the canonical order used for collection and for report sheets.
var AllResourceTypes = []ResourceType{
	ResourceTypeDNS,
	ResourceTypeAPIGateway,
	ResourceTypeLambda,
	ResourceTypeAppSync,
	ResourceTypeCloudFront,
	ResourceTypeAmplify,
	ResourceTypeELB,
	ResourceTypeRDS,
	ResourceTypeEC2,
}

var sheetNames = map[ResourceType]string{
	ResourceTypeDNS:        "Route 53 DNS Records",
	ResourceTypeAPIGateway: "API Gateway Endpoints",
	ResourceTypeLambda:     "Lambda Functions",
	ResourceTypeAppSync:    "AppSync Endpoints",
	ResourceTypeCloudFront: "CloudFront Distributions",
	ResourceTypeAmplify:    "Amplify Apps",
	ResourceTypeELB:        "ELB Endpoints",
	ResourceTypeRDS:        "RDS Endpoints",
	ResourceTypeEC2:        "EC2 Instances",
}

// nameHeaders is the column title of ResourceRecord.Name for each type.
var nameHeaders = map[ResourceType]string{
	ResourceTypeDNS:        "Domain",
	ResourceTypeAPIGateway: "API Name",
	ResourceTypeLambda:     "Function Name",
	ResourceTypeAppSync:    "API Name",
	ResourceTypeCloudFront: "Distribution Name",
	ResourceTypeAmplify:    "App Name",
	ResourceTypeELB:        "Load Balancer Name",
	ResourceTypeRDS:        "DB Instance ID",
	ResourceTypeEC2:        "Instance ID",
}

var endpointHeaders = map[ResourceType]string{
	ResourceTypeDNS:        "Hostname",
	ResourceTypeAPIGateway: "Invoke URL",
	ResourceTypeLambda:     "Function URL",
	ResourceTypeAppSync:    "API URL",
	ResourceTypeCloudFront: "Domain Name",
	ResourceTypeAmplify:    "Branch URL",
	ResourceTypeELB:        "DNS Name",
	ResourceTypeRDS:        "Endpoint",
	ResourceTypeEC2:        "Public IP",
}

// SheetName returns the spreadsheet tab title for the resource type.
func (t ResourceType) SheetName() string {
	if name, ok := sheetNames[t]; ok {
		return name
	}
	return string(t)
}

// NameHeader returns the column title for the record name.
func (t ResourceType) NameHeader() string {
	if h, ok := nameHeaders[t]; ok {
		return h
	}
	return "Name"
}

// EndpointHeader returns the column title for the record endpoint.
func (t ResourceType) EndpointHeader() string {
	if h, ok := endpointHeaders[t]; ok {
		return h
	}
	return "Endpoint"
}

// Valid reports whether t is one of the known resource types.
func (t ResourceType) Valid() bool {
	_, ok := sheetNames[t]
	return ok
}

// ParseResourceType resolves a user supplied name (case insensitive) to a ResourceType.
func ParseResourceType(s string) (ResourceType, bool) {
	s = strings.TrimSpace(s)
	for _, t := range AllResourceTypes {
		if strings.EqualFold(string(t), s) {
			return t, true
		}
	}
	switch strings.ToLower(s) {
	case "route53":
		return ResourceTypeDNS, true
	case "apigw", "api-gateway":
		return ResourceTypeAPIGateway, true
	case "elbv2", "alb", "nlb":
		return ResourceTypeELB, true
	}
	return "", false
}

// Attribute is one auxiliary field of a record. Order is preserved so report columns are stable.
type Attribute struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// ResourceRecord is one discovered, externally reachable endpoint.
type ResourceRecord struct {
	Type     ResourceType `json:"resource_type"`
	Name     string       `json:"name"`
	Endpoint string       `json:"endpoint"`
	Extra    []Attribute  `json:"extra,omitempty"`
}

// NewResourceRecord builds a record, rejecting a blank endpoint.
func NewResourceRecord(t ResourceType, name, endpoint string, extra ...Attribute) (ResourceRecord, error) {
	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" {
		return ResourceRecord{}, &NormalizationError{Type: t, Reason: "empty endpoint for " + name}
	}
	return ResourceRecord{
		Type:     t,
		Name:     name,
		Endpoint: endpoint,
		Extra:    extra,
	}, nil
}

// Get returns the value of an extra attribute.
func (r ResourceRecord) Get(key string) (string, bool) {
	for _, a := range r.Extra {
		if a.Key == key {
			return a.Value, true
		}
	}
	return "", false
}

// ResourceTable holds the records of a single resource type in fetch order.
type ResourceTable struct {
	Type    ResourceType     `json:"resource_type"`
	Records []ResourceRecord `json:"records"`
}

// NewResourceTable creates an empty table.
func NewResourceTable(t ResourceType) *ResourceTable {
	return &ResourceTable{Type: t, Records: []ResourceRecord{}}
}

// Append adds records in order. Records of another type or with a blank endpoint are dropped
// and reported back as false.
func (t *ResourceTable) Append(records ...ResourceRecord) bool {
	ok := true
	for _, r := range records {
		if r.Type != t.Type || strings.TrimSpace(r.Endpoint) == "" {
			ok = false
			continue
		}
		t.Records = append(t.Records, r)
	}
	return ok
}

// Len returns the number of records.
func (t *ResourceTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Records)
}

// ExtraColumns returns the union of extra attribute keys in first-seen order.
func (t *ResourceTable) ExtraColumns() []string {
	seen := make(map[string]bool)
	var cols []string
	for _, r := range t.Records {
		for _, a := range r.Extra {
			if !seen[a.Key] {
				seen[a.Key] = true
				cols = append(cols, a.Key)
			}
		}
	}
	return cols
}
