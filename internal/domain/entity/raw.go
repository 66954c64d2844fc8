package entity

// RawRecord is a service-native record produced by a fetcher. Each service defines its own
// concrete type; the normalizer for that service validates it.
type RawRecord interface {
	ResourceType() ResourceType
}
