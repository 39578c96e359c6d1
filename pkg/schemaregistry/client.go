// Package schemaregistry adapts the JSON schema registry. Schemas are
// looked up by a content hash so a device's declared schema text can be
// matched back to its registered spec.
package schemaregistry

import "context"

//go:generate mockgen -source=client.go -destination=mocks/mock_client.go -package=mocks

// Record is a raw schema registry item.
type Record struct {
	ID         string
	Provider   string
	Title      string
	Version    int
	JSONSchema string
	SchemaHash string
}

// ScanInput is one registry fetch. Limit counts items examined before the
// provider filter applies; LastEvaluatedKey is the raw key of the last
// examined item.
type ScanInput struct {
	Provider *string
	StartKey string
	Limit    int
}

type ScanOutput struct {
	Items            []Record
	LastEvaluatedKey string
}

// Client is the narrow contract of the external schema registry store:
// get-by-key, a scan over all registered schemas, and a secondary index
// lookup on the content hash.
type Client interface {
	Get(ctx context.Context, id string) (*Record, error)
	Scan(ctx context.Context, input ScanInput) (ScanOutput, error)
	QueryByHash(ctx context.Context, hash string) ([]Record, error)
}
