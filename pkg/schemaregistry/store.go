package schemaregistry

import (
	"context"
	"crypto/md5"
	"encoding/base64"
	"encoding/hex"
	"sort"

	"github.com/SmdhMdep/iot-status-api/pkg/apperrors"
)

// Store is the schema registry adapter used by the device repository.
type Store struct {
	client Client
}

func NewStore(client Client) *Store {
	return &Store{client: client}
}

// HashSchema computes the content hash the registry indexes schemas by.
func HashSchema(schemaText, provider string) string {
	sum := md5.Sum([]byte(schemaText + provider))
	return hex.EncodeToString(sum[:])
}

// GetByHash finds the registered spec matching the schema text. The hash is
// salted with the provider and the owner is checked again on the result: a
// hash collision must never leak another provider's schema.
func (s *Store) GetByHash(ctx context.Context, provider, schemaText string) (*Record, error) {
	records, err := s.client.QueryByHash(ctx, HashSchema(schemaText, provider))
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}

	record := records[0]
	if record.Provider != provider {
		return nil, nil
	}

	// the registry stores the hash, not necessarily the exact text given
	// here; echo back the text the device declared
	record.JSONSchema = schemaText
	return &record, nil
}

type ListInput struct {
	Provider *string
	Page     *string
	PageSize int
}

// List returns one page of registered schemas. The underlying store counts
// unfiltered items against the fetch limit, so a page scoped to a provider
// can come back short. Items are ordered by provider and title, newest
// version first.
func (s *Store) List(ctx context.Context, input ListInput) (*string, []Record, error) {
	startKey, err := decodePageKey(input.Page)
	if err != nil {
		return nil, nil, err
	}

	result, err := s.client.Scan(ctx, ScanInput{
		Provider: input.Provider,
		StartKey: startKey,
		Limit:    input.PageSize,
	})
	if err != nil {
		return nil, nil, err
	}

	items := result.Items
	sort.Slice(items, func(i, j int) bool {
		if items[i].Provider != items[j].Provider {
			return items[i].Provider < items[j].Provider
		}
		if items[i].Title != items[j].Title {
			return items[i].Title < items[j].Title
		}
		return items[i].Version > items[j].Version
	})

	return encodePageKey(result.LastEvaluatedKey), items, nil
}

// Get returns the schema spec by ID when it exists and is owned by the
// provider.
func (s *Store) Get(ctx context.Context, provider *string, id string) (*Record, error) {
	record, err := s.client.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, nil
	}
	if provider != nil && record.Provider != *provider {
		return nil, nil
	}
	return record, nil
}

func decodePageKey(page *string) (string, error) {
	if page == nil || *page == "" {
		return "", nil
	}
	decoded, err := base64.StdEncoding.DecodeString(*page)
	if err != nil {
		return "", apperrors.InvalidArgument("invalid page key")
	}
	return string(decoded), nil
}

func encodePageKey(key string) *string {
	if key == "" {
		return nil
	}
	encoded := base64.StdEncoding.EncodeToString([]byte(key))
	return &encoded
}
