package schemaregistry_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/SmdhMdep/iot-status-api/pkg/apperrors"
	"github.com/SmdhMdep/iot-status-api/pkg/schemaregistry"
	"github.com/SmdhMdep/iot-status-api/pkg/schemaregistry/mocks"
	_ "github.com/SmdhMdep/iot-status-api/pkg/testing"
)

const schemaText = `{"type":"object","properties":{"temperature":{"type":"number"}}}`

func TestHashSchema(t *testing.T) {
	// the hash is salted with the provider, the same text registered by two
	// providers indexes under two different hashes
	assert.NotEqual(t,
		schemaregistry.HashSchema(schemaText, "acme-corp"),
		schemaregistry.HashSchema(schemaText, "rival-corp"))
	assert.Equal(t,
		schemaregistry.HashSchema(schemaText, "acme-corp"),
		schemaregistry.HashSchema(schemaText, "acme-corp"))
}

func TestGetByHash(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := mocks.NewMockClient(ctrl)
	store := schemaregistry.NewStore(client)
	ctx := context.Background()

	hash := schemaregistry.HashSchema(schemaText, "acme-corp")
	client.EXPECT().
		QueryByHash(gomock.Any(), gomock.Eq(hash)).
		Return([]schemaregistry.Record{{
			ID:         "schema-1",
			Provider:   "acme-corp",
			Title:      "Soil Sensor",
			Version:    3,
			SchemaHash: hash,
		}}, nil)

	record, err := store.GetByHash(ctx, "acme-corp", schemaText)
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Equal(t, "schema-1", record.ID)
	assert.Equal(t, 3, record.Version)
	// the declared text is echoed back, not whatever the registry stored
	assert.Equal(t, schemaText, record.JSONSchema)
}

func TestGetByHash_NoCrossProviderLeak(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := mocks.NewMockClient(ctrl)
	store := schemaregistry.NewStore(client)

	client.EXPECT().
		QueryByHash(gomock.Any(), gomock.Any()).
		Return([]schemaregistry.Record{{ID: "schema-x", Provider: "rival-corp"}}, nil)

	record, err := store.GetByHash(context.Background(), "acme-corp", schemaText)
	require.NoError(t, err)
	assert.Nil(t, record)
}

func TestGetByHash_NoMatch(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := mocks.NewMockClient(ctrl)
	store := schemaregistry.NewStore(client)

	client.EXPECT().QueryByHash(gomock.Any(), gomock.Any()).Return(nil, nil)

	record, err := store.GetByHash(context.Background(), "acme-corp", schemaText)
	require.NoError(t, err)
	assert.Nil(t, record)
}

func TestList_SortsAndPaginates(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := mocks.NewMockClient(ctrl)
	store := schemaregistry.NewStore(client)
	provider := "acme-corp"

	client.EXPECT().
		Scan(gomock.Any(), gomock.Eq(schemaregistry.ScanInput{Provider: &provider, Limit: 10})).
		Return(schemaregistry.ScanOutput{
			Items: []schemaregistry.Record{
				{ID: "s-2", Provider: "acme-corp", Title: "Soil Sensor", Version: 1},
				{ID: "s-3", Provider: "acme-corp", Title: "Soil Sensor", Version: 4},
				{ID: "s-1", Provider: "acme-corp", Title: "Air Sensor", Version: 2},
			},
			LastEvaluatedKey: "s-3",
		}, nil)

	next, records, err := store.List(context.Background(), schemaregistry.ListInput{
		Provider: &provider,
		PageSize: 10,
	})
	require.NoError(t, err)
	require.Len(t, records, 3)
	// ordered by title, then newest version first
	assert.Equal(t, "s-1", records[0].ID)
	assert.Equal(t, "s-3", records[1].ID)
	assert.Equal(t, "s-2", records[2].ID)
	require.NotNil(t, next)

	// the returned page resumes the scan where it stopped
	client.EXPECT().
		Scan(gomock.Any(), gomock.Eq(schemaregistry.ScanInput{Provider: &provider, StartKey: "s-3", Limit: 10})).
		Return(schemaregistry.ScanOutput{}, nil)

	next, records, err = store.List(context.Background(), schemaregistry.ListInput{
		Provider: &provider,
		Page:     next,
		PageSize: 10,
	})
	require.NoError(t, err)
	assert.Empty(t, records)
	assert.Nil(t, next)
}

func TestList_InvalidPageKey(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := schemaregistry.NewStore(mocks.NewMockClient(ctrl))
	page := "%%% not base64 %%%"

	_, _, err := store.List(context.Background(), schemaregistry.ListInput{Page: &page})
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindInvalidArgument))
}

func TestGet_ProviderScoping(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := mocks.NewMockClient(ctrl)
	store := schemaregistry.NewStore(client)
	ctx := context.Background()

	provider := "acme-corp"
	client.EXPECT().
		Get(gomock.Any(), gomock.Eq("schema-1")).
		Return(&schemaregistry.Record{ID: "schema-1", Provider: "acme-corp"}, nil).
		Times(2)

	record, err := store.Get(ctx, &provider, "schema-1")
	require.NoError(t, err)
	assert.NotNil(t, record)

	other := "rival-corp"
	record, err = store.Get(ctx, &other, "schema-1")
	require.NoError(t, err)
	assert.Nil(t, record)
}
