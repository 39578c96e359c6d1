package repo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/SmdhMdep/iot-status-api/pkg/apperrors"
	"github.com/SmdhMdep/iot-status-api/pkg/schemaregistry"
)

func TestListSchemas(t *testing.T) {
	ctrl, r, m := newTestRepo(t)
	defer ctrl.Finish()

	next := "bmV4dA=="
	m.schemas.EXPECT().
		List(gomock.Any(), gomock.Eq(schemaregistry.ListInput{
			Provider: strPtr("acme-corp"),
			PageSize: 20,
		})).
		Return(&next, []schemaregistry.Record{{
			ID:         "schema-1",
			Provider:   "acme-corp",
			Title:      "Soil Sensor",
			Version:    3,
			JSONSchema: `{"type":"object"}`,
		}}, nil)

	// the provider scope is canonicalized before it reaches the registry
	page, err := r.ListSchemas(context.Background(), ListSchemasInput{
		Provider: strPtr("Acme Corp"),
	})
	require.NoError(t, err)
	require.NotNil(t, page.NextPage)
	assert.Equal(t, next, *page.NextPage)
	require.Len(t, page.Schemas, 1)
	assert.Equal(t, "schema-1", page.Schemas[0].ID)
	assert.Equal(t, "Soil Sensor", page.Schemas[0].Title)
	assert.Equal(t, 3, page.Schemas[0].Version)
	assert.Equal(t, `{"type":"object"}`, page.Schemas[0].Schema)
}

func TestGetSchema(t *testing.T) {
	ctrl, r, m := newTestRepo(t)
	defer ctrl.Finish()

	m.schemas.EXPECT().
		Get(gomock.Any(), strPtr("acme-corp"), "schema-1").
		Return(&schemaregistry.Record{
			ID:         "schema-1",
			Provider:   "acme-corp",
			Title:      "Soil Sensor",
			Version:    3,
			JSONSchema: `{"type":"object"}`,
		}, nil)

	spec, err := r.GetSchema(context.Background(), strPtr("acme-corp"), "schema-1")
	require.NoError(t, err)
	assert.Equal(t, "schema-1", spec.ID)
	assert.Equal(t, "acme-corp", spec.Provider)
}

func TestGetSchema_NotFound(t *testing.T) {
	ctrl, r, m := newTestRepo(t)
	defer ctrl.Finish()

	m.schemas.EXPECT().
		Get(gomock.Any(), nil, "schema-missing").
		Return(nil, nil)

	_, err := r.GetSchema(context.Background(), nil, "schema-missing")
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
	assert.Contains(t, err.Error(), "no such schema")
}
