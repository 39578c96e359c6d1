package fleet

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SmdhMdep/iot-status-api/pkg/apperrors"
	"github.com/SmdhMdep/iot-status-api/pkg/common"
	"github.com/SmdhMdep/iot-status-api/pkg/db"
	_ "github.com/SmdhMdep/iot-status-api/pkg/testing"
)

func newTestStore(t *testing.T) (*Store, *SQLClient) {
	common.SetTestLoggerNop()

	database := db.GetInstance(db.UseMemorySqliteDialector(), OfflineEntities()...)
	require.NoError(t, database.Conn.Exec("DELETE FROM fleet_index").Error)

	client := NewSQLClient(database)
	return NewStore(client), client
}

func strPtr(s string) *string { return &s }

func TestListDevices_ActiveOnly(t *testing.T) {
	store, client := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, client.Put(ctx, Thing{
		ThingName:  "sensor-active",
		Attributes: map[string]string{AttrRegistrationWay: "fleet"},
	}))
	require.NoError(t, client.Put(ctx, Thing{
		ThingName:       "sensor-dormant",
		Attributes:      map[string]string{AttrRegistrationWay: "fleet"},
		ThingGroupNames: []string{DeactivatedGroupName},
	}))

	next, things, err := store.ListDevices(ctx, ListInput{ActiveOnly: true, PageSize: 10})
	require.NoError(t, err)
	assert.Nil(t, next)
	require.Len(t, things, 1)
	assert.Equal(t, "sensor-active", things[0].ThingName)

	next, things, err = store.ListDevices(ctx, ListInput{PageSize: 10})
	require.NoError(t, err)
	assert.Nil(t, next)
	assert.Len(t, things, 2)
}

func TestListDevices_Pagination(t *testing.T) {
	store, client := newTestStore(t)
	ctx := context.Background()

	for _, name := range []string{"s-1", "s-2", "s-3"} {
		require.NoError(t, client.Put(ctx, Thing{
			ThingName:  name,
			Attributes: map[string]string{AttrRegistrationWay: "fleet"},
		}))
	}

	next, things, err := store.ListDevices(ctx, ListInput{PageSize: 2})
	require.NoError(t, err)
	require.NotNil(t, next)
	require.Len(t, things, 2)
	assert.Equal(t, "s-1", things[0].ThingName)
	assert.Equal(t, "s-2", things[1].ThingName)

	next, things, err = store.ListDevices(ctx, ListInput{PageSize: 2, Page: next})
	require.NoError(t, err)
	assert.Nil(t, next)
	require.Len(t, things, 1)
	assert.Equal(t, "s-3", things[0].ThingName)
}

func TestFindDevice(t *testing.T) {
	store, client := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, client.Put(ctx, Thing{
		ThingName: "sensor-42",
		Attributes: map[string]string{
			AttrRegistrationWay: "fleet",
			AttrSensorProvider:  "acme-corp",
		},
	}))

	thing, err := store.FindDevice(ctx, nil, nil, "sensor-42")
	require.NoError(t, err)
	require.NotNil(t, thing)
	assert.Equal(t, "sensor-42", thing.ThingName)

	thing, err = store.FindDevice(ctx, strPtr("rival-corp"), nil, "sensor-42")
	require.NoError(t, err)
	assert.Nil(t, thing)

	_, err = store.FindDevice(ctx, nil, nil, "bad name with spaces")
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindInvalidArgument))

	_, err = store.FindDevice(ctx, strPtr(`acme"corp`), nil, "sensor-42")
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindInvalidArgument))
}

func TestUpdateActiveState(t *testing.T) {
	store, client := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, client.Put(ctx, Thing{
		ThingName:  "sensor-toggle",
		Attributes: map[string]string{AttrRegistrationWay: "fleet"},
	}))

	require.NoError(t, store.UpdateActiveState(ctx, "sensor-toggle", false))
	thing, err := store.FindDevice(ctx, nil, nil, "sensor-toggle")
	require.NoError(t, err)
	assert.Contains(t, thing.ThingGroupNames, DeactivatedGroupName)

	// deactivating twice must not duplicate the membership
	require.NoError(t, store.UpdateActiveState(ctx, "sensor-toggle", false))
	thing, err = store.FindDevice(ctx, nil, nil, "sensor-toggle")
	require.NoError(t, err)
	assert.Len(t, thing.ThingGroupNames, 1)

	require.NoError(t, store.UpdateActiveState(ctx, "sensor-toggle", true))
	thing, err = store.FindDevice(ctx, nil, nil, "sensor-toggle")
	require.NoError(t, err)
	assert.NotContains(t, thing.ThingGroupNames, DeactivatedGroupName)

	err = store.UpdateActiveState(ctx, "sensor-unknown", false)
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}

func TestDisconnectReasonDescription(t *testing.T) {
	assert.NotEmpty(t, DisconnectReasonDescription("AUTH_ERROR"))
	assert.NotEmpty(t, DisconnectReasonDescription(DisconnectReasonNotProvisioned))
	assert.Empty(t, DisconnectReasonDescription("SOMETHING_ELSE"))
}
