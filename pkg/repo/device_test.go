package repo

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/SmdhMdep/iot-status-api/pkg/apperrors"
	"github.com/SmdhMdep/iot-status-api/pkg/fleet"
	"github.com/SmdhMdep/iot-status-api/pkg/ledger"
	"github.com/SmdhMdep/iot-status-api/pkg/models"
	"github.com/SmdhMdep/iot-status-api/pkg/schemaregistry"
)

func provisionedRecord() *ledger.Record {
	return &ledger.Record{
		SerialNumber:       "sensor-1",
		Provider:           strPtr("acme-corp"),
		Organization:       "acme",
		Project:            "soil",
		ProvisioningStatus: strPtr("ENABLED"),
		DataSchema:         strPtr(`{"type":"object"}`),
		PolicyDocument: &ledger.PolicyDocument{
			Statement: []ledger.PolicyStatement{
				{Action: "iot:Connect", Resource: "arn:client/sensor-1"},
				{Action: "iot:Publish", Resource: "arn:topic/$aws/rules/ingest/v1/acme/soil/stream"},
			},
		},
	}
}

func TestGetDevice_InvalidNameBeforeStores(t *testing.T) {
	ctrl, r, _ := newTestRepo(t)
	defer ctrl.Finish()

	// no store expectations: validation happens first
	_, err := r.GetDevice(context.Background(), GetDeviceInput{Name: "bad name"})
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindInvalidArgument))
}

func TestGetDevice_NotRegistered(t *testing.T) {
	ctrl, r, m := newTestRepo(t)
	defer ctrl.Finish()

	m.ledger.EXPECT().
		FindDevice(gomock.Any(), nil, nil, "sensor-x").
		Return(nil, nil)

	_, err := r.GetDevice(context.Background(), GetDeviceInput{Name: "sensor-x"})
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}

func TestGetDevice_FullView(t *testing.T) {
	ctrl, r, m := newTestRepo(t)
	defer ctrl.Finish()
	ctx := context.Background()

	record := provisionedRecord()
	m.ledger.EXPECT().
		FindDevice(gomock.Any(), gomock.Eq(strPtr("acme-corp")), nil, "sensor-1").
		Return(record, nil)
	m.fleet.EXPECT().
		FindDevice(gomock.Any(), gomock.Eq(strPtr("acme-corp")), nil, "sensor-1").
		Return(&fleet.Thing{
			ThingName:    "sensor-1",
			Connectivity: &fleet.ThingConnectivity{Connected: true, Timestamp: 1717171717000},
		}, nil)
	m.schemas.EXPECT().
		GetByHash(gomock.Any(), "acme-corp", *record.DataSchema).
		Return(&schemaregistry.Record{
			ID: "schema-1", Provider: "acme-corp", Title: "Soil", Version: 1,
			JSONSchema: *record.DataSchema,
		}, nil)
	ts := models.Timestamp(1717000000)
	m.previews.EXPECT().
		GetStreamPreview(gomock.Any(), "$aws/rules/ingest/v1/acme/soil/stream").
		Return(&models.StreamPreview{Text: "l1\nl2", LastBatchTimestamp: &ts}, nil)

	device, err := r.GetDevice(ctx, GetDeviceInput{Provider: strPtr("Acme Corp"), Name: "sensor-1"})
	require.NoError(t, err)
	assert.Equal(t, "sensor-1", device.Name)
	require.NotNil(t, device.Connectivity)
	assert.True(t, device.Connectivity.Connected)
	require.NotNil(t, device.SchemaSpec)
	require.NotNil(t, device.StreamPreview)
	assert.Equal(t, "l1\nl2", *device.StreamPreview)
	require.NotNil(t, device.LastStreamBatchTimestamp)
}

func TestGetDevice_BriefSkipsEnrichment(t *testing.T) {
	ctrl, r, m := newTestRepo(t)
	defer ctrl.Finish()

	m.ledger.EXPECT().
		FindDevice(gomock.Any(), nil, nil, "sensor-1").
		Return(provisionedRecord(), nil)
	m.fleet.EXPECT().
		FindDevice(gomock.Any(), nil, nil, "sensor-1").
		Return(nil, nil)
	// no schema or preview expectations

	device, err := r.GetDevice(context.Background(), GetDeviceInput{Name: "sensor-1", Brief: true})
	require.NoError(t, err)
	assert.Nil(t, device.SchemaSpec)
	assert.Nil(t, device.StreamPreview)
}

func TestGetDevice_PreviewFailureUsesPlaceholder(t *testing.T) {
	ctrl, r, m := newTestRepo(t)
	defer ctrl.Finish()

	record := provisionedRecord()
	record.DataSchema = nil
	m.ledger.EXPECT().FindDevice(gomock.Any(), nil, nil, "sensor-1").Return(record, nil)
	m.fleet.EXPECT().FindDevice(gomock.Any(), nil, nil, "sensor-1").Return(nil, nil)
	m.previews.EXPECT().
		GetStreamPreview(gomock.Any(), gomock.Any()).
		Return(nil, errors.New("bucket unavailable"))

	device, err := r.GetDevice(context.Background(), GetDeviceInput{Name: "sensor-1"})
	require.NoError(t, err)
	require.NotNil(t, device.StreamPreview)
	assert.Equal(t, previewErrorPlaceholder, *device.StreamPreview)
}

func TestGetDevice_ProvisionedWithoutPublishPolicy(t *testing.T) {
	ctrl, r, m := newTestRepo(t)
	defer ctrl.Finish()

	record := provisionedRecord()
	record.DataSchema = nil
	record.PolicyDocument = &ledger.PolicyDocument{
		Statement: []ledger.PolicyStatement{{Action: "iot:Connect", Resource: "arn:client/sensor-1"}},
	}
	m.ledger.EXPECT().FindDevice(gomock.Any(), nil, nil, "sensor-1").Return(record, nil)
	m.fleet.EXPECT().FindDevice(gomock.Any(), nil, nil, "sensor-1").Return(nil, nil)

	_, err := r.GetDevice(context.Background(), GetDeviceInput{Name: "sensor-1"})
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindInternal))
}

func TestGetDevice_UnprovisionedHasNoPreview(t *testing.T) {
	ctrl, r, m := newTestRepo(t)
	defer ctrl.Finish()

	record := &ledger.Record{SerialNumber: "sensor-2", Organization: "acme"}
	m.ledger.EXPECT().FindDevice(gomock.Any(), nil, nil, "sensor-2").Return(record, nil)
	m.fleet.EXPECT().FindDevice(gomock.Any(), nil, nil, "sensor-2").Return(nil, nil)
	// no preview expectation: an unprovisioned device has no topic

	device, err := r.GetDevice(context.Background(), GetDeviceInput{Name: "sensor-2"})
	require.NoError(t, err)
	assert.Nil(t, device.StreamPreview)
	require.NotNil(t, device.Connectivity)
	assert.Equal(t, fleet.DisconnectReasonNotProvisioned, *device.Connectivity.DisconnectReason)
}
