package repo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/SmdhMdep/iot-status-api/pkg/fleet"
	"github.com/SmdhMdep/iot-status-api/pkg/ledger"
)

func TestExportDevices_OuterMerge(t *testing.T) {
	ctrl, r, m := newTestRepo(t)
	defer ctrl.Finish()
	ctx := context.Background()

	// ledger drains across two pages, no filters beyond scope
	ledgerToken := "page-2"
	gomock.InOrder(
		m.ledger.EXPECT().
			ListDevices(gomock.Any(), gomock.Eq(ledger.ListInput{
				Organization: strPtr("acme"),
				PageSize:     exportBatchSize,
			})).
			Return(&ledgerToken, []ledger.Record{
				{SerialNumber: "dev-a", Organization: "acme"},
				{SerialNumber: "dev-b", Organization: "acme", Label: strPtr("DEPLOYED")},
			}, nil),
		m.ledger.EXPECT().
			ListDevices(gomock.Any(), gomock.Eq(ledger.ListInput{
				Organization: strPtr("acme"),
				Page:         &ledgerToken,
				PageSize:     exportBatchSize,
			})).
			Return(nil, []ledger.Record{
				{SerialNumber: "dev-c", Organization: "acme"},
			}, nil),
	)

	// the fleet drains with deactivated devices included
	m.fleet.EXPECT().
		ListDevices(gomock.Any(), gomock.Eq(fleet.ListInput{
			Organization: strPtr("acme"),
			PageSize:     exportBatchSize,
			ActiveOnly:   false,
		})).
		Return(nil, []fleet.Thing{
			{ThingName: "dev-b", Connectivity: &fleet.ThingConnectivity{Connected: true, Timestamp: 1000}},
			{ThingName: "dev-orphan"},
		}, nil)

	devices, err := r.ExportDevices(ctx, nil, strPtr("Acme"))
	require.NoError(t, err)
	require.Len(t, devices, 3)

	byName := map[string]int{}
	for i, device := range devices {
		byName[device.Name] = i
	}

	// ledger-only records export as unprovisioned
	a := devices[byName["dev-a"]]
	require.NotNil(t, a.Connectivity)
	assert.Equal(t, fleet.DisconnectReasonNotProvisioned, *a.Connectivity.DisconnectReason)

	// matched records carry live connectivity and the ledger label
	b := devices[byName["dev-b"]]
	require.NotNil(t, b.Connectivity)
	assert.True(t, b.Connectivity.Connected)
	require.NotNil(t, b.Label)

	// fleet entries without a ledger identity are not exported
	_, exported := byName["dev-orphan"]
	assert.False(t, exported)
}
