package repo

import (
	"testing"

	"go.uber.org/mock/gomock"

	"github.com/SmdhMdep/iot-status-api/pkg/common"
	"github.com/SmdhMdep/iot-status-api/pkg/repo/mocks"
	_ "github.com/SmdhMdep/iot-status-api/pkg/testing"
)

type testMocks struct {
	ledger   *mocks.MockLedgerStore
	fleet    *mocks.MockFleetStore
	schemas  *mocks.MockSchemaStore
	previews *mocks.MockPreviewProvider
	groups   *mocks.MockGroupsClient
}

func newTestRepo(t *testing.T) (*gomock.Controller, *Repo, *testMocks) {
	common.SetTestLoggerNop()

	ctrl := gomock.NewController(t)
	m := &testMocks{
		ledger:   mocks.NewMockLedgerStore(ctrl),
		fleet:    mocks.NewMockFleetStore(ctrl),
		schemas:  mocks.NewMockSchemaStore(ctrl),
		previews: mocks.NewMockPreviewProvider(ctrl),
		groups:   mocks.NewMockGroupsClient(ctrl),
	}
	r := New(Deps{
		Ledger:   m.ledger,
		Fleet:    m.fleet,
		Schemas:  m.schemas,
		Previews: m.previews,
		Groups:   m.groups,
	})
	return ctrl, r, m
}

func strPtr(s string) *string { return &s }
