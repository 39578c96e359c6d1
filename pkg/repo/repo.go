// Package repo is the device directory aggregation layer. It reconciles the
// provisioning ledger and the live fleet index into one consistent device
// view, paginates transparently across both, and coordinates the one
// cross-store write of the system (label updates).
package repo

import (
	"context"

	"github.com/SmdhMdep/iot-status-api/pkg/fleet"
	"github.com/SmdhMdep/iot-status-api/pkg/ledger"
	"github.com/SmdhMdep/iot-status-api/pkg/models"
	"github.com/SmdhMdep/iot-status-api/pkg/schemaregistry"
)

//go:generate mockgen -source=repo.go -destination=mocks/mock_repo.go -package=mocks

// DefaultPageSize bounds one listing page unless the caller asks for less.
const DefaultPageSize = 20

type LedgerStore interface {
	ListDevices(ctx context.Context, input ledger.ListInput) (*string, []ledger.Record, error)
	FindDevice(ctx context.Context, provider, organization *string, name string) (*ledger.Record, error)
	UpdateLabel(ctx context.Context, input ledger.UpdateLabelInput) error
}

type FleetStore interface {
	ListDevices(ctx context.Context, input fleet.ListInput) (*string, []fleet.Thing, error)
	FindDevice(ctx context.Context, provider, organization *string, name string) (*fleet.Thing, error)
	UpdateActiveState(ctx context.Context, name string, active bool) error
}

type SchemaStore interface {
	List(ctx context.Context, input schemaregistry.ListInput) (*string, []schemaregistry.Record, error)
	Get(ctx context.Context, provider *string, id string) (*schemaregistry.Record, error)
	GetByHash(ctx context.Context, provider, schemaText string) (*schemaregistry.Record, error)
}

// PreviewProvider fetches a short text preview of a device's latest stream
// batch. Implementations live outside the core; failures are non-critical.
type PreviewProvider interface {
	GetStreamPreview(ctx context.Context, topic string) (*models.StreamPreview, error)
}

// GroupsClient lists identity provider groups, used for provider listings.
type GroupsClient interface {
	Groups(ctx context.Context, nameLike string, page, pageSize int) (*int, []string, error)
}

type Repo struct {
	Ledger   LedgerStore
	Fleet    FleetStore
	Schemas  SchemaStore
	Previews PreviewProvider
	Groups   GroupsClient
	PageSize int
}

type Deps struct {
	Ledger   LedgerStore
	Fleet    FleetStore
	Schemas  SchemaStore
	Previews PreviewProvider
	Groups   GroupsClient
}

func New(deps Deps) *Repo {
	return &Repo{
		Ledger:   deps.Ledger,
		Fleet:    deps.Fleet,
		Schemas:  deps.Schemas,
		Previews: deps.Previews,
		Groups:   deps.Groups,
		PageSize: DefaultPageSize,
	}
}

func (r *Repo) pageSize(requested int) int {
	if requested > 0 {
		return requested
	}
	return r.PageSize
}
