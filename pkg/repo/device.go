package repo

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/SmdhMdep/iot-status-api/pkg/apperrors"
	"github.com/SmdhMdep/iot-status-api/pkg/common"
	"github.com/SmdhMdep/iot-status-api/pkg/fleet"
	"github.com/SmdhMdep/iot-status-api/pkg/ledger"
	"github.com/SmdhMdep/iot-status-api/pkg/models"
	"github.com/SmdhMdep/iot-status-api/pkg/schemaregistry"
)

// previewErrorPlaceholder is shown in place of a stream preview that could
// not be fetched. Preview failures never fail the whole device lookup.
const previewErrorPlaceholder = "<error fetching preview>"

type GetDeviceInput struct {
	Provider     *string
	Organization *string
	Name         string
	// Brief skips the schema and stream preview enrichment.
	Brief bool
}

// GetDevice resolves a single device by name across both stores. The ledger
// record is authoritative for existence; a device unknown to the ledger is
// not found even when the fleet index carries it.
func (r *Repo) GetDevice(ctx context.Context, input GetDeviceInput) (*models.Device, error) {
	if !fleet.DeviceNameRegex.MatchString(input.Name) {
		return nil, apperrors.InvalidArgument("name must match the regex: " + fleet.DeviceNameRegex.String())
	}

	provider := canonicalizeOpt(input.Provider)
	organization := canonicalizeOpt(input.Organization)

	record, err := r.Ledger.FindDevice(ctx, provider, organization, input.Name)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, apperrors.NotFound("device with name " + input.Name + " is not registered")
	}

	thing, err := r.Fleet.FindDevice(ctx, provider, organization, input.Name)
	if err != nil {
		return nil, err
	}

	var schema *schemaregistry.Record
	var preview *models.StreamPreview
	if !input.Brief {
		schema, err = r.findDeviceSchema(ctx, record)
		if err != nil {
			return nil, err
		}
		preview, err = r.findStreamPreview(ctx, record)
		if err != nil {
			return nil, err
		}
	}

	device := BuildDevice(BuildDeviceInput{
		FleetThing:          thing,
		LedgerRecord:        record,
		Schema:              schema,
		Preview:             preview,
		LedgerUnprovisioned: true,
	})
	return &device, nil
}

func (r *Repo) findDeviceSchema(ctx context.Context, record *ledger.Record) (*schemaregistry.Record, error) {
	if record.DataSchema == nil || record.Provider == nil {
		return nil, nil
	}
	return r.Schemas.GetByHash(ctx, *record.Provider, *record.DataSchema)
}

func (r *Repo) findStreamPreview(ctx context.Context, record *ledger.Record) (*models.StreamPreview, error) {
	if r.Previews == nil {
		return nil, nil
	}
	topic, err := streamingTopic(record)
	if err != nil {
		return nil, err
	}
	if topic == "" {
		return nil, nil
	}

	preview, err := r.Previews.GetStreamPreview(ctx, topic)
	if err != nil {
		common.GetLoggerWith(
			common.LoggerNameRepo,
			zap.String(common.LoggerFieldRepoCategory, common.LoggerCategoryRepoDevice),
		).Warn("unable to fetch stream preview",
			zap.String("device", record.SerialNumber), zap.Error(err))
		return &models.StreamPreview{Text: previewErrorPlaceholder}, nil
	}
	return preview, nil
}

// streamingTopic extracts the topic a device publishes to from its policy
// document. An unprovisioned device has no topic. A provisioned device whose
// policy grants no publish permission is an inconsistency in the stores.
func streamingTopic(record *ledger.Record) (string, error) {
	if record.ProvisioningStatus == nil {
		return "", nil
	}
	if record.PolicyDocument != nil {
		for _, statement := range record.PolicyDocument.Statement {
			if statement.Action != "iot:Publish" {
				continue
			}
			if _, topic, found := strings.Cut(statement.Resource, "topic/"); found {
				return topic, nil
			}
		}
	}
	return "", apperrors.Internal("inconsistent state when fetching stream preview", nil)
}
