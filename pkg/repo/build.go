package repo

import (
	"time"

	"github.com/SmdhMdep/iot-status-api/pkg/fleet"
	"github.com/SmdhMdep/iot-status-api/pkg/ledger"
	"github.com/SmdhMdep/iot-status-api/pkg/models"
	"github.com/SmdhMdep/iot-status-api/pkg/schemaregistry"
)

// BuildDeviceInput carries the source records merged into one Device. At
// least one of FleetThing and LedgerRecord must be set; both absent is a
// programming error, not a user condition.
type BuildDeviceInput struct {
	FleetThing   *fleet.Thing
	LedgerRecord *ledger.Record
	Schema       *schemaregistry.Record
	Preview      *models.StreamPreview
	// LedgerUnprovisioned reports connectivity as the synthetic
	// NOT_PROVISIONED state when no fleet record exists; when false the
	// connectivity stays null instead.
	LedgerUnprovisioned bool
}

// BuildDevice merges the source records into the canonical device view. It
// is deterministic and side effect free: the same inputs always produce the
// same Device, whether called from a lookup, a listing page or an export.
func BuildDevice(input BuildDeviceInput) models.Device {
	thing, record := input.FleetThing, input.LedgerRecord
	if thing == nil && record == nil {
		panic("BuildDevice requires at least one source record")
	}

	device := models.Device{
		Connectivity: buildConnectivity(thing, input.LedgerUnprovisioned),
		Provider:     resolveProvider(thing, record),
		Organization: resolveOrganization(thing, record),
	}

	if thing != nil {
		device.Name = thing.ThingName
	} else {
		device.Name = record.SerialNumber
	}

	if record != nil {
		device.DeviceInfo = &models.DeviceInfo{
			Organization:          record.Organization,
			Project:               record.Project,
			ProvisioningStatus:    record.ProvisioningStatus,
			ProvisioningTimestamp: isoToTimestamp(record.ProvisioningTimestamp),
			RegistrationStatus:    record.RegistrationStatus,
			RegistrationTimestamp: isoToTimestamp(record.RegistrationTimestamp),
		}
		if record.Label != nil {
			device.Label = models.DeviceLabelFromValue(*record.Label)
		}
	}

	if input.Schema != nil {
		schemaText := input.Schema.JSONSchema
		device.DataSchema = &schemaText
		spec := buildSchemaSpec(input.Schema)
		device.SchemaSpec = &spec
	}

	if input.Preview != nil {
		previewText := input.Preview.Text
		device.StreamPreview = &previewText
		device.LastStreamBatchTimestamp = input.Preview.LastBatchTimestamp
	}

	return device
}

// resolveProvider prefers the ledger's stored group over the fleet record's
// attribute.
func resolveProvider(thing *fleet.Thing, record *ledger.Record) *string {
	if record != nil && record.Provider != nil {
		return record.Provider
	}
	if thing != nil {
		if value, ok := thing.Attributes[fleet.AttrSensorProvider]; ok {
			return &value
		}
	}
	return nil
}

func resolveOrganization(thing *fleet.Thing, record *ledger.Record) *string {
	if record != nil {
		return &record.Organization
	}
	if thing != nil {
		if value, ok := thing.Attributes[fleet.AttrSensorOrganization]; ok {
			return &value
		}
	}
	return nil
}

func buildConnectivity(thing *fleet.Thing, ledgerUnprovisioned bool) *models.DeviceConnectivity {
	var connectivity *fleet.ThingConnectivity
	if thing != nil {
		connectivity = thing.Connectivity
	}

	if connectivity == nil {
		if !ledgerUnprovisioned {
			return nil
		}
		reason := fleet.DisconnectReasonNotProvisioned
		description := fleet.DisconnectReasonDescription(reason)
		return &models.DeviceConnectivity{
			Connected:                   false,
			DisconnectReason:            &reason,
			DisconnectReasonDescription: &description,
		}
	}

	result := &models.DeviceConnectivity{
		Connected:        connectivity.Connected,
		DisconnectReason: connectivity.DisconnectReason,
	}
	if connectivity.Timestamp > 0 {
		timestamp := float64(connectivity.Timestamp) / 1000.0
		result.Timestamp = &timestamp
	}
	if connectivity.DisconnectReason != nil {
		if description := fleet.DisconnectReasonDescription(*connectivity.DisconnectReason); description != "" {
			result.DisconnectReasonDescription = &description
		}
	}
	return result
}

// isoToTimestamp converts an ISO 8601 string to seconds since epoch, nil
// when absent or unparseable.
func isoToTimestamp(value *string) *models.Timestamp {
	if value == nil {
		return nil
	}
	parsed, err := time.Parse(time.RFC3339, *value)
	if err != nil {
		// registration wrote timestamps without a zone designator for a
		// while; treat those as UTC
		parsed, err = time.ParseInLocation("2006-01-02T15:04:05", *value, time.UTC)
		if err != nil {
			return nil
		}
	}
	timestamp := float64(parsed.UnixNano()) / float64(time.Second)
	return &timestamp
}
