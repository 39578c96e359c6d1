package models

// Timestamp is seconds since epoch.
type Timestamp = float64

type DeviceLabel string

const (
	DeviceLabelDeployed      DeviceLabel = "DEPLOYED"
	DeviceLabelUndeployed    DeviceLabel = "UNDEPLOYED"
	DeviceLabelPeriodicBatch DeviceLabel = "PERIODIC_BATCH"
	DeviceLabelDeactivated   DeviceLabel = "DEACTIVATED"
)

func DeviceLabels() []DeviceLabel {
	return []DeviceLabel{
		DeviceLabelDeployed,
		DeviceLabelUndeployed,
		DeviceLabelPeriodicBatch,
		DeviceLabelDeactivated,
	}
}

// DeviceLabelFromValue returns nil when value names no known label.
func DeviceLabelFromValue(value string) *DeviceLabel {
	for _, label := range DeviceLabels() {
		if string(label) == value {
			return &label
		}
	}
	return nil
}

type DeviceConnectivity struct {
	Connected                   bool       `json:"connected"`
	Timestamp                   *Timestamp `json:"timestamp"`
	DisconnectReason            *string    `json:"disconnectReason"`
	DisconnectReasonDescription *string    `json:"disconnectReasonDescription"`
}

type DeviceInfo struct {
	Organization          string     `json:"organization"`
	Project               string     `json:"project"`
	ProvisioningStatus    *string    `json:"provisioningStatus"`
	ProvisioningTimestamp *Timestamp `json:"provisioningTimestamp"`
	RegistrationStatus    *string    `json:"registrationStatus"`
	RegistrationTimestamp *Timestamp `json:"registrationTimestamp"`
}

type DeviceSchemaSpec struct {
	ID       string `json:"id"`
	Provider string `json:"provider"`
	Schema   string `json:"schema"`
	Title    string `json:"title"`
	Version  int    `json:"version"`
}

type StreamPreview struct {
	Text               string
	LastBatchTimestamp *Timestamp
}

// Device is the merged view of a fleet index entry and a device ledger
// record. At least one of the two sources is always present; absent optional
// enrichments stay nil end to end.
type Device struct {
	Name         string              `json:"name"`
	Provider     *string             `json:"provider"`
	Organization *string             `json:"organization"`
	Connectivity *DeviceConnectivity `json:"connectivity"`
	DeviceInfo   *DeviceInfo         `json:"deviceInfo,omitempty"`
	Label        *DeviceLabel        `json:"label,omitempty"`
	// DataSchema is a legacy field kept for backwards compatibility. Use
	// SchemaSpec instead.
	DataSchema *string           `json:"dataSchema,omitempty"`
	SchemaSpec *DeviceSchemaSpec `json:"schemaSpec,omitempty"`
	// StreamPreview is the head of the latest JSONL stream batch.
	StreamPreview            *string    `json:"streamPreview,omitempty"`
	LastStreamBatchTimestamp *Timestamp `json:"lastStreamBatchTimestamp,omitempty"`
}

// DevicePage is one page of a device listing. NextPage is an opaque cursor
// resuming the listing, nil on the last page.
type DevicePage struct {
	NextPage *string  `json:"nextPage"`
	Devices  []Device `json:"devices"`
}

type ProvidersPage struct {
	NextPage  *int     `json:"nextPage,omitempty"`
	Providers []string `json:"providers"`
}

type OrganizationsPage struct {
	NextPage      *int     `json:"nextPage,omitempty"`
	Organizations []string `json:"organizations"`
}

type ProjectsPage struct {
	NextPage *int     `json:"nextPage,omitempty"`
	Projects []string `json:"projects"`
}

// SchemasPage is one page of the schema registry listing. NextPage is an
// opaque cursor resuming the listing, nil on the last page.
type SchemasPage struct {
	NextPage *string            `json:"nextPage"`
	Schemas  []DeviceSchemaSpec `json:"schemas"`
}
