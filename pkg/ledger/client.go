// Package ledger adapts the durable per-device provisioning ledger. The
// ledger is the long-lived identity of a device: a record exists before the
// device is provisioned and survives deactivation.
package ledger

import (
	"context"
	"errors"
)

//go:generate mockgen -source=client.go -destination=mocks/mock_client.go -package=mocks

var (
	// ErrItemNotFound is returned by Update when no record has the key.
	ErrItemNotFound = errors.New("ledger item not found")
	// ErrConditionFailed is returned by Update when a conditional
	// expectation no longer holds against the stored record.
	ErrConditionFailed = errors.New("ledger update condition failed")
)

// PolicyStatement is one statement of a device's messaging policy document.
type PolicyStatement struct {
	Action   string `json:"Action"`
	Resource string `json:"Resource"`
}

type PolicyDocument struct {
	Statement []PolicyStatement `json:"Statement"`
}

// Record is a raw ledger item. Optional attributes are nil when the stored
// item lacks them.
type Record struct {
	SerialNumber          string
	Provider              *string
	Organization          string
	Project               string
	ProvisioningStatus    *string
	ProvisioningTimestamp *string
	RegistrationStatus    *string
	RegistrationTimestamp *string
	Label                 *string
	DataSchema            *string
	PolicyDocument        *PolicyDocument
}

// ScanFilter is pushed down to the store. All conditions are combined with
// AND; zero values mean "no condition".
type ScanFilter struct {
	Provider     *string
	Organization *string
	NamePrefix   *string
	// Label matches records whose label equals the value.
	Label *string
	// LabelDiffers matches records whose label is absent or differs from
	// the value.
	LabelDiffers *string
	// UnprovisionedOnly matches records lacking a provisioning status.
	UnprovisionedOnly bool
}

type ScanInput struct {
	Filter ScanFilter
	// StartKey is the continuation key from a previous scan, empty for the
	// first page.
	StartKey string
	// Limit bounds the number of items examined per fetch, before the
	// filter applies. A page may therefore carry fewer matches than Limit
	// while more remain upstream.
	Limit int
}

type ScanOutput struct {
	Items []Record
	// LastEvaluatedKey resumes the scan, empty once exhausted.
	LastEvaluatedKey string
}

// UpdateCondition guards a conditional write. Expectation fields are only
// checked when non-nil; ExpectedLabel distinguishes "expect this label" from
// "expect no label" via HasExpectedLabel.
type UpdateCondition struct {
	Provider         *string
	Organization     *string
	ExpectedLabel    *string
	HasExpectedLabel bool
}

type UpdateInput struct {
	SerialNumber string
	// NewLabel replaces the stored label, nil clears it.
	NewLabel  *string
	Condition UpdateCondition
}

// Client is the narrow contract of the external ledger store: a key-value
// item store with filtered scans, continuation tokens and conditional
// updates. The production implementation lives outside this module; the
// sqlite client mirrors its semantics for offline use.
type Client interface {
	Scan(ctx context.Context, input ScanInput) (ScanOutput, error)
	Get(ctx context.Context, serialNumber string) (*Record, error)
	Update(ctx context.Context, input UpdateInput) error
}
