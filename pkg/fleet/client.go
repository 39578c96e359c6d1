// Package fleet adapts the live connectivity index of the device fleet. An
// index entry appears only once a device has connected to the messaging
// broker; this package never creates or deletes entries, it queries them and
// toggles deactivated-group membership.
package fleet

import (
	"context"
	"errors"
)

//go:generate mockgen -source=client.go -destination=mocks/mock_client.go -package=mocks

// ErrThingNotFound is returned by the group membership calls when the fleet
// index has no entry for the device.
var ErrThingNotFound = errors.New("thing not found in fleet index")

// ThingConnectivity is the broker-reported connection state of a thing.
type ThingConnectivity struct {
	Connected bool
	// Timestamp is milliseconds since epoch, zero or negative when the
	// index has no connection event recorded.
	Timestamp        int64
	DisconnectReason *string
}

// Thing is a raw fleet index entry.
type Thing struct {
	ThingName       string
	Attributes      map[string]string
	Connectivity    *ThingConnectivity
	ThingGroupNames []string
}

type SearchInput struct {
	// Query is a boolean query string; see Store for the emitted grammar.
	Query string
	// NextToken resumes a previous search, empty for the first page.
	NextToken  string
	MaxResults int
}

type SearchOutput struct {
	Things []Thing
	// NextToken resumes the search, empty once exhausted.
	NextToken string
}

// Client is the narrow contract of the external fleet index: a search-query
// interface plus group membership toggles keyed by thing name.
type Client interface {
	Search(ctx context.Context, input SearchInput) (SearchOutput, error)
	AddThingToGroup(ctx context.Context, groupName, thingName string) error
	RemoveThingFromGroup(ctx context.Context, groupName, thingName string) error
}
