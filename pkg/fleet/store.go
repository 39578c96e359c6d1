package fleet

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/SmdhMdep/iot-status-api/pkg/apperrors"
	"github.com/SmdhMdep/iot-status-api/pkg/common"
)

// DeviceNameRegex is the allow-list for device names. Anything else is
// rejected before it can reach a query string.
var DeviceNameRegex = regexp.MustCompile(`^[a-zA-Z0-9:_-]+$`)

// Store is the fleet index adapter used by the device repository.
type Store struct {
	client Client
}

func NewStore(client Client) *Store {
	return &Store{client: client}
}

type ListInput struct {
	Provider     *string
	Organization *string
	NameLike     *string
	Page         *string
	PageSize     int
	// ActiveOnly excludes devices in the deactivated membership group.
	ActiveOnly bool
}

// ListDevices returns one page of registered things matching the filters.
func (s *Store) ListDevices(ctx context.Context, input ListInput) (*string, []Thing, error) {
	logger := common.GetLoggerWith(common.LoggerNameFleetIndex)

	query := fmt.Sprintf("attributes.%s:*", AttrRegistrationWay)

	if input.Provider != nil {
		query = fmt.Sprintf(`%s AND attributes.%s:"%s"`, query, AttrSensorProvider, escapeQuoted(*input.Provider))
	}
	if input.Organization != nil {
		query = fmt.Sprintf(`%s AND attributes.%s:"%s"`, query, AttrSensorOrganization, escapeQuoted(*input.Organization))
	}
	if input.NameLike != nil {
		if !DeviceNameRegex.MatchString(*input.NameLike) {
			return nil, nil, apperrors.InvalidArgument("name must match the regex: " + DeviceNameRegex.String())
		}
		query = fmt.Sprintf(`%s AND thingName:%s*`, query, escapeTerm(*input.NameLike))
	}
	if input.ActiveOnly {
		query = fmt.Sprintf("%s AND NOT thingGroupNames:%s", query, DeactivatedGroupName)
	}

	logger.Debug("search index query", zap.String("query", query))

	searchInput := SearchInput{Query: query, MaxResults: input.PageSize}
	if input.Page != nil {
		searchInput.NextToken = *input.Page
	}

	result, err := s.client.Search(ctx, searchInput)
	if err != nil {
		return nil, nil, err
	}

	var nextPage *string
	if result.NextToken != "" {
		token := result.NextToken
		nextPage = &token
	}
	return nextPage, result.Things, nil
}

// FindDevice returns nil when the fleet index has no matching entry within
// the provider/organization scope.
func (s *Store) FindDevice(ctx context.Context, provider, organization *string, name string) (*Thing, error) {
	if !DeviceNameRegex.MatchString(name) {
		return nil, apperrors.InvalidArgument("name must match the regex: " + DeviceNameRegex.String())
	}
	if (provider != nil && strings.Contains(*provider, `"`)) ||
		(organization != nil && strings.Contains(*organization, `"`)) {
		return nil, apperrors.InvalidArgument("provider and organization must not contain double quotes")
	}

	query := fmt.Sprintf(`thingName:"%s"`, name)
	if provider != nil {
		query = fmt.Sprintf(`%s AND attributes.%s:"%s"`, query, AttrSensorProvider, *provider)
	}
	if organization != nil {
		query = fmt.Sprintf(`%s AND attributes.%s:"%s"`, query, AttrSensorOrganization, *organization)
	}

	result, err := s.client.Search(ctx, SearchInput{Query: query, MaxResults: 1})
	if err != nil {
		return nil, err
	}
	if len(result.Things) == 0 {
		return nil, nil
	}
	return &result.Things[0], nil
}

// UpdateActiveState adds the device to the deactivated group when active is
// false and removes it when true. Devices that never connected have no index
// entry and fail with a NotFound kind.
func (s *Store) UpdateActiveState(ctx context.Context, name string, active bool) error {
	var err error
	if active {
		err = s.client.RemoveThingFromGroup(ctx, DeactivatedGroupName, name)
	} else {
		err = s.client.AddThingToGroup(ctx, DeactivatedGroupName, name)
	}

	if errors.Is(err, ErrThingNotFound) {
		return apperrors.NotFound("device with name " + name + " is not in the fleet index")
	}
	return err
}

// escapeQuoted escapes a value for interpolation inside a quoted query term.
func escapeQuoted(value string) string {
	return strings.ReplaceAll(value, `"`, `\"`)
}

// escapeTerm escapes the query metacharacters of an unquoted term.
func escapeTerm(value string) string {
	return strings.ReplaceAll(value, ":", `\:`)
}
