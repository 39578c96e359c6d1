package ledger

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/SmdhMdep/iot-status-api/pkg/apperrors"
	"github.com/SmdhMdep/iot-status-api/pkg/common"
)

// Store is the ledger adapter used by the device repository.
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
	Label        *string
	// LabelDiffers excludes records whose stored label equals the given
	// value. Mutually exclusive with Label.
	LabelDiffers *string
	Page         *string
	PageSize     int
	// UnprovisionedOnly restricts the listing to records that have no
	// provisioning status, i.e. devices not yet visible in the fleet index.
	UnprovisionedOnly bool
}

// ListDevices returns one page of matching ledger records. The underlying
// store filters server side but counts unfiltered items against the fetch
// limit, so a single fetch can come back nearly empty under a restrictive
// filter; ListDevices keeps fetching until the page is full or the scan is
// exhausted, then hands back its own continuation token.
func (s *Store) ListDevices(ctx context.Context, input ListInput) (*string, []Record, error) {
	logger := common.GetLoggerWith(common.LoggerNameLedger)

	startKey, err := decodePageKey(input.Page)
	if err != nil {
		return nil, nil, err
	}

	filter := ScanFilter{
		Provider:          input.Provider,
		Organization:      input.Organization,
		NamePrefix:        input.NameLike,
		Label:             input.Label,
		LabelDiffers:      input.LabelDiffers,
		UnprovisionedOnly: input.UnprovisionedOnly,
	}

	var items []Record
	scanKey := startKey
	lastKey := ""
	for {
		result, err := s.client.Scan(ctx, ScanInput{
			Filter:   filter,
			StartKey: scanKey,
			Limit:    input.PageSize,
		})
		if err != nil {
			return nil, nil, err
		}

		items = append(items, result.Items...)
		lastKey = result.LastEvaluatedKey

		// The continuation fetch can push the page past PageSize since the
		// store returns up to Limit more matches per fetch. Callers get the
		// overshoot rather than a truncated page, matching the upstream
		// ledger scan.
		if lastKey != "" && (input.PageSize <= 0 || len(items) < input.PageSize) {
			scanKey = lastKey
			continue
		}
		break
	}

	logger.Debug("scanned ledger",
		zap.Int("items", len(items)), zap.Bool("has_next", lastKey != ""))

	return encodePageKey(lastKey), items, nil
}

// FindDevice returns nil when the record does not exist or is outside the
// provider/organization scope.
func (s *Store) FindDevice(ctx context.Context, provider, organization *string, name string) (*Record, error) {
	record, err := s.client.Get(ctx, name)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, nil
	}

	if provider != nil && record.Provider != nil && *record.Provider != *provider {
		return nil, nil
	}
	if organization != nil && record.Organization != *organization {
		return nil, nil
	}

	normalizeSchema(record)
	return record, nil
}

type UpdateLabelInput struct {
	Name     string
	NewLabel *string
	// ExpectedLabel makes the write conditional on the stored label when
	// HasExpectedLabel is set; a nil ExpectedLabel then means "no label
	// stored".
	ExpectedLabel    *string
	HasExpectedLabel bool
	Provider         *string
	Organization     *string
}

// UpdateLabel writes the device label conditionally. A record that raced to
// a different state fails with a ConditionFailed kind, distinct from a
// missing record.
func (s *Store) UpdateLabel(ctx context.Context, input UpdateLabelInput) error {
	err := s.client.Update(ctx, UpdateInput{
		SerialNumber: input.Name,
		NewLabel:     input.NewLabel,
		Condition: UpdateCondition{
			Provider:         input.Provider,
			Organization:     input.Organization,
			ExpectedLabel:    input.ExpectedLabel,
			HasExpectedLabel: input.HasExpectedLabel,
		},
	})

	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrItemNotFound):
		return apperrors.NotFound("device with name " + input.Name + " is not registered")
	case errors.Is(err, ErrConditionFailed):
		return apperrors.ConditionFailed("device label changed concurrently")
	default:
		return err
	}
}

// normalizeSchema clears placeholder schema markers left by the registration
// process for devices declared without a schema.
func normalizeSchema(record *Record) {
	if record.DataSchema != nil && strings.TrimSpace(*record.DataSchema) == "" {
		record.DataSchema = nil
	}
}

func decodePageKey(page *string) (string, error) {
	if page == nil || *page == "" {
		return "", nil
	}
	decoded, err := base64.StdEncoding.DecodeString(*page)
	if err != nil {
		return "", apperrors.InvalidArgument("invalid page key")
	}
	return string(decoded), nil
}

func encodePageKey(key string) *string {
	if key == "" {
		return nil
	}
	encoded := base64.StdEncoding.EncodeToString([]byte(key))
	return &encoded
}
