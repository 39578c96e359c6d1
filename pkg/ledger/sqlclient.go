package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/SmdhMdep/iot-status-api/pkg/db"
)

// OfflineItem is the gorm entity backing the offline ledger client.
type OfflineItem struct {
	SerialNumber          string `gorm:"primaryKey"`
	Provider              *string
	Organization          string
	Project               string
	ProvisioningStatus    *string
	ProvisioningTimestamp *string
	RegistrationStatus    *string
	RegistrationTimestamp *string
	Label                 *string
	DataSchema            *string
	PolicyDocument        *string
}

func (OfflineItem) TableName() string { return "device_ledger" }

// SQLClient implements Client over sqlite for offline mode and tests. It
// mirrors the external store's semantics: the fetch limit counts items
// before the filter applies, and the continuation key is the key of the last
// examined item.
type SQLClient struct {
	db *db.DB
}

func NewSQLClient(database *db.DB) *SQLClient {
	return &SQLClient{db: database}
}

// OfflineEntities lists the gorm entities this client needs migrated.
func OfflineEntities() []any {
	return []any{&OfflineItem{}}
}

func (c *SQLClient) Scan(ctx context.Context, input ScanInput) (ScanOutput, error) {
	query := c.db.Conn.WithContext(ctx).
		Model(&OfflineItem{}).
		Order("serial_number")
	if input.StartKey != "" {
		query = query.Where("serial_number > ?", input.StartKey)
	}
	if input.Limit > 0 {
		// fetch one extra row to learn whether the scan is exhausted
		query = query.Limit(input.Limit + 1)
	}

	var rows []OfflineItem
	if err := query.Find(&rows).Error; err != nil {
		return ScanOutput{}, err
	}

	more := false
	if input.Limit > 0 && len(rows) > input.Limit {
		rows = rows[:input.Limit]
		more = true
	}

	var out ScanOutput
	for i := range rows {
		record, err := rows[i].toRecord()
		if err != nil {
			return ScanOutput{}, err
		}
		if matchesFilter(record, input.Filter) {
			out.Items = append(out.Items, *record)
		}
	}
	if more {
		out.LastEvaluatedKey = rows[len(rows)-1].SerialNumber
	}
	return out, nil
}

func (c *SQLClient) Get(ctx context.Context, serialNumber string) (*Record, error) {
	var row OfflineItem
	err := c.db.Conn.WithContext(ctx).First(&row, "serial_number = ?", serialNumber).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return row.toRecord()
}

func (c *SQLClient) Update(ctx context.Context, input UpdateInput) error {
	return c.db.Conn.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row OfflineItem
		err := tx.First(&row, "serial_number = ?", input.SerialNumber).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrItemNotFound
		}
		if err != nil {
			return err
		}

		cond := input.Condition
		if cond.Provider != nil && (row.Provider == nil || *row.Provider != *cond.Provider) {
			return ErrConditionFailed
		}
		if cond.Organization != nil && row.Organization != *cond.Organization {
			return ErrConditionFailed
		}
		if cond.HasExpectedLabel && !equalValue(row.Label, cond.ExpectedLabel) {
			return ErrConditionFailed
		}

		return tx.Model(&OfflineItem{}).
			Where("serial_number = ?", input.SerialNumber).
			Update("label", input.NewLabel).Error
	})
}

// Put stores a record, used by the offline seeding path and tests.
func (c *SQLClient) Put(ctx context.Context, record Record) error {
	row, err := fromRecord(record)
	if err != nil {
		return err
	}
	return c.db.Conn.WithContext(ctx).Save(row).Error
}

func matchesFilter(record *Record, filter ScanFilter) bool {
	if filter.Provider != nil && (record.Provider == nil || *record.Provider != *filter.Provider) {
		return false
	}
	if filter.Organization != nil && record.Organization != *filter.Organization {
		return false
	}
	if filter.NamePrefix != nil && !strings.HasPrefix(record.SerialNumber, *filter.NamePrefix) {
		return false
	}
	if filter.Label != nil && !equalValue(record.Label, filter.Label) {
		return false
	}
	if filter.LabelDiffers != nil && equalValue(record.Label, filter.LabelDiffers) {
		return false
	}
	if filter.UnprovisionedOnly && record.ProvisioningStatus != nil {
		return false
	}
	return true
}

func equalValue(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func (item *OfflineItem) toRecord() (*Record, error) {
	record := &Record{
		SerialNumber:          item.SerialNumber,
		Provider:              item.Provider,
		Organization:          item.Organization,
		Project:               item.Project,
		ProvisioningStatus:    item.ProvisioningStatus,
		ProvisioningTimestamp: item.ProvisioningTimestamp,
		RegistrationStatus:    item.RegistrationStatus,
		RegistrationTimestamp: item.RegistrationTimestamp,
		Label:                 item.Label,
		DataSchema:            item.DataSchema,
	}
	if item.PolicyDocument != nil {
		var doc PolicyDocument
		if err := json.Unmarshal([]byte(*item.PolicyDocument), &doc); err != nil {
			return nil, err
		}
		record.PolicyDocument = &doc
	}
	return record, nil
}

func fromRecord(record Record) (*OfflineItem, error) {
	item := &OfflineItem{
		SerialNumber:          record.SerialNumber,
		Provider:              record.Provider,
		Organization:          record.Organization,
		Project:               record.Project,
		ProvisioningStatus:    record.ProvisioningStatus,
		ProvisioningTimestamp: record.ProvisioningTimestamp,
		RegistrationStatus:    record.RegistrationStatus,
		RegistrationTimestamp: record.RegistrationTimestamp,
		Label:                 record.Label,
		DataSchema:            record.DataSchema,
	}
	if record.PolicyDocument != nil {
		raw, err := json.Marshal(record.PolicyDocument)
		if err != nil {
			return nil, err
		}
		doc := string(raw)
		item.PolicyDocument = &doc
	}
	return item, nil
}
