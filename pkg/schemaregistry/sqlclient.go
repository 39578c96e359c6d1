package schemaregistry

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/SmdhMdep/iot-status-api/pkg/db"
)

// OfflineSchema is the gorm entity backing the offline schema registry
// client.
type OfflineSchema struct {
	ID         string `gorm:"primaryKey"`
	Provider   string
	Title      string
	Version    int
	JSONSchema string
	SchemaHash string `gorm:"index"`
}

func (OfflineSchema) TableName() string { return "schema_registry" }

// SQLClient implements Client over sqlite for offline mode and tests.
type SQLClient struct {
	db *db.DB
}

func NewSQLClient(database *db.DB) *SQLClient {
	return &SQLClient{db: database}
}

// OfflineEntities lists the gorm entities this client needs migrated.
func OfflineEntities() []any {
	return []any{&OfflineSchema{}}
}

func (c *SQLClient) Get(ctx context.Context, id string) (*Record, error) {
	var row OfflineSchema
	err := c.db.Conn.WithContext(ctx).First(&row, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	record := row.toRecord()
	return &record, nil
}

// Scan mirrors the external store's semantics: the fetch limit counts items
// before the provider filter applies, and the continuation key is the key of
// the last examined item.
func (c *SQLClient) Scan(ctx context.Context, input ScanInput) (ScanOutput, error) {
	query := c.db.Conn.WithContext(ctx).
		Model(&OfflineSchema{}).
		Order("id")
	if input.StartKey != "" {
		query = query.Where("id > ?", input.StartKey)
	}
	if input.Limit > 0 {
		// fetch one extra row to learn whether the scan is exhausted
		query = query.Limit(input.Limit + 1)
	}

	var rows []OfflineSchema
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
		if input.Provider != nil && rows[i].Provider != *input.Provider {
			continue
		}
		out.Items = append(out.Items, rows[i].toRecord())
	}
	if more {
		out.LastEvaluatedKey = rows[len(rows)-1].ID
	}
	return out, nil
}

func (c *SQLClient) QueryByHash(ctx context.Context, hash string) ([]Record, error) {
	var rows []OfflineSchema
	err := c.db.Conn.WithContext(ctx).
		Where("schema_hash = ?", hash).
		Order("id").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	records := make([]Record, len(rows))
	for i := range rows {
		records[i] = rows[i].toRecord()
	}
	return records, nil
}

// Put stores a schema, used by the offline seeding path and tests.
func (c *SQLClient) Put(ctx context.Context, record Record) error {
	row := OfflineSchema{
		ID:         record.ID,
		Provider:   record.Provider,
		Title:      record.Title,
		Version:    record.Version,
		JSONSchema: record.JSONSchema,
		SchemaHash: record.SchemaHash,
	}
	return c.db.Conn.WithContext(ctx).Save(&row).Error
}

func (row *OfflineSchema) toRecord() Record {
	return Record{
		ID:         row.ID,
		Provider:   row.Provider,
		Title:      row.Title,
		Version:    row.Version,
		JSONSchema: row.JSONSchema,
		SchemaHash: row.SchemaHash,
	}
}
