package fleet

import (
	"context"
	"encoding/json"
	"errors"
	"slices"

	"gorm.io/gorm"

	"github.com/SmdhMdep/iot-status-api/pkg/db"
)

// OfflineThing is the gorm entity backing the offline fleet index client.
// Attributes and group names are kept as JSON columns so the search grammar
// evaluates against the same shapes the external index exposes.
type OfflineThing struct {
	ThingName             string `gorm:"primaryKey"`
	Attributes            string
	Connected             bool
	ConnectivityTimestamp int64
	DisconnectReason      *string
	HasConnectivity       bool
	ThingGroupNames       string
}

func (OfflineThing) TableName() string { return "fleet_index" }

// SQLClient implements Client over sqlite for offline mode and tests. It
// evaluates the adapter's query grammar in process.
type SQLClient struct {
	db *db.DB
}

func NewSQLClient(database *db.DB) *SQLClient {
	return &SQLClient{db: database}
}

// OfflineEntities lists the gorm entities this client needs migrated.
func OfflineEntities() []any {
	return []any{&OfflineThing{}}
}

func (c *SQLClient) Search(ctx context.Context, input SearchInput) (SearchOutput, error) {
	terms, err := parseQuery(input.Query)
	if err != nil {
		return SearchOutput{}, err
	}

	query := c.db.Conn.WithContext(ctx).Model(&OfflineThing{}).Order("thing_name")
	if input.NextToken != "" {
		query = query.Where("thing_name > ?", input.NextToken)
	}

	var rows []OfflineThing
	if err := query.Find(&rows).Error; err != nil {
		return SearchOutput{}, err
	}

	var out SearchOutput
	for i := range rows {
		thing, err := rows[i].toThing()
		if err != nil {
			return SearchOutput{}, err
		}

		matched := true
		for _, term := range terms {
			if !term.matches(thing) {
				matched = false
				break
			}
		}
		if !matched {
			continue
		}

		if input.MaxResults > 0 && len(out.Things) == input.MaxResults {
			out.NextToken = out.Things[len(out.Things)-1].ThingName
			return out, nil
		}
		out.Things = append(out.Things, *thing)
	}
	return out, nil
}

func (c *SQLClient) AddThingToGroup(ctx context.Context, groupName, thingName string) error {
	return c.updateGroups(ctx, thingName, func(groups []string) []string {
		if slices.Contains(groups, groupName) {
			return groups
		}
		return append(groups, groupName)
	})
}

func (c *SQLClient) RemoveThingFromGroup(ctx context.Context, groupName, thingName string) error {
	return c.updateGroups(ctx, thingName, func(groups []string) []string {
		return slices.DeleteFunc(groups, func(g string) bool { return g == groupName })
	})
}

func (c *SQLClient) updateGroups(ctx context.Context, thingName string, apply func([]string) []string) error {
	return c.db.Conn.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row OfflineThing
		err := tx.First(&row, "thing_name = ?", thingName).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrThingNotFound
		}
		if err != nil {
			return err
		}

		var groups []string
		if row.ThingGroupNames != "" {
			if err := json.Unmarshal([]byte(row.ThingGroupNames), &groups); err != nil {
				return err
			}
		}
		updated, err := json.Marshal(apply(groups))
		if err != nil {
			return err
		}

		return tx.Model(&OfflineThing{}).
			Where("thing_name = ?", thingName).
			Update("thing_group_names", string(updated)).Error
	})
}

// Put stores a thing, used by the offline seeding path and tests.
func (c *SQLClient) Put(ctx context.Context, thing Thing) error {
	row, err := fromThing(thing)
	if err != nil {
		return err
	}
	return c.db.Conn.WithContext(ctx).Save(row).Error
}

func (row *OfflineThing) toThing() (*Thing, error) {
	thing := &Thing{ThingName: row.ThingName}
	if row.Attributes != "" {
		if err := json.Unmarshal([]byte(row.Attributes), &thing.Attributes); err != nil {
			return nil, err
		}
	}
	if row.ThingGroupNames != "" {
		if err := json.Unmarshal([]byte(row.ThingGroupNames), &thing.ThingGroupNames); err != nil {
			return nil, err
		}
	}
	if row.HasConnectivity {
		thing.Connectivity = &ThingConnectivity{
			Connected:        row.Connected,
			Timestamp:        row.ConnectivityTimestamp,
			DisconnectReason: row.DisconnectReason,
		}
	}
	return thing, nil
}

func fromThing(thing Thing) (*OfflineThing, error) {
	row := &OfflineThing{ThingName: thing.ThingName}
	if thing.Attributes != nil {
		raw, err := json.Marshal(thing.Attributes)
		if err != nil {
			return nil, err
		}
		row.Attributes = string(raw)
	}
	if thing.ThingGroupNames != nil {
		raw, err := json.Marshal(thing.ThingGroupNames)
		if err != nil {
			return nil, err
		}
		row.ThingGroupNames = string(raw)
	}
	if thing.Connectivity != nil {
		row.HasConnectivity = true
		row.Connected = thing.Connectivity.Connected
		row.ConnectivityTimestamp = thing.Connectivity.Timestamp
		row.DisconnectReason = thing.Connectivity.DisconnectReason
	}
	return row, nil
}
