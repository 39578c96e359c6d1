package repo

import (
	"context"

	"github.com/SmdhMdep/iot-status-api/pkg/apperrors"
	"github.com/SmdhMdep/iot-status-api/pkg/models"
	"github.com/SmdhMdep/iot-status-api/pkg/schemaregistry"
)

type ListSchemasInput struct {
	Provider *string
	Page     *string
	PageSize int
}

// ListSchemas returns one page of the schemas registered for the provider,
// or of the whole registry when no provider scope applies.
func (r *Repo) ListSchemas(ctx context.Context, input ListSchemasInput) (*models.SchemasPage, error) {
	next, records, err := r.Schemas.List(ctx, schemaregistry.ListInput{
		Provider: canonicalizeOpt(input.Provider),
		Page:     input.Page,
		PageSize: r.pageSize(input.PageSize),
	})
	if err != nil {
		return nil, err
	}

	page := &models.SchemasPage{
		NextPage: next,
		Schemas:  make([]models.DeviceSchemaSpec, len(records)),
	}
	for i := range records {
		page.Schemas[i] = buildSchemaSpec(&records[i])
	}
	return page, nil
}

// GetSchema returns the schema registered under the given ID. A schema owned
// by another provider looks exactly like a missing one.
func (r *Repo) GetSchema(ctx context.Context, provider *string, id string) (*models.DeviceSchemaSpec, error) {
	record, err := r.Schemas.Get(ctx, canonicalizeOpt(provider), id)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, apperrors.NotFound("no such schema")
	}

	spec := buildSchemaSpec(record)
	return &spec, nil
}

func buildSchemaSpec(record *schemaregistry.Record) models.DeviceSchemaSpec {
	return models.DeviceSchemaSpec{
		ID:       record.ID,
		Provider: record.Provider,
		Schema:   record.JSONSchema,
		Title:    record.Title,
		Version:  record.Version,
	}
}
