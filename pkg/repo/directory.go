package repo

import (
	"context"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/SmdhMdep/iot-status-api/pkg/common"
	"github.com/SmdhMdep/iot-status-api/pkg/ledger"
	"github.com/SmdhMdep/iot-status-api/pkg/models"
)

type ListOrganizationsInput struct {
	Provider *string
	NameLike *string
	Page     *int
	PageSize int
	// All lists every organization in scope instead of just the caller's
	// own. Requires an admin caller or an explicit opt in.
	All          bool
	Organization *string
}

// ListOrganizations returns the distinct organization names known to the
// ledger within the provider scope. Without All the listing is pinned to the
// caller's resolved organization.
func (r *Repo) ListOrganizations(ctx context.Context, input ListOrganizationsInput) (*models.OrganizationsPage, error) {
	logger := common.GetLoggerWith(
		common.LoggerNameRepo,
		zap.String(common.LoggerFieldRepoCategory, common.LoggerCategoryRepoDirectory),
	)

	scope := canonicalizeOpt(input.Organization)
	if !input.All && scope == nil {
		return &models.OrganizationsPage{Organizations: []string{}}, nil
	}
	if input.All {
		scope = nil
	}

	names, err := r.distinctLedgerValues(ctx, canonicalizeOpt(input.Provider), scope,
		func(record *ledger.Record) string { return record.Organization })
	if err != nil {
		return nil, err
	}
	logger.Debug("collected organizations", zap.Int("count", len(names)))

	next, names := paginateNames(names, input.NameLike, input.Page, r.pageSize(input.PageSize))
	return &models.OrganizationsPage{NextPage: next, Organizations: names}, nil
}

type ListProjectsInput struct {
	Provider     *string
	Organization *string
	NameLike     *string
	Page         *int
	PageSize     int
}

// ListProjects returns the distinct project names known to the ledger within
// the provider and organization scope.
func (r *Repo) ListProjects(ctx context.Context, input ListProjectsInput) (*models.ProjectsPage, error) {
	names, err := r.distinctLedgerValues(ctx,
		canonicalizeOpt(input.Provider), canonicalizeOpt(input.Organization),
		func(record *ledger.Record) string { return record.Project })
	if err != nil {
		return nil, err
	}

	next, names := paginateNames(names, input.NameLike, input.Page, r.pageSize(input.PageSize))
	return &models.ProjectsPage{NextPage: next, Projects: names}, nil
}

// distinctLedgerValues drains the ledger scan and collects the distinct
// non-empty values of one field, sorted.
func (r *Repo) distinctLedgerValues(
	ctx context.Context, provider, organization *string, pick func(*ledger.Record) string,
) ([]string, error) {
	seen := map[string]struct{}{}
	var page *string
	for {
		next, records, err := r.Ledger.ListDevices(ctx, ledger.ListInput{
			Provider:     provider,
			Organization: organization,
			Page:         page,
			PageSize:     exportBatchSize,
		})
		if err != nil {
			return nil, err
		}
		for i := range records {
			if value := pick(&records[i]); value != "" {
				seen[value] = struct{}{}
			}
		}
		if next == nil {
			break
		}
		page = next
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// paginateNames filters by a case-insensitive substring match and slices out
// one page. The next page index is nil once the listing is exhausted.
func paginateNames(names []string, nameLike *string, page *int, pageSize int) (*int, []string) {
	if nameLike != nil {
		needle := strings.ToLower(*nameLike)
		filtered := make([]string, 0, len(names))
		for _, name := range names {
			if strings.Contains(strings.ToLower(name), needle) {
				filtered = append(filtered, name)
			}
		}
		names = filtered
	}

	current := 0
	if page != nil {
		current = *page
	}

	start := current * pageSize
	if start >= len(names) {
		return nil, []string{}
	}
	end := start + pageSize
	if end >= len(names) {
		return nil, names[start:]
	}

	next := current + 1
	return &next, names[start:end]
}
