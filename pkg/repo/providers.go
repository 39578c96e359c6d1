package repo

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/SmdhMdep/iot-status-api/pkg/common"
	"github.com/SmdhMdep/iot-status-api/pkg/models"
)

type ListProvidersInput struct {
	NameLike *string
	Page     *int
	PageSize int
	// All lists every provider group instead of just the caller's
	// memberships. Requires an admin caller.
	All         bool
	Memberships []string
}

// ListProviders returns provider names in canonical form. Admin callers page
// through the identity server's groups; everyone else sees their own group
// memberships filtered in place.
func (r *Repo) ListProviders(ctx context.Context, input ListProvidersInput) (*models.ProvidersPage, error) {
	logger := common.GetLoggerWith(
		common.LoggerNameRepo,
		zap.String(common.LoggerFieldRepoCategory, common.LoggerCategoryRepoProvider),
	)
	pageSize := r.pageSize(input.PageSize)

	if input.All {
		page := 0
		if input.Page != nil {
			page = *input.Page
		}
		nameLike := ""
		if input.NameLike != nil {
			// the identity server stores display names, not canonical ones
			nameLike = DisplayGroupName(CanonicalGroupName(*input.NameLike))
		}
		next, groups, err := r.Groups.Groups(ctx, nameLike, page, pageSize)
		if err != nil {
			return nil, err
		}
		logger.Debug("listed provider groups", zap.Int("count", len(groups)))
		return &models.ProvidersPage{
			NextPage:  next,
			Providers: common.Mapper(groups, CanonicalGroupName),
		}, nil
	}

	providers := make([]string, 0, len(input.Memberships))
	for _, membership := range input.Memberships {
		name := CanonicalGroupName(membership)
		if input.NameLike != nil && !strings.Contains(name, CanonicalGroupName(*input.NameLike)) {
			continue
		}
		providers = append(providers, name)
	}
	return &models.ProvidersPage{Providers: providers}, nil
}
