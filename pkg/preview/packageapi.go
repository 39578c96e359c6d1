package preview

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/SmdhMdep/iot-status-api/pkg/apperrors"
	"github.com/SmdhMdep/iot-status-api/pkg/common"
)

// PackageAPIClient talks to the data catalog's package API.
type PackageAPIClient struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func NewPackageAPIClient() *PackageAPIClient {
	return &PackageAPIClient{
		baseURL: os.Getenv(common.EnvKeyPackageApiUrl),
		apiKey:  os.Getenv(common.EnvKeyPackageApiKey),
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *PackageAPIClient) FindPackage(ctx context.Context, organization, project string) (*Package, error) {
	params := url.Values{"org_name": {organization}, "name": {project}}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/api/3/action/cloudstorage_package_show?"+params.Encode(), nil)
	if err != nil {
		return nil, apperrors.Internal("package api request", err)
	}
	req.Header.Set("Authorization", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, apperrors.Internal("package api request", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusNotFound:
		return nil, nil
	case http.StatusForbidden:
		// the api sometimes denies access to packages the service account
		// should be able to read, treat these the same as missing ones
		common.GetLoggerWith(common.LoggerNamePreview).Error(
			"package api denied access to package", zap.String("project", project))
		return nil, nil
	case http.StatusOK:
	default:
		return nil, apperrors.Internal(
			fmt.Sprintf("package api returned status %d", resp.StatusCode), nil)
	}

	var body struct {
		Success bool    `json:"success"`
		Result  Package `json:"result"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, apperrors.Internal("package api response", err)
	}
	if !body.Success {
		common.GetLoggerWith(common.LoggerNamePreview).Error(
			"package api reported failure", zap.String("project", project))
		return nil, apperrors.Internal("package api reported failure", nil)
	}
	return &body.Result, nil
}
