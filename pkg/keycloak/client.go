// Package keycloak wraps the two Keycloak surfaces this service talks to:
// token introspection on the OIDC endpoints and group listing on the admin
// API. Admin calls authenticate with a service account token that is cached
// for the life of the process and refreshed on the first 401.
package keycloak

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/SmdhMdep/iot-status-api/pkg/apperrors"
	"github.com/SmdhMdep/iot-status-api/pkg/common"
)

// Introspection is the subset of the token introspection response the
// service reads. Groups carry the caller's provider memberships.
type Introspection struct {
	Active         bool                `json:"active"`
	Email          string              `json:"email"`
	Name           string              `json:"name"`
	Groups         []string            `json:"groups"`
	ResourceAccess map[string]struct {
		Roles []string `json:"roles"`
	} `json:"resource_access"`
}

type Client struct {
	issuerURL    string
	adminURL     string
	clientID     string
	clientSecret string
	http         *http.Client

	mu    sync.Mutex
	token string
}

func NewClient() *Client {
	return &Client{
		issuerURL:    strings.TrimSuffix(os.Getenv(common.EnvKeyOidcJwtIssuerUrl), "/"),
		adminURL:     strings.TrimSuffix(os.Getenv(common.EnvKeyKeycloakAdminUrl), "/"),
		clientID:     os.Getenv(common.EnvKeyOidcClientID),
		clientSecret: os.Getenv(common.EnvKeyOidcClientSecret),
		http:         &http.Client{Timeout: 10 * time.Second},
	}
}

// Introspect asks the identity server whether token is valid and who it
// belongs to. An inactive or malformed token still yields an Introspection
// with Active set to false, not an error.
func (c *Client) Introspect(ctx context.Context, token string) (*Introspection, error) {
	form := url.Values{"token": {token}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.issuerURL+"/protocol/openid-connect/token/introspect",
		strings.NewReader(form.Encode()))
	if err != nil {
		return nil, apperrors.Internal("keycloak introspection request", err)
	}
	req.SetBasicAuth(c.clientID, c.clientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, apperrors.Internal("keycloak introspection request", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apperrors.Internal(
			fmt.Sprintf("keycloak introspection returned status %d", resp.StatusCode), nil)
	}

	var result Introspection
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, apperrors.Internal("keycloak introspection response", err)
	}
	return &result, nil
}

type group struct {
	Name string `json:"name"`
}

// Groups lists group names from the admin API. nextPage is non nil when a
// further page may exist.
func (c *Client) Groups(ctx context.Context, nameLike string, page, pageSize int) (*int, []string, error) {
	params := url.Values{
		"max":   {strconv.Itoa(pageSize)},
		"first": {strconv.Itoa(page * pageSize)},
	}
	if nameLike != "" {
		params.Set("search", nameLike)
	}

	body, err := c.adminGet(ctx, "/groups?"+params.Encode())
	if err != nil {
		return nil, nil, err
	}

	var groups []group
	if err := json.Unmarshal(body, &groups); err != nil {
		return nil, nil, apperrors.Internal("keycloak groups response", err)
	}

	names := common.Mapper(groups, func(g group) string { return g.Name })

	var nextPage *int
	if len(names) >= pageSize {
		next := page + 1
		nextPage = &next
	}
	return nextPage, names, nil
}

// adminGet performs an authenticated admin API request, re-authenticating
// once when the cached service account token has expired.
func (c *Client) adminGet(ctx context.Context, path string) ([]byte, error) {
	for attempt := 0; ; attempt++ {
		token, err := c.serviceToken(ctx, attempt > 0)
		if err != nil {
			return nil, err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.adminURL+path, nil)
		if err != nil {
			return nil, apperrors.Internal("keycloak admin request", err)
		}
		req.Header.Set("Authorization", "Bearer "+token)

		resp, err := c.http.Do(req)
		if err != nil {
			return nil, apperrors.Internal("keycloak admin request", err)
		}
		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			return nil, apperrors.Internal("keycloak admin response", err)
		}

		if resp.StatusCode == http.StatusUnauthorized && attempt == 0 {
			common.GetLoggerWith(common.LoggerNameKeycloak).Debug(
				"service account token expired, re-authenticating")
			continue
		}
		if resp.StatusCode != http.StatusOK {
			return nil, apperrors.Internal(
				fmt.Sprintf("keycloak admin api returned status %d", resp.StatusCode), nil)
		}
		return body, nil
	}
}

// serviceToken returns the cached service account token, fetching a fresh
// one on first use or when invalidate is set.
func (c *Client) serviceToken(ctx context.Context, invalidate bool) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token != "" && !invalidate {
		return c.token, nil
	}

	form := url.Values{
		"grant_type":    {"client_credentials"},
		"client_id":     {c.clientID},
		"client_secret": {c.clientSecret},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.issuerURL+"/protocol/openid-connect/token",
		strings.NewReader(form.Encode()))
	if err != nil {
		return "", apperrors.Internal("keycloak token request", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", apperrors.Internal("keycloak token request", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", apperrors.Internal(
			fmt.Sprintf("keycloak token endpoint returned status %d", resp.StatusCode), nil)
	}

	var result struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", apperrors.Internal("keycloak token response", err)
	}
	if result.AccessToken == "" {
		return "", apperrors.Internal("keycloak token response carried no access token", nil)
	}

	c.token = result.AccessToken
	common.GetLoggerWith(common.LoggerNameKeycloak).Debug("authenticated service account",
		zap.String("clientId", c.clientID))
	return c.token, nil
}
