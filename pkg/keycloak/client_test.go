package keycloak

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SmdhMdep/iot-status-api/pkg/apperrors"
	"github.com/SmdhMdep/iot-status-api/pkg/common"
	_ "github.com/SmdhMdep/iot-status-api/pkg/testing"
)

func newTestClient(issuerURL, adminURL string) *Client {
	common.SetTestLoggerNop()
	return &Client{
		issuerURL:    issuerURL,
		adminURL:     adminURL,
		clientID:     "status-api",
		clientSecret: "shhh",
		http:         &http.Client{Timeout: time.Second},
	}
}

func TestIntrospect(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/protocol/openid-connect/token/introspect", r.URL.Path)

		user, pass, ok := r.BasicAuth()
		require.True(t, ok)
		assert.Equal(t, "status-api", user)
		assert.Equal(t, "shhh", pass)

		require.NoError(t, r.ParseForm())
		assert.Equal(t, "caller-token", r.PostForm.Get("token"))

		_ = json.NewEncoder(w).Encode(map[string]any{
			"active": true,
			"email":  "ops@acme.example",
			"name":   "Ops User",
			"groups": []string{"Acme Corp"},
			"resource_access": map[string]any{
				"status-api": map[string]any{"roles": []string{"admin"}},
			},
		})
	}))
	defer server.Close()

	client := newTestClient(server.URL, server.URL)

	result, err := client.Introspect(context.Background(), "caller-token")
	require.NoError(t, err)
	assert.True(t, result.Active)
	assert.Equal(t, "ops@acme.example", result.Email)
	assert.Equal(t, []string{"Acme Corp"}, result.Groups)
	assert.Equal(t, []string{"admin"}, result.ResourceAccess["status-api"].Roles)
}

func TestIntrospect_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := newTestClient(server.URL, server.URL)

	_, err := client.Introspect(context.Background(), "caller-token")
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindInternal))
}

func TestGroups(t *testing.T) {
	tokenRequests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/protocol/openid-connect/token":
			tokenRequests++
			require.NoError(t, r.ParseForm())
			assert.Equal(t, "client_credentials", r.PostForm.Get("grant_type"))
			_ = json.NewEncoder(w).Encode(map[string]string{"access_token": "svc-token"})
		case "/groups":
			assert.Equal(t, "Bearer svc-token", r.Header.Get("Authorization"))
			assert.Equal(t, "2", r.URL.Query().Get("max"))
			assert.Equal(t, "2", r.URL.Query().Get("first"))
			assert.Equal(t, "Acme", r.URL.Query().Get("search"))
			_ = json.NewEncoder(w).Encode([]map[string]string{
				{"name": "Acme Corp"}, {"name": "Acme Labs"},
			})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer server.Close()

	client := newTestClient(server.URL, server.URL)

	nextPage, names, err := client.Groups(context.Background(), "Acme", 1, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"Acme Corp", "Acme Labs"}, names)
	require.NotNil(t, nextPage)
	assert.Equal(t, 2, *nextPage)

	// a second listing reuses the cached service account token
	_, _, err = client.Groups(context.Background(), "Acme", 1, 2)
	require.NoError(t, err)
	assert.Equal(t, 1, tokenRequests)
}

func TestGroups_LastPage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/protocol/openid-connect/token":
			_ = json.NewEncoder(w).Encode(map[string]string{"access_token": "svc-token"})
		case "/groups":
			assert.Equal(t, "", r.URL.Query().Get("search"))
			_ = json.NewEncoder(w).Encode([]map[string]string{{"name": "Acme Corp"}})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer server.Close()

	client := newTestClient(server.URL, server.URL)

	nextPage, names, err := client.Groups(context.Background(), "", 0, 20)
	require.NoError(t, err)
	assert.Equal(t, []string{"Acme Corp"}, names)
	assert.Nil(t, nextPage)
}

func TestGroups_ReauthenticatesOnExpiredToken(t *testing.T) {
	tokenRequests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/protocol/openid-connect/token":
			tokenRequests++
			token := "tok-1"
			if tokenRequests > 1 {
				token = "tok-2"
			}
			_ = json.NewEncoder(w).Encode(map[string]string{"access_token": token})
		case "/groups":
			if r.Header.Get("Authorization") == "Bearer tok-1" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			_ = json.NewEncoder(w).Encode([]map[string]string{{"name": "Acme Corp"}})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer server.Close()

	client := newTestClient(server.URL, server.URL)

	_, names, err := client.Groups(context.Background(), "", 0, 20)
	require.NoError(t, err)
	assert.Equal(t, []string{"Acme Corp"}, names)
	assert.Equal(t, 2, tokenRequests)
}

func TestGroups_PersistentUnauthorized(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/protocol/openid-connect/token":
			_ = json.NewEncoder(w).Encode(map[string]string{"access_token": "svc-token"})
		case "/groups":
			w.WriteHeader(http.StatusUnauthorized)
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer server.Close()

	client := newTestClient(server.URL, server.URL)

	_, _, err := client.Groups(context.Background(), "", 0, 20)
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindInternal))
}

func TestServiceToken_EmptyResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{})
	}))
	defer server.Close()

	client := newTestClient(server.URL, server.URL)

	_, err := client.serviceToken(context.Background(), false)
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindInternal))
}
