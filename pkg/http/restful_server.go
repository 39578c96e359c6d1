package http

import (
	"context"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/SmdhMdep/iot-status-api/pkg/auth"
	"github.com/SmdhMdep/iot-status-api/pkg/keycloak"
	"github.com/SmdhMdep/iot-status-api/pkg/repo"
)

// TokenIntrospector resolves access tokens to caller identities.
type TokenIntrospector interface {
	Introspect(ctx context.Context, token string) (*keycloak.Introspection, error)
}

type RestfulServer struct {
	Server           *gin.Engine
	Repo             *repo.Repo
	Tokens           TokenIntrospector
	RateLimiterStore *RateLimiterStore
	// Offline disables authentication and scope checks for local runs
	// against the sqlite stores.
	Offline bool
}

func (rs *RestfulServer) GetLimiter(callerID string) *rate.Limiter {
	if rs.RateLimiterStore == nil {
		return nil
	} else {
		return rs.RateLimiterStore.GetLimiter(callerID)
	}
}

func (rs *RestfulServer) CheckCallerLimiter(callerID string) bool {
	limiter := rs.GetLimiter(callerID)
	if limiter == nil {
		return true
	}
	return limiter.Allow()
}

func (rs *RestfulServer) Setup() {
	rs.Server.Use(rs.RequestLogger())

	rs.Server.GET("/healthz", rs.HealthCheck)

	api := rs.Server.Group("", rs.Authenticate(), rs.RateLimit())
	{
		api.GET("/devices", rs.ListDevices)
		api.GET("/devices/export", rs.ExportDevices)
		api.GET("/devices/:device_name", rs.GetDevice)
		api.PUT("/devices/:device_name/label",
			rs.RequirePermission(auth.PermissionUpdateDevices), rs.UpdateDeviceLabel)
		api.GET("/providers", rs.ListProviders)
		api.GET("/organizations",
			rs.RequirePermission(auth.PermissionReadOrganizations), rs.ListOrganizations)
		api.GET("/projects",
			rs.RequirePermission(auth.PermissionReadOrganizations), rs.ListProjects)
		api.GET("/schemas",
			rs.RequirePermission(auth.PermissionCreateDevices), rs.ListSchemas)
		api.GET("/schemas/:schema_id",
			rs.RequirePermission(auth.PermissionCreateDevices), rs.GetSchema)
		api.GET("/me", rs.Me)
	}
}

func (rs *RestfulServer) HealthCheck(c *gin.Context) {
	c.JSON(200, gin.H{"status": "ok"})
}
