package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/SmdhMdep/iot-status-api/pkg/apperrors"
	"github.com/SmdhMdep/iot-status-api/pkg/auth"
	"github.com/SmdhMdep/iot-status-api/pkg/common"
	"github.com/SmdhMdep/iot-status-api/pkg/repo"
)

const (
	ctxKeyAuth         = "auth"
	ctxKeyProvider     = "scope:provider"
	ctxKeyOrganization = "scope:organization"

	requestIDHeader = "X-Request-Id"
)

// RequestLogger tags every request with a correlation id and logs its
// outcome.
func (rs *RestfulServer) RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := uuid.NewString()
		c.Header(requestIDHeader, requestID)
		start := time.Now()

		c.Next()

		common.GetLoggerWith(common.LoggerNameRestfulServer).Info("request",
			zap.String("requestId", requestID),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
		)
	}
}

// Authenticate introspects the bearer token and stores the caller identity
// in the request context. No-op in offline mode.
func (rs *RestfulServer) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		if rs.Offline {
			c.Next()
			return
		}

		token := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
		if token == "" {
			respondError(c, apperrors.Unauthorized("missing bearer token"))
			c.Abort()
			return
		}

		result, err := rs.Tokens.Introspect(c.Request.Context(), token)
		if err != nil {
			respondError(c, err)
			c.Abort()
			return
		}
		if !result.Active {
			respondError(c, apperrors.Unauthorized("inactive token"))
			c.Abort()
			return
		}

		c.Set(ctxKeyAuth, auth.FromIntrospection(result))
		c.Next()
	}
}

func (rs *RestfulServer) RateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		callerID := c.ClientIP()
		if caller := currentAuth(c); caller != nil && caller.Email != "" {
			callerID = caller.Email
		}
		if !rs.CheckCallerLimiter(callerID) {
			c.Status(http.StatusTooManyRequests)
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequirePermission rejects callers missing permission. No-op in offline
// mode.
func (rs *RestfulServer) RequirePermission(permission auth.Permission) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rs.Offline {
			c.Next()
			return
		}
		caller := currentAuth(c)
		if caller == nil || !caller.HasPermission(permission) {
			respondError(c, apperrors.Unauthorized("missing permission "+string(permission)))
			c.Abort()
			return
		}
		c.Next()
	}
}

func currentAuth(c *gin.Context) *auth.Auth {
	value, exists := c.Get(ctxKeyAuth)
	if !exists {
		return nil
	}
	return value.(*auth.Auth)
}

// requestProvider resolves the provider scope for the request. Callers with
// the providers read permission choose freely; provider group members are
// pinned to their memberships. The result is cached in the request context.
func (rs *RestfulServer) requestProvider(c *gin.Context) (*string, error) {
	if cached, exists := c.Get(ctxKeyProvider); exists {
		return cached.(*string), nil
	}
	provider, err := rs.resolveScope(c, c.Query("provider"), auth.PermissionReadProviders, true)
	if err != nil {
		return nil, err
	}
	c.Set(ctxKeyProvider, provider)
	return provider, nil
}

// requestOrganization resolves the organization scope the same way, except
// every caller without the organizations read permission is pinned to their
// groups.
func (rs *RestfulServer) requestOrganization(c *gin.Context) (*string, error) {
	if cached, exists := c.Get(ctxKeyOrganization); exists {
		return cached.(*string), nil
	}
	organization, err := rs.resolveScope(c, c.Query("organization"), auth.PermissionReadOrganizations, false)
	if err != nil {
		return nil, err
	}
	c.Set(ctxKeyOrganization, organization)
	return organization, nil
}

func (rs *RestfulServer) resolveScope(
	c *gin.Context, requested string, permission auth.Permission, providersOnly bool,
) (*string, error) {
	if rs.Offline {
		return optional(requested), nil
	}

	caller := currentAuth(c)
	if caller == nil {
		return nil, apperrors.Unauthorized("missing bearer token")
	}
	if caller.HasPermission(permission) {
		return optional(requested), nil
	}
	if providersOnly && !caller.IsProvider() {
		return nil, nil
	}
	if len(caller.GroupMemberships) == 0 {
		return nil, apperrors.InvalidArgument("missing groups")
	}

	scope := requested
	if scope == "" {
		scope = repo.CanonicalGroupName(caller.GroupMemberships[0])
	}
	for _, membership := range caller.GroupMemberships {
		if repo.CanonicalGroupName(membership) == repo.CanonicalGroupName(scope) {
			return optional(scope), nil
		}
	}
	return nil, apperrors.InvalidArgument("scope not in groups: " + scope)
}

func optional(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
