// Package auth models the caller identity derived from an introspected
// access token.
package auth

import (
	"os"
	"slices"

	"github.com/SmdhMdep/iot-status-api/pkg/common"
	"github.com/SmdhMdep/iot-status-api/pkg/keycloak"
)

type Permission string

const (
	PermissionReadProviders     Permission = "read:providers"
	PermissionReadOrganizations Permission = "read:organizations"
	PermissionUpdateDevices     Permission = "update:devices"
	PermissionCreateDevices     Permission = "create:devices"
)

// Auth is the resolved identity of a request's caller.
type Auth struct {
	Email            string
	Name             string
	GroupMemberships []string
	Permissions      []Permission

	admin bool
}

// FromIntrospection builds an Auth from an active token introspection.
// Whether the caller is an admin is decided by the role client and admin
// role names configured in the environment.
func FromIntrospection(result *keycloak.Introspection) *Auth {
	adminRole := os.Getenv(common.EnvKeyKeycloakAdminRole)
	roleClient := os.Getenv(common.EnvKeyKeycloakRoleClient)

	admin := false
	if access, ok := result.ResourceAccess[roleClient]; ok {
		admin = slices.Contains(access.Roles, adminRole)
	}

	var permissions []Permission
	if admin {
		permissions = []Permission{
			PermissionReadProviders, PermissionReadOrganizations,
			PermissionUpdateDevices, PermissionCreateDevices,
		}
	}

	return &Auth{
		Email:            result.Email,
		Name:             result.Name,
		GroupMemberships: result.Groups,
		Permissions:      permissions,
		admin:            admin,
	}
}

func (a *Auth) IsAdmin() bool { return a.admin }

// IsProvider reports whether the caller belongs to at least one provider
// group.
func (a *Auth) IsProvider() bool { return len(a.GroupMemberships) > 0 }

func (a *Auth) HasPermission(permission Permission) bool {
	return slices.Contains(a.Permissions, permission)
}
