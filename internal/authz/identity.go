package authz

import "sort"

// UserType classifies a caller. SUPER_ADMIN short-circuits both the tenant
// and the permission gates; every other type goes through both.
type UserType string

const (
	UserTypeClient     UserType = "CLIENT"
	UserTypeEmployee   UserType = "EMPLOYEE"
	UserTypeAdmin      UserType = "ADMIN"
	UserTypeSuperAdmin UserType = "SUPER_ADMIN"
)

// Permission is a stable named capability. Inactive permissions stay assigned
// to roles but never contribute to a caller's effective set.
type Permission struct {
	Name     string
	IsActive bool
}

type PermissionGrant struct {
	Permission Permission
}

type Role struct {
	ID          int64
	Name        string
	Permissions []PermissionGrant
}

type RoleAssignment struct {
	Role Role
}

// CallerIdentity is the per-request identity record produced by the identity
// resolver from a verified token. It is never persisted and is owned
// exclusively by the request that resolved it.
type CallerIdentity struct {
	ID           int64
	Email        string
	UserType     UserType
	EnterpriseID *string
	Roles        []RoleAssignment
}

func (id *CallerIdentity) IsSuperAdmin() bool {
	return id != nil && id.UserType == UserTypeSuperAdmin
}

// PermissionSet holds effective permission names with set semantics.
type PermissionSet map[string]struct{}

func (s PermissionSet) Has(name string) bool {
	_, ok := s[name]
	return ok
}

// Intersects reports whether at least one of the given names is in the set.
func (s PermissionSet) Intersects(names []string) bool {
	for _, name := range names {
		if _, ok := s[name]; ok {
			return true
		}
	}
	return false
}

// Names returns the set contents sorted, for logging and assertions.
func (s PermissionSet) Names() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// EffectivePermissions computes the caller's effective permission set: the
// union of active permission names across every assigned role. Duplicates
// across roles collapse, inactive grants are skipped, and the caller's role
// data is never mutated. A caller with no roles yields an empty set.
func EffectivePermissions(identity *CallerIdentity) PermissionSet {
	set := make(PermissionSet)
	if identity == nil {
		return set
	}
	for _, assignment := range identity.Roles {
		for _, grant := range assignment.Role.Permissions {
			if grant.Permission.IsActive && grant.Permission.Name != "" {
				set[grant.Permission.Name] = struct{}{}
			}
		}
	}
	return set
}
