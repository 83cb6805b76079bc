package domain

import "time"

// DefaultRoleCode is granted to every user created through an invite.
const DefaultRoleCode = "VIEWER"

// AdminRoleCode is granted to the seeded administrator.
const AdminRoleCode = "ADMIN"

type RoleType string

const (
	RoleTypeSystem RoleType = "system"
	RoleTypeCustom RoleType = "custom"
)

type Role struct {
	ID          string
	Code        string
	Name        string
	Description *string
	Type        RoleType
	UserCount   int // only set by listings
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// RolePatch carries the optional fields of a role update. Nil means unchanged.
type RolePatch struct {
	Name        *string
	Description *string // empty string clears the description
	Type        *RoleType
}
