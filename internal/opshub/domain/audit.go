package domain

import "time"

type AuditAction string

const (
	AuditUserInvited        AuditAction = "USER_INVITED"
	AuditUserInviteAccepted AuditAction = "USER_INVITE_ACCEPTED"
	AuditUserInviteRevoked  AuditAction = "USER_INVITE_REVOKED"
	AuditUserRolesUpdated   AuditAction = "USER_ROLES_UPDATED"
	AuditUserStatusUpdated  AuditAction = "USER_STATUS_UPDATED"
	AuditRoleCreated        AuditAction = "ROLE_CREATED"
	AuditRoleUpdated        AuditAction = "ROLE_UPDATED"
	AuditRoleDeleted        AuditAction = "ROLE_DELETED"
	AuditSeedInit           AuditAction = "SEED_INIT"
)

type AuditTargetType string

const (
	AuditTargetUser   AuditTargetType = "user"
	AuditTargetRole   AuditTargetType = "role"
	AuditTargetInvite AuditTargetType = "invite"
	AuditTargetSystem AuditTargetType = "system"
)

type AuditLog struct {
	ID          string
	Action      AuditAction
	ActorID     string // empty for unauthenticated or system actions
	TargetType  AuditTargetType
	TargetID    string
	TargetLabel string // user: email, role: code, invite: email
	Meta        map[string]any
	CreatedAt   time.Time
}

// AuditFilter narrows audit log listings. Zero values mean "any".
type AuditFilter struct {
	Action     AuditAction
	TargetType AuditTargetType
	Query      string // case-insensitive substring of TargetLabel
	Since      time.Time
	Limit      int
}
