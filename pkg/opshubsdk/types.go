package opshubsdk

import "time"

// ============================================================================
// Error Types
// ============================================================================

// ErrorResponse is the error body returned by every endpoint.
// Client code should use the APIError type from errors.go instead.
type ErrorResponse struct {
	// Error is the error kind (e.g. "validation_error", "not_found")
	Error string `json:"error"`

	// ErrorDescription is a human-readable description of the error
	ErrorDescription string `json:"error_description"`
}

// ============================================================================
// Invite Lifecycle Types
// ============================================================================

// IssueInviteRequest asks for a single-use invite for an email address.
type IssueInviteRequest struct {
	Email string `json:"email"`
}

// IssueInviteResponse carries the accept URL. The raw token is only ever
// returned here, as the "token" query parameter of InviteURL.
type IssueInviteResponse struct {
	InviteURL string    `json:"invite_url"`
	ExpiresAt time.Time `json:"expires_at"`
}

// VerifyInviteResponse describes a token that is currently redeemable.
type VerifyInviteResponse struct {
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expires_at"`
}

// AcceptInviteRequest redeems a token into a new ACTIVE user.
type AcceptInviteRequest struct {
	Token string `json:"token"`
	Name  string `json:"name"`
}

// Invite is an invite as seen by administrators. The token itself is never
// exposed after issuance.
type Invite struct {
	ID           string     `json:"id"`
	Email        string     `json:"email"`
	Status       string     `json:"status"` // pending, used, expired, superseded
	IssuedAt     time.Time  `json:"issued_at"`
	ExpiresAt    time.Time  `json:"expires_at"`
	UsedAt       *time.Time `json:"used_at,omitempty"`
	UsedBy       string     `json:"used_by,omitempty"`
	SupersededAt *time.Time `json:"superseded_at,omitempty"`
}

// ============================================================================
// User Types
// ============================================================================

type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Status    string    `json:"status"` // ACTIVE, INACTIVE, PENDING
	RoleIDs   []string  `json:"role_ids"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type UpdateUserStatusRequest struct {
	Status string `json:"status"`
}

// SetUserRolesRequest replaces the user's role assignments with RoleIDs.
type SetUserRolesRequest struct {
	RoleIDs []string `json:"role_ids"`
}

// ============================================================================
// Role Types
// ============================================================================

type Role struct {
	ID          string    `json:"id"`
	Code        string    `json:"code"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	Type        string    `json:"type"` // system or custom
	UserCount   int       `json:"user_count"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type CreateRoleRequest struct {
	Code        string  `json:"code"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	Type        string  `json:"type"`
}

// UpdateRoleRequest patches a role. Nil fields are left unchanged; an empty
// Description clears it.
type UpdateRoleRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Type        *string `json:"type,omitempty"`
}

// ============================================================================
// Audit Types
// ============================================================================

type AuditLog struct {
	ID          string         `json:"id"`
	Action      string         `json:"action"`
	ActorID     string         `json:"actor_id,omitempty"`
	TargetType  string         `json:"target_type"`
	TargetID    string         `json:"target_id"`
	TargetLabel string         `json:"target_label"`
	Meta        map[string]any `json:"meta"`
	CreatedAt   time.Time      `json:"created_at"`
}

// AuditLogQuery filters audit listings. Zero values are omitted.
type AuditLogQuery struct {
	Action     string
	TargetType string
	Query      string // case-insensitive match on target_label
	Since      string // "7d", "30d" or RFC3339
	Limit      int
}

// ============================================================================
// Health Types
// ============================================================================

// HealthResponse is returned by /livez and /readyz (readyz adds Checks).
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime,omitempty"`
	Version string        `json:"version,omitempty"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

type HealthChecks struct {
	Database    string `json:"database"`
	DefaultRole string `json:"default_role"`
}
