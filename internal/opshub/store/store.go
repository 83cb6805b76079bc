package store

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/opshub/internal/opshub/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
	// ErrStale is returned by conditional updates whose guard no longer
	// holds, e.g. marking an invite used that another transaction consumed.
	ErrStale = errors.New("store: row changed concurrently")
	// ErrInUse is returned when a delete is blocked by referencing rows.
	ErrInUse = errors.New("store: still referenced")
)

// Store is the root data access interface. Drivers (sqlite, postgres)
// implement it. Sub-repositories hang off the Store so a Tx exposes the very
// same surface, and a transaction cannot open another one.
type Store interface {
	Users() Users
	UserRoles() UserRoles
	Roles() Roles
	Invites() Invites
	AuditLogs() AuditLogs

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx runs fn in a transaction, committing if fn returns nil and
	// rolling back otherwise. Prefer it over Tx.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// GetUserByID returns a user with its role ids.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByEmail looks up by normalized email.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// CreateUser inserts a user. A duplicate email yields ErrAlreadyExists.
	CreateUser(ctx context.Context, u domain.User) error

	// ListUsers returns every user with role ids, most recently updated first.
	ListUsers(ctx context.Context) ([]domain.User, error)

	// UpdateStatus sets status and bumps updated_at.
	UpdateStatus(ctx context.Context, userID string, status domain.UserStatus) error

	// Touch bumps updated_at, e.g. after role assignments change.
	Touch(ctx context.Context, userID string) error
}

type UserRoles interface {
	// AssignRole links a user to a role. A duplicate pair yields ErrAlreadyExists.
	AssignRole(ctx context.Context, userID, roleID string) error

	// ReplaceRoles makes roleIDs the user's exact role set.
	ReplaceRoles(ctx context.Context, userID string, roleIDs []string) error

	// ListRoleIDs returns the user's role ids ordered by assignment time.
	ListRoleIDs(ctx context.Context, userID string) ([]string, error)

	// CountUsersWithRole returns how many users hold roleID.
	CountUsersWithRole(ctx context.Context, roleID string) (int, error)
}

type Roles interface {
	GetRoleByID(ctx context.Context, id string) (domain.Role, error)

	// GetRoleByCode fetches a role by its well-known code (e.g. VIEWER).
	GetRoleByCode(ctx context.Context, code string) (domain.Role, error)

	// ListAll returns all roles ordered by code with user counts.
	ListAll(ctx context.Context) ([]domain.Role, error)

	// CreateRole inserts a role. A duplicate code yields ErrAlreadyExists.
	CreateRole(ctx context.Context, r domain.Role) error

	// UpdateRole rewrites name, description and type, bumping updated_at.
	UpdateRole(ctx context.Context, r domain.Role) error

	// DeleteRole removes a role. ErrInUse if users still reference it.
	DeleteRole(ctx context.Context, roleID string) error
}

// InviteFilter narrows invite listings. Status is evaluated at Now.
type InviteFilter struct {
	Status domain.InviteStatus
	Email  string
	Now    time.Time
	Limit  int
}

type Invites interface {
	// CreateInvite writes a new invite keyed by its token fingerprint.
	CreateInvite(ctx context.Context, inv domain.Invite) error

	// GetInviteByTokenHash returns the invite whatever its state.
	GetInviteByTokenHash(ctx context.Context, hash string) (domain.Invite, error)

	// LockInviteByTokenHash is GetInviteByTokenHash for use inside a Tx:
	// drivers with row locks hold the row until the transaction ends.
	LockInviteByTokenHash(ctx context.Context, hash string) (domain.Invite, error)

	GetInviteByID(ctx context.Context, id string) (domain.Invite, error)

	// ListInvites returns invites newest first.
	ListInvites(ctx context.Context, f InviteFilter) ([]domain.Invite, error)

	// MarkInviteUsed sets used_at/used_by only if the invite is still unused
	// and not superseded; otherwise ErrStale.
	MarkInviteUsed(ctx context.Context, inviteID, userID string, at time.Time) error

	// SupersedeInvite retires one live invite; ErrStale if it is not live.
	SupersedeInvite(ctx context.Context, inviteID string, at time.Time) error

	// SupersedeLiveInvites retires every live invite for email and reports
	// how many were affected.
	SupersedeLiveInvites(ctx context.Context, email string, at time.Time) (int64, error)
}

type AuditLogs interface {
	CreateAuditLog(ctx context.Context, l domain.AuditLog) error

	// ListAuditLogs returns entries newest first.
	ListAuditLogs(ctx context.Context, f domain.AuditFilter) ([]domain.AuditLog, error)

	// DeleteAuditLogsBefore prunes entries created before cutoff.
	DeleteAuditLogsBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
