package domain

import "time"

type UserStatus string

const (
	UserStatusActive   UserStatus = "ACTIVE"
	UserStatusInactive UserStatus = "INACTIVE"
	UserStatusPending  UserStatus = "PENDING"
)

func (s UserStatus) Valid() bool {
	switch s {
	case UserStatusActive, UserStatusInactive, UserStatusPending:
		return true
	}
	return false
}

type User struct {
	ID        string
	Email     string
	Name      string
	Status    UserStatus
	RoleIDs   []string // populated by listings and redemption
	CreatedAt time.Time
	UpdatedAt time.Time
}

// UserRole links a user to a role. The pair is unique.
type UserRole struct {
	UserID    string
	RoleID    string
	CreatedAt time.Time
}
