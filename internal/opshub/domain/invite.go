package domain

import "time"

type Invite struct {
	ID           string
	TokenHash    string // sha256 fingerprint of the opaque token
	Email        string // normalized: trimmed and lower-cased
	IssuedAt     time.Time
	ExpiresAt    time.Time
	UsedAt       *time.Time
	UsedBy       string // user id, empty until redeemed
	SupersededAt *time.Time
}

type InviteStatus string

const (
	InviteStatusPending    InviteStatus = "pending"
	InviteStatusUsed       InviteStatus = "used"
	InviteStatusExpired    InviteStatus = "expired"
	InviteStatusSuperseded InviteStatus = "superseded"
)

// StatusAt derives the lifecycle state at now. Used wins over superseded,
// which wins over expired; all three are terminal.
func (i Invite) StatusAt(now time.Time) InviteStatus {
	switch {
	case i.UsedAt != nil:
		return InviteStatusUsed
	case i.SupersededAt != nil:
		return InviteStatusSuperseded
	case i.ExpiresAt.Before(now):
		return InviteStatusExpired
	default:
		return InviteStatusPending
	}
}

func ParseInviteStatus(s string) (InviteStatus, bool) {
	switch st := InviteStatus(s); st {
	case InviteStatusPending, InviteStatusUsed, InviteStatusExpired, InviteStatusSuperseded:
		return st, true
	}
	return "", false
}
