package http

import (
	"github.com/aussiebroadwan/opshub/internal/opshub/domain"
	"github.com/aussiebroadwan/opshub/internal/opshub/service"
	"github.com/aussiebroadwan/opshub/pkg/opshubsdk"
)

func toUser(u domain.User) opshubsdk.User {
	roleIDs := u.RoleIDs
	if roleIDs == nil {
		roleIDs = []string{}
	}
	return opshubsdk.User{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Status:    string(u.Status),
		RoleIDs:   roleIDs,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func toRole(r domain.Role) opshubsdk.Role {
	return opshubsdk.Role{
		ID:          r.ID,
		Code:        r.Code,
		Name:        r.Name,
		Description: r.Description,
		Type:        string(r.Type),
		UserCount:   r.UserCount,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func toInvite(l service.InviteListing) opshubsdk.Invite {
	return opshubsdk.Invite{
		ID:           l.ID,
		Email:        l.Email,
		Status:       string(l.Status),
		IssuedAt:     l.IssuedAt,
		ExpiresAt:    l.ExpiresAt,
		UsedAt:       l.UsedAt,
		UsedBy:       l.UsedBy,
		SupersededAt: l.SupersededAt,
	}
}

func toAuditLog(l domain.AuditLog) opshubsdk.AuditLog {
	meta := l.Meta
	if meta == nil {
		meta = map[string]any{}
	}
	return opshubsdk.AuditLog{
		ID:          l.ID,
		Action:      string(l.Action),
		ActorID:     l.ActorID,
		TargetType:  string(l.TargetType),
		TargetID:    l.TargetID,
		TargetLabel: l.TargetLabel,
		Meta:        meta,
		CreatedAt:   l.CreatedAt,
	}
}

// mapSlice converts every element of in with fn, never returning nil so
// empty listings encode as [].
func mapSlice[T, U any](in []T, fn func(T) U) []U {
	out := make([]U, len(in))
	for i, v := range in {
		out[i] = fn(v)
	}
	return out
}
