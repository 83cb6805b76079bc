package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/aussiebroadwan/opshub/internal/opshub/domain"
	"github.com/aussiebroadwan/opshub/internal/opshub/store"
	"github.com/aussiebroadwan/opshub/pkg/cryptox"
	"github.com/aussiebroadwan/opshub/pkg/idx"
	"github.com/aussiebroadwan/opshub/pkg/slogx"
)

const (
	DefaultInviteTTL       = 24 * time.Hour
	DefaultAcceptURLBase   = "http://localhost:3000/accept-invite"
	DefaultInviteListLimit = 100
	MaxInviteListLimit     = 500
)

// InviteService runs the invite token lifecycle: issue, verify, accept.
type InviteService struct {
	Store store.Store
	Audit *AuditService

	// AcceptURLBase is the page the invitee lands on; the token is appended
	// as the "token" query parameter.
	AcceptURLBase string
	TTL           time.Duration

	// Supersede retires earlier live invites for the same email on issue.
	Supersede       bool
	DefaultRoleCode string

	Now func() time.Time
}

type IssueInviteInput struct {
	Email string `json:"email" validate:"required,email"`
}

type IssuedInvite struct {
	InviteID  string
	InviteURL string
	ExpiresAt time.Time
}

type VerifiedInvite struct {
	Email     string
	ExpiresAt time.Time
}

type AcceptInviteInput struct {
	Token string `json:"token" validate:"required"`
	Name  string `json:"name" validate:"required,max=100"`
}

// InviteListing pairs an invite with its status at listing time.
type InviteListing struct {
	domain.Invite
	Status domain.InviteStatus
}

func (s *InviteService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

func (s *InviteService) ttl() time.Duration {
	if s.TTL > 0 {
		return s.TTL
	}
	return DefaultInviteTTL
}

func (s *InviteService) defaultRoleCode() string {
	if s.DefaultRoleCode != "" {
		return s.DefaultRoleCode
	}
	return domain.DefaultRoleCode
}

func (s *InviteService) inviteURL(token string) string {
	base := s.AcceptURLBase
	if base == "" {
		base = DefaultAcceptURLBase
	}
	sep := "?"
	if strings.Contains(base, "?") {
		sep = "&"
	}
	return base + sep + "token=" + url.QueryEscape(token)
}

// checkRedeemable maps a non-pending invite to its lifecycle error. Used
// wins over superseded, which wins over expired.
func checkRedeemable(inv domain.Invite, now time.Time) error {
	switch inv.StatusAt(now) {
	case domain.InviteStatusUsed:
		return ErrInviteUsed
	case domain.InviteStatusSuperseded:
		return ErrInviteSuperseded
	case domain.InviteStatusExpired:
		return ErrInviteExpired
	}
	return nil
}

// Issue creates a single-use invite for email and returns the accept URL
// carrying the raw token. Only the token fingerprint is stored.
func (s *InviteService) Issue(ctx context.Context, email string) (IssuedInvite, error) {
	log := slogx.FromContext(ctx)

	// 1. Normalize and validate the address.
	in := IssueInviteInput{Email: normalizeEmail(email)}
	if err := checkStruct(in); err != nil {
		log.Warn("invite rejected, invalid email", slog.String("email", in.Email))
		return IssuedInvite{}, err
	}

	// 2. Refuse addresses that already belong to a user.
	_, err := s.Store.Users().GetUserByEmail(ctx, in.Email)
	if err == nil {
		log.Warn("invite rejected, email already registered", slog.String("email", in.Email))
		return IssuedInvite{}, ErrEmailRegistered
	}
	if !errors.Is(err, store.ErrNotFound) {
		log.Error("failed to look up user by email", slog.Any("error", err))
		return IssuedInvite{}, err
	}

	// 3. Generate the opaque token.
	token, err := cryptox.GenerateToken(cryptox.TokenSize128)
	if err != nil {
		log.Error("failed to generate invite token", slog.Any("error", err))
		return IssuedInvite{}, err
	}

	now := s.now()
	invite := domain.Invite{
		ID:        idx.NewAt(now).String(),
		TokenHash: cryptox.FingerprintToken(token),
		Email:     in.Email,
		IssuedAt:  now,
		ExpiresAt: now.Add(s.ttl()),
	}

	// 4. Persist the invite and its audit entry together.
	var (
		entry      domain.AuditLog
		superseded int64
	)
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if s.Supersede {
			n, err := tx.Invites().SupersedeLiveInvites(ctx, invite.Email, now)
			if err != nil {
				log.Error("failed to supersede live invites", slog.Any("error", err))
				return err
			}
			superseded = n
		}

		if err := tx.Invites().CreateInvite(ctx, invite); err != nil {
			log.Error("failed to create invite",
				slog.String("invite_id", invite.ID),
				slog.Any("error", err),
			)
			return err
		}

		entry, err = s.Audit.Record(ctx, tx, domain.AuditLog{
			Action:      domain.AuditUserInvited,
			TargetType:  domain.AuditTargetInvite,
			TargetID:    invite.ID,
			TargetLabel: invite.Email,
			CreatedAt:   now,
			Meta: map[string]any{
				"email":      invite.Email,
				"expires_at": invite.ExpiresAt.Format(time.RFC3339),
				"superseded": superseded,
			},
		})
		return err
	})
	if err != nil {
		return IssuedInvite{}, err
	}
	s.Audit.Publish(entry)

	log.Info("invite issued",
		slog.String("invite_id", invite.ID),
		slog.String("email", invite.Email),
		slog.Time("expires_at", invite.ExpiresAt),
		slog.Int64("superseded", superseded),
	)

	return IssuedInvite{
		InviteID:  invite.ID,
		InviteURL: s.inviteURL(token),
		ExpiresAt: invite.ExpiresAt,
	}, nil
}

// Verify reports whether token is currently redeemable without changing it.
func (s *InviteService) Verify(ctx context.Context, token string) (VerifiedInvite, error) {
	log := slogx.FromContext(ctx)

	token = strings.TrimSpace(token)
	if token == "" {
		return VerifiedInvite{}, ErrTokenRequired
	}

	invite, err := s.Store.Invites().GetInviteByTokenHash(ctx, cryptox.FingerprintToken(token))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Warn("invite verification with unknown token")
			return VerifiedInvite{}, ErrInviteNotFound
		}
		log.Error("failed to fetch invite", slog.Any("error", err))
		return VerifiedInvite{}, err
	}

	if err := checkRedeemable(invite, s.now()); err != nil {
		log.Warn("invite verification rejected",
			slog.String("invite_id", invite.ID),
			slog.String("reason", Describe(err)),
		)
		return VerifiedInvite{}, err
	}

	return VerifiedInvite{Email: invite.Email, ExpiresAt: invite.ExpiresAt}, nil
}

// Accept redeems token, creating an ACTIVE user holding the default role.
// Every check is repeated inside one transaction so a token is consumed at
// most once even under concurrent redemption.
func (s *InviteService) Accept(ctx context.Context, token, name string) (domain.User, error) {
	log := slogx.FromContext(ctx)

	in := AcceptInviteInput{Token: strings.TrimSpace(token), Name: strings.TrimSpace(name)}
	if in.Token == "" {
		return domain.User{}, ErrTokenRequired
	}
	if in.Name == "" {
		return domain.User{}, ErrNameRequired
	}
	if err := checkStruct(in); err != nil {
		return domain.User{}, err
	}

	hash := cryptox.FingerprintToken(in.Token)
	roleCode := s.defaultRoleCode()

	var (
		user   domain.User
		invite domain.Invite
		entry  domain.AuditLog
	)
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		// 1. Re-fetch the invite inside the transaction.
		var err error
		invite, err = tx.Invites().LockInviteByTokenHash(ctx, hash)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrInviteNotFound
			}
			log.Error("failed to fetch invite", slog.Any("error", err))
			return err
		}

		// 2. Re-validate its state.
		now := s.now()
		if err := checkRedeemable(invite, now); err != nil {
			return err
		}

		// 3. The email must still be free.
		_, err = tx.Users().GetUserByEmail(ctx, invite.Email)
		if err == nil {
			return ErrUserExists
		}
		if !errors.Is(err, store.ErrNotFound) {
			log.Error("failed to look up user by email", slog.Any("error", err))
			return err
		}

		// 4. Create the user.
		user = domain.User{
			ID:        idx.NewAt(now).String(),
			Email:     invite.Email,
			Name:      in.Name,
			Status:    domain.UserStatusActive,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := tx.Users().CreateUser(ctx, user); err != nil {
			if errors.Is(err, store.ErrAlreadyExists) {
				return ErrUserExists
			}
			log.Error("failed to create user", slog.Any("error", err))
			return err
		}

		// 5. Resolve the default role.
		role, err := tx.Roles().GetRoleByCode(ctx, roleCode)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return &DefaultRoleMissingError{Code: roleCode}
			}
			log.Error("failed to fetch default role", slog.Any("error", err))
			return err
		}

		// 6. Assign it.
		if err := tx.UserRoles().AssignRole(ctx, user.ID, role.ID); err != nil {
			log.Error("failed to assign default role", slog.Any("error", err))
			return err
		}
		user.RoleIDs = []string{role.ID}

		// 7. Consume the invite; zero rows means another redemption won.
		if err := tx.Invites().MarkInviteUsed(ctx, invite.ID, user.ID, now); err != nil {
			if errors.Is(err, store.ErrStale) {
				return ErrInviteUsed
			}
			log.Error("failed to mark invite used", slog.Any("error", err))
			return err
		}

		// 8. Audit.
		entry, err = s.Audit.Record(ctx, tx, domain.AuditLog{
			Action:      domain.AuditUserInviteAccepted,
			TargetType:  domain.AuditTargetUser,
			TargetID:    user.ID,
			TargetLabel: user.Email,
			CreatedAt:   now,
			Meta: map[string]any{
				"invite_id": invite.ID,
				"role":      role.Code,
			},
		})
		return err
	})
	if err != nil {
		if Kind(err) != nil {
			log.Warn("invite redemption rejected",
				slog.String("invite_id", invite.ID),
				slog.String("reason", Describe(err)),
			)
		}
		return domain.User{}, err
	}
	s.Audit.Publish(entry)

	log.Info("user registered via invite",
		slog.String("user_id", user.ID),
		slog.String("email", user.Email),
		slog.String("invite_id", invite.ID),
		slog.String("role", roleCode),
	)

	return user, nil
}

// List returns invites, optionally narrowed to one derived status.
func (s *InviteService) List(ctx context.Context, status string, limit int) ([]InviteListing, error) {
	log := slogx.FromContext(ctx)

	var st domain.InviteStatus
	if status = strings.TrimSpace(status); status != "" {
		parsed, ok := domain.ParseInviteStatus(status)
		if !ok {
			return nil, fmt.Errorf("%w: status must be one of: pending, used, expired, superseded", ErrValidation)
		}
		st = parsed
	}

	switch {
	case limit <= 0:
		limit = DefaultInviteListLimit
	case limit > MaxInviteListLimit:
		limit = MaxInviteListLimit
	}

	now := s.now()
	invites, err := s.Store.Invites().ListInvites(ctx, store.InviteFilter{Status: st, Now: now, Limit: limit})
	if err != nil {
		log.Error("failed to list invites", slog.Any("error", err))
		return nil, err
	}

	out := make([]InviteListing, len(invites))
	for i, inv := range invites {
		out[i] = InviteListing{Invite: inv, Status: inv.StatusAt(now)}
	}
	return out, nil
}

// Revoke supersedes a pending invite so its token can no longer be redeemed.
func (s *InviteService) Revoke(ctx context.Context, inviteID string) error {
	log := slogx.FromContext(ctx)

	var entry domain.AuditLog
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		invite, err := tx.Invites().GetInviteByID(ctx, inviteID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fmt.Errorf("%w: invite not found: %s", ErrNotFound, inviteID)
			}
			return err
		}

		now := s.now()
		if err := checkRedeemable(invite, now); err != nil {
			return err
		}

		if err := tx.Invites().SupersedeInvite(ctx, invite.ID, now); err != nil {
			if errors.Is(err, store.ErrStale) {
				return ErrInviteUsed
			}
			return err
		}

		entry, err = s.Audit.Record(ctx, tx, domain.AuditLog{
			Action:      domain.AuditUserInviteRevoked,
			TargetType:  domain.AuditTargetInvite,
			TargetID:    invite.ID,
			TargetLabel: invite.Email,
			CreatedAt:   now,
		})
		return err
	})
	if err != nil {
		if Kind(err) == nil {
			log.Error("failed to revoke invite", slog.String("invite_id", inviteID), slog.Any("error", err))
		}
		return err
	}
	s.Audit.Publish(entry)

	log.Info("invite revoked", slog.String("invite_id", inviteID))
	return nil
}
