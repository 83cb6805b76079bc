package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/opshub/internal/opshub/domain"
	"github.com/aussiebroadwan/opshub/internal/opshub/store"
	"github.com/aussiebroadwan/opshub/pkg/idx"
	"github.com/aussiebroadwan/opshub/pkg/slogx"
)

// SeedService installs the rows every deployment needs and checks them at
// startup.
type SeedService struct {
	Store           store.Store
	Audit           *AuditService
	DefaultRoleCode string
	Now             func() time.Time
}

type SeedResult struct {
	RolesCreated int
	AdminCreated bool
	AdminUserID  string
}

func (s *SeedService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// Seed upserts the roles in data and the administrator account, granting it
// the ADMIN role. It is idempotent; SEED_INIT is only recorded when
// something was created.
func (s *SeedService) Seed(ctx context.Context, data domain.SeedData) (SeedResult, error) {
	log := slogx.FromContext(ctx)

	var (
		res   SeedResult
		entry domain.AuditLog
	)
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		now := s.now()
		codes := make([]string, 0, len(data.Roles))
		roleIDs := make(map[string]string, len(data.Roles))

		// 1. Roles.
		for _, def := range data.Roles {
			codes = append(codes, def.Code)

			role, err := tx.Roles().GetRoleByCode(ctx, def.Code)
			switch {
			case errors.Is(err, store.ErrNotFound):
				role = domain.Role{
					ID:        idx.NewAt(now).String(),
					Code:      def.Code,
					Name:      def.Name,
					Type:      def.Type,
					CreatedAt: now,
					UpdatedAt: now,
				}
				if err := tx.Roles().CreateRole(ctx, role); err != nil {
					return err
				}
				res.RolesCreated++
			case err != nil:
				return err
			case role.Name != def.Name:
				role.Name = def.Name
				if err := tx.Roles().UpdateRole(ctx, role); err != nil {
					return err
				}
			}
			roleIDs[def.Code] = role.ID
		}

		if data.AdminEmail == "" {
			return nil
		}

		// 2. Administrator.
		email := normalizeEmail(data.AdminEmail)
		admin, err := tx.Users().GetUserByEmail(ctx, email)
		switch {
		case errors.Is(err, store.ErrNotFound):
			admin = domain.User{
				ID:        idx.NewAt(now).String(),
				Email:     email,
				Name:      data.AdminName,
				Status:    domain.UserStatusActive,
				CreatedAt: now,
				UpdatedAt: now,
			}
			if err := tx.Users().CreateUser(ctx, admin); err != nil {
				return err
			}
			res.AdminCreated = true
		case err != nil:
			return err
		case admin.Status != domain.UserStatusActive:
			if err := tx.Users().UpdateStatus(ctx, admin.ID, domain.UserStatusActive); err != nil {
				return err
			}
		}
		res.AdminUserID = admin.ID

		// 3. ADMIN grant.
		if roleID, ok := roleIDs[domain.AdminRoleCode]; ok {
			err := tx.UserRoles().AssignRole(ctx, admin.ID, roleID)
			if err != nil && !errors.Is(err, store.ErrAlreadyExists) {
				return err
			}
		}

		// 4. First run only.
		if res.RolesCreated == 0 && !res.AdminCreated {
			return nil
		}
		entry, err = s.Audit.Record(ctx, tx, domain.AuditLog{
			Action:      domain.AuditSeedInit,
			ActorID:     admin.ID,
			TargetType:  domain.AuditTargetSystem,
			TargetID:    "system",
			TargetLabel: "System",
			CreatedAt:   now,
			Meta: map[string]any{
				"roles":       codes,
				"admin_email": email,
			},
		})
		return err
	})
	if err != nil {
		log.Error("seed failed", slog.Any("error", err))
		return SeedResult{}, err
	}
	s.Audit.Publish(entry)

	log.Info("seed completed",
		slog.Int("roles_created", res.RolesCreated),
		slog.Bool("admin_created", res.AdminCreated),
	)
	return res, nil
}

// CheckDefaultRole fails with *DefaultRoleMissingError when the role that
// redemption grants has not been seeded.
func (s *SeedService) CheckDefaultRole(ctx context.Context) error {
	code := s.DefaultRoleCode
	if code == "" {
		code = domain.DefaultRoleCode
	}

	_, err := s.Store.Roles().GetRoleByCode(ctx, code)
	if errors.Is(err, store.ErrNotFound) {
		return &DefaultRoleMissingError{Code: code}
	}
	return err
}
