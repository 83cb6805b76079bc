package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/aussiebroadwan/opshub/internal/opshub/domain"
	"github.com/aussiebroadwan/opshub/internal/opshub/store"
	"github.com/aussiebroadwan/opshub/pkg/slogx"
)

type UserService struct {
	Store store.Store
	Audit *AuditService
}

// List returns every user with role ids, most recently updated first.
func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	users, err := s.Store.Users().ListUsers(ctx)
	if err != nil {
		slogx.FromContext(ctx).Error("failed to list users", slog.Any("error", err))
		return nil, err
	}
	return users, nil
}

func (s *UserService) Get(ctx context.Context, userID string) (domain.User, error) {
	u, err := s.Store.Users().GetUserByID(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return domain.User{}, ErrUserNotFound
	}
	return u, err
}

// UpdateStatus moves a user to status and records the transition.
func (s *UserService) UpdateStatus(ctx context.Context, userID, status string) (domain.User, error) {
	log := slogx.FromContext(ctx)

	next := domain.UserStatus(strings.ToUpper(strings.TrimSpace(status)))
	if !next.Valid() {
		return domain.User{}, fmt.Errorf("%w: status must be one of: ACTIVE, INACTIVE, PENDING", ErrValidation)
	}

	var (
		updated domain.User
		entry   domain.AuditLog
	)
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		current, err := tx.Users().GetUserByID(ctx, userID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrUserNotFound
			}
			return err
		}

		if err := tx.Users().UpdateStatus(ctx, userID, next); err != nil {
			return err
		}

		entry, err = s.Audit.Record(ctx, tx, domain.AuditLog{
			Action:      domain.AuditUserStatusUpdated,
			TargetType:  domain.AuditTargetUser,
			TargetID:    userID,
			TargetLabel: current.Email,
			Meta:        map[string]any{"from": string(current.Status), "to": string(next)},
		})
		if err != nil {
			return err
		}

		updated, err = tx.Users().GetUserByID(ctx, userID)
		return err
	})
	if err != nil {
		if Kind(err) == nil {
			log.Error("failed to update user status", slog.String("user_id", userID), slog.Any("error", err))
		}
		return domain.User{}, err
	}
	s.Audit.Publish(entry)

	log.Info("user status updated",
		slog.String("user_id", userID),
		slog.String("status", string(next)),
	)
	return updated, nil
}

// SetRoles replaces the user's role assignments with roleIDs.
func (s *UserService) SetRoles(ctx context.Context, userID string, roleIDs []string) (domain.User, error) {
	log := slogx.FromContext(ctx)

	ids := make([]string, 0, len(roleIDs))
	for _, id := range roleIDs {
		id = strings.TrimSpace(id)
		if id == "" {
			return domain.User{}, fmt.Errorf("%w: role_ids must not contain empty values", ErrValidation)
		}
		if !slices.Contains(ids, id) {
			ids = append(ids, id)
		}
	}

	var (
		updated domain.User
		entry   domain.AuditLog
	)
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		current, err := tx.Users().GetUserByID(ctx, userID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrUserNotFound
			}
			return err
		}

		codes := make([]string, 0, len(ids))
		for _, id := range ids {
			role, err := tx.Roles().GetRoleByID(ctx, id)
			if err != nil {
				if errors.Is(err, store.ErrNotFound) {
					return fmt.Errorf("%w: role not found: %s", ErrNotFound, id)
				}
				return err
			}
			codes = append(codes, role.Code)
		}

		if err := tx.UserRoles().ReplaceRoles(ctx, userID, ids); err != nil {
			return err
		}
		if err := tx.Users().Touch(ctx, userID); err != nil {
			return err
		}

		entry, err = s.Audit.Record(ctx, tx, domain.AuditLog{
			Action:      domain.AuditUserRolesUpdated,
			TargetType:  domain.AuditTargetUser,
			TargetID:    userID,
			TargetLabel: current.Email,
			Meta: map[string]any{
				"previous_role_ids": current.RoleIDs,
				"role_ids":          ids,
				"roles":             codes,
			},
		})
		if err != nil {
			return err
		}

		updated, err = tx.Users().GetUserByID(ctx, userID)
		return err
	})
	if err != nil {
		if Kind(err) == nil {
			log.Error("failed to update user roles", slog.String("user_id", userID), slog.Any("error", err))
		}
		return domain.User{}, err
	}
	s.Audit.Publish(entry)

	log.Info("user roles updated",
		slog.String("user_id", userID),
		slog.Int("role_count", len(ids)),
	)
	return updated, nil
}
