package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/aussiebroadwan/opshub/internal/opshub/domain"
	"github.com/aussiebroadwan/opshub/internal/opshub/store"
	"github.com/aussiebroadwan/opshub/pkg/idx"
	"github.com/aussiebroadwan/opshub/pkg/slogx"
)

type RolesService struct {
	Store           store.Store
	Audit           *AuditService
	DefaultRoleCode string
}

type CreateRoleInput struct {
	Code        string          `json:"code" validate:"required,max=50,role_code"`
	Name        string          `json:"name" validate:"required,max=100"`
	Description *string         `json:"description" validate:"omitempty,max=500"`
	Type        domain.RoleType `json:"type" validate:"required,oneof=system custom"`
}

func (s *RolesService) defaultRoleCode() string {
	if s.DefaultRoleCode != "" {
		return s.DefaultRoleCode
	}
	return domain.DefaultRoleCode
}

func trimOptional(p *string) *string {
	if p == nil {
		return nil
	}
	v := strings.TrimSpace(*p)
	if v == "" {
		return nil
	}
	return &v
}

// List returns all roles ordered by code with their user counts.
func (s *RolesService) List(ctx context.Context) ([]domain.Role, error) {
	roles, err := s.Store.Roles().ListAll(ctx)
	if err != nil {
		slogx.FromContext(ctx).Error("failed to list roles", slog.Any("error", err))
		return nil, err
	}
	return roles, nil
}

func (s *RolesService) Create(ctx context.Context, in CreateRoleInput) (domain.Role, error) {
	log := slogx.FromContext(ctx)

	in.Code = strings.TrimSpace(in.Code)
	in.Name = strings.TrimSpace(in.Name)
	in.Description = trimOptional(in.Description)
	if err := checkStruct(in); err != nil {
		log.Warn("role rejected", slog.String("code", in.Code), slog.String("reason", Describe(err)))
		return domain.Role{}, err
	}

	role := domain.Role{
		ID:          idx.New().String(),
		Code:        in.Code,
		Name:        in.Name,
		Description: in.Description,
		Type:        in.Type,
	}

	var entry domain.AuditLog
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Roles().CreateRole(ctx, role); err != nil {
			if errors.Is(err, store.ErrAlreadyExists) {
				return fmt.Errorf("%w: role code already exists: %s", ErrConflict, role.Code)
			}
			return err
		}

		created, err := tx.Roles().GetRoleByID(ctx, role.ID)
		if err != nil {
			return err
		}
		role = created

		entry, err = s.Audit.Record(ctx, tx, domain.AuditLog{
			Action:      domain.AuditRoleCreated,
			TargetType:  domain.AuditTargetRole,
			TargetID:    role.ID,
			TargetLabel: role.Code,
			Meta:        map[string]any{"name": role.Name, "type": string(role.Type)},
		})
		return err
	})
	if err != nil {
		if Kind(err) == nil {
			log.Error("failed to create role", slog.Any("error", err))
		}
		return domain.Role{}, err
	}
	s.Audit.Publish(entry)

	log.Info("role created", slog.String("role_id", role.ID), slog.String("code", role.Code))
	return role, nil
}

// Update applies the non-nil fields of patch. An empty description clears it.
func (s *RolesService) Update(ctx context.Context, roleID string, patch domain.RolePatch) (domain.Role, error) {
	log := slogx.FromContext(ctx)

	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if err := checkVar("name", name, "required,max=100"); err != nil {
			return domain.Role{}, err
		}
		patch.Name = &name
	}
	if patch.Description != nil {
		desc := strings.TrimSpace(*patch.Description)
		if err := checkVar("description", desc, "max=500"); err != nil {
			return domain.Role{}, err
		}
		patch.Description = &desc
	}
	if patch.Type != nil {
		if err := checkVar("type", string(*patch.Type), "oneof=system custom"); err != nil {
			return domain.Role{}, err
		}
	}

	var (
		role  domain.Role
		entry domain.AuditLog
	)
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		current, err := tx.Roles().GetRoleByID(ctx, roleID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fmt.Errorf("%w: role not found: %s", ErrNotFound, roleID)
			}
			return err
		}

		changed := map[string]any{}
		next := current
		if patch.Name != nil && *patch.Name != current.Name {
			next.Name = *patch.Name
			changed["name"] = next.Name
		}
		if patch.Description != nil {
			next.Description = trimOptional(patch.Description)
			changed["description"] = next.Description
		}
		if patch.Type != nil && *patch.Type != current.Type {
			next.Type = *patch.Type
			changed["type"] = string(next.Type)
		}

		if err := tx.Roles().UpdateRole(ctx, next); err != nil {
			return err
		}

		count, err := tx.UserRoles().CountUsersWithRole(ctx, roleID)
		if err != nil {
			return err
		}

		role, err = tx.Roles().GetRoleByID(ctx, roleID)
		if err != nil {
			return err
		}
		role.UserCount = count

		entry, err = s.Audit.Record(ctx, tx, domain.AuditLog{
			Action:      domain.AuditRoleUpdated,
			TargetType:  domain.AuditTargetRole,
			TargetID:    role.ID,
			TargetLabel: role.Code,
			Meta:        changed,
		})
		return err
	})
	if err != nil {
		if Kind(err) == nil {
			log.Error("failed to update role", slog.String("role_id", roleID), slog.Any("error", err))
		}
		return domain.Role{}, err
	}
	s.Audit.Publish(entry)

	log.Info("role updated", slog.String("role_id", role.ID), slog.String("code", role.Code))
	return role, nil
}

// Delete removes a role that no user holds. The default role is protected.
func (s *RolesService) Delete(ctx context.Context, roleID string) error {
	log := slogx.FromContext(ctx)

	var entry domain.AuditLog
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		role, err := tx.Roles().GetRoleByID(ctx, roleID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fmt.Errorf("%w: role not found: %s", ErrNotFound, roleID)
			}
			return err
		}

		if role.Code == s.defaultRoleCode() {
			return fmt.Errorf("%w: cannot delete default role %s", ErrValidation, role.Code)
		}

		count, err := tx.UserRoles().CountUsersWithRole(ctx, roleID)
		if err != nil {
			return err
		}
		if count > 0 {
			return fmt.Errorf("%w: cannot delete role, %d user(s) assigned", ErrValidation, count)
		}

		if err := tx.Roles().DeleteRole(ctx, roleID); err != nil {
			if errors.Is(err, store.ErrInUse) {
				return fmt.Errorf("%w: cannot delete role, user(s) assigned", ErrValidation)
			}
			return err
		}

		entry, err = s.Audit.Record(ctx, tx, domain.AuditLog{
			Action:      domain.AuditRoleDeleted,
			TargetType:  domain.AuditTargetRole,
			TargetID:    role.ID,
			TargetLabel: role.Code,
			Meta:        map[string]any{"name": role.Name},
		})
		return err
	})
	if err != nil {
		if Kind(err) == nil {
			log.Error("failed to delete role", slog.String("role_id", roleID), slog.Any("error", err))
		}
		return err
	}
	s.Audit.Publish(entry)

	log.Info("role deleted", slog.String("role_id", roleID))
	return nil
}
