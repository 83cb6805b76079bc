package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/aussiebroadwan/opshub/internal/opshub/domain"
	"github.com/aussiebroadwan/opshub/internal/opshub/store"
)

type rolesRepo struct {
	db dbtx
}

const roleColumns = `r.id, r.code, r.name, r.description, r.type, r.created_at, r.updated_at`

func scanRole(row scanner, extra ...any) (domain.Role, error) {
	var (
		role                 domain.Role
		description          sql.NullString
		roleType             string
		createdAt, updatedAt string
	)
	dest := append([]any{&role.ID, &role.Code, &role.Name, &description, &roleType, &createdAt, &updatedAt}, extra...)
	if err := row.Scan(dest...); err != nil {
		return domain.Role{}, err
	}
	role.Description = mapNullStringPtr(description)
	role.Type = domain.RoleType(roleType)

	var err error
	if role.CreatedAt, err = parseTime(createdAt); err != nil {
		return domain.Role{}, err
	}
	if role.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return domain.Role{}, err
	}
	return role, nil
}

func (r *rolesRepo) GetRoleByID(ctx context.Context, id string) (domain.Role, error) {
	role, err := scanRole(r.db.QueryRowContext(ctx,
		`SELECT `+roleColumns+` FROM roles r WHERE r.id = ?`, id))
	if err != nil {
		return domain.Role{}, mapNotFound(err)
	}
	return role, nil
}

func (r *rolesRepo) GetRoleByCode(ctx context.Context, code string) (domain.Role, error) {
	role, err := scanRole(r.db.QueryRowContext(ctx,
		`SELECT `+roleColumns+` FROM roles r WHERE r.code = ?`, code))
	if err != nil {
		return domain.Role{}, mapNotFound(err)
	}
	return role, nil
}

func (r *rolesRepo) ListAll(ctx context.Context) ([]domain.Role, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+roleColumns+`,
		        (SELECT COUNT(*) FROM user_roles ur WHERE ur.role_id = r.id)
		   FROM roles r
		  ORDER BY r.code ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	roles := []domain.Role{}
	for rows.Next() {
		var count int
		role, err := scanRole(rows, &count)
		if err != nil {
			return nil, err
		}
		role.UserCount = count
		roles = append(roles, role)
	}
	return roles, rows.Err()
}

func (r *rolesRepo) CreateRole(ctx context.Context, role domain.Role) error {
	createdAt := nowOr(role.CreatedAt)
	updatedAt := role.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = createdAt
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO roles (id, code, name, description, type, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		role.ID, role.Code, role.Name, mapOptionalString(role.Description), string(role.Type),
		formatTime(createdAt), formatTime(updatedAt),
	)
	return mapWriteErr(err)
}

func (r *rolesRepo) UpdateRole(ctx context.Context, role domain.Role) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE roles SET name = ?, description = ?, type = ?, updated_at = ? WHERE id = ?`,
		role.Name, mapOptionalString(role.Description), string(role.Type), formatTime(time.Now()), role.ID,
	)
	if err != nil {
		return err
	}
	return expectOneRow(res, store.ErrNotFound)
}

func (r *rolesRepo) DeleteRole(ctx context.Context, roleID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM roles WHERE id = ?`, roleID)
	if err != nil {
		if constraintCode(err) != 0 {
			return store.ErrInUse
		}
		return err
	}
	return expectOneRow(res, store.ErrNotFound)
}
