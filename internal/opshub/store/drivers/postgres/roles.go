package postgres

import (
	"context"
	"database/sql"

	"github.com/aussiebroadwan/opshub/internal/opshub/domain"
	"github.com/aussiebroadwan/opshub/internal/opshub/store"
)

type rolesRepo struct {
	db dbtx
}

const roleColumns = `r.id, r.code, r.name, r.description, r.type, r.created_at, r.updated_at`

func scanRole(row scanner, extra ...any) (domain.Role, error) {
	var (
		role        domain.Role
		description sql.NullString
		roleType    string
	)
	dest := append([]any{&role.ID, &role.Code, &role.Name, &description, &roleType, &role.CreatedAt, &role.UpdatedAt}, extra...)
	if err := row.Scan(dest...); err != nil {
		return domain.Role{}, err
	}
	role.Description = nullStringPtr(description)
	role.Type = domain.RoleType(roleType)
	role.CreatedAt = role.CreatedAt.UTC()
	role.UpdatedAt = role.UpdatedAt.UTC()
	return role, nil
}

func (r *rolesRepo) GetRoleByID(ctx context.Context, id string) (domain.Role, error) {
	role, err := scanRole(r.db.QueryRowContext(ctx,
		`SELECT `+roleColumns+` FROM roles r WHERE r.id = $1`, id))
	if err != nil {
		return domain.Role{}, mapNotFound(err)
	}
	return role, nil
}

func (r *rolesRepo) GetRoleByCode(ctx context.Context, code string) (domain.Role, error) {
	role, err := scanRole(r.db.QueryRowContext(ctx,
		`SELECT `+roleColumns+` FROM roles r WHERE r.code = $1`, code))
	if err != nil {
		return domain.Role{}, mapNotFound(err)
	}
	return role, nil
}

func (r *rolesRepo) ListAll(ctx context.Context) ([]domain.Role, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+roleColumns+`, COUNT(ur.user_id)
		   FROM roles r
		   LEFT JOIN user_roles ur ON ur.role_id = r.id
		  GROUP BY r.id
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
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		role.ID, role.Code, role.Name, optionalString(role.Description), string(role.Type),
		createdAt, updatedAt,
	)
	return mapWriteErr(err)
}

func (r *rolesRepo) UpdateRole(ctx context.Context, role domain.Role) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE roles SET name = $1, description = $2, type = $3, updated_at = NOW() WHERE id = $4`,
		role.Name, optionalString(role.Description), string(role.Type), role.ID,
	)
	if err != nil {
		return err
	}
	return expectOneRow(res, store.ErrNotFound)
}

func (r *rolesRepo) DeleteRole(ctx context.Context, roleID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM roles WHERE id = $1`, roleID)
	if err != nil {
		if pgCode(err) == codeForeignKeyViolation {
			return store.ErrInUse
		}
		return err
	}
	return expectOneRow(res, store.ErrNotFound)
}
