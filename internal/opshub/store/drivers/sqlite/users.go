package sqlite

import (
	"context"
	"time"

	"github.com/aussiebroadwan/opshub/internal/opshub/domain"
	"github.com/aussiebroadwan/opshub/internal/opshub/store"
)

type usersRepo struct {
	db dbtx
}

const userColumns = `id, email, name, status, created_at, updated_at`

func scanUser(row scanner) (domain.User, error) {
	var (
		u                    domain.User
		status               string
		createdAt, updatedAt string
	)
	if err := row.Scan(&u.ID, &u.Email, &u.Name, &status, &createdAt, &updatedAt); err != nil {
		return domain.User{}, err
	}
	u.Status = domain.UserStatus(status)

	var err error
	if u.CreatedAt, err = parseTime(createdAt); err != nil {
		return domain.User{}, err
	}
	if u.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return domain.User{}, err
	}
	return u, nil
}

func (r *usersRepo) getOne(ctx context.Context, query string, arg string) (domain.User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx, query, arg))
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}

	roleIDs, err := listRoleIDs(ctx, r.db, u.ID)
	if err != nil {
		return domain.User{}, err
	}
	u.RoleIDs = roleIDs
	return u, nil
}

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
}

func (r *usersRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE email = ?`, email)
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	createdAt := nowOr(u.CreatedAt)
	updatedAt := u.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = createdAt
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (id, email, name, status, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		u.ID, u.Email, u.Name, string(u.Status), formatTime(createdAt), formatTime(updatedAt),
	)
	return mapWriteErr(err)
}

func (r *usersRepo) ListUsers(ctx context.Context) ([]domain.User, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+userColumns+` FROM users ORDER BY updated_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}

	var users []domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			_ = rows.Close()
			return nil, err
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return nil, err
	}
	// Release the connection before the second query.
	if err := rows.Close(); err != nil {
		return nil, err
	}

	byUser, err := allRoleIDs(ctx, r.db)
	if err != nil {
		return nil, err
	}
	for i := range users {
		users[i].RoleIDs = byUser[users[i].ID]
		if users[i].RoleIDs == nil {
			users[i].RoleIDs = []string{}
		}
	}
	return users, nil
}

func (r *usersRepo) UpdateStatus(ctx context.Context, userID string, status domain.UserStatus) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET status = ?, updated_at = ? WHERE id = ?`,
		string(status), formatTime(time.Now()), userID,
	)
	if err != nil {
		return err
	}
	return expectOneRow(res, store.ErrNotFound)
}

func (r *usersRepo) Touch(ctx context.Context, userID string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET updated_at = ? WHERE id = ?`,
		formatTime(time.Now()), userID,
	)
	if err != nil {
		return err
	}
	return expectOneRow(res, store.ErrNotFound)
}

type userRolesRepo struct {
	db dbtx
}

func (r *userRolesRepo) AssignRole(ctx context.Context, userID, roleID string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO user_roles (user_id, role_id, created_at) VALUES (?, ?, ?)`,
		userID, roleID, formatTime(time.Now()),
	)
	return mapWriteErr(err)
}

func (r *userRolesRepo) ReplaceRoles(ctx context.Context, userID string, roleIDs []string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM user_roles WHERE user_id = ?`, userID); err != nil {
		return err
	}

	now := time.Now()
	seen := make(map[string]struct{}, len(roleIDs))
	for i, roleID := range roleIDs {
		if _, ok := seen[roleID]; ok {
			continue
		}
		seen[roleID] = struct{}{}

		// Offset by position so assignment order survives the replace.
		at := now.Add(time.Duration(i) * time.Microsecond)
		_, err := r.db.ExecContext(ctx,
			`INSERT INTO user_roles (user_id, role_id, created_at) VALUES (?, ?, ?)`,
			userID, roleID, formatTime(at),
		)
		if err != nil {
			return mapWriteErr(err)
		}
	}
	return nil
}

func (r *userRolesRepo) ListRoleIDs(ctx context.Context, userID string) ([]string, error) {
	return listRoleIDs(ctx, r.db, userID)
}

func (r *userRolesRepo) CountUsersWithRole(ctx context.Context, roleID string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM user_roles WHERE role_id = ?`, roleID,
	).Scan(&n)
	return n, err
}

func listRoleIDs(ctx context.Context, db dbtx, userID string) ([]string, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT role_id FROM user_roles WHERE user_id = ? ORDER BY created_at, role_id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func allRoleIDs(ctx context.Context, db dbtx) (map[string][]string, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT user_id, role_id FROM user_roles ORDER BY created_at, role_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string][]string)
	for rows.Next() {
		var userID, roleID string
		if err := rows.Scan(&userID, &roleID); err != nil {
			return nil, err
		}
		out[userID] = append(out[userID], roleID)
	}
	return out, rows.Err()
}
