package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/aussiebroadwan/opshub/internal/opshub/domain"
	"github.com/aussiebroadwan/opshub/internal/opshub/store"
)

type invitesRepo struct {
	db dbtx
}

const inviteColumns = `id, token_hash, email, issued_at, expires_at, used_at, used_by, superseded_at`

func scanInvite(row scanner) (domain.Invite, error) {
	var (
		inv                          domain.Invite
		issuedAt, expiresAt          string
		usedAt, usedBy, supersededAt sql.NullString
	)
	err := row.Scan(&inv.ID, &inv.TokenHash, &inv.Email, &issuedAt, &expiresAt, &usedAt, &usedBy, &supersededAt)
	if err != nil {
		return domain.Invite{}, err
	}

	if inv.IssuedAt, err = parseTime(issuedAt); err != nil {
		return domain.Invite{}, err
	}
	if inv.ExpiresAt, err = parseTime(expiresAt); err != nil {
		return domain.Invite{}, err
	}
	if inv.UsedAt, err = parseNullTime(usedAt); err != nil {
		return domain.Invite{}, err
	}
	if inv.SupersededAt, err = parseNullTime(supersededAt); err != nil {
		return domain.Invite{}, err
	}
	inv.UsedBy = mapNullString(usedBy)
	return inv, nil
}

func (r *invitesRepo) CreateInvite(ctx context.Context, inv domain.Invite) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO invites (id, token_hash, email, issued_at, expires_at, used_at, used_by, superseded_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		inv.ID, inv.TokenHash, inv.Email, formatTime(inv.IssuedAt), formatTime(inv.ExpiresAt),
		formatOptionalTime(inv.UsedAt), mapStringNull(inv.UsedBy), formatOptionalTime(inv.SupersededAt),
	)
	return mapWriteErr(err)
}

func (r *invitesRepo) GetInviteByTokenHash(ctx context.Context, hash string) (domain.Invite, error) {
	inv, err := scanInvite(r.db.QueryRowContext(ctx,
		`SELECT `+inviteColumns+` FROM invites WHERE token_hash = ?`, hash))
	if err != nil {
		return domain.Invite{}, mapNotFound(err)
	}
	return inv, nil
}

// LockInviteByTokenHash needs no row lock here: transactions begin
// IMMEDIATE, so the write lock is already held.
func (r *invitesRepo) LockInviteByTokenHash(ctx context.Context, hash string) (domain.Invite, error) {
	return r.GetInviteByTokenHash(ctx, hash)
}

func (r *invitesRepo) GetInviteByID(ctx context.Context, id string) (domain.Invite, error) {
	inv, err := scanInvite(r.db.QueryRowContext(ctx,
		`SELECT `+inviteColumns+` FROM invites WHERE id = ?`, id))
	if err != nil {
		return domain.Invite{}, mapNotFound(err)
	}
	return inv, nil
}

func (r *invitesRepo) ListInvites(ctx context.Context, f store.InviteFilter) ([]domain.Invite, error) {
	var (
		where []string
		args  []any
	)

	now := formatTime(nowOr(f.Now))
	switch f.Status {
	case domain.InviteStatusPending:
		where = append(where, `used_at IS NULL AND superseded_at IS NULL AND expires_at >= ?`)
		args = append(args, now)
	case domain.InviteStatusExpired:
		where = append(where, `used_at IS NULL AND superseded_at IS NULL AND expires_at < ?`)
		args = append(args, now)
	case domain.InviteStatusUsed:
		where = append(where, `used_at IS NOT NULL`)
	case domain.InviteStatusSuperseded:
		where = append(where, `used_at IS NULL AND superseded_at IS NOT NULL`)
	}
	if f.Email != "" {
		where = append(where, `email = ?`)
		args = append(args, f.Email)
	}

	query := `SELECT ` + inviteColumns + ` FROM invites`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, ` AND `)
	}
	query += ` ORDER BY issued_at DESC, id DESC`
	if f.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, f.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	invites := []domain.Invite{}
	for rows.Next() {
		inv, err := scanInvite(rows)
		if err != nil {
			return nil, err
		}
		invites = append(invites, inv)
	}
	return invites, rows.Err()
}

func (r *invitesRepo) MarkInviteUsed(ctx context.Context, inviteID, userID string, at time.Time) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE invites SET used_at = ?, used_by = ?
		  WHERE id = ? AND used_at IS NULL AND superseded_at IS NULL`,
		formatTime(at), userID, inviteID,
	)
	if err != nil {
		return mapWriteErr(err)
	}
	return expectOneRow(res, store.ErrStale)
}

func (r *invitesRepo) SupersedeInvite(ctx context.Context, inviteID string, at time.Time) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE invites SET superseded_at = ?
		  WHERE id = ? AND used_at IS NULL AND superseded_at IS NULL AND expires_at >= ?`,
		formatTime(at), inviteID, formatTime(at),
	)
	if err != nil {
		return err
	}
	return expectOneRow(res, store.ErrStale)
}

func (r *invitesRepo) SupersedeLiveInvites(ctx context.Context, email string, at time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE invites SET superseded_at = ?
		  WHERE email = ? AND used_at IS NULL AND superseded_at IS NULL AND expires_at >= ?`,
		formatTime(at), email, formatTime(at),
	)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
