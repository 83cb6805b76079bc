package postgres

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
		inv                  domain.Invite
		usedAt, supersededAt sql.NullTime
		usedBy               sql.NullString
	)
	err := row.Scan(&inv.ID, &inv.TokenHash, &inv.Email, &inv.IssuedAt, &inv.ExpiresAt, &usedAt, &usedBy, &supersededAt)
	if err != nil {
		return domain.Invite{}, err
	}
	inv.IssuedAt = inv.IssuedAt.UTC()
	inv.ExpiresAt = inv.ExpiresAt.UTC()
	inv.UsedAt = nullTimePtr(usedAt)
	inv.SupersededAt = nullTimePtr(supersededAt)
	inv.UsedBy = usedBy.String
	return inv, nil
}

func (r *invitesRepo) CreateInvite(ctx context.Context, inv domain.Invite) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO invites (id, token_hash, email, issued_at, expires_at, used_at, used_by, superseded_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		inv.ID, inv.TokenHash, inv.Email, inv.IssuedAt, inv.ExpiresAt,
		optionalTime(inv.UsedAt), nullString(inv.UsedBy), optionalTime(inv.SupersededAt),
	)
	return mapWriteErr(err)
}

func (r *invitesRepo) GetInviteByTokenHash(ctx context.Context, hash string) (domain.Invite, error) {
	inv, err := scanInvite(r.db.QueryRowContext(ctx,
		`SELECT `+inviteColumns+` FROM invites WHERE token_hash = $1`, hash))
	if err != nil {
		return domain.Invite{}, mapNotFound(err)
	}
	return inv, nil
}

// LockInviteByTokenHash holds the row lock until the surrounding transaction
// ends, so concurrent redemptions of one token queue behind each other.
func (r *invitesRepo) LockInviteByTokenHash(ctx context.Context, hash string) (domain.Invite, error) {
	inv, err := scanInvite(r.db.QueryRowContext(ctx,
		`SELECT `+inviteColumns+` FROM invites WHERE token_hash = $1 FOR UPDATE`, hash))
	if err != nil {
		return domain.Invite{}, mapNotFound(err)
	}
	return inv, nil
}

func (r *invitesRepo) GetInviteByID(ctx context.Context, id string) (domain.Invite, error) {
	inv, err := scanInvite(r.db.QueryRowContext(ctx,
		`SELECT `+inviteColumns+` FROM invites WHERE id = $1`, id))
	if err != nil {
		return domain.Invite{}, mapNotFound(err)
	}
	return inv, nil
}

func (r *invitesRepo) ListInvites(ctx context.Context, f store.InviteFilter) ([]domain.Invite, error) {
	var (
		where []string
		a     args
	)

	now := nowOr(f.Now)
	switch f.Status {
	case domain.InviteStatusPending:
		where = append(where, `used_at IS NULL AND superseded_at IS NULL AND expires_at >= `+a.add(now))
	case domain.InviteStatusExpired:
		where = append(where, `used_at IS NULL AND superseded_at IS NULL AND expires_at < `+a.add(now))
	case domain.InviteStatusUsed:
		where = append(where, `used_at IS NOT NULL`)
	case domain.InviteStatusSuperseded:
		where = append(where, `used_at IS NULL AND superseded_at IS NOT NULL`)
	}
	if f.Email != "" {
		where = append(where, `email = `+a.add(f.Email))
	}

	query := `SELECT ` + inviteColumns + ` FROM invites`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, ` AND `)
	}
	query += ` ORDER BY issued_at DESC, id DESC`
	if f.Limit > 0 {
		query += ` LIMIT ` + a.add(f.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, a...)
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
		`UPDATE invites SET used_at = $1, used_by = $2
		  WHERE id = $3 AND used_at IS NULL AND superseded_at IS NULL`,
		at, userID, inviteID,
	)
	if err != nil {
		return mapWriteErr(err)
	}
	return expectOneRow(res, store.ErrStale)
}

func (r *invitesRepo) SupersedeInvite(ctx context.Context, inviteID string, at time.Time) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE invites SET superseded_at = $1
		  WHERE id = $2 AND used_at IS NULL AND superseded_at IS NULL AND expires_at >= $1`,
		at, inviteID,
	)
	if err != nil {
		return err
	}
	return expectOneRow(res, store.ErrStale)
}

func (r *invitesRepo) SupersedeLiveInvites(ctx context.Context, email string, at time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE invites SET superseded_at = $1
		  WHERE email = $2 AND used_at IS NULL AND superseded_at IS NULL AND expires_at >= $1`,
		at, email,
	)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
