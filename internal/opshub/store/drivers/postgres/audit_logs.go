package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	"github.com/aussiebroadwan/opshub/internal/opshub/domain"
)

type auditLogsRepo struct {
	db dbtx
}

func (r *auditLogsRepo) CreateAuditLog(ctx context.Context, l domain.AuditLog) error {
	meta := l.Meta
	if meta == nil {
		meta = map[string]any{}
	}
	raw, err := json.Marshal(meta)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO audit_logs (id, action, actor_id, target_type, target_id, target_label, meta, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7::jsonb, $8)`,
		l.ID, string(l.Action), nullString(l.ActorID), string(l.TargetType), l.TargetID,
		l.TargetLabel, string(raw), nowOr(l.CreatedAt),
	)
	return mapWriteErr(err)
}

func (r *auditLogsRepo) ListAuditLogs(ctx context.Context, f domain.AuditFilter) ([]domain.AuditLog, error) {
	var (
		where []string
		a     args
	)
	if f.Action != "" {
		where = append(where, `action = `+a.add(string(f.Action)))
	}
	if f.TargetType != "" {
		where = append(where, `target_type = `+a.add(string(f.TargetType)))
	}
	if q := strings.TrimSpace(f.Query); q != "" {
		where = append(where, `LOWER(target_label) LIKE `+a.add(likePattern(q))+` ESCAPE '\'`)
	}
	if !f.Since.IsZero() {
		where = append(where, `created_at >= `+a.add(f.Since))
	}

	query := `SELECT id, action, actor_id, target_type, target_id, target_label, meta, created_at FROM audit_logs`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, ` AND `)
	}
	query += ` ORDER BY created_at DESC, id DESC`
	if f.Limit > 0 {
		query += ` LIMIT ` + a.add(f.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, a...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	logs := []domain.AuditLog{}
	for rows.Next() {
		var (
			l                  domain.AuditLog
			action, targetType string
			actorID            sql.NullString
			meta               []byte
		)
		if err := rows.Scan(&l.ID, &action, &actorID, &targetType, &l.TargetID, &l.TargetLabel, &meta, &l.CreatedAt); err != nil {
			return nil, err
		}
		l.Action = domain.AuditAction(action)
		l.TargetType = domain.AuditTargetType(targetType)
		l.ActorID = actorID.String
		l.CreatedAt = l.CreatedAt.UTC()
		if err := json.Unmarshal(meta, &l.Meta); err != nil {
			return nil, err
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}

func (r *auditLogsRepo) DeleteAuditLogsBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM audit_logs WHERE created_at < $1`, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
