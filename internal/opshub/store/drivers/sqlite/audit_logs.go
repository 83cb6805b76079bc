package sqlite

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
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		l.ID, string(l.Action), mapStringNull(l.ActorID), string(l.TargetType), l.TargetID,
		l.TargetLabel, string(raw), formatTime(nowOr(l.CreatedAt)),
	)
	return mapWriteErr(err)
}

func (r *auditLogsRepo) ListAuditLogs(ctx context.Context, f domain.AuditFilter) ([]domain.AuditLog, error) {
	var (
		where []string
		args  []any
	)
	if f.Action != "" {
		where = append(where, `action = ?`)
		args = append(args, string(f.Action))
	}
	if f.TargetType != "" {
		where = append(where, `target_type = ?`)
		args = append(args, string(f.TargetType))
	}
	if q := strings.TrimSpace(f.Query); q != "" {
		where = append(where, `LOWER(target_label) LIKE ? ESCAPE '\'`)
		args = append(args, likePattern(q))
	}
	if !f.Since.IsZero() {
		where = append(where, `created_at >= ?`)
		args = append(args, formatTime(f.Since))
	}

	query := `SELECT id, action, actor_id, target_type, target_id, target_label, meta, created_at FROM audit_logs`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, ` AND `)
	}
	query += ` ORDER BY created_at DESC, id DESC`
	if f.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, f.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	logs := []domain.AuditLog{}
	for rows.Next() {
		var (
			l                        domain.AuditLog
			action, targetType, meta string
			createdAt                string
			actorID                  sql.NullString
		)
		if err := rows.Scan(&l.ID, &action, &actorID, &targetType, &l.TargetID, &l.TargetLabel, &meta, &createdAt); err != nil {
			return nil, err
		}
		l.Action = domain.AuditAction(action)
		l.TargetType = domain.AuditTargetType(targetType)
		l.ActorID = mapNullString(actorID)
		if err := json.Unmarshal([]byte(meta), &l.Meta); err != nil {
			return nil, err
		}
		if l.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, err
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}

func (r *auditLogsRepo) DeleteAuditLogsBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM audit_logs WHERE created_at < ?`, formatTime(cutoff))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
