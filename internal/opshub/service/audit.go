package service

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/aussiebroadwan/opshub/internal/opshub/audit"
	"github.com/aussiebroadwan/opshub/internal/opshub/domain"
	"github.com/aussiebroadwan/opshub/internal/opshub/store"
	"github.com/aussiebroadwan/opshub/pkg/idx"
	"github.com/aussiebroadwan/opshub/pkg/slogx"
)

const (
	DefaultAuditLimit = 100
	MaxAuditLimit     = 500
)

// AuditService writes audit entries alongside the change they describe and
// announces them on the Feed once the change is committed.
type AuditService struct {
	Store store.Store
	Feed  *audit.Feed
	Now   func() time.Time
}

type actorKey struct{}

// WithActor attributes audit entries recorded under ctx to actorID.
func WithActor(ctx context.Context, actorID string) context.Context {
	return context.WithValue(ctx, actorKey{}, actorID)
}

func ActorFromContext(ctx context.Context) string {
	id, _ := ctx.Value(actorKey{}).(string)
	return id
}

func (s *AuditService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// Record writes e through st, which is normally the caller's transaction.
// ID, ActorID and CreatedAt are filled in when empty.
func (s *AuditService) Record(ctx context.Context, st store.Store, e domain.AuditLog) (domain.AuditLog, error) {
	if e.CreatedAt.IsZero() {
		e.CreatedAt = s.now()
	}
	if e.ID == "" {
		e.ID = idx.NewAt(e.CreatedAt).String()
	}
	if e.ActorID == "" {
		e.ActorID = ActorFromContext(ctx)
	}
	if e.Meta == nil {
		e.Meta = map[string]any{}
	}

	if err := st.AuditLogs().CreateAuditLog(ctx, e); err != nil {
		slogx.FromContext(ctx).Error("failed to write audit log",
			slog.String("action", string(e.Action)),
			slog.String("target_id", e.TargetID),
			slog.Any("error", err),
		)
		return domain.AuditLog{}, err
	}
	return e, nil
}

// Publish announces committed entries. Zero-value entries are skipped.
func (s *AuditService) Publish(entries ...domain.AuditLog) {
	if s.Feed == nil {
		return
	}
	committed := make([]domain.AuditLog, 0, len(entries))
	for _, e := range entries {
		if e.ID != "" {
			committed = append(committed, e)
		}
	}
	s.Feed.Publish(committed...)
}

// AuditQuery is the raw listing input; Since accepts "7d", "30d" style day
// counts or an RFC3339 timestamp.
type AuditQuery struct {
	Action     string
	TargetType string
	Query      string
	Since      string
	Limit      int
}

func (s *AuditService) List(ctx context.Context, q AuditQuery) ([]domain.AuditLog, error) {
	log := slogx.FromContext(ctx)

	f := domain.AuditFilter{
		Action:     domain.AuditAction(strings.TrimSpace(q.Action)),
		TargetType: domain.AuditTargetType(strings.TrimSpace(q.TargetType)),
		Query:      strings.TrimSpace(q.Query),
		Limit:      q.Limit,
	}

	if f.TargetType != "" {
		if err := checkVar("target_type", string(f.TargetType), "oneof=user role invite system"); err != nil {
			return nil, err
		}
	}

	if q.Since != "" {
		since, err := ParseSince(q.Since, s.now())
		if err != nil {
			log.Warn("invalid audit since filter", slog.String("since", q.Since))
			return nil, err
		}
		f.Since = since
	}

	switch {
	case f.Limit <= 0:
		f.Limit = DefaultAuditLimit
	case f.Limit > MaxAuditLimit:
		f.Limit = MaxAuditLimit
	}

	logs, err := s.Store.AuditLogs().ListAuditLogs(ctx, f)
	if err != nil {
		log.Error("failed to list audit logs", slog.Any("error", err))
		return nil, err
	}
	return logs, nil
}

// ParseSince resolves a relative day window ("7d") or RFC3339 timestamp.
func ParseSince(raw string, now time.Time) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if days, ok := strings.CutSuffix(raw, "d"); ok {
		n, err := strconv.Atoi(days)
		if err != nil || n <= 0 {
			return time.Time{}, fmt.Errorf("%w: since must be like 7d, 30d or an RFC3339 time", ErrValidation)
		}
		return now.AddDate(0, 0, -n), nil
	}

	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: since must be like 7d, 30d or an RFC3339 time", ErrValidation)
	}
	return t.UTC(), nil
}
