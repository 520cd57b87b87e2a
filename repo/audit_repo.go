package repo

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/kravetsdev/staff-core/db"
	"github.com/kravetsdev/staff-core/models"
)

// AuditRepository appends to and lists the audit trail. Append is
// fire-and-forget: a failed audit write is logged and swallowed so it
// can never block or roll back the mutation it describes. That also
// means the trail is best-effort — there is no guarantee an entry exists
// for every mutation.
type AuditRepository interface {
	Append(ctx context.Context, userID int64, action string)
	List(ctx context.Context) ([]models.AuditEntry, error)
}

type auditRepo struct {
	q      db.Querier
	logger *slog.Logger
}

// NewAuditRepo returns an AuditRepository backed by q. A nil logger
// falls back to slog.Default().
func NewAuditRepo(q db.Querier, logger *slog.Logger) AuditRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &auditRepo{q: q, logger: logger}
}

const (
	sqlInsertAudit = `
		INSERT INTO audit_logs (user_id, action, timestamp)
		VALUES (?, ?, CURRENT_TIMESTAMP)`

	sqlListAudit = `
		SELECT a.timestamp, u.username, a.action
		FROM   audit_logs a
		JOIN   users u ON a.user_id = u.id
		ORDER  BY a.timestamp DESC, a.id DESC`
)

// Append records one action with a server-assigned timestamp.
func (r *auditRepo) Append(ctx context.Context, userID int64, action string) {
	if _, err := r.q.Exec(ctx, sqlInsertAudit, userID, action); err != nil {
		r.logger.ErrorContext(ctx, "repo/audit: append failed",
			"user_id", userID, "action", action, "error", err)
	}
}

// List returns the audit trail joined to usernames, newest first.
func (r *auditRepo) List(ctx context.Context) ([]models.AuditEntry, error) {
	rows, err := r.q.Query(ctx, sqlListAudit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.AuditEntry
	for rows.Next() {
		var e models.AuditEntry
		if err := rows.Scan(&e.Timestamp, &e.Username, &e.Action); err != nil {
			return nil, fmt.Errorf("repo/audit: scan: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

var _ AuditRepository = (*auditRepo)(nil)
