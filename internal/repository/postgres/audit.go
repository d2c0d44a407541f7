package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/Ashwinv007/WorkspaceOps-sub000/internal/domain"
)

// AuditLogRepository handles audit log data access. Entries are append
// only; there is no update or delete path.
type AuditLogRepository struct {
	db *DB
}

// NewAuditLogRepository creates a new audit log repository
func NewAuditLogRepository(db *DB) *AuditLogRepository {
	return &AuditLogRepository{db: db}
}

// Create appends an audit log entry
func (r *AuditLogRepository) Create(ctx context.Context, entry *domain.AuditLogEntry) error {
	query := `
		INSERT INTO audit_logs (id, workspace_id, user_id, action, target_type, target_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.Pool.Exec(ctx, query,
		entry.ID,
		entry.WorkspaceID,
		entry.UserID,
		entry.Action,
		entry.TargetType,
		entry.TargetID,
		entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create audit log entry: %w", err)
	}

	return nil
}

// List retrieves audit log entries for a workspace newest first, plus the
// total count under the same filter set.
func (r *AuditLogRepository) List(ctx context.Context, workspaceID uuid.UUID, filter domain.AuditLogFilter) ([]domain.AuditLogEntry, int64, error) {
	where := ` WHERE workspace_id = $1`
	args := []any{workspaceID}

	if filter.UserID != nil {
		args = append(args, *filter.UserID)
		where += fmt.Sprintf(" AND user_id = $%d", len(args))
	}
	if filter.Action != nil {
		args = append(args, *filter.Action)
		where += fmt.Sprintf(" AND action = $%d", len(args))
	}
	if filter.TargetType != nil {
		args = append(args, *filter.TargetType)
		where += fmt.Sprintf(" AND target_type = $%d", len(args))
	}
	if filter.TargetID != nil {
		args = append(args, *filter.TargetID)
		where += fmt.Sprintf(" AND target_id = $%d", len(args))
	}
	if filter.FromDate != nil {
		args = append(args, *filter.FromDate)
		where += fmt.Sprintf(" AND created_at >= $%d", len(args))
	}
	if filter.ToDate != nil {
		args = append(args, *filter.ToDate)
		where += fmt.Sprintf(" AND created_at <= $%d", len(args))
	}

	var total int64
	countQuery := `SELECT COUNT(*) FROM audit_logs` + where
	if err := r.db.Pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count audit log entries: %w", err)
	}

	query := `
		SELECT id, workspace_id, user_id, action, target_type, target_id, created_at
		FROM audit_logs` + where + `
		ORDER BY created_at DESC, id DESC`

	args = append(args, filter.Limit)
	query += fmt.Sprintf(" LIMIT $%d", len(args))
	args = append(args, filter.Offset)
	query += fmt.Sprintf(" OFFSET $%d", len(args))

	rows, err := r.db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list audit log entries: %w", err)
	}
	defer rows.Close()

	var entries []domain.AuditLogEntry
	for rows.Next() {
		var entry domain.AuditLogEntry
		if err := rows.Scan(
			&entry.ID,
			&entry.WorkspaceID,
			&entry.UserID,
			&entry.Action,
			&entry.TargetType,
			&entry.TargetID,
			&entry.CreatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan audit log entry: %w", err)
		}
		entries = append(entries, entry)
	}

	return entries, total, nil
}
