package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Ashwinv007/WorkspaceOps-sub000/internal/domain"
)

// WorkItemRepository handles work item data access
type WorkItemRepository struct {
	db *DB
}

// NewWorkItemRepository creates a new work item repository
func NewWorkItemRepository(db *DB) *WorkItemRepository {
	return &WorkItemRepository{db: db}
}

// Create creates a new work item
func (r *WorkItemRepository) Create(ctx context.Context, item *domain.WorkItem) error {
	query := `
		INSERT INTO work_items (
			id, workspace_id, type_id, entity_id, assignee_id,
			title, description, priority, status, due_date, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := r.db.Pool.Exec(ctx, query,
		item.ID,
		item.WorkspaceID,
		item.TypeID,
		item.EntityID,
		item.AssigneeID,
		item.Title,
		item.Description,
		item.Priority,
		item.Status,
		item.DueDate,
		item.CreatedAt,
		item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create work item: %w", err)
	}

	return nil
}

// GetByID retrieves a work item scoped to a workspace
func (r *WorkItemRepository) GetByID(ctx context.Context, id, workspaceID uuid.UUID) (*domain.WorkItem, error) {
	query := `
		SELECT id, workspace_id, type_id, entity_id, assignee_id,
		       title, description, priority, status, due_date, created_at, updated_at
		FROM work_items
		WHERE id = $1 AND workspace_id = $2
	`

	var item domain.WorkItem
	err := r.db.Pool.QueryRow(ctx, query, id, workspaceID).Scan(
		&item.ID,
		&item.WorkspaceID,
		&item.TypeID,
		&item.EntityID,
		&item.AssigneeID,
		&item.Title,
		&item.Description,
		&item.Priority,
		&item.Status,
		&item.DueDate,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get work item: %w", err)
	}

	return &item, nil
}

// ListByWorkspace retrieves work items with optional filters
func (r *WorkItemRepository) ListByWorkspace(ctx context.Context, workspaceID uuid.UUID, filter domain.WorkItemFilter) ([]domain.WorkItem, error) {
	query := `
		SELECT id, workspace_id, type_id, entity_id, assignee_id,
		       title, description, priority, status, due_date, created_at, updated_at
		FROM work_items
		WHERE workspace_id = $1
	`
	args := []any{workspaceID}

	if filter.Status != nil {
		args = append(args, *filter.Status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if filter.EntityID != nil {
		args = append(args, *filter.EntityID)
		query += fmt.Sprintf(" AND entity_id = $%d", len(args))
	}
	if filter.AssigneeID != nil {
		args = append(args, *filter.AssigneeID)
		query += fmt.Sprintf(" AND assignee_id = $%d", len(args))
	}

	query += " ORDER BY created_at DESC"

	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := r.db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list work items: %w", err)
	}
	defer rows.Close()

	var items []domain.WorkItem
	for rows.Next() {
		var item domain.WorkItem
		if err := rows.Scan(
			&item.ID,
			&item.WorkspaceID,
			&item.TypeID,
			&item.EntityID,
			&item.AssigneeID,
			&item.Title,
			&item.Description,
			&item.Priority,
			&item.Status,
			&item.DueDate,
			&item.CreatedAt,
			&item.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan work item: %w", err)
		}
		items = append(items, item)
	}

	return items, nil
}

// Update updates work item fields. The status column is never touched here.
func (r *WorkItemRepository) Update(ctx context.Context, id, workspaceID uuid.UUID, update *domain.WorkItemUpdate) error {
	query := `
		UPDATE work_items
		SET entity_id = COALESCE($3, entity_id),
		    assignee_id = COALESCE($4, assignee_id),
		    title = COALESCE($5, title),
		    description = COALESCE($6, description),
		    priority = COALESCE($7, priority),
		    due_date = COALESCE($8, due_date),
		    updated_at = NOW()
		WHERE id = $1 AND workspace_id = $2
	`

	tag, err := r.db.Pool.Exec(ctx, query, id, workspaceID,
		update.EntityID,
		update.AssigneeID,
		update.Title,
		update.Description,
		update.Priority,
		update.DueDate,
	)
	if err != nil {
		return fmt.Errorf("failed to update work item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound("work item not found")
	}

	return nil
}

// UpdateStatus performs a compare-and-swap status write. It returns false
// with no error when the guard missed, i.e. the row no longer holds the
// status the caller read.
func (r *WorkItemRepository) UpdateStatus(ctx context.Context, id, workspaceID uuid.UUID, from, to domain.WorkItemStatus) (bool, error) {
	query := `
		UPDATE work_items
		SET status = $4, updated_at = NOW()
		WHERE id = $1 AND workspace_id = $2 AND status = $3
	`

	tag, err := r.db.Pool.Exec(ctx, query, id, workspaceID, from, to)
	if err != nil {
		return false, fmt.Errorf("failed to update work item status: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

// Delete deletes a work item. Document links cascade in the database.
func (r *WorkItemRepository) Delete(ctx context.Context, id, workspaceID uuid.UUID) error {
	query := `DELETE FROM work_items WHERE id = $1 AND workspace_id = $2`

	tag, err := r.db.Pool.Exec(ctx, query, id, workspaceID)
	if err != nil {
		return fmt.Errorf("failed to delete work item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound("work item not found")
	}

	return nil
}

// LinkDocument links a document to a work item
func (r *WorkItemRepository) LinkDocument(ctx context.Context, workItemID, documentID uuid.UUID) (*domain.WorkItemDocument, error) {
	query := `
		INSERT INTO work_item_documents (work_item_id, document_id, linked_at)
		VALUES ($1, $2, NOW())
		RETURNING work_item_id, document_id, linked_at
	`

	var link domain.WorkItemDocument
	err := r.db.Pool.QueryRow(ctx, query, workItemID, documentID).Scan(
		&link.WorkItemID,
		&link.DocumentID,
		&link.LinkedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, domain.Validation("document is already linked to this work item")
		}
		return nil, fmt.Errorf("failed to link document: %w", err)
	}

	return &link, nil
}

// UnlinkDocument removes a document link from a work item
func (r *WorkItemRepository) UnlinkDocument(ctx context.Context, workItemID, documentID uuid.UUID) error {
	query := `DELETE FROM work_item_documents WHERE work_item_id = $1 AND document_id = $2`

	tag, err := r.db.Pool.Exec(ctx, query, workItemID, documentID)
	if err != nil {
		return fmt.Errorf("failed to unlink document: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound("document link not found")
	}

	return nil
}

// ListDocuments retrieves the documents linked to a work item
func (r *WorkItemRepository) ListDocuments(ctx context.Context, workItemID uuid.UUID) ([]domain.Document, error) {
	query := `
		SELECT d.id, d.workspace_id, d.type_id, d.entity_id, d.name, d.file_key,
		       d.mime_type, d.size_bytes, d.metadata, d.expires_at, d.uploaded_by,
		       d.created_at, d.updated_at
		FROM documents d
		INNER JOIN work_item_documents wid ON wid.document_id = d.id
		WHERE wid.work_item_id = $1
		ORDER BY wid.linked_at DESC
	`

	rows, err := r.db.Pool.Query(ctx, query, workItemID)
	if err != nil {
		return nil, fmt.Errorf("failed to list linked documents: %w", err)
	}
	defer rows.Close()

	return scanDocuments(rows)
}
